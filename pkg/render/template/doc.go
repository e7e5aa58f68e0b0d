// Package template defines the engine-agnostic template interface the layout
// renderer calls into. The gotemplate subpackage provides the pongo2 adapter.
package template
