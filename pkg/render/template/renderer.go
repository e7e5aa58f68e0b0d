package template

import (
	"io"
)

// TemplateRenderer is the engine seam the layout renderer relies on. Lookup
// implements the first-match waterfall: it returns the first name that exists
// in the engine's template sources.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
	Lookup(names ...string) (string, bool)
}
