// Package render renders objects with the first existing template among the
// candidates a resolve.Resolver computes for them. The object is injected
// under "object" and templates can render related objects with render_model.
package render
