package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-layout/pkg/render/template"
	"github.com/goliatone/go-layout/pkg/resolve"
)

// ThemeResolver is implemented by resolvers that accept a per-call theme, such
// as resolve.Themed.
type ThemeResolver interface {
	TemplateNamesFor(obj any, view, theme, variant string) ([]string, error)
}

// Renderer renders an object with the first template, among its resolved
// candidates, that exists in the template engine.
type Renderer struct {
	resolver  resolve.Resolver
	templates template.TemplateRenderer
	debug     bool
	logger    *zap.Logger
	sanitizer *bluemonday.Policy
}

// New constructs a Renderer over templates. The resolver defaults to
// resolve.NewModelProvided with the default paths and no registry, so only
// objects implementing model.Chainer or model.PathProvider resolve until
// WithResolver supplies one backed by a registry.
func New(templates template.TemplateRenderer, options ...Option) (*Renderer, error) {
	if templates == nil {
		return nil, errors.New("render: template renderer is required")
	}
	r := &Renderer{
		resolver:  resolve.NewModelProvided(),
		templates: templates,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Debug reports whether missing templates are returned as errors.
func (r *Renderer) Debug() bool {
	return r.debug
}

// TemplateNames returns the candidate paths for obj and view, most specific
// first.
func (r *Renderer) TemplateNames(obj any, view string) ([]string, error) {
	return r.resolver.TemplateNames(obj, view)
}

// Render renders obj with view. The object is available to the template as
// "object" alongside the entries of opts.Data. When no candidate exists the
// result is empty, or a *NotFoundError in debug mode.
func (r *Renderer) Render(ctx context.Context, obj any, view string, opts RenderOptions) (string, error) {
	return r.render(ctx, obj, view, opts, 0)
}

// RenderTo renders like Render and writes the output to w.
func (r *Renderer) RenderTo(ctx context.Context, w io.Writer, obj any, view string, opts RenderOptions) error {
	out, err := r.Render(ctx, obj, view, opts)
	if err != nil {
		return err
	}
	if out == "" || w == nil {
		return nil
	}
	_, err = io.WriteString(w, out)
	return err
}

func (r *Renderer) render(ctx context.Context, obj any, view string, opts RenderOptions, depth int) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if depth >= MaxDepth {
		return "", fmt.Errorf("%w: %d levels", ErrNestingTooDeep, depth)
	}

	names, err := r.candidates(obj, view, opts)
	if err != nil {
		if errors.Is(err, resolve.ErrNoCandidates) {
			return r.notFound(view, nil)
		}
		return "", err
	}

	name, ok := r.templates.Lookup(names...)
	if !ok {
		return r.notFound(view, names)
	}
	r.logger.Debug("layout template resolved",
		zap.String("view", view),
		zap.String("template", name),
		zap.Int("depth", depth),
	)

	data := make(map[string]any, len(opts.Data)+2)
	for key, value := range opts.Data {
		data[key] = value
	}
	helper, nestedErr := r.nested(ctx, opts, depth)
	data[ObjectKey] = obj
	data[RenderModelFunc] = helper

	out, err := r.templates.RenderTemplate(name, data)
	if *nestedErr != nil {
		return "", *nestedErr
	}
	if errors.Is(err, fs.ErrNotExist) {
		// Removed after Lookup, e.g. during a reload.
		return r.notFound(view, names)
	}
	if err != nil {
		return "", fmt.Errorf("render: template %q: %w", name, err)
	}
	if depth == 0 && r.sanitizer != nil {
		out = r.sanitizer.Sanitize(out)
	}
	return out, nil
}

func (r *Renderer) candidates(obj any, view string, opts RenderOptions) ([]string, error) {
	if opts.Theme != "" || opts.Variant != "" {
		if themed, ok := r.resolver.(ThemeResolver); ok {
			return themed.TemplateNamesFor(obj, view, opts.Theme, opts.Variant)
		}
	}
	return r.resolver.TemplateNames(obj, view)
}

// nested returns the render_model helper bound to the current render. Nested
// objects see the same data and theme but never the parent's object. The
// first nested failure is kept so it reaches the caller unwrapped by the
// engine.
func (r *Renderer) nested(ctx context.Context, opts RenderOptions, depth int) (func(obj any, view string) (string, error), *error) {
	var first error
	return func(obj any, view string) (string, error) {
		out, err := r.render(ctx, obj, view, opts, depth+1)
		if err != nil && first == nil {
			first = err
		}
		return out, err
	}, &first
}

func (r *Renderer) notFound(view string, names []string) (string, error) {
	if r.debug {
		return "", &NotFoundError{View: view, Candidates: names}
	}
	r.logger.Debug("no layout template found",
		zap.String("view", view),
		zap.Strings("candidates", names),
	)
	return "", nil
}
