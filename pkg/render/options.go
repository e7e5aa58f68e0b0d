package render

import (
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-layout/pkg/resolve"
)

const (
	// ObjectKey is the context key holding the rendered object.
	ObjectKey = "object"
	// RenderModelFunc is the context key of the nested render helper:
	//
	//	{{ render_model(object.Author, "mini")|safe }}
	RenderModelFunc = "render_model"
	// MaxDepth bounds render_model nesting. The top-level render is the
	// first level.
	MaxDepth = 32
)

// RenderOptions describe per-request data. Data is copied before the object
// is injected, so the caller's map is never mutated. Theme and Variant
// override the resolver's defaults when the resolver supports themes.
type RenderOptions struct {
	Data    map[string]any
	Theme   string
	Variant string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithResolver replaces the default resolve.ModelProvided resolver.
func WithResolver(r resolve.Resolver) Option {
	return func(rd *Renderer) {
		if r != nil {
			rd.resolver = r
		}
	}
}

// WithDebug makes a missing template an error instead of empty output.
func WithDebug(debug bool) Option {
	return func(rd *Renderer) {
		rd.debug = debug
	}
}

// WithLogger routes resolution diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(rd *Renderer) {
		if logger != nil {
			rd.logger = logger
		}
	}
}

// WithSanitizer filters rendered output through policy. Nested render_model
// output is sanitized once, as part of the outermost render.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(rd *Renderer) {
		rd.sanitizer = policy
	}
}
