package resolve

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-layout/pkg/model"
)

// Resolver computes candidate template paths for an object and view.
type Resolver interface {
	TemplateNames(obj any, view string) ([]string, error)
}

// Option configures the built-in resolvers.
type Option func(*config)

type config struct {
	registry *model.Registry
	paths    Paths
}

// WithRegistry supplies the registry used to look up type chains. Values that
// implement model.Chainer resolve without one.
func WithRegistry(registry *model.Registry) Option {
	return func(cfg *config) {
		cfg.registry = registry
	}
}

// WithBaseDir overrides the "layout" base directory.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.paths.BaseDir = dir
	}
}

// WithExtension overrides the ".html" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(ext) == "" {
			return
		}
		cfg.paths.Extension = ext
	}
}

func newConfig(options []Option) config {
	cfg := config{paths: DefaultPaths()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	cfg.paths = cfg.paths.normalized()
	return cfg
}

// Basic walks the object's type chain, emitting one path per addressable type
// from most derived to most base.
type Basic struct {
	registry *model.Registry
	paths    Paths
}

var _ Resolver = (*Basic)(nil)

// NewBasic constructs the default type-walk resolver.
func NewBasic(options ...Option) *Basic {
	cfg := newConfig(options)
	return &Basic{registry: cfg.registry, paths: cfg.paths}
}

// Paths returns the path formatting in effect.
func (b *Basic) Paths() Paths {
	return b.paths
}

// TemplateNames implements Resolver.
func (b *Basic) TemplateNames(obj any, view string) ([]string, error) {
	view, err := normalizeView(view)
	if err != nil {
		return nil, err
	}
	chain, err := b.chain(obj)
	if err != nil {
		return nil, err
	}
	return nonEmpty(TypePaths(b.paths, chain, view), obj, view)
}

func (b *Basic) chain(obj any) (model.Chain, error) {
	chain, err := b.registry.ChainOf(obj)
	if err != nil {
		return nil, fmt.Errorf("resolve: type chain: %w", err)
	}
	return chain, nil
}

// ModelProvided lets objects steer their own lookup. An object implementing
// model.PathProvider replaces the walk entirely; model.Typed,
// model.FullSlugged and model.Slugged widen it, checked in that order. Any
// other object falls back to the Basic walk, so ModelProvided is a drop-in
// replacement for Basic.
type ModelProvided struct {
	Basic
}

var _ Resolver = (*ModelProvided)(nil)

// NewModelProvided constructs the capability-aware resolver.
func NewModelProvided(options ...Option) *ModelProvided {
	return &ModelProvided{Basic: *NewBasic(options...)}
}

// TemplateNames implements Resolver.
func (m *ModelProvided) TemplateNames(obj any, view string) ([]string, error) {
	if err := model.CheckInstance(obj); err != nil {
		return nil, fmt.Errorf("resolve: type chain: %w", err)
	}
	view, err := normalizeView(view)
	if err != nil {
		return nil, err
	}

	if provider, ok := obj.(model.PathProvider); ok {
		names := append([]string(nil), provider.LayoutTemplateNames(view)...)
		return nonEmpty(names, obj, view)
	}

	chain, err := m.chain(obj)
	if err != nil {
		return nil, err
	}

	switch v := obj.(type) {
	case model.Typed:
		names, err := m.typeNames(v, chain, view)
		if err != nil {
			return nil, err
		}
		return nonEmpty(names, obj, view)
	case model.FullSlugged:
		return nonEmpty(FullSlugPaths(m.paths, chain, v.LayoutFullSlug(), view), obj, view)
	case model.Slugged:
		return nonEmpty(SlugPaths(m.paths, chain, v.LayoutSlug(), view), obj, view)
	default:
		return nonEmpty(TypePaths(m.paths, chain, view), obj, view)
	}
}

func (m *ModelProvided) typeNames(obj model.Typed, chain model.Chain, view string) ([]string, error) {
	typeObj := obj.LayoutType()
	typeChain, err := m.registry.ChainOf(typeObj)
	if err != nil {
		return nil, fmt.Errorf("resolve: type object chain: %w", err)
	}

	var slug string
	if slugged, ok := typeObj.(model.Slugged); ok {
		slug = slugged.LayoutSlug()
	}

	names := TypeSlugPaths(m.paths, typeChain, slug, view)
	return append(names, TypePaths(m.paths, chain, view)...), nil
}

func normalizeView(view string) (string, error) {
	trimmed := strings.TrimSpace(view)
	if trimmed == "" {
		return "", ErrEmptyView
	}
	return trimmed, nil
}

func nonEmpty(names []string, obj any, view string) ([]string, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %T view %q", ErrNoCandidates, obj, view)
	}
	return names, nil
}
