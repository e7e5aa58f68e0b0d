package layout

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-layout/pkg/config"
	"github.com/goliatone/go-layout/pkg/model"
	"github.com/goliatone/go-layout/pkg/render"
	"github.com/goliatone/go-layout/pkg/render/template/gotemplate"
	"github.com/goliatone/go-layout/pkg/resolve"
)

// RenderOptions aliases render.RenderOptions for callers of the root package.
type RenderOptions = render.RenderOptions

// Option customises New.
type Option func(*options)

type options struct {
	registry  *model.Registry
	templates fs.FS
	logger    *zap.Logger
	selector  theme.ThemeSelector
	sanitizer *bluemonday.Policy
	funcs     map[string]any
}

// WithRegistry supplies the chains of hand-written Go types.
func WithRegistry(registry *model.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithTemplatesFS loads templates from fsys instead of the configured
// directory. Watch is unavailable for such layouts.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(o *options) {
		o.templates = fsys
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithThemeSelector enables theme folders. The configured theme and variant
// become the defaults passed to selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *options) {
		o.selector = selector
	}
}

// WithSanitizer filters rendered output through policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *options) {
		o.sanitizer = policy
	}
}

// WithTemplateFuncs registers template helpers on the engine.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(o *options) {
		o.funcs = funcs
	}
}

// Layout wires a configuration to the pongo2 engine and the model-aware
// renderer.
type Layout struct {
	*render.Renderer

	Config config.Config
	Engine *gotemplate.Engine

	chains map[string]model.Chain
}

// New builds a Layout from cfg.
func New(cfg config.Config, opts ...Option) (*Layout, error) {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	chains, err := cfg.Chains()
	if err != nil {
		return nil, err
	}

	engineOpts := []gotemplate.Option{
		gotemplate.WithExtension(cfg.Extension),
		gotemplate.WithCacheSize(cfg.CacheSize),
		gotemplate.WithLogger(o.logger.Named("engine")),
		gotemplate.WithTemplateFunc(o.funcs),
	}
	if dir := strings.TrimSpace(cfg.TemplatesDir); dir != "" && o.templates == nil {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(dir))
	}
	if o.templates != nil {
		engineOpts = append(engineOpts, gotemplate.WithFS(o.templates))
	}
	engine, err := gotemplate.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("layout: template engine: %w", err)
	}

	var resolver resolve.Resolver = resolve.NewModelProvided(
		resolve.WithRegistry(o.registry),
		resolve.WithBaseDir(cfg.BaseDir),
		resolve.WithExtension(cfg.Extension),
	)
	if o.selector != nil {
		resolver = resolve.NewThemed(resolver, o.selector, cfg.Theme, cfg.Variant)
	}

	renderer, err := render.New(engine,
		render.WithResolver(resolver),
		render.WithDebug(cfg.Debug),
		render.WithLogger(o.logger.Named("render")),
		render.WithSanitizer(o.sanitizer),
	)
	if err != nil {
		return nil, err
	}

	return &Layout{
		Renderer: renderer,
		Config:   cfg,
		Engine:   engine,
		chains:   chains,
	}, nil
}

// Watch reloads templates from the configured directory as they change.
func (l *Layout) Watch(ctx context.Context) error {
	return l.Engine.Watch(ctx)
}

// Close stops the template watcher, if any.
func (l *Layout) Close() error {
	return l.Engine.Close()
}

// Chain returns the chain of a configured type.
func (l *Layout) Chain(key string) (model.Chain, error) {
	chain, ok := l.chains[strings.TrimSpace(key)]
	if !ok {
		return nil, fmt.Errorf("layout: type %q: %w", key, model.ErrUnregistered)
	}
	return chain.Clone(), nil
}

// Record converts doc into a renderable object, attaching the chains of the
// configured types it names.
func (l *Layout) Record(doc Document) (any, error) {
	rec, err := l.record(doc, 0)
	if err != nil {
		return nil, err
	}
	return rec.Object(), nil
}

func (l *Layout) record(doc Document, depth int) (*model.Record, error) {
	if depth > 1 {
		return nil, errors.New("layout: type objects cannot nest")
	}
	rec := &model.Record{
		Slug:      doc.Slug,
		FullSlug:  doc.FullSlug,
		Templates: doc.Templates,
		Fields:    doc.Fields,
	}
	if len(doc.Templates) == 0 {
		chain, err := l.Chain(doc.Type)
		if err != nil {
			return nil, err
		}
		rec.Chain = chain
	}
	if doc.TypeObject != nil {
		typeRec, err := l.record(*doc.TypeObject, depth+1)
		if err != nil {
			return nil, fmt.Errorf("layout: type object: %w", err)
		}
		rec.Type = typeRec
	}
	return rec, nil
}
