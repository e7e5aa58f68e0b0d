package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-layout/pkg/render/template"
)

// DefaultCacheSize bounds the number of compiled templates kept in memory.
const DefaultCacheSize = 512

// Option configures the pongo2 adapter before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	cacheSize  int
	templateFn map[string]any
	globalData map[string]any
	logger     *zap.Logger
}

// WithBaseDir configures the underlying engine to load templates from a base
// directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS configures the underlying engine to load templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension used by the engine.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithCacheSize bounds the compiled template cache. Zero or a negative size
// disables caching so every render re-reads its template.
func WithCacheSize(size int) Option {
	return func(cfg *config) {
		cfg.cacheSize = size
	}
}

// WithTemplateFunc registers helper functions or filters when the engine loads.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds global context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithLogger routes cache and watcher diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Engine satisfies the template.TemplateRenderer contract using a
// pongo2-backed template set, so layout templates use Django-style syntax.
//
// Templates execute without holding engine locks, so a helper called from a
// running template may render other templates through the same engine.
type Engine struct {
	// compileMu serializes template parsing on the shared set.
	compileMu sync.Mutex

	globalsMu sync.RWMutex
	globals   pongo2.Context

	templateSet *pongo2.TemplateSet
	sources     []fs.FS
	baseDir     string
	cache       *lru.Cache[string, *pongo2.Template]
	compiling   singleflight.Group
	tplExt      string
	logger      *zap.Logger

	watchMu sync.Mutex
	watch   *watcher
}

// Ensure Engine implements the TemplateRenderer interface.
var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".html",
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	var (
		loaders []pongo2.TemplateLoader
		sources []fs.FS
	)
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
		sources = append(sources, os.DirFS(cfg.baseDir))
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
		sources = append(sources, cfg.templates)
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("layout", loaders...),
		sources:     sources,
		baseDir:     cfg.baseDir,
		tplExt:      cfg.extension,
		logger:      cfg.logger,
	}
	if cfg.cacheSize > 0 {
		cache, err := lru.New[string, *pongo2.Template](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create template cache: %w", err)
		}
		engine.cache = cache
	}
	registerDefaultFilters()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	if len(cfg.templateFn) > 0 {
		for name, fn := range cfg.templateFn {
			if err := engine.registerTemplateFunc(name, fn); err != nil {
				return nil, fmt.Errorf("gotemplate: register template func %q: %w", name, err)
			}
		}
	}

	return engine, nil
}

// Render treats name as inline template content when it contains template
// delimiters, and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if isTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads (or reuses) the named template and executes it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	templatePath, ok := e.resolveName(name)
	if !ok {
		templatePath = e.withExtension(name)
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}

	viewContext, err := e.executionContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", templatePath, err)
	}

	return writeOut(buf.String(), out)
}

// RenderString parses and executes templateContent without caching it.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	e.compileMu.Lock()
	tmpl, err := e.templateSet.FromString(templateContent)
	e.compileMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}

	viewContext, err := e.executionContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template string: %w", err)
	}

	return writeOut(buf.String(), out)
}

// Lookup returns the first name that exists in any template source. Names
// without the engine extension are also tried with it appended.
func (e *Engine) Lookup(names ...string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, name := range names {
		if path, ok := e.resolveName(name); ok {
			return path, true
		}
	}
	return "", false
}

// RegisterFilter registers template filters on the wrapped engine.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

// GlobalContext seeds global data on the wrapped engine.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}

	globalCtx, err := convertToContext(data)
	if err != nil {
		return err
	}

	e.updateGlobals(func(globals pongo2.Context) {
		globals.Update(globalCtx)
	})
	return nil
}

// Purge drops every compiled template so the next render reloads from source.
func (e *Engine) Purge() {
	if e == nil || e.cache == nil {
		return
	}
	e.cache.Purge()
}

// Cached reports whether the compiled form of path is held in the cache.
func (e *Engine) Cached(path string) bool {
	if e == nil || e.cache == nil {
		return false
	}
	return e.cache.Contains(path)
}

func (e *Engine) registerTemplateFunc(name string, fn any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return nil
	}

	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(trimmed) {
			return nil
		}
		return pongo2.RegisterFilter(trimmed, filter)
	}

	if !isCallable(fn) {
		return nil
	}

	e.updateGlobals(func(globals pongo2.Context) {
		globals[trimmed] = fn
	})
	return nil
}

// updateGlobals swaps in a modified copy of the globals. Executions keep
// reading the snapshot they started with.
func (e *Engine) updateGlobals(fn func(pongo2.Context)) {
	e.globalsMu.Lock()
	defer e.globalsMu.Unlock()

	next := make(pongo2.Context, len(e.globals)+1)
	next.Update(e.globals)
	fn(next)
	e.globals = next
}

// executionContext converts data and fills in globals it does not override.
func (e *Engine) executionContext(data any) (pongo2.Context, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return nil, err
	}

	e.globalsMu.RLock()
	globals := e.globals
	e.globalsMu.RUnlock()

	for key, value := range globals {
		if _, ok := viewContext[key]; !ok {
			viewContext[key] = value
		}
	}
	return viewContext, nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	if e.cache != nil {
		if tmpl, ok := e.cache.Get(path); ok {
			return tmpl, nil
		}
	}

	result, err, _ := e.compiling.Do(path, func() (any, error) {
		if e.cache != nil {
			if tmpl, ok := e.cache.Get(path); ok {
				return tmpl, nil
			}
		}

		if !e.exists(path) {
			return nil, fmt.Errorf("gotemplate: load template %q: %w", path, fs.ErrNotExist)
		}

		e.compileMu.Lock()
		tmpl, err := e.templateSet.FromFile(path)
		e.compileMu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
		}

		if e.cache != nil {
			e.cache.Add(path, tmpl)
			e.logger.Debug("compiled template cached", zap.String("template", path))
		}
		return tmpl, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*pongo2.Template), nil
}

func (e *Engine) resolveName(name string) (string, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(name), "/")
	if trimmed == "" {
		return "", false
	}
	if e.exists(trimmed) {
		return trimmed, true
	}
	if withExt := e.withExtension(trimmed); withExt != trimmed && e.exists(withExt) {
		return withExt, true
	}
	return "", false
}

func (e *Engine) withExtension(name string) string {
	if e.tplExt == "" || strings.HasSuffix(name, e.tplExt) {
		return name
	}
	return name + e.tplExt
}

func (e *Engine) exists(path string) bool {
	if !fs.ValidPath(path) {
		return false
	}
	for _, fsys := range e.sources {
		info, err := fs.Stat(fsys, path)
		if err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

func writeOut(rendered string, out []io.Writer) (string, error) {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

// convertToContext builds a pongo2 context from data. Map values are passed
// through untouched so templates see the caller's Go values (struct fields
// and methods included); only a non-map top-level value is flattened through
// its JSON form.
func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return copyContext(map[string]any(v)), nil
	case map[string]any:
		return copyContext(v), nil
	default:
		m, err := jsonToMap(v)
		if err != nil {
			return nil, err
		}
		return copyContext(m), nil
	}
}

func copyContext(in map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func jsonToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("lowerfirst") {
		_ = pongo2.RegisterFilter("lowerfirst", filterLowerFirst)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	t := in.String()

	var (
		firstNonWhitespaceIndex int
		firstRune               rune
		firstRuneSize           int
	)

	for i, r := range t {
		if !strings.ContainsRune(" \t\n\r", r) {
			firstNonWhitespaceIndex = i
			firstRune = r
			firstRuneSize = utf8.RuneLen(r)
			break
		}
	}

	if firstRune == 0 {
		return pongo2.AsValue(t), nil
	}

	prefix := t[:firstNonWhitespaceIndex]
	loweredRune := strings.ToLower(string(firstRune))
	rest := t[firstNonWhitespaceIndex+firstRuneSize:]

	return pongo2.AsValue(prefix + loweredRune + rest), nil
}
