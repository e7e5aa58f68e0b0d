package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-layout/pkg/model"
	"github.com/goliatone/go-layout/pkg/render/template/gotemplate"
	"github.com/goliatone/go-layout/pkg/resolve"
)

// Environment variables consulted by Load. They win over file values.
const (
	EnvDebug        = "LAYOUT_DEBUG"
	EnvBaseDir      = "LAYOUT_BASE_DIR"
	EnvTemplatesDir = "LAYOUT_TEMPLATES_DIR"
	EnvExtension    = "LAYOUT_EXTENSION"
	EnvTheme        = "LAYOUT_THEME"
	EnvVariant      = "LAYOUT_VARIANT"
	EnvCacheSize    = "LAYOUT_CACHE_SIZE"
)

// DefaultView is offered when no views are configured.
const DefaultView = "full"

// Config describes a layout deployment: where templates live, how candidate
// paths are formatted and which record types exist.
type Config struct {
	// BaseDir is the first path segment of every candidate, "layout" by default.
	BaseDir string `yaml:"base_dir"`
	// Extension is appended to candidates, ".html" by default.
	Extension string `yaml:"extension"`
	// TemplatesDir is the directory on disk the engine loads templates from.
	TemplatesDir string `yaml:"templates_dir"`
	// Debug turns missing templates into errors.
	Debug     bool         `yaml:"debug"`
	CacheSize int          `yaml:"cache_size"`
	Theme     string       `yaml:"theme"`
	Variant   string       `yaml:"variant"`
	Views     []string     `yaml:"views"`
	Types     []TypeConfig `yaml:"types"`
}

// TypeConfig declares a record type. Parents reference other declared types
// by key ("namespace.Name"), most significant first.
type TypeConfig struct {
	Namespace string   `yaml:"namespace"`
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Parents   []string `yaml:"parents"`
}

// Descriptor returns the model descriptor of t.
func (t TypeConfig) Descriptor() (model.Descriptor, error) {
	kind, ok := model.ParseKind(t.Kind)
	if !ok {
		return model.Descriptor{}, fmt.Errorf("config: type %s.%s: unknown kind %q", t.Namespace, t.Name, t.Kind)
	}
	return model.Descriptor{
		Namespace: strings.TrimSpace(t.Namespace),
		Name:      strings.TrimSpace(t.Name),
		Kind:      kind,
	}, nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BaseDir:      resolve.DefaultBaseDir,
		Extension:    resolve.DefaultExtension,
		TemplatesDir: "templates",
		CacheSize:    gotemplate.DefaultCacheSize,
		Views:        []string{DefaultView},
	}
}

// Load reads the YAML document at path from fsys, fills unset values with
// defaults and applies environment overrides, after loading a .env file from
// the working directory when one exists. An empty path skips the file.
func Load(fsys fs.FS, path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		if fsys == nil {
			return Config{}, errors.New("config: file system is required")
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fromFile Config
		if err := yaml.Unmarshal(raw, &fromFile); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg = merge(cfg, fromFile)
	}

	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile loads a configuration file from disk.
func LoadFile(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Load(nil, "")
	}
	dir, file := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	return Load(os.DirFS(dir), file)
}

func merge(base, override Config) Config {
	out := base
	if v := strings.TrimSpace(override.BaseDir); v != "" {
		out.BaseDir = v
	}
	if v := strings.TrimSpace(override.Extension); v != "" {
		out.Extension = v
	}
	if v := strings.TrimSpace(override.TemplatesDir); v != "" {
		out.TemplatesDir = v
	}
	if override.CacheSize != 0 {
		out.CacheSize = override.CacheSize
	}
	out.Debug = override.Debug
	out.Theme = strings.TrimSpace(override.Theme)
	out.Variant = strings.TrimSpace(override.Variant)
	if len(override.Views) > 0 {
		out.Views = override.Views
	}
	out.Types = override.Types
	return out
}

func applyEnv(cfg *Config) error {
	if raw, ok := lookupEnv(EnvDebug); ok {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvDebug, err)
		}
		cfg.Debug = debug
	}
	if raw, ok := lookupEnv(EnvCacheSize); ok {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvCacheSize, err)
		}
		cfg.CacheSize = size
	}
	if v, ok := lookupEnv(EnvBaseDir); ok {
		cfg.BaseDir = v
	}
	if v, ok := lookupEnv(EnvTemplatesDir); ok {
		cfg.TemplatesDir = v
	}
	if v, ok := lookupEnv(EnvExtension); ok {
		cfg.Extension = v
	}
	if v, ok := lookupEnv(EnvTheme); ok {
		cfg.Theme = v
	}
	if v, ok := lookupEnv(EnvVariant); ok {
		cfg.Variant = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}
