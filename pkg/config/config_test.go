package config_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-layout/pkg/config"
	"github.com/goliatone/go-layout/pkg/model"
)

const layoutYAML = `
base_dir: views
extension: tpl
templates_dir: ./site
debug: true
cache_size: 64
theme: acme
views: [full, mini]
types:
  - namespace: content
    name: Item
  - namespace: news
    name: Article
    parents: [content.Item]
  - namespace: news
    name: Localized
    kind: mixin
  - namespace: news
    name: Story
    parents: [news.Localized, news.Article]
`

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	fsys := fstest.MapFS{"layout.yaml": {Data: []byte(layoutYAML)}}

	cfg, err := config.Load(fsys, "layout.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BaseDir != "views" || cfg.Extension != "tpl" || cfg.TemplatesDir != "./site" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if !cfg.Debug || cfg.CacheSize != 64 || cfg.Theme != "acme" || cfg.Variant != "" {
		t.Fatalf("unexpected settings: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"full", "mini"}, cfg.Views); diff != "" {
		t.Fatalf("views mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(nil, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDebug, "false")
	t.Setenv(config.EnvBaseDir, "partials")
	t.Setenv(config.EnvTemplatesDir, "/srv/templates")
	t.Setenv(config.EnvExtension, ".j2")
	t.Setenv(config.EnvTheme, "nord")
	t.Setenv(config.EnvVariant, "dark")
	t.Setenv(config.EnvCacheSize, "8")

	fsys := fstest.MapFS{"layout.yaml": {Data: []byte(layoutYAML)}}
	cfg, err := config.Load(fsys, "layout.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := config.Config{
		BaseDir:      "partials",
		Extension:    ".j2",
		TemplatesDir: "/srv/templates",
		Debug:        false,
		CacheSize:    8,
		Theme:        "nord",
		Variant:      "dark",
	}
	got := cfg
	got.Views, got.Types = nil, nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("env overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	if _, err := config.Load(fstest.MapFS{}, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := config.Load(fstest.MapFS{"bad.yaml": {Data: []byte("types: {")}}, "bad.yaml"); err == nil {
		t.Fatalf("expected parse error")
	}

	t.Setenv(config.EnvDebug, "sometimes")
	if _, err := config.Load(nil, ""); err == nil {
		t.Fatalf("expected error for malformed %s", config.EnvDebug)
	}
}

func TestChains(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(fstest.MapFS{"layout.yaml": {Data: []byte(layoutYAML)}}, "layout.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	chains, err := cfg.Chains()
	if err != nil {
		t.Fatalf("chains: %v", err)
	}
	if diff := cmp.Diff([]string{"news.Story", "news.Localized", "news.Article", "content.Item"}, chains["news.Story"].Keys()); diff != "" {
		t.Fatalf("story chain mismatch (-want +got):\n%s", diff)
	}
	if got := chains["news.Story"].Qualifying().Keys(); len(got) != 3 {
		t.Fatalf("mixins must not qualify, got %v", got)
	}

	article, err := cfg.Chain("news.Article")
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if diff := cmp.Diff([]string{"news.Article", "content.Item"}, article.Keys()); diff != "" {
		t.Fatalf("article chain mismatch (-want +got):\n%s", diff)
	}
	if _, err := cfg.Chain("news.Missing"); !errors.Is(err, model.ErrUnregistered) {
		t.Fatalf("expected ErrUnregistered, got %v", err)
	}
}

func TestChains_Invalid(t *testing.T) {
	cases := map[string][]config.TypeConfig{
		"unknown parent": {
			{Namespace: "news", Name: "Article", Parents: []string{"content.Item"}},
		},
		"cycle": {
			{Namespace: "a", Name: "A", Parents: []string{"b.B"}},
			{Namespace: "b", Name: "B", Parents: []string{"a.A"}},
		},
		"duplicate": {
			{Namespace: "a", Name: "A"},
			{Namespace: "a", Name: "A"},
		},
		"unknown kind": {
			{Namespace: "a", Name: "A", Kind: "virtual"},
		},
		"missing name": {
			{Namespace: "a"},
		},
	}

	for name, types := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := (config.Config{Types: types}).Chains(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvDebug, config.EnvBaseDir, config.EnvTemplatesDir, config.EnvExtension,
		config.EnvTheme, config.EnvVariant, config.EnvCacheSize,
	} {
		t.Setenv(key, "")
	}
}
