package gotemplate_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/goleak"

	"github.com/goliatone/go-layout/pkg/render/template/gotemplate"
	"github.com/goliatone/go-layout/pkg/testsupport"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatch_PurgesOnChange(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{
		"layout/news/article/full.html": "v1",
	})

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Watch(context.Background()); err != nil {
		t.Fatalf("watch: %v", err)
	}
	t.Cleanup(func() {
		if err := engine.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})

	if got := mustRender(t, engine, "layout/news/article/full.html"); got != "v1" {
		t.Fatalf("initial render = %q", got)
	}

	path := filepath.Join(dir, "layout", "news", "article", "full.html")
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if got := mustRender(t, engine, "layout/news/article/full.html"); got == "v2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("template change was not picked up")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestWatch_StopsWithContext(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{"a.html": "a"})

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := engine.Watch(ctx); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := engine.Watch(ctx); err != nil {
		t.Fatalf("second watch must be a no-op: %v", err)
	}
	cancel()

	if err := engine.Close(); err != nil {
		t.Fatalf("close after cancel: %v", err)
	}
}

func TestWatch_RequiresBaseDir(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"a.html": {Data: []byte("a")},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Watch(context.Background()); !errors.Is(err, gotemplate.ErrWatchUnavailable) {
		t.Fatalf("expected ErrWatchUnavailable, got %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("close without watch: %v", err)
	}
}

func mustRender(t *testing.T, engine *gotemplate.Engine, name string) string {
	t.Helper()
	out, err := engine.RenderTemplate(name, nil)
	if err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return out
}
