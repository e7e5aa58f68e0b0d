package resolve_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-layout/pkg/resolve"
	"github.com/goliatone/go-layout/pkg/testsupport"
)

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestThemed_PrefixesCandidates(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark"}}
	base := resolve.NewBasic(resolve.WithRegistry(testsupport.NewRegistry()))
	r := resolve.NewThemed(base, selector, "acme", "light")

	got, err := r.TemplateNamesFor(testsupport.SubFoobar{}, "mini", "", "dark")
	if err != nil {
		t.Fatalf("template names: %v", err)
	}
	want := []string{
		"themes/acme/dark/layout/layout_support/subfoobar/mini.html",
		"themes/acme/dark/layout/layout_support/foobar/mini.html",
		"themes/acme/layout/layout_support/subfoobar/mini.html",
		"themes/acme/layout/layout_support/foobar/mini.html",
		"layout/layout_support/subfoobar/mini.html",
		"layout/layout_support/foobar/mini.html",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "dark"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
}

func TestThemed_DefaultsAndPassthrough(t *testing.T) {
	base := resolve.NewBasic(resolve.WithRegistry(testsupport.NewRegistry()))

	selector := &stubThemeSelector{}
	r := resolve.NewThemed(base, selector, "acme", "light")
	got, err := r.TemplateNames(testsupport.Foobar{}, "mini")
	if err != nil {
		t.Fatalf("template names: %v", err)
	}
	if diff := cmp.Diff([]string{"layout/layout_support/foobar/mini.html"}, got); diff != "" {
		t.Fatalf("nil selection must pass names through (-want +got):\n%s", diff)
	}
	if len(selector.calls) != 1 || selector.calls[0].name != "acme" || selector.calls[0].variant != "light" {
		t.Fatalf("expected defaults passed to selector, got %+v", selector.calls)
	}

	unthemed := resolve.NewThemed(base, nil, "", "")
	got, err = unthemed.TemplateNames(testsupport.Foobar{}, "mini")
	if err != nil {
		t.Fatalf("template names: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected passthrough without selector, got %v", got)
	}
}

func TestThemed_SelectorError(t *testing.T) {
	boom := errors.New("unknown theme")
	base := resolve.NewBasic(resolve.WithRegistry(testsupport.NewRegistry()))
	r := resolve.NewThemed(base, &stubThemeSelector{err: boom}, "ghost", "")

	if _, err := r.TemplateNames(testsupport.Foobar{}, "mini"); !errors.Is(err, boom) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestThemePaths_ThemeWithoutVariant(t *testing.T) {
	got := resolve.ThemePaths("acme", "", []string{"a.html", "b.html"})
	want := []string{"themes/acme/a.html", "themes/acme/b.html", "a.html", "b.html"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := resolve.ThemePaths("", "dark", []string{"a.html"}); len(got) != 1 {
		t.Fatalf("expected no prefixing without a theme, got %v", got)
	}
}
