package resolve

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeDir is the folder holding theme-specific template overrides.
const ThemeDir = "themes"

// Themed prefixes another resolver's candidates with theme folders so a theme
// (and its variant) can override any template without touching the default
// tree. Themed candidates always come first.
type Themed struct {
	next     Resolver
	selector theme.ThemeSelector
	name     string
	variant  string
}

var _ Resolver = (*Themed)(nil)

// NewThemed wraps next. defaultTheme and defaultVariant are passed to the
// selector when callers do not choose a theme explicitly.
func NewThemed(next Resolver, selector theme.ThemeSelector, defaultTheme, defaultVariant string) *Themed {
	return &Themed{
		next:     next,
		selector: selector,
		name:     strings.TrimSpace(defaultTheme),
		variant:  strings.TrimSpace(defaultVariant),
	}
}

// TemplateNames implements Resolver using the default theme selection.
func (t *Themed) TemplateNames(obj any, view string) ([]string, error) {
	return t.TemplateNamesFor(obj, view, "", "")
}

// TemplateNamesFor resolves with an explicit theme and variant; blank values
// fall back to the defaults given to NewThemed.
func (t *Themed) TemplateNamesFor(obj any, view, themeName, variant string) ([]string, error) {
	if t == nil || t.next == nil {
		return nil, fmt.Errorf("resolve: themed resolver has no delegate")
	}
	names, err := t.next.TemplateNames(obj, view)
	if err != nil {
		return nil, err
	}
	if t.selector == nil {
		return names, nil
	}

	themeName = firstNonEmpty(themeName, t.name)
	variant = firstNonEmpty(variant, t.variant)

	selection, err := t.selector.Select(themeName, variant)
	if err != nil {
		return nil, fmt.Errorf("resolve: select theme %q: %w", themeName, err)
	}
	if selection == nil {
		return names, nil
	}
	return ThemePaths(selection.Theme, selection.Variant, names), nil
}

// ThemePaths returns the variant-prefixed candidates, then the
// theme-prefixed candidates, then names unchanged.
func ThemePaths(themeName, variant string, names []string) []string {
	themeName = strings.Trim(strings.TrimSpace(themeName), "/")
	variant = strings.Trim(strings.TrimSpace(variant), "/")
	if themeName == "" {
		return names
	}

	blocks := 2
	if variant != "" {
		blocks = 3
	}
	out := make([]string, 0, len(names)*blocks)
	if variant != "" {
		prefix := ThemeDir + "/" + themeName + "/" + variant + "/"
		for _, name := range names {
			out = append(out, prefix+name)
		}
	}
	prefix := ThemeDir + "/" + themeName + "/"
	for _, name := range names {
		out = append(out, prefix+name)
	}
	return append(out, names...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
