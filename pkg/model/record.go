package model

import "strings"

// Record is a dynamic object instance for callers without dedicated Go types,
// such as configuration-driven content or the CLI. Object exposes it with the
// single capability its populated fields select.
type Record struct {
	Chain     Chain          `json:"-" yaml:"-"`
	Slug      string         `json:"slug,omitempty" yaml:"slug,omitempty"`
	FullSlug  string         `json:"full_slug,omitempty" yaml:"full_slug,omitempty"`
	Type      *Record        `json:"type,omitempty" yaml:"type,omitempty"`
	Templates []string       `json:"templates,omitempty" yaml:"templates,omitempty"`
	Fields    map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// LayoutChain implements Chainer.
func (r *Record) LayoutChain() Chain {
	if r == nil {
		return nil
	}
	return r.Chain
}

// Get returns a field value, nil when absent.
func (r *Record) Get(name string) any {
	if r == nil || r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// Object wraps the record so resolvers see the same capability a hand-written
// type would declare: explicit templates, then a type object, then a full
// slug, then a slug.
func (r *Record) Object() any {
	if r == nil {
		return nil
	}
	switch {
	case len(r.Templates) > 0:
		return providedRecord{r}
	case r.Type != nil:
		return typedRecord{r}
	case strings.Trim(r.FullSlug, "/ ") != "":
		return fullSlugRecord{r}
	case strings.TrimSpace(r.Slug) != "":
		return slugRecord{r}
	default:
		return r
	}
}

type providedRecord struct{ *Record }

func (p providedRecord) LayoutTemplateNames(view string) []string {
	out := make([]string, 0, len(p.Templates))
	for _, tpl := range p.Templates {
		out = append(out, strings.ReplaceAll(tpl, "{view}", view))
	}
	return out
}

type typedRecord struct{ *Record }

func (t typedRecord) LayoutType() any {
	return slugRecord{t.Type}
}

type fullSlugRecord struct{ *Record }

func (f fullSlugRecord) LayoutFullSlug() string { return f.FullSlug }

type slugRecord struct{ *Record }

func (s slugRecord) LayoutSlug() string { return s.Slug }

// Unwrap returns the underlying record of a value produced by Object.
func Unwrap(v any) (*Record, bool) {
	switch r := v.(type) {
	case *Record:
		return r, r != nil
	case providedRecord:
		return r.Record, r.Record != nil
	case typedRecord:
		return r.Record, r.Record != nil
	case fullSlugRecord:
		return r.Record, r.Record != nil
	case slugRecord:
		return r.Record, r.Record != nil
	default:
		return nil, false
	}
}
