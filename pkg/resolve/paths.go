package resolve

import (
	"strings"

	"github.com/goliatone/go-layout/pkg/model"
)

const (
	DefaultBaseDir   = "layout"
	DefaultExtension = ".html"
)

// Paths formats candidate paths as
// <base>/<namespace>/<type>/[<segments>/]<view><ext>.
type Paths struct {
	BaseDir   string
	Extension string
}

// DefaultPaths returns the "layout" base directory with ".html" templates.
func DefaultPaths() Paths {
	return Paths{BaseDir: DefaultBaseDir, Extension: DefaultExtension}
}

func (p Paths) normalized() Paths {
	out := Paths{
		BaseDir:   strings.Trim(strings.TrimSpace(p.BaseDir), "/"),
		Extension: strings.TrimSpace(p.Extension),
	}
	if out.Extension != "" && !strings.HasPrefix(out.Extension, ".") {
		out.Extension = "." + out.Extension
	}
	return out
}

// File returns the path of view for descriptor d, nested under the optional
// segments.
func (p Paths) File(d model.Descriptor, view string, segments ...string) string {
	p = p.normalized()

	var b strings.Builder
	if p.BaseDir != "" {
		b.WriteString(p.BaseDir)
		b.WriteByte('/')
	}
	b.WriteString(d.Dir())
	b.WriteByte('/')
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		b.WriteString(segment)
		b.WriteByte('/')
	}
	b.WriteString(view)
	b.WriteString(p.Extension)
	return b.String()
}

// TypePaths emits one bare path per qualifying descriptor, in chain order.
func TypePaths(p Paths, chain model.Chain, view string) []string {
	qualifying := chain.Qualifying()
	out := make([]string, 0, len(qualifying))
	for _, d := range qualifying {
		out = append(out, p.File(d, view))
	}
	return out
}

// SlugPaths emits, per qualifying descriptor, the slug-qualified path followed
// by the bare path. A blank slug degrades to TypePaths.
func SlugPaths(p Paths, chain model.Chain, slug, view string) []string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return TypePaths(p, chain, view)
	}
	qualifying := chain.Qualifying()
	out := make([]string, 0, len(qualifying)*2)
	for _, d := range qualifying {
		out = append(out, p.File(d, view, slug), p.File(d, view))
	}
	return out
}

// FullSlugPaths emits, per qualifying descriptor, the full slug path, each
// successively shorter prefix of it, and finally the bare path. For "a/b/c"
// that is a/b/c, a/b, a, then the type folder itself.
func FullSlugPaths(p Paths, chain model.Chain, fullSlug, view string) []string {
	segments := SplitFullSlug(fullSlug)
	qualifying := chain.Qualifying()
	out := make([]string, 0, len(qualifying)*(len(segments)+1))
	for _, d := range qualifying {
		for n := len(segments); n > 0; n-- {
			out = append(out, p.File(d, view, strings.Join(segments[:n], "/")))
		}
		out = append(out, p.File(d, view))
	}
	return out
}

// TypeSlugPaths emits only the slug-qualified path per qualifying descriptor
// of a type object's chain. The bare type folder is never included.
func TypeSlugPaths(p Paths, chain model.Chain, slug, view string) []string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil
	}
	qualifying := chain.Qualifying()
	out := make([]string, 0, len(qualifying))
	for _, d := range qualifying {
		out = append(out, p.File(d, view, slug))
	}
	return out
}

// SplitFullSlug splits a hierarchical slug into its non-empty sections.
func SplitFullSlug(fullSlug string) []string {
	parts := strings.Split(strings.TrimSpace(fullSlug), "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
