package model

import internalmodel "github.com/goliatone/go-layout/internal/model"

// Kind re-exports the internal descriptor kind enumeration.
type Kind = internalmodel.Kind

const (
	KindConcrete = internalmodel.KindConcrete
	KindAbstract = internalmodel.KindAbstract
	KindProxy    = internalmodel.KindProxy
	KindMixin    = internalmodel.KindMixin
)

type Descriptor = internalmodel.Descriptor
type Chain = internalmodel.Chain

// ErrInconsistentHierarchy reports parent chains that cannot be merged.
var ErrInconsistentHierarchy = internalmodel.ErrInconsistentHierarchy

// ParseKind maps "concrete", "abstract", "proxy" or "mixin" onto a Kind.
func ParseKind(raw string) (Kind, bool) {
	return internalmodel.ParseKind(raw)
}

// Linearize orders self ahead of its parents' chains (C3 merge).
func Linearize(self Descriptor, parents ...Chain) (Chain, error) {
	return internalmodel.Linearize(self, parents...)
}

// Chainer is implemented by values that declare their own type chain.
type Chainer interface {
	LayoutChain() Chain
}

// PathProvider is implemented by values that compute their own candidate
// template paths. Resolvers honouring it return the list verbatim.
type PathProvider interface {
	LayoutTemplateNames(view string) []string
}

// Slugged values look up templates in a slug-named folder before the bare
// type folder.
type Slugged interface {
	LayoutSlug() string
}

// FullSlugged values treat each "/" separated section of their full slug as a
// directory, most specific first.
type FullSlugged interface {
	LayoutFullSlug() string
}

// Typed values share templates with every instance of the same type object.
// LayoutType must return a value with a resolvable chain that implements
// Slugged.
type Typed interface {
	LayoutType() any
}

// SlugField can be embedded in a domain struct to satisfy Slugged.
type SlugField struct {
	Slug string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// LayoutSlug returns the slug.
func (s SlugField) LayoutSlug() string { return s.Slug }

// FullSlugField can be embedded in a domain struct to satisfy FullSlugged.
type FullSlugField struct {
	FullSlug string `json:"full_slug,omitempty" yaml:"full_slug,omitempty"`
}

// LayoutFullSlug returns the hierarchical slug.
func (s FullSlugField) LayoutFullSlug() string { return s.FullSlug }
