package testsupport

import (
	"fmt"

	"github.com/goliatone/go-layout/pkg/model"
)

// SupportNamespace is the namespace every fixture type is registered under.
const SupportNamespace = "layout_support"

// Foobar is the plain root fixture.
type Foobar struct {
	Title string
}

// SubFoobar inherits from Foobar.
type SubFoobar struct {
	Foobar
}

// AbstractFoo is an abstract child of Foobar.
type AbstractFoo struct {
	Foobar
}

// ConcreteFoo inherits from AbstractFoo.
type ConcreteFoo struct {
	AbstractFoo
}

// ProxyFoo is a proxy of Foobar.
type ProxyFoo struct {
	Foobar
}

// HasOwnLayout supplies its own template names.
type HasOwnLayout struct{}

// LayoutTemplateNames implements model.PathProvider.
func (HasOwnLayout) LayoutTemplateNames(view string) []string {
	return []string{fmt.Sprintf("my_layouts/hasownlayout/%s.file", view)}
}

// Base is the shared root of the slug and type fixtures.
type Base struct{}

// BySlug looks up templates by slug.
type BySlug struct {
	Base
	model.SlugField
}

// ByFullSlug looks up templates by full slug.
type ByFullSlug struct {
	Base
	model.FullSlugField
}

// TypeWithSlug is the type object referenced by ByType.
type TypeWithSlug struct {
	Base
	model.SlugField
}

// ByType shares templates across instances of the same type object.
type ByType struct {
	Base
	Kind *TypeWithSlug
}

// LayoutType implements model.Typed.
func (b ByType) LayoutType() any {
	return b.Kind
}

// Descriptor returns a support descriptor for name.
func Descriptor(name string, kind model.Kind) model.Descriptor {
	return model.Descriptor{Namespace: SupportNamespace, Name: name, Kind: kind}
}

// NewRegistry registers every fixture type and returns the registry.
func NewRegistry() *model.Registry {
	reg := model.NewRegistry()

	slugMixin := Descriptor("TemplatesBySlugMixin", model.KindMixin)
	fullSlugMixin := Descriptor("TemplatesByFullSlugMixin", model.KindMixin)
	typeMixin := Descriptor("TemplatesByTypeMixin", model.KindMixin)

	reg.MustRegister((*Foobar)(nil), Descriptor("Foobar", model.KindConcrete))
	reg.MustRegister((*SubFoobar)(nil), Descriptor("SubFoobar", model.KindConcrete), (*Foobar)(nil))
	reg.MustRegister((*AbstractFoo)(nil), Descriptor("AbstractFoo", model.KindAbstract), (*Foobar)(nil))
	reg.MustRegister((*ConcreteFoo)(nil), Descriptor("ConcreteFoo", model.KindConcrete), (*AbstractFoo)(nil))
	reg.MustRegister((*ProxyFoo)(nil), Descriptor("ProxyFoo", model.KindProxy), (*Foobar)(nil))
	reg.MustRegister((*HasOwnLayout)(nil), Descriptor("HasOwnLayout", model.KindConcrete))
	reg.MustRegister((*Base)(nil), Descriptor("Base", model.KindConcrete))
	reg.MustRegister((*BySlug)(nil), Descriptor("BySlug", model.KindConcrete), slugMixin, (*Base)(nil))
	reg.MustRegister((*ByFullSlug)(nil), Descriptor("ByFullSlug", model.KindConcrete), fullSlugMixin, (*Base)(nil))
	reg.MustRegister((*TypeWithSlug)(nil), Descriptor("TypeWithSlug", model.KindConcrete), (*Base)(nil))
	reg.MustRegister((*ByType)(nil), Descriptor("ByType", model.KindConcrete), typeMixin, (*Base)(nil))

	return reg
}
