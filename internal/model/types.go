package model

import (
	"strings"
)

// Kind classifies a descriptor in the type chain.
type Kind string

const (
	KindConcrete Kind = "concrete"
	KindAbstract Kind = "abstract"
	KindProxy    Kind = "proxy"
	KindMixin    Kind = "mixin"
)

// ParseKind maps a textual kind onto the enumeration. Empty input defaults to
// KindConcrete.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KindConcrete:
		return KindConcrete, true
	case KindAbstract:
		return KindAbstract, true
	case KindProxy:
		return KindProxy, true
	case KindMixin:
		return KindMixin, true
	default:
		return "", false
	}
}

// Descriptor names one type of a chain. Namespace groups types by originating
// package so identically named types do not collide on disk.
type Descriptor struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Name      string `json:"name" yaml:"name"`
	Kind      Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Qualifies reports whether the descriptor is addressable in the object model.
// Mixins carry no model metadata and never produce template paths.
func (d Descriptor) Qualifies() bool {
	if d.Kind == KindMixin {
		return false
	}
	return strings.TrimSpace(d.Namespace) != "" && strings.TrimSpace(d.Name) != ""
}

// Dir returns the "<namespace>/<lowercased name>" path segment.
func (d Descriptor) Dir() string {
	return strings.TrimSpace(d.Namespace) + "/" + strings.ToLower(strings.TrimSpace(d.Name))
}

// Key returns the "<namespace>.<Name>" identifier used by registries and config.
func (d Descriptor) Key() string {
	return strings.TrimSpace(d.Namespace) + "." + strings.TrimSpace(d.Name)
}

func (d Descriptor) String() string {
	return d.Key()
}

// Chain is an ordered type chain, most-derived first.
type Chain []Descriptor

// Qualifying returns the descriptors that produce template paths, preserving
// order.
func (c Chain) Qualifying() Chain {
	out := make(Chain, 0, len(c))
	for _, d := range c {
		if d.Qualifies() {
			out = append(out, d)
		}
	}
	return out
}

// Clone returns an independent copy of the chain.
func (c Chain) Clone() Chain {
	if c == nil {
		return nil
	}
	out := make(Chain, len(c))
	copy(out, c)
	return out
}

// Keys lists descriptor keys in chain order.
func (c Chain) Keys() []string {
	out := make([]string, len(c))
	for i, d := range c {
		out[i] = d.Key()
	}
	return out
}
