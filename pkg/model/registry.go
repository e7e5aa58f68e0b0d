package model

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry stores the declared chain of each Go type, replacing runtime
// inheritance introspection. Pointer and value forms of a type share one entry.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Chain
	byKey  map[string]Chain
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Chain),
		byKey:  make(map[string]Chain),
	}
}

// Register declares the chain for prototype's type. Parents are listed
// most-significant first and may be registered prototypes, Chains or
// Descriptors (a root with no bases of its own).
func (r *Registry) Register(prototype any, self Descriptor, parents ...any) error {
	if r == nil {
		return fmt.Errorf("model: registry is nil")
	}
	if err := checkPrototype(prototype); err != nil {
		return err
	}
	if self.Namespace == "" || self.Name == "" {
		return fmt.Errorf("model: descriptor namespace and name are required")
	}
	if self.Kind == "" {
		self.Kind = KindConcrete
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	typ := typeKey(prototype)
	if _, exists := r.byType[typ]; exists {
		return fmt.Errorf("model: type %s already registered", typ)
	}
	if _, exists := r.byKey[self.Key()]; exists {
		return fmt.Errorf("model: descriptor %q already registered", self.Key())
	}

	parentChains := make([]Chain, 0, len(parents))
	for idx, parent := range parents {
		chain, err := r.parentChainLocked(parent)
		if err != nil {
			return fmt.Errorf("model: register %s parent %d: %w", self.Key(), idx, err)
		}
		parentChains = append(parentChains, chain)
	}

	chain, err := Linearize(self, parentChains...)
	if err != nil {
		return fmt.Errorf("model: register %s: %w", self.Key(), err)
	}

	r.byType[typ] = chain
	r.byKey[self.Key()] = chain
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(prototype any, self Descriptor, parents ...any) {
	if err := r.Register(prototype, self, parents...); err != nil {
		panic(err)
	}
}

// ChainOf returns the chain for v. Values implementing Chainer win over
// registry entries.
func (r *Registry) ChainOf(v any) (Chain, error) {
	if err := CheckInstance(v); err != nil {
		return nil, err
	}
	if chainer, ok := v.(Chainer); ok {
		chain := chainer.LayoutChain()
		if len(chain) == 0 {
			return nil, fmt.Errorf("%w: %T declares an empty chain", ErrEmptyChain, v)
		}
		return chain.Clone(), nil
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnregistered, v)
	}

	r.mu.RLock()
	chain, ok := r.byType[typeKey(v)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnregistered, v)
	}
	return chain.Clone(), nil
}

// Lookup returns the chain registered under "<namespace>.<Name>".
func (r *Registry) Lookup(key string) (Chain, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return chain.Clone(), true
}

// List returns a sorted list of registered descriptor keys.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.byKey))
	for key := range r.byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) parentChainLocked(parent any) (Chain, error) {
	switch p := parent.(type) {
	case Chain:
		if len(p) == 0 {
			return nil, ErrEmptyChain
		}
		return p.Clone(), nil
	case Descriptor:
		return Chain{p}, nil
	}
	if err := checkPrototype(parent); err != nil {
		return nil, err
	}
	chain, ok := r.byType[typeKey(parent)]
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnregistered, parent)
	}
	return chain, nil
}

// checkPrototype accepts typed nil pointers, the usual way of naming a type
// without allocating, but rejects untyped nil and reflect.Type values.
func checkPrototype(v any) error {
	if v == nil {
		return &TypeError{Got: "nil"}
	}
	if t, ok := v.(reflect.Type); ok {
		return &TypeError{Got: "type " + t.String()}
	}
	return nil
}

func typeKey(v any) reflect.Type {
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
