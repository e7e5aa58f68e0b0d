package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-layout/pkg/model"
)

// Chains linearizes every declared type, keyed "namespace.Name". Parents may
// be declared in any order; cycles and unknown parents are errors.
func (c Config) Chains() (map[string]model.Chain, error) {
	decls := make(map[string]TypeConfig, len(c.Types))
	for _, t := range c.Types {
		d, err := t.Descriptor()
		if err != nil {
			return nil, err
		}
		if d.Namespace == "" || d.Name == "" {
			return nil, fmt.Errorf("config: type namespace and name are required (got %q)", d.Key())
		}
		if _, dup := decls[d.Key()]; dup {
			return nil, fmt.Errorf("config: type %s declared twice", d.Key())
		}
		decls[d.Key()] = t
	}

	b := &chainBuilder{
		decls:    decls,
		done:     make(map[string]model.Chain, len(decls)),
		visiting: make(map[string]bool),
	}
	keys := make([]string, 0, len(decls))
	for key := range decls {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := b.build(key); err != nil {
			return nil, err
		}
	}
	return b.done, nil
}

// Chain returns the linearized chain of a single declared type.
func (c Config) Chain(key string) (model.Chain, error) {
	chains, err := c.Chains()
	if err != nil {
		return nil, err
	}
	chain, ok := chains[strings.TrimSpace(key)]
	if !ok {
		return nil, fmt.Errorf("config: type %q: %w", key, model.ErrUnregistered)
	}
	return chain, nil
}

type chainBuilder struct {
	decls    map[string]TypeConfig
	done     map[string]model.Chain
	visiting map[string]bool
}

func (b *chainBuilder) build(key string) (model.Chain, error) {
	if chain, ok := b.done[key]; ok {
		return chain, nil
	}
	decl, ok := b.decls[key]
	if !ok {
		return nil, fmt.Errorf("config: type %q: %w", key, model.ErrUnregistered)
	}
	if b.visiting[key] {
		return nil, fmt.Errorf("config: type %s: %w: cycle", key, model.ErrInconsistentHierarchy)
	}
	b.visiting[key] = true
	defer delete(b.visiting, key)

	self, err := decl.Descriptor()
	if err != nil {
		return nil, err
	}

	parents := make([]model.Chain, 0, len(decl.Parents))
	for _, parentKey := range decl.Parents {
		parent, err := b.build(strings.TrimSpace(parentKey))
		if err != nil {
			return nil, fmt.Errorf("config: type %s: %w", key, err)
		}
		parents = append(parents, parent)
	}

	chain, err := model.Linearize(self, parents...)
	if err != nil {
		return nil, fmt.Errorf("config: type %s: %w", key, err)
	}
	b.done[key] = chain
	return chain, nil
}
