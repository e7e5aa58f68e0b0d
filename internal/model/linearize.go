package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInconsistentHierarchy is returned when parent chains cannot be merged
// into a single order that keeps every parent ahead of its own bases.
var ErrInconsistentHierarchy = errors.New("model: inconsistent type hierarchy")

// Linearize builds the chain of self from its direct parents' chains. The
// result starts with self, keeps every parent before its bases, honours the
// left-to-right parent order, and lists each descriptor once (C3 merge).
func Linearize(self Descriptor, parents ...Chain) (Chain, error) {
	seqs := make([]Chain, 0, len(parents)+1)
	heads := make(Chain, 0, len(parents))
	for _, parent := range parents {
		if len(parent) == 0 {
			continue
		}
		if parent[0].Key() == self.Key() {
			return nil, fmt.Errorf("%w: %s inherits from itself", ErrInconsistentHierarchy, self.Key())
		}
		seqs = append(seqs, parent.Clone())
		heads = append(heads, parent[0])
	}
	if len(heads) > 0 {
		seqs = append(seqs, heads)
	}

	out := Chain{self}
	for {
		seqs = dropEmpty(seqs)
		if len(seqs) == 0 {
			return out, nil
		}

		candidate, ok := nextHead(seqs)
		if !ok {
			return nil, fmt.Errorf("%w: cannot order bases of %s (%s)", ErrInconsistentHierarchy, self.Key(), describeHeads(seqs))
		}
		if candidate.Key() == self.Key() {
			return nil, fmt.Errorf("%w: %s inherits from itself", ErrInconsistentHierarchy, self.Key())
		}

		out = append(out, candidate)
		for i, seq := range seqs {
			if seq[0].Key() == candidate.Key() {
				seqs[i] = seq[1:]
			}
		}
	}
}

func nextHead(seqs []Chain) (Descriptor, bool) {
	for _, seq := range seqs {
		head := seq[0]
		if !inAnyTail(head, seqs) {
			return head, true
		}
	}
	return Descriptor{}, false
}

func inAnyTail(d Descriptor, seqs []Chain) bool {
	key := d.Key()
	for _, seq := range seqs {
		for _, other := range seq[1:] {
			if other.Key() == key {
				return true
			}
		}
	}
	return false
}

func dropEmpty(seqs []Chain) []Chain {
	out := seqs[:0]
	for _, seq := range seqs {
		if len(seq) > 0 {
			out = append(out, seq)
		}
	}
	return out
}

func describeHeads(seqs []Chain) string {
	names := make([]string, 0, len(seqs))
	for _, seq := range seqs {
		names = append(names, seq[0].Key())
	}
	return strings.Join(names, ", ")
}
