package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func desc(name string) Descriptor {
	return Descriptor{Namespace: "support", Name: name, Kind: KindConcrete}
}

func mustLinearize(t *testing.T, self Descriptor, parents ...Chain) Chain {
	t.Helper()
	chain, err := Linearize(self, parents...)
	if err != nil {
		t.Fatalf("linearize %s: %v", self.Key(), err)
	}
	return chain
}

func TestLinearizeSingleInheritance(t *testing.T) {
	base := mustLinearize(t, desc("Foobar"))
	sub := mustLinearize(t, desc("SubFoobar"), base)

	want := []string{"support.SubFoobar", "support.Foobar"}
	if diff := cmp.Diff(want, sub.Keys()); diff != "" {
		t.Fatalf("chain mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearizeDiamond(t *testing.T) {
	a := mustLinearize(t, desc("A"))
	b := mustLinearize(t, desc("B"), a)
	c := mustLinearize(t, desc("C"), a)
	d := mustLinearize(t, desc("D"), b, c)

	want := []string{"support.D", "support.B", "support.C", "support.A"}
	if diff := cmp.Diff(want, d.Keys()); diff != "" {
		t.Fatalf("chain mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearizeKeepsMixinsInOrder(t *testing.T) {
	mixin := mustLinearize(t, Descriptor{Namespace: "layout", Name: "SlugMixin", Kind: KindMixin})
	base := mustLinearize(t, desc("Base"))
	model := mustLinearize(t, desc("Article"), mixin, base)

	want := []string{"support.Article", "layout.SlugMixin", "support.Base"}
	if diff := cmp.Diff(want, model.Keys()); diff != "" {
		t.Fatalf("chain mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"support.Article", "support.Base"}, model.Qualifying().Keys()); diff != "" {
		t.Fatalf("qualifying mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearizeRejectsInconsistentOrder(t *testing.T) {
	a := mustLinearize(t, desc("A"))
	b := mustLinearize(t, desc("B"))
	x := mustLinearize(t, desc("X"), a, b)
	y := mustLinearize(t, desc("Y"), b, a)

	_, err := Linearize(desc("Z"), x, y)
	if !errors.Is(err, ErrInconsistentHierarchy) {
		t.Fatalf("expected ErrInconsistentHierarchy, got %v", err)
	}
}

func TestLinearizeRejectsSelfInheritance(t *testing.T) {
	a := mustLinearize(t, desc("A"))
	_, err := Linearize(desc("A"), a)
	if !errors.Is(err, ErrInconsistentHierarchy) {
		t.Fatalf("expected ErrInconsistentHierarchy, got %v", err)
	}
}

func TestDescriptorDirLowercasesName(t *testing.T) {
	d := Descriptor{Namespace: "arm_layout_support", Name: "SubFoobar"}
	if got := d.Dir(); got != "arm_layout_support/subfoobar" {
		t.Fatalf("dir mismatch: got %q", got)
	}
	if !d.Qualifies() {
		t.Fatalf("expected empty kind to qualify")
	}
	if (Descriptor{Name: "Orphan"}).Qualifies() {
		t.Fatalf("expected descriptor without namespace to be skipped")
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"":         KindConcrete,
		"Abstract": KindAbstract,
		" proxy ":  KindProxy,
		"mixin":    KindMixin,
	}
	for raw, want := range cases {
		got, ok := ParseKind(raw)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseKind("virtual"); ok {
		t.Fatalf("expected unknown kind to be rejected")
	}
}
