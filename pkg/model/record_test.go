package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-layout/pkg/model"
)

func TestRecord_ObjectSelectsSingleCapability(t *testing.T) {
	chain := model.Chain{{Namespace: "news", Name: "Article"}}

	cases := []struct {
		name   string
		record *model.Record
		check  func(t *testing.T, obj any)
	}{
		{
			name:   "templates",
			record: &model.Record{Chain: chain, Slug: "ignored", Templates: []string{"custom/{view}.html"}},
			check: func(t *testing.T, obj any) {
				provider, ok := obj.(model.PathProvider)
				if !ok {
					t.Fatalf("expected PathProvider, got %T", obj)
				}
				if diff := cmp.Diff([]string{"custom/full.html"}, provider.LayoutTemplateNames("full")); diff != "" {
					t.Fatalf("templates mismatch (-want +got):\n%s", diff)
				}
				if _, ok := obj.(model.Slugged); ok {
					t.Fatalf("provided record must not expose Slugged")
				}
			},
		},
		{
			name:   "type",
			record: &model.Record{Chain: chain, Type: &model.Record{Chain: chain, Slug: "picks"}},
			check: func(t *testing.T, obj any) {
				typed, ok := obj.(model.Typed)
				if !ok {
					t.Fatalf("expected Typed, got %T", obj)
				}
				slugged, ok := typed.LayoutType().(model.Slugged)
				if !ok || slugged.LayoutSlug() != "picks" {
					t.Fatalf("expected slugged type object, got %#v", typed.LayoutType())
				}
			},
		},
		{
			name:   "full slug",
			record: &model.Record{Chain: chain, FullSlug: "a/b", Slug: "b"},
			check: func(t *testing.T, obj any) {
				if _, ok := obj.(model.FullSlugged); !ok {
					t.Fatalf("expected FullSlugged, got %T", obj)
				}
				if _, ok := obj.(model.Slugged); ok {
					t.Fatalf("full slug record must not expose Slugged")
				}
			},
		},
		{
			name:   "slug",
			record: &model.Record{Chain: chain, Slug: "b"},
			check: func(t *testing.T, obj any) {
				if _, ok := obj.(model.Slugged); !ok {
					t.Fatalf("expected Slugged, got %T", obj)
				}
			},
		},
		{
			name:   "plain",
			record: &model.Record{Chain: chain, FullSlug: "/"},
			check: func(t *testing.T, obj any) {
				if _, ok := obj.(*model.Record); !ok {
					t.Fatalf("expected bare record, got %T", obj)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj := tc.record.Object()
			tc.check(t, obj)

			chainer, ok := obj.(model.Chainer)
			if !ok {
				t.Fatalf("expected every wrapper to expose the chain")
			}
			if diff := cmp.Diff(chain, chainer.LayoutChain()); diff != "" {
				t.Fatalf("chain mismatch (-want +got):\n%s", diff)
			}

			record, ok := model.Unwrap(obj)
			if !ok || record != tc.record {
				t.Fatalf("unwrap did not return the original record")
			}
		})
	}
}

func TestRecord_Get(t *testing.T) {
	rec := &model.Record{Fields: map[string]any{"title": "Hello"}}
	if got := rec.Get("title"); got != "Hello" {
		t.Fatalf("get mismatch: got %v", got)
	}
	if got := rec.Get("missing"); got != nil {
		t.Fatalf("expected nil for missing field, got %v", got)
	}
	var nilRecord *model.Record
	if nilRecord.Get("title") != nil || nilRecord.Object() != nil {
		t.Fatalf("nil record must be inert")
	}
}
