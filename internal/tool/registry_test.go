package tool

import (
	"context"
	"testing"
)

func newTestRegistry() *Registry {
	mk := func(name string) Tool {
		return NewFunc(name, name+" tool", map[string]any{"type": "object"}, func(_ context.Context, _ map[string]any) (string, error) {
			return name, nil
		})
	}
	return NewRegistry(map[string]Tool{
		"id-b": mk("beta"),
		"id-a": mk("alpha"),
	})
}

func TestRegistryLookup(t *testing.T) {
	r := newTestRegistry()

	tl, ok := r.Lookup("id-a")
	if !ok {
		t.Fatal("expected id-a to resolve")
	}
	if tl.Name() != "alpha" {
		t.Errorf("expected alpha, got %s", tl.Name())
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Error("expected missing id to fail")
	}
}

func TestRegistryIDsSorted(t *testing.T) {
	r := newTestRegistry()
	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "id-a" || ids[1] != "id-b" {
		t.Errorf("expected sorted ids [id-a id-b], got %v", ids)
	}
}

func TestRegistryFindByName(t *testing.T) {
	r := newTestRegistry()

	id, ok := r.FindByName("beta")
	if !ok || id != "id-b" {
		t.Errorf("expected id-b, got %q (ok=%v)", id, ok)
	}
	if _, ok := r.FindByName("gamma"); ok {
		t.Error("expected unknown name to fail")
	}
}

func TestRegistryImmutableCopies(t *testing.T) {
	r := newTestRegistry()

	entries := r.Entries()
	delete(entries, "id-a")
	if _, ok := r.Lookup("id-a"); !ok {
		t.Error("mutating Entries copy must not affect the registry")
	}

	ids := r.IDs()
	ids[0] = "mutated"
	if got := r.IDs()[0]; got != "id-a" {
		t.Errorf("mutating IDs copy must not affect the registry, got %s", got)
	}
}

func TestFuncTool(t *testing.T) {
	f := NewFunc("echo", "Echo input", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
	}, func(_ context.Context, args map[string]any) (string, error) {
		v, _ := args["text"].(string)
		return v, nil
	})

	if f.Name() != "echo" || f.Description() != "Echo input" {
		t.Error("metadata mismatch")
	}
	out, err := f.Execute(context.Background(), map[string]any{"text": "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hi" {
		t.Errorf("expected hi, got %q", out)
	}
}
