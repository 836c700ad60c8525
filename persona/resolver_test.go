package persona

import (
	"errors"
	"testing"
)

var _ Resolver = (*StoreResolver)(nil)
var _ Resolver = Func(nil)

func TestStoreResolver_ResolvesRegisteredName(t *testing.T) {
	store := NewInMemoryStore()
	if err := store.Register(Definition{Name: "Summarizer", Prompt: "Summarize: {text}"}); err != nil {
		t.Fatal(err)
	}

	r := NewStoreResolver(store)
	def, err := r.Resolve("Summarizer")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if def.Name != "Summarizer" || def.Prompt != "Summarize: {text}" {
		t.Fatalf("unexpected definition: %+v", def)
	}
}

func TestStoreResolver_NotFound(t *testing.T) {
	r := NewStoreResolver(NewInMemoryStore())

	_, err := r.Resolve("Ghost")
	if err == nil {
		t.Fatal("expected resolution failure for unregistered name")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "Ghost" {
		t.Fatalf("expected NotFoundError carrying the name, got %v", err)
	}
}

func TestStoreResolver_NilStore(t *testing.T) {
	r := NewStoreResolver(nil)
	if _, err := r.Resolve("Anything"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("nil store should resolve nothing, got %v", err)
	}
}

func TestStoreResolver_StableWithinRun(t *testing.T) {
	store := NewInMemoryStore()
	if err := store.Register(Definition{Name: "A", Prompt: "p"}); err != nil {
		t.Fatal(err)
	}
	r := NewStoreResolver(store)

	first, err := r.Resolve("A")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve("A")
	if err != nil {
		t.Fatal(err)
	}
	if first.Name != second.Name || first.Prompt != second.Prompt {
		t.Fatalf("same name should keep resolving to the same definition: %+v vs %+v", first, second)
	}
}

func TestFunc_AdaptsOrdinaryFunctions(t *testing.T) {
	r := Func(func(name string) (Definition, error) {
		if name != "Dynamic" {
			return Definition{}, &NotFoundError{Name: name}
		}
		return Definition{Name: name, Prompt: "generated"}, nil
	})

	def, err := r.Resolve("Dynamic")
	if err != nil || def.Prompt != "generated" {
		t.Fatalf("func resolver failed: %+v %v", def, err)
	}
	if _, err := r.Resolve("Other"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from func resolver, got %v", err)
	}
}

func TestStatic_BuildsResolver(t *testing.T) {
	r := Static(Definition{Name: "Plain", Prompt: ""})

	def, err := r.Resolve("Plain")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if def.Prompt != "" {
		t.Fatalf("empty prompt should round-trip, got %q", def.Prompt)
	}
}
