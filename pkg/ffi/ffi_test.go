package ffi

import (
	"testing"

	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/types"
)

func TestRegistryLoadAndLookup(t *testing.T) {
	reg := NewRegistry()
	inv := NewReflectInvoker()
	m := reg.Load("libc", inv, inv)
	found, ok := reg.Lookup("libc")
	if !ok || found.ID != m.ID {
		t.Fatalf("expected to find the loaded module by name")
	}
}

func TestResolveCachesPointer(t *testing.T) {
	reg := NewRegistry()
	inv := NewReflectInvoker()
	inv.Register("add", func(a, b int64) int64 { return a + b })
	reg.Load("mathlib", inv, inv)

	fn := &object.NativeFunc{Mangled: "add", Module: "mathlib"}
	if err := Resolve(fn, reg); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if fn.Ptr == nil {
		t.Fatalf("expected Ptr to be populated")
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	reg := NewRegistry()
	inv := NewReflectInvoker()
	inv.Register("add", func(a, b int64) int64 { return a + b })
	reg.Load("mathlib", inv, inv)

	fn := &object.NativeFunc{Mangled: "add", Module: "mathlib"}
	if err := Resolve(fn, reg); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	a, err := Marshal(object.NewScalar(types.Int32, 2), types.Int64)
	if err != nil {
		t.Fatalf("Marshal a: %v", err)
	}
	b, err := Marshal(object.NewScalar(types.Int32, 3), types.Int64)
	if err != nil {
		t.Fatalf("Marshal b: %v", err)
	}

	raw, err := inv.Call(fn.Ptr, "cdecl", []any{a, b})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	result, err := Unmarshal(raw, types.Int64)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if result.(*object.Tensor).Data[0] != 5 {
		t.Fatalf("expected 5, got %v", result)
	}
}

func TestMarshalRejectsOutOfRangeNarrowing(t *testing.T) {
	if _, err := Marshal(object.NewScalar(types.Int32, 300), types.Int8); err == nil {
		t.Fatalf("expected narrowing overflow to be rejected")
	}
}

func TestUnloadInvalidatesLookup(t *testing.T) {
	reg := NewRegistry()
	inv := NewReflectInvoker()
	m := reg.Load("libc", inv, inv)
	reg.Unload(m.ID)
	if _, ok := reg.Lookup("libc"); ok {
		t.Fatalf("expected module to be gone after Unload")
	}
}
