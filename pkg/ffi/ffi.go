// Package ffi implements the prototype-to-ABI-descriptor bridge plus a
// module registry. The registry's shape — small struct, map of handles,
// explicit error returns — mirrors internal/cache.Cache's persisted
// handle-keyed map, extended here with a uuid.UUID handle per loaded
// module. A real libffi trampoline is outside this core's scope; this
// package ships the two contracts (SymbolResolver, NativeInvoker) plus
// an in-memory reflect-based test double exercising the full
// marshal/unmarshal path without cgo.
package ffi

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// SymbolResolver looks up a foreign symbol by name and optional module,
// returning an opaque handle (spec §4.10's "symbol_lookup(name, module)").
// The concrete pointer representation is left to the embedder: it is
// passed back unmodified as NativeFunc.Ptr and as the first argument to
// NativeInvoker.Call.
type SymbolResolver interface {
	Resolve(name, module string) (any, error)
}

// NativeInvoker performs the libffi-style trampoline call: given a
// resolved symbol handle, an ABI tag, and marshaled arguments, it invokes
// the foreign function and returns the raw result (spec §4.7 step 4).
type NativeInvoker interface {
	Call(symbol any, abi string, args []any) (any, error)
}

// Module is one loaded native library, keyed by a process-unique handle.
type Module struct {
	ID       uuid.UUID
	Name     string
	Resolver SymbolResolver
	Invoker  NativeInvoker
}

// Registry is the process-wide table of loaded modules.
type Registry struct {
	modules map[uuid.UUID]*Module
	byName  map[string]uuid.UUID
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[uuid.UUID]*Module), byName: make(map[string]uuid.UUID)}
}

// Load registers a module under name, minting a fresh handle.
func (r *Registry) Load(name string, resolver SymbolResolver, invoker NativeInvoker) *Module {
	m := &Module{ID: uuid.New(), Name: name, Resolver: resolver, Invoker: invoker}
	r.modules[m.ID] = m
	r.byName[name] = m.ID
	return m
}

// Lookup finds a loaded module by name.
func (r *Registry) Lookup(name string) (*Module, bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	m, ok := r.modules[id]
	return m, ok
}

// Unload invalidates a module by handle; every NativeFunc or
// pointer-backed tensor it produced becomes unusable (spec §5: "unloading
// a module invalidates every NativeFunc and pointer-backed tensor").
func (r *Registry) Unload(id uuid.UUID) {
	if m, ok := r.modules[id]; ok {
		delete(r.byName, m.Name)
		delete(r.modules, id)
	}
}

// Resolve implements spec §4.10's resolution rule: if ptr is already
// set, reuse it; otherwise call the module's SymbolResolver and cache
// the result onto fn.Ptr.
func Resolve(fn *object.NativeFunc, reg *Registry) error {
	if fn.Ptr != nil {
		return nil
	}
	m, ok := reg.Lookup(fn.Module)
	if !ok {
		return &diagnostic.RuntimeError{Msg: fmt.Sprintf("native module %q not loaded", fn.Module)}
	}
	ptr, err := m.Resolver.Resolve(fn.Mangled, fn.Module)
	if err != nil {
		return &diagnostic.RuntimeError{Msg: fmt.Sprintf("symbol %q not found in module %q: %v", fn.Mangled, fn.Module, err)}
	}
	fn.Ptr = ptr
	return nil
}

// Marshal converts a bound Object argument to the Go value its prototype
// kind expects for the invoker (spec §4.7 step 4: "integer widenings
// allowed; narrowing only when value fits; strings -> char pointer").
func Marshal(arg object.Object, kind types.Kind) (any, error) {
	switch kind {
	case types.Bool, types.Int8, types.Int16, types.Int32, types.Int64:
		t, ok := arg.(*object.Tensor)
		if !ok || !t.IsScalar() {
			return nil, &diagnostic.TypeError{Msg: "expected scalar integer argument"}
		}
		v := int64(t.Data[0])
		if !types.Fits(kind, v) && kind != types.Int64 {
			return nil, &diagnostic.ValueError{Msg: fmt.Sprintf("value %d does not fit %s", v, kind)}
		}
		return v, nil
	case types.Float32, types.Float64:
		t, ok := arg.(*object.Tensor)
		if !ok || !t.IsScalar() {
			return nil, &diagnostic.TypeError{Msg: "expected scalar float argument"}
		}
		return t.Data[0], nil
	case types.StrChar, types.StrWide:
		s, ok := arg.(*object.String)
		if !ok {
			return nil, &diagnostic.TypeError{Msg: "expected string argument"}
		}
		return s.Text(), nil
	default:
		return nil, &diagnostic.TypeError{Msg: fmt.Sprintf("unsupported FFI argument kind %s", kind)}
	}
}

// Unmarshal converts a raw invoker result back to an Object of kind.
func Unmarshal(raw any, kind types.Kind) (object.Object, error) {
	switch kind {
	case types.Bool, types.Int8, types.Int16, types.Int32, types.Int64:
		v, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return object.NewScalar(kind, float64(v)), nil
	case types.Float32, types.Float64:
		v, err := toFloat64(raw)
		if err != nil {
			return nil, err
		}
		return object.NewScalar(kind, v), nil
	case types.StrChar, types.StrWide:
		s, ok := raw.(string)
		if !ok {
			return nil, &diagnostic.TypeError{Msg: "expected string return value"}
		}
		return object.NewString(s, kind == types.StrWide), nil
	default:
		return nil, &diagnostic.TypeError{Msg: fmt.Sprintf("unsupported FFI return kind %s", kind)}
	}
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	default:
		return 0, &diagnostic.TypeError{Msg: "expected integer-shaped return value"}
	}
}

func toFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	default:
		return 0, &diagnostic.TypeError{Msg: "expected float-shaped return value"}
	}
}

// ReflectInvoker is an in-memory NativeInvoker test double backed by
// reflect.Value.Call against registered Go functions, used in place of a
// real libffi trampoline.
type ReflectInvoker struct {
	fns map[string]reflect.Value
}

// NewReflectInvoker builds an empty ReflectInvoker.
func NewReflectInvoker() *ReflectInvoker {
	return &ReflectInvoker{fns: make(map[string]reflect.Value)}
}

// Register binds name to a Go function fn, retrievable later as a
// symbol handle via ReflectInvoker.Resolve.
func (r *ReflectInvoker) Register(name string, fn any) {
	r.fns[name] = reflect.ValueOf(fn)
}

// Resolve implements SymbolResolver by returning the registered name
// itself as the symbol handle.
func (r *ReflectInvoker) Resolve(name, module string) (any, error) {
	if _, ok := r.fns[name]; !ok {
		return nil, &diagnostic.RuntimeError{Msg: fmt.Sprintf("no Go function registered for %q", name)}
	}
	return name, nil
}

// Call implements NativeInvoker by reflecting the registered function.
func (r *ReflectInvoker) Call(symbol any, abi string, args []any) (any, error) {
	name, ok := symbol.(string)
	if !ok {
		return nil, &diagnostic.RuntimeError{Msg: "invalid symbol handle"}
	}
	fn, ok := r.fns[name]
	if !ok {
		return nil, &diagnostic.RuntimeError{Msg: fmt.Sprintf("no Go function registered for %q", name)}
	}
	in := make([]reflect.Value, 0, len(args))
	ft := fn.Type()
	for i, a := range args {
		if i >= ft.NumIn() {
			break // variadic tail beyond the declared signature
		}
		in = append(in, reflect.ValueOf(a).Convert(ft.In(i)))
	}
	out := fn.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
