package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/ffi"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/scope"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// varargsName is the reserved internal binding a variadic EvalFunc's
// collected trailing actuals are visible under inside its body. The
// hand-written grammar gives a variadic formal no name of its own (spec
// §4.7's `...` marker is purely positional), so there is no user-facing
// name to bind the tail to; this is a resolved Open Question, not a
// spec-named identifier.
const varargsName = "__varargs__"

// VisitFunction builds an EvalFunc value and binds it under its own name
// (spec §4.7: function definitions always create-or-assign, regardless
// of which assign-token family introduced them — see pkg/parser's own
// simplification note in assignment.go). Closure is the Evaluator's own
// *scope.Scopes: NewLang's frame model is dynamically scoped process-
// wide state, not a lexical snapshot, so there is nothing to capture
// beyond a reference to that single shared chain.
func (e *Evaluator) VisitFunction(t *ast.Term) any {
	variant := object.VariantPlain
	if t.Kind == ast.KindTransparent {
		variant = object.VariantTransparent
	}
	fn := &object.EvalFunc{Prototype: t, Body: t.Left, Closure: e.Scopes, Variant: variant, Name: t.Text}
	if t.Text != "" {
		if err := e.Scopes.Bind(scope.PrefixBare, t.Text, scope.ModeCreateOrAssign, fn); err != nil {
			panic(withPos(err, t))
		}
	}
	return fn
}

// VisitCall implements `callee(args...)` (spec §4.7): a postfix
// iterator-suffix callee ("?"/"!" immediately followed by parens) is a
// filter-iterator construction or an n-ary Next, handled before the
// callee is evaluated as an ordinary expression.
func (e *Evaluator) VisitCall(t *ast.Term) any {
	if t.Left.Kind == ast.KindIterator {
		switch t.Left.Text {
		case "?":
			return e.filterIteratorCall(t)
		case "!":
			return e.nextNCall(t)
		}
	}

	callee := e.eval(t.Left)
	switch fn := callee.(type) {
	case *object.NativeFunc:
		return e.callNative(t, fn)
	case *object.EvalFunc:
		return e.callEvalFunc(t, fn)
	case *object.Type:
		return e.comprehend(fn, t.Args, t)
	default:
		panic(typeErr(t, "value of kind %s is not callable", callee.Kind()))
	}
}

// filterIteratorCall implements `seq?(pattern)` (spec §4.8): builds a
// name-filtering Iterator over the sequence the "?" operator's own Left
// evaluates to.
func (e *Evaluator) filterIteratorCall(t *ast.Term) object.Object {
	seqObj := e.eval(t.Left.Left)
	seq, ok := object.SequenceOf(seqObj)
	if !ok {
		panic(typeErr(t, "value of kind %s cannot be iterated", seqObj.Kind()))
	}
	if len(t.Args) != 1 {
		panic(runtimeErr(t, "filter iterator requires exactly one pattern argument"))
	}
	pat := e.eval(t.Args[0].Value)
	ps, ok := pat.(*object.String)
	if !ok {
		panic(typeErr(t, "filter iterator pattern must be a string"))
	}
	it, err := object.NewFilterIterator(seq, ps.Text())
	if err != nil {
		panic(withPos(err, t))
	}
	return it
}

// nextNCall implements `it!(n)` (spec §4.8's bulk-advance form).
func (e *Evaluator) nextNCall(t *ast.Term) object.Object {
	base := e.eval(t.Left.Left)
	it, ok := base.(*object.Iterator)
	if !ok {
		panic(typeErr(t, "!(n) requires an Iterator"))
	}
	if len(t.Args) != 1 {
		panic(runtimeErr(t, "!(n) requires exactly one integer argument"))
	}
	n := e.eval(t.Args[0].Value)
	return it.NextN(mustInt(n, t))
}

// boundArgs resolves a call's actual arguments against fn's formal
// parameter list (spec §4.7 step 3): named actuals match by name,
// positional actuals fill the remaining formals in order, unfilled
// formals fall back to their own Default expression evaluated lazily,
// and — when fn.Variadic — any positional actuals beyond the named
// formals are collected into a Dict bound under varargsName.
func (e *Evaluator) boundArgs(t *ast.Term, fn *ast.Term) map[string]object.Object {
	bound := make(map[string]object.Object, len(fn.Args))
	filled := make(map[string]bool, len(fn.Args))

	var positional []object.Object
	for _, a := range t.Args {
		if a.Name != "" {
			idx := formalIndex(fn.Args, a.Name)
			if idx < 0 {
				panic(runtimeErr(t, "unknown parameter %q", a.Name))
			}
			bound[a.Name] = e.eval(a.Value)
			filled[a.Name] = true
			continue
		}
		positional = append(positional, e.eval(a.Value))
	}

	pi := 0
	for _, f := range fn.Args {
		if filled[f.Name] {
			continue
		}
		if pi < len(positional) {
			bound[f.Name] = positional[pi]
			pi++
			filled[f.Name] = true
			continue
		}
		if f.Default != nil && f.Default.Kind != ast.KindEllipsis {
			bound[f.Name] = e.eval(f.Default)
			filled[f.Name] = true
		}
	}

	for _, f := range fn.Args {
		if !filled[f.Name] {
			panic(runtimeErr(t, "missing required argument %q", f.Name))
		}
	}

	if fn.Variadic {
		tail := &object.Dict{}
		for ; pi < len(positional); pi++ {
			tail.Append(object.Entry{Value: positional[pi]})
		}
		bound[varargsName] = tail
	} else if pi < len(positional) {
		panic(runtimeErr(t, "too many arguments: expected %d, got %d", len(fn.Args), len(positional)))
	}

	return bound
}

func formalIndex(args []ast.Arg, name string) int {
	for i, a := range args {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// callEvalFunc implements calling a user-defined function (spec §4.7):
// push a fresh local frame, bind the resolved arguments into it, run the
// body, and pop the frame on any exit (normal return, Return
// interruption, or an escaping error).
func (e *Evaluator) callEvalFunc(t *ast.Term, fn *object.EvalFunc) object.Object {
	bound := e.boundArgs(t, fn.Prototype)

	var key string
	if fn.Pure() && e.Memoize {
		key = memoKey(fn.Name, bound)
		if v, ok := e.memo[key]; ok {
			return v
		}
	}

	e.Scopes.PushLocal()
	defer e.Scopes.PopLocal()
	for name, v := range bound {
		if err := e.Scopes.Bind(scope.PrefixBare, name, scope.ModeCreateOrAssign, v); err != nil {
			panic(withPos(err, t))
		}
	}

	result := e.runFunctionBody(fn)
	if key != "" {
		e.memo[key] = result
	}
	return result
}

// runFunctionBody evaluates fn's body, recovering a ReturnInterruption
// panic raised by a nested VisitReturn (spec §4.7 step 6: "Return
// unwinds to the nearest enclosing function call").
func (e *Evaluator) runFunctionBody(fn *object.EvalFunc) (result object.Object) {
	defer func() {
		if r := recover(); r != nil {
			ret, ok := r.(*diagnostic.ReturnInterruption)
			if !ok {
				panic(r)
			}
			if v, ok := ret.Value.(object.Object); ok && v != nil {
				result = v
			} else {
				result = object.None
			}
		}
	}()
	return e.eval(fn.Body)
}

// memoKey builds a stable cache key from a pure function's name and its
// bound arguments' canonical printed form (resolved Open Question 4).
func memoKey(name string, bound map[string]object.Object) string {
	names := make([]string, 0, len(bound))
	for n := range bound {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(name)
	for _, n := range names {
		fmt.Fprintf(&b, "|%s=%s", n, bound[n].String())
	}
	return b.String()
}

// callNative implements calling a NativeFunc (spec §4.7 step 4/§4.10):
// resolve the symbol, marshal each actual per its prototype's declared
// kind (or the actual's own runtime kind when no prototype parameter
// exists, spec's variadic-tail rule generalized to the zero-prototype
// case), invoke, and unmarshal the result.
func (e *Evaluator) callNative(t *ast.Term, fn *object.NativeFunc) object.Object {
	if err := ffi.Resolve(fn, e.Natives); err != nil {
		panic(withPos(err, t))
	}
	module, ok := e.Natives.Lookup(fn.Module)
	if !ok {
		panic(runtimeErr(t, "native module %q not loaded", fn.Module))
	}

	marshaled := make([]any, 0, len(t.Args))
	for i, a := range t.Args {
		v := e.eval(a.Value)
		kind := v.Kind()
		if fn.Prototype != nil && i < len(fn.Prototype.Args) {
			if pt := fn.Prototype.Args[i].Value; pt != nil && pt.Type != nil {
				if k, ok := types.Lookup(pt.Type.Name); ok {
					kind = k
				}
			}
		}
		m, err := ffi.Marshal(v, kind)
		if err != nil {
			panic(withPos(err, t))
		}
		marshaled = append(marshaled, m)
	}

	raw, err := module.Invoker.Call(fn.Ptr, fn.ABI, marshaled)
	if err != nil {
		panic(runtimeErr(t, "native call to %q failed: %v", fn.Mangled, err))
	}

	retKind := types.Int64
	if fn.Prototype != nil && fn.Prototype.Type != nil {
		if k, ok := types.Lookup(fn.Prototype.Type.Name); ok {
			retKind = k
		}
	}
	result, err := ffi.Unmarshal(raw, retKind)
	if err != nil {
		panic(withPos(err, t))
	}
	return result
}
