package eval

import (
	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// mustScalar requires o to be a scalar Tensor and returns its float64
// value (used by Range bounds/step and tensor dimension expressions).
func mustScalar(o object.Object, t *ast.Term) float64 {
	tn, ok := o.(*object.Tensor)
	if !ok || !tn.IsScalar() {
		panic(typeErr(t, "expected a scalar numeric value, got %s", o.Kind()))
	}
	return tn.Data[0]
}

// VisitRange implements `a .. b` / `a .. b .. step` (spec §4.3); the
// optional step lives in Block[0], the one place a Range term stores it.
func (e *Evaluator) VisitRange(t *ast.Term) any {
	start := mustScalar(e.eval(t.Left), t)
	stop := mustScalar(e.eval(t.Right), t)
	var step *float64
	if len(t.Block) > 0 {
		s := mustScalar(e.eval(t.Block[0]), t)
		step = &s
	}
	r, err := object.NewRange(start, stop, step)
	if err != nil {
		panic(withPos(err, t))
	}
	return r
}

// VisitDict implements a bare `(name=value, ...)` literal (spec §3/§4.4).
func (e *Evaluator) VisitDict(t *ast.Term) any {
	d := &object.Dict{}
	for _, a := range t.Args {
		d.Append(object.Entry{Name: a.Name, Value: e.eval(a.Value)})
	}
	return d
}

// VisitTensor implements a `[e1, e2, ...]:Type` literal (spec §3/§4.4):
// rank is inferred from whether the elements are themselves same-shaped
// Tensors (building a higher-rank array) or scalars (rank 1).
func (e *Evaluator) VisitTensor(t *ast.Term) any {
	elems := make([]object.Object, len(t.Args))
	for i, a := range t.Args {
		elems[i] = e.eval(a.Value)
	}

	kind := types.Float64
	if t.Type != nil {
		if k, ok := types.Lookup(t.Type.Name); ok {
			kind = k
		}
	} else {
		kind = inferElemKind(elems, t)
	}

	if len(elems) == 0 {
		tn, err := object.NewTensor(kind, []int{0}, nil)
		if err != nil {
			panic(withPos(err, t))
		}
		return tn
	}

	if sub, ok := elems[0].(*object.Tensor); ok && !sub.IsScalar() {
		shape := append([]int{len(elems)}, sub.Shape...)
		var data []float64
		for _, el := range elems {
			et, ok := el.(*object.Tensor)
			if !ok || !intsEqual(et.Shape, sub.Shape) {
				panic(valueErr(t, "tensor literal elements must share the same shape"))
			}
			data = append(data, et.Data...)
		}
		tn, err := object.NewTensor(kind, shape, data)
		if err != nil {
			panic(withPos(err, t))
		}
		return tn
	}

	data := make([]float64, len(elems))
	for i, el := range elems {
		data[i] = scalarFloat(el, t)
	}
	tn, err := object.NewTensor(kind, []int{len(elems)}, data)
	if err != nil {
		panic(withPos(err, t))
	}
	return tn
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func inferElemKind(elems []object.Object, t *ast.Term) types.Kind {
	kind := types.Bool
	have := false
	for _, el := range elems {
		tn, ok := el.(*object.Tensor)
		if !ok {
			continue
		}
		if !have {
			kind = tn.ElemKind
			have = true
			continue
		}
		if p, ok := types.Promote(kind, tn.ElemKind); ok {
			kind = p
		}
	}
	if !have {
		return types.Float64
	}
	return kind
}

// VisitIterator implements the postfix iterator operators (spec §4.8):
// `?` builds a cursor, `!` advances one step, `!!` peeks, `??` resets,
// `!?`/`?!` materialize the rest.
func (e *Evaluator) VisitIterator(t *ast.Term) any {
	switch t.Text {
	case "?":
		seq, ok := object.SequenceOf(e.eval(t.Left))
		if !ok {
			panic(typeErr(t, "value cannot be iterated"))
		}
		return object.NewIterator(seq)
	case "!":
		return e.iteratorOf(t).Next()
	case "!!":
		return e.iteratorOf(t).Peek()
	case "??":
		e.iteratorOf(t).Reset()
		return object.None
	case "!?", "?!":
		return e.iteratorOf(t).Rest()
	default:
		panic(runtimeErr(t, "unsupported iterator operator %q", t.Text))
	}
}

func (e *Evaluator) iteratorOf(t *ast.Term) *object.Iterator {
	it, ok := e.eval(t.Left).(*object.Iterator)
	if !ok {
		panic(typeErr(t, "%q requires an Iterator", t.Text))
	}
	return it
}

// VisitFollow implements `[guard] --> body, ...` (spec §4.5's
// conditional-chain form): the first truthy guard's body is returned;
// `[_]` is the always-true wildcard guard pkg/parser never distinguishes
// from an ordinary KindName("_") term.
func (e *Evaluator) VisitFollow(t *ast.Term) any {
	for _, a := range t.Args {
		if a.Value.Kind == ast.KindName && a.Value.Text == "_" {
			return e.eval(a.Default)
		}
		if object.Truthy(e.eval(a.Value)) {
			return e.eval(a.Default)
		}
	}
	return object.None
}

// VisitRepeat implements `[guard] <-> body` (spec §4.5's loop form): a
// nil guard loops unconditionally; a BreakInterruption panic short-
// circuits with its own Value (or None).
func (e *Evaluator) VisitRepeat(t *ast.Term) (result any) {
	defer func() {
		if r := recover(); r != nil {
			brk, ok := r.(*diagnostic.BreakInterruption)
			if !ok {
				panic(r)
			}
			if v, ok := brk.Value.(object.Object); ok && v != nil {
				result = v
			} else {
				result = object.None
			}
		}
	}()
	var last object.Object = object.None
	for t.Left == nil || object.Truthy(e.eval(t.Left)) {
		last = e.eval(t.Right)
	}
	return last
}

// VisitReturn implements `--expr--`, unwinding to the nearest enclosing
// function call (spec §4.7 step 6).
func (e *Evaluator) VisitReturn(t *ast.Term) any {
	var v object.Object = object.None
	if t.Left != nil {
		v = e.eval(t.Left)
	}
	panic(&diagnostic.ReturnInterruption{Pos: pos(t), Value: v})
}

// VisitBreak implements `++expr++`, unwinding to the nearest enclosing
// loop (spec §4.5).
func (e *Evaluator) VisitBreak(t *ast.Term) any {
	var v object.Object = object.None
	if t.Left != nil {
		v = e.eval(t.Left)
	}
	panic(&diagnostic.BreakInterruption{Pos: pos(t), Value: v})
}

// VisitSource implements `{% raw %}` as a raw passthrough String: no
// spec scenario exercises a runtime value for a raw-source block, so
// this is a pragmatic placeholder rather than a template-evaluation
// engine (resolved Open Question).
func (e *Evaluator) VisitSource(t *ast.Term) any {
	return object.NewString(t.Text, false)
}

// VisitUnresolvedMacroUse reports a hard error: macro expansion runs
// before lexing/parsing (pkg/macro), so reaching eval means expansion
// was skipped or failed to recognize this use.
func (e *Evaluator) VisitUnresolvedMacroUse(t *ast.Term) any {
	panic(&diagnostic.RuntimeError{Pos: pos(t), Msg: "unresolved macro use \\" + t.Text})
}
