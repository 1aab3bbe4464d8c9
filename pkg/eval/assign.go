package eval

import (
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/scope"
)

// assignModeFor maps an assignment Term's Kind to the scope.AssignMode
// it requests (spec §4.5 step 3's create/assign/create-or-assign trio).
func assignModeFor(kind ast.Kind) scope.AssignMode {
	switch kind {
	case ast.KindCreate:
		return scope.ModeCreateOnly
	case ast.KindAssign:
		return scope.ModeAssignOnly
	default: // KindCreateOrAssign
		return scope.ModeCreateOrAssign
	}
}

// VisitAssign implements `=`/`:=`/`::=` against a name, local, module,
// index, or field target (spec §4.5/§4.6), plus the `name = _` deletion
// form (spec §4.6: "assigning None to a bound name removes the binding").
func (e *Evaluator) VisitAssign(t *ast.Term) any {
	if t.Right.Kind == ast.KindName && t.Right.Text == "_" {
		return e.deleteBinding(t.Left)
	}

	v := e.eval(t.Right)
	mode := assignModeFor(t.Kind)

	switch t.Left.Kind {
	case ast.KindName:
		if err := e.Scopes.Bind(scope.PrefixBare, t.Left.Text, mode, v); err != nil {
			panic(withPos(err, t))
		}
		return v
	case ast.KindLocal:
		prefix, name := localPrefixAndName(t.Left.Text)
		if err := e.Scopes.Bind(prefix, name, mode, v); err != nil {
			panic(withPos(err, t))
		}
		return v
	case ast.KindModule:
		prefix, name, dotted := modulePrefixAndName(t.Left.Text)
		if dotted {
			panic(runtimeErr(t, "cannot assign to a dotted module path %q", t.Left.Text))
		}
		if err := e.Scopes.Bind(prefix, name, mode, v); err != nil {
			panic(withPos(err, t))
		}
		return v
	case ast.KindIndex:
		e.assignIndex(t.Left, v)
		return v
	case ast.KindField:
		e.assignField(t.Left, v)
		return v
	default:
		panic(runtimeErr(t, "invalid assignment target"))
	}
}

// deleteBinding implements the `_`-RHS deletion form, dispatching on the
// target's Kind to the frame scope.Delete would target.
func (e *Evaluator) deleteBinding(target *ast.Term) object.Object {
	switch target.Kind {
	case ast.KindName:
		return yesNo(e.Scopes.Delete(scope.PrefixBare, target.Text))
	case ast.KindLocal:
		prefix, name := localPrefixAndName(target.Text)
		return yesNo(e.Scopes.Delete(prefix, name))
	case ast.KindModule:
		prefix, name, dotted := modulePrefixAndName(target.Text)
		if dotted {
			panic(runtimeErr(target, "cannot delete a dotted module path %q", target.Text))
		}
		return yesNo(e.Scopes.Delete(prefix, name))
	case ast.KindField:
		d := e.dictOf(e.eval(target.Left), target)
		return yesNo(d.RemoveByName(target.Text))
	case ast.KindIndex:
		base := e.eval(target.Left)
		idx := e.eval(target.Right)
		d, ok := base.(*object.Dict)
		if !ok {
			if c, ok := base.(*object.Class); ok {
				d = c.Dict
			} else {
				panic(typeErr(target, "deletion by index requires a Dict or Class"))
			}
		}
		i := mustInt(idx, target)
		return yesNo(d.Remove(i))
	default:
		panic(runtimeErr(target, "invalid deletion target"))
	}
}

// dictOf extracts the *object.Dict backing a Dict or Class value, or
// panics with a TypeError naming t's position.
func (e *Evaluator) dictOf(v object.Object, t *ast.Term) *object.Dict {
	switch d := v.(type) {
	case *object.Dict:
		return d
	case *object.Class:
		return d.Dict
	default:
		panic(typeErr(t, "expected a Dict or Class, got %s", v.Kind()))
	}
}

// assignIndex implements `base[idx] = v` (spec §4.4's in-place-mutate
// rule for String/Tensor vs. replace-element for Dict/Class).
func (e *Evaluator) assignIndex(target *ast.Term, v object.Object) {
	base := e.eval(target.Left)
	idxObj := e.eval(target.Right)

	switch b := base.(type) {
	case *object.String:
		rv, ok := v.(*object.String)
		if !ok || len(rv.Runes) != 1 {
			panic(typeErr(target, "string index assignment requires a single-rune string value"))
		}
		i := mustInt(idxObj, target)
		if err := b.SetIndex(i, rv.Runes[0]); err != nil {
			panic(withPos(err, target))
		}
	case *object.Tensor:
		if len(b.Shape) > 1 {
			panic(runtimeErr(target, "in-place index assignment only supports rank<=1 tensors"))
		}
		rv, ok := v.(*object.Tensor)
		if !ok || !rv.IsScalar() {
			panic(typeErr(target, "tensor index assignment requires a scalar value"))
		}
		i := mustInt(idxObj, target)
		if i < 0 {
			i += len(b.Data)
		}
		if i < 0 || i >= len(b.Data) {
			panic(runtimeErr(target, "tensor index %d out of range", i))
		}
		b.Data[i] = rv.Data[0]
	case *object.Dict:
		e.assignDictIndex(target, b, idxObj, v)
	case *object.Class:
		e.assignDictIndex(target, b.Dict, idxObj, v)
	default:
		panic(typeErr(target, "value of kind %s is not indexable", base.Kind()))
	}
}

func (e *Evaluator) assignDictIndex(target *ast.Term, d *object.Dict, idxObj, v object.Object) {
	if s, ok := idxObj.(*object.String); ok {
		d.SetByName(s.Text(), v)
		return
	}
	i := mustInt(idxObj, target)
	if err := d.SetAt(i, v); err != nil {
		panic(withPos(err, target))
	}
}

// assignField implements `base.name = v` (Dict/Class named-entry
// replace-or-append, spec §4.4).
func (e *Evaluator) assignField(target *ast.Term, v object.Object) {
	base := e.eval(target.Left)
	d := e.dictOf(base, target)
	d.SetByName(target.Text, v)
}

// mustInt requires o to be a scalar numeric Tensor and returns its
// integer value, for indexing operations.
func mustInt(o object.Object, t *ast.Term) int {
	tn, ok := o.(*object.Tensor)
	if !ok || !tn.IsScalar() {
		panic(typeErr(t, "expected a scalar integer index, got %s", o.Kind()))
	}
	return int(tn.Data[0])
}
