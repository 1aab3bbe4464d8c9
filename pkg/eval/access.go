package eval

import (
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
)

// VisitIndex implements `base[idx]` read access (spec §4.4): a Range
// index slices a String; otherwise the index is a scalar integer or a
// String name, per the base's kind.
func (e *Evaluator) VisitIndex(t *ast.Term) any {
	base := e.eval(t.Left)
	idx := e.eval(t.Right)

	if rng, ok := idx.(*object.Range); ok {
		s, ok := base.(*object.String)
		if !ok {
			panic(typeErr(t, "range-slicing is only supported on strings"))
		}
		return s.Slice(int(rng.Start), int(rng.Stop), int(rng.Step))
	}

	switch b := base.(type) {
	case *object.String:
		v, err := b.Index(mustInt(idx, t))
		if err != nil {
			panic(withPos(err, t))
		}
		return v
	case *object.Tensor:
		v, err := b.Index(mustInt(idx, t))
		if err != nil {
			panic(withPos(err, t))
		}
		return v
	case *object.Dict:
		return indexDict(t, b, idx)
	case *object.Class:
		return indexDict(t, b.Dict, idx)
	default:
		panic(typeErr(t, "value of kind %s is not indexable", base.Kind()))
	}
}

func indexDict(t *ast.Term, d *object.Dict, idx object.Object) object.Object {
	if s, ok := idx.(*object.String); ok {
		v, ok := d.ByName(s.Text())
		if !ok {
			panic(runtimeErr(t, "no entry named %q", s.Text()))
		}
		return v
	}
	v, err := d.At(mustInt(idx, t))
	if err != nil {
		panic(withPos(err, t))
	}
	return v
}

// VisitField implements `base.name` read access (spec §4.4): Dict and
// Class named lookup.
func (e *Evaluator) VisitField(t *ast.Term) any {
	base := e.eval(t.Left)
	d := e.dictOf(base, t)
	v, ok := d.ByName(t.Text)
	if !ok {
		panic(runtimeErr(t, "no entry named %q", t.Text))
	}
	return v
}
