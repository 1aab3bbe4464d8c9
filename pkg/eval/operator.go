package eval

import (
	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// VisitOperator implements every binary/unary operator term (spec §4.4):
// `||`/`&&` short-circuit before their operands are evaluated, the rest
// evaluate both sides first.
func (e *Evaluator) VisitOperator(t *ast.Term) any {
	switch t.Text {
	case "unary-", "unary+":
		return e.evalUnary(t)
	case "||":
		if object.Truthy(e.eval(t.Left)) {
			return yesNo(true)
		}
		return yesNo(object.Truthy(e.eval(t.Right)))
	case "&&":
		if !object.Truthy(e.eval(t.Left)) {
			return yesNo(false)
		}
		return yesNo(object.Truthy(e.eval(t.Right)))
	}

	switch t.Text {
	case "~", "!~", "~~", "!~~", "~~~":
		return e.evalTypePredicate(t)
	}

	left := e.eval(t.Left)
	right := e.eval(t.Right)

	switch t.Text {
	case "==":
		ok, err := object.Equal(left, right)
		if err != nil {
			panic(withPos(err, t))
		}
		return yesNo(ok)
	case "!=":
		ok, err := object.Equal(left, right)
		if err != nil {
			panic(withPos(err, t))
		}
		return yesNo(!ok)
	case "===":
		ok, err := object.AccurateEqual(left, right)
		if err != nil {
			panic(withPos(err, t))
		}
		return yesNo(ok)
	case "<", "<=", ">", ">=":
		cmp, err := object.Compare(left, right)
		if err != nil {
			panic(withPos(err, t))
		}
		return yesNo(compareHolds(t.Text, cmp))
	case "<=>":
		cmp, err := object.Compare(left, right)
		if err != nil {
			panic(withPos(err, t))
		}
		return object.NewScalar(types.Int8, float64(cmp))
	case "++":
		out, err := object.Concat(left, right)
		if err != nil {
			panic(withPos(err, t))
		}
		return out
	case "+", "-", "*", "/", "//", "%", "**":
		out, err := arith(t.Text, left, right)
		if err != nil {
			panic(withPos(err, t))
		}
		return out
	case "|", "^", "&", "<<", ">>":
		out, err := bitwiseOp(t.Text, left, right, t)
		if err != nil {
			panic(withPos(err, t))
		}
		return out
	default:
		panic(runtimeErr(t, "unsupported operator %q", t.Text))
	}
}

func compareHolds(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

// evalUnary implements unary `-`/`+` (spec §4.4): `+` is a no-op save for
// requiring a numeric-ish operand, `-` negates.
func (e *Evaluator) evalUnary(t *ast.Term) object.Object {
	v := e.eval(t.Left)
	switch vv := v.(type) {
	case *object.Fraction:
		if t.Text == "unary-" {
			return vv.Neg()
		}
		return vv
	default:
		tn, ok := asTensorOperand(v)
		if !ok {
			panic(typeErr(t, "unary %q requires a numeric operand, got %s", t.Text[len("unary"):], v.Kind()))
		}
		if t.Text == "unary-" {
			return tn.Neg()
		}
		return tn
	}
}

// asTensorOperand widens a Fraction to a scalar Float64 Tensor (spec
// §4.4: "mixing a Fraction with a Tensor promotes the tensor to
// Float64"), or returns a Tensor unchanged.
func asTensorOperand(o object.Object) (*object.Tensor, bool) {
	switch v := o.(type) {
	case *object.Tensor:
		return v, true
	case *object.Fraction:
		return object.NewScalar(types.Float64, v.Float64()), true
	default:
		return nil, false
	}
}

// arith implements `+`,`-`,`*`,`/`,`//`,`%`,`**` (spec §4.4): two
// Fractions take the exact big.Int path for the four operators that have
// one; everything else (including `//`,`%`,`**` on Fractions, which the
// type has no exact equivalent for) widens through the Tensor path.
func arith(op string, l, r object.Object) (object.Object, error) {
	lf, lok := l.(*object.Fraction)
	rf, rok := r.(*object.Fraction)
	if lok && rok {
		if out, ok, err := fractionArith(op, lf, rf); ok {
			return out, err
		}
	}

	lt, lok := asTensorOperand(l)
	rt, rok := asTensorOperand(r)
	if !lok || !rok {
		bad := l
		if lok {
			bad = r
		}
		return nil, &diagnostic.TypeError{Msg: "operator " + op + " requires numeric operands, got " + bad.Kind().String()}
	}

	switch op {
	case "+":
		return lt.Add(rt)
	case "-":
		return lt.Sub(rt)
	case "*":
		return lt.Mul(rt)
	case "/":
		return lt.Div(rt)
	case "//":
		return lt.FloorDiv(rt)
	case "%":
		return lt.Mod(rt)
	case "**":
		return lt.Pow(rt)
	default:
		return nil, &diagnostic.RuntimeError{Msg: "unsupported arithmetic operator " + op}
	}
}

// fractionArith handles the operators Fraction has an exact
// implementation for; its second return reports whether op was one of
// them, so arith can fall through to the Tensor-widening path for the
// rest (`//`, `%`, `**`).
func fractionArith(op string, l, r *object.Fraction) (object.Object, bool, error) {
	switch op {
	case "+":
		out, err := l.Add(r)
		return out, true, err
	case "-":
		out, err := l.Sub(r)
		return out, true, err
	case "*":
		out, err := l.Mul(r)
		return out, true, err
	case "/":
		out, err := l.Div(r)
		return out, true, err
	default:
		return nil, false, nil
	}
}

// bitwiseOp implements `|`,`^`,`&`,`<<`,`>>` (spec §4.4): scalar integer
// operands only, result re-widened via types.Promote.
func bitwiseOp(op string, l, r object.Object, t *ast.Term) (object.Object, error) {
	lt, lok := asTensorOperand(l)
	rt, rok := asTensorOperand(r)
	if !lok || !rok || !lt.IsScalar() || !rt.IsScalar() {
		return nil, &diagnostic.TypeError{Msg: "operator " + op + " requires scalar integer operands"}
	}
	kind, ok := types.Promote(lt.ElemKind, rt.ElemKind)
	if !ok {
		return nil, &diagnostic.TypeError{Msg: "incompatible operand kinds for " + op}
	}
	a := int64(lt.Data[0])
	b := int64(rt.Data[0])
	var out int64
	switch op {
	case "|":
		out = a | b
	case "^":
		out = a ^ b
	case "&":
		out = a & b
	case "<<":
		out = a << uint(b)
	case ">>":
		out = a >> uint(b)
	default:
		return nil, &diagnostic.RuntimeError{Msg: "unsupported bitwise operator " + op}
	}
	return object.NewScalar(kind, float64(out)), nil
}

// evalTypePredicate implements `~`,`!~`,`~~`,`!~~`,`~~~` (spec §4.4): the
// first two test against a Type value (e.g. `x ~ :Int32`), `~~`/`!~~`
// test structural compatibility against a Dict-of-Types shape (e.g.
// `x ~~ (a=:Int32, b=:Float64)`), and `~~~` directly compares two
// evaluated values.
func (e *Evaluator) evalTypePredicate(t *ast.Term) object.Object {
	left := e.eval(t.Left)

	switch t.Text {
	case "~", "!~":
		typ := e.resolveTypeOperand(t.Right, t)
		result := object.Is(left, typ)
		if t.Text == "!~" {
			result = !result
		}
		return yesNo(result)
	case "~~", "!~~":
		shape := e.dictToShape(t.Right, t)
		result := object.StructurallyCompatible(left, shape)
		if t.Text == "!~~" {
			result = !result
		}
		return yesNo(result)
	case "~~~":
		right := e.eval(t.Right)
		return yesNo(object.StrictlyCompatible(left, right))
	default:
		panic(runtimeErr(t, "unsupported type predicate %q", t.Text))
	}
}

// resolveTypeOperand evaluates the right-hand side of `~`/`!~` as a Type
// value: a bare `:Name` term is its own Type literal, but any other
// expression (e.g. a name bound to a Type) is evaluated and must itself
// produce one.
func (e *Evaluator) resolveTypeOperand(rhs *ast.Term, t *ast.Term) *object.Type {
	if rhs.Kind == ast.KindType {
		return e.buildType(rhs)
	}
	v := e.eval(rhs)
	typ, ok := v.(*object.Type)
	if !ok {
		panic(typeErr(t, "right-hand side of %q must be a Type value, got %s", t.Text, v.Kind()))
	}
	return typ
}

// dictToShape evaluates the right-hand side of `~~`/`!~~` as a Dict whose
// entries each name a field and a Type (spec §4.4's structural
// compatibility form), building the map object.StructurallyCompatible
// expects.
func (e *Evaluator) dictToShape(rhs *ast.Term, t *ast.Term) map[string]*object.Type {
	v := e.eval(rhs)
	d, ok := v.(*object.Dict)
	if !ok {
		panic(typeErr(t, "right-hand side of %q must be a Dict of field types, got %s", t.Text, v.Kind()))
	}
	shape := make(map[string]*object.Type, len(d.Entries))
	for _, ent := range d.Entries {
		typ, ok := ent.Value.(*object.Type)
		if !ok {
			panic(typeErr(t, "field %q in %q shape must be a Type value", ent.Name, t.Text))
		}
		shape[ent.Name] = typ
	}
	return shape
}
