package object

import (
	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// asTensor widens o to a Tensor if it is a Fraction (spec §4.4: "mixing a
// Fraction with a Tensor promotes the tensor to Float64"), or returns it
// unchanged if already a Tensor.
func asTensor(o Object) (*Tensor, bool) {
	switch v := o.(type) {
	case *Tensor:
		return v, true
	case *Fraction:
		return NewScalar(types.Float64, v.Float64()), true
	default:
		return nil, false
	}
}

// Equal implements `==` across tensor kinds, fractions, and strings
// (spec §4.4).
func Equal(a, b Object) (bool, error) {
	if af, aok := a.(*Fraction); aok {
		if bf, bok := b.(*Fraction); bok {
			return af.Equals(bf), nil
		}
	}
	if as, aok := a.(*String); aok {
		if bs, bok := b.(*String); bok {
			return as.Equals(bs), nil
		}
	}
	at, aok := asTensor(a)
	bt, bok := asTensor(b)
	if aok && bok {
		return at.Equals(bt), nil
	}
	return false, &diagnostic.TypeError{Msg: "values not comparable with =="}
}

// AccurateEqual implements `===`: additionally requires identical
// current kinds (spec §4.4; see Tensor.AccurateEquals for the
// mixed-int-kind asymmetry this enforces).
func AccurateEqual(a, b Object) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, nil
	}
	switch av := a.(type) {
	case *Tensor:
		return av.AccurateEquals(b.(*Tensor)), nil
	case *Fraction:
		return av.Equals(b.(*Fraction)), nil
	case *String:
		return av.Equals(b.(*String)), nil
	default:
		return Equal(a, b)
	}
}

// Compare implements `<`,`<=`,`>`,`>=`,`<=>` across tensor kinds,
// fractions (by cross-multiply), and strings (lexicographic).
func Compare(a, b Object) (int, error) {
	if as, aok := a.(*String); aok {
		if bs, bok := b.(*String); bok {
			return as.Compare(bs), nil
		}
	}
	if af, aok := a.(*Fraction); aok {
		if bf, bok := b.(*Fraction); bok {
			return af.Compare(bf), nil
		}
	}
	at, aok := asTensor(a)
	bt, bok := asTensor(b)
	if aok && bok {
		return at.Compare(bt)
	}
	return 0, &diagnostic.TypeError{Msg: "values not orderable"}
}

// Concat implements `++`: strings/tensors/dicts concatenate per spec §4.4.
func Concat(a, b Object) (Object, error) {
	switch av := a.(type) {
	case *String:
		bs, ok := b.(*String)
		if !ok {
			return nil, &diagnostic.TypeError{Msg: "cannot concatenate string with non-string"}
		}
		return av.Concat(bs), nil
	case *Dict:
		bd, ok := b.(*Dict)
		if !ok {
			return nil, &diagnostic.TypeError{Msg: "cannot concatenate dict with non-dict"}
		}
		return av.Concat(bd), nil
	case *Tensor:
		bt, ok := asTensor(b)
		if !ok {
			return nil, &diagnostic.TypeError{Msg: "cannot concatenate tensor with non-numeric"}
		}
		return av.Concat(bt)
	default:
		return nil, &diagnostic.TypeError{Msg: "value does not support concatenation"}
	}
}
