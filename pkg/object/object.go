// Package object implements the runtime value model: a Go interface with
// one concrete struct per variant, rather than a single struct with many
// optional pointer fields where only one is populated per value. Object
// needs behavior (arithmetic, comparison, printing) attached per variant
// rather than just a parse shape, so an interface with concrete
// implementations fits better here than a single struct.
package object

import (
	"fmt"

	"github.com/gaarutyunov/newlang/pkg/types"
)

// Object is the contract every runtime value satisfies.
type Object interface {
	// Kind returns the object's current kind (spec I1).
	Kind() types.Kind
	// String renders the deterministic textual form (spec §4.4).
	String() string
}

// Typed is implemented by objects that carry a fixed kind distinct from
// their current kind (spec I1: "optional fixed kind").
type Typed interface {
	Object
	FixedKind() (types.Kind, bool)
}

// singleton is the shared implementation for None, Ellipsis, and
// IteratorEnd: marker variants with no payload.
type singleton struct {
	kind types.Kind
	text string
}

func (s singleton) Kind() types.Kind { return s.kind }
func (s singleton) String() string   { return s.text }

// None is the sole value of kind None, printed as "_" per spec §4.4.
var None Object = singleton{kind: types.None, text: "_"}

// Ellipsis is the sole value of kind Ellipsis, the "..." shape filler.
var Ellipsis Object = singleton{kind: types.Ellipsis, text: "..."}

// IteratorEndValue is the sole value of kind IteratorEnd, yielded by an
// exhausted Iterator (spec §4.8).
var IteratorEndValue Object = singleton{kind: types.IteratorEnd, text: "IteratorEnd"}

// IsNone reports whether o is the None singleton.
func IsNone(o Object) bool {
	s, ok := o.(singleton)
	return ok && s.kind == types.None
}

// Error wraps a diagnostic message as a first-class Object, the value a
// try-block (`{* *}`) yields when it catches a raised error (spec §4.5).
type Error struct {
	Message string
}

func (e *Error) Kind() types.Kind { return types.Error }
func (e *Error) String() string   { return fmt.Sprintf("Error(%q)", e.Message) }

// Truthy implements the boolean-aggregation rule pure blocks rely on
// (spec §4.5: "every statement's value is truthy"). Bool false, numeric
// zero, the empty string/dict/tensor, and None are falsy; everything
// else, including Error, is truthy.
func Truthy(o Object) bool {
	switch v := o.(type) {
	case *Tensor:
		if len(v.Shape) == 0 && len(v.Data) == 1 {
			return scalarTruthy(v.Data[0])
		}
		return len(v.Data) != 0
	case *Fraction:
		return v.Num.Sign() != 0
	case *String:
		return len(v.Runes) != 0
	case *Dict:
		return len(v.Entries) != 0
	default:
		if IsNone(o) {
			return false
		}
		return true
	}
}

func scalarTruthy(v float64) bool { return v != 0 }
