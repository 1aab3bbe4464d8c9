package object

import (
	"fmt"

	"github.com/gaarutyunov/newlang/pkg/types"
)

// Type is a first-class type object: a fixed Kind plus an optional
// dimension list, callable to produce a converted/constructed value via
// the comprehension path (spec §3, §4.9).
type Type struct {
	TypeKind types.Kind
	ClassName string // set when TypeKind == types.Class
	Dims      []int  // tensor dimensions; nil for non-tensor types
}

func (t *Type) Kind() types.Kind { return types.TypeKind }

func (t *Type) String() string {
	name := t.TypeKind.String()
	if t.TypeKind == types.Class {
		name = t.ClassName
	}
	if len(t.Dims) == 0 {
		return name
	}
	out := name + "["
	for i, d := range t.Dims {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", d)
	}
	return out + "]"
}

// Is implements the `~` predicate: a's current kind is t or a subtype of
// t, or (for a Class instance) t names the instance's class or an
// ancestor (spec §4.4).
func Is(a Object, t *Type) bool {
	if c, ok := a.(*Class); ok && t.TypeKind == types.Class {
		return c.IsInstanceOf(t.ClassName)
	}
	return types.IsSubtype(a.Kind(), t.TypeKind)
}

// StructurallyCompatible implements `~~`: every named field in t (a
// Dictionary shape) must exist in a with a compatible kind (spec §4.4).
// shape is the set of (name, *Type) pairs t describes.
func StructurallyCompatible(a Object, shape map[string]*Type) bool {
	d, ok := a.(*Dict)
	if !ok {
		if c, ok := a.(*Class); ok {
			d = c.Dict
		} else {
			return false
		}
	}
	for name, want := range shape {
		v, found := d.ByName(name)
		if !found || !Is(v, want) {
			return false
		}
	}
	return true
}

// StrictlyCompatible implements `~~~`: identical current kinds, identical
// shape, and every composite element matches strictly; None is
// compatible only with None (spec §4.4; also the `a ~~~ a` reflexivity
// invariant from spec §8).
func StrictlyCompatible(a, b Object) bool {
	if IsNone(a) || IsNone(b) {
		return IsNone(a) && IsNone(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Tensor:
		bv := b.(*Tensor)
		return av.ElemKind == bv.ElemKind && sameShape(av.Shape, bv.Shape) && av.Equals(bv)
	case *String:
		return av.Equals(b.(*String))
	case *Fraction:
		return av.Equals(b.(*Fraction))
	case *Dict:
		bv := b.(*Dict)
		if len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if av.Entries[i].Name != bv.Entries[i].Name {
				return false
			}
			if !StrictlyCompatible(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
