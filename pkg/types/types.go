// Package types implements the built-in type lattice: a fixed set of
// Kinds ordered by a promotion/subtype relation (Bool ⊂ Int8 ⊂ ... ⊂
// Int64 ⊂ Float32 ⊂ Float64, with String/Fraction/Dict/Tensor/Class
// sitting alongside), plus the subtype relation behind the `~` predicate
// (the `~` / `~~` / `~~~` predicates themselves live in pkg/object),
// organized as plain map-lookup tables (ancestor sets, bounds, FFI
// names) rather than a generic algorithm.
package types

import "fmt"

// Kind is the closed set of built-in value kinds.
type Kind int

const (
	Invalid Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Fraction
	StrChar
	StrWide
	Dict
	Tensor
	Range
	Iterator
	NativeFunc
	EvalFunc
	TypeKind
	Class
	None
	Ellipsis
	IteratorEnd
	Error
	Any
)

var names = map[Kind]string{
	Invalid:     "Invalid",
	Bool:        "Bool",
	Int8:        "Int8",
	Int16:       "Int16",
	Int32:       "Int32",
	Int64:       "Int64",
	Float32:     "Float32",
	Float64:     "Float64",
	Fraction:    "Fraction",
	StrChar:     "StrChar",
	StrWide:     "StrWide",
	Dict:        "Dict",
	Tensor:      "Tensor",
	Range:       "Range",
	Iterator:    "Iterator",
	NativeFunc:  "NativeFunc",
	EvalFunc:    "EvalFunc",
	TypeKind:    "Type",
	Class:       "Class",
	None:        "None",
	Ellipsis:    "Ellipsis",
	IteratorEnd: "IteratorEnd",
	Error:       "Error",
	Any:         "Any",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Lookup resolves a type name (as it appears after `:` in source) to a
// Kind, returning false if the name is not a built-in.
func Lookup(name string) (Kind, bool) {
	for k, n := range names {
		if n == name {
			return k, true
		}
	}
	return Invalid, false
}

// numericChain is the Bool..Int64..Float64 promotion ladder from spec
// §4.4's "Result kind follows promotion" rule.
var numericChain = []Kind{Bool, Int8, Int16, Int32, Int64, Float32, Float64}

func numericRank(k Kind) (int, bool) {
	for i, c := range numericChain {
		if c == k {
			return i, true
		}
	}
	return -1, false
}

// IsNumeric reports whether k participates in the numeric promotion chain.
func IsNumeric(k Kind) bool {
	_, ok := numericRank(k)
	return ok
}

// Promote returns the result kind of a binary arithmetic op between a and
// b per spec §4.4: wider of the two on the numeric chain; mixing a
// Fraction with a Tensor (any numeric kind) promotes to Float64.
func Promote(a, b Kind) (Kind, bool) {
	if a == Fraction && IsNumeric(b) {
		return Float64, true
	}
	if b == Fraction && IsNumeric(a) {
		return Float64, true
	}
	if a == Fraction && b == Fraction {
		return Fraction, true
	}
	ra, aok := numericRank(a)
	rb, bok := numericRank(b)
	if !aok || !bok {
		return Invalid, false
	}
	if ra > rb {
		return a, true
	}
	return b, true
}

// ancestors lists each Kind's direct supertypes for the `~` predicate
// (spec §4.4: "current kind is T or a subtype of T in the built-in
// lattice"). Class instances are handled separately by the caller since
// their ancestry is a runtime parent list, not a static table entry.
var ancestors = map[Kind][]Kind{
	Bool:     {Int8},
	Int8:     {Int16},
	Int16:    {Int32},
	Int32:    {Int64},
	Int64:    {Float32},
	Float32:  {Float64},
	Float64:  {Any},
	Fraction: {Any},
	StrChar:  {Any},
	StrWide:  {Any},
	Dict:     {Any},
	Tensor:   {Any},
	Range:    {Any},
	Iterator: {Any},
	Class:    {Any},
	None:     {Any},
	Ellipsis: {Any},
	Error:    {Any},
}

// IsSubtype reports whether k is t or a transitive supertype-reachable
// subtype of t in the built-in lattice (the `~` predicate, minus class
// ancestry which callers resolve against the instance's own parent list).
func IsSubtype(k, t Kind) bool {
	if k == t || t == Any {
		return true
	}
	seen := map[Kind]bool{}
	var walk func(Kind) bool
	walk = func(cur Kind) bool {
		if seen[cur] {
			return false
		}
		seen[cur] = true
		for _, anc := range ancestors[cur] {
			if anc == t || walk(anc) {
				return true
			}
		}
		return false
	}
	return walk(k)
}

// FFIName returns the fixed C-ABI type name for k per spec §6's table, or
// "" if k has no FFI mapping.
func FFIName(k Kind) string {
	switch k {
	case Bool:
		return "uint8"
	case Int8:
		return "sint8"
	case Int16:
		return "sint16"
	case Int32:
		return "sint32"
	case Int64:
		return "sint64"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case StrChar:
		return "pointer(char)"
	case StrWide:
		return "pointer(wchar_t)"
	default:
		return ""
	}
}

// bounds holds the [min, max] representable integer range for the fixed
// integer kinds, used by the parser to validate `N : Kind` literals
// (spec §4.3: "a literal accepted only if it fits the named type").
var bounds = map[Kind][2]int64{
	Bool:  {0, 1},
	Int8:  {-1 << 7, 1<<7 - 1},
	Int16: {-1 << 15, 1<<15 - 1},
	Int32: {-1 << 31, 1<<31 - 1},
	Int64: {-1 << 63, 1<<63 - 1},
}

// Fits reports whether integer value v is representable in kind k. It
// only applies to the fixed-width integer kinds; other kinds return false.
func Fits(k Kind, v int64) bool {
	b, ok := bounds[k]
	if !ok {
		return false
	}
	return v >= b[0] && v <= b[1]
}

// Narrowest returns the smallest integer Kind on the chain that can hold
// v, used to infer a bare integer literal's type (spec §4.3: "a bare
// literal infers the narrowest type that fits its value").
func Narrowest(v int64) Kind {
	for _, k := range []Kind{Bool, Int8, Int16, Int32, Int64} {
		if Fits(k, v) {
			return k
		}
	}
	return Int64
}
