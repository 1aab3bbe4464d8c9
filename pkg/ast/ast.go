// Package ast defines NewLang's runtime AST: a single Term node type
// tagged by a closed Kind enumeration, plus a Visitor/BaseVisitor pair
// (one VisitX method per node "shape", Accept dispatching into it) even
// though here there is only one Go type — the Kind field plays the role
// a family of pointer-typed struct fields would play in a
// one-struct-per-production AST.
package ast

import "github.com/gaarutyunov/newlang/pkg/token"

// Kind is the closed set of Term kinds from spec §3.
type Kind int

const (
	Invalid Kind = iota
	KindInteger
	KindNumber
	KindStrChar
	KindStrWide
	KindFraction
	KindEllipsis
	KindNone
	KindArgument // $N positional macro/placeholder reference surviving into eval (rare)
	KindName     // bare identifier
	KindLocal    // $name
	KindModule   // @name
	KindNative   // %name
	KindCall
	KindIndex
	KindField
	KindBlock
	KindBlockTry
	KindPureBlock // And/Or/Xor distinguished by Term.Purity
	KindAssign
	KindCreate
	KindCreateOrAssign
	KindFunction
	KindTransparent
	KindRange
	KindDict
	KindTensor
	KindIterator // postfix ?, !, !?, ??
	KindFollow   // -->
	KindRepeat   // <->
	KindReturn
	KindBreak
	KindType
	KindTypeCall
	KindSource // raw block {% %}
	KindOperator
	KindUnresolvedMacroUse
)

// Purity distinguishes the pure-block / pure-function variants (spec
// §4.5's {- -} AND, {+ +} OR, {* *} try, and the `:-`/`::-` pure function
// markers) without introducing a separate Go type per variant.
type Purity int

const (
	PurityNone Purity = iota
	PurityAnd
	PurityOr
	PurityXor
	PurityTry
)

// Arg is one actual or formal argument: Name is empty for a positional
// entry (spec §3 "ordered argument list of (name, Term) pairs").
type Arg struct {
	Name    string
	Value   *Term
	Default *Term // formal parameter default, nil if required
}

// TypeAnnotation is the `:TypeName[dims...]` suffix spec §4.3 describes.
type TypeAnnotation struct {
	Name string
	Dims []*Term // each dim is an Integer Term or an Ellipsis Term ("...")
}

// Term is the single AST node type the parser produces and the evaluator
// walks: one Go struct covering every production, tagged by Kind, rather
// than one struct per production the way pkg/grammar's participle tree
// works.
type Term struct {
	Kind   Kind
	Text   string
	Type   *TypeAnnotation
	Left   *Term
	Right  *Term
	Args   []Arg
	Block  []*Term
	Purity Purity

	// Variadic marks a Function's last formal as a `...` collector, or a
	// Call's trailing actual as a `...` spread (spec §4.3/§4.7/§4.9).
	Variadic bool

	Pos token.Position
}

// NewTerm creates a leaf/branch Term at pos.
func NewTerm(kind Kind, text string, pos token.Position) *Term {
	return &Term{Kind: kind, Text: text, Pos: pos}
}

// Accept dispatches to the matching VisitX method on v, switching on
// Kind in place of a type switch over many distinct Go node types.
func (t *Term) Accept(v Visitor) any {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindInteger, KindNumber, KindStrChar, KindStrWide, KindFraction,
		KindEllipsis, KindNone, KindArgument:
		return v.VisitLiteral(t)
	case KindName:
		return v.VisitName(t)
	case KindLocal:
		return v.VisitLocal(t)
	case KindModule:
		return v.VisitModule(t)
	case KindNative:
		return v.VisitNative(t)
	case KindCall:
		return v.VisitCall(t)
	case KindIndex:
		return v.VisitIndex(t)
	case KindField:
		return v.VisitField(t)
	case KindBlock:
		return v.VisitBlock(t)
	case KindBlockTry:
		return v.VisitBlockTry(t)
	case KindPureBlock:
		return v.VisitPureBlock(t)
	case KindAssign, KindCreate, KindCreateOrAssign:
		return v.VisitAssign(t)
	case KindFunction, KindTransparent:
		return v.VisitFunction(t)
	case KindRange:
		return v.VisitRange(t)
	case KindDict:
		return v.VisitDict(t)
	case KindTensor:
		return v.VisitTensor(t)
	case KindIterator:
		return v.VisitIterator(t)
	case KindFollow:
		return v.VisitFollow(t)
	case KindRepeat:
		return v.VisitRepeat(t)
	case KindReturn:
		return v.VisitReturn(t)
	case KindBreak:
		return v.VisitBreak(t)
	case KindType:
		return v.VisitType(t)
	case KindTypeCall:
		return v.VisitTypeCall(t)
	case KindSource:
		return v.VisitSource(t)
	case KindOperator:
		return v.VisitOperator(t)
	case KindUnresolvedMacroUse:
		return v.VisitUnresolvedMacroUse(t)
	default:
		return v.VisitLiteral(t)
	}
}
