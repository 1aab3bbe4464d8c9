package ast

// Visitor defines one method per Term "shape" (grouped by Kind, see
// Term.Accept). Implementations can traverse and evaluate/transform the
// tree by implementing these methods; the return type is `any` because
// callers want different things back (an object.Object for the
// evaluator, nothing for a checker, a string for the printer).
type Visitor interface {
	VisitLiteral(*Term) any
	VisitName(*Term) any
	VisitLocal(*Term) any
	VisitModule(*Term) any
	VisitNative(*Term) any
	VisitCall(*Term) any
	VisitIndex(*Term) any
	VisitField(*Term) any
	VisitBlock(*Term) any
	VisitBlockTry(*Term) any
	VisitPureBlock(*Term) any
	VisitAssign(*Term) any
	VisitFunction(*Term) any
	VisitRange(*Term) any
	VisitDict(*Term) any
	VisitTensor(*Term) any
	VisitIterator(*Term) any
	VisitFollow(*Term) any
	VisitRepeat(*Term) any
	VisitReturn(*Term) any
	VisitBreak(*Term) any
	VisitType(*Term) any
	VisitTypeCall(*Term) any
	VisitSource(*Term) any
	VisitOperator(*Term) any
	VisitUnresolvedMacroUse(*Term) any
}
