package ast

// BaseVisitor provides default child-traversal for every Term kind;
// visitors that only care about a handful of kinds embed it and override
// the rest.
type BaseVisitor struct{}

var _ Visitor = (*BaseVisitor)(nil)

func (v *BaseVisitor) visitChildren(t *Term) {
	if t == nil {
		return
	}
	t.Left.Accept(v)
	t.Right.Accept(v)
	for i := range t.Args {
		t.Args[i].Value.Accept(v)
		t.Args[i].Default.Accept(v)
	}
	for _, b := range t.Block {
		b.Accept(v)
	}
	if t.Type != nil {
		for _, d := range t.Type.Dims {
			d.Accept(v)
		}
	}
}

func (v *BaseVisitor) VisitLiteral(t *Term) any { return nil }
func (v *BaseVisitor) VisitName(t *Term) any    { return nil }
func (v *BaseVisitor) VisitLocal(t *Term) any   { return nil }
func (v *BaseVisitor) VisitModule(t *Term) any  { return nil }
func (v *BaseVisitor) VisitNative(t *Term) any  { v.visitChildren(t); return nil }

func (v *BaseVisitor) VisitCall(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitIndex(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitField(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitBlock(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitBlockTry(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitPureBlock(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitAssign(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitFunction(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitRange(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitDict(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitTensor(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitIterator(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitFollow(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitRepeat(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitReturn(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitBreak(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitType(t *Term) any { return nil }

func (v *BaseVisitor) VisitTypeCall(t *Term) any {
	v.visitChildren(t)
	return nil
}

func (v *BaseVisitor) VisitSource(t *Term) any               { return nil }
func (v *BaseVisitor) VisitOperator(t *Term) any              { return nil }
func (v *BaseVisitor) VisitUnresolvedMacroUse(t *Term) any    { return nil }
