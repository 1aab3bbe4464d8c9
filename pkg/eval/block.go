package eval

import (
	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
)

// VisitBlock evaluates `{ stmt; stmt; ... }`, returning the last
// statement's value, or None if empty.
func (e *Evaluator) VisitBlock(t *ast.Term) any {
	return e.runStatements(t.Block)
}

func (e *Evaluator) runStatements(stmts []*ast.Term) object.Object {
	var last object.Object = object.None
	for _, s := range stmts {
		last = e.eval(s)
	}
	return last
}

// VisitBlockTry evaluates `{* *}`, catching any ordinary error panic
// raised within it and yielding an *object.Error instead (spec §4.5);
// control-flow panics (Break/Return) are never caught and pass through
// unmodified (spec §7: "never catchable").
func (e *Evaluator) VisitBlockTry(t *ast.Term) (result any) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}
			if diagnostic.IsControlFlow(err) {
				panic(r)
			}
			result = &object.Error{Message: err.Error()}
		}
	}()
	return e.runStatements(t.Block)
}

// VisitPureBlock evaluates `{- -}`/`{+ +}`/`{^ ^}` (AND/OR/XOR over each
// statement's truthiness, spec §4.5).
func (e *Evaluator) VisitPureBlock(t *ast.Term) any {
	switch t.Purity {
	case ast.PurityAnd:
		return e.pureAnd(t.Block)
	case ast.PurityOr:
		return e.pureOr(t.Block)
	case ast.PurityXor:
		return e.pureXor(t.Block)
	default:
		panic(runtimeErr(t, "unsupported pure-block purity"))
	}
}

// pureAnd short-circuits to No on the first falsy statement.
func (e *Evaluator) pureAnd(stmts []*ast.Term) object.Object {
	for _, s := range stmts {
		if !object.Truthy(e.eval(s)) {
			return yesNo(false)
		}
	}
	return yesNo(true)
}

// pureOr short-circuits to Yes on the first truthy statement.
func (e *Evaluator) pureOr(stmts []*ast.Term) object.Object {
	for _, s := range stmts {
		if object.Truthy(e.eval(s)) {
			return yesNo(true)
		}
	}
	return yesNo(false)
}

// pureXor evaluates every statement unconditionally (no short-circuit)
// and yields Yes iff an odd number were truthy.
func (e *Evaluator) pureXor(stmts []*ast.Term) object.Object {
	count := 0
	for _, s := range stmts {
		if object.Truthy(e.eval(s)) {
			count++
		}
	}
	return yesNo(count%2 == 1)
}
