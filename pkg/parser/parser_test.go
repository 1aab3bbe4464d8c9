package parser

import (
	"testing"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/lexer"
)

func mustParse(t *testing.T, src string) *ast.Term {
	t.Helper()
	toks, err := lexer.Lex("test.nl", src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	term, err := New("test.nl", toks).Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return term
}

func TestParseCreateOnlyAssignment(t *testing.T) {
	term := mustParse(t, "var1 ::= 123")
	if term.Kind != ast.KindCreate {
		t.Fatalf("expected KindCreate, got %v", term.Kind)
	}
	if term.Left.Kind != ast.KindName || term.Left.Text != "var1" {
		t.Fatalf("unexpected lhs: %+v", term.Left)
	}
	if term.Right.Kind != ast.KindInteger || term.Right.Text != "123" {
		t.Fatalf("unexpected rhs: %+v", term.Right)
	}
}

func TestParseFractionLiteral(t *testing.T) {
	term := mustParse(t, `100\1 + 1\3`)
	if term.Kind != ast.KindOperator || term.Text != "+" {
		t.Fatalf("expected + operator term, got %+v", term)
	}
	if term.Left.Kind != ast.KindFraction || term.Right.Kind != ast.KindFraction {
		t.Fatalf("expected fraction operands, got %+v / %+v", term.Left, term.Right)
	}
}

func TestParseTensorLiteralWithTypeAnnotation(t *testing.T) {
	term := mustParse(t, "[1, 2, 3, 4,]:Int32")
	if term.Kind != ast.KindTensor {
		t.Fatalf("expected tensor literal, got %v", term.Kind)
	}
	if term.Type == nil || term.Type.Name != "Int32" {
		t.Fatalf("expected :Int32 annotation, got %+v", term.Type)
	}
	if len(term.Args) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(term.Args))
	}
}

func TestParseDictLiteralRequiresTrailingComma(t *testing.T) {
	term := mustParse(t, `('1'=1, "22"=2, 4,)`)
	if term.Kind != ast.KindDict {
		t.Fatalf("expected dict literal, got %v", term.Kind)
	}
	if len(term.Args) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(term.Args))
	}
	if term.Args[0].Name != "1" || term.Args[2].Name != "" {
		t.Fatalf("unexpected entry names: %+v", term.Args)
	}
}

func TestParseGroupingWithoutTrailingCommaIsNotADict(t *testing.T) {
	term := mustParse(t, "(1 + 2)")
	if term.Kind != ast.KindOperator {
		t.Fatalf("expected grouped expression to collapse to the operator term, got %v", term.Kind)
	}
}

func TestParseFunctionDefinitionWithDefaultsAndVariadic(t *testing.T) {
	term := mustParse(t, "f(a, b=2, ...) := { a + b }")
	if term.Kind != ast.KindFunction {
		t.Fatalf("expected KindFunction, got %v", term.Kind)
	}
	if term.Text != "f" {
		t.Fatalf("expected name f, got %s", term.Text)
	}
	if len(term.Args) != 2 || term.Args[1].Default == nil {
		t.Fatalf("expected 2 named params with a default on b, got %+v", term.Args)
	}
	if !term.Variadic {
		t.Fatalf("expected variadic marker")
	}
}

func TestParseConditionalChain(t *testing.T) {
	term := mustParse(t, "[a > 1] --> 1, [_] --> 2")
	if term.Kind != ast.KindFollow {
		t.Fatalf("expected KindFollow, got %v", term.Kind)
	}
	if len(term.Args) != 2 {
		t.Fatalf("expected 2 guarded branches, got %d", len(term.Args))
	}
}

func TestParseRepeat(t *testing.T) {
	term := mustParse(t, "[count < 10] <-> { count := count + 1 }")
	if term.Kind != ast.KindRepeat {
		t.Fatalf("expected KindRepeat, got %v", term.Kind)
	}
}

func TestParseReturnAndBreak(t *testing.T) {
	ret := mustParse(t, "--42--")
	if ret.Kind != ast.KindReturn {
		t.Fatalf("expected KindReturn, got %v", ret.Kind)
	}
	brk := mustParse(t, "++42++")
	if brk.Kind != ast.KindBreak {
		t.Fatalf("expected KindBreak, got %v", brk.Kind)
	}
}

func TestParsePureBlock(t *testing.T) {
	term := mustParse(t, "{- a; b -}")
	if term.Kind != ast.KindPureBlock || term.Purity != ast.PurityAnd {
		t.Fatalf("expected AND pure block, got kind=%v purity=%v", term.Kind, term.Purity)
	}
}

func TestParseRangeWithStep(t *testing.T) {
	term := mustParse(t, "1 .. 10 .. 2")
	if term.Kind != ast.KindRange {
		t.Fatalf("expected KindRange, got %v", term.Kind)
	}
	if len(term.Block) != 1 {
		t.Fatalf("expected an explicit step term, got %+v", term.Block)
	}
}

func TestParsePrecedenceMulBeforeAdd(t *testing.T) {
	term := mustParse(t, "1 + 2 * 3")
	if term.Kind != ast.KindOperator || term.Text != "+" {
		t.Fatalf("expected top-level + , got %+v", term)
	}
	if term.Right.Kind != ast.KindOperator || term.Right.Text != "*" {
		t.Fatalf("expected * nested on the right, got %+v", term.Right)
	}
}

func TestParseCallWithNamedArgs(t *testing.T) {
	term := mustParse(t, "f(1, name=2)")
	if term.Kind != ast.KindCall {
		t.Fatalf("expected KindCall, got %v", term.Kind)
	}
	if len(term.Args) != 2 || term.Args[1].Name != "name" {
		t.Fatalf("unexpected args: %+v", term.Args)
	}
}

func TestParseLiteralOutOfBoundsRejected(t *testing.T) {
	_, err := ParseString("test.nl", "300:Int8")
	if err == nil {
		t.Fatalf("expected bounds error for 300:Int8")
	}
}
