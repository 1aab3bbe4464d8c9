package ast_test

import (
	"strings"
	"testing"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.Term {
	t.Helper()
	term, err := parser.ParseString("test.nl", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return term
}

func TestPrintRendersCall(t *testing.T) {
	term := mustParse(t, "f(1, b=2)")
	got := ast.Print(term)
	if !strings.HasPrefix(got, "f(") || !strings.Contains(got, "b=2") {
		t.Errorf("expected a reprinted call containing %q, got %q", "b=2", got)
	}
}

func TestPrintRendersPrefixedNames(t *testing.T) {
	if got := ast.Print(mustParse(t, "$x")); got != "$x" {
		t.Errorf("expected %q, got %q", "$x", got)
	}
	if got := ast.Print(mustParse(t, "@x")); got != "@x" {
		t.Errorf("expected %q, got %q", "@x", got)
	}
}

func TestCheckAcceptsBreakReturnInsideEnclosingConstructs(t *testing.T) {
	term := mustParse(t, `
f() := {
  [0 < 1] <-> { ++1++ };
  --2--
}
`)
	if errs := ast.Check(term); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCheckRejectsBreakOutsideLoop(t *testing.T) {
	term := mustParse(t, "++1++")
	errs := ast.Check(term)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d (%v)", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "break") {
		t.Errorf("expected a break-related message, got %q", errs[0].Message)
	}
}

func TestCheckRejectsReturnOutsideFunction(t *testing.T) {
	term := mustParse(t, "--1--")
	errs := ast.Check(term)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d (%v)", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "return") {
		t.Errorf("expected a return-related message, got %q", errs[0].Message)
	}
}

func TestAcceptDispatchesByKind(t *testing.T) {
	term := &ast.Term{Kind: ast.KindInteger, Text: "42"}
	v := ast.NewPrinter()
	term.Accept(v)
	if got := v.String(); got != "42" {
		t.Errorf("expected %q, got %q", "42", got)
	}
}
