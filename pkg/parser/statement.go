package parser

import (
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/token"
)

// parseStatement dispatches between the control forms (conditional chain,
// repeat), Return/Break, and plain assignment/expression statements
// (spec §4.3/§4.5).
func (p *Parser) parseStatement() (*ast.Term, error) {
	if p.at(token.LBracket) {
		if t, ok, err := p.tryParseGuardedForm(); ok || err != nil {
			return t, err
		}
	}
	if p.atSymbol("--") {
		return p.parseReturn()
	}
	if p.atSymbol("++") {
		return p.parseBreak()
	}
	return p.parseAssignmentOrExpr()
}

func (p *Parser) parseReturn() (*ast.Term, error) {
	pos := p.cur().Pos
	p.advance() // opening --
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atSymbol("--") {
		return nil, p.errf("expected closing -- of return")
	}
	p.advance()
	return &ast.Term{Kind: ast.KindReturn, Left: val, Pos: pos}, nil
}

func (p *Parser) parseBreak() (*ast.Term, error) {
	pos := p.cur().Pos
	p.advance() // opening ++
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atSymbol("++") {
		return nil, p.errf("expected closing ++ of break")
	}
	p.advance()
	return &ast.Term{Kind: ast.KindBreak, Left: val, Pos: pos}, nil
}

// tryParseGuardedForm attempts `[guard] --> body (, [guard] --> body)*` or
// `[guard] <-> body`, backtracking to let a plain tensor literal starting
// with `[` fall through to expression parsing on mismatch.
func (p *Parser) tryParseGuardedForm() (*ast.Term, bool, error) {
	start := p.pos
	guard, ok := p.tryParseGuard()
	if !ok {
		p.pos = start
		return nil, false, nil
	}
	switch {
	case p.at(token.Arrow):
		p.pos = start
		t, err := p.parseConditionalChain()
		return t, true, err
	case p.at(token.Repeat):
		pos := p.cur().Pos
		p.advance()
		body, err := p.parseBlockOrExpr()
		if err != nil {
			return nil, true, err
		}
		return &ast.Term{Kind: ast.KindRepeat, Left: guard, Right: body, Pos: pos}, true, nil
	default:
		p.pos = start
		return nil, false, nil
	}
}

// tryParseGuard parses a bracketed guard expression (`[_]` wildcard or
// `[expr]`) and reports whether it looks like one at all.
func (p *Parser) tryParseGuard() (*ast.Term, bool) {
	if !p.at(token.LBracket) {
		return nil, false
	}
	start := p.pos
	p.advance()
	if p.at(token.Ident) && p.cur().Text == "_" {
		pos := p.cur().Pos
		p.advance()
		if !p.at(token.RBracket) {
			p.pos = start
			return nil, false
		}
		p.advance()
		return &ast.Term{Kind: ast.KindName, Text: "_", Pos: pos}, true
	}
	expr, err := p.parseExpr()
	if err != nil || !p.at(token.RBracket) {
		p.pos = start
		return nil, false
	}
	p.advance()
	return expr, true
}

// parseConditionalChain parses `[g1]-->b1, [g2]-->b2, [_]-->belse` (spec
// §4.3).
func (p *Parser) parseConditionalChain() (*ast.Term, error) {
	pos := p.cur().Pos
	var args []ast.Arg
	for {
		guard, ok := p.tryParseGuard()
		if !ok {
			return nil, p.errf("expected guard in conditional chain")
		}
		if _, err := p.expect(token.Arrow); err != nil {
			return nil, err
		}
		body, err := p.parseBlockOrExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Arg{Value: guard, Default: body})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return &ast.Term{Kind: ast.KindFollow, Args: args, Pos: pos}, nil
}

// parseBlockOrExpr parses a `{ ... }` block, a `--x--` Return, a `++x++`
// Break, or a bare expression as a guard/repeat/conditional body.
func (p *Parser) parseBlockOrExpr() (*ast.Term, error) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	if p.atSymbol("--") {
		return p.parseReturn()
	}
	if p.atSymbol("++") {
		return p.parseBreak()
	}
	return p.parseExpr()
}
