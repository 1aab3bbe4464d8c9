// Package parser builds a Term tree from a token stream (spec §4.3). It
// is a hand-written recursive-descent / precedence-climbing parser
// rather than a participle struct-tag grammar: the 11-level operator
// precedence table, named-argument binding, and trailing-comma literal
// disambiguation this language needs are awkward to express declaratively
// in participle's struct tags, so this package consumes the token slice
// pkg/lexer produces directly (an Open Question resolution, see
// DESIGN.md). Its public surface is New/Parse plus the ParseString
// convenience entry point; grammar failures are *diagnostic.ParseError
// values.
package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/lexer"
	"github.com/gaarutyunov/newlang/pkg/macro"
	"github.com/gaarutyunov/newlang/pkg/token"
)

// Parser consumes a fixed token slice and produces Terms.
type Parser struct {
	toks     []token.Token
	pos      int
	filename string
}

// New creates a Parser over toks.
func New(filename string, toks []token.Token) *Parser {
	return &Parser{toks: toks, filename: filename}
}

// ParseString runs macro expansion, lexing, and parsing over src in one
// call, the common entry point for cmd/newlang's run/eval/repl.
func ParseString(filename, src string) (*ast.Term, error) {
	store := macro.NewStore()
	expanded, err := store.Expand(src)
	if err != nil {
		return nil, fmt.Errorf("macro expansion: %w", err)
	}
	toks, err := lexer.Lex(filename, expanded)
	if err != nil {
		return nil, fmt.Errorf("lex error: %w", err)
	}
	return New(filename, toks).Parse()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atSymbol(lexeme string) bool {
	return p.cur().Kind == token.Symbol && p.cur().Text == lexeme
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, p.errf("expected %s, got %s %q", k, p.cur().Kind, p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) errf(format string, args ...any) error {
	return &diagnostic.ParseError{
		Pos: diagnostic.Position{Filename: p.filename, Line: p.cur().Pos.Line, Column: p.cur().Pos.Column},
		Msg: fmt.Sprintf(format, args...),
	}
}

// Parse parses the whole token stream as a sequence of `;`-terminated
// statements (spec §4.3: "a single expression or a Block containing a
// sequence terminated by ;").
func (p *Parser) Parse() (*ast.Term, error) {
	var stmts []*ast.Term
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance() // empty statement
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.at(token.Semicolon) {
			p.advance()
		}
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	pos := token.Position{}
	if len(stmts) > 0 {
		pos = stmts[0].Pos
	}
	return &ast.Term{Kind: ast.KindBlock, Block: stmts, Pos: pos}, nil
}

// parseDecimalBounds validates a literal against a named integer kind at
// parse time (spec §4.3: "a literal accepted only if it fits the named
// type"), using shopspring/decimal for exact base-10 bounds comparison
// ahead of any float64 rounding.
func parseDecimalBounds(text string, lo, hi int64) (bool, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return false, err
	}
	return d.Cmp(decimal.NewFromInt(lo)) >= 0 && d.Cmp(decimal.NewFromInt(hi)) <= 0, nil
}
