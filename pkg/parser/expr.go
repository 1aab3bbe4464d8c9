package parser

import (
	"strings"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/token"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// parseExpr is the entry point into the 11-level precedence ladder from
// spec §4.3 (lowest binds loosest): assignment/create is handled by the
// statement layer, so expression parsing starts at logical-or.
func (p *Parser) parseExpr() (*ast.Term, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (*ast.Term, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("||") {
		pos := p.advance().Pos
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: "||", Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.Term, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("&&") {
		pos := p.advance().Pos
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: "&&", Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

var comparisonOps = map[string]bool{"==": true, "===": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true, "<=>": true}

func (p *Parser) parseComparison() (*ast.Term, error) {
	left, err := p.parseTypePredicate()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Symbol && comparisonOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parseTypePredicate()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: op.Text, Left: left, Right: right, Pos: op.Pos}
	}
	return left, nil
}

var typePredicateOps = map[string]bool{"~": true, "~~": true, "~~~": true, "!~": true, "!~~": true}

func (p *Parser) parseTypePredicate() (*ast.Term, error) {
	left, err := p.parseBitwise()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Symbol && typePredicateOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parseBitwise()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: op.Text, Left: left, Right: right, Pos: op.Pos}
	}
	return left, nil
}

var bitwiseOps = map[string]bool{"|": true, "^": true, "&": true}

func (p *Parser) parseBitwise() (*ast.Term, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Symbol && bitwiseOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: op.Text, Left: left, Right: right, Pos: op.Pos}
	}
	return left, nil
}

var shiftOps = map[string]bool{"<<": true, ">>": true}

func (p *Parser) parseShift() (*ast.Term, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Symbol && shiftOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: op.Text, Left: left, Right: right, Pos: op.Pos}
	}
	return left, nil
}

var addOps = map[string]bool{"+": true, "-": true, "++": true}

func (p *Parser) parseAdd() (*ast.Term, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Symbol && addOps[p.cur().Text] {
		// "++" in infix position is concat (spec §4.4); in statement-
		// leading position it opens a Break bracket instead, handled by
		// parseStatement before expression parsing ever starts. A "++"
		// with nothing operand-like after it closes that bracket.
		if p.cur().Text == "++" {
			switch p.peekAt(1).Kind {
			case token.EOF, token.Semicolon, token.Comma, token.RBrace, token.RParen, token.RBracket:
				return left, nil
			}
		}
		op := p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: op.Text, Left: left, Right: right, Pos: op.Pos}
	}
	return left, nil
}

var mulOps = map[string]bool{"*": true, "/": true, "//": true, "%": true}

func (p *Parser) parseMul() (*ast.Term, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Symbol && mulOps[p.cur().Text] {
		op := p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.Term{Kind: ast.KindOperator, Text: op.Text, Left: left, Right: right, Pos: op.Pos}
	}
	return left, nil
}

func (p *Parser) parsePower() (*ast.Term, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.atSymbol("**") {
		op := p.advance()
		right, err := p.parsePower() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.Term{Kind: ast.KindOperator, Text: "**", Left: left, Right: right, Pos: op.Pos}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (*ast.Term, error) {
	if p.atSymbol("-") || p.atSymbol("+") {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Term{Kind: ast.KindOperator, Text: "unary" + op.Text, Left: operand, Pos: op.Pos}, nil
	}
	return p.parsePostfix()
}

var iteratorOps = map[string]bool{"!": true, "!!": true, "?": true, "??": true, "!?": true, "?!": true}

// parsePostfix handles indexing, field access, call, and the iterator
// suffixes (spec §4.3's highest-precedence tier).
func (p *Parser) parsePostfix() (*ast.Term, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(token.Dot):
			pos := p.advance().Pos
			nameTok, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			left = &ast.Term{Kind: ast.KindField, Text: nameTok.Text, Left: left, Pos: pos}
		case p.at(token.LBracket):
			pos := p.advance().Pos
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			left = &ast.Term{Kind: ast.KindIndex, Left: left, Right: idx, Pos: pos}
		case p.at(token.LParen):
			args, pos, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			left = &ast.Term{Kind: ast.KindCall, Left: left, Args: args, Pos: pos}
		case p.cur().Kind == token.Symbol && iteratorOps[p.cur().Text]:
			op := p.advance()
			left = &ast.Term{Kind: ast.KindIterator, Text: op.Text, Left: left, Pos: op.Pos}
		default:
			return left, nil
		}
	}
}

// parseCallArgs parses `(e1, name=e2, ...)` call actuals, positional or
// named (spec §4.7 step 3).
func (p *Parser) parseCallArgs() ([]ast.Arg, token.Position, error) {
	pos := p.cur().Pos
	p.advance() // (
	var args []ast.Arg
	for !p.at(token.RParen) {
		if p.at(token.Ellipsis) {
			p.advance()
			if len(args) > 0 {
				args[len(args)-1].Default = &ast.Term{Kind: ast.KindEllipsis, Text: "..."}
			}
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		if p.at(token.Ident) && p.peekAt(1).Kind == token.AssignOnly {
			name := p.advance().Text
			p.advance() // =
			v, err := p.parseExpr()
			if err != nil {
				return nil, pos, err
			}
			args = append(args, ast.Arg{Name: name, Value: v})
		} else {
			v, err := p.parseExpr()
			if err != nil {
				return nil, pos, err
			}
			args = append(args, ast.Arg{Value: v})
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, pos, err
	}
	return args, pos, nil
}

// parsePrimary parses literals, names, parenthesized/dict/tensor/range
// expressions, type references, blocks, and raw-source terms.
func (p *Parser) parsePrimary() (*ast.Term, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Integer:
		p.advance()
		lit, err := p.parseScalarLiteral(ast.KindInteger, tok, guessIntKind(tok.Text))
		if err != nil {
			return nil, err
		}
		return p.maybeRange(lit)
	case token.Number:
		p.advance()
		return p.parseScalarLiteral(ast.KindNumber, tok, types.Float64)
	case token.Fraction:
		p.advance()
		return &ast.Term{Kind: ast.KindFraction, Text: tok.Text, Pos: tok.Pos}, nil
	case token.StrChar, token.StrWide, token.Template:
		p.advance()
		kind := ast.KindStrChar
		if tok.Kind == token.StrWide {
			kind = ast.KindStrWide
		}
		return &ast.Term{Kind: kind, Text: tok.Text, Pos: tok.Pos}, nil
	case token.Ellipsis:
		p.advance()
		return &ast.Term{Kind: ast.KindEllipsis, Text: "...", Pos: tok.Pos}, nil
	case token.Local:
		p.advance()
		return &ast.Term{Kind: ast.KindLocal, Text: strings.TrimPrefix(tok.Text, "$"), Pos: tok.Pos}, nil
	case token.Module:
		p.advance()
		return &ast.Term{Kind: ast.KindModule, Text: strings.TrimPrefix(tok.Text, "@"), Pos: tok.Pos}, nil
	case token.Native:
		p.advance()
		return &ast.Term{Kind: ast.KindNative, Text: strings.TrimPrefix(tok.Text, "%"), Pos: tok.Pos}, nil
	case token.RawSource:
		p.advance()
		return &ast.Term{Kind: ast.KindSource, Text: tok.Text, Pos: tok.Pos}, nil
	case token.MacroUse:
		p.advance()
		return &ast.Term{Kind: ast.KindUnresolvedMacroUse, Text: tok.Text, Pos: tok.Pos}, nil
	case token.TypeName:
		return p.parseTypeOrComprehension()
	case token.Ident:
		p.advance()
		return p.maybeRange(&ast.Term{Kind: ast.KindName, Text: tok.Text, Pos: tok.Pos})
	case token.LBrace:
		return p.parseBlock()
	case token.LParen:
		return p.parseParenOrDict()
	case token.LBracket:
		return p.parseTensorLiteral()
	default:
		return nil, p.errf("unexpected token %s %q", tok.Kind, tok.Text)
	}
}

func guessIntKind(text string) types.Kind {
	clean := strings.ReplaceAll(text, "_", "")
	var v int64
	for _, c := range clean {
		if c < '0' || c > '9' {
			return types.Int64
		}
		v = v*10 + int64(c-'0')
	}
	return types.Narrowest(v)
}

// parseScalarLiteral parses an optional `:TypeName` bounds-checked
// annotation following a literal (spec §4.3).
func (p *Parser) parseScalarLiteral(kind ast.Kind, tok token.Token, inferred types.Kind) (*ast.Term, error) {
	term := &ast.Term{Kind: kind, Text: tok.Text, Pos: tok.Pos}
	if p.at(token.TypeName) {
		typeName := strings.TrimPrefix(p.cur().Text, ":")
		if declared, ok := types.Lookup(typeName); ok && types.IsNumeric(declared) {
			lo, hi := intBounds(declared)
			fits, err := parseDecimalBounds(tok.Text, lo, hi)
			if err == nil && !fits {
				return nil, diagnosticBoundsError(p, tok, typeName)
			}
		}
		ann, err := p.tryParseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		term.Type = ann
	}
	return term, nil
}

func intBounds(k types.Kind) (int64, int64) {
	switch k {
	case types.Bool:
		return 0, 1
	case types.Int8:
		return -1 << 7, 1<<7 - 1
	case types.Int16:
		return -1 << 15, 1<<15 - 1
	case types.Int32:
		return -1 << 31, 1<<31 - 1
	default:
		return -1 << 63, 1<<63 - 1
	}
}

func diagnosticBoundsError(p *Parser, tok token.Token, typeName string) error {
	return p.errf("literal %s does not fit declared type %s", tok.Text, typeName)
}

// maybeRange parses the `a .. b` / `a .. b .. step` range suffix after a
// primary (spec §4.3).
func (p *Parser) maybeRange(left *ast.Term) (*ast.Term, error) {
	if !p.at(token.RangeOp) {
		return left, nil
	}
	pos := p.advance().Pos
	stop, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	rng := &ast.Term{Kind: ast.KindRange, Left: left, Right: stop, Pos: pos}
	if p.at(token.RangeOp) {
		p.advance()
		step, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		rng.Block = []*ast.Term{step}
	}
	return rng, nil
}

// parseBlock parses `{ s1; s2; }`, `{* *}`, `{- -}`, `{+ +}` (spec §4.5).
func (p *Parser) parseBlock() (*ast.Term, error) {
	pos := p.cur().Pos
	p.advance() // {
	kind := ast.KindBlock
	purity := ast.PurityNone
	if p.atSymbol("-") {
		p.advance()
		purity = ast.PurityAnd
	} else if p.atSymbol("+") {
		p.advance()
		purity = ast.PurityOr
	} else if p.atSymbol("^") {
		p.advance()
		purity = ast.PurityXor
	} else if p.atSymbol("*") {
		p.advance()
		kind = ast.KindBlockTry
		purity = ast.PurityTry
	}
	if purity != ast.PurityNone && purity != ast.PurityTry {
		kind = ast.KindPureBlock
	}

	var stmts []*ast.Term
	for !p.atBlockClose(purity) {
		if p.at(token.Semicolon) {
			p.advance()
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
	p.advanceBlockClose(purity)
	return &ast.Term{Kind: kind, Block: stmts, Purity: purity, Pos: pos}, nil
}

func (p *Parser) atBlockClose(purity ast.Purity) bool {
	if p.at(token.RBrace) {
		return true
	}
	switch purity {
	case ast.PurityAnd:
		return p.atSymbol("-") && p.peekAt(1).Kind == token.RBrace
	case ast.PurityOr:
		return p.atSymbol("+") && p.peekAt(1).Kind == token.RBrace
	case ast.PurityXor:
		return p.atSymbol("^") && p.peekAt(1).Kind == token.RBrace
	case ast.PurityTry:
		return p.atSymbol("*") && p.peekAt(1).Kind == token.RBrace
	}
	return false
}

func (p *Parser) advanceBlockClose(purity ast.Purity) {
	if purity != ast.PurityNone {
		p.advance() // the -, +, ^, or * marker
	}
	p.advance() // }
}

// parseParenOrDict parses `(expr)` grouping or `(e1, name=e2, e3,)` dict
// literal (spec §4.3: "trailing comma mandatory to disambiguate from
// grouping").
func (p *Parser) parseParenOrDict() (*ast.Term, error) {
	pos := p.cur().Pos
	p.advance() // (
	if p.at(token.RParen) {
		p.advance()
		return &ast.Term{Kind: ast.KindDict, Pos: pos}, nil
	}
	var entries []ast.Arg
	sawComma := false
	for !p.at(token.RParen) {
		var name string
		if p.peekAt(1).Kind == token.AssignOnly {
			switch p.cur().Kind {
			case token.Ident:
				name = p.advance().Text
				p.advance()
			case token.StrChar, token.StrWide:
				quoted := p.advance().Text
				name = quoted[1 : len(quoted)-1]
				p.advance()
			}
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.Arg{Name: name, Value: v})
		if p.at(token.Comma) {
			sawComma = true
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if !sawComma && len(entries) == 1 && entries[0].Name == "" {
		return entries[0].Value, nil // plain grouping, no trailing comma
	}
	return &ast.Term{Kind: ast.KindDict, Args: entries, Pos: pos}, nil
}

// parseTensorLiteral parses `[e1, e2,]`, nested for higher rank, with an
// optional `:Type` suffix (spec §4.3).
func (p *Parser) parseTensorLiteral() (*ast.Term, error) {
	pos := p.cur().Pos
	p.advance() // [
	var entries []ast.Arg
	for !p.at(token.RBracket) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.Arg{Value: v})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	term := &ast.Term{Kind: ast.KindTensor, Args: entries, Pos: pos}
	if p.at(token.TypeName) {
		ann, err := p.tryParseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		term.Type = ann
	}
	return term, nil
}

// parseTypeOrComprehension parses `:TypeName`, `:TypeName[dims](args)`,
// or `:TypeName(args)` (spec §4.3's "callable type" / §4.9).
func (p *Parser) parseTypeOrComprehension() (*ast.Term, error) {
	pos := p.cur().Pos
	ann, err := p.tryParseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	typeTerm := &ast.Term{Kind: ast.KindType, Text: ann.Name, Type: ann, Pos: pos}
	if p.at(token.LParen) {
		args, callPos, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Term{Kind: ast.KindTypeCall, Left: typeTerm, Args: args, Pos: callPos}, nil
	}
	return typeTerm, nil
}
