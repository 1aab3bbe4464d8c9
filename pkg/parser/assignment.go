package parser

import (
	"strings"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/token"
)

// assignKindFor maps an assign-token kind to the Term.Kind it produces,
// and whether it marks the binding pure/transparent (spec §4.5's
// `:=`/`::=`/`=` trio and their `:-`/`::-` pure parallels).
func assignKindFor(k token.Kind) (kind ast.Kind, transparent bool, ok bool) {
	switch k {
	case token.Assign:
		return ast.KindCreateOrAssign, false, true
	case token.CreateOnly:
		return ast.KindCreate, false, true
	case token.AssignOnly:
		return ast.KindAssign, false, true
	case token.CreateOrAssignDash:
		return ast.KindCreateOrAssign, true, true
	case token.CreateOnlyDash:
		return ast.KindCreate, true, true
	default:
		return ast.Invalid, false, false
	}
}

// parseAssignmentOrExpr parses `lhs ASSIGNOP rhs`, a bare function
// definition `name(params) [:Type] ASSIGNOP { body }`, or a plain
// expression statement.
func (p *Parser) parseAssignmentOrExpr() (*ast.Term, error) {
	// Function definition: Ident immediately followed by `(` forming a
	// formal-parameter list, then an assign token.
	if p.at(token.Ident) && p.peekAt(1).Kind == token.LParen {
		if t, ok, err := p.tryParseFunctionDef(); ok || err != nil {
			return t, err
		}
	}

	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if kind, transparent, ok := assignKindFor(p.cur().Kind); ok {
		pos := p.cur().Pos
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		_ = transparent // plain-value assignment has no pure variant distinction
		return &ast.Term{Kind: kind, Left: lhs, Right: rhs, Pos: pos}, nil
	}

	return lhs, nil
}

// tryParseFunctionDef attempts `name(params) [:Type] (:= | ::= | :- | ::-) body`.
// It backtracks to a plain expression on mismatch (the same token prefix
// also starts an ordinary call expression statement).
func (p *Parser) tryParseFunctionDef() (*ast.Term, bool, error) {
	start := p.pos
	pos := p.cur().Pos
	name := p.advance().Text
	if _, err := p.expect(token.LParen); err != nil {
		p.pos = start
		return nil, false, nil
	}
	var params []ast.Arg
	variadic := false
	for !p.at(token.RParen) {
		if p.at(token.Ellipsis) {
			p.advance()
			variadic = true
			break
		}
		if !p.at(token.Ident) {
			p.pos = start
			return nil, false, nil
		}
		pname := p.advance().Text
		var def *ast.Term
		if p.at(token.AssignOnly) {
			p.advance()
			d, err := p.parseExpr()
			if err != nil {
				p.pos = start
				return nil, false, nil
			}
			def = d
		}
		params = append(params, ast.Arg{Name: pname, Default: def})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		p.pos = start
		return nil, false, nil
	}

	var retType *ast.TypeAnnotation
	if p.at(token.TypeName) {
		rt, err := p.tryParseTypeAnnotation()
		if err != nil {
			p.pos = start
			return nil, false, nil
		}
		retType = rt
	}

	// Function definitions always bind create-or-assign regardless of
	// which assign-token family introduces them (spec's own function-
	// definition example only shows `:=`); only the pure/plain split
	// from the -dash family is preserved. This is a deliberate
	// simplification of the grammar's ambiguity, recorded in DESIGN.md.
	_, transparent, ok := assignKindFor(p.cur().Kind)
	if !ok {
		p.pos = start
		return nil, false, nil
	}
	p.advance()

	body, err := p.parseBlockOrExpr()
	if err != nil {
		return nil, true, err
	}

	termKind := ast.KindFunction
	if transparent {
		termKind = ast.KindTransparent
	}
	fn := &ast.Term{Kind: termKind, Text: name, Args: params, Variadic: variadic, Left: body, Type: retType, Pos: pos}
	return fn, true, nil
}

// tryParseTypeAnnotation parses `:TypeName` optionally followed by
// `[d1, d2, ...]` dimensions (spec §4.3's scalar and tensor type
// annotations). The lexer's TypeRef rule matches the leading colon and
// the name together into a single token.TypeName token, so there is no
// separate Colon token to consume here.
func (p *Parser) tryParseTypeAnnotation() (*ast.TypeAnnotation, error) {
	nameTok, err := p.expect(token.TypeName)
	if err != nil {
		return nil, err
	}
	ann := &ast.TypeAnnotation{Name: strings.TrimPrefix(nameTok.Text, ":")}
	if p.at(token.LBracket) {
		p.advance()
		for !p.at(token.RBracket) {
			if p.at(token.Ellipsis) {
				pos := p.cur().Pos
				p.advance()
				ann.Dims = append(ann.Dims, &ast.Term{Kind: ast.KindEllipsis, Text: "...", Pos: pos})
			} else {
				d, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				ann.Dims = append(ann.Dims, d)
			}
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
	}
	return ann, nil
}
