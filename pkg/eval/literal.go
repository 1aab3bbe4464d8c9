package eval

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// VisitLiteral evaluates every leaf-value Kind (spec §4.1's scalar/
// string/fraction literals, plus the `_`-as-argument and `...` markers
// that can surface as bare terms).
func (e *Evaluator) VisitLiteral(t *ast.Term) any {
	switch t.Kind {
	case ast.KindInteger:
		return e.evalIntLiteral(t)
	case ast.KindNumber:
		return e.evalFloatLiteral(t)
	case ast.KindStrChar, ast.KindStrWide:
		text, wide := decodeString(t.Text)
		return object.NewString(text, wide)
	case ast.KindFraction:
		return e.evalFractionLiteral(t)
	case ast.KindEllipsis:
		return object.Ellipsis
	case ast.KindNone:
		return object.None
	case ast.KindArgument:
		return object.NewString(t.Text, false)
	default:
		panic(runtimeErr(t, "unsupported literal term kind %d", t.Kind))
	}
}

// evalIntLiteral parses an Integer term, honoring an attached :Type
// annotation's declared kind (bounds already checked at parse time by
// pkg/parser) and otherwise inferring the narrowest fitting kind.
func (e *Evaluator) evalIntLiteral(t *ast.Term) object.Object {
	text := strings.ReplaceAll(t.Text, "_", "")
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		panic(valueErr(t, "malformed integer literal %q: %v", t.Text, err))
	}
	kind := types.Narrowest(v)
	if t.Type != nil {
		if k, ok := types.Lookup(t.Type.Name); ok {
			kind = k
		}
	}
	return object.NewScalar(kind, float64(v))
}

func (e *Evaluator) evalFloatLiteral(t *ast.Term) object.Object {
	text := strings.ReplaceAll(t.Text, "_", "")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		panic(valueErr(t, "malformed number literal %q: %v", t.Text, err))
	}
	kind := types.Float64
	if t.Type != nil {
		if k, ok := types.Lookup(t.Type.Name); ok {
			kind = k
		}
	}
	return object.NewScalar(kind, v)
}

// evalFractionLiteral parses "N\D" (the lexer's Fraction token keeps the
// backslash verbatim; it is never treated as an escape here).
func (e *Evaluator) evalFractionLiteral(t *ast.Term) object.Object {
	parts := strings.SplitN(t.Text, `\`, 2)
	if len(parts) != 2 {
		panic(valueErr(t, "malformed fraction literal %q", t.Text))
	}
	num, ok := new(big.Int).SetString(strings.ReplaceAll(parts[0], "_", ""), 10)
	if !ok {
		panic(valueErr(t, "malformed fraction numerator %q", parts[0]))
	}
	den, ok := new(big.Int).SetString(strings.ReplaceAll(parts[1], "_", ""), 10)
	if !ok {
		panic(valueErr(t, "malformed fraction denominator %q", parts[1]))
	}
	f, err := object.NewFractionBig(num, den)
	if err != nil {
		panic(err)
	}
	return f
}

// decodeString unescapes a raw string/template token's text and reports
// whether it is a wide (double-quoted) string. It inspects the token's
// own leading/trailing quote characters rather than trusting t.Kind,
// because pkg/parser's parsePrimary maps every Template token (both
// '''...''' and """...""" triple-quote forms) to ast.KindStrChar unless
// the lexer itself classified the token token.StrWide — which a Template
// token never is. Working around that here, rather than in the parser,
// keeps this fix local to the one place that actually cares about the
// wide/narrow distinction at runtime.
func decodeString(raw string) (text string, wide bool) {
	switch {
	case strings.HasPrefix(raw, `"""`) && strings.HasSuffix(raw, `"""`) && len(raw) >= 6:
		return unescape(raw[3 : len(raw)-3]), true
	case strings.HasPrefix(raw, `'''`) && strings.HasSuffix(raw, `'''`) && len(raw) >= 6:
		return unescape(raw[3 : len(raw)-3]), false
	case strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2:
		return unescape(raw[1 : len(raw)-1]), true
	case strings.HasPrefix(raw, `'`) && strings.HasSuffix(raw, `'`) && len(raw) >= 2:
		return unescape(raw[1 : len(raw)-1]), false
	default:
		return unescape(raw), false
	}
}

// unescape decodes the C-style escapes spec §4.1 describes, plus `\s`
// for a literal space (the one NewLang-specific addition spec.md calls
// out by name).
func unescape(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' || i+1 >= len(r) {
			b.WriteRune(r[i])
			continue
		}
		i++
		switch r[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '0':
			b.WriteRune(0)
		case 's':
			b.WriteRune(' ')
		case '\\':
			b.WriteRune('\\')
		case '\'':
			b.WriteRune('\'')
		case '"':
			b.WriteRune('"')
		default:
			b.WriteRune(r[i])
		}
	}
	return b.String()
}
