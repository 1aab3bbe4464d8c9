// Package lexer turns NewLang source text (already macro-expanded, see
// pkg/macro) into a flat token stream for pkg/parser.
//
// The scanner is built on participle's stateful lexer: a Root state plus
// nested push/pop states for constructs that can contain arbitrary source
// recursively (here: block comments, doc comments and raw-source blocks).
// Triple-quoted templates are single Root rules, not states.
package lexer

import (
	"fmt"

	plex "github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/newlang/pkg/token"
)

// newlangLexer mirrors guixLexer's shape (lexer.MustStateful with named
// states and Push/Pop transitions) but is sized to NewLang's richer token
// surface: nested block comments, doc comments and raw-source escapes
// each get their own state so nesting survives.
var newlangLexer = plex.MustStateful(plex.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "LineComment", Pattern: `#[^\n]*`},
		{Name: "DocAfter", Pattern: `///<[^\n]*`},
		{Name: "DocLine", Pattern: `///[^\n]*`},
		{Name: "DocBlockOpen", Pattern: `/\*\*`, Action: plex.Push("DocComment")},
		{Name: "CommentOpen", Pattern: `/\*`, Action: plex.Push("Comment")},
		{Name: "RawOpen", Pattern: `\{%`, Action: plex.Push("Raw")},
		{Name: "TripleWide", Pattern: `(?s)"""(?:[^"\\]|\\.|""(?!"))*"""`},
		{Name: "TripleChar", Pattern: `(?s)'''(?:[^'\\]|\\.|''(?!'))*'''`},
		{Name: "StrWide", Pattern: `"(?:\\.|[^"\\\n])*"`},
		{Name: "StrChar", Pattern: `'(?:\\.|[^'\\\n])*'`},
		{Name: "Fraction", Pattern: `[0-9][0-9_]*\\[0-9][0-9_]*`},
		{Name: "Number", Pattern: `[0-9][0-9_]*\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?|[0-9][0-9_]*[eE][+-]?[0-9]+`},
		{Name: "Integer", Pattern: `[0-9][0-9_]*`},
		{Name: "Ellipsis", Pattern: `\.\.\.`},
		{Name: "Range", Pattern: `\.\.`},
		{Name: "Arrow", Pattern: `-->`},
		{Name: "Repeat", Pattern: `<->`},
		{Name: "CreateOrAssignDash", Pattern: `::-`},
		{Name: "CreateOnlyDash", Pattern: `:-`},
		{Name: "CreateOnly", Pattern: `::=`},
		{Name: "Assign", Pattern: `:=`},
		{Name: "Spaceship", Pattern: `<=>`},
		{Name: "AccurateEq", Pattern: `===`},
		{Name: "Op", Pattern: `==|!=|<=|>=|~~~|~~|!~~|!~|&&|\|\||\+\+|--|\*\*|//|<<|>>|\?\?|!\?|\?!|!!|[-+*/%~<>!&|^?]`},
		{Name: "AssignOnly", Pattern: `=`},
		{Name: "Local", Pattern: `\$\.?[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "MacroArg", Pattern: `\$\*|\$[0-9]+`},
		{Name: "Module", Pattern: `@\.?[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*`},
		{Name: "Native", Pattern: `%[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "TypeRef", Pattern: `:[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "MacroUse", Pattern: `\\[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Backquote", Pattern: "`"},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Punct", Pattern: `[(){}\[\],;:.]`},
	},
	"Comment": {
		{Name: "CommentOpenNested", Pattern: `/\*`, Action: plex.Push("Comment")},
		{Name: "CommentClose", Pattern: `\*/`, Action: plex.Pop()},
		{Name: "CommentBody", Pattern: `(?s)(?:[^*/]|\*(?!/)|/(?!\*))+`},
	},
	"DocComment": {
		{Name: "DocCommentOpenNested", Pattern: `/\*\*`, Action: plex.Push("DocComment")},
		{Name: "DocCommentClose", Pattern: `\*/`, Action: plex.Pop()},
		{Name: "DocCommentBody", Pattern: `(?s)(?:[^*/]|\*(?!/)|/(?!\*))+`},
	},
	"Raw": {
		{Name: "RawOpenNested", Pattern: `\{%`, Action: plex.Push("Raw")},
		{Name: "RawClose", Pattern: `%\}`, Action: plex.Pop()},
		{Name: "RawBody", Pattern: `(?s)(?:[^%{}]|%(?!\})|\{(?!%)|\}(?!%))+`},
	},
})

// kindOf maps participle rule names to token.Kind.
var kindOf = map[string]token.Kind{
	"DocAfter": token.DocAfter, "DocLine": token.DocBefore,
	"DocBlockOpen": token.DocBefore, "DocCommentBody": token.DocBefore,
	"DocCommentClose": token.DocBefore, "DocCommentOpenNested": token.DocBefore,
	"RawOpen": token.RawSource, "RawClose": token.RawSource,
	"RawBody": token.RawSource, "RawOpenNested": token.RawSource,
	"TripleWide": token.Template, "TripleChar": token.Template,
	"StrWide": token.StrWide, "StrChar": token.StrChar,
	"Fraction": token.Fraction, "Number": token.Number, "Integer": token.Integer,
	"Ellipsis": token.Ellipsis, "Range": token.RangeOp,
	"Arrow": token.Arrow, "Repeat": token.Repeat,
	"CreateOrAssignDash": token.CreateOrAssignDash, "CreateOnlyDash": token.CreateOnlyDash,
	"CreateOnly": token.CreateOnly, "Assign": token.Assign,
	"Spaceship": token.Symbol, "Op": token.Symbol, "AccurateEq": token.Symbol,
	"AssignOnly": token.AssignOnly,
	"Local": token.Local, "MacroArg": token.MacroArg, "Module": token.Module,
	"Native": token.Native, "TypeRef": token.TypeName, "MacroUse": token.MacroUse,
	"Backquote": token.Backquote, "Ident": token.Ident,
}

var punctKind = map[string]token.Kind{
	"(": token.LParen, ")": token.RParen,
	"{": token.LBrace, "}": token.RBrace,
	"[": token.LBracket, "]": token.RBracket,
	",": token.Comma, ";": token.Semicolon, ":": token.Colon, ".": token.Dot,
}

// Lex scans src (a single already-macro-expanded source buffer) and
// returns the flat, comment-stripped token stream used by pkg/parser.
// Doc comments are retained (spec §4.1: "emitted as separate tokens").
func Lex(filename, src string) ([]token.Token, error) {
	l, err := newlangLexer.LexString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("lex %s: %w", filename, err)
	}
	symbols := newlangLexer.Symbols()
	names := make(map[plex.TokenType]string, len(symbols))
	for name, tt := range symbols {
		names[tt] = name
	}

	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, fmt.Errorf("lex %s: %w", filename, err)
		}
		if tok.EOF() {
			out = append(out, token.Token{Kind: token.EOF, Pos: toPos(filename, tok.Pos)})
			break
		}
		name := names[tok.Type]
		switch name {
		case "Whitespace", "LineComment", "CommentOpen", "CommentBody",
			"CommentClose", "CommentOpenNested":
			continue
		}
		kind, ok := punctKind[tok.Value]
		if !ok {
			kind, ok = kindOf[name]
		}
		if !ok {
			return nil, fmt.Errorf("lex %s: unrecognized token %q at %s", filename, tok.Value, toPos(filename, tok.Pos))
		}
		out = append(out, token.Token{Kind: kind, Text: tok.Value, Pos: toPos(filename, tok.Pos)})
	}
	return mergeRuns(out), nil
}

// mergeRuns collapses consecutive RawSource / DocBefore fragments (the
// Push/Pop states emit one token per open/body/close piece) into a single
// token each, so the parser sees one RawSource or DocBefore token per
// construct instead of a run of three-plus.
func mergeRuns(in []token.Token) []token.Token {
	out := make([]token.Token, 0, len(in))
	for i := 0; i < len(in); i++ {
		t := in[i]
		if t.Kind != token.RawSource && t.Kind != token.DocBefore {
			out = append(out, t)
			continue
		}
		start := t
		text := t.Text
		j := i + 1
		for j < len(in) && in[j].Kind == t.Kind {
			text += in[j].Text
			j++
		}
		start.Text = text
		out = append(out, start)
		i = j - 1
	}
	return out
}

func toPos(filename string, p plex.Position) token.Position {
	return token.Position{Filename: filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}
