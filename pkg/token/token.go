// Package token defines the lexical token kinds and source positions
// shared by pkg/lexer, pkg/macro and pkg/parser.
package token

import "fmt"

// Position identifies a point in a source buffer.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Kind is a closed enumeration of token categories (spec §4.1).
type Kind int

const (
	Invalid Kind = iota
	EOF

	Integer
	Number
	Fraction
	StrChar  // byte string '...'
	StrWide  // wide string "..."
	Template // triple-quoted multiline template
	RawSource
	DocBefore
	DocAfter
	MacroDef
	MacroUse
	MacroArg // $N or $*

	Ident
	Local  // $name
	Module // @name / @pkg.mod
	Native // %name
	TypeName

	Symbol
	Assign     // :=
	CreateOnly // ::=
	AssignOnly // = (assign-only requires pre-existing)
	CreateOrAssignDash // :-
	CreateOnlyDash     // ::-
	Arrow    // -->
	Repeat   // <->
	Return   // --...--
	Break    // ++...++
	RangeOp  // ..
	Ellipsis // ...
	Backquote

	Semicolon
	Comma
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Dot
)

var names = map[Kind]string{
	Invalid: "INVALID", EOF: "EOF",
	Integer: "INTEGER", Number: "NUMBER", Fraction: "FRACTION",
	StrChar: "STRCHAR", StrWide: "STRWIDE", Template: "TEMPLATE",
	RawSource: "RAWSOURCE", DocBefore: "DOCBEFORE", DocAfter: "DOCAFTER",
	MacroDef: "MACRODEF", MacroUse: "MACROUSE", MacroArg: "MACROARG",
	Ident: "IDENT", Local: "LOCAL", Module: "MODULE", Native: "NATIVE",
	TypeName: "TYPENAME", Symbol: "SYMBOL", Assign: "ASSIGN",
	CreateOnly: "CREATEONLY", AssignOnly: "ASSIGNONLY",
	CreateOrAssignDash: "CREATEORASSIGNDASH", CreateOnlyDash: "CREATEONLYDASH",
	Arrow: "ARROW", Repeat: "REPEAT", Return: "RETURN", Break: "BREAK",
	RangeOp: "RANGE", Ellipsis: "ELLIPSIS", Backquote: "BACKQUOTE",
	Semicolon: "SEMI", Comma: "COMMA", LParen: "LPAREN", RParen: "RPAREN",
	LBrace: "LBRACE", RBrace: "RBRACE", LBracket: "LBRACKET", RBracket: "RBRACKET",
	Colon: "COLON", Dot: "DOT",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "UNKNOWN"
}

// Token is one lexical unit produced by pkg/lexer.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Pos)
}
