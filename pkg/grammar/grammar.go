// Package grammar declares a participle struct-tag grammar for NewLang
// and a Validate function that runs source through it. It exists purely
// as a shape check: pkg/parser is the executable grammar (a hand-rolled
// precedence climber, see its doc comment for why), but this package
// gives its statement forms and literal-disambiguation rules a second,
// declarative expression (operators form one flat list here, without
// precedence levels); any ordering-driven ambiguity
// fight shows up directly in participle's ordered-choice struct tags
// instead of in prose comments.
package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// newlangGrammarLexer is a simplified, self-contained lexer for this
// shape grammar. It does not need to match pkg/lexer rule-for-rule
// (that scanner additionally threads nested comment/doc-comment/raw-source
// states for the real parser); grammar.Validate only needs enough
// tokenization to recognize the productions below, kept deliberately
// apart from the runtime scanner it checks against.
var newlangGrammarLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Fraction", Pattern: `[0-9][0-9_]*\\[0-9][0-9_]*`},
		{Name: "Number", Pattern: `[0-9][0-9_]*\.[0-9][0-9_]*|[0-9][0-9_]*[eE][+-]?[0-9]+`},
		{Name: "Integer", Pattern: `[0-9][0-9_]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
		{Name: "TypeRef", Pattern: `:[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Local", Pattern: `\$\.?[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Module", Pattern: `@\.?[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Native", Pattern: `%[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Op", Pattern: `::=|::-|-->|<->|<=>|:=|:-|===|==|!=|<=|>=|~~~|~~|!~~|!~|&&|\|\||\+\+|\*\*|//|<<|>>|\.\.\.|\.\.|[-+*/%~<>=!&|^]`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Punct", Pattern: `[(){}\[\],;:.?]`},
	},
})

// Program is the shape of a whole source file: `;`-terminated statements.
type Program struct {
	Pos   lexer.Position
	Stmts []*Statement `(@@ ";")* @@? `
}

// Statement mirrors spec §4.3's dispatch: guarded forms first (so a `[`
// that opens a guard is tried before falling back to a tensor literal),
// then Return/Break, then assignment-or-expression.
type Statement struct {
	Pos        lexer.Position
	Conditional *ConditionalChain `  @@`
	Repeat      *Repeat           `| @@`
	Return      *Wrapped          `| "-" "-" @@ "-" "-"`
	Break       *Wrapped          `| "++" @@ "++"`
	FuncDef     *FunctionDef      `| @@`
	Assignment  *Assignment       `| @@`
	Expr        *Expr             `| @@`
}

// Wrapped is a single expression bracketed by a Return/Break delimiter pair.
type Wrapped struct {
	Pos   lexer.Position
	Value *Expr `@@`
}

// ConditionalChain is `[g1] --> b1, [g2] --> b2, ...` (spec §4.3).
type ConditionalChain struct {
	Pos      lexer.Position
	Branches []*Branch `@@ ("," @@)*`
}

// Branch is one `[guard] --> body` arm.
type Branch struct {
	Pos   lexer.Position
	Guard *Expr `"[" @@ "]" "-->"`
	Body  *Expr `@@`
}

// Repeat is `[guard] <-> body` (spec §4.3).
type Repeat struct {
	Pos   lexer.Position
	Guard *Expr `"[" @@ "]" "<->"`
	Body  *Expr `@@`
}

// FunctionDef is `name(params) [:Type] (:=|::=|:-|::-) body` (spec §4.7).
type FunctionDef struct {
	Pos        lexer.Position
	Name       string   `@Ident`
	Params     []*Param `"(" (@@ ("," @@)*)? ")"`
	ReturnType *TypeRef `@@?`
	Op         string   `@(":=" | "::=" | ":-" | "::-")`
	Body       *Expr    `@@`
}

// Param is one formal parameter, with an optional default or a trailing
// variadic marker (spec §4.7).
type Param struct {
	Pos      lexer.Position
	Name     string `@Ident`
	Variadic bool   `( @"..."`
	Default  *Expr  `| ("=" @@)? )`
}

// Assignment is `lhs (:=|::=|=) rhs` (spec §4.5).
type Assignment struct {
	Pos   lexer.Position
	Left  *Expr  `@@`
	Op    string `@("::=" | ":=" | "=")`
	Right *Expr  `@@`
}

// TypeRef is a `:TypeName` annotation with optional dimensions.
type TypeRef struct {
	Pos  lexer.Position
	Name string  `@TypeRef`
	Dims []*Expr `("[" (@@ ("," @@)*)? "]")?`
}

// Expr is the entry point into the precedence ladder; every tier,
// including || and &&, collapses into a Primary followed by a single flat
// BinOps list rather than one struct per precedence level — this package is a shape check, not the executable grammar, so
// it does not need to reproduce every one of the eleven levels
// structurally.
type Expr struct {
	Pos    lexer.Position
	Left   *Primary    `@@`
	BinOps []*BinaryOp `@@*`
}

// BinaryOp is one `op operand` suffix.
type BinaryOp struct {
	Pos   lexer.Position
	Op    string   `@("||" | "&&" | "===" | "==" | "!=" | "<=" | ">=" | "<" | ">" | "<=>" | "~~~" | "~~" | "!~~" | "!~" | "~" | "|" | "^" | "&" | "<<" | ">>" | "+" | "-" | "++" | "*" | "/" | "//" | "%" | "**")`
	Right *Primary `@@`
}

// Primary is a postfix-decorated operand (spec §4.3's highest tier).
type Primary struct {
	Pos     lexer.Position
	Unary   *UnaryExpr `  @@`
	Operand *Operand   `| @@`
	Suffix  []*Suffix  `@@*`
}

// UnaryExpr is a prefixed `-`/`+` operand.
type UnaryExpr struct {
	Pos     lexer.Position
	Op      string   `@("-" | "+")`
	Operand *Operand `@@`
}

// Suffix is one postfix tier: field access, indexing, call, or an
// iterator marker (spec §4.8).
type Suffix struct {
	Pos   lexer.Position
	Field string  `  "." @Ident`
	Index *Expr   `| "[" @@ "]"`
	Call  []*Expr `| "(" (@@ ("," @@)*)? ")"`
	Iter  string  `| @("!" "!" | "!" "?" | "?" "!" | "?" "?" | "!" | "?")`
}

// Operand is a literal, name reference, grouped/dict expression, tensor
// literal, or block.
type Operand struct {
	Pos     lexer.Position
	Number  *string `  @Number`
	Integer *string `| @Integer`
	Frac    *string `| @Fraction`
	Str     *string `| @String`
	Local   *string `| @Local`
	Module  *string `| @Module`
	Native  *string `| @Native`
	Type    *TypeRef `| @@`
	Ident   *string `| @Ident`
	Paren   *ParenOrDict `| @@`
	Tensor  *Tensor `| @@`
	Block   *Block  `| @@`
}

// ParenOrDict is `(expr)` grouping or a trailing-comma dict literal
// (spec §4.3: "trailing comma mandatory to disambiguate from grouping").
type ParenOrDict struct {
	Pos     lexer.Position
	Entries []*DictEntry `"(" (@@ ("," @@)*)? ","? ")"`
}

// DictEntry is one `[name=]value` dict member.
type DictEntry struct {
	Pos   lexer.Position
	Name  string `(@Ident "=")?`
	Value *Expr  `@@`
}

// Tensor is a `[e1, e2,]` literal, optionally `:Type`-annotated.
type Tensor struct {
	Pos      lexer.Position
	Elements []*Expr  `"[" (@@ ("," @@)*)? ","? "]"`
	Type     *TypeRef `@@?`
}

// Block is `{ stmt; stmt; }` with an optional purity marker.
type Block struct {
	Pos    lexer.Position
	Purity string       `"{" @("-" | "+" | "^" | "*")?`
	Stmts  []*Statement `(@@ ";")* @@?`
	Close  string       `@("-" | "+" | "^" | "*")? "}"`
}

// Grammar wraps a built participle parser for Program.
type Grammar struct {
	parser *participle.Parser[Program]
}

// New builds the shape-check parser.
func New() (*Grammar, error) {
	p, err := participle.Build[Program](
		participle.Lexer(newlangGrammarLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(16),
	)
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	return &Grammar{parser: p}, nil
}

// Validate parses src purely for production-shape conformance, the
// declarative counterpart to pkg/parser's hand-rolled climb. cmd/newlang's
// `lint` subcommand runs this alongside the real parser so a grammar-shape
// regression surfaces even if the hand-rolled parser's backtracking papers
// over it.
func Validate(src string) error {
	g, err := New()
	if err != nil {
		return err
	}
	if _, err := g.parser.ParseString("", src); err != nil {
		return fmt.Errorf("grammar shape check: %w", err)
	}
	return nil
}
