// Package dsl parses .axis description files:
//
//	plot Latency v1 {
//	  meta { title: "Latency" }
//	  resources { color Ink = #333333 }
//	  viewport 400 300 {
//	    axis x { point1: [0.1, 0.1]; point2: [0.9, 0.1]; range: [0, 100] }
//	  }
//	}
package dsl

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var documentParser = participle.MustBuild[Document](
	participle.Lexer(axisLexer),
	participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
)

// Parse parses an .axis document from r.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses an .axis document held in a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// Document is the root node: `plot <Name> <Version> { sections }`.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'plot' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section 是顶层段落，三者取其一。
type Section struct {
	Meta      *MetaSection      `parser:"  @@"`
	Resources *ResourcesSection `parser:"| @@"`
	Viewport  *ViewportSection  `parser:"| @@"`
}

// Kind 返回段落类型名。
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Resources != nil:
		return "resources"
	case s.Viewport != nil:
		return "viewport"
	}
	return "unknown"
}

// MetaSection holds document metadata assignments (title, author, ...).
type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// ResourcesSection holds `color` and `style` declarations.
type ResourcesSection struct {
	Block *Block `parser:"'resources' @@"`
}

// ViewportSection is one drawing surface, `viewport <w> <h> { axis ... }`.
type ViewportSection struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Params []*Lexeme      `parser:"'viewport' @@*"`
	Block  *Block         `parser:"@@"`
}

// Block 是花括号内的语句序列，语句之间用换行或分号分隔。
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is either `key: value` or `name args... { block }`.
type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	Command    *Command    `parser:"| @@"`
}

// Assignment is `key: value`.
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is a named statement with raw arguments and an optional block,
// e.g. `axis x { ... }` or `color Ink = #333333`.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// Value 是赋值右侧的值。不是字符串、数字、颜色、数组或对象的内容按原始 token 保留（Expr）。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Object *InlineObject  `parser:"| @@"`
	Expr   *Expression    `parser:"| @@"`
}

// ArrayValue is `[a, b]`; items may also be separated by `;` or newlines.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// InlineObject is `{ key: value; key: value }`.
type InlineObject struct {
	Entries []*Assignment `parser:"'{' Newline* ( @@ Newline* ( (';' | Newline+) Newline* @@ Newline* )* )? Newline* '}'"`
}

// Expression is a bare value such as `mono` or `hsl(120, 1, 0.25)`.
type Expression struct {
	Parts []*Lexeme
}

// Parse implements participle.Parseable. Tokens are collected until a separator
// at nesting level zero: newline, `;`, `,`, `]` or a brace.
func (e *Expression) Parse(lex *lexer.PeekingLexer) error {
	nesting := 0
	for !endsExpression(lex.Peek(), nesting) {
		part, err := take(lex)
		if err != nil {
			return err
		}
		switch part.Raw {
		case "(", "[":
			nesting++
		case ")", "]":
			if nesting > 0 {
				nesting--
			}
		}
		e.Parts = append(e.Parts, &part)
	}
	if len(e.Parts) == 0 {
		return participle.NextMatch
	}
	return nil
}

func endsExpression(tok *lexer.Token, nesting int) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	if nesting > 0 {
		return false
	}
	switch tok.Type {
	case tokNewline, tokLBrace, tokRBrace:
		return true
	case tokSymbol:
		return tok.Value == ";" || tok.Value == "," || tok.Value == "]"
	}
	return false
}
