package dsl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// axisLexer 的规则按顺序匹配：Color 要排在 HashComment 之前，否则 #333333 会被当作注释。
var axisLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n+`},
	{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})\b`},
	{Name: "HashComment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:[eE][-+]?\d+)?(?:px|%|x)?`},
	{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:|]`},
	{Name: "LBrace", Pattern: `{`},
	{Name: "RBrace", Pattern: `}`},
})

var (
	kindNames = func() map[lexer.TokenType]string {
		out := map[lexer.TokenType]string{}
		for name, tt := range axisLexer.Symbols() {
			out[tt] = name
		}
		return out
	}()

	tokNewline = kind("Newline")
	tokLBrace  = kind("LBrace")
	tokRBrace  = kind("RBrace")
	tokSymbol  = kind("Symbol")
	tokString  = kind("String")
)

func kind(name string) lexer.TokenType {
	tt, ok := axisLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}

// Lexeme is one raw token kept for later evaluation (command arguments, bare expressions).
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"` // 字符串已去掉引号
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable: a command argument is any token up to the
// end of the line, a brace or `;`.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok.EOF() || tok.Type == tokNewline || tok.Type == tokLBrace || tok.Type == tokRBrace ||
		(tok.Type == tokSymbol && tok.Value == ";") {
		return participle.NextMatch
	}
	next, err := take(lex)
	if err != nil {
		return err
	}
	*l = next
	return nil
}

// take 读入下一个 token 并转换为 Lexeme。
func take(lex *lexer.PeekingLexer) (Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return Lexeme{}, participle.NextMatch
	}
	name, ok := kindNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	val := tok.Value
	if tok.Type == tokString {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Lexeme{}, err
		}
		val = unquoted
	}
	return Lexeme{Type: name, Value: val, Raw: tok.Value, Pos: tok.Pos}, nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}
