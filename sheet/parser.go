// Package sheet reads poster sheets: small text files that describe one or
// more posters in a block syntax.
//
//	poster standard {
//	  title: "Operador de Produção"
//	  code: "20632"
//	  pcd: false
//	  contact: site "novotemporh.com.br"
//	}
//	compiled marisa {
//	  job "123" "Vendedor(a)"
//	}
package sheet

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	sheetLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}:;]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File is the root AST node: any number of sheets.
type File struct {
	Sheets []*Block `parser:"@@*"`
}

// Block is one `poster` or `compiled` sheet.
type Block struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Kind       string         `parser:"@( 'poster' | 'compiled' )"`
	Variant    string         `parser:"@Ident?"`
	Statements []*Statement   `parser:"'{' ( @@ ';'? )* '}'"`
}

// Statement is a job entry or a key: value assignment.
type Statement struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Job        *JobEntry      `parser:"  @@"`
	Assignment *Assignment    `parser:"| @@"`
}

// JobEntry is `job "code" "title"` inside a compiled sheet.
type JobEntry struct {
	Code  Scalar        `parser:"'job' @@"`
	Title StringLiteral `parser:"@String"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident ':'"`
	Value *Value `parser:"@@"`
}

// Value is the right-hand side of an assignment.
type Value struct {
	Pos    lexer.Position `parser:"" json:"-"`
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Bool   *Boolean       `parser:"| @( 'true' | 'false' )"`
	Tagged *Tagged        `parser:"| @@"`
}

// Kind names the value's shape for error messages.
func (v *Value) Kind() string {
	switch {
	case v == nil:
		return "nothing"
	case v.String != nil:
		return "string"
	case v.Number != nil:
		return "number"
	case v.Bool != nil:
		return "boolean"
	case v.Tagged != nil:
		return "tagged value"
	default:
		return "unknown"
	}
}

// Tagged is an identifier followed by a string, as in `whatsapp "119..."`.
type Tagged struct {
	Tag   string        `parser:"@Ident"`
	Value StringLiteral `parser:"@String"`
}

// Scalar is a string or a bare number.
type Scalar struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
}

// Text returns the scalar as a string.
func (s Scalar) Text() string {
	if s.String != nil {
		return string(*s.String)
	}
	if s.Number != nil {
		return *s.Number
	}
	return ""
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

// Boolean captures true/false keywords.
type Boolean bool

// Capture implements participle.Capture.
func (b *Boolean) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("boolean capture requires value")
	}
	*b = values[0] == "true"
	return nil
}

// Parse parses sheet content from r. filename only labels positions.
func Parse(filename string, r io.Reader) (*File, error) {
	f, err := fileParser.Parse(filename, r)
	if err != nil {
		return nil, syntaxError(err)
	}
	return f, nil
}

// ParseString parses sheet content from a string.
func ParseString(filename, input string) (*File, error) {
	f, err := fileParser.ParseString(filename, input)
	if err != nil {
		return nil, syntaxError(err)
	}
	return f, nil
}
