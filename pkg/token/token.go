package token

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = [...]string{
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Identifier:   "identifier",
	String:       "string",
	Number:       "number",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	For:          "for",
	Fun:          "fun",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
	EOF:          "EOF",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// IsLiteral reports whether tokens of this kind carry a payload.
func (k Kind) IsLiteral() bool {
	return k == Identifier || k == String || k == Number
}

// Keywords maps each reserved word to its kind. Lookup is exact and case-sensitive.
var Keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupIdentifier returns the keyword kind for text, or Identifier.
func LookupIdentifier(text string) Kind {
	if kind, ok := Keywords[text]; ok {
		return kind
	}
	return Identifier
}

// Token is a classified lexical unit with the line it started on.
// Lexeme holds identifier names and string contents; Number holds the
// value of a number literal.
type Token struct {
	Kind   Kind    `json:"kind"`
	Lexeme string  `json:"lexeme"`
	Number float64 `json:"number"`
	Line   int     `json:"line"`
}

// New builds a payload-free token.
func New(kind Kind, line int) Token {
	return Token{Kind: kind, Line: line}
}

// NewIdentifier builds an identifier token.
func NewIdentifier(name string, line int) Token {
	return Token{Kind: Identifier, Lexeme: name, Line: line}
}

// NewString builds a string literal token holding the unquoted contents.
func NewString(contents string, line int) Token {
	return Token{Kind: String, Lexeme: contents, Line: line}
}

// NewNumber builds a number literal token.
func NewNumber(value float64, line int) Token {
	return Token{Kind: Number, Number: value, Line: line}
}

// Text renders the token in a form the scanner reads back as the same kind.
func (t Token) Text() string {
	switch t.Kind {
	case Identifier:
		return t.Lexeme
	case String:
		return `"` + t.Lexeme + `"`
	case Number:
		return FormatNumber(t.Number)
	case EOF:
		return ""
	default:
		return t.Kind.String()
	}
}

func (t Token) String() string {
	if t.Kind.IsLiteral() {
		return fmt.Sprintf("%s %s", t.Kind, t.Text())
	}
	return t.Kind.String()
}

// FormatNumber renders a float64 in its shortest decimal form, without an
// exponent and without a trailing ".0" for integral values.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
