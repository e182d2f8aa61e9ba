package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/token"
)

// Error reports the first token the grammar could not accept.
type Error struct {
	Line     int
	Message  string
	Expected string
	Found    token.Token
}

var _ diagnostic.Diagnostic = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Detail())
}

func (e *Error) Category() diagnostic.Category { return diagnostic.CategoryParse }

func (e *Error) SourceLine() int { return e.Line }

func (e *Error) Detail() string {
	return fmt.Sprintf("%s, found %s", e.Message, describeToken(e.Found))
}

func describeToken(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "end of input"
	case tok.Kind.IsLiteral():
		return fmt.Sprintf("%s `%s`", tok.Kind, tok.Text())
	default:
		return fmt.Sprintf("`%s`", tok.Kind)
	}
}
