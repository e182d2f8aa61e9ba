package scanner

import (
	"fmt"

	"lox/interpreter-go/pkg/diagnostic"
)

// Reason classifies a scan failure.
type Reason int

const (
	ReasonUnexpectedCharacter Reason = iota
	ReasonUnterminatedString
	ReasonInvalidNumber
)

func (r Reason) String() string {
	switch r {
	case ReasonUnexpectedCharacter:
		return "unexpected character"
	case ReasonUnterminatedString:
		return "unterminated string literal"
	case ReasonInvalidNumber:
		return "invalid number literal"
	default:
		return fmt.Sprintf("unknown_reason_%d", int(r))
	}
}

// Error is a fatal scan diagnostic. Text is the offending character, the
// partial string contents, or the rejected number text.
type Error struct {
	Line   int
	Reason Reason
	Text   string
}

var _ diagnostic.Diagnostic = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Detail())
}

func (e *Error) Category() diagnostic.Category { return diagnostic.CategoryScan }

func (e *Error) SourceLine() int { return e.Line }

func (e *Error) Detail() string {
	switch e.Reason {
	case ReasonUnexpectedCharacter:
		return fmt.Sprintf("unexpected character '%s'", e.Text)
	case ReasonUnterminatedString:
		return fmt.Sprintf("unterminated string literal: \"%s", e.Text)
	case ReasonInvalidNumber:
		return fmt.Sprintf("invalid number literal `%s`", e.Text)
	default:
		return e.Reason.String()
	}
}
