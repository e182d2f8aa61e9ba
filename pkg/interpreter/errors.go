package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/runtime"
)

// RuntimeError is raised while evaluating a tree. Operator, Left and Right
// are set for operator type errors.
type RuntimeError struct {
	Line     int
	Message  string
	Operator string
	Left     runtime.Value
	Right    runtime.Value
}

var _ diagnostic.Diagnostic = (*RuntimeError)(nil)

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *RuntimeError) Category() diagnostic.Category { return diagnostic.CategoryRuntime }

func (e *RuntimeError) SourceLine() int { return e.Line }

func (e *RuntimeError) Detail() string { return e.Message }

func unsupported(line int, message string) *RuntimeError {
	return &RuntimeError{Line: line, Message: message}
}
