package interpreter

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
)

// Interpreter evaluates syntax trees directly. It keeps no state between
// statements; the only side effect is output written by print.
type Interpreter struct {
	out io.Writer
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the destination of print statements.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{out: os.Stdout}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run scans, parses and executes source. The first diagnostic from any
// stage is returned unchanged.
func (i *Interpreter) Run(source string) error {
	tokens, err := scanner.ScanTokens(source)
	if err != nil {
		return err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	return i.ExecuteProgram(program)
}

// RunFile reads path and runs its contents.
func (i *Interpreter) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return i.Run(string(data))
}

// ExecuteProgram executes statements in order and stops at the first failure.
func (i *Interpreter) ExecuteProgram(program *ast.Program) error {
	if program == nil {
		return nil
	}
	for _, stmt := range program.Statements {
		if err := i.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}
