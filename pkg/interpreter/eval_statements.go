package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Execute runs one statement for its effect.
func (i *Interpreter) Execute(stmt ast.Statement) error {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := i.Evaluate(n.Expression)
		return err
	case *ast.PrintStatement:
		val, err := i.Evaluate(n.Expression)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(i.out, runtime.Format(val)); err != nil {
			return fmt.Errorf("print: %w", err)
		}
		return nil
	case nil:
		return unsupported(0, "missing statement")
	default:
		return unsupported(stmt.SourceLine(), fmt.Sprintf("unsupported statement type: %s", n.NodeType()))
	}
}
