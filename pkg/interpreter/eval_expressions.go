package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Evaluate computes the value of expr.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		val, err := runtime.FromLiteral(n.Value)
		if err != nil {
			return nil, unsupported(n.SourceLine(), err.Error())
		}
		return val, nil
	case *ast.Grouping:
		return i.Evaluate(n.Expression)
	case *ast.Unary:
		return i.evaluateUnary(n)
	case *ast.Binary:
		return i.evaluateBinary(n)
	case nil:
		return nil, unsupported(0, "missing expression")
	default:
		return nil, unsupported(expr.SourceLine(), fmt.Sprintf("unsupported expression type: %s", n.NodeType()))
	}
}

func (i *Interpreter) evaluateUnary(n *ast.Unary) (runtime.Value, error) {
	operand, err := i.Evaluate(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case ast.UnaryNot:
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	case ast.UnaryNegate:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, &RuntimeError{
				Line:     n.SourceLine(),
				Message:  fmt.Sprintf("%s cannot be negated", describeOperand(operand)),
				Operator: string(n.Operator),
				Left:     operand,
			}
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, unsupported(n.SourceLine(), fmt.Sprintf("unsupported unary operator %q", n.Operator))
	}
}

// operatorVerbs phrase each binary operator for type errors.
var operatorVerbs = map[ast.BinaryOperator][2]string{
	ast.BinaryAdd:          {"added", "added to"},
	ast.BinarySubtract:     {"subtracted from", "subtracted by"},
	ast.BinaryMultiply:     {"multiplied", "multiplied by"},
	ast.BinaryDivide:       {"divided", "divided by"},
	ast.BinaryLess:         {"compared", "compared with"},
	ast.BinaryLessEqual:    {"compared", "compared with"},
	ast.BinaryGreater:      {"compared", "compared with"},
	ast.BinaryGreaterEqual: {"compared", "compared with"},
	ast.BinaryEqual:        {"tested for equality", "tested for equality with"},
	ast.BinaryNotEqual:     {"tested for equality", "tested for equality with"},
}

// Operands are evaluated left then right; both are evaluated before any
// type check.
func (i *Interpreter) evaluateBinary(n *ast.Binary) (runtime.Value, error) {
	left, err := i.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case ast.BinaryEqual, ast.BinaryNotEqual:
		equal, ok := runtime.Equal(left, right)
		if !ok {
			return nil, i.mismatch(n, left, right, true)
		}
		if n.Operator == ast.BinaryNotEqual {
			equal = !equal
		}
		return runtime.BoolValue{Val: equal}, nil
	case ast.BinaryAdd:
		switch l := left.(type) {
		case runtime.NumberValue:
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
			return nil, i.mismatch(n, left, right, true)
		case runtime.StringValue:
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
			return nil, i.mismatch(n, left, right, true)
		default:
			return nil, i.mismatch(n, left, right, false)
		}
	}

	l, ok := left.(runtime.NumberValue)
	if !ok {
		return nil, i.mismatch(n, left, right, false)
	}
	r, ok := right.(runtime.NumberValue)
	if !ok {
		return nil, i.mismatch(n, left, right, true)
	}
	switch n.Operator {
	case ast.BinarySubtract:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case ast.BinaryMultiply:
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	case ast.BinaryDivide:
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	case ast.BinaryLess:
		return runtime.BoolValue{Val: l.Val < r.Val}, nil
	case ast.BinaryLessEqual:
		return runtime.BoolValue{Val: l.Val <= r.Val}, nil
	case ast.BinaryGreater:
		return runtime.BoolValue{Val: l.Val > r.Val}, nil
	case ast.BinaryGreaterEqual:
		return runtime.BoolValue{Val: l.Val >= r.Val}, nil
	default:
		return nil, unsupported(n.SourceLine(), fmt.Sprintf("unsupported binary operator %q", n.Operator))
	}
}

// mismatch builds the type error for n. When leftValid is true the left
// operand was acceptable and the right one is named as the fault.
func (i *Interpreter) mismatch(n *ast.Binary, left, right runtime.Value, leftValid bool) *RuntimeError {
	verbs, ok := operatorVerbs[n.Operator]
	if !ok {
		verbs = [2]string{"used", "used with"}
	}
	var message string
	if leftValid {
		message = fmt.Sprintf("%s cannot be %s %s", describeOperand(left), verbs[1], describeOperand(right))
	} else {
		message = fmt.Sprintf("%s cannot be %s", describeOperand(left), verbs[0])
	}
	return &RuntimeError{
		Line:     n.SourceLine(),
		Message:  message,
		Operator: string(n.Operator),
		Left:     left,
		Right:    right,
	}
}

func describeOperand(v runtime.Value) string {
	return fmt.Sprintf("value [%s] of type %s", runtime.Format(v), runtime.TypeName(v))
}
