package ast

// Children returns the direct child nodes of node in source order.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *Program:
		out := make([]Node, 0, len(n.Statements))
		for _, stmt := range n.Statements {
			out = append(out, stmt)
		}
		return out
	case *ExpressionStatement:
		return nonNil(n.Expression)
	case *PrintStatement:
		return nonNil(n.Expression)
	case *Assign:
		return nonNil(n.Value)
	case *Binary:
		return nonNil(n.Left, n.Right)
	case *Call:
		out := nonNil(n.Callee)
		for _, arg := range n.Arguments {
			out = append(out, nonNil(arg)...)
		}
		return out
	case *Get:
		return nonNil(n.Object)
	case *Grouping:
		return nonNil(n.Expression)
	case *Logical:
		return nonNil(n.Left, n.Right)
	case *Set:
		return nonNil(n.Object, n.Value)
	case *Unary:
		return nonNil(n.Operand)
	default:
		return nil
	}
}

func nonNil(exprs ...Expression) []Node {
	out := make([]Node, 0, len(exprs))
	for _, expr := range exprs {
		if expr != nil {
			out = append(out, expr)
		}
	}
	return out
}

// Walk visits node and its descendants depth-first, parents before
// children. Returning false from visit skips the node's children.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, visit)
	}
}

// ClearLines zeroes the line of every node under root.
func ClearLines(root Node) {
	Walk(root, func(n Node) bool {
		n.setLine(0)
		return true
	})
}
