package ast

import "fmt"

type NodeType string

const (
	NodeAssign              NodeType = "Assign"
	NodeBinary              NodeType = "Binary"
	NodeCall                NodeType = "Call"
	NodeGet                 NodeType = "Get"
	NodeGrouping            NodeType = "Grouping"
	NodeLiteral             NodeType = "Literal"
	NodeLogical             NodeType = "Logical"
	NodeSet                 NodeType = "Set"
	NodeSuper               NodeType = "Super"
	NodeThis                NodeType = "This"
	NodeUnary               NodeType = "Unary"
	NodeVariable            NodeType = "Variable"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeProgram             NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	// SourceLine is the line the node begins on; operator nodes use the
	// operator's line.
	SourceLine() int
	setLine(line int)
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Line int      `json:"line"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) SourceLine() int    { return n.Line }
func (n *nodeImpl) setLine(line int)  { n.Line = line }
func (nodeImpl) isNode()              {}

// SetLine records the source line of node and returns it.
func SetLine[T Node](node T, line int) T {
	node.setLine(line)
	return node
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Operators

type BinaryOperator string

const (
	BinaryLess         BinaryOperator = "<"
	BinaryLessEqual    BinaryOperator = "<="
	BinaryGreater      BinaryOperator = ">"
	BinaryGreaterEqual BinaryOperator = ">="
	BinaryEqual        BinaryOperator = "=="
	BinaryNotEqual     BinaryOperator = "!="
	BinaryMultiply     BinaryOperator = "*"
	BinaryDivide       BinaryOperator = "/"
	BinaryAdd          BinaryOperator = "+"
	BinarySubtract     BinaryOperator = "-"
)

type UnaryOperator string

const (
	UnaryNot    UnaryOperator = "!"
	UnaryNegate UnaryOperator = "-"
)

type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

// Literals

type LiteralKind string

const (
	LiteralNil    LiteralKind = "nil"
	LiteralBool   LiteralKind = "bool"
	LiteralNumber LiteralKind = "number"
	LiteralString LiteralKind = "string"
)

// LiteralValue is a constant carried by a Literal node. Only the field
// matching Kind is meaningful.
type LiteralValue struct {
	Kind   LiteralKind `json:"kind"`
	Bool   bool        `json:"bool"`
	Number float64     `json:"number"`
	String string      `json:"string"`
}

func NilValue() LiteralValue             { return LiteralValue{Kind: LiteralNil} }
func BoolValue(v bool) LiteralValue      { return LiteralValue{Kind: LiteralBool, Bool: v} }
func NumberValue(v float64) LiteralValue { return LiteralValue{Kind: LiteralNumber, Number: v} }
func StringValue(v string) LiteralValue  { return LiteralValue{Kind: LiteralString, String: v} }

func (v LiteralValue) GoString() string {
	switch v.Kind {
	case LiteralNil:
		return "nil"
	case LiteralBool:
		return fmt.Sprintf("%t", v.Bool)
	case LiteralNumber:
		return fmt.Sprintf("%g", v.Number)
	case LiteralString:
		return fmt.Sprintf("%q", v.String)
	default:
		return fmt.Sprintf("LiteralValue(%s)", v.Kind)
	}
}

type Literal struct {
	nodeImpl
	expressionMarker

	Value LiteralValue `json:"value"`
}

func NewLiteral(value LiteralValue) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

// Expressions

type Assign struct {
	nodeImpl
	expressionMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssign(name string, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
	Operator BinaryOperator `json:"operator"`
}

func NewBinary(operator BinaryOperator, left, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Operator: operator, Left: left, Right: right}
}

type Call struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCall(callee Expression, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: args}
}

type Get struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   string     `json:"name"`
}

func NewGet(object Expression, name string) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGrouping(expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: expr}
}

type Logical struct {
	nodeImpl
	expressionMarker

	Left     Expression      `json:"left"`
	Right    Expression      `json:"right"`
	Operator LogicalOperator `json:"operator"`
}

func NewLogical(operator LogicalOperator, left, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Operator: operator, Left: left, Right: right}
}

type Set struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   string     `json:"name"`
	Value  Expression `json:"value"`
}

func NewSet(object Expression, name string, value Expression) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Object: object, Name: name, Value: value}
}

type Super struct {
	nodeImpl
	expressionMarker

	Method string `json:"method"`
}

func NewSuper(method string) *Super {
	return &Super{nodeImpl: newNodeImpl(NodeSuper), Method: method}
}

type This struct {
	nodeImpl
	expressionMarker
}

func NewThis() *This {
	return &This{nodeImpl: newNodeImpl(NodeThis)}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operand  Expression    `json:"operand"`
	Operator UnaryOperator `json:"operator"`
}

func NewUnary(operator UnaryOperator, operand Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Operand: operand}
}

type Variable struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

// Program is the ordered statement list of one source unit.
type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	if statements == nil {
		statements = []Statement{}
	}
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}
