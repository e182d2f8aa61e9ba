package ast

// Short constructors for building trees by hand.

func Num(v float64) *Literal { return NewLiteral(NumberValue(v)) }
func Str(v string) *Literal  { return NewLiteral(StringValue(v)) }
func Bool(v bool) *Literal   { return NewLiteral(BoolValue(v)) }
func Nil() *Literal          { return NewLiteral(NilValue()) }

func Var(name string) *Variable { return NewVariable(name) }

func Group(expr Expression) *Grouping { return NewGrouping(expr) }

func Bin(op BinaryOperator, left, right Expression) *Binary { return NewBinary(op, left, right) }

func Neg(operand Expression) *Unary { return NewUnary(UnaryNegate, operand) }

func Not(operand Expression) *Unary { return NewUnary(UnaryNot, operand) }

func Print(expr Expression) *PrintStatement { return NewPrintStatement(expr) }

func ExprStmt(expr Expression) *ExpressionStatement { return NewExpressionStatement(expr) }

func Prog(statements ...Statement) *Program { return NewProgram(statements) }
