package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// TypeName is the user-facing type name used in diagnostics.
func TypeName(v Value) string {
	if v == nil {
		return "Nil"
	}
	switch v.Kind() {
	case KindNil:
		return "Nil"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	default:
		return v.Kind().String()
	}
}

// FromLiteral injects a syntax-tree constant into the value domain.
func FromLiteral(lit ast.LiteralValue) (Value, error) {
	switch lit.Kind {
	case ast.LiteralNil:
		return NilValue{}, nil
	case ast.LiteralBool:
		return BoolValue{Val: lit.Bool}, nil
	case ast.LiteralNumber:
		return NumberValue{Val: lit.Number}, nil
	case ast.LiteralString:
		return StringValue{Val: lit.String}, nil
	default:
		return nil, fmt.Errorf("runtime: unknown literal kind %q", lit.Kind)
	}
}
