package runtime

import "lox/interpreter-go/pkg/token"

// IsTruthy reports the truth of v: nil and false are falsey, everything
// else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Format renders v the way print shows it.
func Format(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NumberValue:
		return token.FormatNumber(val.Val)
	case StringValue:
		return val.Val
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// Equal compares two values of the same kind. ok is false when the kinds
// differ, including a nil paired with a non-nil value.
func Equal(a, b Value) (equal bool, ok bool) {
	if a == nil {
		a = NilValue{}
	}
	if b == nil {
		b = NilValue{}
	}
	if a.Kind() != b.Kind() {
		return false, false
	}
	switch av := a.(type) {
	case NilValue:
		return true, true
	case BoolValue:
		return av.Val == b.(BoolValue).Val, true
	case NumberValue:
		return av.Val == b.(NumberValue).Val, true
	case StringValue:
		return av.Val == b.(StringValue).Val, true
	default:
		return false, false
	}
}
