package interp

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a runtime Lox value: nil, bool, float64, string, or a Callable
// (*Function, *NativeFn, *Class) or *Instance. Go's own dynamic typing
// stands in for the tagged runtime-value variant.
type Value = any

// Callable is implemented by every value that can appear as a call
// expression's callee: user functions, native functions and classes.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// IsTruthy reports whether v is truthy. nil and false are falsey; every
// other value, including 0 and "", is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// IsEqual implements Lox equality: nil equals only nil, primitives compare
// structurally, callables and instances compare by identity. Cross-type
// comparisons are never equal. NaN follows host IEEE-754 semantics (NaN is
// never equal to anything, including itself).
func IsEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders v the way `print` does.
func Stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if math.IsNaN(n) {
		return "nan"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
