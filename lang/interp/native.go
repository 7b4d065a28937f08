package interp

import "time"

// NativeFn wraps a host-provided function as a Lox callable. The language
// defines exactly one: clock().
type NativeFn struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFn) Arity() int { return n.arity }

func (n *NativeFn) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}

func (n *NativeFn) String() string { return "<native fn>" }

func newClock() *NativeFn {
	return &NativeFn{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	}
}
