package interp

// returnSignal implements error so it can propagate through the same
// execute/eval error-return chain as a runtime error, but it is not a
// failure: it is recognized and unwrapped only at a Function.Call boundary,
// per the non-local-return control signal (never a user-visible error).
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return outside of a function call" }
