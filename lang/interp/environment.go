package interp

import (
	"github.com/dolthub/swiss"

	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/token"
)

// Environment is one link in the lexical scope chain: a name-to-value map
// plus an optional reference to the enclosing scope. Closures capture an
// Environment by shared reference, so mutations through one alias are
// visible through every other.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, Value]
}

// NewEnvironment creates a scope enclosed by parent, or a root scope when
// parent is nil.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{enclosing: parent, values: swiss.NewMap[string, Value](8)}
}

// Define unconditionally binds name in this scope, redeclaration allowed:
// this matches Lox's permissive top-level and loop-scoped redeclaration.
func (e *Environment) Define(name string, v Value) {
	e.values.Put(name, v)
}

// Get looks up name in this scope only. This form is used for globals,
// where there is no enclosing chain to walk; resolved local references go
// through GetAt instead.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, loxerr.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign walks from this scope outward, writing to the first scope that
// already defines name. It fails if name is bound nowhere along the chain.
func (e *Environment) Assign(name token.Token, v Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values.Get(name.Lexeme); ok {
			env.values.Put(name.Lexeme, v)
			return nil
		}
	}
	return loxerr.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt reads name from the scope exactly distance hops up the chain. The
// resolver guarantees this lookup succeeds for every depth it records.
func (e *Environment) GetAt(distance int, name string) Value {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// AssignAt writes name into the scope exactly distance hops up the chain.
func (e *Environment) AssignAt(distance int, name token.Token, v Value) {
	e.ancestor(distance).values.Put(name.Lexeme, v)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
