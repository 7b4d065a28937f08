package interp

import (
	"github.com/dolthub/swiss"

	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/token"
)

// Instance is a Lox object: a class reference plus a dynamically-growing
// field map. Fields are added by assignment; reads fall back to the
// class's methods, bound to this instance, before erroring.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, Value]
}

func NewInstance(c *Class) *Instance {
	return &Instance{class: c, fields: swiss.NewMap[string, Value](4)}
}

func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if m := i.class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, loxerr.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

func (i *Instance) Set(name token.Token, v Value) {
	i.fields.Put(name.Lexeme, v)
}

func (i *Instance) String() string { return i.class.Name + " instance" }
