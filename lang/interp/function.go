package interp

import "github.com/go-lox/golox/lang/ast"

// Function is a Lox function value: a declaration paired with the
// environment active at the point of its definition. Calling it creates a
// fresh environment, scoped to that closure, in which parameters are bound
// before the body executes as a block.
type Function struct {
	name          string
	decl          *ast.FunctionDecl
	closure       *Environment
	isInitializer bool
}

// NewFunction builds a Function value. name is empty for anonymous
// (lambda) functions.
func NewFunction(name string, decl *ast.FunctionDecl, closure *Environment, isInitializer bool) *Function {
	return &Function{name: name, decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if f.isInitializer {
				return f.closure.GetAt(0, "this"), nil
			}
			return ret.value, nil
		}
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// Bind produces a copy of f whose closure adds a single binding of "this"
// to inst, one scope closer than f's own closure. Used to turn an unbound
// method into one ready to be called on a specific instance.
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", inst)
	return NewFunction(f.name, f.decl, env, f.isInitializer)
}

func (f *Function) String() string {
	if f.name == "" {
		return "<fn>"
	}
	return "<fn " + f.name + ">"
}
