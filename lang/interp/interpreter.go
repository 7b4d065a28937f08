// Package interp implements the tree-walking evaluator: the environment
// chain, the runtime value model and the statement/expression evaluation
// rules described for the language. It is the only stage that performs
// side effects (print, clock) and the only one to report runtime errors.
package interp

import (
	"context"
	"fmt"
	"io"

	"github.com/go-lox/golox/lang/ast"
	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/token"
)

// Interpreter executes a resolved Program against a chain of Environments
// rooted at Globals.
type Interpreter struct {
	Globals *Environment
	env     *Environment
	Stdout  io.Writer
	ctx     context.Context
}

// New creates an Interpreter that writes print output to stdout and
// registers the native clock() function in the global scope.
func New(stdout io.Writer) *Interpreter {
	g := NewEnvironment(nil)
	g.Define("clock", newClock())
	return &Interpreter{Globals: g, env: g, Stdout: stdout, ctx: context.Background()}
}

// Interpret executes stmts in order, stopping and returning the first
// runtime error encountered (if any). A *loxerr.RuntimeError is the only
// error kind that should ever reach a caller; a *returnSignal reaching here
// would indicate a resolver bug (return outside a function should have been
// rejected at resolve time). ctx is checked between top-level statements and
// on every iteration of a while loop, so a caller that cancels it (e.g. on
// Ctrl-C) can interrupt a runaway script instead of only being able to kill
// the process.
func (in *Interpreter) Interpret(ctx context.Context, stmts []ast.Stmt) error {
	if ctx == nil {
		ctx = context.Background()
	}
	in.ctx = ctx
	for _, s := range stmts {
		if err := ctx.Err(); err != nil {
			return loxerr.NewRuntimeError(token.Token{}, "Interrupted: %s.", err)
		}
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch n := stmt.(type) {
	case *ast.BlockStmt:
		return in.executeBlock(n.Stmts, NewEnvironment(in.env))

	case *ast.ClassStmt:
		return in.executeClass(n)

	case *ast.ExpressionStmt:
		_, err := in.eval(n.Expr)
		return err

	case *ast.FunctionStmt:
		fn := NewFunction(n.Name.Lexeme, n.Decl, in.env, false)
		in.env.Define(n.Name.Lexeme, fn)
		return nil

	case *ast.IfStmt:
		cond, err := in.eval(n.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return in.execute(n.Then)
		}
		if n.Else != nil {
			return in.execute(n.Else)
		}
		return nil

	case *ast.PrintStmt:
		v, err := in.eval(n.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, Stringify(v))
		return nil

	case *ast.ReturnStmt:
		var v Value
		if n.Value != nil {
			var err error
			v, err = in.eval(n.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case *ast.VarStmt:
		var v Value
		if n.Initializer != nil {
			var err error
			v, err = in.eval(n.Initializer)
			if err != nil {
				return err
			}
		}
		in.env.Define(n.Name.Lexeme, v)
		return nil

	case *ast.WhileStmt:
		for {
			if err := in.ctx.Err(); err != nil {
				return loxerr.NewRuntimeError(token.Token{}, "Interrupted: %s.", err)
			}
			cond, err := in.eval(n.Cond)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := in.execute(n.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// executeBlock runs stmts against env, restoring the previous environment
// on every exit path: normal completion, a runtime error, or a non-local
// return. This restoration is what keeps the environment chain consistent
// across nested calls.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClass(n *ast.ClassStmt) error {
	var superclass *Class
	if n.Superclass != nil {
		v, err := in.eval(n.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return loxerr.NewRuntimeError(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(n.Name.Lexeme, nil)

	methodEnv := in.env
	if superclass != nil {
		methodEnv = NewEnvironment(in.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = NewFunction(m.Name.Lexeme, m.Decl, methodEnv, m.Name.Lexeme == "init")
	}

	staticMethods := make(map[string]*Function, len(n.StaticMethods))
	for _, m := range n.StaticMethods {
		staticMethods[m.Name.Lexeme] = NewFunction(m.Name.Lexeme, m.Decl, in.env, false)
	}

	cls := &Class{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods, StaticMethods: staticMethods}
	return in.env.Assign(n.Name, cls)
}

func (in *Interpreter) eval(expr ast.Expr) (Value, error) {
	switch n := expr.(type) {
	case *ast.AssignExpr:
		return in.evalAssign(n)
	case *ast.BinaryExpr:
		return in.evalBinary(n)
	case *ast.CallExpr:
		return in.evalCall(n)
	case *ast.FunctionExpr:
		return NewFunction("", n.Decl, in.env, false), nil
	case *ast.GetExpr:
		return in.evalGet(n)
	case *ast.GroupingExpr:
		return in.eval(n.Expr)
	case *ast.LiteralExpr:
		return literalValue(n.Value), nil
	case *ast.LogicalExpr:
		return in.evalLogical(n)
	case *ast.SetExpr:
		return in.evalSet(n)
	case *ast.SuperExpr:
		return in.evalSuper(n)
	case *ast.ThisExpr:
		return in.lookupVariable(n.Keyword, n.Depth)
	case *ast.UnaryExpr:
		return in.evalUnary(n)
	case *ast.VariableExpr:
		return in.lookupVariable(n.Name, n.Depth)
	}
	return nil, nil
}

func literalValue(v ast.Value) Value {
	switch v.Kind {
	case ast.LiteralNil:
		return nil
	case ast.LiteralBool:
		return v.Bool
	case ast.LiteralNum:
		return v.Num
	case ast.LiteralStr:
		return v.Str
	}
	return nil
}

func (in *Interpreter) evalAssign(n *ast.AssignExpr) (Value, error) {
	v, err := in.eval(n.Value)
	if err != nil {
		return nil, err
	}
	if n.Depth != nil {
		in.env.AssignAt(*n.Depth, n.Name, v)
		return v, nil
	}
	if err := in.Globals.Assign(n.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (in *Interpreter) evalLogical(n *ast.LogicalExpr) (Value, error) {
	left, err := in.eval(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op.Kind == token.OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return in.eval(n.Right)
}

func (in *Interpreter) evalUnary(n *ast.UnaryExpr) (Value, error) {
	right, err := in.eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, loxerr.NewRuntimeError(n.Op, "Operand must be a number.")
		}
		return -num, nil
	case token.BANG:
		return !IsTruthy(right), nil
	}
	return nil, nil
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpr) (Value, error) {
	left, err := in.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.MINUS:
		a, b, err := asNumbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return a - b, nil
	case token.SLASH:
		a, b, err := asNumbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, loxerr.NewRuntimeError(n.Op, "Cannot divide by zero.")
		}
		return a / b, nil
	case token.STAR:
		a, b, err := asNumbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return a * b, nil
	case token.PLUS:
		return evalPlus(n.Op, left, right)
	case token.GT:
		a, b, err := asNumbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return a > b, nil
	case token.GT_EQ:
		a, b, err := asNumbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return a >= b, nil
	case token.LT:
		a, b, err := asNumbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return a < b, nil
	case token.LT_EQ:
		a, b, err := asNumbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return a <= b, nil
	case token.BANG_EQ:
		return !IsEqual(left, right), nil
	case token.EQ_EQ:
		return IsEqual(left, right), nil
	}
	return nil, nil
}

func asNumbers(op token.Token, a, b Value) (float64, float64, error) {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if !aok || !bok {
		return 0, 0, loxerr.NewRuntimeError(op, "Operands must be numbers.")
	}
	return an, bn, nil
}

func evalPlus(op token.Token, a, b Value) (Value, error) {
	if an, ok := a.(float64); ok {
		if bn, ok := b.(float64); ok {
			return an + bn, nil
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as + bs, nil
		}
	}
	return nil, loxerr.NewRuntimeError(op, "Operands must be two numbers or two strings.")
}

func (in *Interpreter) evalCall(n *ast.CallExpr) (Value, error) {
	callee, err := in.eval(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, loxerr.NewRuntimeError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, loxerr.NewRuntimeError(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(n *ast.GetExpr) (Value, error) {
	obj, err := in.eval(n.Object)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *Instance:
		return o.Get(n.Name)
	case *Class:
		if m := o.FindStaticMethod(n.Name.Lexeme); m != nil {
			return m, nil
		}
		return nil, loxerr.NewRuntimeError(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
	default:
		return nil, loxerr.NewRuntimeError(n.Name, "Only instances have properties.")
	}
}

func (in *Interpreter) evalSet(n *ast.SetExpr) (Value, error) {
	obj, err := in.eval(n.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, loxerr.NewRuntimeError(n.Name, "Only instances have fields.")
	}
	v, err := in.eval(n.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(n.Name, v)
	return v, nil
}

func (in *Interpreter) evalSuper(n *ast.SuperExpr) (Value, error) {
	if n.Depth == nil {
		return nil, loxerr.NewRuntimeError(n.Keyword, "Undefined property '%s'.", n.Method.Lexeme)
	}
	superclass, _ := in.env.GetAt(*n.Depth, "super").(*Class)
	obj, _ := in.env.GetAt(*n.Depth-1, "this").(*Instance)

	method := superclass.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, loxerr.NewRuntimeError(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(obj), nil
}

func (in *Interpreter) lookupVariable(name token.Token, depth *int) (Value, error) {
	if depth != nil {
		return in.env.GetAt(*depth, name.Lexeme), nil
	}
	return in.Globals.Get(name)
}
