// Package resolver performs a single static pass over a parsed program,
// annotating every Variable/This/Super/Assign node with the number of
// environment hops from its use site to its defining scope. It never
// evaluates expressions; its only outputs are those depth annotations (left
// directly on the AST nodes) and diagnostics.
package resolver

import (
	"github.com/go-lox/golox/lang/ast"
	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/token"
)

type funcType int

const (
	funcNone funcType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks a Program once, maintaining a stack of scope maps (name to
// "is it fully defined yet"). The innermost scope is last in the slice.
type Resolver struct {
	scopes []map[string]bool
	errs   *loxerr.ErrorList

	currentFunction funcType
	currentClass    classType
}

// New creates a Resolver that reports diagnostics into errs.
func New(errs *loxerr.ErrorList) *Resolver {
	return &Resolver{errs: errs}
}

// Resolve walks every top-level statement of prog.
func (r *Resolver) Resolve(prog *ast.Program) {
	r.resolveStmts(prog.Stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()

	case *ast.ClassStmt:
		r.resolveClass(n)

	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expr)

	case *ast.FunctionStmt:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n.Decl, funcFunction)

	case *ast.IfStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(n.Expr)

	case *ast.ReturnStmt:
		if r.currentFunction == funcNone {
			r.error(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == funcInitializer {
				r.error(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}

	case *ast.VarStmt:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)

	case *ast.WhileStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Body)
	}
}

func (r *Resolver) resolveClass(n *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.error(n.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(n.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range n.Methods {
		ft := funcMethod
		if m.Name.Lexeme == "init" {
			ft = funcInitializer
		}
		r.resolveFunction(m.Decl, ft)
	}

	r.endScope() // "this" scope

	if n.Superclass != nil {
		r.endScope() // "super" scope
	}

	// Static methods see neither "this" nor "super".
	for _, m := range n.StaticMethods {
		r.resolveFunction(m.Decl, funcFunction)
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(decl *ast.FunctionDecl, ft funcType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = ft

	r.beginScope()
	for _, param := range decl.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(decl.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch n := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(n.Value)
		n.Depth = r.resolveLocal(n.Name)

	case *ast.BinaryExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.CallExpr:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}

	case *ast.FunctionExpr:
		r.resolveFunction(n.Decl, funcFunction)

	case *ast.GetExpr:
		r.resolveExpr(n.Object)

	case *ast.GroupingExpr:
		r.resolveExpr(n.Expr)

	case *ast.LiteralExpr:
		// no identifiers to resolve

	case *ast.LogicalExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.SetExpr:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)

	case *ast.SuperExpr:
		switch r.currentClass {
		case classNone:
			r.error(n.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.error(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		n.Depth = r.resolveLocal(n.Keyword)

	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.error(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		n.Depth = r.resolveLocal(n.Keyword)

	case *ast.UnaryExpr:
		r.resolveExpr(n.Right)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !ready {
				r.error(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		n.Depth = r.resolveLocal(n.Name)
	}
}

// resolveLocal walks the scope stack from innermost to outermost, returning
// the hop count to the first scope that declares name, or nil if no local
// scope declares it (the reference falls through to globals).
func (r *Resolver) resolveLocal(name token.Token) *int {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			d := len(r.scopes) - 1 - i
			return &d
		}
	}
	return nil
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.error(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) error(tok token.Token, msg string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = " at end"
	}
	r.errs.Add(tok.Pos, where, msg)
}
