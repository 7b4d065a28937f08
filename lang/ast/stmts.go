package ast

import "github.com/go-lox/golox/lang/token"

type (
	// BlockStmt represents `{ stmts... }`, introducing a new lexical scope.
	BlockStmt struct {
		Stmts      []Stmt
		Start, End token.Pos
	}

	// ClassStmt represents a class declaration, with an optional superclass
	// and separate method/static-method lists.
	ClassStmt struct {
		Name          token.Token
		Superclass    *VariableExpr // nil when the class has no superclass
		Methods       []*FunctionStmt
		StaticMethods []*FunctionStmt
		Start, End    token.Pos
	}

	// ExpressionStmt represents a bare expression evaluated for its side
	// effects, with the value discarded.
	ExpressionStmt struct {
		Expr Expr
	}

	// FunctionStmt represents a named function (or method) declaration.
	FunctionStmt struct {
		Name  token.Token
		Decl  *FunctionDecl
		Start token.Pos
	}

	// IfStmt represents `if (cond) then [else else_]`.
	IfStmt struct {
		Cond       Expr
		Then       Stmt
		Else       Stmt // nil when there is no else branch
		Start, End token.Pos
	}

	// PrintStmt represents `print expr;`.
	PrintStmt struct {
		Expr       Expr
		Start, End token.Pos
	}

	// ReturnStmt represents `return [value];`.
	ReturnStmt struct {
		Keyword token.Token
		Value   Expr // nil when no value is given
		End     token.Pos
	}

	// VarStmt represents `var name [= initializer];`.
	VarStmt struct {
		Name        token.Token
		Initializer Expr // nil when no initializer is given
		Start, End  token.Pos
	}

	// WhileStmt represents `while (cond) body`.
	WhileStmt struct {
		Cond       Expr
		Body       Stmt
		Start, End token.Pos
	}
)

func (s *BlockStmt) stmtNode()      {}
func (s *ClassStmt) stmtNode()      {}
func (s *ExpressionStmt) stmtNode() {}
func (s *FunctionStmt) stmtNode()   {}
func (s *IfStmt) stmtNode()         {}
func (s *PrintStmt) stmtNode()      {}
func (s *ReturnStmt) stmtNode()     {}
func (s *VarStmt) stmtNode()        {}
func (s *WhileStmt) stmtNode()      {}

func (s *BlockStmt) Span() (token.Pos, token.Pos) { return s.Start, s.End }

func (s *ClassStmt) Span() (token.Pos, token.Pos) { return s.Start, s.End }

func (s *ExpressionStmt) Span() (token.Pos, token.Pos) { return s.Expr.Span() }

func (s *FunctionStmt) Span() (token.Pos, token.Pos) { return s.Start, s.Decl.End }

func (s *IfStmt) Span() (token.Pos, token.Pos) { return s.Start, s.End }

func (s *PrintStmt) Span() (token.Pos, token.Pos) { return s.Start, s.End }

func (s *ReturnStmt) Span() (token.Pos, token.Pos) { return s.Keyword.Pos, s.End }

func (s *VarStmt) Span() (token.Pos, token.Pos) { return s.Start, s.End }

func (s *WhileStmt) Span() (token.Pos, token.Pos) { return s.Start, s.End }

func (s *BlockStmt) Walk(v Visitor) {
	for _, st := range s.Stmts {
		Walk(v, st)
	}
}

func (s *ClassStmt) Walk(v Visitor) {
	if s.Superclass != nil {
		Walk(v, s.Superclass)
	}
	for _, m := range s.Methods {
		Walk(v, m)
	}
	for _, m := range s.StaticMethods {
		Walk(v, m)
	}
}

func (s *ExpressionStmt) Walk(v Visitor) { Walk(v, s.Expr) }

func (s *FunctionStmt) Walk(v Visitor) {
	for _, st := range s.Decl.Body {
		Walk(v, st)
	}
}

func (s *IfStmt) Walk(v Visitor) {
	Walk(v, s.Cond)
	Walk(v, s.Then)
	if s.Else != nil {
		Walk(v, s.Else)
	}
}

func (s *PrintStmt) Walk(v Visitor) { Walk(v, s.Expr) }

func (s *ReturnStmt) Walk(v Visitor) {
	if s.Value != nil {
		Walk(v, s.Value)
	}
}

func (s *VarStmt) Walk(v Visitor) {
	if s.Initializer != nil {
		Walk(v, s.Initializer)
	}
}

func (s *WhileStmt) Walk(v Visitor) {
	Walk(v, s.Cond)
	Walk(v, s.Body)
}
