// Package ast defines the expression and statement node types produced by
// the parser, walked by the resolver and evaluated by the interpreter.
package ast

import "github.com/go-lox/golox/lang/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	// Span reports the start and end source position of the node.
	Span() (start, end token.Pos)
	// Walk calls Walk(v, child) for every direct child of the node.
	Walk(v Visitor)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed source file: a flat list of top-level
// declarations.
type Program struct {
	Stmts []Stmt
	EOF   token.Pos
}

// Span reports the full extent of the program, from its first statement (or
// the EOF marker, for an empty file) to the EOF marker.
func (n *Program) Span() (start, end token.Pos) {
	if len(n.Stmts) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Stmts[0].Span()
	return start, n.EOF
}

// Walk visits every top-level statement in order.
func (n *Program) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
