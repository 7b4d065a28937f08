package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-lox/golox/lang/token"
)

// Print reconstructs a semantically equivalent (same tokens modulo
// whitespace) source text for n. It is used to verify the parser's
// round-trip property: parse(print(parse(src))) == parse(src).
func Print(n Node) string {
	var sb strings.Builder
	p := &printer{sb: &sb}
	switch v := n.(type) {
	case *Program:
		for _, s := range v.Stmts {
			p.stmt(s)
		}
	case Stmt:
		p.stmt(v)
	case Expr:
		p.expr(v)
	}
	return sb.String()
}

type printer struct {
	sb *strings.Builder
}

func (p *printer) w(s string) { p.sb.WriteString(s) }

func (p *printer) stmt(s Stmt) {
	switch n := s.(type) {
	case *BlockStmt:
		p.w("{ ")
		for _, st := range n.Stmts {
			p.stmt(st)
		}
		p.w("} ")

	case *ClassStmt:
		p.w("class ")
		p.w(n.Name.Lexeme)
		if n.Superclass != nil {
			p.w(" < ")
			p.w(n.Superclass.Name.Lexeme)
		}
		p.w(" { ")
		for _, m := range n.Methods {
			p.method(m)
		}
		for _, m := range n.StaticMethods {
			p.w("class ")
			p.method(m)
		}
		p.w("} ")

	case *ExpressionStmt:
		p.expr(n.Expr)
		p.w("; ")

	case *FunctionStmt:
		p.w("fun ")
		p.method(n)

	case *IfStmt:
		p.w("if (")
		p.expr(n.Cond)
		p.w(") ")
		p.stmt(n.Then)
		if n.Else != nil {
			p.w("else ")
			p.stmt(n.Else)
		}

	case *PrintStmt:
		p.w("print ")
		p.expr(n.Expr)
		p.w("; ")

	case *ReturnStmt:
		p.w("return")
		if n.Value != nil {
			p.w(" ")
			p.expr(n.Value)
		}
		p.w("; ")

	case *VarStmt:
		p.w("var ")
		p.w(n.Name.Lexeme)
		if n.Initializer != nil {
			p.w(" = ")
			p.expr(n.Initializer)
		}
		p.w("; ")

	case *WhileStmt:
		p.w("while (")
		p.expr(n.Cond)
		p.w(") ")
		p.stmt(n.Body)

	default:
		p.w(fmt.Sprintf("/* unknown stmt %T */", n))
	}
}

// method prints the shared "name(params) { body }" shape of a function
// declaration, used both for top-level functions and class methods.
func (p *printer) method(f *FunctionStmt) {
	p.w(f.Name.Lexeme)
	p.params(f.Decl.Params)
	p.w(" { ")
	for _, st := range f.Decl.Body {
		p.stmt(st)
	}
	p.w("} ")
}

func (p *printer) params(toks []token.Token) {
	p.w("(")
	for i, t := range toks {
		if i > 0 {
			p.w(", ")
		}
		p.w(t.Lexeme)
	}
	p.w(")")
}

func (p *printer) expr(e Expr) {
	switch n := e.(type) {
	case *AssignExpr:
		p.w(n.Name.Lexeme)
		p.w(" = ")
		p.expr(n.Value)

	case *BinaryExpr:
		p.expr(n.Left)
		p.w(" " + n.Op.Lexeme + " ")
		p.expr(n.Right)

	case *CallExpr:
		p.expr(n.Callee)
		p.w("(")
		for i, a := range n.Args {
			if i > 0 {
				p.w(", ")
			}
			p.expr(a)
		}
		p.w(")")

	case *FunctionExpr:
		p.w("fun")
		p.params(n.Decl.Params)
		p.w(" { ")
		for _, st := range n.Decl.Body {
			p.stmt(st)
		}
		p.w("} ")

	case *GetExpr:
		p.expr(n.Object)
		p.w(".")
		p.w(n.Name.Lexeme)

	case *GroupingExpr:
		p.w("(")
		p.expr(n.Expr)
		p.w(")")

	case *LiteralExpr:
		p.literal(n.Value)

	case *LogicalExpr:
		p.expr(n.Left)
		p.w(" " + n.Op.Lexeme + " ")
		p.expr(n.Right)

	case *SetExpr:
		p.expr(n.Object)
		p.w(".")
		p.w(n.Name.Lexeme)
		p.w(" = ")
		p.expr(n.Value)

	case *SuperExpr:
		p.w("super.")
		p.w(n.Method.Lexeme)

	case *ThisExpr:
		p.w("this")

	case *UnaryExpr:
		p.w(n.Op.Lexeme)
		p.expr(n.Right)

	case *VariableExpr:
		p.w(n.Name.Lexeme)

	default:
		p.w(fmt.Sprintf("/* unknown expr %T */", n))
	}
}

func (p *printer) literal(v Value) {
	switch v.Kind {
	case LiteralNil:
		p.w("nil")
	case LiteralBool:
		p.w(strconv.FormatBool(v.Bool))
	case LiteralNum:
		p.w(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case LiteralStr:
		p.w(`"` + v.Str + `"`)
	}
}
