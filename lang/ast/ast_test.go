package ast_test

import (
	"testing"

	"github.com/go-lox/golox/lang/ast"
	"github.com/go-lox/golox/lang/token"
	"github.com/stretchr/testify/require"
)

func name(lex string) token.Token {
	return token.Token{Kind: token.IDENT, Lexeme: lex}
}

func TestPrintBinaryExpr(t *testing.T) {
	e := &ast.BinaryExpr{
		Left:  &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralNum, Num: 1}},
		Op:    token.Token{Kind: token.PLUS, Lexeme: "+"},
		Right: &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralNum, Num: 2}},
	}
	require.Equal(t, "1 + 2", ast.Print(e))
}

func TestPrintVarStmt(t *testing.T) {
	s := &ast.VarStmt{
		Name:        name("x"),
		Initializer: &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralNil}},
	}
	require.Equal(t, "var x = nil; ", ast.Print(s))
}

func TestPrintIfElse(t *testing.T) {
	s := &ast.IfStmt{
		Cond: &ast.VariableExpr{Name: name("cond")},
		Then: &ast.PrintStmt{Expr: &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralStr, Str: "yes"}}},
		Else: &ast.PrintStmt{Expr: &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralStr, Str: "no"}}},
	}
	require.Equal(t, `if (cond) print "yes"; else print "no"; `, ast.Print(s))
}

func TestWalkVisitsChildrenInOrder(t *testing.T) {
	e := &ast.BinaryExpr{
		Left:  &ast.VariableExpr{Name: name("a")},
		Op:    token.Token{Kind: token.PLUS, Lexeme: "+"},
		Right: &ast.VariableExpr{Name: name("b")},
	}

	var visited []string
	var v ast.Visitor
	v = ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		switch x := n.(type) {
		case *ast.VariableExpr:
			visited = append(visited, x.Name.Lexeme)
		case *ast.BinaryExpr:
			visited = append(visited, "binary")
		}
		return v
	})
	ast.Walk(v, e)

	require.Equal(t, []string{"binary", "a", "b"}, visited)
}

func TestWalkSkipsChildrenWhenNilReturned(t *testing.T) {
	e := &ast.GroupingExpr{Expr: &ast.VariableExpr{Name: name("a")}}

	visited := 0
	v := ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		visited++
		if _, ok := n.(*ast.GroupingExpr); ok {
			return nil // skip children
		}
		return nil
	})
	ast.Walk(v, e)

	require.Equal(t, 1, visited)
}

func TestClassStmtSpan(t *testing.T) {
	c := &ast.ClassStmt{
		Name:  name("Foo"),
		Start: token.MakePos(1, 1),
		End:   token.MakePos(3, 1),
	}
	start, end := c.Span()
	require.Equal(t, 1, start.Line())
	require.Equal(t, 3, end.Line())
}
