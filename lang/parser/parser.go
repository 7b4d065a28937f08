// Package parser implements the recursive-descent parser that turns a token
// stream into an AST. Parse errors are recorded on the shared ErrorList and
// recovered via panic-mode synchronization: a bad declaration is discarded up
// to the next safe boundary instead of aborting the whole parse.
package parser

import (
	"errors"

	"github.com/go-lox/golox/lang/ast"
	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/token"
)

// maxArgs is the soft limit on parameter and argument list length; exceeding
// it is reported but parsing continues.
const maxArgs = 255

var errParse = errors.New("parse error")

// Parser consumes a finished token stream (as produced by the scanner) and
// builds a Program.
type Parser struct {
	toks []token.Token
	pos  int
	errs *loxerr.ErrorList
}

// New creates a Parser over toks, reporting diagnostics into errs. toks must
// end with an EOF token, as produced by scanner.ScanAll.
func New(toks []token.Token, errs *loxerr.ErrorList) *Parser {
	return &Parser{toks: toks, errs: errs}
}

// Parse parses the entire token stream as a program. Errors are reported on
// the Parser's ErrorList; when errors occurred the returned Program is
// partial: declarations discarded by synchronization are omitted from it.
func (p *Parser) Parse() *ast.Program {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return &ast.Program{Stmts: stmts, EOF: p.peek().Pos}
}

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r == errParse {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.funDecl("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	start := p.previous().Pos
	name := p.consume(token.IDENT, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(token.LT) {
		superName := p.consume(token.IDENT, "Expect superclass name.")
		superclass = &ast.VariableExpr{Name: superName}
	}

	p.consume(token.LBRACE, "Expect '{' before class body.")

	var methods, staticMethods []*ast.FunctionStmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if p.match(token.CLASS) {
			staticMethods = append(staticMethods, p.function("method"))
		} else {
			methods = append(methods, p.function("method"))
		}
	}

	end := p.consume(token.RBRACE, "Expect '}' after class body.")
	return &ast.ClassStmt{
		Name:          name,
		Superclass:    superclass,
		Methods:       methods,
		StaticMethods: staticMethods,
		Start:         start,
		End:           end.Pos,
	}
}

func (p *Parser) funDecl(kind string) ast.Stmt {
	start := p.previous().Pos
	fn := p.function(kind)
	fn.Start = start
	return fn
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENT, "Expect "+kind+" name.")
	decl := p.funBody(kind)
	return &ast.FunctionStmt{Name: name, Decl: decl, Start: name.Pos}
}

// funBody parses the "(params) { body }" shared by named functions, methods
// and anonymous lambdas.
func (p *Parser) funBody(kind string) *ast.FunctionDecl {
	lparen := p.consume(token.LPAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENT, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	p.consume(token.LBRACE, "Expect '{' before "+kind+" body.")
	body, end := p.block()

	return &ast.FunctionDecl{Params: params, Body: body, Start: lparen.Pos, End: end}
}

func (p *Parser) varDecl() ast.Stmt {
	start := p.previous().Pos
	name := p.consume(token.IDENT, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	}
	semi := p.consume(token.SEMI, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: init, Start: start, End: semi.Pos}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LBRACE):
		start := p.previous().Pos
		stmts, end := p.block()
		return &ast.BlockStmt{Stmts: stmts, Start: start, End: end}
	default:
		return p.exprStmt()
	}
}

// forStmt desugars the C-style for loop into a Block wrapping a While: no
// For node exists in the AST.
func (p *Parser) forStmt() ast.Stmt {
	start := p.previous().Pos
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMI):
		init = nil
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMI) {
		cond = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	end := p.consume(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		body = &ast.BlockStmt{
			Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: incr}},
			Start: start, End: end.Pos,
		}
	}

	if cond == nil {
		cond = &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralBool, Bool: true}, Pos: start, End: start}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body, Start: start, End: end.Pos}

	if init != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{init, body}, Start: start, End: end.Pos}
	}
	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	start := p.previous().Pos
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	end, _ := then.Span()
	if els != nil {
		_, end = els.Span()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Start: start, End: end}
}

func (p *Parser) printStmt() ast.Stmt {
	start := p.previous().Pos
	expr := p.expression()
	semi := p.consume(token.SEMI, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr, Start: start, End: semi.Pos}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMI) {
		value = p.expression()
	}
	semi := p.consume(token.SEMI, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value, End: semi.Pos}
}

func (p *Parser) whileStmt() ast.Stmt {
	start := p.previous().Pos
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")
	body := p.statement()
	_, end := body.Span()
	return &ast.WhileStmt{Cond: cond, Body: body, Start: start, End: end}
}

// block parses declarations up to (and consuming) the closing '}'. The
// opening '{' must already have been consumed by the caller.
func (p *Parser) block() ([]ast.Stmt, token.Pos) {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	end := p.consume(token.RBRACE, "Expect '}' after block.")
	return stmts, end.Pos
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMI, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the left-hand side as an arbitrary expression, then
// rewrites it post-hoc if '=' follows: a Variable becomes an Assign, a Get
// becomes a Set, anything else is a syntax error at the '=' token (parsing
// continues with the original expression returned).
func (p *Parser) assignment() ast.Expr {
	if p.check(token.FUN) {
		return p.lambda()
	}

	expr := p.or()

	if p.match(token.EQ) {
		eq := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: e.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.errorAt(eq, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *Parser) lambda() ast.Expr {
	kw := p.advance() // 'fun'
	decl := p.funBody("lambda")
	decl.Start = kw.Pos
	return &ast.FunctionExpr{Decl: decl}
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQ, token.EQ_EQ) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GT, token.GT_EQ, token.LT, token.LT_EQ) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary is right-associative: "- -x" parses as Unary(-, Unary(-, x)).
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		tok := p.previous()
		return &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralBool, Bool: false}, Pos: tok.Pos, End: tok.Pos}
	case p.match(token.TRUE):
		tok := p.previous()
		return &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralBool, Bool: true}, Pos: tok.Pos, End: tok.Pos}
	case p.match(token.NIL):
		tok := p.previous()
		return &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralNil}, Pos: tok.Pos, End: tok.Pos}
	case p.match(token.NUMBER):
		tok := p.previous()
		return &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralNum, Num: tok.Value.Num}, Pos: tok.Pos, End: tok.Pos}
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.LiteralExpr{Value: ast.Value{Kind: ast.LiteralStr, Str: tok.Value.Str}, Pos: tok.Pos, End: tok.Pos}
	case p.match(token.THIS):
		return &ast.ThisExpr{Keyword: p.previous()}
	case p.match(token.SUPER):
		kw := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENT, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: kw, Method: method}
	case p.match(token.IDENT):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LPAREN):
		start := p.previous().Pos
		expr := p.expression()
		end := p.consume(token.RPAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{Expr: expr, Start: start, End: end.Pos}
	}

	p.errorAt(p.peek(), "Expect expression.")
	panic(errParse)
}

// synchronize discards tokens until it finds a statement boundary: a ';'
// terminator, or the start of a new declaration/statement keyword.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMI {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

func (p *Parser) consume(kind token.Kind, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), msg)
	panic(errParse)
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = " at end"
	}
	p.errs.Add(tok.Pos, where, msg)
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) previous() token.Token { return p.toks[p.pos-1] }
