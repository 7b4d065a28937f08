// Package scanner turns Lox source text into a stream of tokens.
//
// The scanner is adapted from the two-offset/current-rune advance loop used
// throughout the front end's sibling packages: it never aborts on an error,
// instead it records a diagnostic and keeps making progress so the parser
// sees as complete a token stream as possible.
package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/token"
)

// Scanner tokenizes a single Lox source for the parser to consume.
type Scanner struct {
	src []byte
	err *loxerr.ErrorList

	sb strings.Builder // accumulates decoded string literal contents

	cur  rune // current character, -1 at end of input
	off  int  // byte offset of cur
	roff int  // byte offset just past cur
	line int  // 1-based line of cur
	col  int  // 1-based column of cur
}

// New creates a Scanner over src, reporting diagnostics into errs.
func New(src []byte, errs *loxerr.ErrorList) *Scanner {
	s := &Scanner{src: src, err: errs, line: 1, col: 0}
	s.advance()
	return s
}

// ScanAll tokenizes the entire source and returns every token, including a
// final EOF. Errors encountered are appended to the Scanner's ErrorList;
// scanning never stops early.
func (s *Scanner) ScanAll() []token.Token {
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (s *Scanner) pos() token.Pos { return token.MakePos(s.line, s.col) }

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		s.col++
		return
	}

	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	s.col++

	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
	}
	s.roff += w
	s.cur = r
}

// peek returns the rune following cur without advancing, or 0 at EOF.
func (s *Scanner) peek() rune {
	if s.roff >= len(s.src) {
		return 0
	}
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
	}
	_ = w
	return r
}

// match advances and returns true if cur equals want, otherwise it leaves
// the scanner untouched and returns false.
func (s *Scanner) match(want rune) bool {
	if s.cur == want {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) error(pos token.Pos, msg string) {
	if s.err != nil {
		s.err.Add(pos, "", msg)
	}
}

func (s *Scanner) errorf(pos token.Pos, format string, args ...any) {
	s.error(pos, fmt.Sprintf(format, args...))
}

// Scan returns the next token in the source.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespaceAndComments()

	pos := s.pos()
	start := s.off

	switch {
	case s.cur == -1:
		return token.Token{Kind: token.EOF, Pos: pos}

	case isAlpha(s.cur):
		for isAlpha(s.cur) || isDigit(s.cur) {
			s.advance()
		}
		lit := string(s.src[start:s.off])
		return token.Token{Kind: token.LookupIdent(lit), Lexeme: lit, Pos: pos, Value: token.Value{Raw: lit}}

	case isDigit(s.cur):
		return s.number(pos, start)

	case s.cur == '"':
		return s.string(pos)
	}

	cur := s.cur
	s.advance()
	switch cur {
	case '(':
		return s.tok1(token.LPAREN, pos)
	case ')':
		return s.tok1(token.RPAREN, pos)
	case '{':
		return s.tok1(token.LBRACE, pos)
	case '}':
		return s.tok1(token.RBRACE, pos)
	case ',':
		return s.tok1(token.COMMA, pos)
	case '.':
		return s.tok1(token.DOT, pos)
	case '-':
		return s.tok1(token.MINUS, pos)
	case '+':
		return s.tok1(token.PLUS, pos)
	case ';':
		return s.tok1(token.SEMI, pos)
	case '*':
		return s.tok1(token.STAR, pos)
	case '/':
		return s.tok1(token.SLASH, pos)
	case '!':
		if s.match('=') {
			return s.tokn(token.BANG_EQ, "!=", pos)
		}
		return s.tok1(token.BANG, pos)
	case '=':
		if s.match('=') {
			return s.tokn(token.EQ_EQ, "==", pos)
		}
		return s.tok1(token.EQ, pos)
	case '<':
		if s.match('=') {
			return s.tokn(token.LT_EQ, "<=", pos)
		}
		return s.tok1(token.LT, pos)
	case '>':
		if s.match('=') {
			return s.tokn(token.GT_EQ, ">=", pos)
		}
		return s.tok1(token.GT, pos)
	}

	s.errorf(pos, "unexpected character %q", cur)
	return token.Token{Kind: token.ILLEGAL, Lexeme: string(cur), Pos: pos}
}

func (s *Scanner) tok1(kind token.Kind, pos token.Pos) token.Token {
	lex := kind.String()
	return token.Token{Kind: kind, Lexeme: lex, Pos: pos, Value: token.Value{Raw: lex}}
}

func (s *Scanner) tokn(kind token.Kind, lex string, pos token.Pos) token.Token {
	return token.Token{Kind: kind, Lexeme: lex, Pos: pos, Value: token.Value{Raw: lex}}
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		case s.cur == '/' && s.peek() == '*':
			s.blockComment()
		default:
			return
		}
	}
}

// blockComment consumes a (possibly nested) /* ... */ comment. This is a
// supplemented feature beyond the book's grammar: most serious jlox ports
// add it as a scanner exercise, and it costs nothing to support here.
func (s *Scanner) blockComment() {
	pos := s.pos()
	s.advance() // '/'
	s.advance() // '*'
	depth := 1
	for depth > 0 {
		switch {
		case s.cur == -1:
			s.error(pos, "unterminated block comment")
			return
		case s.cur == '/' && s.peek() == '*':
			s.advance()
			s.advance()
			depth++
		case s.cur == '*' && s.peek() == '/':
			s.advance()
			s.advance()
			depth--
		default:
			s.advance()
		}
	}
}

func (s *Scanner) string(pos token.Pos) token.Token {
	start := s.off
	s.advance() // opening quote
	s.sb.Reset()
	for s.cur != '"' && s.cur != -1 {
		s.sb.WriteRune(s.cur)
		s.advance()
	}
	if s.cur == -1 {
		s.error(pos, "unterminated string")
		return token.Token{Kind: token.STRING, Lexeme: string(s.src[start:s.off]), Pos: pos}
	}
	s.advance() // closing quote
	lit := string(s.src[start:s.off])
	return token.Token{Kind: token.STRING, Lexeme: lit, Pos: pos, Value: token.Value{Raw: lit, Str: s.sb.String()}}
}

func (s *Scanner) number(pos token.Pos, start int) token.Token {
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(s.peek()) {
		s.advance() // '.'
		for isDigit(s.cur) {
			s.advance()
		}
	}
	lit := string(s.src[start:s.off])
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		s.errorf(pos, "invalid number literal %q", lit)
	}
	return token.Token{Kind: token.NUMBER, Lexeme: lit, Pos: pos, Value: token.Value{Raw: lit, Num: v}}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
