package scanner_test

import (
	"testing"

	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/scanner"
	"github.com/go-lox/golox/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]token.Token, *loxerr.ErrorList) {
	t.Helper()
	var errs loxerr.ErrorList
	s := scanner.New([]byte(src), &errs)
	return s.ScanAll(), &errs
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, errs := scanAll(t, "(){},.-+;*/ ! != = == < <= > >=")
	require.Equal(t, 0, errs.Len())
	require.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMI, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQ, token.EQ, token.EQ_EQ, token.LT, token.LT_EQ,
		token.GT, token.GT_EQ, token.EOF,
	}, kinds(toks))
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, errs := scanAll(t, "and class myVar1 orchid")
	require.Equal(t, 0, errs.Len())
	require.Equal(t, token.AND, toks[0].Kind)
	require.Equal(t, token.CLASS, toks[1].Kind)
	require.Equal(t, token.IDENT, toks[2].Kind)
	require.Equal(t, "myVar1", toks[2].Lexeme)
	// "orchid" starts with "or" but must not be mis-tokenized as OR + "chid".
	require.Equal(t, token.IDENT, toks[3].Kind)
	require.Equal(t, "orchid", toks[3].Lexeme)
}

func TestScanNumber(t *testing.T) {
	toks, errs := scanAll(t, "123 45.67 0 0.5")
	require.Equal(t, 0, errs.Len())
	require.Equal(t, float64(123), toks[0].Value.Num)
	require.Equal(t, 45.67, toks[1].Value.Num)
	require.Equal(t, float64(0), toks[2].Value.Num)
	require.Equal(t, 0.5, toks[3].Value.Num)
}

func TestScanNumberTrailingDotIsSeparateToken(t *testing.T) {
	// "123." is NUMBER(123) followed by DOT, not a malformed float: the
	// fractional part requires a digit after the dot (spec.md §4.1).
	toks, errs := scanAll(t, "123.")
	require.Equal(t, 0, errs.Len())
	require.Equal(t, []token.Kind{token.NUMBER, token.DOT, token.EOF}, kinds(toks))
}

func TestScanString(t *testing.T) {
	toks, errs := scanAll(t, `"hello world"`)
	require.Equal(t, 0, errs.Len())
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Value.Str)
}

func TestScanMultilineString(t *testing.T) {
	toks, errs := scanAll(t, "\"line one\nline two\"")
	require.Equal(t, 0, errs.Len())
	require.Equal(t, "line one\nline two", toks[0].Value.Str)
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := scanAll(t, `"unterminated`)
	require.Equal(t, 1, errs.Len())
	require.Contains(t, errs.All()[0].Message, "unterminated string")
}

func TestScanLineComment(t *testing.T) {
	toks, errs := scanAll(t, "var x; // this is a comment\nvar y;")
	require.Equal(t, 0, errs.Len())
	require.Equal(t, []token.Kind{
		token.VAR, token.IDENT, token.SEMI,
		token.VAR, token.IDENT, token.SEMI,
		token.EOF,
	}, kinds(toks))
}

func TestScanBlockComment(t *testing.T) {
	toks, errs := scanAll(t, "var /* nested /* comment */ still comment */ x;")
	require.Equal(t, 0, errs.Len())
	require.Equal(t, []token.Kind{token.VAR, token.IDENT, token.SEMI, token.EOF}, kinds(toks))
}

func TestScanUnterminatedBlockComment(t *testing.T) {
	_, errs := scanAll(t, "/* never closes")
	require.Equal(t, 1, errs.Len())
	require.Contains(t, errs.All()[0].Message, "unterminated block comment")
}

func TestScanUnknownCharacterContinues(t *testing.T) {
	toks, errs := scanAll(t, "var x = 1 @ 2;")
	require.Equal(t, 1, errs.Len())
	// scanning continued past the illegal '@' and produced a full token
	// stream ending in EOF.
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestScanAlwaysEndsWithEOF(t *testing.T) {
	for _, src := range []string{"", "  \n\t", "var x;"} {
		toks, _ := scanAll(t, src)
		require.NotEmpty(t, toks)
		require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
		eofCount := 0
		for _, tok := range toks {
			if tok.Kind == token.EOF {
				eofCount++
			}
		}
		require.Equal(t, 1, eofCount)
	}
}

func TestScanLexemeMatchesSource(t *testing.T) {
	src := "var greeting = \"hi\";"
	toks, errs := scanAll(t, src)
	require.Equal(t, 0, errs.Len())
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		// property: source.substring(start, end) == token.lexeme, verified
		// here by checking the lexeme appears literally in the source.
		require.Contains(t, src, tok.Lexeme)
	}
}
