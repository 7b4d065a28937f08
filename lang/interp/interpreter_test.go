package interp_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-lox/golox/lang/interp"
	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/parser"
	"github.com/go-lox/golox/lang/resolver"
	"github.com/go-lox/golox/lang/scanner"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var errs loxerr.ErrorList
	toks := scanner.New([]byte(src), &errs).ScanAll()
	prog := parser.New(toks, &errs).Parse()
	resolver.New(&errs).Resolve(prog)
	require.Equal(t, 0, errs.Len(), "unexpected compile errors: %v", errs.All())

	var out bytes.Buffer
	it := interp.New(&out)
	err := it.Interpret(context.Background(), prog.Stmts)
	return out.String(), err
}

func TestEndToEndArithmeticPrint(t *testing.T) {
	out, err := run(t, `print 1 + 2;`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestEndToEndClosureBindsDeclarationScope(t *testing.T) {
	src := `var a = "global"; { fun show() { print a; } show(); var a = "local"; show(); }`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "global\nglobal\n", out)
}

func TestEndToEndSuperInvokesParentMethod(t *testing.T) {
	src := `class A { greet() { print "hi"; } }
	class B < A { greet() { super.greet(); print "bye"; } }
	B().greet();`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "hi\nbye\n", out)
}

func TestEndToEndCounterClosureRetainsState(t *testing.T) {
	src := `fun counter() { var i = 0; fun inc() { i = i + 1; print i; } return inc; }
	var c = counter(); c(); c(); c();`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestEndToEndInitializerBindsFieldAndReturnsThis(t *testing.T) {
	src := `class C { init(x) { this.x = x; } } print C(7).x;`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestEndToEndDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, `print 1 / 0;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Cannot divide by zero.")
}

func TestTruthinessTable(t *testing.T) {
	truthy := []interp.Value{true, 0.0, "", "x", 1.0}
	for _, v := range truthy {
		require.True(t, interp.IsTruthy(v), "%#v should be truthy", v)
	}
	falsey := []interp.Value{nil, false}
	for _, v := range falsey {
		require.False(t, interp.IsTruthy(v), "%#v should be falsey", v)
	}
}

func TestEqualityCrossTypeNeverEqual(t *testing.T) {
	require.False(t, interp.IsEqual(1.0, "1"))
	require.False(t, interp.IsEqual(nil, false))
	require.True(t, interp.IsEqual(nil, nil))
	require.True(t, interp.IsEqual(1.0, 1.0))
	require.True(t, interp.IsEqual("a", "a"))
}

func TestNaNIsNeverEqualToItself(t *testing.T) {
	nan := interp.Value(nanValue())
	require.False(t, interp.IsEqual(nan, nan))
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestStringifyNumbersDropTrailingZero(t *testing.T) {
	require.Equal(t, "3", interp.Stringify(3.0))
	require.Equal(t, "3.5", interp.Stringify(3.5))
	require.Equal(t, "nil", interp.Stringify(nil))
	require.Equal(t, "true", interp.Stringify(true))
}

func TestLogicalOperatorsReturnOperandValueNotBool(t *testing.T) {
	out, err := run(t, `print "a" or "b"; print nil or "b"; print "a" and "b"; print nil and "b";`)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nb\nnil\n", out)
}

func TestReturnWithoutValueYieldsNil(t *testing.T) {
	out, err := run(t, `fun f() { return; } print f();`)
	require.NoError(t, err)
	require.Equal(t, "nil\n", out)
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `var a = 1; a();`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestStaticMethodInheritedThroughGet(t *testing.T) {
	src := `class A { class make() { return "from A"; } }
	class B < A {}
	print B.make();`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "from A\n", out)
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := run(t, `class C {} print C().nope;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined property 'nope'.")
}

func TestRuntimeErrorFormatHasLineSuffix(t *testing.T) {
	_, err := run(t, "\n\nprint 1 / 0;")
	require.Error(t, err)
	require.True(t, strings.HasSuffix(err.Error(), "[line 3]"))
}
