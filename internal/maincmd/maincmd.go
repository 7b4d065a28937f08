// Package maincmd wires the scanner/parser/resolver/interpreter pipeline to
// a command-line front end: a REPL when invoked with no arguments, a
// run-once script mode when given exactly one path, and a usage error
// otherwise.
package maincmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/go-lox/golox/lang/ast"
	"github.com/go-lox/golox/lang/interp"
	"github.com/go-lox/golox/lang/loxerr"
	"github.com/go-lox/golox/lang/parser"
	"github.com/go-lox/golox/lang/resolver"
	"github.com/go-lox/golox/lang/scanner"
)

const binName = "lox"

const usage = `usage: lox [script]

With no arguments, starts an interactive REPL. With one argument, runs the
named script and exits. More than one argument is an error.

Valid flag options are:
       --dump-tokens              Print the scanned token stream.
       --dump-ast                 Print the parsed AST before resolution.
       --dump-resolved            Print the AST after resolution.
       -h --help                  Show this help and exit.
       -v --version               Print version and exit.
`

// Cmd is the CLI's flag-bound entry point, run via its Main method.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	DumpTokens   bool `flag:"dump-tokens"`
	DumpAST      bool `flag:"dump-ast"`
	DumpResolved bool `flag:"dump-resolved"`

	args []string
}

func (c *Cmd) SetArgs(args []string)        { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

// Validate enforces the CLI's 0-or-1-positional-argument contract.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return errors.New("usage: lox [script]")
	}
	return nil
}

// Main parses args, then dispatches to the REPL or script runner. The
// returned exit code follows the CLI contract: 64 for usage errors (and for
// a script file that cannot be read), 65 for a compile error, 70 for a
// runtime error, 0 otherwise.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n%s", err, usage)
		return mainer.ExitCode(64)
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, usage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	if len(c.args) == 0 {
		return c.runREPL(ctx, stdio)
	}
	return c.runFile(ctx, stdio, c.args[0])
}

func (c *Cmd) runFile(ctx context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.ExitCode(64)
	}

	it := interp.New(stdio.Stdout)
	hadCompileErr, hadRuntimeErr := c.runSource(ctx, stdio, it, src)
	switch {
	case hadCompileErr:
		return mainer.ExitCode(65)
	case hadRuntimeErr:
		return mainer.ExitCode(70)
	default:
		return mainer.Success
	}
}

func (c *Cmd) runREPL(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	it := interp.New(stdio.Stdout)
	sc := bufio.NewScanner(stdio.Stdin)
	for {
		if ctx.Err() != nil {
			return mainer.Success
		}
		fmt.Fprint(stdio.Stdout, "> ")
		if !sc.Scan() {
			return mainer.Success
		}
		// a compile error resets for the next line; a runtime error does not
		// exit the REPL either.
		c.runSource(ctx, stdio, it, sc.Bytes())
	}
}

// runSource drives one pass of the pipeline over src against the given
// (possibly REPL-persistent) interpreter, reporting diagnostics to stdio and
// honoring the --dump-* flags. ctx is forwarded to Interpret so a signal
// caught by CancelOnSignal can interrupt a runaway loop.
func (c *Cmd) runSource(ctx context.Context, stdio mainer.Stdio, it *interp.Interpreter, src []byte) (hadCompileErr, hadRuntimeErr bool) {
	var errs loxerr.ErrorList

	toks := scanner.New(src, &errs).ScanAll()
	if c.DumpTokens {
		for _, t := range toks {
			fmt.Fprintf(stdio.Stdout, "%s %q\n", t.Kind, t.Lexeme)
		}
	}

	prog := parser.New(toks, &errs).Parse()
	if c.DumpAST {
		fmt.Fprintln(stdio.Stdout, ast.Print(prog))
	}

	if errs.Len() > 0 {
		reportErrors(stdio, &errs)
		return true, false
	}

	resolver.New(&errs).Resolve(prog)
	if c.DumpResolved {
		fmt.Fprintln(stdio.Stdout, ast.Print(prog))
	}

	if errs.Len() > 0 {
		reportErrors(stdio, &errs)
		return true, false
	}

	if err := it.Interpret(ctx, prog.Stmts); err != nil {
		fmt.Fprintln(stdio.Stderr, err.Error())
		return false, true
	}
	return false, false
}

func reportErrors(stdio mainer.Stdio, errs *loxerr.ErrorList) {
	errs.Sort()
	for _, e := range errs.All() {
		fmt.Fprintln(stdio.Stderr, e.Error())
	}
}
