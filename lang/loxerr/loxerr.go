// Package loxerr defines the diagnostic types shared by the scanner,
// parser, resolver and interpreter. It distinguishes compile-time errors
// (scan/parse/resolve) from runtime errors, per the three disjoint error
// kinds the language defines: compile errors never reach the interpreter,
// runtime errors carry the offending token, and non-local return is not an
// error at all (it is modeled separately, see lang/interp).
package loxerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-lox/golox/lang/token"
)

// CompileError is a single scan, parse or resolve diagnostic.
type CompileError struct {
	Pos     token.Pos
	Where   string // "", " at end", or " at '<lexeme>'"
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Pos.Line(), e.Where, e.Message)
}

// ErrorList collects CompileErrors encountered across a scan/parse/resolve
// pass. The pipeline never aborts on the first error; later stages check
// Err() to decide whether to continue at all (spec.md's "had error" flag).
type ErrorList struct {
	errs []*CompileError
}

// Add records a new compile error at pos, with optional token context for
// the "<where>" clause.
func (l *ErrorList) Add(pos token.Pos, where, msg string) {
	l.errs = append(l.errs, &CompileError{Pos: pos, Where: where, Message: msg})
}

// Addf is like Add but formats msg with args.
func (l *ErrorList) Addf(pos token.Pos, where, format string, args ...any) {
	l.Add(pos, where, fmt.Sprintf(format, args...))
}

// Len reports the number of collected errors.
func (l *ErrorList) Len() int { return len(l.errs) }

// Sort orders the errors by line number, for stable, readable reporting.
func (l *ErrorList) Sort() {
	sort.SliceStable(l.errs, func(i, j int) bool {
		return l.errs[i].Pos.Line() < l.errs[j].Pos.Line()
	})
}

// All returns the collected errors in the order they were added (or sorted,
// if Sort was called).
func (l *ErrorList) All() []*CompileError { return l.errs }

// Err returns nil if the list is empty, otherwise an error whose message
// joins every collected diagnostic on its own line.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return listErr(l.errs)
}

type listErr []*CompileError

func (e listErr) Error() string {
	var sb strings.Builder
	for i, ce := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(ce.Error())
	}
	return sb.String()
}

// RuntimeError is a failure detected while evaluating a resolved,
// well-formed program. It carries the token at which it occurred so the
// top-level interpret loop can report a line number.
type RuntimeError struct {
	Tok     token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Tok.Line())
}

// NewRuntimeError builds a RuntimeError carrying tok for line reporting.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Tok: tok, Message: fmt.Sprintf(format, args...)}
}
