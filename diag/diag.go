// Package diag implements the error taxonomy of §7: SyntaxError,
// SemanticError, TypeError, RangeError, ArithError, each position-tagged
// and rendered as "<kind>: <message> at line L col C" on the diagnostic
// stream (§6). Grounded in spirit on the daios-ai-msg pack repo's typed
// lex/parse/runtime error structs, recognized by type assertion rather
// than by string sniffing, but rendered in the flat single-line format §6
// mandates instead of that repo's multi-line caret snippets.
package diag

import "fmt"

// Error is the common shape every MusicDSL diagnostic satisfies.
type Error interface {
	error
	Kind() string
	Position() (line, col int)
}

func format(kind, msg string, line, col int) string {
	return fmt.Sprintf("%s: %s at line %d col %d", kind, msg, line, col)
}

// SyntaxError reports a grammar violation detected by the lexer or parser.
type SyntaxError struct {
	Line, Col int
	Msg       string
}

func (e *SyntaxError) Error() string        { return format(e.Kind(), e.Msg, e.Line, e.Col) }
func (e *SyntaxError) Kind() string         { return "SyntaxError" }
func (e *SyntaxError) Position() (int, int) { return e.Line, e.Col }

// SemanticError reports an unbound name, assignment to a non-location, a
// redeclared parameter, or an out-of-range pitch literal detected while
// building the AST.
type SemanticError struct {
	Line, Col int
	Msg       string
}

func (e *SemanticError) Error() string        { return format(e.Kind(), e.Msg, e.Line, e.Col) }
func (e *SemanticError) Kind() string         { return "SemanticError" }
func (e *SemanticError) Position() (int, int) { return e.Line, e.Col }

// TypeError reports an operator type mismatch, wrong arity, or a non-bool
// guard, detected during evaluation.
type TypeError struct {
	Line, Col int
	Msg       string
}

func (e *TypeError) Error() string        { return format(e.Kind(), e.Msg, e.Line, e.Col) }
func (e *TypeError) Kind() string         { return "TypeError" }
func (e *TypeError) Position() (int, int) { return e.Line, e.Col }

// RangeError reports a MIDI pitch leaving [0,127] through transposition.
// An out-of-range note literal is a SemanticError instead.
type RangeError struct {
	Line, Col int
	Msg       string
}

func (e *RangeError) Error() string        { return format(e.Kind(), e.Msg, e.Line, e.Col) }
func (e *RangeError) Kind() string         { return "RangeError" }
func (e *RangeError) Position() (int, int) { return e.Line, e.Col }

// ArithError reports division or modulo by zero.
type ArithError struct {
	Line, Col int
	Msg       string
}

func (e *ArithError) Error() string        { return format(e.Kind(), e.Msg, e.Line, e.Col) }
func (e *ArithError) Kind() string         { return "ArithError" }
func (e *ArithError) Position() (int, int) { return e.Line, e.Col }

// ExitStatus maps a diagnostic to the process exit status §6 specifies:
// 1 syntax, 2 semantic/type/range, 3 arithmetic. Callers that already know
// execution succeeded should use 0 directly.
func ExitStatus(err error) int {
	d, ok := err.(Error)
	if !ok {
		return 2
	}
	switch d.Kind() {
	case "SyntaxError":
		return 1
	case "ArithError":
		return 3
	default: // SemanticError, TypeError, RangeError
		return 2
	}
}
