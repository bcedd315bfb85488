package parser

import (
	"testing"

	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/diag"
)

func isSemanticError(err error) bool {
	_, ok := err.(*diag.SemanticError)
	return ok
}

func mustParse(t *testing.T, src string) {
	t.Helper()
	if _, err := Parse(src); err != nil {
		t.Fatalf("unexpected error parsing %q: %v", src, err)
	}
}

func TestParseBasicCommands(t *testing.T) {
	mustParse(t, "var x = 1; x <- x + 1; print x")
	mustParse(t, "if x == 1 then { print 1 } else { print 0 }")
	mustParse(t, "while x < 10 do { x <- x + 1 }")
	mustParse(t, "function sq(n) = n * n")
	mustParse(t, "procedure inc(n) = { var r = n + 1 return r }")
	mustParse(t, "print let x = 1 in x + 1")
}

func TestParsePrecedence(t *testing.T) {
	seq, err := Parse("print 1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	print, ok := seq.Head.(*ast.Print)
	if !ok {
		t.Fatalf("expected *ast.Print, got %T", seq.Head)
	}
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the root of the expression
	// must be "+", with "*" nested under its right-hand side.
	bin, ok := print.Expr.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected root op '+', got %+v", print.Expr)
	}
	if _, ok := bin.RHS.(*ast.Binary); !ok {
		t.Errorf("expected right-hand side to be the nested '*' term, got %+v", bin.RHS)
	}
}

func TestParseDuplicateParamIsSemanticError(t *testing.T) {
	if _, err := Parse("function f(a, a) = a"); err == nil {
		t.Errorf("expected a semantic error for duplicate parameter names")
	}
}

func TestParseInvalidNoteRangeIsSemanticError(t *testing.T) {
	// G double-sharp octave 9 encodes to 129, above the top of MIDI range, §4.2.
	if _, err := Parse("print Gdd9/1"); !isSemanticError(err) {
		t.Errorf("expected a semantic error for an out-of-range note literal, got %v", err)
	}
}

func TestParseTrailingInputIsSyntaxError(t *testing.T) {
	if _, err := Parse("print 1 )"); err == nil {
		t.Errorf("expected a syntax error for unexpected trailing input")
	}
}

func TestParseUnboundOperatorPrecedence(t *testing.T) {
	mustParse(t, "print 1 == 2 and 3 < 4")
	mustParse(t, "print not true and false")
	mustParse(t, "print head Cn4/1 ++ Dn4/1")
}
