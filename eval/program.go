package eval

import (
	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/env"
	"github.com/Conceptual-Machines/musicdsl-go/parser"
)

// Run parses src and executes it from a fresh, empty global environment —
// execute_program (§6). It is the single entry point cmd/musicdsl-run and
// the test suite drive the interpreter through.
func (in *Interp) Run(src string) error {
	seq, err := parser.Parse(src)
	if err != nil {
		return err
	}
	_, err = in.execSeq(seq, env.Empty())
	return err
}

// RunSeq executes an already-parsed command sequence, for callers (tests,
// primarily) that want to inspect the resulting environment or reuse one
// Interp's store across several runs.
func (in *Interp) RunSeq(seq *ast.CommandSeq, en *env.Environment) (*env.Environment, error) {
	return in.execSeq(seq, en)
}
