// Package eval implements the MusicDSL evaluator (§4.6): evaluate_expr and
// execute_command over the typed AST from package ast, dispatching through
// the operator table (§4.4) and threading an env.Environment / store.Store
// pair the way the teacher's agent runtime threads request-scoped state
// through its graph nodes, adapted here to the language's denotational
// split between names-as-locations (env) and values-at-locations (store).
package eval

import (
	"io"

	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/diag"
	"github.com/Conceptual-Machines/musicdsl-go/env"
	"github.com/Conceptual-Machines/musicdsl-go/store"
	"github.com/Conceptual-Machines/musicdsl-go/value"
)

func noteResult(midi int, dur float64) value.Result { return value.Single(value.NewNote(midi, dur)) }
func restResult(dur float64) value.Result           { return value.Single(value.NewRest(dur)) }

// Interp holds the one Store, and the sink print writes to, live for the
// lifetime of a program run. The Environment, by contrast, is threaded
// explicitly through every call since it is persistent (§4.3) and
// block-scoped: a command's bindings must not leak past the block
// (if-branch, while-body, closure call) that created them, while the
// Store's mutations always do.
type Interp struct {
	St  *store.Store
	Out io.Writer
}

// New returns an Interp backed by a fresh, empty store, printing to out.
func New(out io.Writer) *Interp {
	return &Interp{St: store.New(), Out: out}
}

// bindNew allocates a fresh location for val and returns an environment
// extending en with name bound to that location. Every name — variables,
// let-bindings, function parameters, function and procedure names — is
// bound through a location rather than directly to its value, so that (a)
// assignment has something to mutate and (b) a closure can capture an
// environment that already includes a binding for its own name, which is
// what lets recursive calls resolve (§4.6, §9 Open Question b).
func bindNew(in *Interp, en *env.Environment, name string, val env.DVal) *env.Environment {
	loc := in.St.Allocate(val)
	return en.Bind(name, env.Loc(loc))
}

// resolve looks up name and dereferences the location it must denote.
func (in *Interp) resolve(en *env.Environment, line, col int, name string) (env.DVal, error) {
	bound, ok := en.Lookup(name)
	if !ok {
		return env.DVal{}, &diag.SemanticError{Line: line, Col: col, Msg: "unbound name " + name}
	}
	if bound.Kind != env.KLocation {
		return env.DVal{}, &diag.SemanticError{Line: line, Col: col, Msg: name + " does not denote a location"}
	}
	val, ok := in.St.Access(bound.Location)
	if !ok {
		return env.DVal{}, &diag.SemanticError{Line: line, Col: col, Msg: name + " refers to a reclaimed location"}
	}
	return val, nil
}

// EvalExpr evaluates e in environment en, returning an EVal (a DVal whose
// Kind is one of KInt/KBool/KMusic — see env.DVal.IsEVal).
func (in *Interp) EvalExpr(e ast.Expr, en *env.Environment) (env.DVal, error) {
	switch n := e.(type) {
	case *ast.Number:
		return env.Int(n.Value), nil
	case *ast.Bool:
		return env.Bool(n.Value), nil
	case *ast.Note:
		return env.Music(noteResult(n.MIDI, n.Dur)), nil
	case *ast.Rest:
		return env.Music(restResult(n.Dur)), nil
	case *ast.Var:
		line, col := n.Pos()
		val, err := in.resolve(en, line, col, n.Name)
		if err != nil {
			return env.DVal{}, err
		}
		if !val.IsEVal() {
			return env.DVal{}, &diag.TypeError{Line: line, Col: col, Msg: n.Name + " denotes a " + val.Kind.String() + ", not a value"}
		}
		return val, nil
	case *ast.Binary:
		return in.evalBinary(n, en)
	case *ast.Unary:
		return in.evalUnary(n, en)
	case *ast.Let:
		return in.evalLet(n, en)
	case *ast.Call:
		return in.evalCall(n, en)
	default:
		line, col := e.Pos()
		return env.DVal{}, &diag.TypeError{Line: line, Col: col, Msg: "unhandled expression node"}
	}
}

func (in *Interp) evalLet(n *ast.Let, en *env.Environment) (env.DVal, error) {
	bound, err := in.EvalExpr(n.Bound, en)
	if err != nil {
		return env.DVal{}, err
	}
	inner := bindNew(in, en, n.Name, bound)
	return in.EvalExpr(n.Body, inner)
}
