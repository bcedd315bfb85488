package eval

import (
	"fmt"

	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/diag"
	"github.com/Conceptual-Machines/musicdsl-go/env"
	"github.com/Conceptual-Machines/musicdsl-go/value"
)

// execSeq runs every command in seq in order, threading the environment
// forward so a later command sees an earlier one's var/function/procedure
// bindings, and returns the environment as it stood after the last
// command. The caller decides whether that environment escapes the block
// (top-level program) or is discarded (if-branch, while-body, call) —
// store mutations always escape regardless, since the Store is shared.
func (in *Interp) execSeq(seq *ast.CommandSeq, en *env.Environment) (*env.Environment, error) {
	for seq != nil {
		next, err := in.execCommand(seq.Head, en)
		if err != nil {
			return nil, err
		}
		en = next
		seq = seq.Tail
	}
	return en, nil
}

func (in *Interp) execCommand(c ast.Cmd, en *env.Environment) (*env.Environment, error) {
	switch n := c.(type) {
	case *ast.VarDecl:
		val, err := in.EvalExpr(n.Expr, en)
		if err != nil {
			return nil, err
		}
		return bindNew(in, en, n.Name, val), nil

	case *ast.Assign:
		line, col := n.Pos()
		bound, ok := en.Lookup(n.Name)
		if !ok || bound.Kind != env.KLocation {
			return nil, &diag.SemanticError{Line: line, Col: col, Msg: "assignment to undeclared name " + n.Name}
		}
		val, err := in.EvalExpr(n.Expr, en)
		if err != nil {
			return nil, err
		}
		in.St.Update(bound.Location, val)
		return en, nil

	case *ast.Print:
		val, err := in.EvalExpr(n.Expr, en)
		if err != nil {
			return nil, err
		}
		rendered, err := renderPrint(val)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(in.Out, rendered)
		return en, nil

	case *ast.If:
		line, col := n.Pos()
		cond, err := in.EvalExpr(n.Cond, en)
		if err != nil {
			return nil, err
		}
		if cond.Kind != env.KBool {
			return nil, &diag.TypeError{Line: line, Col: col, Msg: "if condition must be a bool"}
		}
		branch := n.ElseSeq
		if cond.Bool {
			branch = n.ThenSeq
		}
		if _, err := in.execSeq(branch, en); err != nil {
			return nil, err
		}
		// bindings made inside the branch are block-scoped and discarded;
		// the store mutations it made are not.
		return en, nil

	case *ast.While:
		line, col := n.Pos()
		for {
			cond, err := in.EvalExpr(n.Cond, en)
			if err != nil {
				return nil, err
			}
			if cond.Kind != env.KBool {
				return nil, &diag.TypeError{Line: line, Col: col, Msg: "while condition must be a bool"}
			}
			if !cond.Bool {
				return en, nil
			}
			mark := in.St.Mark()
			if _, err := in.execSeq(n.Body, en); err != nil {
				return nil, err
			}
			// No construct lets a binding made inside the loop body
			// outlive this iteration (block scoping discards it above),
			// so nothing allocated since mark can still be reachable.
			in.St.Truncate(mark, nil)
		}

	case *ast.FunDecl:
		return in.declareClosure(en, n.Name, n.Params, env.KindFunction, n.Body, nil, nil), nil

	case *ast.ProcDecl:
		return in.declareClosure(en, n.Name, n.Params, env.KindProcedure, nil, n.Body, n.Return), nil

	default:
		line, col := c.Pos()
		return nil, &diag.TypeError{Line: line, Col: col, Msg: "unhandled command node"}
	}
}

// declareClosure binds name to a location, then builds a closure whose
// CapturedEnv includes that very binding, and writes the closure into the
// same location — the indirection §4.6 describes that lets name refer to
// itself inside its own body, enabling recursion.
func (in *Interp) declareClosure(en *env.Environment, name string, params []string, kind env.ClosureKind, funcBody ast.Expr, procBody *ast.CommandSeq, procReturn ast.Expr) *env.Environment {
	loc := in.St.Allocate(env.DVal{})
	selfEnv := en.Bind(name, env.Loc(loc))
	closure := &env.Closure{
		Kind:        kind,
		Params:      params,
		FuncBody:    funcBody,
		ProcBody:    procBody,
		ProcReturn:  procReturn,
		CapturedEnv: selfEnv,
	}
	in.St.Update(loc, env.ClosureVal(closure))
	return selfEnv
}

// renderPrint formats an EVal for the diagnostic stream (§6): ints and
// bools print plainly, music values print as their JSON export.
func renderPrint(val env.DVal) (string, error) {
	switch val.Kind {
	case env.KInt:
		return fmt.Sprintf("%d", val.Int), nil
	case env.KBool:
		return fmt.Sprintf("%t", val.Bool), nil
	case env.KMusic:
		return value.ToJSON(val.Music)
	default:
		return "", fmt.Errorf("print requires an int, bool, or music value")
	}
}
