package eval

import (
	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/diag"
	"github.com/Conceptual-Machines/musicdsl-go/env"
)

// evalCall resolves name to a closure and dispatches on its Kind (§4.6): a
// function evaluates its body expression, a procedure executes its command
// sequence and then evaluates its return expression. Both are invoked
// against an environment built on the closure's CapturedEnv — lexical, not
// dynamic, scoping — extended with one freshly allocated location per
// parameter, per the funapp/procapp unification decision in DESIGN.md.
func (in *Interp) evalCall(n *ast.Call, en *env.Environment) (env.DVal, error) {
	line, col := n.Pos()
	callee, err := in.resolve(en, line, col, n.Name)
	if err != nil {
		return env.DVal{}, err
	}
	if callee.Kind != env.KClosure {
		return env.DVal{}, &diag.SemanticError{Line: line, Col: col, Msg: n.Name + " is not a function or procedure"}
	}
	closure := callee.Closure
	if len(n.Args) != len(closure.Params) {
		return env.DVal{}, &diag.TypeError{Line: line, Col: col, Msg: "wrong number of arguments to " + n.Name}
	}

	callEnv := closure.CapturedEnv
	for i, param := range closure.Params {
		argVal, err := in.EvalExpr(n.Args[i], en)
		if err != nil {
			return env.DVal{}, err
		}
		callEnv = bindNew(in, callEnv, param, argVal)
	}

	switch closure.Kind {
	case env.KindFunction:
		return in.EvalExpr(closure.FuncBody, callEnv)
	case env.KindProcedure:
		bodyEnv, err := in.execSeq(closure.ProcBody, callEnv)
		if err != nil {
			return env.DVal{}, err
		}
		return in.EvalExpr(closure.ProcReturn, bodyEnv)
	default:
		return env.DVal{}, &diag.TypeError{Line: line, Col: col, Msg: "closure has unknown kind"}
	}
}
