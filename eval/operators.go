package eval

import (
	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/diag"
	"github.com/Conceptual-Machines/musicdsl-go/env"
	"github.com/Conceptual-Machines/musicdsl-go/value"
)

func typeErr(line, col int, msg string) error {
	return &diag.TypeError{Line: line, Col: col, Msg: msg}
}

// ordinal extracts a comparable integer from an Int or Bool DVal, the two
// kinds §4.4's "ordinal" </> comparisons apply to.
func ordinal(v env.DVal) (int, bool) {
	switch v.Kind {
	case env.KInt:
		return v.Int, true
	case env.KBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func (in *Interp) evalBinary(n *ast.Binary, en *env.Environment) (env.DVal, error) {
	line, col := n.Pos()

	// and/or are evaluated non-short-circuit (§4.4): both operands are
	// always evaluated, unlike most C-family languages' && / ||.
	lhs, err := in.EvalExpr(n.LHS, en)
	if err != nil {
		return env.DVal{}, err
	}
	rhs, err := in.EvalExpr(n.RHS, en)
	if err != nil {
		return env.DVal{}, err
	}

	switch n.Op {
	case "+", "-", "*", "/", "%":
		return arith(n.Op, lhs, rhs, line, col)
	case "==":
		return env.Bool(structEqual(lhs, rhs)), nil
	case "!=":
		return env.Bool(!structEqual(lhs, rhs)), nil
	case "<", ">":
		return compare(n.Op, lhs, rhs, line, col)
	case "and", "or":
		return boolOp(n.Op, lhs, rhs, line, col)
	case "++":
		return musicOp2(value.Concat, lhs, rhs, line, col)
	case "|":
		return musicOp2(value.Union, lhs, rhs, line, col)
	case "!":
		return transpose(lhs, rhs, line, col)
	default:
		return env.DVal{}, typeErr(line, col, "unknown operator "+n.Op)
	}
}

func arith(op string, lhs, rhs env.DVal, line, col int) (env.DVal, error) {
	if lhs.Kind != env.KInt || rhs.Kind != env.KInt {
		return env.DVal{}, typeErr(line, col, "operator "+op+" requires two ints")
	}
	a, b := lhs.Int, rhs.Int
	switch op {
	case "+":
		return env.Int(a + b), nil
	case "-":
		return env.Int(a - b), nil
	case "*":
		return env.Int(a * b), nil
	case "/":
		if b == 0 {
			return env.DVal{}, &diag.ArithError{Line: line, Col: col, Msg: "division by zero"}
		}
		return env.Int(a / b), nil
	case "%":
		if b == 0 {
			return env.DVal{}, &diag.ArithError{Line: line, Col: col, Msg: "modulo by zero"}
		}
		return env.Int(a % b), nil
	}
	panic("unreachable")
}

// structEqual implements §4.4's structural equality across any two DVals:
// values of different kinds simply compare unequal, rather than raising a
// TypeError, matching how a dynamically typed expression language like
// this one usually treats ==.
func structEqual(a, b env.DVal) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case env.KInt:
		return a.Int == b.Int
	case env.KBool:
		return a.Bool == b.Bool
	case env.KMusic:
		return value.Equal(a.Music, b.Music)
	default:
		return false
	}
}

func compare(op string, lhs, rhs env.DVal, line, col int) (env.DVal, error) {
	a, ok1 := ordinal(lhs)
	b, ok2 := ordinal(rhs)
	if !ok1 || !ok2 {
		return env.DVal{}, typeErr(line, col, "operator "+op+" requires ordinal (int or bool) operands")
	}
	if op == "<" {
		return env.Bool(a < b), nil
	}
	return env.Bool(a > b), nil
}

func boolOp(op string, lhs, rhs env.DVal, line, col int) (env.DVal, error) {
	if lhs.Kind != env.KBool || rhs.Kind != env.KBool {
		return env.DVal{}, typeErr(line, col, "operator "+op+" requires two bools")
	}
	if op == "and" {
		return env.Bool(lhs.Bool && rhs.Bool), nil
	}
	return env.Bool(lhs.Bool || rhs.Bool), nil
}

func musicOp2(f func(a, b value.Result) value.Result, lhs, rhs env.DVal, line, col int) (env.DVal, error) {
	if lhs.Kind != env.KMusic || rhs.Kind != env.KMusic {
		return env.DVal{}, typeErr(line, col, "operator requires two music values")
	}
	return env.Music(f(lhs.Music, rhs.Music)), nil
}

func transpose(lhs, rhs env.DVal, line, col int) (env.DVal, error) {
	if lhs.Kind != env.KMusic || rhs.Kind != env.KInt {
		return env.DVal{}, typeErr(line, col, "operator ! requires a music value and an int")
	}
	out, err := value.Transpose(lhs.Music, rhs.Int)
	if err != nil {
		if rangeErr, ok := err.(*value.RangeError); ok {
			return env.DVal{}, &diag.RangeError{Line: line, Col: col, Msg: rangeErr.Error()}
		}
		return env.DVal{}, err
	}
	return env.Music(out), nil
}

func (in *Interp) evalUnary(n *ast.Unary, en *env.Environment) (env.DVal, error) {
	line, col := n.Pos()
	arg, err := in.EvalExpr(n.Arg, en)
	if err != nil {
		return env.DVal{}, err
	}
	switch n.Op {
	case "not":
		if arg.Kind != env.KBool {
			return env.DVal{}, typeErr(line, col, "not requires a bool")
		}
		return env.Bool(!arg.Bool), nil
	case "head":
		if arg.Kind != env.KMusic {
			return env.DVal{}, typeErr(line, col, "head requires a music value")
		}
		out, err := value.Head(arg.Music)
		if err != nil {
			return env.DVal{}, typeErr(line, col, err.Error())
		}
		return env.Music(out), nil
	case "tail":
		if arg.Kind != env.KMusic {
			return env.DVal{}, typeErr(line, col, "tail requires a music value")
		}
		return env.Music(value.Tail(arg.Music)), nil
	case "is_empty":
		if arg.Kind != env.KMusic {
			return env.DVal{}, typeErr(line, col, "is_empty requires a music value")
		}
		return env.Bool(arg.Music.IsEmpty()), nil
	case "pitch":
		if arg.Kind != env.KMusic {
			return env.DVal{}, typeErr(line, col, "pitch requires a music value")
		}
		p, err := value.Pitch(arg.Music)
		if err != nil {
			return env.DVal{}, typeErr(line, col, err.Error())
		}
		return env.Int(p), nil
	case "initialize":
		if arg.Kind != env.KMusic {
			return env.DVal{}, typeErr(line, col, "initialize requires a music value")
		}
		return env.Music(value.Initialize(arg.Music)), nil
	default:
		return env.DVal{}, typeErr(line, col, "unknown unary operator "+n.Op)
	}
}
