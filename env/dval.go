package env

import (
	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/value"
)

// Kind tags a DVal's dynamic type. EVal (expression results) and MVal
// (storable values) are, in this implementation, just DVals restricted by
// convention to KInt/KBool/KMusic — the evaluator never lets a Location or
// Closure escape as the result of evaluating a plain expression, and the
// store only ever holds one of those three kinds *except* for the closure
// indirection FunDecl/ProcDecl needs (see Closure doc below). Modeling all
// three value classes with one tagged struct mirrors the single
// Kind-tagged value struct a dynamically-typed DSL interpreter reaches for
// throughout this codebase rather than three separate Go types that would
// just convert into each other at every boundary.
type Kind int

const (
	KInt Kind = iota
	KBool
	KMusic
	KLocation
	KClosure
)

func (k Kind) String() string {
	switch k {
	case KInt:
		return "int"
	case KBool:
		return "bool"
	case KMusic:
		return "music"
	case KLocation:
		return "location"
	case KClosure:
		return "closure"
	default:
		return "unknown"
	}
}

// Location is an opaque store address.
type Location int

// ClosureKind distinguishes a pure function from a state-mutating
// procedure, per §3's Closure definition.
type ClosureKind int

const (
	KindFunction ClosureKind = iota
	KindProcedure
)

// Closure is code plus the environment snapshot at its declaration site.
// A function's body is a single expression; a procedure's is a command
// sequence terminated by a return expression. FunDecl/ProcDecl bind a
// closure's name to a location holding this DVal (rather than binding the
// name directly) so the closure's own CapturedEnv can include that
// binding before the closure value is finalized, which is what makes
// recursion resolve (§4.6).
type Closure struct {
	Kind        ClosureKind
	Params      []string
	FuncBody    ast.Expr       // set when Kind == KindFunction
	ProcBody    *ast.CommandSeq // set when Kind == KindProcedure
	ProcReturn  ast.Expr        // set when Kind == KindProcedure
	CapturedEnv *Environment
}

// DVal is the tagged union every name in an Environment, and every slot in
// the Store, holds.
type DVal struct {
	Kind     Kind
	Int      int
	Bool     bool
	Music    value.Result
	Location Location
	Closure  *Closure
}

func Int(n int) DVal             { return DVal{Kind: KInt, Int: n} }
func Bool(b bool) DVal           { return DVal{Kind: KBool, Bool: b} }
func Music(r value.Result) DVal  { return DVal{Kind: KMusic, Music: r} }
func Loc(l Location) DVal        { return DVal{Kind: KLocation, Location: l} }
func ClosureVal(c *Closure) DVal { return DVal{Kind: KClosure, Closure: c} }

// IsEVal reports whether v is a value an expression could directly
// evaluate to (int, bool, or MusicResult) rather than a location or
// closure, which are only ever reached through one extra level of
// indirection (a bound name).
func (v DVal) IsEVal() bool {
	return v.Kind == KInt || v.Kind == KBool || v.Kind == KMusic
}
