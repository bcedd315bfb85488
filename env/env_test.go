package env

import "testing"

func TestBindShadowsInnermostFirst(t *testing.T) {
	e := Empty().Bind("x", Int(1)).Bind("x", Int(2))
	got, ok := e.Lookup("x")
	if !ok || got.Int != 2 {
		t.Fatalf("got %+v, ok=%v, want Int(2)", got, ok)
	}
}

func TestLookupUnbound(t *testing.T) {
	if _, ok := Empty().Lookup("missing"); ok {
		t.Errorf("expected unbound lookup to fail")
	}
}

func TestBindDoesNotMutateParent(t *testing.T) {
	base := Empty().Bind("x", Int(1))
	_ = base.Bind("x", Int(99))
	got, ok := base.Lookup("x")
	if !ok || got.Int != 1 {
		t.Errorf("parent environment was mutated: got %+v", got)
	}
}

func TestLookupSeesOuterScope(t *testing.T) {
	outer := Empty().Bind("x", Int(1))
	inner := outer.Bind("y", Int(2))
	got, ok := inner.Lookup("x")
	if !ok || got.Int != 1 {
		t.Errorf("inner scope should see outer binding, got %+v ok=%v", got, ok)
	}
}

func TestClosureCapturesDeclarationEnv(t *testing.T) {
	base := Empty().Bind("x", Int(10))
	c := &Closure{Kind: KindFunction, Params: nil, CapturedEnv: base}
	dv := ClosureVal(c)
	if dv.Kind != KClosure {
		t.Fatalf("expected KClosure, got %v", dv.Kind)
	}
	got, ok := dv.Closure.CapturedEnv.Lookup("x")
	if !ok || got.Int != 10 {
		t.Errorf("closure lost its captured environment: got %+v ok=%v", got, ok)
	}
}
