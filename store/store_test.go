package store

import (
	"testing"

	"github.com/Conceptual-Machines/musicdsl-go/env"
)

func TestAllocateAccessRoundTrip(t *testing.T) {
	s := New()
	loc := s.Allocate(env.Int(42))
	got, ok := s.Access(loc)
	if !ok || got.Int != 42 {
		t.Fatalf("got %+v ok=%v, want Int(42)", got, ok)
	}
}

func TestUpdateOverwritesCell(t *testing.T) {
	s := New()
	loc := s.Allocate(env.Int(1))
	s.Update(loc, env.Int(2))
	got, _ := s.Access(loc)
	if got.Int != 2 {
		t.Errorf("got %d, want 2", got.Int)
	}
}

func TestAccessDanglingLocationFails(t *testing.T) {
	s := New()
	if _, ok := s.Access(env.Location(0)); ok {
		t.Errorf("expected access of never-allocated location to fail")
	}
}

func TestTruncateReclaimsLoopScopedCells(t *testing.T) {
	s := New()
	s.Allocate(env.Int(1)) // survives, allocated before the loop
	mark := s.Mark()
	s.Allocate(env.Int(2)) // loop-scoped
	s.Allocate(env.Int(3)) // loop-scoped
	s.Truncate(mark, nil)
	if _, ok := s.Access(env.Location(0)); !ok {
		t.Errorf("pre-loop location should survive truncation")
	}
	if _, ok := s.Access(mark); ok {
		t.Errorf("loop-scoped location should be reclaimed")
	}
}

func TestTruncateSkipsWhenLocationEscaped(t *testing.T) {
	s := New()
	mark := s.Mark()
	escapee := s.Allocate(env.Int(7))
	escaped := map[env.Location]bool{escapee: true}
	s.Truncate(mark, escaped)
	got, ok := s.Access(escapee)
	if !ok || got.Int != 7 {
		t.Errorf("escaped location should survive truncation, got %+v ok=%v", got, ok)
	}
}
