package value

import "testing"

func TestSpan(t *testing.T) {
	cases := []struct {
		name string
		r    Result
		want float64
	}{
		{"empty", Empty(), 0},
		{"single note", Single(NewNote(60, 1)), 1},
		{"trailing rest advances time", Result{Events: []Event{
			{Start: 0, Notes: []Note{NewNote(60, 1)}},
			{Start: 1, Notes: []Note{NewRest(0.5)}},
		}}, 1.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Span(c.r); got != c.want {
				t.Errorf("Span() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestConcatIdentity(t *testing.T) {
	a := Single(NewNote(60, 1))
	if !Equal(Concat(Empty(), a), a) {
		t.Errorf("empty ++ A != A")
	}
	if !Equal(Concat(a, Empty()), a) {
		t.Errorf("A ++ empty != A")
	}
}

func TestConcatAssociativity(t *testing.T) {
	a := Single(NewNote(60, 1))
	b := Single(NewNote(62, 0.5))
	c := Single(NewNote(64, 2))

	left := Concat(Concat(a, b), c)
	right := Concat(a, Concat(b, c))
	if !Equal(left, right) {
		t.Errorf("(A++B)++C != A++(B++C): %+v vs %+v", left, right)
	}
}

func TestConcatShiftsByPredecessorSpan(t *testing.T) {
	a := Single(NewNote(60, 1))
	b := Single(NewNote(64, 0.5))
	got := Concat(a, b)
	want := Result{Events: []Event{
		{Start: 0, Notes: []Note{NewNote(60, 1)}},
		{Start: 1, Notes: []Note{NewNote(64, 0.5)}},
	}}
	if !Equal(got, want) {
		t.Errorf("Concat = %+v, want %+v", got, want)
	}
}

func TestUnionCommutative(t *testing.T) {
	a := Single(NewNote(60, 1))
	b := Single(NewNote(64, 1))
	if !Equal(Union(a, b), Union(b, a)) {
		t.Errorf("A|B != B|A")
	}
}

func TestUnionMergesSameStartTime(t *testing.T) {
	a := Single(NewNote(60, 1))
	b := Single(NewNote(64, 1))
	c := Single(NewNote(67, 1))
	got := Union(Union(a, b), c)
	if len(got.Events) != 1 {
		t.Fatalf("expected 1 merged event, got %d", len(got.Events))
	}
	if len(got.Events[0].Notes) != 3 {
		t.Fatalf("expected 3 notes in chord, got %d", len(got.Events[0].Notes))
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	a := Single(NewNote(60, 1))
	up, err := Transpose(a, 12)
	if err != nil {
		t.Fatalf("transpose up failed: %v", err)
	}
	down, err := Transpose(up, -12)
	if err != nil {
		t.Fatalf("transpose down failed: %v", err)
	}
	if !Equal(down, a) {
		t.Errorf("round trip transpose != original: %+v vs %+v", down, a)
	}
}

func TestTransposeRestsUnchanged(t *testing.T) {
	a := Single(NewRest(1))
	got, err := Transpose(a, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Events[0].Notes[0].Pitch != RestPitch {
		t.Errorf("rest pitch changed under transposition")
	}
}

func TestTransposeOutOfRange(t *testing.T) {
	a := Single(NewNote(120, 1))
	if _, err := Transpose(a, 12); err == nil {
		t.Errorf("expected RangeError transposing 120 by 12")
	}
}

func TestHeadTailReconstructsEventPartition(t *testing.T) {
	a := Concat(Concat(Single(NewNote(60, 1)), Single(NewRest(0.5))), Single(NewNote(64, 0.5)))

	head, err := Head(a)
	if err != nil {
		t.Fatalf("head failed: %v", err)
	}
	tail := Tail(a)

	reconstructed := Result{Events: append(append([]Event{}, head.Events...), tail.Events...)}
	if !Equal(reconstructed, a) {
		t.Errorf("head ∪ tail != A: %+v vs %+v", reconstructed, a)
	}
}

func TestHeadOnEmptyIsError(t *testing.T) {
	if _, err := Head(Empty()); err == nil {
		t.Errorf("expected error calling head on empty result")
	}
}

func TestTailOfSingletonIsEmpty(t *testing.T) {
	if !Tail(Single(NewNote(60, 1))).IsEmpty() {
		t.Errorf("tail of a one-event result should be empty")
	}
}

func TestPitchPicksMinimumOfFirstEvent(t *testing.T) {
	chord := Union(Union(Single(NewNote(67, 1)), Single(NewNote(60, 1))), Single(NewNote(64, 1)))
	p, err := Pitch(chord)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 60 {
		t.Errorf("pitch() = %d, want 60 (minimum)", p)
	}
}

func TestInitializeZeroesEarliestStart(t *testing.T) {
	shifted := Shift(Single(NewNote(60, 1)), 4)
	got := Initialize(shifted)
	if got.Events[0].Start != 0 {
		t.Errorf("initialize did not zero start time: %+v", got)
	}
}

func TestInitializePreservesOffsets(t *testing.T) {
	a := Concat(Single(NewNote(60, 1)), Single(NewNote(64, 2)))
	shifted := Shift(a, 10)
	got := Initialize(shifted)
	if !Equal(got, a) {
		t.Errorf("initialize changed inter-event offsets: %+v vs %+v", got, a)
	}
}

func TestToJSON(t *testing.T) {
	r := Single(NewNote(60, 1))
	got, err := ToJSON(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"events":[{"start":0,"notes":[{"midi":60,"dur":1}]}]}`
	if got != want {
		t.Errorf("ToJSON() = %s, want %s", got, want)
	}
}
