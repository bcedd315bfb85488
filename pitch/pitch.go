// Package pitch encodes MusicDSL note literals (pitch letter, accidental,
// octave) into MIDI pitch numbers, grounded in the same kind of
// table-driven note-name parsing a DAW chord-to-MIDI helper would use, but
// with the standard convention where middle C (octave 4, natural) is 60.
package pitch

import (
	"fmt"

	"github.com/Conceptual-Machines/musicdsl-go/value"
)

// pitchClass maps a note letter to its semitone offset within an octave.
var pitchClass = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// accidentalShift maps an accidental token to its semitone adjustment.
var accidentalShift = map[string]int{
	"bb": -2,
	"b":  -1,
	"n":  0,
	"d":  1,
	"dd": 2,
}

// Letters reports whether b is a valid pitch letter, for lexer validation.
func Letters(b byte) bool {
	_, ok := pitchClass[b]
	return ok
}

// Accidentals reports whether s is a valid accidental token.
func Accidentals(s string) bool {
	_, ok := accidentalShift[s]
	return ok
}

// Encode computes midi = 12*(octave+1) + pitch_class(letter) +
// accidental_shift(accidental), and range-checks the result against
// [0,127]. Octave is the single digit the grammar allows (0-9).
func Encode(letter byte, accidental string, octave int) (int, error) {
	pc, ok := pitchClass[letter]
	if !ok {
		return 0, fmt.Errorf("unknown pitch letter %q", letter)
	}
	shift, ok := accidentalShift[accidental]
	if !ok {
		return 0, fmt.Errorf("unknown accidental %q", accidental)
	}
	midi := 12*(octave+1) + pc + shift
	if midi < value.MinPitch || midi > value.MaxPitch {
		return 0, &value.RangeError{Pitch: midi}
	}
	return midi, nil
}
