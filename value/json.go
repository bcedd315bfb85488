package value

import "encoding/json"

// noteJSON and eventJSON mirror the wire schema: {"events":[{"start":...,
// "notes":[{"midi":...,"dur":...},...]},...]}.
type noteJSON struct {
	MIDI int     `json:"midi"`
	Dur  float64 `json:"dur"`
}

type eventJSON struct {
	Start float64    `json:"start"`
	Notes []noteJSON `json:"notes"`
}

type resultJSON struct {
	Events []eventJSON `json:"events"`
}

// ToJSON renders r as the sole artifact the visualization boundary
// consumes: events sorted by start, notes within an event ascending by
// midi (already true of r by construction).
func ToJSON(r Result) (string, error) {
	out := resultJSON{Events: make([]eventJSON, len(r.Events))}
	for i, e := range r.Events {
		notes := make([]noteJSON, len(e.Notes))
		for j, n := range e.Notes {
			notes[j] = noteJSON{MIDI: n.Pitch, Dur: n.Duration}
		}
		out.Events[i] = eventJSON{Start: e.Start, Notes: notes}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
