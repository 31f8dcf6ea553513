package score

import (
	"reflect"
	"testing"
)

func TestTogglePairIsIdentity(t *testing.T) {
	s := New()
	s.Toggle("C4", 0)
	s.Toggle("C4", 0)
	if got := s.Len(); got != 0 {
		t.Errorf("after toggle pair Len() = %d, want 0", got)
	}
}

func TestToggleInsertDefaults(t *testing.T) {
	s := New()
	s.Toggle("F#5", 12)
	notes := s.Notes()
	if len(notes) != 1 {
		t.Fatalf("Len() = %d, want 1", len(notes))
	}
	want := Note{Pitch: "F#5", Duration: DefaultDuration, Instrument: DefaultInstrument, Time: 12}
	if notes[0] != want {
		t.Errorf("inserted note = %+v, want %+v", notes[0], want)
	}
}

func TestToggleKeepsSiblingOrder(t *testing.T) {
	s := New()
	s.Toggle("C4", 0)
	s.Toggle("E4", 4)
	s.Toggle("G4", 8)
	s.Toggle("E4", 4) // remove the middle one

	var pitches []string
	for _, n := range s.Notes() {
		pitches = append(pitches, n.Pitch)
	}
	if want := []string{"C4", "G4"}; !reflect.DeepEqual(pitches, want) {
		t.Errorf("pitches = %v, want %v", pitches, want)
	}

	// Re-inserting moves the note to the end.
	s.Toggle("C4", 0)
	s.Toggle("C4", 0)
	if got := s.Notes(); len(got) != 2 || got[1].Pitch != "C4" {
		t.Errorf("after re-insert notes = %+v, want C4 last", got)
	}
}

func TestToggleMatchesPitchAndTimeOnly(t *testing.T) {
	s := New()
	s.ReplaceAll([]Note{
		{Pitch: "C4", Duration: "whole", Instrument: "bass", Time: 0},
		{Pitch: "C4", Duration: "eighth", Instrument: "lead", Time: 0},
	})

	// Duration and instrument are ignored; the first match goes.
	s.Toggle("C4", 0)
	notes := s.Notes()
	if len(notes) != 1 {
		t.Fatalf("Len() = %d, want 1", len(notes))
	}
	if notes[0].Instrument != "lead" {
		t.Errorf("surviving instrument = %q, want %q", notes[0].Instrument, "lead")
	}
}

func TestReplaceAll(t *testing.T) {
	s := New()
	s.Toggle("C4", 0)

	seq := []Note{
		{Pitch: "D4", Duration: "half", Instrument: "bass", Time: 0},
		{Pitch: "D4", Duration: "half", Instrument: "lead", Time: 0}, // duplicates allowed here
	}
	s.ReplaceAll(seq)
	if got := s.Len(); got != 2 {
		t.Errorf("after ReplaceAll Len() = %d, want 2", got)
	}

	// The store owns its copy; mutating the caller's slice changes nothing.
	seq[0].Pitch = "G7"
	if s.Notes()[0].Pitch != "D4" {
		t.Error("ReplaceAll aliased the caller's slice")
	}

	s.ReplaceAll(nil)
	if got := s.Len(); got != 0 {
		t.Errorf("after ReplaceAll(nil) Len() = %d, want 0", got)
	}
}

func TestHas(t *testing.T) {
	s := New()
	s.Toggle("A4", 3)
	if !s.Has("A4", 3) {
		t.Error("Has(A4, 3) = false, want true")
	}
	if s.Has("A4", 4) || s.Has("A#4", 3) {
		t.Error("Has matched a note that is not there")
	}
}
