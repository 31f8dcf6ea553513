// Package score holds the canonical note sequence behind the roll.
package score

import "sync"

// A Note is one cell on the roll. Notes are immutable value records;
// Time is a position in grid units (four units per quarter-note beat).
type Note struct {
	Pitch      string // e.g. "C4", "F#5"
	Duration   string // whole, half, quarter, eighth
	Instrument string
	Time       int
}

// Defaults applied by Toggle when it inserts.
const (
	DefaultDuration   = "quarter"
	DefaultInstrument = "synth"
)

// A Store owns the ordered note sequence. Insertion order is display
// order only; nothing downstream depends on it, and re-inserting a
// toggled-off note moves it to the end.
type Store struct {
	mu    sync.RWMutex
	notes []Note
}

// New returns an empty store.
func New() *Store { return &Store{} }

// Toggle removes the first note matching (pitch, time), ignoring
// duration and instrument, or inserts a default quarter note when no
// match exists. With duplicate (pitch, time) pairs across instruments
// (possible via ReplaceAll) the first match wins, which may not be the
// one the click meant; that ambiguity is inherent to position-keyed
// toggling and is left as is.
func (s *Store) Toggle(pitch string, time int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes {
		if n.Pitch == pitch && n.Time == time {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return
		}
	}
	s.notes = append(s.notes, Note{
		Pitch:      pitch,
		Duration:   DefaultDuration,
		Instrument: DefaultInstrument,
		Time:       time,
	})
}

// Has reports whether any note occupies (pitch, time).
func (s *Store) Has(pitch string, time int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.Pitch == pitch && n.Time == time {
			return true
		}
	}
	return false
}

// ReplaceAll atomically swaps in a whole new sequence, as delivered by
// an external generator. A nil or empty slice clears the store.
func (s *Store) ReplaceAll(notes []Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append([]Note(nil), notes...)
}

// Notes returns a copy of the current sequence in display order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Note(nil), s.notes...)
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}
