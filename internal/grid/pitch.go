// Package grid maps piano-roll view coordinates onto musical pitch and time.
package grid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// RowCount is the number of chromatic rows on the roll, spanning
	// C1 (bottom row) to C8 (row 0).
	RowCount = 85

	topMIDI        = 108 // C8, row 0; pitch decreases as rows go down
	notesPerOctave = 12
)

// ErrInvalidPitch reports a pitch name that does not parse as
// <letter>[#|b]<octave>.
var ErrInvalidPitch = errors.New("invalid pitch")

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// flats maps flat spellings to the sharp equivalent so lookups have a
// single canonical form.
var flats = map[string]string{"DB": "C#", "EB": "D#", "GB": "F#", "AB": "G#", "BB": "A#"}

// MidiOf returns the MIDI note number for a row. Rows outside
// [0, RowCount) are a programming error, not a runtime condition.
func MidiOf(row int) int { return topMIDI - row }

// PitchOf returns the pitch name for a row, e.g. PitchOf(48) == "C4".
func PitchOf(row int) string {
	midi := MidiOf(row)
	return fmt.Sprintf("%s%d", noteNames[midi%notesPerOctave], midi/notesPerOctave-1)
}

// RowOf parses a pitch name back to its row. The letter is case
// insensitive and flat spellings normalize to sharps, so RowOf("Db4")
// equals RowOf("C#4"). Callers treat ErrInvalidPitch as "no note
// here", not as a failure to surface.
func RowOf(name string) (int, error) {
	midi, err := parseMIDI(name)
	if err != nil {
		return 0, err
	}
	row := topMIDI - midi
	if row < 0 || row >= RowCount {
		return 0, fmt.Errorf("%w: %q outside C1-C8", ErrInvalidPitch, name)
	}
	return row, nil
}

// Frequency returns the equal-temperament frequency of a pitch name,
// anchored at A4 = 440 Hz. A name that fails to parse yields 0, the
// silence sentinel: the scheduler skips synthesis for such notes while
// leaving the rest of the sequence intact.
func Frequency(name string) float64 {
	midi, err := parseMIDI(name)
	if err != nil {
		return 0
	}
	return 440.0 * math.Pow(2.0, (float64(midi)-69.0)/12.0)
}

func parseMIDI(name string) (int, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, name)
	}
	i := 1
	if name[1] == '#' || name[1] == 'b' || name[1] == 'B' {
		i = 2
	}
	letter := strings.ToUpper(name[:i])
	if sharp, ok := flats[letter]; ok {
		letter = sharp
	}
	class := -1
	for n, nm := range noteNames {
		if nm == letter {
			class = n
			break
		}
	}
	if class < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, name)
	}
	octave, err := strconv.Atoi(name[i:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, name)
	}
	return (octave+1)*notesPerOctave + class, nil
}
