package grid

// DefaultBPM is the tempo used when nothing else is configured.
const DefaultBPM = 120

// unitsPerBeat: a quarter-note beat spans four grid units, so a whole
// note is sixteen.
const unitsPerBeat = 4

var durationTable = map[string]int{
	"whole":   16,
	"half":    8,
	"quarter": 4,
	"eighth":  2,
}

// DurationUnits returns the width in grid units of a named duration.
// Unknown names fall back to a quarter note rather than failing; a
// malformed duration should never abort a sequence.
func DurationUnits(name string) int {
	if u, ok := durationTable[name]; ok {
		return u
	}
	return 4
}

// A TimeGrid converts horizontal grid units to elapsed seconds at a
// fixed tempo. The conversion is pure arithmetic with no clock behind
// it.
type TimeGrid struct {
	BPM int
}

// SecondsPerBeat returns the length of one quarter-note beat.
func (t TimeGrid) SecondsPerBeat() float64 { return 60.0 / float64(t.BPM) }

// SecondsOf converts a position or width in grid units to seconds.
func (t TimeGrid) SecondsOf(units int) float64 {
	return float64(units) * t.SecondsPerBeat() / unitsPerBeat
}
