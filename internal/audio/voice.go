package audio

import (
	"math"
	"strings"
)

const (
	attackSeconds = 0.010 // linear rise to the peak
	peakLevel     = 0.30
	floorLevel    = 0.001 // near-zero target for the decay
)

// Cutoff sweep endpoints for the lowpass, in Hz. The cutoff falls
// exponentially from the first to the second across the note.
var (
	leadSweep = [2]float64{4000, 300}
	bassSweep = [2]float64{1200, 80}
)

// A voice is one scheduled note: an oscillator gated by an absolute
// sample window on the audio clock, shaped by a linear-attack /
// exponential-decay envelope and a one-pole lowpass whose cutoff
// sweeps downward across the note. Everything is fixed when the voice
// is created, so nothing needs to reach it mid-render.
type voice struct {
	start int64 // absolute onset sample
	end   int64 // absolute release sample
	freq  float64
	bass  bool

	phase   float64
	level   float64
	decay   float64 // per-sample multiplier after the attack
	lowpass float64 // filter memory
	done    bool
}

func newVoice(freq float64, start, end int64, instrument string) *voice {
	v := &voice{
		start: start,
		end:   end,
		freq:  freq,
		bass:  strings.Contains(strings.ToLower(instrument), "bass"),
	}
	decaySamples := float64(end-start) - attackSeconds*sampleRate
	if decaySamples < 1 {
		decaySamples = 1
	}
	// Sized so the envelope reaches floorLevel right at the note's end.
	v.decay = math.Pow(floorLevel/peakLevel, 1/decaySamples)
	return v
}

// sample renders the voice at absolute sample n. Outside its window it
// contributes silence. Callers hold the mixer lock.
func (v *voice) sample(n int64) float64 {
	if v.done || n < v.start || n >= v.end {
		return 0
	}
	t := float64(n-v.start) / sampleRate
	dur := float64(v.end-v.start) / sampleRate

	var raw float64
	if v.bass {
		// Sawtooth an octave down for weight.
		raw = 2*v.phase - 1
		v.phase += v.freq / 2 / sampleRate
	} else {
		raw = math.Sin(2 * math.Pi * v.phase)
		v.phase += v.freq / sampleRate
	}
	if v.phase >= 1 {
		v.phase -= 1
	}

	if t < attackSeconds {
		v.level = peakLevel * t / attackSeconds
	} else if v.level == 0 {
		v.level = peakLevel
	} else {
		v.level *= v.decay
	}

	sweep := leadSweep
	if v.bass {
		sweep = bassSweep
	}
	cutoff := sweep[0] * math.Pow(sweep[1]/sweep[0], t/dur)
	a := 1 - math.Exp(-2*math.Pi*cutoff/sampleRate)
	v.lowpass += a * (raw*v.level - v.lowpass)
	return v.lowpass
}

// finished reports whether the voice can never sound again.
func (v *voice) finished(n int64) bool { return v.done || n >= v.end }
