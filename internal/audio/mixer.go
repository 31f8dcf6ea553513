package audio

import "sync"

const (
	sampleRate   = 44100
	channelCount = 2 // stereo
	bitDepth     = 2 // 16-bit
)

// The mixer renders every scheduled voice into the output stream and
// owns the audio clock: time is the number of samples rendered so far,
// which is what makes scheduled onsets sample accurate regardless of
// application-thread timing. It implements io.Reader for the oto
// player's pull model.
type mixer struct {
	mu     sync.Mutex
	clock  int64 // samples rendered since the engine started
	voices []*voice
	volume float64
}

func newMixer() *mixer { return &mixer{volume: 0.8} }

// now returns the audio-clock time in seconds.
func (m *mixer) now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.clock) / sampleRate
}

// schedule adds a voice for a future (or immediate) window on the
// audio clock.
func (m *mixer) schedule(v *voice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voices = append(m.voices, v)
}

func (m *mixer) Read(buf []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	numSamples := len(buf) / (channelCount * bitDepth)
	for i := 0; i < numSamples; i++ {
		var sample float64
		for _, v := range m.voices {
			sample += v.sample(m.clock)
		}

		sample *= m.volume
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		s := int16(sample * 32767)

		// Same signal on both stereo channels.
		idx := i * channelCount * bitDepth
		buf[idx] = byte(s)
		buf[idx+1] = byte(s >> 8)
		buf[idx+2] = byte(s)
		buf[idx+3] = byte(s >> 8)

		m.clock++
	}

	// Drop voices that can never sound again.
	live := m.voices[:0]
	for _, v := range m.voices {
		if !v.finished(m.clock) {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(m.voices); i++ {
		m.voices[i] = nil
	}
	m.voices = live

	return numSamples * channelCount * bitDepth, nil
}

// A handle controls one scheduled voice. Stop takes the mixer lock so
// it is safe against a concurrent render.
type handle struct {
	m *mixer
	v *voice
}

func (h handle) Stop() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	h.v.done = true
}
