// Package playback turns the note store into scheduled audio and a
// moving visual playhead.
//
// The two clock domains never block each other: Start synthesizes
// every voice up front against the audio clock, so exact onset timing
// belongs to the audio engine, while a per-tick loop merely samples
// elapsed time to position the playhead. The playhead is a best-effort
// visual approximation and is allowed to be imprecise.
package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/icco/genroll/internal/audio"
	"github.com/icco/genroll/internal/grid"
	"github.com/icco/genroll/internal/score"
)

// A Sink is the audio output the scheduler talks to. *audio.Engine is
// the real one; tests supply a fake with a hand-cranked clock.
type Sink interface {
	// Now is the current audio-clock time in seconds.
	Now() float64
	// Resume wakes a suspended output device.
	Resume() error
	// Play schedules one tone ahead of time on the audio clock.
	Play(freq, startAt, duration float64, instrument string) (audio.Handle, error)
}

// ErrNotIdle is returned by Start while a previous run is still
// playing. Stop first; there is no pause.
var ErrNotIdle = errors.New("playback already running")

// tickInterval paces the playhead sampling loop at roughly one display
// frame.
const tickInterval = 16 * time.Millisecond

// A Scheduler is the transport: Idle until Start, Playing until
// explicit Stop or natural completion, both of which rewind the
// playhead to zero. There is no pause state.
type Scheduler struct {
	sink            Sink
	tempo           grid.TimeGrid
	pixelsPerSecond float64

	mu       sync.Mutex
	playing  bool
	t0       float64 // audio-clock time of transport start
	total    float64 // seconds until natural completion
	voices   []audio.Handle
	playhead float64 // pixels
	cancel   chan struct{}
}

// New returns an idle scheduler. pixelsPerSecond scales the published
// playhead position for the view.
func New(sink Sink, tempo grid.TimeGrid, pixelsPerSecond float64) *Scheduler {
	return &Scheduler{sink: sink, tempo: tempo, pixelsPerSecond: pixelsPerSecond}
}

// Start schedules every note against the audio clock and begins the
// playhead loop. A note whose pitch does not parse gets no voice but
// never aborts its siblings, and it still counts toward the sequence
// length since it remains visible on the roll. A device that cannot be
// resumed is reported once and leaves the scheduler Idle.
func (s *Scheduler) Start(notes []score.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playing {
		return ErrNotIdle
	}
	if err := s.sink.Resume(); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}

	t0 := s.sink.Now()
	maxUnits := 0
	var voices []audio.Handle
	for _, n := range notes {
		units := grid.DurationUnits(n.Duration)
		if end := n.Time + units; end > maxUnits {
			maxUnits = end
		}
		freq := grid.Frequency(n.Pitch)
		if freq == 0 {
			continue // unparseable pitch: visible but silent
		}
		h, err := s.sink.Play(freq, t0+s.tempo.SecondsOf(n.Time), s.tempo.SecondsOf(units), n.Instrument)
		if err != nil {
			continue // a failed voice is absent from output, not retried
		}
		voices = append(voices, h)
	}

	s.t0 = t0
	s.total = s.tempo.SecondsOf(maxUnits)
	s.voices = voices
	s.playing = true
	s.cancel = make(chan struct{})
	go s.run(s.cancel)
	return nil
}

// run samples the audio clock once per tick until cancellation.
// Explicit Stop and natural completion share the same shutdown path:
// both close the cancel channel and rewind the playhead.
func (s *Scheduler) run(cancel chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		// Sampling before the first ticker fire lets an empty
		// sequence complete immediately.
		if s.sample(cancel) {
			return
		}
		select {
		case <-cancel:
			return
		case <-ticker.C:
		}
	}
}

// sample publishes the playhead and reports whether the loop is done.
func (s *Scheduler) sample(cancel chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing || s.cancel != cancel {
		return true
	}
	elapsed := s.sink.Now() - s.t0
	if elapsed >= s.total {
		s.stopLocked()
		return true
	}
	s.playhead = elapsed * s.pixelsPerSecond
	return false
}

// Stop cancels playback and rewinds the playhead to zero. It is
// idempotent and a no-op when nothing is playing; voices that already
// finished naturally absorb the redundant stop themselves.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.cancel != nil {
		close(s.cancel)
		s.cancel = nil
	}
	for _, v := range s.voices {
		v.Stop()
	}
	s.voices = nil
	s.playing = false
	s.playhead = 0
}

// Playing reports whether the transport is running.
func (s *Scheduler) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Playhead returns the current playhead position in pixels. It is 0
// whenever the transport is idle.
func (s *Scheduler) Playhead() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playhead
}

// Total returns the scheduled length in seconds of the current (or
// most recent) run.
func (s *Scheduler) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
