// Package audio is the output side of playback: an oto/v3 device, a
// sample-accurate mixer that owns the audio clock, and voices that are
// scheduled ahead of time against it.
package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// ErrUnavailable reports that the audio output device could not be
// created or resumed. Playback must not start when it is returned;
// callers see it once and do not retry.
var ErrUnavailable = errors.New("audio output unavailable")

// A Handle controls one scheduled voice. Stop silences the voice
// immediately; calling it on a voice that already finished naturally
// is a harmless no-op.
type Handle interface {
	Stop()
}

// An Engine owns the process's audio output: one oto context, one
// player, one master volume. Create it once (or share Default) and
// keep it for the process lifetime; it survives across play/stop
// cycles and is never torn down before exit.
type Engine struct {
	mix    *mixer
	ctx    *oto.Context
	player *oto.Player
}

// New opens the audio device and starts the output stream.
func New() (*Engine, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	<-ready

	e := &Engine{mix: newMixer(), ctx: ctx}
	e.player = ctx.NewPlayer(e.mix)
	e.player.Play()
	return e, nil
}

var (
	defaultOnce sync.Once
	defaultEng  *Engine
	defaultErr  error
)

// Default returns the shared process-wide engine, creating it on first
// use. Prefer passing an Engine (or a fake) explicitly where testing
// matters; Default exists for the interactive paths where one output
// device serves the whole process.
func Default() (*Engine, error) {
	defaultOnce.Do(func() {
		defaultEng, defaultErr = New()
	})
	return defaultEng, defaultErr
}

// Now returns the current audio-clock time in seconds. The clock
// advances with rendered samples, not wall time.
func (e *Engine) Now() float64 { return e.mix.now() }

// Resume restarts a suspended output context. It is a cheap no-op when
// the context is already running.
func (e *Engine) Resume() error {
	if err := e.ctx.Resume(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Play schedules one tone ahead of time: onset at startAt seconds on
// the audio clock, lasting duration seconds, at freq Hz. Instrument
// labels containing "bass" (any case) select the darker timbre. The
// voice stops by itself at the end of its window.
func (e *Engine) Play(freq, startAt, duration float64, instrument string) (Handle, error) {
	start := int64(startAt * sampleRate)
	v := newVoice(freq, start, start+int64(duration*sampleRate), instrument)
	e.mix.schedule(v)
	return handle{m: e.mix, v: v}, nil
}

// SetVolume sets the master volume, clamped to [0, 1].
func (e *Engine) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	e.mix.mu.Lock()
	defer e.mix.mu.Unlock()
	e.mix.volume = vol
}
