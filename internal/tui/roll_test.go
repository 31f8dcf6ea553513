package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/icco/genroll/internal/audio"
	"github.com/icco/genroll/internal/grid"
	"github.com/icco/genroll/internal/score"
)

// stubSink keeps playback tests off the real audio device.
type stubSink struct {
	resumes int
	plays   int
}

type stubHandle struct{}

func (stubHandle) Stop() {}

func (s *stubSink) Now() float64 { return 0 }

func (s *stubSink) Resume() error {
	s.resumes++
	return nil
}

func (s *stubSink) Play(freq, startAt, duration float64, instrument string) (audio.Handle, error) {
	s.plays++
	return stubHandle{}, nil
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got
}

func TestSpaceTogglesNoteAtCursor(t *testing.T) {
	store := score.New()
	m := NewModel(Config{Store: store})

	pitch := grid.PitchOf(m.cursor.Row)
	m = update(t, m, key(" "))
	if !store.Has(pitch, 0) {
		t.Fatalf("store missing %s at 0 after toggle", pitch)
	}
	m = update(t, m, key(" "))
	if store.Len() != 0 {
		t.Errorf("store Len() = %d after toggle pair, want 0", store.Len())
	}
	_ = m
}

func TestMouseClickTogglesCell(t *testing.T) {
	store := score.New()
	m := NewModel(Config{Store: store})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	// Third visible row, column 2.
	click := tea.MouseMsg{
		X:      labelWidth + 2*cellWidth,
		Y:      gridTop + 3,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	m = update(t, m, click)

	pitch := grid.PitchOf(m.viewportTop + 3)
	if !store.Has(pitch, 2) {
		t.Fatalf("store missing %s at col 2 after click", pitch)
	}

	// Clicking above the grid hits no cell and changes nothing.
	m = update(t, m, tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if store.Len() != 1 {
		t.Errorf("store Len() = %d after out-of-grid click, want 1", store.Len())
	}
}

func TestSetSequenceReplacesStore(t *testing.T) {
	store := score.New()
	store.Toggle("C4", 0)
	m := NewModel(Config{Store: store})

	seq := SetSequenceMsg{
		{Pitch: "E4", Duration: "half", Instrument: "lead", Time: 0},
		{Pitch: "G4", Duration: "half", Instrument: "lead", Time: 8},
	}
	m = update(t, m, seq)
	if store.Len() != 2 {
		t.Fatalf("store Len() = %d, want 2", store.Len())
	}
	if store.Has("C4", 0) {
		t.Error("old note survived a sequence replace")
	}
	_ = m
}

func TestTransportStartsAndStops(t *testing.T) {
	sink := &stubSink{}
	store := score.New()
	store.Toggle("C4", 0)
	m := NewModel(Config{Store: store, Sink: sink})

	m = update(t, m, key("p"))
	if sink.resumes != 1 || sink.plays != 1 {
		t.Fatalf("after play: resumes=%d plays=%d, want 1, 1", sink.resumes, sink.plays)
	}
	if m.sched == nil || !m.sched.Playing() {
		t.Fatal("scheduler not playing after p")
	}

	m = update(t, m, key("p"))
	if m.sched.Playing() {
		t.Error("scheduler still playing after second p")
	}
}

func TestViewRenders(t *testing.T) {
	store := score.New()
	store.Toggle("C4", 0)
	m := NewModel(Config{Store: store})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
	for _, want := range []string{"BPM", "C4", "Stopped"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
