// Package tui is the interactive piano-roll editor.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/icco/genroll/internal/audio"
	"github.com/icco/genroll/internal/grid"
	"github.com/icco/genroll/internal/midiout"
	"github.com/icco/genroll/internal/playback"
	"github.com/icco/genroll/internal/score"
)

const (
	cols      = 32 // grid units across the roll (two 4/4 bars)
	cellWidth = 3  // character cells per grid unit

	labelWidth = 6 // pitch label column, e.g. "C#4  │"
	gridTop    = 5 // screen row of the first pitch row
	chromeRows = 10
	frameRate  = 30
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4"))
)

// tickMsg paces the playhead animation.
type tickMsg time.Time

// SetSequenceMsg replaces the whole note sequence. Asynchronous
// generators outside this module deliver it through
// (*tea.Program).Send; the model applies it as a bulk replace.
type SetSequenceMsg []score.Note

// Config sets up the editor.
type Config struct {
	Store           *score.Store
	BPM             int
	PixelsPerSecond float64
	// Sink overrides the shared audio engine; leave nil outside tests.
	Sink playback.Sink
}

// Model is the bubbletea model for the roll.
type Model struct {
	store  *score.Store
	tempo  grid.TimeGrid
	layout grid.Layout
	pps    float64

	sink  playback.Sink
	sched *playback.Scheduler

	cursor      grid.Cell
	viewportTop int
	width       int
	height      int
	message     string

	// The playhead spring chases the scheduler's position so the
	// marker glides instead of stepping once per tick.
	spring  harmonica.Spring
	headX   float64 // character cells from the left edge of the grid
	headVel float64
	ticking bool

	selectingPort bool
	portNames     []string
	portCursor    int
	port          *midiout.Port
}

// NewModel returns an editor over the given store, cursor parked at
// middle C.
func NewModel(cfg Config) Model {
	if cfg.Store == nil {
		cfg.Store = score.New()
	}
	if cfg.BPM == 0 {
		cfg.BPM = grid.DefaultBPM
	}
	if cfg.PixelsPerSecond == 0 {
		cfg.PixelsPerSecond = 120
	}
	c4, _ := grid.RowOf("C4")
	top := c4 - 8
	if top < 0 {
		top = 0
	}
	return Model{
		store:       cfg.Store,
		tempo:       grid.TimeGrid{BPM: cfg.BPM},
		layout:      grid.Layout{UnitWidth: cellWidth, RowHeight: 1},
		pps:         cfg.PixelsPerSecond,
		sink:        cfg.Sink,
		cursor:      grid.Cell{Row: c4},
		viewportTop: top,
		spring:      harmonica.NewSpring(harmonica.FPS(frameRate), 6.0, 0.9),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m.animate()

	case SetSequenceMsg:
		m.store.ReplaceAll(msg)
		m.message = fmt.Sprintf("Loaded %d notes", len(msg))
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.clickAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.KeyMsg:
		if m.selectingPort {
			return m.updatePortPicker(msg)
		}
		return m.updateRoll(msg)
	}

	return m, nil
}

func (m Model) animate() (tea.Model, tea.Cmd) {
	playing := false
	target := 0.0
	if m.sched != nil {
		playing = m.sched.Playing()
		target = m.playheadCells()
	}
	m.headX, m.headVel = m.spring.Update(m.headX, m.headVel, target)
	if playing || m.headX > 0.1 {
		return m, tick()
	}
	m.headX, m.headVel = 0, 0
	m.ticking = false
	return m, nil
}

// playheadCells converts the scheduler's pixel position into character
// cells across the grid.
func (m Model) playheadCells() float64 {
	seconds := m.sched.Playhead() / m.pps
	return seconds / m.tempo.SecondsOf(1) * cellWidth
}

func (m Model) updateRoll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.sched != nil {
			m.sched.Stop()
		}
		if m.port != nil {
			m.port.Close()
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
		if m.cursor.Row < m.viewportTop {
			m.viewportTop = m.cursor.Row
		}
	case "down", "j":
		if m.cursor.Row < grid.RowCount-1 {
			m.cursor.Row++
		}
		if bottom := m.viewportTop + m.visibleRows(); m.cursor.Row >= bottom {
			m.viewportTop = m.cursor.Row - m.visibleRows() + 1
		}
	case "left", "h":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "right", "l":
		if m.cursor.Col < cols-1 {
			m.cursor.Col++
		}
	case " ":
		m.toggle(m.cursor)
	case "p":
		return m.togglePlayback()
	case "c":
		m.store.ReplaceAll(nil)
		m.message = "Cleared"
	case "o":
		m.portNames = midiout.Outputs()
		m.portCursor = 0
		m.selectingPort = true
		if len(m.portNames) == 0 {
			m.message = "No MIDI outputs found. Press 'r' to refresh."
		} else {
			m.message = fmt.Sprintf("Found %d MIDI output(s)", len(m.portNames))
		}
	}
	return m, nil
}

func (m Model) updatePortPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.portCursor > 0 {
			m.portCursor--
		}
	case "down", "j":
		if m.portCursor < len(m.portNames)-1 {
			m.portCursor++
		}
	case "enter":
		if m.portCursor >= 0 && m.portCursor < len(m.portNames) {
			if m.port != nil {
				m.port.Close()
				m.port = nil
			}
			port, err := midiout.Open(m.portCursor)
			if err != nil {
				m.message = fmt.Sprintf("Error: %v", err)
			} else {
				m.port = port
				m.message = fmt.Sprintf("Connected to: %s", port.Name())
			}
		}
		m.selectingPort = false
	case "escape", "q", "o":
		m.selectingPort = false
	case "r":
		m.portNames = midiout.Outputs()
		m.message = fmt.Sprintf("Found %d MIDI output(s)", len(m.portNames))
	}
	return m, nil
}

// clickAt maps a pointer position to a grid cell and toggles it.
// Clicks outside the pitch rows hit no cell and do nothing.
func (m *Model) clickAt(x, y int) {
	if y < gridTop || y >= gridTop+m.visibleRows() {
		return
	}
	cell, ok := m.layout.CellAt(x-labelWidth, y-gridTop+m.viewportTop)
	if !ok || cell.Col >= cols {
		return
	}
	m.cursor = cell
	m.toggle(cell)
}

func (m *Model) toggle(cell grid.Cell) {
	pitch := grid.PitchOf(cell.Row)
	inserting := !m.store.Has(pitch, cell.Col)
	m.store.Toggle(pitch, cell.Col)
	if inserting && m.port != nil {
		m.port.Audition(uint8(grid.MidiOf(cell.Row))) //nolint:gosec // rows map onto MIDI 24-108
	}
}

func (m Model) togglePlayback() (tea.Model, tea.Cmd) {
	if m.sched == nil {
		sink := m.sink
		if sink == nil {
			// The shared engine is created on first transport start
			// and lives for the rest of the process.
			eng, err := audio.Default()
			if err != nil {
				m.message = fmt.Sprintf("Audio unavailable: %v", err)
				return m, nil
			}
			sink = eng
		}
		m.sched = playback.New(sink, m.tempo, m.pps)
	}

	if m.sched.Playing() {
		m.sched.Stop()
		return m, nil
	}
	if err := m.sched.Start(m.store.Notes()); err != nil {
		m.message = fmt.Sprintf("Playback failed: %v", err)
		return m, nil
	}
	m.message = ""
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tick()
}

// visibleRows is how many pitch rows fit under the chrome.
func (m Model) visibleRows() int {
	rows := m.height - chromeRows
	if rows < 5 {
		rows = 5
	}
	if rows > grid.RowCount {
		rows = grid.RowCount
	}
	return rows
}

func (m Model) View() string {
	if m.selectingPort {
		return m.viewPortPicker()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("GENROLL — Piano Roll") + "\n")

	playing := m.sched != nil && m.sched.Playing()
	status := fmt.Sprintf("BPM: %d • Notes: %d", m.tempo.BPM, m.store.Len())
	if m.port != nil {
		status += fmt.Sprintf(" • MIDI: %s", m.port.Name())
	}
	if playing {
		status += " • " + playingStyle.Render("Playing")
	} else {
		status += " • Stopped"
	}
	b.WriteString(status + "\n\n")

	b.WriteString(m.renderPlayheadBar(playing) + "\n")
	b.WriteString(m.renderBeatRuler() + "\n")

	notes := m.noteCells()
	headCol := int(m.headX) / cellWidth
	bottom := m.viewportTop + m.visibleRows()
	if bottom > grid.RowCount {
		bottom = grid.RowCount
	}
	for row := m.viewportTop; row < bottom; row++ {
		b.WriteString(m.renderRow(row, notes, playing, headCol))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message) + "\n")
	}
	b.WriteString(helpStyle.Render("↑↓←→/hjkl: move • space/click: toggle note • p: play/stop"))
	b.WriteString("\n" + helpStyle.Render("o: MIDI output • c: clear • q: quit"))

	return b.String()
}

// noteCells indexes the store by grid cell: '●' at a note's onset and
// '═' across the rest of its duration. Notes whose pitch does not
// parse have no row to draw on and are skipped.
func (m Model) noteCells() map[grid.Cell]rune {
	cells := make(map[grid.Cell]rune)
	for _, n := range m.store.Notes() {
		row, err := grid.RowOf(n.Pitch)
		if err != nil {
			continue
		}
		cells[grid.Cell{Row: row, Col: n.Time}] = '●'
		for u := 1; u < grid.DurationUnits(n.Duration); u++ {
			c := grid.Cell{Row: row, Col: n.Time + u}
			if _, taken := cells[c]; !taken {
				cells[c] = '═'
			}
		}
	}
	return cells
}

func (m Model) renderPlayheadBar(playing bool) string {
	var bar strings.Builder
	bar.WriteString(strings.Repeat(" ", labelWidth))
	head := int(m.headX)
	for x := 0; x < cols*cellWidth; x++ {
		switch {
		case playing && x == head:
			bar.WriteString(playingStyle.Render("▶"))
		case playing && x < head:
			bar.WriteString(playingStyle.Render("─"))
		default:
			bar.WriteString(emptyStyle.Render("─"))
		}
	}
	return bar.String()
}

func (m Model) renderBeatRuler() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for u := 0; u < cols; u++ {
		if u%4 == 0 {
			b.WriteString(helpStyle.Render(fmt.Sprintf("%-*d", cellWidth, u/4+1)))
		} else {
			b.WriteString(strings.Repeat(" ", cellWidth))
		}
	}
	return b.String()
}

func (m Model) renderRow(row int, notes map[grid.Cell]rune, playing bool, headCol int) string {
	var b strings.Builder

	label := fmt.Sprintf("%-5s", grid.PitchOf(row))
	if row == m.cursor.Row {
		b.WriteString(selectedStyle.Render(label))
	} else if strings.Contains(label, "#") {
		b.WriteString(emptyStyle.Render(label))
	} else {
		b.WriteString(label)
	}
	b.WriteString("│")

	for col := 0; col < cols; col++ {
		glyph, active := notes[grid.Cell{Row: row, Col: col}]
		var cell string
		if active {
			cell = fmt.Sprintf(" %c ", glyph)
		} else {
			cell = " · "
		}

		style := lipgloss.NewStyle()
		if row == m.cursor.Row && col == m.cursor.Col {
			style = style.Background(cursorStyle.GetBackground())
		}
		switch {
		case playing && col == headCol:
			style = style.Foreground(playingStyle.GetForeground()).Bold(true)
		case active:
			style = style.Foreground(noteStyle.GetForeground())
		default:
			style = style.Foreground(emptyStyle.GetForeground())
		}
		b.WriteString(style.Render(cell))
	}

	return b.String()
}

func (m Model) viewPortPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select MIDI Output") + "\n\n")

	if len(m.portNames) == 0 {
		b.WriteString("No MIDI output ports found.\n\n")
		b.WriteString("Make sure your MIDI interface is connected.\n")
	} else {
		for i, name := range m.portNames {
			cursor := "  "
			if i == m.portCursor {
				cursor = "> "
			}
			connected := ""
			if m.port != nil && m.port.Name() == name {
				connected = " (connected)"
			}
			line := fmt.Sprintf("%s%s%s\n", cursor, name, connected)
			if i == m.portCursor {
				b.WriteString(selectedStyle.Render(line))
			} else {
				b.WriteString(line)
			}
		}
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/k: up • ↓/j: down • enter: select • r: refresh • q/esc: cancel"))

	return b.String()
}
