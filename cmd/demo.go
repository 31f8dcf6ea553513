package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/icco/genroll/internal/audio"
	"github.com/icco/genroll/internal/grid"
	"github.com/icco/genroll/internal/playback"
	"github.com/icco/genroll/internal/score"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play a built-in sequence through the synthesizer",
	Long: `Play a short built-in sequence headlessly, without the editor UI.

Useful for checking that audio output works. Ctrl-C stops playback.`,
	Run: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// demoSequence is a two-bar riff with a bass line under it.
func demoSequence() []score.Note {
	return []score.Note{
		{Pitch: "C2", Duration: "half", Instrument: "bass", Time: 0},
		{Pitch: "G2", Duration: "half", Instrument: "bass", Time: 8},
		{Pitch: "A2", Duration: "half", Instrument: "bass", Time: 16},
		{Pitch: "F2", Duration: "half", Instrument: "bass", Time: 24},

		{Pitch: "C4", Duration: "quarter", Instrument: "synth", Time: 0},
		{Pitch: "E4", Duration: "quarter", Instrument: "synth", Time: 4},
		{Pitch: "G4", Duration: "quarter", Instrument: "synth", Time: 8},
		{Pitch: "E4", Duration: "quarter", Instrument: "synth", Time: 12},
		{Pitch: "A4", Duration: "quarter", Instrument: "synth", Time: 16},
		{Pitch: "C5", Duration: "quarter", Instrument: "synth", Time: 20},
		{Pitch: "B4", Duration: "eighth", Instrument: "synth", Time: 24},
		{Pitch: "A4", Duration: "eighth", Instrument: "synth", Time: 26},
		{Pitch: "G4", Duration: "half", Instrument: "synth", Time: 28},
	}
}

func runDemo(cmd *cobra.Command, args []string) {
	eng, err := audio.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := score.New()
	store.ReplaceAll(demoSequence())

	sched := playback.New(eng, grid.TimeGrid{BPM: bpm}, pixelsPerSecond)
	if err := sched.Start(store.Notes()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Playing %d notes at %d BPM (%.1fs)\n", store.Len(), bpm, sched.Total())

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for sched.Playing() {
		select {
		case <-c:
			sched.Stop()
		case <-ticker.C:
			fmt.Printf("\r%5.2fs / %5.2fs", sched.Playhead()/pixelsPerSecond, sched.Total())
		}
	}
	fmt.Println("\rdone           ")
}
