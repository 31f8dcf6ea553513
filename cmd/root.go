package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	bpm             int
	pixelsPerSecond float64
)

var rootCmd = &cobra.Command{
	Use:   "genroll",
	Short: "A TUI piano-roll sequencer with a built-in synthesizer",
	Long: `genroll is a terminal piano-roll sequencer built with Bubbletea.

It shows an 85-row chromatic grid (C1 to C8), lets you toggle notes with
the keyboard or mouse, and plays the sequence through a built-in
synthesizer that schedules every note ahead of time against the audio
clock.`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&bpm, "bpm", 120, "tempo in beats per minute")
	rootCmd.PersistentFlags().Float64Var(&pixelsPerSecond, "pps", 120, "playhead speed in pixels per second")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
