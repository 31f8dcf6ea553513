package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/icco/genroll/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the interactive piano-roll editor",
	Long: `Open the piano-roll editor with an interactive TUI interface.

Toggle notes on the grid with the space bar or by clicking, press 'p' to
play the sequence through the built-in synthesizer, and 'o' to mirror
toggled notes to a live MIDI output.`,
	Run: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	m := tui.NewModel(tui.Config{
		BPM:             bpm,
		PixelsPerSecond: pixelsPerSecond,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
