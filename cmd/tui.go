package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long: `Launch the terminal dashboard: browse tasks, start and stop timers,
and confirm sessions inline. The running task's elapsed time updates
once per second.`,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI opens the app container and hands control to bubbletea.
func runTUI() {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	p := tea.NewProgram(tui.New(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Dashboard failed: %v\n", err)
		deps.Exit(1)
		return
	}
}
