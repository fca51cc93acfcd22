package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/durafmt"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer and any pending session",
	Run: func(cmd *cobra.Command, args []string) {
		showStatus()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// showStatus reports the running session and the confirmation state.
func showStatus() {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	runningShown := false
	for _, t := range a.Store.Snapshot() {
		if !t.Running || t.StartedAt == nil {
			continue
		}
		elapsed, _ := a.Engine.Elapsed(t.ID)
		_, _ = fmt.Fprintf(deps.Stdout, "Running: %s\n", describe(t))
		_, _ = fmt.Fprintf(deps.Stdout, "Started: %s\n", formatStart(time.UnixMilli(*t.StartedAt), a.Cfg.Settings.TimeFormat))
		_, _ = fmt.Fprintf(deps.Stdout, "Elapsed: %s\n", durafmt.Clock(elapsed.Milliseconds()))
		runningShown = true
	}
	if !runningShown {
		_, _ = fmt.Fprintln(deps.Stdout, "No timer running")
	}

	if pending, ok := a.Engine.Pending(); ok {
		t, _ := a.Store.Find(pending.TaskID)
		_, _ = fmt.Fprintf(deps.Stdout, "Pending confirmation: %s on %s\n",
			durafmt.Clock(pending.DurationMs), describe(t))
		_, _ = fmt.Fprintln(deps.Stdout, "Commit with 'tally confirm <comment>' or drop with 'tally discard'")
	}
}

// formatStart renders a start instant honoring the time format
// setting.
func formatStart(t time.Time, timeFormat string) string {
	clock := "15:04"
	if timeFormat == "12h" {
		clock = "3:04 PM"
	}
	now := time.Now()
	if t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day() {
		return "today at " + t.Format(clock)
	}
	return t.Format("Mon Jan 2 at " + clock)
}
