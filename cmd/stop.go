package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/durafmt"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop [ref]",
	Short: "Stop the running timer",
	Long: `Stop the open timer session and hold it for confirmation.

The stopped duration is committed with 'tally confirm <comment>' or
dropped with 'tally discard'. An empty comment never commits time.

Without an argument, stops whichever task is running.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		stopTimer(query)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

// stopTimer closes the running session and reports the pending
// duration.
func stopTimer(query string) {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	id := ""
	if query != "" {
		t, ok := resolveTask(a, query)
		if !ok {
			return
		}
		id = t.ID
	} else {
		for _, t := range a.Store.Snapshot() {
			if t.Running {
				id = t.ID
				break
			}
		}
		if id == "" {
			_, _ = fmt.Fprintln(deps.Stdout, "No timer is running")
			return
		}
	}

	pending, ok := a.Engine.Stop(id)
	if !ok {
		_, _ = fmt.Fprintln(deps.Stdout, "No timer is running on that task")
		return
	}

	persist(a)

	t, _ := a.Store.Find(pending.TaskID)
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped %s after %s\n", describe(t), durafmt.Clock(pending.DurationMs))
	_, _ = fmt.Fprintln(deps.Stdout, "Confirm with 'tally confirm <comment>' to commit the time,")
	_, _ = fmt.Fprintln(deps.Stdout, "or 'tally discard' to drop it. An empty comment discards the time.")
}
