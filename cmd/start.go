package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <ref>",
	Short: "Start the timer on a task",
	Long: `Open a timer session on a task, identified by reference or by an
unambiguous id prefix.

Starting a task that is already running, or that is archived, changes
nothing. Only one stopped session can await confirmation at a time.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		startTimer(args[0])
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// startTimer opens a session on the resolved task.
func startTimer(query string) {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	t, ok := resolveTask(a, query)
	if !ok {
		return
	}

	if !a.Engine.Start(t.ID) {
		// Preconditions failed; the engine treats this as a silent
		// no-op, so just tell the operator why nothing happened.
		switch {
		case t.Running:
			_, _ = fmt.Fprintf(deps.Stdout, "Timer already running on %s\n", describe(t))
		case t.Archived:
			_, _ = fmt.Fprintf(deps.Stdout, "%s is archived; unarchive it to track time\n", describe(t))
		default:
			_, _ = fmt.Fprintln(deps.Stdout, "Nothing to start")
		}
		return
	}

	persist(a)
	_, _ = fmt.Fprintf(deps.Stdout, "Started %s\n", describe(t))
}
