package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/durafmt"
)

// confirmCmd represents the confirm command
var confirmCmd = &cobra.Command{
	Use:   "confirm <comment>",
	Short: "Commit the stopped timer session",
	Long: `Commit the session awaiting confirmation. The comment is mandatory;
it becomes the log entry for the session and the tracked duration is
added to the task's total. Confirming also counts as reviewing the
task.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		confirmSession(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(confirmCmd)
}

// confirmSession commits the pending session with the given comment.
func confirmSession(comment string) {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	t, err := a.Engine.Confirm(comment)
	if err != nil {
		switch {
		case apperr.IsValidation(err):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: A comment is required to commit tracked time")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: The session is still pending; retry with a comment or 'tally discard'")
		case apperr.IsConflict(err):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No session is awaiting confirmation")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	persist(a)
	_, _ = fmt.Fprintf(deps.Stdout, "Committed %s to %s (total %s)\n",
		t.Logs[0].Duration, describe(t), durafmt.Hours(t.ElapsedMs))
}
