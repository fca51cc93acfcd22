package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/apperr"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive <ref>",
	Short: "Archive a task",
	Long: `Archive a task. Archived tasks are excluded from the default view
and cannot start new timers. A running task must be stopped before it
can be archived.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setArchived(args[0], true)
	},
}

// unarchiveCmd represents the unarchive command
var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <ref>",
	Short: "Bring an archived task back into the active set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setArchived(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}

// setArchived toggles the archive flag on the resolved task.
func setArchived(query string, archived bool) {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	t, ok := resolveTask(a, query)
	if !ok {
		return
	}

	if err := a.Store.SetArchived(t.ID, archived); err != nil {
		if apperr.IsConflict(err) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Stop the timer with 'tally stop' first")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	persist(a)
	if archived {
		_, _ = fmt.Fprintf(deps.Stdout, "Archived %s\n", describe(t))
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Unarchived %s\n", describe(t))
	}
}
