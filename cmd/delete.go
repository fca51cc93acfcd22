package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/apperr"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <ref>",
	Short: "Delete a task and all its logs",
	Long: `Delete a task irreversibly, including its whole log history. A
running task must be stopped first.

Prompts for confirmation unless --force is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		deleteTask(args[0], force)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().Bool("force", false, "Delete without confirmation")
}

// deleteTask removes the resolved task after confirmation.
func deleteTask(query string, force bool) {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	t, ok := resolveTask(a, query)
	if !ok {
		return
	}

	if !force {
		word := "entries"
		if len(t.Logs) == 1 {
			word = "entry"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "Delete %s and its %d log %s? [y/N] ",
			describe(t), len(t.Logs), word)
		reader := bufio.NewReader(deps.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			_, _ = fmt.Fprintln(deps.Stdout, "Aborted")
			return
		}
	}

	if err := a.Engine.Delete(t.ID); err != nil {
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
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted %s\n", describe(t))
}
