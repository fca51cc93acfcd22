package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <ref>",
	Short: "Mark a task as reviewed",
	Long: `Record a manual "reviewed" timestamp on a task, independent of any
time logging. Committing a session also counts as reviewing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		checkTask(args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkTask stamps the resolved task as reviewed.
func checkTask(query string) {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	t, ok := resolveTask(a, query)
	if !ok {
		return
	}

	if err := a.Store.MarkChecked(t.ID); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	persist(a)
	_, _ = fmt.Fprintf(deps.Stdout, "Checked %s\n", describe(t))
}
