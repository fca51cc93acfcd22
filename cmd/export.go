package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <ref>",
	Short: "Export a task's log history as CSV",
	Long: `Write a task's log history, most recent first, to a CSV file named
after the task (whitespace replaced, lower-cased, suffixed
"_logs.csv").

Example:
  tally export TASK-001        Writes e.g. quarterly_report_logs.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exportTask(args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

// exportTask renders and writes the CSV artifact for the resolved
// task.
func exportTask(query string) {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	t, ok := resolveTask(a, query)
	if !ok {
		return
	}

	payload, err := export.CSV(t)
	if err != nil {
		if errors.Is(err, apperr.ErrEmptyLogs) {
			// Nothing to export is a notice, not a failure.
			_, _ = fmt.Fprintf(deps.Stdout, "%s has no log entries to export\n", describe(t))
			return
		}
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	name := export.FileName(t.Name, a.Cfg.App.ExportSuffix)
	if err := deps.WriteFile(name, payload); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write the export file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the current directory is writable")
		deps.Exit(1)
		return
	}

	word := "entries"
	if len(t.Logs) == 1 {
		word = "entry"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Exported %d log %s to %s\n", len(t.Logs), word, name)
}
