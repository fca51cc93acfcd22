package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/durafmt"
	"github.com/solvberg/tally/internal/dupes"
	"github.com/solvberg/tally/internal/task"
	"github.com/solvberg/tally/internal/view"
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "A local project and task time tracker",
	Long: `tally tracks time against projects and tasks, entirely on one
device.

Usage:
  tally                                 List active tasks, most recent first
  tally add <name>                      Create a task (auto reference)
  tally add <name> --project --ref R    Create a project (manual reference)
  tally start <ref>                     Start the timer on a task
  tally stop                            Stop the running timer
  tally confirm <comment>               Commit the stopped session
  tally discard                         Drop the stopped session
  tally export <ref>                    Write the task's log history as CSV

Stopped time is committed only with a non-empty comment; confirming is
what adds it to the task's total.`,
	Run: func(cmd *cobra.Command, args []string) {
		listTasks(cmd)
	},
}

func init() {
	rootCmd.Flags().String("kind", "", "Filter by kind: project or task")
	rootCmd.Flags().Bool("critical", false, "Show only critical tasks")
	rootCmd.Flags().Bool("normal", false, "Show only non-critical tasks")
	rootCmd.Flags().Bool("archived", false, "Show only archived tasks")
	rootCmd.Flags().Bool("all", false, "Include archived tasks")
	rootCmd.Flags().String("sort", "recent", "Sort order: recent, critical, kind, or name")
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tally version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// queryFromFlags translates list flags into a view query.
func queryFromFlags(cmd *cobra.Command) (view.Query, error) {
	q := view.DefaultQuery()

	kind, _ := cmd.Flags().GetString("kind")
	switch kind {
	case "":
	case "project":
		q.Kind = view.KindProjects
	case "task":
		q.Kind = view.KindTasks
	default:
		return q, fmt.Errorf("unknown kind %q (expected project or task)", kind)
	}

	critical, _ := cmd.Flags().GetBool("critical")
	normal, _ := cmd.Flags().GetBool("normal")
	if critical && normal {
		return q, fmt.Errorf("--critical and --normal are mutually exclusive")
	}
	if critical {
		q.Criticality = view.CriticalOnly
	}
	if normal {
		q.Criticality = view.NormalOnly
	}

	archived, _ := cmd.Flags().GetBool("archived")
	all, _ := cmd.Flags().GetBool("all")
	if archived {
		q.Archive = view.ArchivedOnly
	} else if all {
		q.Archive = view.ArchiveAll
	}

	sortMode, _ := cmd.Flags().GetString("sort")
	switch sortMode {
	case "", "recent":
		q.Sort = view.SortRecent
	case "critical":
		q.Sort = view.SortCritical
	case "kind":
		q.Sort = view.SortKind
	case "name":
		q.Sort = view.SortName
	default:
		return q, fmt.Errorf("unknown sort %q (expected recent, critical, kind, or name)", sortMode)
	}

	return q, nil
}

// listTasks renders the filtered, sorted task view.
func listTasks(cmd *cobra.Command) {
	q, err := queryFromFlags(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	snapshot := a.Store.Snapshot()
	tasks := view.Apply(snapshot, q)
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks found")
		return
	}

	dupeSets := dupes.Detect(snapshot)

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for _, t := range tasks {
		_, _ = fmt.Fprintln(deps.Stdout, formatTaskRow(t, dupeSets, a.Cfg.Preferences.ShowDescriptions))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "%d %s\n", len(tasks), pluralize("task", len(tasks)))
}

// formatTaskRow renders one task line with state markers and
// committed time.
func formatTaskRow(t task.Task, d dupes.Sets, showDescriptions bool) string {
	var b strings.Builder

	marker := " "
	if t.Running {
		marker = ">"
	} else if t.Archived {
		marker = "A"
	}
	b.WriteString(fmt.Sprintf("[%s] %-10s %s", marker, t.Reference, t.Name))

	if t.Critical {
		b.WriteString(" !")
	}
	if d.HasName(t.Name) || d.HasReference(t.Reference) {
		b.WriteString(" (dup)")
	}
	b.WriteString(fmt.Sprintf("  %s", durafmt.Hours(t.ElapsedMs)))

	if showDescriptions && t.Description != "" {
		b.WriteString("\n      " + t.Description)
	}
	return b.String()
}

// pluralize returns the singular or plural form of a word based on
// count.
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
