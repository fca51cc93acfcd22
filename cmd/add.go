package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/store"
	"github.com/solvberg/tally/internal/task"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a task or project",
	Long: `Create a trackable unit of work.

Tasks receive an auto-generated reference from the durable counter.
Projects require a caller-supplied reference via --ref.

Examples:
  tally add "Quarterly report"
  tally add "Website relaunch" --project --ref WEB-7
  tally add "Incident follow-up" --critical --desc "postmortem actions"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addTask(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().Bool("project", false, "Create a project instead of a task")
	addCmd.Flags().String("ref", "", "Project reference (required with --project)")
	addCmd.Flags().Bool("critical", false, "Flag the item as critical")
	addCmd.Flags().String("desc", "", "Optional description")
}

// addTask validates flags and creates the new item.
func addTask(cmd *cobra.Command, args []string) {
	name := strings.Join(args, " ")
	isProject, _ := cmd.Flags().GetBool("project")
	ref, _ := cmd.Flags().GetString("ref")
	critical, _ := cmd.Flags().GetBool("critical")
	desc, _ := cmd.Flags().GetString("desc")

	kind := task.KindTask
	if isProject {
		kind = task.KindProject
	}

	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	created, err := a.Store.Create(store.CreateInput{
		Kind:        kind,
		Name:        name,
		Reference:   ref,
		Description: desc,
		Critical:    critical,
	})
	if err != nil {
		if apperr.IsValidation(err) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			if isProject && strings.TrimSpace(ref) == "" {
				_, _ = fmt.Fprintln(deps.Stderr, "Hint: Projects need --ref, e.g. tally add \"Name\" --project --ref WEB-7")
			}
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	persist(a)
	_, _ = fmt.Fprintf(deps.Stdout, "Created %s\n", describe(created))

	dupeSets := detectDupes(a)
	if dupeSets.HasName(created.Name) {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Another task is already named %q\n", created.Name)
	}
	if dupeSets.HasReference(created.Reference) {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Reference %q is already in use\n", created.Reference)
	}
}
