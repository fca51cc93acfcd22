package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// dupesCmd represents the dupes command
var dupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "Show duplicate task names and references",
	Long: `Show names and references shared by two or more tasks. Archived
tasks count too; duplicates are a naming concern independent of
archive state.`,
	Run: func(cmd *cobra.Command, args []string) {
		showDupes()
	},
}

func init() {
	rootCmd.AddCommand(dupesCmd)
}

// showDupes prints the duplicate sets.
func showDupes() {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	sets := detectDupes(a)
	if len(sets.Names) == 0 && len(sets.References) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No duplicates found")
		return
	}

	if len(sets.Names) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Duplicate names:")
		for _, name := range sortedKeys(sets.Names) {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", name)
		}
	}
	if len(sets.References) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Duplicate references:")
		for _, ref := range sortedKeys(sets.References) {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", ref)
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
