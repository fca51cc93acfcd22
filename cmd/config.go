package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the settled configuration and slot locations. Each config
source (settings, config, preferences, prompts) is optional; missing
or unreadable files fall back to built-in defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// showConfig prints the settled bundle and resolved paths.
func showConfig() {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	_, _ = fmt.Fprintf(deps.Stdout, "Data directory:  %s\n", a.Paths.Dir)
	_, _ = fmt.Fprintf(deps.Stdout, "Tasks slot:      %s\n", a.Paths.Tasks)
	_, _ = fmt.Fprintf(deps.Stdout, "Counter slot:    %s (last value %d)\n", a.Paths.Counter, a.Counter.Current())
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintf(deps.Stdout, "time_format:        %s\n", a.Cfg.Settings.TimeFormat)
	_, _ = fmt.Fprintf(deps.Stdout, "autosave:           %t\n", a.Cfg.Settings.Autosave)
	_, _ = fmt.Fprintf(deps.Stdout, "task_ref_prefix:    %s\n", a.Cfg.App.TaskRefPrefix)
	_, _ = fmt.Fprintf(deps.Stdout, "export_suffix:      %s\n", a.Cfg.App.ExportSuffix)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:              %s\n", a.Cfg.Preferences.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "show_descriptions:  %t\n", a.Cfg.Preferences.ShowDescriptions)
}
