package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// discardCmd represents the discard command
var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop the stopped timer session",
	Long: `Drop the session awaiting confirmation without committing any time.
The task keeps a discard marker but its total and log history are
untouched.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		discardSession()
	},
}

func init() {
	rootCmd.AddCommand(discardCmd)
}

// discardSession drops the pending session, if any.
func discardSession() {
	a := openApp()
	if a == nil {
		return
	}
	defer a.Close()

	if !a.Engine.Discard() {
		_, _ = fmt.Fprintln(deps.Stdout, "No session is awaiting confirmation")
		return
	}

	persist(a)
	_, _ = fmt.Fprintln(deps.Stdout, "Session discarded; no time was committed")
}
