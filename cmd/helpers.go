package cmd

import (
	"fmt"

	"github.com/solvberg/tally/internal/app"
	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/dupes"
	"github.com/solvberg/tally/internal/task"
)

// openApp builds the application container, reporting bootstrap
// failures and slot warnings the same way for every command. Returns
// nil after printing when the app cannot be opened.
func openApp() *app.App {
	a, err := deps.Open()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the task store")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return nil
	}

	if len(a.Warnings) > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Skipped %d unreadable task record(s) in the tasks slot\n", len(a.Warnings))
		for _, w := range a.Warnings {
			_, _ = fmt.Fprintf(deps.Stderr, "  record %d: %s\n", w.Index, w.Error)
		}
	}
	if a.Seeded {
		_, _ = fmt.Fprintln(deps.Stderr, "No saved tasks found; loaded seed data")
	}

	return a
}

// persist saves the task snapshot and the session sidecar. A failed
// write does not crash the command, but the operator is told that
// durability is compromised for this session.
func persist(a *app.App) {
	if err := a.Save(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: Failed to save tasks; changes are not durable this session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if err := a.PersistSession(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: Failed to save the timer session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
}

// resolveTask resolves a reference or id prefix, printing a uniform
// error when nothing matches. Returns false after printing on
// failure.
func resolveTask(a *app.App, query string) (task.Task, bool) {
	t, err := a.Resolve(query)
	if err != nil {
		if apperr.IsValidation(err) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No task matches %q\n", query)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List tasks with 'tally' to see references and ids")
		}
		deps.Exit(1)
		return task.Task{}, false
	}
	return t, true
}

// detectDupes recomputes the duplicate sets from the current
// snapshot.
func detectDupes(a *app.App) dupes.Sets {
	return dupes.Detect(a.Store.Snapshot())
}

// describe renders a one-line task summary used by several commands.
func describe(t task.Task) string {
	label := string(t.Kind)
	if t.Critical {
		label += ", critical"
	}
	return fmt.Sprintf("%s [%s] (%s)", t.Name, t.Reference, label)
}
