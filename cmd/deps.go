package cmd

import (
	"io"
	"os"

	"github.com/solvberg/tally/internal/app"
)

// Deps holds external dependencies for CLI commands, enabling
// testability.
type Deps struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Stdin     io.Reader
	Exit      func(code int)
	Open      func() (*app.App, error)
	WriteFile func(name string, data []byte) error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
		Open:   func() (*app.App, error) { return app.Open() },
		WriteFile: func(name string, data []byte) error {
			return os.WriteFile(name, data, 0644)
		},
	}
}

// deps is the global dependencies instance used by commands. In
// production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
