// Package export encodes a task's log history into a download-ready
// CSV artifact.
package export

import (
	"strings"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/task"
)

// DefaultSuffix is appended to the derived artifact file name.
const DefaultSuffix = "_logs.csv"

// header is the fixed first row of every artifact.
const header = "Name,Date,Time Spent,Comment"

// CSV renders one task's log history, most-recent-first, as a CSV
// payload: a header row, then one row per log entry with every field
// double-quoted and internal quotes doubled. Rows are joined by
// newline with no trailing newline. A task with no logs yields
// apperr.ErrEmptyLogs; the caller should surface a notice, not treat
// it as fatal.
func CSV(t task.Task) ([]byte, error) {
	if len(t.Logs) == 0 {
		return nil, apperr.ErrEmptyLogs
	}

	rows := make([]string, 0, len(t.Logs)+1)
	rows = append(rows, header)
	for _, log := range t.Logs {
		rows = append(rows, strings.Join([]string{
			quote(t.Name),
			quote(log.Date),
			quote(log.Duration),
			quote(log.Comment),
		}, ","))
	}

	return []byte(strings.Join(rows, "\n")), nil
}

// FileName derives the artifact name from the task name: whitespace
// runs become single underscores, the result is lower-cased, and the
// suffix is appended. An empty suffix falls back to DefaultSuffix.
func FileName(name, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	base := strings.ToLower(strings.Join(strings.Fields(name), "_"))
	return base + suffix
}

// quote wraps a field in double quotes, doubling any internal quotes
// (RFC 4180 escaping).
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
