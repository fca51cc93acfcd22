package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/solvberg/tally/internal/apperr"
)

// refWidth is the minimum zero-padded width of generated reference
// numbers. Values beyond 999 keep their natural width.
const refWidth = 3

// Counter is a process-wide durable counter for task reference
// numbers. It increments on every Next call, including calls never
// followed by a successful task creation, so reference numbers are
// not guaranteed contiguous. The new value is persisted before Next
// returns, so a crash after generation never reuses a number.
type Counter struct {
	path string
}

// NewCounter creates a Counter backed by the given slot file. The
// slot holds the last generated value as a decimal string.
func NewCounter(path string) *Counter {
	return &Counter{path: path}
}

// Current returns the last generated value. A missing or corrupt
// slot reads as zero.
func (c *Counter) Current() int64 {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Next increments the counter, persists the new value, and returns it
// zero-padded to three digits ("001", "042", "1000").
func (c *Counter) Next() (string, error) {
	n := c.Current() + 1

	tmpFile := c.path + ".tmp"
	if err := os.WriteFile(tmpFile, []byte(strconv.FormatInt(n, 10)), 0644); err != nil {
		return "", apperr.NewStorage(c.path, err)
	}
	if err := os.Rename(tmpFile, c.path); err != nil {
		_ = os.Remove(tmpFile)
		return "", apperr.NewStorage(c.path, err)
	}

	return fmt.Sprintf("%0*d", refWidth, n), nil
}
