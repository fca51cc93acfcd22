// Package dupes computes the sets of duplicate task names and
// references. Duplicates are a naming concern independent of archive
// state, so archived tasks count too. The computation is stateless
// and cheap enough to rerun on every keystroke.
package dupes

import (
	"strings"

	"github.com/solvberg/tally/internal/task"
)

// Sets holds the normalized names and references that occur on two or
// more tasks.
type Sets struct {
	Names      map[string]bool
	References map[string]bool
}

// HasName reports whether the (un-normalized) name is duplicated.
func (s Sets) HasName(name string) bool {
	return s.Names[Normalize(name)]
}

// HasReference reports whether the (un-normalized) reference is
// duplicated.
func (s Sets) HasReference(ref string) bool {
	return s.References[Normalize(ref)]
}

// Normalize lower-cases and trims a name or reference for duplicate
// comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Detect counts normalized names and references across the whole
// snapshot and returns those occurring at least twice. Empty strings
// are excluded from counting.
func Detect(tasks []task.Task) Sets {
	nameCounts := make(map[string]int, len(tasks))
	refCounts := make(map[string]int, len(tasks))

	for _, t := range tasks {
		if name := Normalize(t.Name); name != "" {
			nameCounts[name]++
		}
		if ref := Normalize(t.Reference); ref != "" {
			refCounts[ref]++
		}
	}

	sets := Sets{
		Names:      make(map[string]bool),
		References: make(map[string]bool),
	}
	for name, n := range nameCounts {
		if n >= 2 {
			sets.Names[name] = true
		}
	}
	for ref, n := range refCounts {
		if n >= 2 {
			sets.References[ref] = true
		}
	}
	return sets
}
