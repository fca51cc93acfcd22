// Package view derives ordered, filtered presentations of the task
// collection. It operates on read-only snapshots and never mutates
// the store.
package view

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/solvberg/tally/internal/task"
)

// KindFilter selects tasks by kind.
type KindFilter string

const (
	KindAll      KindFilter = ""
	KindProjects KindFilter = "project"
	KindTasks    KindFilter = "task"
)

// CriticalityFilter selects tasks by the critical flag.
type CriticalityFilter string

const (
	CriticalityAll CriticalityFilter = ""
	CriticalOnly   CriticalityFilter = "critical"
	NormalOnly     CriticalityFilter = "normal"
)

// ArchiveFilter selects tasks by archive state.
type ArchiveFilter string

const (
	ArchiveAll   ArchiveFilter = ""
	ActiveOnly   ArchiveFilter = "active"
	ArchivedOnly ArchiveFilter = "archived"
)

// SortMode selects the comparator applied to the filtered set.
type SortMode string

const (
	// SortRecent orders by descending lastUpdatedMs (default).
	SortRecent SortMode = "recent"
	// SortCritical puts critical tasks first, recent-first within.
	SortCritical SortMode = "critical"
	// SortKind orders by ascending kind, recent-first within.
	SortKind SortMode = "kind"
	// SortName orders by locale-aware ascending name.
	SortName SortMode = "name"
)

// Query combines the three independent filter criteria (each
// defaulting to "all", combined with logical AND) and a sort mode.
type Query struct {
	Kind        KindFilter
	Criticality CriticalityFilter
	Archive     ArchiveFilter
	Sort        SortMode
}

// DefaultQuery is the default presentation: active tasks only,
// most-recently-updated first.
func DefaultQuery() Query {
	return Query{Archive: ActiveOnly, Sort: SortRecent}
}

// collator performs locale-aware name comparison. Collation state is
// not safe for concurrent use, so Apply builds one per call.
func collator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// Apply filters and sorts a task snapshot. Sorting is stable so equal
// elements keep their snapshot order, giving a deterministic total
// order.
func Apply(tasks []task.Task, q Query) []task.Task {
	filtered := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, q) {
			filtered = append(filtered, t)
		}
	}

	switch q.Sort {
	case SortName:
		c := collator()
		sort.SliceStable(filtered, func(i, j int) bool {
			return c.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	case SortCritical:
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].Critical != filtered[j].Critical {
				return filtered[i].Critical
			}
			return filtered[i].LastUpdatedMs > filtered[j].LastUpdatedMs
		})
	case SortKind:
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].Kind != filtered[j].Kind {
				return filtered[i].Kind < filtered[j].Kind
			}
			return filtered[i].LastUpdatedMs > filtered[j].LastUpdatedMs
		})
	default: // SortRecent
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].LastUpdatedMs > filtered[j].LastUpdatedMs
		})
	}

	return filtered
}

func matches(t task.Task, q Query) bool {
	switch q.Kind {
	case KindProjects:
		if t.Kind != task.KindProject {
			return false
		}
	case KindTasks:
		if t.Kind != task.KindTask {
			return false
		}
	}

	switch q.Criticality {
	case CriticalOnly:
		if !t.Critical {
			return false
		}
	case NormalOnly:
		if t.Critical {
			return false
		}
	}

	switch q.Archive {
	case ActiveOnly:
		if t.Archived {
			return false
		}
	case ArchivedOnly:
		if !t.Archived {
			return false
		}
	}

	return true
}
