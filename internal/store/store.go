// Package store holds the in-memory ordered task collection. The
// collection is single-writer: no two state-mutating operations run
// concurrently, so no locking is used. Readers always receive clones.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/task"
)

// RefSource generates the next auto reference for tasks of kind
// "task". Projects carry caller-supplied references instead.
type RefSource func() (string, error)

// Store is an ordered collection of tasks, most-recently-created
// first.
type Store struct {
	tasks   []*task.Task
	nextRef RefSource
	now     func() time.Time
	newID   func() string
}

// New creates an empty Store. nextRef generates references for
// auto-referenced tasks; now is the clock used for timestamps.
func New(nextRef RefSource, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		nextRef: nextRef,
		now:     now,
		newID:   func() string { return uuid.NewString() },
	}
}

// SetIDFunc overrides id generation (for tests).
func (s *Store) SetIDFunc(fn func() string) {
	s.newID = fn
}

// Replace swaps the whole collection, preserving the given order.
// Used when loading a persisted snapshot or seed data.
func (s *Store) Replace(tasks []task.Task) {
	s.tasks = make([]*task.Task, 0, len(tasks))
	for i := range tasks {
		t := tasks[i].Clone()
		s.tasks = append(s.tasks, &t)
	}
}

// CreateInput describes a new task or project.
type CreateInput struct {
	Kind        task.Kind
	Name        string
	Reference   string // required for projects, ignored for tasks
	Description string
	Critical    bool
}

// Create validates the input, assigns a fresh id and reference, and
// inserts the new task at the front of the collection. No mutation
// occurs on validation failure.
func (s *Store) Create(in CreateInput) (task.Task, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return task.Task{}, apperr.NewValidation("name", "must not be empty")
	}

	ref := strings.TrimSpace(in.Reference)
	switch in.Kind {
	case task.KindProject:
		if ref == "" {
			return task.Task{}, apperr.NewValidation("reference", "required for projects")
		}
	case task.KindTask:
		if s.nextRef == nil {
			return task.Task{}, apperr.NewValidation("reference", "no reference source configured")
		}
		var err error
		ref, err = s.nextRef()
		if err != nil {
			return task.Task{}, fmt.Errorf("generate reference: %w", err)
		}
	default:
		return task.Task{}, apperr.NewValidation("type", "must be project or task")
	}

	now := s.now().UnixMilli()
	t := &task.Task{
		ID:            s.newID(),
		Kind:          in.Kind,
		Name:          name,
		Reference:     ref,
		Description:   strings.TrimSpace(in.Description),
		Critical:      in.Critical,
		Logs:          []task.LogEntry{},
		CreatedAt:     now,
		LastUpdatedMs: now,
	}

	s.tasks = append([]*task.Task{t}, s.tasks...)
	return t.Clone(), nil
}

// Find returns a snapshot of the task with the given id.
func (s *Store) Find(id string) (task.Task, bool) {
	t := s.get(id)
	if t == nil {
		return task.Task{}, false
	}
	return t.Clone(), true
}

// Resolve locates a task by exact reference (case-insensitive) or,
// failing that, by unambiguous id prefix.
func (s *Store) Resolve(query string) (task.Task, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return task.Task{}, apperr.ErrNotFound
	}

	for _, t := range s.tasks {
		if strings.EqualFold(t.Reference, q) {
			return t.Clone(), nil
		}
	}

	var match *task.Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, q) {
			if match != nil {
				return task.Task{}, apperr.NewValidation("query", fmt.Sprintf("%q matches more than one task", query))
			}
			match = t
		}
	}
	if match == nil {
		return task.Task{}, apperr.ErrNotFound
	}
	return match.Clone(), nil
}

// Delete removes the task and all its logs irreversibly. Fails with a
// conflict while the task is running; the caller must stop first.
func (s *Store) Delete(id string) error {
	idx := s.index(id)
	if idx < 0 {
		return apperr.ErrNotFound
	}
	if s.tasks[idx].Running {
		return apperr.NewConflict("delete", "task timer is running; stop it first")
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return nil
}

// SetArchived toggles the archive flag. Archiving a running task is a
// conflict; archived tasks cannot start new timers.
func (s *Store) SetArchived(id string, archived bool) error {
	t := s.get(id)
	if t == nil {
		return apperr.ErrNotFound
	}
	if archived && t.Running {
		return apperr.NewConflict("archive", "task timer is running; stop it first")
	}
	t.Archived = archived
	t.LastUpdatedMs = s.now().UnixMilli()
	return nil
}

// MarkChecked records a manual "reviewed" action, independent of
// logging.
func (s *Store) MarkChecked(id string) error {
	t := s.get(id)
	if t == nil {
		return apperr.ErrNotFound
	}
	now := s.now().UnixMilli()
	t.LastChecked = &now
	if now > t.LastUpdatedMs {
		t.LastUpdatedMs = now
	}
	return nil
}

// Mutate applies fn to the live task record. It is the single
// mutation primitive used by the timer engine; fn must leave the task
// consistent or return an error without partial changes.
func (s *Store) Mutate(id string, fn func(*task.Task) error) error {
	t := s.get(id)
	if t == nil {
		return apperr.ErrNotFound
	}
	return fn(t)
}

// Snapshot returns clones of all tasks in collection order.
func (s *Store) Snapshot() []task.Task {
	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) get(id string) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
