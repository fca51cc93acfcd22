package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/task"
)

func newTestStore() *Store {
	n := 0
	s := New(func() (string, error) {
		n++
		return fmt.Sprintf("TASK-%03d", n), nil
	}, func() time.Time { return time.UnixMilli(1700000000000) })

	id := 0
	s.SetIDFunc(func() string {
		id++
		return fmt.Sprintf("id-%d", id)
	})
	return s
}

func TestCreate_Task(t *testing.T) {
	s := newTestStore()

	got, err := s.Create(CreateInput{Kind: task.KindTask, Name: "  Ship it  "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.Name != "Ship it" {
		t.Errorf("expected trimmed name, got %q", got.Name)
	}
	if got.Reference != "TASK-001" {
		t.Errorf("expected generated reference, got %q", got.Reference)
	}
	if got.ID != "id-1" {
		t.Errorf("expected assigned id, got %q", got.ID)
	}
	if got.Logs == nil || len(got.Logs) != 0 {
		t.Errorf("expected empty logs, got %v", got.Logs)
	}
	if got.CreatedAt != 1700000000000 || got.LastUpdatedMs != 1700000000000 {
		t.Errorf("unexpected timestamps: %d/%d", got.CreatedAt, got.LastUpdatedMs)
	}
}

func TestCreate_Project(t *testing.T) {
	s := newTestStore()

	got, err := s.Create(CreateInput{Kind: task.KindProject, Name: "Website", Reference: "WEB-1", Critical: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.Reference != "WEB-1" {
		t.Errorf("expected caller reference, got %q", got.Reference)
	}
	if !got.Critical {
		t.Error("expected critical flag to carry through")
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{Kind: task.KindTask, Name: "   "}},
		{"project without reference", CreateInput{Kind: task.KindProject, Name: "Website"}},
		{"unknown kind", CreateInput{Kind: "epic", Name: "Website"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			_, err := s.Create(tt.in)
			if !apperr.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if s.Len() != 0 {
				t.Error("failed create must not mutate the collection")
			}
		})
	}
}

func TestCreate_FrontInsertion(t *testing.T) {
	s := newTestStore()
	for _, name := range []string{"first", "second", "third"} {
		if _, err := s.Create(CreateInput{Kind: task.KindTask, Name: name}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	snap := s.Snapshot()
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if snap[i].Name != w {
			t.Errorf("position %d = %q, want %q", i, snap[i].Name, w)
		}
	}
}

func TestResolve(t *testing.T) {
	s := newTestStore()
	s.Replace([]task.Task{
		{ID: "abc123", Reference: "WEB-1", Name: "Website"},
		{ID: "abd456", Reference: "TASK-001", Name: "Ship it"},
		{ID: "zzz789", Reference: "TASK-002", Name: "Other"},
	})

	t.Run("by reference case-insensitive", func(t *testing.T) {
		got, err := s.Resolve("web-1")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if got.ID != "abc123" {
			t.Errorf("resolved %q, want abc123", got.ID)
		}
	})

	t.Run("by unique id prefix", func(t *testing.T) {
		got, err := s.Resolve("zzz")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if got.ID != "zzz789" {
			t.Errorf("resolved %q, want zzz789", got.ID)
		}
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := s.Resolve("ab")
		if !apperr.IsValidation(err) {
			t.Errorf("expected validation error for ambiguous prefix, got %v", err)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, err := s.Resolve("nothing"); err != apperr.ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		if _, err := s.Resolve("  "); err != apperr.ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	s := newTestStore()
	started := int64(1700000000000)
	s.Replace([]task.Task{
		{ID: "a", Name: "Idle"},
		{ID: "b", Name: "Busy", Running: true, StartedAt: &started},
	})

	if err := s.Delete("b"); !apperr.IsConflict(err) {
		t.Errorf("expected conflict deleting a running task, got %v", err)
	}
	if s.Len() != 2 {
		t.Error("failed delete must not mutate the collection")
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 task left, got %d", s.Len())
	}

	if err := s.Delete("missing"); err != apperr.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetArchived(t *testing.T) {
	s := newTestStore()
	started := int64(1700000000000)
	s.Replace([]task.Task{
		{ID: "a", Name: "Idle", LastUpdatedMs: 1},
		{ID: "b", Name: "Busy", Running: true, StartedAt: &started},
	})

	if err := s.SetArchived("b", true); !apperr.IsConflict(err) {
		t.Errorf("expected conflict archiving a running task, got %v", err)
	}

	if err := s.SetArchived("a", true); err != nil {
		t.Fatalf("SetArchived failed: %v", err)
	}
	got, _ := s.Find("a")
	if !got.Archived {
		t.Error("expected task archived")
	}
	if got.LastUpdatedMs != 1700000000000 {
		t.Errorf("expected lastUpdated bumped, got %d", got.LastUpdatedMs)
	}

	// Unarchiving a running task is allowed (cannot happen in
	// practice, but the guard only applies to archiving).
	if err := s.SetArchived("a", false); err != nil {
		t.Fatalf("unarchive failed: %v", err)
	}
}

func TestMarkChecked(t *testing.T) {
	s := newTestStore()
	s.Replace([]task.Task{{ID: "a", Name: "Idle", LastUpdatedMs: 5}})

	if err := s.MarkChecked("a"); err != nil {
		t.Fatalf("MarkChecked failed: %v", err)
	}
	got, _ := s.Find("a")
	if got.LastChecked == nil || *got.LastChecked != 1700000000000 {
		t.Errorf("expected lastChecked set, got %v", got.LastChecked)
	}
	if got.LastUpdatedMs != 1700000000000 {
		t.Errorf("expected lastUpdated bumped, got %d", got.LastUpdatedMs)
	}
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s := newTestStore()
	s.Replace([]task.Task{{ID: "a", Name: "Alpha", Logs: []task.LogEntry{{Comment: "one"}}}})

	snap := s.Snapshot()
	snap[0].Name = "changed"
	snap[0].Logs[0].Comment = "changed"

	got, _ := s.Find("a")
	if got.Name != "Alpha" || got.Logs[0].Comment != "one" {
		t.Error("snapshot mutation leaked into the store")
	}
}
