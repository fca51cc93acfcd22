package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solvberg/tally/internal/store"
	"github.com/solvberg/tally/internal/task"
)

func TestOpenAt_FreshDirectory(t *testing.T) {
	a, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer a.Close()

	if a.Store.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", a.Store.Len())
	}
	if a.Seeded {
		t.Error("nothing to seed from, Seeded must be false")
	}
	if len(a.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", a.Warnings)
	}
	if a.Cfg.Settings.TasksFile != "tasks.json" {
		t.Errorf("expected default settings, got %+v", a.Cfg.Settings)
	}
}

func TestOpenAt_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	a, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	created, err := a.Store.Create(store.CreateInput{Kind: task.KindTask, Name: "Ship it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := a.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	a.Close()

	b, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()

	got, ok := b.Store.Find(created.ID)
	if !ok {
		t.Fatal("expected task to survive the round trip")
	}
	if got.Name != "Ship it" || got.Reference != created.Reference {
		t.Errorf("got %+v, want %+v", got, created)
	}

	// The counter continues where it left off.
	next, err := b.Store.Create(store.CreateInput{Kind: task.KindTask, Name: "Another"})
	if err != nil {
		t.Fatalf("create after reopen: %v", err)
	}
	if next.Reference != "TASK-002" {
		t.Errorf("reference = %q, want TASK-002", next.Reference)
	}
}

func TestOpenAt_SeedFallback(t *testing.T) {
	dir := t.TempDir()
	seed := `[{"name": "Welcome", "type": "task", "reference": "TASK-001"}]`
	if err := os.WriteFile(filepath.Join(dir, "seed.json"), []byte(seed), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	a, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer a.Close()

	if !a.Seeded {
		t.Error("expected Seeded true")
	}
	snap := a.Store.Snapshot()
	if len(snap) != 1 || snap[0].Name != "Welcome" {
		t.Fatalf("expected seed task loaded, got %+v", snap)
	}
	if snap[0].ID == "" {
		t.Error("seed tasks must receive ids")
	}
}

func TestOpenAt_SeedIgnoredWhenSlotExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seed.json"), []byte(`[{"name": "Welcome"}]`), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	a, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	if _, err := a.Store.Create(store.CreateInput{Kind: task.KindTask, Name: "Real work"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := a.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	a.Close()

	b, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()

	for _, got := range b.Store.Snapshot() {
		if got.Name == "Welcome" {
			t.Error("seed must not load once a slot exists")
		}
	}
}

func TestSave_DisabledByAutosave(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("autosave = false\n"), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	a, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer a.Close()

	if _, err := a.Store.Create(store.CreateInput{Kind: task.KindTask, Name: "Ephemeral"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := a.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(a.Paths.Tasks); !os.IsNotExist(err) {
		t.Error("autosave off must not write the tasks slot")
	}
}

func TestSessionSidecar_AcrossOpens(t *testing.T) {
	dir := t.TempDir()

	a, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	created, err := a.Store.Create(store.CreateInput{Kind: task.KindTask, Name: "Ship it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !a.Engine.Start(created.ID) {
		t.Fatal("Start failed")
	}
	if err := a.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := a.PersistSession(); err != nil {
		t.Fatalf("PersistSession failed: %v", err)
	}
	a.Close()

	b, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()

	got, _ := b.Store.Find(created.ID)
	if !got.Running {
		t.Fatal("expected running session restored from sidecar")
	}
	if _, ok := b.Engine.Stop(created.ID); !ok {
		t.Error("expected Stop to work on the restored session")
	}
	b.Engine.Discard()
}

func TestResolve_DelegatesToStore(t *testing.T) {
	a, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer a.Close()

	created, err := a.Store.Create(store.CreateInput{Kind: task.KindTask, Name: "Ship it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := a.Resolve(created.Reference)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("resolved %q, want %q", got.ID, created.ID)
	}
}
