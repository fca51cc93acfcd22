package engine

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/solvberg/tally/internal/store"
	"github.com/solvberg/tally/internal/task"
)

// tickRecorder collects tick notifications across goroutines.
type tickRecorder struct {
	mu    sync.Mutex
	seen  map[string]int
	first chan struct{}
	once  sync.Once
}

func newTickRecorder() *tickRecorder {
	return &tickRecorder{
		seen:  make(map[string]int),
		first: make(chan struct{}),
	}
}

func (r *tickRecorder) record(taskID string, elapsedMs int64) {
	r.mu.Lock()
	r.seen[taskID]++
	r.mu.Unlock()
	r.once.Do(func() { close(r.first) })
}

func (r *tickRecorder) count(taskID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[taskID]
}

func newTickEngine(t *testing.T, rec *tickRecorder) *Engine {
	t.Helper()
	n := 0
	st := store.New(func() (string, error) {
		n++
		return fmt.Sprintf("TASK-%03d", n), nil
	}, time.Now)

	e := New(st,
		WithTickInterval(5*time.Millisecond),
		WithTickFunc(rec.record),
	)
	t.Cleanup(e.Close)
	return e
}

func TestTicks_FireWhileRunning(t *testing.T) {
	rec := newTickRecorder()
	e := newTickEngine(t, rec)

	created, err := e.Store().Create(store.CreateInput{Kind: task.KindTask, Name: "Ship it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	e.Start(created.ID)
	select {
	case <-rec.first:
	case <-time.After(time.Second):
		t.Fatal("no tick fired within a second")
	}

	if rec.count(created.ID) == 0 {
		t.Error("expected ticks recorded for the running task")
	}
}

func TestTicks_StopSilencesTask(t *testing.T) {
	rec := newTickRecorder()
	e := newTickEngine(t, rec)

	created, err := e.Store().Create(store.CreateInput{Kind: task.KindTask, Name: "Ship it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	e.Start(created.ID)
	select {
	case <-rec.first:
	case <-time.After(time.Second):
		t.Fatal("no tick fired within a second")
	}

	// Stop waits for the tick loop to exit, so counting after a short
	// settle is race-free.
	e.Stop(created.ID)
	before := rec.count(created.ID)
	time.Sleep(25 * time.Millisecond)
	after := rec.count(created.ID)
	if after != before {
		t.Errorf("ticks continued after stop: %d -> %d", before, after)
	}

	e.Discard()
}

func TestTicks_IndependentPerTask(t *testing.T) {
	rec := newTickRecorder()
	e := newTickEngine(t, rec)

	a, _ := e.Store().Create(store.CreateInput{Kind: task.KindTask, Name: "A"})
	b, _ := e.Store().Create(store.CreateInput{Kind: task.KindTask, Name: "B"})

	e.Start(a.ID)
	e.Start(b.ID)
	time.Sleep(30 * time.Millisecond)

	e.Stop(a.ID)
	e.Discard()
	baseline := rec.count(b.ID)
	time.Sleep(30 * time.Millisecond)

	if rec.count(a.ID) == 0 || baseline == 0 {
		t.Fatal("expected ticks for both tasks while running")
	}
	if rec.count(b.ID) <= baseline {
		t.Error("stopping one task must not silence the other")
	}

	e.Stop(b.ID)
	e.Discard()
}
