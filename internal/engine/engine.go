// Package engine implements the timer state machine layered on the
// task store: Idle -> Running -> PendingConfirmation -> Idle. It owns
// the single pending-session slot and the per-task display tick
// registry.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/durafmt"
	"github.com/solvberg/tally/internal/store"
	"github.com/solvberg/tally/internal/task"
)

// DiscardMarker is recorded as a task's lastLog when a stopped
// session is discarded instead of committed.
const DiscardMarker = "Session discarded"

// logDateFormat renders the calendar date stamped on committed log
// entries.
const logDateFormat = "1/2/2006"

// PendingSession is the transient value held between stopping a timer
// and confirming or discarding its duration. At most one exists at a
// time.
type PendingSession struct {
	TaskID     string `json:"taskId"`
	DurationMs int64  `json:"durationMs"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine clock (for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTickInterval overrides the display-refresh interval.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithTickFunc registers the callback receiving periodic elapsed-time
// updates for running tasks. The callback runs on tick goroutines and
// must not call back into the engine.
func WithTickFunc(fn TickFunc) Option {
	return func(e *Engine) { e.onTick = fn }
}

// Engine owns the task collection, the pending-session slot, and the
// active-tick registry. Construct one per process and pass it
// explicitly; there are no ambient globals.
type Engine struct {
	store    *store.Store
	pending  *PendingSession
	ticks    map[string]*tickHandle
	interval time.Duration
	onTick   TickFunc
	now      func() time.Time
}

// New creates an Engine over the given store.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		ticks:    make(map[string]*tickHandle),
		interval: time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying task store for read-side derivations
// and non-timer mutations.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Start opens a timer session on the task. Preconditions: the task
// exists, is not already running, and is not archived. Failed
// preconditions are silently ignored, not errors; Start reports
// whether a session was opened. A stale display tick left over from a
// previous session is canceled before the new one is armed.
func (e *Engine) Start(id string) bool {
	started := false
	_ = e.store.Mutate(id, func(t *task.Task) error {
		if t.Running || t.Archived {
			return nil
		}
		now := e.now()
		ms := now.UnixMilli()
		t.Running = true
		t.StartedAt = &ms
		t.LastUpdatedMs = ms
		e.armTick(id, now)
		started = true
		return nil
	})
	return started
}

// Stop closes the running session on the task and stores it as the
// pending session awaiting confirmation. A task that is not running,
// or that has no recorded start instant, is a no-op. If another
// pending session is already open, it is displaced with discard
// semantics: its time is dropped and its task keeps a discard marker.
func (e *Engine) Stop(id string) (PendingSession, bool) {
	var pending PendingSession
	stopped := false
	_ = e.store.Mutate(id, func(t *task.Task) error {
		if !t.Running || t.StartedAt == nil {
			return nil
		}
		now := e.now().UnixMilli()
		duration := now - *t.StartedAt
		if duration < 0 {
			duration = 0
		}
		t.Running = false
		t.StartedAt = nil
		t.LastUpdatedMs = now
		pending = PendingSession{TaskID: t.ID, DurationMs: duration}
		stopped = true
		return nil
	})
	if !stopped {
		return PendingSession{}, false
	}

	e.cancelTick(id)
	if e.pending != nil && e.pending.TaskID != id {
		e.markDiscarded(e.pending.TaskID)
	}
	e.pending = &pending
	return pending, true
}

// Confirm commits the pending session: a log entry is prepended to
// the task's history, elapsed time grows by exactly the pending
// duration, and logging counts as reviewing. The comment is
// mandatory; with an empty comment the session stays pending and a
// validation error is returned.
func (e *Engine) Confirm(comment string) (task.Task, error) {
	if e.pending == nil {
		return task.Task{}, apperr.NewConflict("confirm", "no session awaiting confirmation")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return task.Task{}, apperr.NewValidation("comment", "required to commit tracked time")
	}

	p := *e.pending
	var committed task.Task
	err := e.store.Mutate(p.TaskID, func(t *task.Task) error {
		now := e.now()
		ms := now.UnixMilli()
		formatted := durafmt.Clock(p.DurationMs)
		t.Logs = append([]task.LogEntry{{
			Date:      now.Format(logDateFormat),
			Duration:  formatted,
			Comment:   comment,
			Timestamp: ms,
		}}, t.Logs...)
		t.ElapsedMs += p.DurationMs
		t.LastLog = fmt.Sprintf("Logged %s: %s", formatted, comment)
		t.LastUpdatedMs = ms
		t.LastChecked = &ms
		committed = t.Clone()
		return nil
	})
	if err != nil {
		// The task was deleted while its session was pending; there is
		// nothing left to attach the time to.
		e.pending = nil
		return task.Task{}, err
	}

	e.pending = nil
	return committed, nil
}

// Discard drops the pending session without committing any time. The
// task keeps a discard marker in lastLog but its elapsed time and
// logs are untouched. No-op when nothing is pending.
func (e *Engine) Discard() bool {
	if e.pending == nil {
		return false
	}
	e.markDiscarded(e.pending.TaskID)
	e.pending = nil
	return true
}

// Pending returns the session awaiting confirmation, if any.
func (e *Engine) Pending() (PendingSession, bool) {
	if e.pending == nil {
		return PendingSession{}, false
	}
	return *e.pending, true
}

// Delete removes a task through the engine so any in-flight timer
// resources tied to it are released: its display tick is canceled and
// a pending session keyed to it is dropped.
func (e *Engine) Delete(id string) error {
	if err := e.store.Delete(id); err != nil {
		return err
	}
	e.cancelTick(id)
	if e.pending != nil && e.pending.TaskID == id {
		e.pending = nil
	}
	return nil
}

// Elapsed returns the wall-clock time of the task's open session, or
// false when the task is not running.
func (e *Engine) Elapsed(id string) (time.Duration, bool) {
	t, ok := e.store.Find(id)
	if !ok || !t.Running || t.StartedAt == nil {
		return 0, false
	}
	return time.Duration(e.now().UnixMilli()-*t.StartedAt) * time.Millisecond, true
}

// Close cancels all display ticks. The engine must not be used after
// Close.
func (e *Engine) Close() {
	for id := range e.ticks {
		e.cancelTick(id)
	}
}

func (e *Engine) markDiscarded(id string) {
	_ = e.store.Mutate(id, func(t *task.Task) error {
		t.LastLog = DiscardMarker
		return nil
	})
}

