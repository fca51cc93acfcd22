package engine

import (
	"encoding/json"
	"os"
	"time"

	"github.com/solvberg/tally/internal/task"
)

// SessionState is the persisted sidecar for the live timer session.
// The tasks slot itself never restores running state (the repair
// constructor strips it); this file is what lets one CLI invocation
// stop a timer started by an earlier one.
type SessionState struct {
	RunningID string          `json:"runningId,omitempty"`
	StartedAt int64           `json:"startedAt,omitempty"`
	Pending   *PendingSession `json:"pending,omitempty"`
}

// Empty reports whether there is nothing worth persisting.
func (s SessionState) Empty() bool {
	return s.RunningID == "" && s.Pending == nil
}

// Session captures the engine's live state for persistence.
func (e *Engine) Session() SessionState {
	var state SessionState
	for _, t := range e.store.Snapshot() {
		if t.Running && t.StartedAt != nil {
			state.RunningID = t.ID
			state.StartedAt = *t.StartedAt
			break
		}
	}
	if e.pending != nil {
		p := *e.pending
		state.Pending = &p
	}
	return state
}

// Restore rehydrates a previously persisted session. A running
// session is re-opened with its original start instant when its task
// still exists and is not archived; a pending session is dropped when
// its task is gone. Stale references never abort startup.
func (e *Engine) Restore(state SessionState) {
	if state.RunningID != "" && state.StartedAt > 0 {
		_ = e.store.Mutate(state.RunningID, func(t *task.Task) error {
			if t.Archived {
				return nil
			}
			startedAt := state.StartedAt
			t.Running = true
			t.StartedAt = &startedAt
			e.armTick(t.ID, time.UnixMilli(startedAt))
			return nil
		})
	}
	if state.Pending != nil {
		if _, ok := e.store.Find(state.Pending.TaskID); ok {
			p := *state.Pending
			e.pending = &p
		}
	}
}

// SaveSession writes the session sidecar. Overwrites the file if it
// exists. Uses the atomic write pattern (temp file, then rename). An
// empty session removes the file instead.
func SaveSession(path string, state SessionState) error {
	if state.Empty() {
		return ClearSession(path)
	}

	// SessionState contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(state, "", "  ")

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

// LoadSession reads the session sidecar. Returns a zero state if the
// file is missing or unreadable; a corrupt sidecar is treated as no
// session rather than an error.
func LoadSession(path string) SessionState {
	var state SessionState
	data, err := os.ReadFile(path)
	if err != nil {
		return SessionState{}
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return SessionState{}
	}
	return state
}

// ClearSession removes the session sidecar. Idempotent.
func ClearSession(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
