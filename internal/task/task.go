// Package task defines the trackable work unit and its repair
// constructor. A Task is either a project (manually referenced) or a
// task (auto-referenced via the counter).
package task

import (
	"encoding/json"
	"math"
	"strings"
)

// Kind distinguishes the two trackable unit types. Immutable after
// creation.
type Kind string

const (
	KindProject Kind = "project"
	KindTask    Kind = "task"
)

// FallbackName is substituted when a task name is empty after
// trimming.
const FallbackName = "Untitled item"

// LogEntry is an immutable record of one confirmed timer session.
// Comment is never empty: unconfirmed sessions never become entries.
type LogEntry struct {
	Date      string `json:"date"`
	Duration  string `json:"duration"`
	Comment   string `json:"comment"`
	Timestamp int64  `json:"timestamp"`
}

// Task is the unit of trackable work. Logs are ordered
// most-recent-first. ElapsedMs only grows, by exactly the confirmed
// duration of a session at commit time.
type Task struct {
	ID            string     `json:"id"`
	Kind          Kind       `json:"type"`
	Name          string     `json:"name"`
	Reference     string     `json:"reference"`
	Description   string     `json:"description,omitempty"`
	Critical      bool       `json:"isCritical"`
	ElapsedMs     int64      `json:"elapsedMs"`
	Running       bool       `json:"isRunning"`
	StartedAt     *int64     `json:"startedAt,omitempty"`
	Archived      bool       `json:"isArchived"`
	LastLog       string     `json:"lastLog,omitempty"`
	Logs          []LogEntry `json:"logs"`
	CreatedAt     int64      `json:"createdAt"`
	LastUpdatedMs int64      `json:"lastUpdatedMs"`
	LastChecked   *int64     `json:"lastChecked,omitempty"`
}

// Raw is the loosely-typed external representation of a Task as it
// may appear in a persisted slot or seed file. Every field that the
// repair rules coerce is decoded as an untyped value so a single bad
// field never discards the whole record.
type Raw struct {
	ID          any             `json:"id"`
	Type        any             `json:"type"`
	Name        any             `json:"name"`
	Reference   any             `json:"reference"`
	Description any             `json:"description"`
	IsCritical  any             `json:"isCritical"`
	ElapsedMs   any             `json:"elapsedMs"`
	IsArchived  any             `json:"isArchived"`
	LastLog     any             `json:"lastLog"`
	Logs        json.RawMessage `json:"logs"`
	CreatedAt   any             `json:"createdAt"`
	LastUpdated any             `json:"lastUpdatedMs"`
	LastChecked any             `json:"lastChecked"`
}

// Repair produces a validated Task from a loosely-typed external
// representation. Rules, per field:
//   - name: trimmed, FallbackName if empty
//   - logs: ordered sequence, empty if absent or malformed
//   - elapsedMs: finite non-negative integer, 0 if invalid
//   - isRunning/startedAt: always cleared; a reload treats prior
//     sessions as cleanly stopped with no time credited
//   - createdAt/lastUpdatedMs: now if missing or non-finite
//   - isArchived: false by default; lastChecked: nil by default
//
// Repair(t.ToRaw()) of an already-repaired task is a no-op.
func Repair(raw Raw, now int64) Task {
	t := Task{
		ID:          asString(raw.ID),
		Kind:        Kind(asString(raw.Type)),
		Name:        asString(raw.Name),
		Reference:   asString(raw.Reference),
		Description: asString(raw.Description),
		Critical:    asBool(raw.IsCritical),
		Archived:    asBool(raw.IsArchived),
		LastLog:     asString(raw.LastLog),
	}

	if ms, ok := asInt64(raw.ElapsedMs); ok && ms >= 0 {
		t.ElapsedMs = ms
	}
	if len(raw.Logs) > 0 {
		var logs []LogEntry
		if err := json.Unmarshal(raw.Logs, &logs); err == nil && logs != nil {
			t.Logs = logs
		}
	}
	if ms, ok := asInt64(raw.CreatedAt); ok {
		t.CreatedAt = ms
	}
	if ms, ok := asInt64(raw.LastUpdated); ok {
		t.LastUpdatedMs = ms
	}
	if ms, ok := asInt64(raw.LastChecked); ok {
		t.LastChecked = &ms
	}

	t.normalize(now)
	return t
}

// ToRaw converts a typed Task back to its loose representation.
func (t Task) ToRaw() Raw {
	raw := Raw{
		ID:          t.ID,
		Type:        string(t.Kind),
		Name:        t.Name,
		Reference:   t.Reference,
		Description: t.Description,
		IsCritical:  t.Critical,
		ElapsedMs:   t.ElapsedMs,
		IsArchived:  t.Archived,
		LastLog:     t.LastLog,
		CreatedAt:   t.CreatedAt,
		LastUpdated: t.LastUpdatedMs,
	}
	if t.LastChecked != nil {
		raw.LastChecked = *t.LastChecked
	}
	if t.Logs != nil {
		raw.Logs, _ = json.Marshal(t.Logs)
	}
	return raw
}

// normalize applies the repair rules that also hold for in-memory
// tasks. Idempotent.
func (t *Task) normalize(now int64) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		t.Name = FallbackName
	}
	if t.Kind != KindProject {
		t.Kind = KindTask
	}
	if t.Logs == nil {
		t.Logs = []LogEntry{}
	}
	if t.ElapsedMs < 0 {
		t.ElapsedMs = 0
	}
	t.Running = false
	t.StartedAt = nil
	if t.CreatedAt <= 0 {
		t.CreatedAt = now
	}
	if t.LastUpdatedMs <= 0 {
		t.LastUpdatedMs = now
	}
	if t.LastUpdatedMs < t.CreatedAt {
		t.LastUpdatedMs = t.CreatedAt
	}
}

// Clone returns a deep copy of the task. Snapshot consumers (views,
// duplicate detection, export) receive clones so they can never
// mutate store state.
func (t Task) Clone() Task {
	c := t
	if t.StartedAt != nil {
		v := *t.StartedAt
		c.StartedAt = &v
	}
	if t.LastChecked != nil {
		v := *t.LastChecked
		c.LastChecked = &v
	}
	c.Logs = make([]LogEntry, len(t.Logs))
	copy(c.Logs, t.Logs)
	return c
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asInt64 coerces a decoded JSON value to a finite integer
// millisecond count. JSON numbers arrive as float64.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
