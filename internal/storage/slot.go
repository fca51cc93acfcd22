// Package storage persists the task collection and the reference
// counter as durable file slots. All writes go through a temp file
// and an atomic rename so a crash never leaves a half-written slot.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/osutil"
	"github.com/solvberg/tally/internal/task"
)

// AppName is the application name used for the data directory.
const AppName = "tally"

// ParseWarning describes a task record in the slot that could not be
// decoded and was skipped.
type ParseWarning struct {
	Index int    // Position of the record in the tasks array
	Error string // Description of the decoding error
}

// LoadResult contains the outcome of loading the tasks slot. A
// missing or corrupt slot yields Found == false with no error; the
// caller falls back to seed data.
type LoadResult struct {
	Tasks    []task.Task
	Warnings []ParseWarning
	Found    bool
}

// AppDir returns the application data directory, creating it if
// needed.
func AppDir() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// slot is the persisted shape of the tasks file.
type slot struct {
	Tasks []json.RawMessage `json:"tasks"`
}

// SaveTasks writes the full task snapshot to the slot file.
// Overwrites the file if it exists. Uses the atomic write pattern
// (temp file, then rename).
func SaveTasks(path string, tasks []task.Task) error {
	payload := struct {
		Tasks []task.Task `json:"tasks"`
	}{Tasks: tasks}
	if payload.Tasks == nil {
		payload.Tasks = []task.Task{}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return apperr.NewStorage(path, err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return apperr.NewStorage(path, err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return apperr.NewStorage(path, err)
	}
	return nil
}

// LoadTasks reads the tasks slot and repairs each record through the
// task repair constructor. Records that fail to decode individually
// are skipped with a warning; a missing or wholly corrupt slot yields
// an empty result, not an error.
func LoadTasks(path string, now int64) (LoadResult, error) {
	result := LoadResult{Tasks: []task.Task{}, Warnings: []ParseWarning{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, apperr.NewStorage(path, err)
	}

	var s slot
	if err := json.Unmarshal(data, &s); err != nil {
		result.Warnings = append(result.Warnings, ParseWarning{
			Index: -1,
			Error: fmt.Sprintf("slot is not valid JSON: %v", err),
		})
		return result, nil
	}

	result.Found = true
	for i, rawMsg := range s.Tasks {
		var raw task.Raw
		if err := json.Unmarshal(rawMsg, &raw); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				Index: i,
				Error: err.Error(),
			})
			continue
		}
		result.Tasks = append(result.Tasks, task.Repair(raw, now))
	}

	return result, nil
}
