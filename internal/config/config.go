// Package config loads the optional seed/config inputs consumed at
// startup: settings, app config, preferences, and prompts as TOML
// files, plus an initial task list used only when no persisted state
// exists yet. Each source is independently optional; a missing or
// corrupt file falls back to its built-in default without aborting
// startup.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/solvberg/tally/internal/task"
)

const (
	// SettingsFile holds engine-facing settings.
	SettingsFile = "settings.toml"
	// AppConfigFile holds storage and export naming.
	AppConfigFile = "config.toml"
	// PreferencesFile holds display preferences.
	PreferencesFile = "preferences.toml"
	// PromptsFile holds front-end prompt strings.
	PromptsFile = "prompts.toml"
	// SeedFile holds the initial task list.
	SeedFile = "seed.json"
)

// Settings are the engine-facing settings.
type Settings struct {
	// TimeFormat selects "24h" or "12h" clock display
	TimeFormat string `toml:"time_format"`
	// Autosave persists a full snapshot after every committing operation
	Autosave bool `toml:"autosave"`
	// TasksFile is the tasks slot file name inside the app directory
	TasksFile string `toml:"tasks_file"`
}

// AppConfig names the counter slot and export artifact.
type AppConfig struct {
	CounterFile   string `toml:"counter_file"`
	ExportSuffix  string `toml:"export_suffix"`
	TaskRefPrefix string `toml:"task_ref_prefix"`
}

// Preferences are display preferences consumed by front ends.
type Preferences struct {
	Theme            string `toml:"theme"`
	ShowDescriptions bool   `toml:"show_descriptions"`
}

// Prompts are front-end prompt strings. The summary prompt is unused
// by the engine itself.
type Prompts struct {
	Summary string `toml:"summary"`
}

// Bundle is the settled result of loading all seed/config inputs.
type Bundle struct {
	Settings    Settings
	App         AppConfig
	Preferences Preferences
	Prompts     Prompts
}

// DefaultSettings returns the built-in settings defaults.
func DefaultSettings() Settings {
	return Settings{
		TimeFormat: "24h",
		Autosave:   true,
		TasksFile:  "tasks.json",
	}
}

// DefaultAppConfig returns the built-in app config defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		CounterFile:   "counter",
		ExportSuffix:  "_logs.csv",
		TaskRefPrefix: "TASK-",
	}
}

// DefaultPreferences returns the built-in preference defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:            "dracula",
		ShowDescriptions: true,
	}
}

// DefaultPrompts returns the built-in prompt defaults.
func DefaultPrompts() Prompts {
	return Prompts{
		Summary: "Summarize the session in one line.",
	}
}

// LoadAll loads the four config sources concurrently and waits for
// all of them to settle. Each source falls back to its default
// independently, so one broken file never takes the others down.
func LoadAll(dir string) Bundle {
	var bundle Bundle
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		bundle.Settings = loadTOML(filepath.Join(dir, SettingsFile), DefaultSettings())
	}()
	go func() {
		defer wg.Done()
		bundle.App = loadTOML(filepath.Join(dir, AppConfigFile), DefaultAppConfig())
	}()
	go func() {
		defer wg.Done()
		bundle.Preferences = loadTOML(filepath.Join(dir, PreferencesFile), DefaultPreferences())
	}()
	go func() {
		defer wg.Done()
		bundle.Prompts = loadTOML(filepath.Join(dir, PromptsFile), DefaultPrompts())
	}()
	wg.Wait()

	return bundle
}

// loadTOML decodes a TOML file into a copy of fallback, returning the
// fallback unchanged on any error.
func loadTOML[T any](path string, fallback T) T {
	out := fallback
	if _, err := toml.DecodeFile(path, &out); err != nil {
		return fallback
	}
	return out
}

// LoadSeedTasks reads the initial task list used when no persisted
// state exists. Each record passes through the task repair
// constructor; a missing or corrupt seed file yields no tasks.
func LoadSeedTasks(path string, now int64) []task.Task {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var raws []task.Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil
	}

	tasks := make([]task.Task, 0, len(raws))
	for _, raw := range raws {
		tasks = append(tasks, task.Repair(raw, now))
	}
	return tasks
}
