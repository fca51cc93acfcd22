// Package app wires the configuration, storage, store, and engine
// into one explicitly owned instance per process. Front ends (CLI,
// TUI, tests) construct an App and drive the engine through it.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/solvberg/tally/internal/config"
	"github.com/solvberg/tally/internal/engine"
	"github.com/solvberg/tally/internal/storage"
	"github.com/solvberg/tally/internal/store"
	"github.com/solvberg/tally/internal/task"
)

// Paths are the resolved slot locations inside the app directory.
type Paths struct {
	Dir     string
	Tasks   string
	Counter string
	Session string
}

// App holds the settled configuration and the live engine.
type App struct {
	Cfg      config.Bundle
	Paths    Paths
	Store    *store.Store
	Engine   *engine.Engine
	Counter  *storage.Counter
	Warnings []storage.ParseWarning
	Seeded   bool
}

// Open builds an App from the default data directory.
func Open(opts ...engine.Option) (*App, error) {
	dir, err := storage.AppDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	return OpenAt(dir, opts...)
}

// OpenAt builds an App rooted at the given directory (useful for
// tests). Bootstrap order: settle all config sources, load the tasks
// slot, fall back to seed data when the slot is missing or empty,
// then restore the live session sidecar.
func OpenAt(dir string, opts ...engine.Option) (*App, error) {
	cfg := config.LoadAll(dir)

	paths := Paths{
		Dir:     dir,
		Tasks:   filepath.Join(dir, cfg.Settings.TasksFile),
		Counter: filepath.Join(dir, cfg.App.CounterFile),
		Session: filepath.Join(dir, "session.json"),
	}

	counter := storage.NewCounter(paths.Counter)
	prefix := cfg.App.TaskRefPrefix
	st := store.New(func() (string, error) {
		n, err := counter.Next()
		if err != nil {
			return "", err
		}
		return prefix + n, nil
	}, time.Now)

	now := time.Now().UnixMilli()
	result, err := storage.LoadTasks(paths.Tasks, now)
	if err != nil {
		return nil, err
	}

	app := &App{
		Cfg:      cfg,
		Paths:    paths,
		Store:    st,
		Counter:  counter,
		Warnings: result.Warnings,
	}

	tasks := result.Tasks
	if !result.Found || len(tasks) == 0 {
		if seeded := config.LoadSeedTasks(filepath.Join(dir, config.SeedFile), now); len(seeded) > 0 {
			tasks = seeded
			app.Seeded = true
		}
	}
	// Seed records may arrive without ids; every stored task needs one.
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
	}
	st.Replace(tasks)

	app.Engine = engine.New(st, opts...)
	app.Engine.Restore(engine.LoadSession(paths.Session))

	return app, nil
}

// Save persists the full task snapshot when autosave is enabled.
func (a *App) Save() error {
	if !a.Cfg.Settings.Autosave {
		return nil
	}
	return storage.SaveTasks(a.Paths.Tasks, a.Store.Snapshot())
}

// PersistSession writes the live session sidecar.
func (a *App) PersistSession() error {
	return engine.SaveSession(a.Paths.Session, a.Engine.Session())
}

// Resolve locates a task by reference or id prefix.
func (a *App) Resolve(query string) (task.Task, error) {
	return a.Store.Resolve(query)
}

// Close releases engine resources.
func (a *App) Close() {
	a.Engine.Close()
}
