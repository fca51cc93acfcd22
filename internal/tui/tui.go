// Package tui provides the terminal dashboard for tally. It drives
// the engine through the app container and republishes the running
// task's elapsed time once per second.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solvberg/tally/internal/app"
	"github.com/solvberg/tally/internal/apperr"
	"github.com/solvberg/tally/internal/durafmt"
	"github.com/solvberg/tally/internal/dupes"
	"github.com/solvberg/tally/internal/task"
	"github.com/solvberg/tally/internal/view"
)

// mode is the dashboard input mode.
type mode int

const (
	modeBrowse mode = iota
	// modeComment captures the confirmation comment for a stopped
	// session; enter commits, esc discards.
	modeComment
)

// tickMsg drives the once-per-second elapsed refresh.
type tickMsg time.Time

// Model is the dashboard model.
type Model struct {
	app    *app.App
	styles Styles

	tasks  []task.Task
	dupes  dupes.Sets
	cursor int
	mode   mode
	input  textinput.Model

	notice  string
	problem string
	width   int
	height  int
}

// New creates the dashboard over an opened app container.
func New(a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "What did you do? (empty comment discards the time)"
	ti.CharLimit = 200
	ti.Width = 56

	m := Model{
		app:    a,
		styles: NewStyles(a.Cfg.Preferences.Theme),
		input:  ti,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Recompute elapsed display for the running task.
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		if m.mode == modeComment {
			return m.updateComment(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case "s":
		if t, ok := m.selected(); ok {
			if m.app.Engine.Start(t.ID) {
				m.persist()
				m.notice = "Started " + t.Name
			} else {
				m.notice = "Nothing started (already running or archived)"
			}
			m.refresh()
		}

	case "x":
		if t, ok := m.selected(); ok {
			if pending, ok := m.app.Engine.Stop(t.ID); ok {
				m.persist()
				m.refresh()
				m.notice = fmt.Sprintf("Stopped after %s", durafmt.Clock(pending.DurationMs))
				m.mode = modeComment
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}
			m.notice = "No timer running on " + t.Name
		}

	case "a":
		if t, ok := m.selected(); ok {
			if err := m.app.Store.SetArchived(t.ID, !t.Archived); err != nil {
				m.problem = err.Error()
			} else {
				m.persist()
				m.problem = ""
				if t.Archived {
					m.notice = "Unarchived " + t.Name
				} else {
					m.notice = "Archived " + t.Name
				}
			}
			m.refresh()
		}

	case "c":
		if t, ok := m.selected(); ok {
			if err := m.app.Store.MarkChecked(t.ID); err == nil {
				m.persist()
				m.notice = "Checked " + t.Name
			}
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		comment := strings.TrimSpace(m.input.Value())
		t, err := m.app.Engine.Confirm(comment)
		if err != nil {
			if apperr.IsValidation(err) {
				// Session stays pending until a comment arrives or the
				// operator discards.
				m.problem = "A comment is required; esc discards the session"
				return m, nil
			}
			m.problem = err.Error()
			m.mode = modeBrowse
			m.input.Blur()
			return m, nil
		}
		m.persist()
		m.problem = ""
		m.notice = fmt.Sprintf("Committed %s to %s", t.Logs[0].Duration, t.Name)
		m.mode = modeBrowse
		m.input.Blur()
		m.refresh()
		return m, nil

	case "esc":
		m.app.Engine.Discard()
		m.persist()
		m.problem = ""
		m.notice = "Session discarded; no time committed"
		m.mode = modeBrowse
		m.input.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("tally"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.Help.Render("No tasks yet. Create one with 'tally add <name>'."))
		b.WriteString("\n")
	}

	for i, t := range m.tasks {
		b.WriteString(m.renderRow(i, t))
		b.WriteString("\n")
	}

	if m.mode == modeComment {
		if pending, ok := m.app.Engine.Pending(); ok {
			b.WriteString("\n")
			b.WriteString(m.styles.Warning.Render(
				fmt.Sprintf("Confirm %s of tracked time:", durafmt.Clock(pending.DurationMs))))
			b.WriteString("\n")
			b.WriteString(m.styles.Input.Render(m.input.View()))
			b.WriteString("\n")
		}
	}

	if m.problem != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.problem))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("s start · x stop · a archive · c check · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(i int, t task.Task) string {
	var b strings.Builder

	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}
	b.WriteString(cursor)
	b.WriteString(m.styles.Ref.Render(fmt.Sprintf("%-10s", t.Reference)))
	b.WriteString(" ")

	nameStyle := m.styles.Normal
	switch {
	case i == m.cursor:
		nameStyle = m.styles.Selected
	case t.Archived:
		nameStyle = m.styles.Archived
	case t.Critical:
		nameStyle = m.styles.Critical
	}
	b.WriteString(nameStyle.Render(t.Name))

	if t.Critical {
		b.WriteString(m.styles.Critical.Render(" !"))
	}
	if m.dupes.HasName(t.Name) || m.dupes.HasReference(t.Reference) {
		b.WriteString(m.styles.Warning.Render(" (dup)"))
	}

	b.WriteString("  ")
	b.WriteString(durafmt.Hours(t.ElapsedMs))

	if t.Running {
		if elapsed, ok := m.app.Engine.Elapsed(t.ID); ok {
			b.WriteString("  ")
			b.WriteString(m.styles.Running.Render("●"))
			b.WriteString(" ")
			b.WriteString(m.styles.Elapsed.Render(durafmt.Clock(elapsed.Milliseconds())))
		}
	}

	if m.app.Cfg.Preferences.ShowDescriptions && t.Description != "" && i == m.cursor {
		b.WriteString("\n      ")
		b.WriteString(m.styles.Desc.Render(t.Description))
	}

	return b.String()
}

// refresh re-derives the visible task list from the store snapshot.
// The dashboard always shows all tasks including archived, recent
// first.
func (m *Model) refresh() {
	snapshot := m.app.Store.Snapshot()
	q := view.DefaultQuery()
	q.Archive = view.ArchiveAll
	m.tasks = view.Apply(snapshot, q)
	m.dupes = dupes.Detect(snapshot)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) persist() {
	if err := m.app.Save(); err != nil {
		m.problem = "Save failed; changes are not durable this session"
	}
	_ = m.app.PersistSession()
}

func (m Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// tick returns a command that fires once per second.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
