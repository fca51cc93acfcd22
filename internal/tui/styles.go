package tui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// defaultTheme is used when the preferences name an unknown theme.
const defaultTheme = "dracula"

// Styles contains the lipgloss styles used by the dashboard.
type Styles struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Archived lipgloss.Style
	Critical lipgloss.Style
	Running  lipgloss.Style
	Elapsed  lipgloss.Style
	Ref      lipgloss.Style
	Desc     lipgloss.Style
	Input    lipgloss.Style
}

// NewStyles builds the style set for the named bubbletint theme,
// falling back to the default theme when the name is unknown.
func NewStyles(theme string) Styles {
	allTints := tint.DefaultTints()

	var base tint.Tint
	for _, t := range allTints {
		if t.ID() == defaultTheme {
			base = t
			break
		}
	}
	if base == nil && len(allTints) > 0 {
		base = allTints[0]
	}

	registry := tint.NewRegistry(base, allTints...)
	if theme != "" {
		registry.SetTintID(theme)
	}

	primary := registry.Purple()
	secondary := registry.Cyan()
	accent := registry.BrightPurple()
	muted := registry.BrightBlack()
	success := registry.Green()
	warning := registry.Yellow()
	errorColor := registry.Red()

	return Styles{
		Title:    lipgloss.NewStyle().Foreground(primary).Bold(true).MarginBottom(1),
		Help:     lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(errorColor),
		Warning:  lipgloss.NewStyle().Foreground(warning),
		Success:  lipgloss.NewStyle().Foreground(success),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Normal:   lipgloss.NewStyle(),
		Archived: lipgloss.NewStyle().Foreground(muted),
		Critical: lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Running:  lipgloss.NewStyle().Foreground(success).Bold(true),
		Elapsed:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Ref:      lipgloss.NewStyle().Foreground(secondary),
		Desc:     lipgloss.NewStyle().Foreground(muted),
		Input:    lipgloss.NewStyle().Foreground(secondary),
	}
}
