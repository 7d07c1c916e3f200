package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Recovery dashboard"},
		{"2", "Nutrition plan"},
		{"3", "Weight trends"},
		{"4 or s", "Sync screen"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	})
	sections = append(sections, navSection)

	screenSection := m.renderSection("On Any Screen", []keyHelp{
		{"r", "Refresh / recalculate"},
		{"j / k", "Scroll (nutrition screen)"},
	})
	sections = append(sections, screenSection)

	syncSection := m.renderSection("Sync Screen", []keyHelp{
		{"s / enter", "Start sync"},
	})
	sections = append(sections, syncSection)

	sections = append(sections, m.renderScoreHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderScoreHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("Recovery Score Explained"))
	lines = append(lines, "")

	items := []struct {
		name string
		desc string
	}{
		{"Score", "0-100 composite: 40% sleep, 40% HRV and resting HR, 20% weight stability."},
		{"85-100 Excellent", "Fully recovered. Train hard."},
		{"70-84 Good", "Normal training."},
		{"50-69 Moderate", "Reduce intensity or volume."},
		{"Below 50 Poor", "Light activity or rest; below 40 skip the workout."},
		{"No data", "Scores 70 - moderate by assumption, not measurement."},
	}

	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	for _, item := range items {
		lines = append(lines, "  "+helpKeyStyle.Render(item.name))
		lines = append(lines, "  "+mutedStyle.Render(item.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
