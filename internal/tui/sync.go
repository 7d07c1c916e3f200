package tui

import (
	"context"
	"fmt"
	"strings"

	"vitalcoach/internal/service"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SyncModel is the sync screen model
type SyncModel struct {
	syncService *service.SyncService
	spinner     spinner.Model
	syncing     bool
	result      *service.SyncResult
	err         error
	done        bool
}

// NewSyncModel creates a new sync model
func NewSyncModel(ss *service.SyncService) SyncModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)
	return SyncModel{
		syncService: ss,
		spinner:     sp,
	}
}

// Init initializes the sync screen
func (m SyncModel) Init() tea.Cmd {
	return nil
}

// SyncDoneMsg is sent when sync finishes
type SyncDoneMsg struct {
	Result *service.SyncResult
	Err    error
}

// Update handles messages
func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SyncDoneMsg:
		m.syncing = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, func() tea.Msg { return SyncCompleteMsg{} }

	case spinner.TickMsg:
		if m.syncing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		if !m.syncing {
			switch msg.String() {
			case "enter", "s":
				m.syncing = true
				m.done = false
				m.err = nil
				m.result = nil
				return m, tea.Batch(m.runSync, m.spinner.Tick)
			}
		}
	}
	return m, nil
}

func (m SyncModel) runSync() tea.Msg {
	// Pass nil for progress channel - we're not showing real-time updates
	// (the channel would block if buffer fills up)
	result, syncErr := m.syncService.SyncAll(context.Background(), nil)
	return SyncDoneMsg{Result: result, Err: syncErr}
}

// View renders the sync screen
func (m SyncModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Health Data Sync")
	sections = append(sections, title)

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 's' or Enter to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.done && !m.syncing {
		sections = append(sections, successStyle.Render("\n  Sync complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '1' to go to the dashboard"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.syncing {
		sections = append(sections, "\n  "+m.spinner.View()+" Syncing body data from your health gateway...")
		sections = append(sections, "\n"+statusStyle.Render("  This may take a moment"))
	} else {
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SyncModel) renderStartPrompt() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, "  This will sync your health data:")
	lines = append(lines, "")
	lines = append(lines, "  1. Fetch body measurements from the gateway")
	lines = append(lines, "  2. Build one clean record per day")
	lines = append(lines, "  3. Store new and improved records")
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  Press 's' or Enter to start sync"))

	return strings.Join(lines, "\n")
}

func (m SyncModel) renderSummary() string {
	if m.result == nil {
		return ""
	}

	r := m.result
	var lines []string
	lines = append(lines, "")

	if r.DaysStored > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d days of body data stored", r.DaysStored)))
	} else {
		lines = append(lines, statusStyle.Render("  No new body data"))
	}

	if r.DaysUpdated > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d existing days improved", r.DaysUpdated)))
	}

	lines = append(lines, statusStyle.Render(fmt.Sprintf("  %d samples fetched", r.SamplesFetched)))

	if len(r.Errors) > 0 {
		lines = append(lines, "")
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d errors occurred", len(r.Errors))))
	}

	return strings.Join(lines, "\n")
}
