package tui

import (
	"fmt"
	"time"

	"vitalcoach/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// TrendsModel is the weight trend screen model
type TrendsModel struct {
	planService *service.PlanService
	values      []float64
	labels      []string
	loading     bool
	err         error
}

// NewTrendsModel creates a new trends model
func NewTrendsModel(ps *service.PlanService) TrendsModel {
	return TrendsModel{
		planService: ps,
		loading:     true,
	}
}

// Init initializes the trends screen
func (m TrendsModel) Init() tea.Cmd {
	return m.loadTrend
}

type weightTrendMsg struct {
	values []float64
	labels []string
	err    error
}

func (m TrendsModel) loadTrend() tea.Msg {
	values, labels, err := m.planService.WeightTrend(time.Now())
	return weightTrendMsg{values: values, labels: labels, err: err}
}

// Update handles messages
func (m TrendsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weightTrendMsg:
		m.loading = false
		m.err = msg.err
		m.values = msg.values
		m.labels = msg.labels
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadTrend
		}
	}
	return m, nil
}

// View renders the trends screen
func (m TrendsModel) View() string {
	if m.loading {
		return "\n  Loading weight trend..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.values) < 3 {
		return "\n  Not enough weight data to chart yet. Press 's' to sync."
	}

	title := cardTitleStyle.Render("Weight - Last 90 Days")

	graph := asciigraph.Plot(m.values,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Precision(1),
	)

	span := fmt.Sprintf("%s — %s", m.labels[0], m.labels[len(m.labels)-1])
	summary := m.renderSummary()

	help := statusStyle.Render("Press 'r' to refresh")

	chart := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, statusStyle.Render(span)))
	return lipgloss.JoinVertical(lipgloss.Left, chart, summary, help)
}

func (m TrendsModel) renderSummary() string {
	title := cardTitleStyle.Render("Summary")

	first := m.values[0]
	last := m.values[len(m.values)-1]
	delta := last - first

	deltaStr := fmt.Sprintf("%+.1f kg", delta)
	deltaStyled := successStyle.Render(deltaStr)
	if delta > 0 {
		deltaStyled = warningStyle.Render(deltaStr)
	}

	lines := []string{
		RenderMetric("Current", fmt.Sprintf("%.1f kg", last)),
		RenderMetric("Start of window", fmt.Sprintf("%.1f kg", first)),
		lipgloss.JoinHorizontal(lipgloss.Left, metricLabelStyle.Render("Change"), deltaStyled),
		RenderMetric("Days tracked", fmt.Sprintf("%d", len(m.values))),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}
