package tui

import (
	"context"
	"fmt"
	"time"

	"vitalcoach/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel is the recovery dashboard screen model
type DashboardModel struct {
	planService *service.PlanService
	report      *service.RecoveryReport
	loading     bool
	err         error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(ps *service.PlanService) DashboardModel {
	return DashboardModel{
		planService: ps,
		loading:     true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadReport
}

type recoveryReportMsg struct {
	report *service.RecoveryReport
	err    error
}

func (m DashboardModel) loadReport() tea.Msg {
	report, err := m.planService.RecoveryReport(context.Background(), time.Now())
	return recoveryReportMsg{report: report, err: err}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recoveryReportMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadReport
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading recovery data..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.report == nil {
		return "\n  No data available. Press 's' to sync."
	}

	var sections []string

	scoreCard := m.renderScoreCard()
	metricsCard := m.renderMetricsCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, scoreCard, "  ", metricsCard)
	sections = append(sections, topRow)

	sections = append(sections, m.renderRecommendations())

	if m.report.Warning != "" {
		sections = append(sections, warningStyle.Render("\n  ⚠ "+m.report.Warning))
	}

	help := statusStyle.Render("Press 'r' to refresh, '2' for nutrition, 's' to sync")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderScoreCard() string {
	title := cardTitleStyle.Render("Recovery Score")

	r := m.report
	score := scoreStyle(r.Score).Bold(true).Render(fmt.Sprintf("%.0f / 100", r.Score))
	status := metricValueStyle.Render(r.Insights.OverallStatus)

	lines := []string{
		score,
		"",
		lipgloss.JoinHorizontal(lipgloss.Left, metricLabelStyle.Render("Status"), status),
		lipgloss.JoinHorizontal(lipgloss.Left,
			metricLabelStyle.Render("Today"),
			metricValueStyle.Render(r.Recommendation)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderMetricsCard() string {
	title := cardTitleStyle.Render("Today's Inputs")

	r := m.report
	var lines []string
	if r.Metrics == nil {
		lines = append(lines, statusStyle.Render("No readings for today yet"))
	} else {
		lines = append(lines,
			RenderMetric("Sleep", r.Insights.SleepStatus),
			RenderMetric("HRV", r.Insights.HRVStatus),
			RenderMetric("Resting HR", fmt.Sprintf("%.0f bpm", r.Metrics.RestingHR)),
		)
	}
	if r.CurrentWeight > 0 {
		lines = append(lines, RenderMetric("Weight", fmt.Sprintf("%.1f kg", r.CurrentWeight)))
	}
	if r.AvgWeight > 0 {
		lines = append(lines, RenderMetric("7-day avg", fmt.Sprintf("%.1f kg", r.AvgWeight)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderRecommendations() string {
	title := cardTitleStyle.Render("Recommendations")

	recs := m.report.Insights.Recommendations
	if len(recs) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "Nothing to flag today"))
	}

	var lines []string
	for _, rec := range recs {
		lines = append(lines, "• "+rec)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}
