package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vitalcoach/internal/nutrition"
	"vitalcoach/internal/recipes"
	"vitalcoach/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NutritionModel is the nutrition plan screen model
type NutritionModel struct {
	planService *service.PlanService
	plan        *service.NutritionPlan
	suggestions []recipes.Recipe
	viewport    viewport.Model
	loading     bool
	err         error
	width       int
	height      int
	ready       bool
}

// NewNutritionModel creates a new nutrition model
func NewNutritionModel(ps *service.PlanService, width, height int) NutritionModel {
	m := NutritionModel{
		planService: ps,
		loading:     true,
		width:       width,
		height:      height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the nutrition screen
func (m NutritionModel) Init() tea.Cmd {
	return m.loadPlan
}

type nutritionPlanMsg struct {
	plan        *service.NutritionPlan
	suggestions []recipes.Recipe
	err         error
}

func (m NutritionModel) loadPlan() tea.Msg {
	ctx := context.Background()
	plan, err := m.planService.NutritionPlan(ctx, time.Now())
	if err != nil {
		return nutritionPlanMsg{err: err}
	}

	// Suggestions are best-effort; the plan renders without them
	suggestions, err := m.planService.MealSuggestions(ctx, plan.Target)
	if err != nil {
		suggestions = nil
	}

	return nutritionPlanMsg{plan: plan, suggestions: suggestions}
}

// Update handles messages
func (m NutritionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case nutritionPlanMsg:
		m.loading = false
		m.err = msg.err
		m.plan = msg.plan
		m.suggestions = msg.suggestions
		if m.ready && m.plan != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.plan != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadPlan
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the nutrition screen
func (m NutritionModel) View() string {
	if m.loading {
		return "\n  Calculating nutrition plan..."
	}

	if m.err != nil {
		if errors.Is(m.err, service.ErrNoBodyData) {
			return "\n  No body data yet. Press 's' to sync first."
		}
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.plan == nil {
		return "\n  No plan available."
	}

	if m.ready {
		return m.viewport.View()
	}
	return m.renderContent()
}

func (m NutritionModel) renderContent() string {
	var sections []string

	targetCard := m.renderTargetCard()
	mealCard := m.renderMealCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, targetCard, "  ", mealCard)
	sections = append(sections, topRow)

	sections = append(sections, m.renderAdvice())
	sections = append(sections, m.renderFoodSources())

	if len(m.suggestions) > 0 {
		sections = append(sections, m.renderSuggestions())
	}

	help := statusStyle.Render("Press 'r' to recalculate, j/k to scroll")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m NutritionModel) renderTargetCard() string {
	title := cardTitleStyle.Render("Daily Target")

	t := m.plan.Target
	dayType := "Rest day"
	if t.WorkoutDay {
		dayType = "Training day"
	}

	lines := []string{
		RenderMetric("Calories", fmt.Sprintf("%d kcal", t.DailyCalories)),
		RenderMetric("Protein", fmt.Sprintf("%d g", t.Macros.ProteinG)),
		RenderMetric("Carbs", fmt.Sprintf("%d g", t.Macros.CarbsG)),
		RenderMetric("Fats", fmt.Sprintf("%d g", t.Macros.FatsG)),
		"",
		RenderMetric("BMR", fmt.Sprintf("%d kcal", t.BMR)),
		RenderMetric("Day type", dayType),
	}

	if m.plan.RecoveryAdjusted {
		lines = append(lines, "", warningStyle.Render("Training-day extras withheld:\nrecovery is low today"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(42).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m NutritionModel) renderMealCard() string {
	title := cardTitleStyle.Render("Workout Meals")

	now := time.Now()
	var lines []string

	pre, err := m.planService.PreWorkoutMeal(now)
	if err == nil {
		lines = append(lines,
			metricValueStyle.Render("Pre-workout (within 2h before)"),
			fmt.Sprintf("  %dg protein, %dg carbs, %dg fat", pre.Macros.ProteinG, pre.Macros.CarbsG, pre.Macros.FatsG),
			"")
	}

	post, err := m.planService.PostWorkoutMeal(now)
	if err == nil {
		lines = append(lines,
			metricValueStyle.Render("Post-workout (within 2h after)"),
			fmt.Sprintf("  %dg protein, %dg carbs, %dg fat", post.Macros.ProteinG, post.Macros.CarbsG, post.Macros.FatsG))
	}

	if len(lines) == 0 {
		lines = append(lines, statusStyle.Render("Sync body data to size meals"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m NutritionModel) renderAdvice() string {
	title := cardTitleStyle.Render("Meal Timing")

	var lines []string
	for _, rec := range m.plan.MealTiming {
		lines = append(lines, "• "+rec)
	}
	for _, rec := range m.plan.Dietary {
		lines = append(lines, "• "+rec)
	}

	content := strings.Join(lines, "\n")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m NutritionModel) renderFoodSources() string {
	title := cardTitleStyle.Render("Food Sources")

	col := func(heading string, items []string) string {
		lines := []string{metricValueStyle.Render(heading)}
		for _, item := range items {
			lines = append(lines, "  "+item)
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		col("Protein", nutrition.ProteinSources()), "   ",
		col("Carbs", nutrition.CarbSources(m.plan.Goal)), "   ",
		col("Fats", nutrition.FatSources()),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, row))
}

func (m NutritionModel) renderSuggestions() string {
	title := cardTitleStyle.Render("Recipe Ideas")

	var rows []string
	for _, r := range m.suggestions {
		rows = append(rows, fmt.Sprintf("%-30s  %4.0f kcal  %3.0fg protein",
			truncateName(r.Title, 30), r.Calories, r.ProteinG))
	}

	content := strings.Join(rows, "\n")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
