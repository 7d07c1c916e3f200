package tui

import (
	"vitalcoach/internal/service"
	"vitalcoach/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenNutrition
	ScreenTrends
	ScreenSync
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard  DashboardModel
	nutrition  NutritionModel
	trends     TrendsModel
	syncScreen SyncModel
	help       HelpModel

	// Services
	store       *store.Store
	planService *service.PlanService
	syncService *service.SyncService

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(st *store.Store, planService *service.PlanService, syncService *service.SyncService) *App {
	return &App{
		screen:      ScreenDashboard,
		store:       st,
		planService: planService,
		syncService: syncService,
		dashboard:   NewDashboardModel(planService),
		nutrition:   NewNutritionModel(planService, 0, 0),
		trends:      NewTrendsModel(planService),
		syncScreen:  NewSyncModel(syncService),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless a sync is running)
		if a.screen != ScreenSync || !a.syncScreen.syncing {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				a.dashboard = NewDashboardModel(a.planService)
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenNutrition
				a.nutrition = NewNutritionModel(a.planService, a.width, a.height)
				return a, a.nutrition.Init()
			case "3":
				a.screen = ScreenTrends
				a.trends = NewTrendsModel(a.planService)
				return a, a.trends.Init()
			case "4", "s":
				if a.screen != ScreenSync {
					a.screen = ScreenSync
					return a, a.syncScreen.Init()
				}
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case SyncCompleteMsg:
		// Refresh dashboard after sync
		a.screen = ScreenDashboard
		a.dashboard = NewDashboardModel(a.planService)
		return a, a.dashboard.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenNutrition:
		var m tea.Model
		m, cmd = a.nutrition.Update(msg)
		a.nutrition = m.(NutritionModel)
	case ScreenTrends:
		var m tea.Model
		m, cmd = a.trends.Update(msg)
		a.trends = m.(TrendsModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := headerStyle.Render("VitalCoach - Recovery & Nutrition")
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenNutrition:
		content = a.nutrition.View()
	case ScreenTrends:
		content = a.trends.View()
	case ScreenSync:
		content = a.syncScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Recovery", ScreenDashboard},
		{"2", "Nutrition", ScreenNutrition},
		{"3", "Trends", ScreenTrends},
		{"4", "Sync", ScreenSync},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

// SyncCompleteMsg is sent when sync finishes
type SyncCompleteMsg struct{}
