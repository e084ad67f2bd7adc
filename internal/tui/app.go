package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/staffboard/internal/config"
	"github.com/emilianohg/staffboard/internal/service"
	"github.com/emilianohg/staffboard/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenTeam
	ScreenProjects
	ScreenLeave
)

type App struct {
	svc           *service.Services
	cfg           *config.Config
	currentScreen Screen
	width         int
	height        int

	// Screen models
	dashboard *screens.Dashboard
	team      *screens.Team
	projects  *screens.Projects
	leave     *screens.Leave
}

func NewApp(svc *service.Services, cfg *config.Config) *App {
	return &App{
		svc:           svc,
		cfg:           cfg,
		currentScreen: ScreenDashboard,
	}
}

func (a *App) Init() tea.Cmd {
	a.dashboard = screens.NewDashboard(a.svc, a.cfg)
	a.team = screens.NewTeam(a.svc)
	a.projects = screens.NewProjects(a.svc)
	a.leave = screens.NewLeave(a.svc)

	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.team.SetSize(msg.Width, msg.Height)
		a.projects.SetSize(msg.Width, msg.Height)
		a.leave.SetSize(msg.Width, msg.Height)

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenDashboard:
		cmd = a.dashboard.Update(msg)
	case ScreenTeam:
		cmd = a.team.Update(msg)
	case ScreenProjects:
		cmd = a.projects.Update(msg)
	case ScreenLeave:
		cmd = a.leave.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case "dashboard":
		a.currentScreen = ScreenDashboard
		return a, a.dashboard.Init()
	case "team":
		a.currentScreen = ScreenTeam
		return a, a.team.Init()
	case "projects":
		a.currentScreen = ScreenProjects
		a.projects.SetPersonFilter(msg.PersonID)
		return a, a.projects.Init()
	case "leave":
		a.currentScreen = ScreenLeave
		return a, a.leave.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenTeam:
		content = a.team.View()
	case ScreenProjects:
		content = a.projects.View()
	case ScreenLeave:
		content = a.leave.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(svc *service.Services, cfg *config.Config) error {
	app := NewApp(svc, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
