package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/keymap"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/messages"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/styles"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/views/compat"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/views/matches"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/views/menu"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/views/settings"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView     *menu.View
	matchesView  *matches.View
	compatView   *compat.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// session is set once the dashboard has loaded.
	session *domain.Session

	// err holds the last error that occurred outside a view.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         h,
		menuView:     menu.NewView(s),
		matchesView:  matches.NewView(s, km, ports.Matches, ports.Bookmarks),
		compatView:   compat.NewView(s, km, ports.Compatibility, ports.Recommendations),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMatches,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.matchesView.WithContext(ctx)
	a.compatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads the dashboard when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("karmicdd"),
		a.loadDashboard(),
	)
}

func (a *App) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		d, err := a.ports.Dashboard.Load(a.ctx)
		return messages.DashboardLoaded{Dashboard: d, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.DashboardLoaded:
		a.applyDashboard(msg)
		return a, nil

	case messages.MatchesLoaded, messages.BookmarkToggled:
		a.matchesView, cmd = a.matchesView.Update(msg)
		return a, cmd

	case messages.MatchSelected, messages.CompatibilityLoaded, messages.RecommendationsLoaded:
		a.compatView, cmd = a.compatView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewSettings {
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.capturing() {
		switch {
		case a.currentView != messages.ViewMenu && keymap.Matches(keyStr, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(keyStr, a.keymap.Help) && a.currentView != messages.ViewHelp:
			a.currentView = messages.ViewHelp
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewMatches:
		a.matchesView, cmd = a.matchesView.Update(msg)
	case messages.ViewCompatibility:
		a.compatView, cmd = a.compatView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(keyStr, a.keymap.Back) || keymap.Matches(keyStr, a.keymap.Help) {
			a.currentView = messages.ViewMatches
		}
	}
	return a, cmd
}

// capturing reports whether the active view is receiving typed text.
func (a *App) capturing() bool {
	switch a.currentView {
	case messages.ViewMatches:
		return a.matchesView.Capturing()
	case messages.ViewSettings:
		return a.settingsView.Editing()
	default:
		return false
	}
}

func (a *App) applyDashboard(msg messages.DashboardLoaded) {
	if msg.Err != nil {
		a.err = msg.Err
		return
	}
	if msg.Dashboard == nil {
		return
	}

	a.err = nil
	d := msg.Dashboard
	a.session = d.Session
	a.menuView.SetSession(d.Session)
	a.matchesView.SetRole(d.Session.Role().Counterpart())
	a.matchesView.SetFilterOptions(d.FilterOptions)
	a.matchesView.SetState(d.Matches)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewCompatibility:
		body = a.compatView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.matchesView.View()
	}

	if a.err != nil {
		banner := a.styles.Error.Render(domain.UserMessage(a.err))
		return lipgloss.JoinVertical(lipgloss.Left, banner, "", body)
	}
	return body
}

func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Help"),
		"",
		a.help.View(a.keymap),
		"",
		a.styles.Help.Render("[esc] back"),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the loaded session, or nil before the dashboard loads.
func (a *App) Session() *domain.Session {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.matchesView.SetDimensions(width, height)
	a.compatView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
