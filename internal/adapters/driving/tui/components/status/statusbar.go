// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/keymap"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/styles"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// Bar displays the fetch state, paging and keybinding hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      domain.LoadState
	message    string
	pagination domain.Pagination
	sortBy     domain.SortField
	sortOrder  domain.SortOrder
	hints      []key.Binding
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.Idle{},
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (b *Bar) Update(tea.Msg) (*Bar, tea.Cmd) {
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := max(1, b.width-lipgloss.Width(left)-lipgloss.Width(right))
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	parts := make([]string, 0, 3)

	switch b.state.(type) {
	case domain.Loading:
		parts = append(parts, b.styles.Muted.Render("Loading..."))
	case domain.Failed:
		msg := b.message
		if msg == "" {
			msg = domain.UserMessage(domain.FailureOf(b.state))
		}
		parts = append(parts, b.styles.Error.Render(msg))
	default:
		if b.message != "" {
			parts = append(parts, b.styles.Normal.Render(b.message))
		}
	}

	if b.pagination.Pages > 0 {
		parts = append(parts, b.renderPages())
	}
	if b.sortBy != "" {
		parts = append(parts, b.styles.Muted.Render(b.sortBy.Description()+" "+b.sortOrder.Arrow()))
	}
	if len(parts) == 0 {
		return b.styles.Muted.Render("Ready")
	}
	return strings.Join(parts, "  ")
}

// renderPages renders "1 … 4 [5] 6 … 12 (112 total)".
func (b *Bar) renderPages() string {
	items := domain.PageWindow(b.pagination.Page, b.pagination.Pages)
	out := make([]string, 0, len(items)+1)
	for _, it := range items {
		switch {
		case it.Ellipsis:
			out = append(out, b.styles.Muted.Render("…"))
		case it.Page == b.pagination.Page:
			out = append(out, b.styles.CurrentPage.Render("["+strconv.Itoa(it.Page)+"]"))
		default:
			out = append(out, b.styles.Muted.Render(strconv.Itoa(it.Page)))
		}
	}
	out = append(out, b.styles.Muted.Render(fmt.Sprintf("(%d total)", b.pagination.Total)))
	return strings.Join(out, " ")
}

func (b *Bar) renderRight() string {
	bindings := b.hints
	if len(bindings) == 0 {
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the fetch state.
func (b *Bar) SetState(state domain.LoadState) {
	if state == nil {
		state = domain.Idle{}
	}
	b.state = state
}

// State returns the fetch state.
func (b *Bar) State() domain.LoadState {
	return b.state
}

// SetMessage sets a message shown on the left.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetList shows paging and sort details from a match list state.
func (b *Bar) SetList(s domain.MatchListState) {
	b.state = s.State
	if b.state == nil {
		b.state = domain.Idle{}
	}
	b.message = s.Error
	b.pagination = s.Pagination
	b.sortBy = s.SortBy
	b.sortOrder = s.SortOrder
}

// SetHints replaces the keybinding hints. Nil restores the short help.
func (b *Bar) SetHints(bindings []key.Binding) {
	b.hints = bindings
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets the status bar to its default state.
func (b *Bar) Clear() {
	b.state = domain.Idle{}
	b.message = ""
	b.pagination = domain.Pagination{}
	b.sortBy = ""
	b.sortOrder = ""
}
