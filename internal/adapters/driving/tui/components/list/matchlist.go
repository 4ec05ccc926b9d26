// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/styles"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// linesPerMatch is the rendered height of one entry.
const linesPerMatch = 2

// BookmarkFunc reports whether a match is bookmarked.
type BookmarkFunc func(matchID string) bool

// MatchList displays one page of matches in a navigable list.
type MatchList struct {
	matches    []domain.Match
	selected   int
	bookmarked BookmarkFunc
	styles     *styles.Styles
	width      int
	height     int
}

// NewMatchList creates a new match list component.
func NewMatchList(s *styles.Styles, bookmarked BookmarkFunc) *MatchList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if bookmarked == nil {
		bookmarked = func(string) bool { return false }
	}

	return &MatchList{
		styles:     s,
		bookmarked: bookmarked,
		width:      80,
		height:     10,
	}
}

// Init initialises the list.
func (l *MatchList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *MatchList) Update(msg tea.Msg) (*MatchList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.matches) > 0 {
				l.selected = len(l.matches) - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *MatchList) View() string {
	if len(l.matches) == 0 {
		return l.styles.Muted.Render("No matches")
	}

	visible := max(1, l.height/linesPerMatch)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.matches))

	lines := make([]string, 0, (end-start)*linesPerMatch)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderMatch(i, &l.matches[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *MatchList) renderMatch(index int, m *domain.Match) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	star := " "
	if l.bookmarked(m.ID) {
		star = l.styles.Bookmark.Render("★")
	}

	name := m.CompanyName
	if name == "" {
		name = m.ID
	}
	maxName := max(10, l.width-16)
	name = truncate(name, maxName)

	score := l.styles.Score(m.MatchScore).Render(fmt.Sprintf("%3.0f%%", m.MatchScore))

	var head string
	if index == l.selected {
		head = indicator + star + " " + l.styles.Selected.Render(fmt.Sprintf("%-*s", maxName, name)) + " " + score
	} else {
		head = indicator + star + " " + l.styles.Normal.Render(fmt.Sprintf("%-*s", maxName, name)) + " " + score
	}
	if m.IsNew {
		head += " " + l.styles.Badge.Render("new")
	}

	details := make([]string, 0, 3)
	if v := strings.Join(m.Industries(), ", "); v != "" {
		details = append(details, v)
	}
	if v := strings.Join(m.Stages(), ", "); v != "" {
		details = append(details, v)
	}
	if m.Location != "" {
		details = append(details, m.Location)
	}
	sub := truncate(strings.Join(details, " · "), max(20, l.width-6))

	return head + "\n" + l.styles.Muted.Render("    "+sub)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SetMatches replaces the list contents. The selection follows the
// previously selected match when it is still present.
func (l *MatchList) SetMatches(matches []domain.Match) {
	prev := l.SelectedMatch()
	l.matches = matches
	l.selected = 0
	if prev == nil {
		return
	}
	for i := range matches {
		if matches[i].ID == prev.ID {
			l.selected = i
			return
		}
	}
}

// Matches returns the current matches.
func (l *MatchList) Matches() []domain.Match {
	return l.matches
}

// Selected returns the index of the selected match.
func (l *MatchList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *MatchList) SetSelected(index int) {
	if index >= 0 && index < len(l.matches) {
		l.selected = index
	}
}

// SelectedMatch returns the currently selected match, or nil if none.
func (l *MatchList) SelectedMatch() *domain.Match {
	if l.selected < 0 || l.selected >= len(l.matches) {
		return nil
	}
	m := l.matches[l.selected]
	return &m
}

// MoveUp moves selection up.
func (l *MatchList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *MatchList) MoveDown() {
	if l.selected < len(l.matches)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *MatchList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of matches.
func (l *MatchList) Count() int {
	return len(l.matches)
}
