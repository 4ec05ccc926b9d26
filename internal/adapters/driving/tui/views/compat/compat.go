// Package compat provides the compatibility panel view for the TUI.
package compat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/keymap"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/messages"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/styles"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
)

const (
	labelWidth = 26
	barWidth   = 30
)

// View shows the compatibility breakdown and recommendations for one match.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    progress.Model

	compat driving.CompatibilityViewer
	recs   driving.RecommendationService
	ctx    context.Context

	match    *domain.Match
	panel    domain.CompatibilityView
	err      error
	recSet   *domain.RecommendationSet
	recErr   error
	recBusy  bool
	scrollTo int

	width  int
	height int
	ready  bool
}

// NewView creates a new compatibility view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	compat driving.CompatibilityViewer,
	recs driving.RecommendationService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		bar: progress.New(
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
			progress.WithSolidFill(string(s.Theme().Primary)),
		),
		compat: compat,
		recs:   recs,
		ctx:    context.Background(),
		panel:  domain.CompatibilityView{State: domain.CompatNone},
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the compatibility view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.MatchSelected:
		return v, v.Select(msg.Match)

	case messages.CompatibilityLoaded:
		if errors.Is(msg.Err, domain.ErrStaleResponse) {
			return v, nil
		}
		if v.match == nil || (msg.Err == nil && msg.View.MatchID != v.match.ID) {
			return v, nil
		}
		v.panel = msg.View
		v.err = msg.Err
		return v, nil

	case messages.RecommendationsLoaded:
		if v.match == nil || msg.MatchID != v.match.ID {
			return v, nil
		}
		v.recBusy = false
		v.recSet = msg.Set
		v.recErr = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		if v.compat != nil {
			v.compat.Deselect()
		}
		v.reset()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMatches} }

	case keymap.Matches(keyStr, v.keymap.Recommend):
		return v, v.loadRecommendations()

	case keymap.Matches(keyStr, v.keymap.Refresh):
		if v.match != nil {
			return v, v.Select(*v.match)
		}

	case keymap.Matches(keyStr, v.keymap.Up):
		v.scrollTo = max(0, v.scrollTo-1)

	case keymap.Matches(keyStr, v.keymap.Down):
		v.scrollTo++
	}
	return v, nil
}

// Select starts loading compatibility for m.
func (v *View) Select(m domain.Match) tea.Cmd {
	v.reset()
	v.match = &m
	v.panel = domain.CompatibilityView{State: domain.CompatLoading, MatchID: m.ID}
	if v.compat == nil {
		return nil
	}

	id := m.ID
	return func() tea.Msg {
		view, err := v.compat.Select(v.ctx, id)
		return messages.CompatibilityLoaded{View: view, Err: err}
	}
}

func (v *View) loadRecommendations() tea.Cmd {
	if v.recs == nil || v.match == nil || v.recBusy {
		return nil
	}
	v.recBusy = true
	id := v.match.ID
	return func() tea.Msg {
		set, err := v.recs.ForMatch(v.ctx, id)
		return messages.RecommendationsLoaded{MatchID: id, Set: set, Err: err}
	}
}

func (v *View) reset() {
	v.match = nil
	v.panel = domain.CompatibilityView{State: domain.CompatNone}
	v.err = nil
	v.recSet = nil
	v.recErr = nil
	v.recBusy = false
	v.scrollTo = 0
}

// View renders the compatibility panel.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.match == nil {
		return v.styles.Muted.Render("Select a match to view compatibility.")
	}

	lines := []string{v.renderHeader(), ""}
	lines = append(lines, v.renderPanel()...)
	lines = append(lines, "")
	lines = append(lines, v.renderRecommendations()...)

	if offset := min(v.scrollTo, len(lines)-1); offset > 0 {
		lines = lines[offset:]
	}

	lines = append(lines, "", v.styles.Help.Render("[r] Recommendations  [ctrl+r] Reload  [j/k] Scroll  [esc] Back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *View) renderHeader() string {
	name := v.match.CompanyName
	if name == "" {
		name = v.match.ID
	}
	head := v.styles.Title.Render(name) + "  " +
		v.styles.Score(v.match.MatchScore).Render(fmt.Sprintf("%.0f%% match", v.match.MatchScore))
	if v.match.Description != "" {
		head += "\n" + v.styles.Muted.Render(v.match.Description)
	}
	return head
}

func (v *View) renderPanel() []string {
	if v.err != nil {
		return []string{v.styles.Error.Render(domain.UserMessage(v.err))}
	}

	switch v.panel.State {
	case domain.CompatNone:
		return nil
	case domain.CompatLoading:
		return []string{v.styles.Muted.Render("Loading compatibility...")}
	case domain.CompatQuestionnaire:
		msg := v.panel.Message
		if msg == "" {
			msg = domain.MsgQuestionnaire
		}
		return []string{v.styles.Warning.Render(msg)}
	}

	data := v.panel.Data
	if data == nil {
		return []string{v.styles.Muted.Render("No compatibility data.")}
	}

	lines := make([]string, 0, 16)
	lines = append(lines, v.styles.Subtitle.Render("Compatibility"))
	if v.panel.State == domain.CompatFallback {
		note := "Estimated values; live data could not be loaded."
		if v.panel.Message != "" {
			note = v.panel.Message
		}
		lines = append(lines, v.styles.Badge.Render(note))
	}
	if data.IsOldData {
		lines = append(lines, v.styles.Badge.Render("Based on earlier questionnaire answers."))
	}

	for _, e := range data.Breakdown.Entries() {
		lines = append(lines, v.renderScore(e.Label, e.Score))
	}
	lines = append(lines, v.renderScore("Overall", data.OverallScore))

	if len(data.Insights) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Insights"))
		for _, in := range data.Insights {
			lines = append(lines, v.styles.Normal.Render("• "+in))
		}
	}
	return lines
}

func (v *View) renderScore(label string, score float64) string {
	pct := max(0, min(100, score)) / 100
	return fmt.Sprintf("%-*s %s %s",
		labelWidth, label,
		v.bar.ViewAs(pct),
		v.styles.Score(score).Render(fmt.Sprintf("%3.0f", score)),
	)
}

func (v *View) renderRecommendations() []string {
	switch {
	case v.recBusy:
		return []string{v.styles.Muted.Render("Loading recommendations...")}
	case v.recErr != nil:
		return []string{v.styles.Error.Render("Recommendations: " + domain.UserMessage(v.recErr))}
	case v.recSet == nil:
		return nil
	}

	recs := append([]domain.Recommendation(nil), v.recSet.Recommendations...)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})

	title := fmt.Sprintf("Recommendations (precision %.0f%%)", v.recSet.Precision)
	lines := []string{v.styles.Subtitle.Render(title)}
	if v.recSet.Fallback {
		lines = append(lines, v.styles.Badge.Render("General guidance; personalised recommendations are unavailable."))
	}
	for _, r := range recs {
		lines = append(lines,
			v.styles.Normal.Render(fmt.Sprintf("[%s] %s", strings.ToUpper(string(r.Priority)), r.Title))+
				" "+v.styles.Muted.Render(string(r.Category)),
			v.styles.Muted.Render("    "+r.Summary),
		)
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.bar.Width = max(10, min(barWidth, width-labelWidth-8))
}

// Panel returns the current compatibility panel.
func (v *View) Panel() domain.CompatibilityView {
	return v.panel
}

// Match returns the match being shown, or nil.
func (v *View) Match() *domain.Match {
	return v.match
}

// Recommendations returns the loaded recommendations, or nil.
func (v *View) Recommendations() *domain.RecommendationSet {
	return v.recSet
}
