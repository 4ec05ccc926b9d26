package compat

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/messages"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

type fakeViewer struct {
	view       domain.CompatibilityView
	err        error
	selected   []string
	deselected int
}

func (f *fakeViewer) Select(_ context.Context, id string) (domain.CompatibilityView, error) {
	f.selected = append(f.selected, id)
	return f.view, f.err
}

func (f *fakeViewer) Deselect()                        { f.deselected++ }
func (f *fakeViewer) View() domain.CompatibilityView { return f.view }

type fakeRecs struct {
	set *domain.RecommendationSet
	err error
}

func (f *fakeRecs) ForMatch(context.Context, string) (*domain.RecommendationSet, error) {
	return f.set, f.err
}

func (f *fakeRecs) Batch(context.Context, []string) ([]domain.BatchRecommendation, error) {
	return nil, nil
}

var acme = domain.Match{ID: "m1", CompanyName: "Acme Ventures", MatchScore: 85, Description: "Seed fund"}

func shownView() domain.CompatibilityView {
	data := domain.CompatibilityData{
		Breakdown: domain.Breakdown{
			MissionAlignment:      90,
			InvestmentPhilosophy:  70,
			SectorFocus:           55,
			FundingStageAlignment: 80,
			ValueAddMatch:         65,
		},
		OverallScore: 74,
		Insights:     []string{"Shared focus on climate"},
	}
	return domain.CompatibilityView{State: domain.CompatShown, MatchID: "m1", Data: &data}
}

func newTestView(viewer *fakeViewer, recs *fakeRecs) *View {
	v := NewView(nil, nil, viewer, recs)
	v.SetDimensions(120, 40)
	return v
}

// selectAndLoad selects acme and feeds the resulting message back.
func selectAndLoad(t *testing.T, v *View) {
	t.Helper()
	_, cmd := v.Update(messages.MatchSelected{Match: acme})
	require.NotNil(t, cmd)
	assert.Equal(t, domain.CompatLoading, v.Panel().State)
	assert.Contains(t, v.View(), "Loading compatibility...")
	v.Update(cmd())
}

func TestView_NoSelection(t *testing.T) {
	v := newTestView(&fakeViewer{}, nil)

	assert.Contains(t, v.View(), "Select a match")
	assert.Nil(t, v.Match())
}

func TestView_NotReady(t *testing.T) {
	assert.Equal(t, "Initialising...", NewView(nil, nil, nil, nil).View())
}

func TestView_ShownBreakdown(t *testing.T) {
	viewer := &fakeViewer{view: shownView()}
	v := newTestView(viewer, nil)

	selectAndLoad(t, v)

	out := v.View()
	assert.Equal(t, []string{"m1"}, viewer.selected)
	assert.Contains(t, out, "Acme Ventures")
	assert.Contains(t, out, "85% match")
	assert.Contains(t, out, "Mission Alignment")
	assert.Contains(t, out, "Value-Add Match")
	assert.Contains(t, out, "Overall")
	assert.Contains(t, out, "Shared focus on climate")
	assert.NotContains(t, out, "Estimated")
}

func TestView_FallbackIsMarked(t *testing.T) {
	data := domain.FallbackCompatibility()
	viewer := &fakeViewer{view: domain.CompatibilityView{State: domain.CompatFallback, MatchID: "m1", Data: &data}}
	v := newTestView(viewer, nil)

	selectAndLoad(t, v)

	out := v.View()
	assert.Contains(t, out, "Estimated values")
	assert.Contains(t, out, data.Insights[0])
}

func TestView_Questionnaire(t *testing.T) {
	viewer := &fakeViewer{view: domain.CompatibilityView{State: domain.CompatQuestionnaire, MatchID: "m1"}}
	v := newTestView(viewer, nil)

	selectAndLoad(t, v)

	assert.Contains(t, v.View(), "Complete your questionnaire")
	assert.NotContains(t, v.View(), "Mission Alignment")
}

func TestView_ErrorShown(t *testing.T) {
	viewer := &fakeViewer{err: domain.ErrNoSession}
	v := newTestView(viewer, nil)

	selectAndLoad(t, v)

	assert.Contains(t, v.View(), domain.MsgLogin)
}

func TestView_StaleResultIgnored(t *testing.T) {
	v := newTestView(&fakeViewer{}, nil)
	v.Select(acme)

	v.Update(messages.CompatibilityLoaded{View: shownView(), Err: domain.ErrStaleResponse})

	assert.Equal(t, domain.CompatLoading, v.Panel().State)
}

func TestView_ResultForOtherMatchIgnored(t *testing.T) {
	v := newTestView(&fakeViewer{}, nil)
	v.Select(acme)

	other := shownView()
	other.MatchID = "m2"
	v.Update(messages.CompatibilityLoaded{View: other})

	assert.Equal(t, domain.CompatLoading, v.Panel().State)
}

func TestView_Recommendations(t *testing.T) {
	set := domain.FallbackRecommendations(74)
	v := newTestView(&fakeViewer{view: shownView()}, &fakeRecs{set: &set})
	selectAndLoad(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Loading recommendations...")

	// A second press while loading is ignored.
	_, again := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, again)

	v.Update(cmd())
	out := v.View()
	require.NotNil(t, v.Recommendations())
	assert.Contains(t, out, "precision 74%")
	assert.Contains(t, out, "[HIGH] Strategic Alignment")
	assert.Contains(t, out, "General guidance")
}

func TestView_RecommendationsError(t *testing.T) {
	v := newTestView(&fakeViewer{view: shownView()}, &fakeRecs{err: domain.ErrUnauthorized})
	selectAndLoad(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	v.Update(cmd())

	assert.Contains(t, v.View(), "Recommendations: "+domain.MsgLogin)
}

func TestView_RecommendationsForOtherMatchIgnored(t *testing.T) {
	v := newTestView(&fakeViewer{view: shownView()}, &fakeRecs{})
	selectAndLoad(t, v)

	set := domain.FallbackRecommendations(0)
	v.Update(messages.RecommendationsLoaded{MatchID: "other", Set: &set})

	assert.Nil(t, v.Recommendations())
}

func TestView_EscDeselects(t *testing.T) {
	viewer := &fakeViewer{view: shownView()}
	v := newTestView(viewer, nil)
	selectAndLoad(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMatches}, cmd())
	assert.Equal(t, 1, viewer.deselected)
	assert.Nil(t, v.Match())
	assert.Equal(t, domain.CompatNone, v.Panel().State)
}

func TestView_ReloadReselects(t *testing.T) {
	viewer := &fakeViewer{view: shownView()}
	v := newTestView(viewer, nil)
	selectAndLoad(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"m1", "m1"}, viewer.selected)
}

func TestView_Scroll(t *testing.T) {
	v := newTestView(&fakeViewer{view: shownView()}, nil)
	selectAndLoad(t, v)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.NotContains(t, v.View(), "Acme Ventures")

	for range 5 {
		v.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Contains(t, v.View(), "Acme Ventures")
}

func TestView_NilViewer(t *testing.T) {
	v := NewView(nil, nil, nil, nil)
	v.SetDimensions(80, 24)

	assert.Nil(t, v.Select(acme))
	assert.Equal(t, domain.CompatLoading, v.Panel().State)
}
