package mcp

import (
	"context"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result  *domain.SearchResult
	options domain.FilterOptions
	err     error

	gotRole domain.Role
	gotOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	role domain.Role,
	opts domain.SearchOptions,
) (*domain.SearchResult, error) {
	m.gotRole = role
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.SearchResult{}, nil
	}
	return m.result, nil
}

func (m *mockSearchService) FilterOptions(_ context.Context) domain.FilterOptions {
	return m.options
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	session *domain.Session
	err     error
}

func (m *mockSessionService) Login(_ context.Context, _ string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Logout(_ context.Context) error { return m.err }

func (m *mockSessionService) Current(_ context.Context) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Remember(_ context.Context, _, _ string) error { return m.err }

func (m *mockSessionService) Recall(_ context.Context, _ string) (string, bool, error) {
	return "", false, m.err
}

// mockCompatibilityViewer is a mock implementation of driving.CompatibilityViewer.
type mockCompatibilityViewer struct {
	view domain.CompatibilityView
	err  error
}

func (m *mockCompatibilityViewer) Select(_ context.Context, matchID string) (domain.CompatibilityView, error) {
	m.view.MatchID = matchID
	return m.view, m.err
}

func (m *mockCompatibilityViewer) Deselect() { m.view = domain.CompatibilityView{State: domain.CompatNone} }

func (m *mockCompatibilityViewer) View() domain.CompatibilityView { return m.view }

// mockRecommendationService is a mock implementation of driving.RecommendationService.
type mockRecommendationService struct {
	set *domain.RecommendationSet
	err error
}

func (m *mockRecommendationService) ForMatch(_ context.Context, _ string) (*domain.RecommendationSet, error) {
	return m.set, m.err
}

func (m *mockRecommendationService) Batch(_ context.Context, _ []string) ([]domain.BatchRecommendation, error) {
	return nil, m.err
}

// mockBookmarkService is an in-memory driving.BookmarkService.
type mockBookmarkService struct {
	ids     []string
	loadErr error
}

func (m *mockBookmarkService) Load(_ context.Context) error { return m.loadErr }

func (m *mockBookmarkService) Toggle(_ context.Context, matchID string) (bool, error) {
	for i, id := range m.ids {
		if id == matchID {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			return false, nil
		}
	}
	m.ids = append(m.ids, matchID)
	return true, nil
}

func (m *mockBookmarkService) IsBookmarked(matchID string) bool {
	for _, id := range m.ids {
		if id == matchID {
			return true
		}
	}
	return false
}

func (m *mockBookmarkService) List() []string { return m.ids }

func startupSession() *domain.Session {
	return &domain.Session{
		Token: "tok",
		Profile: domain.Profile{
			UserID:      "u-1",
			Email:       "founder@acme.io",
			Role:        domain.RoleStartup,
			CompanyName: "Acme",
		},
	}
}

func newTestPorts() *Ports {
	return &Ports{
		Search:  &mockSearchService{},
		Session: &mockSessionService{session: startupSession()},
	}
}
