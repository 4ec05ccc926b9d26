package services

import (
	"context"
	"sync"
	"time"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// --- Mock implementations ---

type searchCall struct {
	role domain.Role
	opts domain.SearchOptions
}

type compatCall struct {
	startupID  string
	investorID string
}

// mockAPI implements every driven API port.
type mockAPI struct {
	mu sync.Mutex

	searchFn    func(ctx context.Context, role domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error)
	searchCalls []searchCall

	filterOptions *domain.FilterOptions
	filterErr     error
	filterCalls   int

	compat      *domain.CompatibilityData
	compatErr   error
	compatFn    func(ctx context.Context, startupID, investorID string) (*domain.CompatibilityData, error)
	compatCalls []compatCall

	recs      *domain.RecommendationSet
	recsErr   error
	batch     []domain.BatchRecommendation
	batchErr  error
	batchIDs  []string
	recsCalls []compatCall

	profile      *domain.Profile
	profileErr   error
	profileCalls int
}

func (m *mockAPI) Search(ctx context.Context, role domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, searchCall{role: role, opts: opts})
	fn := m.searchFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, role, opts)
	}
	return resultPage(opts.Page, 3, opts.Limit, "m1", "m2"), nil
}

func (m *mockAPI) FilterOptions(_ context.Context) (*domain.FilterOptions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filterCalls++
	if m.filterErr != nil {
		return nil, m.filterErr
	}
	return m.filterOptions, nil
}

func (m *mockAPI) Compatibility(ctx context.Context, startupID, investorID string) (*domain.CompatibilityData, error) {
	m.mu.Lock()
	m.compatCalls = append(m.compatCalls, compatCall{startupID, investorID})
	fn := m.compatFn
	data, err := m.compat, m.compatErr
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, startupID, investorID)
	}
	if err != nil {
		return nil, err
	}
	c := *data
	return &c, nil
}

func (m *mockAPI) MatchRecommendations(_ context.Context, startupID, investorID string) (*domain.RecommendationSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recsCalls = append(m.recsCalls, compatCall{startupID, investorID})
	if m.recsErr != nil {
		return nil, m.recsErr
	}
	c := *m.recs
	return &c, nil
}

func (m *mockAPI) BatchRecommendations(_ context.Context, matchIDs []string) ([]domain.BatchRecommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchIDs = matchIDs
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	return m.batch, nil
}

func (m *mockAPI) UserProfile(_ context.Context) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileCalls++
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	p := *m.profile
	return &p, nil
}

func (m *mockAPI) searchCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.searchCalls)
}

func (m *mockAPI) lastSearch() searchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls[len(m.searchCalls)-1]
}

// resultPage builds a search result for page with the given item ids.
func resultPage(page, pages, limit int, ids ...string) *domain.SearchResult {
	items := make([]domain.Match, len(ids))
	for i, id := range ids {
		items[i] = domain.Match{ID: id, CompanyName: "Company " + id, MatchScore: 80}
	}
	if limit == 0 {
		limit = domain.DefaultPageSize
	}
	return &domain.SearchResult{
		Items: items,
		Pagination: domain.Pagination{
			Total: pages * limit,
			Page:  page,
			Pages: pages,
			Limit: limit,
		}.Normalize(),
	}
}

// fakeSessions implements SessionSource with a fixed answer.
type fakeSessions struct {
	mu   sync.Mutex
	sess *domain.Session
	err  error
}

func newFakeSessions(role domain.Role, userID string) *fakeSessions {
	return &fakeSessions{sess: &domain.Session{
		Token:   "tok-" + userID,
		Profile: domain.Profile{UserID: userID, Role: role, Email: userID + "@example.com"},
	}}
}

func (f *fakeSessions) Current(_ context.Context) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s := *f.sess
	return &s, nil
}

func (f *fakeSessions) switchUser(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess.Profile.UserID = userID
}

// fakeTokens implements driven.TokenStore in memory.
type fakeTokens struct {
	mu      sync.Mutex
	token   string
	setErr  error
	cleared int
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.token = token
	return nil
}

func (f *fakeTokens) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

// fakeDecoder implements driven.TokenDecoder with a fixed profile.
type fakeDecoder struct {
	profile *domain.Profile
	err     error
}

func (f *fakeDecoder) Decode(_ string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	return &p, nil
}

// memCache implements driven.Cache with a map and ignores TTLs.
type memCache struct {
	mu     sync.Mutex
	values map[string][]byte
	sets   int
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memCache) Close() error { return nil }
