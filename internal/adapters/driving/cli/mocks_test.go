package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driven/storage/memory"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/services"
)

// mockSearchService implements driving.SearchService.
type mockSearchService struct {
	result  *domain.SearchResult
	options domain.FilterOptions
	err     error

	gotRole domain.Role
	gotOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, role domain.Role, opts domain.SearchOptions) (*domain.SearchResult, error) {
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

func (m *mockSearchService) FilterOptions(context.Context) domain.FilterOptions {
	return m.options
}

// mockSessionService implements driving.SessionService.
type mockSessionService struct {
	session  *domain.Session
	err      error
	gotToken string
	loggedIn bool
}

func (m *mockSessionService) Login(_ context.Context, token string) (*domain.Session, error) {
	m.gotToken = token
	if m.err != nil {
		return nil, m.err
	}
	m.loggedIn = true
	return m.session, nil
}

func (m *mockSessionService) Logout(context.Context) error {
	m.loggedIn = false
	return m.err
}

func (m *mockSessionService) Current(context.Context) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockSessionService) Remember(context.Context, string, string) error { return m.err }

func (m *mockSessionService) Recall(context.Context, string) (string, bool, error) {
	return "", false, m.err
}

// mockBookmarkService implements driving.BookmarkService in memory.
type mockBookmarkService struct {
	ids []string
	err error
}

func (m *mockBookmarkService) Load(context.Context) error { return m.err }

func (m *mockBookmarkService) Toggle(_ context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for i, existing := range m.ids {
		if existing == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			return false, nil
		}
	}
	m.ids = append(m.ids, id)
	return true, nil
}

func (m *mockBookmarkService) IsBookmarked(id string) bool {
	for _, existing := range m.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (m *mockBookmarkService) List() []string { return m.ids }

// mockCompatibilityViewer implements driving.CompatibilityViewer.
type mockCompatibilityViewer struct {
	view domain.CompatibilityView
	err  error
}

func (m *mockCompatibilityViewer) Select(_ context.Context, id string) (domain.CompatibilityView, error) {
	m.view.MatchID = id
	return m.view, m.err
}

func (m *mockCompatibilityViewer) Deselect() {}

func (m *mockCompatibilityViewer) View() domain.CompatibilityView { return m.view }

// mockRecommendationService implements driving.RecommendationService.
type mockRecommendationService struct {
	sets     map[string]*domain.RecommendationSet
	errs     map[string]error
	batch    []domain.BatchRecommendation
	batchIDs []string
}

func (m *mockRecommendationService) ForMatch(_ context.Context, id string) (*domain.RecommendationSet, error) {
	if err := m.errs[id]; err != nil {
		return nil, err
	}
	return m.sets[id], nil
}

func (m *mockRecommendationService) Batch(_ context.Context, ids []string) ([]domain.BatchRecommendation, error) {
	m.batchIDs = ids
	return m.batch, nil
}

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

// setupTestServices installs services for one test and clears them after.
func setupTestServices(t *testing.T, s *Services) {
	t.Helper()
	if s.Session == nil {
		s.Session = &mockSessionService{session: startupSession()}
	}
	if s.Settings == nil {
		s.Settings = services.NewSettingsService(memory.NewConfigStore())
	}
	SetServices(s)
	t.Cleanup(func() {
		SetServices(&Services{})
		resetFlags()
	})
}

// resetFlags restores command flag variables between executions.
func resetFlags() {
	searchIndustry, searchStage, searchLocation = "", "", ""
	searchSort, searchOrder = "", ""
	searchPage, searchLimit = domain.DefaultPage, 0
	searchJSON = false
	optionsJSON = false
	bookmarksJSON = false
	compatJSON = false
	recommendJSON, recommendIndividual = false, false
	loginToken = ""
	verbose = false
}

// resetHelpFlags clears the sticky --help flag cobra leaves set on a
// command after it has been parsed, so later executions run normally.
func resetHelpFlags(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	for _, c := range cmd.Commands() {
		resetHelpFlags(c)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

// executeCommandWithInput is executeCommand with stdin set to input.
func executeCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	defer resetHelpFlags(rootCmd)

	err := rootCmd.Execute()
	return buf.String(), err
}
