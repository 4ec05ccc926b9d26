// Package cli implements the karmicdd command line.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

var version = "dev"

// Global flags.
var (
	verbose   bool
	apiURL    string
	ephemeral bool
)

// Services wired by the composition root.
var (
	searchService         driving.SearchService
	matchCoordinator      driving.MatchCoordinator
	bookmarkService       driving.BookmarkService
	compatibilityViewer   driving.CompatibilityViewer
	recommendationService driving.RecommendationService
	sessionService        driving.SessionService
	dashboardService      driving.DashboardService
	settingsService       driving.SettingsService
	metricsHandler        http.Handler
	closeServices         func() error
)

// Options carries the global flags to the bootstrap function.
type Options struct {
	Verbose   bool
	APIURL    string
	Ephemeral bool
}

// Services holds every service the commands use.
type Services struct {
	Search          driving.SearchService
	Matches         driving.MatchCoordinator
	Bookmarks       driving.BookmarkService
	Compatibility   driving.CompatibilityViewer
	Recommendations driving.RecommendationService
	Session         driving.SessionService
	Dashboard       driving.DashboardService
	Settings        driving.SettingsService

	// Metrics serves the Prometheus registry. Optional.
	Metrics http.Handler

	// Close releases stores and connections. Optional.
	Close func() error
}

// BootstrapFunc builds the services once flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var bootstrap BootstrapFunc

var rootCmd = &cobra.Command{
	Use:   "karmicdd",
	Short: "Find and evaluate startup and investor matches",
	Long: `KarmicDD matches startups with investors.

Search your matches, filter and sort them, bookmark the ones you like and
inspect the compatibility breakdown for any match. Run 'karmicdd tui' for
the interactive dashboard or 'karmicdd mcp serve' to expose the same
operations to AI assistants.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override the API base URL")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep bookmarks and session state in memory only")
}

// SetVersion sets the version printed by 'karmicdd version'.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services before a
// command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly.
func SetServices(s *Services) {
	searchService = s.Search
	matchCoordinator = s.Matches
	bookmarkService = s.Bookmarks
	compatibilityViewer = s.Compatibility
	recommendationService = s.Recommendations
	sessionService = s.Session
	dashboardService = s.Dashboard
	settingsService = s.Settings
	metricsHandler = s.Metrics
	closeServices = s.Close
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	defer func() {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Warn("closing services: %v", err)
			}
		}
		logger.Sync()
	}()
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if bootstrap == nil || skipBootstrap(cmd) {
		return nil
	}

	services, err := bootstrap(Options{Verbose: verbose, APIURL: apiURL, Ephemeral: ephemeral})
	if err != nil {
		return err
	}
	if services == nil {
		return errors.New("bootstrap returned no services")
	}
	SetServices(services)
	return nil
}

// skipBootstrap reports commands that never touch a service.
func skipBootstrap(cmd *cobra.Command) bool {
	return cmd == versionCmd || cmd.Name() == "help" || cmd.Name() == "completion"
}
