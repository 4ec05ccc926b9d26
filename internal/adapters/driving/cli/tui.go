package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive matches dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard lists your matches with filters, sorting, paging and
bookmarks, and shows the compatibility breakdown for the selected match.

Controls:
  ↑/k, ↓/j  Navigate matches
  /         Keyword search
  f, x      Edit / clear filters
  s, o      Sort field / sort order
  n, p      Next / previous page
  b         Toggle bookmark
  enter     Compatibility for the selected match
  r         Recommendations (in the compatibility panel)
  ?         Help
  q         Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Dashboard:       dashboardService,
		Matches:         matchCoordinator,
		Bookmarks:       bookmarkService,
		Compatibility:   compatibilityViewer,
		Recommendations: recommendationService,
		Search:          searchService,
		Session:         sessionService,
		Settings:        settingsService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Log lines would corrupt the alternate screen.
	logger.SetOutput(nil)
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
