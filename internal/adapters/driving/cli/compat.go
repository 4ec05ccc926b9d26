package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

var compatJSON bool

var compatCmd = &cobra.Command{
	Use:   "compat <match-id>",
	Short: "Show the compatibility breakdown for a match",
	Long: `Shows how well you and a match fit across mission, investment
philosophy, sector, funding stage and value-add.

If either side has not completed the questionnaire yet you are told so.
When the scoring service is unavailable estimated scores are shown and
marked as such.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompat,
}

func init() {
	compatCmd.Flags().BoolVar(&compatJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(compatCmd)
}

func runCompat(cmd *cobra.Command, args []string) error {
	if compatibilityViewer == nil {
		return errors.New("compatibility service not configured")
	}

	view, err := compatibilityViewer.Select(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("compatibility failed: %w", err)
	}

	if compatJSON {
		return printJSON(cmd, view)
	}
	printCompatibility(cmd, view)
	return nil
}

func printCompatibility(cmd *cobra.Command, view domain.CompatibilityView) {
	switch view.State {
	case domain.CompatQuestionnaire:
		cmd.Println(view.Message)
		return
	case domain.CompatShown, domain.CompatFallback:
	default:
		cmd.Println("No compatibility data.")
		return
	}

	data := view.Data
	cmd.Printf("Compatibility with %s: %.0f%%\n", view.MatchID, data.OverallScore)
	if view.State == domain.CompatFallback {
		cmd.Printf("(estimated: %s)\n", view.Message)
	} else if data.IsOldData {
		cmd.Println("(these scores may be out of date)")
	}
	cmd.Println()

	for _, e := range data.Breakdown.Entries() {
		cmd.Printf("  %-24s %s %3.0f\n", e.Label, scoreBar(e.Score, 20), e.Score)
	}

	if len(data.Insights) > 0 {
		cmd.Println()
		cmd.Println("Insights:")
		for _, in := range data.Insights {
			cmd.Printf("  • %s\n", in)
		}
	}
}
