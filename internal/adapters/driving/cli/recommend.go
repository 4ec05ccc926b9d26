package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

const recommendConcurrency = 4

var (
	recommendJSON       bool
	recommendIndividual bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <match-id>...",
	Short: "Show recommendations for one or more matches",
	Long: `Shows recommendations for approaching a match.

With several match ids the batch endpoint is used. Pass --individual to
request each match separately instead, which also derives recommendations
from the compatibility score when the recommendation service is down.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output as JSON")
	recommendCmd.Flags().BoolVar(&recommendIndividual, "individual", false, "request each match separately")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recommendationService == nil {
		return errors.New("recommendation service not configured")
	}

	var (
		results []domain.BatchRecommendation
		err     error
	)
	if len(args) == 1 || recommendIndividual {
		results, err = recommendEach(cmd, args)
	} else {
		results, err = recommendationService.Batch(cmd.Context(), args)
	}
	if err != nil {
		return fmt.Errorf("recommendations failed: %w", err)
	}

	if recommendJSON {
		return printJSON(cmd, results)
	}
	for i, r := range results {
		if i > 0 {
			cmd.Println()
		}
		printRecommendations(cmd, r)
	}
	return nil
}

// recommendEach fetches recommendations per match concurrently.
func recommendEach(cmd *cobra.Command, ids []string) ([]domain.BatchRecommendation, error) {
	results := make([]domain.BatchRecommendation, len(ids))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(recommendConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			set, err := recommendationService.ForMatch(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNoSession) {
					return err
				}
				results[i] = domain.BatchRecommendation{MatchID: id, Error: domain.UserMessage(err)}
				return nil
			}
			results[i] = domain.BatchRecommendation{MatchID: id, Recommendations: set}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printRecommendations(cmd *cobra.Command, r domain.BatchRecommendation) {
	if r.Error != "" {
		cmd.Printf("%s: %s\n", r.MatchID, r.Error)
		return
	}
	if r.Recommendations == nil {
		cmd.Printf("%s: no recommendations\n", r.MatchID)
		return
	}

	set := r.Recommendations
	header := fmt.Sprintf("%s (precision %.0f%%)", r.MatchID, set.Precision)
	if set.Fallback {
		header += " [general guidance]"
	}
	cmd.Println(header)

	recs := slices.Clone(set.Recommendations)
	slices.SortStableFunc(recs, func(a, b domain.Recommendation) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	for _, rec := range recs {
		cmd.Printf("  [%s] %s: %s\n", rec.Priority, rec.Title, rec.Summary)
	}
}
