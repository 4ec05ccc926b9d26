package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

var (
	searchIndustry string
	searchStage    string
	searchLocation string
	searchSort     string
	searchOrder    string
	searchPage     int
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search your matches",
	Long: `Lists counterparts for the logged-in user: investors for a startup
account and startups for an investor account.

Filters are combined; empty filters are ignored.

Examples:
  karmicdd search
  karmicdd search fintech --stage Seed --location Berlin
  karmicdd search --sort matchScore --order asc --page 2 --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "filter by industry")
	searchCmd.Flags().StringVar(&searchStage, "stage", "", "filter by funding stage")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "filter by location")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort field (default from settings)")
	searchCmd.Flags().StringVar(&searchOrder, "order", "", "sort order: asc or desc (default from settings)")
	searchCmd.Flags().IntVar(&searchPage, "page", domain.DefaultPage, "page number")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "page size: 10, 20 or 50 (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx := cmd.Context()
	sess, err := sessionService.Current(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
	}

	opts := searchOptionsFromFlags(args)
	role := sess.Role().Counterpart()
	result, err := searchService.Search(ctx, role, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, result)
	}
	return outputSearchTable(cmd, role, result)
}

func searchOptionsFromFlags(args []string) domain.SearchOptions {
	opts := domain.DefaultSearchOptions()
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			opts.Limit = settings.Search.PageSize
			opts.SortBy = settings.Search.SortBy
			opts.SortOrder = settings.Search.SortOrder
		}
	}

	opts.Page = searchPage
	if searchLimit != 0 {
		opts.Limit = searchLimit
	}
	if searchSort != "" {
		opts.SortBy = domain.SortField(searchSort)
	}
	if searchOrder != "" {
		opts.SortOrder = domain.SortOrder(searchOrder)
	}

	var filters domain.Filters
	filters.Set(domain.FilterIndustry, searchIndustry)
	filters.Set(domain.FilterFundingStage, searchStage)
	filters.Set(domain.FilterLocation, searchLocation)
	if len(args) == 1 {
		filters.Set(domain.FilterKeywords, args[0])
	}
	return opts.WithFilters(filters)
}

func outputSearchTable(cmd *cobra.Command, role domain.Role, result *domain.SearchResult) error {
	if len(result.Items) == 0 {
		cmd.Printf("No %s found.\n", role.Plural())
		return nil
	}

	if bookmarkService != nil {
		_ = bookmarkService.Load(cmd.Context())
	}

	rows := make([][]string, 0, len(result.Items))
	for _, m := range result.Items {
		mark := ""
		if bookmarkService != nil && bookmarkService.IsBookmarked(m.ID) {
			mark = "★"
		}
		name := m.CompanyName
		if m.IsNew {
			name += " (new)"
		}
		rows = append(rows, []string{
			mark,
			m.ID,
			name,
			fmt.Sprintf("%.0f", m.MatchScore),
			joinOrDash(m.Industries()),
			joinOrDash(m.Stages()),
			m.Location,
		})
	}
	printTable(cmd, []string{"", "ID", "NAME", "SCORE", "INDUSTRY", "STAGE", "LOCATION"}, rows)

	p := result.Pagination
	first, last := p.Range()
	cmd.Printf("\nShowing %d-%d of %d %s. Page %s\n", first, last, p.Total, role.Plural(), pageLine(p))
	return nil
}
