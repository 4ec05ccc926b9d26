package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the values available for each filter",
	RunE:  runOptions,
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := searchService.FilterOptions(cmd.Context())
	if optionsJSON {
		return printJSON(cmd, opts)
	}

	sections := []struct {
		title  string
		values []string
	}{
		{"Industries", opts.Industries},
		{"Funding stages", opts.FundingStages},
		{"Team sizes", opts.EmployeeOptions},
		{"Ticket sizes", opts.TicketSizes},
		{"Investment criteria", opts.InvestmentCriteria},
		{"Investment regions", opts.InvestmentRegions},
		{"Revenue ranges", opts.RevenueRanges},
	}
	for _, s := range sections {
		cmd.Printf("%s: %s\n", s.title, joinOrDash(s.values))
	}
	return nil
}
