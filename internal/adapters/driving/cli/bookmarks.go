package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarksJSON bool

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage bookmarked matches",
	Long: `Bookmarks are stored on this device for the logged-in user only.
They are not synchronised with the server.`,
	RunE: runBookmarksList,
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked match ids",
	RunE:  runBookmarksList,
}

var bookmarksToggleCmd = &cobra.Command{
	Use:   "toggle <match-id>",
	Short: "Add or remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksToggle,
}

func init() {
	bookmarksListCmd.Flags().BoolVar(&bookmarksJSON, "json", false, "output as JSON")
	bookmarksCmd.AddCommand(bookmarksListCmd)
	bookmarksCmd.AddCommand(bookmarksToggleCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarksList(cmd *cobra.Command, _ []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}
	if err := bookmarkService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	ids := bookmarkService.List()
	if bookmarksJSON {
		return printJSON(cmd, ids)
	}
	if len(ids) == 0 {
		cmd.Println("No bookmarks.")
		return nil
	}
	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}

func runBookmarksToggle(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	on, err := bookmarkService.Toggle(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to toggle bookmark: %w", err)
	}
	if on {
		cmd.Printf("Bookmarked %s\n", args[0])
	} else {
		cmd.Printf("Removed bookmark %s\n", args[0])
	}
	return nil
}
