package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a session token",
	Long: `Stores the session token issued by the KarmicDD web app and checks it
against the profile endpoint.

The token can also be provided through the KARMICDD_AUTH_TOKEN environment
variable or a .env file, in which case login is not needed.

Examples:
  karmicdd login --token eyJhbGciOi...
  karmicdd login            # prompts for the token`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget session selections",
	Long:  `Removes the stored token. Bookmarks are kept for the next sign in.`,
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "session token")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	token := loginToken
	if token == "" {
		cmd.Print("Token: ")
		token = readSecret(cmd.InOrStdin())
		cmd.Println()
	}

	sess, err := sessionService.Login(cmd.Context(), token)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s (%s)\n", sess.Profile.DisplayName(), sess.Role())
	if sess.Offline {
		cmd.Println("Profile service unreachable; using the details in your token.")
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if err := sessionService.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	sess, err := sessionService.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	p := sess.Profile
	cmd.Printf("Name:    %s\n", p.DisplayName())
	cmd.Printf("Email:   %s\n", p.Email)
	cmd.Printf("Role:    %s (%s)\n", p.Role, p.Role.Description())
	cmd.Printf("User ID: %s\n", p.UserID)
	if sess.Offline {
		cmd.Println("Status:  offline (from token)")
	}
	return nil
}

// readSecret reads a line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line)
}
