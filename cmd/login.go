// ABOUTME: Login command for the wardrobe CLI
// ABOUTME: Password login plus consumption of social-login redirect URLs

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	loginUsername     string
	loginPassword     string
	loginProvider     string
	loginFromRedirect string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Long: `Log in with a username and password, or complete a social login by
passing the redirect URL the provider sent you back to via --from-redirect.
The session token is stored and reused by every other command.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	loginCmd.Flags().StringVar(&loginProvider, "provider", "", "Start a social login (wechat or qq) and print the URL to open")
	loginCmd.Flags().StringVar(&loginFromRedirect, "from-redirect", "", "Redirect URL received after a social login")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	authCtrl, _, _, _ := newControllers()

	if loginFromRedirect != "" {
		if _, captured := authCtrl.ConsumeRedirect(loginFromRedirect); !captured {
			fmt.Fprintln(w, "Error: redirect URL carries no token")
			return 2
		}
		if err := authCtrl.Validate(ctx); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return printIdentity(w, authCtrl.User().Username)
	}

	if loginProvider != "" {
		authCtrl.LoadProviderStatus(ctx)
		url, err := authCtrl.StartSocialLogin(ctx, loginProvider, "")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(w, "Open this URL in your browser:")
		fmt.Fprintln(w, url)
		fmt.Fprintln(w, "Then run: wardrobe login --from-redirect <redirect-url>")
		return 0
	}

	if loginUsername == "" || loginPassword == "" {
		fmt.Fprintln(w, "Error: --username and --password are required")
		return 2
	}

	if err := authCtrl.Login(ctx, loginUsername, loginPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return printIdentity(w, authCtrl.User().Username)
}

// printIdentity reports the signed-in user in the selected format
func printIdentity(w io.Writer, username string) int {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"username": username}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Logged in as %s\n", username)
	return 0
}
