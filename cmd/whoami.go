// ABOUTME: Whoami command for the wardrobe CLI
// ABOUTME: Validates the stored token against the backend

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

	"github.com/wardrobeapp/wardrobe-cli/internal/auth"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami validates the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	authCtrl, _, _, _ := newControllers()

	if authCtrl.State() == auth.StateAnonymous {
		fmt.Fprintln(w, "Not logged in.")
		return 2
	}
	if err := authCtrl.Validate(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := authCtrl.User()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Logged in as %s", user.Username)
	if user.Provider != "" {
		fmt.Fprintf(w, " (via %s)", user.Provider)
	}
	fmt.Fprintln(w)
	return 0
}
