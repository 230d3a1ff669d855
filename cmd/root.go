// ABOUTME: Root command for the wardrobe CLI
// ABOUTME: Handles global flags, wiring, and the default TUI launch

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wardrobeapp/wardrobe-cli/internal/auth"
	"github.com/wardrobeapp/wardrobe-cli/internal/client"
	"github.com/wardrobeapp/wardrobe-cli/internal/closet"
	"github.com/wardrobeapp/wardrobe-cli/internal/outfit"
	"github.com/wardrobeapp/wardrobe-cli/internal/session"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8000/api"

// rootCmd is the base command; running it without a subcommand opens the TUI
var rootCmd = &cobra.Command{
	Use:   "wardrobe",
	Short: "Terminal client for the wardrobe service",
	Long: `wardrobe is a terminal client for the personal wardrobe service.

Run it without arguments to open the interactive interface, or use the
subcommands for scripted access to the same backend.

Environment Variables:
  WARDROBE_API_URL  Backend API URL (default: http://localhost:8000/api)`,
	Run: func(cmd *cobra.Command, args []string) {
		authCtrl, closetCtrl, outfitCtrl, store := newControllers()
		if err := tui.Run(authCtrl, closetCtrl, outfitCtrl, store); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Execute runs the root command
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides WARDROBE_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("WARDROBE_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newControllers wires the client, the durable store, and the controllers.
// The token source closes over the auth controller so the client always
// reads the live token.
func newControllers() (*auth.Controller, *closet.Controller, *outfit.Controller, *session.Store) {
	store := session.New(session.DefaultConfigDir())

	var authCtrl *auth.Controller
	c := client.New(GetAPIURL(), func() string {
		return authCtrl.Token()
	})
	authCtrl = auth.New(c, store)

	return authCtrl, closet.New(c), outfit.New(c), store
}
