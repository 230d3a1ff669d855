// ABOUTME: Providers command for the wardrobe CLI
// ABOUTME: Shows social-login provider configuration state

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wardrobeapp/wardrobe-cli/internal/client"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show social login provider status",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProviders(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

// runProviders fetches provider status and returns exit code
func runProviders(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL(), nil)

	status, err := c.ProviderStatus(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(status, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(status) == 0 {
		fmt.Fprintln(w, "Social login unavailable.")
		return 0
	}

	for _, name := range []string{"wechat", "qq"} {
		info, ok := status[name]
		if !ok {
			continue
		}
		fmt.Fprintln(w, formatProviderLine(name, info))
	}
	return 0
}

// formatProviderLine renders one provider as a single text row
func formatProviderLine(name string, info client.Provider) string {
	display := info.DisplayName
	if display == "" {
		display = name
	}

	if info.Configured {
		line := fmt.Sprintf("%-8s configured", display)
		if info.CallbackURL != "" {
			line += "  callback: " + info.CallbackURL
		}
		return line
	}

	line := fmt.Sprintf("%-8s not configured", display)
	if len(info.RequiredEnv) > 0 {
		line += "  set: " + strings.Join(info.RequiredEnv, ", ")
	}
	return line
}
