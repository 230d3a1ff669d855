// ABOUTME: Theme command for the wardrobe CLI
// ABOUTME: Shows or sets the persisted TUI color theme

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wardrobeapp/wardrobe-cli/internal/session"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the color theme",
	Long:  `Without an argument, prints the current theme and the available names. With a name, persists it for future sessions.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		exitCode := runTheme(os.Stdout, name)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

// runTheme shows or persists the theme and returns exit code
func runTheme(w io.Writer, name string) int {
	store := session.New(session.DefaultConfigDir())

	if name == "" {
		current := styles.DefaultTheme
		if saved, ok := store.Get(session.ThemeKey); ok {
			current = styles.Lookup(saved).Name
		}
		fmt.Fprintf(w, "Current theme: %s\n", current)
		fmt.Fprintf(w, "Available: %s\n", strings.Join(styles.Names(), ", "))
		return 0
	}

	if styles.Lookup(name).Name != name {
		fmt.Fprintf(w, "Error: unknown theme %q (available: %s)\n", name, strings.Join(styles.Names(), ", "))
		return 2
	}
	if err := store.Set(session.ThemeKey, name); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Theme set to %s.\n", name)
	return 0
}
