// ABOUTME: Logout command for the wardrobe CLI
// ABOUTME: Clears the stored session token; safe to repeat

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Long:  `Discard the stored session token. Running it again when already logged out is not an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		runLogout(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	authCtrl, _, _, _ := newControllers()
	fmt.Fprintln(w, authCtrl.Logout(true))
	return 0
}
