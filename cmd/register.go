// ABOUTME: Register command for the wardrobe CLI
// ABOUTME: Creates an account and stores the resulting session token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	registerUsername string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes the registration and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	if registerUsername == "" || registerPassword == "" {
		fmt.Fprintln(w, "Error: --username and --password are required")
		return 2
	}

	authCtrl, _, _, _ := newControllers()
	if err := authCtrl.Register(ctx, registerUsername, registerPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return printIdentity(w, authCtrl.User().Username)
}
