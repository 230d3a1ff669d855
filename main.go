// ABOUTME: Entry point for the wardrobe CLI
// ABOUTME: Terminal client for the personal wardrobe service

package main

import (
	"fmt"
	"os"

	"github.com/wardrobeapp/wardrobe-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
