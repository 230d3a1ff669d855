// ABOUTME: Recommend command for the wardrobe CLI
// ABOUTME: Requests an outfit for an occasion and prints the slots

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

	"github.com/wardrobeapp/wardrobe-cli/internal/outfit"
)

var recommendOccasion string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend an outfit",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRecommend(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendOccasion, "occasion", "all", "Occasion: daily, work, date, sport, all")
	rootCmd.AddCommand(recommendCmd)
}

// runRecommend fetches a recommendation and returns exit code
func runRecommend(ctx context.Context, w io.Writer) int {
	_, _, outfitCtrl, _ := newControllers()

	rec, err := outfitCtrl.Recommend(ctx, recommendOccasion)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(rec, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(rec.Slots) == 0 {
		fmt.Fprintln(w, outfit.EmptyMessage)
		return 2
	}

	fmt.Fprintf(w, "Outfit for %s:\n", rec.Occasion)
	for _, slot := range rec.Slots {
		fmt.Fprintf(w, "  %-8s %s\n", slot.Slot, slot.Item.Name)
	}
	if reasons := outfit.ReasonText(rec); reasons != "" {
		fmt.Fprintln(w, reasons)
	}
	return 0
}
