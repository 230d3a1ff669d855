// ABOUTME: Items command group for the wardrobe CLI
// ABOUTME: List, upload, and delete wardrobe items from scripts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wardrobeapp/wardrobe-cli/internal/client"
	"github.com/wardrobeapp/wardrobe-cli/internal/closet"
)

var (
	uploadName     string
	uploadCategory string
	uploadOccasion string
	uploadFit      string
	uploadWarmth   int
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage wardrobe items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runItemsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var itemsUploadCmd = &cobra.Command{
	Use:   "upload [png files...]",
	Short: "Upload one or more PNG images as items",
	Long: `Upload clothes from PNG files. With several files each item is named
"<name> <n>". Category and fit default to automatic detection from the image.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runItemsUpload(ctx, os.Stdout, args)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runItemsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	itemsUploadCmd.Flags().StringVar(&uploadName, "name", "", "Item name (required)")
	itemsUploadCmd.Flags().StringVar(&uploadCategory, "category", "auto", "Category: auto, top, bottom, outer, shoes, accessory")
	itemsUploadCmd.Flags().StringVar(&uploadOccasion, "occasion", "daily", "Occasion: daily, work, date, sport, all")
	itemsUploadCmd.Flags().StringVar(&uploadFit, "fit", "auto", "Fit: auto, slim, regular, loose")
	itemsUploadCmd.Flags().IntVar(&uploadWarmth, "warmth", 2, "Warmth 1-5")

	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsUploadCmd)
	itemsCmd.AddCommand(itemsDeleteCmd)
	rootCmd.AddCommand(itemsCmd)
}

// runItemsList fetches and prints the closet and returns exit code
func runItemsList(ctx context.Context, w io.Writer) int {
	_, closetCtrl, _, _ := newControllers()

	if err := closetCtrl.Refresh(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	items := closetCtrl.Items()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(items, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%d item(s)\n", len(items))
	for _, item := range items {
		fmt.Fprintln(w, formatItemLine(item))
	}
	return 0
}

// formatItemLine renders one item as a single text row
func formatItemLine(item client.Item) string {
	line := fmt.Sprintf("%4d  %-24s %-10s %-8s %-8s warmth %d",
		item.ID, item.Name, item.Category, item.Occasion, item.Fit, item.Warmth)
	if len(item.StyleTags) > 0 {
		line += "  [" + strings.Join(item.StyleTags, ", ") + "]"
	}
	return line
}

// runItemsUpload uploads the given files and returns exit code
func runItemsUpload(ctx context.Context, w io.Writer, paths []string) int {
	_, closetCtrl, _, _ := newControllers()

	files, err := closet.ReadFiles(paths)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	created, err := closetCtrl.Upload(ctx, closet.UploadRequest{
		Name:     uploadName,
		Category: closet.ParseSelection(uploadCategory),
		Occasion: uploadOccasion,
		Fit:      closet.ParseSelection(uploadFit),
		Warmth:   uploadWarmth,
		Files:    files,
	})
	if err != nil {
		if created > 0 {
			fmt.Fprintf(w, "Uploaded %d item(s) before failing.\n", created)
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Uploaded %d item(s).\n", created)
	return 0
}

// runItemsDelete deletes one item and returns exit code
func runItemsDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid item id %q\n", rawID)
		return 2
	}

	_, closetCtrl, _, _ := newControllers()
	if err := closetCtrl.Delete(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted item %d.\n", id)
	return 0
}
