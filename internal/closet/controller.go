// ABOUTME: Closet controller owning the item collection and its mutations
// ABOUTME: Every mutation is followed by a full refetch of the closet

package closet

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/wardrobeapp/wardrobe-cli/internal/client"
)

// Selection is an explicit tagged choice for category and fit: either a
// concrete value or a request to derive one from image analysis.
type Selection struct {
	Auto  bool
	Value string
}

// Explicit selects a concrete value.
func Explicit(value string) Selection {
	return Selection{Value: value}
}

// Auto requests server-side analysis to pick the value.
func Auto() Selection {
	return Selection{Auto: true}
}

// ParseSelection maps the literal "auto" to Auto and anything else to an
// explicit value, for flag and form input.
func ParseSelection(raw string) Selection {
	if strings.EqualFold(strings.TrimSpace(raw), "auto") {
		return Auto()
	}
	return Explicit(raw)
}

// File is one image selected for upload, decoupled from the filesystem.
type File struct {
	Name string
	Data []byte
}

// UploadRequest carries everything the upload operation needs.
type UploadRequest struct {
	Name     string
	Category Selection
	Occasion string
	Fit      Selection
	Warmth   int
	Files    []File
}

// Analysis fallbacks when the server omits a suggestion.
const (
	fallbackCategory = "top"
	fallbackFit      = "regular"
)

// Controller owns the in-memory closet. It is the only writer of items;
// the collection is always replaced wholesale, never patched in place.
type Controller struct {
	client *client.Client
	items  []client.Item
}

// New creates a closet controller.
func New(c *client.Client) *Controller {
	return &Controller{client: c}
}

// Items returns the closet as last fetched from the server.
func (c *Controller) Items() []client.Item {
	return c.items
}

// Clear drops the in-memory closet, e.g. on logout.
func (c *Controller) Clear() {
	c.items = nil
}

// Refresh replaces the closet with a fresh full list. On failure the
// previous closet is kept: stale-but-consistent beats silently-empty.
func (c *Controller) Refresh(ctx context.Context) error {
	items, err := c.client.ListItems(ctx)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

// Upload creates one item per accepted PNG, sequentially so that failures
// are attributable and the created count is accurate. Any failure aborts
// the rest of the batch. On full success the closet is refreshed once.
// The created count is returned even on error.
func (c *Controller) Upload(ctx context.Context, req UploadRequest) (int, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(req.Files) == 0 {
		return 0, errors.New("a name and at least one image file are required")
	}

	var pngs []File
	for _, f := range req.Files {
		if isPNG(f.Data) {
			pngs = append(pngs, f)
		}
	}
	if len(pngs) == 0 {
		return 0, errors.New("only PNG images are supported")
	}

	created := 0
	for i, f := range pngs {
		encoded := encodeImage(f.Data)

		category := req.Category.Value
		fit := req.Fit.Value
		var tags []string
		if req.Category.Auto || req.Fit.Auto {
			analysis, err := c.client.AnalyzeImage(ctx, encoded)
			if err != nil {
				return created, err
			}
			if req.Category.Auto {
				category = analysis.SuggestedCategory
				if category == "" {
					category = fallbackCategory
				}
			}
			if req.Fit.Auto {
				fit = analysis.SuggestedFit
				if fit == "" {
					fit = fallbackFit
				}
			}
			tags = analysis.SuggestedStyleTags
		}

		itemName := name
		if len(pngs) > 1 {
			itemName = fmt.Sprintf("%s %d", name, i+1)
		}

		input := &client.ItemCreate{
			Name:        itemName,
			Category:    category,
			Occasion:    req.Occasion,
			ImageBase64: encoded,
			Fit:         fit,
			Warmth:      req.Warmth,
			StyleTags:   tags,
		}
		if _, err := c.client.CreateItem(ctx, input); err != nil {
			return created, err
		}
		created++
	}

	if err := c.Refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Delete removes one item by id, then refreshes the full closet
// regardless of the delete response shape so local state cannot drift.
func (c *Controller) Delete(ctx context.Context, id int) error {
	if err := c.client.DeleteItem(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// ReadFiles loads upload candidates from disk for the CLI and TUI surfaces.
func ReadFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		files = append(files, File{Name: filepath.Base(path), Data: data})
	}
	return files, nil
}

// isPNG sniffs the content rather than trusting the file extension.
func isPNG(data []byte) bool {
	return http.DetectContentType(data) == "image/png"
}

// encodeImage produces the data-URL form the backend stores and renders.
func encodeImage(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
