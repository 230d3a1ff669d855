// ABOUTME: Upload form as a bubbletea model built on huh
// ABOUTME: Collects item fields plus image paths and emits a submit message

package uploadform

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/wardrobeapp/wardrobe-cli/internal/closet"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/styles"
)

// SubmitMsg carries the completed form. Paths are raw; the app reads and
// validates the files when it runs the upload.
type SubmitMsg struct {
	Name     string
	Category closet.Selection
	Occasion string
	Fit      closet.Selection
	Warmth   int
	Paths    []string
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

// Form is the upload screen form.
type Form struct {
	form *huh.Form

	name     string
	category string
	occasion string
	fit      string
	warmth   string
	paths    string
	width    int
}

var categoryOptions = []huh.Option[string]{
	huh.NewOption("Detect automatically", "auto"),
	huh.NewOption("Top", "top"),
	huh.NewOption("Bottom", "bottom"),
	huh.NewOption("Outerwear", "outer"),
	huh.NewOption("Shoes", "shoes"),
	huh.NewOption("Accessory", "accessory"),
}

var occasionOptions = []huh.Option[string]{
	huh.NewOption("Daily", "daily"),
	huh.NewOption("Work", "work"),
	huh.NewOption("Date", "date"),
	huh.NewOption("Sport", "sport"),
	huh.NewOption("Any", "all"),
}

var fitOptions = []huh.Option[string]{
	huh.NewOption("Detect automatically", "auto"),
	huh.NewOption("Slim", "slim"),
	huh.NewOption("Regular", "regular"),
	huh.NewOption("Loose", "loose"),
}

var warmthOptions = []huh.Option[string]{
	huh.NewOption("1 (lightest)", "1"),
	huh.NewOption("2", "2"),
	huh.NewOption("3", "3"),
	huh.NewOption("4", "4"),
	huh.NewOption("5 (warmest)", "5"),
}

// New creates a fresh upload form.
func New(st styles.Set) *Form {
	f := &Form{category: "auto", occasion: "daily", fit: "auto", warmth: "2"}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. Linen shirt").
				CharLimit(100).
				Value(&f.name),
			huh.NewInput().
				Title("PNG files").
				Description("Comma-separated paths").
				Placeholder("~/photos/shirt.png, ~/photos/shirt-2.png").
				Value(&f.paths),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&f.category),
			huh.NewSelect[string]().
				Title("Occasion").
				Options(occasionOptions...).
				Value(&f.occasion),
			huh.NewSelect[string]().
				Title("Fit").
				Options(fitOptions...).
				Value(&f.fit),
			huh.NewSelect[string]().
				Title("Warmth").
				Options(warmthOptions...).
				Value(&f.warmth),
		).Title("Upload clothes"),
	).WithTheme(huh.ThemeBase())

	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f, f.submit()
	}
	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	warmth, err := strconv.Atoi(f.warmth)
	if err != nil {
		warmth = 2
	}
	msg := SubmitMsg{
		Name:     f.name,
		Category: closet.ParseSelection(f.category),
		Occasion: f.occasion,
		Fit:      closet.ParseSelection(f.fit),
		Warmth:   warmth,
		Paths:    SplitPaths(f.paths),
	}
	return func() tea.Msg { return msg }
}

// SplitPaths parses the comma-separated path field.
func SplitPaths(raw string) []string {
	var paths []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

// View implements tea.Model
func (f *Form) View() string {
	return f.form.View()
}
