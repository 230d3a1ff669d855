// ABOUTME: Shared lipgloss styles and the selectable color themes
// ABOUTME: Theme names and accents mirror the wardrobe web client palettes

package styles

import "github.com/charmbracelet/lipgloss"

// DefaultTheme is applied when no preference is stored.
const DefaultTheme = "atelier"

// Theme is one fixed palette. The set of names is closed; unknown names
// resolve to the default.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Surface   lipgloss.Color
}

var themes = []Theme{
	{
		Name:      "atelier",
		Primary:   lipgloss.Color("#1F6A53"),
		Secondary: lipgloss.Color("#7FB89F"),
		Danger:    lipgloss.Color("#8F3535"),
		Muted:     lipgloss.Color("#596A66"),
		Text:      lipgloss.Color("#F4F1E8"),
		Surface:   lipgloss.Color("#2C3B37"),
	},
	{
		Name:      "metro",
		Primary:   lipgloss.Color("#1F4D7A"),
		Secondary: lipgloss.Color("#7FA8C9"),
		Danger:    lipgloss.Color("#A1454F"),
		Muted:     lipgloss.Color("#5B6B7A"),
		Text:      lipgloss.Color("#EEF2F6"),
		Surface:   lipgloss.Color("#2A3642"),
	},
	{
		Name:      "sunset",
		Primary:   lipgloss.Color("#A1454F"),
		Secondary: lipgloss.Color("#D99A7E"),
		Danger:    lipgloss.Color("#7A2430"),
		Muted:     lipgloss.Color("#7A5B58"),
		Text:      lipgloss.Color("#F8EFE9"),
		Surface:   lipgloss.Color("#3D2E2C"),
	},
}

// Lookup resolves a theme name, falling back to the default.
func Lookup(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// Names returns all theme names in display order.
func Names() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// Next cycles to the following theme name.
func Next(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// Set bundles the derived lipgloss styles for one theme.
type Set struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style

	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
}

// NewSet derives the style set for a theme.
func NewSet(t Theme) Set {
	return Set{
		Theme: t,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Muted).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(t.Danger).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.Muted).
			MarginTop(1),

		Key: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		Value: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(1, 2),

		ActivePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),
	}
}

// Swatch renders a small colored block for an item's dominant color.
func Swatch(hex string) string {
	if hex == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}
