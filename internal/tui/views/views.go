// ABOUTME: Pure renderers from client state to terminal content
// ABOUTME: No network calls and no business logic live here

package views

import (
	"fmt"
	"strings"

	"github.com/wardrobeapp/wardrobe-cli/internal/client"
	"github.com/wardrobeapp/wardrobe-cli/internal/outfit"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/icons"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/styles"
)

var categoryLabels = map[string]string{
	"top":       "Top",
	"bottom":    "Bottom",
	"outer":     "Outerwear",
	"shoes":     "Shoes",
	"accessory": "Accessory",
}

var occasionLabels = map[string]string{
	"daily": "Daily",
	"work":  "Work",
	"date":  "Date",
	"sport": "Sport",
	"all":   "Any",
}

var fitLabels = map[string]string{
	"slim":    "Slim",
	"regular": "Regular",
	"loose":   "Loose",
}

// CategoryLabel returns the display label for a category value.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// OccasionLabel returns the display label for an occasion value.
func OccasionLabel(occasion string) string {
	if label, ok := occasionLabels[occasion]; ok {
		return label
	}
	return occasion
}

// FitLabel returns the display label for a fit value.
func FitLabel(fit string) string {
	if label, ok := fitLabels[fit]; ok {
		return label
	}
	return fit
}

// ItemCard renders one item. The same card serves the closet and outfit
// views: slotLabel prefixes the title in outfit slots, and the delete
// affordance is shown only in the closet.
func ItemCard(st styles.Set, item client.Item, slotLabel string, showDelete, selected bool) string {
	var b strings.Builder

	title := item.Name
	if slotLabel != "" {
		title = slotLabel + " · " + item.Name
	}
	cursor := "  "
	titleStyle := st.Value
	if selected {
		cursor = "> "
		titleStyle = st.Selected
	}
	b.WriteString(cursor + titleStyle.Render(title) + "\n")

	line := fmt.Sprintf("%s | %s | %s",
		CategoryLabel(item.Category), OccasionLabel(item.Occasion), FitLabel(item.Fit))
	b.WriteString("    " + st.Subtitle.Render(line) + "\n")

	details := fmt.Sprintf("%s %s  %s warmth %d",
		styles.Swatch(item.ColorHex), item.ColorHex, icons.Warmth.String(), item.Warmth)
	if len(item.StyleTags) > 0 {
		details += "  " + icons.Tag.String() + " " + strings.Join(item.StyleTags, ", ")
	}
	b.WriteString("    " + st.Help.Render(details) + "\n")

	if showDelete && selected {
		b.WriteString("    " + st.Help.Render(icons.Delete.String()+" d to delete") + "\n")
	}

	return b.String()
}

// Closet renders the full item collection with the cursor row highlighted.
func Closet(st styles.Set, items []client.Item, cursor int, message string) string {
	var b strings.Builder

	b.WriteString(st.Title.Render(icons.Closet.String() + " Closet"))
	b.WriteString("\n")
	b.WriteString(st.Subtitle.Render(fmt.Sprintf("%d item(s)", len(items))))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(st.Help.Render("No clothes yet. Press u to upload a few."))
		b.WriteString("\n")
	}
	for i, item := range items {
		b.WriteString(ItemCard(st, item, "", true, i == cursor))
	}

	if message != "" {
		b.WriteString("\n" + st.Error.Render(message))
	}

	return b.String()
}

// Outfit renders a recommendation. An empty or absent slot list renders
// the explicit guidance state instead of an empty grid.
func Outfit(st styles.Set, rec *client.Recommendation, message string) string {
	var b strings.Builder

	b.WriteString(st.Title.Render(icons.Outfit.String() + " Outfit"))
	b.WriteString("\n")

	if rec == nil || len(rec.Slots) == 0 {
		b.WriteString(st.Help.Render(outfit.EmptyMessage))
		if message != "" {
			b.WriteString("\n\n" + st.Error.Render(message))
		}
		return b.String()
	}

	b.WriteString(st.Subtitle.Render("For: " + OccasionLabel(rec.Occasion)))
	b.WriteString("\n\n")
	for _, slot := range rec.Slots {
		b.WriteString(ItemCard(st, slot.Item, CategoryLabel(slot.Slot), false, false))
	}

	if reasons := outfit.ReasonText(rec); reasons != "" {
		b.WriteString("\n" + st.Help.Render(reasons))
	}
	if message != "" {
		b.WriteString("\n" + st.Error.Render(message))
	}

	return b.String()
}

// SocialStatus renders the provider availability line shown on the auth
// screen, in the same degraded form the web client used.
func SocialStatus(st styles.Set, providers map[string]client.Provider) string {
	if len(providers) == 0 {
		return st.Help.Render("Social login unavailable.")
	}

	var parts []string
	for _, name := range []string{"wechat", "qq"} {
		info, ok := providers[name]
		if !ok {
			continue
		}
		display := info.DisplayName
		if display == "" {
			display = name
		}
		state := "not configured"
		icon := icons.Warning.String()
		if info.Configured {
			state = "configured"
			icon = icons.CheckOK.String()
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", icon, display, state))
	}
	if len(parts) == 0 {
		return st.Help.Render("Social login unavailable.")
	}
	return st.Help.Render(strings.Join(parts, "   "))
}
