// Package ui provides shared TUI styling, layout helpers, and theme definitions.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PlaceCentre centres content both horizontally and vertically within the given dimensions.
func PlaceCentre(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Truncate truncates s to maxLen runes, appending "…" if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// PadRight pads s with spaces to the given width.
func PadRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// RenderKeyValue renders a "key value" hint pair with styles.
func RenderKeyValue(styles Styles, key, value string) string {
	return styles.KeyBind.Render(key) + " " + styles.KeyDesc.Render(value)
}

// ScrollWindow returns the [start, end) range of a list of total rows that
// fits in height rows while keeping cursor visible and roughly centred.
func ScrollWindow(cursor, total, height int) (start, end int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start = cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

// SplitWidth divides width into a left pane of roughly ratio and the rest,
// keeping the left pane at least minLeft columns when possible.
func SplitWidth(width int, ratio float64, minLeft int) (left, right int) {
	left = int(float64(width) * ratio)
	if left < minLeft {
		left = minLeft
	}
	if left > width {
		left = width
	}
	return left, width - left
}
