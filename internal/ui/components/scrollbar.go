package components

import (
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a vertical scrollbar track of the given height for
// a list of total rows whose first visible row is offset. The thumb size is
// proportional to the visible portion.
//
// Returns an empty string if all rows fit.
func RenderScrollbar(styles ui.Styles, height, total, offset int) string {
	if total <= height || height < 1 {
		return ""
	}

	t := styles.Theme

	thumbSize := max(1, height*height/total)
	maxOffset := height - thumbSize
	thumbStart := 0
	if scrollable := total - height; scrollable > 0 {
		thumbStart = offset * maxOffset / scrollable
	}
	thumbStart = min(max(thumbStart, 0), maxOffset)

	thumb := lipgloss.NewStyle().Foreground(t.Primary).Render("┃")
	track := lipgloss.NewStyle().Foreground(t.Border).Render("│")

	rows := make([]string, height)
	for i := range rows {
		if i >= thumbStart && i < thumbStart+thumbSize {
			rows[i] = thumb
		} else {
			rows[i] = track
		}
	}
	return strings.Join(rows, "\n")
}
