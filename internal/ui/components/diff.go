package components

import (
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/ui"
)

// RenderDiff applies colouring to a unified diff string.
func RenderDiff(styles ui.Styles, diff string) string {
	if strings.TrimSpace(diff) == "" {
		return styles.Muted.Render("No differences")
	}
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"),
			strings.HasPrefix(line, "diff "):
			out[i] = styles.DiffHeader.Render(line)
		case strings.HasPrefix(line, "@@"):
			out[i] = styles.DiffHunkHeader.Render(line)
		case strings.HasPrefix(line, "+"):
			out[i] = styles.DiffAdded.Render(line)
		case strings.HasPrefix(line, "-"):
			out[i] = styles.DiffRemoved.Render(line)
		case strings.HasPrefix(line, "index "), strings.HasPrefix(line, "similarity "),
			strings.HasPrefix(line, "rename "), strings.HasPrefix(line, "new file"),
			strings.HasPrefix(line, "deleted file"), strings.HasPrefix(line, "Binary files"):
			out[i] = styles.Muted.Render(line)
		default:
			out[i] = styles.DiffContext.Render(line)
		}
	}
	return strings.Join(out, "\n")
}
