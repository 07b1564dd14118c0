package components

import (
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpSection is a titled group of key bindings for the help overlay.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// RenderHelp renders a full-screen help overlay. Disabled bindings are skipped.
func RenderHelp(styles ui.Styles, title string, sections []HelpSection, width, height int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(min(70, width-4) - 6).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(12).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	for _, section := range sections {
		var rows []string
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			rows = append(rows, "  "+keyStyle.Render(h.Key)+"  "+descStyle.Render(h.Desc))
		}
		if len(rows) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section.Title) + "\n")
		body.WriteString(strings.Join(rows, "\n") + "\n\n")
	}

	overlay := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(min(70, width-4)).
		MaxHeight(height - 2).
		Render(strings.TrimRight(body.String(), "\n"))

	return ui.PlaceCentre(width, height, overlay)
}

// RenderHintBar renders a one-line "key desc · key desc" bar of short help.
func RenderHintBar(styles ui.Styles, bindings []key.Binding, width int) string {
	sep := lipgloss.NewStyle().Foreground(styles.Theme.Border).Render(" · ")
	var parts []string
	used := 1
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		part := ui.RenderKeyValue(styles, h.Key, h.Desc)
		w := lipgloss.Width(part) + lipgloss.Width(sep)
		if used+w > width {
			break
		}
		parts = append(parts, part)
		used += w
	}
	return " " + strings.Join(parts, sep)
}
