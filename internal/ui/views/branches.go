package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/git"
	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/Akashdeep-Patra/twig/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// BranchPane renders the branch list with its filter line.
type BranchPane struct {
	Branches    []git.Branch // visible branches, in list order
	Total       int
	Highlighted int // -1 when nothing is highlighted
	Focused     bool
	Loading     bool
	// FilterLine is the rendered filter input; empty hides the row.
	FilterLine string
	Width      int
	Height     int
}

// Render draws the pane at exactly Width×Height cells.
func (p BranchPane) Render(styles ui.Styles) string {
	innerW, innerH := p.Width-2, p.Height-3 // border + title row
	if p.FilterLine != "" {
		innerH--
	}
	if innerW < 1 || innerH < 1 {
		return panel(styles, p.Focused, "Branches", "", p.Width, p.Height)
	}

	title := styles.PanelTitle.Render("Branches") + " " +
		styles.Muted.Render(fmt.Sprintf("(%d)", len(p.Branches)))
	if len(p.Branches) != p.Total {
		title = styles.PanelTitle.Render("Branches") + " " +
			styles.Muted.Render(fmt.Sprintf("(%d of %d)", len(p.Branches), p.Total))
	}

	var body string
	switch {
	case p.Loading && p.Total == 0:
		body = placeholder(styles, "Loading branches…", innerW, innerH)
	case p.Total == 0:
		body = placeholder(styles, "No branches yet", innerW, innerH)
	case len(p.Branches) == 0:
		body = placeholder(styles, "No branches match the filter", innerW, innerH)
	default:
		body = p.renderList(styles, innerW, innerH)
	}
	if p.FilterLine != "" {
		body = " " + p.FilterLine + "\n" + body
	}
	return panel(styles, p.Focused, title, body, p.Width, p.Height)
}

func (p BranchPane) renderList(styles ui.Styles, w, h int) string {
	start, end := ui.ScrollWindow(max(p.Highlighted, 0), len(p.Branches), h)
	bar := components.RenderScrollbar(styles, h, len(p.Branches), start)
	lineW := w
	if bar != "" {
		lineW--
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, renderBranchLine(styles, p.Branches[i], i == p.Highlighted, lineW))
	}
	list := strings.Join(rows, "\n")
	if bar == "" {
		return list
	}
	list = lipgloss.NewStyle().Width(lineW).Height(h).Render(list)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, bar)
}

// renderBranchLine renders one row:
//
//	▸ * main [=]   a1b2c3d  Initial commit
func renderBranchLine(styles ui.Styles, br git.Branch, selected bool, width int) string {
	marker := "  "
	nameStyle := styles.BranchName
	switch {
	case br.IsCurrent:
		marker = "* "
		nameStyle = styles.BranchHead
	case br.IsRemote():
		nameStyle = styles.RemoteName
	}

	cursor := "  "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(styles.Theme.Primary).Bold(true).Render("▸ ")
	}

	name := ui.Truncate(br.Name, max(8, width/2))
	line := cursor + nameStyle.Render(marker+name)
	used := 4 + lipgloss.Width(marker+name)

	if g := br.Sync.Glyph(); g != "" {
		badge := " [" + g + "]"
		line += SyncStyle(styles, br.Sync).Render(badge)
		used += lipgloss.Width(badge)
	}
	if br.UpstreamGone {
		line += styles.Muted.Render(" [gone]")
		used += 7
	}
	if br.Hash != "" && width-used > 10 {
		line += "  " + styles.CommitHash.Render(br.Hash)
		used += 2 + len(br.Hash)
	}
	if br.Subject != "" && width-used > 6 {
		line += "  " + styles.Muted.Render(ui.Truncate(br.Subject, width-used-2))
	}

	if selected {
		return styles.ListSelected.Width(width).Render(line)
	}
	return line
}
