package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/git"
	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// DetailsPane shows the commits of the highlighted branch and the files it
// changed since forking from the base branch.
type DetailsPane struct {
	Branch     string
	Base       string
	Commits    []git.Commit
	Files      []git.FileChange
	FileCursor int // -1 when no file is highlighted
	Focused    bool
	Loading    bool
	Err        string
	Width      int
	Height     int
}

// Render draws the pane at exactly Width×Height cells.
func (p DetailsPane) Render(styles ui.Styles) string {
	innerW, innerH := p.Width-2, p.Height-3
	if innerW < 1 || innerH < 1 {
		return panel(styles, p.Focused, "Details", "", p.Width, p.Height)
	}

	title := styles.PanelTitle.Render("Details")
	if p.Branch != "" {
		title += " " + styles.BranchName.Render(p.Branch)
	}

	var body string
	switch {
	case p.Branch == "":
		body = placeholder(styles, "Select a branch", innerW, innerH)
	case p.Err != "":
		body = lipgloss.NewStyle().Foreground(styles.Theme.Error).Width(innerW).Render(p.Err)
	case p.Loading && len(p.Commits) == 0 && len(p.Files) == 0:
		body = placeholder(styles, "Loading…", innerW, innerH)
	default:
		commitH := max(1, (innerH-2)/2)
		fileH := max(1, innerH-2-commitH)
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.Subtitle.Render(fmt.Sprintf("Commits (%d)", len(p.Commits))),
			p.renderCommits(styles, innerW, commitH),
			styles.Subtitle.Render(p.filesHeader()),
			p.renderFiles(styles, innerW, fileH),
		)
	}
	return panel(styles, p.Focused, title, body, p.Width, p.Height)
}

func (p DetailsPane) filesHeader() string {
	if p.Base == "" || p.Base == p.Branch {
		return fmt.Sprintf("Files (%d)", len(p.Files))
	}
	return fmt.Sprintf("Files vs %s (%d)", p.Base, len(p.Files))
}

func (p DetailsPane) renderCommits(styles ui.Styles, w, h int) string {
	if len(p.Commits) == 0 {
		return styles.ListDimmed.Height(h).Render("  no commits")
	}
	n := min(h, len(p.Commits))
	rows := make([]string, n)
	for i := 0; i < n; i++ {
		rows[i] = renderCommitLine(styles, p.Commits[i], w)
	}
	return lipgloss.NewStyle().Height(h).Render(strings.Join(rows, "\n"))
}

// renderCommitLine renders "  a1b2c3d Subject      alice, 2 days ago".
func renderCommitLine(styles ui.Styles, c git.Commit, width int) string {
	meta := c.Author
	if c.HasDate() {
		meta += ", " + humanize.Time(c.Date)
	}
	hash := styles.CommitHash.Render(c.ShortHash)
	subjectW := width - 3 - len(c.ShortHash)
	if meta != "" && subjectW-lipgloss.Width(meta)-2 > 12 {
		subjectW -= lipgloss.Width(meta) + 2
	} else {
		meta = ""
	}
	line := "  " + hash + " " + styles.CommitMsg.Render(ui.PadRight(ui.Truncate(c.Subject, subjectW), subjectW))
	if meta != "" {
		line += "  " + styles.Date.Render(meta)
	}
	return line
}

func (p DetailsPane) renderFiles(styles ui.Styles, w, h int) string {
	if len(p.Files) == 0 {
		return styles.ListDimmed.Height(h).Render("  no changes")
	}
	start, end := ui.ScrollWindow(max(p.FileCursor, 0), len(p.Files), h)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, renderFileLine(styles, p.Files[i], i == p.FileCursor && p.Focused, w))
	}
	return lipgloss.NewStyle().Height(h).Render(strings.Join(rows, "\n"))
}

// renderFileLine renders "▸ M path/to/file.go +3-1".
func renderFileLine(styles ui.Styles, f git.FileChange, selected bool, width int) string {
	stats := ""
	if f.HasStats {
		stats = fmt.Sprintf(" +%d-%d", f.Additions, f.Deletions)
	}
	path := f.Path
	if f.OrigPath != "" {
		path = f.OrigPath + " → " + f.Path
	}
	path = ui.Truncate(path, width-5-len(stats))

	cursor := "  "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(styles.Theme.Primary).Bold(true).Render("▸ ")
	}
	line := cursor + ChangeStyle(styles, f.Type).Bold(true).Render(f.Type.Code()) + " " +
		styles.Body.Render(path)
	if stats != "" {
		line += styles.DiffAdded.Render(fmt.Sprintf(" +%d", f.Additions)) +
			styles.DiffRemoved.Render(fmt.Sprintf("-%d", f.Deletions))
	}
	if selected {
		return styles.ListSelected.Width(width).Render(line)
	}
	return line
}
