package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/Akashdeep-Patra/twig/internal/ui/components"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DiffPane shows the diff of one changed file in a scrollable viewport.
type DiffPane struct {
	vp      viewport.Model
	width   int
	height  int
	path    string
	raw     string
	loading bool
}

// NewDiffPane creates an empty diff pane.
func NewDiffPane() DiffPane {
	return DiffPane{vp: viewport.New(0, 0)}
}

// SetSize sets the outer size of the pane, borders included.
func (d *DiffPane) SetSize(w, h int) {
	d.width = w
	d.height = h
	d.vp.Width = max(1, w-2)
	d.vp.Height = max(1, h-3)
}

// Path returns the file whose diff is shown, or "" when empty.
func (d DiffPane) Path() string { return d.path }

// SetLoading marks the pane as waiting for the diff of path.
func (d *DiffPane) SetLoading(path string) {
	d.path = path
	d.loading = true
}

// SetDiff replaces the content and scrolls to the top.
func (d *DiffPane) SetDiff(styles ui.Styles, path, diff string) {
	d.path = path
	d.raw = diff
	d.loading = false
	d.vp.SetContent(components.RenderDiff(styles, diff))
	d.vp.GotoTop()
}

// Clear empties the pane.
func (d *DiffPane) Clear() {
	d.path = ""
	d.raw = ""
	d.loading = false
	d.vp.SetContent("")
	d.vp.GotoTop()
}

// Update forwards scrolling keys and mouse wheel events to the viewport.
func (d DiffPane) Update(msg tea.Msg) (DiffPane, tea.Cmd) {
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

// GotoTop scrolls to the first line.
func (d *DiffPane) GotoTop() { d.vp.GotoTop() }

// GotoBottom scrolls to the last line.
func (d *DiffPane) GotoBottom() { d.vp.GotoBottom() }

// LineCount returns the number of rendered diff lines.
func (d DiffPane) LineCount() int {
	if d.raw == "" {
		return 0
	}
	return strings.Count(strings.TrimRight(d.raw, "\n"), "\n") + 1
}

// Render draws the pane at its configured size.
func (d DiffPane) Render(styles ui.Styles, focused bool) string {
	innerW, innerH := d.width-2, d.height-3

	title := styles.PanelTitle.Render("Diff")
	if d.path != "" {
		title += " " + styles.Muted.Render(filepath.ToSlash(d.path))
	}
	if d.vp.TotalLineCount() > d.vp.Height && d.path != "" && !d.loading {
		title += " " + lipgloss.NewStyle().Foreground(styles.Theme.TextSubtle).
			Render(fmt.Sprintf("%.0f%%", d.vp.ScrollPercent()*100))
	}

	var body string
	switch {
	case innerW < 1 || innerH < 1:
	case d.path == "":
		body = placeholder(styles, "Select a file to see its diff", innerW, innerH)
	case d.loading:
		body = placeholder(styles, "Loading diff…", innerW, innerH)
	default:
		body = d.vp.View()
	}
	return panel(styles, focused, title, body, d.width, d.height)
}
