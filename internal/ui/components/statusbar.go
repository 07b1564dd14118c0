package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Branch   string // empty when HEAD is detached
	Ahead    int
	Behind   int
	Default  string
	Visible  int
	Total    int
	Filter   string
	Busy     string // spinner frame plus activity label, empty when idle
	Message  string // transient info/error message
	IsError  bool
	RepoRoot string
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars.
//
// Wide (>= 60):   main │ ↑2 ↓1 │ 3/12 /feat             ⣾ deleting…  twig
// Narrow (< 40):   main │ 3/12
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	branch := data.Branch
	branchStyle := lipgloss.NewStyle().Foreground(t.BranchHead).Bold(true)
	if branch == "" {
		branch = "(detached)"
		branchStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	}
	left := " " + branchStyle.Render("⎇ "+branch)

	if width >= 40 && (data.Ahead > 0 || data.Behind > 0) {
		var parts []string
		if data.Ahead > 0 {
			parts = append(parts, fmt.Sprintf("↑%d", data.Ahead))
		}
		if data.Behind > 0 {
			parts = append(parts, fmt.Sprintf("↓%d", data.Behind))
		}
		left += sep + lipgloss.NewStyle().Foreground(t.Warning).Render(strings.Join(parts, " "))
	}

	count := fmt.Sprintf("%d branches", data.Total)
	if data.Filter != "" {
		count = fmt.Sprintf("%d/%d", data.Visible, data.Total)
	}
	left += sep + lipgloss.NewStyle().Foreground(t.TextMuted).Render(count)
	if data.Filter != "" {
		left += " " + lipgloss.NewStyle().Foreground(t.Accent).Render("/"+data.Filter)
	}

	if width >= 60 && data.Default != "" {
		left += sep + lipgloss.NewStyle().Foreground(t.TextSubtle).Render("base "+data.Default)
	}

	// ── Right section ────────────────────────────────────────────

	msgColor := t.Info
	if data.IsError {
		msgColor = t.Error
	}

	var right string
	switch {
	case data.Busy != "":
		right = lipgloss.NewStyle().Foreground(t.Info).Render(data.Busy) + " "
	case data.Message != "":
		right = lipgloss.NewStyle().Foreground(msgColor).Render(data.Message) + " "
	case width >= 60 && data.RepoRoot != "":
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(filepath.Base(data.RepoRoot)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	inner := width - 2 // StatusBar padding
	leftW := lipgloss.Width(left)
	gap := inner - leftW - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
		// Errors matter more than the left-hand context: shorten, don't drop.
		if avail := inner - leftW - 2; avail > 4 && data.Busy == "" && data.Message != "" {
			right = lipgloss.NewStyle().Foreground(msgColor).Render(ui.Truncate(data.Message, avail)) + " "
		} else {
			right = ""
		}
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).MaxHeight(1).Render(content)
}
