// Package views renders the panes of the branch browser: the branch list,
// the details of the highlighted branch, and the diff of a changed file.
// Panes are plain render structs filled by the app model on every frame;
// they hold no state of their own except the diff viewport.
package views

import (
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/git"
	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// panel draws a bordered box of exactly w×h cells with a title row.
func panel(styles ui.Styles, focused bool, title, body string, w, h int) string {
	if w < 4 || h < 3 {
		return ""
	}
	innerW, innerH := w-2, h-2

	style := styles.Panel
	if focused {
		style = styles.PanelFocused
		title += " " + lipgloss.NewStyle().Foreground(styles.Theme.Primary).Faint(true).Render("●")
	}

	content := " " + title
	if innerH > 1 {
		content += "\n" + body
	}
	return style.
		Width(innerW).Height(innerH).
		MaxWidth(w).MaxHeight(h).
		Render(clipLines(content, innerW, innerH))
}

// clipLines drops rows beyond h and cuts rows wider than w.
func clipLines(s string, w, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	cut := lipgloss.NewStyle().MaxWidth(w)
	for i, l := range lines {
		if lipgloss.Width(l) > w {
			lines[i] = cut.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// placeholder centres a muted message in a w×h area.
func placeholder(styles ui.Styles, msg string, w, h int) string {
	return lipgloss.NewStyle().
		Foreground(styles.Theme.TextSubtle).
		Width(w).Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}

// SyncStyle returns the badge style for a sync status.
func SyncStyle(styles ui.Styles, s git.SyncStatus) lipgloss.Style {
	switch s {
	case git.SyncSynced:
		return styles.SyncSynced
	case git.SyncAhead:
		return styles.SyncAhead
	case git.SyncBehind:
		return styles.SyncBehind
	case git.SyncDiverged:
		return styles.SyncDiverged
	}
	return styles.Muted
}

// ChangeStyle returns the style for a file change type.
func ChangeStyle(styles ui.Styles, c git.ChangeType) lipgloss.Style {
	switch c {
	case git.ChangeAdded, git.ChangeUntracked, git.ChangeCopied:
		return styles.FileAdded
	case git.ChangeDeleted:
		return styles.FileDeleted
	case git.ChangeRenamed:
		return styles.FileRenamed
	case git.ChangeUnmerged:
		return styles.FileConflict
	}
	return styles.FileModified
}
