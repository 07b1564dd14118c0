package components

import (
	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogKind specifies the type of dialog.
type DialogKind int

const (
	DialogConfirm DialogKind = iota
	DialogInput
)

// DialogResult is sent when the dialog is dismissed.
type DialogResult struct {
	Confirmed bool
	Value     string
	// Tag identifies which dialog this was; Subject is the branch it targets.
	Tag     string
	Subject string
}

// Dialog is a modal confirmation or input dialog.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Tag     string
	Subject string
	input   textinput.Model
	focused int // 0 = yes/input, 1 = no
	styles  ui.Styles
	visible bool
}

// NewConfirmDialog creates a Yes/No confirmation dialog. "No" is focused
// first so a stray enter never confirms a destructive action.
func NewConfirmDialog(styles ui.Styles, title, message, tag, subject string) Dialog {
	return Dialog{
		Kind:    DialogConfirm,
		Title:   title,
		Message: message,
		Tag:     tag,
		Subject: subject,
		focused: 1,
		styles:  styles,
		visible: true,
	}
}

// NewInputDialog creates a text input dialog pre-filled with value.
func NewInputDialog(styles ui.Styles, title, placeholder, value, tag, subject string) Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 48
	return Dialog{
		Kind:    DialogInput,
		Title:   title,
		Tag:     tag,
		Subject: subject,
		input:   ti,
		styles:  styles,
		visible: true,
	}
}

// Visible returns whether the dialog is showing.
func (d Dialog) Visible() bool { return d.visible }

// Value returns the current input text.
func (d Dialog) Value() string { return d.input.Value() }

// Update handles key events for the dialog.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			d.visible = false
			return d, d.result(false)

		case "enter":
			d.visible = false
			if d.Kind == DialogInput {
				return d, d.result(true)
			}
			return d, d.result(d.focused == 0)

		case "y", "Y":
			if d.Kind == DialogConfirm {
				d.visible = false
				return d, d.result(true)
			}
		case "n", "N":
			if d.Kind == DialogConfirm {
				d.visible = false
				return d, d.result(false)
			}

		case "tab", "left", "right", "h", "l":
			if d.Kind == DialogConfirm {
				d.focused = 1 - d.focused
				return d, nil
			}
		}
	}

	if d.Kind == DialogInput {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d Dialog) result(confirmed bool) tea.Cmd {
	res := DialogResult{Confirmed: confirmed, Tag: d.Tag, Subject: d.Subject}
	if d.Kind == DialogInput {
		res.Value = d.input.Value()
	}
	return func() tea.Msg { return res }
}

// View renders the dialog.
func (d Dialog) View() string {
	if !d.visible {
		return ""
	}
	t := d.styles.Theme

	title := lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(d.Title)
	var content string

	if d.Kind == DialogConfirm {
		message := lipgloss.NewStyle().Foreground(t.TextMuted).Render(d.Message)
		yes := "  Yes  "
		no := "  No   "
		activeBtn := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Bold(true)
		inactiveBtn := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		if d.focused == 0 {
			yes = activeBtn.Render(yes)
			no = inactiveBtn.Render(no)
		} else {
			yes = inactiveBtn.Render(yes)
			no = activeBtn.Render(no)
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no)
		content = title + "\n\n" + message + "\n\n" + buttons
	} else {
		hint := lipgloss.NewStyle().Foreground(t.TextSubtle).Render("enter confirm · esc cancel")
		content = title + "\n\n" + d.input.View() + "\n\n" + hint
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(56).
		Render(content)
}
