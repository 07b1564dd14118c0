// Package app wires the branch browser together: it owns the Bubble Tea
// model, routes keys to the focused pane, and runs every git call as a
// tea.Cmd so the UI never blocks on the repository.
package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/twig/internal/branchlist"
	"github.com/Akashdeep-Patra/twig/internal/config"
	"github.com/Akashdeep-Patra/twig/internal/git"
	"github.com/Akashdeep-Patra/twig/internal/ui"
	"github.com/Akashdeep-Patra/twig/internal/ui/components"
	"github.com/Akashdeep-Patra/twig/internal/ui/views"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusArea identifies the pane receiving navigation keys.
type focusArea int

const (
	focusBranches focusArea = iota
	focusFiles
	focusDiff
)

// Dialog tags.
const (
	tagCreate      = "create"
	tagDelete      = "delete"
	tagForceDelete = "force-delete"
	tagRename      = "rename"
)

const (
	infoTTL  = 3 * time.Second
	errorTTL = 8 * time.Second
)

// Model is the top-level Bubble Tea model.
type Model struct {
	svc    git.Service
	cfg    *config.Config
	ctx    context.Context
	cancel context.CancelFunc
	styles ui.Styles
	keys   KeyMap

	width    int
	height   int
	leftW    int
	rightW   int
	detailsH int
	focus    focusArea
	showHelp bool

	list          *branchlist.Controller
	base          string
	loading       bool
	pendingSelect string

	filter    textinput.Model
	filtering bool

	loadSeq   int
	detailSeq int
	details   views.DetailsPane
	diff      views.DiffPane

	dialog *components.Dialog

	// busy names the mutation in flight; empty when idle. While set, every
	// mutating key binding is disabled.
	busy    string
	spinner spinner.Model

	statusMsg string
	statusErr bool
	statusID  int
}

// New creates the application model. Cancelling ctx aborts in-flight git
// calls; their results are discarded.
func New(ctx context.Context, svc git.Service, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter branches"
	ti.CharLimit = 100

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Spinner

	return Model{
		svc:     svc,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		styles:  styles,
		keys:    NewKeyMap(cfg.Keys),
		list:    branchlist.New(),
		loading: true,
		filter:  ti,
		diff:    views.NewDiffPane(),
		spinner: sp,
		details: views.DetailsPane{FileCursor: -1},
	}
}

// Init loads the branch list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBranches(m.loadSeq), m.spinner.Tick)
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if m.busy == "" && !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case branchesLoadedMsg:
		return m.onBranches(msg)

	case detailsTickMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		b, ok := m.list.SelectedBranch()
		if !ok {
			return m, nil
		}
		return m, m.loadDetails(m.detailSeq, b.Name, m.base, m.cfg.CommitLimit)

	case detailsLoadedMsg:
		return m.onDetails(msg)

	case diffLoadedMsg:
		if msg.branch != m.details.Branch || msg.path != m.diff.Path() {
			return m, nil
		}
		if msg.err != nil {
			m.diff.Clear()
			cmd := m.setStatus(msg.err.Error(), true)
			return m, cmd
		}
		m.diff.SetDiff(m.styles, msg.path, msg.diff)
		return m, nil

	case opDoneMsg:
		m.busy = ""
		m.keys.setMutationsEnabled(true)
		var status tea.Cmd
		if msg.err != nil {
			log.Printf("twig: %v", msg.err)
			status = m.setStatus(msg.err.Error(), true)
		} else {
			log.Printf("twig: %s", msg.info)
			status = m.setStatus(msg.info, false)
			m.pendingSelect = msg.selectName
		}
		reload := m.reload(false)
		return m, tea.Batch(status, reload)

	case RefreshMsg:
		cmd := m.reload(false)
		return m, cmd

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
		}
		return m, nil

	case components.DialogResult:
		m.dialog = nil
		return m.onDialog(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.dialog != nil && m.dialog.Visible() {
			d, cmd := m.dialog.Update(msg)
			m.dialog = &d
			return m, cmd
		}
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.cancel()
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
				m.showHelp = false
			}
			return m, nil
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)
	}

	// Cursor blink and similar housekeeping for the active text input.
	if m.dialog != nil && m.dialog.Visible() {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}
	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ── Data arrival ────────────────────────────────────────────────────────────

func (m Model) onBranches(msg branchesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.loadSeq {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		cmd := m.setStatus(msg.err.Error(), true)
		return m, cmd
	}
	m.base = msg.base
	m.list.SetBranches(msg.branches, false)
	if m.pendingSelect != "" {
		m.list.Select(m.pendingSelect)
		m.pendingSelect = ""
	}
	cmd := m.highlightChanged(true)
	return m, cmd
}

func (m Model) onDetails(msg detailsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.detailSeq {
		return m, nil
	}
	m.details.Loading = false
	m.details.Err = ""
	if msg.err != nil {
		m.details.Err = msg.err.Error()
		m.details.Commits = nil
		m.details.Files = nil
		m.details.FileCursor = -1
		m.diff.Clear()
		return m, nil
	}
	m.details.Commits = msg.commits
	m.details.Files = msg.files

	// Keep the open diff if its file is still part of the change set.
	open := m.diff.Path()
	m.details.FileCursor = -1
	if len(msg.files) > 0 {
		m.details.FileCursor = 0
	}
	for i, f := range msg.files {
		if f.Path == open {
			m.details.FileCursor = i
			return m, m.loadDiff(msg.branch, m.base, open)
		}
	}
	if open != "" {
		m.diff.Clear()
	}
	if m.focus != focusBranches && len(msg.files) == 0 {
		m.focus = focusBranches
	}
	return m, nil
}

// highlightChanged resets the detail panes when the highlighted branch
// differs from the one shown, or always when force is set, and schedules a
// reload of its details.
func (m *Model) highlightChanged(force bool) tea.Cmd {
	name := ""
	if b, ok := m.list.SelectedBranch(); ok {
		name = b.Name
	}
	if name == m.details.Branch && !force {
		return nil
	}
	if name != m.details.Branch {
		m.details = views.DetailsPane{Branch: name, FileCursor: -1}
		m.diff.Clear()
		if m.focus != focusBranches {
			m.focus = focusBranches
		}
	}
	m.detailSeq++
	if name == "" {
		return nil
	}
	m.details.Loading = true
	return scheduleDetails(m.detailSeq)
}

// ── Keys ────────────────────────────────────────────────────────────────────

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.reload(true)
		return m, cmd

	case key.Matches(msg, m.keys.FocusNext):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.focus = focusBranches
		m.filter.SetValue(m.list.Filter())
		m.filter.CursorEnd()
		cmd := m.filter.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		switch {
		case m.focus == focusDiff:
			m.focus = focusFiles
		case m.focus == focusFiles:
			m.focus = focusBranches
		case m.list.Filtered():
			m.list.SetFilter("")
			m.filter.SetValue("")
			cmd := m.highlightChanged(false)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.onEnter()

	case key.Matches(msg, m.keys.NewBranch):
		start := ""
		if b, ok := m.list.SelectedBranch(); ok {
			start = b.Name
		}
		title := "New branch"
		if start != "" {
			title += " from " + start
		}
		return m.openDialog(components.NewInputDialog(m.styles, title, "branch name", "", tagCreate, start))

	case key.Matches(msg, m.keys.Delete), key.Matches(msg, m.keys.ForceDelete):
		force := key.Matches(msg, m.keys.ForceDelete)
		b, ok := m.localSelection()
		if !ok {
			cmd := m.statusForSelection("delete")
			return m, cmd
		}
		tag, title, body := tagDelete, "Delete branch", "Delete "+b.Name+"?"
		if force {
			tag, title = tagForceDelete, "Force delete branch"
			body = "Force delete " + b.Name + "? Commits not merged elsewhere will be lost."
		}
		if !m.cfg.ConfirmDestructive {
			return m.onDialog(components.DialogResult{Confirmed: true, Tag: tag, Subject: b.Name})
		}
		return m.openDialog(components.NewConfirmDialog(m.styles, title, body, tag, b.Name))

	case key.Matches(msg, m.keys.Rename):
		b, ok := m.localSelection()
		if !ok {
			cmd := m.statusForSelection("rename")
			return m, cmd
		}
		return m.openDialog(components.NewInputDialog(m.styles, "Rename "+b.Name, "new name", b.Name, tagRename, b.Name))

	case key.Matches(msg, m.keys.Fetch):
		cmd := tea.Batch(m.startBusy("fetching"), m.fetch())
		return m, cmd
	}

	return m.navigate(msg)
}

// navigate applies movement keys to the focused pane.
func (m Model) navigate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusDiff {
		switch {
		case key.Matches(msg, m.keys.Top):
			m.diff.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.diff.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.diff, cmd = m.diff.Update(msg)
		return m, cmd
	}

	page := max(1, m.height-6)
	delta := 0
	switch {
	case key.Matches(msg, m.keys.Up):
		delta = -1
	case key.Matches(msg, m.keys.Down):
		delta = 1
	case key.Matches(msg, m.keys.PageUp):
		delta = -page
	case key.Matches(msg, m.keys.PageDown):
		delta = page
	case key.Matches(msg, m.keys.Top):
		delta = -1 << 30
	case key.Matches(msg, m.keys.Bottom):
		delta = 1 << 30
	default:
		return m, nil
	}

	if m.focus == focusFiles {
		if n := len(m.details.Files); n > 0 {
			m.details.FileCursor = min(max(m.details.FileCursor+delta, 0), n-1)
		}
		return m, nil
	}
	switch delta {
	case -1 << 30:
		m.list.First()
	case 1 << 30:
		m.list.Last()
	default:
		m.list.Move(delta)
	}
	cmd := m.highlightChanged(false)
	return m, cmd
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusBranches:
		if len(m.details.Files) > 0 {
			m.focus = focusFiles
		}
	case focusFiles:
		if m.diff.Path() != "" {
			m.focus = focusDiff
		} else {
			m.focus = focusBranches
		}
	default:
		m.focus = focusBranches
	}
}

func (m Model) onEnter() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusFiles:
		i := m.details.FileCursor
		if i < 0 || i >= len(m.details.Files) {
			return m, nil
		}
		path := m.details.Files[i].Path
		m.focus = focusDiff
		m.diff.SetLoading(path)
		return m, m.loadDiff(m.details.Branch, m.base, path)

	case focusBranches:
		b, ok := m.list.SelectedBranch()
		switch {
		case !ok:
			return m, nil
		case b.IsCurrent:
			cmd := m.setStatus("Already on "+b.Name, false)
			return m, cmd
		case b.IsRemote():
			cmd := m.setStatus("Remote branch: press "+m.cfg.Keys.NewBranch+" to branch from it", false)
			return m, cmd
		case m.busy != "":
			return m, nil
		}
		cmd := tea.Batch(m.startBusy("checking out "+b.Name), m.checkout(b.Name))
		return m, cmd
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.cancel()
		return m, tea.Quit
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.list.SetFilter("")
		cmd := m.highlightChanged(false)
		return m, cmd
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyUp:
		m.list.Move(-1)
		cmd := m.highlightChanged(false)
		return m, cmd
	case tea.KeyDown:
		m.list.Move(1)
		cmd := m.highlightChanged(false)
		return m, cmd
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if v := m.filter.Value(); v != m.list.Filter() {
		m.list.SetFilter(v)
		cmd = tea.Batch(cmd, m.highlightChanged(false))
		return m, cmd
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil || m.showHelp || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	var delta int
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -1
	case tea.MouseButtonWheelDown:
		delta = 1
	default:
		return m, nil
	}
	switch {
	case msg.X < m.leftW:
		m.list.Move(delta)
		cmd := m.highlightChanged(false)
		return m, cmd
	case msg.Y >= m.detailsH:
		var cmd tea.Cmd
		m.diff, cmd = m.diff.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ── Mutations ───────────────────────────────────────────────────────────────

// localSelection returns the highlighted branch when it is a local branch.
func (m Model) localSelection() (git.Branch, bool) {
	b, ok := m.list.SelectedBranch()
	if !ok || b.IsRemote() {
		return git.Branch{}, false
	}
	return b, true
}

func (m *Model) statusForSelection(verb string) tea.Cmd {
	if _, ok := m.list.SelectedBranch(); !ok {
		return nil
	}
	return m.setStatus("Cannot "+verb+" a remote branch", true)
}

func (m Model) openDialog(d components.Dialog) (tea.Model, tea.Cmd) {
	m.dialog = &d
	if d.Kind == components.DialogInput {
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) onDialog(res components.DialogResult) (tea.Model, tea.Cmd) {
	if !res.Confirmed || m.busy != "" {
		return m, nil
	}
	switch res.Tag {
	case tagCreate:
		name := strings.TrimSpace(res.Value)
		if name == "" {
			return m, nil
		}
		cmd := tea.Batch(m.startBusy("creating "+name), m.create(name, res.Subject))
		return m, cmd

	case tagDelete, tagForceDelete:
		cmd := tea.Batch(m.startBusy("deleting "+res.Subject), m.remove(res.Subject, res.Tag == tagForceDelete))
		return m, cmd

	case tagRename:
		name := strings.TrimSpace(res.Value)
		if name == "" || name == res.Subject {
			return m, nil
		}
		cmd := tea.Batch(m.startBusy("renaming "+res.Subject), m.rename(res.Subject, name))
		return m, cmd
	}
	return m, nil
}

// startBusy marks a mutation as in flight and starts the spinner.
func (m *Model) startBusy(label string) tea.Cmd {
	m.busy = label
	m.keys.setMutationsEnabled(false)
	log.Printf("twig: %s", label)
	return m.spinner.Tick
}

// Busy reports whether a mutation is in flight.
func (m Model) Busy() bool { return m.busy != "" }

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.statusMsg = text
	m.statusErr = isErr
	ttl := infoTTL
	if isErr {
		ttl = errorTTL
	}
	return clearStatusAfter(m.statusID, ttl)
}

// ── View ────────────────────────────────────────────────────────────────────

// layout recomputes pane sizes after a resize.
func (m *Model) layout() {
	bodyH := max(3, m.height-2)
	m.leftW, m.rightW = ui.SplitWidth(m.width, 0.38, 30)
	if m.rightW < 30 {
		m.leftW, m.rightW = m.width, 0
	}
	m.detailsH = bodyH / 2
	m.diff.SetSize(m.rightW, bodyH-m.detailsH)
}

// View renders the entire UI. This is a pure function: no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showHelp {
		return components.RenderHelp(m.styles, "twig keyboard shortcuts", m.keys.HelpSections(), m.width, m.height)
	}

	bodyH := max(3, m.height-2)

	filterLine := ""
	switch {
	case m.filtering:
		filterLine = m.filter.View()
	case m.list.Filtered():
		filterLine = m.styles.Muted.Render("/" + m.list.Filter())
	}
	hl, ok := m.list.Highlighted()
	if !ok {
		hl = -1
	}
	body := views.BranchPane{
		Branches:    m.list.Visible(),
		Total:       m.list.Total(),
		Highlighted: hl,
		Focused:     m.focus == focusBranches,
		Loading:     m.loading,
		FilterLine:  filterLine,
		Width:       m.leftW,
		Height:      bodyH,
	}.Render(m.styles)

	if m.rightW > 0 {
		details := m.details
		details.Base = m.base
		details.Focused = m.focus == focusFiles
		details.Width = m.rightW
		details.Height = m.detailsH
		right := lipgloss.JoinVertical(lipgloss.Left,
			details.Render(m.styles),
			m.diff.Render(m.styles, m.focus == focusDiff),
		)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, right)
	}

	hints := components.RenderHintBar(m.styles, m.keys.ShortHelp(), m.width)
	status := components.RenderStatusBar(m.styles, m.statusBarData(), m.width)
	screen := lipgloss.JoinVertical(lipgloss.Left, body, hints, status)

	if m.dialog != nil && m.dialog.Visible() {
		screen = ui.PlaceCentre(m.width, m.height, m.dialog.View())
	}
	return screen
}

func (m Model) statusBarData() components.StatusBarData {
	data := components.StatusBarData{
		Default:  m.base,
		Visible:  m.list.Count(),
		Total:    m.list.Total(),
		Filter:   m.list.Filter(),
		Message:  m.statusMsg,
		IsError:  m.statusErr,
		RepoRoot: m.svc.RepoRoot(),
	}
	if cur, ok := m.list.Current(); ok {
		data.Branch = cur.Name
		data.Ahead = cur.Ahead
		data.Behind = cur.Behind
	}
	switch {
	case m.busy != "":
		data.Busy = m.spinner.View() + " " + m.busy + "…"
	case m.loading:
		data.Busy = m.spinner.View() + " loading branches…"
	}
	return data
}
