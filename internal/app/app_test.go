package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/twig/internal/config"
	"github.com/Akashdeep-Patra/twig/internal/git"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeService is an in-memory git.Service that records every call.
type fakeService struct {
	mu        sync.Mutex
	branches  []git.Branch
	base      string
	commits   map[string][]git.Commit
	files     map[string][]git.FileChange
	diffs     map[string]string
	deleteErr error
	calls     []string

	// Reads are counted apart from calls so mutation assertions stay exact.
	defaultCalls int
	branchCalls  int
}

var _ git.Service = (*fakeService)(nil)

func newFakeService() *fakeService {
	return &fakeService{
		branches: []git.Branch{
			{Name: "main", IsCurrent: true, Sync: git.SyncSynced, Hash: "aaa1111", Subject: "init"},
			{Name: "feature/auth", Sync: git.SyncAhead, Ahead: 2, Hash: "bbb2222", Subject: "add login"},
			{Name: "feature/ui", Hash: "ccc3333", Subject: "new theme"},
		},
		base: "main",
		commits: map[string][]git.Commit{
			"main":         {{ShortHash: "aaa1111", Subject: "init", Author: "Ada"}},
			"feature/auth": {{ShortHash: "bbb2222", Subject: "add login", Author: "Bob"}},
		},
		files: map[string][]git.FileChange{
			"feature/auth": {{Path: "auth.go", Type: git.ChangeAdded, Additions: 10, HasStats: true}},
		},
		diffs: map[string]string{
			"auth.go": "diff --git a/auth.go b/auth.go\n+package auth\n",
		},
	}
}

func (f *fakeService) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeService) RepoRoot() string               { return "/tmp/repo" }
func (f *fakeService) IsGitRepo(context.Context) bool { return true }

func (f *fakeService) Fetch(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("fetch")
	return nil
}

func (f *fakeService) CurrentBranch(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.branches {
		if b.IsCurrent {
			return b.Name, nil
		}
	}
	return "", &git.GitError{Reason: git.ReasonDetachedHead}
}

func (f *fakeService) DefaultBranch(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaultCalls++
	return f.base, nil
}

func (f *fakeService) Branches(context.Context) ([]git.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.branchCalls++
	return slices.Clone(f.branches), nil
}

func (f *fakeService) CreateBranch(_ context.Context, name, startPoint string) (git.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create %s %s", name, startPoint)
	b := git.Branch{Name: name}
	f.branches = append(f.branches, b)
	return b, nil
}

func (f *fakeService) DeleteBranch(_ context.Context, name string, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete %s %t", name, force)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.branches = slices.DeleteFunc(f.branches, func(b git.Branch) bool { return b.Name == name })
	return nil
}

func (f *fakeService) CheckoutBranch(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("checkout %s", name)
	for i := range f.branches {
		f.branches[i].IsCurrent = f.branches[i].Name == name
	}
	return nil
}

func (f *fakeService) RenameBranch(_ context.Context, oldName, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("rename %s %s", oldName, newName)
	for i := range f.branches {
		if f.branches[i].Name == oldName {
			f.branches[i].Name = newName
		}
	}
	return nil
}

func (f *fakeService) Commits(_ context.Context, branch string, _ int) ([]git.Commit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commits[branch], nil
}

func (f *fakeService) ChangedFiles(_ context.Context, branchA, _ string) ([]git.FileChange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files[branchA], nil
}

func (f *fakeService) FileDiff(_ context.Context, path, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.diffs[path], nil
}

// ── harness ─────────────────────────────────────────────────────────────────

// collect runs cmd and returns the messages it produces, expanding batches.
// Commands that take longer than the cap (status expiry, cursor blink) are
// dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		batch, ok := msg.(tea.BatchMsg)
		if !ok {
			if msg == nil {
				return nil
			}
			return []tea.Msg{msg}
		}
		var (
			mu  sync.Mutex
			wg  sync.WaitGroup
			out []tea.Msg
		)
		for _, c := range batch {
			wg.Add(1)
			go func() {
				defer wg.Done()
				msgs := collect(c)
				mu.Lock()
				out = append(out, msgs...)
				mu.Unlock()
			}()
		}
		wg.Wait()
		return out
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

// settle feeds the messages produced by cmd back into the model until no
// more arrive. Spinner frames are skipped.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for range 20 {
		var next []tea.Cmd
		for _, msg := range collect(cmd) {
			if _, ok := msg.(spinner.TickMsg); ok {
				continue
			}
			var c tea.Cmd
			m, c = update(m, msg)
			next = append(next, c)
		}
		cmd = tea.Batch(next...)
		if cmd == nil {
			return m
		}
	}
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each key and settles the resulting commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = update(m, keyMsg(k))
		m = settle(t, m, cmd)
	}
	return m
}

func start(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := New(context.Background(), svc, config.Default())
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return settle(t, m, m.Init())
}

func selected(m Model) string {
	b, _ := m.list.SelectedBranch()
	return b.Name
}

// ── tests ───────────────────────────────────────────────────────────────────

func TestInitialLoad(t *testing.T) {
	m := start(t, newFakeService())

	if m.loading {
		t.Error("still loading after settle")
	}
	if m.list.Total() != 3 {
		t.Fatalf("Total() = %d, want 3", m.list.Total())
	}
	if m.base != "main" {
		t.Errorf("base = %q, want main", m.base)
	}
	if got := selected(m); got != "main" {
		t.Errorf("selected = %q, want main", got)
	}
	if len(m.details.Commits) != 1 || m.details.Commits[0].Subject != "init" {
		t.Errorf("details.Commits = %+v", m.details.Commits)
	}

	view := m.View()
	for _, want := range []string{"feature/auth", "feature/ui", "init", "3 branches"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestDetailsFollowHighlight(t *testing.T) {
	m := start(t, newFakeService())
	m = press(t, m, "j")

	if got := selected(m); got != "feature/auth" {
		t.Fatalf("selected = %q, want feature/auth", got)
	}
	if m.details.Branch != "feature/auth" || m.details.Loading {
		t.Errorf("details = %q loading=%v", m.details.Branch, m.details.Loading)
	}
	if len(m.details.Files) != 1 || m.details.Files[0].Path != "auth.go" {
		t.Errorf("details.Files = %+v", m.details.Files)
	}
}

func TestStaleDetailsAreDropped(t *testing.T) {
	m := start(t, newFakeService())
	before := m.details.Commits

	m, _ = update(m, detailsLoadedMsg{
		seq:     m.detailSeq - 1,
		branch:  "feature/ui",
		commits: []git.Commit{{Subject: "stale"}},
	})
	if len(m.details.Commits) != len(before) || m.details.Commits[0].Subject == "stale" {
		t.Errorf("stale result applied: %+v", m.details.Commits)
	}
}

func TestOpenDiff(t *testing.T) {
	m := start(t, newFakeService())
	m = press(t, m, "j", "tab")
	if m.focus != focusFiles {
		t.Fatalf("focus = %v, want files", m.focus)
	}
	m = press(t, m, "enter")

	if m.focus != focusDiff {
		t.Errorf("focus = %v, want diff", m.focus)
	}
	if m.diff.Path() != "auth.go" {
		t.Errorf("diff path = %q", m.diff.Path())
	}
	if !strings.Contains(m.View(), "+package auth") {
		t.Error("diff body not rendered")
	}

	m = press(t, m, "esc", "esc")
	if m.focus != focusBranches {
		t.Errorf("focus = %v after esc esc, want branches", m.focus)
	}
}

func TestFilter(t *testing.T) {
	m := start(t, newFakeService())
	m = press(t, m, "/", "f", "e", "a", "t")

	if !m.filtering {
		t.Fatal("not in filter mode")
	}
	if m.list.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.list.Count())
	}
	if got := selected(m); got != "feature/auth" {
		t.Errorf("selected = %q, want feature/auth", got)
	}

	m = press(t, m, "enter")
	if m.filtering || m.list.Filter() != "feat" {
		t.Errorf("enter should keep the filter: filtering=%v filter=%q", m.filtering, m.list.Filter())
	}

	m = press(t, m, "esc")
	if m.list.Filtered() || m.list.Count() != 3 {
		t.Errorf("esc should clear the filter: %q, %d", m.list.Filter(), m.list.Count())
	}
}

func TestDeleteConfirmed(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)
	m = press(t, m, "G", "d")

	if m.dialog == nil || !m.dialog.Visible() {
		t.Fatal("delete did not open a confirmation")
	}
	m = press(t, m, "y")

	if !slices.Contains(svc.Calls(), "delete feature/ui false") {
		t.Errorf("calls = %v", svc.Calls())
	}
	if m.Busy() {
		t.Error("still busy after the delete finished")
	}
	if m.list.Total() != 2 {
		t.Errorf("Total() = %d, want 2 after reload", m.list.Total())
	}
	if m.statusErr || m.statusMsg != "Deleted feature/ui" {
		t.Errorf("status = %q (err=%v)", m.statusMsg, m.statusErr)
	}
}

func TestDeleteCancelledByDefault(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)
	m = press(t, m, "G", "d", "enter")

	if len(svc.Calls()) != 0 {
		t.Errorf("calls = %v, want none", svc.Calls())
	}
	if m.list.Total() != 3 {
		t.Errorf("Total() = %d", m.list.Total())
	}
}

func TestDeleteErrorIsShown(t *testing.T) {
	svc := newFakeService()
	svc.deleteErr = &git.GitError{
		Reason:   git.ReasonNotFullyMerged,
		Message:  "error: the branch 'feature/ui' is not fully merged",
		ExitCode: 1,
	}
	m := start(t, svc)
	m = press(t, m, "G", "d", "y")

	if !m.statusErr || !strings.Contains(m.statusMsg, "not fully merged") {
		t.Errorf("status = %q (err=%v)", m.statusMsg, m.statusErr)
	}
	if m.list.Total() != 3 {
		t.Errorf("Total() = %d, branch should survive", m.list.Total())
	}
	if m.Busy() {
		t.Error("still busy after a failed delete")
	}
}

func TestCreateSelectsNewBranch(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)
	m = press(t, m, "n")
	if m.dialog == nil {
		t.Fatal("new branch dialog not open")
	}
	m = press(t, m, "h", "o", "t", "f", "i", "x", "enter")

	if !slices.Contains(svc.Calls(), "create hotfix main") {
		t.Errorf("calls = %v", svc.Calls())
	}
	if got := selected(m); got != "hotfix" {
		t.Errorf("selected = %q, want hotfix", got)
	}
}

func TestRename(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)
	m = press(t, m, "j", "R", "-", "v", "2", "enter")

	if !slices.Contains(svc.Calls(), "rename feature/auth feature/auth-v2") {
		t.Errorf("calls = %v", svc.Calls())
	}
	if got := selected(m); got != "feature/auth-v2" {
		t.Errorf("selected = %q", got)
	}
}

func TestMutationsBlockedWhileBusy(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)

	// Start a fetch but hold its command.
	m, fetch := update(m, keyMsg("f"))
	if !m.Busy() {
		t.Fatal("fetch did not mark the model busy")
	}
	if !strings.Contains(m.View(), "fetching") {
		t.Error("busy label not in the status bar")
	}

	m, _ = update(m, keyMsg("n"))
	if m.dialog != nil {
		t.Error("new branch dialog opened while busy")
	}
	m, _ = update(m, keyMsg("d"))
	if m.dialog != nil {
		t.Error("delete dialog opened while busy")
	}

	m = settle(t, m, fetch)
	if m.Busy() {
		t.Error("still busy after fetch finished")
	}
	if !m.keys.NewBranch.Enabled() {
		t.Error("mutation keys not re-enabled")
	}
	if got := svc.Calls(); !slices.Equal(got, []string{"fetch"}) {
		t.Errorf("calls = %v", got)
	}
}

func TestCheckoutCurrentIsNoop(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)
	m = press(t, m, "enter")

	if len(svc.Calls()) != 0 {
		t.Errorf("calls = %v", svc.Calls())
	}
	if m.statusMsg != "Already on main" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestCheckout(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)
	m = press(t, m, "j", "enter")

	if !slices.Contains(svc.Calls(), "checkout feature/auth") {
		t.Errorf("calls = %v", svc.Calls())
	}
	if cur, ok := m.list.Current(); !ok || cur.Name != "feature/auth" {
		t.Errorf("Current() = %q, %v", cur.Name, ok)
	}
}

func TestRefreshMsgReloads(t *testing.T) {
	svc := newFakeService()
	m := start(t, svc)

	svc.mu.Lock()
	svc.branches = append(svc.branches, git.Branch{Name: "external"})
	svc.mu.Unlock()

	m, cmd := update(m, RefreshMsg{})
	m = settle(t, m, cmd)
	if m.list.Total() != 4 {
		t.Errorf("Total() = %d, want 4", m.list.Total())
	}
	if got := selected(m); got != "main" {
		t.Errorf("refresh moved the highlight to %q", got)
	}
}

func TestRefreshKeepsDefaultBranchCached(t *testing.T) {
	svc := newFakeService()
	m := New(context.Background(), git.NewCachedService(svc, time.Minute), config.Default())
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = settle(t, m, m.Init())

	for range 2 {
		var cmd tea.Cmd
		m, cmd = update(m, RefreshMsg{})
		m = settle(t, m, cmd)
	}

	svc.mu.Lock()
	defaults, listings := svc.defaultCalls, svc.branchCalls
	svc.mu.Unlock()
	if defaults != 1 {
		t.Errorf("DefaultBranch calls = %d, want 1 across two refreshes", defaults)
	}
	if listings != 3 {
		t.Errorf("Branches calls = %d, want 3", listings)
	}

	// An explicit refresh forgets the default branch too.
	m = press(t, m, "r")
	svc.mu.Lock()
	defaults = svc.defaultCalls
	svc.mu.Unlock()
	if defaults != 2 {
		t.Errorf("DefaultBranch calls = %d after r, want 2", defaults)
	}
	if m.base != "main" {
		t.Errorf("base = %q", m.base)
	}
}

func TestStaleBranchListingIsDropped(t *testing.T) {
	m := start(t, newFakeService())
	m, _ = update(m, RefreshMsg{})
	m, _ = update(m, RefreshMsg{})

	m, _ = update(m, branchesLoadedMsg{
		seq:      m.loadSeq,
		base:     "main",
		branches: []git.Branch{{Name: "main", IsCurrent: true}, {Name: "a"}, {Name: "b"}, {Name: "c"}},
	})
	if m.list.Total() != 4 {
		t.Fatalf("Total() = %d, want 4", m.list.Total())
	}

	// The first refresh finishes last with an older listing.
	m, _ = update(m, branchesLoadedMsg{
		seq:      m.loadSeq - 1,
		base:     "main",
		branches: []git.Branch{{Name: "main", IsCurrent: true}},
	})
	if m.list.Total() != 4 {
		t.Errorf("Total() = %d, older listing overwrote the newer one", m.list.Total())
	}
}

func TestQuitCancelsContext(t *testing.T) {
	m := start(t, newFakeService())
	m, cmd := update(m, keyMsg("q"))

	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.ctx.Err() == nil {
		t.Error("context not cancelled on quit")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := start(t, newFakeService())
	m = press(t, m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "force delete") {
		t.Error("help overlay not shown")
	}
	m = press(t, m, "?")
	if m.showHelp {
		t.Error("help overlay not dismissed")
	}
}
