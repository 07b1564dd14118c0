package app

import (
	"fmt"
	"time"

	"github.com/Akashdeep-Patra/twig/internal/git"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// detailsDelay lets rapid j/k presses settle before git is asked for history.
const detailsDelay = 120 * time.Millisecond

// invalidator is implemented by caching services.
type invalidator interface {
	Invalidate()
	InvalidateRefs()
}

func (m Model) loadBranches(seq int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		var (
			branches []git.Branch
			base     string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			branches, err = svc.Branches(gctx)
			return err
		})
		g.Go(func() error {
			// A repository without main/master or a current branch has no base.
			base, _ = svc.DefaultBranch(gctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return branchesLoadedMsg{seq: seq, err: err}
		}
		return branchesLoadedMsg{seq: seq, branches: branches, base: base}
	}
}

// reload drops cached listings and loads branches again. Only a full reload
// forgets the default branch. Listings from earlier loads are ignored once
// they arrive.
func (m *Model) reload(full bool) tea.Cmd {
	if inv, ok := m.svc.(invalidator); ok {
		if full {
			inv.Invalidate()
		} else {
			inv.InvalidateRefs()
		}
	}
	m.loadSeq++
	return m.loadBranches(m.loadSeq)
}

func scheduleDetails(seq int) tea.Cmd {
	return tea.Tick(detailsDelay, func(time.Time) tea.Msg { return detailsTickMsg{seq: seq} })
}

func (m Model) loadDetails(seq int, branch, base string, limit int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		msg := detailsLoadedMsg{seq: seq, branch: branch}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			msg.commits, err = svc.Commits(gctx, branch, limit)
			return err
		})
		if base != "" && base != branch {
			g.Go(func() error {
				var err error
				msg.files, err = svc.ChangedFiles(gctx, branch, base)
				return err
			})
		}
		msg.err = g.Wait()
		return msg
	}
}

func (m Model) loadDiff(branch, base, path string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		diff, err := svc.FileDiff(ctx, path, branch, base)
		return diffLoadedMsg{branch: branch, path: path, diff: diff, err: err}
	}
}

// ── Mutations ───────────────────────────────────────────────────────────────

func (m Model) checkout(name string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.CheckoutBranch(ctx, name); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: "Switched to " + name, selectName: name}
	}
}

func (m Model) create(name, startPoint string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		b, err := svc.CreateBranch(ctx, name, startPoint)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: "Created " + b.Name, selectName: b.Name}
	}
}

func (m Model) remove(name string, force bool) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.DeleteBranch(ctx, name, force); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: "Deleted " + name}
	}
}

func (m Model) rename(oldName, newName string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.RenameBranch(ctx, oldName, newName); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: fmt.Sprintf("Renamed %s to %s", oldName, newName), selectName: newName}
	}
}

func (m Model) fetch() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.Fetch(ctx, ""); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: "Fetched all remotes"}
	}
}

func clearStatusAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}
