// Package branchlist holds the client-side state of the branch list: the last
// fetched branches, a text filter over them, and the highlighted row.
//
// State is recomputed as two explicit projections after every mutation:
// backing set → visible set (filter) → highlighted index (clamped). The
// controller is not safe for concurrent use; it is driven from the Bubble Tea
// update loop only.
package branchlist

import (
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/git"
)

// Controller tracks branches, filter text and the highlighted index.
type Controller struct {
	all     []git.Branch
	filter  string
	visible []int // indices into all, in backing order
	cursor  int   // index into visible; meaningless when visible is empty
}

// New returns an empty controller.
func New() *Controller { return &Controller{} }

// SetBranches replaces the backing branches. The active filter survives
// unless resetFilter is set. The previously highlighted branch stays
// highlighted when it is still visible; otherwise the index is clamped.
func (c *Controller) SetBranches(branches []git.Branch, resetFilter bool) {
	prev, hadPrev := c.SelectedBranch()

	c.all = append([]git.Branch(nil), branches...)
	if resetFilter {
		c.filter = ""
	}
	c.recompute()

	if hadPrev {
		for i, idx := range c.visible {
			if c.all[idx].Name == prev.Name {
				c.cursor = i
				return
			}
		}
	}
	c.clamp()
}

// SetFilter applies a case-insensitive substring filter on branch names.
// Empty text shows every branch.
func (c *Controller) SetFilter(text string) {
	c.filter = text
	c.recompute()
	c.clamp()
}

// Filter returns the active filter text.
func (c *Controller) Filter() string { return c.filter }

// Filtered reports whether a non-empty filter is active.
func (c *Controller) Filtered() bool { return c.filter != "" }

func (c *Controller) recompute() {
	c.visible = c.visible[:0]
	needle := strings.ToLower(c.filter)
	for i, b := range c.all {
		if needle == "" || strings.Contains(strings.ToLower(b.Name), needle) {
			c.visible = append(c.visible, i)
		}
	}
}

func (c *Controller) clamp() {
	switch n := len(c.visible); {
	case n == 0:
		c.cursor = 0
	case c.cursor < 0:
		c.cursor = 0
	case c.cursor >= n:
		c.cursor = n - 1
	}
}

// Count returns the number of visible branches.
func (c *Controller) Count() int { return len(c.visible) }

// Total returns the number of backing branches.
func (c *Controller) Total() int { return len(c.all) }

// Visible returns the visible branches in backing order.
func (c *Controller) Visible() []git.Branch {
	out := make([]git.Branch, len(c.visible))
	for i, idx := range c.visible {
		out[i] = c.all[idx]
	}
	return out
}

// Highlighted returns the highlighted index into Visible, or false when
// nothing is visible.
func (c *Controller) Highlighted() (int, bool) {
	if len(c.visible) == 0 {
		return 0, false
	}
	return c.cursor, true
}

// SetHighlighted moves the highlight to i, clamped into the visible range.
func (c *Controller) SetHighlighted(i int) {
	c.cursor = i
	c.clamp()
}

// Select highlights the visible branch with the given name. It reports
// false and leaves the highlight alone when no such branch is visible.
func (c *Controller) Select(name string) bool {
	for i, idx := range c.visible {
		if c.all[idx].Name == name {
			c.cursor = i
			return true
		}
	}
	return false
}

// Move shifts the highlight by delta rows, clamped.
func (c *Controller) Move(delta int) { c.SetHighlighted(c.cursor + delta) }

// First highlights the first visible branch.
func (c *Controller) First() { c.SetHighlighted(0) }

// Last highlights the last visible branch.
func (c *Controller) Last() { c.SetHighlighted(len(c.visible) - 1) }

// SelectedBranch returns the highlighted branch, or false when nothing is visible.
func (c *Controller) SelectedBranch() (git.Branch, bool) {
	i, ok := c.Highlighted()
	if !ok {
		return git.Branch{}, false
	}
	return c.all[c.visible[i]], true
}

// Current returns the checked-out branch from the backing set, if any.
func (c *Controller) Current() (git.Branch, bool) {
	for _, b := range c.all {
		if b.IsCurrent {
			return b, true
		}
	}
	return git.Branch{}, false
}
