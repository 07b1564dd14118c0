package branchlist

import (
	"reflect"
	"testing"

	"github.com/Akashdeep-Patra/twig/internal/git"
)

func sampleBranches() []git.Branch {
	return []git.Branch{
		{Name: "main", IsCurrent: true},
		{Name: "feature/auth"},
		{Name: "feature/ui"},
		{Name: "bugfix/login"},
	}
}

func names(bs []git.Branch) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func TestSetBranches(t *testing.T) {
	c := New()
	c.SetBranches([]git.Branch{
		{Name: "main", IsCurrent: true, Sync: git.SyncSynced},
		{Name: "feature/auth", Sync: git.SyncAhead},
	}, false)
	if c.Count() != 2 || c.Total() != 2 {
		t.Errorf("Count/Total = %d/%d, want 2/2", c.Count(), c.Total())
	}
}

func TestFilter(t *testing.T) {
	c := New()
	c.SetBranches(sampleBranches(), false)
	if c.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", c.Count())
	}

	c.SetFilter("feature")
	if c.Count() != 2 {
		t.Errorf("Count() = %d, want 2", c.Count())
	}
	if got := names(c.Visible()); !reflect.DeepEqual(got, []string{"feature/auth", "feature/ui"}) {
		t.Errorf("Visible() = %v, order must follow the backing set", got)
	}
	if !c.Filtered() {
		t.Error("Filtered() = false with a filter set")
	}

	c.SetFilter("")
	if c.Count() != 4 || c.Filtered() {
		t.Errorf("Count() = %d after clearing, want 4", c.Count())
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	c := New()
	c.SetBranches(sampleBranches(), false)
	c.SetFilter("LOGIN")
	if got := names(c.Visible()); !reflect.DeepEqual(got, []string{"bugfix/login"}) {
		t.Errorf("Visible() = %v", got)
	}
}

func TestSelectedBranch(t *testing.T) {
	c := New()
	c.SetBranches([]git.Branch{{Name: "main", IsCurrent: true}, {Name: "feature/auth"}}, false)
	c.SetHighlighted(0)

	b, ok := c.SelectedBranch()
	if !ok || b.Name != "main" {
		t.Errorf("SelectedBranch() = %v, %v; want main", b.Name, ok)
	}
}

func TestEmptyHasNoSelection(t *testing.T) {
	c := New()
	if _, ok := c.SelectedBranch(); ok {
		t.Error("empty controller has a selection")
	}
	if _, ok := c.Highlighted(); ok {
		t.Error("empty controller has a highlighted index")
	}

	c.SetBranches(sampleBranches(), false)
	c.SetFilter("zzz")
	if _, ok := c.SelectedBranch(); ok {
		t.Error("selection present with nothing visible")
	}
}

func TestHighlightClamps(t *testing.T) {
	c := New()
	c.SetBranches(sampleBranches(), false)

	c.SetHighlighted(99)
	if i, _ := c.Highlighted(); i != 3 {
		t.Errorf("Highlighted() = %d, want 3", i)
	}
	c.Move(-10)
	if i, _ := c.Highlighted(); i != 0 {
		t.Errorf("Highlighted() = %d, want 0", i)
	}
	c.Last()
	c.SetFilter("feature")
	if i, _ := c.Highlighted(); i != 1 {
		t.Errorf("Highlighted() after filter = %d, want clamped to 1", i)
	}
	c.First()
	b, _ := c.SelectedBranch()
	if b.Name != "feature/auth" {
		t.Errorf("SelectedBranch() = %q, want feature/auth", b.Name)
	}
}

func TestSetBranchesKeepsFilterAndSelection(t *testing.T) {
	c := New()
	c.SetBranches(sampleBranches(), false)
	c.SetFilter("feature")
	c.SetHighlighted(1) // feature/ui

	refreshed := []git.Branch{
		{Name: "main", IsCurrent: true},
		{Name: "feature/a11y"},
		{Name: "feature/auth"},
		{Name: "feature/ui"},
	}
	c.SetBranches(refreshed, false)

	if c.Filter() != "feature" {
		t.Errorf("Filter() = %q, want the filter kept", c.Filter())
	}
	if c.Count() != 3 {
		t.Errorf("Count() = %d, want 3", c.Count())
	}
	if b, _ := c.SelectedBranch(); b.Name != "feature/ui" {
		t.Errorf("SelectedBranch() = %q, want feature/ui to stay highlighted", b.Name)
	}

	c.SetBranches(refreshed, true)
	if c.Filtered() || c.Count() != 4 {
		t.Errorf("resetFilter did not clear the filter: %q, %d", c.Filter(), c.Count())
	}
}

func TestSetBranchesClampsWhenSelectionDisappears(t *testing.T) {
	c := New()
	c.SetBranches(sampleBranches(), false)
	c.Last() // bugfix/login

	c.SetBranches(sampleBranches()[:2], false)
	if b, _ := c.SelectedBranch(); b.Name != "feature/auth" {
		t.Errorf("SelectedBranch() = %q, want clamp to the last row", b.Name)
	}
}

func TestSetBranchesCopiesInput(t *testing.T) {
	in := sampleBranches()
	c := New()
	c.SetBranches(in, false)
	in[0].Name = "mutated"

	if b, _ := c.SelectedBranch(); b.Name != "main" {
		t.Errorf("controller shares the caller's slice: %q", b.Name)
	}
	if cur, ok := c.Current(); !ok || cur.Name != "main" {
		t.Errorf("Current() = %q, %v", cur.Name, ok)
	}
}

func TestSelect(t *testing.T) {
	c := New()
	c.SetBranches(sampleBranches(), false)

	if !c.Select("feature/ui") {
		t.Fatal("Select(feature/ui) = false")
	}
	if b, _ := c.SelectedBranch(); b.Name != "feature/ui" {
		t.Errorf("SelectedBranch() = %q", b.Name)
	}

	c.SetFilter("bugfix")
	if c.Select("main") {
		t.Error("Select succeeded for a filtered-out branch")
	}
	if b, _ := c.SelectedBranch(); b.Name != "bugfix/login" {
		t.Errorf("SelectedBranch() = %q, want bugfix/login", b.Name)
	}
}
