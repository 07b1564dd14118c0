package app

import "github.com/Akashdeep-Patra/twig/internal/git"

// RefreshMsg asks the model to reload the branch list, e.g. after the ref
// watcher saw a change made outside the program.
type RefreshMsg struct{}

// branchesLoadedMsg carries a fresh branch listing.
type branchesLoadedMsg struct {
	seq      int
	branches []git.Branch
	base     string
	err      error
}

// detailsTickMsg fires after the highlight settles on a branch.
type detailsTickMsg struct{ seq int }

// detailsLoadedMsg carries commits and changed files for one branch.
type detailsLoadedMsg struct {
	seq     int
	branch  string
	commits []git.Commit
	files   []git.FileChange
	err     error
}

// diffLoadedMsg carries the diff of one file.
type diffLoadedMsg struct {
	branch string
	path   string
	diff   string
	err    error
}

// opDoneMsg reports the end of a mutation.
type opDoneMsg struct {
	info string
	err  error
	// selectName is highlighted after the following reload.
	selectName string
}

// clearStatusMsg expires the status message with the matching id.
type clearStatusMsg struct{ id int }
