// Package git is the repository access layer. It is the only place that knows
// git's argument grammar and output formats; callers get domain values or a
// *GitError.
package git

import "context"

// Service defines the contract for all repository operations.
// Every view depends on this interface, never on exec.Command directly.
// Methods block only the calling goroutine; the UI runs them inside tea.Cmds.
type Service interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	IsGitRepo(ctx context.Context) bool
	CurrentBranch(ctx context.Context) (string, error)
	DefaultBranch(ctx context.Context) (string, error)

	// ── Branches ─────────────────────────────────────────────────────
	Branches(ctx context.Context) ([]Branch, error)
	CreateBranch(ctx context.Context, name, startPoint string) (Branch, error)
	DeleteBranch(ctx context.Context, name string, force bool) error
	CheckoutBranch(ctx context.Context, name string) error
	RenameBranch(ctx context.Context, oldName, newName string) error

	// ── History & diff ───────────────────────────────────────────────
	Commits(ctx context.Context, branch string, limit int) ([]Commit, error)
	ChangedFiles(ctx context.Context, branchA, branchB string) ([]FileChange, error)
	FileDiff(ctx context.Context, path, branchA, branchB string) (string, error)

	// ── Remotes ──────────────────────────────────────────────────────
	Fetch(ctx context.Context, remote string) error
}
