package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/runner"
)

// CLIService implements Service by shelling out to the git CLI through a
// runner.Runner. It holds no state besides the repository path.
type CLIService struct {
	runner         runner.Runner
	root           string
	remoteBranches bool
}

// Compile-time check that CLIService implements Service.
var _ Service = (*CLIService)(nil)

// Option configures a CLIService.
type Option func(*CLIService)

// WithRemoteBranches makes Branches include refs/remotes.
func WithRemoteBranches(on bool) Option {
	return func(s *CLIService) { s.remoteBranches = on }
}

// NewCLIService returns a service rooted at dir without probing it, so
// IsGitRepo can be asked of any directory.
func NewCLIService(r runner.Runner, dir string, opts ...Option) *CLIService {
	s := &CLIService{runner: r, root: dir}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OpenRepository resolves the repository containing path and returns a
// service rooted at its top level.
func OpenRepository(ctx context.Context, r runner.Runner, path string, opts ...Option) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
		return nil, &GitError{Reason: ReasonNotARepo, Message: "not a git repository: " + abs, ExitCode: -1}
	}
	probe := NewCLIService(r, abs, opts...)
	out, err := probe.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		if ReasonOf(err) == ReasonToolFailure {
			return nil, &GitError{Reason: ReasonNotARepo, Message: "not a git repository: " + abs, ExitCode: -1, Err: err}
		}
		return nil, err
	}
	probe.root = strings.TrimSpace(out)
	return probe, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is set on read-only commands so they never contend for index.lock.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// writeEnv keeps git from ever prompting for credentials or an editor.
var writeEnv = []string{"GIT_TERMINAL_PROMPT=0", "GIT_EDITOR=true"}

// run executes a read-only git command at the repo root.
func (s *CLIService) run(ctx context.Context, args ...string) (string, error) {
	return s.exec(ctx, readEnv, args...)
}

// runWrite executes a mutating git command.
func (s *CLIService) runWrite(ctx context.Context, args ...string) (string, error) {
	return s.exec(ctx, writeEnv, args...)
}

func (s *CLIService) exec(ctx context.Context, env []string, args ...string) (string, error) {
	res, err := s.runner.Run(ctx, runner.Command{Dir: s.root, Args: args, Env: env})
	if err != nil {
		return "", newRunError(args, err)
	}
	if !res.Success() {
		return "", newExitError(args, res)
	}
	return res.Stdout, nil
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot returns the repository root path.
func (s *CLIService) RepoRoot() string { return s.root }

// GitDir returns the absolute path of the repository's git directory. For
// linked worktrees this is the per-worktree directory, not <root>/.git.
func (s *CLIService) GitDir(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CommonDir returns the directory holding refs shared by all worktrees.
func (s *CLIService) CommonDir(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", err
	}
	dir := strings.TrimSpace(out)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.root, dir)
	}
	return dir, nil
}

// IsGitRepo reports whether the root is inside a work tree. It never fails.
func (s *CLIService) IsGitRepo(ctx context.Context) bool {
	if info, err := os.Stat(s.root); err != nil || !info.IsDir() {
		return false
	}
	out, err := s.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// CurrentBranch returns the checked-out branch name. Detached HEAD is an error.
func (s *CLIService) CurrentBranch(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(out)
	if name == "" {
		return "", &GitError{Reason: ReasonDetachedHead, Message: "HEAD does not point at a branch", ExitCode: -1}
	}
	return name, nil
}

// DefaultBranch resolves the primary branch independent of the checkout:
// origin's HEAD, then a local main or master, then the current branch.
func (s *CLIService) DefaultBranch(ctx context.Context) (string, error) {
	if out, err := s.run(ctx, "symbolic-ref", "--short", "refs/remotes/origin/HEAD"); err == nil {
		if name := strings.TrimPrefix(strings.TrimSpace(out), "origin/"); name != "" {
			return name, nil
		}
	} else if ReasonOf(err) == ReasonTimeout || ReasonOf(err) == ReasonCanceled {
		return "", err
	}

	for _, candidate := range []string{"main", "master"} {
		if _, err := s.run(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+candidate); err == nil {
			return candidate, nil
		}
	}

	cur, err := s.CurrentBranch(ctx)
	if err != nil {
		return "", &GitError{
			Reason:   ReasonToolFailure,
			Message:  "could not determine default branch: " + err.Error(),
			ExitCode: -1,
			Err:      err,
		}
	}
	return cur, nil
}

// ── Branches ────────────────────────────────────────────────────────────────

func (s *CLIService) branchPatterns() []string {
	if s.remoteBranches {
		return []string{"refs/heads", "refs/remotes"}
	}
	return []string{"refs/heads"}
}

// Branches lists branches in git's native ref order.
func (s *CLIService) Branches(ctx context.Context) ([]Branch, error) {
	args := append([]string{"for-each-ref", "--format=" + branchFormat}, s.branchPatterns()...)
	out, err := s.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseBranchOutput(out), nil
}

// CreateBranch creates name at startPoint (HEAD when empty) without checking it out.
func (s *CLIService) CreateBranch(ctx context.Context, name, startPoint string) (Branch, error) {
	args := []string{"branch", "--end-of-options", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	if _, err := s.runWrite(ctx, args...); err != nil {
		return Branch{}, err
	}

	out, err := s.run(ctx, "for-each-ref", "--format="+branchFormat, "refs/heads/"+name)
	if err != nil {
		return Branch{}, err
	}
	for _, b := range ParseBranchOutput(out) {
		if b.Name == name {
			return b, nil
		}
	}
	return Branch{Name: name}, nil
}

// DeleteBranch deletes a local branch. force skips the merge check; git
// itself refuses to delete the checked-out branch either way.
func (s *CLIService) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := s.runWrite(ctx, "branch", flag, "--end-of-options", name)
	return err
}

// CheckoutBranch checks out name. "--end-of-options" keeps a leading dash from
// being read as a flag; the trailing "--" stops git from treating an unknown
// name as a pathspec.
func (s *CLIService) CheckoutBranch(ctx context.Context, name string) error {
	_, err := s.runWrite(ctx, "checkout", "--end-of-options", name, "--")
	return err
}

// RenameBranch renames a local branch.
func (s *CLIService) RenameBranch(ctx context.Context, oldName, newName string) error {
	_, err := s.runWrite(ctx, "branch", "-m", "--end-of-options", oldName, newName)
	return err
}

// ── History & diff ──────────────────────────────────────────────────────────

// Commits returns the history of branch, newest first. limit <= 0 means all.
func (s *CLIService) Commits(ctx context.Context, branch string, limit int) ([]Commit, error) {
	args := []string{"log", LogFormatFlag()}
	if limit > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", limit))
	}
	args = append(args, "--end-of-options", branch, "--")
	out, err := s.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseLogOutput(out), nil
}

// rangeSpec is the set of changes made on a since it forked from b.
func rangeSpec(a, b string) string { return b + "..." + a }

// ChangedFiles lists files changed on branchA relative to branchB.
func (s *CLIService) ChangedFiles(ctx context.Context, branchA, branchB string) ([]FileChange, error) {
	spec := rangeSpec(branchA, branchB)
	out, err := s.run(ctx, "diff", "--name-status", "-z", "-M", "--no-color", "--end-of-options", spec, "--")
	if err != nil {
		return nil, err
	}
	changes := ParseNameStatusZ(out)
	if len(changes) == 0 {
		return changes, nil
	}

	stat, err := s.run(ctx, "diff", "--numstat", "-z", "-M", "--no-color", "--end-of-options", spec, "--")
	if err != nil {
		return nil, err
	}
	mergeStats(changes, ParseNumstatZ(stat))
	return changes, nil
}

// FileDiff returns the unified diff of path between the two refs. Headers
// carry the path verbatim rather than C-quoted.
func (s *CLIService) FileDiff(ctx context.Context, path, branchA, branchB string) (string, error) {
	return s.run(ctx, "-c", "core.quotePath=false", "diff", "--no-color", "--no-ext-diff",
		"--end-of-options", rangeSpec(branchA, branchB), "--", path)
}

// ── Remotes ─────────────────────────────────────────────────────────────────

// Fetch updates remote-tracking refs. An empty remote fetches all remotes.
func (s *CLIService) Fetch(ctx context.Context, remote string) error {
	args := []string{"fetch", "--prune"}
	if remote == "" {
		args = append(args, "--all")
	} else {
		args = append(args, remote)
	}
	_, err := s.runWrite(ctx, args...)
	return err
}
