package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/twig/internal/runner"
)

// Reason tags the recognised cause of a GitError.
type Reason int

// Recognised causes. ReasonToolFailure is the catch-all.
const (
	ReasonToolFailure Reason = iota
	ReasonNotARepo
	ReasonBranchExists
	ReasonBranchNotFound
	ReasonNotFullyMerged
	ReasonDeleteCurrent
	ReasonDetachedHead
	ReasonInvalidName
	ReasonTimeout
	ReasonCanceled
)

func (r Reason) String() string {
	switch r {
	case ReasonNotARepo:
		return "not a repository"
	case ReasonBranchExists:
		return "branch already exists"
	case ReasonBranchNotFound:
		return "branch not found"
	case ReasonNotFullyMerged:
		return "branch not fully merged"
	case ReasonDeleteCurrent:
		return "cannot delete current branch"
	case ReasonDetachedHead:
		return "detached HEAD"
	case ReasonInvalidName:
		return "invalid ref name"
	case ReasonTimeout:
		return "timed out"
	case ReasonCanceled:
		return "canceled"
	default:
		return "git failed"
	}
}

// GitError is the only error kind returned by a Service.
type GitError struct {
	Reason   Reason
	Message  string   // Diagnostic text from git, cleaned up.
	ExitCode int      // -1 when git did not exit normally.
	Args     []string // Arguments of the failing invocation, if any.
	Err      error    // Underlying cause for timeouts, cancellation and spawn failures.
}

func (e *GitError) Error() string {
	if e.Message == "" {
		return e.Reason.String()
	}
	return e.Message
}

func (e *GitError) Unwrap() error { return e.Err }

// Is matches another *GitError by Reason, so the sentinels below work with errors.Is.
func (e *GitError) Is(target error) bool {
	t, ok := target.(*GitError)
	return ok && t.Reason == e.Reason
}

// Sentinels for errors.Is. Only Reason is compared.
var (
	ErrNotARepo       = &GitError{Reason: ReasonNotARepo, ExitCode: -1}
	ErrBranchExists   = &GitError{Reason: ReasonBranchExists, ExitCode: -1}
	ErrBranchNotFound = &GitError{Reason: ReasonBranchNotFound, ExitCode: -1}
	ErrNotFullyMerged = &GitError{Reason: ReasonNotFullyMerged, ExitCode: -1}
	ErrDeleteCurrent  = &GitError{Reason: ReasonDeleteCurrent, ExitCode: -1}
	ErrDetachedHead   = &GitError{Reason: ReasonDetachedHead, ExitCode: -1}
	ErrInvalidName    = &GitError{Reason: ReasonInvalidName, ExitCode: -1}
	ErrTimeout        = &GitError{Reason: ReasonTimeout, ExitCode: -1}
	ErrCanceled       = &GitError{Reason: ReasonCanceled, ExitCode: -1}
	ErrToolFailure    = &GitError{Reason: ReasonToolFailure, ExitCode: -1}
)

// ReasonOf returns the Reason carried by err, or ReasonToolFailure.
func ReasonOf(err error) Reason {
	var ge *GitError
	if errors.As(err, &ge) {
		return ge.Reason
	}
	return ReasonToolFailure
}

// classification rules, checked in order against lower-cased diagnostics.
var reasonRules = []struct {
	reason  Reason
	matches func(msg string) bool
}{
	{ReasonNotARepo, containsAny("not a git repository")},
	{ReasonNotFullyMerged, containsAny("not fully merged")},
	{ReasonDeleteCurrent, func(m string) bool {
		return strings.Contains(m, "cannot delete") &&
			(strings.Contains(m, "checked out") || strings.Contains(m, "currently on") ||
				strings.Contains(m, "used by worktree"))
	}},
	{ReasonBranchExists, containsAny("already exists")},
	{ReasonInvalidName, containsAny("not a valid branch name", "is not a valid ref name")},
	{ReasonDetachedHead, containsAny("is not a symbolic ref", "head detached")},
	{ReasonBranchNotFound, containsAny(
		"did not match any file(s) known to git",
		"invalid reference",
		"not a valid object name",
		"unknown revision",
		"bad revision",
		"not found",
		"no such branch",
		"invalid upstream",
	)},
}

func containsAny(needles ...string) func(string) bool {
	return func(m string) bool {
		for _, n := range needles {
			if strings.Contains(m, n) {
				return true
			}
		}
		return false
	}
}

// Classify picks the Reason matching git's diagnostic text.
func Classify(stderr string) Reason {
	msg := strings.ToLower(stderr)
	for _, r := range reasonRules {
		if r.matches(msg) {
			return r.reason
		}
	}
	return ReasonToolFailure
}

// CleanMessage strips git's "error:"/"fatal:" prefixes and "hint:" lines and
// joins what remains onto one line.
func CleanMessage(stderr string) string {
	var parts []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "hint:") {
			continue
		}
		for _, p := range []string{"error: ", "fatal: ", "warning: "} {
			line = strings.TrimPrefix(line, p)
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// newExitError builds a GitError for a git process that exited non-zero.
func newExitError(args []string, res runner.Result) *GitError {
	diag := res.Stderr
	if strings.TrimSpace(diag) == "" {
		diag = res.Stdout
	}
	msg := CleanMessage(diag)
	if msg == "" {
		msg = fmt.Sprintf("git %s exited with status %d", strings.Join(args, " "), res.ExitCode)
	}
	return &GitError{
		Reason:   Classify(diag),
		Message:  msg,
		ExitCode: res.ExitCode,
		Args:     args,
	}
}

// newRunError wraps a runner failure (spawn error, timeout, cancellation).
func newRunError(args []string, err error) *GitError {
	ge := &GitError{
		Reason:   ReasonToolFailure,
		Message:  fmt.Sprintf("git %s: %v", strings.Join(args, " "), err),
		ExitCode: -1,
		Args:     args,
		Err:      err,
	}
	switch {
	case errors.Is(err, runner.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		ge.Reason = ReasonTimeout
	case errors.Is(err, context.Canceled):
		ge.Reason = ReasonCanceled
	}
	return ge
}
