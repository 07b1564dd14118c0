// Package runner executes external commands with captured output.
//
// Every call spawns exactly one process. Arguments are handed to os/exec
// verbatim, never to a shell. A non-zero exit status is not an error here:
// it is reported in Result.ExitCode and the caller decides what it means.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single invocation when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when a process exceeds the runner's timeout.
var ErrTimeout = errors.New("command timed out")

// Command describes a single invocation.
type Command struct {
	Dir  string   // Working directory.
	Args []string // Arguments, excluding the binary name.
	Env  []string // Extra KEY=VALUE pairs appended to the inherited environment.
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool { return r.ExitCode == 0 }

// Runner runs commands. Implementations must be safe for concurrent use.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Exec runs a fixed binary through os/exec.
type Exec struct {
	Binary  string
	Timeout time.Duration
}

// Compile-time check.
var _ Runner = (*Exec)(nil)

// NewExec returns a runner for binary with the given per-call timeout.
// A zero timeout means DefaultTimeout.
func NewExec(binary string, timeout time.Duration) *Exec {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exec{Binary: binary, Timeout: timeout}
}

type outcome struct {
	res Result
	err error
}

// Run starts the process and waits for it or for ctx, whichever comes first.
// When ctx is done first the process is left to finish under its own timeout
// and its result is dropped.
func (e *Exec) Run(ctx context.Context, cmd Command) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := e.exec(cmd)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (e *Exec) exec(c Command) (Result, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Binary, c.Args...)
	cmd.Dir = c.Dir
	// LC_ALL=C keeps diagnostics in English so callers can classify them.
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.Env = append(cmd.Env, c.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctx.Err() == context.DeadlineExceeded {
		res.ExitCode = -1
		return res, fmt.Errorf("%s after %s: %w", e.Binary, timeout, ErrTimeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("starting %s: %w", e.Binary, err)
	}
	return res, nil
}
