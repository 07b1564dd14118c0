// Package watcher monitors the files git rewrites when branches change and
// notifies the TUI to refresh the branch list. Only ref storage is watched,
// never the working tree, so the number of inotify/kqueue watches stays
// proportional to the number of ref directories.
//
// Watched paths:
//   - <gitdir>/HEAD                → checkouts, detaching
//   - <commondir>/packed-refs      → gc, pack-refs, deletes of packed branches
//   - <commondir>/refs/heads/**    → create, delete, rename, commit
//   - <commondir>/refs/remotes/**  → fetch, push
//
// Branch names containing slashes live in nested directories; directories
// created after startup are added as they appear.
package watcher

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watcher detects ref changes.
type Event struct{}

// Watch monitors ref storage for changes and sends Event values on the
// returned channel. Rapid bursts are coalesced via the debounce window.
//
// gitDir is the (possibly per-worktree) directory holding HEAD; commonDir
// holds refs and packed-refs. They are equal outside linked worktrees.
//
// An error is returned when gitDir or commonDir cannot be watched. The ref
// subtrees are added best-effort since refs/remotes may not exist yet.
//
// Call the returned stop function to tear down the watcher; it may be
// called more than once.
func Watch(gitDir, commonDir string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// HEAD and packed-refs are replaced via rename, so watch their parents.
	roots := []string{gitDir}
	if commonDir != gitDir {
		roots = append(roots, commonDir)
	}
	for _, dir := range roots {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	for _, sub := range []string{"refs/heads", "refs/remotes"} {
		addTree(w, filepath.Join(commonDir, sub))
	}
	// refs/remotes may not exist until the first fetch.
	_ = w.Add(filepath.Join(commonDir, "refs"))

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Random jitter spreads the refresh of several instances watching the
	// same repository.
	jitterRange := debounce / 2

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
						addTree(w, ev.Name)
					}
				}
				if shouldIgnore(ev.Name) || !isRefPath(ev.Name, gitDir, commonDir) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(int64(jitterRange)))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = w.Close()
		})
	}

	return ch, stop, nil
}

// addTree adds root and every directory below it. Missing roots are skipped.
func addTree(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			_ = w.Add(path)
		}
		return nil
	})
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// isRefPath reports whether path is one of the files that define branches.
func isRefPath(path, gitDir, commonDir string) bool {
	switch path {
	case filepath.Join(gitDir, "HEAD"), filepath.Join(commonDir, "packed-refs"):
		return true
	}
	refs := filepath.Join(commonDir, "refs") + string(filepath.Separator)
	rel, ok := strings.CutPrefix(path, refs)
	if !ok {
		return false
	}
	return rel == "heads" || rel == "remotes" ||
		strings.HasPrefix(rel, "heads"+string(filepath.Separator)) ||
		strings.HasPrefix(rel, "remotes"+string(filepath.Separator))
}

// shouldIgnore returns true for events that should not trigger a refresh.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Lock files are transient; the rename that follows carries the change.
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	// Editor swap/temp files that somehow end up in .git.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}

	return false
}
