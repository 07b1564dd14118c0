package git

import (
	"fmt"
	"strings"
	"time"
)

// SyncStatus describes how a branch relates to its upstream.
type SyncStatus int

// Sync states. NoRemote is the zero value so an untracked branch needs no setup.
const (
	SyncNoRemote SyncStatus = iota
	SyncSynced
	SyncAhead
	SyncBehind
	SyncDiverged
)

var syncGlyphs = [...]string{
	SyncNoRemote: "",
	SyncSynced:   "=",
	SyncAhead:    "↑",
	SyncBehind:   "↓",
	SyncDiverged: "↕",
}

var syncNames = [...]string{
	SyncNoRemote: "no remote",
	SyncSynced:   "synced",
	SyncAhead:    "ahead",
	SyncBehind:   "behind",
	SyncDiverged: "diverged",
}

// Glyph returns the single-character marker for the status, or "" for NoRemote.
func (s SyncStatus) Glyph() string {
	if s < 0 || int(s) >= len(syncGlyphs) {
		return ""
	}
	return syncGlyphs[s]
}

// String returns a lower-case label.
func (s SyncStatus) String() string {
	if s < 0 || int(s) >= len(syncNames) {
		return fmt.Sprintf("SyncStatus(%d)", int(s))
	}
	return syncNames[s]
}

// SyncStatusFor derives the status from upstream presence and ahead/behind counts.
func SyncStatusFor(hasUpstream bool, ahead, behind int) SyncStatus {
	switch {
	case !hasUpstream:
		return SyncNoRemote
	case ahead > 0 && behind > 0:
		return SyncDiverged
	case ahead > 0:
		return SyncAhead
	case behind > 0:
		return SyncBehind
	default:
		return SyncSynced
	}
}

// Branch is a local or remote-tracking branch as of the last listing.
type Branch struct {
	Name         string
	IsCurrent    bool
	Upstream     string // Remote tracking ref, e.g. "origin/main". Empty when none.
	UpstreamGone bool   // Upstream is configured but no longer exists.
	Sync         SyncStatus
	Ahead        int
	Behind       int
	Hash         string // Short object id of the tip.
	Subject      string // Subject of the tip commit.
	Remote       bool   // Listed from refs/remotes.
}

// IsRemote reports whether the branch is a remote-tracking ref rather than a local branch.
func (b Branch) IsRemote() bool {
	return b.Remote || strings.HasPrefix(b.Name, "origin/") || strings.HasPrefix(b.Name, "remotes/")
}

// DisplayName renders the branch on a single line: current marker, name and sync glyph.
func (b Branch) DisplayName() string {
	marker := "  "
	if b.IsCurrent {
		marker = "* "
	}
	if g := b.Sync.Glyph(); g != "" {
		return marker + b.Name + " [" + g + "]"
	}
	return marker + b.Name
}

// Commit is a single entry of a branch history.
type Commit struct {
	Hash      string
	ShortHash string
	Subject   string
	Author    string
	Date      time.Time // Zero when the query omitted it.
}

// HasDate reports whether the commit carries a timestamp.
func (c Commit) HasDate() bool { return !c.Date.IsZero() }

// DisplayLine returns "<short hash> <subject>".
func (c Commit) DisplayLine() string { return c.ShortHash + " " + c.Subject }

// ChangeType classifies a changed file.
type ChangeType byte

// Change types, keyed by git's status letter.
const (
	ChangeModified    ChangeType = 'M'
	ChangeAdded       ChangeType = 'A'
	ChangeDeleted     ChangeType = 'D'
	ChangeRenamed     ChangeType = 'R'
	ChangeCopied      ChangeType = 'C'
	ChangeTypeChanged ChangeType = 'T'
	ChangeUnmerged    ChangeType = 'U'
	ChangeUntracked   ChangeType = '?'
)

// Code returns the single-letter code.
func (c ChangeType) Code() string { return string(c) }

// Label returns a human-readable description.
func (c ChangeType) Label() string {
	switch c {
	case ChangeAdded:
		return "Added"
	case ChangeDeleted:
		return "Deleted"
	case ChangeRenamed:
		return "Renamed"
	case ChangeCopied:
		return "Copied"
	case ChangeTypeChanged:
		return "Type Changed"
	case ChangeUnmerged:
		return "Unmerged"
	case ChangeUntracked:
		return "Untracked"
	default:
		return "Modified"
	}
}

// changeTypeFromCode maps a status token ("M", "MM", " D", "??", "R100") to a
// ChangeType. Anything unrecognised is treated as a modification.
func changeTypeFromCode(code string) ChangeType {
	code = strings.TrimSpace(code)
	if code == "" {
		return ChangeModified
	}
	if strings.HasPrefix(code, "??") {
		return ChangeUntracked
	}
	switch ct := ChangeType(code[0]); ct {
	case ChangeModified, ChangeAdded, ChangeDeleted, ChangeRenamed,
		ChangeCopied, ChangeTypeChanged, ChangeUnmerged:
		return ct
	}
	return ChangeModified
}

// FileChange is one file that differs between two refs.
type FileChange struct {
	Path      string
	OrigPath  string // Source path for renames and copies.
	Type      ChangeType
	Additions int
	Deletions int
	HasStats  bool // Additions/Deletions are known (false for binaries and pure renames).
}

// DisplayLine returns "<code> <path>" with a "+A-D" suffix when stats are known.
func (f FileChange) DisplayLine() string {
	line := f.Type.Code() + " " + f.Path
	if f.HasStats {
		line += fmt.Sprintf(" +%d-%d", f.Additions, f.Deletions)
	}
	return line
}

// ParseFileChange parses one line of status output: a status token followed by
// whitespace and a path. It never fails; malformed input degrades to a
// modification of whatever path text is present.
func ParseFileChange(line string) FileChange {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimLeft(line, " \t")
	idx := strings.IndexAny(trimmed, " \t")
	if idx < 0 {
		return FileChange{Path: strings.TrimSpace(trimmed), Type: ChangeModified}
	}
	code := trimmed[:idx]
	rest := strings.TrimSpace(trimmed[idx:])
	fc := FileChange{Path: rest, Type: changeTypeFromCode(code)}

	// Renames and copies carry "old<TAB>new" (name-status) or "old -> new" (porcelain).
	if fc.Type == ChangeRenamed || fc.Type == ChangeCopied {
		if before, after, ok := strings.Cut(rest, "\t"); ok {
			fc.OrigPath, fc.Path = before, strings.TrimSpace(after)
		} else if before, after, ok := strings.Cut(rest, " -> "); ok {
			fc.OrigPath, fc.Path = before, after
		}
	}
	return fc
}
