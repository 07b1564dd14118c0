package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── Branch parsing ──────────────────────────────────────────────────────────

// branchFormat is the for-each-ref format. Fields are NUL-separated so names
// and subjects containing spaces survive intact.
const branchFormat = "%(HEAD)%00%(refname)%00%(refname:short)%00%(upstream:short)%00%(upstream:track)%00%(objectname:short)%00%(subject)"

const branchFields = 7

// ParseBranchOutput parses `git for-each-ref --format=<branchFormat>`.
// Output order is preserved.
func ParseBranchOutput(out string) []Branch {
	if len(out) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	branches := make([]Branch, 0, len(lines))
	for _, line := range lines {
		if b, ok := parseBranchLine(line); ok {
			branches = append(branches, b)
		}
	}
	return branches
}

func parseBranchLine(line string) (Branch, bool) {
	parts := strings.SplitN(line, "\x00", branchFields)
	if len(parts) < branchFields {
		return Branch{}, false
	}
	fullRef := strings.TrimSpace(parts[1])
	// refs/remotes/<remote>/HEAD is a symref, not a branch.
	if strings.HasPrefix(fullRef, "refs/remotes/") && strings.HasSuffix(fullRef, "/HEAD") {
		return Branch{}, false
	}
	b := Branch{
		IsCurrent: strings.TrimSpace(parts[0]) == "*",
		Name:      strings.TrimSpace(parts[2]),
		Upstream:  strings.TrimSpace(parts[3]),
		Hash:      strings.TrimSpace(parts[5]),
		Subject:   strings.TrimSpace(parts[6]),
		Remote:    strings.HasPrefix(fullRef, "refs/remotes/"),
	}
	if b.Name == "" {
		return Branch{}, false
	}

	var gone bool
	b.Ahead, b.Behind, gone = ParseTrack(parts[4])
	if gone {
		b.UpstreamGone = true
	}
	b.Sync = SyncStatusFor(b.Upstream != "" && !b.UpstreamGone, b.Ahead, b.Behind)
	return b, true
}

// ParseTrack parses %(upstream:track): "", "[gone]", "[ahead 2]",
// "[behind 1]" or "[ahead 2, behind 1]".
func ParseTrack(track string) (ahead, behind int, gone bool) {
	track = strings.TrimSpace(track)
	track = strings.TrimPrefix(track, "[")
	track = strings.TrimSuffix(track, "]")
	if track == "" {
		return 0, 0, false
	}
	if track == "gone" {
		return 0, 0, true
	}
	for _, part := range strings.Split(track, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			continue
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			continue
		}
		switch fields[0] {
		case "ahead":
			ahead = n
		case "behind":
			behind = n
		}
	}
	return ahead, behind, false
}

// ── Log parsing ─────────────────────────────────────────────────────────────

const (
	logFormat    = "%H%x00%h%x00%an%x00%at%x00%s"
	logSeparator = "%x01"
	logFields    = 5
)

// LogFormatFlag returns the --format flag for git log.
func LogFormatFlag() string {
	return fmt.Sprintf("--format=%s%s", logFormat, logSeparator)
}

// ParseLogOutput parses git log output produced with LogFormatFlag.
func ParseLogOutput(out string) []Commit {
	if len(out) == 0 {
		return nil
	}
	commits := make([]Commit, 0, 16)
	for len(out) > 0 {
		idx := strings.IndexByte(out, '\x01')
		var entry string
		if idx < 0 {
			entry, out = out, ""
		} else {
			entry, out = out[:idx], out[idx+1:]
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if c, ok := parseCommitEntry(entry); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

func parseCommitEntry(entry string) (Commit, bool) {
	parts := strings.SplitN(entry, "\x00", logFields)
	if len(parts) < logFields {
		return Commit{}, false
	}
	c := Commit{
		Hash:      strings.TrimSpace(parts[0]),
		ShortHash: strings.TrimSpace(parts[1]),
		Author:    strings.TrimSpace(parts[2]),
		Subject:   strings.TrimSpace(parts[4]),
	}
	if ts, err := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64); err == nil && ts > 0 {
		c.Date = time.Unix(ts, 0)
	}
	return c, c.Hash != ""
}

// ── Diff parsing ────────────────────────────────────────────────────────────

// ParseNameStatusZ parses `git diff --name-status -z`. Records are
// "status\0path\0", or "Rnnn\0old\0new\0" for renames and copies. Paths are
// raw bytes, never C-quoted. A truncated trailing record is dropped.
func ParseNameStatusZ(out string) []FileChange {
	fields := strings.Split(out, "\x00")
	var changes []FileChange
	for i := 0; i < len(fields); {
		code := strings.TrimSpace(fields[i])
		i++
		if code == "" {
			continue
		}
		fc := FileChange{Type: changeTypeFromCode(code)}
		if fc.Type == ChangeRenamed || fc.Type == ChangeCopied {
			if i+1 >= len(fields) {
				break
			}
			fc.OrigPath, fc.Path = fields[i], fields[i+1]
			i += 2
		} else {
			if i >= len(fields) {
				break
			}
			fc.Path = fields[i]
			i++
		}
		if fc.Path == "" {
			continue
		}
		changes = append(changes, fc)
	}
	return changes
}

// fileStat holds one numstat record.
type fileStat struct {
	additions, deletions int
	binary               bool
}

// ParseNumstatZ parses `git diff --numstat -z`. Regular records are
// "A\tD\tpath\0"; renames are "A\tD\t\0old\0new\0". Binary files report "-".
// The result is keyed by the destination path.
func ParseNumstatZ(out string) map[string]fileStat {
	stats := make(map[string]fileStat)
	for len(out) > 0 {
		nul := strings.IndexByte(out, '\x00')
		var rec string
		if nul < 0 {
			rec, out = out, ""
		} else {
			rec, out = out[:nul], out[nul+1:]
		}
		rec = strings.TrimLeft(rec, "\n")
		if rec == "" {
			continue
		}
		fields := strings.SplitN(rec, "\t", 3)
		if len(fields) < 3 {
			continue
		}
		path := fields[2]
		if path == "" {
			// Rename: old path and new path follow as separate NUL fields.
			for i := 0; i < 2; i++ {
				nul = strings.IndexByte(out, '\x00')
				if nul < 0 {
					path, out = out, ""
					break
				}
				path, out = out[:nul], out[nul+1:]
			}
		}
		var st fileStat
		if fields[0] == "-" || fields[1] == "-" {
			st.binary = true
		} else {
			st.additions, _ = strconv.Atoi(fields[0])
			st.deletions, _ = strconv.Atoi(fields[1])
		}
		stats[path] = st
	}
	return stats
}

// mergeStats copies numstat counts onto matching changes. Pure renames with
// no content change and binary files are left without stats.
func mergeStats(changes []FileChange, stats map[string]fileStat) {
	for i := range changes {
		st, ok := stats[changes[i].Path]
		if !ok || st.binary {
			continue
		}
		if changes[i].Type == ChangeRenamed && st.additions == 0 && st.deletions == 0 {
			continue
		}
		changes[i].Additions = st.additions
		changes[i].Deletions = st.deletions
		changes[i].HasStats = true
	}
}
