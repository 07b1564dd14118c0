package git

import (
	"strings"
	"testing"
)

func branchLine(fields ...string) string { return strings.Join(fields, "\x00") }

func TestParseBranchOutput(t *testing.T) {
	out := strings.Join([]string{
		branchLine("", "refs/heads/feature/auth", "feature/auth", "origin/feature/auth", "[ahead 2]", "1a2b3c4", "Add auth"),
		branchLine("*", "refs/heads/main", "main", "origin/main", "", "5d6e7f8", "Initial commit"),
		branchLine("", "refs/heads/old", "old", "origin/old", "[gone]", "9a9a9a9", "Old work"),
		branchLine("", "refs/heads/wip", "wip", "origin/wip", "[ahead 1, behind 3]", "abcdef0", "WIP: spaces in subject"),
		branchLine("", "refs/heads/solo", "solo", "", "", "0000001", "Solo"),
		branchLine("", "refs/remotes/origin/HEAD", "origin", "", "", "5d6e7f8", "Initial commit"),
		branchLine("", "refs/remotes/origin/main", "origin/main", "", "", "5d6e7f8", "Initial commit"),
		"garbage line",
	}, "\n") + "\n"

	got := ParseBranchOutput(out)
	if len(got) != 6 {
		t.Fatalf("got %d branches, want 6: %+v", len(got), got)
	}

	wantNames := []string{"feature/auth", "main", "old", "wip", "solo", "origin/main"}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("branch %d = %q, want %q (order must be preserved)", i, got[i].Name, name)
		}
	}

	if !got[1].IsCurrent || got[0].IsCurrent {
		t.Error("current marker not resolved to main")
	}
	if got[0].Sync != SyncAhead || got[0].Ahead != 2 {
		t.Errorf("feature/auth = %v ahead %d, want ahead 2", got[0].Sync, got[0].Ahead)
	}
	if got[1].Sync != SyncSynced {
		t.Errorf("main = %v, want synced", got[1].Sync)
	}
	if got[2].Sync != SyncNoRemote || !got[2].UpstreamGone {
		t.Errorf("old = %v gone=%v, want no remote, gone", got[2].Sync, got[2].UpstreamGone)
	}
	if got[3].Sync != SyncDiverged || got[3].Ahead != 1 || got[3].Behind != 3 {
		t.Errorf("wip = %v %d/%d, want diverged 1/3", got[3].Sync, got[3].Ahead, got[3].Behind)
	}
	if got[3].Subject != "WIP: spaces in subject" {
		t.Errorf("wip subject = %q", got[3].Subject)
	}
	if got[4].Sync != SyncNoRemote || got[4].Upstream != "" {
		t.Errorf("solo = %v upstream %q, want no remote", got[4].Sync, got[4].Upstream)
	}
	if !got[5].IsRemote() || got[4].IsRemote() {
		t.Error("remote detection wrong")
	}
}

func TestParseBranchOutputEmpty(t *testing.T) {
	if got := ParseBranchOutput(""); got != nil {
		t.Errorf("ParseBranchOutput(\"\") = %v, want nil", got)
	}
}

func TestParseTrack(t *testing.T) {
	tests := []struct {
		in            string
		ahead, behind int
		gone          bool
	}{
		{"", 0, 0, false},
		{"[gone]", 0, 0, true},
		{"[ahead 2]", 2, 0, false},
		{"[behind 7]", 0, 7, false},
		{"[ahead 3, behind 4]", 3, 4, false},
		{"[ahead x]", 0, 0, false},
	}
	for _, tt := range tests {
		a, b, g := ParseTrack(tt.in)
		if a != tt.ahead || b != tt.behind || g != tt.gone {
			t.Errorf("ParseTrack(%q) = %d,%d,%v want %d,%d,%v", tt.in, a, b, g, tt.ahead, tt.behind, tt.gone)
		}
	}
}

func TestParseLogOutput(t *testing.T) {
	out := "aaaa1111\x00aaaa\x00Alice\x001705314600\x00Second\x01\n" +
		"bbbb2222\x00bbbb\x00Bob\x00\x00First\x01\n"

	got := ParseLogOutput(out)
	if len(got) != 2 {
		t.Fatalf("got %d commits, want 2", len(got))
	}
	if got[0].Subject != "Second" || got[0].ShortHash != "aaaa" || got[0].Author != "Alice" {
		t.Errorf("first commit = %+v", got[0])
	}
	if !got[0].HasDate() || got[0].Date.Unix() != 1705314600 {
		t.Errorf("first commit date = %v", got[0].Date)
	}
	if got[1].HasDate() {
		t.Error("second commit should have no date")
	}
	if got[1].DisplayLine() != "bbbb First" {
		t.Errorf("DisplayLine() = %q", got[1].DisplayLine())
	}
}

func TestParseNameStatusAndNumstat(t *testing.T) {
	nameStatus := "A\x00auth.py\x00M\x00README.md\x00R100\x00old.go\x00new.go\x00D\x00gone.txt\x00M\x00logo.png\x00"
	numstat := "3\t0\tauth.py\x001\t1\tREADME.md\x000\t0\t\x00old.go\x00new.go\x000\t5\tgone.txt\x00-\t-\tlogo.png\x00"

	changes := ParseNameStatusZ(nameStatus)
	mergeStats(changes, ParseNumstatZ(numstat))

	want := []struct {
		display string
		typ     ChangeType
	}{
		{"A auth.py +3-0", ChangeAdded},
		{"M README.md +1-1", ChangeModified},
		{"R new.go", ChangeRenamed},
		{"D gone.txt +0-5", ChangeDeleted},
		{"M logo.png", ChangeModified},
	}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d", len(changes), len(want))
	}
	for i, w := range want {
		if changes[i].DisplayLine() != w.display || changes[i].Type != w.typ {
			t.Errorf("change %d = %q (%c), want %q (%c)",
				i, changes[i].DisplayLine(), changes[i].Type, w.display, w.typ)
		}
	}
	if changes[2].OrigPath != "old.go" {
		t.Errorf("rename OrigPath = %q, want old.go", changes[2].OrigPath)
	}
}

func TestParseNameStatusZEmpty(t *testing.T) {
	for _, in := range []string{"", "\x00", "M\x00"} {
		if got := ParseNameStatusZ(in); got != nil {
			t.Errorf("ParseNameStatusZ(%q) = %v, want nil", in, got)
		}
	}
}

func TestParseNameStatusZKeepsRawPaths(t *testing.T) {
	out := "A\x00caf\u00e9.txt\x00M\x00with\ttab.txt\x00C75\x00a b.go\x00c d.go\x00"
	got := ParseNameStatusZ(out)
	if len(got) != 3 {
		t.Fatalf("got %d changes: %+v", len(got), got)
	}
	if got[0].Path != "caf\u00e9.txt" || got[0].Type != ChangeAdded {
		t.Errorf("change 0 = %+v", got[0])
	}
	if got[1].Path != "with\ttab.txt" {
		t.Errorf("change 1 path = %q", got[1].Path)
	}
	if got[2].Type != ChangeCopied || got[2].OrigPath != "a b.go" || got[2].Path != "c d.go" {
		t.Errorf("change 2 = %+v", got[2])
	}
}
