package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"feature/auth", 20, "feature/auth"},
		{"feature/auth", 8, "feature…"},
		{"feature/auth", 1, "…"},
		{"feature/auth", 0, ""},
		{"ünïcödé", 4, "ünï…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight must not cut: %q", got)
	}
}

func TestScrollWindow(t *testing.T) {
	tests := []struct {
		name                  string
		cursor, total, height int
		start, end            int
	}{
		{"fits", 3, 5, 10, 0, 5},
		{"top", 0, 100, 10, 0, 10},
		{"middle", 50, 100, 10, 45, 55},
		{"bottom", 99, 100, 10, 90, 100},
		{"empty", 0, 0, 10, 0, 0},
		{"no room", 3, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ScrollWindow(tt.cursor, tt.total, tt.height)
			if start != tt.start || end != tt.end {
				t.Errorf("ScrollWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.cursor, tt.total, tt.height, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestSplitWidth(t *testing.T) {
	if l, r := SplitWidth(100, 0.4, 20); l != 40 || r != 60 {
		t.Errorf("SplitWidth(100) = %d, %d", l, r)
	}
	if l, r := SplitWidth(30, 0.4, 20); l != 20 || r != 10 {
		t.Errorf("SplitWidth(30) = %d, %d", l, r)
	}
	if l, r := SplitWidth(10, 0.4, 20); l != 10 || r != 0 {
		t.Errorf("SplitWidth(10) = %d, %d", l, r)
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("light").Bg != LightTheme().Bg {
		t.Error("light theme not selected")
	}
	if ThemeByName("unknown").Bg != DarkTheme().Bg {
		t.Error("unknown names should fall back to dark")
	}
}
