package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
type Theme struct {
	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Added    lipgloss.Color
	Modified lipgloss.Color
	Deleted  lipgloss.Color
	Renamed  lipgloss.Color
	Conflict lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	CommitHash  lipgloss.Color
	BranchLocal lipgloss.Color
	BranchHead  lipgloss.Color
	Remote      lipgloss.Color

	Synced   lipgloss.Color
	Ahead    lipgloss.Color
	Behind   lipgloss.Color
	Diverged lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Added:    lipgloss.Color("#a6e3a1"),
		Modified: lipgloss.Color("#f9e2af"),
		Deleted:  lipgloss.Color("#f38ba8"),
		Renamed:  lipgloss.Color("#89dceb"),
		Conflict: lipgloss.Color("#fab387"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		CommitHash:  lipgloss.Color("#f9e2af"),
		BranchLocal: lipgloss.Color("#a6e3a1"),
		BranchHead:  lipgloss.Color("#89b4fa"),
		Remote:      lipgloss.Color("#f38ba8"),

		Synced:   lipgloss.Color("#a6e3a1"),
		Ahead:    lipgloss.Color("#89dceb"),
		Behind:   lipgloss.Color("#fab387"),
		Diverged: lipgloss.Color("#f38ba8"),
	}
}

// LightTheme returns a light theme (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#ccd0da"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#7287fd"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#9ca0b0"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Added:    lipgloss.Color("#40a02b"),
		Modified: lipgloss.Color("#df8e1d"),
		Deleted:  lipgloss.Color("#d20f39"),
		Renamed:  lipgloss.Color("#04a5e5"),
		Conflict: lipgloss.Color("#fe640b"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		CommitHash:  lipgloss.Color("#df8e1d"),
		BranchLocal: lipgloss.Color("#40a02b"),
		BranchHead:  lipgloss.Color("#1e66f5"),
		Remote:      lipgloss.Color("#d20f39"),

		Synced:   lipgloss.Color("#40a02b"),
		Ahead:    lipgloss.Color("#04a5e5"),
		Behind:   lipgloss.Color("#fe640b"),
		Diverged: lipgloss.Color("#d20f39"),
	}
}

// ThemeByName returns the named theme, falling back to the dark theme.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	StatusBar lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// List items
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDimmed   lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	KeyBind  lipgloss.Style
	KeyDesc  lipgloss.Style

	// Changed files
	FileAdded    lipgloss.Style
	FileModified lipgloss.Style
	FileDeleted  lipgloss.Style
	FileRenamed  lipgloss.Style
	FileConflict lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHeader     lipgloss.Style
	DiffHunkHeader lipgloss.Style

	// Commits and branches
	CommitHash lipgloss.Style
	CommitMsg  lipgloss.Style
	Author     lipgloss.Style
	Date       lipgloss.Style
	BranchName lipgloss.Style
	BranchHead lipgloss.Style
	RemoteName lipgloss.Style

	// Sync badges
	SyncSynced   lipgloss.Style
	SyncAhead    lipgloss.Style
	SyncBehind   lipgloss.Style
	SyncDiverged lipgloss.Style

	Spinner lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)

	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	s.PanelFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused)
	s.PanelTitle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	s.ListItem = lipgloss.NewStyle().Foreground(t.Text)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true)
	s.ListDimmed = lipgloss.NewStyle().Foreground(t.TextSubtle)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Subtitle = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.FileAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.FileModified = lipgloss.NewStyle().Foreground(t.Modified)
	s.FileDeleted = lipgloss.NewStyle().Foreground(t.Deleted).Strikethrough(true)
	s.FileRenamed = lipgloss.NewStyle().Foreground(t.Renamed)
	s.FileConflict = lipgloss.NewStyle().Foreground(t.Conflict).Bold(true)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.DiffHeader = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)

	s.CommitHash = lipgloss.NewStyle().Foreground(t.CommitHash)
	s.CommitMsg = lipgloss.NewStyle().Foreground(t.Text)
	s.Author = lipgloss.NewStyle().Foreground(t.Primary)
	s.Date = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.BranchName = lipgloss.NewStyle().Foreground(t.BranchLocal)
	s.BranchHead = lipgloss.NewStyle().Foreground(t.BranchHead).Bold(true)
	s.RemoteName = lipgloss.NewStyle().Foreground(t.Remote)

	s.SyncSynced = lipgloss.NewStyle().Foreground(t.Synced)
	s.SyncAhead = lipgloss.NewStyle().Foreground(t.Ahead).Bold(true)
	s.SyncBehind = lipgloss.NewStyle().Foreground(t.Behind).Bold(true)
	s.SyncDiverged = lipgloss.NewStyle().Foreground(t.Diverged).Bold(true)

	s.Spinner = lipgloss.NewStyle().Foreground(t.Primary)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
