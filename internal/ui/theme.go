package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// StatusColors maps gateway session statuses to badge colors.
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		PanelFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	Panel      lipgloss.Style
	PanelFocus lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// StatusStyle returns a badge style for the given session status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Nord":    nordTheme(),
	"Gruvbox": gruvboxTheme(),
}

var themeOrder = []string{"Dracula", "Nord", "Gruvbox"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Dracula palette: https://draculatheme.com
	return Theme{
		Name: "Dracula",

		Background: "#282a36",
		Surface:    "#343746",

		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",

		Border:      "#44475a",
		BorderFocus: "#bd93f9",

		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Accent:  "#bd93f9", // purple
		Success: "#50fa7b", // green
		Warning: "#f1fa8c", // yellow
		Danger:  "#ff5555", // red

		StatusColors: map[string]string{
			"INITIALIZING": "#8be9fd", // cyan
			"QR_PENDING":   "#f1fa8c", // yellow
			"READY":        "#50fa7b", // green
			"ERROR":        "#ff5555", // red
			"OFFLINE":      "#6272a4", // comment
			"DESTROYING":   "#ffb86c", // orange
		},
	}
}

func nordTheme() Theme {
	// Nord palette: https://www.nordtheme.com
	return Theme{
		Name: "Nord",

		Background: "#2e3440", // nord0
		Surface:    "#3b4252", // nord1

		SelectionBg:   "#434c5e", // nord2
		SelectionText: "#eceff4", // nord6

		Border:      "#4c566a", // nord3
		BorderFocus: "#88c0d0", // nord8

		Text:    "#eceff4", // nord6
		Muted:   "#7b8394",
		Accent:  "#88c0d0", // frost cyan
		Success: "#a3be8c", // green
		Warning: "#ebcb8b", // yellow
		Danger:  "#bf616a", // red

		StatusColors: map[string]string{
			"INITIALIZING": "#88c0d0",
			"QR_PENDING":   "#ebcb8b",
			"READY":        "#a3be8c",
			"ERROR":        "#bf616a",
			"OFFLINE":      "#7b8394",
			"DESTROYING":   "#d08770",
		},
	}
}

func gruvboxTheme() Theme {
	// Gruvbox dark palette: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Gruvbox",

		Background: "#282828", // bg0
		Surface:    "#3c3836", // bg1

		SelectionBg:   "#504945", // bg2
		SelectionText: "#fbf1c7", // fg0

		Border:      "#665c54", // bg3
		BorderFocus: "#fabd2f", // bright yellow

		Text:    "#ebdbb2", // fg1
		Muted:   "#928374", // gray
		Accent:  "#fabd2f",
		Success: "#b8bb26", // bright green
		Warning: "#fe8019", // bright orange
		Danger:  "#fb4934", // bright red

		StatusColors: map[string]string{
			"INITIALIZING": "#83a598",
			"QR_PENDING":   "#fabd2f",
			"READY":        "#b8bb26",
			"ERROR":        "#fb4934",
			"OFFLINE":      "#928374",
			"DESTROYING":   "#fe8019",
		},
	}
}
