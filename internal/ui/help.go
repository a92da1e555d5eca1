package ui

import "strings"

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"Global", [][2]string{
		{"1 / d", "devices view"},
		{"2 / c", "chat view"},
		{"3 / l", "logic files view"},
		{"tab", "next view"},
		{"t", "cycle theme"},
		{"?", "toggle this help"},
		{"q / ctrl+c", "quit"},
	}},
	{"Devices", [][2]string{
		{"j / k", "move cursor"},
		{"enter", "select device"},
		{"a", "add device"},
		{"R", "restart device"},
		{"x", "delete device"},
		{"r", "retry pairing after repeated failures"},
	}},
	{"Chat", [][2]string{
		{"j / k", "move cursor"},
		{"enter", "open conversation"},
		{"i", "compose reply"},
		{"esc", "leave composer"},
	}},
	{"Logic files", [][2]string{
		{"r", "reload list"},
		{"x", "delete file"},
	}},
}

func (m Model) renderHelp() string {
	s := m.theme.Styles()

	var b strings.Builder
	b.WriteString(s.Logo.Render("zapdeck") + s.MutedText.Render("  keyboard reference") + "\n\n")
	for _, section := range helpSections {
		b.WriteString(s.AccentText.Render(section.title) + "\n")
		for _, k := range section.keys {
			b.WriteString("  " + s.Text.Render(padRight(k[0], 12)) + s.MutedText.Render(k[1]) + "\n")
		}
		b.WriteByte('\n')
	}
	b.WriteString(s.MutedText.Render("gateway: "+m.config.APIBaseURL()) + "\n")
	b.WriteString(s.MutedText.Render("press any key to close"))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
