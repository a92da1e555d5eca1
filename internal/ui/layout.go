package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderMain() string {
	s := m.theme.Styles()

	header := m.renderHeader(s)
	banner := m.renderBanner(s)
	footer := m.renderFooter(s)

	used := lipgloss.Height(header) + lipgloss.Height(footer)
	if banner != "" {
		used += lipgloss.Height(banner)
	}
	bodyHeight := max(3, m.height-used)

	var body string
	switch m.currentView {
	case ViewDevices:
		body = m.renderDevices(s, bodyHeight)
	case ViewChat:
		body = m.renderChat(s, bodyHeight)
	case ViewLogic:
		body = m.renderLogic(s, bodyHeight)
	}

	parts := []string{header}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(s Styles) string {
	logo := s.Logo.Render("zapdeck")

	tabs := make([]string, 0, 3)
	for i, label := range []string{"1:devices", "2:chat", "3:logic"} {
		if View(i) == m.currentView {
			tabs = append(tabs, s.AccentText.Render(label))
		} else {
			tabs = append(tabs, s.MutedText.Render(label))
		}
	}

	stream := s.DangerText.Render("○ stream")
	if m.snapshot.StreamConnected {
		stream = s.SuccessText.Render("● stream")
	}
	assistant := s.MutedText.Render("○ assistant")
	if m.snapshot.AssistantOK {
		assistant = s.SuccessText.Render("● assistant")
	}

	who := m.account.Username
	if who == "" {
		who = "not logged in"
	}

	left := logo + "  " + strings.Join(tabs, " ")
	right := stream + "  " + assistant + "  " + s.MutedText.Render(who)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return s.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderBanner(s Styles) string {
	if m.snapshot.Banner == "" {
		return ""
	}
	return s.DangerText.Width(m.width).Padding(0, 1).Render(truncate(m.snapshot.Banner, m.width-2))
}

func (m Model) renderFooter(s Styles) string {
	if m.notice != "" {
		style := s.Footer
		if strings.Contains(m.notice, "failed") {
			style = style.Foreground(s.DangerText.GetForeground())
		}
		return style.Width(m.width).Render(truncate(m.notice, m.width-2))
	}

	var hints string
	switch {
	case m.addingSession, m.composing:
		hints = "enter confirm · esc cancel"
	case m.currentView == ViewDevices:
		hints = "j/k move · enter select · a add · R restart · x delete · r retry · t theme · ? help · q quit"
	case m.currentView == ViewChat:
		hints = "j/k move · enter open · i reply · t theme · ? help · q quit"
	default:
		hints = "j/k move · r reload · x delete · t theme · ? help · q quit"
	}
	return s.Footer.Width(m.width).Render(truncate(hints, m.width-2))
}

// renderList draws rows with a cursor marker, truncated to the pane
// width, padded to height.
func renderList(s Styles, rows []string, cursor, width, height int) string {
	// MaxWidth clips styled rows without cutting escape sequences.
	clip := lipgloss.NewStyle().MaxWidth(width - 2)
	var b strings.Builder
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= len(rows) {
			continue
		}
		line := clip.Render(rows[i])
		if i == cursor {
			b.WriteString(s.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
