package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderChat(s Styles, height int) string {
	contactsWidth := max(22, m.width/4)
	timelineWidth := max(24, m.width-contactsWidth-6)
	innerHeight := max(1, height-2)

	contacts := m.renderContacts(s, contactsWidth, innerHeight)
	timeline := m.renderTimeline(s, timelineWidth, innerHeight)

	left := s.Panel.Width(contactsWidth).Height(innerHeight).Render(contacts)
	right := s.PanelFocus.Width(timelineWidth).Height(innerHeight).Render(timeline)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderContacts(s Styles, width, height int) string {
	contacts := m.snapshot.Contacts

	title := s.AccentText.Render("Contacts")
	if m.snapshot.Selected != "" {
		title += s.MutedText.Render("  " + m.snapshot.Selected)
	}

	rows := make([]string, 0, len(contacts))
	for _, c := range contacts {
		marker := "  "
		if c == m.snapshot.ActiveContact {
			marker = s.AccentText.Render("* ")
		}
		rows = append(rows, marker+c)
	}
	if len(rows) == 0 {
		rows = append(rows, s.MutedText.Render("no conversations yet"))
	}

	return title + "\n" + renderList(s, rows, m.contactCursor, width, max(1, height-1))
}

func (m Model) renderTimeline(s Styles, width, height int) string {
	if m.snapshot.ActiveContact == "" {
		return s.MutedText.Render("open a conversation to see its messages")
	}

	title := s.AccentText.Render(m.snapshot.ActiveContact)

	input := s.MutedText.Render("press i to reply")
	if m.composing {
		input = m.replyInput.View()
	}

	// Only the visible tail matters; older history lives on the phone.
	bodyHeight := max(1, height-3)
	lines := make([]string, 0, len(m.snapshot.Timeline))
	for _, msg := range m.snapshot.Timeline {
		clock := "--:--"
		if t := msg.ParsedTimestamp(); !t.IsZero() {
			clock = t.Local().Format("15:04")
		}
		who := msg.From
		style := s.Text
		if msg.IsMine {
			who = "me"
			style = s.AccentText
		}
		body := truncate(msg.Body, max(4, width-len([]rune(clock+" "+who+": "))))
		lines = append(lines, s.MutedText.Render(clock+" ")+style.Render(who+": ")+body)
	}
	if len(lines) > bodyHeight {
		lines = lines[len(lines)-bodyHeight:]
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}

	return title + "\n" + strings.Join(lines, "\n") + "\n" + input
}
