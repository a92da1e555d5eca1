package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zapdeck/zapdeck/internal/gateway"
)

func (m Model) renderDevices(s Styles, height int) string {
	listWidth := max(26, m.width*2/5)
	paneWidth := max(20, m.width-listWidth-6)
	innerHeight := max(1, height-2)

	list := m.renderSessionList(s, listWidth, innerHeight)
	pane := m.renderPairingPane(s, paneWidth, innerHeight)

	left := s.PanelFocus.Width(listWidth).Height(innerHeight).Render(list)
	right := s.Panel.Width(paneWidth).Height(innerHeight).Render(pane)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderSessionList(s Styles, width, height int) string {
	sessions := m.snapshot.Sessions

	title := s.AccentText.Render("Devices") + s.MutedText.Render("  "+countLabel(len(sessions), "device"))
	if m.addingSession {
		title = s.AccentText.Render("New device: ") + m.sessionInput.View()
	}

	rows := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		marker := "  "
		if sess.ID == m.snapshot.Selected {
			marker = s.AccentText.Render("* ")
		}
		badge := s.StatusStyle(string(sess.Status)).Render(string(sess.Status))
		rows = append(rows, marker+sess.ID+" "+badge)
	}
	if len(rows) == 0 {
		rows = append(rows, s.MutedText.Render("no devices yet · press a to add one"))
	}

	return title + "\n" + renderList(s, rows, m.sessionCursor, width, max(1, height-1))
}

// renderPairingPane shows pairing progress for the selected session.
// The artifact only ever belongs to the current selection; everything
// else here is derived from live status.
func (m Model) renderPairingPane(s Styles, width, _ int) string {
	sess, ok := m.snapshot.SelectedSession()
	if !ok {
		return s.MutedText.Render("select a device to see pairing status")
	}

	title := s.AccentText.Render("Pairing: " + sess.ID)
	health := m.snapshot.Poll

	switch {
	case health.Disabled():
		return title + "\n\n" +
			s.DangerText.Render("gateway unreachable") + "\n" +
			s.MutedText.Render(fmt.Sprintf("%d failed pairing fetches in a row", health.Failures)) + "\n\n" +
			s.Text.Render("press r to retry")

	case sess.Status == gateway.StatusReady:
		return title + "\n\n" +
			s.SuccessText.Render("device connected") + "\n" +
			s.MutedText.Render("messages will appear in the chat view")

	case m.snapshot.Artifact != "" && sess.Status.Pairing():
		return title + "\n\n" +
			s.Text.Render("scan this code from the phone:") + "\n\n" +
			s.AccentText.Render(truncate(m.snapshot.Artifact, width)) + "\n\n" +
			s.MutedText.Render("the code refreshes automatically")

	case sess.Status.Pairing():
		line := s.WarningText.Render("waiting for pairing code…")
		if health.Failures > 0 {
			line += "\n" + s.MutedText.Render(fmt.Sprintf("retrying (%d failed so far)", health.Failures))
		}
		return title + "\n\n" + line

	default:
		return title + "\n\n" +
			s.Text.Render("status: ") + s.StatusStyle(string(sess.Status)).Render(string(sess.Status)) + "\n" +
			s.MutedText.Render("press R to restart the device")
	}
}
