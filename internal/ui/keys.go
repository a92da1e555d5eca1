package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zapdeck/zapdeck/internal/prefs"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text inputs swallow everything except the keys that leave them.
	if m.addingSession {
		return m.handleSessionInputKey(msg)
	}
	if m.composing {
		return m.handleReplyKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "1", "d":
		m.currentView = ViewDevices
		return m, nil
	case "2", "c":
		m.currentView = ViewChat
		return m, nil
	case "3", "l":
		m.currentView = ViewLogic
		return m, m.fetchLogicFilesCmd()
	case "tab":
		return m.cycleView()
	case "t":
		return m.cycleTheme()
	}

	switch m.currentView {
	case ViewDevices:
		return m.handleDevicesKey(msg)
	case ViewChat:
		return m.handleChatKey(msg)
	case ViewLogic:
		return m.handleLogicKey(msg)
	}
	return m, nil
}

func (m Model) cycleView() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewDevices:
		m.currentView = ViewChat
	case ViewChat:
		m.currentView = ViewLogic
		return m, m.fetchLogicFilesCmd()
	default:
		m.currentView = ViewDevices
	}
	return m, nil
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	userPrefs := prefs.Load(m.prefsPath)
	userPrefs.Theme = m.theme.Name
	_ = prefs.Save(m.prefsPath, userPrefs)
	return m, nil
}

func (m Model) handleDevicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.snapshot.Sessions

	switch msg.String() {
	case "up", "k":
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}
	case "down", "j":
		if m.sessionCursor < len(sessions)-1 {
			m.sessionCursor++
		}
	case "enter":
		if m.sessionCursor < len(sessions) {
			id := sessions[m.sessionCursor].ID
			ctx, h, prefsPath := m.ctx, m.hub, m.prefsPath
			return m, func() tea.Msg {
				h.SelectSession(ctx, id)
				userPrefs := prefs.Load(prefsPath)
				userPrefs.LastSession = id
				_ = prefs.Save(prefsPath, userPrefs)
				return cmdResultMsg{}
			}
		}
	case "a":
		m.addingSession = true
		m.sessionInput.SetValue("")
		m.sessionInput.Focus()
		return m, nil
	case "r":
		ctx, h := m.ctx, m.hub
		return m, func() tea.Msg {
			h.RetryPairing(ctx)
			return cmdResultMsg{}
		}
	case "R":
		if m.sessionCursor < len(sessions) {
			id := sessions[m.sessionCursor].ID
			ctx, h := m.ctx, m.hub
			return m, func() tea.Msg {
				return cmdResultMsg{action: "restart " + id, err: h.RestartSession(ctx, id)}
			}
		}
	case "x":
		if m.sessionCursor < len(sessions) {
			id := sessions[m.sessionCursor].ID
			ctx, h := m.ctx, m.hub
			return m, func() tea.Msg {
				return cmdResultMsg{action: "delete " + id, err: h.DeleteSession(ctx, id)}
			}
		}
	}
	return m, nil
}

func (m Model) handleSessionInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addingSession = false
		m.sessionInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.sessionInput.Value())
		m.addingSession = false
		m.sessionInput.Blur()
		if name == "" {
			return m, nil
		}
		ctx, h := m.ctx, m.hub
		return m, func() tea.Msg {
			return cmdResultMsg{action: "create " + name, err: h.CreateSession(ctx, name)}
		}
	}
	var cmd tea.Cmd
	m.sessionInput, cmd = m.sessionInput.Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	contacts := m.snapshot.Contacts

	switch msg.String() {
	case "up", "k":
		if m.contactCursor > 0 {
			m.contactCursor--
		}
	case "down", "j":
		if m.contactCursor < len(contacts)-1 {
			m.contactCursor++
		}
	case "enter":
		if m.contactCursor < len(contacts) {
			m.hub.SelectConversation(contacts[m.contactCursor])
			m.refreshSnapshot()
		}
	case "i":
		if m.snapshot.ActiveContact != "" {
			m.composing = true
			m.replyInput.Focus()
		}
	}
	return m, nil
}

func (m Model) handleReplyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.replyInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.replyInput.Value())
		if text == "" {
			return m, nil
		}
		// The composer keeps its text until the gateway accepts the
		// message; a failed send leaves it editable.
		ctx, h := m.ctx, m.hub
		return m, func() tea.Msg {
			return cmdResultMsg{action: "send", err: h.SendReply(ctx, text)}
		}
	}
	var cmd tea.Cmd
	m.replyInput, cmd = m.replyInput.Update(msg)
	return m, cmd
}

func (m Model) handleLogicKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.logicCursor > 0 {
			m.logicCursor--
		}
	case "down", "j":
		if m.logicCursor < len(m.logicFiles)-1 {
			m.logicCursor++
		}
	case "r":
		return m, m.fetchLogicFilesCmd()
	case "x":
		if m.logicCursor < len(m.logicFiles) {
			name := m.logicFiles[m.logicCursor]
			ctx, h := m.ctx, m.hub
			return m, tea.Sequence(
				func() tea.Msg {
					return cmdResultMsg{action: "delete " + name, err: h.DeleteLogicFile(ctx, name)}
				},
				m.fetchLogicFilesCmd(),
			)
		}
	}
	return m, nil
}
