package ui

func (m Model) renderLogic(s Styles, height int) string {
	innerHeight := max(1, height-2)
	width := max(24, m.width-4)

	title := s.AccentText.Render("Logic files")
	if m.snapshot.Selected != "" {
		title += s.MutedText.Render("  " + m.snapshot.Selected)
	}

	if m.snapshot.Selected == "" {
		body := s.MutedText.Render("select a device first; logic files belong to a device")
		return s.Panel.Width(width).Height(innerHeight).Render(title + "\n" + body)
	}
	if m.logicError != "" {
		body := s.DangerText.Render("could not load logic files") + "\n" +
			s.MutedText.Render(truncate(m.logicError, width)) + "\n\n" +
			s.Text.Render("press r to retry")
		return s.Panel.Width(width).Height(innerHeight).Render(title + "\n" + body)
	}

	rows := make([]string, 0, len(m.logicFiles))
	for _, name := range m.logicFiles {
		rows = append(rows, name)
	}
	if len(rows) == 0 {
		rows = append(rows, s.MutedText.Render("no logic files uploaded for this device"))
	}

	list := renderList(s, rows, m.logicCursor, width, max(1, innerHeight-1))
	return s.PanelFocus.Width(width).Height(innerHeight).Render(title + "\n" + list)
}
