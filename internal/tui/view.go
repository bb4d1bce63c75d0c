package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateFeatures:
		content = m.featureTable.View()
	case StateHolidays:
		content = m.holidayTable.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		statusStyle.Render(m.status()),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for s := SessionState(0); s < stateCount; s++ {
		if m.state == s {
			tabs = append(tabs, activeTabStyle.Render(s.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(s.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) status() string {
	if m.state == StateHolidays {
		return fmt.Sprintf("%d public holidays", len(m.holidays))
	}
	status := fmt.Sprintf("%d of %d days | showing %s", m.Visible(), len(m.rows), m.filter)
	if row, ok := m.Selected(); ok && row.PublicHoliday {
		status += " | " + row.HolidayName.String()
	}
	return status
}
