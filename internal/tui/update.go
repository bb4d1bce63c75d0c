package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// chrome is the number of lines taken by tabs, status line, help and margins.
const chrome = 8

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - chrome; h > 3 {
			m.featureTable.SetHeight(h)
			m.holidayTable.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.setState((m.state + 1) % stateCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.setState((m.state - 1 + stateCount) % stateCount)
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			if m.state == StateFeatures {
				m.filter = (m.filter + 1) % filterCount
				m.featureTable.SetRows(m.featureCells(m.filter))
				m.featureTable.GotoTop()
			}
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.active().GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.active().GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateFeatures:
		m.featureTable, cmd = m.featureTable.Update(msg)
	case StateHolidays:
		m.holidayTable, cmd = m.holidayTable.Update(msg)
	}
	return m, cmd
}

func (m *Model) setState(s SessionState) {
	m.state = s
	if s == StateFeatures {
		m.featureTable.Focus()
		m.holidayTable.Blur()
	} else {
		m.holidayTable.Focus()
		m.featureTable.Blur()
	}
}

func (m *Model) active() *table.Model {
	if m.state == StateHolidays {
		return &m.holidayTable
	}
	return &m.featureTable
}
