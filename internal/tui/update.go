package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProfileLoadedMsg:
		m.loading = false
		if err := m.fill(msg.Profile); err != nil {
			m.err = err
		}
		return m, nil

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Comparison
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil
	}

	return m.updateInputs(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentScene != SceneHelp {
			m.previousScene = m.currentScene
			m.currentScene = SceneHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		switch m.currentScene {
		case SceneHelp:
			m.currentScene = m.previousScene
		case SceneResults:
			m.currentScene = SceneForm
		default:
			return m, tea.Quit
		}
		return m, nil
	}

	if m.currentScene != SceneForm {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, m.keys.Submit):
		p, err := m.profile()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.loading = true
		return m, compareCmd(m.engine, m.parser, p)
	}

	return m.updateInputs(msg)
}

// updateInputs forwards a message to the focused text input
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene != SceneForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}
