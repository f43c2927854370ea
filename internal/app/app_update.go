package app

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/keys"
	"github.com/zhubert/ragdesk/internal/logger"
	"github.com/zhubert/ragdesk/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.PasteStartMsg:
		// Terminals deliver dropped files as a bracketed paste. Only the
		// upload panel treats one as a drag.
		if m.focus == FocusUpload && !m.modal.IsVisible() {
			logger.WithComponent("app").Debug("drag over")
			m.ctrl.DragOver()
			m.capturing = true
			m.pasteBuf = nil
			m.syncPanels()
		}

	case tea.PasteMsg:
		if m.capturing {
			m.pasteBuf = append(m.pasteBuf, msg.Content)
			return m, nil
		}
		return m.handlePaste(msg)

	case tea.PasteEndMsg:
		if m.capturing {
			m.capturing = false
			payload := strings.Join(m.pasteBuf, "")
			m.pasteBuf = nil
			return m, m.dropPayload(payload)
		}

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case UploadDoneMsg:
		return m.handleUploadDone(msg)

	case QueryDoneMsg:
		return m.handleQueryDone(msg)

	case HealthMsg:
		return m.handleHealth(msg)

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			cmds = append(cmds, ui.FlashTick())
		}

	case spinner.TickMsg:
		cmds = append(cmds, m.ask.UpdateSpinner(msg))

	case tea.MouseWheelMsg:
		switch m.focus {
		case FocusPassages:
			cmds = append(cmds, m.passages.Update(msg))
		default:
			cmds = append(cmds, m.ask.Update(msg))
		}

	default:
		// Directory listings and other widget messages for the picker.
		if m.modal.IsVisible() {
			var cmd tea.Cmd
			m.modal, cmd = m.modal.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handlePaste routes a paste that is not part of a drag.
func (m *Model) handlePaste(msg tea.PasteMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	switch m.focus {
	case FocusQuery:
		cmd := m.ask.Update(msg)
		m.ctrl.SetQuery(m.ask.Value())
		return m, cmd
	case FocusUpload:
		// Some terminals send the content without a start marker.
		return m, m.dropPayload(msg.Content)
	}
	return m, nil
}

// handleKey dispatches a key press: modal first, then shortcuts, then the
// focused panel.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	key := msg.String()

	if m.ctrl.Dragging() && key == keys.Escape {
		logger.WithComponent("app").Debug("drag cancelled")
		m.ctrl.DragLeave()
		m.capturing = false
		m.pasteBuf = nil
		m.syncPanels()
		return m, nil
	}

	if result, cmd, ok := m.ExecuteShortcut(key); ok {
		return result, cmd
	}

	switch m.focus {
	case FocusQuery:
		cmd := m.ask.Update(msg)
		m.ctrl.SetQuery(m.ask.Value())
		return m, cmd
	case FocusPassages:
		return m, m.passages.Update(msg)
	}
	return m, nil
}

// handleModalKey handles keys while a modal is open
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keys.CtrlC {
		return m.quit()
	}

	switch state := m.modal.State.(type) {
	case *ui.HelpState:
		switch key {
		case keys.Escape, "?", "q", keys.Enter:
			m.modal.Hide()
		}
		return m, nil

	case *ui.PickerState:
		if key == keys.Escape {
			logger.WithComponent("app").Debug("picker cancelled")
			m.modal.Hide()
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		if path, ok := state.Selected(); ok {
			return m, tea.Batch(cmd, m.selectPath(path))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}
