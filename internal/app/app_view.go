package app

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/ragdesk/internal/docinfo"
	"github.com/zhubert/ragdesk/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.updateFooterContext()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.upload.View(),
		m.ask.View(),
		m.passages.View(),
		m.footer.View(),
	)
}

// updateSizes pushes the layout computed by the view context into the panels.
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	w := ctx.TerminalWidth
	m.header.SetWidth(w)
	m.footer.SetWidth(w)
	m.upload.SetSize(w)
	m.ask.SetSize(w, ctx.AskHeight)
	m.passages.SetSize(w, ctx.PassagesHeight)
}

// updateFooterContext tells the footer which bindings apply right now.
func (m *Model) updateFooterContext() {
	_, pickerOpen := m.modal.State.(*ui.PickerState)
	_, helpOpen := m.modal.State.(*ui.HelpState)

	m.footer.SetContext(ui.FooterContext{
		Pane:        m.focus.pane(),
		PickerOpen:  pickerOpen,
		HelpOpen:    helpOpen,
		Dragging:    m.ctrl.Dragging(),
		CanUpload:   m.ctrl.CanUpload(),
		HasAnswer:   m.ctrl.Answer() != "",
		HasPassages: len(m.ctrl.Contexts()) > 0,
	})
}

// syncPanels copies controller state into the render-only panels. Passages
// keep their expansion state unless the list itself changed.
func (m *Model) syncPanels() {
	if f := m.ctrl.File(); f != nil {
		info := docinfo.Info{Name: f.Name, Path: f.Path, Size: f.Size, MIME: f.MIME, Pages: f.Pages}
		m.upload.SetFile(f.Name, info.Summary())
	} else {
		m.upload.SetFile("", "")
	}
	m.upload.SetState(m.ctrl.Busy(), m.ctrl.Dragging(), m.ctrl.CanUpload(), m.ctrl.UploadLabel())

	if answer := m.ctrl.Answer(); answer != m.ask.Answer() {
		m.ask.SetAnswer(answer)
	}

	if contexts := m.ctrl.Contexts(); !slices.Equal(contexts, m.shownContexts) {
		m.shownContexts = contexts
		m.passages.SetContexts(contexts)
	}
}
