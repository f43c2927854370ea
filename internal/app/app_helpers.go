package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/controller"
	"github.com/zhubert/ragdesk/internal/docinfo"
	"github.com/zhubert/ragdesk/internal/dropzone"
	"github.com/zhubert/ragdesk/internal/logger"
	"github.com/zhubert/ragdesk/internal/ui"
)

func fileFromInfo(info docinfo.Info) controller.File {
	return controller.File{
		Name:  info.Name,
		Path:  info.Path,
		Size:  info.Size,
		MIME:  info.MIME,
		Pages: info.Pages,
	}
}

// dropPayload parses a terminal drop and hands the files to the controller.
// The drag flag is cleared whether or not anything usable was dropped.
func (m *Model) dropPayload(payload string) tea.Cmd {
	log := logger.WithComponent("app")
	res := dropzone.Parse(payload)

	var files []controller.File
	for _, path := range res.Files {
		info, err := docinfo.Inspect(path)
		if err != nil {
			log.Warn("dropped file unreadable", "path", path, "error", err)
			continue
		}
		files = append(files, fileFromInfo(info))
	}

	m.ctrl.Drop(files)
	m.syncPanels()
	log.Debug("drop", "files", len(files), "skipped", len(res.Skipped))

	switch {
	case len(files) == 0 && strings.TrimSpace(payload) != "":
		return m.flash("Nothing to upload in the dropped text", ui.FlashWarning)
	case len(files) > 1:
		return m.flash(fmt.Sprintf("Selected %s (%d files dropped, only the first is kept)", files[0].Name, len(files)), ui.FlashInfo)
	case len(files) == 1:
		return m.flash("Selected "+files[0].Name, ui.FlashInfo)
	}
	return nil
}

// selectPath selects the file the picker returned. Unreadable paths keep the
// picker open with an error.
func (m *Model) selectPath(path string) tea.Cmd {
	info, err := docinfo.Inspect(dropzone.Normalize(path))
	if err != nil {
		logger.WithComponent("app").Warn("picked file unreadable", "path", path, "error", err)
		m.modal.SetError(err.Error())
		return nil
	}

	m.ctrl.SelectFile(fileFromInfo(info))
	m.modal.Hide()
	m.syncPanels()

	if !info.Suggested() {
		return m.flash(fmt.Sprintf("Selected %s; the backend may not accept this type", info.Name), ui.FlashWarning)
	}
	return m.flash("Selected "+info.Name, ui.FlashInfo)
}

// openPicker shows the file picker rooted at the configured start directory.
func (m *Model) openPicker() tea.Cmd {
	state := ui.NewPickerState(m.config.GetStartDir(), docinfo.PickerTypes)
	m.modal.Show(state)
	return state.Init()
}

// openHelp shows the shortcuts help built from the registry.
func (m *Model) openHelp() {
	m.modal.Show(ui.NewHelpState(helpSections()))
}

// submitUpload dispatches the selected file. Nothing happens when the
// controller rejects the action.
func (m *Model) submitUpload() tea.Cmd {
	call := m.ctrl.SubmitUpload()
	if call == nil {
		logger.WithComponent("app").Debug("upload ignored", "has_file", m.ctrl.HasFile(), "busy", m.ctrl.Busy())
		return nil
	}
	logger.WithComponent("app").Info("upload dispatched", "file", call.File().Name)
	m.syncPanels()

	ctx := m.ctx
	return func() tea.Msg {
		return UploadDoneMsg{Outcome: call.Do(ctx)}
	}
}

// submitQuery dispatches the current question.
func (m *Model) submitQuery() tea.Cmd {
	m.ctrl.SetQuery(m.ask.Value())
	call := m.ctrl.SubmitQuery()
	logger.WithComponent("app").Info("query dispatched", "seq", call.Seq(), "length", len(call.Text()))
	m.syncPanels()

	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg {
			return QueryDoneMsg{Outcome: call.Do(ctx)}
		},
		m.ask.SetInFlight(m.ctrl.QueriesInFlight()),
	)
}

// clearFile resets the selection.
func (m *Model) clearFile() tea.Cmd {
	if !m.ctrl.ClearFile() {
		return nil
	}
	m.syncPanels()
	return m.flash("Selection cleared", ui.FlashInfo)
}
