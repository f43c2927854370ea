package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/logger"
	"github.com/zhubert/ragdesk/internal/notification"
	"github.com/zhubert/ragdesk/internal/ui"
)

// handleUploadDone applies an upload outcome and tells the user how it went.
func (m *Model) handleUploadDone(msg UploadDoneMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	notice := m.ctrl.FinishUpload(msg.Outcome)
	m.syncPanels()

	if notice.IsError() {
		log.Warn("upload failed", "file", msg.Outcome.File.Name, "error", msg.Outcome.Err)
	} else {
		log.Info("upload complete", "file", notice.FileName, "chunks", notice.NumChunks)
	}

	cmds := []tea.Cmd{m.flashNotice(notice)}
	if m.config.GetNotificationsEnabled() {
		cmds = append(cmds, func() tea.Msg {
			var err error
			if notice.IsError() {
				err = notification.UploadFailed(notice.Message)
			} else {
				err = notification.UploadCompleted(notice.FileName, notice.NumChunks)
			}
			if err != nil {
				logger.WithComponent("app").Debug("desktop notification failed", "error", err)
			}
			return nil
		})
	}
	return m, tea.Batch(cmds...)
}

// handleQueryDone applies a query outcome. Stale outcomes only release their
// in-flight slot.
func (m *Model) handleQueryDone(msg QueryDoneMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	if applied := m.ctrl.FinishQuery(msg.Outcome); !applied {
		log.Debug("stale query result dropped", "seq", msg.Outcome.Seq)
	} else if msg.Outcome.Err != nil {
		log.Warn("query failed", "seq", msg.Outcome.Seq, "error", msg.Outcome.Err)
	} else {
		log.Info("query answered", "seq", msg.Outcome.Seq, "contexts", len(m.ctrl.Contexts()))
	}

	m.syncPanels()
	return m, m.ask.SetInFlight(m.ctrl.QueriesInFlight())
}

// handleHealth updates the header status dot.
func (m *Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.WithComponent("app").Warn("backend health check failed", "error", msg.Err)
		m.header.SetHealth(ui.HealthDown)
		return m, nil
	}
	logger.WithComponent("app").Debug("backend healthy", "status", msg.Result.Status, "service", msg.Result.Service)
	m.header.SetHealth(ui.HealthOK)
	return m, nil
}
