package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/controller"
	"github.com/zhubert/ragdesk/internal/ui"
)

// errorFlashDuration keeps failures on screen longer than confirmations.
const errorFlashDuration = 6 * time.Second

// flash shows text in the footer and starts the auto-dismiss timer.
func (m *Model) flash(text string, flashType ui.FlashType) tea.Cmd {
	if flashType == ui.FlashError {
		m.footer.SetFlashWithDuration(text, flashType, errorFlashDuration)
	} else {
		m.footer.SetFlash(text, flashType)
	}
	return ui.FlashTick()
}

// flashNotice shows an upload notice.
func (m *Model) flashNotice(n controller.Notice) tea.Cmd {
	if n.IsError() {
		return m.flash(n.String(), ui.FlashError)
	}
	return m.flash(n.String(), ui.FlashSuccess)
}
