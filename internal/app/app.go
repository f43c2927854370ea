package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/backend"
	"github.com/zhubert/ragdesk/internal/config"
	"github.com/zhubert/ragdesk/internal/controller"
	"github.com/zhubert/ragdesk/internal/logger"
	"github.com/zhubert/ragdesk/internal/ui"
)

// Focus represents which panel owns keyboard input
type Focus int

const (
	FocusUpload Focus = iota
	FocusQuery
	FocusPassages
	focusCount
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusUpload:
		return "Upload"
	case FocusQuery:
		return "Query"
	case FocusPassages:
		return "Passages"
	default:
		return "Unknown"
	}
}

func (f Focus) pane() ui.Pane {
	switch f {
	case FocusQuery:
		return ui.PaneQuery
	case FocusPassages:
		return ui.PanePassages
	default:
		return ui.PaneUpload
	}
}

// Backend is everything the app needs from the RAG service.
type Backend interface {
	controller.Backend
	Health(ctx context.Context) (*backend.HealthResult, error)
	BaseURL() string
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	backend Backend
	ctrl    *controller.Controller

	header   *ui.Header
	footer   *ui.Footer
	upload   *ui.UploadPanel
	ask      *ui.AskPanel
	passages *ui.Passages
	modal    *ui.Modal

	width  int
	height int
	focus  Focus

	// ctx is cancelled on quit so in-flight requests stop with the program.
	ctx    context.Context
	cancel context.CancelFunc

	// pasteBuf collects a bracketed paste that arrives while the upload
	// panel is focused; it is the drop payload.
	pasteBuf  []string
	capturing bool

	// shownContexts is the passage list last pushed to the passages panel.
	shownContexts []string
}

// UploadDoneMsg carries the outcome of an upload back to the event loop.
type UploadDoneMsg struct {
	Outcome controller.UploadOutcome
}

// QueryDoneMsg carries the outcome of a query back to the event loop.
type QueryDoneMsg struct {
	Outcome controller.QueryOutcome
}

// HealthMsg reports the result of a health probe.
type HealthMsg struct {
	Result *backend.HealthResult
	Err    error
}

// New creates a new app model
func New(cfg *config.Config, b Backend, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	ctx, cancel := context.WithCancel(context.Background())

	ctrl := controller.New(b,
		controller.WithOrdering(controller.ParseOrdering(cfg.GetQueryOrdering())),
		controller.WithClearAfterUpload(cfg.GetClearAfterUpload()),
	)

	m := &Model{
		config:   cfg,
		version:  version,
		backend:  b,
		ctrl:     ctrl,
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		upload:   ui.NewUploadPanel(),
		ask:      ui.NewAskPanel(),
		passages: ui.NewPassages(),
		modal:    ui.NewModal(),
		focus:    FocusUpload,
		ctx:      ctx,
		cancel:   cancel,
	}

	m.header.SetBackend(b.BaseURL())
	m.upload.SetFocused(true)
	m.syncPanels()

	logger.WithComponent("app").Info("model created",
		"backend", b.BaseURL(),
		"ordering", ctrl.Ordering().String(),
		"version", version,
	)
	return m
}

// Controller exposes the interaction state, mainly for tests and demos.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Focus returns the focused panel.
func (m *Model) Focus() Focus {
	return m.focus
}

// Init starts the health probe.
func (m *Model) Init() tea.Cmd {
	return m.checkHealth()
}

// Close cancels outstanding requests.
func (m *Model) Close() {
	m.cancel()
}

func (m *Model) checkHealth() tea.Cmd {
	ctx := m.ctx
	b := m.backend
	return func() tea.Msg {
		res, err := b.Health(ctx)
		return HealthMsg{Result: res, Err: err}
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	logger.WithComponent("app").Info("quitting")
	m.cancel()
	return m, tea.Quit
}

// setFocus moves keyboard focus to f
func (m *Model) setFocus(f Focus) tea.Cmd {
	if m.focus == f {
		return nil
	}
	logger.WithComponent("app").Debug("focus change", "from", m.focus.String(), "to", f.String())
	m.focus = f

	m.upload.SetFocused(f == FocusUpload)
	m.passages.SetFocused(f == FocusPassages)
	if f == FocusQuery {
		return m.ask.Focus()
	}
	m.ask.Blur()
	return nil
}

// cycleFocus moves focus forward (delta 1) or backward (delta -1)
func (m *Model) cycleFocus(delta int) tea.Cmd {
	next := (int(m.focus) + delta + int(focusCount)) % int(focusCount)
	return m.setFocus(Focus(next))
}

// inputFocused reports whether typed characters belong to the query input
func (m *Model) inputFocused() bool {
	return m.focus == FocusQuery
}
