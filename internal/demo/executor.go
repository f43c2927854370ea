package demo

import (
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/cursor"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/gin-gonic/gin"

	"github.com/zhubert/ragdesk/internal/app"
	"github.com/zhubert/ragdesk/internal/backend"
	"github.com/zhubert/ragdesk/internal/config"
	"github.com/zhubert/ragdesk/internal/keys"
	"github.com/zhubert/ragdesk/internal/logger"
	"github.com/zhubert/ragdesk/internal/mockserver"
	"github.com/zhubert/ragdesk/internal/ui"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every key and typed rune.
	CaptureEveryStep bool

	// TypeDelay is the frame delay between typed characters (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the frame delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// SettleTimeout bounds how long a Settle step waits for the backend (default: 10s)
	SettleTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		SettleTimeout:    10 * time.Second,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	mock   *mockserver.Server
	server *httptest.Server
	docDir string
	frames []Frame

	// Commands returned by the model run on their own goroutines and report
	// back here. Messages are only applied to the model from Run's goroutine.
	msgs chan tea.Msg
	done chan struct{}

	healthPending     bool
	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.SettleTimeout <= 0 {
		cfg.SettleTimeout = 10 * time.Second
	}
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Model returns the app model under test. It is nil until Run starts.
func (e *Executor) Model() *app.Model {
	return e.model
}

// Cleanup stops the mock backend and removes scratch files.
func (e *Executor) Cleanup() {
	if e.model != nil {
		e.model.Close()
	}
	if e.done != nil {
		close(e.done)
		e.done = nil
	}
	if e.server != nil {
		e.server.Close()
		e.server = nil
	}
	if e.docDir != "" {
		os.RemoveAll(e.docDir)
		e.docDir = ""
	}
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	defer e.Cleanup()
	if err := e.prepare(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d (%s) failed: %w", i, step.Type, err)
		}
	}

	return e.frames, nil
}

// prepare writes the scenario documents, starts the mock backend and builds
// a sized model pointed at it.
func (e *Executor) prepare(scenario *Scenario) error {
	setup := scenario.Setup
	e.msgs = make(chan tea.Msg, 64)
	e.done = make(chan struct{})

	dir, err := os.MkdirTemp("", "ragdesk-demo-")
	if err != nil {
		return err
	}
	e.docDir = dir
	for _, d := range setup.Documents {
		if err := os.WriteFile(filepath.Join(dir, d.Name), []byte(d.Content), 0o644); err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	e.mock = mockserver.New(mockserver.Options{Latency: setup.Latency})
	for _, d := range setup.Indexed {
		e.mock.Store().Add(d.Name, mockserver.SplitText(d.Content, 0))
	}
	e.server = httptest.NewServer(e.mock.Handler())

	cfg := config.Default()
	cfg.NotificationsEnabled = false
	cfg.StartDir = dir
	if setup.Ordering != "" {
		cfg.QueryOrdering = setup.Ordering
	}

	e.model = app.New(cfg, backend.New(e.server.URL, backend.WithHTTPClient(e.server.Client())), "demo")
	e.update(tea.WindowSizeMsg{Width: scenario.Width, Height: scenario.Height})

	e.healthPending = true
	e.run(e.model.Init())
	if err := e.settle(); err != nil {
		return err
	}

	if setup.Focus != "" {
		for i := 0; i < 3 && !strings.EqualFold(e.model.Focus().String(), setup.Focus); i++ {
			e.sendKey(keys.Tab)
		}
	}

	logger.WithComponent("demo").Info("scenario ready",
		"name", scenario.Name, "backend", e.server.URL, "documents", len(setup.Documents))
	return nil
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.drain()
		e.captureFrame(index, step.Duration)

	case StepKey:
		e.sendKey(step.Key)
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, r := range step.Text {
			e.update(tea.KeyPressMsg{Code: r, Text: string(r)})
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepDrop:
		paths := make([]string, 0, len(step.Documents))
		for _, name := range step.Documents {
			paths = append(paths, "file://"+filepath.Join(e.docDir, name))
		}
		e.paste(strings.Join(paths, "\n"))
		e.captureFrame(index, 300*time.Millisecond)

	case StepPaste:
		e.paste(step.Text)
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepSettle:
		if err := e.settle(); err != nil {
			return err
		}
		e.captureFrame(index, 200*time.Millisecond)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation

	case StepCapture:
		e.drain()
		e.captureFrame(index, 0)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}

	return nil
}

// paste delivers text the way a terminal delivers a bracketed paste.
func (e *Executor) paste(text string) {
	e.update(tea.PasteStartMsg{})
	e.update(tea.PasteMsg{Content: text})
	e.update(tea.PasteEndMsg{})
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	e.frames = append(e.frames, Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	})
	e.currentAnnotation = ""
}

// sendKey sends a key press to the model.
func (e *Executor) sendKey(key string) {
	e.update(keyPress(key))
}

// update applies msg and starts whatever command the model returns.
func (e *Executor) update(msg tea.Msg) {
	if _, ok := msg.(app.HealthMsg); ok {
		e.healthPending = false
	}
	_, cmd := e.model.Update(msg)
	e.run(cmd)
}

// run executes cmd on its own goroutine.
func (e *Executor) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go e.exec(cmd, e.done)
}

// exec resolves cmd, fanning out batches, and hands the message to Run's
// goroutine unless the executor has been cleaned up.
func (e *Executor) exec(cmd tea.Cmd, done <-chan struct{}) {
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub != nil {
				go e.exec(sub, done)
			}
		}
		return
	}
	if msg == nil || isTimer(msg) {
		return
	}
	select {
	case e.msgs <- msg:
	case <-done:
	}
}

// isTimer reports messages that only re-arm animations or expiry checks.
// Frames are rendered on demand, so replaying them would only keep the
// executor busy.
func isTimer(msg tea.Msg) bool {
	switch msg.(type) {
	case ui.FlashTickMsg, spinner.TickMsg, cursor.BlinkMsg, tea.QuitMsg:
		return true
	}
	return false
}

// drain applies every message that has already arrived.
func (e *Executor) drain() {
	for {
		select {
		case msg := <-e.msgs:
			e.update(msg)
		default:
			return
		}
	}
}

// settle applies messages until no upload, query or health probe is
// outstanding.
func (e *Executor) settle() error {
	deadline := time.After(e.config.SettleTimeout)
	for {
		e.drain()
		ctrl := e.model.Controller()
		if !ctrl.Busy() && ctrl.QueriesInFlight() == 0 && !e.healthPending {
			return nil
		}
		select {
		case msg := <-e.msgs:
			e.update(msg)
		case <-deadline:
			return fmt.Errorf("backend did not respond within %v", e.config.SettleTimeout)
		}
	}
}

// keyPress converts a key string to a tea.KeyPressMsg.
// Duplicated from the app tests to avoid an import cycle.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape, "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlO:
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case keys.CtrlU:
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	case keys.CtrlL:
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
