package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/ragdesk/internal/backend"
	"github.com/zhubert/ragdesk/internal/config"
	"github.com/zhubert/ragdesk/internal/keys"
)

// fakeBackend records calls and answers from the configured functions.
type fakeBackend struct {
	mu      sync.Mutex
	uploads []backend.UploadRequest
	queries []string

	upload func(req backend.UploadRequest) (*backend.UploadResult, error)
	query  func(q string) (*backend.QueryResult, error)
	health func() (*backend.HealthResult, error)
}

func (f *fakeBackend) Upload(ctx context.Context, req backend.UploadRequest) (*backend.UploadResult, error) {
	f.mu.Lock()
	f.uploads = append(f.uploads, req)
	f.mu.Unlock()
	if f.upload == nil {
		return &backend.UploadResult{FileName: req.Name, NumChunks: 1}, nil
	}
	return f.upload(req)
}

func (f *fakeBackend) Query(ctx context.Context, q string) (*backend.QueryResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.query == nil {
		return &backend.QueryResult{Answer: "ok"}, nil
	}
	return f.query(q)
}

func (f *fakeBackend) Health(ctx context.Context) (*backend.HealthResult, error) {
	if f.health == nil {
		return &backend.HealthResult{Status: "ok", Service: "fake"}, nil
	}
	return f.health()
}

func (f *fakeBackend) BaseURL() string { return "http://fake.test" }

func (f *fakeBackend) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func (f *fakeBackend) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// testConfig creates a minimal config for testing.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.NotificationsEnabled = false
	cfg.StartDir = t.TempDir()
	return cfg
}

// testModel creates a sized test Model backed by b.
func testModel(t *testing.T, b Backend) *Model {
	t.Helper()
	m := New(testConfig(t), b, "0.0.0-test")
	t.Cleanup(m.Close)
	setSize(m, 100, 40)
	return m
}

func setSize(m *Model, width, height int) {
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
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
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press and returns the resulting command.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText types each rune as a key press.
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// focusPane tabs until f has focus.
func focusPane(t *testing.T, m *Model, f Focus) {
	t.Helper()
	for i := 0; i < int(focusCount) && m.Focus() != f; i++ {
		sendKey(m, keys.Tab)
	}
	if m.Focus() != f {
		t.Fatalf("could not focus %s", f)
	}
}

// awaitMsg runs cmd and any commands it batches concurrently and returns the
// first message of type T. Timers inside the batch keep running in the
// background and are ignored.
func awaitMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	msgs := make(chan tea.Msg)
	done := make(chan struct{})
	defer close(done)

	var launch func(c tea.Cmd)
	launch = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					launch(sub)
				}
				return
			}
			select {
			case msgs <- msg:
			case <-done:
			}
		}()
	}
	launch(cmd)

	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-msgs:
			if typed, ok := msg.(T); ok {
				return typed
			}
		case <-timeout:
			var zero T
			t.Fatalf("no %T produced within 5s", zero)
			return zero
		}
	}
}

// deliver runs cmd until it produces a T and feeds that message back into m.
func deliver[T tea.Msg](t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	msg := awaitMsg[T](t, cmd)
	_, next := m.Update(msg)
	return next
}

// writeDoc creates a document in a temp dir and returns its path.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}
