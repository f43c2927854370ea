package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/backend"
	"github.com/zhubert/ragdesk/internal/controller"
	"github.com/zhubert/ragdesk/internal/keys"
	"github.com/zhubert/ragdesk/internal/ui"
)

func TestNew_InitialState(t *testing.T) {
	m := testModel(t, &fakeBackend{})

	if m.Focus() != FocusUpload {
		t.Errorf("initial focus = %s, want Upload", m.Focus())
	}
	if m.Controller().HasFile() || m.Controller().Busy() || m.Controller().Dragging() {
		t.Error("controller should start at rest")
	}

	view := stripANSI(m.RenderToString())
	for _, want := range []string{"No file selected", "Upload & Index", "Answers appear here", "No passages"} {
		if !strings.Contains(view, want) {
			t.Errorf("initial view missing %q", want)
		}
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := New(testConfig(t), &fakeBackend{}, "test")
	defer m.Close()
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("RenderToString() = %q before the first resize", got)
	}
	if v := m.View(); !v.AltScreen {
		t.Error("View should use the alt screen")
	}
}

func TestFocus_Cycle(t *testing.T) {
	m := testModel(t, &fakeBackend{})

	order := []Focus{FocusQuery, FocusPassages, FocusUpload}
	for _, want := range order {
		sendKey(m, keys.Tab)
		if m.Focus() != want {
			t.Fatalf("after tab focus = %s, want %s", m.Focus(), want)
		}
	}

	sendKey(m, keys.ShiftTab)
	if m.Focus() != FocusPassages {
		t.Errorf("shift+tab from Upload = %s, want Passages", m.Focus())
	}
}

func TestInit_HealthProbe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ui.Health
	}{
		{"healthy", nil, ui.HealthOK},
		{"down", errors.New("connection refused"), ui.HealthDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{health: func() (*backend.HealthResult, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &backend.HealthResult{Status: "ok", Service: "cbdc-backend"}, nil
			}}
			m := testModel(t, b)
			deliver[HealthMsg](t, m, m.Init())
			if m.header.Health() != tt.want {
				t.Errorf("health = %v, want %v", m.header.Health(), tt.want)
			}
		})
	}
}

func TestSelectPath(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	path := writeDoc(t, "notes.txt", "hello world")

	m.selectPath(path)

	f := m.Controller().File()
	if f == nil || f.Name != "notes.txt" || f.Size != int64(len("hello world")) {
		t.Fatalf("File() = %+v", f)
	}
	if !strings.Contains(stripANSI(m.RenderToString()), "notes.txt") {
		t.Error("upload panel should show the selected file")
	}

	// A second selection replaces the first.
	other := writeDoc(t, "other.md", "# title")
	m.selectPath(other)
	if got := m.Controller().File().Name; got != "other.md" {
		t.Errorf("after reselect File().Name = %q", got)
	}
}

func TestSelectPath_Unreadable(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.openPicker()

	m.selectPath("/definitely/not/here.pdf")

	if m.Controller().HasFile() {
		t.Error("unreadable path should not be selected")
	}
	if !m.modal.IsVisible() || m.modal.GetError() == "" {
		t.Error("picker should stay open with an error")
	}
}

func TestPicker_OpenAndCancel(t *testing.T) {
	m := testModel(t, &fakeBackend{})

	cmd := sendKey(m, "o")
	if cmd == nil {
		t.Error("opening the picker should schedule a directory read")
	}
	if _, ok := m.modal.State.(*ui.PickerState); !ok {
		t.Fatalf("modal state = %T, want picker", m.modal.State)
	}
	if !strings.Contains(stripANSI(m.RenderToString()), "Select a document") {
		t.Error("picker should render over the layout")
	}

	sendKey(m, keys.Escape)
	if m.modal.IsVisible() {
		t.Error("esc should close the picker")
	}
}

func TestPicker_SelectWhileUploading(t *testing.T) {
	var sent []string
	b := &fakeBackend{upload: func(req backend.UploadRequest) (*backend.UploadResult, error) {
		sent = append(sent, req.Name)
		return &backend.UploadResult{FileName: req.Name, NumChunks: 1}, nil
	}}
	m := testModel(t, b)
	m.selectPath(writeDoc(t, "first.txt", "x"))
	uploadCmd := sendKey(m, "u")
	if !m.Controller().Busy() {
		t.Fatal("upload should be in flight")
	}

	next := writeDoc(t, "second.txt", "y")
	m.config.StartDir = filepath.Dir(next)
	cmd := sendKey(m, "o")
	if _, ok := m.modal.State.(*ui.PickerState); !ok {
		t.Fatalf("modal state = %T, picker should open during an upload", m.modal.State)
	}
	m.Update(cmd())
	m.selectPath(next)

	deliver[UploadDoneMsg](t, m, uploadCmd)

	if len(sent) != 1 || sent[0] != "first.txt" {
		t.Errorf("uploaded %v, want the file selected when the upload started", sent)
	}
	if f := m.Controller().File(); f == nil || f.Name != "second.txt" {
		t.Errorf("File() = %+v, want the newly picked file", f)
	}
	if m.Controller().Busy() {
		t.Error("busy flag should be released")
	}
}

func TestPicker_SelectFromDirectory(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	path := writeDoc(t, "policy.txt", "settlement rules")
	m.config.StartDir = filepath.Dir(path)

	cmd := sendKey(m, "o")
	m.Update(cmd())
	sendKey(m, keys.Enter)

	if m.modal.IsVisible() {
		t.Error("picker should close after a selection")
	}
	if f := m.Controller().File(); f == nil || f.Path != path {
		t.Errorf("File() = %+v, want %s", f, path)
	}
}

func TestHelp_OpenAndClose(t *testing.T) {
	m := testModel(t, &fakeBackend{})

	sendKey(m, "?")
	if _, ok := m.modal.State.(*ui.HelpState); !ok {
		t.Fatalf("modal state = %T, want help", m.modal.State)
	}
	view := stripANSI(m.RenderToString())
	for _, want := range []string{"Keyboard shortcuts", "Upload & index the selected file", "Copy the focused passage"} {
		if !strings.Contains(view, want) {
			t.Errorf("help missing %q", want)
		}
	}

	sendKey(m, keys.Escape)
	if m.modal.IsVisible() {
		t.Error("esc should close help")
	}
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name  string
		focus Focus
		key   string
		quits bool
	}{
		{"q on upload panel", FocusUpload, "q", true},
		{"q on passages", FocusPassages, "q", true},
		{"q in question input", FocusQuery, "q", false},
		{"ctrl+c in question input", FocusQuery, keys.CtrlC, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t, &fakeBackend{})
			focusPane(t, m, tt.focus)

			cmd := sendKey(m, tt.key)
			quit := false
			if cmd != nil {
				_, quit = cmd().(tea.QuitMsg)
			}
			if quit != tt.quits {
				t.Errorf("quit = %v, want %v", quit, tt.quits)
			}
			if !tt.quits && m.ask.Value() != "q" {
				t.Errorf("input = %q, want the typed q", m.ask.Value())
			}
		})
	}
}

func TestTypingInQuestionInput(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	focusPane(t, m, FocusQuery)

	// Shortcut letters are plain text while the input has focus.
	typeText(m, "quote? yes")

	if m.ask.Value() != "quote? yes" {
		t.Errorf("input = %q", m.ask.Value())
	}
	if m.Controller().Query() != "quote? yes" {
		t.Errorf("controller query = %q", m.Controller().Query())
	}
	if m.modal.IsVisible() {
		t.Error("? in the input should not open help")
	}

	sendKey(m, keys.CtrlL)
	if m.ask.Value() != "" || m.Controller().Query() != "" {
		t.Error("ctrl+l should clear the question")
	}
}

func TestCopyAnswer_RequiresAnswer(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	if cmd := sendKey(m, "y"); cmd != nil {
		t.Error("y without an answer should do nothing")
	}
	if m.footer.HasFlash() {
		t.Error("no flash expected")
	}
}

func TestCopyAnswer_Flashes(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Seq: 0, Result: &backend.QueryResult{Answer: "forty-two"}}})

	sendKey(m, "y")

	// The clipboard may be unavailable in CI; either way the user is told.
	f := m.footer.Flash()
	if f == nil {
		t.Fatal("expected a flash after copying")
	}
	if f.Text != "Answer copied" && !strings.HasPrefix(f.Text, "Clipboard unavailable") {
		t.Errorf("flash = %q", f.Text)
	}
}

func TestFlashTick_ClearsExpired(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.footer.SetFlashWithDuration("gone", ui.FlashInfo, 0)

	_, cmd := m.Update(ui.FlashTickMsg{})
	if m.footer.HasFlash() {
		t.Error("expired flash should be cleared")
	}
	if cmd != nil {
		t.Error("no further tick expected once the flash is gone")
	}
}

func TestFooter_TracksFocus(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	focusPane(t, m, FocusQuery)

	view := stripANSI(m.RenderToString())
	if !strings.Contains(view, "ask") {
		t.Errorf("query footer should offer enter to ask: %q", view)
	}
}

func TestResize(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	setSize(m, 60, 24)

	lines := strings.Split(m.RenderToString(), "\n")
	if len(lines) > 24 {
		t.Errorf("rendered %d lines into a 24-line terminal", len(lines))
	}
}
