package app

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/backend"
	"github.com/zhubert/ragdesk/internal/controller"
	"github.com/zhubert/ragdesk/internal/keys"
	"github.com/zhubert/ragdesk/internal/notification"
)

func TestUpload_WithoutFileIsIgnored(t *testing.T) {
	b := &fakeBackend{}
	m := testModel(t, b)

	sendKey(m, "u")

	if m.Controller().Busy() {
		t.Error("upload without a file should not go busy")
	}
	if b.uploadCount() != 0 {
		t.Errorf("dispatched %d uploads", b.uploadCount())
	}
	if f := m.footer.Flash(); f == nil || !strings.Contains(f.Text, "Select a file first") {
		t.Errorf("expected a hint flash, got %+v", f)
	}
}

func TestUpload_Success(t *testing.T) {
	b := &fakeBackend{upload: func(req backend.UploadRequest) (*backend.UploadResult, error) {
		return &backend.UploadResult{FileName: req.Name, NumChunks: 3}, nil
	}}
	m := testModel(t, b)
	m.selectPath(writeDoc(t, "notes.txt", "alpha beta"))

	cmd := sendKey(m, "u")
	if !m.Controller().Busy() {
		t.Fatal("controller should be busy while the upload runs")
	}
	if !strings.Contains(stripANSI(m.RenderToString()), "Uploading…") {
		t.Error("upload label should switch while busy")
	}

	// Re-entrant submits are ignored while busy.
	if again := sendKey(m, keys.Enter); again != nil {
		t.Error("second submit should not dispatch")
	}

	deliver[UploadDoneMsg](t, m, cmd)

	if m.Controller().Busy() {
		t.Error("busy flag should be released")
	}
	if b.uploadCount() != 1 {
		t.Errorf("dispatched %d uploads, want 1", b.uploadCount())
	}
	f := m.footer.Flash()
	if f == nil || !strings.Contains(f.Text, "notes.txt") || !strings.Contains(f.Text, "3 chunks") {
		t.Errorf("confirmation flash = %+v", f)
	}
	if !m.Controller().HasFile() {
		t.Error("selection is kept after a successful upload by default")
	}
}

func TestUpload_ClearAfterUpload(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClearAfterUpload = true
	m := New(cfg, &fakeBackend{}, "test")
	defer m.Close()
	setSize(m, 100, 40)
	m.selectPath(writeDoc(t, "a.txt", "x"))

	deliver[UploadDoneMsg](t, m, sendKey(m, "u"))

	if m.Controller().HasFile() {
		t.Error("clear_after_upload should drop the selection")
	}
}

func TestUpload_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured error",
			err:  &backend.StatusError{StatusCode: 500, Message: "file too large"},
			want: "Upload error: file too large",
		},
		{
			name: "transport error",
			err:  errors.New("dial tcp: connection refused"),
			want: "Upload error: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{upload: func(backend.UploadRequest) (*backend.UploadResult, error) {
				return nil, tt.err
			}}
			m := testModel(t, b)
			m.selectPath(writeDoc(t, "big.pdf", "%PDF-1.4"))

			deliver[UploadDoneMsg](t, m, sendKey(m, "u"))

			if m.Controller().Busy() {
				t.Error("busy flag should be released on failure")
			}
			if f := m.footer.Flash(); f == nil || f.Text != tt.want {
				t.Errorf("flash = %+v, want %q", f, tt.want)
			}
		})
	}
}

func TestUpload_DesktopNotification(t *testing.T) {
	var titles []string
	notification.SetNotifier(func(title, message string, icon any) error {
		titles = append(titles, title)
		return nil
	})
	defer notification.ResetNotifier()

	cfg := testConfig(t)
	cfg.NotificationsEnabled = true
	m := New(cfg, &fakeBackend{}, "test")
	defer m.Close()
	m.selectPath(writeDoc(t, "a.txt", "x"))

	_, cmd := m.handleUploadDone(UploadDoneMsg{Outcome: controller.UploadOutcome{
		Result: &backend.UploadResult{FileName: "a.txt", NumChunks: 2},
	}})

	// The batch holds the flash timer and the notification; only the
	// notification returns immediately.
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("expected a batch of flash tick and notification, got %T", cmd())
	}
	batch[1]()

	if len(titles) != 1 {
		t.Errorf("sent %d notifications, want 1", len(titles))
	}
}

func TestReset(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.selectPath(writeDoc(t, "a.txt", "x"))

	sendKey(m, "x")
	if m.Controller().HasFile() {
		t.Error("x should clear the selection")
	}
	if !strings.Contains(stripANSI(m.RenderToString()), "No file selected") {
		t.Error("upload panel should show the empty hint")
	}
}

func TestReset_DisabledWhileBusy(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.selectPath(writeDoc(t, "a.txt", "x"))
	sendKey(m, "u")

	sendKey(m, "x")
	if !m.Controller().HasFile() {
		t.Error("reset should be disabled during an upload")
	}
}

func submitQuestion(t *testing.T, m *Model, q string) tea.Cmd {
	t.Helper()
	focusPane(t, m, FocusQuery)
	typeText(m, q)
	return sendKey(m, keys.Enter)
}

func TestQuery_Success(t *testing.T) {
	b := &fakeBackend{query: func(q string) (*backend.QueryResult, error) {
		return &backend.QueryResult{Answer: "Settlement finalizes transfers.", Contexts: []string{"chunk one", "chunk two"}}, nil
	}}
	m := testModel(t, b)

	cmd := submitQuestion(t, m, "What is settlement?")
	if !m.ask.IsLoading() {
		t.Error("spinner should run while the query is in flight")
	}

	deliver[QueryDoneMsg](t, m, cmd)

	if m.Controller().Answer() != "Settlement finalizes transfers." {
		t.Errorf("answer = %q", m.Controller().Answer())
	}
	if m.passages.Len() != 2 {
		t.Errorf("passages = %d, want 2", m.passages.Len())
	}
	if m.ask.IsLoading() {
		t.Error("spinner should stop once nothing is in flight")
	}
	view := stripANSI(m.RenderToString())
	for _, want := range []string{"Settlement finalizes", "Chunk #1", "Chunk #2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuery_ClearsPreviousResultImmediately(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Result: &backend.QueryResult{Answer: "old", Contexts: []string{"c"}}}})

	submitQuestion(t, m, "again")

	if m.Controller().Answer() != "" || m.passages.Len() != 0 {
		t.Error("submit should clear the answer and passages before the response")
	}
	if m.ask.Answer() != "" {
		t.Errorf("answer panel = %q, want empty", m.ask.Answer())
	}
}

func TestQuery_EmptyQuestionIsSent(t *testing.T) {
	b := &fakeBackend{}
	m := testModel(t, b)

	deliver[QueryDoneMsg](t, m, submitQuestion(t, m, ""))

	if b.queryCount() != 1 || b.queries[0] != "" {
		t.Errorf("queries = %q, want one empty query", b.queries)
	}
}

func TestQuery_Failure(t *testing.T) {
	b := &fakeBackend{query: func(string) (*backend.QueryResult, error) {
		return nil, &backend.StatusError{StatusCode: 400, Message: "query is required"}
	}}
	m := testModel(t, b)

	deliver[QueryDoneMsg](t, m, submitQuestion(t, m, "x"))

	if got := m.Controller().Answer(); got != "Error: query is required" {
		t.Errorf("answer = %q", got)
	}
	if m.passages.Len() != 0 {
		t.Error("failure should leave no passages")
	}
}

func TestQuery_StaleResultDropped(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	focusPane(t, m, FocusQuery)
	sendKey(m, keys.Enter) // seq 1
	sendKey(m, keys.Enter) // seq 2

	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Seq: 2, Result: &backend.QueryResult{Answer: "newer"}}})
	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Seq: 1, Result: &backend.QueryResult{Answer: "older"}}})

	if got := m.Controller().Answer(); got != "newer" {
		t.Errorf("answer = %q, the older response should be dropped", got)
	}
	if m.Controller().QueriesInFlight() != 0 {
		t.Errorf("in flight = %d, want 0", m.Controller().QueriesInFlight())
	}
}

func TestQuery_ArrivalOrdering(t *testing.T) {
	cfg := testConfig(t)
	cfg.QueryOrdering = "arrival"
	m := New(cfg, &fakeBackend{}, "test")
	defer m.Close()
	setSize(m, 100, 40)
	focusPane(t, m, FocusQuery)
	sendKey(m, keys.Enter)
	sendKey(m, keys.Enter)

	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Seq: 2, Result: &backend.QueryResult{Answer: "newer"}}})
	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Seq: 1, Result: &backend.QueryResult{Answer: "older"}}})

	if got := m.Controller().Answer(); got != "older" {
		t.Errorf("answer = %q, last arrival should win", got)
	}
}

func TestPassages_Keys(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Result: &backend.QueryResult{
		Answer:   "a",
		Contexts: []string{"first passage", "second passage", "third passage"},
	}}})
	focusPane(t, m, FocusPassages)

	sendKey(m, "j")
	sendKey(m, keys.Down)
	if m.passages.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.passages.Cursor())
	}
	sendKey(m, "k")
	if m.passages.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.passages.Cursor())
	}

	sendKey(m, keys.Space)
	if !m.passages.IsExpanded(1) {
		t.Error("space should expand the focused passage")
	}
	sendKey(m, keys.Enter)
	if m.passages.IsExpanded(1) {
		t.Error("enter should collapse it again")
	}

	sendKey(m, "e")
	for i := 0; i < 3; i++ {
		if !m.passages.IsExpanded(i) {
			t.Errorf("passage %d should be expanded", i)
		}
	}
	sendKey(m, "E")
	for i := 0; i < 3; i++ {
		if m.passages.IsExpanded(i) {
			t.Errorf("passage %d should be collapsed", i)
		}
	}

	sendKey(m, keys.End)
	if m.passages.Cursor() != 2 {
		t.Errorf("end: cursor = %d", m.passages.Cursor())
	}
	sendKey(m, keys.Home)
	if m.passages.Cursor() != 0 {
		t.Errorf("home: cursor = %d", m.passages.Cursor())
	}
}

func TestPassages_KeepStateWhenUnchanged(t *testing.T) {
	m := testModel(t, &fakeBackend{})
	m.Update(QueryDoneMsg{Outcome: controller.QueryOutcome{Result: &backend.QueryResult{
		Answer:   "a",
		Contexts: []string{"one", "two"},
	}}})
	focusPane(t, m, FocusPassages)
	sendKey(m, keys.Space)

	// Unrelated state changes re-sync the panels.
	m.selectPath(writeDoc(t, "a.txt", "x"))

	if !m.passages.IsExpanded(0) {
		t.Error("expansion should survive a sync with the same passages")
	}
}
