package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestExecutorDefaultConfig(t *testing.T) {
	cfg := DefaultExecutorConfig()

	if cfg.CaptureEveryStep {
		t.Error("CaptureEveryStep should be false by default")
	}
	if cfg.TypeDelay != 50*time.Millisecond {
		t.Errorf("TypeDelay = %v, want 50ms", cfg.TypeDelay)
	}
	if cfg.KeyDelay != 100*time.Millisecond {
		t.Errorf("KeyDelay = %v, want 100ms", cfg.KeyDelay)
	}
	if cfg.SettleTimeout != 10*time.Second {
		t.Errorf("SettleTimeout = %v, want 10s", cfg.SettleTimeout)
	}
}

func TestExecutorRun_UploadAndQuery(t *testing.T) {
	scenario := &Scenario{
		Name:   "upload-and-query",
		Width:  100,
		Height: 30,
		Steps: []Step{
			Drop("handbook.md"),
			Key("u"),
			Settle(),
			Key("tab"),
			Type("When are reports due?"),
			Key("enter"),
			Settle(),
		},
	}

	executor := NewExecutor(DefaultExecutorConfig())
	frames, err := executor.Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// initial + drop + two settles
	if len(frames) != 4 {
		t.Errorf("got %d frames, want 4", len(frames))
	}
	if frames[0].Delay != 500*time.Millisecond {
		t.Errorf("first frame delay = %v, want 500ms", frames[0].Delay)
	}

	ctrl := executor.Model().Controller()
	if f := ctrl.File(); f == nil || f.Name != "handbook.md" {
		t.Errorf("File() = %+v, want handbook.md", f)
	}
	if !strings.Contains(ctrl.Answer(), "fifth business day") {
		t.Errorf("Answer() = %q", ctrl.Answer())
	}
	if len(ctrl.Contexts()) != 1 {
		t.Errorf("Contexts() = %q, want one passage", ctrl.Contexts())
	}

	last := ansi.Strip(frames[len(frames)-1].Content)
	if !strings.Contains(last, "handbook.md") {
		t.Error("final frame should show the selected file")
	}
}

func TestExecutorRun_IndexedDocuments(t *testing.T) {
	scenario := &Scenario{
		Name: "indexed",
		Setup: &ScenarioSetup{
			Indexed: []Document{{Name: "benefits.md", Content: "Dental coverage is optional."}},
			Focus:   "query",
		},
		Steps: []Step{
			Type("Is dental coverage optional?"),
			Key("enter"),
			Settle(),
		},
	}

	executor := NewExecutor(DefaultExecutorConfig())
	if _, err := executor.Run(scenario); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	ctrl := executor.Model().Controller()
	if ctrl.HasFile() {
		t.Error("nothing was selected in this scenario")
	}
	if !strings.Contains(ctrl.Answer(), "Dental coverage is optional.") {
		t.Errorf("Answer() = %q", ctrl.Answer())
	}
}

func TestExecutorRun_BackendError(t *testing.T) {
	scenario := &Scenario{
		Name:  "empty-index",
		Setup: &ScenarioSetup{Focus: "query"},
		Steps: []Step{
			Type("anything?"),
			Key("enter"),
			Settle(),
		},
	}

	executor := NewExecutor(DefaultExecutorConfig())
	frames, err := executor.Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	last := ansi.Strip(frames[len(frames)-1].Content)
	if !strings.Contains(last, "no relevant context found") {
		t.Errorf("final frame should show the backend error:\n%s", last)
	}
}

func TestExecutorRun_SettleTimeout(t *testing.T) {
	scenario := &Scenario{
		Name: "slow",
		Setup: &ScenarioSetup{
			Indexed: []Document{{Name: "a.md", Content: "ledger rules"}},
			Latency: 5 * time.Second,
			Focus:   "query",
		},
		Steps: []Step{
			Type("ledger"),
			Key("enter"),
			Settle(),
		},
	}

	cfg := DefaultExecutorConfig()
	cfg.SettleTimeout = 200 * time.Millisecond
	_, err := NewExecutor(cfg).Run(scenario)
	if err == nil || !strings.Contains(err.Error(), "did not respond") {
		t.Errorf("Run() error = %v, want a settle timeout", err)
	}
}

func TestExecutorRunInvalidScenario(t *testing.T) {
	scenario := &Scenario{
		Description: "Invalid",
	}

	_, err := NewExecutor(DefaultExecutorConfig()).Run(scenario)
	if err == nil {
		t.Error("Run() should return error for invalid scenario")
	}
}

func TestExecutorNoCaptureEveryStep(t *testing.T) {
	scenario := &Scenario{
		Name:   "minimal",
		Width:  80,
		Height: 24,
		Steps: []Step{
			Key("tab"),
			Key("tab"),
			Key("shift+tab"),
			Wait(100 * time.Millisecond),
		},
	}

	cfg := DefaultExecutorConfig()
	cfg.CaptureEveryStep = true
	framesWithCapture, err := NewExecutor(cfg).Run(scenario)
	if err != nil {
		t.Fatal(err)
	}

	cfg.CaptureEveryStep = false
	framesWithoutCapture, err := NewExecutor(cfg).Run(scenario)
	if err != nil {
		t.Fatal(err)
	}

	if len(framesWithCapture)-len(framesWithoutCapture) != 3 {
		t.Errorf("with=%d, without=%d; want one extra frame per key press",
			len(framesWithCapture), len(framesWithoutCapture))
	}
}

func TestExecutorAnnotation(t *testing.T) {
	scenario := &Scenario{
		Name: "annotated",
		Steps: []Step{
			Annotate("Look here"),
			Capture(),
			Capture(),
		},
	}

	frames, err := NewExecutor(DefaultExecutorConfig()).Run(scenario)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[1].Annotation != "Look here" {
		t.Errorf("annotated frame = %q", frames[1].Annotation)
	}
	if frames[2].Annotation != "" {
		t.Error("annotation should apply to one frame only")
	}
}

func TestKeyPress(t *testing.T) {
	for _, key := range []string{
		"enter", "tab", "shift+tab", "esc", "up", "down", "home", "end",
		"pgup", "pgdown", "space", "ctrl+c", "ctrl+o", "ctrl+u", "ctrl+l",
		"a", "E", "?",
	} {
		t.Run(key, func(t *testing.T) {
			if got := keyPress(key).String(); got != key {
				t.Errorf("keyPress(%q).String() = %q", key, got)
			}
		})
	}

	if got := keyPress("escape").String(); got != "esc" {
		t.Errorf("keyPress(escape).String() = %q, want esc", got)
	}
}
