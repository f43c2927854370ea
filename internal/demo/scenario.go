// Package demo runs scripted sessions of the TUI for documentation and
// smoke testing. Scenarios drive the real app model against the in-process
// mock backend, so recordings are deterministic and need no real service.
package demo

import (
	"fmt"
	"time"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration and captures a frame.
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepDrop drops one or more setup documents onto the terminal.
	StepDrop
	// StepPaste sends raw text as a bracketed paste.
	StepPaste
	// StepSettle waits until every request to the backend has come back.
	StepSettle
	// StepCapture captures the current frame.
	StepCapture
	// StepAnnotate adds a caption to the next captured frame.
	StepAnnotate
)

// String returns the step type name used in logs and errors.
func (t StepType) String() string {
	switch t {
	case StepWait:
		return "wait"
	case StepKey:
		return "key"
	case StepTypeText:
		return "type"
	case StepDrop:
		return "drop"
	case StepPaste:
		return "paste"
	case StepSettle:
		return "settle"
	case StepCapture:
		return "capture"
	case StepAnnotate:
		return "annotate"
	default:
		return "unknown"
	}
}

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string

	Key        string        // StepKey
	Text       string        // StepTypeText, StepPaste
	Documents  []string      // StepDrop: names from ScenarioSetup.Documents
	Duration   time.Duration // StepWait
	Annotation string        // StepAnnotate
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// Document is a file the scenario can drop or pick. Content is written as-is.
type Document struct {
	Name    string
	Content string
}

// ScenarioSetup defines the initial state for a demo.
type ScenarioSetup struct {
	// Documents are written to a scratch directory that also serves as the
	// file picker's start directory.
	Documents []Document

	// Indexed documents are in the mock backend before the first step.
	Indexed []Document

	// Latency is added to every upload and query on the mock backend.
	Latency time.Duration

	// Ordering is "latest" or "arrival"; empty keeps the default.
	Ordering string

	// Focus is the initial panel: "upload", "query" or "passages".
	Focus string
}

// DefaultSetup returns a minimal setup for demos.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Documents: []Document{
			{
				Name:    "handbook.md",
				Content: "Expense reports are due on the fifth business day of each month.\n\nLate reports need manager approval.",
			},
		},
		Focus: "upload",
	}
}

// Document looks up a setup document by name.
func (s *ScenarioSetup) Document(name string) (Document, bool) {
	for _, d := range s.Documents {
		if d.Name == name {
			return d, true
		}
	}
	return Document{}, false
}

// Validate checks that the scenario is valid and fills in defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	switch s.Setup.Focus {
	case "", "upload", "query", "passages":
	default:
		return &ValidationError{Field: "Setup.Focus", Message: "unknown panel " + s.Setup.Focus}
	}
	switch s.Setup.Ordering {
	case "", "latest", "arrival":
	default:
		return &ValidationError{Field: "Setup.Ordering", Message: "unknown ordering " + s.Setup.Ordering}
	}
	for i, step := range s.Steps {
		if step.Type != StepDrop {
			continue
		}
		if len(step.Documents) == 0 {
			return &ValidationError{Field: "Steps", Message: "drop step without documents"}
		}
		for _, name := range step.Documents {
			if _, ok := s.Setup.Document(name); !ok {
				return &ValidationError{
					Field:   "Steps",
					Message: fmt.Sprintf("step %d drops unknown document %s", i, name),
				}
			}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// Drop creates a step that drops the named setup documents.
func Drop(names ...string) Step {
	return Step{
		Type:      StepDrop,
		Documents: names,
	}
}

// Paste creates a step that pastes raw text.
func Paste(text string) Step {
	return Step{
		Type: StepPaste,
		Text: text,
	}
}

// Settle waits for outstanding backend requests.
func Settle() Step {
	return Step{Type: StepSettle}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}
