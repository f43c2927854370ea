package app

import (
	"slices"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/ragdesk/internal/clipboard"
	"github.com/zhubert/ragdesk/internal/keys"
	"github.com/zhubert/ragdesk/internal/logger"
	"github.com/zhubert/ragdesk/internal/ui"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key          string                              // The key binding (e.g., "o", "ctrl+o")
	DisplayKey   string                              // Display name in help; defaults to Key
	Description  string                              // Human-readable description
	Category     string                              // Section for help modal grouping
	Panes        []Focus                             // Panels the shortcut applies to; empty means all
	AllowInInput bool                                // Fires even while the question input has focus
	Hidden       bool                                // Alias left out of the help modal
	Handler      func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition    func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Navigation"
	CategoryDocument   = "Document"
	CategoryQuestion   = "Question"
	CategoryPassages   = "Passages"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryDocument,
	CategoryQuestion,
	CategoryPassages,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of keyboard shortcuts. Several
// entries may share a key; the first whose guards pass wins.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:          keys.Tab,
		DisplayKey:   "tab/shift+tab",
		Description:  "Cycle focus between panels",
		Category:     CategoryNavigation,
		AllowInInput: true,
		Handler:      func(m *Model) (tea.Model, tea.Cmd) { return m, m.cycleFocus(1) },
	},
	{
		Key:          keys.ShiftTab,
		Category:     CategoryNavigation,
		AllowInInput: true,
		Hidden:       true,
		Handler:      func(m *Model) (tea.Model, tea.Cmd) { return m, m.cycleFocus(-1) },
	},

	// Document
	{
		Key:         "o",
		Description: "Browse for a document",
		Category:    CategoryDocument,
		Panes:       []Focus{FocusUpload},
		Handler:     shortcutOpenPicker,
	},
	{
		Key:          keys.CtrlO,
		Description:  "Browse from any panel",
		Category:     CategoryDocument,
		AllowInInput: true,
		Handler:      shortcutOpenPicker,
	},
	{
		Key:         "u",
		DisplayKey:  "u/enter",
		Description: "Upload & index the selected file",
		Category:    CategoryDocument,
		Panes:       []Focus{FocusUpload},
		Handler:     shortcutUpload,
	},
	{
		Key:      keys.Enter,
		Category: CategoryDocument,
		Panes:    []Focus{FocusUpload},
		Hidden:   true,
		Handler:  shortcutUpload,
	},
	{
		Key:          keys.CtrlU,
		Description:  "Upload & index from any panel",
		Category:     CategoryDocument,
		AllowInInput: true,
		Handler:      shortcutUpload,
	},
	{
		Key:         "x",
		Description: "Reset the selection",
		Category:    CategoryDocument,
		Panes:       []Focus{FocusUpload},
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m, m.clearFile() },
	},

	// Question
	{
		Key:          keys.Enter,
		Description:  "Ask the question",
		Category:     CategoryQuestion,
		Panes:        []Focus{FocusQuery},
		AllowInInput: true,
		Handler:      func(m *Model) (tea.Model, tea.Cmd) { return m, m.submitQuery() },
	},
	{
		Key:          keys.CtrlL,
		Description:  "Clear the question",
		Category:     CategoryQuestion,
		Panes:        []Focus{FocusQuery},
		AllowInInput: true,
		Handler:      shortcutClearQuestion,
	},
	{
		Key:         "y",
		Description: "Copy the answer",
		Category:    CategoryQuestion,
		Handler:     shortcutCopyAnswer,
		Condition:   func(m *Model) bool { return m.ctrl.Answer() != "" },
	},

	// Passages
	{
		Key:         keys.Up,
		DisplayKey:  "↑/↓ k/j",
		Description: "Move between passages",
		Category:    CategoryPassages,
		Panes:       []Focus{FocusPassages},
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.passages.Move(-1); return m, nil },
	},
	{Key: "k", Category: CategoryPassages, Panes: []Focus{FocusPassages}, Hidden: true, Handler: func(m *Model) (tea.Model, tea.Cmd) { m.passages.Move(-1); return m, nil }},
	{Key: keys.Down, Category: CategoryPassages, Panes: []Focus{FocusPassages}, Hidden: true, Handler: func(m *Model) (tea.Model, tea.Cmd) { m.passages.Move(1); return m, nil }},
	{Key: "j", Category: CategoryPassages, Panes: []Focus{FocusPassages}, Hidden: true, Handler: func(m *Model) (tea.Model, tea.Cmd) { m.passages.Move(1); return m, nil }},
	{
		Key:         keys.Home,
		DisplayKey:  "home/end",
		Description: "First / last passage",
		Category:    CategoryPassages,
		Panes:       []Focus{FocusPassages},
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.passages.Home(); return m, nil },
	},
	{Key: keys.End, Category: CategoryPassages, Panes: []Focus{FocusPassages}, Hidden: true, Handler: func(m *Model) (tea.Model, tea.Cmd) { m.passages.End(); return m, nil }},
	{
		Key:         keys.Space,
		DisplayKey:  "space/enter",
		Description: "Expand or collapse the passage",
		Category:    CategoryPassages,
		Panes:       []Focus{FocusPassages},
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.passages.Toggle(); return m, nil },
	},
	{Key: keys.Enter, Category: CategoryPassages, Panes: []Focus{FocusPassages}, Hidden: true, Handler: func(m *Model) (tea.Model, tea.Cmd) { m.passages.Toggle(); return m, nil }},
	{
		Key:         "e",
		Description: "Expand all passages",
		Category:    CategoryPassages,
		Panes:       []Focus{FocusPassages},
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.passages.ExpandAll(); return m, nil },
	},
	{
		Key:         "E",
		Description: "Collapse all passages",
		Category:    CategoryPassages,
		Panes:       []Focus{FocusPassages},
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.passages.CollapseAll(); return m, nil },
	},
	{
		Key:         "c",
		Description: "Copy the focused passage",
		Category:    CategoryPassages,
		Panes:       []Focus{FocusPassages},
		Handler:     shortcutCopyPassage,
		Condition:   func(m *Model) bool { return m.passages.Len() > 0 },
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:         "q",
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.quit() },
	},
	{
		Key:          keys.CtrlC,
		Description:  "Quit from anywhere",
		Category:     CategoryGeneral,
		AllowInInput: true,
		Handler:      func(m *Model) (tea.Model, tea.Cmd) { return m.quit() },
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Show this help",
	Category:    CategoryGeneral,
}

// applicable reports whether s may fire in the model's current state.
func (m *Model) applicable(s Shortcut) bool {
	if m.inputFocused() && !s.AllowInInput {
		return false
	}
	if len(s.Panes) > 0 && !slices.Contains(s.Panes, m.focus) {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if a shortcut was found and its guards passed.
// Returns (model, nil, false) otherwise so the key can reach the focused panel.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key {
		if !m.applicable(helpShortcut) {
			return m, nil, false
		}
		m.openHelp()
		return m, nil, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key || !m.applicable(s) {
			continue
		}
		logger.WithComponent("shortcuts").Debug("executing", "key", key, "focus", m.focus.String())
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections groups the visible shortcuts by category for the help modal.
func helpSections() []ui.HelpSection {
	byCategory := make(map[string][]key.Binding)
	add := func(s Shortcut) {
		if s.Hidden {
			return
		}
		display := s.DisplayKey
		if display == "" {
			display = s.Key
		}
		byCategory[s.Category] = append(byCategory[s.Category],
			key.NewBinding(key.WithKeys(s.Key), key.WithHelp(display, s.Description)))
	}
	for _, s := range ShortcutRegistry {
		add(s)
	}
	add(helpShortcut)

	var sections []ui.HelpSection
	for _, cat := range categoryOrder {
		if bindings := byCategory[cat]; len(bindings) > 0 {
			sections = append(sections, ui.HelpSection{Title: cat, Bindings: bindings})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

// shortcutOpenPicker works during an upload too. The running upload keeps
// the file it was started with.
func shortcutOpenPicker(m *Model) (tea.Model, tea.Cmd) {
	return m, m.openPicker()
}

func shortcutUpload(m *Model) (tea.Model, tea.Cmd) {
	if !m.ctrl.HasFile() {
		return m, m.flash("Select a file first (o to browse)", ui.FlashWarning)
	}
	return m, m.submitUpload()
}

func shortcutClearQuestion(m *Model) (tea.Model, tea.Cmd) {
	m.ask.SetValue("")
	m.ctrl.SetQuery("")
	return m, nil
}

func shortcutCopyAnswer(m *Model) (tea.Model, tea.Cmd) {
	if err := clipboard.WriteText(m.ctrl.Answer()); err != nil {
		logger.WithComponent("shortcuts").Warn("copy answer failed", "error", err)
		return m, m.flash("Clipboard unavailable: "+err.Error(), ui.FlashError)
	}
	return m, m.flash("Answer copied", ui.FlashSuccess)
}

func shortcutCopyPassage(m *Model) (tea.Model, tea.Cmd) {
	text, ok := m.passages.Selected()
	if !ok {
		return m, nil
	}
	if err := clipboard.WriteText(text); err != nil {
		logger.WithComponent("shortcuts").Warn("copy passage failed", "error", err)
		return m, m.flash("Clipboard unavailable: "+err.Error(), ui.FlashError)
	}
	return m, m.flash("Passage copied", ui.FlashSuccess)
}
