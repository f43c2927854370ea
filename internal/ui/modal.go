package ui

import (
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/filepicker"
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/ragdesk/internal/keys"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	// Add error if present
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// PickerState - State for the file picker modal
// =============================================================================

// PickerState browses the filesystem for a document. The allowed extensions
// only dim other files; any regular file can be chosen. Tab switches to a
// path input for typing a location directly.
type PickerState struct {
	Picker    filepicker.Model
	PathInput textinput.Model
	UseInput  bool

	selected string
}

func (*PickerState) modalState() {}

func (s *PickerState) Title() string { return "Select a document" }

func (s *PickerState) Help() string {
	if s.UseInput {
		return "Enter to select, Tab to browse, Esc to cancel"
	}
	return "↑/↓ navigate, ←/→ up/open dir, Enter select, Tab type a path, Esc cancel"
}

// Init starts reading the picker's directory.
func (s *PickerState) Init() tea.Cmd {
	return s.Picker.Init()
}

func (s *PickerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	dir := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(s.Picker.CurrentDirectory)

	pickerStyle := lipgloss.NewStyle().PaddingLeft(2)
	inputStyle := lipgloss.NewStyle().PaddingLeft(2)
	focused := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	if s.UseInput {
		inputStyle = focused
	} else {
		pickerStyle = focused
	}

	typeLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Or type a path:")

	helpText := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		dir,
		pickerStyle.Render(s.Picker.View()),
		typeLabel,
		inputStyle.Render(s.PathInput.View()),
		helpText,
	)
}

func (s *PickerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Tab, keys.ShiftTab:
			s.UseInput = !s.UseInput
			if s.UseInput {
				return s, s.PathInput.Focus()
			}
			s.PathInput.Blur()
			return s, nil
		case keys.Enter:
			if s.UseInput {
				if p := strings.TrimSpace(s.PathInput.Value()); p != "" {
					s.selected = p
				}
				return s, nil
			}
		}
	}

	if s.UseInput {
		var cmd tea.Cmd
		s.PathInput, cmd = s.PathInput.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.Picker, cmd = s.Picker.Update(msg)
	if ok, path := s.Picker.DidSelectFile(msg); ok {
		s.selected = path
	} else if ok, path := s.Picker.DidSelectDisabledFile(msg); ok {
		s.selected = path
	}
	return s, cmd
}

// Selected returns the chosen path once the user confirms a file.
func (s *PickerState) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// NewPickerState creates a picker rooted at dir showing the given extensions
// as suggestions.
func NewPickerState(dir string, suggested []string) *PickerState {
	fp := filepicker.New()
	fp.CurrentDirectory = filepath.Clean(dir)
	fp.AllowedTypes = suggested
	fp.AutoHeight = false
	fp.SetHeight(PickerHeight)
	fp.ShowPermissions = false
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(ColorSecondary)
	fp.Styles.DisabledFile = lipgloss.NewStyle().Foreground(ColorMuted)

	ti := textinput.New()
	ti.Placeholder = "/path/to/document.pdf"
	ti.SetWidth(ModalWidth - 10)

	return &PickerState{
		Picker:    fp,
		PathInput: ti,
	}
}

// =============================================================================
// HelpState - State for the keyboard shortcuts modal
// =============================================================================

// HelpSection is one column of the shortcuts modal.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// helpKeyMap adapts sections to help.KeyMap.
type helpKeyMap []HelpSection

func (k helpKeyMap) ShortHelp() []key.Binding {
	if len(k) == 0 {
		return nil
	}
	return k[0].Bindings
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	groups := make([][]key.Binding, 0, len(k))
	for _, s := range k {
		groups = append(groups, s.Bindings)
	}
	return groups
}

type HelpState struct {
	Sections []HelpSection
	help     help.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard shortcuts" }

func (s *HelpState) Help() string { return "Esc or ? to close" }

func (s *HelpState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginTop(1)

	parts := []string{title}
	for _, sec := range s.Sections {
		parts = append(parts,
			sectionStyle.Render(sec.Title),
			s.help.FullHelpView([][]key.Binding{sec.Bindings}),
		)
	}

	drop := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Width(HelpModalMaxWidth).
		Render("Drag a file onto the terminal while the document panel is focused to select it.")

	parts = append(parts, drop, ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// KeyMap returns the sections as a help.KeyMap.
func (s *HelpState) KeyMap() help.KeyMap {
	return helpKeyMap(s.Sections)
}

// NewHelpState creates the shortcuts modal from grouped bindings.
func NewHelpState(sections []HelpSection) *HelpState {
	h := help.New()
	h.SetWidth(HelpModalMaxWidth)
	h.ShowAll = true
	return &HelpState{
		Sections: sections,
		help:     h,
	}
}
