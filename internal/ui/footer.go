package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Pane identifies which panel owns keyboard input.
type Pane int

const (
	PaneUpload Pane = iota
	PaneQuery
	PanePassages
)

// FooterContext is the slice of app state the footer needs to choose bindings.
type FooterContext struct {
	Pane        Pane
	PickerOpen  bool
	HelpOpen    bool
	Dragging    bool
	CanUpload   bool
	HasAnswer   bool
	HasPassages bool
}

// FlashType selects the icon and color of a flash message.
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// FlashMessage is a transient footer notice.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry.
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry after a short delay.
func FlashTick() tea.Cmd {
	return tea.Tick(FlashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	ctx          FooterContext
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
}

// SetFlash shows a flash message for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for d.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// Flash returns the current flash message, or nil.
func (f *Footer) Flash() *FlashMessage {
	return f.flashMessage
}

// ClearIfExpired removes an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the shortcuts relevant to the current context.
func (f *Footer) Bindings() []KeyBinding {
	c := f.ctx
	switch {
	case c.HelpOpen:
		return []KeyBinding{{"esc/?", "close"}}
	case c.PickerOpen:
		return []KeyBinding{
			{"↑/↓", "navigate"},
			{"enter", "select"},
			{"←/→", "up/open dir"},
			{"esc", "cancel"},
		}
	case c.Dragging:
		return []KeyBinding{{"drop", "select file"}, {"esc", "cancel"}}
	}

	var b []KeyBinding
	switch c.Pane {
	case PaneUpload:
		b = append(b, KeyBinding{"o", "browse"})
		if c.CanUpload {
			b = append(b, KeyBinding{"u", "upload"}, KeyBinding{"x", "reset"})
		}
	case PaneQuery:
		b = append(b, KeyBinding{"enter", "ask"})
	case PanePassages:
		if c.HasPassages {
			b = append(b,
				KeyBinding{"↑/↓", "move"},
				KeyBinding{"space", "toggle"},
				KeyBinding{"e/E", "expand/collapse all"},
				KeyBinding{"c", "copy chunk"},
			)
		}
	}
	b = append(b, KeyBinding{"tab", "switch pane"})
	if c.HasAnswer && c.Pane != PaneQuery {
		b = append(b, KeyBinding{"y", "copy answer"})
	}
	if c.Pane == PaneQuery {
		b = append(b, KeyBinding{"ctrl+c", "quit"})
	} else {
		b = append(b, KeyBinding{"?", "help"}, KeyBinding{"q", "quit"})
	}
	return b
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	if f.width > 2 {
		content = ansi.Truncate(content, f.width-2, "…")
	}
	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	color := ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, color = "✕", ColorError
	case FlashWarning:
		icon, color = "⚠", ColorWarning
	case FlashSuccess:
		icon, color = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}
	text := icon + " " + f.flashMessage.Text
	if f.width > 2 {
		text = ansi.Truncate(text, f.width-2, "…")
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
}
