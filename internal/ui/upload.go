package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// UploadPanel renders the selected document, the upload button and the
// drop target highlight.
type UploadPanel struct {
	width   int
	focused bool

	fileName string
	fileMeta string

	busy      bool
	dragging  bool
	canUpload bool
	label     string
}

// NewUploadPanel creates an empty upload panel.
func NewUploadPanel() *UploadPanel {
	return &UploadPanel{label: "Upload & Index"}
}

// SetSize sets the outer width of the panel.
func (u *UploadPanel) SetSize(width int) {
	u.width = width
}

// SetFocused sets whether the panel owns keyboard input.
func (u *UploadPanel) SetFocused(focused bool) {
	u.focused = focused
}

// IsFocused reports whether the panel owns keyboard input.
func (u *UploadPanel) IsFocused() bool {
	return u.focused
}

// SetFile shows a selected file. An empty name clears the pill.
func (u *UploadPanel) SetFile(name, meta string) {
	u.fileName = name
	u.fileMeta = meta
}

// SetState mirrors the controller flags that affect rendering.
func (u *UploadPanel) SetState(busy, dragging, canUpload bool, label string) {
	u.busy = busy
	u.dragging = dragging
	u.canUpload = canUpload
	u.label = label
}

// View renders the panel at UploadPanelHeight.
func (u *UploadPanel) View() string {
	inner := u.width - BorderSize
	if inner < 1 {
		inner = 1
	}

	title := PanelTitleStyle.Render("Document")
	if u.dragging {
		title = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning).Render("Drop file to select")
	}

	var fileLine string
	if u.fileName == "" {
		fileLine = FileHintStyle.Render("No file selected. Press o to browse or drag a file here.")
	} else {
		fileLine = FileNameStyle.Render("📄 " + u.fileName)
		if u.fileMeta != "" {
			fileLine += "  " + FileMetaStyle.Render(u.fileMeta)
		}
	}

	button := ButtonDisabledStyle.Render(u.label)
	reset := ButtonDisabledStyle.Render("Reset")
	if u.canUpload {
		button = ButtonStyle.Render(u.label)
		reset = lipgloss.NewStyle().Foreground(ColorText).Background(ColorBorder).Padding(0, 1).Render("Reset")
	}
	actions := button + "  " + reset
	if u.busy {
		actions += "  " + StatusLoadingStyle.Render("indexing…")
	}

	lines := []string{title, fileLine, actions}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, inner, "…")
	}
	content := strings.Join(lines, "\n")

	style := PanelStyle
	switch {
	case u.dragging:
		style = DropTargetStyle
	case u.focused:
		style = PanelFocusedStyle
	}
	return style.Width(u.width).Height(UploadPanelHeight).Render(content)
}
