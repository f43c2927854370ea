package ui

import "charm.land/lipgloss/v2"

// Color palette, overwritten by SetTheme.
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorBgSelected  = lipgloss.Color("#7C3AED")
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorAnswer      = lipgloss.Color("#22D3EE")
	ColorChunk       = lipgloss.Color("#A78BFA")
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for drag hover
	ColorInfo        = lipgloss.Color("#06B6D4")
	ColorError       = lipgloss.Color("#EF4444")
	ColorSuccess     = lipgloss.Color("#10B981")
)

// Header styles
var (
	HeaderStyle      lipgloss.Style
	HeaderTitleStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style

	// DropTargetStyle replaces the upload panel border while a drag hovers.
	DropTargetStyle lipgloss.Style
)

// Upload panel
var (
	FileNameStyle       lipgloss.Style
	FileMetaStyle       lipgloss.Style
	FileHintStyle       lipgloss.Style
	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style
)

// Answer and passages
var (
	AnswerLabelStyle   lipgloss.Style
	AnswerTextStyle    lipgloss.Style
	AnswerErrorStyle   lipgloss.Style
	ChunkHeaderStyle   lipgloss.Style
	ChunkSelectedStyle lipgloss.Style
	ChunkBodyStyle     lipgloss.Style
	ChunkPreviewStyle  lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusOKStyle      lipgloss.Style
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the current color variables.
func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	DropTargetStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorWarning)

	FileNameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	FileMetaStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FileHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ButtonStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextInverse).
		Background(ColorPrimary).
		Padding(0, 1)

	ButtonDisabledStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorBorder).
		Padding(0, 1)

	AnswerLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAnswer)

	AnswerTextStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	AnswerErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ChunkHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorChunk)

	ChunkSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorBgSelected)

	ChunkBodyStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		PaddingLeft(2)

	ChunkPreviewStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	StatusOKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
}
