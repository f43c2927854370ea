package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Health is the last known backend reachability.
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthDown
)

func (h Health) marker() string {
	switch h {
	case HealthOK:
		return "● online"
	case HealthDown:
		return "○ offline"
	default:
		return "◌ checking"
	}
}

// Header represents the top header bar
type Header struct {
	width   int
	backend string
	health  Health
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetBackend sets the backend address shown on the right
func (h *Header) SetBackend(url string) {
	h.backend = url
}

// SetHealth records the result of the last health probe
func (h *Header) SetHealth(health Health) {
	h.health = health
}

// Health returns the last recorded health
func (h *Header) Health() Health {
	return h.health
}

// View renders the header
func (h *Header) View() string {
	titleText := " ragdesk"
	var rightText string
	if h.backend != "" {
		rightText = h.backend + "  " + h.health.marker() + " "
	}

	// Drop the address before overflowing the bar.
	if runewidth.StringWidth(titleText)+runewidth.StringWidth(rightText) > h.width && h.backend != "" {
		rightText = h.health.marker() + " "
	}

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText
	return h.renderGradient(fullContent, len([]rune(titleText))+paddingLen)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// Runes from mutedFrom onwards (the backend address) use the muted text color,
// except for the health marker, which is colored by state.
func (h *Header) renderGradient(content string, mutedFrom int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	markerColor := mutedColor
	switch h.health {
	case HealthOK:
		markerColor = lipgloss.Color(theme.Success)
	case HealthDown:
		markerColor = lipgloss.Color(theme.Error)
	}

	runes := []rune(content)
	width := len(runes)
	markerStart := width - len([]rune(h.health.marker())) - 1

	var result strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)
		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 8) // "ragdesk" title

		switch {
		case h.backend != "" && i >= markerStart:
			style = style.Foreground(markerColor)
		case i >= mutedFrom:
			style = style.Foreground(mutedColor)
		default:
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
