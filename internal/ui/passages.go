package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Passages renders the context passages of the last answer as an accordion
// of "Chunk #N" entries.
type Passages struct {
	viewport viewport.Model

	width   int
	height  int
	focused bool

	chunks   []string
	expanded []bool
	cursor   int

	// headerLines[i] is the content line of chunk i's header.
	headerLines []int
}

// NewPassages creates an empty passages panel.
func NewPassages() *Passages {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &Passages{viewport: vp}
}

// SetSize sets the outer size of the panel.
func (p *Passages) SetSize(width, height int) {
	p.width = width
	p.height = height

	ctx := GetViewContext()
	vpHeight := ctx.InnerHeight(height) - 1 // title row
	if vpHeight < 1 {
		vpHeight = 1
	}
	p.viewport.SetWidth(ctx.InnerWidth(width))
	p.viewport.SetHeight(vpHeight)
	p.render()
}

// SetFocused sets whether the panel owns keyboard input.
func (p *Passages) SetFocused(focused bool) {
	p.focused = focused
	p.render()
}

// IsFocused reports whether the panel owns keyboard input.
func (p *Passages) IsFocused() bool {
	return p.focused
}

// SetContexts replaces the passages. All entries start collapsed.
func (p *Passages) SetContexts(chunks []string) {
	p.chunks = append([]string(nil), chunks...)
	p.expanded = make([]bool, len(chunks))
	p.cursor = 0
	p.render()
	p.viewport.GotoTop()
}

// Len returns the number of passages.
func (p *Passages) Len() int {
	return len(p.chunks)
}

// Cursor returns the index of the focused passage.
func (p *Passages) Cursor() int {
	return p.cursor
}

// Selected returns the focused passage text.
func (p *Passages) Selected() (string, bool) {
	if p.cursor < 0 || p.cursor >= len(p.chunks) {
		return "", false
	}
	return p.chunks[p.cursor], true
}

// IsExpanded reports whether passage i is open.
func (p *Passages) IsExpanded(i int) bool {
	return i >= 0 && i < len(p.expanded) && p.expanded[i]
}

// Move shifts the focus by delta, clamped to the list.
func (p *Passages) Move(delta int) {
	if len(p.chunks) == 0 {
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.chunks) {
		p.cursor = len(p.chunks) - 1
	}
	p.render()
	p.scrollToCursor()
}

// Home focuses the first passage.
func (p *Passages) Home() {
	p.Move(-len(p.chunks))
}

// End focuses the last passage.
func (p *Passages) End() {
	p.Move(len(p.chunks))
}

// Toggle opens or closes the focused passage.
func (p *Passages) Toggle() {
	if len(p.chunks) == 0 {
		return
	}
	p.expanded[p.cursor] = !p.expanded[p.cursor]
	p.render()
	p.scrollToCursor()
}

// ExpandAll opens every passage.
func (p *Passages) ExpandAll() {
	p.setAll(true)
}

// CollapseAll closes every passage.
func (p *Passages) CollapseAll() {
	p.setAll(false)
}

func (p *Passages) setAll(open bool) {
	for i := range p.expanded {
		p.expanded[i] = open
	}
	p.render()
	p.scrollToCursor()
}

// Update handles page scrolling and the mouse wheel.
func (p *Passages) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgup", "pgdown":
		default:
			return nil
		}
	case tea.MouseWheelMsg:
	default:
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *Passages) scrollToCursor() {
	if p.cursor < len(p.headerLines) {
		p.viewport.EnsureVisible(p.headerLines[p.cursor], 0, 0)
	}
}

// verbatim makes passage text safe to print while keeping its whitespace.
// Tabs become spaces up to the next tab stop so columns still line up once
// the text is wrapped. A CR before LF is dropped because the terminal would
// otherwise return to column zero.
func verbatim(s string, width int) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = expandTabs(s, TabWidth)
	if width <= 0 {
		return s
	}
	return ansi.Hardwrap(s, width, true)
}

// expandTabs replaces each tab with the spaces needed to reach the next
// multiple of tabWidth, counting display columns from the start of the line.
func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
	}
	return b.String()
}

// preview returns the first non-blank line of s cut to width.
func preview(s string, width int) string {
	s = ansi.Strip(s)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if width > 0 && runewidth.StringWidth(line) > width {
			return runewidth.Truncate(line, width, "…")
		}
		return line
	}
	return ""
}

func (p *Passages) render() {
	width := p.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	p.headerLines = p.headerLines[:0]
	if len(p.chunks) == 0 {
		p.viewport.SetContent(FileHintStyle.Render("No passages."))
		return
	}

	var lines []string
	for i, chunk := range p.chunks {
		p.headerLines = append(p.headerLines, len(lines))

		marker := "▸"
		if p.expanded[i] {
			marker = "▾"
		}
		label := fmt.Sprintf("%s Chunk #%d", marker, i+1)

		header := ChunkHeaderStyle.Render(label)
		if p.focused && i == p.cursor {
			header = ChunkSelectedStyle.Render(label)
		}
		if !p.expanded[i] {
			room := width - runewidth.StringWidth(label) - 2
			if room > PreviewWidth {
				room = PreviewWidth
			}
			if pv := preview(chunk, room); pv != "" && room > 1 {
				header += "  " + ChunkPreviewStyle.Render(pv)
			}
			lines = append(lines, header)
			continue
		}

		lines = append(lines, header)
		body := verbatim(chunk, width-ChunkBodyStyle.GetPaddingLeft())
		for _, l := range strings.Split(body, "\n") {
			lines = append(lines, ChunkBodyStyle.Render(l))
		}
	}
	p.viewport.SetContentLines(lines)
}

// View renders the panel.
func (p *Passages) View() string {
	title := PanelTitleStyle.Render("Context passages")
	if n := len(p.chunks); n > 0 {
		title += FileMetaStyle.Render(fmt.Sprintf(" (%d)", n))
	}

	style := PanelStyle
	if p.focused {
		style = PanelFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(title + "\n" + p.viewport.View())
}
