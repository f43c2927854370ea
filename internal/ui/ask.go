package ui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// errorPrefix marks an inline query failure.
const errorPrefix = "Error: "

// AskPanel holds the question input and the answer area below it.
type AskPanel struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width    int
	height   int
	answer   string
	inFlight int
}

// NewAskPanel creates the question input and answer viewport.
func NewAskPanel() *AskPanel {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Ask a question about your documents…"
	ti.CharLimit = 0

	vp := viewport.New()
	vp.MouseWheelEnabled = true

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorSecondary)),
	)

	return &AskPanel{
		input:    ti,
		viewport: vp,
		spinner:  sp,
	}
}

// SetSize sets the outer size of the input and answer boxes together.
func (a *AskPanel) SetSize(width, height int) {
	a.width = width
	a.height = height

	ctx := GetViewContext()
	a.input.SetWidth(ctx.InnerWidth(width) - len(a.input.Prompt) - 1)

	answerHeight := height - AskInputHeight
	// One row of the answer box is the "Answer" label.
	vpHeight := ctx.InnerHeight(answerHeight) - 1
	if vpHeight < 1 {
		vpHeight = 1
	}
	a.viewport.SetWidth(ctx.InnerWidth(width))
	a.viewport.SetHeight(vpHeight)
	a.renderAnswer()
}

// Focus gives the question input keyboard focus.
func (a *AskPanel) Focus() tea.Cmd {
	return a.input.Focus()
}

// Blur removes keyboard focus from the question input.
func (a *AskPanel) Blur() {
	a.input.Blur()
}

// IsFocused reports whether the question input has focus.
func (a *AskPanel) IsFocused() bool {
	return a.input.Focused()
}

// Value returns the question text.
func (a *AskPanel) Value() string {
	return a.input.Value()
}

// SetValue replaces the question text.
func (a *AskPanel) SetValue(s string) {
	a.input.SetValue(s)
}

// Update forwards input to the text field and scroll keys to the answer.
func (a *AskPanel) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "pgup", "pgdown":
			a.viewport, cmd = a.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	} else if _, ok := msg.(tea.MouseWheelMsg); ok {
		a.viewport, cmd = a.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// SetAnswer replaces the answer text. Empty means no answer yet.
func (a *AskPanel) SetAnswer(answer string) {
	a.answer = answer
	a.renderAnswer()
	a.viewport.GotoTop()
}

// Answer returns the displayed answer text.
func (a *AskPanel) Answer() string {
	return a.answer
}

// SetInFlight records the number of outstanding queries and returns the
// command that starts the spinner when the first one begins.
func (a *AskPanel) SetInFlight(n int) tea.Cmd {
	start := a.inFlight == 0 && n > 0
	a.inFlight = n
	a.renderAnswer()
	if start {
		return a.spinner.Tick
	}
	return nil
}

// IsLoading reports whether any query is outstanding.
func (a *AskPanel) IsLoading() bool {
	return a.inFlight > 0
}

// UpdateSpinner advances the spinner while queries are outstanding.
func (a *AskPanel) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if a.inFlight == 0 {
		return nil
	}
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(msg)
	return cmd
}

func (a *AskPanel) renderAnswer() {
	width := a.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var content string
	switch {
	case a.answer == "" && a.inFlight > 0:
		content = StatusLoadingStyle.Render("Thinking…")
	case a.answer == "":
		content = FileHintStyle.Render("Answers appear here.")
	case strings.HasPrefix(a.answer, errorPrefix):
		content = AnswerErrorStyle.Render(ansi.Wrap(a.answer, width, ""))
	default:
		content = AnswerTextStyle.Render(ansi.Wrap(a.answer, width, ""))
	}
	a.viewport.SetContent(content)
}

// View renders the input box above the answer box.
func (a *AskPanel) View() string {
	inputStyle := PanelStyle
	if a.input.Focused() {
		inputStyle = PanelFocusedStyle
	}
	inputBox := inputStyle.Width(a.width).Height(AskInputHeight).Render(a.input.View())

	label := AnswerLabelStyle.Render("Answer")
	if a.inFlight > 0 {
		label += " " + a.spinner.View()
	}
	answerHeight := a.height - AskInputHeight
	if answerHeight < BorderSize+1 {
		answerHeight = BorderSize + 1
	}
	answerBox := PanelStyle.Width(a.width).Height(answerHeight).Render(label + "\n" + a.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, inputBox, answerBox)
}
