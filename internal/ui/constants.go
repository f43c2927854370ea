// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// UploadPanelHeight is the outer height of the upload panel: title, file
	// line, action line and borders.
	UploadPanelHeight = 5

	// AskInputHeight is the outer height of the question input row.
	AskInputHeight = 3

	// AnswerRatio is the share of the remaining height given to the answer;
	// passages get the rest.
	AnswerRatio = 0.4

	// MinAnswerHeight and MinPassagesHeight are the smallest useful panel heights.
	MinAnswerHeight   = 4
	MinPassagesHeight = 4

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// PreviewWidth caps the one-line preview of a collapsed passage.
	PreviewWidth = 60

	// TabWidth is the tab stop interval used when printing passages.
	TabWidth = 8
)

// Terminal minimums
const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 20
)

// Modal dimensions
const (
	ModalWidth        = 70
	PickerHeight      = 14
	HelpModalMaxWidth = 60
)

// Flash messages
const (
	// DefaultFlashDuration is how long a footer flash stays visible.
	DefaultFlashDuration = 4 * time.Second

	// FlashTickInterval is how often expiry is checked.
	FlashTickInterval = 500 * time.Millisecond
)
