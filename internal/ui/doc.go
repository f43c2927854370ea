// Package ui provides the visual components of the ragdesk TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): title, backend, health             │
//	├─────────────────────────────────────────────────────┤
//	│ Document panel: file pill, Upload & Index, Reset    │
//	├─────────────────────────────────────────────────────┤
//	│ ? question input                                    │
//	│ Answer                                              │
//	├─────────────────────────────────────────────────────┤
//	│ Context passages: Chunk #1..N accordion             │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): key hints or flash message         │
//	└─────────────────────────────────────────────────────┘
//
// ViewContext owns the height split. Panels are render-only: they hold the
// widget state (text input, viewports, spinner, accordion cursor) but never
// the interaction state, which lives in the controller and is pushed in by
// the app model before each render.
//
// Modal hosts the file picker and the shortcuts help. Styles are rebuilt
// from the active Theme by SetTheme.
package ui
