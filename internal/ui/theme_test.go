package ui

import (
	"testing"

	"charm.land/lipgloss/v2"
)

func TestBuiltinThemes_Complete(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(BuiltinThemes) {
		t.Fatalf("ThemeNames() lists %d themes, BuiltinThemes has %d", len(names), len(BuiltinThemes))
	}

	for _, name := range names {
		theme, ok := BuiltinThemes[name]
		if !ok {
			t.Errorf("theme %q listed but not defined", name)
			continue
		}
		for field, v := range map[string]string{
			"Primary":   theme.Primary,
			"Bg":        theme.Bg,
			"Text":      theme.Text,
			"TextMuted": theme.TextMuted,
			"Error":     theme.Error,
			"Success":   theme.Success,
			"Warning":   theme.Warning,
		} {
			if r, g, b := parseHexColor(v); v != "#000000" && r == 0 && g == 0 && b == 0 {
				t.Errorf("theme %q field %s = %q is not a hex color", name, field, v)
			}
		}
	}
}

func TestHasTheme(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"", true},
		{"nord", true},
		{"light", true},
		{"solarized", false},
		{"Nord", false},
	}

	for _, tt := range tests {
		if got := HasTheme(tt.name); got != tt.want {
			t.Errorf("HasTheme(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme(DefaultTheme)

	SetThemeByName("dracula")
	if CurrentThemeName() != ThemeDracula {
		t.Errorf("CurrentThemeName() = %q, want dracula", CurrentThemeName())
	}
	if ColorPrimary != lipgloss.Color(GetTheme(ThemeDracula).Primary) {
		t.Error("SetTheme should regenerate the color palette")
	}

	SetThemeByName("does-not-exist")
	if CurrentThemeName() != DefaultTheme {
		t.Errorf("unknown theme should fall back to %q, got %q", DefaultTheme, CurrentThemeName())
	}
}
