package mockserver

import (
	"slices"
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target int
		want   []string
	}{
		{"blank", "  \n\n ", 10, nil},
		{"single sentence", "Hello world.", 10, []string{"Hello world."}},
		{
			name:   "packs sentences up to target",
			text:   "One two three. Four five. Six seven eight.",
			target: 5,
			want:   []string{"One two three. Four five.", "Six seven eight."},
		},
		{
			name:   "paragraphs join within a chunk",
			text:   "Alpha beta.\n\nGamma delta.",
			target: 10,
			want:   []string{"Alpha beta. Gamma delta."},
		},
		{
			name:   "oversized sentence stands alone",
			text:   "Short. This sentence has far more words than the target allows.",
			target: 3,
			want:   []string{"Short.", "This sentence has far more words than the target allows."},
		},
		{
			name:   "crlf normalized",
			text:   "First line.\r\n\r\nSecond line.",
			target: 2,
			want:   []string{"First line.", "Second line."},
		},
		{
			name:   "trailing text without terminator",
			text:   "Done. And then",
			target: 100,
			want:   []string{"Done. And then"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.target)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitText_DefaultTarget(t *testing.T) {
	text := strings.Repeat("word ", 1500) + "."
	if got := SplitText(text, 0); len(got) != 1 {
		t.Errorf("one sentence should never be split, got %d chunks", len(got))
	}

	var sb strings.Builder
	for i := 0; i < 300; i++ {
		sb.WriteString("one two three four five. ")
	}
	if got := SplitText(sb.String(), 0); len(got) != 2 {
		t.Errorf("1500 words in short sentences = %d chunks, want 2", len(got))
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Is it? Yes! It is.")
	want := []string{"Is it?", "Yes!", "It is."}
	if !slices.Equal(got, want) {
		t.Errorf("splitSentences() = %q, want %q", got, want)
	}

	if got := splitSentences("no terminator"); !slices.Equal(got, []string{"no terminator"}) {
		t.Errorf("splitSentences() = %q", got)
	}
}
