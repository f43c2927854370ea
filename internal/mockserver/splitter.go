package mockserver

import "strings"

// DefaultChunkWords is the approximate chunk size, in words.
const DefaultChunkWords = 1000

// SplitText groups text into chunks of roughly target words. Paragraphs
// (blank-line separated) are split into sentences and sentences are packed
// greedily; a chunk is closed before the sentence that would overflow it, so
// a single long sentence may exceed target. Blank input yields no chunks.
func SplitText(text string, target int) []string {
	if target <= 0 {
		target = DefaultChunkWords
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}

	var (
		chunks  []string
		current []string
		words   int
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.TrimSpace(strings.Join(current, " ")))
		current = current[:0]
		words = 0
	}

	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for _, s := range splitSentences(p) {
			n := len(strings.Fields(s))
			if words > 0 && words+n > target {
				flush()
			}
			current = append(current, s)
			words += n
		}
	}
	flush()
	return chunks
}

// splitSentences cuts after '.', '!' and '?', keeping the terminator. At
// most one following space or newline goes with the sentence.
func splitSentences(p string) []string {
	var out []string
	start := 0
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '.', '!', '?':
			end := i + 1
			if end < len(p) && (p[end] == ' ' || p[end] == '\n') {
				end++
			}
			if s := strings.TrimSpace(p[start:end]); s != "" {
				out = append(out, s)
			}
			start = end
			i = end - 1
		}
	}
	if start < len(p) {
		if s := strings.TrimSpace(p[start:]); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{strings.TrimSpace(p)}
	}
	return out
}
