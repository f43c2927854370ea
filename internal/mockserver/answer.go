package mockserver

import (
	"fmt"
	"strings"
)

const (
	maxAnswerSentences = 2
	noAnswer           = "I don't know based on the provided documents."
)

type candidate struct {
	text  string
	file  string
	score int
}

// composeAnswer extracts the sentences of the retrieved passages that share
// the most terms with the question and names the files they came from.
func composeAnswer(query string, hits []*Chunk) string {
	q := termCounts(query)

	var best []candidate
	for _, h := range hits {
		for _, p := range strings.Split(h.Text, "\n\n") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			for _, sent := range splitSentences(p) {
				score := 0
				for term := range termCounts(sent) {
					if q[term] > 0 {
						score++
					}
				}
				if score > 0 {
					best = keepBest(best, candidate{text: sent, file: h.FileName, score: score})
				}
			}
		}
	}
	if len(best) == 0 {
		return noAnswer
	}

	var sentences, files []string
	seen := map[string]bool{}
	for _, c := range best {
		sentences = append(sentences, c.text)
		if !seen[c.file] {
			seen[c.file] = true
			files = append(files, c.file)
		}
	}
	return fmt.Sprintf("%s (source: %s)", strings.Join(sentences, " "), strings.Join(files, ", "))
}

// keepBest inserts c into list, sorted by score, and keeps the top
// maxAnswerSentences. Earlier candidates win ties.
func keepBest(list []candidate, c candidate) []candidate {
	i := len(list)
	for i > 0 && list[i-1].score < c.score {
		i--
	}
	if i >= maxAnswerSentences {
		return list
	}
	list = append(list, candidate{})
	copy(list[i+1:], list[i:])
	list[i] = c
	if len(list) > maxAnswerSentences {
		list = list[:maxAnswerSentences]
	}
	return list
}
