package mockserver

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultTopK is how many passages a query returns at most.
const DefaultTopK = 5

// Chunk is one indexed passage.
type Chunk struct {
	ID       string
	FileName string
	Index    int
	Text     string

	terms map[string]int
}

// Store is an in-memory passage index. Entries expire after the configured
// TTL; zero keeps them until Clear.
type Store struct {
	items *cache.Cache
}

// NewStore creates an empty index.
func NewStore(ttl time.Duration) *Store {
	exp, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		exp, cleanup = ttl, ttl*2
	}
	return &Store{
		items: cache.New(exp, cleanup),
	}
}

// Add indexes the chunks of one file and returns how many were stored.
// Re-uploading a file replaces its earlier passages.
func (s *Store) Add(fileName string, chunks []string) int {
	s.Remove(fileName)
	for i, text := range chunks {
		c := &Chunk{
			ID:       uuid.NewString(),
			FileName: fileName,
			Index:    i,
			Text:     text,
			terms:    termCounts(text),
		}
		s.items.SetDefault(c.ID, c)
	}
	return len(chunks)
}

// Remove drops every passage of fileName.
func (s *Store) Remove(fileName string) {
	for id, item := range s.items.Items() {
		if c, ok := item.Object.(*Chunk); ok && c.FileName == fileName {
			s.items.Delete(id)
		}
	}
}

// Len is the number of live passages.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

// Clear empties the index.
func (s *Store) Clear() {
	s.items.Flush()
}

// Search returns up to k passages sharing at least one term with query,
// best first. Ties keep file and chunk order.
func (s *Store) Search(query string, k int) []*Chunk {
	if k <= 0 {
		k = DefaultTopK
	}
	q := termCounts(query)
	if len(q) == 0 {
		return nil
	}

	type scored struct {
		chunk    *Chunk
		distinct int
		hits     int
	}
	var results []scored
	for _, item := range s.items.Items() {
		c, ok := item.Object.(*Chunk)
		if !ok {
			continue
		}
		var r scored
		for term := range q {
			if n := c.terms[term]; n > 0 {
				r.distinct++
				r.hits += n
			}
		}
		if r.distinct > 0 {
			r.chunk = c
			results = append(results, r)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.distinct != b.distinct {
			return a.distinct > b.distinct
		}
		if a.hits != b.hits {
			return a.hits > b.hits
		}
		if a.chunk.FileName != b.chunk.FileName {
			return a.chunk.FileName < b.chunk.FileName
		}
		return a.chunk.Index < b.chunk.Index
	})

	if len(results) > k {
		results = results[:k]
	}
	out := make([]*Chunk, len(results))
	for i, r := range results {
		out[i] = r.chunk
	}
	return out
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true, "were": true,
	"what": true, "which": true, "who": true, "how": true, "why": true, "when": true,
	"with": true, "this": true, "that": true, "from": true, "into": true, "does": true,
	"can": true, "you": true, "your": true, "about": true, "there": true, "their": true,
	"has": true, "have": true, "had": true, "not": true, "but": true, "its": true,
}

// termCounts lowercases s and counts words of three or more letters that
// are not stopwords.
func termCounts(s string) map[string]int {
	counts := make(map[string]int)
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(w)) < 3 || stopwords[w] {
			continue
		}
		counts[w]++
	}
	return counts
}
