package websearch

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// SnippetValidator scores how well a snippet actually talks about the part
// being looked up. Distributor search pages happily return unrelated
// products for unknown part numbers, so raw retrieval order cannot be
// trusted.
type SnippetValidator struct {
	minScore float64

	mu    sync.RWMutex
	cache map[string]string
}

// NewSnippetValidator creates a validator. minScore is the relevance floor
// below which a snippet is discarded.
func NewSnippetValidator(minScore float64) *SnippetValidator {
	return &SnippetValidator{
		minScore: minScore,
		cache:    make(map[string]string),
	}
}

// Score returns the fraction of query tokens whose stem appears in the
// snippet, in [0.0, 1.0]. Part numbers are compared literally; English words
// are compared by Snowball stem so "compressors" still matches "compressor".
func (v *SnippetValidator) Score(query, snippet string) float64 {
	queryTokens := v.stemTokens(tokenize(query))
	if len(queryTokens) == 0 {
		return 0
	}

	snippetSet := make(map[string]struct{})
	for _, tok := range v.stemTokens(tokenize(snippet)) {
		snippetSet[tok] = struct{}{}
	}

	matched := 0
	for _, tok := range queryTokens {
		if _, ok := snippetSet[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// Accept reports whether a snippet clears the relevance floor for a query.
func (v *SnippetValidator) Accept(query, snippet string) bool {
	return v.Score(query, snippet) >= v.minScore
}

func (v *SnippetValidator) stemTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, v.stem(tok))
	}
	return out
}

// stem caches Snowball results; pricebook vocabulary is small and highly
// repetitive across rows.
func (v *SnippetValidator) stem(word string) string {
	v.mu.RLock()
	cached, ok := v.cache[word]
	v.mu.RUnlock()
	if ok {
		return cached
	}

	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil || stemmed == "" {
		stemmed = word
	}

	v.mu.Lock()
	v.cache[word] = stemmed
	v.mu.Unlock()
	return stemmed
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return false
		default:
			return true
		}
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}
