package types

import "time"

// SearchResult is the unified shape every lookup path produces.
type SearchResult struct {
	Query     string       `json:"query"`
	Found     bool         `json:"found"`
	Results   []SearchItem `json:"results"`
	Source    string       `json:"source"`
	Timestamp time.Time    `json:"timestamp"`
}

// SearchItem is one candidate snippet with its scored relevance (0.0-1.0).
type SearchItem struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Snippet   string  `json:"snippet"`
	Relevance float64 `json:"relevance"`
}

// Best returns the highest-relevance item, or false when empty.
func (r *SearchResult) Best() (SearchItem, bool) {
	if len(r.Results) == 0 {
		return SearchItem{}, false
	}
	best := r.Results[0]
	for _, item := range r.Results[1:] {
		if item.Relevance > best.Relevance {
			best = item
		}
	}
	return best, true
}
