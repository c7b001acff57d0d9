package store

import (
	"strings"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/model"
)

// SearchParams holds parameters for searching the history.
type SearchParams struct {
	Query    string        // case-insensitive product substring
	Decision decision.Tier // empty matches every tier
	Limit    int
}

// SearchResult pairs a record with its most-recent-first display index.
type SearchResult struct {
	Index int `json:"index"`
	model.Record
}

// Search scans the history from newest to oldest.
func (h *History) Search(p SearchParams) []SearchResult {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	query := strings.ToLower(strings.TrimSpace(p.Query))

	results := []SearchResult{}
	for i := 1; i <= len(h.records) && len(results) < limit; i++ {
		r := h.records[len(h.records)-i]
		if p.Decision != "" && r.Decision != p.Decision {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(r.Product), query) {
			continue
		}
		results = append(results, SearchResult{Index: i, Record: r})
	}
	return results
}
