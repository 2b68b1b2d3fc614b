package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"omnisearch/internal/domain"
)

// WebSearchID is the id of the synthetic web search entry
const WebSearchID = "web-search"

// WebSearch builds the fallback entry that opens a search engine
type WebSearch struct {
	// URLTemplate contains a single %s replaced by the escaped query
	URLTemplate string
	// Open is called with the final URL when the entry is executed
	Open func(url string) error
}

// URL returns the search URL for query
func (w *WebSearch) URL(query string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return fmt.Sprintf(w.URLTemplate, escaped)
}

// Result returns the web search entry for query
func (w *WebSearch) Result(query string) domain.ScoredResult {
	target := w.URL(query)
	item := domain.Item{
		ID:          WebSearchID,
		Label:       fmt.Sprintf("Search the web for %q", query),
		Description: target,
		Group:       "Web",
		Type:        "action",
		Action: func(string) error {
			if w.Open == nil {
				return fmt.Errorf("no URL opener configured")
			}
			return w.Open(target)
		},
	}
	return domain.ScoredResult{Item: item, Score: WebSearchScore}
}
