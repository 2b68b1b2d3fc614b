package recent

import (
	"log"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"omnisearch/internal/storage"
)

// HistoryKey is the default storage key for search history
const HistoryKey = "search-history"

// maxSuggestions caps the number of history suggestions returned
const maxSuggestions = 5

// History remembers executed search queries, most recent first
type History struct {
	mu      sync.Mutex
	storage storage.Storage
	key     string
	max     int
	entries []string
}

// NewHistory creates a query history persisted under key in s.
// s may be nil for a history that is never persisted.
func NewHistory(s storage.Storage, key string, max int) *History {
	h := &History{storage: s, key: key, max: max}
	if s == nil {
		return h
	}

	var entries []string
	if _, err := storage.GetJSON(s, key, &entries); err != nil {
		log.Printf("Failed to load search history: %v", err)
	}
	h.entries = h.truncate(entries)
	return h
}

// Add records query. Blank queries are ignored.
func (h *History) Add(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = h.truncate(pushFront(h.entries, query))
	h.persist()
}

// Entries returns a copy of the stored queries, most recent first
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Len returns the number of stored queries
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear forgets every stored query
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	if h.storage != nil {
		if err := h.storage.Remove(h.key); err != nil {
			log.Printf("Failed to clear search history: %v", err)
		}
	}
}

// Suggestions returns up to five stored queries that fuzzy-match query,
// best first. The query itself is never suggested.
func (h *History) Suggestions(query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	h.mu.Lock()
	entries := append([]string(nil), h.entries...)
	h.mu.Unlock()

	var out []string
	for _, m := range fuzzy.Find(query, entries) {
		if m.Str == query {
			continue
		}
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func (h *History) truncate(entries []string) []string {
	if h.max > 0 && len(entries) > h.max {
		return entries[:h.max]
	}
	return entries
}

func (h *History) persist() {
	if h.storage == nil {
		return
	}
	if err := storage.SetJSON(h.storage, h.key, h.entries); err != nil {
		log.Printf("Failed to save search history: %v", err)
	}
}
