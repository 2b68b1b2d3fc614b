package plugins

import (
	"fmt"
	"strconv"
	"strings"

	"omnisearch/internal/domain"
	"omnisearch/internal/recent"
)

const (
	// RecentSearchesGroup is the group of the injected entries
	RecentSearchesGroup = "Recent Searches"
	// ClearRecentSearchesID is the id of the entry that forgets all searches
	ClearRecentSearchesID = "clear-recent-searches"

	recentSearchPrefix = "recent-search-"
	searchesKey        = "searches"
)

// RecentSearches remembers the queries that led to an execution and offers
// them again when the query is empty. Selecting one re-runs it.
type RecentSearches struct {
	ctx     *Context
	max     int
	history *recent.History
}

// NewRecentSearches creates the plugin. max <= 0 keeps 10 searches.
func NewRecentSearches(max int) *RecentSearches {
	if max <= 0 {
		max = 10
	}
	return &RecentSearches{max: max}
}

func (r *RecentSearches) Name() string { return "recent-searches" }

func (r *RecentSearches) OnInit(ctx *Context) error {
	r.ctx = ctx
	r.history = recent.NewHistory(ctx.Storage(), searchesKey, r.max)
	return nil
}

func (r *RecentSearches) OnBeforeSearch(query string, items []domain.Item) ([]domain.Item, error) {
	if r.history == nil || strings.TrimSpace(query) != "" {
		return items, nil
	}
	entries := r.history.Entries()
	if len(entries) == 0 {
		return items, nil
	}

	out := make([]domain.Item, 0, len(entries)+1+len(items))
	for i, q := range entries {
		out = append(out, domain.Item{
			ID:          recentSearchPrefix + strconv.Itoa(i),
			Label:       q,
			Description: "Recent search",
			Type:        "action",
			Group:       RecentSearchesGroup,
		})
	}

	suffix := "es"
	if len(entries) == 1 {
		suffix = ""
	}
	history := r.history
	out = append(out, domain.Item{
		ID:          ClearRecentSearchesID,
		Label:       "Clear Recent Searches",
		Description: fmt.Sprintf("Clear %d recent search%s", len(entries), suffix),
		Type:        "action",
		Group:       RecentSearchesGroup,
		Action: func(string) error {
			history.Clear()
			return nil
		},
	})

	return append(out, items...), nil
}

// OnSelect re-runs a recent search in place, and records the current
// query for any other selection.
func (r *RecentSearches) OnSelect(item domain.Item) (bool, error) {
	if r.ctx == nil {
		return true, nil
	}
	if isRecentSearch(item) {
		r.ctx.SetQuery(item.Label)
		return false, nil
	}
	if !isClearSearches(item) {
		r.history.Add(r.ctx.Query())
	}
	return true, nil
}

// injected entries are recognized by group and id together so caller items
// sharing one of them keep their own behaviour
func isRecentSearch(item domain.Item) bool {
	return item.Group == RecentSearchesGroup && strings.HasPrefix(item.ID, recentSearchPrefix)
}

func isClearSearches(item domain.Item) bool {
	return item.Group == RecentSearchesGroup && item.ID == ClearRecentSearchesID
}

// Searches returns the remembered queries, most recent first
func (r *RecentSearches) Searches() []string {
	if r.history == nil {
		return nil
	}
	return r.history.Entries()
}
