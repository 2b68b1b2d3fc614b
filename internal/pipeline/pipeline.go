package pipeline

import (
	"errors"
	"log"
	"math"
	"sort"
	"strings"

	"omnisearch/internal/domain"
	"omnisearch/internal/search"
)

// RemoteScore is assigned to remote results. It ranks them above any fuzzy
// match while leaving room for plugin entries boosted past it.
const RemoteScore = 1e6

// MaxLocalScore caps ranked scores so that only after-search hooks can
// place entries ahead of remote results. Very long queries reach it.
const MaxLocalScore = RemoteScore / 2

// WebSearchScore keeps the web search entry last
const WebSearchScore = -math.MaxFloat64

// Hooks lets plugins rewrite the item list before ranking and the results
// after it. Implementations must not panic or fail; they return their input
// when nothing applies.
type Hooks interface {
	BeforeSearch(query string, items []domain.Item) []domain.Item
	AfterSearch(results []domain.ScoredResult) []domain.ScoredResult
}

// State is everything besides the query and items that shapes one evaluation
type State struct {
	// RecentIDs lists recently executed items, most recent first.
	// Leave it empty to disable the recency section.
	RecentIDs []string
	Filter    search.Filter
	RegexMode bool
	// Remote holds the asynchronous results fetched for the current query
	Remote []domain.Item
	// WebSearch appends a web search entry for non-empty queries when set
	WebSearch *WebSearch
}

// Pipeline turns a query and an item list into ordered results
type Pipeline struct {
	hooks Hooks
}

// New creates a new pipeline. hooks may be nil.
func New(hooks Hooks) *Pipeline {
	return &Pipeline{hooks: hooks}
}

// Compute runs one evaluation. It never fails: an invalid regex yields no
// results, and faulty hooks are isolated by the Hooks implementation.
func (p *Pipeline) Compute(query string, items []domain.Item, st State) []domain.ScoredResult {
	if p.hooks != nil {
		items = p.hooks.BeforeSearch(query, items)
	}
	items = search.FilterItems(items, st.Filter)

	blank := strings.TrimSpace(query) == ""

	var results []domain.ScoredResult
	switch {
	case blank:
		results = withRecent(items, st.RecentIDs)
	case st.RegexMode:
		var err error
		results, err = search.Regex(items, query)
		if err != nil {
			if !errors.Is(err, search.ErrInvalidPattern) {
				log.Printf("Regex search failed: %v", err)
			}
			results = []domain.ScoredResult{}
		}
	default:
		results = capScores(search.Fuzzy(items, query))
	}

	if p.hooks != nil {
		results = p.hooks.AfterSearch(results)
	}

	if blank {
		return results
	}

	if len(st.Remote) > 0 {
		results = mergeRemote(results, st.Remote)
	}
	if st.WebSearch != nil {
		results = append(results, st.WebSearch.Result(query))
	}
	return results
}

// capScores clamps already sorted results to MaxLocalScore. Order is kept.
func capScores(results []domain.ScoredResult) []domain.ScoredResult {
	for i := range results {
		if results[i].Score > MaxLocalScore {
			results[i].Score = MaxLocalScore
		}
	}
	return results
}

// withRecent returns the recent items present in items, in recency order,
// followed by everything else sorted by group. Nothing is scored.
func withRecent(items []domain.Item, recentIDs []string) []domain.ScoredResult {
	byID := make(map[string]domain.Item, len(items))
	for _, item := range items {
		if _, dup := byID[item.ID]; !dup {
			byID[item.ID] = item
		}
	}

	results := make([]domain.ScoredResult, 0, len(items))
	seen := make(map[string]bool, len(recentIDs))
	for _, id := range recentIDs {
		item, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		results = append(results, domain.ScoredResult{Item: item})
	}

	rest := make([]domain.Item, 0, len(items)-len(results))
	for _, item := range items {
		if !seen[item.ID] {
			rest = append(rest, item)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return search.GroupLess(rest[i], rest[j])
	})

	return append(results, domain.Unscored(rest)...)
}

// mergeRemote inserts remote items after every result scoring above
// RemoteScore. Items whose id is already present are dropped.
func mergeRemote(results []domain.ScoredResult, remote []domain.Item) []domain.ScoredResult {
	seen := make(map[string]bool, len(results)+len(remote))
	for _, r := range results {
		seen[r.Item.ID] = true
	}

	extra := make([]domain.ScoredResult, 0, len(remote))
	for _, item := range remote {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		extra = append(extra, domain.ScoredResult{Item: item, Score: RemoteScore})
	}
	if len(extra) == 0 {
		return results
	}

	at := 0
	for at < len(results) && results[at].Score > RemoteScore {
		at++
	}

	merged := make([]domain.ScoredResult, 0, len(results)+len(extra))
	merged = append(merged, results[:at]...)
	merged = append(merged, extra...)
	merged = append(merged, results[at:]...)
	return merged
}
