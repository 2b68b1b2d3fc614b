package search

import (
	"sort"

	"omnisearch/internal/domain"
)

// Filter restricts the item list before ranking. Empty fields match everything.
type Filter struct {
	Type  string
	Group string
}

// IsZero reports whether the filter lets every item through
func (f Filter) IsZero() bool {
	return f.Type == "" && f.Group == ""
}

// FilterItems returns the items accepted by f, preserving order
func FilterItems(items []domain.Item, f Filter) []domain.Item {
	if f.IsZero() {
		return items
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Group != "" && domain.GroupOf(item) != f.Group {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Option is a filter value together with how many items carry it
type Option struct {
	Value string
	Count int
}

// Groups lists the distinct groups in items, sorted by name
func Groups(items []domain.Item) []Option {
	return countBy(items, domain.GroupOf)
}

// Types lists the distinct non-empty item types, sorted by name
func Types(items []domain.Item) []Option {
	return countBy(items, func(i domain.Item) string { return i.Type })
}

func countBy(items []domain.Item, key func(domain.Item) string) []Option {
	counts := make(map[string]int)
	for _, item := range items {
		if k := key(item); k != "" {
			counts[k]++
		}
	}

	options := make([]Option, 0, len(counts))
	for v, n := range counts {
		options = append(options, Option{Value: v, Count: n})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})
	return options
}
