package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"omnisearch/internal/domain"
)

// Field weights applied to the raw match score
const (
	WeightLabel       = 3.0
	WeightAlias       = 2.5
	WeightKeyword     = 2.0
	WeightDescription = 1.0
	WeightGroup       = 1.0
)

// ScoreItem matches query against each weighted field of item and keeps the
// best one. Fields are tried in the order label, description, group,
// keywords, aliases; a later field only wins with a strictly higher score.
func ScoreItem(item domain.Item, query string) (domain.ScoredResult, bool) {
	var (
		best  domain.ScoredResult
		found bool
	)

	try := func(field domain.Field, text string, weight float64) {
		if text == "" {
			return
		}
		m, ok := Match(query, text)
		if !ok {
			return
		}
		score := float64(m.Score) * weight
		if found && score <= best.Score {
			return
		}
		best = domain.ScoredResult{
			Item:             item,
			Score:            score,
			MatchedPositions: m.Positions,
			MatchedField:     field,
			MatchedText:      text,
		}
		found = true
	}

	// items taking arguments match on the text before the arguments
	if item.ExpectsArguments {
		if head, ok := commandHead(query, item.Label); ok {
			query = head
		}
	}

	try(domain.FieldLabel, item.Label, WeightLabel)
	try(domain.FieldDescription, item.Description, WeightDescription)
	try(domain.FieldGroup, item.Group, WeightGroup)
	for _, kw := range item.Keywords {
		try(domain.FieldKeyword, kw, WeightKeyword)
	}
	for _, alias := range item.Aliases {
		try(domain.FieldAlias, alias, WeightAlias)
	}

	return best, found
}

// Fuzzy ranks items against query. Items that don't match are dropped; the
// rest are ordered by descending score, then by group name.
// A blank query returns every item unscored in input order.
func Fuzzy(items []domain.Item, query string) []domain.ScoredResult {
	if strings.TrimSpace(query) == "" {
		return domain.Unscored(items)
	}

	results := make([]domain.ScoredResult, 0, len(items))
	for _, item := range items {
		if r, ok := ScoreItem(item, query); ok {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return GroupLess(results[i].Item, results[j].Item)
	})

	return results
}

// GroupLess orders items by group name, case-insensitively first.
// Ungrouped items sort as domain.OtherGroup.
func GroupLess(a, b domain.Item) bool {
	ga, gb := domain.GroupOf(a), domain.GroupOf(b)
	la, lb := strings.ToLower(ga), strings.ToLower(gb)
	if la != lb {
		return la < lb
	}
	return ga < gb
}

// SortByGroup stably sorts results by group name
func SortByGroup(results []domain.ScoredResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return GroupLess(results[i].Item, results[j].Item)
	})
}

// commandHead returns the leading part of query equal to label, ignoring
// case, when it is followed by whitespace or nothing
func commandHead(query, label string) (string, bool) {
	if label == "" {
		return "", false
	}
	q := []rune(strings.TrimLeft(query, " \t"))
	n := utf8.RuneCountInString(label)
	if len(q) < n || !strings.EqualFold(string(q[:n]), label) {
		return "", false
	}
	if len(q) > n && q[n] != ' ' && q[n] != '\t' {
		return "", false
	}
	return string(q[:n]), true
}
