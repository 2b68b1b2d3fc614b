package search

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"omnisearch/internal/domain"
)

// ErrInvalidPattern is returned when a regex-mode query doesn't compile
var ErrInvalidPattern = errors.New("invalid pattern")

// Regex matches items against pattern as a case-insensitive regular
// expression. Label, description and keywords are checked in that order and
// the first hit wins. Only label hits carry matched positions.
// Every match scores 1 and results are ordered by group.
func Regex(items []domain.Item, pattern string) ([]domain.ScoredResult, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	results := make([]domain.ScoredResult, 0)
	for _, item := range items {
		if r, ok := regexItem(re, item); ok {
			results = append(results, r)
		}
	}

	SortByGroup(results)
	return results, nil
}

func regexItem(re *regexp.Regexp, item domain.Item) (domain.ScoredResult, bool) {
	if loc := re.FindStringIndex(item.Label); loc != nil {
		return domain.ScoredResult{
			Item:             item,
			Score:            1,
			MatchedPositions: runeSpan(item.Label, loc[0], loc[1]),
			MatchedField:     domain.FieldLabel,
			MatchedText:      item.Label,
		}, true
	}

	if item.Description != "" && re.MatchString(item.Description) {
		return domain.ScoredResult{
			Item:         item,
			Score:        1,
			MatchedField: domain.FieldDescription,
			MatchedText:  item.Description,
		}, true
	}

	for _, kw := range item.Keywords {
		if re.MatchString(kw) {
			return domain.ScoredResult{
				Item:         item,
				Score:        1,
				MatchedField: domain.FieldKeyword,
				MatchedText:  kw,
			}, true
		}
	}

	return domain.ScoredResult{}, false
}

// runeSpan converts the byte range [start, end) of s into rune indices
func runeSpan(s string, start, end int) []int {
	first := utf8.RuneCountInString(s[:start])
	n := utf8.RuneCountInString(s[start:end])
	positions := make([]int, n)
	for i := range positions {
		positions[i] = first + i
	}
	return positions
}
