package search

import (
	"unicode"
)

// MatchResult is a successful fuzzy match of a query against a single string.
// Positions are rune indices into the matched text.
type MatchResult struct {
	Score     int
	Positions []int
}

// Match reports whether every rune of query appears in text in order,
// ignoring case, and scores how good that match is.
//
// Each matched rune earns one point. Runs of adjacent matches earn a
// growing bonus (5, 10, 15, ...), a match at the start of a word earns 10
// and matches in the first ten runes earn 10 minus their index.
func Match(query, text string) (MatchResult, bool) {
	if query == "" || text == "" {
		return MatchResult{}, false
	}

	q := lowerRunes(query)
	t := lowerRunes(text)

	var (
		score     int
		qi        int
		bonus     int
		positions = make([]int, 0, len(q))
	)

	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] != q[qi] {
			continue
		}

		if n := len(positions); n > 0 && positions[n-1] == i-1 {
			bonus += 5
			score += bonus
		} else {
			bonus = 0
		}
		positions = append(positions, i)
		score++

		if i == 0 || isBoundary(t[i-1]) {
			score += 10
		}
		if i < 10 {
			score += 10 - i
		}

		qi++
	}

	if qi != len(q) {
		return MatchResult{}, false
	}

	return MatchResult{Score: score, Positions: positions}, true
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_'
}
