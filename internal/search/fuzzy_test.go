package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		text      string
		wantOK    bool
		wantScore int
		wantPos   []int
	}{
		{"prefix", "set", "Settings", true, 55, []int{0, 1, 2}},
		{"scattered", "stt", "Settings", true, 43, []int{0, 2, 3}},
		{"case insensitive", "SET", "settings", true, 55, []int{0, 1, 2}},
		{"word boundary", "b", "a-b", true, 1 + 10 + 8, []int{2}},
		{"underscore boundary", "b", "a_b", true, 1 + 10 + 8, []int{2}},
		{"space boundary", "b", "a b", true, 1 + 10 + 8, []int{2}},
		{"no early bonus past ten", "z", "aaaaaaaaaaaz", true, 1, []int{11}},
		{"not a subsequence", "ts", "st", false, 0, nil},
		{"missing rune", "x", "Settings", false, 0, nil},
		{"empty query", "", "Settings", false, 0, nil},
		{"empty text", "a", "", false, 0, nil},
		{"unicode positions are runes", "ü", "grün", true, 1 + 8, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Match(tt.query, tt.text)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantScore, m.Score)
			assert.Equal(t, tt.wantPos, m.Positions)
		})
	}
}

func TestMatchConsecutiveBonusCompounds(t *testing.T) {
	// a:0 -> 1+10+10, b:1 -> 1+5+9, c:2 -> 1+10+8, d:3 -> 1+15+7
	m, ok := Match("abcd", "abcd")
	require.True(t, ok)
	assert.Equal(t, 21+15+19+23, m.Score)
}

func TestMatchContiguousBeatsScattered(t *testing.T) {
	contiguous, ok := Match("set", "settings")
	require.True(t, ok)
	scattered, ok := Match("set", "sxexts")
	require.True(t, ok)

	assert.Greater(t, contiguous.Score, scattered.Score)
}

func TestMatchSubsequenceInvariant(t *testing.T) {
	text := "Open Recent Files"
	for _, q := range []string{"orf", "open", "files", "ORF", "o r"} {
		_, ok := Match(q, text)
		assert.True(t, ok, q)
	}
	for _, q := range []string{"fro", "openx", "zz"} {
		_, ok := Match(q, text)
		assert.False(t, ok, q)
	}
}
