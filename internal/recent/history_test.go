package recent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"omnisearch/internal/storage"
)

func TestHistoryAdd(t *testing.T) {
	h := NewHistory(nil, HistoryKey, 3)
	h.Add("1")
	h.Add("2")
	h.Add("  ")
	h.Add("3")
	h.Add("4")
	h.Add("3")

	assert.Equal(t, []string{"3", "4", "2"}, h.Entries())
	assert.Equal(t, 3, h.Len())
}

func TestHistoryPersists(t *testing.T) {
	s := storage.NewMemory()

	h := NewHistory(s, HistoryKey, 20)
	h.Add("deploy")

	assert.Equal(t, []string{"deploy"}, NewHistory(s, HistoryKey, 20).Entries())

	h.Clear()
	assert.Empty(t, NewHistory(s, HistoryKey, 20).Entries())
}

func TestHistorySuggestions(t *testing.T) {
	h := NewHistory(nil, HistoryKey, 20)
	for _, q := range []string{"open file", "settings", "open folder", "open", "theme"} {
		h.Add(q)
	}

	got := h.Suggestions("open")
	assert.ElementsMatch(t, []string{"open folder", "open file"}, got)
	assert.NotContains(t, got, "open")

	assert.Nil(t, h.Suggestions(""))
	assert.Empty(t, h.Suggestions("zzz"))
}

func TestHistorySuggestionsCapped(t *testing.T) {
	h := NewHistory(nil, HistoryKey, 20)
	for _, q := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		h.Add(q)
	}

	assert.Len(t, h.Suggestions("a"), 5)
}
