package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnisearch/internal/domain"
	"omnisearch/internal/storage"
)

func TestRecentSearches(t *testing.T) {
	controls := &fakeControls{}
	store := storage.NewMemory()
	r := NewRecentSearches(0)
	h := NewHost(controls, store)
	h.SetPlugins([]Plugin{r})

	items := []domain.Item{{ID: "a", Label: "Alpha"}}
	assert.Equal(t, items, h.BeforeSearch("", items), "nothing injected without history")

	controls.query = "alp"
	assert.True(t, h.Select(items[0]))
	controls.query = "  "
	assert.True(t, h.Select(items[0]), "blank queries are not recorded")
	assert.Equal(t, []string{"alp"}, r.Searches())

	out := h.BeforeSearch("", items)
	require.Len(t, out, 3)
	assert.Equal(t, "recent-search-0", out[0].ID)
	assert.Equal(t, "alp", out[0].Label)
	assert.Equal(t, RecentSearchesGroup, out[0].Group)
	assert.Equal(t, ClearRecentSearchesID, out[1].ID)
	assert.Equal(t, "Clear 1 recent search", out[1].Description)
	assert.Equal(t, "a", out[2].ID)

	assert.Equal(t, items, h.BeforeSearch("al", items), "only shown for an empty query")

	assert.False(t, h.Select(out[0]))
	assert.Equal(t, "alp", controls.query)

	_, err := store.Get(StoragePrefix("recent-searches") + "searches")
	require.NoError(t, err)

	require.NoError(t, out[1].Action(""))
	assert.Empty(t, r.Searches())
	assert.Equal(t, items, h.BeforeSearch("", items))
}

func TestRecentSearchesLeavesCallerItemsAlone(t *testing.T) {
	controls := &fakeControls{}
	r := NewRecentSearches(0)
	h := NewHost(controls, storage.NewMemory())
	h.SetPlugins([]Plugin{r})

	lookalike := domain.Item{ID: "recent-search-report", Label: "Recent search report", Group: "Reports"}
	clearLike := domain.Item{ID: ClearRecentSearchesID, Label: "Clear", Group: "Tools"}

	controls.query = "report"
	assert.True(t, h.Select(lookalike))
	assert.Equal(t, "report", controls.query)

	controls.query = "clear"
	assert.True(t, h.Select(clearLike))
	assert.Equal(t, []string{"clear", "report"}, r.Searches())
}
