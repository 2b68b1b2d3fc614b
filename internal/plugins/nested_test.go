package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"omnisearch/internal/domain"
)

func TestNested(t *testing.T) {
	controls := &fakeControls{query: "thm"}
	n := NewNested()
	h := NewHost(controls, nil)
	h.SetPlugins([]Plugin{n})

	root := []domain.Item{
		{ID: "theme", Label: "Theme", Items: []domain.Item{
			{ID: "dark", Label: "Dark"},
			{ID: "more", Label: "More", Items: []domain.Item{{ID: "solar", Label: "Solarized"}}},
		}},
		{ID: "quit", Label: "Quit"},
	}

	assert.Equal(t, root, h.BeforeSearch("", root))
	assert.True(t, h.Select(root[1]), "leaf items execute")

	assert.False(t, h.Select(root[0]))
	assert.Equal(t, "", controls.query)
	assert.Equal(t, root[0].Items, h.BeforeSearch("", root))
	assert.Equal(t, "Theme", h.Header())

	assert.False(t, h.Select(root[0].Items[1]))
	assert.Equal(t, 2, n.Depth())
	assert.Equal(t, "Theme › More", h.Header())

	controls.query = "x"
	assert.True(t, h.Back())
	assert.Equal(t, "", controls.query)
	assert.Equal(t, root[0].Items, h.BeforeSearch("", root))

	h.Close()
	assert.Equal(t, 0, n.Depth())
	assert.Equal(t, root, h.BeforeSearch("", root))
	assert.False(t, h.Back())
	assert.Equal(t, "", h.Header())
}
