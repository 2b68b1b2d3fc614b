package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnisearch/internal/domain"
)

func TestRegexInvalidPattern(t *testing.T) {
	results, err := Regex([]domain.Item{{ID: "1", Label: "Home"}}, "[")
	require.ErrorIs(t, err, ErrInvalidPattern)
	assert.Empty(t, results)
}

func TestRegexLabelPositions(t *testing.T) {
	results, err := Regex([]domain.Item{{ID: "1", Label: "Open Settings"}}, "SET")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.FieldLabel, results[0].MatchedField)
	assert.Equal(t, []int{5, 6, 7}, results[0].MatchedPositions)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestRegexPositionsAreRuneIndices(t *testing.T) {
	results, err := Regex([]domain.Item{{ID: "1", Label: "Émile set"}}, "set")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []int{6, 7, 8}, results[0].MatchedPositions)
}

func TestRegexFieldPriority(t *testing.T) {
	items := []domain.Item{
		{ID: "desc", Label: "Alpha", Description: "deploy the app", Group: "B"},
		{ID: "kw", Label: "Beta", Keywords: []string{"deployment"}, Group: "A"},
		{ID: "none", Label: "Gamma", Aliases: []string{"deploy"}},
	}

	results, err := Regex(items, "^dep")
	require.NoError(t, err)
	assert.Equal(t, []string{"kw", "desc"}, ids(results))
	assert.Equal(t, domain.FieldKeyword, results[0].MatchedField)
	assert.Empty(t, results[0].MatchedPositions)
	assert.Equal(t, domain.FieldDescription, results[1].MatchedField)
}
