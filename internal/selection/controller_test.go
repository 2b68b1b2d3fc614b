package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnisearch/internal/domain"
)

func grouped(groups ...string) []domain.ScoredResult {
	results := make([]domain.ScoredResult, len(groups))
	for i, g := range groups {
		results[i] = domain.ScoredResult{Item: domain.Item{ID: string(rune('a' + i)), Label: "item", Group: g}}
	}
	return results
}

func newWith(results []domain.ScoredResult, pageSize int) *Controller {
	c := NewController(pageSize)
	c.SetResults(results, true)
	return c
}

func TestNavigateClamps(t *testing.T) {
	c := newWith(grouped("A", "A", "A"), 0)

	c.Navigate(Up)
	assert.Equal(t, 0, c.ActiveIndex())

	c.Navigate(Down)
	c.Navigate(Down)
	c.Navigate(Down)
	assert.Equal(t, 2, c.ActiveIndex())

	c.Navigate(Home)
	assert.Equal(t, 0, c.ActiveIndex())
	c.Navigate(End)
	assert.Equal(t, 2, c.ActiveIndex())
}

func TestNavigatePages(t *testing.T) {
	groups := make([]string, 25)
	for i := range groups {
		groups[i] = "A"
	}
	c := newWith(grouped(groups...), 0)

	c.Navigate(PageDown)
	assert.Equal(t, 10, c.ActiveIndex())
	c.Navigate(PageDown)
	c.Navigate(PageDown)
	assert.Equal(t, 24, c.ActiveIndex())
	c.Navigate(PageUp)
	assert.Equal(t, 14, c.ActiveIndex())

	small := newWith(grouped(groups...), 3)
	small.Navigate(PageDown)
	assert.Equal(t, 3, small.ActiveIndex())
}

func TestNavigateEmptyList(t *testing.T) {
	c := NewController(0)
	for _, d := range []Direction{Up, Down, PageUp, PageDown, Home, End, NextGroup, PrevGroup} {
		c.Navigate(d)
		assert.Equal(t, 0, c.ActiveIndex())
	}
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestGroupJumps(t *testing.T) {
	c := newWith(grouped("A", "A", "B", "B", "", "C"), 0)

	c.Navigate(NextGroup)
	assert.Equal(t, 2, c.ActiveIndex())
	c.Navigate(NextGroup)
	assert.Equal(t, 4, c.ActiveIndex())
	c.Navigate(NextGroup)
	assert.Equal(t, 5, c.ActiveIndex())
	c.Navigate(NextGroup)
	assert.Equal(t, 0, c.ActiveIndex(), "wraps to the start")

	c.Navigate(PrevGroup)
	assert.Equal(t, 5, c.ActiveIndex(), "wraps to the last group")
	c.Navigate(PrevGroup)
	assert.Equal(t, 4, c.ActiveIndex())

	c.SetActiveIndex(3)
	c.Navigate(PrevGroup)
	assert.Equal(t, 0, c.ActiveIndex())
}

func TestJumpToGroup(t *testing.T) {
	c := newWith(grouped("Pages", "Pages", "Actions", "Other"), 0)

	assert.True(t, c.JumpToGroup(2))
	assert.Equal(t, 2, c.ActiveIndex())
	assert.True(t, c.JumpToGroup(3))
	assert.Equal(t, 3, c.ActiveIndex())

	assert.False(t, c.JumpToGroup(4))
	assert.False(t, c.JumpToGroup(0))
	assert.Equal(t, 3, c.ActiveIndex())
}

func TestSetResultsClampOrReset(t *testing.T) {
	c := newWith(grouped("A", "A", "A", "A"), 0)
	c.SetActiveIndex(3)

	c.SetResults(grouped("A", "A"), false)
	assert.Equal(t, 1, c.ActiveIndex())

	c.SetResults(grouped("A", "A", "A"), false)
	assert.Equal(t, 1, c.ActiveIndex())

	c.SetResults(grouped("A", "A", "A"), true)
	assert.Equal(t, 0, c.ActiveIndex())

	c.SetResults(nil, false)
	assert.Equal(t, 0, c.ActiveIndex())
}

func TestSetActiveIndex(t *testing.T) {
	c := newWith(grouped("A", "A"), 0)
	c.SetActiveIndex(10)
	assert.Equal(t, 1, c.ActiveIndex())

	assert.Panics(t, func() { c.SetActiveIndex(-1) })
}

type runner struct {
	calls []string
	args  []string
	out   Outcome
}

func (r *runner) run(res domain.ScoredResult, args string) Outcome {
	r.calls = append(r.calls, res.Item.ID)
	r.args = append(r.args, args)
	return r.out
}

func TestSelectRuns(t *testing.T) {
	c := newWith(grouped("A"), 0)
	r := &runner{out: OutcomeExecuted}

	assert.Equal(t, OutcomeExecuted, c.Select("x", r.run))
	assert.Equal(t, []string{"a"}, r.calls)
	assert.Equal(t, []string{""}, r.args)
}

func TestSelectNothing(t *testing.T) {
	r := &runner{}
	assert.Equal(t, OutcomeNone, NewController(0).Select("", r.run))
	assert.Empty(t, r.calls)
}

func TestSelectDisabled(t *testing.T) {
	results := grouped("A")
	results[0].Item.Disabled = true
	r := &runner{}

	assert.Equal(t, OutcomeDisabled, newWith(results, 0).Select("", r.run))
	assert.Empty(t, r.calls)
}

func TestConfirmationGate(t *testing.T) {
	results := grouped("A", "A")
	results[0].Item.Confirm = &domain.ConfirmSpec{Title: "Delete?", Severity: domain.SeverityDanger}
	results[0].Item.ExpectsArguments = true
	results[0].Item.Label = "Delete"
	c := newWith(results, 0)
	r := &runner{out: OutcomeExecuted}

	assert.Equal(t, OutcomeConfirmationRequired, c.Select("delete  repo ", r.run))
	assert.Empty(t, r.calls)
	require.NotNil(t, c.Pending())
	assert.Equal(t, "repo", c.Pending().Args)
	assert.Equal(t, "a", c.State().Pending.Result.Item.ID)

	assert.Equal(t, OutcomeExecuted, c.Confirm(r.run))
	assert.Equal(t, []string{"a"}, r.calls)
	assert.Equal(t, []string{"repo"}, r.args)
	assert.Nil(t, c.Pending())

	assert.Equal(t, OutcomeNone, c.Confirm(r.run))
	assert.Len(t, r.calls, 1)
}

func TestSelectWhilePendingConfirms(t *testing.T) {
	results := grouped("A", "A")
	results[0].Item.Confirm = &domain.ConfirmSpec{}
	c := newWith(results, 0)
	r := &runner{out: OutcomeExecuted}

	c.Select("", r.run)
	c.Navigate(Down)
	assert.Equal(t, OutcomeExecuted, c.Select("", r.run))
	assert.Equal(t, []string{"a"}, r.calls)
}

func TestCancelDropsPending(t *testing.T) {
	results := grouped("A")
	results[0].Item.Confirm = &domain.ConfirmSpec{}
	c := newWith(results, 0)
	r := &runner{}

	c.Select("", r.run)
	c.Cancel()
	assert.Nil(t, c.Pending())
	assert.Empty(t, r.calls)

	assert.Equal(t, OutcomeConfirmationRequired, c.Select("", r.run))
}

func TestResetClearsPending(t *testing.T) {
	results := grouped("A")
	results[0].Item.Confirm = &domain.ConfirmSpec{}
	c := newWith(results, 0)

	c.Select("", (&runner{}).run)
	c.SetResults(results, false)
	assert.NotNil(t, c.Pending())

	c.Reset()
	assert.Nil(t, c.Pending())
	assert.Empty(t, c.Results())
}

func TestExtractArgs(t *testing.T) {
	tests := []struct {
		query, label, want string
	}{
		{"search cats", "Search", "cats"},
		{"  SEARCH   cats and dogs ", "Search", "cats and dogs"},
		{"cats", "Search", "cats"},
		{"sea", "Search", "sea"},
		{"", "Search", ""},
		{"Überall x", "überall", "x"},
		{"anything", "", "anything"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractArgs(tt.query, tt.label), tt.query)
	}
}

func TestOutcome(t *testing.T) {
	assert.True(t, OutcomeExecuted.Closes())
	assert.True(t, OutcomeNavigated.Closes())
	assert.True(t, OutcomeFailed.Closes())
	assert.False(t, OutcomeNoop.Closes())
	assert.False(t, OutcomeIntercepted.Closes())
	assert.False(t, OutcomeConfirmationRequired.Closes())
	assert.Equal(t, "confirmation-required", OutcomeConfirmationRequired.String())
}
