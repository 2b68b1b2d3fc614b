package selection

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"omnisearch/internal/domain"
)

// DefaultPageSize is the PageUp/PageDown step when none is configured
const DefaultPageSize = 10

// Controller tracks the active result and the confirmation gate.
// It is not safe for concurrent use; the owner serializes access.
type Controller struct {
	results  []domain.ScoredResult
	index    int
	pending  *Pending
	pageSize int
}

// NewController creates a controller. pageSize <= 0 selects DefaultPageSize.
func NewController(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{pageSize: pageSize}
}

// SetResults replaces the result list. With reset the index returns to 0
// and any pending confirmation is dropped; otherwise the index is clamped.
func (c *Controller) SetResults(results []domain.ScoredResult, reset bool) {
	c.results = results
	if reset {
		c.index = 0
		c.pending = nil
		return
	}
	c.index = c.clamp(c.index)
}

// Reset clears the list, the index and any pending confirmation
func (c *Controller) Reset() {
	c.SetResults(nil, true)
}

func (c *Controller) Results() []domain.ScoredResult {
	return c.results
}

func (c *Controller) ActiveIndex() int {
	return c.index
}

// Active returns the result at the active index
func (c *Controller) Active() (domain.ScoredResult, bool) {
	if c.index < 0 || c.index >= len(c.results) {
		return domain.ScoredResult{}, false
	}
	return c.results[c.index], true
}

// State returns a snapshot of the index and pending confirmation
func (c *Controller) State() State {
	return State{ActiveIndex: c.index, Pending: c.pending}
}

// SetActiveIndex moves to i, clamped to the list. A negative index is a
// programming error.
func (c *Controller) SetActiveIndex(i int) {
	if i < 0 {
		panic(fmt.Sprintf("selection: negative index %d", i))
	}
	c.index = c.clamp(i)
}

// Navigate moves the active index
func (c *Controller) Navigate(d Direction) {
	n := len(c.results)
	if n == 0 {
		c.index = 0
		return
	}

	switch d {
	case Up:
		c.index = max(c.index-1, 0)
	case Down:
		c.index = min(c.index+1, n-1)
	case PageUp:
		c.index = max(c.index-c.pageSize, 0)
	case PageDown:
		c.index = min(c.index+c.pageSize, n-1)
	case Home:
		c.index = 0
	case End:
		c.index = n - 1
	case NextGroup:
		c.index = c.nextGroup()
	case PrevGroup:
		c.index = c.prevGroup()
	}
}

// JumpToGroup moves to the first result of the nth group (1-based), groups
// being numbered in order of first appearance. It reports whether it moved.
func (c *Controller) JumpToGroup(n int) bool {
	starts := c.groupStarts()
	if n < 1 || n > len(starts) {
		return false
	}
	c.index = starts[n-1]
	return true
}

// Select runs the active result. With a confirmation already pending it
// confirms instead. Items that require confirmation are parked as pending
// and not run.
func (c *Controller) Select(query string, run RunFunc) Outcome {
	if c.pending != nil {
		return c.Confirm(run)
	}

	r, ok := c.Active()
	if !ok {
		return OutcomeNone
	}
	if r.Item.Disabled {
		return OutcomeDisabled
	}

	var args string
	if r.Item.ExpectsArguments {
		args = ExtractArgs(query, r.Item.Label)
	}

	if r.Item.Confirm != nil {
		c.pending = &Pending{Result: r, Args: args}
		return OutcomeConfirmationRequired
	}

	return run(r, args)
}

// Confirm runs the pending item
func (c *Controller) Confirm(run RunFunc) Outcome {
	p := c.pending
	if p == nil {
		return OutcomeNone
	}
	c.pending = nil
	return run(p.Result, p.Args)
}

// Cancel drops the pending confirmation without running anything
func (c *Controller) Cancel() {
	c.pending = nil
}

// Pending returns the item awaiting confirmation, or nil
func (c *Controller) Pending() *Pending {
	return c.pending
}

func (c *Controller) clamp(i int) int {
	if len(c.results) == 0 || i < 0 {
		return 0
	}
	return min(i, len(c.results)-1)
}

func (c *Controller) groupAt(i int) string {
	return domain.GroupOf(c.results[i].Item)
}

func (c *Controller) nextGroup() int {
	current := c.groupAt(c.index)
	for i := c.index + 1; i < len(c.results); i++ {
		if c.groupAt(i) != current {
			return i
		}
	}
	return 0
}

func (c *Controller) prevGroup() int {
	// start of the current group
	start := c.index
	for start > 0 && c.groupAt(start-1) == c.groupAt(c.index) {
		start--
	}

	target := start - 1
	if target < 0 {
		target = len(c.results) - 1
	}

	// walk back to the start of that group
	for target > 0 && c.groupAt(target-1) == c.groupAt(target) {
		target--
	}
	return target
}

func (c *Controller) groupStarts() []int {
	var starts []int
	seen := make(map[string]bool)
	for i := range c.results {
		g := c.groupAt(i)
		if !seen[g] {
			seen[g] = true
			starts = append(starts, i)
		}
	}
	return starts
}

// ExtractArgs returns the argument text typed after an item's label. When
// the trimmed query starts with label (ignoring case) the remainder is
// returned, otherwise the whole trimmed query.
func ExtractArgs(query, label string) string {
	q := strings.TrimSpace(query)
	if label == "" {
		return q
	}

	n := utf8.RuneCountInString(label)
	runes := []rune(q)
	if len(runes) >= n && strings.EqualFold(string(runes[:n]), label) {
		return strings.TrimSpace(string(runes[n:]))
	}
	return q
}
