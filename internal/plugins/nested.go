package plugins

import (
	"strings"

	"omnisearch/internal/domain"
)

// Nested lets items with children act as submenus. Selecting such an item
// replaces the list with its children; Back returns to the parent level.
// The stack is dropped whenever the overlay closes.
type Nested struct {
	ctx   *Context
	stack []domain.Item
}

// NewNested creates the nested commands plugin
func NewNested() *Nested {
	return &Nested{}
}

func (n *Nested) Name() string { return "nested" }

func (n *Nested) OnInit(ctx *Context) error {
	n.ctx = ctx
	return nil
}

func (n *Nested) OnBeforeSearch(query string, items []domain.Item) ([]domain.Item, error) {
	if len(n.stack) == 0 {
		return items, nil
	}
	return n.stack[len(n.stack)-1].Items, nil
}

func (n *Nested) OnSelect(item domain.Item) (bool, error) {
	if !item.HasChildren() {
		return true, nil
	}
	n.stack = append(n.stack, item)
	if n.ctx != nil {
		n.ctx.SetQuery("")
	}
	return false, nil
}

// OnBack pops one level. Nothing happens at the top level.
func (n *Nested) OnBack() bool {
	if len(n.stack) == 0 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	if n.ctx != nil {
		n.ctx.SetQuery("")
	}
	return true
}

func (n *Nested) OnClose() {
	n.stack = nil
}

// Depth returns how many levels deep the list currently is
func (n *Nested) Depth() int {
	return len(n.stack)
}

// RenderHeader shows the breadcrumb of entered submenus
func (n *Nested) RenderHeader() string {
	if len(n.stack) == 0 {
		return ""
	}
	labels := make([]string, len(n.stack))
	for i, item := range n.stack {
		labels[i] = item.Label
	}
	return strings.Join(labels, " › ")
}
