package domain

// OtherGroup is the group used for items that don't declare one
const OtherGroup = "Other"

// ActionFunc is an executable item action. args is empty unless the item
// expects arguments.
type ActionFunc func(args string) error

// Severity represents how dangerous a confirmed action is
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// ConfirmSpec describes the confirmation dialog shown before an action runs
type ConfirmSpec struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Severity     Severity
}

// Item represents a single searchable entry in the palette
type Item struct {
	ID          string
	Label       string
	Description string
	Group       string
	Keywords    []string
	Aliases     []string
	Type        string // free-form category, e.g. "page" or "action"
	Shortcut    string // keyboard hint shown next to the item

	Action           ActionFunc
	Route            string
	ExpectsArguments bool
	Confirm          *ConfirmSpec

	Items    []Item // children, used by the nested plugin
	Disabled bool
}

// Executable reports whether selecting the item does anything
func (i Item) Executable() bool {
	return i.Action != nil || i.Route != ""
}

// HasChildren reports whether the item has nested items
func (i Item) HasChildren() bool {
	return len(i.Items) > 0
}

// GroupOf returns the item's group, falling back to OtherGroup
func GroupOf(item Item) string {
	if item.Group == "" {
		return OtherGroup
	}
	return item.Group
}

// Field identifies which item field produced a match
type Field string

const (
	FieldNone        Field = ""
	FieldLabel       Field = "label"
	FieldDescription Field = "description"
	FieldGroup       Field = "group"
	FieldKeyword     Field = "keyword"
	FieldAlias       Field = "alias"
)

// ScoredResult is an item ranked against the current query.
// MatchedPositions are rune indices into the field named by MatchedField.
type ScoredResult struct {
	Item             Item
	Score            float64
	MatchedPositions []int
	MatchedField     Field
	MatchedText      string // value of the matched field (keyword/alias text for those fields)
}

// Unscored wraps items with a zero score and no match information
func Unscored(items []Item) []ScoredResult {
	results := make([]ScoredResult, len(items))
	for i, item := range items {
		results[i] = ScoredResult{Item: item}
	}
	return results
}
