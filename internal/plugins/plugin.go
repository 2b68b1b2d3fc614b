package plugins

import "omnisearch/internal/domain"

// Plugin is the only required capability. Names must be unique within a
// host; they key initialization and storage scoping. Any of the optional
// hook interfaces below may also be implemented.
type Plugin interface {
	Name() string
}

// Initializer is called once per plugin name before its first use
type Initializer interface {
	OnInit(ctx *Context) error
}

// BeforeSearchHook may filter, reorder, inject or replace the items
// before they are ranked
type BeforeSearchHook interface {
	OnBeforeSearch(query string, items []domain.Item) ([]domain.Item, error)
}

// AfterSearchHook may rewrite the ranked results
type AfterSearchHook interface {
	OnAfterSearch(results []domain.ScoredResult) ([]domain.ScoredResult, error)
}

// SelectHook runs before an item executes. Returning false prevents the
// default execution.
type SelectHook interface {
	OnSelect(item domain.Item) (bool, error)
}

// BackHandler handles a "go back" request, e.g. Backspace on an empty
// query. It reports whether it did anything.
type BackHandler interface {
	OnBack() bool
}

// CloseHook runs when the overlay closes
type CloseHook interface {
	OnClose()
}

// DestroyHook runs when the host tears its plugins down
type DestroyHook interface {
	OnDestroy()
}

// HeaderRenderer provides content shown above the input
type HeaderRenderer interface {
	RenderHeader() string
}

// BeforeListRenderer provides content shown above the result list
type BeforeListRenderer interface {
	RenderBeforeList() string
}

// AfterListRenderer provides content shown below the result list
type AfterListRenderer interface {
	RenderAfterList() string
}
