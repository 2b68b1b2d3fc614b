package palette

import (
	"log"
	"strings"
	"sync"

	"omnisearch/internal/config"
	"omnisearch/internal/domain"
	"omnisearch/internal/eventbus"
	"omnisearch/internal/pipeline"
	"omnisearch/internal/plugins"
	"omnisearch/internal/recent"
	"omnisearch/internal/search"
	"omnisearch/internal/selection"
	"omnisearch/internal/storage"
)

// Options configures a Palette. Everything is optional.
type Options struct {
	Items   []domain.Item
	Plugins []plugins.Plugin
	Search  config.SearchSettings
	// Storage persists recent items, search history and plugin state
	Storage storage.Storage
	Bus     eventbus.EventBus
	// Navigate is called for items that have a route
	Navigate selection.NavigateFunc
	// RemoteSearch is queried, debounced, for every non-empty query
	RemoteSearch pipeline.SearchFunc
	// OpenURL opens the web search entry
	OpenURL func(url string) error
	// OnChange is called from a background goroutine after asynchronous
	// results changed the palette state
	OnChange func()
}

// Palette is the command palette state: open flag, query, items, ranked
// results and selection. All methods are safe for concurrent use.
//
// Item actions and plugin hooks run while the palette is locked and must
// not call back into it; plugins use their Context instead.
type Palette struct {
	mu sync.Mutex

	settings config.SearchSettings
	bus      eventbus.EventBus
	onChange func()

	open        bool
	query       string
	items       []domain.Item
	filter      search.Filter
	regex       bool
	remoteItems []domain.Item
	loading     bool

	sel     *selection.Controller
	pipe    *pipeline.Pipeline
	host    *plugins.Host
	exec    *selection.Executor
	remote  *pipeline.Remote
	web     *pipeline.WebSearch
	recent  *recent.Store
	history *recent.History
}

// New creates a closed palette
func New(opts Options) *Palette {
	settings := withDefaults(opts.Search)

	store := opts.Storage
	if store == nil {
		store = storage.NewMemory()
	}
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	p := &Palette{
		settings: settings,
		bus:      bus,
		onChange: opts.OnChange,
		items:    opts.Items,
		regex:    settings.RegexMode,
		sel:      selection.NewController(settings.PageJumpSize),
		exec:     selection.NewExecutor(opts.Navigate, bus),
		recent:   recent.NewStore(store, settings.MaxRecentItems),
		history:  recent.NewHistory(store, recent.HistoryKey, settings.MaxHistoryItems),
	}

	p.host = plugins.NewHost(&controls{p: p}, store)
	p.pipe = pipeline.New(p.host)

	if opts.RemoteSearch != nil {
		p.remote = pipeline.NewRemote(opts.RemoteSearch, settings.Debounce(), 0)
	}
	if settings.EnableGoogleSearch {
		p.web = &pipeline.WebSearch{URLTemplate: settings.WebSearchURL, Open: opts.OpenURL}
	}

	p.host.SetPlugins(opts.Plugins)
	return p
}

func withDefaults(s config.SearchSettings) config.SearchSettings {
	def := config.DefaultConfig().Search
	if s.MaxRecentItems <= 0 {
		s.MaxRecentItems = def.MaxRecentItems
	}
	if s.PageJumpSize <= 0 {
		s.PageJumpSize = def.PageJumpSize
	}
	if s.MaxHistoryItems <= 0 {
		s.MaxHistoryItems = def.MaxHistoryItems
	}
	if s.DebounceMS < 0 {
		s.DebounceMS = def.DebounceMS
	}
	if s.WebSearchURL == "" {
		s.WebSearchURL = def.WebSearchURL
	}
	return s
}

// Open shows the palette with an empty query
func (p *Palette) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openLocked()
}

// Close hides the palette and drops any pending remote search
func (p *Palette) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

// Toggle opens a closed palette and closes an open one
func (p *Palette) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toggleLocked()
}

func (p *Palette) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// SetItems replaces the searchable items
func (p *Palette) SetItems(items []domain.Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.recompute(false)
}

// Items returns the searchable items
func (p *Palette) Items() []domain.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items
}

// SetPlugins replaces the plugin list
func (p *Palette) SetPlugins(list []plugins.Plugin) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.host.SetPlugins(list)
	p.recompute(false)
}

// SetQuery changes the query, resets the selection and reschedules the
// remote search
func (p *Palette) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setQueryLocked(query)
}

func (p *Palette) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Results returns the current ranked results
func (p *Palette) Results() []domain.ScoredResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel.Results()
}

func (p *Palette) ActiveIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel.ActiveIndex()
}

// Active returns the highlighted result
func (p *Palette) Active() (domain.ScoredResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel.Active()
}

// State returns a snapshot of the selection
func (p *Palette) State() selection.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel.State()
}

func (p *Palette) Navigate(d selection.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sel.Navigate(d)
}

// JumpToGroup moves to the first result of the nth group (1-based)
func (p *Palette) JumpToGroup(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel.JumpToGroup(n)
}

// SetActiveIndex panics on a negative index
func (p *Palette) SetActiveIndex(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sel.SetActiveIndex(i)
}

// Select executes the active result, or asks for confirmation first
func (p *Palette) Select() selection.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.sel.Select(p.query, p.run)
	if out == selection.OutcomeConfirmationRequired {
		if pending := p.sel.Pending(); pending != nil && pending.Result.Item.Confirm != nil {
			p.bus.Publish(eventbus.ConfirmationRequestedEvent{
				ItemID:  pending.Result.Item.ID,
				Confirm: *pending.Result.Item.Confirm,
			})
		}
	}
	return out
}

// Confirm runs the item waiting for confirmation
func (p *Palette) Confirm() selection.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel.Confirm(p.run)
}

// Cancel dismisses the confirmation without running anything
func (p *Palette) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sel.Cancel()
}

// Pending returns the item waiting for confirmation, or nil
func (p *Palette) Pending() *selection.Pending {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel.Pending()
}

// Back lets a plugin step out of a nested level
func (p *Palette) Back() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host.Back()
}

// ToggleRegex switches between fuzzy and regex matching
func (p *Palette) ToggleRegex() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.regex = !p.regex
	p.recompute(false)
	return p.regex
}

func (p *Palette) RegexMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.regex
}

// SetFilter restricts results to a type and/or group
func (p *Palette) SetFilter(f search.Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = f
	p.recompute(false)
}

func (p *Palette) Filter() search.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// Loading reports whether a remote search for the current query is pending
func (p *Palette) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Suggestions returns earlier queries resembling the current one
func (p *Palette) Suggestions() []string {
	p.mu.Lock()
	query := p.query
	p.mu.Unlock()
	return p.history.Suggestions(query)
}

// RecentIDs returns the recently executed item ids
func (p *Palette) RecentIDs() []string {
	return p.recent.IDs()
}

// ClearRecent forgets recently executed items and past queries
func (p *Palette) ClearRecent() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recent.Clear()
	p.history.Clear()
	p.recompute(false)
}

// Header returns plugin content for above the input
func (p *Palette) Header() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host.Header()
}

// BeforeList returns plugin content for above the results
func (p *Palette) BeforeList() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host.BeforeList()
}

// AfterList returns plugin content for below the results
func (p *Palette) AfterList() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host.AfterList()
}

// Destroy closes the palette and tears down its plugins
func (p *Palette) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	p.host.Destroy()
}

func (p *Palette) openLocked() {
	if p.open {
		return
	}
	p.open = true
	p.query = ""
	p.remoteItems = nil
	p.loading = false
	p.host.Init()
	p.recompute(true)
	p.bus.Publish(eventbus.PaletteOpenedEvent{})
}

func (p *Palette) closeLocked() {
	if !p.open {
		return
	}
	p.open = false
	p.host.Close()
	if p.remote != nil {
		p.remote.Invalidate()
	}
	p.remoteItems = nil
	p.loading = false
	p.sel.Reset()
	p.bus.Publish(eventbus.PaletteClosedEvent{Query: p.query})
	p.query = ""
}

func (p *Palette) toggleLocked() {
	if p.open {
		p.closeLocked()
	} else {
		p.openLocked()
	}
}

func (p *Palette) setQueryLocked(query string) {
	p.query = query
	p.remoteItems = nil
	p.recompute(true)
	p.scheduleRemote()
}

// recompute runs the pipeline. reset is true only for query changes and
// opening; every other change keeps the selection clamped in place.
func (p *Palette) recompute(reset bool) {
	st := pipeline.State{
		Filter:    p.filter,
		RegexMode: p.regex,
		Remote:    p.remoteItems,
		WebSearch: p.web,
	}
	if p.settings.EnableRecent {
		st.RecentIDs = p.recent.IDs()
	}
	p.sel.SetResults(p.pipe.Compute(p.query, p.items, st), reset)
}

func (p *Palette) scheduleRemote() {
	if p.remote == nil {
		return
	}
	if !p.open || strings.TrimSpace(p.query) == "" {
		p.remote.Invalidate()
		p.loading = false
		return
	}
	p.loading = true
	p.remote.Schedule(p.query, p.applyRemote)
}

// applyRemote runs on the remote search goroutine
func (p *Palette) applyRemote(res pipeline.RemoteResult) {
	p.mu.Lock()
	if !p.open || res.Query != p.query || !p.remote.IsCurrent(res.Generation) {
		p.mu.Unlock()
		log.Printf("Discarding stale remote results for %q", res.Query)
		return
	}

	p.loading = false
	if res.Err != nil {
		log.Printf("Remote search for %q failed: %v", res.Query, res.Err)
		p.remoteItems = nil
		p.bus.Publish(eventbus.RemoteSearchFailedEvent{Query: res.Query, Err: res.Err})
	} else {
		p.remoteItems = res.Items
	}
	p.recompute(false)
	onChange := p.onChange
	p.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// run executes a result that passed the disabled and confirmation gates
func (p *Palette) run(result domain.ScoredResult, args string) selection.Outcome {
	item := result.Item

	if !p.host.Select(item) {
		return selection.OutcomeIntercepted
	}
	if !item.Executable() {
		return selection.OutcomeNoop
	}

	if p.settings.EnableRecent && item.ID != pipeline.WebSearchID {
		p.recent.Add(item.ID)
	}
	p.history.Add(p.query)

	out := p.exec.Invoke(item, args)
	if out.Closes() {
		p.closeLocked()
	}
	return out
}

// controls gives plugins access to the palette from inside hooks, where
// the lock is already held
type controls struct {
	p *Palette
}

func (c *controls) IsOpen() bool          { return c.p.open }
func (c *controls) Query() string         { return c.p.query }
func (c *controls) SetQuery(query string) { c.p.setQueryLocked(query) }
func (c *controls) Open()                 { c.p.openLocked() }
func (c *controls) Close()                { c.p.closeLocked() }
func (c *controls) Toggle()               { c.p.toggleLocked() }
func (c *controls) Refresh()              { c.p.recompute(false) }
