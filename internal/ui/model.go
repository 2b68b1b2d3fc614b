package ui

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"omnisearch/internal/config"
	"omnisearch/internal/eventbus"
	"omnisearch/internal/palette"
	"omnisearch/internal/search"
	"omnisearch/internal/selection"
	"omnisearch/internal/ui/views"
)

// Model is the terminal front end of a palette
type Model struct {
	palette  *palette.Palette
	bus      eventbus.EventBus
	settings config.UISettings

	keys       KeyMap
	input      textinput.Model
	help       help.Model
	renderer   *views.Renderer
	helpRender *HelpRenderer

	width       int
	height      int
	offset      int    // first visible result
	notice      string // last failure shown under the list
	inPagerMode bool   // tracks if we're currently in pager mode
	quitting    bool
	lastOutcome selection.Outcome

	// Program reference for terminal management
	program     *tea.Program
	unsubscribe []func()
	mu          sync.Mutex // guards program
}

// NewModel creates a new UI model for p
func NewModel(p *palette.Palette, bus eventbus.EventBus, settings config.UISettings) *Model {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if settings.MaxVisible <= 0 {
		settings.MaxVisible = config.DefaultConfig().UI.MaxVisible
	}

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Type a command or search..."
	ti.Focus()

	keys := DefaultKeyMap()
	m := &Model{
		palette:    p,
		bus:        bus,
		settings:   settings,
		keys:       keys,
		input:      ti,
		help:       help.New(),
		renderer:   views.NewRenderer(),
		helpRender: NewHelpRenderer(keys),
	}
	m.input.PromptStyle = m.renderer.Styles().Prompt
	return m
}

// SetProgram sets the program reference and starts forwarding failure
// notifications to it
func (m *Model) SetProgram(p *tea.Program) {
	m.mu.Lock()
	m.program = p
	m.mu.Unlock()

	forward := func(e eventbus.DomainEvent) {
		p.Send(EventMsg{Event: e})
	}
	m.unsubscribe = append(m.unsubscribe,
		m.bus.Subscribe(eventbus.EventActionFailed, forward),
		m.bus.Subscribe(eventbus.EventRemoteSearchFailed, forward),
	)
}

// Refresh schedules a redraw. It is safe to call from any goroutine and is
// meant to be used as the palette's change callback.
func (m *Model) Refresh() {
	m.mu.Lock()
	p := m.program
	m.mu.Unlock()
	if p != nil {
		p.Send(RefreshMsg{})
	}
}

// Close stops event forwarding
func (m *Model) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
}

// LastOutcome returns the result of the most recent selection
func (m *Model) LastOutcome() selection.Outcome {
	return m.lastOutcome
}

// Init opens the palette
func (m *Model) Init() tea.Cmd {
	m.palette.Open()
	m.syncInput()
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 8

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RefreshMsg:
		m.syncInput()
		m.scroll()

	case EventMsg:
		m.handleEvent(msg.Event)

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.notice = fmt.Sprintf("Help unavailable: %v", msg.err)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	if m.palette.Pending() != nil {
		switch {
		case key.Matches(msg, m.keys.Select):
			return m.afterSelect(m.palette.Confirm())
		case key.Matches(msg, m.keys.Cancel):
			m.palette.Cancel()
		}
		return m, nil
	}

	if d, ok := m.keys.direction(msg); ok {
		m.palette.Navigate(d)
		m.scroll()
		return m, nil
	}
	if n, ok := m.keys.groupNumber(msg); ok {
		m.palette.JumpToGroup(n)
		m.scroll()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		return m.afterSelect(m.palette.Select())

	case key.Matches(msg, m.keys.Cancel):
		return m.quit()

	case key.Matches(msg, m.keys.ToggleRegex):
		m.palette.ToggleRegex()
		m.scroll()
		return m, nil

	case key.Matches(msg, m.keys.FilterGroup):
		f := m.palette.Filter()
		f.Group = nextOption(search.Groups(m.palette.Items()), f.Group)
		m.palette.SetFilter(f)
		m.scroll()
		return m, nil

	case key.Matches(msg, m.keys.FilterType):
		f := m.palette.Filter()
		f.Type = nextOption(search.Types(m.palette.Items()), f.Type)
		m.palette.SetFilter(f)
		m.scroll()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		return m, m.fetchHelpPager()

	case key.Matches(msg, m.keys.Back) && m.input.Value() == "":
		if m.palette.Back() {
			m.syncInput()
			m.offset = 0
		}
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != prev {
		m.notice = ""
		m.palette.SetQuery(value)
		m.offset = 0
		m.syncInput()
	}
	return m, cmd
}

func (m *Model) afterSelect(out selection.Outcome) (tea.Model, tea.Cmd) {
	log.Printf("Selection outcome: %s", out)
	m.lastOutcome = out

	if out == selection.OutcomeDisabled {
		m.notice = "This item is disabled"
	}
	m.syncInput()
	m.scroll()

	if !m.palette.IsOpen() {
		return m.quit()
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ActionFailedEvent:
		m.notice = fmt.Sprintf("%s failed: %v", e.Label, e.Err)
	case eventbus.RemoteSearchFailedEvent:
		m.notice = fmt.Sprintf("Remote search failed: %v", e.Err)
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.palette.IsOpen() {
		m.palette.Close()
	}
	return m, tea.Quit
}

// syncInput copies a query changed by a plugin back into the input
func (m *Model) syncInput() {
	if q := m.palette.Query(); q != m.input.Value() {
		m.input.SetValue(q)
		m.input.CursorEnd()
	}
}

func (m *Model) scroll() {
	m.offset = views.ScrollOffset(m.palette.ActiveIndex(), m.offset, m.settings.MaxVisible)
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager() tea.Cmd {
	m.mu.Lock()
	program := m.program
	m.mu.Unlock()
	if program == nil {
		return nil
	}

	content := m.helpRender.RenderHelpContent()
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := NewHelpOps(program).ShowHelpInPager(content)
		program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting || m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Input:            m.input.View(),
		Header:           m.palette.Header(),
		BeforeList:       m.palette.BeforeList(),
		AfterList:        m.palette.AfterList(),
		Suggestions:      m.palette.Suggestions(),
		Results:          m.palette.Results(),
		ActiveIndex:      m.palette.ActiveIndex(),
		Offset:           m.offset,
		MaxVisible:       m.settings.MaxVisible,
		RegexMode:        m.palette.RegexMode(),
		Loading:          m.palette.Loading(),
		FilterLabel:      filterLabel(m.palette.Filter()),
		Pending:          m.palette.Pending(),
		Notice:           m.notice,
		ShowDescriptions: m.settings.ShowDescriptions,
		ShowShortcuts:    m.settings.ShowShortcuts,
		HelpLine:         m.help.View(m.keys),
	}
	return m.renderer.Render(state)
}

// nextOption cycles through filter values; after the last one the filter
// is cleared
func nextOption(options []search.Option, current string) string {
	if current == "" {
		if len(options) > 0 {
			return options[0].Value
		}
		return ""
	}
	for i, o := range options {
		if o.Value == current && i+1 < len(options) {
			return options[i+1].Value
		}
	}
	return ""
}

func filterLabel(f search.Filter) string {
	var parts []string
	if f.Group != "" {
		parts = append(parts, "group: "+f.Group)
	}
	if f.Type != "" {
		parts = append(parts, "type: "+f.Type)
	}
	return strings.Join(parts, ", ")
}
