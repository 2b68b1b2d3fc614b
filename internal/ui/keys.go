package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"omnisearch/internal/selection"
)

// KeyMap defines the palette key bindings
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	NextGroup   key.Binding
	PrevGroup   key.Binding
	JumpGroup   key.Binding
	Select      key.Binding
	Cancel      key.Binding
	ToggleRegex key.Binding
	FilterGroup key.Binding
	FilterType  key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k", "ctrl+p"),
			key.WithHelp("↑/ctrl+k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j", "ctrl+n"),
			key.WithHelp("↓/ctrl+j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		NextGroup: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next group"),
		),
		PrevGroup: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous group"),
		),
		JumpGroup: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1..9", "jump to group"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		ToggleRegex: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "regex"),
		),
		FilterGroup: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "filter by group"),
		),
		FilterType: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "filter by type"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.NextGroup, k.ToggleRegex, k.Help, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.NextGroup, k.PrevGroup, k.JumpGroup, k.FilterGroup, k.FilterType},
		{k.Select, k.Cancel, k.Back, k.ToggleRegex, k.Help, k.Quit},
	}
}

// direction maps a navigation key to a selection direction
func (k KeyMap) direction(msg tea.KeyMsg) (selection.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return selection.Up, true
	case key.Matches(msg, k.Down):
		return selection.Down, true
	case key.Matches(msg, k.PageUp):
		return selection.PageUp, true
	case key.Matches(msg, k.PageDown):
		return selection.PageDown, true
	case key.Matches(msg, k.Home):
		return selection.Home, true
	case key.Matches(msg, k.End):
		return selection.End, true
	case key.Matches(msg, k.NextGroup):
		return selection.NextGroup, true
	case key.Matches(msg, k.PrevGroup):
		return selection.PrevGroup, true
	}
	return 0, false
}

// groupNumber returns n for alt+n
func (k KeyMap) groupNumber(msg tea.KeyMsg) (int, bool) {
	if !key.Matches(msg, k.JumpGroup) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(msg.String(), "alt+"))
	if err != nil {
		return 0, false
	}
	return n, true
}
