package plugins

import (
	"fmt"
	"log"

	"omnisearch/internal/domain"
	"omnisearch/internal/storage"
)

// Host owns the plugin list and calls its hooks. Every hook call is
// isolated: an error or panic is logged and the call is treated as if it
// had not happened.
//
// Host is not safe for concurrent use; the palette serializes access.
type Host struct {
	plugins     []Plugin
	initialized map[string]bool
	controls    Controls
	store       storage.Storage
}

// NewHost creates a new plugin host. store may be nil, in which case plugin
// storage lives in memory.
func NewHost(controls Controls, store storage.Storage) *Host {
	if store == nil {
		store = storage.NewMemory()
	}
	return &Host{
		initialized: make(map[string]bool),
		controls:    controls,
		store:       store,
	}
}

// Plugins returns the registered plugins
func (h *Host) Plugins() []Plugin {
	return h.plugins
}

// SetPlugins replaces the plugin list. If it differs from the current one
// the old plugins are destroyed and the new ones initialized.
func (h *Host) SetPlugins(list []Plugin) {
	if samePlugins(h.plugins, list) {
		return
	}
	h.Destroy()
	h.plugins = append([]Plugin(nil), list...)
	h.Init()
}

// Init initializes every plugin that hasn't been yet. A plugin whose
// OnInit fails stays uninitialized and is tried again on the next Init.
func (h *Host) Init() {
	for _, p := range h.plugins {
		name := p.Name()
		if h.initialized[name] {
			continue
		}

		if in, ok := p.(Initializer); ok {
			ctx := NewContext(name, h.controls, h.store)
			if !h.guard(p, "onInit", func() error { return in.OnInit(ctx) }) {
				continue
			}
		}
		h.initialized[name] = true
	}
}

// Destroy runs every OnDestroy hook and forgets which plugins were
// initialized
func (h *Host) Destroy() {
	for _, p := range h.plugins {
		if d, ok := p.(DestroyHook); ok {
			h.guard(p, "onDestroy", func() error {
				d.OnDestroy()
				return nil
			})
		}
	}
	h.initialized = make(map[string]bool)
}

// BeforeSearch folds items through every BeforeSearchHook in order
func (h *Host) BeforeSearch(query string, items []domain.Item) []domain.Item {
	for _, p := range h.plugins {
		hook, ok := p.(BeforeSearchHook)
		if !ok {
			continue
		}
		var out []domain.Item
		if h.guard(p, "onBeforeSearch", func() (err error) {
			out, err = hook.OnBeforeSearch(query, items)
			return err
		}) {
			items = out
		}
	}
	return items
}

// AfterSearch folds results through every AfterSearchHook in order
func (h *Host) AfterSearch(results []domain.ScoredResult) []domain.ScoredResult {
	for _, p := range h.plugins {
		hook, ok := p.(AfterSearchHook)
		if !ok {
			continue
		}
		var out []domain.ScoredResult
		if h.guard(p, "onAfterSearch", func() (err error) {
			out, err = hook.OnAfterSearch(results)
			return err
		}) {
			results = out
		}
	}
	return results
}

// Select asks each SelectHook in order whether item may run and stops at
// the first one that returns false. A failing hook counts as allowing the
// selection.
func (h *Host) Select(item domain.Item) bool {
	for _, p := range h.plugins {
		hook, ok := p.(SelectHook)
		if !ok {
			continue
		}
		var allow bool
		if h.guard(p, "onSelect", func() (err error) {
			allow, err = hook.OnSelect(item)
			return err
		}) && !allow {
			return false
		}
	}
	return true
}

// Back offers a back request to each BackHandler until one handles it
func (h *Host) Back() bool {
	for _, p := range h.plugins {
		hook, ok := p.(BackHandler)
		if !ok {
			continue
		}
		var handled bool
		h.guard(p, "onBack", func() error {
			handled = hook.OnBack()
			return nil
		})
		if handled {
			return true
		}
	}
	return false
}

// Close runs every CloseHook
func (h *Host) Close() {
	for _, p := range h.plugins {
		if c, ok := p.(CloseHook); ok {
			h.guard(p, "onClose", func() error {
				c.OnClose()
				return nil
			})
		}
	}
}

// Header returns the first non-empty header content
func (h *Host) Header() string {
	return h.render("renderHeader", func(p Plugin) (string, bool) {
		r, ok := p.(HeaderRenderer)
		if !ok {
			return "", false
		}
		return r.RenderHeader(), true
	})
}

// BeforeList returns the first non-empty before-list content
func (h *Host) BeforeList() string {
	return h.render("renderBeforeList", func(p Plugin) (string, bool) {
		r, ok := p.(BeforeListRenderer)
		if !ok {
			return "", false
		}
		return r.RenderBeforeList(), true
	})
}

// AfterList returns the first non-empty after-list content
func (h *Host) AfterList() string {
	return h.render("renderAfterList", func(p Plugin) (string, bool) {
		r, ok := p.(AfterListRenderer)
		if !ok {
			return "", false
		}
		return r.RenderAfterList(), true
	})
}

func (h *Host) render(hook string, call func(Plugin) (string, bool)) string {
	for _, p := range h.plugins {
		var content string
		h.guard(p, hook, func() error {
			content, _ = call(p)
			return nil
		})
		if content != "" {
			return content
		}
	}
	return ""
}

// guard runs fn, logging and swallowing any error or panic. It reports
// whether fn succeeded.
func (h *Host) guard(p Plugin, hook string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Plugin %s failed in %s: %v", pluginName(p), hook, r)
			ok = false
		}
	}()

	if err := fn(); err != nil {
		log.Printf("Plugin %s failed in %s: %v", pluginName(p), hook, err)
		return false
	}
	return true
}

func pluginName(p Plugin) (name string) {
	defer func() {
		if recover() != nil {
			name = fmt.Sprintf("%T", p)
		}
	}()
	return p.Name()
}

// samePlugins compares two lists by element identity. Plugins with
// uncomparable dynamic types never compare equal.
func samePlugins(a, b []Plugin) (same bool) {
	if len(a) != len(b) {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
