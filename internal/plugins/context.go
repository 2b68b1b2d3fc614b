package plugins

import "omnisearch/internal/storage"

// Controls exposes the palette state plugins may read and change
type Controls interface {
	IsOpen() bool
	Query() string
	SetQuery(query string)
	Open()
	Close()
	Toggle()
	Refresh()
}

// Context is handed to a plugin on initialization. Its mutators must only
// be called from inside a hook, where the owner already holds its lock.
type Context struct {
	name     string
	controls Controls
	storage  storage.Storage
}

// NewContext creates a context for the named plugin with storage scoped to it
func NewContext(name string, controls Controls, store storage.Storage) *Context {
	return &Context{
		name:     name,
		controls: controls,
		storage:  storage.Scoped(store, StoragePrefix(name)),
	}
}

// StoragePrefix returns the key prefix used for a plugin's storage
func StoragePrefix(name string) string {
	return "plugin." + name + "."
}

func (c *Context) Name() string          { return c.name }
func (c *Context) IsOpen() bool          { return c.controls.IsOpen() }
func (c *Context) Query() string         { return c.controls.Query() }
func (c *Context) SetQuery(query string) { c.controls.SetQuery(query) }
func (c *Context) Open()                 { c.controls.Open() }
func (c *Context) Close()                { c.controls.Close() }
func (c *Context) Toggle()               { c.controls.Toggle() }

// Refresh recomputes the results without changing the query
func (c *Context) Refresh() { c.controls.Refresh() }

// Storage returns the plugin's private key/value namespace
func (c *Context) Storage() storage.Storage { return c.storage }
