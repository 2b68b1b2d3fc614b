package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnisearch/internal/eventbus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Search.EnableRecent)
	assert.Equal(t, 10, cfg.Search.MaxRecentItems)
	assert.False(t, cfg.Search.RegexMode)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce())
	assert.False(t, cfg.Search.EnableGoogleSearch)
	assert.Equal(t, DefaultWebSearchURL, cfg.Search.WebSearchURL)
	assert.Equal(t, 10, cfg.Search.PageJumpSize)
	assert.Equal(t, 20, cfg.Search.MaxHistoryItems)
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte(`
[search]
regex_mode = true
enable_recent = false
page_jump_size = 0
`))
	require.NoError(t, err)

	assert.True(t, cfg.Search.RegexMode)
	assert.False(t, cfg.Search.EnableRecent)
	assert.Equal(t, 10, cfg.Search.PageJumpSize)
	assert.Equal(t, 300, cfg.Search.DebounceMS)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("[search\nregex_mode = true"))
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	bus := eventbus.New()
	defer bus.Close()

	saved := make(chan string, 1)
	loaded := make(chan string, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		saved <- e.(eventbus.ConfigSavedEvent).Path
	})
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		loaded <- e.(eventbus.ConfigLoadedEvent).Path
	})

	cs := NewConfigServiceWithBus(bus, path)
	assert.Equal(t, path, cs.Path())

	cfg := DefaultConfig()
	cfg.Search.EnableGoogleSearch = true
	cfg.Storage = StorageSettings{Backend: "sqlite", Path: "/tmp/omnisearch.db"}
	cfg.Catalog.Files = []string{"commands.yaml"}
	require.NoError(t, cs.Save(cfg))

	got, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	assert.Equal(t, path, <-saved)
	assert.Equal(t, path, <-loaded)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigServiceWithBus(nil, filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissing(t *testing.T) {
	cs := NewConfigServiceWithBus(nil, "")
	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestSavedFileIsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cs := NewConfigServiceWithBus(nil, path)
	require.NoError(t, cs.SaveToPath(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[search]")
	assert.Contains(t, string(data), "debounce_ms = 300")
}
