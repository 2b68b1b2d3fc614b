package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"omnisearch/internal/eventbus"
)

// DefaultWebSearchURL is used when web search is enabled without a template.
// %s is replaced by the escaped query.
const DefaultWebSearchURL = "https://www.google.com/search?q=%s"

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	Search  SearchSettings  `toml:"search"`
	Storage StorageSettings `toml:"storage"`
	Catalog CatalogSettings `toml:"catalog"`
	UI      UISettings      `toml:"ui"`
}

// SearchSettings controls ranking, recency and the remote search
type SearchSettings struct {
	EnableRecent       bool   `toml:"enable_recent"`
	MaxRecentItems     int    `toml:"max_recent_items"`
	RegexMode          bool   `toml:"regex_mode"`
	DebounceMS         int    `toml:"debounce_ms"`
	EnableGoogleSearch bool   `toml:"enable_google_search"`
	WebSearchURL       string `toml:"web_search_url"`
	PageJumpSize       int    `toml:"page_jump_size"`
	MaxHistoryItems    int    `toml:"max_history_items"`
}

// Debounce returns the remote search debounce interval
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// StorageSettings selects the key/value backend
type StorageSettings struct {
	Backend string `toml:"backend"` // memory, sqlite or badger
	Path    string `toml:"path"`
}

// CatalogSettings lists where items come from
type CatalogSettings struct {
	Files           []string `toml:"files"`
	RemoteURL       string   `toml:"remote_url"`
	RemoteTimeoutMS int      `toml:"remote_timeout_ms"`
}

// RemoteTimeout returns the timeout for a single remote search request
func (c CatalogSettings) RemoteTimeout() time.Duration {
	return time.Duration(c.RemoteTimeoutMS) * time.Millisecond
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDescriptions bool `toml:"show_descriptions"`
	ShowShortcuts    bool `toml:"show_shortcuts"`
	MaxVisible       int  `toml:"max_visible"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default config file
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects the default config file.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/omnisearch/config.toml or its
// platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "omnisearch", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file.
// A missing file yields the default configuration.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes a TOML document on top of the defaults
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()

	if c.Search.MaxRecentItems <= 0 {
		c.Search.MaxRecentItems = def.Search.MaxRecentItems
	}
	if c.Search.DebounceMS < 0 {
		c.Search.DebounceMS = def.Search.DebounceMS
	}
	if c.Search.PageJumpSize <= 0 {
		c.Search.PageJumpSize = def.Search.PageJumpSize
	}
	if c.Search.MaxHistoryItems <= 0 {
		c.Search.MaxHistoryItems = def.Search.MaxHistoryItems
	}
	if c.Search.WebSearchURL == "" {
		c.Search.WebSearchURL = def.Search.WebSearchURL
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Catalog.RemoteTimeoutMS <= 0 {
		c.Catalog.RemoteTimeoutMS = def.Catalog.RemoteTimeoutMS
	}
	if c.UI.MaxVisible <= 0 {
		c.UI.MaxVisible = def.UI.MaxVisible
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchSettings{
			EnableRecent:    true,
			MaxRecentItems:  10,
			DebounceMS:      300,
			WebSearchURL:    DefaultWebSearchURL,
			PageJumpSize:    10,
			MaxHistoryItems: 20,
		},
		Storage: StorageSettings{
			Backend: "memory",
		},
		Catalog: CatalogSettings{
			RemoteTimeoutMS: 5000,
		},
		UI: UISettings{
			ShowDescriptions: true,
			ShowShortcuts:    true,
			MaxVisible:       12,
		},
	}
}
