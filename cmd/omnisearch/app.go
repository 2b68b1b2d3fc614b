package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"omnisearch/internal/catalog"
	"omnisearch/internal/config"
	"omnisearch/internal/domain"
	"omnisearch/internal/eventbus"
	"omnisearch/internal/palette"
	"omnisearch/internal/plugins"
	"omnisearch/internal/storage"
)

// defaultCatalog is used when no catalog file is configured
const defaultCatalog = `
items:
  - id: web-github
    label: Search GitHub
    group: Web
    url: https://github.com/search?q={query}
    replacement: "{query}"
    keywords: [code, repositories]
  - id: web-godoc
    label: Search Go Packages
    group: Web
    url: https://pkg.go.dev/search?q={query}
    replacement: "{query}"
    keywords: [godoc, packages]
  - id: open-config-dir
    label: Open Config Directory
    group: Omnisearch
    description: Show where omnisearch keeps its configuration
    command: xdg-open "$HOME/.config/omnisearch"
`

const logFileKey = "logFile"

// setupLogging sends the standard logger to the log file so it doesn't
// corrupt the terminal UI
func setupLogging(c *cli.Context) error {
	logFile, err := os.OpenFile(c.String("log-file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
		return nil
	}
	log.SetOutput(logFile)
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[logFileKey] = logFile
	return nil
}

func closeLog(c *cli.Context) error {
	if f, ok := c.App.Metadata[logFileKey].(*os.File); ok {
		log.SetOutput(os.Stderr)
		return f.Close()
	}
	return nil
}

func configPath(c *cli.Context) string {
	if path := c.String("config"); path != "" {
		return path
	}
	return config.DefaultPath()
}

// environment holds everything a palette needs, built from the config
type environment struct {
	cfg      *config.Config
	cfgPath  string
	bus      eventbus.EventBus
	store    storage.Store
	items    []domain.Item
	launcher catalog.Launcher
}

func newEnvironment(c *cli.Context, launcher catalog.Launcher) (*environment, error) {
	bus := eventbus.New()
	env := &environment{
		cfgPath:  configPath(c),
		bus:      bus,
		launcher: launcher,
	}

	cfg, err := config.NewConfigServiceWithBus(bus, env.cfgPath).Load()
	if err != nil {
		bus.Close()
		return nil, err
	}
	env.cfg = cfg

	store, err := storage.Open(cfg.Storage.Backend, storagePath(cfg, env.cfgPath))
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	env.store = store

	files, err := catalog.Discover(c.Context, append(append([]string{}, cfg.Catalog.Files...), c.StringSlice("catalog")...))
	if err != nil {
		env.Close()
		return nil, err
	}
	if len(files) == 0 {
		env.items, err = catalog.Parse([]byte(defaultCatalog), launcher)
	} else {
		env.items, err = catalog.LoadFiles(files, launcher)
	}
	if err != nil {
		env.Close()
		return nil, err
	}
	log.Printf("Loaded %d catalog items from %d file(s)", len(env.items), len(files))

	return env, nil
}

// storagePath places file-backed stores next to the config file unless a
// path is configured
func storagePath(cfg *config.Config, cfgPath string) string {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	dir := filepath.Dir(cfgPath)
	switch cfg.Storage.Backend {
	case storage.BackendSQLite:
		return filepath.Join(dir, "state.db")
	case storage.BackendBadger:
		return filepath.Join(dir, "state")
	}
	return ""
}

func (e *environment) newPalette(onChange func()) *palette.Palette {
	opts := palette.Options{
		Items: e.items,
		Plugins: []plugins.Plugin{
			plugins.NewNested(),
			plugins.NewRecentSearches(e.cfg.Search.MaxHistoryItems),
		},
		Search:  e.cfg.Search,
		Storage: e.store,
		Bus:     e.bus,
		Navigate: func(route string) {
			if err := e.launcher.OpenURL(route); err != nil {
				log.Printf("Failed to open route %s: %v", route, err)
			}
		},
		OpenURL:  e.launcher.OpenURL,
		OnChange: onChange,
	}

	if url := e.cfg.Catalog.RemoteURL; url != "" {
		client := &http.Client{Timeout: e.cfg.Catalog.RemoteTimeout()}
		opts.RemoteSearch = catalog.HTTPSearch(url, client, e.launcher)
	}

	return palette.New(opts)
}

func (e *environment) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			log.Printf("Failed to close storage: %v", err)
		}
	}
	e.bus.Close()
}
