package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"gopkg.in/yaml.v3"

	"omnisearch/internal/domain"
)

// maxLoaders bounds how many catalog files are parsed at once
const maxLoaders = 8

// File is the top-level layout of a catalog document
type File struct {
	Items []Entry `yaml:"items" json:"items"`
}

// Entry is one catalog item as written in YAML. An entry runs at most one
// of command, url or route, checked in that order.
type Entry struct {
	ID               string        `yaml:"id" json:"id"`
	Label            string        `yaml:"label" json:"label"`
	Description      string        `yaml:"description,omitempty" json:"description,omitempty"`
	Group            string        `yaml:"group,omitempty" json:"group,omitempty"`
	Type             string        `yaml:"type,omitempty" json:"type,omitempty"`
	Keywords         []string      `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Aliases          []string      `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Shortcut         string        `yaml:"shortcut,omitempty" json:"shortcut,omitempty"`
	Route            string        `yaml:"route,omitempty" json:"route,omitempty"`
	Command          string        `yaml:"command,omitempty" json:"-"`
	URL              string        `yaml:"url,omitempty" json:"url,omitempty"`
	Replacement      string        `yaml:"replacement,omitempty" json:"replacement,omitempty"`
	ExpectsArguments bool          `yaml:"expects_arguments,omitempty" json:"expects_arguments,omitempty"`
	Confirm          *ConfirmEntry `yaml:"confirm,omitempty" json:"confirm,omitempty"`
	Disabled         bool          `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Items            []Entry       `yaml:"items,omitempty" json:"items,omitempty"`
}

// ConfirmEntry describes a confirmation dialog
type ConfirmEntry struct {
	Title        string `yaml:"title" json:"title"`
	Message      string `yaml:"message,omitempty" json:"message,omitempty"`
	ConfirmLabel string `yaml:"confirm_label,omitempty" json:"confirm_label,omitempty"`
	CancelLabel  string `yaml:"cancel_label,omitempty" json:"cancel_label,omitempty"`
	Severity     string `yaml:"severity,omitempty" json:"severity,omitempty"`
}

// ErrInvalidEntry is wrapped by every validation error
var ErrInvalidEntry = errors.New("invalid catalog entry")

// Parse decodes a YAML catalog into items whose actions go through l
func Parse(data []byte, l Launcher) ([]domain.Item, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return Build(f.Items, l)
}

// LoadFile reads and parses one catalog file
func LoadFile(path string, l Launcher) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	items, err := Parse(data, l)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// LoadFiles concatenates several catalogs. Ids must be unique across all
// of them.
func LoadFiles(paths []string, l Launcher) ([]domain.Item, error) {
	loaded, err := loadConcurrently(paths, l)
	if err != nil {
		return nil, err
	}

	var all []domain.Item
	seen := make(map[string]string)
	for i, items := range loaded {
		path := paths[i]
		for _, item := range items {
			if prev, dup := seen[item.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate id %q in %s and %s", ErrInvalidEntry, item.ID, prev, path)
			}
			seen[item.ID] = path
		}
		all = append(all, items...)
	}
	return all, nil
}

// loadConcurrently parses every file on a bounded pool. Results keep the
// order of paths; the first error by path order wins.
func loadConcurrently(paths []string, l Launcher) ([][]domain.Item, error) {
	results := make([][]domain.Item, len(paths))
	errs := make([]error, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(min(len(paths), maxLoaders))
	if err != nil {
		return nil, fmt.Errorf("failed to create loader pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = LoadFile(path, l)
		}); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("failed to schedule %s: %w", path, err)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Build converts entries into items. Entries without an id get one derived
// from their label.
func Build(entries []Entry, l Launcher) ([]domain.Item, error) {
	seen := make(map[string]bool)
	return build(entries, l, seen)
}

func build(entries []Entry, l Launcher, seen map[string]bool) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		item, err := toItem(e, l, seen)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func toItem(e Entry, l Launcher, seen map[string]bool) (domain.Item, error) {
	if strings.TrimSpace(e.Label) == "" {
		return domain.Item{}, fmt.Errorf("%w: entry %q has no label", ErrInvalidEntry, e.ID)
	}
	id := e.ID
	if id == "" {
		id = slugify(e.Label)
	}
	if seen[id] {
		return domain.Item{}, fmt.Errorf("%w: duplicate id %q", ErrInvalidEntry, id)
	}
	seen[id] = true

	item := domain.Item{
		ID:               id,
		Label:            e.Label,
		Description:      e.Description,
		Group:            e.Group,
		Type:             e.Type,
		Keywords:         e.Keywords,
		Aliases:          e.Aliases,
		Shortcut:         e.Shortcut,
		Route:            e.Route,
		ExpectsArguments: e.ExpectsArguments,
		Disabled:         e.Disabled,
	}

	if e.Confirm != nil {
		severity, err := parseSeverity(e.Confirm.Severity)
		if err != nil {
			return domain.Item{}, fmt.Errorf("%w: %s: %v", ErrInvalidEntry, id, err)
		}
		item.Confirm = &domain.ConfirmSpec{
			Title:        e.Confirm.Title,
			Message:      e.Confirm.Message,
			ConfirmLabel: e.Confirm.ConfirmLabel,
			CancelLabel:  e.Confirm.CancelLabel,
			Severity:     severity,
		}
	}

	switch {
	case e.Command != "":
		item.Action = commandAction(l, e.Command)
	case e.URL != "":
		if e.Replacement != "" {
			item.ExpectsArguments = true
		}
		item.Action = urlAction(l, e.Label, e.URL, e.Replacement)
	}

	if len(e.Items) > 0 {
		children, err := build(e.Items, l, seen)
		if err != nil {
			return domain.Item{}, err
		}
		item.Items = children
	}

	return item, nil
}

func parseSeverity(s string) (domain.Severity, error) {
	switch domain.Severity(s) {
	case "":
		return domain.SeverityInfo, nil
	case domain.SeverityInfo, domain.SeverityWarning, domain.SeverityDanger:
		return domain.Severity(s), nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, s)
	return strings.Trim(s, "-")
}
