package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxDepth is how many directory levels below a catalog directory are searched
const maxDepth = 2

// skipDirs are never searched for catalogs
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

// Discover expands catalog paths. Files are kept as given; directories are
// walked for *.yaml and *.yml files, sorted per directory. Hidden
// directories are skipped.
func Discover(ctx context.Context, paths []string) ([]string, error) {
	var out []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", root, err)
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}

		found, err := walkCatalogs(ctx, root)
		if err != nil {
			return nil, err
		}
		log.Printf("Found %d catalog(s) in %s", len(found), root)
		out = append(out, found...)
	}
	return out, nil
}

func walkCatalogs(ctx context.Context, root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			rel, _ := filepath.Rel(root, path)
			if strings.Count(rel, string(filepath.Separator)) >= maxDepth {
				return fs.SkipDir
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return fs.SkipDir
			}
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(found)
	return found, nil
}
