package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	dnderr "github.com/sheetforge/sheetforge/internal/errors"
)

// Load reads one JSON file per collection from dir and builds the catalog.
// A missing file yields an empty collection: reference data is allowed to be
// incomplete, and callers already treat lookup misses as absent optionals.
func Load(dir string, coreSources []string) (*Catalog, error) {
	var col Collections

	g := new(errgroup.Group)
	g.Go(loadFile(dir, "races.json", &col.Races))
	g.Go(loadFile(dir, "classes.json", &col.Classes))
	g.Go(loadFile(dir, "backgrounds.json", &col.Backgrounds))
	g.Go(loadFile(dir, "feats.json", &col.Feats))
	g.Go(loadFile(dir, "items.json", &col.Items))
	g.Go(loadFile(dir, "spells.json", &col.Spells))
	g.Go(loadFile(dir, "actions.json", &col.Actions))
	g.Go(loadFile(dir, "conditions.json", &col.Conditions))
	g.Go(loadFile(dir, "languages.json", &col.Languages))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(&Config{
		Collections: col,
		CoreSources: coreSources,
	})
}

// loadFile decodes one collection file into out. Each goroutine writes a
// distinct field of Collections, so no locking is needed.
func loadFile[T any](dir, name string, out *[]T) func() error {
	return func() error {
		data, err := os.ReadFile(filepath.Clean(filepath.Join(dir, name)))
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return dnderr.Wrapf(err, "failed to read %s", name)
		}

		if err := json.Unmarshal(data, out); err != nil {
			return dnderr.Wrapf(err, "failed to parse %s", name).WithMeta("file", name)
		}
		return nil
	}
}
