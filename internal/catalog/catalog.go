// Package catalog indexes the read-only reference content (races, classes,
// items, spells, ...) by name. Lookups are case-insensitive exact match and
// never fail with an error: missing content is an absent optional, because
// source data is occasionally incomplete for homebrew and variant content.
package catalog

import (
	"strings"

	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
)

// Collections holds the parsed reference data handed to the catalog at
// startup. The catalog never fetches or refreshes content itself.
type Collections struct {
	Races       []rulebook.Race      `json:"races"`
	Classes     []rulebook.Class     `json:"classes"`
	Backgrounds []rulebook.Background `json:"backgrounds"`
	Feats       []rulebook.Feat      `json:"feats"`
	Items       []rulebook.Item      `json:"items"`
	Spells      []rulebook.Spell     `json:"spells"`
	Actions     []rulebook.Action    `json:"actions"`
	Conditions  []rulebook.Condition `json:"conditions"`
	Languages   []rulebook.Language  `json:"languages"`
}

// Config holds everything needed to build a catalog
type Config struct {
	Collections Collections

	// CoreSources is the source allow-list applied to filtered listings.
	// Lookups by exact name always bypass the filter: a character that
	// already owns a non-core item must still resolve it.
	CoreSources []string
}

// Catalog is immutable after New returns
type Catalog struct {
	races       index[rulebook.Race]
	classes     index[rulebook.Class]
	backgrounds index[rulebook.Background]
	feats       index[rulebook.Feat]
	items       index[rulebook.Item]
	spells      index[rulebook.Spell]
	actions     index[rulebook.Action]
	conditions  index[rulebook.Condition]
	languages   index[rulebook.Language]

	core map[string]struct{}
}

// New builds a catalog, validating shape up front so use sites don't have to
func New(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("config is required")
	}

	c := &Catalog{
		core: make(map[string]struct{}, len(cfg.CoreSources)),
	}
	for _, s := range cfg.CoreSources {
		c.core[strings.ToLower(s)] = struct{}{}
	}

	col := cfg.Collections
	var err error
	if c.races, err = buildIndex("races", col.Races, func(r *rulebook.Race) (string, string) { return r.Name, r.Source }); err != nil {
		return nil, err
	}
	if c.classes, err = buildIndex("classes", col.Classes, func(cl *rulebook.Class) (string, string) { return cl.Name, cl.Source }); err != nil {
		return nil, err
	}
	if c.backgrounds, err = buildIndex("backgrounds", col.Backgrounds, func(b *rulebook.Background) (string, string) { return b.Name, b.Source }); err != nil {
		return nil, err
	}
	if c.feats, err = buildIndex("feats", col.Feats, func(f *rulebook.Feat) (string, string) { return f.Name, f.Source }); err != nil {
		return nil, err
	}
	if c.items, err = buildIndex("items", col.Items, func(i *rulebook.Item) (string, string) { return i.Name, i.Source }); err != nil {
		return nil, err
	}
	if c.spells, err = buildIndex("spells", col.Spells, func(s *rulebook.Spell) (string, string) { return s.Name, s.Source }); err != nil {
		return nil, err
	}
	if c.actions, err = buildIndex("actions", col.Actions, func(a *rulebook.Action) (string, string) { return a.Name, a.Source }); err != nil {
		return nil, err
	}
	if c.conditions, err = buildIndex("conditions", col.Conditions, func(cd *rulebook.Condition) (string, string) { return cd.Name, cd.Source }); err != nil {
		return nil, err
	}
	if c.languages, err = buildIndex("languages", col.Languages, func(l *rulebook.Language) (string, string) { return l.Name, l.Source }); err != nil {
		return nil, err
	}

	if err := validateCollections(&col); err != nil {
		return nil, err
	}

	return c, nil
}

// SourceAllowed reports whether a source tag is in the core allow-list
func (c *Catalog) SourceAllowed(source string) bool {
	_, ok := c.core[strings.ToLower(source)]
	return ok
}

// Race looks up a race by name. Lookups bypass the source filter.
func (c *Catalog) Race(name string) (*rulebook.Race, bool) { return c.races.get(name) }

// Class looks up a class by name
func (c *Catalog) Class(name string) (*rulebook.Class, bool) { return c.classes.get(name) }

// Background looks up a background by name
func (c *Catalog) Background(name string) (*rulebook.Background, bool) {
	return c.backgrounds.get(name)
}

// Feat looks up a feat by name
func (c *Catalog) Feat(name string) (*rulebook.Feat, bool) { return c.feats.get(name) }

// Item looks up an item by name
func (c *Catalog) Item(name string) (*rulebook.Item, bool) { return c.items.get(name) }

// Spell looks up a spell by name
func (c *Catalog) Spell(name string) (*rulebook.Spell, bool) { return c.spells.get(name) }

// Action looks up an action by name
func (c *Catalog) Action(name string) (*rulebook.Action, bool) { return c.actions.get(name) }

// Condition looks up a condition by name
func (c *Catalog) Condition(name string) (*rulebook.Condition, bool) { return c.conditions.get(name) }

// Language looks up a language by name
func (c *Catalog) Language(name string) (*rulebook.Language, bool) { return c.languages.get(name) }

// Races lists races in load order. With applyFilter, entries from non-core
// sources are hidden.
func (c *Catalog) Races(applyFilter bool) []*rulebook.Race { return c.races.list(c, applyFilter) }

// Classes lists classes
func (c *Catalog) Classes(applyFilter bool) []*rulebook.Class { return c.classes.list(c, applyFilter) }

// Backgrounds lists backgrounds
func (c *Catalog) Backgrounds(applyFilter bool) []*rulebook.Background {
	return c.backgrounds.list(c, applyFilter)
}

// Feats lists feats
func (c *Catalog) Feats(applyFilter bool) []*rulebook.Feat { return c.feats.list(c, applyFilter) }

// Items lists items
func (c *Catalog) Items(applyFilter bool) []*rulebook.Item { return c.items.list(c, applyFilter) }

// Spells lists spells
func (c *Catalog) Spells(applyFilter bool) []*rulebook.Spell { return c.spells.list(c, applyFilter) }

// Actions lists actions
func (c *Catalog) Actions(applyFilter bool) []*rulebook.Action { return c.actions.list(c, applyFilter) }

// Conditions lists conditions
func (c *Catalog) Conditions(applyFilter bool) []*rulebook.Condition {
	return c.conditions.list(c, applyFilter)
}

// Languages lists languages
func (c *Catalog) Languages(applyFilter bool) []*rulebook.Language {
	return c.languages.list(c, applyFilter)
}

// index stores one collection in load order with a lowercase name map
type index[T any] struct {
	entries []*T
	byName  map[string]*T
	source  func(*T) (string, string)
}

func buildIndex[T any](collection string, entries []T, nameSource func(*T) (string, string)) (index[T], error) {
	idx := index[T]{
		entries: make([]*T, 0, len(entries)),
		byName:  make(map[string]*T, len(entries)),
		source:  nameSource,
	}

	for i := range entries {
		entry := &entries[i]
		name, _ := nameSource(entry)
		if strings.TrimSpace(name) == "" {
			return index[T]{}, dnderr.Validationf("%s: entry %d has an empty name", collection, i)
		}
		key := strings.ToLower(name)
		if _, exists := idx.byName[key]; exists {
			return index[T]{}, dnderr.Validationf("%s: duplicate entry %q", collection, name)
		}
		idx.byName[key] = entry
		idx.entries = append(idx.entries, entry)
	}

	return idx, nil
}

func (idx *index[T]) get(name string) (*T, bool) {
	entry, ok := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	return entry, ok
}

func (idx *index[T]) list(c *Catalog, applyFilter bool) []*T {
	if !applyFilter {
		return append([]*T(nil), idx.entries...)
	}

	result := make([]*T, 0, len(idx.entries))
	for _, entry := range idx.entries {
		_, source := idx.source(entry)
		if c.SourceAllowed(source) {
			result = append(result, entry)
		}
	}
	return result
}
