// Package recipes loads the item → ingredient reference table.
//
// The source document maps each item to its recipe:
//
//	{"iron-gear-wheel": {"recipe": {"ingredients": [{"id": "iron-plate", "amount": 2}]}}}
//
// Only ingredient ids are kept. Items without ingredients (raw resources)
// are skipped. The table is reference data for tooling; reachability
// analysis does not consult it.
package recipes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// Table maps an item id to the ids of its ingredients, in document order.
type Table map[string][]string

type document map[string]struct {
	Recipe *struct {
		Ingredients []struct {
			ID string `json:"id"`
		} `json:"ingredients"`
	} `json:"recipe"`
}

// Load reads a table from a JSON file.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a table from r.
func Parse(r io.Reader) (Table, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	t := make(Table, len(doc))
	for item, entry := range doc {
		if entry.Recipe == nil || len(entry.Recipe.Ingredients) == 0 {
			continue
		}
		ids := make([]string, 0, len(entry.Recipe.Ingredients))
		for _, ing := range entry.Recipe.Ingredients {
			if ing.ID == "" {
				return nil, fmt.Errorf("item %q: ingredient without id", item)
			}
			ids = append(ids, ing.ID)
		}
		t[item] = ids
	}
	return t, nil
}

// Items returns the item ids in sorted order.
func (t Table) Items() []string {
	items := make([]string, 0, len(t))
	for item := range t {
		items = append(items, item)
	}
	slices.Sort(items)
	return items
}

// Ingredients returns the ingredient ids of item, or nil.
func (t Table) Ingredients(item string) []string {
	return t[item]
}
