package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// ErrUnsupportedVariant is returned when an entity has no footprint rule.
var ErrUnsupportedVariant = errors.New("unsupported variant")

// UnsupportedVariantError identifies the entity whose footprint is unknown.
type UnsupportedVariantError struct {
	Number int
	Name   string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("entity #%d (%s): %v: no footprint rule", e.Number, e.Name, ErrUnsupportedVariant)
}

func (e *UnsupportedVariantError) Unwrap() error { return ErrUnsupportedVariant }

// FootprintRule gives the occupied cells of a prototype as offsets from the
// entity's anchor cell, written for a north-facing entity. Offsets are
// rotated by the entity's direction when applied.
type FootprintRule struct {
	Name    string         `json:"name"`
	Offsets []spatial.Cell `json:"offsets"`
}

// Catalog resolves footprints. A nil or zero Catalog applies the built-in
// rules only; registered rules take precedence over them.
type Catalog struct {
	rules map[string][]spatial.Cell
}

// NewCatalog builds a catalog from rules. Each rule needs a name, at least
// one offset, and no duplicate names.
func NewCatalog(rules ...FootprintRule) (*Catalog, error) {
	c := &Catalog{rules: make(map[string][]spatial.Cell, len(rules))}
	for _, r := range rules {
		if r.Name == "" {
			return nil, errors.New("footprint rule: name is required")
		}
		if len(r.Offsets) == 0 {
			return nil, fmt.Errorf("footprint rule %q: at least one offset is required", r.Name)
		}
		if _, dup := c.rules[r.Name]; dup {
			return nil, fmt.Errorf("footprint rule %q: duplicate", r.Name)
		}
		c.rules[r.Name] = slices.Clone(r.Offsets)
	}
	return c, nil
}

// Rules returns the registered rules sorted by name.
func (c *Catalog) Rules() []FootprintRule {
	if c == nil {
		return nil
	}
	out := make([]FootprintRule, 0, len(c.rules))
	for name, offsets := range c.rules {
		out = append(out, FootprintRule{Name: name, Offsets: slices.Clone(offsets)})
	}
	slices.SortFunc(out, func(a, b FootprintRule) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}

// Positions returns the cells e occupies.
func (c *Catalog) Positions(e *Entity) ([]spatial.Cell, error) {
	anchor := e.Anchor()
	if c != nil {
		if offsets, ok := c.rules[e.Name()]; ok {
			cells := make([]spatial.Cell, len(offsets))
			for i, o := range offsets {
				cells[i] = anchor.Add(e.Direction.Rotate(o))
			}
			return cells, nil
		}
	}

	switch e.Kind.(type) {
	case TransportBelt, UndergroundBelt, FilterInserter, Wall:
		return []spatial.Cell{anchor}, nil
	case AssemblingMachine, ElectricFurnace, ChemicalPlant:
		block := spatial.Block(anchor)
		return block[:], nil
	}
	return nil, &UnsupportedVariantError{Number: e.Number, Name: e.Name()}
}

// Positions returns the cells e occupies under the built-in rules.
func Positions(e *Entity) ([]spatial.Cell, error) {
	return (*Catalog)(nil).Positions(e)
}
