// Package layout indexes the entities of one blueprint for spatial queries.
//
// A [Layout] is the ordered, read-only entity list produced by the decoder.
// [BoundingExtent] folds every footprint cell into the smallest enclosing
// [Extent], and an [Index] answers "which entity occupies this cell" in
// constant time. [ScanAt] is the linear-scan baseline the index is checked
// against.
//
// A Layout and an Index are never mutated after construction and may be
// shared by concurrent readers.
package layout

import (
	"fmt"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// Layout is the ordered entity collection of one blueprint.
type Layout struct {
	entities []*entity.Entity
}

// New creates a layout over entities. The slice is copied; the entities are
// shared.
func New(entities []*entity.Entity) *Layout {
	return &Layout{entities: append([]*entity.Entity(nil), entities...)}
}

// Entities returns the entities in blueprint order. Callers must not modify
// the returned slice.
func (l *Layout) Entities() []*entity.Entity { return l.entities }

// Len returns the number of entities.
func (l *Layout) Len() int { return len(l.entities) }

// IsEmpty reports whether the layout has no entities.
func (l *Layout) IsEmpty() bool { return len(l.entities) == 0 }

// Extent is an inclusive cell rectangle.
type Extent struct {
	MinX int `json:"min_x" yaml:"min_x" bson:"min_x"`
	MinY int `json:"min_y" yaml:"min_y" bson:"min_y"`
	MaxX int `json:"max_x" yaml:"max_x" bson:"max_x"`
	MaxY int `json:"max_y" yaml:"max_y" bson:"max_y"`
}

// Width returns the number of columns in e.
func (e Extent) Width() int { return e.MaxX - e.MinX + 1 }

// Height returns the number of rows in e.
func (e Extent) Height() int { return e.MaxY - e.MinY + 1 }

// Contains reports whether c lies inside e.
func (e Extent) Contains(c spatial.Cell) bool {
	return c.X >= e.MinX && c.X <= e.MaxX && c.Y >= e.MinY && c.Y <= e.MaxY
}

// Grow returns e expanded by n cells on every side.
func (e Extent) Grow(n int) Extent {
	return Extent{MinX: e.MinX - n, MinY: e.MinY - n, MaxX: e.MaxX + n, MaxY: e.MaxY + n}
}

func (e Extent) String() string {
	return fmt.Sprintf("[%d..%d]x[%d..%d]", e.MinX, e.MaxX, e.MinY, e.MaxY)
}

// BoundingExtent returns the smallest extent containing every footprint cell
// of every entity. Each axis is tracked independently. ok is false for an
// empty layout. Footprint errors abort the fold.
func BoundingExtent(l *Layout, cat *entity.Catalog) (ext Extent, ok bool, err error) {
	for _, e := range l.entities {
		cells, err := cat.Positions(e)
		if err != nil {
			return Extent{}, false, err
		}
		for _, c := range cells {
			if !ok {
				ext = Extent{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y}
				ok = true
				continue
			}
			ext.MinX = min(ext.MinX, c.X)
			ext.MinY = min(ext.MinY, c.Y)
			ext.MaxX = max(ext.MaxX, c.X)
			ext.MaxY = max(ext.MaxY, c.Y)
		}
	}
	return ext, ok, nil
}

// ScanAt returns the first entity in layout order whose footprint contains
// c, scanning every entity.
func ScanAt(l *Layout, cat *entity.Catalog, c spatial.Cell) (*entity.Entity, error) {
	for _, e := range l.entities {
		cells, err := cat.Positions(e)
		if err != nil {
			return nil, err
		}
		for _, fc := range cells {
			if fc == c {
				return e, nil
			}
		}
	}
	return nil, nil
}
