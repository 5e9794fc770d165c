package layout

import (
	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// Index maps every occupied cell of a layout to its entity.
type Index struct {
	cells  map[spatial.Cell]*entity.Entity
	extent Extent
	empty  bool
}

// NewIndex resolves every footprint once and builds the cell map. If two
// footprints overlap, the entity earlier in layout order keeps the cell.
func NewIndex(l *Layout, cat *entity.Catalog) (*Index, error) {
	idx := &Index{cells: make(map[spatial.Cell]*entity.Entity), empty: true}
	for _, e := range l.entities {
		cells, err := cat.Positions(e)
		if err != nil {
			return nil, err
		}
		for _, c := range cells {
			if _, taken := idx.cells[c]; !taken {
				idx.cells[c] = e
			}
			if idx.empty {
				idx.extent = Extent{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y}
				idx.empty = false
				continue
			}
			idx.extent.MinX = min(idx.extent.MinX, c.X)
			idx.extent.MinY = min(idx.extent.MinY, c.Y)
			idx.extent.MaxX = max(idx.extent.MaxX, c.X)
			idx.extent.MaxY = max(idx.extent.MaxY, c.Y)
		}
	}
	return idx, nil
}

// EntityAt returns the entity occupying c, or nil.
func (idx *Index) EntityAt(c spatial.Cell) *entity.Entity {
	return idx.cells[c]
}

// Extent returns the bounding extent of all indexed cells. ok is false when
// nothing is indexed.
func (idx *Index) Extent() (Extent, bool) {
	return idx.extent, !idx.empty
}

// Occupied returns the number of occupied cells.
func (idx *Index) Occupied() int { return len(idx.cells) }
