package gridmap

import (
	"strings"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/layout"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// Map glyphs.
const (
	GlyphWall   = '#'
	GlyphUnsafe = '!'
	GlyphBelt   = '='
	GlyphOther  = 'o'
	GlyphEmpty  = '.'
)

// Options configures both renderers.
type Options struct {
	// Catalog resolves footprints. Nil uses the built-in rules.
	Catalog *entity.Catalog

	// Unsafe lists the reachable entities to highlight.
	Unsafe []*entity.Entity

	// Margin adds empty cells around the extent.
	Margin int
}

type grid struct {
	idx    *layout.Index
	extent layout.Extent
	unsafe map[int]bool
}

func newGrid(l *layout.Layout, opts Options) (*grid, bool, error) {
	idx, err := layout.NewIndex(l, opts.Catalog)
	if err != nil {
		return nil, false, err
	}
	ext, ok := idx.Extent()
	if !ok {
		return nil, false, nil
	}
	g := &grid{idx: idx, extent: ext.Grow(max(opts.Margin, 0)), unsafe: make(map[int]bool, len(opts.Unsafe))}
	for _, e := range opts.Unsafe {
		g.unsafe[e.Number] = true
	}
	return g, true, nil
}

func (g *grid) glyph(c spatial.Cell) byte {
	e := g.idx.EntityAt(c)
	switch {
	case e == nil:
		return GlyphEmpty
	case entity.IsBlocking(e):
		return GlyphWall
	case g.unsafe[e.Number]:
		return GlyphUnsafe
	case entity.IsBeltlike(e.Kind):
		return GlyphBelt
	default:
		return GlyphOther
	}
}

// ToText renders l as rows of glyphs, top row first. An empty layout
// renders as the empty string.
func ToText(l *layout.Layout, opts Options) (string, error) {
	g, ok, err := newGrid(l, opts)
	if err != nil || !ok {
		return "", err
	}

	var b strings.Builder
	b.Grow((g.extent.Width() + 1) * g.extent.Height())
	for y := g.extent.MinY; y <= g.extent.MaxY; y++ {
		for x := g.extent.MinX; x <= g.extent.MaxX; x++ {
			b.WriteByte(g.glyph(spatial.Cell{X: x, Y: y}))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
