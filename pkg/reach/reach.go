package reach

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/layout"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// Options configures an analysis.
type Options struct {
	// Catalog supplies footprint rules beyond the built-in ones. Nil uses
	// the built-ins only.
	Catalog *entity.Catalog

	// Order selects the frontier discipline. Empty means OrderLIFO.
	Order Order

	// MaxArea caps the number of cells in the bounding extent. Zero means
	// no limit.
	MaxArea int
}

// DefaultMaxArea is the extent cap applied by callers that take untrusted
// blueprints. It admits a 2048x2048 layout.
const DefaultMaxArea = 1 << 22

// ErrExtentTooLarge is returned when the bounding extent exceeds
// Options.MaxArea.
var ErrExtentTooLarge = errors.New("reach: extent too large")

// cancelCheckInterval is how many cells are popped between context checks.
const cancelCheckInterval = 4096

// Result is the outcome of one analysis.
type Result struct {
	// Unsafe holds every reachable non-wall entity exactly once, sorted by
	// entity number.
	Unsafe []*entity.Entity

	// Extent is the bounding extent of the layout. Zero for empty layouts.
	Extent layout.Extent

	// Visited is the number of cells popped from the frontier.
	Visited int

	// Seeded is the number of edge cells the frontier started with.
	Seeded int
}

// Safe reports whether no entity is reachable.
func (r *Result) Safe() bool { return len(r.Unsafe) == 0 }

// FindUnprotected returns the entities of l reachable from outside, using
// the built-in footprint rules.
func FindUnprotected(l *layout.Layout) ([]*entity.Entity, error) {
	res, err := Analyze(l, Options{})
	if err != nil {
		return nil, err
	}
	return res.Unsafe, nil
}

// Analyze runs the flood fill over l.
func Analyze(l *layout.Layout, opts Options) (*Result, error) {
	return AnalyzeContext(context.Background(), l, opts)
}

// AnalyzeContext is Analyze with cancellation. The fill stops with
// ctx.Err() once ctx is done.
func AnalyzeContext(ctx context.Context, l *layout.Layout, opts Options) (*Result, error) {
	order, err := ParseOrder(string(opts.Order))
	if err != nil {
		return nil, err
	}
	if opts.MaxArea < 0 {
		return nil, fmt.Errorf("reach: negative max area %d", opts.MaxArea)
	}

	idx, err := layout.NewIndex(l, opts.Catalog)
	if err != nil {
		return nil, err
	}
	ext, ok := idx.Extent()
	if !ok {
		return &Result{}, nil
	}
	if opts.MaxArea > 0 {
		if area := int64(ext.Width()) * int64(ext.Height()); area > int64(opts.MaxArea) {
			return nil, fmt.Errorf("%w: %s covers %d cells, limit %d", ErrExtentTooLarge, ext, area, opts.MaxArea)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Extent: ext}
	visited := mapset.New[spatial.Cell]()
	todo := newFrontier(order)

	seed := func(c spatial.Cell) {
		if !visited.Has(c) {
			visited.Put(c)
			todo.push(c)
			res.Seeded++
		}
	}

	for x := ext.MinX; x <= ext.MaxX; x++ {
		seed(spatial.Cell{X: x, Y: ext.MinY})
		seed(spatial.Cell{X: x, Y: ext.MaxY})
		visited.Put(spatial.Cell{X: x, Y: ext.MinY - 1})
		visited.Put(spatial.Cell{X: x, Y: ext.MaxY + 1})
	}
	for y := ext.MinY; y <= ext.MaxY; y++ {
		if y != ext.MinY && y != ext.MaxY {
			seed(spatial.Cell{X: ext.MinX, Y: y})
			seed(spatial.Cell{X: ext.MaxX, Y: y})
		}
		visited.Put(spatial.Cell{X: ext.MinX - 1, Y: y})
		visited.Put(spatial.Cell{X: ext.MaxX + 1, Y: y})
	}

	touched := mapset.New[*entity.Entity]()
	for !todo.empty() {
		c := todo.pop()
		res.Visited++
		if res.Visited%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if e := idx.EntityAt(c); e != nil {
			if entity.IsBlocking(e) {
				continue
			}
			if !touched.Has(e) {
				touched.Put(e)
				res.Unsafe = append(res.Unsafe, e)
			}
		}

		for _, n := range spatial.Neighbours(c) {
			if !visited.Has(n) {
				visited.Put(n)
				todo.push(n)
			}
		}
	}

	slices.SortStableFunc(res.Unsafe, func(a, b *entity.Entity) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return res, nil
}
