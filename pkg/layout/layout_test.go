package layout

import (
	"errors"
	"testing"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

func place(n int, x, y float64, k entity.Kind) *entity.Entity {
	return &entity.Entity{Number: n, Position: spatial.Position{X: x, Y: y}, Kind: k}
}

func sample() *Layout {
	return New([]*entity.Entity{
		place(1, 0.5, 0.5, entity.TransportBelt{}),
		place(2, 4.5, 2.5, entity.AssemblingMachine{Tier: 1}),
		place(3, -2.5, 1.5, entity.Wall{}),
	})
}

func TestBoundingExtent(t *testing.T) {
	ext, ok, err := BoundingExtent(sample(), nil)
	if err != nil {
		t.Fatalf("BoundingExtent() error: %v", err)
	}
	if !ok {
		t.Fatal("BoundingExtent() ok = false for non-empty layout")
	}
	want := Extent{MinX: -3, MinY: 0, MaxX: 5, MaxY: 3}
	if ext != want {
		t.Errorf("BoundingExtent() = %v, want %v", ext, want)
	}
	if ext.Width() != 9 || ext.Height() != 4 {
		t.Errorf("Width/Height = %d/%d, want 9/4", ext.Width(), ext.Height())
	}
}

func TestBoundingExtentEmpty(t *testing.T) {
	_, ok, err := BoundingExtent(New(nil), nil)
	if err != nil {
		t.Fatalf("BoundingExtent() error: %v", err)
	}
	if ok {
		t.Error("BoundingExtent() ok = true for empty layout")
	}
}

func TestBoundingExtentUnsupported(t *testing.T) {
	l := New([]*entity.Entity{place(1, 0, 0.5, entity.Splitter{})})
	if _, _, err := BoundingExtent(l, nil); !errors.Is(err, entity.ErrUnsupportedVariant) {
		t.Errorf("BoundingExtent() error = %v, want ErrUnsupportedVariant", err)
	}
}

func TestIndexMatchesScan(t *testing.T) {
	l := sample()
	idx, err := NewIndex(l, nil)
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}

	ext, _ := idx.Extent()
	for y := ext.MinY - 1; y <= ext.MaxY+1; y++ {
		for x := ext.MinX - 1; x <= ext.MaxX+1; x++ {
			c := spatial.Cell{X: x, Y: y}
			want, err := ScanAt(l, nil, c)
			if err != nil {
				t.Fatalf("ScanAt(%v) error: %v", c, err)
			}
			if got := idx.EntityAt(c); got != want {
				t.Errorf("EntityAt(%v) = %v, ScanAt = %v", c, got, want)
			}
		}
	}

	if idx.Occupied() != 11 {
		t.Errorf("Occupied() = %d, want 11", idx.Occupied())
	}
}

func TestIndexExtentMatchesBoundingExtent(t *testing.T) {
	l := sample()
	idx, err := NewIndex(l, nil)
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	got, ok := idx.Extent()
	want, _, _ := BoundingExtent(l, nil)
	if !ok || got != want {
		t.Errorf("Index.Extent() = %v, %v; want %v", got, ok, want)
	}
}

func TestIndexOverlapKeepsFirst(t *testing.T) {
	first := place(1, 1.5, 1.5, entity.TransportBelt{})
	second := place(2, 1.5, 1.5, entity.Wall{})
	idx, err := NewIndex(New([]*entity.Entity{first, second}), nil)
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	if got := idx.EntityAt(spatial.Cell{X: 1, Y: 1}); got != first {
		t.Errorf("EntityAt() = %v, want first entity", got)
	}
}

func TestExtentHelpers(t *testing.T) {
	e := Extent{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	if !e.Contains(spatial.Cell{X: 2, Y: 0}) || e.Contains(spatial.Cell{X: 3, Y: 0}) {
		t.Error("Contains() wrong at the right edge")
	}
	g := e.Grow(1)
	if g != (Extent{MinX: -1, MinY: -1, MaxX: 3, MaxY: 3}) {
		t.Errorf("Grow(1) = %v", g)
	}
}
