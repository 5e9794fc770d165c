package entity

import (
	"errors"
	"testing"

	"github.com/matzehuels/wallcheck/pkg/spatial"
)

func at(x, y float64, k Kind) *Entity {
	return &Entity{Number: 1, Position: spatial.Position{X: x, Y: y}, Kind: k}
}

func TestPositionsSingleCell(t *testing.T) {
	kinds := []Kind{TransportBelt{}, UndergroundBelt{Type: "input"}, FilterInserter{}, Wall{}}
	for _, k := range kinds {
		t.Run(k.Name(), func(t *testing.T) {
			cells, err := Positions(at(2.5, 3.5, k))
			if err != nil {
				t.Fatalf("Positions() error: %v", err)
			}
			if len(cells) != 1 || cells[0] != (spatial.Cell{X: 2, Y: 3}) {
				t.Errorf("Positions() = %v, want [(2, 3)]", cells)
			}
		})
	}
}

func TestPositionsBlock(t *testing.T) {
	kinds := []Kind{AssemblingMachine{Tier: 2, Recipe: "gear"}, ElectricFurnace{}, ChemicalPlant{Recipe: "plastic"}}
	for _, k := range kinds {
		t.Run(k.Name(), func(t *testing.T) {
			cells, err := Positions(at(5.5, 5.5, k))
			if err != nil {
				t.Fatalf("Positions() error: %v", err)
			}
			if len(cells) != 9 {
				t.Fatalf("Positions() returned %d cells, want 9", len(cells))
			}
			for _, c := range cells {
				if c.X < 4 || c.X > 6 || c.Y < 4 || c.Y > 6 {
					t.Errorf("cell %v outside the 3x3 block around (5, 5)", c)
				}
			}
		})
	}
}

func TestPositionsUnsupported(t *testing.T) {
	for _, k := range []Kind{Splitter{}, Unknown{Prototype: "rocket-silo"}} {
		t.Run(k.Name(), func(t *testing.T) {
			e := at(1, 1.5, k)
			e.Number = 7
			_, err := Positions(e)
			if !errors.Is(err, ErrUnsupportedVariant) {
				t.Fatalf("Positions() error = %v, want ErrUnsupportedVariant", err)
			}
			var uv *UnsupportedVariantError
			if !errors.As(err, &uv) {
				t.Fatal("error should be an *UnsupportedVariantError")
			}
			if uv.Number != 7 || uv.Name != k.Name() {
				t.Errorf("UnsupportedVariantError = %+v", uv)
			}
		})
	}
}

func TestCatalogRuleRotates(t *testing.T) {
	cat, err := NewCatalog(FootprintRule{
		Name:    NameSplitter,
		Offsets: []spatial.Cell{{X: -1, Y: 0}, {X: 0, Y: 0}},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}

	north := at(4, 2.5, Splitter{})
	cells, err := cat.Positions(north)
	if err != nil {
		t.Fatalf("Positions() error: %v", err)
	}
	want := []spatial.Cell{{X: 3, Y: 2}, {X: 4, Y: 2}}
	if len(cells) != 2 || cells[0] != want[0] || cells[1] != want[1] {
		t.Errorf("north Positions() = %v, want %v", cells, want)
	}

	east := at(4.5, 2, Splitter{})
	east.Direction = spatial.East
	cells, err = cat.Positions(east)
	if err != nil {
		t.Fatalf("Positions() error: %v", err)
	}
	want = []spatial.Cell{{X: 4, Y: 1}, {X: 4, Y: 2}}
	if len(cells) != 2 || cells[0] != want[0] || cells[1] != want[1] {
		t.Errorf("east Positions() = %v, want %v", cells, want)
	}
}

func TestCatalogBuiltinsWithoutRule(t *testing.T) {
	cat, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}
	cells, err := cat.Positions(at(0.5, 0.5, ChemicalPlant{}))
	if err != nil || len(cells) != 9 {
		t.Errorf("Positions() = %v, %v; want 9 cells", cells, err)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name  string
		rules []FootprintRule
	}{
		{"missing name", []FootprintRule{{Offsets: []spatial.Cell{{}}}}},
		{"no offsets", []FootprintRule{{Name: "splitter"}}},
		{"duplicate", []FootprintRule{
			{Name: "splitter", Offsets: []spatial.Cell{{}}},
			{Name: "splitter", Offsets: []spatial.Cell{{}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.rules...); err == nil {
				t.Error("NewCatalog() should fail")
			}
		})
	}
}

func TestIsBlocking(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{Wall{}, true},
		{TransportBelt{}, false},
		{AssemblingMachine{Tier: 1}, false},
		{Splitter{}, false},
		{Unknown{Prototype: "gate"}, false},
	}
	for _, tt := range tests {
		if got := IsBlocking(at(0, 0, tt.kind)); got != tt.want {
			t.Errorf("IsBlocking(%s) = %v, want %v", tt.kind.Name(), got, tt.want)
		}
	}
}

func TestIsBeltlike(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{TransportBelt{}, true},
		{UndergroundBelt{Type: "output"}, true},
		{Splitter{}, true},
		{FilterInserter{}, false},
		{Wall{}, false},
		{Unknown{Prototype: "fast-transport-belt"}, false},
	}
	for _, tt := range tests {
		if got := IsBeltlike(tt.kind); got != tt.want {
			t.Errorf("IsBeltlike(%s) = %v, want %v", tt.kind.Name(), got, tt.want)
		}
	}
}

func TestParseAssemblingTier(t *testing.T) {
	tests := []struct {
		name string
		tier int
		ok   bool
	}{
		{"assembling-machine-1", 1, true},
		{"assembling-machine-3", 3, true},
		{"assembling-machine-0", 0, false},
		{"assembling-machine-2x", 0, false},
		{"chemical-plant", 0, false},
	}
	for _, tt := range tests {
		tier, ok := ParseAssemblingTier(tt.name)
		if tier != tt.tier || ok != tt.ok {
			t.Errorf("ParseAssemblingTier(%q) = %d, %v; want %d, %v", tt.name, tier, ok, tt.tier, tt.ok)
		}
	}
	if (AssemblingMachine{}).Name() != "assembling-machine-1" {
		t.Error("zero-tier machine should report tier 1")
	}
}
