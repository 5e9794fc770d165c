package gridmap

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/layout"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

func at(n int, x, y float64, k entity.Kind) *entity.Entity {
	return &entity.Entity{Number: n, Position: spatial.Position{X: x, Y: y}, Kind: k}
}

func sample() (*layout.Layout, []*entity.Entity) {
	belt := at(4, 2.5, 0.5, entity.TransportBelt{})
	l := layout.New([]*entity.Entity{
		at(1, 0.5, 0.5, entity.Wall{}),
		at(2, 1.5, 0.5, entity.Wall{}),
		belt,
		at(5, 1.5, 1.5, entity.TransportBelt{}),
		at(6, 0.5, 2.5, entity.Wall{}),
	})
	return l, []*entity.Entity{belt}
}

func TestToText(t *testing.T) {
	l, unsafe := sample()

	got, err := ToText(l, Options{Unsafe: unsafe})
	if err != nil {
		t.Fatal(err)
	}
	want := "##!\n" +
		".=.\n" +
		"#..\n"
	if got != want {
		t.Errorf("ToText() =\n%s\nwant\n%s", got, want)
	}
}

func TestToTextGlyphs(t *testing.T) {
	l := layout.New([]*entity.Entity{
		at(1, 0.5, 0.5, entity.Wall{}),
		at(2, 1.5, 0.5, entity.TransportBelt{}),
		at(3, 2.5, 0.5, entity.UndergroundBelt{Type: "input"}),
		at(4, 3.5, 0.5, entity.FilterInserter{}),
		at(5, 4.5, 0.5, entity.TransportBelt{}),
	})
	got, err := ToText(l, Options{Unsafe: []*entity.Entity{l.Entities()[4]}})
	if err != nil {
		t.Fatal(err)
	}
	if want := "#==o!\n"; got != want {
		t.Errorf("ToText() = %q, want %q", got, want)
	}
}

func TestToTextMargin(t *testing.T) {
	l, _ := sample()
	got, err := ToText(l, Options{Margin: 1})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 5 || len(lines[0]) != 5 {
		t.Fatalf("margin map is %dx%d, want 5x5:\n%s", len(lines[0]), len(lines), got)
	}
	if lines[0] != "....." {
		t.Errorf("top margin row = %q", lines[0])
	}
}

func TestToTextEmpty(t *testing.T) {
	got, err := ToText(layout.New(nil), Options{})
	if err != nil || got != "" {
		t.Errorf("ToText(empty) = %q, %v", got, err)
	}
}

func TestToTextUnsupported(t *testing.T) {
	l := layout.New([]*entity.Entity{at(1, 0.5, 0.5, entity.Unknown{Prototype: "radar"})})
	if _, err := ToText(l, Options{}); err == nil {
		t.Error("expected footprint error")
	}
}

func TestToDOT(t *testing.T) {
	l, unsafe := sample()
	dot, err := ToDOT(l, Options{Unsafe: unsafe})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"graph G {",
		`"2,0" [pos="1.0,0.0!", fillcolor="#e05252", label="4"]`,
		`"0,0" [pos="0.0,0.0!", fillcolor="#6b6b6b", label="1"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"1,2"`) {
		t.Error("empty cells should not become nodes")
	}
}

func TestRenderSVG(t *testing.T) {
	l, unsafe := sample()
	dot, err := ToDOT(l, Options{Unsafe: unsafe})
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}
