package gridmap

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wallcheck/pkg/layout"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

var fill = map[byte]string{
	GlyphWall:   "#6b6b6b",
	GlyphUnsafe: "#e05252",
	GlyphBelt:   "#d9b44a",
	GlyphOther:  "#8fbf8f",
}

// ToDOT converts l to Graphviz DOT with one square node per occupied cell,
// pinned at its grid coordinate (y grows downward, so it is negated).
// Anchor cells are labelled with their entity number.
func ToDOT(l *layout.Layout, opts Options) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=square, style=filled, fixedsize=true, width=0.5, fontsize=10, penwidth=0.5, color=white];\n")

	g, ok, err := newGrid(l, opts)
	if err != nil {
		return "", err
	}
	if ok {
		for y := g.extent.MinY; y <= g.extent.MaxY; y++ {
			for x := g.extent.MinX; x <= g.extent.MaxX; x++ {
				c := spatial.Cell{X: x, Y: y}
				glyph := g.glyph(c)
				if glyph == GlyphEmpty {
					continue
				}
				label := ""
				if e := g.idx.EntityAt(c); e.Anchor() == c {
					label = strconv.Itoa(e.Number)
				}
				fmt.Fprintf(&buf, "  \"%d,%d\" [pos=\"%.1f,%.1f!\", fillcolor=%q, label=%q];\n",
					x, y, float64(x)*0.5, float64(-y)*0.5, fill[glyph], label)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG lays out dot with neato and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out dot with neato and returns a PNG image.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
