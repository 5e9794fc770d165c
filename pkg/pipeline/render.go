package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/wallcheck/pkg/observability"
	"github.com/matzehuels/wallcheck/pkg/render/gridmap"
	"github.com/matzehuels/wallcheck/pkg/report"
)

// Render produces one artifact for a completed run.
func Render(ctx context.Context, res *Result, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	hooks := observability.Analysis()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := render(ctx, res, format, opts)

	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func render(ctx context.Context, res *Result, format string, opts Options) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatText:
		err := report.EncodeText(&buf, res.Report)
		return buf.Bytes(), err
	case FormatJSON:
		err := report.EncodeJSON(&buf, res.Report)
		return buf.Bytes(), err
	case FormatYAML:
		err := report.EncodeYAML(&buf, res.Report)
		return buf.Bytes(), err
	}

	mapOpts := gridmap.Options{Catalog: opts.Catalog, Unsafe: res.Unsafe, Margin: opts.Margin}
	l := res.Blueprint.Layout()

	if format == FormatMap {
		s, err := gridmap.ToText(l, mapOpts)
		return []byte(s), err
	}

	dot, err := gridmap.ToDOT(l, mapOpts)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return gridmap.RenderSVG(ctx, dot)
	case FormatPNG:
		return gridmap.RenderPNG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// jsonReport is the cache encoding of a report.
func jsonReport(r *report.Report) ([]byte, error) {
	return json.Marshal(r)
}
