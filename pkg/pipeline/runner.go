package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wallcheck/pkg/blueprint"
	"github.com/matzehuels/wallcheck/pkg/cache"
	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/observability"
	"github.com/matzehuels/wallcheck/pkg/reach"
	"github.com/matzehuels/wallcheck/pkg/report"
	"github.com/matzehuels/wallcheck/pkg/store"
)

// Runner encapsulates pipeline execution with caching and storage.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	// TTL applies to cached reports. Zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner. Nil arguments fall back to a NullCache, a
// DefaultKeyer, a NullStore and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if st == nil {
		st = store.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Execute runs the complete decode → analyze → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Decode
	decodeStart := time.Now()
	raw, fetchHit, err := r.input(ctx, opts)
	if err != nil {
		return nil, classify("fetch", err)
	}
	result.CacheInfo.FetchHit = fetchHit

	bp, err := r.Decode(ctx, raw, opts)
	if err != nil {
		return nil, classify("decode", err)
	}
	result.Blueprint = bp
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.EntityCount = len(bp.Entities)

	logger.Info("decoded blueprint",
		"label", bp.Label,
		"entities", len(bp.Entities),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	rep, hit, err := r.AnalyzeWithCacheInfo(ctx, bp, cache.Hash([]byte(raw)), opts)
	if err != nil {
		return nil, classify("analyze", err)
	}
	result.Report = rep
	result.Unsafe = resolveUnsafe(bp, rep)
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.UnsafeCount = len(rep.Unsafe)
	result.CacheInfo.ReportHit = hit

	logger.Info("analyzed layout",
		"unsafe", len(rep.Unsafe),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	if opts.Save {
		if err := r.Store.Save(ctx, rep); err != nil {
			return nil, classify("save", err)
		}
		logger.Debug("saved report", "id", rep.ID)
	}

	// Stage 3: Render
	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, err := Render(ctx, result, format, opts)
		if err != nil {
			return nil, classify("render", err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// input returns the exchange string, downloading it when opts.URL is set.
func (r *Runner) input(ctx context.Context, opts Options) (string, bool, error) {
	if opts.URL == "" {
		return opts.Blueprint, false, nil
	}

	key := r.Keyer.FetchKey(opts.URL)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "fetch")
			return string(data), true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "fetch")
	}

	s, err := blueprint.Fetch(ctx, opts.HTTPClient, opts.URL)
	if err != nil {
		return "", false, err
	}
	if err := r.Cache.Set(ctx, key, []byte(s), FetchTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "fetch", len(s))
	}
	return s, false, nil
}

// Decode parses an exchange string with the direction encoding from opts.
func (r *Runner) Decode(ctx context.Context, raw string, opts Options) (*blueprint.Blueprint, error) {
	hooks := observability.Analysis()
	hooks.OnDecodeStart(ctx, len(raw))
	start := time.Now()

	bp, err := blueprint.Decode(raw, blueprint.Options{Directions: blueprint.DirectionEncoding(opts.Directions)})

	n := 0
	if bp != nil {
		n = len(bp.Entities)
	}
	hooks.OnDecodeComplete(ctx, n, time.Since(start), err)
	return bp, err
}

// AnalyzeWithCacheInfo returns the report for bp, reusing a cached one when
// possible. blueprintHash identifies the exchange string.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, bp *blueprint.Blueprint, blueprintHash string, opts Options) (*report.Report, bool, error) {
	key := r.Keyer.ReportKey(blueprintHash, opts.ReportKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if rep, err := report.DecodeJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return rep, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	rep, err := r.Analyze(ctx, bp, blueprintHash, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := jsonReport(rep); err == nil {
		ttl := r.TTL
		if ttl == 0 {
			ttl = cache.DefaultTTL
		}
		if err := r.Cache.Set(ctx, key, data, ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		} else {
			r.Logger.Warn("cache write failed", "err", err)
		}
	}
	return rep, false, nil
}

// Analyze runs the flood fill without consulting the cache.
func (r *Runner) Analyze(ctx context.Context, bp *blueprint.Blueprint, blueprintHash string, opts Options) (*report.Report, error) {
	hooks := observability.Analysis()
	hooks.OnAnalyzeStart(ctx, len(bp.Entities))
	start := time.Now()

	order := reach.Order(opts.Order)
	res, err := reach.AnalyzeContext(ctx, bp.Layout(), reach.Options{
		Catalog: opts.Catalog,
		Order:   order,
		MaxArea: opts.MaxArea,
	})
	elapsed := time.Since(start)

	unsafe := 0
	if res != nil {
		unsafe = len(res.Unsafe)
	}
	hooks.OnAnalyzeComplete(ctx, unsafe, elapsed, err)
	if err != nil {
		return nil, err
	}

	return report.New(report.Input{
		BlueprintHash: blueprintHash,
		Label:         bp.Label,
		EntityCount:   len(bp.Entities),
		Order:         order,
		Duration:      elapsed,
	}, res), nil
}

// resolveUnsafe maps report entries back to the decoded entities.
func resolveUnsafe(bp *blueprint.Blueprint, rep *report.Report) []*entity.Entity {
	byNumber := make(map[int]*entity.Entity, len(bp.Entities))
	for _, e := range bp.Entities {
		byNumber[e.Number] = e
	}
	out := make([]*entity.Entity, 0, len(rep.Unsafe))
	for _, u := range rep.Unsafe {
		if e, ok := byNumber[u.Number]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Store != nil {
		errs = append(errs, r.Store.Close())
	}
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("close runner: %w", err)
		}
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
