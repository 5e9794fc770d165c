// Package pipeline provides the decode → analyze → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// A run has three stages:
//
//  1. Decode: read the exchange string (inline or fetched from a URL) into a
//     blueprint
//  2. Analyze: flood-fill the layout and build a report
//  3. Render: encode the report or draw the map in the requested formats
//
// Reports are cached by blueprint content and analysis options, so running
// the same blueprint twice skips the flood fill. Decoding always runs because
// rendering needs the layout.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, st, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Blueprint: exchangeString,
//	    Formats:   []string{pipeline.FormatJSON},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wallcheck/pkg/blueprint"
	"github.com/matzehuels/wallcheck/pkg/cache"
	"github.com/matzehuels/wallcheck/pkg/entity"
	wcerrors "github.com/matzehuels/wallcheck/pkg/errors"
	"github.com/matzehuels/wallcheck/pkg/reach"
	"github.com/matzehuels/wallcheck/pkg/report"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatMap  = "map"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML, FormatMap, FormatDOT, FormatSVG, FormatPNG}

// FetchTTL bounds how long a downloaded exchange string is reused.
const FetchTTL = time.Hour

// Options configures one pipeline run.
type Options struct {
	// Input: exactly one of Blueprint and URL.
	Blueprint string `json:"blueprint,omitempty"`
	URL       string `json:"url,omitempty"`

	// Analysis options
	Order      string `json:"order,omitempty"`
	Directions string `json:"direction_encoding,omitempty"`

	// Output options
	Formats []string `json:"formats,omitempty"`
	Margin  int      `json:"margin,omitempty"`

	// Save stores the report in the runner's store.
	Save bool `json:"save,omitempty"`

	// Refresh bypasses cached reports and downloads.
	Refresh bool `json:"refresh,omitempty"`

	// MaxArea caps the bounding extent in cells. Zero means
	// reach.DefaultMaxArea.
	MaxArea int `json:"-"`

	// Runtime options (not serialized)
	Catalog    *entity.Catalog `json:"-"`
	Logger     *log.Logger     `json:"-"`
	HTTPClient *http.Client    `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Report is the analysis outcome.
	Report *report.Report

	// Blueprint is the decoded input.
	Blueprint *blueprint.Blueprint

	// Unsafe are the reachable entities of Blueprint, sorted by number.
	Unsafe []*entity.Entity

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount int
	UnsafeCount int
	DecodeTime  time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // downloaded string came from cache
	ReportHit bool // report came from cache, analysis skipped
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return wcerrors.New(wcerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the input and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	switch {
	case o.Blueprint == "" && o.URL == "":
		return wcerrors.New(wcerrors.ErrCodeInvalidInput, "blueprint or url is required")
	case o.Blueprint != "" && o.URL != "":
		return wcerrors.New(wcerrors.ErrCodeInvalidInput, "blueprint and url are mutually exclusive")
	case o.Blueprint != "":
		if err := wcerrors.ValidateBlueprintString(o.Blueprint); err != nil {
			return err
		}
	default:
		if err := wcerrors.ValidateURL(o.URL); err != nil {
			return err
		}
	}

	order, err := reach.ParseOrder(o.Order)
	if err != nil {
		return wcerrors.Wrap(wcerrors.ErrCodeInvalidInput, err, "invalid order")
	}
	o.Order = string(order)

	enc, err := blueprint.ParseDirectionEncoding(o.Directions)
	if err != nil {
		return wcerrors.Wrap(wcerrors.ErrCodeInvalidInput, err, "invalid direction encoding")
	}
	o.Directions = string(enc)

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Margin < 0 {
		return wcerrors.New(wcerrors.ErrCodeInvalidInput, "margin cannot be negative")
	}
	switch {
	case o.MaxArea < 0:
		return wcerrors.New(wcerrors.ErrCodeInvalidInput, "max area cannot be negative")
	case o.MaxArea == 0:
		o.MaxArea = reach.DefaultMaxArea
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ReportKeyOpts returns the cache key options for the report.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	var fps []string
	for _, r := range o.Catalog.Rules() {
		fps = append(fps, fmt.Sprintf("%s%v", r.Name, r.Offsets))
	}
	return cache.ReportKeyOpts{
		Order:      o.Order,
		Directions: o.Directions,
		Footprints: fps,
	}
}
