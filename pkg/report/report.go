// Package report turns an analysis result into a self-contained, storable
// record and encodes it as JSON, YAML or plain text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/layout"
	"github.com/matzehuels/wallcheck/pkg/reach"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// EntityRef identifies one reachable entity.
type EntityRef struct {
	Number    int              `json:"number" yaml:"number" bson:"number"`
	Name      string           `json:"name" yaml:"name" bson:"name"`
	Position  spatial.Position `json:"position" yaml:"position" bson:"position"`
	Direction string           `json:"direction" yaml:"direction" bson:"direction"`
}

// Report is the stored outcome of analyzing one blueprint.
type Report struct {
	ID            string         `json:"id" yaml:"id" bson:"_id"`
	BlueprintHash string         `json:"blueprint_hash" yaml:"blueprint_hash" bson:"blueprint_hash"`
	Label         string         `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
	EntityCount   int            `json:"entity_count" yaml:"entity_count" bson:"entity_count"`
	Unsafe        []EntityRef    `json:"unsafe" yaml:"unsafe" bson:"unsafe"`
	Extent        *layout.Extent `json:"extent,omitempty" yaml:"extent,omitempty" bson:"extent,omitempty"`
	Visited       int            `json:"visited" yaml:"visited" bson:"visited"`
	Seeded        int            `json:"seeded" yaml:"seeded" bson:"seeded"`
	Order         string         `json:"order" yaml:"order" bson:"order"`
	CreatedAt     time.Time      `json:"created_at" yaml:"created_at" bson:"created_at"`
	Duration      time.Duration  `json:"duration_ns" yaml:"duration" bson:"duration_ns"`
}

// Input bundles what New needs besides the result.
type Input struct {
	BlueprintHash string
	Label         string
	EntityCount   int
	Order         reach.Order
	Duration      time.Duration
}

// New builds a report with a fresh ID.
func New(in Input, res *reach.Result) *Report {
	r := &Report{
		ID:            uuid.NewString(),
		BlueprintHash: in.BlueprintHash,
		Label:         in.Label,
		EntityCount:   in.EntityCount,
		Unsafe:        Refs(res.Unsafe),
		Visited:       res.Visited,
		Seeded:        res.Seeded,
		Order:         string(in.Order),
		CreatedAt:     time.Now().UTC(),
		Duration:      in.Duration,
	}
	if in.EntityCount > 0 {
		ext := res.Extent
		r.Extent = &ext
	}
	return r
}

// Refs converts entities to references, preserving order.
func Refs(entities []*entity.Entity) []EntityRef {
	refs := make([]EntityRef, len(entities))
	for i, e := range entities {
		refs[i] = EntityRef{
			Number:    e.Number,
			Name:      e.Name(),
			Position:  e.Position,
			Direction: e.Direction.String(),
		}
	}
	return refs
}

// Safe reports whether nothing is reachable.
func (r *Report) Safe() bool { return len(r.Unsafe) == 0 }

// UnsafeNumbers returns the entity numbers of the unsafe entities.
func (r *Report) UnsafeNumbers() []int {
	out := make([]int, len(r.Unsafe))
	for i, u := range r.Unsafe {
		out[i] = u.Number
	}
	return out
}

// EncodeJSON writes r as indented JSON.
func EncodeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// DecodeJSON reads a report written by EncodeJSON or json.Marshal.
func DecodeJSON(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if r.Unsafe == nil {
		r.Unsafe = []EntityRef{}
	}
	return &r, nil
}

// EncodeYAML writes r as YAML.
func EncodeYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// EncodeText writes a plain summary followed by one line per unsafe entity.
func EncodeText(w io.Writer, r *Report) error {
	if r.Label != "" {
		fmt.Fprintf(w, "blueprint: %s\n", r.Label)
	}
	fmt.Fprintf(w, "entities:  %d\n", r.EntityCount)
	if r.Extent != nil {
		fmt.Fprintf(w, "extent:    %s\n", r.Extent)
	}
	if r.Safe() {
		_, err := fmt.Fprintln(w, "Bug freedom achieved!")
		return err
	}

	fmt.Fprintf(w, "unsafe:    %d\n\n", len(r.Unsafe))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPOSITION\tDIRECTION")
	for _, u := range r.Unsafe {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.Number, u.Name, u.Position, u.Direction)
	}
	return tw.Flush()
}
