package blueprint

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/layout"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// VersionByte is the only supported exchange-string version prefix.
const VersionByte = '0'

// DefaultMaxInflated caps the decompressed payload size.
const DefaultMaxInflated = 64 << 20

// MaxCoordinate bounds the absolute value of entity position components.
const MaxCoordinate = 1 << 20

var (
	// ErrInvalidBlueprint wraps every malformed-input failure.
	ErrInvalidBlueprint = errors.New("invalid blueprint")

	// ErrUnsupportedVersion is returned for an unknown version byte.
	ErrUnsupportedVersion = errors.New("unsupported blueprint version")

	// ErrBlueprintBook is returned when the string holds a blueprint book.
	ErrBlueprintBook = errors.New("blueprint books are not supported")
)

// Blueprint is a decoded blueprint.
type Blueprint struct {
	Label    string
	Version  int64
	Entities []*entity.Entity
}

// Layout returns the blueprint's entities as a layout.
func (b *Blueprint) Layout() *layout.Layout {
	return layout.New(b.Entities)
}

// Options configures decoding.
type Options struct {
	Directions  DirectionEncoding
	MaxInflated int64 // zero means DefaultMaxInflated
}

type document struct {
	Blueprint     *payload        `json:"blueprint,omitempty"`
	BlueprintBook json.RawMessage `json:"blueprint_book,omitempty"`
}

type payload struct {
	Item     string   `json:"item,omitempty"`
	Label    string   `json:"label,omitempty"`
	Version  int64    `json:"version,omitempty"`
	Entities []record `json:"entities"`
}

type record struct {
	EntityNumber   int              `json:"entity_number"`
	Name           string           `json:"name"`
	Position       spatial.Position `json:"position"`
	Direction      int              `json:"direction,omitempty"`
	Recipe         string           `json:"recipe,omitempty"`
	Type           string           `json:"type,omitempty"`
	Filters        []entity.Filter  `json:"filters,omitempty"`
	Filter         string           `json:"filter,omitempty"`
	InputPriority  string           `json:"input_priority,omitempty"`
	OutputPriority string           `json:"output_priority,omitempty"`
}

// Decode parses an exchange string.
func Decode(s string, opts Options) (*Blueprint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidBlueprint)
	}
	if s[0] != VersionByte {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedVersion, s[0])
	}

	compressed, err := base64.StdEncoding.DecodeString(s[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrInvalidBlueprint, err)
	}

	data, err := inflate(compressed, opts.MaxInflated)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(data, opts)
}

// DecodeJSON parses the inflated JSON document.
func DecodeJSON(data []byte, opts Options) (*Blueprint, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile blueprint schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidBlueprint, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidBlueprint, err)
	}
	if doc.Blueprint == nil {
		return nil, ErrBlueprintBook
	}

	bp := &Blueprint{
		Label:    doc.Blueprint.Label,
		Version:  doc.Blueprint.Version,
		Entities: make([]*entity.Entity, 0, len(doc.Blueprint.Entities)),
	}
	seen := make(map[int]bool, len(doc.Blueprint.Entities))
	for _, r := range doc.Blueprint.Entities {
		if seen[r.EntityNumber] {
			return nil, fmt.Errorf("%w: duplicate entity_number %d", ErrInvalidBlueprint, r.EntityNumber)
		}
		seen[r.EntityNumber] = true

		e, err := r.toEntity(opts.Directions)
		if err != nil {
			return nil, fmt.Errorf("%w: entity %d: %v", ErrInvalidBlueprint, r.EntityNumber, err)
		}
		bp.Entities = append(bp.Entities, e)
	}
	return bp, nil
}

func inflate(compressed []byte, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxInflated
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrInvalidBlueprint, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrInvalidBlueprint, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidBlueprint, limit)
	}
	return data, nil
}

func (r record) toEntity(enc DirectionEncoding) (*entity.Entity, error) {
	if !validCoordinate(r.Position.X) || !validCoordinate(r.Position.Y) {
		return nil, fmt.Errorf("position %v out of range (limit ±%d)", r.Position, MaxCoordinate)
	}
	dir, err := enc.decode(r.Direction)
	if err != nil {
		return nil, err
	}
	return &entity.Entity{
		Number:    r.EntityNumber,
		Position:  r.Position,
		Direction: dir,
		Kind:      r.kind(),
	}, nil
}

func validCoordinate(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= MaxCoordinate
}

func (r record) kind() entity.Kind {
	switch r.Name {
	case entity.NameTransportBelt:
		return entity.TransportBelt{}
	case entity.NameUndergroundBelt:
		return entity.UndergroundBelt{Type: r.Type}
	case entity.NameFilterInserter:
		return entity.FilterInserter{Filters: r.Filters}
	case entity.NameStoneWall:
		return entity.Wall{}
	case entity.NameElectricFurnace:
		return entity.ElectricFurnace{}
	case entity.NameChemicalPlant:
		return entity.ChemicalPlant{Recipe: r.Recipe}
	case entity.NameSplitter:
		return entity.Splitter{Filter: r.Filter, InputPriority: r.InputPriority, OutputPriority: r.OutputPriority}
	}
	if tier, ok := entity.ParseAssemblingTier(r.Name); ok {
		return entity.AssemblingMachine{Tier: tier, Recipe: r.Recipe}
	}
	return entity.Unknown{Prototype: r.Name}
}
