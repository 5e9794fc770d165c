package blueprint

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/matzehuels/wallcheck/pkg/entity"
)

// Encode produces an exchange string for bp. Unknown kinds keep their
// prototype name and lose any kind-specific fields.
func Encode(bp *Blueprint, enc DirectionEncoding) (string, error) {
	data, err := EncodeJSON(bp, enc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("zlib: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("zlib: %w", err)
	}

	return string(VersionByte) + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeJSON produces the inflated JSON document for bp.
func EncodeJSON(bp *Blueprint, enc DirectionEncoding) ([]byte, error) {
	p := payload{
		Item:     "blueprint",
		Label:    bp.Label,
		Version:  bp.Version,
		Entities: make([]record, len(bp.Entities)),
	}
	for i, e := range bp.Entities {
		p.Entities[i] = toRecord(e, enc)
	}
	return json.Marshal(document{Blueprint: &p})
}

func toRecord(e *entity.Entity, enc DirectionEncoding) record {
	r := record{
		EntityNumber: e.Number,
		Name:         e.Name(),
		Position:     e.Position,
		Direction:    enc.encode(e.Direction),
	}
	switch k := e.Kind.(type) {
	case entity.UndergroundBelt:
		r.Type = k.Type
	case entity.FilterInserter:
		r.Filters = k.Filters
	case entity.AssemblingMachine:
		r.Recipe = k.Recipe
	case entity.ChemicalPlant:
		r.Recipe = k.Recipe
	case entity.Splitter:
		r.Filter = k.Filter
		r.InputPriority = k.InputPriority
		r.OutputPriority = k.OutputPriority
	}
	return r
}
