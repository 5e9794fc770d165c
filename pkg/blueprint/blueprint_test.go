package blueprint

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/wallcheck/pkg/entity"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

func exchange(t *testing.T, doc string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return "0" + base64.StdEncoding.EncodeToString(buf.Bytes())
}

const sample = `{"blueprint": {"item": "blueprint", "label": "smelter", "version": 281479275675648, "entities": [
  {"entity_number": 1, "name": "stone-wall", "position": {"x": 0.5, "y": 0.5}},
  {"entity_number": 2, "name": "transport-belt", "position": {"x": 1.5, "y": 0.5}, "direction": 2},
  {"entity_number": 3, "name": "assembling-machine-2", "position": {"x": 4.5, "y": 4.5}, "recipe": "gear"},
  {"entity_number": 4, "name": "filter-inserter", "position": {"x": 2.5, "y": 0.5}, "filters": [{"index": 1, "name": "coal"}]},
  {"entity_number": 5, "name": "underground-belt", "position": {"x": 3.5, "y": 0.5}, "type": "input", "direction": 4},
  {"entity_number": 6, "name": "splitter", "position": {"x": 7, "y": 0.5}, "input_priority": "left"},
  {"entity_number": 7, "name": "radar", "position": {"x": 9.5, "y": 9.5}}
]}}`

func TestDecode(t *testing.T) {
	bp, err := Decode(exchange(t, sample), Options{})
	require.NoError(t, err)

	assert.Equal(t, "smelter", bp.Label)
	require.Len(t, bp.Entities, 7)

	wall := bp.Entities[0]
	assert.Equal(t, 1, wall.Number)
	assert.Equal(t, entity.Wall{}, wall.Kind)
	assert.Equal(t, spatial.North, wall.Direction)

	assert.Equal(t, spatial.East, bp.Entities[1].Direction)
	assert.Equal(t, entity.AssemblingMachine{Tier: 2, Recipe: "gear"}, bp.Entities[2].Kind)
	assert.Equal(t, entity.FilterInserter{Filters: []entity.Filter{{Index: 1, Name: "coal"}}}, bp.Entities[3].Kind)
	assert.Equal(t, entity.UndergroundBelt{Type: "input"}, bp.Entities[4].Kind)
	assert.Equal(t, spatial.South, bp.Entities[4].Direction)
	assert.Equal(t, entity.Splitter{InputPriority: "left"}, bp.Entities[5].Kind)
	assert.Equal(t, entity.Unknown{Prototype: "radar"}, bp.Entities[6].Kind)

	assert.Equal(t, 7, bp.Layout().Len())
}

func TestDecodeFourWay(t *testing.T) {
	doc := `{"blueprint": {"entities": [
	  {"entity_number": 1, "name": "transport-belt", "position": {"x": 0.5, "y": 0.5}, "direction": 3}
	]}}`

	bp, err := Decode(exchange(t, doc), Options{Directions: FourWay})
	require.NoError(t, err)
	assert.Equal(t, spatial.West, bp.Entities[0].Direction)

	_, err = Decode(exchange(t, doc), Options{})
	assert.ErrorIs(t, err, ErrInvalidBlueprint, "odd direction is invalid in eight-way encoding")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "   ", ErrInvalidBlueprint},
		{"version", "1abc", ErrUnsupportedVersion},
		{"base64", "0!!!not-base64", ErrInvalidBlueprint},
		{"zlib", "0" + base64.StdEncoding.EncodeToString([]byte("plain")), ErrInvalidBlueprint},
		{"json", exchange(t, `{"blueprint":`), ErrInvalidBlueprint},
		{"schema", exchange(t, `{"blueprint": {"entities": [{"name": "stone-wall"}]}}`), ErrInvalidBlueprint},
		{"book", exchange(t, `{"blueprint_book": {"blueprints": []}}`), ErrBlueprintBook},
		{"duplicate", exchange(t, `{"blueprint": {"entities": [
			{"entity_number": 1, "name": "stone-wall", "position": {"x": 0.5, "y": 0.5}},
			{"entity_number": 1, "name": "stone-wall", "position": {"x": 1.5, "y": 0.5}}
		]}}`), ErrInvalidBlueprint},
		{"huge x", exchange(t, `{"blueprint": {"entities": [
			{"entity_number": 1, "name": "transport-belt", "position": {"x": 1e300, "y": 0.5}}
		]}}`), ErrInvalidBlueprint},
		{"huge negative y", exchange(t, `{"blueprint": {"entities": [
			{"entity_number": 1, "name": "transport-belt", "position": {"x": 0.5, "y": -2e6}}
		]}}`), ErrInvalidBlueprint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp, err := Decode(tt.input, Options{})
			assert.Nil(t, bp)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeSizeLimit(t *testing.T) {
	_, err := Decode(exchange(t, sample), Options{MaxInflated: 64})
	assert.ErrorIs(t, err, ErrInvalidBlueprint)
}

func TestDecodeCoordinateLimit(t *testing.T) {
	doc := `{"blueprint": {"entities": [
	  {"entity_number": 1, "name": "stone-wall", "position": {"x": -1048576, "y": 1048576}}
	]}}`
	bp, err := Decode(exchange(t, doc), Options{})
	require.NoError(t, err)
	assert.Equal(t, spatial.Position{X: -MaxCoordinate, Y: MaxCoordinate}, bp.Entities[0].Position)
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, enc := range []DirectionEncoding{EightWay, FourWay} {
		t.Run(string(enc), func(t *testing.T) {
			in, err := Decode(exchange(t, sample), Options{})
			require.NoError(t, err)

			s, err := Encode(in, enc)
			require.NoError(t, err)
			assert.Equal(t, byte(VersionByte), s[0])

			out, err := Decode(s, Options{Directions: enc})
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestParseDirectionEncoding(t *testing.T) {
	got, err := ParseDirectionEncoding("")
	require.NoError(t, err)
	assert.Equal(t, EightWay, got)

	got, err = ParseDirectionEncoding("four-way")
	require.NoError(t, err)
	assert.Equal(t, FourWay, got)

	_, err = ParseDirectionEncoding("hex")
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	s := exchange(t, sample)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(s + "\n"))
	}))
	defer srv.Close()

	got, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
