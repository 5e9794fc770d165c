package blueprint

import (
	"fmt"

	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// DirectionEncoding maps raw "direction" numbers to compass directions.
type DirectionEncoding string

const (
	// EightWay is the game's encoding: 0, 2, 4, 6 for north, east, south, west.
	EightWay DirectionEncoding = "eight-way"
	// FourWay numbers the compass directions 0..3.
	FourWay DirectionEncoding = "four-way"
)

// ParseDirectionEncoding validates an encoding name. Empty selects EightWay.
func ParseDirectionEncoding(s string) (DirectionEncoding, error) {
	switch DirectionEncoding(s) {
	case "", EightWay:
		return EightWay, nil
	case FourWay:
		return FourWay, nil
	}
	return "", fmt.Errorf("invalid direction encoding %q (must be one of: eight-way, four-way)", s)
}

func (enc DirectionEncoding) decode(raw int) (spatial.Direction, error) {
	step := 1
	if enc != FourWay {
		step = 2
	}
	if raw < 0 || raw%step != 0 || raw/step > int(spatial.West) {
		return spatial.North, fmt.Errorf("direction %d not valid in %s encoding", raw, enc.orDefault())
	}
	return spatial.Direction(raw / step), nil
}

func (enc DirectionEncoding) encode(d spatial.Direction) int {
	if enc == FourWay {
		return int(d)
	}
	return int(d) * 2
}

func (enc DirectionEncoding) orDefault() DirectionEncoding {
	if enc == "" {
		return EightWay
	}
	return enc
}
