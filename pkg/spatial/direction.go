package spatial

import "fmt"

// Direction is one of the four compass orientations an entity can face.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"north", "east", "south", "west"}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// CW returns the direction a quarter turn clockwise from d.
func (d Direction) CW() Direction {
	return (d + 1) % 4
}

// CCW returns the direction a quarter turn counter-clockwise from d.
func (d Direction) CCW() Direction {
	return (d + 3) % 4
}

// Offset returns the unit step in direction d. Y grows toward the south.
func (d Direction) Offset() Cell {
	switch d {
	case North:
		return Cell{X: 0, Y: -1}
	case East:
		return Cell{X: 1, Y: 0}
	case South:
		return Cell{X: 0, Y: 1}
	case West:
		return Cell{X: -1, Y: 0}
	}
	return Cell{}
}

// Rotate turns an offset defined for a north-facing entity so that it
// applies to an entity facing d. Each step from North is a clockwise quarter
// turn: (x, y) becomes (-y, x).
func (d Direction) Rotate(c Cell) Cell {
	for range int(d) % 4 {
		c = Cell{X: -c.Y, Y: c.X}
	}
	return c
}

// ParseDirection parses a lower-case compass name.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", s)
}
