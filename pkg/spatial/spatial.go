package spatial

import (
	"cmp"
	"fmt"
	"math"
)

// Position is a real-valued blueprint coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" yaml:"y" bson:"y"`
}

// Cell returns the grid cell containing p. Both axes are floored, so a tile
// centered at (3.5, -0.5) maps to cell (3, -1).
func (p Position) Cell() Cell {
	return Cell{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x" yaml:"x" bson:"x"`
	Y int `json:"y" yaml:"y" bson:"y"`
}

// Add returns the component-wise sum of c and o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Compare orders cells row-major: by Y, then by X.
func (c Cell) Compare(o Cell) int {
	if r := cmp.Compare(c.Y, o.Y); r != 0 {
		return r
	}
	return cmp.Compare(c.X, o.X)
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Neighbours returns the four cells adjacent to c, in North, East, South,
// West order.
func Neighbours(c Cell) [4]Cell {
	return [4]Cell{
		{X: c.X, Y: c.Y - 1},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y},
	}
}

// Block returns the 3×3 block of cells centered on c, row by row.
func Block(c Cell) [9]Cell {
	var out [9]Cell
	i := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			out[i] = Cell{X: c.X + dx, Y: c.Y + dy}
			i++
		}
	}
	return out
}
