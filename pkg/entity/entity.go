package entity

import (
	"fmt"

	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// Entity is one placed object of a blueprint. Entities are immutable once
// decoded; analyses refer to them by pointer and never modify them.
type Entity struct {
	Number    int               // entity_number, unique within a blueprint
	Position  spatial.Position  // center of the footprint
	Direction spatial.Direction // facing, North when absent
	Kind      Kind
}

// Name returns the prototype name of the entity's kind.
func (e *Entity) Name() string {
	if e.Kind == nil {
		return ""
	}
	return e.Kind.Name()
}

// Anchor returns the cell containing the entity's position.
func (e *Entity) Anchor() spatial.Cell {
	return e.Position.Cell()
}

func (e *Entity) String() string {
	return fmt.Sprintf("#%d %s at %v", e.Number, e.Name(), e.Position)
}

// IsBlocking reports whether e stops the bug. Only walls block; every other
// variant, recognized or not, is breachable.
func IsBlocking(e *Entity) bool {
	_, ok := e.Kind.(Wall)
	return ok
}
