// Package spatial provides the grid primitives used by blueprint analysis.
//
// Blueprints place entities at real-valued [Position]s. Tile centers sit on
// half-integers (e.g. 3.5), and multi-tile entities are centered on the middle
// of their footprint. The analysis itself never works with fractions: every
// position is floored to a [Cell], an integer grid coordinate with exact
// equality and a total order.
//
// # Adjacency
//
// [Neighbours] returns the four axis-aligned cells of a cell in North, East,
// South, West order. Diagonals are never adjacent.
//
// # Footprints
//
// [Block] returns the 3×3 block centered on a cell, the footprint shared by
// assembling machines, furnaces and chemical plants.
//
// # Directions
//
// [Direction] follows the blueprint convention where Y grows toward the south,
// so North is (0, -1). Directions rotate footprint offsets defined for a
// north-facing entity via [Direction.Rotate].
package spatial
