// Package reach finds the entities of a blueprint that a bug spreading in
// from outside can touch.
//
// # Model
//
// The bug starts in the unbounded region around the layout. It moves between
// axis-adjacent cells, walks freely over empty cells and through every
// non-wall entity, and stops at walls. Every non-wall entity it touches is
// unprotected.
//
// # Algorithm
//
// [Analyze] builds a [layout.Index], takes its bounding extent and seeds the
// frontier with every cell on the extent's edges. The ring of cells just
// outside the extent is marked visited without being queued: it stands in
// for the whole exterior, which can reach every edge cell but nothing else.
// The frontier is then drained. Empty cells and non-wall entities propagate
// to their unvisited neighbours; walls absorb. Entities are recorded once
// each, however many of their cells are reached.
//
// Visiting order does not change the result. [OrderLIFO] (depth-first, the
// default) and [OrderFIFO] (breadth-first) are both available.
//
// # Errors
//
// An entity without a footprint rule aborts the analysis with an
// [*entity.UnsupportedVariantError]. A partial result would be unsound, so
// none is returned. An empty layout is not an error: nothing is unprotected.
//
// # Concurrency
//
// Analyses never modify the layout. Concurrent calls over the same layout
// are safe; each call owns its frontier and visited set.
package reach
