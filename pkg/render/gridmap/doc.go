// Package gridmap draws a layout cell by cell, highlighting the entities a
// bug can reach.
//
// [ToText] produces a compact ASCII map for terminals:
//
//	#  wall
//	!  unsafe entity
//	o  other (protected) entity
//	.  empty cell
//
// [ToDOT] produces Graphviz source with one pinned node per occupied cell,
// meant for the neato engine. [RenderSVG] and [RenderPNG] lay it out in
// process with [github.com/goccy/go-graphviz], so no Graphviz installation
// is required.
package gridmap
