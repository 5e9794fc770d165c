// Package entity defines the placed objects of a blueprint and the rules that
// give each variant its footprint and permeability.
//
// An [Entity] pairs identity and placement (entity number, position,
// direction) with a [Kind]: a closed sum type with one struct per variant.
// Capabilities are plain functions that switch on the variant rather than
// methods on the kinds:
//
//   - [Positions] / [Catalog.Positions]: the cells an entity occupies
//   - [IsBlocking]: whether the entity stops a spreading bug
//   - [IsBeltlike]: whether the entity is drawn as a belt on maps
//
// # Footprints
//
// Belts, inserters and walls occupy their own cell. Assembling machines,
// electric furnaces and chemical plants occupy the 3×3 block around their
// center. Splitters and unknown prototypes have no built-in footprint;
// asking for one returns an [*UnsupportedVariantError] unless a
// [FootprintRule] for that prototype is registered in a [Catalog].
//
// # Permeability
//
// Only walls block. Every other variant, including unknown prototypes, is
// treated as breachable.
package entity
