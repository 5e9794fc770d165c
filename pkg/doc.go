// Package pkg provides the libraries behind wallcheck.
//
// # Overview
//
// Wallcheck answers one question about a factory blueprint: can a bug that
// starts outside the layout reach any entity without passing through a
// wall? The pkg directory is organized into three areas:
//
//  1. Domain - [spatial], [entity], [layout] and [reach] model the grid and
//     run the flood fill
//  2. Codecs - [blueprint] decodes exchange strings, [report] encodes results,
//     [render/gridmap] draws maps, [recipes] loads reference data
//  3. Infrastructure - [pipeline], [cache], [store], [config], [server],
//     [observability], [httputil], [errors] and [buildinfo]
//
// # Architecture
//
//	exchange string (inline or downloaded)
//	         ↓
//	    [blueprint] package (base64 + zlib + JSON schema)
//	         ↓
//	    [layout] package (extent + cell index)
//	         ↓
//	    [reach] package (flood fill from the border)
//	         ↓
//	    [report] / [render/gridmap] (text, JSON, YAML, map, DOT, SVG, PNG)
//
// # Quick Start
//
//	bp, err := blueprint.Decode(s, blueprint.Options{})
//	if err != nil {
//	    return err
//	}
//	unsafe, err := reach.FindUnprotected(bp.Layout())
//	if err != nil {
//	    return err
//	}
//	if len(unsafe) == 0 {
//	    fmt.Println("Bug freedom achieved!")
//	}
//
// Most callers go through [pipeline.Runner], which adds caching, storage
// and rendering on top of the same steps.
package pkg
