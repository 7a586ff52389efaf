// Package pkg provides the core libraries for orbit, a radial mind map
// layout engine.
//
// # Overview
//
// Orbit places the nodes of a mind map on concentric rings. Root nodes share
// an inner circle around a canvas center, each root owns an angular sector
// sized by how many children it has, and every generation below it moves one
// ring further out inside its parent's sector. A second mode re-centers the
// subtree of one already placed node around that node and leaves everything
// else where it is.
//
// # Architecture
//
// The typical data flow:
//
//	mind map (JSON or DOT)
//	         ↓
//	    [mindmap] package (graph, positions, wire formats)
//	         ↓
//	    [pipeline] package (options, cache lookup, run statistics)
//	         ↓
//	    [layout/circular] package (roots → sectors → relaxation → rings)
//	         ↓
//	    positions JSON, DOT with pinned pos attributes
//
// # Quick Start
//
//	g, _ := mindmap.ReadGraphFile("ideas.json")
//	positions := mindmap.Positions{}
//	res, _ := circular.ApplyCircularLayout(g, positions, r2.Vec{}, circular.DefaultParams())
//	fmt.Println(res.Success, len(positions))
//
// # Main Packages
//
// [geom] - Angles, sectors, and the shortest distance between two node
// rectangles.
//
// [mindmap] - The node and edge graph handed to the engine, the positions map
// it writes into, and JSON and DOT conversion.
//
// [layout/circular] - The engine: root discovery, tree building, sector
// allocation, root spacing relaxation, and ring placement with collision
// avoidance.
//
// [pipeline] - Runs a layout with validated options and a cache in front of
// the engine. Used by the CLI and the HTTP API.
//
// [cache] - Layout result caches: file (CLI default), Redis, MongoDB, and a
// null cache, selected by URI with [cache.Open].
//
// [api] - HTTP handlers for full and focus layouts.
//
// [config] - TOML settings for layout parameters, cache, server, and logging.
//
// [errors] - Coded errors shared by every package and mapped to HTTP status
// codes by the API.
//
// [observability] - Hooks for layout, cache, and HTTP events.
//
// [buildinfo] - Version information set at link time.
package pkg
