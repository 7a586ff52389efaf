// Package geom provides the planar geometry used by the radial layout engine.
//
// Two small concerns live here so they can be tested independently of any
// layout logic:
//
//   - Circular arithmetic: [Normalize], [AngularDistance], [Midpoint] and
//     [Sector] keep every angle in the half-open range (-π, π] and handle the
//     ±180° seam explicitly.
//   - Rectangle distance: [RectDistance] returns the minimal border-to-border
//     distance between two axis-aligned rectangles given by center and size.
//
// Points and rectangles are backed by gonum's r2 package so vector arithmetic
// reads the same way here as it does in the callers.
//
// # Angle Convention
//
// Angles are in radians and measured in screen coordinates (y grows
// downward), so increasing an angle moves a point clockwise on screen. A
// point at angle θ and radius r around center c is
//
//	c + r·(cos θ, sin θ)
//
// # Concurrency
//
// All functions are pure and safe for concurrent use.
package geom
