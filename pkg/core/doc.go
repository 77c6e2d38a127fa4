// Package core defines the structural model produced by an ST4 conversion.
//
// This package contains:
//   - The owned entity tree (Project, Floor and the elements they hold)
//   - Reference grid lines (Axis, AxisType)
//   - Summary counters (Stats)
//
// Ownership is a tree: a Project owns its Floors, Axes and FoundationSlabs,
// and a Floor owns the Columns, Beams, Slabs and Panels placed on it. The
// Project additionally indexes every Column, Beam and Panel it received.
// Links from an element back to its Floor or Axis are stored as identifiers,
// never as pointers, so the graph has no reference cycles.
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
