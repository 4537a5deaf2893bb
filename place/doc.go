// Package place defines Place, the abstract memory location that every
// other flowslice package indexes, conflicts, and tracks influence for.
//
// A Place is a Local (a parameter or temporary) plus a sequence of
// Projections (field, tuple index, array index, dereference, downcast).
// Two places are equal iff their Local and Projection sequence are equal
// element-wise; this package defines that equality and the purely
// structural conflict relation (⋈) described in spec.md §3. Conflicts
// that cross reference edges (aliasing) are the concern of package
// aliases, not this one.
//
// Complexity: every operation here is O(len(projections)), since places
// arising from real procedures have small, bounded projection depth.
package place
