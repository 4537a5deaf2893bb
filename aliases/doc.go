// Package aliases implements PlaceInfo and Aliases from spec.md §4.2:
// it enumerates every Place syntactically present in a procedure body,
// and extends the purely structural conflict relation of package place
// across reference edges using borrow-check region facts, so that two
// places reachable through different `&`/`&mut` chains that provably
// denote overlapping storage are treated as conflicting.
//
// Two configuration knobs parameterize precision (spec.md §4.2):
// MutabilityMode (DistinguishMut/IgnoreMut) and PointerMode
// (Precise/Conservative). Both are carried as plain values on Mode,
// never as ambient state, per the design note in spec.md §9.
//
// Algorithm: region-outlives facts form a graph over Region values;
// region equivalence classes are its connected components, computed
// with the same union-find (path compression, union by rank) that
// package prim_kruskal used for Kruskal's MST, here applied to regions
// instead of graph vertices.
package aliases
