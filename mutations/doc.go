// SPDX-License-Identifier: MIT

// Package mutations extracts, in one pass over a procedure body, the
// tuple (mutated place, input places, kind) at every program point
// that writes something (spec.md §4.4). The flow fixpoint (package
// flowanalysis) consumes these triples as its transfer function's
// per-point work list; the slicing projection (package slicing) walks
// the same triples to answer findMutations directly.
package mutations
