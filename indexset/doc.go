// Package indexset provides the dense bitset-backed containers
// described in spec.md §4.1: IndexedDomain, an append-only bijection
// between values of a small ordinal domain and contiguous integers, and
// IndexMatrix, a vector of bitset rows indexed by one domain with each
// row ranging over another.
//
// The fixpoint join (spec.md §4.5) is the dominant cost in this
// analysis, so row storage is github.com/bits-and-blooms/bitset rather
// than a map or slice of bools: union is O(n/w) word-at-a-time and the
// backing []uint64 is cache-friendly, exactly the rationale spec.md
// §4.1 gives for choosing bitsets.
//
// Concurrency: IndexedDomain guards its insert path with a mutex so a
// pre-pass walk of a procedure body (package aliases, package
// mutations) may run concurrently with queries from an in-progress
// fixpoint; Row and IndexMatrix are not internally synchronized and
// follow the single-threaded-per-procedure model of spec.md §5.
package indexset
