// SPDX-License-Identifier: MIT
package aliases

import "github.com/halvard/flowslice/ir"

// regionClasses solves the region-constraint graph of spec.md §4.2 for
// region equivalence classes: nodes are regions, edges are
// region-outlives facts, and classes are the graph's weakly connected
// components. Treating outlives as undirected connectivity (rather
// than computing strongly-connected components over directed edges) is
// a deliberate, sound over-approximation: any two regions joined by an
// outlives chain may alias for our purposes, even if the chain only
// flows one way.
type regionClasses struct {
	uf *unionFind
}

// buildRegionClasses constructs region equivalence classes from a
// procedure's borrow facts.
func buildRegionClasses(facts ir.BorrowFacts) *regionClasses {
	uf := newUnionFind()
	for _, f := range facts.Outlives {
		uf.union(int(f.Longer), int(f.Shorter))
	}

	return &regionClasses{uf: uf}
}

// sameClass reports whether a and b belong to the same region
// equivalence class.
func (rc *regionClasses) sameClass(a, b ir.Region) bool {
	return rc.uf.connected(int(a), int(b))
}
