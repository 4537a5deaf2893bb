// SPDX-License-Identifier: MIT
package controldeps

import (
	"sort"

	"github.com/halvard/flowslice/indexset"
	"github.com/halvard/flowslice/ir"
)

// ControlDependencies records, for every block in a procedure, the set
// of branch locations that decide whether that block executes
// (spec.md §4.3). It is built once per body and is immutable
// thereafter.
//
// deps is an indexset.IndexMatrix rather than a nested map: blocks are
// the row domain, branch locations the column domain, and membership
// is a bitset test exactly as in the fixpoint's own FlowMatrix, since
// both BlockID and Location are plain comparable values.
type ControlDependencies struct {
	deps *indexset.IndexMatrix[ir.BlockID, ir.Location]
}

// Build computes ControlDependencies for body.
//
// A branch block Y (out-degree >= 2) is walked from each of its
// successors up Y's post-dominator tree until reaching Y's own
// immediate post-dominator; every block visited along the way is
// control dependent on Y's terminator location. This is the direct,
// single-pass form of the dominance-frontier-of-the-reverse-graph
// construction, specialized to control dependence.
func Build(body *ir.Body) *ControlDependencies {
	g := newCFG(body)
	idom := immediateDominators(reversed{g}, g.exit)

	deps := indexset.NewIndexMatrix[ir.BlockID, ir.Location](
		indexset.NewIndexedDomain[ir.BlockID](len(body.Blocks)),
		indexset.NewIndexedDomain[ir.Location](len(body.Blocks)),
	)
	for y := 0; y < len(body.Blocks); y++ {
		succs := g.out(y)
		if len(succs) < 2 {
			continue
		}
		loc := branchLocation(body, ir.BlockID(y))
		stop := idom[y]
		for _, z := range succs {
			runner := z
			for runner != stop && runner != -1 {
				if runner != g.exit {
					deps.Insert(ir.BlockID(runner), loc)
				}
				runner = idom[runner]
			}
		}
	}

	return &ControlDependencies{deps: deps}
}

// branchLocation returns the Location of block id's terminator, the
// program point a control dependency is attributed to.
func branchLocation(body *ir.Body, id ir.BlockID) ir.Location {
	return ir.Location{Block: id, Index: len(body.Block(id).Statements)}
}

// Of returns the branch locations block id is control dependent on,
// in ascending (Block, Index) order. Returns nil for a block that is
// unconditionally reached (control dependent on nothing beyond the
// procedure's entry).
func (c *ControlDependencies) Of(id ir.BlockID) []ir.Location {
	locs := c.deps.RowValues(id)
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].Block != locs[j].Block {
			return locs[i].Block < locs[j].Block
		}

		return locs[i].Index < locs[j].Index
	})

	return locs
}

// DependsOn reports whether block id is control dependent on the
// branch at loc.
func (c *ControlDependencies) DependsOn(id ir.BlockID, loc ir.Location) bool {
	return c.deps.Contains(id, loc)
}
