// SPDX-License-Identifier: MIT
package flowanalysis

import (
	"github.com/halvard/flowslice/aliases"
	"github.com/halvard/flowslice/controldeps"
	"github.com/halvard/flowslice/indexset"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/mutations"
	"github.com/halvard/flowslice/place"
)

// Result is the outcome of one Run: the flow matrix at every block
// boundary of body, plus the per-procedure analyses package slicing
// needs to walk it. Result is immutable once returned; At recomputes
// interior (non-block-boundary) points on demand by replaying the
// already-computed transfer from the enclosing block's entry state,
// trading a cheap, deterministic recomputation for not storing a full
// matrix copy at every single program point.
type Result struct {
	r      *runner
	body   *ir.Body
	frame  string
	points *indexset.IndexedDomain[ProgramPoint]
	al     *aliases.Aliases
	cd     *controldeps.ControlDependencies
	entry  map[ir.BlockID]*FlowMatrix
	exit   map[ir.BlockID]*FlowMatrix
}

// Body returns the procedure this Result was computed for.
func (res *Result) Body() *ir.Body { return res.body }

// Aliases returns the alias analysis this Result was computed with.
func (res *Result) Aliases() *aliases.Aliases { return res.al }

// ControlDependencies returns this procedure's control-dependency map.
func (res *Result) ControlDependencies() *controldeps.ControlDependencies { return res.cd }

// Frame returns the call-frame tag every ProgramPoint produced at the
// top level of this Result carries ("" unless this Result is itself a
// nested Recurse-mode activation).
func (res *Result) Frame() string { return res.frame }

// At returns the flow matrix F at program point loc: the state after
// loc's transfer has been applied.
func (res *Result) At(loc ir.Location) (*FlowMatrix, error) {
	in, ok := res.entry[loc.Block]
	if !ok {
		in = newFlowMatrix(res.points)
	}

	return res.r.runBlockUpTo(in, loc.Block, loc.Index)
}

// EntryState returns the flow matrix at the entry of block id.
func (res *Result) EntryState(id ir.BlockID) *FlowMatrix {
	m, ok := res.entry[id]
	if !ok {
		return newFlowMatrix(res.points)
	}

	return m
}

// ExitState returns the flow matrix at the exit (terminator) of block
// id.
func (res *Result) ExitState(id ir.BlockID) *FlowMatrix {
	m, ok := res.exit[id]
	if !ok {
		return newFlowMatrix(res.points)
	}

	return m
}

// Point wraps loc in this Result's call frame, for callers comparing a
// raw ir.Location against rows produced by this Result.
func (res *Result) Point(loc ir.Location) ProgramPoint { return inFrame(res.frame, loc) }

// TriplesAt returns the mutation triples package mutations recorded at
// loc, in the order Visit produced them. Package slicing walks these
// to expand a backward or forward slice one program point at a time.
func (res *Result) TriplesAt(loc ir.Location) []mutations.MutationTriple {
	return res.r.triplesAt[loc]
}

// unionAtReturns unions the rows of every concrete place reachable
// (mutably) from p across every TermReturn block's exit state, used by
// Recurse-mode inlining to gather a callee's outward influence on its
// return value or a mutable-reference parameter. Resolving through
// ReachableValues rather than a literal Row lookup is what lets p name
// the bare reference place (e.g. the formal parameter itself) while
// still picking up writes recorded against its dereferenced storage.
func (res *Result) unionAtReturns(p place.Place) indexset.Row {
	out := indexset.NewRow(0)
	targets := res.al.ReachableValues(p, aliases.Mut)
	if len(targets) == 0 {
		targets = []place.Place{p}
	}
	for i := range res.body.Blocks {
		if res.body.Blocks[i].Terminator.Kind != ir.TermReturn {
			continue
		}
		exit, ok := res.exit[ir.BlockID(i)]
		if !ok {
			continue
		}
		for _, t := range targets {
			out.UnionInto(exit.Row(t))
		}
	}

	return out
}
