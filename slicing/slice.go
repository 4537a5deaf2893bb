// SPDX-License-Identifier: MIT
package slicing

import (
	"sort"

	"github.com/halvard/flowslice/aliases"
	"github.com/halvard/flowslice/flowanalysis"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/mutations"
	"github.com/halvard/flowslice/place"
)

// BackwardSlice returns every program point influencing target's value
// at loc (spec.md §4.6): the seed is F at loc for every place reachably
// read from target, plus loc itself; the seed then expands
// transitively through whatever each discovered point itself mutated.
//
// Points tagged with a call frame other than res's own are included in
// the result but not expanded further: a Recurse-mode inlining already
// folded a callee's internal influence into the caller's row at the
// call site, and the callee's own Result is not retained once inlining
// completes, so there is nothing further to walk through for it.
func BackwardSlice(res *flowanalysis.Result, loc ir.Location, target place.Place) ([]flowanalysis.ProgramPoint, error) {
	at, err := res.At(loc)
	if err != nil {
		return nil, err
	}

	seen := make(map[flowanalysis.ProgramPoint]bool)
	queue := []flowanalysis.ProgramPoint{res.Point(loc)}
	seen[queue[0]] = true

	for _, rv := range res.Aliases().ReachableValues(target, aliases.ImmRead) {
		for _, p := range at.PointsOf(at.Row(rv)) {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Frame != res.Frame() {
			continue
		}

		after, err := res.At(cur.Loc)
		if err != nil {
			return nil, err
		}
		for _, tr := range res.TriplesAt(cur.Loc) {
			for _, p := range after.PointsOf(after.Row(tr.Mutated)) {
				if !seen[p] {
					seen[p] = true
					queue = append(queue, p)
				}
			}
		}
	}

	return sortedPoints(seen), nil
}

// ForwardSlice returns every program point target's value at loc goes
// on to influence (spec.md §4.6's dual): iterate every location whose
// transfer read (at entry) a place reachably influenced by some point
// already in the slice, adding that location's own point. A branch
// terminator participates too, via its condition (spec.md §4.4's
// "places read by the condition"): it is reached exactly when its
// condition is, and every write it controls inherits that same reach,
// mirroring the condition row the fixpoint's own transfer folds into
// a control-dependent write's deps (flowanalysis.baseDeps).
func ForwardSlice(res *flowanalysis.Result, loc ir.Location, target place.Place) ([]flowanalysis.ProgramPoint, error) {
	seen := make(map[flowanalysis.ProgramPoint]bool)
	queue := []flowanalysis.ProgramPoint{res.Point(loc)}
	seen[queue[0]] = true

	locs := res.Body().AllLocations()

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Frame != res.Frame() {
			continue
		}

		for _, l := range locs {
			p := res.Point(l)
			if seen[p] {
				continue
			}

			before, err := beforeState(res, l)
			if err != nil {
				return nil, err
			}

			if reached(res, before, l, cur) {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}

	return sortedPoints(seen), nil
}

// reached reports whether target is, via before (the flow state
// entering l), part of what reaches l: an ordinary mutation triple's
// data inputs, the condition of a branch l's own block is control
// dependent on (only for locations that actually write something —
// the branch's contribution is to a write's deps, not to every
// program point in its controlled blocks), or — when l is itself a
// branch terminator with no triple of its own — that terminator's own
// condition.
func reached(res *flowanalysis.Result, before *flowanalysis.FlowMatrix, l ir.Location, target flowanalysis.ProgramPoint) bool {
	triples := res.TriplesAt(l)
	if len(triples) > 0 {
		return influencedBy(res, before, triples, target) || conditionControls(res, before, l.Block, target)
	}

	blk := res.Body().Block(l.Block)
	if l.Index == len(blk.Statements) && blk.Terminator.HasCond {
		return conditionReaches(res, before, blk.Terminator.Condition, target)
	}

	return false
}

func influencedBy(res *flowanalysis.Result, before *flowanalysis.FlowMatrix, triples []mutations.MutationTriple, target flowanalysis.ProgramPoint) bool {
	for _, tr := range triples {
		for _, in := range tr.Inputs {
			for _, rv := range res.Aliases().ReachableValues(in, aliases.ImmRead) {
				for _, p := range before.PointsOf(before.Row(rv)) {
					if p == target {
						return true
					}
				}
			}
		}
	}

	return false
}

// conditionControls reports whether target reaches block's write
// through some branch block is control dependent on, checking that
// branch's own condition against before, the state entering block's
// write — the same row the fixpoint threads into that write's deps.
func conditionControls(res *flowanalysis.Result, before *flowanalysis.FlowMatrix, block ir.BlockID, target flowanalysis.ProgramPoint) bool {
	for _, branchLoc := range res.ControlDependencies().Of(block) {
		term := res.Body().Block(branchLoc.Block).Terminator
		if !term.HasCond {
			continue
		}
		if conditionReaches(res, before, term.Condition, target) {
			return true
		}
	}

	return false
}

func conditionReaches(res *flowanalysis.Result, before *flowanalysis.FlowMatrix, condition place.Place, target flowanalysis.ProgramPoint) bool {
	for _, rv := range res.Aliases().ReachableValues(condition, aliases.ImmRead) {
		for _, p := range before.PointsOf(before.Row(rv)) {
			if p == target {
				return true
			}
		}
	}

	return false
}

func beforeState(res *flowanalysis.Result, loc ir.Location) (*flowanalysis.FlowMatrix, error) {
	if loc.Index == 0 {
		return res.EntryState(loc.Block), nil
	}

	return res.At(ir.Location{Block: loc.Block, Index: loc.Index - 1})
}

func sortedPoints(seen map[flowanalysis.ProgramPoint]bool) []flowanalysis.ProgramPoint {
	out := make([]flowanalysis.ProgramPoint, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Frame != b.Frame {
			return a.Frame < b.Frame
		}
		if a.Loc.Block != b.Loc.Block {
			return a.Loc.Block < b.Loc.Block
		}

		return a.Loc.Index < b.Loc.Index
	})

	return out
}
