// SPDX-License-Identifier: MIT
package flowanalysis

import (
	"github.com/halvard/flowslice/aliases"
	"github.com/halvard/flowslice/indexset"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/mutations"
	"github.com/halvard/flowslice/place"
)

// applyAt runs the transfer function for every mutation triple at loc,
// returning the resulting matrix (spec.md §4.5, step 2).
func (r *runner) applyAt(in *FlowMatrix, loc ir.Location) (*FlowMatrix, error) {
	out := in.Clone()
	triples := r.triplesAt[loc]
	if len(triples) == 0 {
		return out, nil
	}

	cdLocs := r.cd.Of(loc.Block)

	if r.mode.Context == Recurse && r.resolver != nil && triples[0].Kind != mutations.Pure {
		handled, err := r.applyRecursiveCall(out, in, loc, cdLocs, triples)
		if err != nil {
			return nil, err
		}
		if handled {
			return out, nil
		}
	}

	for _, tr := range triples {
		r.applyGeneric(out, in, loc, cdLocs, tr)
	}

	return out, nil
}

// baseDeps returns {loc} ∪ CD[B] ∪ (for every branch in CD[B], the
// reachable-value row of that branch's own condition, read from in),
// as a Row over this frame's points (spec.md §4.5 step 2c combined
// with §4.4's "places read by the condition"). Folding the condition's
// row in here, rather than just the branch's terminator location, is
// what lets a control-dependent write inherit whatever transitively
// defined the branch's outcome (spec.md SC1): the branch location
// alone only marks *that a branch decided this*, not *what decided
// the branch*.
func (r *runner) baseDeps(in, out *FlowMatrix, loc ir.Location, cdLocs []ir.Location) indexset.Row {
	pts := make([]ProgramPoint, 0, len(cdLocs)+1)
	pts = append(pts, inFrame(r.frame, loc))
	for _, l := range cdLocs {
		pts = append(pts, inFrame(r.frame, l))
	}
	deps := out.rowOfPoints(pts...)

	for _, l := range cdLocs {
		deps.UnionInto(r.conditionRow(in, l))
	}

	return deps
}

// conditionRow returns the reachable-value row, read from in, of the
// condition governing the branch terminator at loc. Empty if the
// terminator at loc carries no condition (e.g. a plain Goto reached
// via an earlier, now-resolved branch).
func (r *runner) conditionRow(in *FlowMatrix, loc ir.Location) indexset.Row {
	row := indexset.NewRow(0)
	term := r.body.Block(loc.Block).Terminator
	if !term.HasCond {
		return row
	}
	for _, rv := range r.al.ReachableValues(term.Condition, aliases.ImmRead) {
		row.UnionInto(in.Row(rv))
	}

	return row
}

// applyGeneric applies the modular transfer for one triple: this is
// both the SigOnly treatment of calls (inputs already include every
// argument place, per package mutations) and the ordinary treatment
// of every Pure triple.
func (r *runner) applyGeneric(out, in *FlowMatrix, loc ir.Location, cdLocs []ir.Location, tr mutations.MutationTriple) {
	deps := r.baseDeps(in, out, loc, cdLocs)
	for _, q := range tr.Inputs {
		for _, rv := range r.al.ReachableValues(q, aliases.ImmRead) {
			row := in.Row(rv)
			deps.UnionInto(row)
		}
	}
	r.applyDeps(out, tr.Mutated, deps)
}

// applyDeps writes deps into every concrete target reachable-mutable
// from mutated, as a strong update when there is exactly one such
// target and a weak (joining) update otherwise (spec.md §4.5 step 2d).
func (r *runner) applyDeps(out *FlowMatrix, mutated place.Place, deps indexset.Row) {
	targets := r.al.ReachableValues(mutated, aliases.Mut)
	strong := len(targets) == 1
	for _, t := range targets {
		if strong {
			out.SetRow(t, deps.Clone())
		} else {
			out.UnionRowInto(t, deps)
		}
	}
}

// applyRecursiveCall attempts the Recurse-mode treatment of the call
// site producing triples: inline the callee's own flow matrix and
// project its return/mutable-argument rows back onto the caller,
// substituting the callee's synthetic argument points with the
// caller's current dependency sets for the corresponding arguments.
// Returns handled=false (never erroring) when the callee is
// unavailable, already on the call stack, or the recursion budget is
// exhausted, leaving the caller to fall back to the generic modular
// summary (spec.md §4.5/§7's non-fatal downgrades).
func (r *runner) applyRecursiveCall(out, in *FlowMatrix, loc ir.Location, cdLocs []ir.Location, triples []mutations.MutationTriple) (bool, error) {
	name := triples[0].Func
	if name == "" || r.stack[name] || r.depth >= r.budget {
		r.logDowngrade(name, loc, "recursion budget exceeded or cycle detected")

		return false, nil
	}
	callee, ok := r.resolver.Resolve(name)
	if !ok {
		r.logDowngrade(name, loc, "callee body unavailable")

		return false, nil
	}

	var args []place.Place
	for _, tr := range triples {
		if len(tr.Inputs) > len(args) {
			args = tr.Inputs
		}
	}

	childFrame := name
	if r.frame != "" {
		childFrame = r.frame + "/" + name
	}
	childStack := make(map[string]bool, len(r.stack)+1)
	for k := range r.stack {
		childStack[k] = true
	}
	childStack[name] = true

	child := &runner{
		body:     callee,
		mode:     r.mode,
		resolver: r.resolver,
		frame:    childFrame,
		depth:    r.depth + 1,
		budget:   r.budget,
		logger:   r.logger,
		points:   r.points,
		stack:    childStack,
	}
	childResult, err := child.run()
	if err != nil {
		return false, err
	}

	argSub := make(map[ProgramPoint]indexset.Row, len(args))
	for i := range args {
		if i >= callee.ParamCount {
			break
		}
		row := indexset.NewRow(0)
		for _, rv := range r.al.ReachableValues(args[i], aliases.ImmRead) {
			row.UnionInto(in.Row(rv))
		}
		argSub[argPoint(childFrame, i)] = row
	}

	for _, tr := range triples {
		var calleeLocal place.Place
		switch tr.Kind {
		case mutations.Call:
			calleeLocal = place.Root(place.Local(0))
		case mutations.Arg:
			calleeLocal = place.Root(callee.ParamLocal(tr.ArgIndex))
		default:
			continue
		}

		callRow := childResult.unionAtReturns(calleeLocal)
		substituted := substitutePoints(r.points, callRow, argSub)

		deps := r.baseDeps(in, out, loc, cdLocs)
		deps.UnionInto(substituted)
		r.applyDeps(out, tr.Mutated, deps)
	}

	return true, nil
}

func (r *runner) logDowngrade(name string, loc ir.Location, reason string) {
	if r.logger == nil {
		return
	}
	r.logger.Debug("call site downgraded to modular summary", "callee", name, "at", loc.String(), "reason", reason)
}

// substitutePoints rewrites row, replacing every point present as a
// key of sub with that key's substitution row and leaving every other
// point unchanged.
func substitutePoints(points *indexset.IndexedDomain[ProgramPoint], row indexset.Row, sub map[ProgramPoint]indexset.Row) indexset.Row {
	out := indexset.NewRow(0)
	for _, i := range row.Iter() {
		pt := points.Value(i)
		if s, ok := sub[pt]; ok {
			out.UnionInto(s)
			continue
		}
		out.Insert(i)
	}

	return out
}
