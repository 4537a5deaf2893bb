// SPDX-License-Identifier: MIT
package flowslice

import (
	"github.com/halvard/flowslice/flowanalysis"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/mutations"
	"github.com/halvard/flowslice/place"
	"github.com/halvard/flowslice/slicing"
)

// ComputeFlow runs the three-stage dataflow engine of spec.md §1–§4 over
// body and returns the resulting Result, from which BackwardSlice,
// ForwardSlice, and FindMutations read. It is a thin rename of
// flowanalysis.Run kept at the package root so a caller only ever needs
// to import this one package for the query surface of spec.md §6; every
// configuration knob (EvaluationMode, CallResolver, Logger,
// RecursionBudget) is reachable through flowanalysis.Option values
// passed straight through.
func ComputeFlow(body *ir.Body, opts ...flowanalysis.Option) (*flowanalysis.Result, error) {
	return flowanalysis.Run(body, opts...)
}

// SliceResult is the outcome of BackwardSlice or ForwardSlice: the
// program points found, plus the TargetNotFound diagnostic of spec.md
// §7 when seed never resolves to a place the analysis saw. A
// TargetNotFound result is never an error — Points is simply empty.
type SliceResult struct {
	Points         []flowanalysis.ProgramPoint
	TargetNotFound bool
}

// knownPlace reports whether seed (or its normalized form) was ever
// collected into flow's place domain, i.e. whether it is eligible to
// seed a slice at all (spec.md §7's TargetNotFound).
func knownPlace(flow *flowanalysis.Result, seed place.Place) bool {
	return flow.Aliases().Info().Domain().Contains(seed)
}

// BackwardSlice returns every program point transitively influencing
// seed's value at loc (spec.md §4.6, §6's backwardSlice). If seed was
// never seen by the analysis, the result has TargetNotFound set and an
// empty Points slice rather than an error or a panic.
func BackwardSlice(flow *flowanalysis.Result, loc ir.Location, seed place.Place) (SliceResult, error) {
	if !knownPlace(flow, seed) {
		return SliceResult{TargetNotFound: true}, nil
	}
	pts, err := slicing.BackwardSlice(flow, loc, seed)
	if err != nil {
		return SliceResult{}, err
	}

	return SliceResult{Points: pts}, nil
}

// ForwardSlice returns every program point seed's value at loc goes on
// to influence (spec.md §4.6, §6's forwardSlice), with the same
// TargetNotFound handling as BackwardSlice.
func ForwardSlice(flow *flowanalysis.Result, loc ir.Location, seed place.Place) (SliceResult, error) {
	if !knownPlace(flow, seed) {
		return SliceResult{TargetNotFound: true}, nil
	}
	pts, err := slicing.ForwardSlice(flow, loc, seed)
	if err != nil {
		return SliceResult{}, err
	}

	return SliceResult{Points: pts}, nil
}

// FindMutations returns every program point that may mutate some
// location reachable-mutable from target (spec.md §4.6, §6's
// findMutations). Unlike BackwardSlice/ForwardSlice this never reports
// TargetNotFound: an unknown place simply has no reachable-mutable
// locations and so yields an empty result, which is already the correct
// answer.
func FindMutations(flow *flowanalysis.Result, target place.Place) []flowanalysis.ProgramPoint {
	triples := slicing.FindMutations(flow, target)
	seen := make(map[flowanalysis.ProgramPoint]bool, len(triples))
	out := make([]flowanalysis.ProgramPoint, 0, len(triples))
	for _, tr := range triples {
		pt := flow.Point(tr.Loc)
		if seen[pt] {
			continue
		}
		seen[pt] = true
		out = append(out, pt)
	}

	return out
}

// FindMutationTriples is FindMutations's lower-level counterpart,
// returning the full mutations.MutationTriple records (mutated place,
// inputs, kind) rather than just their program points, for callers that
// need the mutated place or call-argument detail alongside the
// location.
func FindMutationTriples(flow *flowanalysis.Result, target place.Place) []mutations.MutationTriple {
	return slicing.FindMutations(flow, target)
}
