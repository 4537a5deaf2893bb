// SPDX-License-Identifier: MIT
package slicing

import (
	"github.com/halvard/flowslice/aliases"
	"github.com/halvard/flowslice/flowanalysis"
	"github.com/halvard/flowslice/mutations"
	"github.com/halvard/flowslice/place"
)

// FindMutations returns every mutation triple, anywhere in res's body,
// whose mutated place may write to target. Per spec.md §9 open
// question (a), the conflict check is the reachable-values variant:
// a triple qualifies iff reachable_values(triple.Mutated, Mut)
// intersects reachable_values(target, Mut), not the narrower
// inputs-subset check the original distinguishes and rejects (that
// variant loses mutations reached only through an alias that never
// appears syntactically in the triple's own Inputs).
func FindMutations(res *flowanalysis.Result, target place.Place) []mutations.MutationTriple {
	wanted := make(map[string]bool)
	for _, t := range res.Aliases().ReachableValues(target, aliases.Mut) {
		wanted[t.Key()] = true
	}

	var out []mutations.MutationTriple
	for _, loc := range res.Body().AllLocations() {
		for _, tr := range res.TriplesAt(loc) {
			if mutationConflicts(res, tr, wanted) {
				out = append(out, tr)
			}
		}
	}

	return out
}

func mutationConflicts(res *flowanalysis.Result, tr mutations.MutationTriple, wanted map[string]bool) bool {
	for _, m := range res.Aliases().ReachableValues(tr.Mutated, aliases.Mut) {
		if wanted[m.Key()] {
			return true
		}
	}

	return false
}
