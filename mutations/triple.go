// SPDX-License-Identifier: MIT
package mutations

import (
	"fmt"

	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// Kind tags how a MutationTriple arose, per spec.md §4.4's construct
// table.
type Kind uint8

const (
	// Pure covers ordinary assignments, drops, and reference/aggregate/
	// cast/discriminant rvalues: one mutated place, statically-visible
	// inputs.
	Pure Kind = iota
	// Arg marks the extra triple emitted for each mutable-reference call
	// argument: the callee may have written through it.
	Arg
	// Call marks the triple for a call's return place.
	Call
)

// String renders k for diagnostics.
func (k Kind) String() string {
	switch k {
	case Pure:
		return "pure"
	case Arg:
		return "arg"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// MutationTriple is one row of the modular visitor's output: at
// location Loc, place Mutated is written, having read Inputs.
type MutationTriple struct {
	Loc     ir.Location
	Mutated place.Place
	Inputs  []place.Place
	Kind    Kind

	// Func and ArgIndex are populated only for Call and Arg triples:
	// Func names the callee, and for an Arg triple ArgIndex is the
	// 0-based position of Mutated within the call's argument list (and
	// so, by positional convention, within the callee's formal
	// parameters). Package flowanalysis's Recurse mode uses both to
	// inline the callee's own flow matrix.
	Func     string
	ArgIndex int
}

func (t MutationTriple) String() string {
	return fmt.Sprintf("%s: %s <- %v (%s)", t.Loc, t.Mutated, t.Inputs, t.Kind)
}

// selfInput returns ops, or []place.Place{fallback} if ops is empty.
// Every assignment must advance its target's own row even when nothing
// is read, per spec.md §4.4's rationale.
func selfInput(fallback place.Place, ops []place.Place) []place.Place {
	if len(ops) == 0 {
		return []place.Place{fallback}
	}

	return ops
}
