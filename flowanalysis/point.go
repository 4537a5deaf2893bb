// SPDX-License-Identifier: MIT
package flowanalysis

import (
	"fmt"

	"github.com/halvard/flowslice/ir"
)

// ProgramPoint is the opaque point type the flow matrix and slices are
// keyed by (spec.md §6: "the matrix and slice sets are opaque to
// callers except through enumerate-style accessors"). Frame
// distinguishes recursive inlining activations so a callee's internal
// locations never collide with the caller's: the top-level procedure
// runs in the empty frame, and each Recurse inlining pushes the
// callee's name onto Frame.
type ProgramPoint struct {
	Frame string
	Loc   ir.Location
}

// argPoint is the synthetic point seeding a formal parameter's row at
// procedure entry (spec.md §4.5).
func argPoint(frame string, paramIndex int) ProgramPoint {
	return ProgramPoint{Frame: frame, Loc: ir.ArgLocation(paramIndex)}
}

// inFrame re-tags a callee-local point with the callee's call frame,
// so its locations stay distinguishable from the caller's own.
func inFrame(frame string, loc ir.Location) ProgramPoint {
	return ProgramPoint{Frame: frame, Loc: loc}
}

// String renders p for diagnostics: "frame::bb2[1]" or "bb2[1]" at the
// top level.
func (p ProgramPoint) String() string {
	if p.Frame == "" {
		return p.Loc.String()
	}

	return fmt.Sprintf("%s::%s", p.Frame, p.Loc)
}
