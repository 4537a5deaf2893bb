// SPDX-License-Identifier: MIT
package mutations

import (
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// Visit walks every statement and terminator of body once and returns
// the mutation triples they produce, in program order. Switch/assert
// terminators without an attached call contribute no triple: their
// condition only feeds control dependency, computed separately by
// package controldeps.
func Visit(body *ir.Body) []MutationTriple {
	var out []MutationTriple
	for i := range body.Blocks {
		blk := &body.Blocks[i]
		for idx, s := range blk.Statements {
			loc := ir.Location{Block: blk.ID, Index: idx}
			if t, ok := statementTriple(loc, s); ok {
				out = append(out, t)
			}
		}
		termLoc := ir.Location{Block: blk.ID, Index: len(blk.Statements)}
		out = append(out, terminatorTriples(termLoc, blk.Terminator)...)
	}

	return out
}

func statementTriple(loc ir.Location, s ir.Statement) (MutationTriple, bool) {
	switch s.Kind {
	case ir.StmtAssign:
		return MutationTriple{
			Loc:     loc,
			Mutated: s.LHS,
			Inputs:  selfInput(s.LHS, s.RHS.Places),
			Kind:    Pure,
		}, true
	case ir.StmtDrop:
		return MutationTriple{
			Loc:     loc,
			Mutated: s.Dropped,
			Inputs:  []place.Place{s.Dropped},
			Kind:    Pure,
		}, true
	default:
		return MutationTriple{}, false
	}
}

func terminatorTriples(loc ir.Location, t ir.Terminator) []MutationTriple {
	if t.Call == nil {
		return nil
	}

	var out []MutationTriple
	if t.Call.HasRet {
		out = append(out, MutationTriple{
			Loc:     loc,
			Mutated: t.Call.Ret,
			Inputs:  append([]place.Place(nil), t.Call.Args...),
			Kind:    Call,
			Func:    t.Call.Func,
		})
	}
	for _, argIdx := range t.Call.MutRefArgs {
		out = append(out, MutationTriple{
			Loc:      loc,
			Mutated:  t.Call.Args[argIdx],
			Inputs:   append([]place.Place(nil), t.Call.Args...),
			Kind:     Arg,
			Func:     t.Call.Func,
			ArgIndex: argIdx,
		})
	}

	return out
}
