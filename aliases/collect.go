// SPDX-License-Identifier: MIT
package aliases

import (
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// collectPlaces walks every statement and terminator of body once,
// inserting every syntactically-occurring Place into dom. This is the
// "one pre-pass walk" of spec.md §3's definition of the Place domain
// `P`.
func collectPlaces(body *ir.Body, dom *place.Domain) {
	for i := range body.Blocks {
		blk := &body.Blocks[i]
		for _, s := range blk.Statements {
			collectStatement(s, dom)
		}
		collectTerminator(blk.Terminator, dom)
	}
}

func collectStatement(s ir.Statement, dom *place.Domain) {
	switch s.Kind {
	case ir.StmtAssign:
		dom.Insert(s.LHS)
		for _, p := range s.RHS.Places {
			dom.Insert(p)
		}
		if len(s.RHS.Places) == 0 {
			// A constant RHS still advances the target's own row
			// (spec.md §4.4): the place must be in the domain even
			// though nothing is read.
			dom.Insert(s.LHS)
		}
	case ir.StmtDrop:
		dom.Insert(s.Dropped)
	}
}

func collectTerminator(t ir.Terminator, dom *place.Domain) {
	if t.HasCond {
		dom.Insert(t.Condition)
	}
	if t.Call == nil {
		return
	}
	for _, a := range t.Call.Args {
		dom.Insert(a)
	}
	if t.Call.HasRet {
		dom.Insert(t.Call.Ret)
	}
}
