// SPDX-License-Identifier: MIT
package controldeps_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvard/flowslice/controldeps"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// buildDiamond models:
//
//	bb0: if cond { goto bb1 } else { goto bb2 }
//	bb1: x = 1; goto bb3
//	bb2: x = 2; goto bb3
//	bb3: return
//
// bb1 and bb2 are each control dependent on bb0's terminator; bb3,
// reached unconditionally from both branches, is control dependent on
// nothing.
func buildDiamond(t *testing.T) *ir.Body {
	t.Helper()
	cond := place.Root(place.Local(1))
	x := place.Root(place.Local(2))

	blocks := []ir.Block{
		{
			ID:         0,
			Terminator: ir.Terminator{Kind: ir.TermSwitchInt, Successors: []ir.BlockID{1, 2}, Condition: cond, HasCond: true},
		},
		{
			ID:         1,
			Statements: []ir.Statement{ir.AssignStmt(x, ir.UseConst())},
			Terminator: ir.Terminator{Kind: ir.TermGoto, Successors: []ir.BlockID{3}},
		},
		{
			ID:         2,
			Statements: []ir.Statement{ir.AssignStmt(x, ir.UseConst())},
			Terminator: ir.Terminator{Kind: ir.TermGoto, Successors: []ir.BlockID{3}},
		},
		{
			ID:         3,
			Terminator: ir.Terminator{Kind: ir.TermReturn},
		},
	}
	body, err := ir.NewBody("diamond", 1, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	return body
}

func TestControlDependenciesDiamond(t *testing.T) {
	body := buildDiamond(t)
	cd := controldeps.Build(body)

	branch := ir.Location{Block: 0, Index: len(body.Block(0).Statements)}

	require.True(t, cd.DependsOn(1, branch))
	require.True(t, cd.DependsOn(2, branch))
	require.Empty(t, cd.Of(3), "the merge block is reached unconditionally")
	require.Empty(t, cd.Of(0), "the entry block depends on nothing")
}

// buildLoop models:
//
//	bb0: goto bb1
//	bb1: if cond { goto bb2 } else { goto bb3 }
//	bb2: x = x + 1; goto bb1
//	bb3: return
//
// bb2 is control dependent on bb1's terminator (the loop condition).
func buildLoop(t *testing.T) *ir.Body {
	t.Helper()
	cond := place.Root(place.Local(1))
	x := place.Root(place.Local(2))

	blocks := []ir.Block{
		{ID: 0, Terminator: ir.Terminator{Kind: ir.TermGoto, Successors: []ir.BlockID{1}}},
		{
			ID:         1,
			Terminator: ir.Terminator{Kind: ir.TermSwitchInt, Successors: []ir.BlockID{2, 3}, Condition: cond, HasCond: true},
		},
		{
			ID:         2,
			Statements: []ir.Statement{ir.AssignStmt(x, ir.BinaryOpRvalue(x))},
			Terminator: ir.Terminator{Kind: ir.TermGoto, Successors: []ir.BlockID{1}},
		},
		{ID: 3, Terminator: ir.Terminator{Kind: ir.TermReturn}},
	}
	body, err := ir.NewBody("loop", 1, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	return body
}

func TestControlDependenciesLoop(t *testing.T) {
	body := buildLoop(t)
	cd := controldeps.Build(body)

	branch := ir.Location{Block: 1, Index: len(body.Block(1).Statements)}
	require.True(t, cd.DependsOn(2, branch))
	require.Empty(t, cd.Of(3))
}
