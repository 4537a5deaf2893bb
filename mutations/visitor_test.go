// SPDX-License-Identifier: MIT
package mutations_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/mutations"
	"github.com/halvard/flowslice/place"
)

// SC6: fn f(p:&mut P){ p.0+=1; let _=p.1; }
func TestVisitSC6FieldWriteAndRead(t *testing.T) {
	p := place.Root(place.Local(1))
	pStar := p.Project(place.DerefProj())
	p0 := pStar.Project(place.TupleProj(0))
	p1 := pStar.Project(place.TupleProj(1))
	discard := place.Root(place.Local(2))

	blocks := []ir.Block{
		{
			ID: 0,
			Statements: []ir.Statement{
				ir.AssignStmt(p0, ir.BinaryOpRvalue(p0)),
				ir.AssignStmt(discard, ir.UseOperand(p1)),
			},
			Terminator: ir.Terminator{Kind: ir.TermReturn},
		},
	}
	body, err := ir.NewBody("f", 1, blocks, ir.BorrowFacts{
		RefRegion:  map[string]ir.Region{p.Key(): 1},
		RefMutable: map[string]bool{p.Key(): true},
	})
	require.NoError(t, err)

	triples := mutations.Visit(body)
	require.Len(t, triples, 2)

	require.Equal(t, ir.Location{Block: 0, Index: 0}, triples[0].Loc)
	require.True(t, triples[0].Mutated.Equal(p0))
	require.Equal(t, mutations.Pure, triples[0].Kind)

	require.True(t, triples[1].Mutated.Equal(discard))
	require.Len(t, triples[1].Inputs, 1)
	require.True(t, triples[1].Inputs[0].Equal(p1))
}

func TestVisitConstantAssignUsesSelfInput(t *testing.T) {
	x := place.Root(place.Local(1))
	blocks := []ir.Block{
		{
			ID:         0,
			Statements: []ir.Statement{ir.AssignStmt(x, ir.UseConst())},
			Terminator: ir.Terminator{Kind: ir.TermReturn},
		},
	}
	body, err := ir.NewBody("const", 0, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	triples := mutations.Visit(body)
	require.Len(t, triples, 1)
	require.True(t, triples[0].Mutated.Equal(x))
	require.Len(t, triples[0].Inputs, 1)
	require.True(t, triples[0].Inputs[0].Equal(x))
}

func TestVisitCallProducesRetAndArgTriples(t *testing.T) {
	a := place.Root(place.Local(1))
	ret := place.Root(place.Local(2))

	blocks := []ir.Block{
		{
			ID: 0,
			Terminator: ir.Terminator{
				Kind: ir.TermCall,
				Call: &ir.Call{
					Func:       "foo",
					Args:       []place.Place{a},
					MutRefArgs: []int{0},
					Ret:        ret,
					HasRet:     true,
					Dest:       1,
					HasDest:    true,
				},
			},
		},
		{ID: 1, Terminator: ir.Terminator{Kind: ir.TermReturn}},
	}
	body, err := ir.NewBody("caller", 1, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	triples := mutations.Visit(body)
	require.Len(t, triples, 2)
	require.Equal(t, mutations.Call, triples[0].Kind)
	require.True(t, triples[0].Mutated.Equal(ret))
	require.Equal(t, mutations.Arg, triples[1].Kind)
	require.True(t, triples[1].Mutated.Equal(a))
}

func TestVisitSwitchWithoutCallProducesNoTriple(t *testing.T) {
	cond := place.Root(place.Local(1))
	blocks := []ir.Block{
		{
			ID:         0,
			Terminator: ir.Terminator{Kind: ir.TermSwitchInt, Successors: []ir.BlockID{1, 1}, Condition: cond, HasCond: true},
		},
		{ID: 1, Terminator: ir.Terminator{Kind: ir.TermReturn}},
	}
	body, err := ir.NewBody("switch", 1, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	require.Empty(t, mutations.Visit(body))
}
