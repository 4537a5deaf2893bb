// SPDX-License-Identifier: MIT
package flowanalysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvard/flowslice/flowanalysis"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// SC1: let mut x=1; let y = if x>0 {2} else {3}; let z=y;
//
//	bb0: x = 1; if x { goto bb1 } else { goto bb2 }
//	bb1: y = 2; goto bb3
//	bb2: y = 3; goto bb3
//	bb3: z = y; return
func buildSC1(t *testing.T) *ir.Body {
	t.Helper()
	x := place.Root(place.Local(1))
	y := place.Root(place.Local(2))
	z := place.Root(place.Local(3))

	blocks := []ir.Block{
		{
			ID:         0,
			Statements: []ir.Statement{ir.AssignStmt(x, ir.UseConst())},
			Terminator: ir.Terminator{Kind: ir.TermSwitchInt, Successors: []ir.BlockID{1, 2}, Condition: x, HasCond: true},
		},
		{
			ID:         1,
			Statements: []ir.Statement{ir.AssignStmt(y, ir.UseConst())},
			Terminator: ir.Terminator{Kind: ir.TermGoto, Successors: []ir.BlockID{3}},
		},
		{
			ID:         2,
			Statements: []ir.Statement{ir.AssignStmt(y, ir.UseConst())},
			Terminator: ir.Terminator{Kind: ir.TermGoto, Successors: []ir.BlockID{3}},
		},
		{
			ID:         3,
			Statements: []ir.Statement{ir.AssignStmt(z, ir.UseOperand(y))},
			Terminator: ir.Terminator{Kind: ir.TermReturn},
		},
	}
	body, err := ir.NewBody("sc1", 0, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	return body
}

func TestFlowSC1BackwardDependenciesOfZ(t *testing.T) {
	body := buildSC1(t)
	res, err := flowanalysis.Run(body)
	require.NoError(t, err)

	z := place.Root(place.Local(3))
	zLoc := ir.Location{Block: 3, Index: 0}
	after, err := res.At(zLoc)
	require.NoError(t, err)

	row := after.Row(z)
	points := after.PointsOf(row)

	branch := res.Point(ir.Location{Block: 0, Index: 1})
	yBB1 := res.Point(ir.Location{Block: 1, Index: 0})
	yBB2 := res.Point(ir.Location{Block: 2, Index: 0})
	zDef := res.Point(zLoc)

	require.Contains(t, points, branch, "z's value depends on which branch of the switch ran")
	require.Contains(t, points, yBB1)
	require.Contains(t, points, yBB2)
	require.Contains(t, points, zDef, "self-inclusion: the assignment location is always in its own row")
}

// SC3: let mut x=(1,2); x.0+=1; let y=x.0; let z=x.1; — tuple fields
// are structurally disjoint, so y and z must not share dependencies.
func TestFlowSC3TupleFieldsAreDisjoint(t *testing.T) {
	x := place.Root(place.Local(1))
	x0 := x.Project(place.TupleProj(0))
	x1 := x.Project(place.TupleProj(1))
	y := place.Root(place.Local(2))
	z := place.Root(place.Local(3))

	blocks := []ir.Block{
		{
			ID: 0,
			Statements: []ir.Statement{
				ir.AssignStmt(x0, ir.UseConst()),
				ir.AssignStmt(x1, ir.UseConst()),
				ir.AssignStmt(x0, ir.BinaryOpRvalue(x0)),
				ir.AssignStmt(y, ir.UseOperand(x0)),
				ir.AssignStmt(z, ir.UseOperand(x1)),
			},
			Terminator: ir.Terminator{Kind: ir.TermReturn},
		},
	}
	body, err := ir.NewBody("sc3", 0, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	res, err := flowanalysis.Run(body)
	require.NoError(t, err)

	yLoc := ir.Location{Block: 0, Index: 3}
	afterY, err := res.At(yLoc)
	require.NoError(t, err)
	yPoints := afterY.PointsOf(afterY.Row(y))
	require.Contains(t, yPoints, res.Point(ir.Location{Block: 0, Index: 2}), "y depends on x.0 += 1")

	zLoc := ir.Location{Block: 0, Index: 4}
	afterZ, err := res.At(zLoc)
	require.NoError(t, err)
	zPoints := afterZ.PointsOf(afterZ.Row(z))
	require.NotContains(t, zPoints, res.Point(ir.Location{Block: 0, Index: 2}), "z must not see x.0's mutation")
	require.Contains(t, zPoints, res.Point(ir.Location{Block: 0, Index: 1}), "z depends on x.1's own initialization")
}

// SC2: let mut x=1; let y=&mut x; *y+=1; let z=x; — mutation through
// a mutable reference must reach x's row.
func TestFlowSC2MutationThroughReference(t *testing.T) {
	x := place.Root(place.Local(1))
	y := place.Root(place.Local(2))
	yStar := y.Project(place.DerefProj())
	z := place.Root(place.Local(3))

	blocks := []ir.Block{
		{
			ID: 0,
			Statements: []ir.Statement{
				ir.AssignStmt(x, ir.UseConst()),
				ir.AssignStmt(y, ir.RefRvalue(x, true)),
				ir.AssignStmt(yStar, ir.BinaryOpRvalue(yStar)),
				ir.AssignStmt(z, ir.UseOperand(x)),
			},
			Terminator: ir.Terminator{Kind: ir.TermReturn},
		},
	}
	body, err := ir.NewBody("sc2", 0, blocks, ir.BorrowFacts{
		RefRegion:  map[string]ir.Region{y.Key(): 1},
		RefMutable: map[string]bool{y.Key(): true},
	})
	require.NoError(t, err)

	res, err := flowanalysis.Run(body)
	require.NoError(t, err)

	zLoc := ir.Location{Block: 0, Index: 3}
	after, err := res.At(zLoc)
	require.NoError(t, err)

	points := after.PointsOf(after.Row(z))
	require.Contains(t, points, res.Point(ir.Location{Block: 0, Index: 0}), "let mut x=1")
	require.Contains(t, points, res.Point(ir.Location{Block: 0, Index: 2}), "*y += 1")
}

// SC5: under Recurse, backward dependencies of b must include the
// callee's own mutation site; under SigOnly they must not, but both
// must include the call site itself.
func TestFlowSC5RecurseVsSigOnly(t *testing.T) {
	param := place.Root(place.Local(1)) // fn foo(x: &mut i32)
	paramStar := param.Project(place.DerefProj())
	foo := ir.Block{
		ID:         0,
		Statements: []ir.Statement{ir.AssignStmt(paramStar, ir.BinaryOpRvalue(paramStar))},
		Terminator: ir.Terminator{Kind: ir.TermReturn},
	}
	fooBody, err := ir.NewBody("foo", 1, []ir.Block{foo}, ir.BorrowFacts{
		RefRegion:  map[string]ir.Region{param.Key(): 1},
		RefMutable: map[string]bool{param.Key(): true},
	})
	require.NoError(t, err)

	a := place.Root(place.Local(1))
	b := place.Root(place.Local(2))
	main := ir.Block{
		ID:         0,
		Statements: []ir.Statement{ir.AssignStmt(a, ir.UseConst())},
		Terminator: ir.Terminator{
			Kind: ir.TermCall,
			Call: &ir.Call{Func: "foo", Args: []place.Place{a}, MutRefArgs: []int{0}, Dest: 1, HasDest: true},
		},
	}
	merge := ir.Block{
		ID:         1,
		Statements: []ir.Statement{ir.AssignStmt(b, ir.UseOperand(a))},
		Terminator: ir.Terminator{Kind: ir.TermReturn},
	}
	mainBody, err := ir.NewBody("main", 0, []ir.Block{main, merge}, ir.BorrowFacts{})
	require.NoError(t, err)

	callLoc := ir.Location{Block: 0, Index: 1}
	resolver := flowanalysis.MapResolver{"foo": fooBody}

	sigOnly, err := flowanalysis.Run(mainBody)
	require.NoError(t, err)
	bLoc := ir.Location{Block: 1, Index: 0}
	afterSig, err := sigOnly.At(bLoc)
	require.NoError(t, err)
	sigPoints := afterSig.PointsOf(afterSig.Row(b))
	require.Contains(t, sigPoints, sigOnly.Point(callLoc), "call site must always be in the slice")
	for _, p := range sigPoints {
		require.NotEqual(t, "foo", p.Frame, "SigOnly must not surface foo's internal mutation site")
	}

	recurse, err := flowanalysis.Run(mainBody,
		flowanalysis.WithEvaluationMode(flowanalysis.EvaluationMode{Aliases: sigOnly.Aliases().Mode(), Context: flowanalysis.Recurse}),
		flowanalysis.WithCallResolver(resolver),
	)
	require.NoError(t, err)
	afterRec, err := recurse.At(bLoc)
	require.NoError(t, err)
	recPoints := afterRec.PointsOf(afterRec.Row(b))
	require.Contains(t, recPoints, recurse.Point(callLoc))

	foundCalleeMutation := false
	for _, p := range recPoints {
		if p.Frame == "foo" {
			foundCalleeMutation = true
		}
	}
	require.True(t, foundCalleeMutation, "Recurse mode must surface foo's internal mutation site")
}
