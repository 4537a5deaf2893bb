// SPDX-License-Identifier: MIT
package place_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvard/flowslice/place"
)

func TestPlaceEqual(t *testing.T) {
	x := place.Root(place.Local(1))
	xf0 := x.Project(place.FieldProj(0))
	xf0b := place.Root(place.Local(1)).Project(place.FieldProj(0))
	xf1 := x.Project(place.FieldProj(1))

	require.True(t, xf0.Equal(xf0b))
	require.False(t, xf0.Equal(xf1))
	require.False(t, x.Equal(xf0))
}

func TestPlaceIsPrefixOf(t *testing.T) {
	x := place.Root(place.Local(1))
	xf0 := x.Project(place.FieldProj(0))
	xf0star := xf0.Project(place.DerefProj())

	require.True(t, x.IsPrefixOf(xf0))
	require.True(t, xf0.IsPrefixOf(xf0star))
	require.False(t, xf0star.IsPrefixOf(xf0))

	y := place.Root(place.Local(2))
	require.False(t, x.IsPrefixOf(y))
}

func TestPlaceConflictsStructural(t *testing.T) {
	tup := place.Root(place.Local(1))
	tup0 := tup.Project(place.TupleProj(0))
	tup1 := tup.Project(place.TupleProj(1))

	require.True(t, tup.Conflicts(tup0), "whole conflicts with a field")
	require.True(t, tup0.Conflicts(tup), "conflict is symmetric")
	require.False(t, tup0.Conflicts(tup1), "disjoint tuple fields do not conflict")
}

func TestPlaceConflictsArrayIndex(t *testing.T) {
	arr := place.Root(place.Local(1))
	a0 := arr.Project(place.ConstIndexProj(0))
	a1 := arr.Project(place.ConstIndexProj(1))
	aRuntime := arr.Project(place.RuntimeIndexProj())

	require.False(t, a0.Conflicts(a1), "distinct constant indices provably disjoint")
	require.True(t, a0.Conflicts(aRuntime), "unknown index may alias any constant index")
}

func TestPlaceConflictsDowncast(t *testing.T) {
	e := place.Root(place.Local(1))
	v0 := e.Project(place.DowncastProj(0))
	v1 := e.Project(place.DowncastProj(1))

	require.True(t, e.Conflicts(v0), "base storage encloses every variant")
	require.False(t, v0.Conflicts(v1), "distinct variants are disjoint per original_source semantics")
}

func TestPlaceString(t *testing.T) {
	p := place.Root(place.Local(3)).Project(place.FieldProj(1)).Project(place.DerefProj())
	require.Equal(t, "_3.f1.*", p.String())
}

func TestPlaceTruncate(t *testing.T) {
	p := place.Root(place.Local(1)).Project(place.FieldProj(0)).Project(place.DerefProj())
	require.True(t, p.Truncate(1).Equal(place.Root(place.Local(1)).Project(place.FieldProj(0))))
	require.True(t, p.Truncate(0).Equal(place.Root(place.Local(1))))
}
