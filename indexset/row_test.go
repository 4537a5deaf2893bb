// SPDX-License-Identifier: MIT
package indexset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvard/flowslice/indexset"
)

func TestRowUnionInto(t *testing.T) {
	var a, b indexset.Row
	a.Insert(1)
	a.Insert(3)
	b.Insert(3)
	b.Insert(5)

	changed := a.UnionInto(b)
	require.True(t, changed)
	require.ElementsMatch(t, []int{1, 3, 5}, a.Iter())

	// A second union with the same set is a no-op.
	require.False(t, a.UnionInto(b))
}

func TestRowIntersectInto(t *testing.T) {
	var a, b indexset.Row
	a.Insert(1)
	a.Insert(2)
	a.Insert(3)
	b.Insert(2)
	b.Insert(3)
	b.Insert(4)

	require.True(t, a.IntersectInto(b))
	require.ElementsMatch(t, []int{2, 3}, a.Iter())
}

func TestRowCloneFromReusesBacking(t *testing.T) {
	var src indexset.Row
	src.Insert(10)

	var dst indexset.Row
	dst.Insert(1)
	dst.CloneFrom(src)

	require.True(t, dst.Equal(src))
	require.False(t, dst.Contains(1))
}

func TestRowEmpty(t *testing.T) {
	var r indexset.Row
	require.True(t, r.IsEmpty())
	require.Equal(t, 0, r.Len())
}

func TestIndexedDomainInsertIsStable(t *testing.T) {
	d := indexset.NewIndexedDomain[string](0)
	i0 := d.Insert("a")
	i1 := d.Insert("b")
	i0b := d.Insert("a")

	require.Equal(t, i0, i0b)
	require.NotEqual(t, i0, i1)
	require.Equal(t, 2, d.Size())
	require.Equal(t, "a", d.Value(i0))
}

func TestIndexMatrixStrongWeakUpdate(t *testing.T) {
	rows := indexset.NewIndexedDomain[string](0)
	cols := indexset.NewIndexedDomain[int](0)
	m := indexset.NewIndexMatrix[string, int](rows, cols)

	m.Insert("p", 1)
	m.Insert("p", 2)
	require.ElementsMatch(t, []int{1, 2}, m.RowValues("p"))

	var fresh indexset.Row
	fresh.Insert(cols.Insert(9))
	m.SetRow("p", fresh) // strong update replaces
	require.ElementsMatch(t, []int{9}, m.RowValues("p"))

	m.UnionRowInto("p", func() indexset.Row { var r indexset.Row; r.Insert(cols.Insert(10)); return r }()) // weak update joins
	require.ElementsMatch(t, []int{9, 10}, m.RowValues("p"))
}
