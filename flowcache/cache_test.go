// SPDX-License-Identifier: MIT
package flowcache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvard/flowslice/flowanalysis"
	"github.com/halvard/flowslice/flowcache"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// straightLineBody builds `_1 = <const>; _2 = _1` as a two-statement,
// one-block, zero-parameter procedure, matching the SC-style fixtures
// used across package slicing's tests.
func straightLineBody(t *testing.T, name string) *ir.Body {
	t.Helper()
	x := place.Root(1)
	y := place.Root(2)
	blocks := []ir.Block{
		{
			ID: 0,
			Statements: []ir.Statement{
				ir.AssignStmt(x, ir.UseConst()),
				ir.AssignStmt(y, ir.UseOperand(x)),
			},
			Terminator: ir.Terminator{Kind: ir.TermReturn},
		},
	}
	body, err := ir.NewBody(name, 0, blocks, ir.BorrowFacts{})
	require.NoError(t, err)

	return body
}

func TestCacheHitReturnsSameResult(t *testing.T) {
	body := straightLineBody(t, "proc1")
	c := flowcache.New(nil)

	r1, err := c.Get(body, flowanalysis.DefaultEvaluationMode())
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	r2, err := c.Get(body, flowanalysis.DefaultEvaluationMode())
	require.NoError(t, err)
	require.Same(t, r1, r2)
	require.Equal(t, 1, c.Len())
}

func TestCacheDistinguishesByMode(t *testing.T) {
	body := straightLineBody(t, "proc2")
	c := flowcache.New(nil)

	modeA := flowanalysis.DefaultEvaluationMode()
	modeB := modeA
	modeB.Context = flowanalysis.Recurse

	_, err := c.Get(body, modeA)
	require.NoError(t, err)
	_, err = c.Get(body, modeB)
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
}

func TestCacheInvalidate(t *testing.T) {
	body := straightLineBody(t, "proc3")
	c := flowcache.New(nil)

	mode := flowanalysis.DefaultEvaluationMode()
	_, err := c.Get(body, mode)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Invalidate("proc3", mode)
	require.Equal(t, 0, c.Len())
}
