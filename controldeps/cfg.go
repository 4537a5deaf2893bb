// SPDX-License-Identifier: MIT
package controldeps

import "github.com/halvard/flowslice/ir"

// cfg is the procedure's control-flow graph augmented with a
// synthetic unified exit node, numbered one past the body's last
// block. Only TermReturn blocks feed the exit node: TermUnwind and
// TermUnreachable blocks are dead ends for post-dominance purposes
// (spec.md §9(b)).
type cfg struct {
	body     *ir.Body
	exit     int
	exitPred map[int]bool // block IDs whose terminator is TermReturn
}

func newCFG(body *ir.Body) *cfg {
	g := &cfg{body: body, exit: len(body.Blocks), exitPred: make(map[int]bool)}
	for i := range body.Blocks {
		if body.Blocks[i].Terminator.Kind == ir.TermReturn {
			g.exitPred[i] = true
		}
	}

	return g
}

// numNodes counts the body's blocks plus the synthetic exit node.
func (g *cfg) numNodes() int { return g.exit + 1 }

// out returns n's forward successors: its terminator's real successors,
// plus the synthetic exit node if n is a TermReturn block.
func (g *cfg) out(n int) []int {
	if n == g.exit {
		return nil
	}
	succs := g.body.Successors(ir.BlockID(n))
	out := make([]int, 0, len(succs)+1)
	for _, s := range succs {
		out = append(out, int(s))
	}
	if g.exitPred[n] {
		out = append(out, g.exit)
	}

	return out
}

// in returns n's predecessors in the augmented graph.
func (g *cfg) in(n int) []int {
	if n == g.exit {
		out := make([]int, 0, len(g.exitPred))
		for b := range g.exitPred {
			out = append(out, b)
		}

		return out
	}
	preds := g.body.Predecessors(ir.BlockID(n))
	out := make([]int, len(preds))
	for i, p := range preds {
		out[i] = int(p)
	}

	return out
}

// reversed is a view over g with every edge flipped: out becomes in
// and vice versa. Post-dominance in g is ordinary dominance in
// reversed, rooted at g's exit node (spec.md §4.3).
type reversed struct{ g *cfg }

func (r reversed) numNodes() int   { return r.g.numNodes() }
func (r reversed) out(n int) []int { return r.g.in(n) }
func (r reversed) in(n int) []int  { return r.g.out(n) }
