// SPDX-License-Identifier: MIT

// Package controldeps computes, for a procedure body, which
// conditional branch each program point is control dependent on
// (spec.md §4.3).
//
// A block Y with more than one successor is a branch point. A block X
// is control dependent on Y when some path from Y reaches X without
// passing through Y's immediate post-dominator, i.e. X's execution is
// decided by which way Y branched. The classic route to this relation
// is via the post-dominator tree of the procedure's control-flow
// graph, computed here with the Cooper-Harvey-Kennedy "engineered"
// dominance algorithm over a CFG reversed and rooted at a synthetic
// unified exit node fed only by TermReturn blocks; TermUnwind and
// TermUnreachable blocks never reach the exit and so never
// post-dominate anything, matching spec.md §9(b)'s resolution.
package controldeps
