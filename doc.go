// SPDX-License-Identifier: MIT

// Package flowslice computes information-flow dependencies inside a
// single procedure of a compiled imperative, statically-typed language
// with explicit references, mutable borrows, and structured aggregates
// (tuples, structs, enums, arrays).
//
// Given a target location or memory-location expression in such a
// procedure, flowslice answers "which other program points transitively
// influence (or are influenced by) this?" in both directions (backward
// slice, forward slice), and additionally reports "where is this
// location mutated?".
//
// The analysis runs in three stages, leaves first:
//
//	place/aliases    — which concrete locations a syntactic place may
//	                    conflict with, under a configurable precision
//	                    policy (package aliases)
//	control deps     — which branches decide whether a block executes,
//	                    via post-dominance over the reversed CFG
//	                    (package controldeps)
//	fixpoint         — a forward dataflow analysis producing, at every
//	                    program point, a matrix mapping each place to
//	                    the set of program points that last influenced
//	                    its current value (package flowanalysis)
//
// A slicing projection (package slicing) then walks the computed matrix
// transitively from a seed place to yield the backward or forward
// slice, or the set of program points that mutate a place.
//
// This package is the query surface a collaborator compiler frontend
// calls into: ComputeFlow, BackwardSlice, ForwardSlice, FindMutations.
// package flowcache amortizes repeated ComputeFlow calls against the
// same procedure and mode; package batch fans queries out across many
// procedures in parallel.
//
// Under the hood:
//
//	place/        — Place, Projection, Local: the abstract memory location
//	ir/           — Body, Block, Statement, Terminator, Rvalue, BorrowFacts
//	indexset/     — dense bitset-backed IndexedDomain and IndexMatrix
//	aliases/      — PlaceInfo, Aliases: conflict and reachable-value queries
//	controldeps/  — reversed-CFG post-dominators, ControlDependencies
//	mutations/    — ModularMutationVisitor, MutationTriple
//	flowanalysis/ — the forward fixpoint, EvaluationMode, call handling
//	slicing/      — BackwardSlice, ForwardSlice, FindMutations projections
//	flowcache/    — per-(procedure, mode) result cache
//	batch/        — parallel multi-procedure evaluator
//
//	go get github.com/halvard/flowslice
package flowslice
