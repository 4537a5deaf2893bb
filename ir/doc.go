// Package ir defines the three-address procedure representation that
// flowslice analyzes: Body, Block, Statement, Terminator, Rvalue, and
// the borrow-check region facts consumed by package aliases.
//
// This is the "collaborator compiler frontend" contract of spec.md §6:
// flowslice does not parse or type-check source itself. A caller builds
// a Body (and its BorrowFacts) from whatever IR their own front end
// produces and hands it to flowslice.ComputeFlow.
//
// Complexity and concurrency: Body and BorrowFacts are immutable once
// constructed (spec.md §3's lifecycle); all accessors here are safe for
// concurrent read-only use, matching the immutability contract that
// package core documents for its Graph after construction-time options
// are applied.
package ir
