// SPDX-License-Identifier: MIT

// Package flowanalysis computes the forward information-flow fixpoint
// over a procedure body (spec.md §4.5): at every program point, a
// mapping from each place to the set of program points whose effects
// reach that place's current value. It combines the places/aliases
// layer (package aliases), the control-dependency map (package
// controldeps), and the modular mutation visitor (package mutations)
// into a single worklist-driven transfer.
package flowanalysis
