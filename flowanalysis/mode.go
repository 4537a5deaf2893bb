// SPDX-License-Identifier: MIT
package flowanalysis

import "github.com/halvard/flowslice/aliases"

// ContextMode selects how a call site is treated during the fixpoint
// (spec.md §4.5, §6).
type ContextMode uint8

const (
	// SigOnly always applies the modular summary: every mutable output
	// depends on every input, regardless of whether the callee is
	// available.
	SigOnly ContextMode = iota
	// Recurse inlines the callee's own flow matrix when its body is
	// available, the recursion budget allows, and the callee is not
	// already on the call stack; otherwise it falls back to SigOnly's
	// modular summary for that call (spec.md §4.5's CalleeUnavailable /
	// RecursionBudgetExceeded non-fatal downgrades).
	Recurse
)

// EvaluationMode is the full precision configuration of a query
// (spec.md §6): aliases.Mode plus the call-handling policy.
type EvaluationMode struct {
	Aliases aliases.Mode
	Context ContextMode
}

// DefaultEvaluationMode returns {aliases.DefaultMode(), SigOnly}.
func DefaultEvaluationMode() EvaluationMode {
	return EvaluationMode{Aliases: aliases.DefaultMode(), Context: SigOnly}
}
