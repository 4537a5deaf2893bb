// SPDX-License-Identifier: MIT
package flowanalysis

import "errors"

// Sentinel errors for the fatal fixpoint kinds of spec.md §7's
// taxonomy. No code path in this package returns either of them: the
// fatal error Run reports is the one aliases.BuildAliases returns
// (aliases.ErrInvalidBody for a dereferenced place with no region
// fact). CalleeUnavailable and RecursionBudgetExceeded are not errors
// at all — they are silent downgrades to the modular summary,
// observable only as reduced precision (logged at debug level when a
// Logger option is set).
var (
	// ErrInconsistentBorrowFacts names a place.Domain/aliases
	// inconsistency. Not returned by Run; missing region facts are
	// rejected earlier by aliases.BuildAliases.
	ErrInconsistentBorrowFacts = errors.New("flowanalysis: inconsistent borrow facts")

	// ErrUnsupportedProjection names an unsupported projection kind in
	// a mutation triple's places. Not returned by Run.
	ErrUnsupportedProjection = errors.New("flowanalysis: unsupported projection")
)
