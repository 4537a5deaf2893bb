// SPDX-License-Identifier: MIT
package flowanalysis

import "github.com/halvard/flowslice/ir"

// CallResolver looks up a callee's body by name. It is the collaborator
// compiler frontend's hook for Recurse mode (spec.md §4.5); a nil
// CallResolver is equivalent to every call returning CalleeUnavailable.
type CallResolver interface {
	Resolve(name string) (*ir.Body, bool)
}

// MapResolver is a CallResolver backed by a plain map, sufficient for
// single-package or test scenarios where every callee body is already
// in hand.
type MapResolver map[string]*ir.Body

// Resolve implements CallResolver.
func (m MapResolver) Resolve(name string) (*ir.Body, bool) {
	b, ok := m[name]

	return b, ok
}
