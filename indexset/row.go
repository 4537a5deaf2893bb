// SPDX-License-Identifier: MIT
package indexset

import (
	"github.com/bits-and-blooms/bitset"
)

// Row is a dense bitset over 0..n-1, the set representation backing
// every IndexMatrix row and every ad hoc set-of-indices value flowing
// through the fixpoint (spec.md §4.1).
//
// The zero Row is a valid empty set ("bottom"); this lets flow matrices
// start with unallocated rows and only pay for storage once a location
// is actually inserted.
type Row struct {
	bits *bitset.BitSet
}

// NewRow constructs an empty Row sized to hold indices in [0, n).
func NewRow(n uint) Row {
	return Row{bits: bitset.New(n)}
}

// Insert adds index i to the row, growing backing storage as needed.
func (r *Row) Insert(i int) {
	if r.bits == nil {
		r.bits = bitset.New(uint(i) + 1)
	}
	r.bits.Set(uint(i))
}

// Contains reports whether index i is a member of the row.
func (r Row) Contains(i int) bool {
	if r.bits == nil {
		return false
	}

	return r.bits.Test(uint(i))
}

// IsEmpty reports whether the row has no members.
func (r Row) IsEmpty() bool {
	return r.bits == nil || r.bits.None()
}

// Len returns the number of set indices.
func (r Row) Len() int {
	if r.bits == nil {
		return 0
	}

	return int(r.bits.Count())
}

// Clone returns an independent copy of r with a fresh backing array.
// CloneFrom is the allocation-reusing counterpart.
func (r Row) Clone() Row {
	if r.bits == nil {
		return Row{}
	}

	return Row{bits: r.bits.Clone()}
}

// CloneFrom overwrites r's contents with src's, reusing r's backing
// array when it is already large enough. This is the allocation-reusing
// copy spec.md §4.1 calls for.
func (r *Row) CloneFrom(src Row) {
	if src.bits == nil {
		r.bits = nil

		return
	}
	if r.bits == nil {
		r.bits = src.bits.Clone()

		return
	}
	r.bits.ClearAll()
	r.UnionInto(src)
}

// UnionInto mutates r to be the pointwise union r | other, returning
// whether r changed. A changed result drives fixpoint worklist
// re-propagation (spec.md §4.5).
func (r *Row) UnionInto(other Row) bool {
	if other.bits == nil || other.bits.None() {
		return false
	}
	if r.bits == nil {
		r.bits = bitset.New(other.bits.Len())
	}
	before := r.bits.Count()
	r.bits.InPlaceUnion(other.bits)

	return r.bits.Count() != before
}

// IntersectInto mutates r to be the pointwise intersection r & other,
// returning whether r changed.
func (r *Row) IntersectInto(other Row) bool {
	if r.bits == nil {
		return false
	}
	if other.bits == nil {
		changed := r.bits.Count() != 0
		r.bits.ClearAll()

		return changed
	}
	before := r.bits.Count()
	r.bits.InPlaceIntersection(other.bits)

	return r.bits.Count() != before
}

// Equal reports whether r and other have identical membership.
func (r Row) Equal(other Row) bool {
	switch {
	case r.bits == nil && other.bits == nil:
		return true
	case r.bits == nil:
		return other.bits.None()
	case other.bits == nil:
		return r.bits.None()
	default:
		return r.bits.SymmetricDifferenceCardinality(other.bits) == 0
	}
}

// Iter returns every set index in ascending order.
func (r Row) Iter() []int {
	if r.bits == nil {
		return nil
	}
	out := make([]int, 0, r.bits.Count())
	for i, ok := r.bits.NextSet(0); ok; i, ok = r.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}

// Union returns a new Row holding r | other, leaving both operands
// untouched.
func Union(rows ...Row) Row {
	var out Row
	for _, r := range rows {
		out.UnionInto(r)
	}

	return out
}
