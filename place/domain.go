// SPDX-License-Identifier: MIT
package place

import (
	"sync"

	"github.com/halvard/flowslice/indexset"
)

// Domain is the dense Place domain `P` of spec.md §3: an append-only
// bijection between Places and contiguous integers, collected by one
// pre-pass walk of a procedure body (package aliases does that walk).
//
// Place is not a comparable Go type (its Projections field is a
// slice), so Domain cannot be an indexset.IndexedDomain[Place]
// directly; instead it indexes on Place.Key() and keeps the original
// structured Place alongside each key, the same way a database indexes
// a derived column while keeping the source row.
type Domain struct {
	mu       sync.RWMutex
	keys     *indexset.IndexedDomain[string]
	registry map[string]Place
}

// NewDomain constructs an empty Domain.
func NewDomain(capacityHint int) *Domain {
	return &Domain{
		keys:     indexset.NewIndexedDomain[string](capacityHint),
		registry: make(map[string]Place, capacityHint),
	}
}

// Insert assigns p the next available index if it is not already
// present (by structural equality), and returns its index.
func (d *Domain) Insert(p Place) int {
	k := p.Key()
	d.mu.Lock()
	if _, ok := d.registry[k]; !ok {
		d.registry[k] = p
	}
	d.mu.Unlock()

	return d.keys.Insert(k)
}

// Index returns p's assigned index, or (0, false) if p was never
// inserted.
func (d *Domain) Index(p Place) (int, bool) {
	return d.keys.Index(p.Key())
}

// At returns the Place assigned to index i.
func (d *Domain) At(i int) Place {
	k := d.keys.Value(i)
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.registry[k]
}

// Size returns the number of distinct places in the domain.
func (d *Domain) Size() int { return d.keys.Size() }

// Contains reports whether p has been inserted.
func (d *Domain) Contains(p Place) bool {
	_, ok := d.Index(p)

	return ok
}

// All returns every Place in the domain, in insertion order.
func (d *Domain) All() []Place {
	keys := d.keys.Values()
	out := make([]Place, len(keys))
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i, k := range keys {
		out[i] = d.registry[k]
	}

	return out
}

// Keys returns the IndexedDomain[string] backing this Domain, for
// callers (package indexset's IndexMatrix) that need the raw key
// domain rather than structured Place values.
func (d *Domain) Keys() *indexset.IndexedDomain[string] { return d.keys }
