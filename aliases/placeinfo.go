// SPDX-License-Identifier: MIT
package aliases

import (
	"errors"
	"fmt"

	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// ErrInvalidBody indicates the supplied borrow facts lack required
// region-outlives data for a place this body actually dereferences.
// Fatal, per spec.md §7.
var ErrInvalidBody = errors.New("aliases: invalid body")

// PlaceInfo enumerates every Place syntactically present in a
// procedure body and answers structural-conflict queries (spec.md
// §4.2). It is constructed once per procedure and is immutable
// thereafter.
type PlaceInfo struct {
	body   *ir.Body
	mode   Mode
	domain *place.Domain
}

// BuildPlaceInfo walks body once, collecting its Place domain, and
// validates that every dereferenced place has a region fact available.
func BuildPlaceInfo(body *ir.Body, mode Mode) (*PlaceInfo, error) {
	dom := place.NewDomain(64)
	collectPlaces(body, dom)

	for _, p := range dom.All() {
		for i, proj := range p.Projections {
			if proj.Kind != place.Deref {
				continue
			}
			ref := p.Truncate(i)
			if _, ok := body.Facts.RegionOf(ref); !ok {
				return nil, fmt.Errorf("%w: no region fact for reference %s (dereferenced by %s)", ErrInvalidBody, ref, p)
			}
		}
	}

	return &PlaceInfo{body: body, mode: mode, domain: dom}, nil
}

// Mode returns the precision mode this PlaceInfo was built with.
func (pi *PlaceInfo) Mode() Mode { return pi.mode }

// AllPlaces returns every place syntactically present in the body, in
// domain insertion order.
func (pi *PlaceInfo) AllPlaces() []place.Place {
	return pi.domain.All()
}

// Domain exposes the underlying place.Domain, for callers that need
// the raw place domain (flowslice's TargetNotFound check queries it).
func (pi *PlaceInfo) Domain() *place.Domain { return pi.domain }

// Conflicts returns every place structurally conflicting with p (⋈,
// spec.md §3), without crossing reference edges. Use ReachableValues to
// additionally cross aliasing.
func (pi *PlaceInfo) Conflicts(p place.Place) []place.Place {
	var out []place.Place
	for _, q := range pi.domain.All() {
		if p.Conflicts(q) {
			out = append(out, q)
		}
	}

	return out
}

// Normalize returns the canonical Place sharing p's structural
// identity, so that different call sites constructing equal places
// independently share one matrix row.
func (pi *PlaceInfo) Normalize(p place.Place) place.Place {
	if i, ok := pi.domain.Index(p); ok {
		return pi.domain.At(i)
	}

	return p
}
