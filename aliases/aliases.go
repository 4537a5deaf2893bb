// SPDX-License-Identifier: MIT
package aliases

import (
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/place"
)

// maxUnfoldDepth bounds reference-unfolding recursion in
// ReachableValues. Well-formed borrow facts never produce a cycle of
// region-outlives edges feeding back into themselves through distinct
// pointees, but a defensively bounded depth turns any such
// inconsistency into an imprecision rather than a hang.
const maxUnfoldDepth = 64

// Aliases extends PlaceInfo's structural conflict relation across
// reference edges using region-equivalence classes (spec.md §4.2). It
// is constructed once per procedure and is immutable thereafter.
type Aliases struct {
	info    *PlaceInfo
	classes *regionClasses

	// regionPointees maps a region to every place directly taken by
	// reference under that region, i.e. every p such that some
	// `lhs = &[mut] p` (or `&raw`) assignment tags lhs's region as the
	// key. This is the "abstract reference tree" of spec.md §4.2,
	// flattened to the concrete edges the body's Ref rvalues establish.
	regionPointees map[ir.Region][]place.Place
}

// BuildAliases constructs Aliases for body under mode, building the
// Place domain, region equivalence classes, and reference-pointee edges
// in one pass each.
func BuildAliases(body *ir.Body, mode Mode) (*Aliases, error) {
	info, err := BuildPlaceInfo(body, mode)
	if err != nil {
		return nil, err
	}

	return &Aliases{
		info:           info,
		classes:        buildRegionClasses(body.Facts),
		regionPointees: collectRegionPointees(body),
	}, nil
}

func collectRegionPointees(body *ir.Body) map[ir.Region][]place.Place {
	out := make(map[ir.Region][]place.Place)
	for i := range body.Blocks {
		for _, s := range body.Blocks[i].Statements {
			if s.Kind != ir.StmtAssign || s.RHS.Kind != ir.Ref {
				continue
			}
			region, ok := body.Facts.RegionOf(s.LHS)
			if !ok || len(s.RHS.Places) == 0 {
				continue
			}
			out[region] = append(out[region], s.RHS.Places[0])
		}
	}

	return out
}

// Info returns the underlying PlaceInfo.
func (a *Aliases) Info() *PlaceInfo { return a.info }

// Mode returns the precision mode these Aliases were built with.
func (a *Aliases) Mode() Mode { return a.info.Mode() }

// Conflicts delegates to PlaceInfo.Conflicts (purely structural).
func (a *Aliases) Conflicts(p place.Place) []place.Place {
	return a.info.Conflicts(p)
}

// Normalize delegates to PlaceInfo.Normalize.
func (a *Aliases) Normalize(p place.Place) place.Place {
	return a.info.Normalize(p)
}

// ReachableValues returns every concrete place p may read (m ==
// ImmRead) or write (m == Mut) by following reference edges according
// to this Aliases' Mode (spec.md §4.2): every place structurally
// conflicting with some concrete root p resolves to after unfolding
// all of p's dereferences.
func (a *Aliases) ReachableValues(p place.Place, m Mutability) []place.Place {
	roots := a.resolve(p, m, 0)
	seen := make(map[string]bool, len(roots))
	var out []place.Place
	for _, root := range roots {
		for _, q := range a.info.AllPlaces() {
			if root.Conflicts(q) && !seen[q.Key()] {
				seen[q.Key()] = true
				out = append(out, q)
			}
		}
	}

	return out
}

// resolve unfolds every Deref projection in p into the set of concrete
// (dereference-free-at-the-point-of-resolution) places it may denote,
// per the alias layer's Mode.
func (a *Aliases) resolve(p place.Place, m Mutability, depth int) []place.Place {
	i := p.FirstDerefIndex()
	if i == -1 {
		return []place.Place{p}
	}
	if depth >= maxUnfoldDepth {
		return []place.Place{p}
	}

	ref := p.Truncate(i)
	region, ok := a.info.body.Facts.RegionOf(ref)
	if !ok {
		return nil // validated not to happen for places already in the domain
	}
	if a.info.mode.Mutability == DistinguishMut && m == Mut && !a.info.body.Facts.IsMutableRef(ref) {
		return nil
	}
	suffix := p.Projections[i+1:]

	var out []place.Place
	for region2, pointees := range a.regionPointees {
		if a.info.mode.Pointer != Conservative && !a.classes.sameClass(region, region2) {
			continue
		}
		for _, pointee := range pointees {
			out = append(out, a.resolve(pointee.Append(suffix), m, depth+1)...)
		}
	}
	if out == nil {
		// ref has no local `&[mut] p` assignment establishing its
		// pointee — it is a reference supplied from outside this body
		// (a formal parameter, most commonly). With no local definition
		// to unfold, p itself is the most precise concrete place this
		// procedure's own analysis can resolve it to; package
		// flowanalysis's Recurse mode substitutes the caller's real
		// argument back in at the call site.
		return []place.Place{p}
	}

	return out
}
