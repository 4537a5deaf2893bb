// SPDX-License-Identifier: MIT
package flowanalysis

import (
	"github.com/halvard/flowslice/indexset"
	"github.com/halvard/flowslice/place"
)

// FlowMatrix is the lattice element F of spec.md §3: a mapping from
// place to the set of program points whose effects reach that place's
// current value. Like package place's Domain, it indexes rows by
// Place.Key() rather than by Place itself, since Place is not
// Go-comparable.
//
// points is shared by every FlowMatrix produced during one Result's
// computation, so that a ProgramPoint's index is stable across blocks
// and across recursive call frames.
type FlowMatrix struct {
	points *indexset.IndexedDomain[ProgramPoint]
	rows   map[string]indexset.Row
}

// newFlowMatrix returns an empty (bottom) matrix sharing points.
func newFlowMatrix(points *indexset.IndexedDomain[ProgramPoint]) *FlowMatrix {
	return &FlowMatrix{points: points, rows: make(map[string]indexset.Row)}
}

// Row returns p's current row, or the empty row if p has never been
// written.
func (m *FlowMatrix) Row(p place.Place) indexset.Row {
	return m.rows[p.Key()]
}

// SetRow replaces p's row wholesale (a strong update).
func (m *FlowMatrix) SetRow(p place.Place, row indexset.Row) {
	m.rows[p.Key()] = row
}

// UnionRowInto unions src into p's row in place (a weak update),
// reporting whether the row changed.
func (m *FlowMatrix) UnionRowInto(p place.Place, src indexset.Row) bool {
	row := m.rows[p.Key()]
	changed := row.UnionInto(src)
	m.rows[p.Key()] = row

	return changed
}

// Clone returns an independent deep copy of m.
func (m *FlowMatrix) Clone() *FlowMatrix {
	out := newFlowMatrix(m.points)
	for k, r := range m.rows {
		out.rows[k] = r.Clone()
	}

	return out
}

// JoinInto unions every row of src into m, pointwise (the fixpoint's
// merge-point join). Reports whether m changed.
func (m *FlowMatrix) JoinInto(src *FlowMatrix) bool {
	changed := false
	for k, r := range src.rows {
		row := m.rows[k]
		if row.UnionInto(r) {
			changed = true
		}
		m.rows[k] = row
	}

	return changed
}

// Equal reports whether m and other have identical rows.
func (m *FlowMatrix) Equal(other *FlowMatrix) bool {
	if len(m.rows) != len(other.rows) {
		return false
	}
	for k, r := range m.rows {
		if !r.Equal(other.rows[k]) {
			return false
		}
	}

	return true
}

// rowOfPoints builds a Row containing exactly pts, interning each into
// the shared ProgramPoint domain.
func (m *FlowMatrix) rowOfPoints(pts ...ProgramPoint) indexset.Row {
	row := indexset.NewRow(0)
	for _, p := range pts {
		row.Insert(m.points.Insert(p))
	}

	return row
}

// PointsOf decodes row back into the ProgramPoint values it contains.
func (m *FlowMatrix) PointsOf(row indexset.Row) []ProgramPoint {
	out := make([]ProgramPoint, 0, row.Len())
	for _, i := range row.Iter() {
		out = append(out, m.points.Value(i))
	}

	return out
}
