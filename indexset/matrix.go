// SPDX-License-Identifier: MIT
package indexset

// IndexMatrix is a vector of Row values indexed by a RowDomain, each
// Row ranging over indices of a ColDomain. Package controldeps uses it
// with blocks as rows and branch Locations as columns; the fixpoint's
// flow matrix (flowanalysis.FlowMatrix) does not use it, because Place
// is not comparable.
type IndexMatrix[R comparable, C comparable] struct {
	Rows *IndexedDomain[R]
	Cols *IndexedDomain[C]
	data []Row
}

// NewIndexMatrix constructs an IndexMatrix over the given row and
// column domains. Rows are allocated lazily as they are first written.
func NewIndexMatrix[R comparable, C comparable](rows *IndexedDomain[R], cols *IndexedDomain[C]) *IndexMatrix[R, C] {
	return &IndexMatrix[R, C]{
		Rows: rows,
		Cols: cols,
		data: make([]Row, rows.Size()),
	}
}

func (m *IndexMatrix[R, C]) ensure(i int) {
	if i >= len(m.data) {
		grown := make([]Row, i+1)
		copy(grown, m.data)
		m.data = grown
	}
}

// Row returns the Row for row-domain value r, inserting r into Rows if
// it is not already present.
func (m *IndexMatrix[R, C]) Row(r R) Row {
	i := m.Rows.Insert(r)
	m.ensure(i)

	return m.data[i]
}

// RowAt returns the Row at a known row index without touching Rows.
func (m *IndexMatrix[R, C]) RowAt(i int) Row {
	if i >= len(m.data) {
		return Row{}
	}

	return m.data[i]
}

// Insert adds column value c to row value r's set.
func (m *IndexMatrix[R, C]) Insert(r R, c C) {
	ri := m.Rows.Insert(r)
	m.ensure(ri)
	ci := m.Cols.Insert(c)
	m.data[ri].Insert(ci)
}

// Contains reports whether r's row contains c.
func (m *IndexMatrix[R, C]) Contains(r R, c C) bool {
	ri, ok := m.Rows.Index(r)
	if !ok {
		return false
	}
	ci, ok := m.Cols.Index(c)
	if !ok {
		return false
	}

	return m.RowAt(ri).Contains(ci)
}

// SetRow overwrites row value r's entire row, returning whether the
// contents changed. This is the strong-update write of spec.md §4.5.
func (m *IndexMatrix[R, C]) SetRow(r R, row Row) bool {
	ri := m.Rows.Insert(r)
	m.ensure(ri)
	changed := !m.data[ri].Equal(row)
	m.data[ri] = row.Clone()

	return changed
}

// UnionRowInto joins src into row value r's row in place (the weak
// update of spec.md §4.5), returning whether the row changed.
func (m *IndexMatrix[R, C]) UnionRowInto(r R, src Row) bool {
	ri := m.Rows.Insert(r)
	m.ensure(ri)
	row := m.data[ri]
	changed := row.UnionInto(src)
	m.data[ri] = row

	return changed
}

// RowValues enumerates the column values set in row value r's row.
func (m *IndexMatrix[R, C]) RowValues(r R) []C {
	ri, ok := m.Rows.Index(r)
	if !ok {
		return nil
	}
	idxs := m.RowAt(ri).Iter()
	out := make([]C, 0, len(idxs))
	for _, ci := range idxs {
		out = append(out, m.Cols.Value(ci))
	}

	return out
}

// Union joins other into m pointwise (row by row, by row-domain
// identity), returning whether any row changed. Rows present only in
// other are adopted into m.
func (m *IndexMatrix[R, C]) Union(other *IndexMatrix[R, C]) bool {
	changed := false
	for i, r := range other.Rows.Values() {
		if m.UnionRowInto(r, other.RowAt(i)) {
			changed = true
		}
	}

	return changed
}

// CloneFrom overwrites m's rows with src's, reusing m's backing slice.
// This is the allocation-reusing clone_from of spec.md §4.1.
func (m *IndexMatrix[R, C]) CloneFrom(src *IndexMatrix[R, C]) {
	n := src.Rows.Size()
	if cap(m.data) >= n {
		m.data = m.data[:n]
	} else {
		m.data = make([]Row, n)
	}
	for i := 0; i < n; i++ {
		m.data[i].CloneFrom(src.RowAt(i))
	}
}

// Equal reports whether m and other hold identical rows over the same
// row domain values.
func (m *IndexMatrix[R, C]) Equal(other *IndexMatrix[R, C]) bool {
	values := m.Rows.Values()
	if len(values) != len(other.Rows.Values()) {
		return false
	}
	for i, r := range values {
		oi, ok := other.Rows.Index(r)
		if !ok {
			return false
		}
		if !m.RowAt(i).Equal(other.RowAt(oi)) {
			return false
		}
	}

	return true
}
