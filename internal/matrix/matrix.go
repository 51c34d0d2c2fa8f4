// Package matrix provides a row-major, grow-on-demand matrix used as the
// dynamic-programming scratch space of the LCS and Similar searches.
package matrix

// Matrix is a contiguous row-major buffer with a fixed column width and
// rows allocated on demand. The backing store is retained across Reset
// calls so a search reuses one allocation for its whole lifetime.
//
// Allocate may grow (and therefore move) the backing store, so a row slice
// obtained before an Allocate call must not be used after it; re-fetch rows
// with Row instead of holding references across allocations.
type Matrix[T any] struct {
	columns int
	cells   []T
}

// Reset fixes the column width for a new query and drops all rows. The
// backing store is kept.
func (m *Matrix[T]) Reset(columns int) {
	m.columns = columns
	m.cells = m.cells[:0]
}

// Columns returns the fixed column width.
func (m *Matrix[T]) Columns() int {
	return m.columns
}

// Reserve ensures capacity for the given number of rows without changing
// the allocated row count.
func (m *Matrix[T]) Reserve(rows int) {
	need := rows * m.columns
	if cap(m.cells) >= need {
		return
	}
	cells := make([]T, len(m.cells), need)
	copy(cells, m.cells)
	m.cells = cells
}

// Row returns row i. The row must have been allocated.
func (m *Matrix[T]) Row(i int) []T {
	return m.cells[i*m.columns : (i+1)*m.columns]
}

// Allocate ensures rows 0..i exist and returns row i. Newly exposed cells
// may hold stale values from a previous query; callers overwrite every
// column of the rows they compute.
func (m *Matrix[T]) Allocate(i int) []T {
	need := (i + 1) * m.columns
	if need > len(m.cells) {
		if need > cap(m.cells) {
			cells := make([]T, need, max(need, 2*cap(m.cells)))
			copy(cells, m.cells)
			m.cells = cells
		} else {
			m.cells = m.cells[:need]
		}
	}
	return m.Row(i)
}
