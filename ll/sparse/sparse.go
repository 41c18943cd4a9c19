/*
Package sparse implements a simple type for sparse integer matrices.
It is used for predictive parser tables, where rows are non-terminals and
columns are lookahead symbols. Most cells of such a table are empty.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html

Matrix cells are write-once: a cell, once set, keeps its value. Trying to
set a different value reports the value present.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package sparse

import (
	"fmt"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value, returns (4711, true)
//     v := M.Value(2, 3)             // returns 4711
//     M.Set(2, 3, 123)               // returns (4711, false): cell is occupied
//     cnt := M.ValueCount()          // returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values cannot be deleted or overwritten.
type IntMatrix struct {
	values  []triplet // ordered by row, then column
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	at, found := m.search(i, j)
	if found {
		return m.values[at].value
	}
	return m.nullval
}

// Set a value in the matrix at position (i,j), if the cell is empty.
// Set returns the value stored at (i,j) after the call, and false if a
// value different from the argument was already present. Setting the
// null-value or a position outside the matrix panics.
func (m *IntMatrix) Set(i, j int, value int32) (int32, bool) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix.Set(%d,%d) outside of %dx%d matrix", i, j, m.rowcnt, m.colcnt))
	}
	if value == m.nullval {
		panic("sparse.IntMatrix.Set() with null-value")
	}
	at, found := m.search(i, j)
	if found {
		v := m.values[at].value
		return v, v == value
	}
	tnew := triplet{row: i, col: j, value: value}
	// the following 3 lines have to work for at being the right edge of values or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return value, true
}

// Each calls f for every value in the matrix, row by row.
func (m *IntMatrix) Each(f func(i, j int, value int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value)
	}
}

// search finds the position of (i,j) in the ordered triplets, or the position
// where (i,j) would have to be inserted.
func (m *IntMatrix) search(i, j int) (int, bool) {
	lo, hi := 0, len(m.values)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.values[mid].storedLeftOf(i, j) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(m.values) && m.values[lo].storedAt(i, j)
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}
