/*
Package sparse implements a sparse matrix of int32 values, used to hold
LL(1) parsing tables. Rows are non-terminals, columns are token categories,
and cells hold production serial numbers.

Parsing tables are sparse: most (non-terminal, lookahead) pairs are errors.
Entries are therefore kept as a sorted list of (row, col, value) triplets
(COO encoding) and located by binary search.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a sparse m x n matrix of int32. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Setting a cell to the null-value clears it.
type IntMatrix struct {
	entries []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    int32
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a new matrix of size m x n. nullValue denotes empty
// cells.
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	if m < 0 || n < 0 {
		panic(fmt.Sprintf("sparse: illegal matrix dimensions %d x %d", m, n))
	}
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of non-null cells.
func (m *IntMatrix) ValueCount() int {
	return len(m.entries)
}

// Value returns the value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	m.check(i, j)
	k, found := m.search(i, j)
	if !found {
		return m.nullval
	}
	return m.entries[k].value
}

// Set puts a value at position (i,j) and returns the value previously
// stored there (NullValue for a fresh cell).
func (m *IntMatrix) Set(i, j int, value int32) int32 {
	m.check(i, j)
	k, found := m.search(i, j)
	if found {
		old := m.entries[k].value
		if value == m.nullval {
			m.entries = append(m.entries[:k], m.entries[k+1:]...)
		} else {
			m.entries[k].value = value
		}
		return old
	}
	if value == m.nullval {
		return m.nullval
	}
	m.entries = append(m.entries, triplet{})
	copy(m.entries[k+1:], m.entries[k:])
	m.entries[k] = triplet{row: i, col: j, value: value}
	return m.nullval
}

// Each calls f for every non-null cell, row by row, columns ascending.
func (m *IntMatrix) Each(f func(i, j int, value int32)) {
	for _, t := range m.entries {
		f(t.row, t.col, t.value)
	}
}

// search returns the position of (i,j) in the entries list, or the position
// where it would have to be inserted.
func (m *IntMatrix) search(i, j int) (int, bool) {
	k := sort.Search(len(m.entries), func(k int) bool {
		t := m.entries[k]
		return t.row > i || t.row == i && t.col >= j
	})
	if k < len(m.entries) && m.entries[k].row == i && m.entries[k].col == j {
		return k, true
	}
	return k, false
}

func (m *IntMatrix) check(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range %d x %d", i, j, m.rowcnt, m.colcnt))
	}
}
