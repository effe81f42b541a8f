package gf2

import (
	"sort"
	"strings"
)

// Matrix is a dense matrix over GF(2), stored row by row.
type Matrix struct {
	rows [][]bool
	cols int
}

// New returns the rows × cols zero matrix.
func New(rows, cols int) *Matrix {
	m := &Matrix{rows: make([][]bool, rows), cols: cols}
	for i := range m.rows {
		m.rows[i] = make([]bool, cols)
	}
	return m
}

// FromRows copies rows into a new matrix. All rows must have the same length.
func FromRows(rows [][]bool) *Matrix {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := New(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			panic("gf2.FromRows: ragged rows")
		}
		copy(m.rows[i], row)
	}
	return m
}

func (m *Matrix) Rows() int { return len(m.rows) }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) At(i, j int) bool { return m.rows[i][j] }

func (m *Matrix) Set(i, j int, v bool) { m.rows[i][j] = v }

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return FromRows(m.rows)
}

// Combine returns the sum over GF(2) of the given rows.
func (m *Matrix) Combine(rows []int) []bool {
	out := make([]bool, m.cols)
	for _, i := range rows {
		for j, v := range m.rows[i] {
			out[j] = out[j] != v
		}
	}
	return out
}

// NullSpace returns vectors of the left null space of m: sets of row indices
// whose rows sum to zero. m is left untouched.
//
// Elimination follows Koç and Arachchige's fast Gaussian elimination: for every column,
// the first row with a 1 becomes its pivot and the column is added to every other
// column where that row has a 1. Rows never chosen as a pivot are free. A free row r
// yields the vector made of r and the pivot rows of the columns where r still has a 1.
//
// Every returned vector is sorted. When there are more rows than columns at least one
// vector is returned.
func (m *Matrix) NullSpace() [][]int {
	a := m.Clone()
	rows, cols := a.Rows(), a.Cols()
	pivotOf := make([]int, cols)
	marked := make([]bool, rows)

	for j := 0; j < cols; j++ {
		pivotOf[j] = -1
		for i := 0; i < rows; i++ {
			if !a.rows[i][j] {
				continue
			}
			pivotOf[j] = i
			marked[i] = true
			for k := 0; k < cols; k++ {
				if k == j || !a.rows[i][k] {
					continue
				}
				for r := 0; r < rows; r++ {
					a.rows[r][k] = a.rows[r][k] != a.rows[r][j]
				}
			}
			break
		}
	}

	var vectors [][]int
	for i := 0; i < rows; i++ {
		if marked[i] {
			continue
		}
		vector := []int{i}
		for j := 0; j < cols; j++ {
			if a.rows[i][j] {
				vector = append(vector, pivotOf[j])
			}
		}
		sort.Ints(vector)
		vectors = append(vectors, vector)
	}
	return vectors
}

func (m *Matrix) String() string {
	var b strings.Builder
	for _, row := range m.rows {
		for _, v := range row {
			if v {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
