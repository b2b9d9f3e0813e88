// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CSR holds a matrix in compressed-row format. Columns are sorted within each row
// and there are no duplicates
type CSR struct {
	M, N int       // dimensions
	P    []int     // [M+1] row pointers
	J    []int     // [nnz] column indices
	X    []float64 // [nnz] values
}

// Dims returns the dimensions
func (o *CSR) Dims() (m, n int) { return o.M, o.N }

// Nnz returns the number of stored values
func (o *CSR) Nnz() int { return len(o.X) }

// Row returns the columns and values of row i (views; do not modify)
func (o *CSR) Row(i int) (cols []int, vals []float64) {
	return o.J[o.P[i]:o.P[i+1]], o.X[o.P[i]:o.P[i+1]]
}

// At returns the value at (i, j)
func (o *CSR) At(i, j int) float64 {
	cols, vals := o.Row(i)
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return vals[k]
	}
	return 0
}

// MulVec computes y := A・x
func (o *CSR) MulVec(y, x []float64) {
	for i := 0; i < o.M; i++ {
		y[i] = 0
		for k := o.P[i]; k < o.P[i+1]; k++ {
			y[i] += o.X[k] * x[o.J[k]]
		}
	}
}

// NonzeroRows returns the sorted indices of rows with at least one stored value
func (o *CSR) NonzeroRows() (rows []int) {
	for i := 0; i < o.M; i++ {
		if o.P[i+1] > o.P[i] {
			rows = append(rows, i)
		}
	}
	return
}

// Sub extracts the square sub-matrix A[idx, idx]; idx must be sorted and unique
func (o *CSR) Sub(idx []int) (s *CSR) {
	pos := make(map[int]int, len(idx))
	for k, i := range idx {
		pos[i] = k
	}
	s = &CSR{M: len(idx), N: len(idx), P: make([]int, len(idx)+1)}
	for r, i := range idx {
		cols, vals := o.Row(i)
		for k, j := range cols {
			if c, ok := pos[j]; ok {
				s.J = append(s.J, c)
				s.X = append(s.X, vals[k])
			}
		}
		s.P[r+1] = len(s.X)
	}
	return
}

// ToDense converts this matrix to dense format. It returns nil for empty dimensions
func (o *CSR) ToDense() *mat.Dense {
	if o.M == 0 || o.N == 0 {
		return nil
	}
	d := mat.NewDense(o.M, o.N, nil)
	for i := 0; i < o.M; i++ {
		for k := o.P[i]; k < o.P[i+1]; k++ {
			d.Set(i, o.J[k], o.X[k])
		}
	}
	return d
}

// ToTriplet converts this matrix back to a Triplet with fixed dimensions
func (o *CSR) ToTriplet() (t *Triplet) {
	t = new(Triplet)
	t.Init(o.M, o.N, len(o.X))
	for i := 0; i < o.M; i++ {
		for k := o.P[i]; k < o.P[i+1]; k++ {
			t.Put(i, o.J[k], o.X[k])
		}
	}
	return
}
