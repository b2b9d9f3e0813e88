// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparse implements the coordinate (triplet) accumulators used to assemble
// global sparse systems and their compressed-row counterparts
package sparse

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Triplet is a coordinate-format accumulator: an arena of (i, j, x) entries.
// Repeated (i, j) pairs are allowed and are summed by ToCSR.
//  Notes:
//   1) if the dimensions are not fixed by Init, they grow with the largest index put
//   2) a Triplet is owned by the context building it; it is not safe for concurrent use
type Triplet struct {
	m, n  int       // dimensions
	fixed bool      // dimensions were fixed by Init
	i     []int     // row indices
	j     []int     // column indices
	x     []float64 // values
}

// NewTriplet returns a new Triplet with growing dimensions
//  max -- expected number of entries (capacity hint)
func NewTriplet(max int) (o *Triplet) {
	o = new(Triplet)
	o.alloc(max)
	return
}

// Init initialises the Triplet with fixed dimensions
//  m, n -- dimensions
//  max  -- expected number of entries (capacity hint)
func (o *Triplet) Init(m, n, max int) {
	if m < 0 || n < 0 {
		chk.Panic("triplet dimensions must be non-negative. m=%d, n=%d", m, n)
	}
	o.m, o.n, o.fixed = m, n, true
	o.alloc(max)
}

// Put appends a new entry. Entries with equal (i, j) are summed on conversion
func (o *Triplet) Put(i, j int, x float64) {
	if i < 0 || j < 0 {
		chk.Panic("triplet indices must be non-negative. i=%d, j=%d", i, j)
	}
	if o.fixed {
		if i >= o.m || j >= o.n {
			chk.Panic("entry (%d,%d) is outside %d x %d triplet", i, j, o.m, o.n)
		}
	} else {
		if i >= o.m {
			o.m = i + 1
		}
		if j >= o.n {
			o.n = j + 1
		}
	}
	o.i = append(o.i, i)
	o.j = append(o.j, j)
	o.x = append(o.x, x)
}

// PutBlock appends all entries of a shifted by (i0, j0); a is transposed if trans == true
func (o *Triplet) PutBlock(i0, j0 int, a *Triplet, trans bool) {
	if a == nil {
		return
	}
	for k := range a.x {
		if trans {
			o.Put(i0+a.j[k], j0+a.i[k], a.x[k])
		} else {
			o.Put(i0+a.i[k], j0+a.j[k], a.x[k])
		}
	}
}

// PutTriplet appends α·a to this triplet
func (o *Triplet) PutTriplet(α float64, a *Triplet) {
	if a == nil {
		return
	}
	for k := range a.x {
		o.Put(a.i[k], a.j[k], α*a.x[k])
	}
}

// Start removes all entries but keeps dimensions and allocated memory
func (o *Triplet) Start() {
	o.i = o.i[:0]
	o.j = o.j[:0]
	o.x = o.x[:0]
}

// Size returns the dimensions
func (o *Triplet) Size() (m, n int) { return o.m, o.n }

// Len returns the number of entries (duplicates included)
func (o *Triplet) Len() int { return len(o.x) }

// Resize expands (or shrinks) the dimensions; e.g. to extend local blocks to global size.
// It fails if an existing entry would fall outside the new dimensions
func (o *Triplet) Resize(m, n int) (err error) {
	for k := range o.x {
		if o.i[k] >= m || o.j[k] >= n {
			return chk.Err("cannot resize triplet to %d x %d: entry (%d,%d) would be lost", m, n, o.i[k], o.j[k])
		}
	}
	o.m, o.n = m, n
	return
}

// Clone returns a deep copy
func (o *Triplet) Clone() (c *Triplet) {
	c = &Triplet{m: o.m, n: o.n, fixed: o.fixed}
	c.i = append(make([]int, 0, len(o.i)), o.i...)
	c.j = append(make([]int, 0, len(o.j)), o.j...)
	c.x = append(make([]float64, 0, len(o.x)), o.x...)
	return
}

// Entry returns the k-th raw entry
func (o *Triplet) Entry(k int) (i, j int, x float64) {
	return o.i[k], o.j[k], o.x[k]
}

// Row returns the summed entries of row i sorted by column; zero sums are skipped
func (o *Triplet) Row(i int) (cols []int, vals []float64) {
	sums := make(map[int]float64)
	for k := range o.x {
		if o.i[k] == i {
			sums[o.j[k]] += o.x[k]
		}
	}
	for j, v := range sums {
		if v != 0 {
			cols = append(cols, j)
		}
	}
	sort.Ints(cols)
	vals = make([]float64, len(cols))
	for k, j := range cols {
		vals[k] = sums[j]
	}
	return
}

// DropRows removes all entries belonging to the given rows
func (o *Triplet) DropRows(rows ...int) {
	o.drop(func(k int) bool { return utl.IntIndexSmall(rows, o.i[k]) >= 0 })
}

// DropCols removes all entries belonging to the given columns
func (o *Triplet) DropCols(cols ...int) {
	o.drop(func(k int) bool { return utl.IntIndexSmall(cols, o.j[k]) >= 0 })
}

// NonzeroRows returns the sorted rows holding at least one non-zero (summed) value
func (o *Triplet) NonzeroRows() []int {
	return o.ToCSR().NonzeroRows()
}

// ToCSR converts this triplet into compressed-row format. Entries are sorted by (row, col)
// and duplicates are summed in a single pass; sums equal to zero are not stored
func (o *Triplet) ToCSR() (a *CSR) {

	// sort permutation by (row, col); stable so that summation order is deterministic
	nnz := len(o.x)
	perm := make([]int, nnz)
	for k := range perm {
		perm[k] = k
	}
	sort.SliceStable(perm, func(p, q int) bool {
		kp, kq := perm[p], perm[q]
		if o.i[kp] != o.i[kq] {
			return o.i[kp] < o.i[kq]
		}
		return o.j[kp] < o.j[kq]
	})

	// sum duplicates
	a = &CSR{M: o.m, N: o.n, P: make([]int, o.m+1)}
	a.J = make([]int, 0, nnz)
	a.X = make([]float64, 0, nnz)
	for p := 0; p < nnz; {
		k := perm[p]
		i, j, sum := o.i[k], o.j[k], 0.0
		for ; p < nnz && o.i[perm[p]] == i && o.j[perm[p]] == j; p++ {
			sum += o.x[perm[p]]
		}
		if sum == 0 {
			continue
		}
		a.J = append(a.J, j)
		a.X = append(a.X, sum)
		a.P[i+1]++
	}
	for i := 0; i < o.m; i++ {
		a.P[i+1] += a.P[i]
	}
	return
}

// ToDense converts this triplet to a dense matrix. It returns nil for empty dimensions
func (o *Triplet) ToDense() *mat.Dense {
	if o.m == 0 || o.n == 0 {
		return nil
	}
	d := mat.NewDense(o.m, o.n, nil)
	for k := range o.x {
		d.Set(o.i[k], o.j[k], d.At(o.i[k], o.j[k])+o.x[k])
	}
	return d
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Triplet) alloc(max int) {
	if max < 0 {
		max = 0
	}
	o.i = make([]int, 0, max)
	o.j = make([]int, 0, max)
	o.x = make([]float64, 0, max)
}

// drop removes entries for which remove(k) is true, keeping the order of the others
func (o *Triplet) drop(remove func(k int) bool) {
	p := 0
	for k := range o.x {
		if remove(k) {
			continue
		}
		o.i[p], o.j[p], o.x[p] = o.i[k], o.j[k], o.x[k]
		p++
	}
	o.i, o.j, o.x = o.i[:p], o.j[:p], o.x[:p]
}
