// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Vector is a coordinate-format accumulator for right-hand side vectors (loads).
// Repeated indices are summed
type Vector struct {
	n     int       // dimension
	fixed bool      // dimension was fixed by Init
	i     []int     // indices
	x     []float64 // values
}

// NewVector returns a new Vector with growing dimension
func NewVector(max int) (o *Vector) {
	o = new(Vector)
	if max < 0 {
		max = 0
	}
	o.i = make([]int, 0, max)
	o.x = make([]float64, 0, max)
	return
}

// Init initialises the Vector with fixed dimension
func (o *Vector) Init(n, max int) {
	if n < 0 {
		chk.Panic("vector dimension must be non-negative. n=%d", n)
	}
	if max < 0 {
		max = 0
	}
	o.n, o.fixed = n, true
	o.i = make([]int, 0, max)
	o.x = make([]float64, 0, max)
}

// Put appends a new entry
func (o *Vector) Put(i int, x float64) {
	if i < 0 {
		chk.Panic("vector index must be non-negative. i=%d", i)
	}
	if o.fixed {
		if i >= o.n {
			chk.Panic("entry %d is outside vector of size %d", i, o.n)
		}
	} else if i >= o.n {
		o.n = i + 1
	}
	o.i = append(o.i, i)
	o.x = append(o.x, x)
}

// PutVector appends α·a to this vector, with indices shifted by i0
func (o *Vector) PutVector(i0 int, α float64, a *Vector) {
	if a == nil {
		return
	}
	for k := range a.x {
		o.Put(i0+a.i[k], α*a.x[k])
	}
}

// Start removes all entries but keeps dimension and allocated memory
func (o *Vector) Start() {
	o.i = o.i[:0]
	o.x = o.x[:0]
}

// Size returns the dimension
func (o *Vector) Size() int { return o.n }

// Len returns the number of entries (duplicates included)
func (o *Vector) Len() int { return len(o.x) }

// Resize changes the dimension; it fails if an existing entry would be lost
func (o *Vector) Resize(n int) (err error) {
	for _, i := range o.i {
		if i >= n {
			return chk.Err("cannot resize vector to %d: entry %d would be lost", n, i)
		}
	}
	o.n = n
	return
}

// At returns the summed value at i
func (o *Vector) At(i int) (v float64) {
	for k, ii := range o.i {
		if ii == i {
			v += o.x[k]
		}
	}
	return
}

// Drop removes all entries at the given indices
func (o *Vector) Drop(idx ...int) {
	p := 0
	for k := range o.x {
		if utl.IntIndexSmall(idx, o.i[k]) >= 0 {
			continue
		}
		o.i[p], o.x[p] = o.i[k], o.x[k]
		p++
	}
	o.i, o.x = o.i[:p], o.x[:p]
}

// Set replaces all entries at i by a single value
func (o *Vector) Set(i int, x float64) {
	o.Drop(i)
	if x != 0 {
		o.Put(i, x)
	}
}

// Indices returns the sorted unique indices with non-zero summed values
func (o *Vector) Indices() (idx []int) {
	sums := make(map[int]float64)
	for k, i := range o.i {
		sums[i] += o.x[k]
	}
	for i, v := range sums {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return
}

// Clone returns a deep copy
func (o *Vector) Clone() (c *Vector) {
	c = &Vector{n: o.n, fixed: o.fixed}
	c.i = append(make([]int, 0, len(o.i)), o.i...)
	c.x = append(make([]float64, 0, len(o.x)), o.x...)
	return
}

// Dense returns the summed values as a dense slice of length Size()
func (o *Vector) Dense() (v []float64) {
	v = make([]float64, o.n)
	for k, i := range o.i {
		v[i] += o.x[k]
	}
	return
}
