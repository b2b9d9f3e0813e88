// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func dense(d *mat.Dense) (a [][]float64) {
	m, n := d.Dims()
	a = make([][]float64, m)
	for i := 0; i < m; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = d.At(i, j)
		}
	}
	return
}

func Test_triplet01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("triplet01. growing dimensions and summation of duplicates")

	t := NewTriplet(4)
	t.Put(0, 0, 1)
	t.Put(2, 1, 3)
	t.Put(0, 0, 2)
	t.Put(1, 2, -1)
	t.Put(2, 1, -3)

	m, n := t.Size()
	chk.Int(tst, "m", m, 3)
	chk.Int(tst, "n", n, 3)
	chk.Int(tst, "len", t.Len(), 5)

	a := t.ToCSR()
	chk.Int(tst, "nnz", a.Nnz(), 2)
	chk.Float64(tst, "a00", 1e-17, a.At(0, 0), 3)
	chk.Float64(tst, "a12", 1e-17, a.At(1, 2), -1)
	chk.Float64(tst, "a21", 1e-17, a.At(2, 1), 0)
	chk.Ints(tst, "nonzero rows", a.NonzeroRows(), []int{0, 1})

	chk.Deep2(tst, "dense", 1e-17, dense(t.ToDense()), [][]float64{
		{3, 0, 0},
		{0, 0, -1},
		{0, 0, 0},
	})
}

func Test_triplet02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("triplet02. fixed dimensions, resize, rows and blocks")

	var t Triplet
	t.Init(2, 2, 3)
	t.Put(0, 1, 4)
	t.Put(1, 0, 5)
	assert.Panics(tst, func() { t.Put(2, 0, 1) })

	require.NoError(tst, t.Resize(4, 4))
	t.Put(3, 3, 1)
	m, n := t.Size()
	chk.Int(tst, "m", m, 4)
	chk.Int(tst, "n", n, 4)
	assert.Error(tst, t.Resize(3, 3))

	cols, vals := t.Row(0)
	chk.Ints(tst, "row 0 cols", cols, []int{1})
	chk.Array(tst, "row 0 vals", 1e-17, vals, []float64{4})

	t.DropRows(0, 3)
	chk.Ints(tst, "nonzero rows after drop", t.NonzeroRows(), []int{1})

	b := NewTriplet(0)
	b.PutBlock(1, 2, &t, true)
	chk.Float64(tst, "b(1,3)", 1e-17, b.ToCSR().At(1, 3), 5)

	c := NewTriplet(0)
	c.PutTriplet(-2, &t)
	chk.Float64(tst, "c(1,0)", 1e-17, c.ToCSR().At(1, 0), -10)

	t.Start()
	chk.Int(tst, "len after start", t.Len(), 0)
}

func Test_csr01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("csr01. matrix-vector product and sub-matrix")

	t := NewTriplet(0)
	t.Put(0, 0, 2)
	t.Put(0, 2, 1)
	t.Put(2, 0, 1)
	t.Put(2, 2, 3)
	t.Put(3, 3, 0) // explicit zero is not stored
	a := t.ToCSR()

	y := make([]float64, 4)
	a.MulVec(y, []float64{1, 10, 2, 5})
	chk.Array(tst, "y", 1e-15, y, []float64{4, 0, 7, 0})

	nz := a.NonzeroRows()
	chk.Ints(tst, "nz", nz, []int{0, 2})
	s := a.Sub(nz)
	chk.Deep2(tst, "sub", 1e-17, dense(s.ToDense()), [][]float64{
		{2, 1},
		{1, 3},
	})

	b := a.ToTriplet().ToCSR()
	assert.Equal(tst, a.J, b.J)
	assert.Equal(tst, a.X, b.X)
}

func Test_vector01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("vector01. coordinate vector")

	v := NewVector(0)
	v.Put(3, 1)
	v.Put(1, 2)
	v.Put(3, 0.5)
	chk.Int(tst, "size", v.Size(), 4)
	chk.Float64(tst, "v3", 1e-17, v.At(3), 1.5)
	chk.Array(tst, "dense", 1e-17, v.Dense(), []float64{0, 2, 0, 1.5})
	chk.Ints(tst, "indices", v.Indices(), []int{1, 3})

	w := NewVector(0)
	w.PutVector(1, 2, v)
	chk.Array(tst, "shifted", 1e-17, w.Dense(), []float64{0, 0, 4, 0, 3})

	v.Set(3, 7)
	chk.Float64(tst, "v3 after set", 1e-17, v.At(3), 7)
	v.Drop(1)
	chk.Ints(tst, "indices after drop", v.Indices(), []int{3})

	require.NoError(tst, v.Resize(10))
	assert.Error(tst, v.Resize(2))

	c := v.Clone()
	c.Put(0, 1)
	assert.Equal(tst, 0.0, v.At(0))
}
