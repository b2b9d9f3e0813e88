// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsol registers linear solver strategies backed by SuiteSparse through gosl/la.
// Import it for its side effects:
//
//  import _ "github.com/cpmech/cofem/linsol"
package linsol

import (
	"math"

	"github.com/cpmech/cofem/fem"
	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	fem.SetLinSol("umfpack", func(dat *inp.LinSolData) fem.LinSol { return &Umfpack{dat} })
}

// Umfpack solves linear systems with the sparse LU factorisation of UMFPACK
type Umfpack struct {
	dat *inp.LinSolData
}

// Solve implements fem.LinSol
func (o *Umfpack) Solve(A *sparse.CSR, b []float64, nz []int) (x []float64, err error) {

	// gosl/la reports failures by panicking
	defer func() {
		if r := recover(); r != nil {
			x, err = nil, &fem.SingularSystemError{Cond: math.NaN(), Err: chk.Err("umfpack failed:\n%v", r)}
		}
	}()

	// triplet
	A, bs := fem.Restrict(A, b, nz)
	var t la.Triplet
	t.Init(A.M, A.N, A.Nnz())
	for i := 0; i < A.M; i++ {
		cols, vals := A.Row(i)
		for k, j := range cols {
			t.Put(i, j, vals[k])
		}
	}

	// factorise and solve
	verbose := o.dat != nil && o.dat.Verbose
	solver := la.NewSparseSolver("umfpack")
	defer solver.Free()
	solver.Init(&t, la.NewSparseConfig(nil))
	solver.Fact()
	xs := make([]float64, len(bs))
	solver.Solve(xs, bs, false)
	if verbose {
		io.Pf("  umfpack: neq = %d, nnz = %d\n", A.M, A.Nnz())
	}
	return fem.Scatter(xs, nz, len(b)), nil
}
