// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// Direct solves linear systems by dense LU factorisation with partial pivoting
type Direct struct {
	dat *inp.LinSolData
}

// Solve implements LinSol
func (o *Direct) Solve(A *sparse.CSR, b []float64, nz []int) (x []float64, err error) {
	A, bs := Restrict(A, b, nz)
	a := A.ToDense()
	if a == nil {
		return make([]float64, len(b)), nil
	}
	var lu mat.LU
	lu.Factorize(a)
	cond := lu.Cond()
	if o.dat != nil && o.dat.Verbose {
		io.Pf("  direct: neq = %d, cond = %g\n", A.M, cond)
	}
	xv := mat.NewVecDense(len(bs), nil)
	err = lu.SolveVecTo(xv, false, mat.NewVecDense(len(bs), bs))
	if err != nil {
		return nil, &SingularSystemError{Cond: cond, Err: err}
	}
	return Scatter(xv.RawVector().Data, nz, len(b)), nil
}
