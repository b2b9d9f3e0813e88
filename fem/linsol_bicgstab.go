// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// BiCGStab solves linear systems by the unpreconditioned biconjugate gradient stabilised method.
// It works on the compressed-row matrix directly
//  Tol   -- relative tolerance on the residual: ‖b - A・x‖ ≤ Tol・‖b‖
//  MaxIt -- max number of iterations; 0 => 2・neq
type BiCGStab struct {
	dat *inp.LinSolData
}

// Solve implements LinSol
func (o *BiCGStab) Solve(A *sparse.CSR, b []float64, nz []int) (x []float64, err error) {
	sub, bs := Restrict(A, b, nz)
	xs, err := o.solve(sub, bs)
	if err != nil {
		return
	}
	return Scatter(xs, nz, len(b)), nil
}

// solve runs the iterations on a system without empty rows
func (o *BiCGStab) solve(A *sparse.CSR, b []float64) (x []float64, err error) {

	// parameters
	n := len(b)
	tol, maxit, verbose := 1e-10, 2*n, false
	if o.dat != nil {
		if o.dat.Tol > 0 {
			tol = o.dat.Tol
		}
		if o.dat.MaxIt > 0 {
			maxit = o.dat.MaxIt
		}
		verbose = o.dat.Verbose
	}

	// initial residual; x0 = 0 => r = b
	x = make([]float64, n)
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		return
	}
	r := append([]float64(nil), b...)
	rhat := append([]float64(nil), b...)
	p, v := make([]float64, n), make([]float64, n)
	s, t := make([]float64, n), make([]float64, n)
	ρ, α, ω := 1.0, 1.0, 1.0

	// iterations
	for it := 1; it <= maxit; it++ {
		ρnew := floats.Dot(rhat, r)
		if ρnew == 0 {
			return nil, &SingularSystemError{Cond: math.NaN(), Err: chk.Err("bicgstab breakdown (ρ = 0) at iteration %d", it)}
		}
		β := (ρnew / ρ) * (α / ω)
		ρ = ρnew

		// p = r + β・(p - ω・v)
		floats.AddScaled(p, -ω, v)
		floats.Scale(β, p)
		floats.Add(p, r)

		// α = ρ / (r̂・v) with v = A・p
		A.MulVec(v, p)
		den := floats.Dot(rhat, v)
		if den == 0 {
			return nil, &SingularSystemError{Cond: math.NaN(), Err: chk.Err("bicgstab breakdown (r̂・v = 0) at iteration %d", it)}
		}
		α = ρ / den

		// s = r - α・v
		floats.SubTo(s, r, scaled(α, v))
		if floats.Norm(s, 2) <= tol*bnorm {
			floats.AddScaled(x, α, p)
			if verbose {
				io.Pf("  bicgstab: converged in %d iterations\n", it)
			}
			return
		}

		// ω = (t・s) / (t・t) with t = A・s
		A.MulVec(t, s)
		tt := floats.Dot(t, t)
		if tt == 0 {
			return nil, &SingularSystemError{Cond: math.NaN(), Err: chk.Err("bicgstab breakdown (t・t = 0) at iteration %d", it)}
		}
		ω = floats.Dot(t, s) / tt

		// x += α・p + ω・s ; r = s - ω・t
		floats.AddScaled(x, α, p)
		floats.AddScaled(x, ω, s)
		floats.SubTo(r, s, scaled(ω, t))
		res := floats.Norm(r, 2)
		if verbose {
			io.Pf("  bicgstab: it = %3d  ‖r‖/‖b‖ = %g\n", it, res/bnorm)
		}
		if res <= tol*bnorm {
			return
		}
		if ω == 0 {
			return nil, &SingularSystemError{Cond: math.NaN(), Err: chk.Err("bicgstab breakdown (ω = 0) at iteration %d", it)}
		}
	}
	return nil, &SingularSystemError{Cond: math.NaN(), Err: chk.Err("bicgstab did not converge in %d iterations", maxit)}
}

// scaled returns α・v in a new slice
func scaled(α float64, v []float64) (w []float64) {
	w = make([]float64, len(v))
	floats.ScaleTo(w, α, v)
	return
}
