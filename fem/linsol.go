// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// LinSol defines linear solver strategies. Solve receives the whole square system and the
// sorted set nz of its structurally non-zero rows. Only the equations in nz are solved; x has
// the full length of b with zeros outside nz. A and b must not be modified
type LinSol interface {
	Solve(A *sparse.CSR, b []float64, nz []int) (x []float64, err error)
}

// LinSolAllocator allocates a linear solver strategy
type LinSolAllocator func(dat *inp.LinSolData) LinSol

// LinStats holds statistics of the last linear solve
type LinStats struct {
	Strategy string        // linear solver strategy
	Neq      int           // number of equations of the restricted system
	Nnz      int           // number of non-zeros of the coupled system
	Elapsed  time.Duration // time spent by the strategy
	UNorm    float64       // ‖u‖
	LaNorm   float64       // ‖λ‖
}

// String returns a one-line summary
func (o LinStats) String() string {
	return io.Sf("linsol %q: neq = %d, nnz = %d, elapsed = %v, ‖u‖ = %g, ‖λ‖ = %g",
		o.Strategy, o.Neq, o.Nnz, o.Elapsed, o.UNorm, o.LaNorm)
}

// SetLinSol registers a new linear solver strategy
func SetLinSol(name string, allocator LinSolAllocator) {
	if _, ok := linsolallocators[name]; ok {
		chk.Panic("cannot set linear solver strategy %q because it exists already", name)
	}
	linsolallocators[name] = allocator
}

// NewLinSol returns a new linear solver strategy
func NewLinSol(dat *inp.LinSolData) (ls LinSol, err error) {
	allocator, ok := linsolallocators[dat.Name]
	if !ok {
		return nil, chk.Err("cannot find linear solver strategy named %q", dat.Name)
	}
	return allocator(dat), nil
}

// LinSols returns the sorted names of all linear solver strategies
func LinSols() (names []string) {
	for name := range linsolallocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// linsolallocators holds all available linear solver strategies
var linsolallocators = map[string]LinSolAllocator{
	"direct":   func(dat *inp.LinSolData) LinSol { return &Direct{dat} },
	"bicgstab": func(dat *inp.LinSolData) LinSol { return &BiCGStab{dat} },
}

// SolveLinear forms and solves the coupled system
//      _                _
//     |  K + Kb    C1ᵀ   | / u \   / f + fb \
//     |_  C2        D   _| \ λ / = \   g    /
//
// Only the rows with at least one non-zero value are solved for; the other values of u and λ
// are left at zero. Both u and λ have length Ndofs
func (o *Solver) SolveLinear() (u, λ []float64, err error) {

	// check
	n := o.Ndofs
	if n < 1 || o.Field == nil || o.Boundary == nil {
		return nil, nil, &StructuralError{Iteration: o.Iteration, Msg: "field and boundary systems must be assembled before solving"}
	}

	// coupled system
	A := new(sparse.Triplet)
	A.Init(2*n, 2*n, o.Field.K.Len()+o.Boundary.K.Len()+o.Boundary.C1.Len()+o.Boundary.C2.Len()+o.Boundary.D.Len())
	A.PutBlock(0, 0, o.Field.K, false)
	A.PutBlock(0, 0, o.Boundary.K, false)
	A.PutBlock(0, n, o.Boundary.C1, true)
	A.PutBlock(n, 0, o.Boundary.C2, false)
	A.PutBlock(n, n, o.Boundary.D, false)
	b := make([]float64, 2*n)
	floats.Add(b[:n], o.Field.F.Dense())
	floats.Add(b[:n], o.Boundary.F.Dense())
	copy(b[n:], o.Boundary.G.Dense())

	// non-zero rows
	csr := A.ToCSR()
	nz := csr.NonzeroRows()

	// solve
	o.Stats = LinStats{Strategy: o.LinSol.Name, Neq: len(nz), Nnz: csr.Nnz()}
	x := make([]float64, 2*n)
	if len(nz) > 0 {
		var ls LinSol
		ls, err = NewLinSol(&o.LinSol)
		if err != nil {
			return
		}
		start := time.Now()
		x, err = ls.Solve(csr, b, nz)
		o.Stats.Elapsed = time.Since(start)
		if err == nil && len(x) != 2*n {
			err = chk.Err("solution has %d values instead of %d", len(x), 2*n)
		}
		if err == nil && !finite(x) {
			err = chk.Err("solution has NaN or Inf values")
		}
		if err != nil {
			var serr *SingularSystemError
			if !errors.As(err, &serr) {
				serr = &SingularSystemError{Cond: math.NaN(), Err: err}
			}
			serr.Iteration, serr.Strategy, serr.Neq = o.Iteration, o.LinSol.Name, len(nz)
			return nil, nil, serr
		}
	}

	// split
	u, λ = x[:n:n], x[n:]
	o.Stats.UNorm = floats.Norm(u, 2)
	o.Stats.LaNorm = floats.Norm(λ, 2)
	if o.Verbose || o.LinSol.Verbose {
		io.Pforan("> %v\n", o.Stats)
	}
	return
}

// Restrict returns the principal sub-system of A and b given by the sorted rows nz
func Restrict(A *sparse.CSR, b []float64, nz []int) (sub *sparse.CSR, bs []float64) {
	sub = A.Sub(nz)
	bs = make([]float64, len(nz))
	for k, i := range nz {
		bs[k] = b[i]
	}
	return
}

// Scatter returns a vector of length n with xs placed at the rows nz
func Scatter(xs []float64, nz []int, n int) (x []float64) {
	x = make([]float64, n)
	for k, i := range nz {
		x[i] = xs[k]
	}
	return
}

// finite tells whether all values are finite
func finite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
