// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/cofem/sparse"
)

// counter wraps a problem and counts the calls to its hooks
type counter struct {
	prob.Problem
	ninit, nasm, nupd, nele int
}

func (o *counter) Initialize(t float64) error {
	o.ninit++
	return o.Problem.Initialize(t)
}

func (o *counter) Assemble(t float64) error {
	o.nasm++
	return o.Problem.Assemble(t)
}

func (o *counter) UpdateAssembly(u, λ []float64) ([]float64, []float64, error) {
	o.nupd++
	return o.Problem.UpdateAssembly(u, λ)
}

func (o *counter) UpdateElements(lu, lλ []float64, t float64) error {
	o.nele++
	return o.Problem.UpdateElements(lu, lλ, t)
}

// drift is a one-dof field problem whose load grows with each assembly; it never converges
type drift struct {
	prob.Base
	n int
}

func newDrift() (o *drift) {
	o = new(drift)
	o.Init("drift", prob.KindField, prob.TagNone, 1)
	return
}

func (o *drift) Assemble(t float64) (err error) {
	o.n++
	asm := o.Assembly()
	asm.Start()
	asm.K.Put(0, 0, 1)
	asm.F.Put(0, float64(o.n))
	asm.Changed = false
	return
}

// diag returns a field problem with K = diag(kii) and f = fi
func diag(name string, kii, fi []float64) *prob.Matrix {
	kij := make([]prob.Entry, len(kii))
	for i, v := range kii {
		kij[i] = prob.Entry{I: i, J: i, V: v}
	}
	var loads []prob.Load
	for i, v := range fi {
		if v != 0 {
			loads = append(loads, prob.Load{Dof: i, Val: v})
		}
	}
	return prob.NewMatrix(name, kij, loads)
}

// dense2 converts a triplet into a dense [][]float64
func dense2(t *sparse.Triplet) (a [][]float64) {
	d := t.ToDense()
	if d == nil {
		return
	}
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

// prepare initialises and assembles all problems of a solver
func prepare(s *Solver) (err error) {
	for _, p := range s.Problems {
		err = p.Initialize(s.Time)
		if err != nil {
			return
		}
	}
	return s.assembleProblems()
}
