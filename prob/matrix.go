// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import "github.com/cpmech/gosl/chk"

// Entry holds one coefficient of a matrix in global indices
type Entry struct {
	I, J int
	V    float64
}

// Load holds one prescribed value at a global dof
type Load struct {
	Dof int
	Val float64
}

// Matrix is a field problem with constant coefficients: K・u = m(t)・f
type Matrix struct {
	Base
	Kij  []Entry                 // coefficients of K
	Fi   []Load                  // entries of f
	Mult func(t float64) float64 // [optional] load multiplier
}

// NewMatrix returns a new field problem with constant K and f
func NewMatrix(name string, kij []Entry, fi []Load) (o *Matrix) {
	o = &Matrix{Kij: kij, Fi: fi}
	o.Init(name, KindField, TagNone, 1)
	return
}

// Initialize clears the assembly and checks the indices
func (o *Matrix) Initialize(t float64) (err error) {
	err = o.Base.Initialize(t)
	if err != nil {
		return
	}
	for k, e := range o.Kij {
		if e.I < 0 || e.J < 0 {
			return chk.Err("coefficient %d of problem %q has negative indices. i=%d, j=%d", k, o.Name(), e.I, e.J)
		}
	}
	return checkLoads(o.Name(), o.Fi)
}

// Assemble puts K and f into the local assembly
func (o *Matrix) Assemble(t float64) (err error) {
	asm := o.Assembly()
	if !asm.Changed {
		return
	}
	asm.Start()
	for _, e := range o.Kij {
		asm.K.Put(e.I, e.J, e.V)
	}
	m := multiplier(o.Mult, t)
	for _, l := range o.Fi {
		asm.F.Put(l.Dof, m*l.Val)
	}
	asm.SetDofs(o.Kind())
	asm.Changed = false
	return
}

// checkLoads returns an error if a load is applied at a negative dof
func checkLoads(name string, loads []Load) (err error) {
	for k, l := range loads {
		if l.Dof < 0 {
			return chk.Err("load %d of problem %q is applied at a negative dof. dof=%d", k, name, l.Dof)
		}
	}
	return
}

// multiplier evaluates an optional time multiplier
func multiplier(fcn func(t float64) float64, t float64) float64 {
	if fcn == nil {
		return 1
	}
	return fcn(t)
}
