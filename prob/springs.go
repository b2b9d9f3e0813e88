// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"github.com/cpmech/gosl/chk"
)

// Spring is a 1D spring element connecting two global dofs.
// A negative dof means the end is attached to the ground (zero displacement).
//  The secant stiffness depends on the elongation Δ = u[B] - u[A]:
//      k(Δ) = K0・(1 + α・Δ²)
type Spring struct {
	A, B  int     // dofs of both ends
	K0    float64 // initial stiffness
	Alpha float64 // nonlinear coefficient; zero means linear
}

// Springs is a field problem made of nonlinear springs and point loads
type Springs struct {
	Base
	Elems []*Spring               // elements
	Loads []Load                  // point loads
	Mult  func(t float64) float64 // [optional] load multiplier

	// results from last UpdateElements
	Elong []float64 // [nele] elongations
	Force []float64 // [nele] internal forces

	// auxiliary
	vals map[int]float64 // latest displacements at dofs
}

// NewSprings returns a new springs problem
func NewSprings(name string, elems []*Spring, loads []Load) (o *Springs) {
	o = &Springs{Elems: elems, Loads: loads}
	o.Init(name, KindField, TagNone, 1)
	return
}

// Initialize clears the assembly and the element state
func (o *Springs) Initialize(t float64) (err error) {
	err = o.Base.Initialize(t)
	if err != nil {
		return
	}
	for i, e := range o.Elems {
		if e.K0 <= 0 {
			return chk.Err("spring %d of problem %q must have positive stiffness. K0=%g", i, o.Name(), e.K0)
		}
		if e.A < 0 && e.B < 0 {
			return chk.Err("spring %d of problem %q is attached to the ground at both ends", i, o.Name())
		}
	}
	err = checkLoads(o.Name(), o.Loads)
	if err != nil {
		return
	}
	o.vals = make(map[int]float64)
	o.Elong = make([]float64, len(o.Elems))
	o.Force = make([]float64, len(o.Elems))
	return
}

// Assemble computes secant stiffness and loads at time t
func (o *Springs) Assemble(t float64) (err error) {
	asm := o.Assembly()
	if !asm.Changed {
		return
	}
	asm.Start()
	for _, e := range o.Elems {
		k := o.stiffness(e)
		if e.A >= 0 {
			asm.K.Put(e.A, e.A, k)
		}
		if e.B >= 0 {
			asm.K.Put(e.B, e.B, k)
		}
		if e.A >= 0 && e.B >= 0 {
			asm.K.Put(e.A, e.B, -k)
			asm.K.Put(e.B, e.A, -k)
		}
	}
	m := multiplier(o.Mult, t)
	for _, l := range o.Loads {
		asm.F.Put(l.Dof, m*l.Val)
	}
	asm.SetDofs(o.Kind())
	asm.Changed = false
	return
}

// UpdateElements stores displacements and computes elongations and forces
func (o *Springs) UpdateElements(lu, lλ []float64, t float64) (err error) {
	dofs := o.Assembly().Dofs
	if len(lu) != len(dofs) {
		return chk.Err("problem %q: local solution has length %d but problem has %d dofs", o.Name(), len(lu), len(dofs))
	}
	for k, dof := range dofs {
		o.vals[dof] = lu[k]
	}
	for i, e := range o.Elems {
		o.Elong[i] = o.elongation(e)
		o.Force[i] = o.stiffness(e) * o.Elong[i]
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Springs) elongation(e *Spring) (Δ float64) {
	if e.B >= 0 {
		Δ += o.vals[e.B]
	}
	if e.A >= 0 {
		Δ -= o.vals[e.A]
	}
	return
}

func (o *Springs) stiffness(e *Spring) float64 {
	Δ := o.elongation(e)
	return e.K0 * (1 + e.Alpha*Δ*Δ)
}
