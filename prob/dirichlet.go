// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Dirichlet implements essential boundary conditions with Lagrange multipliers.
// Each prescribed dof owns the multiplier with the same index.
//  The contribution to the global system reads:
//      _           _
//     |  K     Iᵀ   | / u \   / f \
//     |             | |   | = |   |
//     |_ I   -ε・I _| \ λ /   \ c /
//
//  where c = m(t)・vals and ε ≥ 0 weakens the enforcement (ε = 0 means exact)
type Dirichlet struct {
	Base
	Eqs  []int                   // prescribed dofs
	Vals []float64               // prescribed values
	Mult func(t float64) float64 // [optional] multiplier of values
	Eps  float64                 // weak enforcement coefficient
}

// NewDirichlet returns a new Dirichlet problem
func NewDirichlet(name string, eqs []int, vals []float64) (o *Dirichlet) {
	o = &Dirichlet{Eqs: eqs, Vals: vals}
	o.Init(name, KindBoundary, TagDirichlet, 1)
	return
}

// Initialize checks data and clears the assembly
func (o *Dirichlet) Initialize(t float64) (err error) {
	if len(o.Eqs) != len(o.Vals) {
		return chk.Err("problem %q: number of dofs (%d) and values (%d) differ", o.Name(), len(o.Eqs), len(o.Vals))
	}
	seen := make(map[int]bool)
	for _, eq := range o.Eqs {
		if eq < 0 {
			return chk.Err("problem %q: invalid dof %d", o.Name(), eq)
		}
		if seen[eq] {
			return chk.Err("problem %q: dof %d is prescribed twice", o.Name(), eq)
		}
		seen[eq] = true
	}
	if o.Eps < 0 {
		return chk.Err("problem %q: weak enforcement coefficient must be non-negative. eps=%g", o.Name(), o.Eps)
	}
	return o.Base.Initialize(t)
}

// Assemble sets the constraint blocks at time t
func (o *Dirichlet) Assemble(t float64) (err error) {
	asm := o.Assembly()
	if !asm.Changed {
		return
	}
	asm.Start()
	m := multiplier(o.Mult, t)
	for k, eq := range o.Eqs {
		asm.C1.Put(eq, eq, 1)
		asm.C2.Put(eq, eq, 1)
		asm.G.Put(eq, m*o.Vals[k])
		if o.Eps > 0 {
			asm.D.Put(eq, eq, -o.Eps)
		}
	}
	asm.SetDofs(o.Kind())
	asm.Changed = false
	return
}

// List returns a simple list with prescribed values at time t
func (o *Dirichlet) List(t float64) (l string) {
	idx := make([]int, len(o.Eqs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return o.Eqs[idx[a]] < o.Eqs[idx[b]] })
	m := multiplier(o.Mult, t)
	l = "\n==================================================================\n"
	l += io.Sf("%8s%25s%25s\n", "eq", "value", io.Sf("value @ t=%g", t))
	l += "------------------------------------------------------------------\n"
	for _, k := range idx {
		l += io.Sf("%8d%25.13f%25.13f\n", o.Eqs[k], o.Vals[k], m*o.Vals[k])
	}
	l += "==================================================================\n"
	return
}
