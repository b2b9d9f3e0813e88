// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"github.com/cpmech/gosl/chk"
)

// Pair ties a slave dof to a master dof: u[Slave] - u[Master] = Gap
type Pair struct {
	Slave, Master int
	Gap           float64
}

// Tie is a mortar-like coupling between pairs of dofs. The multiplier of each pair
// is stored at the slave dof
type Tie struct {
	Base
	Pairs []Pair
}

// NewTie returns a new tie (contact) problem
func NewTie(name string, pairs []Pair) (o *Tie) {
	o = &Tie{Pairs: pairs}
	o.Init(name, KindBoundary, TagContact, 1)
	return
}

// Initialize checks data and clears the assembly
func (o *Tie) Initialize(t float64) (err error) {
	slaves := make(map[int]bool)
	for _, p := range o.Pairs {
		if p.Slave < 0 || p.Master < 0 {
			return chk.Err("problem %q: invalid pair (%d,%d)", o.Name(), p.Slave, p.Master)
		}
		if p.Slave == p.Master {
			return chk.Err("problem %q: dof %d cannot be tied to itself", o.Name(), p.Slave)
		}
		if slaves[p.Slave] {
			return chk.Err("problem %q: slave dof %d is used twice", o.Name(), p.Slave)
		}
		slaves[p.Slave] = true
	}
	return o.Base.Initialize(t)
}

// Assemble sets the coupling blocks
func (o *Tie) Assemble(t float64) (err error) {
	asm := o.Assembly()
	if !asm.Changed {
		return
	}
	asm.Start()
	for _, p := range o.Pairs {
		asm.C1.Put(p.Slave, p.Slave, 1)
		asm.C1.Put(p.Slave, p.Master, -1)
		asm.C2.Put(p.Slave, p.Slave, 1)
		asm.C2.Put(p.Slave, p.Master, -1)
		if p.Gap != 0 {
			asm.G.Put(p.Slave, p.Gap)
		}
	}
	asm.SetDofs(o.Kind())
	asm.Changed = false
	return
}
