// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"github.com/cpmech/gosl/chk"
)

// Base implements the parts of Problem that are common to all problems.
// Concrete problems embed Base and implement Assemble
type Base struct {
	name  string    // name of problem
	kind  Kind      // field or boundary
	tag   Tag       // refinement of kind
	ndofn int       // dofs per node
	asm   *Assembly // local assembly
	time  float64   // time of last initialisation
}

// Init initialises Base
func (o *Base) Init(name string, kind Kind, tag Tag, ndofn int) {
	if ndofn < 1 {
		ndofn = 1
	}
	o.name, o.kind, o.tag, o.ndofn = name, kind, tag, ndofn
	o.asm = NewAssembly()
}

// Name returns the name of problem
func (o *Base) Name() string { return o.name }

// Kind returns field or boundary
func (o *Base) Kind() Kind { return o.kind }

// Tag returns the refinement of kind
func (o *Base) Tag() Tag { return o.tag }

// DofsPerNode returns the number of dofs per node
func (o *Base) DofsPerNode() int { return o.ndofn }

// Assembly returns the local assembly
func (o *Base) Assembly() *Assembly { return o.asm }

// Initialize clears the assembly and solution history
func (o *Base) Initialize(t float64) (err error) {
	if o.asm == nil {
		return chk.Err("problem %q was not initialised", o.name)
	}
	o.asm.Reset()
	o.time = t
	return
}

// UpdateAssembly stores the global solution and returns the values at the problem dofs.
// Multipliers are read from the slots of the problem's constraint rows
func (o *Base) UpdateAssembly(u, λ []float64) (lu, lλ []float64, err error) {
	o.asm.Update(u, λ)
	lu = o.asm.Local(u)
	if o.kind == KindBoundary {
		lλ = o.asm.LocalMultipliers(λ)
	}
	return
}

// UpdateElements does nothing; problems with internal state override it
func (o *Base) UpdateElements(lu, lλ []float64, t float64) (err error) { return }
