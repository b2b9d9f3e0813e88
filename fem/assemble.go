// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Blocks holds global (or globally sized) blocks of the coupled system
//  field:    K, F
//  boundary: K, C1, C2, D, F, G
type Blocks struct {
	K  *sparse.Triplet // stiffness
	C1 *sparse.Triplet // constraint-to-primal coupling
	C2 *sparse.Triplet // primal-to-constraint coupling
	D  *sparse.Triplet // constraint-to-constraint coupling
	F  *sparse.Vector  // load
	G  *sparse.Vector  // constraint right-hand side
}

// newBlocks allocates n×n blocks with fixed dimensions
func newBlocks(n, nnz int) (o *Blocks) {
	o = new(Blocks)
	o.K, o.C1, o.C2, o.D = new(sparse.Triplet), new(sparse.Triplet), new(sparse.Triplet), new(sparse.Triplet)
	o.K.Init(n, n, nnz)
	o.C1.Init(n, n, nnz)
	o.C2.Init(n, n, nnz)
	o.D.Init(n, n, nnz)
	o.F, o.G = new(sparse.Vector), new(sparse.Vector)
	o.F.Init(n, nnz)
	o.G.Init(n, nnz)
	return
}

// add accumulates b into o
func (o *Blocks) add(b *Blocks) {
	o.K.PutTriplet(1, b.K)
	o.C1.PutTriplet(1, b.C1)
	o.C2.PutTriplet(1, b.C2)
	o.D.PutTriplet(1, b.D)
	o.F.PutVector(0, 1, b.F)
	o.G.PutVector(0, 1, b.G)
}

// Constrained returns the sorted dofs constrained by these blocks; i.e. the non-zero rows of C2
func (o *Blocks) Constrained() []int {
	return o.C2.NonzeroRows()
}

// AssembleField sums the contributions of all field problems into the global K and f and
// sets the total number of dofs. The optional FieldHook is called afterwards
func (o *Solver) AssembleField() (err error) {

	// number of dofs
	var field []prob.Problem
	o.Ndofs = 0
	nnz := 0
	for _, p := range o.Problems {
		if p.Kind() != prob.KindField {
			continue
		}
		field = append(field, p)
		asm := p.Assembly()
		m, n := asm.K.Size()
		o.Ndofs = utl.Imax(o.Ndofs, utl.Imax(m, utl.Imax(n, asm.F.Size())))
		nnz += asm.K.Len()
	}

	// sum contributions
	o.Field = newBlocks(o.Ndofs, nnz)
	for _, p := range field {
		asm := p.Assembly()
		o.Field.K.PutTriplet(1, asm.K)
		o.Field.F.PutVector(0, 1, asm.F)
		asm.SetDofs(prob.KindField)
	}
	if o.Verbose {
		io.Pf("> field: %d problems, ndofs = %d, nnz(K) = %d\n", len(field), o.Ndofs, o.Field.K.Len())
	}

	// hook
	if o.FieldHook != nil {
		o.FieldHook(o, o.Field.K, o.Field.F.Dense())
	}
	return
}

// AssembleBoundary merges all boundary problems, in registration order, into the global boundary
// blocks. Dofs constrained by an incoming problem and by previously merged problems are handed
// to the overconstraint handler before accumulation. The optional BoundaryHook is called afterwards
func (o *Solver) AssembleBoundary() (err error) {

	// check
	n := o.Ndofs
	if n < 1 {
		return &StructuralError{Iteration: o.Iteration, Msg: "number of dofs is unknown or zero; field problems must be assembled first"}
	}

	// handler
	handler := o.Handler
	if handler == nil {
		handler = EliminationHandler{}
	}

	// merge
	o.Boundary = newBlocks(n, 0)
	nbry := 0
	for _, p := range o.Problems {
		if p.Kind() != prob.KindBoundary {
			continue
		}
		nbry++

		// expand incoming blocks to global size
		asm := p.Assembly()
		var in *Blocks
		in, err = expand(asm, n)
		if err != nil {
			return &StructuralError{Iteration: o.Iteration, Problem: p.Name(), Msg: err.Error()}
		}
		asm.SetDofs(prob.KindBoundary)
		asm.Slots = nil

		// overconstrained dofs
		dofs := intersect(o.Boundary.Constrained(), in.Constrained())
		if len(dofs) > 0 {
			c := &Conflict{
				Problem:   p,
				Dofs:      dofs,
				Nodes:     nodes(dofs, p.DofsPerNode()),
				Iteration: o.Iteration,
				Acc:       o.Boundary,
				In:        in,
			}
			if o.Verbose {
				io.Pfyel("> overconstraint: problem %q at dofs %v (nodes %v)\n", p.Name(), c.Dofs, c.Nodes)
			}
			err = handler.Handle(c)
			if err != nil {
				return
			}
			if left := intersect(o.Boundary.Constrained(), in.Constrained()); len(left) > 0 {
				return &OverconstraintError{Iteration: o.Iteration, Problem: p.Name(), Dofs: left,
					Nodes: nodes(left, p.DofsPerNode()), Reason: "handler left dofs constrained more than once"}
			}
			asm.Slots = c.Slots
		}

		// accumulate
		o.Boundary.add(in)
	}
	if o.Verbose {
		io.Pf("> boundary: %d problems, constrained dofs = %v\n", nbry, o.Boundary.Constrained())
	}

	// hook
	if o.BoundaryHook != nil {
		b := o.Boundary
		o.BoundaryHook(o, b.K, b.C1, b.C2, b.D, b.F.Dense(), b.G.Dense())
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// expand copies the local blocks of a boundary problem and resizes them to n×n.
// The problem's assembly is not modified
func expand(asm *prob.Assembly, n int) (b *Blocks, err error) {
	b = &Blocks{
		K:  asm.K.Clone(),
		C1: asm.C1.Clone(),
		C2: asm.C2.Clone(),
		D:  asm.D.Clone(),
		F:  asm.F.Clone(),
		G:  asm.G.Clone(),
	}
	names := []string{"K", "C1", "C2", "D"}
	for k, t := range []*sparse.Triplet{b.K, b.C1, b.C2, b.D} {
		err = t.Resize(n, n)
		if err != nil {
			return nil, chk.Err("block %s does not fit into %d dofs: %v", names[k], n, err)
		}
	}
	err = b.F.Resize(n)
	if err != nil {
		return nil, chk.Err("vector f does not fit into %d dofs: %v", n, err)
	}
	err = b.G.Resize(n)
	if err != nil {
		return nil, chk.Err("vector g does not fit into %d dofs: %v", n, err)
	}
	return
}

// intersect returns the sorted common values of two sorted lists
func intersect(a, b []int) (c []int) {
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			c = append(c, a[i])
			i++
			j++
		}
	}
	return
}

// nodes returns the sorted unique nodes owning the given dofs
func nodes(dofs []int, ndofn int) []int {
	ndofn = utl.Imax(ndofn, 1)
	ids := make([]int, len(dofs))
	for k, d := range dofs {
		ids[k] = d / ndofn
	}
	return utl.IntUnique(ids)
}
