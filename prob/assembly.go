// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"sort"

	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// Assembly holds the local contribution of a problem, in global dof indices, and the
// latest solution values pushed back by the solver.
//
//  field problems:     K・u = f
//
//  boundary problems:  _            _
//                     |  K    C1ᵀ    | / u \   / f \
//                     |              | |   | = |   |
//                     |_ C2   D     _| \ λ /   \ g /
//
type Assembly struct {

	// blocks
	K  *sparse.Triplet // stiffness
	C1 *sparse.Triplet // constraint-to-primal coupling (its transpose goes to the primal rows)
	C2 *sparse.Triplet // primal-to-constraint coupling; usually equal to C1
	D  *sparse.Triplet // constraint-to-constraint coupling; e.g. weak enforcement
	F  *sparse.Vector  // load
	G  *sparse.Vector  // constraint right-hand side

	// latest primal values
	U           []float64 // current solution (global size)
	Uprev       []float64 // solution of previous iteration
	UNorm       float64   // ‖u‖
	UNormChange float64   // ‖u - uprev‖

	// latest dual values
	La           []float64 // current Lagrange multipliers (global size)
	LaPrev       []float64 // multipliers of previous iteration
	LaNorm       float64   // ‖λ‖
	LaNormChange float64   // ‖λ - λprev‖

	// auxiliary
	Dofs    []int       // sorted global dofs touched by the last assembly
	Slots   map[int]int // constraint rows moved to another multiplier slot by the last merge
	Changed bool        // assembly must be recomputed
}

// NewAssembly returns a new empty assembly flagged as changed
func NewAssembly() (o *Assembly) {
	o = new(Assembly)
	o.K = sparse.NewTriplet(0)
	o.C1 = sparse.NewTriplet(0)
	o.C2 = sparse.NewTriplet(0)
	o.D = sparse.NewTriplet(0)
	o.F = sparse.NewVector(0)
	o.G = sparse.NewVector(0)
	o.Changed = true
	return
}

// Start clears all blocks keeping allocated memory
func (o *Assembly) Start() {
	o.K.Start()
	o.C1.Start()
	o.C2.Start()
	o.D.Start()
	o.F.Start()
	o.G.Start()
	o.Dofs = o.Dofs[:0]
	o.Slots = nil
}

// Reset clears blocks and solution history
func (o *Assembly) Reset() {
	o.Start()
	o.U, o.Uprev, o.La, o.LaPrev = nil, nil, nil, nil
	o.UNorm, o.UNormChange, o.LaNorm, o.LaNormChange = 0, 0, 0, 0
	o.Changed = true
}

// Update stores the new global solution and computes norms and norm changes.
// The previous values are taken as zero in the first call
func (o *Assembly) Update(u, λ []float64) {
	o.Uprev, o.U = resized(o.U, len(u)), append([]float64(nil), u...)
	o.LaPrev, o.La = resized(o.La, len(λ)), append([]float64(nil), λ...)
	o.UNorm = floats.Norm(o.U, 2)
	o.LaNorm = floats.Norm(o.La, 2)
	o.UNormChange = normDiff(o.U, o.Uprev)
	o.LaNormChange = normDiff(o.La, o.LaPrev)
}

// SetDofs records the global dofs touched by the current blocks
func (o *Assembly) SetDofs(kind Kind) {
	seen := make(map[int]bool)
	add := func(idx []int) {
		for _, i := range idx {
			seen[i] = true
		}
	}
	add(o.K.NonzeroRows())
	add(o.F.Indices())
	if kind == KindBoundary {
		add(o.C2.NonzeroRows())
		add(o.C1.NonzeroRows())
		add(o.G.Indices())
		for _, i := range o.C2.NonzeroRows() {
			cols, _ := o.C2.Row(i)
			add(cols)
		}
	}
	o.Dofs = o.Dofs[:0]
	for i := range seen {
		o.Dofs = append(o.Dofs, i)
	}
	sort.Ints(o.Dofs)
}

// Local extracts the values at the problem dofs
func (o *Assembly) Local(v []float64) (l []float64) {
	l = make([]float64, len(o.Dofs))
	for k, i := range o.Dofs {
		if i < len(v) {
			l[k] = v[i]
		}
	}
	return
}

// Slot returns the global multiplier slot of the constraint in row i
func (o *Assembly) Slot(i int) int {
	if j, ok := o.Slots[i]; ok {
		return j
	}
	return i
}

// Multipliers returns the multipliers of the constraint rows (non-zero rows of C2), taken from
// their slots in the global λ
func (o *Assembly) Multipliers(λ []float64) (rows []int, vals []float64) {
	rows = o.C2.NonzeroRows()
	vals = make([]float64, len(rows))
	for k, i := range rows {
		if j := o.Slot(i); j < len(λ) {
			vals[k] = λ[j]
		}
	}
	return
}

// LocalMultipliers returns the multipliers at the problem dofs; dofs that are not constraint
// rows have zero multipliers
func (o *Assembly) LocalMultipliers(λ []float64) (l []float64) {
	l = make([]float64, len(o.Dofs))
	rows, vals := o.Multipliers(λ)
	for k, i := range o.Dofs {
		if p := utl.IntIndexSmall(rows, i); p >= 0 {
			l[k] = vals[p]
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// resized returns a copy of v with length n; missing values are zero
func resized(v []float64, n int) (r []float64) {
	r = make([]float64, n)
	copy(r, v)
	return
}

func normDiff(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	return floats.Norm(d, 2)
}
