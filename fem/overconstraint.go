// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Conflict holds the context of dofs constrained by an incoming boundary problem and by
// previously merged boundary problems
type Conflict struct {
	Problem   prob.Problem // incoming boundary problem
	Dofs      []int        // sorted overconstrained dofs
	Nodes     []int        // sorted nodes owning Dofs
	Iteration int          // nonlinear iteration
	Acc       *Blocks      // accumulated global boundary blocks
	In        *Blocks      // incoming blocks, expanded to global size; a private copy
	Slots     map[int]int  // relocated constraint rows of the incoming problem => multiplier slot
}

// Relocate records that the incoming constraint of row i now owns the multiplier slot j
func (o *Conflict) Relocate(i, j int) {
	if o.Slots == nil {
		o.Slots = make(map[int]int)
	}
	o.Slots[i] = j
}

// drop removes the incoming constraint of row i
func (o *Conflict) drop(i int) {
	o.In.C1.DropRows(i)
	o.In.C2.DropRows(i)
	o.In.D.DropRows(i)
	o.In.D.DropCols(i)
	o.In.G.Drop(i)
}

// errorf returns an OverconstraintError for this conflict
func (o *Conflict) errorf(dofs []int, msg string, prm ...interface{}) error {
	if dofs == nil {
		dofs = o.Dofs
	}
	return &OverconstraintError{
		Iteration: o.Iteration,
		Problem:   o.Problem.Name(),
		Dofs:      dofs,
		Nodes:     nodes(dofs, o.Problem.DofsPerNode()),
		Reason:    io.Sf(msg, prm...),
	}
}

// OverconstraintHandler reconciles overconstrained dofs by modifying the C1, C2, D and g blocks
// of the conflict in place. After Handle returns nil, no dof may be constrained by both the
// accumulated and the incoming blocks. A conflict that cannot be reconciled must be reported
// as an error; constraints must never be dropped silently
type OverconstraintHandler interface {
	Handle(c *Conflict) error
}

// HandlerFunc is an adapter to use ordinary functions as overconstraint handlers
type HandlerFunc func(c *Conflict) error

// Handle calls f(c)
func (f HandlerFunc) Handle(c *Conflict) error { return f(c) }

// NewHandler returns an overconstraint handler by name
func NewHandler(name string) (h OverconstraintHandler, err error) {
	allocator, ok := handlerallocators[name]
	if !ok {
		return nil, chk.Err("cannot find overconstraint handler named %q", name)
	}
	return allocator(), nil
}

// SetHandler registers a new overconstraint handler
func SetHandler(name string, allocator func() OverconstraintHandler) {
	if _, ok := handlerallocators[name]; ok {
		chk.Panic("cannot set overconstraint handler %q because it exists already", name)
	}
	handlerallocators[name] = allocator
}

// Handlers returns the sorted names of all overconstraint handlers
func Handlers() (names []string) {
	for name := range handlerallocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// handlerallocators holds all available overconstraint handlers
var handlerallocators = map[string]func() OverconstraintHandler{
	"elimination": func() OverconstraintHandler { return EliminationHandler{} },
	"strict":      func() OverconstraintHandler { return EliminationHandler{Strict: true} },
	"firstwins":   func() OverconstraintHandler { return FirstWinsHandler{} },
}

// EliminationHandler reconciles overconstrained dofs by Gauss elimination of the incoming
// constraint rows against the accumulated ones. For each overconstrained dof i (ascending):
//
//  b' = b - s・a    where a and b are the accumulated and incoming rows i of C2 (same for C1 and g)
//
//   b' ≈ 0, g' ≈ 0  =>  duplicate: the incoming constraint is dropped
//   b' ≈ 0, g' ≠ 0  =>  contradictory: error
//   b' ≠ 0          =>  independent: the reduced constraint is moved to a free multiplier slot
//
// Weakly enforced constraints (non-zero D at row or column i) are only merged when they are
// duplicates. With Strict, independent constraints are reported as errors instead of being relocated
type EliminationHandler struct {
	Tol    float64 // relative tolerance to detect zero rows; 0 => 1e-10
	Strict bool    // do not relocate independent constraints
}

// Handle implements OverconstraintHandler
func (o EliminationHandler) Handle(c *Conflict) (err error) {
	tol := o.Tol
	if tol <= 0 {
		tol = 1e-10
	}
	used := make(map[int]bool)
	var r reduced
	var dependent bool
	for _, i := range c.Dofs {

		// reduce incoming row i against accumulated row i
		r, dependent, err = reduce(c, i, tol)
		if err != nil {
			return
		}

		// dependent constraint
		if dependent {
			c.drop(i)
			continue
		}

		// independent constraint
		if o.Strict {
			return c.errorf([]int{i}, "independent constraints at dof %d cannot be combined (strict policy)", i)
		}
		if weak(c.Acc.D, i) || weak(c.In.D, i) {
			return c.errorf([]int{i}, "independent constraint at dof %d has D coupling and cannot be relocated", i)
		}
		j := freeSlot(c, i, r.c2, used, r.eps)
		if j < 0 {
			return c.errorf([]int{i}, "no free multiplier slot for the independent constraint at dof %d", i)
		}
		used[j] = true
		c.In.C1.DropRows(i)
		c.In.C2.DropRows(i)
		c.In.G.Drop(i)
		putrow(c.In.C1, j, r.c1, r.eps)
		putrow(c.In.C2, j, r.c2, r.eps)
		if r.g != 0 {
			c.In.G.Put(j, r.g)
		}
		c.Relocate(i, j)
	}
	return
}

// FirstWinsHandler keeps the accumulated constraints and drops the incoming ones at
// overconstrained dofs. Dependent constraints with different right-hand sides (e.g. two
// Dirichlet values on the same dof) are still reported as contradictory
type FirstWinsHandler struct {
	Tol float64 // relative tolerance to detect zero rows; 0 => 1e-10
}

// Handle implements OverconstraintHandler
func (o FirstWinsHandler) Handle(c *Conflict) (err error) {
	tol := o.Tol
	if tol <= 0 {
		tol = 1e-10
	}
	for _, i := range c.Dofs {
		_, _, err = reduce(c, i, tol)
		if err != nil {
			return
		}
		c.drop(i)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// reduced holds the incoming row i after elimination against the accumulated row i
type reduced struct {
	c1, c2 map[int]float64 // reduced rows of C1 and C2
	g      float64         // reduced right-hand side
	eps    float64         // absolute tolerance
}

// reduce computes b' = b - s・a for row i. It tells whether the incoming constraint depends on
// the accumulated one and returns an error if it does but contradicts it
func reduce(c *Conflict, i int, tol float64) (r reduced, dependent bool, err error) {
	a1, a2 := rowmap(c.Acc.C1, i), rowmap(c.Acc.C2, i)
	b1, b2 := rowmap(c.In.C1, i), rowmap(c.In.C2, i)
	ga, gb := c.Acc.G.At(i), c.In.G.At(i)
	s := scale(i, a2, b2)
	r.c1, r.c2 = axpy(-s, a1, b1), axpy(-s, a2, b2)
	r.g = gb - s*ga
	r.eps = tol * math.Max(1, math.Max(maxabs(b2), math.Abs(gb)))
	if maxabs(r.c2) > r.eps {
		return
	}
	dependent = true
	if math.Abs(r.g) > r.eps {
		err = c.errorf([]int{i}, "contradictory constraints at dof %d: accumulated g=%g, incoming g=%g (reduced residual %g)", i, ga, gb, r.g)
		return
	}
	if maxabs(r.c1) > tol*math.Max(1, maxabs(b1)) {
		err = c.errorf([]int{i}, "incoming constraint at dof %d duplicates C2 but not C1", i)
	}
	return
}

// weak tells whether row or column i of D holds non-zero values
func weak(d *sparse.Triplet, i int) bool {
	if len(rowmap(d, i)) > 0 {
		return true
	}
	col := make(map[int]float64)
	for k := 0; k < d.Len(); k++ {
		r, j, x := d.Entry(k)
		if j == i {
			col[r] += x
		}
	}
	return maxabs(col) > 0
}

// rowmap returns the summed row i of a triplet as a map
func rowmap(t *sparse.Triplet, i int) (r map[int]float64) {
	cols, vals := t.Row(i)
	r = make(map[int]float64, len(cols))
	for k, j := range cols {
		r[j] = vals[k]
	}
	return
}

// scale returns the factor s such that b - s・a eliminates the pivot column of a.
// The pivot is the diagonal if both rows have it; otherwise the common column with the
// largest |a_j| (ties: smallest j). Rows without common columns give s = 0
func scale(i int, a, b map[int]float64) float64 {
	if a[i] != 0 && b[i] != 0 {
		return b[i] / a[i]
	}
	piv, amax := -1, 0.0
	for _, j := range keys(a) {
		if b[j] == 0 {
			continue
		}
		if math.Abs(a[j]) > amax {
			piv, amax = j, math.Abs(a[j])
		}
	}
	if piv < 0 {
		return 0
	}
	return b[piv] / a[piv]
}

// axpy returns y + α・x
func axpy(α float64, x, y map[int]float64) (r map[int]float64) {
	r = make(map[int]float64, len(x)+len(y))
	for j, v := range y {
		r[j] = v
	}
	for j, v := range x {
		r[j] += α * v
	}
	return
}

func maxabs(r map[int]float64) (m float64) {
	for _, v := range r {
		m = math.Max(m, math.Abs(v))
	}
	return
}

// keys returns the sorted keys of a row
func keys(r map[int]float64) (cols []int) {
	for j := range r {
		cols = append(cols, j)
	}
	sort.Ints(cols)
	return
}

// putrow puts the non-negligible values of r into row i
func putrow(t *sparse.Triplet, i int, r map[int]float64, eps float64) {
	for _, j := range keys(r) {
		if math.Abs(r[j]) > eps {
			t.Put(i, j, r[j])
		}
	}
}

// freeSlot selects the multiplier slot for a relocated constraint: the column of r with the
// largest |r_j| (ties: smallest j) whose row is neither constrained by the accumulated nor by
// the incoming blocks and was not used before. It returns -1 if there is none
func freeSlot(c *Conflict, i int, r map[int]float64, used map[int]bool, eps float64) int {
	busy := make(map[int]bool)
	for _, t := range []*sparse.Triplet{c.Acc.C1, c.Acc.C2, c.Acc.D, c.In.C1, c.In.C2, c.In.D} {
		for _, k := range t.NonzeroRows() {
			busy[k] = true
		}
	}
	cols := keys(r)
	sort.SliceStable(cols, func(p, q int) bool {
		return math.Abs(r[cols[p]]) > math.Abs(r[cols[q]])
	})
	for _, j := range cols {
		if math.Abs(r[j]) <= eps || j == i || busy[j] || used[j] {
			continue
		}
		return j
	}
	return -1
}
