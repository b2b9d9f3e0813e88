// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prob defines the contract of field and boundary problems driven by the
// nonlinear solver, their local assemblies and a few built-in problems
package prob

// Kind tells whether a problem is a field equation or a boundary/constraint equation
type Kind int

// kinds of problems
const (
	KindField    Kind = iota // equation over the domain interior; contributes K and f
	KindBoundary             // constraint equation; contributes K, C1, C2, D, f and g
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindBoundary:
		return "boundary"
	}
	return "unknown"
}

// Tag refines the kind of boundary problems
type Tag int

// tags of problems
const (
	TagNone      Tag = iota // no refinement
	TagDirichlet            // prescribed values of dofs
	TagContact              // contact or mortar coupling between dofs
)

// String returns the name of the tag
func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagDirichlet:
		return "dirichlet"
	case TagContact:
		return "contact"
	}
	return "unknown"
}

// Problem defines what all problems must implement
type Problem interface {

	// information
	Name() string        // name of problem; e.g. "bar", "fixed ends"
	Kind() Kind          // field or boundary
	Tag() Tag            // finer classification of boundary problems
	DofsPerNode() int    // number of dofs per node; maps global dofs back to nodes
	Assembly() *Assembly // local assembly in global dof indices

	// called once for each solve
	Initialize(t float64) (err error)

	// called for each nonlinear iteration
	Assemble(t float64) (err error)                              // (re)computes the local assembly if Assembly().Changed
	UpdateAssembly(u, λ []float64) (lu, lλ []float64, err error) // stores global solution; returns problem-local values
	UpdateElements(lu, lλ []float64, t float64) (err error)      // pushes local values into elements/state
}

// Check verifies that kind and tag of a problem are compatible
func Check(p Problem) (ok bool) {
	switch p.Kind() {
	case KindField:
		return p.Tag() == TagNone
	case KindBoundary:
		return true
	}
	return false
}
