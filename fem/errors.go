// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
)

// StructuralError reports an invalid assembly request; e.g. boundary assembly before the
// number of dofs is known or local blocks not fitting into the global system
type StructuralError struct {
	Iteration int    // nonlinear iteration
	Problem   string // name of problem, if any
	Msg       string // description
}

func (o *StructuralError) Error() string {
	if o.Problem != "" {
		return io.Sf("structural error at iteration %d (problem %q): %s", o.Iteration, o.Problem, o.Msg)
	}
	return io.Sf("structural error at iteration %d: %s", o.Iteration, o.Msg)
}

// OverconstraintError reports dofs constrained by more than one boundary problem that could
// not be reconciled
type OverconstraintError struct {
	Iteration int    // nonlinear iteration
	Problem   string // name of incoming boundary problem
	Dofs      []int  // overconstrained dofs
	Nodes     []int  // nodes owning Dofs
	Reason    string // why the conflict could not be resolved
}

func (o *OverconstraintError) Error() string {
	return io.Sf("overconstraint at iteration %d: problem %q conflicts with previous boundary problems at dofs %v (nodes %v): %s",
		o.Iteration, o.Problem, o.Dofs, o.Nodes, o.Reason)
}

// SingularSystemError reports a singular or ill-conditioned linear system
type SingularSystemError struct {
	Iteration int     // nonlinear iteration
	Strategy  string  // linear solver strategy
	Neq       int     // number of equations in the restricted system
	Cond      float64 // condition number estimate, if available
	Err       error   // error from backend
}

func (o *SingularSystemError) Error() string {
	return io.Sf("singular system at iteration %d: strategy %q failed with %d equations (cond=%g): %v",
		o.Iteration, o.Strategy, o.Neq, o.Cond, o.Err)
}

// Unwrap returns the error from backend
func (o *SingularSystemError) Unwrap() error { return o.Err }

// ConvergenceError reports that the nonlinear iterations did not converge within the
// maximum number of iterations
type ConvergenceError struct {
	Solver    *Solver // solver at the point of failure
	Iteration int     // last iteration performed
	MaxIt     int     // max number of iterations
	UNorm     float64 // last ‖u‖
	LaNorm    float64 // last ‖λ‖
}

func (o *ConvergenceError) Error() string {
	name := ""
	if o.Solver != nil {
		name = o.Solver.Name
	}
	return io.Sf("solver %q did not converge in %d iterations (max = %d). last norms: ‖u‖=%g ‖λ‖=%g",
		name, o.Iteration, o.MaxIt, o.UNorm, o.LaNorm)
}
