// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/cofem/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/sync/errgroup"
)

// State holds the stage of the nonlinear iteration controller
type State int

// states of the controller
const (
	Initializing State = iota // problems are being initialised
	Iterating                 // nonlinear iterations are running
	Converged                 // converged with at least the min number of iterations
	Failed                    // stopped by an error
	Exhausted                 // max number of iterations reached without convergence
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Failed:
		return "failed"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Norms holds the norms of the solution of one nonlinear iteration
type Norms struct {
	U  float64 // ‖u‖ primal
	La float64 // ‖λ‖ dual
}

// FieldHook is called after field assembly with the global K and f
type FieldHook func(s *Solver, K *sparse.Triplet, f []float64)

// BoundaryHook is called after boundary assembly with the global boundary blocks
type BoundaryHook func(s *Solver, Kb, C1, C2, D *sparse.Triplet, fb, g []float64)

// Solver drives the nonlinear solution of a set of field and boundary problems
//  In each iteration, all problems are assembled and merged into:
//      _                  _
//     |  K + Kb     C1ᵀ    | / u \   / f + fb \
//     |                    | |   | = |        |
//     |_  C2         D    _| \ λ /   \   g    /
//
//  which is solved by the selected linear solver strategy
type Solver struct {

	// configuration
	Name                     string                // name of solver
	Time                     float64               // current time
	Linear                   bool                  // the whole system is linear: one iteration suffices
	MinIterations            int                   // min number of nonlinear iterations
	MaxIterations            int                   // max number of nonlinear iterations
	Tol                      float64               // convergence tolerance
	ErrorIfNoConvergence     bool                  // return ConvergenceError when iterations are exhausted
	CheckBoundaryConvergence bool                  // also check multipliers of boundary problems
	LinSol                   inp.LinSolData        // linear solver strategy and its parameters
	Handler                  OverconstraintHandler // [optional] overconstraint policy; nil => EliminationHandler
	Workers                  int                   // number of goroutines assembling problems; ≤ 1 => serial
	Verbose                  bool                  // show messages

	// optional hooks
	FieldHook    FieldHook    // [optional] called after field assembly
	BoundaryHook BoundaryHook // [optional] called after boundary assembly

	// problems
	Problems []prob.Problem // all problems, in registration order

	// state
	State     State         // stage of the controller
	Iteration int           // current iteration
	Norms     []Norms       // norms of each completed iteration
	Ndofs     int           // total number of dofs; set by AssembleField
	Field     *Blocks       // global field system of the last iteration (K, F)
	Boundary  *Blocks       // global boundary system of the last iteration
	U         []float64     // last primal solution
	La        []float64     // last dual solution (Lagrange multipliers)
	Stats     LinStats      // statistics of the last linear solve
	CPUtime   time.Duration // duration of the last Solve
}

// NewSolver returns a new solver with default settings
func NewSolver(name string, problems ...prob.Problem) (o *Solver) {
	var dat inp.SolverData
	dat.SetDefault()
	dat.PostProcess()
	o = new(Solver)
	o.Name = name
	o.SetData(&dat)
	o.LinSol.SetDefault()
	o.AddProblems(problems...)
	return
}

// SetData sets the configuration from input data
func (o *Solver) SetData(dat *inp.SolverData) {
	if dat.Name != "" && o.Name == "" {
		o.Name = dat.Name
	}
	o.Time = dat.Time
	o.Linear = dat.Linear
	o.MinIterations = dat.NminIt
	o.MaxIterations = dat.NmaxIt
	o.Tol = dat.Tol
	o.ErrorIfNoConvergence = dat.ErrNoConv == nil || *dat.ErrNoConv
	o.CheckBoundaryConvergence = dat.CheckBry
	o.Workers = dat.Workers
	o.Verbose = dat.ShowR
}

// AddProblems registers problems; they are kept in registration order
func (o *Solver) AddProblems(problems ...prob.Problem) {
	o.Problems = append(o.Problems, problems...)
}

// Solve runs the nonlinear iterations
func (o *Solver) Solve() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() {
		o.CPUtime = time.Since(cputime)
		if err != nil && o.State != Exhausted {
			o.State = Failed
		}
	}()

	// check
	o.State = Initializing
	err = o.check()
	if err != nil {
		return
	}

	// initialise problems
	o.Iteration = 0
	o.Norms = make([]Norms, 0, o.MaxIterations)
	o.Ndofs = 0
	for _, p := range o.Problems {
		err = p.Initialize(o.Time)
		if err != nil {
			return chk.Err("cannot initialise problem %q:\n%v", p.Name(), err)
		}
	}

	// message
	if o.Verbose {
		io.Pf("\n> solver %q: %d problems, t = %g, nminit = %d, nmaxit = %d, tol = %g\n",
			o.Name, len(o.Problems), o.Time, o.MinIterations, o.MaxIterations, o.Tol)
	}

	// iterations
	o.State = Iterating
	for o.Iteration < o.MaxIterations {
		o.Iteration++
		if o.Verbose {
			io.Pfyel("\n> iteration %d\n", o.Iteration)
		}

		// assemble
		err = o.assembleProblems()
		if err != nil {
			return
		}
		err = o.AssembleField()
		if err != nil {
			return
		}
		err = o.AssembleBoundary()
		if err != nil {
			return
		}

		// solve
		var u, λ []float64
		u, λ, err = o.SolveLinear()
		if err != nil {
			return
		}
		o.U, o.La = u, λ
		o.Norms = append(o.Norms, Norms{U: o.Stats.UNorm, La: o.Stats.LaNorm})

		// update problems and elements
		for _, p := range o.Problems {
			lu, lλ, e := p.UpdateAssembly(u, λ)
			if e != nil {
				return chk.Err("cannot update assembly of problem %q:\n%v", p.Name(), e)
			}
			e = p.UpdateElements(lu, lλ, o.Time)
			if e != nil {
				return chk.Err("cannot update elements of problem %q:\n%v", p.Name(), e)
			}
		}

		// check convergence
		if o.HasConverged() {
			if o.Iteration >= o.MinIterations {
				o.State = Converged
				if o.Verbose {
					io.PfGreen("> converged in %d iterations\n", o.Iteration)
				}
				return
			}
			if o.Verbose {
				io.Pf("> converged but min number of iterations (%d) not reached yet\n", o.MinIterations)
			}
		}
	}

	// not converged
	o.State = Exhausted
	if o.ErrorIfNoConvergence {
		o.State = Failed
		last := o.Norms[len(o.Norms)-1]
		return &ConvergenceError{Solver: o, Iteration: o.Iteration, MaxIt: o.MaxIterations, UNorm: last.U, LaNorm: last.La}
	}
	if o.Verbose {
		io.PfRed("> max number of iterations reached: it = %d. keeping last iterate\n", o.Iteration)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// check validates the configuration
func (o *Solver) check() (err error) {
	if o.MaxIterations < 1 {
		return chk.Err("max number of iterations must be at least 1. MaxIterations=%d", o.MaxIterations)
	}
	if o.MinIterations > o.MaxIterations {
		return chk.Err("min number of iterations (%d) must not exceed max number of iterations (%d)", o.MinIterations, o.MaxIterations)
	}
	if o.Tol <= 0 {
		return chk.Err("tolerance must be positive. Tol=%g", o.Tol)
	}
	if _, ok := linsolallocators[o.LinSol.Name]; !ok {
		return chk.Err("cannot find linear solver strategy named %q", o.LinSol.Name)
	}
	for i, p := range o.Problems {
		if p == nil {
			return chk.Err("problem %d is nil", i)
		}
		if !prob.Check(p) {
			return chk.Err("problem %q has inconsistent kind (%v) and tag (%v)", p.Name(), p.Kind(), p.Tag())
		}
	}
	return
}

// assembleProblems marks all assemblies as changed and assembles all problems.
// With Workers > 1, problems are assembled concurrently; merging is done afterwards
func (o *Solver) assembleProblems() (err error) {
	for _, p := range o.Problems {
		p.Assembly().Changed = true
	}
	if o.Workers <= 1 {
		for _, p := range o.Problems {
			err = p.Assemble(o.Time)
			if err != nil {
				return chk.Err("cannot assemble problem %q:\n%v", p.Name(), err)
			}
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(o.Workers)
	for _, p := range o.Problems {
		p := p
		g.Go(func() error {
			if e := p.Assemble(o.Time); e != nil {
				return chk.Err("cannot assemble problem %q:\n%v", p.Name(), e)
			}
			return nil
		})
	}
	return g.Wait()
}
