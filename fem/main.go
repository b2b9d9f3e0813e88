// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the nonlinear solver driving field and boundary problems
package fem

import (
	"time"

	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation
type Main struct {
	Sim     *inp.Simulation // simulation data
	Solver  *Solver         // nonlinear solver
	ShowMsg bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.yaml) filename including full path
//   verbose     -- show messages
func NewMain(simfilepath string, verbose bool) (o *Main, err error) {

	// read input data
	sim, err := inp.ReadSim(simfilepath)
	if err != nil {
		return
	}
	return NewMainSim(sim, verbose)
}

// NewMainSim returns a new Main structure from simulation data already in memory
func NewMainSim(sim *inp.Simulation, verbose bool) (o *Main, err error) {

	// new Main object
	o = new(Main)
	o.Sim = sim
	o.ShowMsg = verbose
	if o.ShowMsg {
		io.Pf("> Simulation data read: %q\n", o.Sim.Data.Desc)
	}

	// allocate problems
	problems := make([]prob.Problem, len(o.Sim.Problems))
	for i, dat := range o.Sim.Problems {
		problems[i], err = prob.New(dat, o.Sim.Functions)
		if err != nil {
			return nil, err
		}
	}
	if o.ShowMsg {
		io.Pf("> %d problems allocated\n", len(problems))
	}

	// allocate solver
	o.Solver = NewSolver(o.Sim.Solver.Name, problems...)
	o.Solver.SetData(&o.Sim.Solver)
	o.Solver.LinSol = o.Sim.LinSol
	o.Solver.Verbose = o.Sim.Solver.ShowR
	o.Solver.Handler, err = NewHandler(o.Sim.Solver.Handler)
	if err != nil {
		return nil, err
	}
	if _, ok := linsolallocators[o.Sim.LinSol.Name]; !ok {
		return nil, chk.Err("cannot find linear solver strategy named %q. available: %v", o.Sim.LinSol.Name, LinSols())
	}

	// list boundary conditions
	if o.Sim.Data.ListBcs {
		for _, p := range problems {
			if d, ok := p.(*prob.Dirichlet); ok {
				io.Pf("%v", d.List(o.Solver.Time))
			}
		}
	}
	return
}

// Run runs the nonlinear solver
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running solver %q with linear solver %q\n", o.Solver.Name, o.Solver.LinSol.Name)
	}

	// solve
	return o.Solver.Solve()
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with solver state and cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success: %v after %d iterations\n", o.Solver.State, o.Solver.Iteration)
			io.Pf("> CPU time = %v\n", time.Since(cputime))
		} else {
			io.PfRed("> Failed: %v\n", o.Solver.State)
		}
	}
	return prevErr
}
