// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a simulation file (YAML or JSON)
package inp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc" yaml:"desc"`       // description of simulation
	ListBcs bool   `json:"listbcs" yaml:"listbcs"` // list boundary conditions
	Plot    bool   `json:"plot" yaml:"plot"`       // plot norms history after solving
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name    string  `json:"name" yaml:"name"`       // strategy key; e.g. "direct", "bicgstab", "umfpack"
	Tol     float64 `json:"tol" yaml:"tol"`         // tolerance for iterative strategies
	MaxIt   int     `json:"maxit" yaml:"maxit"`     // max number of iterations of iterative strategies (0 => 2・neq)
	Verbose bool    `json:"verbose" yaml:"verbose"` // show messages from the linear solver
}

// SolverData holds nonlinear solver data
type SolverData struct {
	Name      string  `json:"name" yaml:"name"`           // name of solver
	Time      float64 `json:"time" yaml:"time"`           // initial time
	Linear    bool    `json:"linear" yaml:"linear"`       // the whole system is linear: one iteration suffices
	NminIt    int     `json:"nminit" yaml:"nminit"`       // min number of nonlinear iterations
	NmaxIt    int     `json:"nmaxit" yaml:"nmaxit"`       // max number of nonlinear iterations
	Tol       float64 `json:"tol" yaml:"tol"`             // convergence tolerance
	ErrNoConv *bool   `json:"errnoconv" yaml:"errnoconv"` // fail if not converged; default true
	CheckBry  bool    `json:"checkbry" yaml:"checkbry"`   // also check convergence of boundary problems
	Handler   string  `json:"handler" yaml:"handler"`     // overconstraint policy: "elimination", "strict" or "firstwins"
	Workers   int     `json:"workers" yaml:"workers"`     // number of goroutines assembling problems
	ShowR     bool    `json:"showr" yaml:"showr"`         // show norms during iterations
}

// ProblemData holds the definition of one problem
//  Type-specific data:
//   matrix    -- k: [[i, j, v], ...]    f: [[dof, v], ...]
//   springs   -- springs: [[a, b, k0, alpha], ...]    f: [[dof, v], ...]
//   dirichlet -- dofs: [...]    vals: [...]    eps: ε
//   tie       -- pairs: [[slave, master, gap], ...]
type ProblemData struct {
	Type    string      `json:"type" yaml:"type"`       // type of problem; e.g. "springs", "dirichlet"
	Name    string      `json:"name" yaml:"name"`       // name of problem
	Ndofn   int         `json:"ndofn" yaml:"ndofn"`     // dofs per node
	Func    string      `json:"func" yaml:"func"`       // name of time multiplier of loads or prescribed values
	K       [][]float64 `json:"k" yaml:"k"`             // coefficients
	F       [][]float64 `json:"f" yaml:"f"`             // loads
	Springs [][]float64 `json:"springs" yaml:"springs"` // spring elements
	Dofs    []int       `json:"dofs" yaml:"dofs"`       // prescribed dofs
	Vals    []float64   `json:"vals" yaml:"vals"`       // prescribed values
	Eps     float64     `json:"eps" yaml:"eps"`         // weak enforcement coefficient
	Pairs   [][]float64 `json:"pairs" yaml:"pairs"`     // tied dofs
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data           `json:"data" yaml:"data"`           // stores global simulation data
	Functions FuncsData      `json:"functions" yaml:"functions"` // stores all time multipliers
	LinSol    LinSolData     `json:"linsol" yaml:"linsol"`       // linear solver data
	Solver    SolverData     `json:"solver" yaml:"solver"`       // nonlinear solver data
	Problems  []*ProblemData `json:"problems" yaml:"problems"`   // all problems, in registration order

	// derived
	Key string `json:"-" yaml:"-"` // simulation key; e.g. mysim01.yaml => mysim01
}

// ReadSim reads all simulation data from a YAML (or JSON) file
func ReadSim(simfilepath string) (o *Simulation, err error) {
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}
	o, err = ParseSim(b)
	if err != nil {
		return nil, chk.Err("cannot parse simulation file %q:\n%v", simfilepath, err)
	}
	fn := filepath.Base(simfilepath)
	o.Key = strings.TrimSuffix(fn, filepath.Ext(fn))
	return
}

// ParseSim parses simulation data; JSON is accepted as well since it is valid YAML
func ParseSim(b []byte) (o *Simulation, err error) {

	// set default values
	o = new(Simulation)
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, err
	}

	// check
	o.Solver.PostProcess()
	err = o.Solver.Check()
	if err != nil {
		return nil, err
	}
	for i, p := range o.Problems {
		if p == nil || p.Type == "" {
			return nil, chk.Err("problem %d has no type", i)
		}
		if p.Name == "" {
			p.Name = p.Type
		}
	}
	return
}

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "direct"
	o.Tol = 1e-10
}

// SetDefault sets defaults values
func (o *SolverData) SetDefault() {
	o.Name = "solver"
	o.NminIt = 1
	o.NmaxIt = 10
	o.Tol = 1e-6
	o.Handler = "elimination"
	o.Workers = 1
}

// PostProcess performs a post-processing of the just read data
func (o *SolverData) PostProcess() {
	if o.ErrNoConv == nil {
		yes := true
		o.ErrNoConv = &yes
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
}

// Check validates the iteration bounds and tolerance
func (o *SolverData) Check() (err error) {
	if o.NmaxIt < 1 {
		return chk.Err("max number of iterations must be at least 1. nmaxit=%d", o.NmaxIt)
	}
	if o.NminIt > o.NmaxIt {
		return chk.Err("min number of iterations (%d) must not exceed max number of iterations (%d)", o.NminIt, o.NmaxIt)
	}
	if o.Tol <= 0 {
		return chk.Err("tolerance must be positive. tol=%g", o.Tol)
	}
	return
}

// Save writes simulation data to a YAML file
func (o *Simulation) Save(simfilepath string) (err error) {
	b, err := yaml.Marshal(o)
	if err != nil {
		return
	}
	return os.WriteFile(simfilepath, b, 0644)
}
