// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output of results of the nonlinear solver: tables and plots
package out

import (
	"github.com/cpmech/cofem/fem"
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/gosl/io"
)

// constants
var (
	TolZero = 1e-13 // values below this are printed as zero
)

// Norms returns a table with the norms of each nonlinear iteration
func Norms(s *fem.Solver) (l string) {
	l = "\n============================================================\n"
	l += io.Sf("%6s%27s%27s\n", "it", "‖u‖", "‖λ‖")
	l += "------------------------------------------------------------\n"
	for i, n := range s.Norms {
		l += io.Sf("%6d%27.15e%27.15e\n", i+1, n.U, n.La)
	}
	l += "============================================================\n"
	l += io.Sf("solver %q: %v after %d iterations\n", s.Name, s.State, s.Iteration)
	return
}

// Solution returns a table with the primal and dual values of all dofs touched by any problem
func Solution(s *fem.Solver) (l string) {
	owners := make(map[int][]string)
	for _, p := range s.Problems {
		for _, dof := range p.Assembly().Dofs {
			owners[dof] = append(owners[dof], p.Name())
		}
	}
	l = "\n==========================================================================\n"
	l += io.Sf("%6s%23s%23s  %s\n", "dof", "u", "λ", "problems")
	l += "--------------------------------------------------------------------------\n"
	for i := range s.U {
		if _, ok := owners[i]; !ok {
			continue
		}
		var λ float64
		if i < len(s.La) {
			λ = s.La[i]
		}
		l += io.Sf("%6d%23.13g%23.13g  %v\n", i, zero(s.U[i]), zero(λ), owners[i])
	}
	l += "==========================================================================\n"
	return
}

// Reactions returns the multipliers of boundary problems, i.e. the reactions at constrained dofs.
// They are keyed by the constraint rows of each problem and read from their multiplier slots
func Reactions(s *fem.Solver) (res map[string]map[int]float64) {
	res = make(map[string]map[int]float64)
	if s.Boundary == nil {
		return
	}
	for _, p := range s.Problems {
		if p.Kind() != prob.KindBoundary {
			continue
		}
		r := make(map[int]float64)
		rows, vals := p.Assembly().Multipliers(s.La)
		for k, dof := range rows {
			r[dof] = vals[k]
		}
		res[p.Name()] = r
	}
	return
}

// zero returns 0 for tiny values
func zero(v float64) float64 {
	if v < TolZero && v > -TolZero {
		return 0
	}
	return v
}
