// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to compare simulations with reference results
package tests

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/cpmech/cofem/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Iteration holds results from iterations
type Iteration struct {
	It     int     // iteration number
	UNorm  float64 // ‖u‖
	LaNorm float64 // ‖λ‖
}

// Results holds numerical results
type Results struct {
	Status     string      // final state of the solver; e.g. "converged"
	Iterations []Iteration // iterations data
	U          []float64   // [ndofs] solution of the field system
	La         []float64   // [ndofs] Lagrange multipliers
}

// CompareResults runs a simulation and compares it with the results in a .cmp (json) file.
// Iterations are only compared if the .cmp file lists them
func CompareResults(tst *testing.T, simfilepath, cmpfname string, tolu, tolλ float64, verbose bool) {

	// messages
	if verbose {
		Verbose()
	}

	// FEM structure
	analysis, err := fem.NewMain(simfilepath, verbose)
	if err != nil {
		tst.Errorf("CompareResults: cannot allocate simulation:\n%v", err)
		return
	}

	// run
	err = analysis.Run()
	if err != nil {
		tst.Errorf("CompareResults: Run failed:\n%v", err)
		return
	}

	// read file with comparison results
	buf, err := os.ReadFile(cmpfname)
	if err != nil {
		tst.Errorf("CompareResults: ReadFile failed:%v\n", err)
		return
	}

	// unmarshal json
	var cmp Results
	err = json.Unmarshal(buf, &cmp)
	if err != nil {
		tst.Errorf("CompareResults: Unmarshal failed:%v\n", err)
		return
	}

	// status
	s := analysis.Solver
	if cmp.Status != "" && cmp.Status != s.State.String() {
		tst.Errorf("CompareResults: status %q is different than %q\n", s.State, cmp.Status)
		return
	}

	// iterations
	if len(cmp.Iterations) > 0 {
		if verbose {
			io.Pfgreen(". . . checking iterations . . .\n")
		}
		chk.Int(tst, "number of iterations", len(s.Norms), len(cmp.Iterations))
		for k, it := range cmp.Iterations {
			if k >= len(s.Norms) {
				break
			}
			chk.Float64(tst, io.Sf("‖u‖ @ it=%d", it.It), tolu, s.Norms[k].U, it.UNorm)
			chk.Float64(tst, io.Sf("‖λ‖ @ it=%d", it.It), tolλ, s.Norms[k].La, it.LaNorm)
		}
	}

	// solution
	if verbose {
		io.Pfgreen(". . . checking solution . . .\n")
	}
	chk.Array(tst, "u", tolu, s.U, cmp.U)
	chk.Array(tst, "λ", tolλ, s.La, cmp.La)
}
