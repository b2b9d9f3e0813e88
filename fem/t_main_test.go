// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bar = `
data:
  desc: two springs fixed at the left end
  listbcs: true
functions:
  - name: load
    type: cte
    prms: [{n: c, v: 2}]
solver:
  linear: true
problems:
  - type: springs
    name: bar
    springs: [[0, 1, 1], [1, 2, 1]]
    f: [[2, 1]]
    func: load
  - type: dirichlet
    name: fix
    dofs: [0]
    vals: [0]
`

func Test_main01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("main01. simulation from file")

	fn := filepath.Join(tst.TempDir(), "bar.yaml")
	require.NoError(tst, os.WriteFile(fn, []byte(bar), 0644))

	analysis, err := NewMain(fn, chk.Verbose)
	require.NoError(tst, err)
	assert.Equal(tst, "bar", analysis.Sim.Key)
	require.Len(tst, analysis.Solver.Problems, 2)
	assert.Equal(tst, prob.KindBoundary, analysis.Solver.Problems[1].Kind())
	assert.Equal(tst, EliminationHandler{}, analysis.Solver.Handler)

	require.NoError(tst, analysis.Run())
	assert.Equal(tst, Converged, analysis.Solver.State)
	chk.Int(tst, "iterations", analysis.Solver.Iteration, 1)
	chk.Array(tst, "u", 1e-14, analysis.Solver.U, []float64{0, 2, 4})
	chk.Array(tst, "λ", 1e-14, analysis.Solver.La, []float64{2, 0, 0})
}

func Test_main02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("main02. handlers and invalid simulations")

	_, err := NewMain("/tmp/cofem/does/not/exist.yaml", false)
	assert.Error(tst, err)

	sim, err := inp.ParseSim([]byte(bar))
	require.NoError(tst, err)
	sim.Solver.Handler = "firstwins"
	analysis, err := NewMainSim(sim, false)
	require.NoError(tst, err)
	assert.Equal(tst, FirstWinsHandler{}, analysis.Solver.Handler)

	sim, err = inp.ParseSim([]byte(bar))
	require.NoError(tst, err)
	sim.Solver.Handler = "average"
	_, err = NewMainSim(sim, false)
	assert.Error(tst, err)

	sim, err = inp.ParseSim([]byte(bar))
	require.NoError(tst, err)
	sim.LinSol.Name = "cholesky"
	_, err = NewMainSim(sim, false)
	assert.Error(tst, err)

	sim, err = inp.ParseSim([]byte(bar))
	require.NoError(tst, err)
	sim.Problems[0].Type = "beam"
	_, err = NewMainSim(sim, false)
	assert.Error(tst, err)
}

func Test_main03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("main03. nonlinear springs tied and fixed")

	analysis, err := NewMain("../inp/data/springs01.yaml", chk.Verbose)
	require.NoError(tst, err)
	chk.Int(tst, "workers", analysis.Solver.Workers, 2)
	chk.Float64(tst, "time", 1e-17, analysis.Solver.Time, 0.5)
	require.NoError(tst, analysis.Run())

	s := analysis.Solver
	assert.Equal(tst, Converged, s.State)
	assert.Greater(tst, s.Iteration, 2)
	require.Len(tst, s.U, 5)
	chk.Float64(tst, "u0", 1e-15, s.U[0], 0)
	chk.Float64(tst, "u3", 1e-15, s.U[3], 0)
	chk.Float64(tst, "u4 - u2", 1e-12, s.U[4]-s.U[2], 0)
	assert.Greater(tst, s.U[2], 0.0)
}
