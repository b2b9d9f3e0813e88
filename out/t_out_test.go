// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/cpmech/cofem/fem"
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solved(tst *testing.T) *fem.Solver {
	springs := prob.NewSprings("springs", []*prob.Spring{
		{A: 0, B: 1, K0: 1, Alpha: 0.1},
		{A: 1, B: 2, K0: 1, Alpha: 0.1},
	}, []prob.Load{{Dof: 2, Val: 1}})
	fix := prob.NewDirichlet("fix", []int{0}, []float64{0})
	s := fem.NewSolver("out", springs, fix)
	s.Tol = 1e-10
	s.MaxIterations = 50
	require.NoError(tst, s.Solve())
	return s
}

func Test_out01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("out01. tables")

	s := solved(tst)
	l := Norms(s)
	assert.Contains(tst, l, "converged")
	assert.Contains(tst, l, io.Sf("%6d", s.Iteration))

	l = Solution(s)
	assert.Contains(tst, l, "[springs fix]")
	assert.Contains(tst, l, "[springs]")
	if chk.Verbose {
		io.Pf("%s", l)
	}

	r := Reactions(s)
	require.Contains(tst, r, "fix")
	chk.Float64(tst, "reaction", 1e-8, r["fix"][0], 1)
}

func Test_out02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("out02. plot of norms")

	s := solved(tst)
	p := PlotNorms(s, nil)
	assert.NotEmpty(tst, p)
	assert.Contains(tst, p, "log10")
	if chk.Verbose {
		io.Pf("%s\n", p)
	}

	assert.Empty(tst, PlotNorms(fem.NewSolver("empty"), nil))
	chk.Float64(tst, "floor", 1e-17, log10(0, -16), -16)
	chk.Float64(tst, "log10", 1e-15, log10(100, -16), 2)
}

func Test_out03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("out03. reactions of relocated constraints")

	K := prob.NewMatrix("K", []prob.Entry{{I: 0, J: 0, V: 1}, {I: 1, J: 1, V: 1}, {I: 2, J: 2, V: 1}},
		[]prob.Load{{Dof: 0, Val: 1}, {Dof: 1, Val: 2}, {Dof: 2, Val: 3}})
	fix := prob.NewDirichlet("fix", []int{0}, []float64{0})
	tie := prob.NewTie("tie", []prob.Pair{{Slave: 0, Master: 1}})
	s := fem.NewSolver("out03", K, fix, tie)
	s.Linear = true
	require.NoError(tst, s.Solve())

	r := Reactions(s)
	assert.Equal(tst, map[int]float64{0: 1}, r["fix"])
	require.Contains(tst, r["tie"], 0)
	chk.Float64(tst, "tie reaction", 1e-15, r["tie"][0], -2)
}
