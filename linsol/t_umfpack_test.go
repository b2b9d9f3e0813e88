// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"testing"

	"github.com/cpmech/cofem/fem"
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_umfpack01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("umfpack01. springs with prescribed displacement")

	assert.Contains(tst, fem.LinSols(), "umfpack")

	springs := prob.NewSprings("springs", []*prob.Spring{
		{A: 0, B: 1, K0: 1},
		{A: 1, B: 2, K0: 1},
	}, []prob.Load{{Dof: 2, Val: 1}})
	fix := prob.NewDirichlet("fix", []int{0}, []float64{0})

	s := fem.NewSolver("umfpack01", springs, fix)
	s.Linear = true
	s.LinSol.Name = "umfpack"
	s.LinSol.Verbose = chk.Verbose
	require.NoError(tst, s.Solve())
	chk.Array(tst, "u", 1e-14, s.U, []float64{0, 1, 2})
	chk.Array(tst, "λ", 1e-14, s.La, []float64{1, 0, 0})
	assert.Equal(tst, "umfpack", s.Stats.Strategy)
}

func Test_umfpack02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("umfpack02. singular system")

	p := prob.NewMatrix("singular", []prob.Entry{
		{I: 0, J: 0, V: 1}, {I: 0, J: 1, V: 1},
		{I: 1, J: 0, V: 1}, {I: 1, J: 1, V: 1},
	}, []prob.Load{{Dof: 0, Val: 1}, {Dof: 1, Val: 1}})
	s := fem.NewSolver("umfpack02", p)
	s.LinSol.Name = "umfpack"
	err := s.Solve()
	var serr *fem.SingularSystemError
	require.ErrorAs(tst, err, &serr)
	assert.Equal(tst, "umfpack", serr.Strategy)
}
