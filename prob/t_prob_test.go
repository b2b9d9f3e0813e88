// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"testing"

	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_assembly01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("assembly01. norms and local values")

	asm := NewAssembly()
	assert.True(tst, asm.Changed)
	asm.K.Put(3, 3, 1)
	asm.F.Put(1, 2)
	asm.SetDofs(KindField)
	chk.Ints(tst, "dofs", asm.Dofs, []int{1, 3})

	asm.Update([]float64{3, 4, 0, 0}, nil)
	chk.Float64(tst, "‖u‖", 1e-15, asm.UNorm, 5)
	chk.Float64(tst, "‖Δu‖", 1e-15, asm.UNormChange, 5)
	chk.Array(tst, "uprev", 1e-17, asm.Uprev, []float64{0, 0, 0, 0})

	asm.Update([]float64{3, 4, 0, 1}, nil)
	chk.Float64(tst, "‖Δu‖", 1e-15, asm.UNormChange, 1)
	chk.Array(tst, "local", 1e-17, asm.Local(asm.U), []float64{4, 1})

	asm.Reset()
	assert.Nil(tst, asm.U)
	assert.Empty(tst, asm.Dofs)
	chk.Int(tst, "len(K)", asm.K.Len(), 0)
	assert.True(tst, asm.Changed)
}

func Test_dirichlet01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("dirichlet01. prescribed values")

	o := NewDirichlet("fix", []int{4, 1}, []float64{2, -1})
	o.Mult = func(t float64) float64 { return 2 * t }
	o.Eps = 1e-3
	require.NoError(tst, o.Initialize(0))
	require.NoError(tst, o.Assemble(1.5))
	assert.False(tst, o.Assembly().Changed)
	assert.True(tst, Check(o))

	asm := o.Assembly()
	chk.Ints(tst, "C2 rows", asm.C2.NonzeroRows(), []int{1, 4})
	chk.Ints(tst, "C1 rows", asm.C1.NonzeroRows(), []int{1, 4})
	chk.Float64(tst, "D44", 1e-17, asm.D.ToCSR().At(4, 4), -1e-3)
	chk.Float64(tst, "g4", 1e-17, asm.G.At(4), 6)
	chk.Float64(tst, "g1", 1e-17, asm.G.At(1), -3)
	chk.Ints(tst, "dofs", asm.Dofs, []int{1, 4})
	assert.Contains(tst, o.List(1.5), "value @ t=1.5")

	// local multipliers
	lu, lλ, err := o.UpdateAssembly([]float64{0, 1, 2, 3, 4}, []float64{0, 10, 0, 0, 40})
	require.NoError(tst, err)
	chk.Array(tst, "lu", 1e-17, lu, []float64{1, 4})
	chk.Array(tst, "lλ", 1e-17, lλ, []float64{10, 40})

	// invalid data
	assert.Error(tst, NewDirichlet("a", []int{1}, nil).Initialize(0))
	assert.Error(tst, NewDirichlet("b", []int{-1}, []float64{0}).Initialize(0))
	assert.Error(tst, NewDirichlet("c", []int{1, 1}, []float64{0, 0}).Initialize(0))
	o = NewDirichlet("d", []int{1}, []float64{0})
	o.Eps = -1
	assert.Error(tst, o.Initialize(0))
}

func Test_tie01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("tie01. tied dofs")

	o := NewTie("tie", []Pair{{Slave: 2, Master: 0, Gap: 0.5}})
	require.NoError(tst, o.Initialize(0))
	require.NoError(tst, o.Assemble(0))
	asm := o.Assembly()
	cols, vals := asm.C2.Row(2)
	chk.Ints(tst, "cols", cols, []int{0, 2})
	chk.Array(tst, "vals", 1e-17, vals, []float64{-1, 1})
	chk.Float64(tst, "gap", 1e-17, asm.G.At(2), 0.5)
	chk.Ints(tst, "dofs", asm.Dofs, []int{0, 2})
	assert.Equal(tst, TagContact, o.Tag())

	assert.Error(tst, NewTie("a", []Pair{{Slave: 1, Master: 1}}).Initialize(0))
	assert.Error(tst, NewTie("b", []Pair{{Slave: -1, Master: 1}}).Initialize(0))
	assert.Error(tst, NewTie("c", []Pair{{Slave: 1, Master: 2}, {Slave: 1, Master: 3}}).Initialize(0))
}

func Test_springs01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("springs01. secant stiffness")

	o := NewSprings("springs", []*Spring{
		{A: -1, B: 0, K0: 2},
		{A: 0, B: 1, K0: 1, Alpha: 1},
	}, []Load{{Dof: 1, Val: 3}})
	o.Mult = func(t float64) float64 { return t }
	require.NoError(tst, o.Initialize(0))
	require.NoError(tst, o.Assemble(2))
	asm := o.Assembly()
	chk.Float64(tst, "K00", 1e-17, asm.K.ToCSR().At(0, 0), 3)
	chk.Float64(tst, "K01", 1e-17, asm.K.ToCSR().At(0, 1), -1)
	chk.Float64(tst, "K11", 1e-17, asm.K.ToCSR().At(1, 1), 1)
	chk.Float64(tst, "f1", 1e-17, asm.F.At(1), 6)

	// elongation 2 on the second spring => k = 1・(1 + 2²)
	lu, _, err := o.UpdateAssembly([]float64{1, 3}, nil)
	require.NoError(tst, err)
	require.NoError(tst, o.UpdateElements(lu, nil, 2))
	chk.Array(tst, "elong", 1e-17, o.Elong, []float64{1, 2})
	chk.Array(tst, "force", 1e-17, o.Force, []float64{2, 10})

	asm.Changed = true
	require.NoError(tst, o.Assemble(2))
	chk.Float64(tst, "K11", 1e-17, asm.K.ToCSR().At(1, 1), 5)

	// invalid
	assert.Error(tst, NewSprings("a", []*Spring{{A: 0, B: 1, K0: 0}}, nil).Initialize(0))
	assert.Error(tst, NewSprings("b", []*Spring{{A: -1, B: -1, K0: 1}}, nil).Initialize(0))
	assert.Error(tst, o.UpdateElements([]float64{1}, nil, 0))
}

func Test_matrix01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("matrix01. invalid indices")

	o := NewMatrix("m", []Entry{{I: 0, J: 0, V: 1}}, []Load{{Dof: 0, Val: 1}})
	require.NoError(tst, o.Initialize(0))
	assert.Error(tst, NewMatrix("a", []Entry{{I: -1, J: 0, V: 1}}, nil).Initialize(0))
	assert.Error(tst, NewMatrix("b", []Entry{{I: 0, J: -2, V: 1}}, nil).Initialize(0))
	assert.Error(tst, NewMatrix("c", nil, []Load{{Dof: -1, Val: 1}}).Initialize(0))
	assert.Error(tst, NewSprings("d", []*Spring{{A: 0, B: 1, K0: 1}}, []Load{{Dof: -3, Val: 1}}).Initialize(0))

	p, err := New(&inp.ProblemData{Type: "matrix", Name: "e", K: [][]float64{{-1, 0, 1}}}, nil)
	require.NoError(tst, err)
	assert.Error(tst, p.Initialize(0))
}

func Test_slots01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("slots01. multipliers of relocated constraints")

	o := NewTie("tie", []Pair{{Slave: 0, Master: 2}, {Slave: 3, Master: 2}})
	require.NoError(tst, o.Initialize(0))
	require.NoError(tst, o.Assemble(0))
	asm := o.Assembly()
	chk.Ints(tst, "dofs", asm.Dofs, []int{0, 2, 3})

	λ := []float64{10, 20, 30, 40}
	rows, vals := asm.Multipliers(λ)
	chk.Ints(tst, "rows", rows, []int{0, 3})
	chk.Array(tst, "vals", 1e-17, vals, []float64{10, 40})
	chk.Array(tst, "local", 1e-17, asm.LocalMultipliers(λ), []float64{10, 0, 40})

	// row 0 moved to slot 1
	asm.Slots = map[int]int{0: 1}
	chk.Int(tst, "slot 0", asm.Slot(0), 1)
	chk.Int(tst, "slot 3", asm.Slot(3), 3)
	_, lλ, err := o.UpdateAssembly([]float64{0, 0, 0, 0}, λ)
	require.NoError(tst, err)
	chk.Array(tst, "lλ", 1e-17, lλ, []float64{20, 0, 40})

	// a new assembly forgets the relocation
	asm.Changed = true
	require.NoError(tst, o.Assemble(0))
	assert.Nil(tst, asm.Slots)
}

func Test_factory01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("factory01. problems from input data")

	funcs := inp.FuncsData{{Name: "half", Type: "cte", Prms: dbf.Params{{N: "c", V: 0.5}}}}

	p, err := New(&inp.ProblemData{Type: "matrix", Name: "m", K: [][]float64{{0, 0, 2}}, F: [][]float64{{0, 4}}, Func: "half"}, funcs)
	require.NoError(tst, err)
	assert.Equal(tst, KindField, p.Kind())
	require.NoError(tst, p.Assemble(0))
	chk.Float64(tst, "f0", 1e-17, p.Assembly().F.At(0), 2)

	p, err = New(&inp.ProblemData{Type: "springs", Name: "s", Ndofn: 3, Springs: [][]float64{{0, 1, 1, 0.5}}}, nil)
	require.NoError(tst, err)
	chk.Int(tst, "ndofn", p.DofsPerNode(), 3)
	chk.Float64(tst, "alpha", 1e-17, p.(*Springs).Elems[0].Alpha, 0.5)

	p, err = New(&inp.ProblemData{Type: "tie", Name: "t", Pairs: [][]float64{{1, 0}}}, nil)
	require.NoError(tst, err)
	assert.Equal(tst, TagContact, p.Tag())

	p, err = New(&inp.ProblemData{Type: "dirichlet", Name: "d", Dofs: []int{0}, Vals: []float64{1}, Eps: 0.1}, nil)
	require.NoError(tst, err)
	assert.Equal(tst, TagDirichlet, p.Tag())
	chk.Float64(tst, "eps", 1e-17, p.(*Dirichlet).Eps, 0.1)

	// errors
	_, err = New(&inp.ProblemData{Type: "beam"}, nil)
	assert.Error(tst, err)
	_, err = New(&inp.ProblemData{Type: "matrix", Func: "missing"}, nil)
	assert.Error(tst, err)
	_, err = New(&inp.ProblemData{Type: "matrix", K: [][]float64{{0, 0}}}, nil)
	assert.Error(tst, err)
	_, err = New(&inp.ProblemData{Type: "matrix", F: [][]float64{{0}}}, nil)
	assert.Error(tst, err)
	_, err = New(&inp.ProblemData{Type: "springs", Springs: [][]float64{{0, 1}}}, nil)
	assert.Error(tst, err)
	_, err = New(&inp.ProblemData{Type: "tie", Pairs: [][]float64{{0}}}, nil)
	assert.Error(tst, err)

	// registry
	assert.Equal(tst, []string{"dirichlet", "matrix", "springs", "tie"}, Types())
	assert.Panics(tst, func() { SetAllocator("matrix", nil) })
	assert.Equal(tst, "boundary", KindBoundary.String())
	assert.Equal(tst, "dirichlet", TagDirichlet.String())
}
