// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"sort"

	"github.com/cpmech/cofem/inp"
	"github.com/cpmech/gosl/chk"
)

// AllocatorType defines a function that allocates a problem from input data
//  mult -- time multiplier selected by data.Func; nil means a unit multiplier
type AllocatorType func(data *inp.ProblemData, mult func(t float64) float64) (Problem, error)

// New returns a new problem from factory
func New(data *inp.ProblemData, funcs inp.FuncsData) (p Problem, err error) {
	fcn, ok := allocators[data.Type]
	if !ok {
		err = chk.Err("cannot get allocator for problem {type=%q, name=%q}", data.Type, data.Name)
		return
	}
	mult, err := funcs.Get(data.Func)
	if err != nil {
		err = chk.Err("problem %q: %v", data.Name, err)
		return
	}
	p, err = fcn(data, mult)
	if err != nil {
		err = chk.Err("cannot allocate problem {type=%q, name=%q}:\n%v", data.Type, data.Name, err)
		return
	}
	if !Check(p) {
		err = chk.Err("problem %q has inconsistent kind (%v) and tag (%v)", p.Name(), p.Kind(), p.Tag())
	}
	return
}

// SetAllocator sets a new callback function to allocate a problem
func SetAllocator(typename string, fcn AllocatorType) {
	if _, ok := allocators[typename]; ok {
		chk.Panic("cannot set allocator function for %q because problem type exists already", typename)
	}
	allocators[typename] = fcn
}

// Types returns the sorted names of all available problem types
func Types() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all problem allocators
var allocators = map[string]AllocatorType{
	"matrix":    allocMatrix,
	"springs":   allocSprings,
	"dirichlet": allocDirichlet,
	"tie":       allocTie,
}

// allocators /////////////////////////////////////////////////////////////////////////////////////

func allocMatrix(data *inp.ProblemData, mult func(t float64) float64) (Problem, error) {
	kij := make([]Entry, len(data.K))
	for k, row := range data.K {
		if len(row) != 3 {
			return nil, chk.Err("k[%d] must have 3 values (i, j, v); got %v", k, row)
		}
		kij[k] = Entry{I: int(row[0]), J: int(row[1]), V: row[2]}
	}
	fi, err := loads(data.F)
	if err != nil {
		return nil, err
	}
	o := NewMatrix(data.Name, kij, fi)
	o.Mult = mult
	if data.Ndofn > 0 {
		o.ndofn = data.Ndofn
	}
	return o, nil
}

func allocSprings(data *inp.ProblemData, mult func(t float64) float64) (Problem, error) {
	elems := make([]*Spring, len(data.Springs))
	for k, row := range data.Springs {
		if len(row) != 3 && len(row) != 4 {
			return nil, chk.Err("springs[%d] must have 3 or 4 values (a, b, k0[, alpha]); got %v", k, row)
		}
		elems[k] = &Spring{A: int(row[0]), B: int(row[1]), K0: row[2]}
		if len(row) == 4 {
			elems[k].Alpha = row[3]
		}
	}
	fi, err := loads(data.F)
	if err != nil {
		return nil, err
	}
	o := NewSprings(data.Name, elems, fi)
	o.Mult = mult
	if data.Ndofn > 0 {
		o.ndofn = data.Ndofn
	}
	return o, nil
}

func allocDirichlet(data *inp.ProblemData, mult func(t float64) float64) (Problem, error) {
	o := NewDirichlet(data.Name, data.Dofs, data.Vals)
	o.Mult = mult
	o.Eps = data.Eps
	if data.Ndofn > 0 {
		o.ndofn = data.Ndofn
	}
	return o, nil
}

func allocTie(data *inp.ProblemData, mult func(t float64) float64) (Problem, error) {
	pairs := make([]Pair, len(data.Pairs))
	for k, row := range data.Pairs {
		if len(row) != 2 && len(row) != 3 {
			return nil, chk.Err("pairs[%d] must have 2 or 3 values (slave, master[, gap]); got %v", k, row)
		}
		pairs[k] = Pair{Slave: int(row[0]), Master: int(row[1])}
		if len(row) == 3 {
			pairs[k].Gap = row[2]
		}
	}
	o := NewTie(data.Name, pairs)
	if data.Ndofn > 0 {
		o.ndofn = data.Ndofn
	}
	return o, nil
}

func loads(rows [][]float64) (fi []Load, err error) {
	fi = make([]Load, len(rows))
	for k, row := range rows {
		if len(row) != 2 {
			return nil, chk.Err("f[%d] must have 2 values (dof, v); got %v", k, row)
		}
		fi[k] = Load{Dof: int(row[0]), Val: row[1]}
	}
	return
}
