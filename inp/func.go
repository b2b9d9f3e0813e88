// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// FuncData holds the definition of a time multiplier
//  Types are the ones of gosl/fun/dbf; e.g.
//   cte -- prms: [{n: c, v: 2}]
//   lin -- prms: [{n: m, v: 1}, {n: ts, v: 0}]
//   rmp -- prms: [{n: ca, v: 0}, {n: cb, v: 1}, {n: ta, v: 0}, {n: tb, v: 1}]
type FuncData struct {
	Name string     `json:"name" yaml:"name"` // name of function. ex: load, myfunction1
	Type string     `json:"type" yaml:"type"` // type of function. ex: cte, rmp
	Prms dbf.Params `json:"prms" yaml:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Get returns function by name. An empty name, "one" or "none" returns nil (unit multiplier)
func (o FuncsData) Get(name string) (fcn func(t float64) float64, err error) {
	switch name {
	case "", "one", "none":
		return
	case "zero":
		fcn = func(float64) float64 { return 0 }
		return
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err = f.New()
			if err != nil {
				err = chk.Err("cannot get function named %q because of the following error:\n%v", name, err)
			}
			return
		}
	}
	err = chk.Err("cannot find function named %q", name)
	return
}

// New allocates the function. dbf panics on unknown types or parameters; these become errors
func (o *FuncData) New() (fcn func(t float64) float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			fcn, err = nil, chk.Err("function %q of type %q is invalid:\n%v", o.Name, o.Type, r)
		}
	}()
	f := dbf.New(o.Type, o.Prms)
	if f == nil {
		return nil, chk.Err("function type %q is not available", o.Type)
	}
	fcn = func(t float64) float64 { return f.F(t, nil) }
	return
}

// String prints one function
func (o FuncData) String() string {
	l := io.Sf("{name:%q, type:%q, prms:[", o.Name, o.Type)
	for i, p := range o.Prms {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%s=%g", p.N, p.V)
	}
	return l + "]}"
}
