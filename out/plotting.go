// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/cofem/fem"
	"github.com/guptarohit/asciigraph"
)

// PlotCfg holds the configuration of text plots
type PlotCfg struct {
	Height int     // number of rows
	Width  int     // number of columns; 0 => one per point
	Floor  float64 // lowest log10 value; zero norms are plotted here
}

// DefaultPlotCfg is used when nil is passed to the plotting functions
var DefaultPlotCfg = PlotCfg{Height: 12, Width: 60, Floor: -16}

// PlotNorms returns a text plot of log10(‖u‖) and log10(‖λ‖) versus iteration
func PlotNorms(s *fem.Solver, cfg *PlotCfg) string {
	if cfg == nil {
		cfg = &DefaultPlotCfg
	}
	if len(s.Norms) == 0 {
		return ""
	}
	u := make([]float64, len(s.Norms))
	λ := make([]float64, len(s.Norms))
	for i, n := range s.Norms {
		u[i] = log10(n.U, cfg.Floor)
		λ[i] = log10(n.La, cfg.Floor)
	}
	opts := []asciigraph.Option{
		asciigraph.Height(cfg.Height),
		asciigraph.Caption("log10 ‖u‖ (blue) and log10 ‖λ‖ (red) per iteration"),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	}
	if cfg.Width > 0 {
		opts = append(opts, asciigraph.Width(cfg.Width))
	}
	return asciigraph.PlotMany([][]float64{u, λ}, opts...)
}

// log10 returns log10(v) limited from below by floor
func log10(v, floor float64) float64 {
	if v <= 0 {
		return floor
	}
	return math.Max(math.Log10(v), floor)
}
