// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/cofem/prob"
	"github.com/cpmech/gosl/io"
)

// ZERO is the norm below which a solution is considered zero
const ZERO = 1e-14

// HasConverged checks the convergence of all problems after an iteration
//  field problems:    ‖u - uprev‖ < Tol, or ‖u‖ ≈ 0
//  boundary problems: ‖λ - λprev‖ / ‖λ‖ < Tol; only if CheckBoundaryConvergence
// The result is the conjunction over all checked problems; linear systems always converge
func (o *Solver) HasConverged() (converged bool) {
	converged = true
	for _, p := range o.Problems {
		asm := p.Assembly()
		switch p.Kind() {
		case prob.KindField:
			ok := asm.UNormChange < o.Tol || asm.UNorm < ZERO
			if o.Verbose {
				io.Pf("  %-20s ‖u‖ = %-23.15e ‖Δu‖ = %-23.15e converged = %v\n", p.Name(), asm.UNorm, asm.UNormChange, ok)
			}
			converged = converged && ok
		case prob.KindBoundary:
			if !o.CheckBoundaryConvergence {
				continue
			}
			rel := asm.LaNormChange
			if asm.LaNorm >= ZERO {
				rel /= asm.LaNorm
			}
			ok := rel < o.Tol
			if o.Verbose {
				io.Pf("  %-20s ‖λ‖ = %-23.15e ‖Δλ‖/‖λ‖ = %-23.15e converged = %v\n", p.Name(), asm.LaNorm, rel, ok)
			}
			converged = converged && ok
		}
	}
	if o.Linear {
		if o.Verbose && !converged {
			io.Pf("  linear system: converged\n")
		}
		return true
	}
	return
}
