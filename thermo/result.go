// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

// Phase is one converged phase of an equilibrium result: a composition
// with the density resolved by a converged inner solve
type Phase struct {
	X   []float64 // mole fractions
	Rho float64   // molar density [mol/m³]
}

// Result is the terminal value of a successful equilibrium calculation.
// All phases share T and P and have matching component fugacities
// within the configured tolerance; partially converged states are never
// wrapped in a Result.
type Result struct {
	T      float64  // temperature [K]
	P      float64  // pressure [Pa]
	Phases []*Phase // two or more phases (one for critical points)
	Beta   float64  // vapor mole fraction (flash calculations)

	// convergence diagnostics
	It    int     // outer iterations used
	Resid float64 // final fugacity-mismatch residual
	Path  string  // calculation that produced this result
}

// Liquid returns the densest phase
func (o *Result) Liquid() *Phase {
	best := o.Phases[0]
	for _, ph := range o.Phases[1:] {
		if ph.Rho > best.Rho {
			best = ph
		}
	}
	return best
}

// Vapor returns the lightest phase
func (o *Result) Vapor() *Phase {
	best := o.Phases[0]
	for _, ph := range o.Phases[1:] {
		if ph.Rho < best.Rho {
			best = ph
		}
	}
	return best
}
