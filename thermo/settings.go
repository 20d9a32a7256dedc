// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package thermo layers property evaluation and phase-equilibrium
// calculations (bubble and dew points, flash, critical point) on top of
// any eos.Model. Every calculation is a self-contained sequence of
// nested solves: an inner density solve closes pressure at fixed
// composition, and an outer iteration drives the compositions and
// pressure (or temperature) until fugacities match across phases.
// Nothing in this package holds state between calls, so concurrent
// calculations with distinct inputs never interfere.
package thermo

import "github.com/jaclark5/despasito/root"

// Settings gathers the tolerances and budgets of one calculation.
// The zero value is not usable; start from DefaultSettings.
type Settings struct {
	TolFug     float64     // relative tolerance on fugacity equality across phases
	TolSum     float64     // tolerance on the Σ(K・x)-1 closure in bubble/dew updates
	TolAmbig   float64     // Gibbs-energy noise level below which root selection refuses to guess
	MaxOuter   int         // budget of the outer equilibrium iteration
	Retries    int         // density-scan retries with a densified grid before giving up
	ScanPoints int         // points of the first density scan
	MinRhoFrac float64     // first scan point as a fraction of the maximum density
	Pguess     float64     // optional initial pressure [Pa]; 0 means estimate internally
	Tguess     float64     // initial temperature [K] for temperature-iterating calculations
	Root       root.Config // inner root-finder configuration
	Verbose    bool        // print iteration traces
}

// DefaultSettings returns the documented defaults. The first density
// scan starts at 1/300000 of the maximum density, low enough to catch
// near-ideal vapor roots.
func DefaultSettings() Settings {
	return Settings{
		TolFug:     1e-8,
		TolSum:     1e-8,
		TolAmbig:   1e-10,
		MaxOuter:   200,
		Retries:    3,
		ScanPoints: 300,
		MinRhoFrac: 1.0 / 300000.0,
		Tguess:     300.0,
		Root:       root.DefaultConfig(),
	}
}
