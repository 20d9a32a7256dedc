// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/jaclark5/despasito/eos"
)

// Fugacity resolves the density of the requested branch at (T,P,x) and
// returns the fugacity coefficients there together with the resolved
// density. This is the stateless building block of all equilibrium
// calculations.
func Fugacity(mdl eos.Model, T, P float64, x []float64, branch Branch, sts Settings) (phi []float64, rho float64, err error) {
	rho, err = Density(mdl, T, P, x, branch, sts)
	if err != nil {
		return
	}
	phi, err = mdl.FugacityCoefs(T, rho, x)
	return
}

// CompressibilityFactor returns Z = P/(ρ・R・T) at the given state
func CompressibilityFactor(mdl eos.Model, T, rho float64, x []float64) (float64, error) {
	P, err := mdl.Pressure(T, rho, x)
	if err != nil {
		return 0, err
	}
	return P / (rho * eos.R * T), nil
}

// ResidualChemPotential returns μi_res/(kB・T) = ln φi + ln Z for each
// component at the given state
func ResidualChemPotential(mdl eos.Model, T, rho float64, x []float64) ([]float64, error) {
	phi, err := mdl.FugacityCoefs(T, rho, x)
	if err != nil {
		return nil, err
	}
	Z, err := CompressibilityFactor(mdl, T, rho, x)
	if err != nil {
		return nil, err
	}
	mu := make([]float64, len(phi))
	for i, p := range phi {
		mu[i] = math.Log(p) + math.Log(Z)
	}
	return mu, nil
}
