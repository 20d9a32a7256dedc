// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import "math"

// Physical constants (SI units)
const (
	R   = 8.31446261815324 // universal gas constant [J/(mol・K)]
	Nav = 6.02214076e23    // Avogadro number [1/mol]
)

// PressureFromHelmholtz computes the pressure from the reduced residual
// Helmholtz energy by central difference:
//  P = R・T・ρ・(1 + ρ・∂ares/∂ρ)
// Families without a closed-form pressure implement Pressure with this
// helper, which keeps pressure and fugacity on the same free-energy
// basis.
func PressureFromHelmholtz(m Model, T, rho float64, x []float64) (float64, error) {
	h := rho * 1e-6
	ap, err := m.ResidualHelmholtz(T, rho+h, x)
	if err != nil {
		return 0, err
	}
	am, err := m.ResidualHelmholtz(T, rho-h, x)
	if err != nil {
		return 0, err
	}
	dadrho := (ap - am) / (2.0 * h)
	return R * T * rho * (1.0 + rho*dadrho), nil
}

// FugacityCoefsFromHelmholtz computes fugacity coefficients from the
// reduced residual Helmholtz energy:
//  ln φi = ∂(ρt・ares)/∂ρi − ln Z
// where the derivative is taken at constant T and volume by perturbing
// the component densities ρi = xi・ρ. Fails with *DomainError when the
// pressure at (T,ρ,x) is non-positive, where ln Z is undefined.
func FugacityCoefsFromHelmholtz(m Model, T, rho float64, x []float64) ([]float64, error) {
	P, err := m.Pressure(T, rho, x)
	if err != nil {
		return nil, err
	}
	if P <= 0 {
		return nil, &DomainError{Msg: "non-positive pressure; fugacity coefficients are undefined here", T: T, Rho: rho}
	}
	lnZ := math.Log(P / (rho * R * T))

	// f(ρ1..ρn) = ρt・ares(T, ρt, ρ/ρt)
	n := len(x)
	rhoi := make([]float64, n)
	work := make([]float64, n)
	xt := make([]float64, n)
	for i := 0; i < n; i++ {
		rhoi[i] = x[i] * rho
	}
	eval := func(i int, d float64) (float64, error) {
		copy(work, rhoi)
		work[i] += d
		rhot := 0.0
		for _, r := range work {
			rhot += r
		}
		for j := 0; j < n; j++ {
			xt[j] = work[j] / rhot
		}
		a, err := m.ResidualHelmholtz(T, rhot, xt)
		return rhot * a, err
	}

	phi := make([]float64, n)
	for i := 0; i < n; i++ {
		var mu float64
		if rhoi[i] > 0 {
			h := rhoi[i] * 1e-6
			fp, err := eval(i, h)
			if err != nil {
				return nil, err
			}
			fm, err := eval(i, -h)
			if err != nil {
				return nil, err
			}
			mu = (fp - fm) / (2.0 * h)
		} else {
			// infinite-dilution limit: second-order forward difference
			h := rho * 1e-8
			f0 := 0.0
			f0, err = eval(i, 0)
			if err != nil {
				return nil, err
			}
			f1, err := eval(i, h)
			if err != nil {
				return nil, err
			}
			f2, err := eval(i, 2.0*h)
			if err != nil {
				return nil, err
			}
			mu = (-3.0*f0 + 4.0*f1 - f2) / (2.0 * h)
		}
		phi[i] = math.Exp(mu - lnZ)
	}
	return phi, nil
}
