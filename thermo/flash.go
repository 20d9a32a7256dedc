// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/jaclark5/despasito/eos"
	"github.com/jaclark5/despasito/root"
)

// Flash splits a mixture of overall composition z at fixed T and P into
// coexisting liquid and vapor phases. The phase fraction follows from
// the Rachford-Rice balance at each K-value update; the K-values follow
// from the fugacity coefficients of both phases.
func Flash(mdl eos.Model, T, P float64, z []float64, sts Settings) (*Result, error) {
	n := mdl.Ncomp()
	if err := eos.CheckComposition(z, n); err != nil {
		return nil, err
	}
	if n == 1 {
		return flashPure(mdl, T, P, sts)
	}

	// initial K from the Raoult estimate
	K := la.NewVector(n)
	for i := 0; i < n; i++ {
		e := make([]float64, n)
		e[i] = 1.0
		Psat, _, _, err := SaturationPressure(mdl, T, e, sts)
		if err != nil {
			return nil, err
		}
		K[i] = Psat / P
	}

	x := la.NewVector(n)
	y := la.NewVector(n)
	var β, resid float64
	for it := 1; it <= sts.MaxOuter; it++ {

		// Rachford-Rice: Σ zi(Ki-1)/(1+β(Ki-1)) = 0 on β ∈ (0,1)
		rr := func(β float64) (float64, error) {
			s := 0.0
			for i := 0; i < n; i++ {
				s += z[i] * (K[i] - 1.0) / (1.0 + β*(K[i]-1.0))
			}
			return s, nil
		}
		r0, _ := rr(0)
		r1, _ := rr(1)
		if r0 <= 0 || r1 >= 0 {
			return nil, &ConvergenceError{Calc: "flash",
				Msg: "mixture is single-phase at these conditions", It: it, T: T, P: P, X: z}
		}
		var err error
		if β, _, err = root.Brent(rr, 0, 1, sts.Root); err != nil {
			return nil, err
		}

		// phase compositions from the mass balance
		sx, sy := 0.0, 0.0
		for i := 0; i < n; i++ {
			x[i] = z[i] / (1.0 + β*(K[i]-1.0))
			y[i] = K[i] * x[i]
			sx += x[i]
			sy += y[i]
		}
		for i := 0; i < n; i++ {
			x[i] /= sx
			y[i] /= sy
		}

		phil, rhol, err := Fugacity(mdl, T, P, x, Liquid, sts)
		if err != nil {
			return nil, err
		}
		phiv, rhov, err := Fugacity(mdl, T, P, y, Vapor, sts)
		if err != nil {
			return nil, err
		}
		resid = 0
		for i := 0; i < n; i++ {
			if y[i] > 0 {
				resid = math.Max(resid, math.Abs(x[i]*phil[i]/(y[i]*phiv[i])-1.0))
			}
		}
		if sts.Verbose {
			io.Pf("flash it=%3d  beta=%.8f  resid=%.3e\n", it, β, resid)
		}
		if resid < sts.TolFug {
			phases := []*Phase{
				{X: append([]float64(nil), x...), Rho: rhol},
				{X: append([]float64(nil), y...), Rho: rhov},
			}
			return &Result{T: T, P: P, Phases: phases, Beta: β, It: it, Resid: resid, Path: "flash"}, nil
		}
		for i := 0; i < n; i++ {
			K[i] = phil[i] / phiv[i]
		}
	}
	return nil, &ConvergenceError{Calc: "flash", Msg: "outer iteration budget exhausted",
		It: sts.MaxOuter, Resid: resid, T: T, P: P, X: z}
}

// flashPure handles the single-component case: two phases coexist only
// on the saturation line, so the split is a fugacity check between the
// vapor-like and liquid-like roots rather than a Rachford-Rice solve.
func flashPure(mdl eos.Model, T, P float64, sts Settings) (*Result, error) {
	x := []float64{1}
	rhol, err := Density(mdl, T, P, x, Liquid, sts)
	if err != nil {
		return nil, err
	}
	rhov, err := Density(mdl, T, P, x, Vapor, sts)
	if err != nil {
		return nil, err
	}
	if math.Abs(rhol-rhov) <= 1e-9*rhol {
		return nil, &ConvergenceError{Calc: "flash",
			Msg: "single density root: fluid is single-phase at these conditions", T: T, P: P, X: x}
	}
	phil, err := mdl.FugacityCoefs(T, rhol, x)
	if err != nil {
		return nil, err
	}
	phiv, err := mdl.FugacityCoefs(T, rhov, x)
	if err != nil {
		return nil, err
	}
	resid := math.Abs(phil[0]/phiv[0] - 1.0)
	if resid >= sts.TolFug {
		return nil, &ConvergenceError{Calc: "flash",
			Msg: "pressure is off the saturation line for this temperature",
			Resid: resid, T: T, P: P, X: x}
	}
	phases := []*Phase{{X: []float64{1}, Rho: rhol}, {X: []float64{1}, Rho: rhov}}
	return &Result{T: T, P: P, Phases: phases, Beta: 0.5, It: 1, Resid: resid, Path: "flash"}, nil
}
