// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/jaclark5/despasito/eos"
	"github.com/jaclark5/despasito/root"
)

// BubblePressure finds the pressure at which a liquid of composition x
// first forms an infinitesimal vapor phase at temperature T, together
// with the vapor composition. Result holds the liquid and vapor phases.
func BubblePressure(mdl eos.Model, T float64, x []float64, sts Settings) (*Result, error) {
	return equilPressure(mdl, T, x, false, sts)
}

// DewPressure finds the pressure at which a vapor of composition y
// first forms an infinitesimal liquid phase at temperature T
func DewPressure(mdl eos.Model, T float64, y []float64, sts Settings) (*Result, error) {
	return equilPressure(mdl, T, y, true, sts)
}

// equilPressure is the shared skeleton of the incipient-phase pressure
// calculations. The known phase keeps composition z; the incipient
// phase composition and the pressure are iterated by successive
// substitution on the K-values until all fugacities match.
func equilPressure(mdl eos.Model, T float64, z []float64, dew bool, sts Settings) (*Result, error) {
	name := "bubble-pressure"
	if dew {
		name = "dew-pressure"
	}
	if err := eos.CheckComposition(z, mdl.Ncomp()); err != nil {
		return nil, err
	}
	P := sts.Pguess
	if P <= 0 {
		var err error
		if P, err = estimatePressure(mdl, T, z, dew, sts); err != nil {
			return nil, err
		}
	}

	n := mdl.Ncomp()
	w := la.NewVector(n) // incipient-phase composition
	copy(w, z)
	knownBranch, incipBranch := Liquid, Vapor
	if dew {
		knownBranch, incipBranch = Vapor, Liquid
	}

	var resid, S float64
	for it := 1; it <= sts.MaxOuter; it++ {
		phiz, rhoz, err := Fugacity(mdl, T, P, z, knownBranch, sts)
		if err != nil {
			return nil, err
		}
		phiw, rhow, err := Fugacity(mdl, T, P, w, incipBranch, sts)
		if err != nil {
			return nil, err
		}

		// K-value update and closure sum
		S, resid = 0, 0
		wnew := la.NewVector(n)
		for i := 0; i < n; i++ {
			// bubble: yi = xi・φl/φv;  dew: xi = yi・φv/φl
			wnew[i] = z[i] * phiz[i] / phiw[i]
			S += wnew[i]
			if w[i] > 0 {
				resid = math.Max(resid, math.Abs(z[i]*phiz[i]/(w[i]*phiw[i])-1.0))
			}
		}
		if sts.Verbose {
			io.Pf("%s it=%3d  P=%14.6f  S=%.10f  resid=%.3e\n", name, it, P, S, resid)
		}
		if math.Abs(S-1.0) < sts.TolSum && resid < sts.TolFug {
			phases := []*Phase{{X: append([]float64(nil), z...), Rho: rhoz}, {X: append([]float64(nil), w...), Rho: rhow}}
			return &Result{T: T, P: P, Phases: phases, It: it, Resid: resid, Path: name}, nil
		}
		for i := 0; i < n; i++ {
			w[i] = wnew[i] / S
		}

		// pressure update; the step factor is clamped for robustness
		fac := S
		if dew {
			fac = 1.0 / S
		}
		fac = math.Min(math.Max(fac, 0.5), 2.0)
		P *= fac
	}
	return nil, &ConvergenceError{Calc: name, Msg: "outer iteration budget exhausted",
		It: sts.MaxOuter, Resid: resid, T: T, P: P, X: w}
}

// BubbleTemperature finds the temperature at which a liquid of
// composition x first boils at pressure P. The temperature is bracketed
// outward from Settings.Tguess and polished by Brent on the closure
// sum, while the vapor composition follows by successive substitution.
func BubbleTemperature(mdl eos.Model, P float64, x []float64, sts Settings) (*Result, error) {
	return equilTemperature(mdl, P, x, false, sts)
}

// DewTemperature finds the temperature at which a vapor of composition
// y first condenses at pressure P
func DewTemperature(mdl eos.Model, P float64, y []float64, sts Settings) (*Result, error) {
	return equilTemperature(mdl, P, y, true, sts)
}

// equilTemperature is the temperature-iterating counterpart of
// equilPressure. The closure sum is a scalar function of temperature
// (the incipient composition relaxes a few substitution steps per
// evaluation), so the temperature solve is a plain bracket-and-polish:
// the expansion search grows an interval around Settings.Tguess until
// the closure changes sign, Brent closes on the root, and a final
// composition polish settles the fugacity residual.
func equilTemperature(mdl eos.Model, P float64, z []float64, dew bool, sts Settings) (*Result, error) {
	name := "bubble-temperature"
	if dew {
		name = "dew-temperature"
	}
	if err := eos.CheckComposition(z, mdl.Ncomp()); err != nil {
		return nil, err
	}
	n := mdl.Ncomp()
	w := la.NewVector(n)
	copy(w, z)
	knownBranch, incipBranch := Liquid, Vapor
	if dew {
		knownBranch, incipBranch = Vapor, Liquid
	}

	// closure sum at fixed T; relaxes w in place
	var rhoz, rhow, resid float64
	closure := func(T float64) (float64, error) {
		var S float64
		for k := 0; k < 5; k++ {
			phiz, rz, err := Fugacity(mdl, T, P, z, knownBranch, sts)
			if err != nil {
				return 0, err
			}
			phiw, rw, err := Fugacity(mdl, T, P, w, incipBranch, sts)
			if err != nil {
				return 0, err
			}
			rhoz, rhow = rz, rw
			S, resid = 0, 0
			wnew := la.NewVector(n)
			for i := 0; i < n; i++ {
				wnew[i] = z[i] * phiz[i] / phiw[i]
				S += wnew[i]
				if w[i] > 0 {
					resid = math.Max(resid, math.Abs(z[i]*phiz[i]/(w[i]*phiw[i])-1.0))
				}
			}
			for i := 0; i < n; i++ {
				w[i] = wnew[i] / S
			}
		}
		if sts.Verbose {
			io.Pf("%s closure: T=%12.6f  S=%.10f  resid=%.3e\n", name, T, S, resid)
		}
		if dew {
			return 1.0/S - 1.0, nil
		}
		return S - 1.0, nil
	}

	Tlo, Thi, err := root.Bracket(closure, sts.Tguess, sts.Tguess*1.02, sts.Root)
	if err != nil {
		var nb *root.NoBracketError
		if errors.As(err, &nb) {
			return nil, &ConvergenceError{Calc: name,
				Msg: "could not bracket the temperature from Settings.Tguess",
				It:  nb.It, T: sts.Tguess, P: P, X: w}
		}
		return nil, err
	}
	T, st, err := root.Brent(closure, Tlo, Thi, sts.Root)
	if err != nil {
		return nil, err
	}

	// the incipient composition trails the temperature by one relax
	// cycle; settle it at the converged temperature
	for it := 0; resid >= sts.TolFug; it++ {
		if it >= sts.MaxOuter {
			return nil, &ConvergenceError{Calc: name, Msg: "incipient composition did not settle",
				It: it, Resid: resid, T: T, P: P, X: w}
		}
		if _, err := closure(T); err != nil {
			return nil, err
		}
	}
	phases := []*Phase{{X: append([]float64(nil), z...), Rho: rhoz}, {X: append([]float64(nil), w...), Rho: rhow}}
	return &Result{T: T, P: P, Phases: phases, It: st.It, Resid: resid, Path: name}, nil
}

// estimatePressure builds an initial pressure from the pure-component
// saturation pressures (Raoult estimate). Supercritical components are
// skipped; if no component has a vapor pressure the estimate fails.
func estimatePressure(mdl eos.Model, T float64, z []float64, dew bool, sts Settings) (float64, error) {
	n := mdl.Ncomp()
	sum, wsum := 0.0, 0.0
	for i := 0; i < n; i++ {
		if z[i] == 0 {
			continue
		}
		e := make([]float64, n)
		e[i] = 1.0
		Psat, _, _, err := SaturationPressure(mdl, T, e, sts)
		if err != nil {
			continue
		}
		if dew {
			sum += z[i] / Psat
		} else {
			sum += z[i] * Psat
		}
		wsum += z[i]
	}
	if wsum == 0 {
		return 0, &ConvergenceError{Calc: "pressure-estimate",
			Msg: "no component has a vapor pressure at this temperature; provide Settings.Pguess", T: T, X: z}
	}
	if dew {
		return wsum / sum, nil
	}
	return sum / wsum, nil
}
