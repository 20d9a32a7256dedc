// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"errors"

	"github.com/cpmech/gosl/io"

	"github.com/jaclark5/despasito/eos"
	"github.com/jaclark5/despasito/root"
)

// CriticalPoint finds the state where the first and second density
// derivatives of pressure vanish simultaneously for a fixed
// composition. The inner solve locates the inflection density of the
// isotherm; the outer solve moves the temperature until the slope at
// the inflection is zero. For mixtures this is the pseudo-critical
// point of the one-fluid isotherm.
func CriticalPoint(mdl eos.Model, x []float64, sts Settings) (*Result, error) {
	if err := eos.CheckComposition(x, mdl.Ncomp()); err != nil {
		return nil, err
	}
	rhomax, err := mdl.MaxDensity(x)
	if err != nil {
		return nil, err
	}

	// inflection density of the isotherm at temperature T
	inflection := func(T float64) (float64, error) {
		curv := func(rho float64) (float64, error) { return d2PdRho2(mdl, T, rho, x) }
		lo := rhomax * 1e-4
		hi := rhomax * 0.9
		brackets, err := root.Scan(curv, lo, hi, sts.ScanPoints, sts.Root)
		if err != nil {
			return 0, err
		}
		// with several inflections keep the one with the flattest slope
		best, bestSlope := 0.0, 0.0
		for k, br := range brackets {
			rho, _, err := root.Brent(curv, br[0], br[1], sts.Root)
			if err != nil {
				return 0, err
			}
			slope, err := dPdRho(mdl, T, rho, x)
			if err != nil {
				return 0, err
			}
			if k == 0 || slope < bestSlope {
				best, bestSlope = rho, slope
			}
		}
		return best, nil
	}

	// slope at the inflection: negative below Tc, positive above
	g := func(T float64) (float64, error) {
		rho, err := inflection(T)
		if err != nil {
			return 0, err
		}
		return dPdRho(mdl, T, rho, x)
	}

	// geometric march to bracket Tc, then polish. An isotherm with no
	// inflection at all also means the temperature is too high.
	eval := func(T float64) (v float64, found bool, err error) {
		v, err = g(T)
		if err != nil {
			var nb *root.NoBracketError
			if errors.As(err, &nb) {
				return 0, false, nil
			}
			return
		}
		return v, true, nil
	}
	T := sts.Tguess
	var Tpos, Tneg float64
	for it := 0; Tpos == 0 || Tneg == 0; it++ {
		if it >= sts.MaxOuter {
			return nil, &ConvergenceError{Calc: "critical-point",
				Msg: "could not bracket the critical temperature", It: it, T: T, X: x}
		}
		v, found, err := eval(T)
		if err != nil {
			return nil, err
		}
		if sts.Verbose {
			io.Pf("critical bracket: T=%g  g=%g  inflection=%v\n", T, v, found)
		}
		if !found || v > 0 {
			if found {
				Tpos = T
			}
			T /= 1.2
		} else {
			Tneg = T
			T *= 1.2
		}
	}
	Tcrit, st, err := root.Brent(g, Tneg, Tpos, sts.Root)
	if err != nil {
		return nil, err
	}
	rhoc, err := inflection(Tcrit)
	if err != nil {
		return nil, err
	}
	Pc, err := mdl.Pressure(Tcrit, rhoc, x)
	if err != nil {
		return nil, err
	}
	phase := &Phase{X: append([]float64(nil), x...), Rho: rhoc}
	return &Result{T: Tcrit, P: Pc, Phases: []*Phase{phase}, It: st.It, Resid: st.Fx, Path: "critical-point"}, nil
}
