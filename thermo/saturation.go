// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/jaclark5/despasito/eos"
	"github.com/jaclark5/despasito/root"
)

// SaturationPressure finds the pressure at which the vapor-like and
// liquid-like density roots of a fixed composition have equal
// fugacities. For a single component this is the vapor pressure. The
// search interval is bounded by the spinodal extrema of the P(ρ)
// isotherm, so the solve cannot land on an unstable middle root; above
// the critical temperature no extrema exist and the calculation fails.
func SaturationPressure(mdl eos.Model, T float64, x []float64, sts Settings) (Psat, rhol, rhov float64, err error) {

	// spinodal extrema of the isotherm
	rhomax, err := mdl.MaxDensity(x)
	if err != nil {
		return
	}
	slope := func(rho float64) (float64, error) { return dPdRho(mdl, T, rho, x) }
	lo := rhomax * sts.MinRhoFrac
	hi := rhomax * (1.0 - 1e-4)
	brackets, err := root.Scan(slope, lo, hi, sts.ScanPoints, sts.Root)
	if err != nil {
		var nb *root.NoBracketError
		if errors.As(err, &nb) {
			return 0, 0, 0, &ConvergenceError{Calc: "saturation-pressure",
				Msg: "no spinodal extrema: no vapor-liquid region at this temperature", T: T, X: x}
		}
		return
	}
	if len(brackets) < 2 {
		return 0, 0, 0, &ConvergenceError{Calc: "saturation-pressure",
			Msg: "no spinodal extrema: no vapor-liquid region at this temperature", T: T, X: x}
	}
	rhoSpinV, _, err := root.Brent(slope, brackets[0][0], brackets[0][1], sts.Root)
	if err != nil {
		return
	}
	last := brackets[len(brackets)-1]
	rhoSpinL, _, err := root.Brent(slope, last[0], last[1], sts.Root)
	if err != nil {
		return
	}
	Pmax, err := mdl.Pressure(T, rhoSpinV, x) // top of the vapor branch
	if err != nil {
		return
	}
	Pmin, err := mdl.Pressure(T, rhoSpinL, x) // bottom of the liquid branch
	if err != nil {
		return
	}
	if Pmax <= 0 {
		return 0, 0, 0, &ConvergenceError{Calc: "saturation-pressure",
			Msg: "vapor spinodal pressure is non-positive", T: T, P: Pmax, X: x}
	}

	// equal-fugacity condition between the spinodal pressures. A
	// collapse of the two branches onto one root means the density solve
	// lost a phase; that is a failure, not a zero residual.
	g := func(P float64) (float64, error) {
		phil, rl, e := Fugacity(mdl, T, P, x, Liquid, sts)
		if e != nil {
			return 0, e
		}
		phiv, rv, e := Fugacity(mdl, T, P, x, Vapor, sts)
		if e != nil {
			return 0, e
		}
		if rl-rv <= 1e-9*rl {
			return 0, &ConvergenceError{Calc: "saturation-pressure",
				Msg: "vapor and liquid branches collapse to a single density root", T: T, P: P, X: x}
		}
		d := 0.0
		for i := range x {
			if x[i] > 0 {
				d += x[i] * (math.Log(phil[i]) - math.Log(phiv[i]))
			}
		}
		return d, nil
	}
	δ := 1e-4 * Pmax
	Plo := math.Max(Pmin, 0) + δ
	Phi := Pmax - δ
	if Plo >= Phi {
		return 0, 0, 0, &ConvergenceError{Calc: "saturation-pressure",
			Msg: "spinodal pressure window is empty (too close to the critical point)", T: T, P: Pmax, X: x}
	}
	Psat, st, err := root.Brent(g, Plo, Phi, sts.Root)
	if err != nil {
		return
	}
	if sts.Verbose {
		io.Pf("saturation: T=%g  Psat=%g  (%d iterations)\n", T, Psat, st.It)
	}
	if rhol, err = Density(mdl, T, Psat, x, Liquid, sts); err != nil {
		return
	}
	if rhov, err = Density(mdl, T, Psat, x, Vapor, sts); err != nil {
		return
	}
	if rhol-rhov <= 1e-9*rhol {
		return 0, 0, 0, &ConvergenceError{Calc: "saturation-pressure",
			Msg: "vapor and liquid branches collapse to a single density root", T: T, P: Psat, X: x}
	}
	return
}
