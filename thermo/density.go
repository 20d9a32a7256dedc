// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"errors"
	"math"
	"sort"

	"github.com/cpmech/gosl/io"

	"github.com/jaclark5/despasito/eos"
	"github.com/jaclark5/despasito/root"
)

// Branch selects which density root of P(T,·,x) = Ptarget an inner
// solve must return
type Branch int

const (
	Stable Branch = iota // lowest Gibbs energy among mechanically stable roots
	Vapor                // lowest-density root
	Liquid               // highest-density root
)

func (b Branch) String() string {
	switch b {
	case Vapor:
		return "vapor"
	case Liquid:
		return "liquid"
	}
	return "stable"
}

// DensityRoots finds all densities satisfying P(T,ρ,x) = P between a
// near-zero density and the close-packing bound. The interval is walked
// on an equally spaced grid so that vapor-like and liquid-like
// subintervals are bracketed separately; each bracket is then polished.
// The lower end sits below the ideal-gas density P/(R・T) so that
// dilute vapor roots cannot fall outside the scan. On a failed scan or
// polish the grid is densified and the lower end pushed further towards
// zero, a bounded number of times.
func DensityRoots(mdl eos.Model, T, P float64, x []float64, sts Settings) (roots []float64, err error) {
	rhomax, err := mdl.MaxDensity(x)
	if err != nil {
		return
	}
	f := func(rho float64) (float64, error) {
		p, e := mdl.Pressure(T, rho, x)
		return p - P, e
	}
	lo := rhomax * sts.MinRhoFrac
	if ideal := 0.1 * P / (eos.R * T); P > 0 && ideal < lo {
		lo = ideal
	}
	hi := rhomax * (1.0 - 1e-5)
	n := sts.ScanPoints
	for try := 0; ; try++ {
		var brackets [][2]float64
		brackets, err = root.Scan(f, lo, hi, n, sts.Root)
		if err == nil {
			roots = roots[:0]
			for _, br := range brackets {
				if br[0] == br[1] {
					roots = append(roots, br[0])
					continue
				}
				var rho float64
				if rho, _, err = root.Brent(f, br[0], br[1], sts.Root); err != nil {
					break
				}
				roots = append(roots, rho)
			}
			if err == nil {
				sort.Float64s(roots)
				return
			}
		}
		var nb *root.NoBracketError
		var nc *root.NotConvergedError
		if !(errors.As(err, &nb) || errors.As(err, &nc)) || try >= sts.Retries {
			return nil, err
		}
		// densify the grid and push the lower end towards zero
		lo /= 10.0
		n *= 2
		if sts.Verbose {
			io.Pf("density scan retry %d: n=%d, lo=%g\n", try+1, n, lo)
		}
	}
}

// Density resolves the density of one phase at (T,P,x). Mechanically
// unstable roots (∂P/∂ρ < 0) are discarded; among the remaining ones
// the branch decides: Vapor and Liquid take the extreme roots, Stable
// takes the root with the lowest Gibbs energy and fails with an
// AmbiguousPhaseError when the two best candidates are within
// sts.TolAmbig of each other.
func Density(mdl eos.Model, T, P float64, x []float64, branch Branch, sts Settings) (rho float64, err error) {
	all, err := DensityRoots(mdl, T, P, x, sts)
	if err != nil {
		return
	}
	stable := all[:0]
	for _, r := range all {
		slope, e := dPdRho(mdl, T, r, x)
		if e != nil {
			return 0, e
		}
		if slope > 0 {
			stable = append(stable, r)
		}
	}
	if len(stable) == 0 {
		return 0, &ConvergenceError{Calc: "density", Msg: "no mechanically stable density root", T: T, P: P, X: x}
	}
	switch branch {
	case Vapor:
		return stable[0], nil
	case Liquid:
		return stable[len(stable)-1], nil
	}
	if len(stable) == 1 {
		return stable[0], nil
	}
	g := make([]float64, len(stable))
	for i, r := range stable {
		if g[i], err = reducedGibbs(mdl, T, r, x); err != nil {
			return
		}
	}
	best, second := 0, -1
	for i := 1; i < len(stable); i++ {
		if g[i] < g[best] {
			second = best
			best = i
		} else if second < 0 || g[i] < g[second] {
			second = i
		}
	}
	if math.Abs(g[best]-g[second]) < sts.TolAmbig {
		return 0, &AmbiguousPhaseError{T: T, P: P, Roots: stable, Gibbs: g}
	}
	return stable[best], nil
}

// dPdRho returns ∂P/∂ρ at constant T and composition (central
// difference)
func dPdRho(mdl eos.Model, T, rho float64, x []float64) (float64, error) {
	h := rho * 1e-5
	pp, err := mdl.Pressure(T, rho+h, x)
	if err != nil {
		return 0, err
	}
	pm, err := mdl.Pressure(T, rho-h, x)
	if err != nil {
		return 0, err
	}
	return (pp - pm) / (2.0 * h), nil
}

// d2PdRho2 returns ∂²P/∂ρ² at constant T and composition
func d2PdRho2(mdl eos.Model, T, rho float64, x []float64) (float64, error) {
	h := rho * 1e-4
	pp, err := mdl.Pressure(T, rho+h, x)
	if err != nil {
		return 0, err
	}
	p0, err := mdl.Pressure(T, rho, x)
	if err != nil {
		return 0, err
	}
	pm, err := mdl.Pressure(T, rho-h, x)
	if err != nil {
		return 0, err
	}
	return (pp - 2.0*p0 + pm) / (h * h), nil
}

// reducedGibbs returns G/(N・kB・T) up to terms identical for all roots
// at the same (T,P,x): ares + Z + ln(ρ). The lower value marks the
// thermodynamically favoured root.
func reducedGibbs(mdl eos.Model, T, rho float64, x []float64) (float64, error) {
	ares, err := mdl.ResidualHelmholtz(T, rho, x)
	if err != nil {
		return 0, err
	}
	P, err := mdl.Pressure(T, rho, x)
	if err != nil {
		return 0, err
	}
	Z := P / (rho * eos.R * T)
	return ares + Z + math.Log(rho), nil
}
