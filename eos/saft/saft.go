// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package saft implements a molecular-theory equation of state of the
// SAFT family. The reduced residual Helmholtz energy is the sum of
// hard-sphere (Boublik-Mansoori mixture form), chain
// (Carnahan-Starling contact value), mean-field dispersion and Wertheim
// association contributions; pressure and fugacity coefficients are
// derived numerically from this single free-energy expression.
//  References:
//   [1] Chapman WG, Gubbins KE, Jackson G and Radosz M (1990) New reference
//       equation of state for associating liquids. Ind. Eng. Chem. Res. 29(8)
//   [2] Boublik T (1970) Hard-sphere equation of state. J. Chem. Phys. 53(1)
package saft

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/jaclark5/despasito/eos"
)

// Model implements the SAFT family. All slices are per component and
// read-only after Init, so a Model is safe for concurrent use.
type Model struct {

	// component data
	names []string  // species names
	m     []float64 // number of segments per chain
	σ     []float64 // segment diameter [m]
	ε     []float64 // dispersion energy ε/kB [K]
	εAB   []float64 // association energy εAB/kB [K]
	κAB   []float64 // dimensionless association bonding volume
	sites []float64 // number of association sites (even; half donors, half acceptors)

	// derived
	ncomp int  // number of components
	assoc bool // any component associates?
}

// maxpack is the hard-sphere packing fraction bounding the density
const maxpack = 0.65

// add family to factory
func init() {
	eos.Register("saft", func() eos.Model { return new(Model) })
}

// Init initialises the model from component parameters:
//  "m"       -- number of segments [-]
//  "sigma"   -- segment diameter [Å]
//  "eps"     -- dispersion energy ε/kB [K]
//  "epsAB"   -- association energy εAB/kB [K] (optional)
//  "kappaAB" -- association bonding volume [-] (optional)
//  "nsites"  -- number of association sites (optional, even)
func (o *Model) Init(comps []*eos.Component) (err error) {
	o.ncomp = len(comps)
	if o.ncomp < 1 {
		return chk.Err("saft: at least one component is required")
	}
	o.names = make([]string, o.ncomp)
	o.m = make([]float64, o.ncomp)
	o.σ = make([]float64, o.ncomp)
	o.ε = make([]float64, o.ncomp)
	o.εAB = make([]float64, o.ncomp)
	o.κAB = make([]float64, o.ncomp)
	o.sites = make([]float64, o.ncomp)
	for i, c := range comps {
		o.names[i] = c.Name
		for _, p := range c.Prms {
			switch p.N {
			case "m":
				o.m[i] = p.V
			case "sigma":
				o.σ[i] = p.V * 1e-10
			case "eps":
				o.ε[i] = p.V
			case "epsAB":
				o.εAB[i] = p.V
			case "kappaAB":
				o.κAB[i] = p.V
			case "nsites":
				o.sites[i] = p.V
			default:
				return chk.Err("saft: parameter named %q is incorrect for component %q", p.N, c.Name)
			}
		}
		if o.m[i] <= 0 || o.σ[i] <= 0 || o.ε[i] <= 0 {
			return chk.Err("saft: component %q needs positive m, sigma and eps", c.Name)
		}
		if o.sites[i] > 0 {
			if math.Mod(o.sites[i], 2) != 0 {
				return chk.Err("saft: component %q has an odd number of association sites", c.Name)
			}
			if o.εAB[i] <= 0 || o.κAB[i] <= 0 {
				return chk.Err("saft: component %q has sites but no epsAB/kappaAB", c.Name)
			}
			o.assoc = true
		}
	}
	return
}

// Ncomp returns the number of components
func (o *Model) Ncomp() int { return o.ncomp }

// MaxDensity returns the close-packing molar density bound computed
// from the hard-sphere packing fraction with the bare segment diameters
func (o *Model) MaxDensity(x []float64) (float64, error) {
	if err := eos.CheckComposition(x, o.ncomp); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 0; i < o.ncomp; i++ {
		sum += x[i] * o.m[i] * o.σ[i] * o.σ[i] * o.σ[i]
	}
	return maxpack * 6.0 / (math.Pi * eos.Nav * sum), nil
}

// dii returns the temperature-dependent segment diameter of component i
func (o *Model) dii(i int, T float64) float64 {
	return o.σ[i] * (1.0 - 0.12*math.Exp(-3.0*o.ε[i]/T))
}

// ResidualHelmholtz returns Ares/(N・kB・T)
func (o *Model) ResidualHelmholtz(T, rho float64, x []float64) (ares float64, err error) {

	// validity checks
	if err = eos.CheckComposition(x, o.ncomp); err != nil {
		return
	}
	rhomax, err := o.MaxDensity(x)
	if err != nil {
		return
	}
	if err = eos.CheckState(T, rho, rhomax); err != nil {
		return
	}

	// packing fractions ζ0..ζ3 and mean segment number
	ρN := rho * eos.Nav // molecule number density [1/m³]
	d := make([]float64, o.ncomp)
	var ζ0, ζ1, ζ2, ζ3, mbar float64
	for i := 0; i < o.ncomp; i++ {
		d[i] = o.dii(i, T)
		c := math.Pi / 6.0 * ρN * x[i] * o.m[i]
		ζ0 += c
		ζ1 += c * d[i]
		ζ2 += c * d[i] * d[i]
		ζ3 += c * d[i] * d[i] * d[i]
		mbar += x[i] * o.m[i]
	}
	ω := 1.0 - ζ3

	// hard-sphere contribution (per segment, Boublik-Mansoori)
	ahs := (3.0*ζ1*ζ2/ω + ζ2*ζ2*ζ2/(ζ3*ω*ω) + (ζ2*ζ2*ζ2/(ζ3*ζ3)-ζ0)*math.Log(ω)) / ζ0

	// chain contribution from the hard-sphere contact value
	achain := 0.0
	for i := 0; i < o.ncomp; i++ {
		achain += x[i] * (1.0 - o.m[i]) * math.Log(o.ghs(i, i, d, ζ2, ζ3))
	}

	// mean-field dispersion
	adisp := 0.0
	for i := 0; i < o.ncomp; i++ {
		for j := 0; j < o.ncomp; j++ {
			σij := 0.5 * (o.σ[i] + o.σ[j])
			εij := math.Sqrt(o.ε[i] * o.ε[j])
			adisp += x[i] * x[j] * o.m[i] * o.m[j] * εij / T * σij * σij * σij
		}
	}
	adisp *= -2.0 * math.Pi / 3.0 * ρN

	ares = mbar*ahs + achain + adisp

	// association
	if o.assoc {
		var aassoc float64
		aassoc, err = o.helmholtzAssoc(T, ρN, x, d, ζ2, ζ3)
		if err != nil {
			return
		}
		ares += aassoc
	}
	return
}

// ghs returns the hard-sphere radial distribution function of pair
// (i,j) at contact
func (o *Model) ghs(i, j int, d []float64, ζ2, ζ3 float64) float64 {
	ω := 1.0 - ζ3
	dij := d[i] * d[j] / (d[i] + d[j])
	return 1.0/ω + dij*3.0*ζ2/(ω*ω) + dij*dij*2.0*ζ2*ζ2/(ω*ω*ω)
}

// helmholtzAssoc computes the Wertheim association contribution. The
// site fractions X are found by damped successive substitution.
func (o *Model) helmholtzAssoc(T, ρN float64, x []float64, d []float64, ζ2, ζ3 float64) (float64, error) {

	// association strengths Δij [m³]
	Δ := make([][]float64, o.ncomp)
	for i := 0; i < o.ncomp; i++ {
		Δ[i] = make([]float64, o.ncomp)
		if o.sites[i] == 0 {
			continue
		}
		for j := 0; j < o.ncomp; j++ {
			if o.sites[j] == 0 {
				continue
			}
			σij := 0.5 * (o.σ[i] + o.σ[j])
			εij := 0.5 * (o.εAB[i] + o.εAB[j])
			κij := math.Sqrt(o.κAB[i] * o.κAB[j])
			Δ[i][j] = o.ghs(i, j, d, ζ2, ζ3) * κij * σij * σij * σij * (math.Exp(εij/T) - 1.0)
		}
	}

	// site fractions
	X := make([]float64, o.ncomp)
	Xnew := make([]float64, o.ncomp)
	for i := range X {
		X[i] = 1.0
	}
	const tolX = 1e-12
	for it := 0; it < 500; it++ {
		δmax := 0.0
		for i := 0; i < o.ncomp; i++ {
			sum := 0.0
			for j := 0; j < o.ncomp; j++ {
				sum += ρN * x[j] * 0.5 * o.sites[j] * X[j] * Δ[i][j]
			}
			Xnew[i] = 1.0 / (1.0 + sum)
			δmax = math.Max(δmax, math.Abs(Xnew[i]-X[i]))
		}
		for i := range X {
			X[i] = 0.5*X[i] + 0.5*Xnew[i]
		}
		if δmax < tolX {
			a := 0.0
			for i := 0; i < o.ncomp; i++ {
				if o.sites[i] > 0 {
					a += x[i] * o.sites[i] * (math.Log(X[i]) + (1.0-X[i])/2.0)
				}
			}
			return a, nil
		}
	}
	return 0, chk.Err("saft: association site fractions did not converge")
}

// Pressure returns the absolute pressure, derived from the residual
// Helmholtz energy
func (o *Model) Pressure(T, rho float64, x []float64) (float64, error) {
	return eos.PressureFromHelmholtz(o, T, rho, x)
}

// FugacityCoefs returns the fugacity coefficients, derived from the
// residual Helmholtz energy
func (o *Model) FugacityCoefs(T, rho float64, x []float64) ([]float64, error) {
	return eos.FugacityCoefsFromHelmholtz(o, T, rho, x)
}

// ExamplePrms returns parameter sets for a few model fluids loosely
// based on the named species. The sets are not regressed to
// experimental data; in particular, the van-der-Waals-style mean-field
// dispersion term places critical temperatures well below the real
// ones (Tc ≈ 0.4・eps). Unknown names return nil.
func ExamplePrms(species string) utl.Params {
	switch species {
	case "methane":
		return utl.Params{
			&utl.P{N: "m", V: 1.0},
			&utl.P{N: "sigma", V: 3.70},
			&utl.P{N: "eps", V: 150.0},
		}
	case "ethane":
		return utl.Params{
			&utl.P{N: "m", V: 1.6},
			&utl.P{N: "sigma", V: 3.52},
			&utl.P{N: "eps", V: 191.4},
		}
	case "water":
		return utl.Params{
			&utl.P{N: "m", V: 1.0},
			&utl.P{N: "sigma", V: 3.00},
			&utl.P{N: "eps", V: 230.0},
			&utl.P{N: "epsAB", V: 1800.0},
			&utl.P{N: "kappaAB", V: 0.03},
			&utl.P{N: "nsites", V: 2},
		}
	}
	return nil
}
