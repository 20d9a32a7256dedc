// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cubic implements the Peng-Robinson two-parameter equation of
// state with van der Waals one-fluid mixing rules. Pressure and
// fugacity coefficients use the closed-form expressions; the residual
// Helmholtz energy is exposed as well so that the family can be checked
// against the same consistency tests as the molecular-theory models.
//  Reference:
//   [1] Peng DY and Robinson DB (1976) A new two-constant equation of
//       state. Ind. Eng. Chem. Fundam. 15(1), 59-64
package cubic

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/jaclark5/despasito/eos"
)

// Model implements the Peng-Robinson family. Read-only after Init and
// safe for concurrent use.
type Model struct {

	// component data
	names []string  // species names
	Tc    []float64 // critical temperature [K]
	Pc    []float64 // critical pressure [Pa]
	ω     []float64 // acentric factor

	// derived
	ncomp int       // number of components
	ac    []float64 // attraction parameter at Tc [Pa・m⁶/mol²]
	κ     []float64 // alpha-function slope
	b     []float64 // covolume [m³/mol]
}

const (
	sqrt2 = 1.4142135623730951
	ωa    = 0.45723552892138218  // PR attraction coefficient
	ωb    = 0.077796073903888455 // PR covolume coefficient
)

// add family to factory
func init() {
	eos.Register("peng-robinson", func() eos.Model { return new(Model) })
}

// Init initialises the model from component parameters:
//  "Tc"    -- critical temperature [K]
//  "Pc"    -- critical pressure [Pa]
//  "omega" -- acentric factor [-]
func (o *Model) Init(comps []*eos.Component) (err error) {
	o.ncomp = len(comps)
	if o.ncomp < 1 {
		return chk.Err("cubic: at least one component is required")
	}
	o.names = make([]string, o.ncomp)
	o.Tc = make([]float64, o.ncomp)
	o.Pc = make([]float64, o.ncomp)
	o.ω = make([]float64, o.ncomp)
	o.ac = make([]float64, o.ncomp)
	o.κ = make([]float64, o.ncomp)
	o.b = make([]float64, o.ncomp)
	for i, c := range comps {
		o.names[i] = c.Name
		for _, p := range c.Prms {
			switch p.N {
			case "Tc":
				o.Tc[i] = p.V
			case "Pc":
				o.Pc[i] = p.V
			case "omega":
				o.ω[i] = p.V
			default:
				return chk.Err("cubic: parameter named %q is incorrect for component %q", p.N, c.Name)
			}
		}
		if o.Tc[i] <= 0 || o.Pc[i] <= 0 {
			return chk.Err("cubic: component %q needs positive Tc and Pc", c.Name)
		}
		o.ac[i] = ωa * eos.R * eos.R * o.Tc[i] * o.Tc[i] / o.Pc[i]
		o.κ[i] = 0.37464 + 1.54226*o.ω[i] - 0.26992*o.ω[i]*o.ω[i]
		o.b[i] = ωb * eos.R * o.Tc[i] / o.Pc[i]
	}
	return
}

// Ncomp returns the number of components
func (o *Model) Ncomp() int { return o.ncomp }

// ai returns the attraction parameter of component i at temperature T
func (o *Model) ai(i int, T float64) float64 {
	f := 1.0 + o.κ[i]*(1.0-math.Sqrt(T/o.Tc[i]))
	return o.ac[i] * f * f
}

// mix returns the one-fluid parameters amix and bmix at (T,x)
func (o *Model) mix(T float64, x []float64) (amix, bmix float64) {
	a := make([]float64, o.ncomp)
	for i := 0; i < o.ncomp; i++ {
		a[i] = o.ai(i, T)
		bmix += x[i] * o.b[i]
	}
	for i := 0; i < o.ncomp; i++ {
		for j := 0; j < o.ncomp; j++ {
			amix += x[i] * x[j] * math.Sqrt(a[i]*a[j])
		}
	}
	return
}

// MaxDensity returns the covolume-limited molar density bound
func (o *Model) MaxDensity(x []float64) (float64, error) {
	if err := eos.CheckComposition(x, o.ncomp); err != nil {
		return 0, err
	}
	bmix := 0.0
	for i := 0; i < o.ncomp; i++ {
		bmix += x[i] * o.b[i]
	}
	return 0.99 / bmix, nil
}

// Pressure returns the absolute pressure from the closed-form equation
//  P = RT/(v-b) - a/(v² + 2bv - b²)
func (o *Model) Pressure(T, rho float64, x []float64) (float64, error) {
	if err := eos.CheckComposition(x, o.ncomp); err != nil {
		return 0, err
	}
	rhomax, err := o.MaxDensity(x)
	if err != nil {
		return 0, err
	}
	if err := eos.CheckState(T, rho, rhomax); err != nil {
		return 0, err
	}
	amix, bmix := o.mix(T, x)
	v := 1.0 / rho
	return eos.R*T/(v-bmix) - amix/(v*v+2.0*bmix*v-bmix*bmix), nil
}

// ResidualHelmholtz returns Ares/(N・kB・T):
//  ares = -ln(1-bρ) - a/(2√2・b・RT)・ln[(1+(1+√2)bρ)/(1+(1-√2)bρ)]
func (o *Model) ResidualHelmholtz(T, rho float64, x []float64) (float64, error) {
	if err := eos.CheckComposition(x, o.ncomp); err != nil {
		return 0, err
	}
	rhomax, err := o.MaxDensity(x)
	if err != nil {
		return 0, err
	}
	if err := eos.CheckState(T, rho, rhomax); err != nil {
		return 0, err
	}
	amix, bmix := o.mix(T, x)
	bρ := bmix * rho
	return -math.Log(1.0-bρ) - amix/(2.0*sqrt2*bmix*eos.R*T)*math.Log((1.0+(1.0+sqrt2)*bρ)/(1.0+(1.0-sqrt2)*bρ)), nil
}

// FugacityCoefs returns the fugacity coefficients from the closed-form
// expression evaluated at the pressure implied by (T,ρ,x)
func (o *Model) FugacityCoefs(T, rho float64, x []float64) ([]float64, error) {
	P, err := o.Pressure(T, rho, x)
	if err != nil {
		return nil, err
	}
	if P <= 0 {
		return nil, &eos.DomainError{Msg: "non-positive pressure; fugacity coefficients are undefined here", T: T, Rho: rho}
	}
	amix, bmix := o.mix(T, x)
	a := make([]float64, o.ncomp)
	for i := 0; i < o.ncomp; i++ {
		a[i] = o.ai(i, T)
	}
	A := amix * P / (eos.R * eos.R * T * T)
	B := bmix * P / (eos.R * T)
	Z := P / (rho * eos.R * T)
	lnfrac := math.Log((Z + (1.0+sqrt2)*B) / (Z + (1.0-sqrt2)*B))
	phi := make([]float64, o.ncomp)
	for i := 0; i < o.ncomp; i++ {
		sum := 0.0
		for j := 0; j < o.ncomp; j++ {
			sum += x[j] * math.Sqrt(a[i]*a[j])
		}
		bi := o.b[i] / bmix
		lnphi := bi*(Z-1.0) - math.Log(Z-B) - A/(2.0*sqrt2*B)*(2.0*sum/amix-bi)*lnfrac
		phi[i] = math.Exp(lnphi)
	}
	return phi, nil
}

// ExamplePrms returns example parameters for a few species. Unknown
// names return nil.
func ExamplePrms(species string) utl.Params {
	switch species {
	case "methane":
		return utl.Params{
			&utl.P{N: "Tc", V: 190.56},
			&utl.P{N: "Pc", V: 4.599e6},
			&utl.P{N: "omega", V: 0.011},
		}
	case "ethane":
		return utl.Params{
			&utl.P{N: "Tc", V: 305.32},
			&utl.P{N: "Pc", V: 4.872e6},
			&utl.P{N: "omega", V: 0.0995},
		}
	case "n-butane":
		return utl.Params{
			&utl.P{N: "Tc", V: 425.12},
			&utl.P{N: "Pc", V: 3.796e6},
			&utl.P{N: "omega", V: 0.2002},
		}
	}
	return nil
}
