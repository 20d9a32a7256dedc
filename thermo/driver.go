// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"github.com/cpmech/gosl/utl"

	"github.com/jaclark5/despasito/eos"
)

// Driver sweeps a model over a path of state points and collects
// property tables; useful for isotherm inspection and by plotting or
// fitting callers.
type Driver struct {

	// input
	Mdl eos.Model // equation of state
	Sts Settings  // tolerances and budgets

	// results
	Rho []float64 // densities of the sweep [mol/m³]
	P   []float64 // pressures along the sweep [Pa]
	Z   []float64 // compressibility factors along the sweep
}

// Init initialises the driver
func (o *Driver) Init(mdl eos.Model) {
	o.Mdl = mdl
	o.Sts = DefaultSettings()
}

// RunIsotherm evaluates pressure and compressibility on np densities
// between a near-zero density and 90% of the close-packing bound, at
// fixed temperature and composition
func (o *Driver) RunIsotherm(T float64, x []float64, np int) error {
	rhomax, err := o.Mdl.MaxDensity(x)
	if err != nil {
		return err
	}
	o.Rho = utl.LinSpace(rhomax*o.Sts.MinRhoFrac, rhomax*0.9, np)
	o.P = make([]float64, np)
	o.Z = make([]float64, np)
	for i, rho := range o.Rho {
		if o.P[i], err = o.Mdl.Pressure(T, rho, x); err != nil {
			return err
		}
		o.Z[i] = o.P[i] / (rho * eos.R * T)
	}
	return nil
}
