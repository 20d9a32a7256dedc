// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Component holds the name and molecular parameters of one chemical
// species. Which parameter names are meaningful depends on the EOS
// family; each family rejects names it does not know during Init.
// Components are immutable once constructed.
type Component struct {
	Name string     // species name
	Prms utl.Params // flat numeric parameters, family specific
}

// NewComponent creates a component from already-parsed parameters
func NewComponent(name string, prms utl.Params) *Component {
	return &Component{Name: name, Prms: prms}
}

// CheckComposition verifies that x has length n, holds no negative
// entries and sums to one within tolerance
func CheckComposition(x []float64, n int) error {
	if len(x) != n {
		return chk.Err("eos: composition has %d entries but the mixture has %d components", len(x), n)
	}
	sum := 0.0
	for i, xi := range x {
		if xi < 0 {
			return chk.Err("eos: mole fraction x[%d]=%g is negative", i, xi)
		}
		sum += xi
	}
	if math.Abs(sum-1.0) > 1e-10 {
		return chk.Err("eos: mole fractions sum to %g instead of 1", sum)
	}
	return nil
}

// CheckState verifies that temperature and density are strictly
// positive and finite, and that rho lies below rhomax
func CheckState(T, rho, rhomax float64) error {
	if math.IsNaN(T) || T <= 0 {
		return &DomainError{Msg: "temperature must be positive", T: T, Rho: rho}
	}
	if math.IsNaN(rho) || rho <= 0 {
		return &DomainError{Msg: "density must be positive", T: T, Rho: rho}
	}
	if rho >= rhomax {
		return &DomainError{Msg: "density at or above the close-packing bound", T: T, Rho: rho, RhoMax: rhomax}
	}
	return nil
}
