// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eos defines the contract every equation-of-state family must
// satisfy and a factory to construct families by name. Families expose
// the residual Helmholtz energy as the single source of truth; pressure
// and fugacity coefficients must be derivable from it so that both
// outputs stay thermodynamically consistent.
package eos

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Model is the interface implemented by all equation-of-state families.
// Densities are molar number densities [mol/m³], temperatures are in
// [K], pressures in [Pa] and compositions are mole fractions summing to
// one. Models are read-only after Init and safe for concurrent use.
type Model interface {

	// Init initialises the family from component data
	Init(comps []*Component) error

	// Ncomp returns the number of components
	Ncomp() int

	// ResidualHelmholtz returns Ares/(N・kB・T), the reduced residual
	// Helmholtz energy per molecule. Fails with *DomainError outside the
	// physical validity range.
	ResidualHelmholtz(T, rho float64, x []float64) (float64, error)

	// Pressure returns the absolute pressure [Pa]
	Pressure(T, rho float64, x []float64) (float64, error)

	// FugacityCoefs returns one fugacity coefficient per component
	FugacityCoefs(T, rho float64, x []float64) ([]float64, error)

	// MaxDensity returns the maximum physical molar density [mol/m³] for
	// the given composition. Evaluations at or above this bound fail
	// with *DomainError.
	MaxDensity(x []float64) (float64, error)
}

// allocators holds all available EOS families
var allocators = map[string]func() Model{}

// Register adds a family allocator to the database. Families call this
// from an init() function; name collisions panic at start-up.
func Register(name string, alloc func() Model) {
	if _, ok := allocators[name]; ok {
		chk.Panic("eos: family %q registered twice", name)
	}
	allocators[name] = alloc
}

// Families returns the sorted names of all registered families
func Families() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// New allocates and initialises an EOS family by name. Unknown names
// fail with *UnsupportedEOSError.
func New(family string, comps []*Component) (Model, error) {
	alloc, ok := allocators[family]
	if !ok {
		return nil, &UnsupportedEOSError{Family: family, Known: Families()}
	}
	mdl := alloc()
	if err := mdl.Init(comps); err != nil {
		return nil, err
	}
	return mdl, nil
}
