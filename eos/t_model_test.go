// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// ideal is a minimal family used to exercise the factory
type ideal struct {
	ncomp  int
	rhomax float64
}

func (o *ideal) Init(comps []*Component) error {
	o.ncomp = len(comps)
	o.rhomax = 1e6
	for _, c := range comps {
		for _, p := range c.Prms {
			switch p.N {
			case "rhomax":
				o.rhomax = p.V
			default:
				return chk.Err("ideal: parameter named %q is incorrect", p.N)
			}
		}
	}
	return nil
}

func (o *ideal) Ncomp() int { return o.ncomp }

func (o *ideal) MaxDensity(x []float64) (float64, error) { return o.rhomax, nil }

func (o *ideal) ResidualHelmholtz(T, rho float64, x []float64) (float64, error) {
	if err := CheckState(T, rho, o.rhomax); err != nil {
		return 0, err
	}
	return 0, nil
}

func (o *ideal) Pressure(T, rho float64, x []float64) (float64, error) {
	if err := CheckState(T, rho, o.rhomax); err != nil {
		return 0, err
	}
	return rho * R * T, nil
}

func (o *ideal) FugacityCoefs(T, rho float64, x []float64) ([]float64, error) {
	return FugacityCoefsFromHelmholtz(o, T, rho, x)
}

func init() {
	Register("ideal-test", func() Model { return new(ideal) })
}

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01. allocation and unknown families")

	comps := []*Component{
		NewComponent("methane", utl.Params{}),
		NewComponent("ethane", utl.Params{}),
	}
	mdl, err := New("ideal-test", comps)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	if mdl.Ncomp() != 2 {
		tst.Errorf("wrong number of components: %d\n", mdl.Ncomp())
		return
	}

	_, err = New("no-such-family", comps)
	var ue *UnsupportedEOSError
	if !errors.As(err, &ue) {
		tst.Errorf("expected UnsupportedEOSError, got: %v\n", err)
		return
	}
	io.Pf("error message: %v\n", ue)

	// bad parameter names are rejected during Init
	bad := []*Component{NewComponent("x", utl.Params{&utl.P{N: "bogus", V: 1}})}
	_, err = New("ideal-test", bad)
	if err == nil {
		tst.Errorf("expected parameter error\n")
	}
}

func Test_consistency01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("consistency01. ideal family: φ=1, P=ρRT")

	comps := []*Component{NewComponent("a", utl.Params{}), NewComponent("b", utl.Params{})}
	mdl, err := New("ideal-test", comps)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	T, rho := 300.0, 40.0
	x := []float64{0.3, 0.7}
	P, err := mdl.Pressure(T, rho, x)
	if err != nil {
		tst.Errorf("Pressure failed: %v\n", err)
		return
	}
	chk.Float64(tst, "P", 1e-8, P, rho*R*T)
	phi, err := mdl.FugacityCoefs(T, rho, x)
	if err != nil {
		tst.Errorf("FugacityCoefs failed: %v\n", err)
		return
	}
	chk.Array(tst, "phi", 1e-8, phi, []float64{1, 1})
}

func Test_check01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("check01. state and composition validation")

	if err := CheckComposition([]float64{0.5, 0.6}, 2); err == nil {
		tst.Errorf("expected sum error\n")
		return
	}
	if err := CheckComposition([]float64{-0.1, 1.1}, 2); err == nil {
		tst.Errorf("expected negative fraction error\n")
		return
	}
	if err := CheckComposition([]float64{0.25, 0.75}, 2); err != nil {
		tst.Errorf("valid composition rejected: %v\n", err)
		return
	}

	var de *DomainError
	err := CheckState(300, 2000, 1000)
	if !errors.As(err, &de) {
		tst.Errorf("expected DomainError above rhomax, got: %v\n", err)
		return
	}
	err = CheckState(-10, 100, 1000)
	if !errors.As(err, &de) {
		tst.Errorf("expected DomainError for negative T, got: %v\n", err)
	}
}
