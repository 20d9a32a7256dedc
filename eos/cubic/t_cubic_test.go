// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cubic

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/jaclark5/despasito/eos"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func newBinary(tst *testing.T) eos.Model {
	comps := []*eos.Component{
		eos.NewComponent("ethane", ExamplePrms("ethane")),
		eos.NewComponent("n-butane", ExamplePrms("n-butane")),
	}
	mdl, err := eos.New("peng-robinson", comps)
	if err != nil {
		tst.Fatalf("cannot allocate peng-robinson model: %v\n", err)
	}
	return mdl
}

func Test_cubic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cubic01. closed forms match the Helmholtz route")

	mdl := newBinary(tst)
	T := 270.0
	x := []float64{0.4, 0.6}
	rhomax, err := mdl.MaxDensity(x)
	if err != nil {
		tst.Errorf("MaxDensity failed: %v\n", err)
		return
	}

	for _, frac := range []float64{1e-4, 1e-2, 0.5, 0.8} {
		rho := frac * rhomax

		// pressure: analytic vs central difference of ares
		Pana, err := mdl.Pressure(T, rho, x)
		if err != nil {
			tst.Errorf("Pressure failed: %v\n", err)
			return
		}
		Pnum, err := eos.PressureFromHelmholtz(mdl, T, rho, x)
		if err != nil {
			tst.Errorf("PressureFromHelmholtz failed: %v\n", err)
			return
		}
		io.Pf("rho=%12.5f  Pana=%15.6f  Pnum=%15.6f\n", rho, Pana, Pnum)
		chk.Float64(tst, io.Sf("P ratio @ %g", frac), 1e-8, Pnum/Pana, 1.0)

		// fugacity coefficients: analytic vs Helmholtz route
		if Pana <= 0 {
			continue
		}
		phiA, err := mdl.FugacityCoefs(T, rho, x)
		if err != nil {
			tst.Errorf("FugacityCoefs failed: %v\n", err)
			return
		}
		phiN, err := eos.FugacityCoefsFromHelmholtz(mdl, T, rho, x)
		if err != nil {
			tst.Errorf("FugacityCoefsFromHelmholtz failed: %v\n", err)
			return
		}
		for i := range phiA {
			chk.Float64(tst, io.Sf("phi[%d] ratio @ %g", i, frac), 1e-6, phiN[i]/phiA[i], 1.0)
		}
	}
}

func Test_cubic02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cubic02. pure-component sanity and domain bound")

	comps := []*eos.Component{eos.NewComponent("methane", ExamplePrms("methane"))}
	mdl, err := eos.New("peng-robinson", comps)
	if err != nil {
		tst.Fatalf("cannot allocate peng-robinson model: %v\n", err)
	}
	x := []float64{1}

	// ideal-gas limit
	T, rho := 300.0, 0.01
	P, err := mdl.Pressure(T, rho, x)
	if err != nil {
		tst.Errorf("Pressure failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Z -> 1", 1e-4, P/(rho*eos.R*T), 1.0)

	// domain bound
	rhomax, _ := mdl.MaxDensity(x)
	var de *eos.DomainError
	_, err = mdl.Pressure(T, rhomax, x)
	if !errors.As(err, &de) {
		tst.Errorf("expected DomainError at rhomax, got: %v\n", err)
		return
	}
	io.Pf("domain error: %v\n", err)

	// unknown parameter names
	bad := []*eos.Component{eos.NewComponent("x", ExamplePrms("methane"))}
	bad[0].Prms[0].N = "Tcrit"
	_, err = eos.New("peng-robinson", bad)
	if err == nil {
		tst.Errorf("expected an error for unknown parameter names\n")
	}
}
