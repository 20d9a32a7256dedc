// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/jaclark5/despasito/eos"
	"github.com/jaclark5/despasito/eos/cubic"
	"github.com/jaclark5/despasito/eos/saft"
)

func Test_crit01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("crit01. Peng-Robinson recovers its own critical constants")

	comps := []*eos.Component{eos.NewComponent("methane", cubic.ExamplePrms("methane"))}
	mdl, err := eos.New("peng-robinson", comps)
	if err != nil {
		tst.Fatalf("cannot allocate model: %v\n", err)
	}
	sts := DefaultSettings()
	res, err := CriticalPoint(mdl, []float64{1}, sts)
	if err != nil {
		tst.Errorf("CriticalPoint failed: %v\n", err)
		return
	}
	io.Pf("critical: T=%g (input Tc=190.56)  P=%g (input Pc=4.599e6)  rho=%g\n", res.T, res.P, res.Phases[0].Rho)

	// the input constants must be reproduced; tolerance covers the
	// numerical derivatives in the stability conditions
	chk.Float64(tst, "Tc ratio", 1e-3, res.T/190.56, 1.0)
	chk.Float64(tst, "Pc ratio", 1e-2, res.P/4.599e6, 1.0)
}

func Test_crit02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("crit02. saft critical point anchors a saturation solve")

	comps := []*eos.Component{eos.NewComponent("methane", saft.ExamplePrms("methane"))}
	mdl, err := eos.New("saft", comps)
	if err != nil {
		tst.Fatalf("cannot allocate model: %v\n", err)
	}
	sts := DefaultSettings()
	x := []float64{1}
	crit, err := CriticalPoint(mdl, x, sts)
	if err != nil {
		tst.Errorf("CriticalPoint failed: %v\n", err)
		return
	}
	io.Pf("saft critical: T=%g  P=%g  rho=%g\n", crit.T, crit.P, crit.Phases[0].Rho)
	if crit.T <= 0 || crit.P <= 0 {
		tst.Errorf("critical point must be positive: T=%g, P=%g\n", crit.T, crit.P)
		return
	}

	// well below the critical temperature two distinct phases coexist
	T := 0.85 * crit.T
	Psat, rhol, rhov, err := SaturationPressure(mdl, T, x, sts)
	if err != nil {
		tst.Errorf("SaturationPressure failed: %v\n", err)
		return
	}
	io.Pf("saft saturation at T=%g: Psat=%g  rhol=%g  rhov=%g\n", T, Psat, rhol, rhov)
	if rhol < 2.0*rhov {
		tst.Errorf("liquid root should be well above the vapor root: %g vs %g\n", rhol, rhov)
		return
	}

	// and the flash on the saturation line splits into those phases
	res, err := Flash(mdl, T, Psat, x, sts)
	if err != nil {
		tst.Errorf("Flash failed: %v\n", err)
		return
	}
	if res.Resid > 1e-6 {
		tst.Errorf("fugacity mismatch too large: %g\n", res.Resid)
		return
	}
	chk.Float64(tst, "rhol ratio", 1e-6, res.Liquid().Rho/rhol, 1.0)
	chk.Float64(tst, "rhov ratio", 1e-6, res.Vapor().Rho/rhov, 1.0)

	// above the critical temperature there is no saturation pressure
	_, _, _, err = SaturationPressure(mdl, 1.2*crit.T, x, sts)
	if err == nil {
		tst.Errorf("expected an error above the critical temperature\n")
	}
}
