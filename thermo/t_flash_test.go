// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_flash01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flash01. pure component on the saturation line")

	mdl := pureButane(tst)
	sts := DefaultSettings()
	T := 300.0
	z := []float64{1}

	Psat, _, _, err := SaturationPressure(mdl, T, z, sts)
	if err != nil {
		tst.Errorf("SaturationPressure failed: %v\n", err)
		return
	}
	res, err := Flash(mdl, T, Psat, z, sts)
	if err != nil {
		tst.Errorf("Flash failed: %v\n", err)
		return
	}
	liq, vap := res.Liquid(), res.Vapor()
	io.Pf("flash: rhol=%g  rhov=%g  resid=%.3e\n", liq.Rho, vap.Rho, res.Resid)
	if liq.Rho < 10.0*vap.Rho {
		tst.Errorf("phase densities should differ by more than an order of magnitude: %g vs %g\n", liq.Rho, vap.Rho)
		return
	}
	if res.Resid > 1e-6 {
		tst.Errorf("fugacity mismatch too large: %g\n", res.Resid)
		return
	}

	// round-trip: both phases reproduce the equilibrium pressure
	for _, ph := range res.Phases {
		P, err := mdl.Pressure(res.T, ph.Rho, ph.X)
		if err != nil {
			tst.Errorf("Pressure failed: %v\n", err)
			return
		}
		chk.Float64(tst, "P round-trip ratio", 1e-8, P/res.P, 1.0)
	}
}

func Test_flash02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flash02. off the saturation line the split is refused")

	mdl := pureButane(tst)
	sts := DefaultSettings()
	T := 300.0
	z := []float64{1}

	Psat, _, _, err := SaturationPressure(mdl, T, z, sts)
	if err != nil {
		tst.Errorf("SaturationPressure failed: %v\n", err)
		return
	}
	_, err = Flash(mdl, T, 0.5*Psat, z, sts)
	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		tst.Errorf("expected ConvergenceError off the saturation line, got: %v\n", err)
		return
	}
	io.Pf("refused with: %v\n", ce)
}

func Test_flash03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flash03. binary two-phase split")

	mdl := binaryC2C4(tst)
	sts := DefaultSettings()
	T := 270.0
	P := 5e5
	z := []float64{0.5, 0.5}

	res, err := Flash(mdl, T, P, z, sts)
	if err != nil {
		tst.Errorf("Flash failed: %v\n", err)
		return
	}
	io.Pf("flash: beta=%g  x=%v  y=%v\n", res.Beta, res.Liquid().X, res.Vapor().X)
	if res.Beta <= 0 || res.Beta >= 1 {
		tst.Errorf("vapor fraction must be inside (0,1): %g\n", res.Beta)
		return
	}

	// fugacities match across phases
	mm := fugMismatch(tst, mdl, res)
	if mm > 1e-6 {
		tst.Errorf("fugacity mismatch too large: %g\n", mm)
		return
	}

	// overall mass balance
	x, y := res.Liquid().X, res.Vapor().X
	for i := range z {
		zi := res.Beta*y[i] + (1.0-res.Beta)*x[i]
		chk.Float64(tst, io.Sf("mass balance z[%d]", i), 1e-7, zi, z[i])
	}

	// idempotence
	res2, err := Flash(mdl, T, P, z, sts)
	if err != nil {
		tst.Errorf("second Flash failed: %v\n", err)
		return
	}
	if res2.Beta != res.Beta || res2.Liquid().Rho != res.Liquid().Rho {
		tst.Errorf("result not reproducible\n")
		return
	}

	// single-phase conditions are refused, not approximated
	_, err = Flash(mdl, T, 5e6, z, sts)
	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		tst.Errorf("expected ConvergenceError at single-phase pressure, got: %v\n", err)
		return
	}
	if ce.Calc != "flash" {
		tst.Errorf("error should identify the calculation: %v\n", ce.Calc)
	}
}
