// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import "github.com/cpmech/gosl/io"

// AmbiguousPhaseError indicates that two density roots have Gibbs
// energies within numerical noise of each other (phase boundary or
// spinodal region); the solver refuses to pick one.
type AmbiguousPhaseError struct {
	T, P  float64   // state at which the ambiguity arose
	Roots []float64 // the competing density roots
	Gibbs []float64 // their reduced Gibbs energies
}

func (e *AmbiguousPhaseError) Error() string {
	return io.Sf("thermo: density roots %v are equally plausible at T=%g, P=%g (Gibbs %v)", e.Roots, e.T, e.P, e.Gibbs)
}

// ConvergenceError indicates that an equilibrium calculation exhausted
// its outer budget or that no consistent phase state exists at the
// requested conditions. The last iterate is carried so that callers can
// retry from different starting conditions.
type ConvergenceError struct {
	Calc  string    // calculation that failed, e.g. "bubble-pressure"
	Msg   string    // what went wrong
	It    int       // outer iterations spent
	Resid float64   // residual at the last iterate
	T, P  float64   // last temperature and pressure iterates
	X     []float64 // last composition iterate, when meaningful
}

func (e *ConvergenceError) Error() string {
	return io.Sf("thermo: %s failed after %d iterations: %s (resid=%g, T=%g, P=%g)", e.Calc, e.It, e.Msg, e.Resid, e.T, e.P)
}
