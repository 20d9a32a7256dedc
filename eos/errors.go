// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"strings"

	"github.com/cpmech/gosl/io"
)

// DomainError indicates that an EOS evaluation was requested outside
// the physical validity range of the model. Values are never clamped;
// callers must adjust their state and retry.
type DomainError struct {
	Msg    string  // what is wrong
	T      float64 // temperature of the offending state [K]
	Rho    float64 // density of the offending state [mol/m³]
	RhoMax float64 // close-packing bound, when relevant [mol/m³]
}

func (e *DomainError) Error() string {
	if e.RhoMax > 0 {
		return io.Sf("eos: %s (T=%g, rho=%g, rhomax=%g)", e.Msg, e.T, e.Rho, e.RhoMax)
	}
	return io.Sf("eos: %s (T=%g, rho=%g)", e.Msg, e.T, e.Rho)
}

// UnsupportedEOSError indicates that the requested family is not in the
// factory database
type UnsupportedEOSError struct {
	Family string   // requested family tag
	Known  []string // registered family tags
}

func (e *UnsupportedEOSError) Error() string {
	return io.Sf("eos: family %q is not available; registered families: %s", e.Family, strings.Join(e.Known, ", "))
}
