// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package root

import "github.com/cpmech/gosl/io"

// NoBracketError indicates that no sign change of the residual could be
// established within the search budget
type NoBracketError struct {
	Lo, Hi   float64 // last interval searched
	Flo, Fhi float64 // residuals at the interval ends
	It       int     // expansions or scan points spent
}

func (e *NoBracketError) Error() string {
	return io.Sf("root: no bracket found in [%g,%g] after %d expansions (f=[%g,%g])", e.Lo, e.Hi, e.It, e.Flo, e.Fhi)
}

// NotConvergedError indicates that the polishing iteration exhausted
// its budget. X and Fx carry the last iterate so that callers can retry
// from a better starting point.
type NotConvergedError struct {
	X  float64 // last iterate
	Fx float64 // residual at last iterate
	It int     // iterations spent
}

func (e *NotConvergedError) Error() string {
	return io.Sf("root: not converged after %d iterations (x=%g, f=%g)", e.It, e.X, e.Fx)
}
