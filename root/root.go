// Copyright 2026 The Despasito Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package root implements scalar bracketing and polishing root-finders
// used by the phase-equilibrium routines. The functions here know
// nothing about thermodynamics; callbacks may return an error to abort
// the search (e.g. when an equation of state is evaluated outside its
// validity range).
package root

import "math"

// F defines the scalar residual function to be zeroed
type F func(x float64) (float64, error)

// Config holds the knobs controlling bracketing and polishing
type Config struct {
	Tol    float64 // relative tolerance on step size and residual
	MaxIt  int     // maximum number of iterations
	Expand float64 // geometric factor for bracket expansion
}

// DefaultConfig returns the default solver configuration
//  Tol    = 1e-12
//  MaxIt  = 100
//  Expand = 1.6
func DefaultConfig() Config {
	return Config{Tol: 1e-12, MaxIt: 100, Expand: 1.6}
}

// Stats records the final state of one solve
type Stats struct {
	It   int     // number of iterations used
	X    float64 // last iterate
	Fx   float64 // residual at last iterate
	Path string  // method that produced the root: "brent" or "bisection"
}

// Bracket expands the interval [a,b] geometrically until f changes sign
// across it. The endpoint with the smaller |f| is pushed outward, since
// the root most likely lies beyond it. Returns the bracketing interval
// or a NoBracketError after cfg.MaxIt expansions.
func Bracket(f F, a, b float64, cfg Config) (lo, hi float64, err error) {
	if b <= a {
		a, b = b, a
	}
	fa, err := f(a)
	if err != nil {
		return
	}
	fb, err := f(b)
	if err != nil {
		return
	}
	for it := 0; it < cfg.MaxIt; it++ {
		if fa*fb < 0 {
			return a, b, nil
		}
		if math.Abs(fa) < math.Abs(fb) {
			a += cfg.Expand * (a - b)
			if fa, err = f(a); err != nil {
				return
			}
		} else {
			b += cfg.Expand * (b - a)
			if fb, err = f(b); err != nil {
				return
			}
		}
	}
	return 0, 0, &NoBracketError{Lo: a, Hi: b, Flo: fa, Fhi: fb, It: cfg.MaxIt}
}

// Scan walks n equally spaced points over [a,b] and returns every
// subinterval across which f changes sign. A point where f vanishes
// exactly is returned as a degenerate [x,x] bracket. Returns a
// NoBracketError if no sign change is found.
func Scan(f F, a, b float64, n int, cfg Config) (brackets [][2]float64, err error) {
	if n < 2 {
		n = 2
	}
	dx := (b - a) / float64(n-1)
	xprev := a
	fprev, err := f(a)
	if err != nil {
		return
	}
	for i := 1; i < n; i++ {
		x := a + float64(i)*dx
		var fx float64
		if fx, err = f(x); err != nil {
			return
		}
		switch {
		case fprev == 0:
			brackets = append(brackets, [2]float64{xprev, xprev})
		case fprev*fx < 0:
			brackets = append(brackets, [2]float64{xprev, x})
		}
		xprev, fprev = x, fx
	}
	if fprev == 0 {
		brackets = append(brackets, [2]float64{xprev, xprev})
	}
	if len(brackets) == 0 {
		return nil, &NoBracketError{Lo: a, Hi: b, It: n}
	}
	return
}

// Brent polishes a root of f inside the bracket [a,b] using inverse
// quadratic interpolation and the secant rule, falling back to
// bisection whenever an interpolated step would leave the bracket or
// fail to shrink it. f(a) and f(b) must straddle zero. Iteration stops
// when the bracket width drops below cfg.Tol relative to the iterate,
// and fails with a NotConvergedError after cfg.MaxIt iterations.
func Brent(f F, a, b float64, cfg Config) (x float64, st Stats, err error) {
	fa, err := f(a)
	if err != nil {
		return
	}
	if fa == 0 {
		return a, Stats{X: a, Path: "brent"}, nil
	}
	fb, err := f(b)
	if err != nil {
		return
	}
	if fb == 0 {
		return b, Stats{X: b, Path: "brent"}, nil
	}
	if fa*fb > 0 {
		return 0, st, &NoBracketError{Lo: a, Hi: b, Flo: fa, Fhi: fb}
	}

	// c is the previous iterate; [b is always the best estimate]
	c, fc := a, fa
	d := b - a // step taken in the last iteration
	e := d     // step taken in the iteration before that
	st.Path = "brent"
	for it := 1; it <= cfg.MaxIt; it++ {
		st.It = it
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 2.0*macheps*math.Abs(b) + 0.5*cfg.Tol*math.Max(math.Abs(b), 1)
		m := 0.5 * (c - b)
		if math.Abs(m) <= tol || fb == 0 {
			st.X, st.Fx = b, fb
			return b, st, nil
		}
		if math.Abs(e) < tol || math.Abs(fa) <= math.Abs(fb) {
			// bisection
			d, e = m, m
			st.Path = "bisection"
		} else {
			s := fb / fa
			var p, q float64
			if a == c {
				// secant
				p = 2.0 * m * s
				q = 1.0 - s
			} else {
				// inverse quadratic
				q = fa / fc
				r := fb / fc
				p = s * (2.0*m*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (s - 1.0)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2.0*p < math.Min(3.0*m*q-math.Abs(tol*q), math.Abs(e*q)) {
				e, d = d, p/q
			} else {
				d, e = m, m
				st.Path = "bisection"
			}
		}
		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}
		if fb, err = f(b); err != nil {
			return
		}
		if fb*fc > 0 {
			c, fc = a, fa
			e = b - a
			d = e
		}
	}
	st.X, st.Fx = b, fb
	return 0, st, &NotConvergedError{X: b, Fx: fb, It: cfg.MaxIt}
}

// macheps is the double precision machine epsilon
const macheps = 2.220446049250313e-16
