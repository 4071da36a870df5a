// SPDX-License-Identifier: MIT

// Package distance: functional configuration for model construction.
//
// Options are resolved once per constructor call by gatherOptions; the
// resulting numeric policy is not stored in the Model, which stays a plain
// immutable view after construction.
package distance

import "math"

// DefaultEpsilon is the tolerance used for the diagonal and symmetry checks.
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "distance: WithEpsilon: eps must be finite, non-negative"

// Option mutates construction options.
type Option func(*options)

type options struct {
	eps        float64 // >= 0; DefaultEpsilon
	symmetrize bool    // average a_ij and a_ji instead of rejecting
	name       string  // informational, e.g. the instance file name
}

// WithEpsilon sets the tolerance used by the diagonal and symmetry checks.
// Panics when eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithSymmetrize makes dense constructors replace both a_ij and a_ji by their
// mean instead of returning ErrAsymmetry.
func WithSymmetrize() Option {
	return func(o *options) { o.symmetrize = true }
}

// WithName attaches a human readable instance name to the Model.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func gatherOptions(opts []Option) options {
	o := options{eps: DefaultEpsilon}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
