// SPDX-License-Identifier: MIT

// Package distance: synthetic instance generators.
//
// The three families mirror the MDPLIB benchmark sets:
//   - GKD: Euclidean distances between points drawn uniformly in [0,10)^dims.
//   - MDG: real distances drawn i.i.d. from U[lo,hi).
//   - SOM: integer distances drawn i.i.d. from {lo,...,hi}.
//
// Every generator takes an explicit *rand.Rand; a nil rng falls back to a
// fixed-seed stream so calls stay reproducible.
package distance

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// euclidSide is the side length of the hypercube used by GenerateEuclidean.
const euclidSide = 10.0

const defaultGenSeed uint64 = 1

// DistanceFn draws one pairwise distance from rng.
type DistanceFn func(rng *rand.Rand) float64

// UniformDistanceFn returns a DistanceFn sampling U[lo,hi). lo == hi yields
// the constant lo. Panics unless 0 <= lo <= hi and both are finite.
func UniformDistanceFn(lo, hi float64) DistanceFn {
	if err := checkRange(lo, hi); err != nil {
		panic(fmt.Sprintf("distance: UniformDistanceFn: require 0 <= lo <= hi, got lo=%g hi=%g", lo, hi))
	}
	span := hi - lo

	return func(rng *rand.Rand) float64 {
		return lo + rng.Float64()*span
	}
}

// IntegerDistanceFn returns a DistanceFn sampling integers uniformly from
// {lo,...,hi}. Panics unless 0 <= lo <= hi.
func IntegerDistanceFn(lo, hi int) DistanceFn {
	if lo < 0 || hi < lo {
		panic(fmt.Sprintf("distance: IntegerDistanceFn: require 0 <= lo <= hi, got lo=%d hi=%d", lo, hi))
	}
	width := hi - lo + 1

	return func(rng *rand.Rand) float64 {
		return float64(lo + rng.IntN(width))
	}
}

// Generate fills every unordered pair with fn(rng), row-major over i<j.
func Generate(n, k int, fn DistanceFn, rng *rand.Rand, opts ...Option) (*Model, error) {
	if fn == nil {
		return nil, ErrBadShape
	}
	if err := checkN(n); err != nil {
		return nil, err
	}
	if k < 0 || k > n {
		return nil, ErrInvalidK
	}
	rng = orDefault(rng)

	flat := make([]float64, n*n)
	var d float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d = fn(rng)
			if err := checkValue(d); err != nil {
				return nil, fmt.Errorf("generated (%d,%d)=%g: %w", i, j, d, err)
			}
			flat[i*n+j] = d
			flat[j*n+i] = d
		}
	}

	return newModel(n, k, gatherOptions(opts).name, flat), nil
}

// GenerateUniform builds an MDG-style instance with d ~ U[lo,hi).
func GenerateUniform(n, k int, lo, hi float64, rng *rand.Rand, opts ...Option) (*Model, error) {
	if err := checkRange(lo, hi); err != nil {
		return nil, err
	}

	return Generate(n, k, UniformDistanceFn(lo, hi), rng, opts...)
}

// GenerateInteger builds a SOM-style instance with integer d in [lo,hi].
func GenerateInteger(n, k, lo, hi int, rng *rand.Rand, opts ...Option) (*Model, error) {
	if lo < 0 || hi < lo {
		return nil, ErrInvalidRange
	}

	return Generate(n, k, IntegerDistanceFn(lo, hi), rng, opts...)
}

// GenerateEuclidean builds a GKD-style instance: n points uniform in
// [0,10)^dims and their pairwise Euclidean distances.
//
// Complexity: O(n²·dims) time, O(n² + n·dims) space.
func GenerateEuclidean(n, k, dims int, rng *rand.Rand, opts ...Option) (*Model, error) {
	if err := checkN(n); err != nil {
		return nil, err
	}
	if dims < 1 || dims > math.MaxInt/n {
		return nil, ErrBadShape
	}
	if k < 0 || k > n {
		return nil, ErrInvalidK
	}
	rng = orDefault(rng)

	pts := make([]float64, n*dims)
	for i := range pts {
		pts[i] = rng.Float64() * euclidSide
	}

	flat := make([]float64, n*n)
	var (
		acc, diff float64
		c         int
	)
	for i := 0; i < n; i++ {
		pi := pts[i*dims : (i+1)*dims]
		for j := i + 1; j < n; j++ {
			pj := pts[j*dims : (j+1)*dims]
			acc = 0
			for c = 0; c < dims; c++ {
				diff = pi[c] - pj[c]
				acc += diff * diff
			}
			flat[i*n+j] = math.Sqrt(acc)
			flat[j*n+i] = flat[i*n+j]
		}
	}

	return newModel(n, k, gatherOptions(opts).name, flat), nil
}

func checkRange(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return ErrInvalidRange
	}
	if lo < 0 || hi < lo {
		return ErrInvalidRange
	}

	return nil
}

func orDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}

	return rand.New(rand.NewPCG(defaultGenSeed, 0))
}
