// SPDX-License-Identifier: MIT
// Package distance: sentinel error set.
// Every constructor, parser and generator in this package returns one of these
// sentinels (possibly wrapped with line/index context via fmt.Errorf("%w")).
// Callers match with errors.Is. Nothing here panics on user input; panics are
// reserved for nonsensical Option values (programmer error).

package distance

import "errors"

var (
	// ErrBadShape is returned when n is outside [1, MaxN], rows are ragged or
	// non-square, or a generator receives an invalid dimension count.
	ErrBadShape = errors.New("distance: invalid shape")

	// ErrInvalidK indicates that k is outside [0, n].
	ErrInvalidK = errors.New("distance: k must satisfy 0 <= k <= n")

	// ErrIndexOutOfRange indicates a pair index outside [0, n).
	ErrIndexOutOfRange = errors.New("distance: index out of range")

	// ErrNaNInf signals a NaN or ±Inf distance.
	ErrNaNInf = errors.New("distance: NaN or Inf encountered")

	// ErrNegativeDistance signals a distance below zero.
	ErrNegativeDistance = errors.New("distance: negative distance")

	// ErrNonZeroDiagonal signals d(i,i) != 0 beyond eps.
	ErrNonZeroDiagonal = errors.New("distance: diagonal not zero within eps")

	// ErrAsymmetry signals |d(i,j) - d(j,i)| > eps without WithSymmetrize.
	ErrAsymmetry = errors.New("distance: matrix is not symmetric within eps")

	// ErrInvalidRange is returned by generators when lo > hi or lo < 0.
	ErrInvalidRange = errors.New("distance: invalid distance range")

	// ErrParse wraps every syntax problem found while reading an instance file.
	ErrParse = errors.New("distance: malformed instance")
)
