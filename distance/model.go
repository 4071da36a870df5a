// SPDX-License-Identifier: MIT

// Package distance: the immutable Model.
//
// Storage is a single row-major n×n buffer holding both triangles. The same
// buffer backs a gonum *mat.SymDense (which reads the upper triangle only), so
// gonum consumers and the hot loops in package mdp share one allocation.
package distance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxN is the largest element count a Model accepts. Its n×n buffer is then
// 2 GiB; the largest MDPLIB instances have n = 3000.
const MaxN = 1 << 14

// checkN rejects element counts outside [1, MaxN] before anything is sized
// from them.
func checkN(n int) error {
	if n < 1 || n > MaxN {
		return fmt.Errorf("n=%d outside [1, %d]: %w", n, MaxN, ErrBadShape)
	}

	return nil
}

// Pair is one sparse (i, j, d) entry of an instance.
type Pair struct {
	I, J int
	D    float64
}

// Model is an n×n symmetric, non-negative distance matrix with a zero
// diagonal and a target selection size k. A Model never changes after
// construction and may be shared by any number of goroutines.
type Model struct {
	n, k int
	name string
	flat []float64
	sym  *mat.SymDense
}

// NewFromPairs builds a Model from sparse (i, j, d) triples. Missing pairs are
// 0. Each triple is written to both (i,j) and (j,i); a later triple for the
// same unordered pair overwrites the earlier one. Self pairs are accepted only
// with d within eps of zero.
//
// Complexity: O(n² + len(pairs)).
func NewFromPairs(n, k int, pairs []Pair, opts ...Option) (*Model, error) {
	if err := checkN(n); err != nil {
		return nil, err
	}
	if k < 0 || k > n {
		return nil, ErrInvalidK
	}
	o := gatherOptions(opts)

	flat := make([]float64, n*n)
	for idx, p := range pairs {
		if p.I < 0 || p.I >= n || p.J < 0 || p.J >= n {
			return nil, fmt.Errorf("pair %d (%d,%d): %w", idx, p.I, p.J, ErrIndexOutOfRange)
		}
		if err := checkValue(p.D); err != nil {
			return nil, fmt.Errorf("pair %d (%d,%d): %w", idx, p.I, p.J, err)
		}
		if p.I == p.J {
			if p.D > o.eps {
				return nil, fmt.Errorf("pair %d (%d,%d): %w", idx, p.I, p.J, ErrNonZeroDiagonal)
			}
			continue
		}
		flat[p.I*n+p.J] = p.D
		flat[p.J*n+p.I] = p.D
	}

	return newModel(n, k, o.name, flat), nil
}

// NewFromRows builds a Model from dense rows. Rows must form a square matrix
// with finite, non-negative entries, a zero diagonal (within eps) and
// symmetric off-diagonal entries (within eps, or averaged under
// WithSymmetrize). The input is copied.
//
// Complexity: O(n²).
func NewFromRows(k int, rows [][]float64, opts ...Option) (*Model, error) {
	n := len(rows)
	if err := checkN(n); err != nil {
		return nil, err
	}
	for i := range rows {
		if len(rows[i]) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(rows[i]), n, ErrBadShape)
		}
	}
	if k < 0 || k > n {
		return nil, ErrInvalidK
	}

	return fromAccessor(n, k, func(i, j int) float64 { return rows[i][j] }, gatherOptions(opts))
}

// NewFromSymmetric builds a Model from any gonum symmetric matrix. Only the
// upper triangle of s is read, so symmetry holds by construction; the value
// checks of NewFromRows still apply.
func NewFromSymmetric(k int, s mat.Symmetric, opts ...Option) (*Model, error) {
	if s == nil {
		return nil, ErrBadShape
	}
	n := s.SymmetricDim()
	if err := checkN(n); err != nil {
		return nil, err
	}
	if k < 0 || k > n {
		return nil, ErrInvalidK
	}
	at := func(i, j int) float64 {
		if i > j {
			i, j = j, i
		}
		return s.At(i, j)
	}

	return fromAccessor(n, k, at, gatherOptions(opts))
}

// fromAccessor runs the shared dense validation: finite/non-negative values,
// zero diagonal, symmetry policy. It mirrors the upper triangle on success.
func fromAccessor(n, k int, at func(i, j int) float64, o options) (*Model, error) {
	flat := make([]float64, n*n)

	var (
		i, j int
		aij  float64
		aji  float64
		err  error
	)
	for i = 0; i < n; i++ {
		aij = at(i, i)
		if err = checkValue(aij); err != nil {
			return nil, fmt.Errorf("entry (%d,%d): %w", i, i, err)
		}
		if aij > o.eps {
			return nil, fmt.Errorf("entry (%d,%d)=%g: %w", i, i, aij, ErrNonZeroDiagonal)
		}
		for j = i + 1; j < n; j++ {
			aij, aji = at(i, j), at(j, i)
			if err = checkValue(aij); err != nil {
				return nil, fmt.Errorf("entry (%d,%d): %w", i, j, err)
			}
			if err = checkValue(aji); err != nil {
				return nil, fmt.Errorf("entry (%d,%d): %w", j, i, err)
			}
			if math.Abs(aij-aji) > o.eps {
				if !o.symmetrize {
					return nil, fmt.Errorf("entries (%d,%d)=%g and (%d,%d)=%g: %w", i, j, aij, j, i, aji, ErrAsymmetry)
				}
				aij = (aij + aji) / 2
			}
			flat[i*n+j] = aij
			flat[j*n+i] = aij
		}
	}

	return newModel(n, k, o.name, flat), nil
}

func newModel(n, k int, name string, flat []float64) *Model {
	return &Model{
		n:    n,
		k:    k,
		name: name,
		flat: flat,
		sym:  mat.NewSymDense(n, flat),
	}
}

func checkValue(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return ErrNaNInf
	}
	if d < 0 {
		return ErrNegativeDistance
	}

	return nil
}

// N returns the number of elements.
func (m *Model) N() int { return m.n }

// K returns the target selection size.
func (m *Model) K() int { return m.k }

// Name returns the instance name (empty unless set by WithName or Load).
func (m *Model) Name() string { return m.name }

// At returns d(i,j). Indices are not checked; callers pass values in [0, n).
func (m *Model) At(i, j int) float64 { return m.flat[i*m.n+j] }

// Row returns row i as a read-only view of length n. Writing to it is a bug.
func (m *Model) Row(i int) []float64 {
	lo := i * m.n
	hi := lo + m.n

	return m.flat[lo:hi:hi]
}

// Symmetric exposes the matrix through gonum's mat.Symmetric interface.
// The returned value shares storage with the Model and must not be mutated.
func (m *Model) Symmetric() mat.Symmetric { return m.sym }

// WithK returns a Model sharing storage with m but targeting k elements.
func (m *Model) WithK(k int) (*Model, error) {
	if k < 0 || k > m.n {
		return nil, ErrInvalidK
	}
	cp := *m
	cp.k = k

	return &cp, nil
}

// Sum returns the sum of d(i,j) over all unordered pairs i<j, i.e. the
// diversity of selecting every element.
func (m *Model) Sum() float64 {
	var s float64
	for i := 0; i < m.n; i++ {
		row := m.Row(i)
		for j := i + 1; j < m.n; j++ {
			s += row[j]
		}
	}

	return s
}

// Max returns the largest pairwise distance (0 when n == 1).
func (m *Model) Max() float64 {
	var best float64
	for _, d := range m.flat {
		if d > best {
			best = d
		}
	}

	return best
}
