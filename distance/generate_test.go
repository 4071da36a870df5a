package distance_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxdiv/distance"
)

func newRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, 0)) }

func TestGenerateEuclidean_Metric(t *testing.T) {
	m, err := distance.GenerateEuclidean(20, 5, 2, newRand(7))
	require.NoError(t, err)
	require.Equal(t, 20, m.N())

	maxDiag := 10 * math.Sqrt2
	for i := 0; i < m.N(); i++ {
		require.Zero(t, m.At(i, i))
		for j := 0; j < m.N(); j++ {
			require.Equal(t, m.At(i, j), m.At(j, i))
			require.LessOrEqual(t, m.At(i, j), maxDiag)
			for l := 0; l < m.N(); l++ {
				require.LessOrEqual(t, m.At(i, l), m.At(i, j)+m.At(j, l)+1e-9)
			}
		}
	}
}

func TestGenerate_SeedDeterminism(t *testing.T) {
	a, err := distance.GenerateUniform(15, 4, 0, 10, newRand(3))
	require.NoError(t, err)
	b, err := distance.GenerateUniform(15, 4, 0, 10, newRand(3))
	require.NoError(t, err)
	for i := 0; i < a.N(); i++ {
		require.Equal(t, a.Row(i), b.Row(i))
	}

	c, err := distance.GenerateUniform(15, 4, 0, 10, nil)
	require.NoError(t, err)
	d, err := distance.GenerateUniform(15, 4, 0, 10, nil)
	require.NoError(t, err)
	require.Equal(t, c.Row(0), d.Row(0))
}

func TestGenerateInteger_Range(t *testing.T) {
	m, err := distance.GenerateInteger(12, 3, 0, 9, newRand(11))
	require.NoError(t, err)
	for i := 0; i < m.N(); i++ {
		for j := i + 1; j < m.N(); j++ {
			d := m.At(i, j)
			require.Equal(t, math.Trunc(d), d)
			require.GreaterOrEqual(t, d, 0.0)
			require.LessOrEqual(t, d, 9.0)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := distance.GenerateUniform(5, 2, 3, 1, nil)
	require.ErrorIs(t, err, distance.ErrInvalidRange)

	_, err = distance.GenerateInteger(5, 2, -1, 1, nil)
	require.ErrorIs(t, err, distance.ErrInvalidRange)

	_, err = distance.GenerateEuclidean(5, 2, 0, nil)
	require.ErrorIs(t, err, distance.ErrBadShape)

	_, err = distance.GenerateEuclidean(5, 6, 2, nil)
	require.ErrorIs(t, err, distance.ErrInvalidK)

	_, err = distance.Generate(0, 0, distance.UniformDistanceFn(0, 1), nil)
	require.ErrorIs(t, err, distance.ErrBadShape)

	_, err = distance.GenerateUniform(distance.MaxN+1, 1, 0, 1, nil)
	require.ErrorIs(t, err, distance.ErrBadShape)

	_, err = distance.GenerateEuclidean(distance.MaxN+1, 1, 2, nil)
	require.ErrorIs(t, err, distance.ErrBadShape)

	_, err = distance.Generate(3, 1, func(*rand.Rand) float64 { return -1 }, nil)
	require.ErrorIs(t, err, distance.ErrNegativeDistance)

	require.Panics(t, func() { distance.UniformDistanceFn(2, 1) })
	require.Panics(t, func() { distance.IntegerDistanceFn(-2, 1) })
}
