// Package mdp_test provides helpers shared across the *_test.go files of
// package mdp: fixture instances, a repeat helper and a local-optimality
// checker that uses only the public diversity arithmetic.
package mdp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/mdp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// epsTiny is the tolerance for comparing recomputed diversities.
	epsTiny = 1e-9

	// seedDet is the fixed seed used by randomized components.
	seedDet = uint64(42)

	// scenarioOptimum is the best k=2 diversity of the four-element scenario.
	scenarioOptimum = 6.0
)

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

// scenarioModel: n=4, k=2, d(0,1)=1 d(0,2)=5 d(0,3)=2 d(1,2)=3 d(1,3)=4 d(2,3)=6.
func scenarioModel(t testing.TB) *distance.Model {
	t.Helper()
	m, err := distance.NewFromPairs(4, 2, []distance.Pair{
		{I: 0, J: 1, D: 1}, {I: 0, J: 2, D: 5}, {I: 0, J: 3, D: 2},
		{I: 1, J: 2, D: 3}, {I: 1, J: 3, D: 4}, {I: 2, J: 3, D: 6},
	})
	require.NoError(t, err)

	return m
}

// uniformModel is an MDG-style instance with d ~ U[0,10).
func uniformModel(t testing.TB, n, k int, seed uint64) *distance.Model {
	t.Helper()
	m, err := distance.GenerateUniform(n, k, 0, 10, mdp.NewRand(seed))
	require.NoError(t, err)

	return m
}

// euclidModel is a GKD-style instance in the plane.
func euclidModel(t testing.TB, n, k int, seed uint64) *distance.Model {
	t.Helper()
	m, err := distance.GenerateEuclidean(n, k, 2, mdp.NewRand(seed))
	require.NoError(t, err)

	return m
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// Repeat runs fn n times as subtests.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		t.Run(fmt.Sprintf("rep=%d", i), fn)
	}
}

// requireValid asserts the selection invariant and the diversity identity.
func requireValid(t testing.TB, m *distance.Model, sol mdp.Solution) {
	t.Helper()
	require.NoError(t, mdp.ValidateSelection(m, sol.Selection))
	require.InDelta(t, mdp.Diversity(m, sol.Selection), sol.Diversity, epsTiny)
}

// requireLocalOptimum asserts that no single swap gains more than Eps.
func requireLocalOptimum(t testing.TB, m *distance.Model, sel []int) {
	t.Helper()
	in := make([]bool, m.N())
	for _, v := range sel {
		in[v] = true
	}
	for _, out := range sel {
		for cand := 0; cand < m.N(); cand++ {
			if in[cand] {
				continue
			}
			g := mdp.SwapGain(m, out, cand, sel)
			require.LessOrEqualf(t, g, mdp.Eps+epsTiny, "swap %d->%d gains %g", out, cand, g)
		}
	}
}

// allPairs lists every 2-subset of [0,n).
func allPairs(n int) [][]int {
	var out [][]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, []int{i, j})
		}
	}

	return out
}
