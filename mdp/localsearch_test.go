package mdp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxdiv/mdp"
)

// -----------------------------------------------------------------------------
// Scenario: n=4, k=2 against exhaustive enumeration
// -----------------------------------------------------------------------------

func TestLocalSearch_ScenarioEveryStart(t *testing.T) {
	m := scenarioModel(t)

	ex, err := mdp.Exhaustive(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, scenarioOptimum, ex.Diversity)

	for _, strategy := range []mdp.Strategy{mdp.FirstImprovement, mdp.BestImprovement} {
		for _, start := range allPairs(4) {
			cfg := mdp.DefaultLocalSearchConfig()
			cfg.Strategy = strategy
			cfg.MaxIters = 0

			sol, err := mdp.LocalSearch(context.Background(), m, start, cfg)
			require.NoError(t, err)
			require.Equal(t, mdp.StatusConverged, sol.Status)
			requireLocalOptimum(t, m, sol.Selection)
			// {2,3} is the only 1-swap optimum of this instance
			require.Equalf(t, ex.Diversity, sol.Diversity, "%v from %v", strategy, start)
			require.Equal(t, []int{2, 3}, sol.Selection)
		}
	}
}

// -----------------------------------------------------------------------------
// Convergence and budgets
// -----------------------------------------------------------------------------

func TestLocalSearch_ConvergedIsLocallyOptimal(t *testing.T) {
	m := euclidModel(t, 50, 10, seedDet)
	rng := mdp.NewRand(seedDet)

	for _, strategy := range []mdp.Strategy{mdp.FirstImprovement, mdp.BestImprovement} {
		Repeat(t, 3, func(t *testing.T) {
			start, err := mdp.Construct(m, mdp.ConstructRandom, 0, rng)
			require.NoError(t, err)
			startDiv := mdp.Diversity(m, start)

			sol, err := mdp.LocalSearch(context.Background(), m, start, mdp.LocalSearchConfig{Strategy: strategy})
			require.NoError(t, err)
			require.Equal(t, mdp.StatusConverged, sol.Status)
			requireValid(t, m, sol)
			requireLocalOptimum(t, m, sol.Selection)
			require.GreaterOrEqual(t, sol.Diversity, startDiv)
		})
	}
}

func TestLocalSearch_Exhausted(t *testing.T) {
	m := scenarioModel(t)
	cfg := mdp.LocalSearchConfig{Strategy: mdp.BestImprovement, MaxIters: 1}

	sol, err := mdp.LocalSearch(context.Background(), m, []int{0, 1}, cfg)
	require.NoError(t, err)
	require.Equal(t, mdp.StatusExhausted, sol.Status)
	require.Equal(t, 1, sol.Iterations)
	// best move from {0,1} is 1 -> 2
	require.Equal(t, []int{0, 2}, sol.Selection)
	require.Equal(t, 5.0, sol.Diversity)
}

func TestLocalSearch_DoesNotModifyStart(t *testing.T) {
	m := scenarioModel(t)
	start := []int{1, 0}
	_, err := mdp.LocalSearch(context.Background(), m, start, mdp.DefaultLocalSearchConfig())
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, start)
}

func TestLocalSearch_KEqualsN(t *testing.T) {
	m := scenarioModel(t)
	full, err := m.WithK(4)
	require.NoError(t, err)

	for _, strategy := range []mdp.Strategy{mdp.FirstImprovement, mdp.BestImprovement, mdp.TabuSearch} {
		cfg := mdp.DefaultLocalSearchConfig()
		cfg.Strategy = strategy
		sol, err := mdp.LocalSearch(context.Background(), full, []int{3, 2, 1, 0}, cfg)
		require.NoError(t, err)
		require.Equal(t, mdp.StatusConverged, sol.Status)
		require.Equal(t, full.Sum(), sol.Diversity)
	}
}

// -----------------------------------------------------------------------------
// Tabu (black-box)
// -----------------------------------------------------------------------------

func TestTabu_NeverWorseThanStart(t *testing.T) {
	m := uniformModel(t, 40, 8, seedDet)
	start, err := mdp.Construct(m, mdp.ConstructRandom, 0, mdp.NewRand(seedDet))
	require.NoError(t, err)

	cfg := mdp.LocalSearchConfig{Strategy: mdp.TabuSearch, MaxIters: 300, TabuTenure: 7}
	sol, err := mdp.LocalSearch(context.Background(), m, start, cfg)
	require.NoError(t, err)
	require.Equal(t, mdp.StatusExhausted, sol.Status)
	require.Equal(t, 300, sol.Iterations)
	requireValid(t, m, sol)
	require.GreaterOrEqual(t, sol.Diversity, mdp.Diversity(m, start))

	// tabu explores past the first local optimum it meets
	best, err := mdp.LocalSearch(context.Background(), m, start, mdp.LocalSearchConfig{Strategy: mdp.BestImprovement})
	require.NoError(t, err)
	require.GreaterOrEqual(t, sol.Diversity, best.Diversity-epsTiny)
}

// -----------------------------------------------------------------------------
// Errors and cancellation
// -----------------------------------------------------------------------------

func TestLocalSearch_Errors(t *testing.T) {
	m := scenarioModel(t)
	ctx := context.Background()
	ok := mdp.DefaultLocalSearchConfig()

	_, err := mdp.LocalSearch(ctx, nil, []int{0, 1}, ok)
	require.ErrorIs(t, err, mdp.ErrNilModel)

	_, err = mdp.LocalSearch(ctx, m, []int{0}, ok)
	require.ErrorIs(t, err, mdp.ErrInvalidSelection)
	_, err = mdp.LocalSearch(ctx, m, []int{0, 0}, ok)
	require.ErrorIs(t, err, mdp.ErrInvalidSelection)
	_, err = mdp.LocalSearch(ctx, m, []int{0, 4}, ok)
	require.ErrorIs(t, err, mdp.ErrInvalidSelection)

	bad := []mdp.LocalSearchConfig{
		{Strategy: mdp.Strategy(7)},
		{Strategy: mdp.BestImprovement, MaxIters: -1},
		{Strategy: mdp.BestImprovement, Eps: -1},
		{Strategy: mdp.TabuSearch, MaxIters: 0, TabuTenure: 3},
		{Strategy: mdp.TabuSearch, MaxIters: 10, TabuTenure: -1},
	}
	for _, cfg := range bad {
		_, err = mdp.LocalSearch(ctx, m, []int{0, 1}, cfg)
		require.ErrorIs(t, err, mdp.ErrInvalidOptions, "%+v", cfg)
	}

	big, err := m.WithK(0)
	require.NoError(t, err)
	_, err = mdp.LocalSearch(ctx, big, nil, ok)
	require.ErrorIs(t, err, mdp.ErrInvalidK)
}

func TestLocalSearch_CancelledReturnsStart(t *testing.T) {
	m := uniformModel(t, 30, 6, seedDet)
	start, err := mdp.Construct(m, mdp.ConstructRandom, 0, mdp.NewRand(seedDet))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, strategy := range []mdp.Strategy{mdp.FirstImprovement, mdp.BestImprovement, mdp.TabuSearch} {
		sol, err := mdp.LocalSearch(ctx, m, start, mdp.LocalSearchConfig{Strategy: strategy, MaxIters: 10})
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, mdp.StatusCancelled, sol.Status)
		requireValid(t, m, sol)
		require.Equal(t, mdp.Diversity(m, start), sol.Diversity)
	}
}
