package mdp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxdiv/distance"
)

func internalModel(t *testing.T, n, k int, seed uint64) *distance.Model {
	t.Helper()
	m, err := distance.GenerateUniform(n, k, 0, 10, NewRand(seed))
	require.NoError(t, err)

	return m
}

// TestSwapState_GainMatchesSwapGain checks the O(1) score against the O(k)
// reference along a random swap chain, and the running value against a
// direct recomputation.
func TestSwapState_GainMatchesSwapGain(t *testing.T) {
	m := internalModel(t, 35, 9, 3)
	rng := NewRand(11)
	st := newSwapState(m)
	st.reset(randomSelection(m.N(), m.K(), rng))

	for step := 0; step < 400; step++ {
		out := st.sel[rng.IntN(len(st.sel))]
		in := st.unsel[rng.IntN(len(st.unsel))]
		require.InDelta(t, SwapGain(m, out, in, st.sel), st.gain(out, in), 1e-9)
		st.apply(out, in)

		require.Equal(t, len(st.sel), m.K())
		require.Equal(t, len(st.unsel), m.N()-m.K())
		for p, v := range st.sel {
			require.True(t, st.in[v])
			require.Equal(t, p, st.pos[v])
		}
		for q, v := range st.unsel {
			require.False(t, st.in[v])
			require.Equal(t, q, st.pos[v])
		}
	}
	require.InDelta(t, Diversity(m, st.sel), st.value, 1e-7)
	for v := 0; v < m.N(); v++ {
		require.InDelta(t, MarginalContribution(m, v, st.sel), st.contrib[v], 1e-7)
	}
}

// -----------------------------------------------------------------------------
// Tabu audit through the trace hook
// -----------------------------------------------------------------------------

// TestTabu_ForbiddenMovesOnlyByAspiration replays every applied move and
// recomputes tabu status independently: a move reversing one applied within
// the last tenure iterations may only be taken when it yields a new best.
func TestTabu_ForbiddenMovesOnlyByAspiration(t *testing.T) {
	for _, tenure := range []int{0, 1, 3, 8} {
		m := internalModel(t, 25, 7, uint64(tenure)+1)
		st := newSwapState(m)
		st.reset(randomSelection(m.N(), m.K(), NewRand(5)))

		var steps []tabuStep
		cfg := LocalSearchConfig{Strategy: TabuSearch, MaxIters: 250, TabuTenure: tenure}
		sol, err := runLocalSearch(context.Background(), st, cfg, func(s tabuStep) { steps = append(steps, s) })
		require.NoError(t, err)
		require.Len(t, steps, 250)

		best := steps[0].best
		for i, s := range steps {
			forbidden := false
			for _, prev := range steps[:i] {
				if prev.in == s.out && prev.out == s.in && s.iter-prev.iter <= tenure {
					forbidden = true
					break
				}
			}
			require.Equal(t, forbidden, s.tabu, "iteration %d", s.iter)
			if forbidden {
				require.Greater(t, s.before+s.gain, s.best, "iteration %d", s.iter)
				require.True(t, s.aspiration)
			}
			require.Equal(t, best, s.best)
			if after := s.before + s.gain; after > best+Eps {
				best = after
			}
		}
		require.InDelta(t, best, sol.Diversity, 1e-7)
	}
}

// TestTabu_AspirationAgainstRecomputedDiversity replays each run on its own
// selection and recomputes diversities from scratch: a tabu move must land
// strictly above the incumbent's true diversity, so drift in the running
// value can never let a tie through.
func TestTabu_AspirationAgainstRecomputedDiversity(t *testing.T) {
	const runs = 40
	aspirated := 0
	for seed := uint64(0); seed < runs; seed++ {
		m := internalModel(t, 30, 8, seed)
		start := randomSelection(m.N(), m.K(), NewRand(seed+100))
		st := newSwapState(m)
		st.reset(start)

		cur := append([]int(nil), start...)
		cfg := LocalSearchConfig{Strategy: TabuSearch, MaxIters: 200, TabuTenure: 3}
		_, err := runLocalSearch(context.Background(), st, cfg, func(s tabuStep) {
			require.InDelta(t, Diversity(m, cur), s.before, 1e-7, "seed %d iteration %d", seed, s.iter)
			for p, v := range cur {
				if v == s.out {
					cur[p] = s.in
					break
				}
			}
			if s.tabu {
				aspirated++
				after, best := Diversity(m, cur), Diversity(m, s.bestSel)
				require.Greater(t, after, best, "seed %d iteration %d", seed, s.iter)
			}
		})
		require.NoError(t, err)
	}
	t.Logf("%d aspirated moves over %d runs", aspirated, runs)
}

func TestTabu_AcceptsWorseningMoves(t *testing.T) {
	m := internalModel(t, 20, 5, 9)
	st := newSwapState(m)
	st.reset(randomSelection(m.N(), m.K(), NewRand(2)))

	worse := 0
	cfg := LocalSearchConfig{Strategy: TabuSearch, MaxIters: 100, TabuTenure: 5}
	_, err := runLocalSearch(context.Background(), st, cfg, func(s tabuStep) {
		if s.gain < 0 {
			worse++
		}
	})
	require.NoError(t, err)
	require.Positive(t, worse)
}
