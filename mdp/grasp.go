package mdp

import (
	"context"
	"math/rand/v2"

	"github.com/katalvlaran/maxdiv/distance"
)

// Defaults for GraspConfig.
const (
	DefaultGraspIterations       = 100
	DefaultGraspAlpha            = 0.3
	DefaultGraspLocalSearchIters = 1000
)

// GraspConfig configures Grasp.
type GraspConfig struct {
	Iterations       int     // restarts, >= 1
	Alpha            float64 // RCL width in [0,1]
	LocalSearchIters int     // best-improvement move cap per restart; 0 = to convergence
}

// DefaultGraspConfig returns 100 restarts, alpha 0.3, 1000 moves per restart.
func DefaultGraspConfig() GraspConfig {
	return GraspConfig{
		Iterations:       DefaultGraspIterations,
		Alpha:            DefaultGraspAlpha,
		LocalSearchIters: DefaultGraspLocalSearchIters,
	}
}

// Grasp repeats greedy-randomized construction followed by best-improvement
// local search and keeps the best restart. A restart replaces the incumbent
// only with strictly greater diversity, so ties keep the earliest.
//
// The returned Status is Exhausted once every restart ran, or Cancelled with
// ctx.Err() when the context ends first (after at least one restart the
// incumbent is returned; before that the Solution is empty).
//
// Complexity: Iterations × (O(n·k) construction + local search).
func Grasp(ctx context.Context, m *distance.Model, cfg GraspConfig, rng *rand.Rand) (Solution, error) {
	if err := validateModel(m); err != nil {
		return Solution{}, err
	}
	if err := validateGraspConfig(cfg); err != nil {
		return Solution{}, err
	}
	rng = orDefaultRand(rng)

	var (
		cons    = newConstructor(m)
		st      = newSwapState(m)
		bestSel []int
		bestDiv float64
		have    bool
		it      int
	)
	finish := func(status Status, err error) (Solution, error) {
		if !have {
			return Solution{Algorithm: "grasp", Status: status}, err
		}
		return exportSolution(m, bestSel, "grasp", status, it), err
	}

	for it = 0; it < cfg.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return finish(StatusCancelled, err)
		}

		start, err := cons.greedyRandomized(cfg.Alpha, rng)
		if err != nil {
			return Solution{}, err
		}
		st.reset(start)
		_, _, lsErr := descend(ctx, st, BestImprovement, cfg.LocalSearchIters, Eps)

		d := Diversity(m, st.sel)
		if !have || d > bestDiv {
			have, bestDiv, bestSel = true, d, st.snapshot()
		}
		if lsErr != nil {
			it++
			return finish(StatusCancelled, lsErr)
		}
	}

	return finish(StatusExhausted, nil)
}
