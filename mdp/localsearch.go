// Package mdp - swap-neighbourhood local search.
//
// LocalSearch improves a starting selection by exchanging one selected
// element for one unselected element. Three move-selection strategies share
// the neighbourhood, the scan order (selected position-major, unselected
// position-minor) and the incremental state of state.go:
//
//   - FirstImprovement: apply the first swap with gain > eps, rescan.
//   - BestImprovement:  apply the max-gain swap if its gain > eps.
//   - TabuSearch:       apply the best allowed swap even when it loses
//     diversity; see tabu.go.
//
// State machine: Running → Converged (no qualifying move) | Exhausted
// (MaxIters applied moves) | Cancelled (ctx done; best-so-far is returned
// together with ctx.Err()).
//
// Complexity per iteration: O(k·(n−k)) scan + O(n) apply.
package mdp

import (
	"context"
	"fmt"

	"github.com/katalvlaran/maxdiv/distance"
)

// Strategy selects the move rule of LocalSearch.
type Strategy int

const (
	FirstImprovement Strategy = iota
	BestImprovement
	TabuSearch
)

// String returns the name reported in Solution.Algorithm; it matches the
// corresponding Algorithm name.
func (s Strategy) String() string {
	switch s {
	case FirstImprovement:
		return "ls-first"
	case BestImprovement:
		return "ls-best"
	case TabuSearch:
		return "tabu"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Defaults for LocalSearchConfig.
const (
	DefaultLocalSearchIters = 1000
	DefaultTabuTenure       = 10
)

// LocalSearchConfig configures LocalSearch.
type LocalSearchConfig struct {
	Strategy Strategy

	// MaxIters caps the number of applied moves. 0 means "until convergence"
	// for first/best improvement and is rejected for tabu search, which has
	// no natural stopping point.
	MaxIters int

	// TabuTenure is the number of iterations a reversing move stays
	// forbidden. Ignored by first/best improvement.
	TabuTenure int

	// Eps is the improvement threshold; 0 selects the package constant Eps.
	Eps float64
}

// DefaultLocalSearchConfig returns best improvement with the default budget.
func DefaultLocalSearchConfig() LocalSearchConfig {
	return LocalSearchConfig{
		Strategy:   BestImprovement,
		MaxIters:   DefaultLocalSearchIters,
		TabuTenure: DefaultTabuTenure,
		Eps:        Eps,
	}
}

func (cfg LocalSearchConfig) eps() float64 {
	if cfg.Eps == 0 {
		return Eps
	}

	return cfg.Eps
}

// LocalSearch runs cfg.Strategy from start and returns the resulting
// Solution. start must hold m.K() distinct indices; it is not modified.
//
// Errors: ErrNilModel, ErrInvalidK, ErrInvalidOptions, ErrInvalidSelection
// before the run; ctx.Err() (with a valid best-so-far Solution) on cancel.
func LocalSearch(ctx context.Context, m *distance.Model, start []int, cfg LocalSearchConfig) (Solution, error) {
	if err := validateModel(m); err != nil {
		return Solution{}, err
	}
	if err := validateLocalSearchConfig(cfg); err != nil {
		return Solution{}, err
	}
	if err := ValidateSelection(m, start); err != nil {
		return Solution{}, err
	}

	st := newSwapState(m)
	st.reset(start)

	return runLocalSearch(ctx, st, cfg, nil)
}

// runLocalSearch dispatches on the strategy over an already loaded state.
func runLocalSearch(ctx context.Context, st *swapState, cfg LocalSearchConfig, hook tabuHook) (Solution, error) {
	if cfg.Strategy == TabuSearch {
		return runTabu(ctx, st, cfg, hook)
	}

	status, iters, err := descend(ctx, st, cfg.Strategy, cfg.MaxIters, cfg.eps())
	sol := exportSolution(st.m, st.snapshot(), cfg.Strategy.String(), status, iters)

	return sol, err
}

// descend applies improving moves until convergence, budget or cancel.
func descend(ctx context.Context, st *swapState, strategy Strategy, maxIters int, eps float64) (Status, int, error) {
	var (
		iter    int
		out, in int
		ok      bool
	)
	for {
		if maxIters > 0 && iter >= maxIters {
			return StatusExhausted, iter, nil
		}
		if err := ctx.Err(); err != nil {
			return StatusCancelled, iter, err
		}

		if strategy == FirstImprovement {
			out, in, ok = st.firstImproving(eps)
		} else {
			out, in, ok = st.bestImproving(eps)
		}
		if !ok {
			return StatusConverged, iter, nil
		}
		st.apply(out, in)
		iter++
	}
}

// exportSolution recomputes diversity from sel (never trusting st.value).
func exportSolution(m *distance.Model, sel []int, name string, status Status, iters int) Solution {
	return Solution{
		Selection:  sel,
		Diversity:  Diversity(m, sel),
		Algorithm:  name,
		Status:     status,
		Iterations: iters,
	}
}
