// Package mdp - validation shared by every entry point.
//
// Validation is staged and runs before any search: model, then k, then the
// strategy-specific knobs, then the caller's starting selection. Nothing here
// allocates more than one O(n) mark buffer.
package mdp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/maxdiv/distance"
)

// verifyTol is the relative tolerance used by Solve when re-deriving a
// solver's reported diversity.
const verifyTol = 1e-9

// validateModel enforces m != nil and 1 <= k <= n.
func validateModel(m *distance.Model) error {
	if m == nil {
		return ErrNilModel
	}
	if m.K() < 1 || m.K() > m.N() {
		return fmt.Errorf("%w: k=%d n=%d", ErrInvalidK, m.K(), m.N())
	}

	return nil
}

// ValidateSelection checks that sel holds exactly m.K() distinct indices in
// [0, m.N()).
//
// Complexity: O(n) time and space.
func ValidateSelection(m *distance.Model, sel []int) error {
	if m == nil {
		return ErrNilModel
	}
	if len(sel) != m.K() {
		return fmt.Errorf("%w: size %d, want k=%d", ErrInvalidSelection, len(sel), m.K())
	}
	seen := make([]bool, m.N())
	for _, v := range sel {
		if v < 0 || v >= m.N() {
			return fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidSelection, v, m.N())
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate index %d", ErrInvalidSelection, v)
		}
		seen[v] = true
	}

	return nil
}

// Verify checks that sol.Selection is valid for m and that sol.Diversity
// equals Diversity(m, sol.Selection) within a relative tolerance tol.
func Verify(m *distance.Model, sol Solution, tol float64) error {
	if err := ValidateSelection(m, sol.Selection); err != nil {
		return err
	}
	want := Diversity(m, sol.Selection)
	if math.Abs(want-sol.Diversity) > tol*math.Max(1, math.Abs(want)) {
		return fmt.Errorf("%w: reported %g, recomputed %g", ErrDiversityMismatch, sol.Diversity, want)
	}

	return nil
}

func validateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return fmt.Errorf("%w: alpha=%g outside [0,1]", ErrInvalidOptions, alpha)
	}

	return nil
}

func validateRate(name string, r float64) error {
	if math.IsNaN(r) || r < 0 || r > 1 {
		return fmt.Errorf("%w: %s=%g outside [0,1]", ErrInvalidOptions, name, r)
	}

	return nil
}

func validateLocalSearchConfig(cfg LocalSearchConfig) error {
	switch cfg.Strategy {
	case FirstImprovement, BestImprovement:
	case TabuSearch:
		if cfg.MaxIters <= 0 {
			return fmt.Errorf("%w: tabu search needs MaxIters > 0", ErrInvalidOptions)
		}
		if cfg.TabuTenure < 0 {
			return fmt.Errorf("%w: TabuTenure=%d < 0", ErrInvalidOptions, cfg.TabuTenure)
		}
	default:
		return fmt.Errorf("%w: strategy %d", ErrInvalidOptions, int(cfg.Strategy))
	}
	if cfg.MaxIters < 0 {
		return fmt.Errorf("%w: MaxIters=%d < 0", ErrInvalidOptions, cfg.MaxIters)
	}
	if math.IsNaN(cfg.Eps) || cfg.Eps < 0 {
		return fmt.Errorf("%w: Eps=%g < 0", ErrInvalidOptions, cfg.Eps)
	}

	return nil
}

func validateGraspConfig(cfg GraspConfig) error {
	if cfg.Iterations < 1 {
		return fmt.Errorf("%w: GRASP Iterations=%d < 1", ErrInvalidOptions, cfg.Iterations)
	}
	if cfg.LocalSearchIters < 0 {
		return fmt.Errorf("%w: GRASP LocalSearchIters=%d < 0", ErrInvalidOptions, cfg.LocalSearchIters)
	}

	return validateAlpha(cfg.Alpha)
}

func validateGeneticConfig(cfg GeneticConfig) error {
	if cfg.PopulationSize < 1 {
		return fmt.Errorf("%w: PopulationSize=%d < 1", ErrInvalidOptions, cfg.PopulationSize)
	}
	if cfg.Generations < 0 {
		return fmt.Errorf("%w: Generations=%d < 0", ErrInvalidOptions, cfg.Generations)
	}
	if cfg.EliteSize < 0 || cfg.EliteSize > cfg.PopulationSize {
		return fmt.Errorf("%w: EliteSize=%d outside [0,%d]", ErrInvalidOptions, cfg.EliteSize, cfg.PopulationSize)
	}
	if cfg.TournamentSize < 1 {
		return fmt.Errorf("%w: TournamentSize=%d < 1", ErrInvalidOptions, cfg.TournamentSize)
	}
	if cfg.PolishEvery < 0 {
		return fmt.Errorf("%w: PolishEvery=%d < 0", ErrInvalidOptions, cfg.PolishEvery)
	}
	if err := validateRate("CrossoverRate", cfg.CrossoverRate); err != nil {
		return err
	}

	return validateRate("MutationRate", cfg.MutationRate)
}
