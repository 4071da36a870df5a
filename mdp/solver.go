// Package mdp - unified solver capability.
//
// Every strategy (the local searches, GRASP, the genetic algorithm, the
// exhaustive reference and any registered exact backend) satisfies Solver,
// so drivers select strategies by configuration instead of call sites:
//
//	s, err := mdp.NewSolver(opts)
//	sol, err := s.Solve(ctx, model)
//
// Solve wraps that with validation and Verify.
//
// Randomness: each Solve call creates its own *rand.Rand from Options.Seed,
// so one Solver value may be used from several goroutines and identical
// seeds give identical results.
package mdp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/katalvlaran/maxdiv/distance"
)

// Solver is the common capability of every strategy.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m *distance.Model) (Solution, error)
}

// Algorithm selects the strategy built by NewSolver.
type Algorithm int

const (
	AlgoFirstImprovement Algorithm = iota
	AlgoBestImprovement
	AlgoTabu
	AlgoGRASP
	AlgoGenetic
	AlgoExhaustive
	AlgoExact
)

var algorithmNames = [...]string{"ls-first", "ls-best", "tabu", "grasp", "genetic", "exhaustive", "exact"}

// String returns the canonical algorithm name.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("algorithm(%d)", int(a))
	}

	return algorithmNames[a]
}

// ParseAlgorithm maps a canonical name (case-insensitive) to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, v := range algorithmNames {
		if v == name {
			return Algorithm(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

// MarshalText encodes the algorithm by name.
func (a Algorithm) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(algorithmNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, int(a))
	}

	return []byte(a.String()), nil
}

// UnmarshalText decodes a name accepted by ParseAlgorithm.
func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v

	return nil
}

// Options configures NewSolver. Only the block matching Algorithm is read.
type Options struct {
	Algorithm Algorithm
	Seed      uint64        // 0 selects the fixed default stream
	TimeLimit time.Duration // 0 = no wall-clock budget beyond ctx; passed to the exact factory as is

	LocalSearch LocalSearchConfig // AlgoFirstImprovement, AlgoBestImprovement, AlgoTabu
	Grasp       GraspConfig
	Genetic     GeneticConfig
}

// DefaultOptions returns GRASP with every block at its defaults.
func DefaultOptions() Options {
	return Options{
		Algorithm:   AlgoGRASP,
		LocalSearch: DefaultLocalSearchConfig(),
		Grasp:       DefaultGraspConfig(),
		Genetic:     DefaultGeneticConfig(),
	}
}

// ExactFactory builds an exact backend from Options.
type ExactFactory func(opts Options) (Solver, error)

var (
	exactMu      sync.RWMutex
	exactFactory ExactFactory
)

// RegisterExact installs the backend used for AlgoExact; nil unregisters.
// Packages providing a backend call it from their own Register function so
// mdp never imports them.
func RegisterExact(f ExactFactory) {
	exactMu.Lock()
	exactFactory = f
	exactMu.Unlock()
}

// ValidateOptions checks the configuration block of opts.Algorithm.
func ValidateOptions(opts Options) error {
	if opts.TimeLimit < 0 {
		return fmt.Errorf("%w: TimeLimit=%v < 0", ErrInvalidOptions, opts.TimeLimit)
	}
	switch opts.Algorithm {
	case AlgoFirstImprovement, AlgoBestImprovement, AlgoTabu:
		cfg := opts.LocalSearch
		cfg.Strategy = strategyOf(opts.Algorithm)
		return validateLocalSearchConfig(cfg)
	case AlgoGRASP:
		return validateGraspConfig(opts.Grasp)
	case AlgoGenetic:
		return validateGeneticConfig(opts.Genetic)
	case AlgoExhaustive, AlgoExact:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, int(opts.Algorithm))
	}
}

func strategyOf(a Algorithm) Strategy {
	switch a {
	case AlgoFirstImprovement:
		return FirstImprovement
	case AlgoTabu:
		return TabuSearch
	default:
		return BestImprovement
	}
}

// NewSolver validates opts and builds the requested strategy.
//
// Errors: ErrInvalidOptions, ErrUnsupportedAlgorithm, ErrSolverUnavailable
// (AlgoExact without RegisterExact).
func NewSolver(opts Options) (Solver, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	var s Solver
	switch opts.Algorithm {
	case AlgoFirstImprovement, AlgoBestImprovement, AlgoTabu:
		cfg := opts.LocalSearch
		cfg.Strategy = strategyOf(opts.Algorithm)
		s = localSearchSolver{cfg: cfg, seed: opts.Seed}
	case AlgoGRASP:
		s = graspSolver{cfg: opts.Grasp, seed: opts.Seed}
	case AlgoGenetic:
		s = geneticSolver{cfg: opts.Genetic, seed: opts.Seed}
	case AlgoExhaustive:
		s = exhaustiveSolver{}
	case AlgoExact:
		exactMu.RLock()
		f := exactFactory
		exactMu.RUnlock()
		if f == nil {
			return nil, ErrSolverUnavailable
		}
		var err error
		if s, err = f(opts); err != nil {
			return nil, err
		}
	}

	// exact backends receive TimeLimit through opts and enforce it themselves
	if opts.TimeLimit > 0 && opts.Algorithm != AlgoExact {
		s = budgeted{Solver: s, limit: opts.TimeLimit}
	}

	return s, nil
}

// Solve validates m and opts, runs the strategy and verifies the answer.
// A cancelled run still returns its best-so-far Solution next to the error.
func Solve(ctx context.Context, m *distance.Model, opts Options) (Solution, error) {
	if err := validateModel(m); err != nil {
		return Solution{}, err
	}
	s, err := NewSolver(opts)
	if err != nil {
		return Solution{}, err
	}

	sol, err := s.Solve(ctx, m)
	if sol.Selection == nil {
		if err == nil {
			err = ErrNoSolution
		}
		return sol, err
	}
	if verr := Verify(m, sol, verifyTol); verr != nil {
		return Solution{}, fmt.Errorf("%s: %w", s.Name(), verr)
	}

	return sol, err
}

// budgeted applies a wall-clock limit on top of the caller's context.
type budgeted struct {
	Solver
	limit time.Duration
}

func (b budgeted) Solve(ctx context.Context, m *distance.Model) (Solution, error) {
	ctx, cancel := context.WithTimeout(ctx, b.limit)
	defer cancel()

	return b.Solver.Solve(ctx, m)
}

type localSearchSolver struct {
	cfg  LocalSearchConfig
	seed uint64
}

func (s localSearchSolver) Name() string { return s.cfg.Strategy.String() }

// Solve starts from a random selection drawn from the solver's seed.
func (s localSearchSolver) Solve(ctx context.Context, m *distance.Model) (Solution, error) {
	start, err := Construct(m, ConstructRandom, 0, NewRand(s.seed))
	if err != nil {
		return Solution{}, err
	}

	return LocalSearch(ctx, m, start, s.cfg)
}

type graspSolver struct {
	cfg  GraspConfig
	seed uint64
}

func (graspSolver) Name() string { return "grasp" }

func (s graspSolver) Solve(ctx context.Context, m *distance.Model) (Solution, error) {
	return Grasp(ctx, m, s.cfg, NewRand(s.seed))
}

type geneticSolver struct {
	cfg  GeneticConfig
	seed uint64
}

func (geneticSolver) Name() string { return "genetic" }

func (s geneticSolver) Solve(ctx context.Context, m *distance.Model) (Solution, error) {
	return GeneticSearch(ctx, m, s.cfg, NewRand(s.seed))
}

type exhaustiveSolver struct{}

func (exhaustiveSolver) Name() string { return "exhaustive" }

func (exhaustiveSolver) Solve(ctx context.Context, m *distance.Model) (Solution, error) {
	return Exhaustive(ctx, m)
}
