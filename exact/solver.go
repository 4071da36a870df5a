package exact

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/crillab/gophersat/solver"

	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/mdp"
)

// Defaults for Config.
const (
	DefaultTimeLimit = 300 * time.Second
	DefaultGap       = 0.01
	DefaultScale     = 1000.0
)

// Name is the algorithm name reported in Solution.Algorithm.
const Name = "exact"

// Config tunes the exact backend.
type Config struct {
	// TimeLimit is the wall-clock budget; 0 waits for the search to finish
	// or for ctx. Runs stopped by the budget report StatusFeasible.
	TimeLimit time.Duration

	// Gap stops the run once (bound − incumbent)/bound ≤ Gap, where bound is
	// UpperBound. 0 disables the early stop.
	Gap float64

	// Scale converts distances to the integer weights of the program.
	Scale float64
}

// DefaultConfig returns a 300 s budget, 1% gap and 1e-3 weight resolution.
func DefaultConfig() Config {
	return Config{TimeLimit: DefaultTimeLimit, Gap: DefaultGap, Scale: DefaultScale}
}

func (c Config) validate() error {
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: TimeLimit=%v < 0", mdp.ErrInvalidOptions, c.TimeLimit)
	}
	if math.IsNaN(c.Gap) || c.Gap < 0 || c.Gap >= 1 {
		return fmt.Errorf("%w: Gap=%g outside [0,1)", mdp.ErrInvalidOptions, c.Gap)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return fmt.Errorf("%w: Scale=%g", mdp.ErrInvalidOptions, c.Scale)
	}

	return nil
}

// Solver runs the pseudo-boolean program on gophersat.
type Solver struct {
	cfg Config
}

// New validates cfg and returns a Solver.
func New(cfg Config) (*Solver, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Solver{cfg: cfg}, nil
}

// Register installs cfg as the backend of mdp.AlgoExact. A positive
// Options.TimeLimit overrides cfg.TimeLimit.
func Register(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	mdp.RegisterExact(func(opts mdp.Options) (mdp.Solver, error) {
		c := cfg
		if opts.TimeLimit > 0 {
			c.TimeLimit = opts.TimeLimit
		}
		return New(c)
	})

	return nil
}

// Name implements mdp.Solver.
func (s *Solver) Name() string { return Name }

// Solve searches for an optimal selection.
//
// Outcomes:
//   - search finished: StatusOptimal;
//   - gap reached or TimeLimit expired with an incumbent: StatusFeasible, nil;
//   - ctx ended with an incumbent: StatusCancelled with ctx.Err();
//   - no selection at all: mdp.ErrNoSolution wrapped with the reason.
//
// gophersat cannot be interrupted; a stopped run leaves its search
// goroutine to finish in the background while its results are discarded.
func (s *Solver) Solve(ctx context.Context, m *distance.Model) (mdp.Solution, error) {
	prog, err := BuildProgram(m, s.cfg.Scale)
	if err != nil {
		return mdp.Solution{}, err
	}
	bound := UpperBound(m)

	var budget <-chan time.Time
	if s.cfg.TimeLimit > 0 {
		t := time.NewTimer(s.cfg.TimeLimit)
		defer t.Stop()
		budget = t.C
	}

	results := make(chan solver.Result)
	go solver.New(prog.Problem()).Optimal(results, nil)
	abandon := func() {
		go func() {
			for range results {
			}
		}()
	}

	var (
		best    []int
		bestDiv = math.Inf(-1)
		models  int
	)
	finish := func(status mdp.Status, err error) (mdp.Solution, error) {
		if best == nil {
			return mdp.Solution{Algorithm: Name}, err
		}
		return mdp.Solution{
			Selection:  best,
			Diversity:  mdp.Diversity(m, best),
			Algorithm:  Name,
			Status:     status,
			Iterations: models,
		}, err
	}

	for {
		select {
		case r, ok := <-results:
			if !ok {
				if best == nil {
					return finish(mdp.StatusUnknown, fmt.Errorf("%w: program is unsatisfiable", mdp.ErrNoSolution))
				}
				return finish(mdp.StatusOptimal, nil)
			}
			if r.Status != solver.Sat {
				continue
			}
			sel := prog.Selection(r.Model)
			if mdp.ValidateSelection(m, sel) != nil {
				continue
			}
			models++
			if d := mdp.Diversity(m, sel); d > bestDiv {
				best, bestDiv = sel, d
			}
			if s.cfg.Gap > 0 && bound > 0 && (bound-bestDiv)/bound <= s.cfg.Gap {
				abandon()
				return finish(mdp.StatusFeasible, nil)
			}

		case <-budget:
			abandon()
			if best == nil {
				return finish(mdp.StatusUnknown, fmt.Errorf("%w: time limit %v", mdp.ErrNoSolution, s.cfg.TimeLimit))
			}
			return finish(mdp.StatusFeasible, nil)

		case <-ctx.Done():
			abandon()
			if best == nil {
				return finish(mdp.StatusUnknown, errors.Join(mdp.ErrNoSolution, ctx.Err()))
			}
			return finish(mdp.StatusCancelled, ctx.Err())
		}
	}
}
