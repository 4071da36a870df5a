package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/mdp"
)

// Runner executes the batch described by a Config. A Runner runs one
// batch at a time; trials inside an instance run in parallel.
type Runner struct {
	cfg     Config
	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time

	// stream numbers the trials in submission order so every trial of a
	// batch gets its own seed regardless of scheduling.
	stream uint64
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the progress logger; the default discards.
func WithLogger(l *slog.Logger) RunnerOption { return func(r *Runner) { r.log = l } }

// WithMetrics records every trial into m.
func WithMetrics(m *Metrics) RunnerOption { return func(r *Runner) { r.metrics = m } }

// WithClock replaces time.Now for the experiment timestamp.
func WithClock(now func() time.Time) RunnerOption { return func(r *Runner) { r.now = now } }

// NewRunner validates cfg.
func NewRunner(cfg Config, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: time.Now,
	}
	for _, o := range opts {
		o(r)
	}

	return r, nil
}

// Run walks every category directory in order and runs the size-matched
// suite on each instance. Missing directories and unreadable instances are
// logged and skipped. On cancellation the partial experiment is returned
// together with ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Experiment, error) {
	exp := &Experiment{
		ID:        uuid.NewString(),
		Timestamp: r.now().Format(TimestampLayout),
		System:    CollectSysInfo(),
		Config:    r.cfg,
	}
	r.log.Info("experiment started", "id", exp.ID, "base_dir", r.cfg.BaseDir)

	for _, sub := range r.cfg.Categories {
		dir := filepath.Join(r.cfg.BaseDir, sub)
		files, err := Discover(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				r.log.Warn("skipping directory", "dir", dir, "reason", "not found")
			} else {
				r.log.Warn("skipping directory", "dir", dir, "err", err)
			}
			continue
		}
		r.log.Info("processing directory", "dir", dir, "files", len(files))

		for i, path := range files {
			r.log.Info("instance", "file", filepath.Base(path), "index", i+1, "of", len(files))
			inst, err := r.RunInstance(ctx, path, Category(sub))
			if ctxErr := ctx.Err(); ctxErr != nil {
				return exp, ctxErr
			}
			if err != nil {
				r.log.Error("instance failed", "file", path, "err", err)
				continue
			}
			exp.Instances = append(exp.Instances, inst)
		}
	}
	if len(exp.Instances) == 0 {
		return exp, ErrNoInstances
	}

	return exp, nil
}

// trialJob is one (solver, trial) unit of work on the current instance.
type trialJob struct {
	spec int
	seed uint64
}

type trialOutcome struct {
	sol     mdp.Solution
	elapsed time.Duration
	err     error
}

// RunInstance loads path and runs its suite, Trials times per solver.
func (r *Runner) RunInstance(ctx context.Context, path, category string) (InstanceResult, error) {
	m, err := distance.Load(path)
	if err != nil {
		return InstanceResult{}, err
	}
	suite := r.cfg.SuiteFor(m.N())
	r.log.Debug("suite selected", "instance", m.Name(), "n", m.N(), "k", m.K(), "solvers", len(suite))

	jobs := make([]trialJob, 0, len(suite)*r.cfg.Trials)
	for si := range suite {
		for t := 0; t < r.cfg.Trials; t++ {
			jobs = append(jobs, trialJob{spec: si, seed: mdp.StreamRand(r.cfg.Seed, r.stream).Uint64()})
			r.stream++
		}
	}

	outcomes := make([]trialOutcome, len(jobs))
	for _, phase := range trialPhases(suite, jobs) {
		p := pool.New().WithMaxGoroutines(r.cfg.Parallelism)
		for _, i := range phase {
			job := jobs[i]
			p.Go(func() {
				outcomes[i] = r.runTrial(ctx, m, suite[job.spec], job.seed)
			})
		}
		p.Wait()
	}

	inst := InstanceResult{
		Filename: filepath.Base(path),
		Category: category,
		N:        m.N(),
		K:        m.K(),
		Results:  make([]SolverResult, len(suite)),
	}
	for si, spec := range suite {
		var trials []trialOutcome
		for i, job := range jobs {
			if job.spec == si {
				trials = append(trials, outcomes[i])
			}
		}
		res := aggregate(spec, trials)
		inst.Results[si] = res
		if r.metrics != nil && res.Success {
			r.metrics.ObserveResult(spec.Name, m.Name(), res.Best)
		}
		r.log.Info("solver done",
			"instance", m.Name(), "solver", spec.Name, "diversity", res.Diversity,
			"elapsed", time.Duration(res.TimeMS)*time.Millisecond, "success", res.Success)
	}

	return inst, nil
}

// trialPhases groups job indices into the heuristic phase and the exact
// phase, in that order, keeping submission order inside each. A stopped exact
// search keeps a goroutine busy until gophersat returns, so exact trials run
// last to leave the heuristics' times untouched.
func trialPhases(suite []SolverSpec, jobs []trialJob) [][]int {
	var heuristic, exactJobs []int
	for i, job := range jobs {
		if suite[job.spec].Algorithm == mdp.AlgoExact {
			exactJobs = append(exactJobs, i)
		} else {
			heuristic = append(heuristic, i)
		}
	}

	return [][]int{heuristic, exactJobs}
}

func (r *Runner) runTrial(ctx context.Context, m *distance.Model, spec SolverSpec, seed uint64) trialOutcome {
	s, err := spec.Solver(seed)
	if err != nil {
		return trialOutcome{err: err}
	}

	start := time.Now()
	sol, err := s.Solve(ctx, m)
	out := trialOutcome{sol: sol, elapsed: time.Since(start), err: err}
	if sol.Selection != nil {
		if verr := mdp.Verify(m, sol, 1e-9); verr != nil {
			out.err = verr
		}
	}
	if r.metrics != nil {
		r.metrics.ObserveTrial(spec.Name, sol.Status.String(), out.elapsed)
	}
	if spec.Algorithm == mdp.AlgoExact && sol.Status != mdp.StatusOptimal {
		r.log.Warn("exact search still running in background",
			"instance", m.Name(), "solver", spec.Name, "status", sol.Status, "elapsed", out.elapsed)
	}

	return out
}

// succeeded reports a trial with a verified selection. A solver's own
// TimeLimit ends it with DeadlineExceeded and its best-so-far; that counts.
func (o trialOutcome) succeeded() bool {
	if o.sol.Selection == nil {
		return false
	}

	return o.err == nil || errors.Is(o.err, context.DeadlineExceeded)
}

func aggregate(spec SolverSpec, trials []trialOutcome) SolverResult {
	res := SolverResult{Name: spec.Name, Algorithm: spec.Algorithm.String(), Trials: len(trials)}

	var (
		divs    []float64
		totalMS int64
		best    = -1
	)
	for i, t := range trials {
		if !t.succeeded() {
			if t.err != nil && res.Error == "" {
				res.Error = t.err.Error()
			}
			continue
		}
		divs = append(divs, t.sol.Diversity)
		totalMS += t.elapsed.Milliseconds()
		if best < 0 || t.sol.Diversity > trials[best].sol.Diversity {
			best = i
		}
	}
	if best < 0 {
		if len(trials) > 0 {
			res.Status = trials[0].sol.Status.String()
		}
		return res
	}

	b := trials[best].sol
	res.Success = true
	res.Status = b.Status.String()
	res.Diversity = b.Diversity
	res.Selection = b.Selection
	res.TimeMS = totalMS / int64(len(divs))
	res.Mean, res.StdDev = stat.MeanStdDev(divs, nil)
	if len(divs) < 2 || math.IsNaN(res.StdDev) {
		res.StdDev = 0
	}
	res.Best = b.Diversity
	res.Worst = divs[0]
	for _, d := range divs[1:] {
		res.Worst = math.Min(res.Worst, d)
	}

	return res
}
