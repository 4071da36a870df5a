package bench

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/maxdiv/exact"
	"github.com/katalvlaran/maxdiv/mdp"
)

// Config drives one benchmark experiment. It is read from YAML on top of
// DefaultConfig, so a file only needs the keys it changes.
type Config struct {
	BaseDir     string     `yaml:"base_dir" json:"base_dir"`
	Categories  []string   `yaml:"categories" json:"categories"` // subdirectories of BaseDir, e.g. GKD-a
	OutputDir   string     `yaml:"output_dir" json:"output_dir"`
	Trials      int        `yaml:"trials" json:"trials"`
	Seed        uint64     `yaml:"seed" json:"seed"`
	Parallelism int        `yaml:"parallelism" json:"parallelism"`
	Thresholds  Thresholds `yaml:"thresholds" json:"thresholds"`
	Suites      Suites     `yaml:"suites" json:"suites"`
}

// Thresholds pick the suite by instance size: n > Large runs Fast,
// n > Medium runs Medium, anything else runs Full.
type Thresholds struct {
	Large  int `yaml:"large" json:"large"`
	Medium int `yaml:"medium" json:"medium"`
}

// Suites lists the solvers run per size class.
type Suites struct {
	Fast   []SolverSpec `yaml:"fast" json:"fast"`
	Medium []SolverSpec `yaml:"medium" json:"medium"`
	Full   []SolverSpec `yaml:"full" json:"full"`
}

// SolverSpec is one named solver configuration. Only the block matching
// Algorithm is used; absent keys keep their package defaults.
type SolverSpec struct {
	Name        string          `yaml:"name" json:"name"`
	Algorithm   mdp.Algorithm   `yaml:"algorithm" json:"algorithm"`
	TimeLimit   time.Duration   `yaml:"time_limit" json:"time_limit"`
	LocalSearch LocalSearchSpec `yaml:"local_search" json:"local_search"`
	Grasp       GraspSpec       `yaml:"grasp" json:"grasp"`
	Genetic     GeneticSpec     `yaml:"genetic" json:"genetic"`
	Exact       ExactSpec       `yaml:"exact" json:"exact"`
}

type LocalSearchSpec struct {
	MaxIters   int `yaml:"max_iters" json:"max_iters"`
	TabuTenure int `yaml:"tabu_tenure" json:"tabu_tenure"`
}

type GraspSpec struct {
	Iterations       int     `yaml:"iterations" json:"iterations"`
	Alpha            float64 `yaml:"alpha" json:"alpha"`
	LocalSearchIters int     `yaml:"local_search_iters" json:"local_search_iters"`
}

type GeneticSpec struct {
	PopulationSize int     `yaml:"population_size" json:"population_size"`
	Generations    int     `yaml:"generations" json:"generations"`
	CrossoverRate  float64 `yaml:"crossover_rate" json:"crossover_rate"`
	MutationRate   float64 `yaml:"mutation_rate" json:"mutation_rate"`
	EliteSize      int     `yaml:"elite_size" json:"elite_size"`
	TournamentSize int     `yaml:"tournament_size" json:"tournament_size"`
	PolishEvery    int     `yaml:"polish_every" json:"polish_every"`
}

type ExactSpec struct {
	Gap   float64 `yaml:"gap" json:"gap"`
	Scale float64 `yaml:"scale" json:"scale"`
}

// NewSolverSpec returns a spec for algo with every block at its defaults.
func NewSolverSpec(name string, algo mdp.Algorithm) SolverSpec {
	lsc := mdp.DefaultLocalSearchConfig()
	grc := mdp.DefaultGraspConfig()
	gac := mdp.DefaultGeneticConfig()
	exc := exact.DefaultConfig()

	return SolverSpec{
		Name:        name,
		Algorithm:   algo,
		LocalSearch: LocalSearchSpec{MaxIters: lsc.MaxIters, TabuTenure: lsc.TabuTenure},
		Grasp:       GraspSpec{Iterations: grc.Iterations, Alpha: grc.Alpha, LocalSearchIters: grc.LocalSearchIters},
		Genetic: GeneticSpec{
			PopulationSize: gac.PopulationSize,
			Generations:    gac.Generations,
			CrossoverRate:  gac.CrossoverRate,
			MutationRate:   gac.MutationRate,
			EliteSize:      gac.EliteSize,
			TournamentSize: gac.TournamentSize,
			PolishEvery:    gac.PolishEvery,
		},
		Exact: ExactSpec{Gap: exc.Gap, Scale: exc.Scale},
	}
}

// UnmarshalYAML fills keys absent from the node with package defaults.
func (s *SolverSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain SolverSpec
	p := plain(NewSolverSpec("", mdp.AlgoGRASP))
	if err := n.Decode(&p); err != nil {
		return err
	}
	*s = SolverSpec(p)
	if s.Name == "" {
		s.Name = s.Algorithm.String()
	}

	return nil
}

// Options converts the spec to mdp.Options for heuristic algorithms.
func (s SolverSpec) Options(seed uint64) mdp.Options {
	opts := mdp.DefaultOptions()
	opts.Algorithm = s.Algorithm
	opts.Seed = seed
	opts.TimeLimit = s.TimeLimit
	opts.LocalSearch.MaxIters = s.LocalSearch.MaxIters
	opts.LocalSearch.TabuTenure = s.LocalSearch.TabuTenure
	opts.Grasp = mdp.GraspConfig{
		Iterations:       s.Grasp.Iterations,
		Alpha:            s.Grasp.Alpha,
		LocalSearchIters: s.Grasp.LocalSearchIters,
	}
	opts.Genetic = mdp.GeneticConfig{
		PopulationSize: s.Genetic.PopulationSize,
		Generations:    s.Genetic.Generations,
		CrossoverRate:  s.Genetic.CrossoverRate,
		MutationRate:   s.Genetic.MutationRate,
		EliteSize:      s.Genetic.EliteSize,
		TournamentSize: s.Genetic.TournamentSize,
		PolishEvery:    s.Genetic.PolishEvery,
	}

	return opts
}

// ExactConfig converts the spec to the exact backend configuration.
// TimeLimit 0 keeps the backend default.
func (s SolverSpec) ExactConfig() exact.Config {
	cfg := exact.DefaultConfig()
	cfg.Gap = s.Exact.Gap
	cfg.Scale = s.Exact.Scale
	if s.TimeLimit > 0 {
		cfg.TimeLimit = s.TimeLimit
	}

	return cfg
}

// Solver builds the solver described by s. Exact specs bypass the mdp
// registry so each spec keeps its own gap and scale.
func (s SolverSpec) Solver(seed uint64) (mdp.Solver, error) {
	if s.Algorithm == mdp.AlgoExact {
		return exact.New(s.ExactConfig())
	}

	return mdp.NewSolver(s.Options(seed))
}

func (s SolverSpec) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: solver without a name", ErrInvalidConfig)
	}
	if _, err := s.Solver(0); err != nil {
		return fmt.Errorf("%w: solver %q: %w", ErrInvalidConfig, s.Name, err)
	}

	return nil
}

func ls(name string, algo mdp.Algorithm, iters int) SolverSpec {
	s := NewSolverSpec(name, algo)
	s.LocalSearch.MaxIters = iters

	return s
}

func grasp(iters, lsIters int) SolverSpec {
	s := NewSolverSpec("GRASP", mdp.AlgoGRASP)
	s.Grasp.Iterations, s.Grasp.Alpha, s.Grasp.LocalSearchIters = iters, 0.3, lsIters

	return s
}

func ga(pop, gens, elite int) SolverSpec {
	s := NewSolverSpec("GA", mdp.AlgoGenetic)
	s.Genetic.PopulationSize, s.Genetic.Generations, s.Genetic.EliteSize = pop, gens, elite
	s.Genetic.CrossoverRate, s.Genetic.MutationRate = 0.8, 0.15

	return s
}

func exactSpec(limit time.Duration) SolverSpec {
	s := NewSolverSpec("Exact", mdp.AlgoExact)
	s.TimeLimit = limit

	return s
}

// DefaultConfig reproduces the reference batch: the MDPLIB directories under
// examples_from_mdp, one trial, and three suites split at n > 1000 / n > 500.
func DefaultConfig() Config {
	tabu := ls("Tabu", mdp.AlgoTabu, 1000)
	tabu.LocalSearch.TabuTenure = 10

	return Config{
		BaseDir:     "examples_from_mdp",
		Categories:  []string{"GKD-a", "GKD-b", "MDG-a", "MDG-b", "MDG-c", "SOM-a", "SOM-b"},
		OutputDir:   ".",
		Trials:      1,
		Seed:        1,
		Parallelism: 1,
		Thresholds:  Thresholds{Large: 1000, Medium: 500},
		Suites: Suites{
			Fast: []SolverSpec{
				grasp(20, 200),
				ls("LS-First", mdp.AlgoFirstImprovement, 1000),
				ga(15, 20, 2),
			},
			Medium: []SolverSpec{
				exactSpec(120 * time.Second),
				grasp(30, 300),
				ls("LS-Best", mdp.AlgoBestImprovement, 2000),
				ga(20, 30, 2),
			},
			Full: []SolverSpec{
				exactSpec(300 * time.Second),
				grasp(50, 500),
				ls("LS-First", mdp.AlgoFirstImprovement, 5000),
				ls("LS-Best", mdp.AlgoBestImprovement, 5000),
				tabu,
				ga(30, 50, 3),
			},
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks sizes and every solver spec.
func (c Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials=%d < 1", ErrInvalidConfig, c.Trials)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism=%d < 1", ErrInvalidConfig, c.Parallelism)
	}
	if c.Thresholds.Medium > c.Thresholds.Large {
		return fmt.Errorf("%w: medium threshold %d above large %d", ErrInvalidConfig, c.Thresholds.Medium, c.Thresholds.Large)
	}
	for _, suite := range [][]SolverSpec{c.Suites.Fast, c.Suites.Medium, c.Suites.Full} {
		for _, s := range suite {
			if err := s.validate(); err != nil {
				return err
			}
		}
	}

	return nil
}

// SuiteFor returns the solvers for an instance with n elements.
func (c Config) SuiteFor(n int) []SolverSpec {
	switch {
	case n > c.Thresholds.Large:
		return c.Suites.Fast
	case n > c.Thresholds.Medium:
		return c.Suites.Medium
	default:
		return c.Suites.Full
	}
}

// SolverNames lists the distinct spec names, Full suite first; it is the
// column order of the summary table.
func (c Config) SolverNames() []string {
	var names []string
	seen := map[string]bool{}
	for _, suite := range [][]SolverSpec{c.Suites.Full, c.Suites.Medium, c.Suites.Fast} {
		for _, s := range suite {
			if !seen[s.Name] {
				seen[s.Name] = true
				names = append(names, s.Name)
			}
		}
	}

	return names
}
