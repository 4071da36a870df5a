// Package mdp - genetic algorithm with periodic local-search polishing.
//
// Generation step:
//  1. sort the population by fitness, descending (stable);
//  2. copy the EliteSize fittest unchanged;
//  3. refill with offspring: two tournament winners (TournamentSize draws
//     with replacement), crossover with probability CrossoverRate (else the
//     fitter winner is cloned), swap mutation with probability MutationRate;
//  4. every PolishEvery generations (generation 0 included) the fittest
//     individual is run through best-improvement to convergence and replaced
//     when that strictly improves it.
//
// Crossover keeps a random prefix of parent 1 (cut in [1,k)) and appends the
// elements of parent 2 not yet present, in parent-2 order. Parent 2 holds k
// distinct elements and at most cut of them are in the prefix, so this alone
// reaches k; a child that is still short (only possible with malformed
// parents) is completed greedily by marginal contribution instead of at
// random. Offspring always hold exactly k distinct elements.
//
// ctx is polled once per generation; a cancelled run returns the fittest
// individual so far with ctx.Err().
package mdp

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"

	"github.com/katalvlaran/maxdiv/distance"
)

// Defaults for GeneticConfig.
const (
	DefaultPopulationSize = 50
	DefaultGenerations    = 100
	DefaultCrossoverRate  = 0.8
	DefaultMutationRate   = 0.1
	DefaultEliteSize      = 5
	DefaultTournamentSize = 3
	DefaultPolishEvery    = 10
)

// GeneticConfig configures GeneticSearch.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	EliteSize      int
	TournamentSize int
	PolishEvery    int // 0 disables polishing
}

// DefaultGeneticConfig returns the documented defaults.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: DefaultPopulationSize,
		Generations:    DefaultGenerations,
		CrossoverRate:  DefaultCrossoverRate,
		MutationRate:   DefaultMutationRate,
		EliteSize:      DefaultEliteSize,
		TournamentSize: DefaultTournamentSize,
		PolishEvery:    DefaultPolishEvery,
	}
}

type individual struct {
	sel     []int
	fitness float64
}

type geneticRun struct {
	m    *distance.Model
	cfg  GeneticConfig
	rng  *rand.Rand
	n, k int
	mark []bool    // membership scratch for crossover/mutation
	gain []float64 // fillGreedy scratch
	free []int     // mutation candidate scratch
	st   *swapState
}

// GeneticSearch runs the genetic algorithm and returns the fittest individual.
func GeneticSearch(ctx context.Context, m *distance.Model, cfg GeneticConfig, rng *rand.Rand) (Solution, error) {
	if err := validateModel(m); err != nil {
		return Solution{}, err
	}
	if err := validateGeneticConfig(cfg); err != nil {
		return Solution{}, err
	}

	g := &geneticRun{
		m:    m,
		cfg:  cfg,
		rng:  orDefaultRand(rng),
		n:    m.N(),
		k:    m.K(),
		mark: make([]bool, m.N()),
		gain: make([]float64, m.N()),
		free: make([]int, 0, m.N()),
		st:   newSwapState(m),
	}

	return g.run(ctx)
}

func (g *geneticRun) run(ctx context.Context) (Solution, error) {
	pop := make([]individual, g.cfg.PopulationSize)
	for i := range pop {
		sel := randomSelection(g.n, g.k, g.rng)
		pop[i] = individual{sel: sel, fitness: Diversity(g.m, sel)}
	}
	next := make([]individual, 0, g.cfg.PopulationSize)

	var gen int
	for gen = 0; gen < g.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return g.export(pop, StatusCancelled, gen), err
		}

		slices.SortStableFunc(pop, func(a, b individual) int { return cmp.Compare(b.fitness, a.fitness) })

		next = append(next[:0], pop[:g.cfg.EliteSize]...)
		for len(next) < g.cfg.PopulationSize {
			p1 := g.tournament(pop)
			p2 := g.tournament(pop)

			var child []int
			if g.rng.Float64() < g.cfg.CrossoverRate {
				child = g.crossover(p1.sel, p2.sel)
			} else {
				if p2.fitness > p1.fitness {
					p1 = p2
				}
				child = slices.Clone(p1.sel)
			}
			if g.rng.Float64() < g.cfg.MutationRate {
				g.mutate(child)
			}
			next = append(next, individual{sel: child, fitness: Diversity(g.m, child)})
		}
		pop, next = next, pop

		if g.cfg.PolishEvery > 0 && gen%g.cfg.PolishEvery == 0 {
			if err := g.polish(ctx, pop); err != nil {
				return g.export(pop, StatusCancelled, gen+1), err
			}
		}
	}

	return g.export(pop, StatusExhausted, gen), nil
}

// tournament draws TournamentSize individuals with replacement and returns
// the fittest; ties keep the earliest draw.
func (g *geneticRun) tournament(pop []individual) individual {
	best := pop[g.rng.IntN(len(pop))]
	for i := 1; i < g.cfg.TournamentSize; i++ {
		c := pop[g.rng.IntN(len(pop))]
		if c.fitness > best.fitness {
			best = c
		}
	}

	return best
}

// crossover builds a child from a prefix of p1 and the order of p2.
// For k < 2 no cut point exists and p1 is cloned.
func (g *geneticRun) crossover(p1, p2 []int) []int {
	if g.k < 2 {
		return slices.Clone(p1)
	}
	cut := 1 + g.rng.IntN(g.k-1)

	return g.crossoverAt(p1, p2, cut)
}

func (g *geneticRun) crossoverAt(p1, p2 []int, cut int) []int {
	child := make([]int, 0, g.k)
	for _, v := range p1[:cut] {
		child = append(child, v)
		g.mark[v] = true
	}
	for _, v := range p2 {
		if len(child) == g.k {
			break
		}
		if !g.mark[v] {
			child = append(child, v)
			g.mark[v] = true
		}
	}
	if len(child) < g.k {
		child = g.fillGreedy(child)
	}
	for _, v := range child {
		g.mark[v] = false
	}

	return child
}

// fillGreedy appends, one at a time, the unused element with the largest
// marginal contribution to the child (lowest index on ties); marks are set.
func (g *geneticRun) fillGreedy(child []int) []int {
	clear(g.gain)
	for _, s := range child {
		row := g.m.Row(s)
		for v := 0; v < g.n; v++ {
			g.gain[v] += row[v]
		}
	}
	for len(child) < g.k {
		pick := -1
		for v := 0; v < g.n; v++ {
			if !g.mark[v] && (pick < 0 || g.gain[v] > g.gain[pick]) {
				pick = v
			}
		}
		child = append(child, pick)
		g.mark[pick] = true
		row := g.m.Row(pick)
		for v := 0; v < g.n; v++ {
			g.gain[v] += row[v]
		}
	}

	return child
}

// mutate removes a uniformly random element and appends a uniformly random
// element not in the remaining child (possibly the removed one).
func (g *geneticRun) mutate(child []int) {
	idx := g.rng.IntN(len(child))
	copy(child[idx:], child[idx+1:])
	rest := child[:len(child)-1]

	for _, v := range rest {
		g.mark[v] = true
	}
	g.free = g.free[:0]
	for v := 0; v < g.n; v++ {
		if !g.mark[v] {
			g.free = append(g.free, v)
		}
	}
	for _, v := range rest {
		g.mark[v] = false
	}

	child[len(child)-1] = g.free[g.rng.IntN(len(g.free))]
}

// polish improves the fittest individual in place.
func (g *geneticRun) polish(ctx context.Context, pop []individual) error {
	bi := fittest(pop)
	g.st.reset(pop[bi].sel)
	_, _, err := descend(ctx, g.st, BestImprovement, 0, Eps)

	d := Diversity(g.m, g.st.sel)
	if d > pop[bi].fitness {
		pop[bi] = individual{sel: slices.Clone(g.st.sel), fitness: d}
	}

	return err
}

func fittest(pop []individual) int {
	bi := 0
	for i := 1; i < len(pop); i++ {
		if pop[i].fitness > pop[bi].fitness {
			bi = i
		}
	}

	return bi
}

func (g *geneticRun) export(pop []individual, status Status, gens int) Solution {
	sel := slices.Clone(pop[fittest(pop)].sel)
	slices.Sort(sel)

	return exportSolution(g.m, sel, "genetic", status, gens)
}
