// Package mdp - initial selections.
//
// Two modes:
//   - ConstructRandom: a uniformly random k-subset (shuffle [0,n), keep k).
//   - ConstructGreedyRandomized: k greedy steps over a Restricted Candidate
//     List. At each step every unselected candidate is scored by its marginal
//     contribution to the partial selection; with cMax/cMin the extremes the
//     RCL holds the candidates scoring ≥ cMax − alpha·(cMax − cMin), and one is
//     drawn uniformly. alpha = 0 is pure greedy (random only among exact
//     ties), alpha = 1 is pure random.
//
// Marginal contributions are maintained incrementally, so a full greedy
// construction costs O(n·k) instead of O(n·k²).
package mdp

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/maxdiv/distance"
)

// ConstructMode selects the construction rule.
type ConstructMode int

const (
	ConstructRandom ConstructMode = iota
	ConstructGreedyRandomized
)

// Construct returns a fresh selection of m.K() distinct indices. alpha is
// read only by ConstructGreedyRandomized and must lie in [0,1]. A nil rng
// uses the default deterministic stream.
func Construct(m *distance.Model, mode ConstructMode, alpha float64, rng *rand.Rand) ([]int, error) {
	if err := validateModel(m); err != nil {
		return nil, err
	}
	rng = orDefaultRand(rng)

	switch mode {
	case ConstructRandom:
		return randomSelection(m.N(), m.K(), rng), nil
	case ConstructGreedyRandomized:
		if err := validateAlpha(alpha); err != nil {
			return nil, err
		}
		c := newConstructor(m)
		return c.greedyRandomized(alpha, rng)
	default:
		return nil, fmt.Errorf("%w: construct mode %d", ErrInvalidOptions, int(mode))
	}
}

func randomSelection(n, k int, rng *rand.Rand) []int {
	p := rng.Perm(n)

	return p[:k:k]
}

// constructor owns the scratch buffers of repeated greedy constructions
// (one per GRASP run).
type constructor struct {
	m       *distance.Model
	avail   []int
	contrib []float64
	rcl     []int
}

func newConstructor(m *distance.Model) *constructor {
	return &constructor{
		m:       m,
		avail:   make([]int, 0, m.N()),
		contrib: make([]float64, m.N()),
		rcl:     make([]int, 0, m.N()),
	}
}

func (c *constructor) greedyRandomized(alpha float64, rng *rand.Rand) ([]int, error) {
	n, k := c.m.N(), c.m.K()
	sel := make([]int, 0, k)
	c.avail = c.avail[:0]
	for v := 0; v < n; v++ {
		c.avail = append(c.avail, v)
	}
	clear(c.contrib)

	var (
		cMax, cMin, thr, x float64
		i, pick, chosen    int
		row                []float64
	)
	for len(sel) < k {
		if len(c.avail) == 0 {
			return nil, fmt.Errorf("%w: %d of %d chosen", ErrConstructionExhausted, len(sel), k)
		}

		cMax, cMin = c.contrib[c.avail[0]], c.contrib[c.avail[0]]
		for _, v := range c.avail[1:] {
			x = c.contrib[v]
			if x > cMax {
				cMax = x
			}
			if x < cMin {
				cMin = x
			}
		}
		thr = cMax - alpha*(cMax-cMin)
		if alpha >= 1 {
			thr = cMin
		}

		c.rcl = c.rcl[:0]
		for i = 0; i < len(c.avail); i++ {
			if c.contrib[c.avail[i]] >= thr {
				c.rcl = append(c.rcl, i)
			}
		}

		pick = c.rcl[rng.IntN(len(c.rcl))]
		chosen = c.avail[pick]
		sel = append(sel, chosen)

		last := len(c.avail) - 1
		c.avail[pick] = c.avail[last]
		c.avail = c.avail[:last]

		row = c.m.Row(chosen)
		for _, v := range c.avail {
			c.contrib[v] += row[v]
		}
	}

	return sel, nil
}
