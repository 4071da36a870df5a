package mdp

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/maxdiv/distance"
)

// MaxExhaustiveSubsets bounds C(n,k) for Exhaustive.
const MaxExhaustiveSubsets = 5_000_000

// exhaustiveCheckEvery is the leaf interval between ctx polls.
const exhaustiveCheckEvery = 4096

// Binomial returns C(n,k), saturating at math.MaxInt64 on overflow.
func Binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	var c int64 = 1
	for i := 1; i <= k; i++ {
		num := int64(n - k + i)
		if c > math.MaxInt64/num {
			return math.MaxInt64
		}
		// c·num is divisible by i at every step.
		c = c * num / int64(i)
	}

	return c
}

// Exhaustive enumerates every k-subset in lexicographic order and returns
// the first one of maximal diversity (Status Optimal). Partial sums are
// extended incrementally, so each subset costs O(k) on average.
//
// Errors: ErrInstanceTooLarge when C(n,k) > MaxExhaustiveSubsets;
// ctx.Err() with the best subset so far (Status Cancelled).
func Exhaustive(ctx context.Context, m *distance.Model) (Solution, error) {
	if err := validateModel(m); err != nil {
		return Solution{}, err
	}
	n, k := m.N(), m.K()
	if c := Binomial(n, k); c > MaxExhaustiveSubsets {
		return Solution{}, fmt.Errorf("%w: C(%d,%d)=%d > %d", ErrInstanceTooLarge, n, k, c, MaxExhaustiveSubsets)
	}

	var (
		cur     = make([]int, 0, k)
		best    = make([]int, 0, k)
		bestDiv = math.Inf(-1)
		leaves  int
		err     error
	)

	var walk func(from int, partial float64) bool
	walk = func(from int, partial float64) bool {
		if len(cur) == k {
			leaves++
			if partial > bestDiv {
				bestDiv = partial
				best = append(best[:0], cur...)
			}
			if leaves%exhaustiveCheckEvery == 0 {
				if err = ctx.Err(); err != nil {
					return false
				}
			}
			return true
		}
		// leave room for the remaining k-len(cur)-1 picks
		for v := from; v <= n-(k-len(cur)); v++ {
			add := MarginalContribution(m, v, cur)
			cur = append(cur, v)
			ok := walk(v+1, partial+add)
			cur = cur[:len(cur)-1]
			if !ok {
				return false
			}
		}
		return true
	}

	status := StatusOptimal
	if !walk(0, 0) {
		status = StatusCancelled
	}
	sel := slices.Clone(best)

	return exportSolution(m, sel, "exhaustive", status, leaves), err
}
