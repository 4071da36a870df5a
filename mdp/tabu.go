// Package mdp - tabu search.
//
// Each iteration scans the whole swap neighbourhood and applies the allowed
// swap with the largest gain, negative gains included. After the swap
// (out -> in) is applied at iteration t, its reverse (in -> out) is tabu for
// iterations t+1 ... t+TabuTenure. A tabu swap is still allowed when it
// would lift the current diversity above the best seen in the run by more
// than eps (aspiration). The best selection is tracked apart from the working
// one, replaced only on a gain above eps, and is what the run returns.
//
// The working diversity is accumulated from gains and drifts by a few ulps,
// so every comparison against best carries the eps margin; a move that only
// ties the best is never aspirated.
//
// Termination: MaxIters iterations (Exhausted), no allowed swap at all
// (Converged; only possible when k == n or every move is tabu), or ctx done.
package mdp

import (
	"context"
	"slices"
)

// tabuRecord forbids the swap (out -> in) until iteration expiry inclusive.
type tabuRecord struct {
	out, in int
	expiry  int
}

// tabuStep describes one applied move; used only by the trace hook.
type tabuStep struct {
	iter       int
	out, in    int
	gain       float64
	before     float64 // working diversity before the move
	best       float64 // best diversity before the move
	bestSel    []int   // incumbent before the move
	tabu       bool    // the move was forbidden
	aspiration bool    // before+gain > best+eps
}

// tabuHook observes applied moves. nil in production.
type tabuHook func(tabuStep)

// tabuList is keyed by the forbidden (out, in) pair.
type tabuList map[[2]int]tabuRecord

func (tl tabuList) forbid(out, in, expiry int) {
	tl[[2]int{out, in}] = tabuRecord{out: out, in: in, expiry: expiry}
}

func (tl tabuList) isTabu(out, in, iter int) bool {
	r, ok := tl[[2]int{out, in}]
	return ok && iter <= r.expiry
}

// prune drops records whose expiry has passed.
func (tl tabuList) prune(iter int) {
	for key, r := range tl {
		if r.expiry < iter {
			delete(tl, key)
		}
	}
}

func runTabu(ctx context.Context, st *swapState, cfg LocalSearchConfig, hook tabuHook) (Solution, error) {
	var (
		name     = cfg.Strategy.String()
		eps      = cfg.eps()
		tl       = make(tabuList, 2*cfg.TabuTenure+1)
		best     = st.value
		bestSel  = slices.Clone(st.sel)
		iter     int
		p, q     int
		out, in  int
		o, ic    int
		g, bestG float64
		found    bool
		tabu     bool
		aspire   bool
		moveTabu bool
	)

	finish := func(status Status, err error) (Solution, error) {
		slices.Sort(bestSel)
		return exportSolution(st.m, bestSel, name, status, iter), err
	}

	for iter = 0; iter < cfg.MaxIters; iter++ {
		if err := ctx.Err(); err != nil {
			return finish(StatusCancelled, err)
		}
		tl.prune(iter)

		found = false
		for p = 0; p < len(st.sel); p++ {
			o = st.sel[p]
			for q = 0; q < len(st.unsel); q++ {
				ic = st.unsel[q]
				g = st.gain(o, ic)
				tabu = tl.isTabu(o, ic, iter)
				if tabu && !(st.value+g > best+eps) {
					continue
				}
				if !found || g > bestG {
					found, bestG, out, in, moveTabu = true, g, o, ic, tabu
				}
			}
		}
		if !found {
			return finish(StatusConverged, nil)
		}

		if hook != nil {
			aspire = st.value+bestG > best+eps
			hook(tabuStep{
				iter: iter, out: out, in: in, gain: bestG,
				before: st.value, best: best, bestSel: slices.Clone(bestSel),
				tabu: moveTabu, aspiration: aspire,
			})
		}

		st.apply(out, in)
		tl.forbid(in, out, iter+cfg.TabuTenure)

		if st.value > best+eps {
			best = st.value
			bestSel = append(bestSel[:0], st.sel...)
		}
	}

	return finish(StatusExhausted, nil)
}
