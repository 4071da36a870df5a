// Package mdp - incremental swap state.
//
// swapState keeps, for every element v, contrib[v] = Σ_{s∈sel} d(v,s). With it
// the gain of replacing out by in is
//
//	contrib[in] − d(in,out) − contrib[out]
//
// which equals SwapGain(m, out, in, sel) term by term: contrib[in] counts
// d(in,out) once too many and contrib[out] contains d(out,out) = 0.
//
// Costs:
//   - gain: O(1).
//   - apply: O(n) (contrib refresh) + O(1) position bookkeeping.
//   - reset: O(n·k).
//
// A swapState belongs to exactly one run; it is never shared.
package mdp

import (
	"slices"

	"github.com/katalvlaran/maxdiv/distance"
)

type swapState struct {
	m       *distance.Model
	n, k    int
	sel     []int     // selected elements, len k
	unsel   []int     // complement, len n-k
	pos     []int     // pos[v] = index of v in sel or unsel
	in      []bool    // in[v] = v is selected
	contrib []float64 // Σ_{s∈sel} d(v,s)
	value   float64   // running diversity (drifts; recomputed on export)
}

func newSwapState(m *distance.Model) *swapState {
	n, k := m.N(), m.K()

	return &swapState{
		m:       m,
		n:       n,
		k:       k,
		sel:     make([]int, 0, k),
		unsel:   make([]int, 0, n-k),
		pos:     make([]int, n),
		in:      make([]bool, n),
		contrib: make([]float64, n),
	}
}

// reset loads selection (already validated) and rebuilds contrib.
func (st *swapState) reset(selection []int) {
	st.sel = append(st.sel[:0], selection...)
	st.unsel = st.unsel[:0]
	clear(st.in)
	clear(st.contrib)

	var p, v int
	for p, v = range st.sel {
		st.in[v] = true
		st.pos[v] = p
	}
	for v = 0; v < st.n; v++ {
		if !st.in[v] {
			st.pos[v] = len(st.unsel)
			st.unsel = append(st.unsel, v)
		}
	}

	var row []float64
	for _, s := range st.sel {
		row = st.m.Row(s)
		for v = 0; v < st.n; v++ {
			st.contrib[v] += row[v]
		}
	}
	st.value = Diversity(st.m, st.sel)
}

// gain scores the swap out -> in in O(1).
func (st *swapState) gain(out, in int) float64 {
	return st.contrib[in] - st.m.At(in, out) - st.contrib[out]
}

// apply performs the swap out -> in and returns its gain.
func (st *swapState) apply(out, in int) float64 {
	g := st.gain(out, in)

	p, q := st.pos[out], st.pos[in]
	st.sel[p] = in
	st.unsel[q] = out
	st.pos[in] = p
	st.pos[out] = q
	st.in[in] = true
	st.in[out] = false

	rin, rout := st.m.Row(in), st.m.Row(out)
	for v := 0; v < st.n; v++ {
		st.contrib[v] += rin[v] - rout[v]
	}
	st.value += g

	return g
}

// snapshot copies the current selection sorted ascending.
func (st *swapState) snapshot() []int {
	out := slices.Clone(st.sel)
	slices.Sort(out)

	return out
}

// firstImproving returns the first swap, in selected-major order, whose gain
// exceeds eps.
func (st *swapState) firstImproving(eps float64) (out, in int, ok bool) {
	var (
		p, q int
		base float64
		rout []float64
	)
	for p = 0; p < len(st.sel); p++ {
		out = st.sel[p]
		base = st.contrib[out]
		rout = st.m.Row(out)
		for q = 0; q < len(st.unsel); q++ {
			in = st.unsel[q]
			if st.contrib[in]-rout[in]-base > eps {
				return out, in, true
			}
		}
	}

	return -1, -1, false
}

// bestImproving returns the max-gain swap; ties keep the first in scan order.
// ok is false when no swap gains more than eps.
func (st *swapState) bestImproving(eps float64) (out, in int, ok bool) {
	var (
		p, q  int
		g     float64
		best  = eps
		base  float64
		rout  []float64
		o, ic int
	)
	out, in = -1, -1
	for p = 0; p < len(st.sel); p++ {
		o = st.sel[p]
		base = st.contrib[o]
		rout = st.m.Row(o)
		for q = 0; q < len(st.unsel); q++ {
			ic = st.unsel[q]
			g = st.contrib[ic] - rout[ic] - base
			if g > best {
				best, out, in, ok = g, o, ic, true
			}
		}
	}

	return out, in, ok
}
