// Package mdp - diversity arithmetic.
//
// These three functions are the single source of truth for the objective:
// every strategy either calls them directly or uses the incremental state in
// state.go, whose swap score is algebraically identical to SwapGain.
//
// Contracts (not re-checked here, see validate.go):
//   - m is non-nil; every index is in [0, m.N()).
//   - sel has no duplicates.
package mdp

import "github.com/katalvlaran/maxdiv/distance"

// Diversity returns the sum of d(a,b) over all unordered pairs of sel.
//
// Complexity: O(k²).
func Diversity(m *distance.Model, sel []int) float64 {
	var (
		s    float64
		a, b int
		row  []float64
	)
	for a = 0; a < len(sel); a++ {
		row = m.Row(sel[a])
		for b = a + 1; b < len(sel); b++ {
			s += row[sel[b]]
		}
	}

	return s
}

// MarginalContribution returns Σ_{s∈sel} d(cand, s): the diversity gained by
// adding cand to sel.
//
// Complexity: O(k).
func MarginalContribution(m *distance.Model, cand int, sel []int) float64 {
	var c float64
	row := m.Row(cand)
	for _, s := range sel {
		c += row[s]
	}

	return c
}

// SwapGain returns the diversity change of replacing out (selected) by in
// (unselected): Σ_{s∈sel, s≠out} d(in,s) − d(out,s).
//
// Complexity: O(k).
func SwapGain(m *distance.Model, out, in int, sel []int) float64 {
	var g float64
	rin, rout := m.Row(in), m.Row(out)
	for _, s := range sel {
		if s == out {
			continue
		}
		g += rin[s] - rout[s]
	}

	return g
}
