package exact

import (
	"fmt"
	"math"
	"slices"

	"github.com/crillab/gophersat/solver"

	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/mdp"
)

// Program is the pseudo-boolean linearisation of one instance.
//
// Variable numbering follows the DIMACS convention: element i is variable
// i+1 and the p-th counted pair is variable n+1+p.
type Program struct {
	N, K        int
	Pairs       [][2]int          // pair of each y variable, i < j
	Constraints []solver.PBConstr // linking clauses and the cardinality
	CostLits    []solver.Lit      // ¬y_ij per pair
	CostWeights []int             // w_ij per pair
	TotalWeight int               // Σ w_ij; cost = TotalWeight − scaled diversity
}

// BuildProgram linearises m with integer weights round(d·scale). Pairs whose
// weight rounds to zero add nothing to the objective and are left out.
//
// Errors: mdp.ErrNilModel, mdp.ErrInvalidK, mdp.ErrInvalidOptions for a
// non-positive scale or an objective that overflows int.
func BuildProgram(m *distance.Model, scale float64) (*Program, error) {
	if m == nil {
		return nil, mdp.ErrNilModel
	}
	n, k := m.N(), m.K()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d n=%d", mdp.ErrInvalidK, k, n)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: Scale=%g", mdp.ErrInvalidOptions, scale)
	}

	p := &Program{N: n, K: k}

	xs := make([]int, n)
	ones := make([]int, n)
	for i := range xs {
		xs[i] = i + 1
		ones[i] = 1
	}
	p.Constraints = append(p.Constraints, solver.Eq(xs, ones, k)...)

	for i := 0; i < n; i++ {
		row := m.Row(i)
		for j := i + 1; j < n; j++ {
			w := math.Round(row[j] * scale)
			if w < 1 {
				continue
			}
			if w > float64(math.MaxInt32) || p.TotalWeight > math.MaxInt-int(w) {
				return nil, fmt.Errorf("%w: weight %g at (%d,%d) overflows, lower Scale", mdp.ErrInvalidOptions, w, i, j)
			}
			y := n + 1 + len(p.Pairs)
			p.Pairs = append(p.Pairs, [2]int{i, j})
			p.Constraints = append(p.Constraints,
				solver.PropClause(-y, i+1),
				solver.PropClause(-y, j+1),
			)
			p.CostLits = append(p.CostLits, solver.IntToLit(int32(-y)))
			p.CostWeights = append(p.CostWeights, int(w))
			p.TotalWeight += int(w)
		}
	}

	return p, nil
}

// Problem returns a fresh gophersat problem; the solver mutates what it is
// given, so every run needs its own.
func (p *Program) Problem() *solver.Problem {
	constrs := make([]solver.PBConstr, len(p.Constraints))
	for i, c := range p.Constraints {
		constrs[i] = solver.PBConstr{
			Lits:    append([]int(nil), c.Lits...),
			Weights: append([]int(nil), c.Weights...),
			AtLeast: c.AtLeast,
		}
	}
	pb := solver.ParsePBConstrs(constrs)
	if len(p.CostLits) > 0 {
		pb.SetCostFunc(append([]solver.Lit(nil), p.CostLits...), append([]int(nil), p.CostWeights...))
	}

	return pb
}

// Selection reads the chosen elements (sorted) out of a gophersat model.
func (p *Program) Selection(model []bool) []int {
	sel := make([]int, 0, p.K)
	for i := 0; i < p.N && i < len(model); i++ {
		if model[i] {
			sel = append(sel, i)
		}
	}

	return sel
}

// UpperBound returns an admissible bound on the best k-diversity of m:
// every selected element contributes at most its k−1 largest distances,
// and only the k best such contributions can be selected. The pairwise sum
// counts each pair twice, hence the final halving.
func UpperBound(m *distance.Model) float64 {
	n, k := m.N(), m.K()
	if k < 2 {
		return 0
	}
	best := make([]float64, n)
	scratch := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		scratch = scratch[:0]
		for j, d := range m.Row(i) {
			if j != i {
				scratch = append(scratch, d)
			}
		}
		best[i] = topSum(scratch, k-1)
	}

	return topSum(best, k) / 2
}

// topSum sums the c largest values of xs; xs is reordered.
func topSum(xs []float64, c int) float64 {
	slices.Sort(xs)
	var s float64
	for i := len(xs) - 1; i >= 0 && i >= len(xs)-c; i-- {
		s += xs[i]
	}

	return s
}
