package exact

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/mdp"
)

// DefaultPenalty is the cardinality penalty P used by the batch runs.
const DefaultPenalty = 1000.0

// QUBOModel is the maximisation form
//
//	E(x) = Offset + Σ_i Q_ii x_i + Σ_{i<j} Q_ij x_i x_j
//
// of Σ_{i<j} d_ij x_i x_j − P(Σ x_i − k)², with x_i² = x_i folded into the
// diagonal: Q_ii = P(2k−1), Q_ij = d_ij − 2P, Offset = −P·k².
type QUBOModel struct {
	N, K    int
	Penalty float64
	Offset  float64
	Q       *mat.SymDense
}

// SafePenalty returns a penalty above the diversity of any subset, so every
// x with |x| ≠ k scores below every k-selection.
func SafePenalty(m *distance.Model) float64 { return m.Sum() + 1 }

// QUBO builds the penalty model of m. penalty must be positive and finite.
func QUBO(m *distance.Model, penalty float64) (*QUBOModel, error) {
	if m == nil {
		return nil, mdp.ErrNilModel
	}
	if !(penalty > 0) || math.IsInf(penalty, 0) {
		return nil, fmt.Errorf("%w: penalty=%g", mdp.ErrInvalidOptions, penalty)
	}
	n, k := m.N(), m.K()

	q := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		q.SetSym(i, i, penalty*float64(2*k-1))
		for j := i + 1; j < n; j++ {
			q.SetSym(i, j, m.At(i, j)-2*penalty)
		}
	}

	return &QUBOModel{
		N:       n,
		K:       k,
		Penalty: penalty,
		Offset:  -penalty * float64(k) * float64(k),
		Q:       q,
	}, nil
}

// Energy evaluates E(x); len(x) must be N.
func (q *QUBOModel) Energy(x []bool) float64 {
	e := q.Offset
	for i := 0; i < q.N; i++ {
		if !x[i] {
			continue
		}
		e += q.Q.At(i, i)
		for j := i + 1; j < q.N; j++ {
			if x[j] {
				e += q.Q.At(i, j)
			}
		}
	}

	return e
}

// Indicator converts a selection into the x vector of the model.
func (q *QUBOModel) Indicator(sel []int) []bool {
	x := make([]bool, q.N)
	for _, v := range sel {
		x[v] = true
	}

	return x
}

// WriteQBSolv writes the model in qbsolv format. qbsolv minimises, so every
// coefficient is negated; the constant offset has no place in the format and
// is emitted as a comment.
//
//	c offset <−Offset>
//	p qubo 0 <N> <#diagonal> <#couplers>
//	<i> <i> <−Q_ii>
//	<i> <j> <−Q_ij>   (i < j)
func (q *QUBOModel) WriteQBSolv(w io.Writer) error {
	var nodes, couplers int
	for i := 0; i < q.N; i++ {
		if q.Q.At(i, i) != 0 {
			nodes++
		}
		for j := i + 1; j < q.N; j++ {
			if q.Q.At(i, j) != 0 {
				couplers++
			}
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "c maxdiv n=%d k=%d penalty=%s\n", q.N, q.K, fmtFloat(q.Penalty))
	fmt.Fprintf(bw, "c offset %s\n", fmtFloat(-q.Offset))
	fmt.Fprintf(bw, "p qubo 0 %d %d %d\n", q.N, nodes, couplers)
	for i := 0; i < q.N; i++ {
		if v := q.Q.At(i, i); v != 0 {
			fmt.Fprintf(bw, "%d %d %s\n", i, i, fmtFloat(-v))
		}
	}
	for i := 0; i < q.N; i++ {
		for j := i + 1; j < q.N; j++ {
			if v := q.Q.At(i, j); v != 0 {
				fmt.Fprintf(bw, "%d %d %s\n", i, j, fmtFloat(-v))
			}
		}
	}

	return bw.Flush()
}

func fmtFloat(v float64) string {
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
