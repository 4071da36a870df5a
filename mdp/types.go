package mdp

import (
	"fmt"
	"strings"
)

// Eps is the near-tie tolerance: a swap whose gain is <= Eps is treated as
// non-improving. Without it, equal-value swaps could alternate forever under
// floating-point noise.
const Eps = 1e-9

// Status is the terminal state of a run.
type Status int

const (
	// StatusUnknown is the zero value; no finished run reports it.
	StatusUnknown Status = iota

	// StatusConverged: no allowed move improves the incumbent by more than Eps.
	StatusConverged

	// StatusExhausted: the iteration, restart or generation budget ran out.
	StatusExhausted

	// StatusCancelled: the context expired; the Solution is the best seen so far.
	StatusCancelled

	// StatusOptimal: the result is proven optimal (exhaustive or exact).
	StatusOptimal

	// StatusFeasible: a valid k-selection from an exact backend stopped early.
	StatusFeasible
)

var statusNames = [...]string{"unknown", "converged", "exhausted", "cancelled", "optimal", "feasible"}

// String returns the lower-case status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}

	return statusNames[s]
}

// MarshalText encodes the status by name (JSON/YAML friendly).
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a status name produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, v := range statusNames {
		if v == name {
			*s = Status(i)
			return nil
		}
	}

	return fmt.Errorf("%w: unknown status %q", ErrInvalidOptions, name)
}

// Solution is the final answer of one run.
//
// Selection holds k distinct indices, sorted ascending. Diversity is always
// recomputed from Selection with Diversity before a solver returns, never
// carried over from incremental bookkeeping.
type Solution struct {
	Selection  []int   `json:"selection"`
	Diversity  float64 `json:"diversity"`
	Algorithm  string  `json:"algorithm"`
	Status     Status  `json:"status"`
	Iterations int     `json:"iterations"`
}
