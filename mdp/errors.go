package mdp

import "errors"

// Sentinel errors. Every message is prefixed with "mdp: ..."; context is added
// with fmt.Errorf("%w: ...") at the boundary that knows it, and callers match
// with errors.Is. "No improving move" is a Status, never an error.
var (
	// ErrNilModel indicates a nil *distance.Model.
	ErrNilModel = errors.New("mdp: model is nil")

	// ErrInvalidK is returned before any run when k == 0 or k > n.
	ErrInvalidK = errors.New("mdp: k must satisfy 1 <= k <= n")

	// ErrInvalidOptions reports an out-of-range knob (alpha, rates, sizes, tenure).
	ErrInvalidOptions = errors.New("mdp: invalid options")

	// ErrInvalidSelection reports a selection that is not k distinct indices in [0,n).
	ErrInvalidSelection = errors.New("mdp: invalid selection")

	// ErrDiversityMismatch reports a Solution whose Diversity is not the
	// pairwise sum of its Selection.
	ErrDiversityMismatch = errors.New("mdp: diversity does not match selection")

	// ErrConstructionExhausted reports that the candidate pool emptied before
	// k elements were chosen.
	ErrConstructionExhausted = errors.New("mdp: candidate pool exhausted during construction")

	// ErrNoSolution is returned by solvers that produced no selection at all
	// within their budget (the exact adapter in particular).
	ErrNoSolution = errors.New("mdp: no solution within budget")

	// ErrSolverUnavailable is returned for Exact when no backend is registered.
	ErrSolverUnavailable = errors.New("mdp: solver backend not registered")

	// ErrUnsupportedAlgorithm is returned for an unknown Algorithm value or name.
	ErrUnsupportedAlgorithm = errors.New("mdp: unsupported algorithm")

	// ErrInstanceTooLarge is returned by the exhaustive solver when C(n,k)
	// exceeds MaxExhaustiveSubsets.
	ErrInstanceTooLarge = errors.New("mdp: instance too large for exhaustive enumeration")
)
