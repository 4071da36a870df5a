// Package mdp solves the Maximum Diversity Problem: pick exactly k of n
// elements so that the sum of pairwise distances inside the pick (its
// diversity) is as large as possible.
//
// What:
//   - Objective arithmetic: Diversity, MarginalContribution, SwapGain.
//   - Construct: random or greedy-randomized (RCL) initial selections.
//   - LocalSearch: first improvement, best improvement, tabu search with
//     aspiration over the one-swap neighbourhood.
//   - Grasp: repeated greedy-randomized construction + best improvement.
//   - GeneticSearch: tournament selection, cut-point crossover, swap
//     mutation, elitism and periodic best-improvement polishing.
//   - Exhaustive: lexicographic enumeration, the ground truth for small n.
//   - Solver / NewSolver / Solve: one capability over every strategy; exact
//     backends plug in through RegisterExact (see package exact).
//
// Determinism:
//   - No global randomness. Every randomized entry point takes a *rand.Rand
//     (math/rand/v2); solvers build theirs from Options.Seed.
//   - Scan orders are fixed; ties keep the first candidate found.
//
// Numeric policy:
//   - A move improves only when its gain exceeds Eps (1e-9).
//   - Reported Diversity is always recomputed from the Selection.
//
// Cancellation:
//   - Every iteration loop polls its context. A cancelled run returns its best
//     selection so far with Status Cancelled and ctx.Err().
//
// The package does not log and never panics on user input; failures are the
// sentinel errors of errors.go.
package mdp
