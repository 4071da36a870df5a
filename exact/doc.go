// Package exact is the optimality-seeking backend of the solver suite.
//
// Two models of the same problem live here:
//
//   - Program: the Glover-Woolsey linearisation as a pseudo-boolean
//     optimisation (booleans x_i per element and y_ij per pair,
//     y_ij -> x_i, y_ij -> x_j, Σx = k, minimise Σ w_ij·¬y_ij with
//     w_ij = round(d_ij·Scale)). Solver runs it on gophersat and plugs into
//     mdp.NewSolver through Register.
//   - QUBOModel: the unconstrained quadratic penalty form
//     Σ d_ij x_i x_j − P(Σx − k)², exported in qbsolv text format for
//     external QUBO solvers and annealers.
//
// Scaling to integer weights makes the search optimal for the rounded
// instance; the reported diversity is always recomputed on the real
// distances from the recovered selection.
package exact
