// Package maxdiv is a toolkit for the Maximum Diversity Problem: from n
// elements with pairwise distances, choose exactly k so that the sum of
// distances inside the selection is as large as possible.
//
// 🚀 What is inside?
//
//	• distance/ - immutable symmetric distance model, MDPLIB reader/writer,
//	              GKD/MDG/SOM-style instance generators
//	• mdp/      - diversity arithmetic, greedy-randomized construction,
//	              first/best-improvement and tabu local search, GRASP,
//	              a genetic algorithm, exhaustive enumeration and the
//	              unified Solver interface
//	• exact/    - pseudo-boolean linearisation solved with gophersat,
//	              QUBO export for external annealers
//	• bench/    - YAML-driven batch comparison over instance directories,
//	              JSON results, summary tables, Prometheus metrics
//	• cmd/mdpbench - the command-line front end
//
// ✨ Guarantees
//
//   - Every returned selection holds exactly k distinct indices and its
//     diversity is recomputed from scratch before it leaves a solver.
//   - Identical seeds give identical results; no global random state.
//   - Long runs honour context cancellation and return their best so far.
//
// Quick example:
//
//	m, _ := distance.Load("GKD-a_1_n10_m2.txt")
//	sol, _ := mdp.Solve(ctx, m, mdp.DefaultOptions())
//	fmt.Println(sol.Selection, sol.Diversity)
//
//	go install github.com/katalvlaran/maxdiv/cmd/mdpbench@latest
package maxdiv
