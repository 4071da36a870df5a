package mdp_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/mdp"
)

// ExampleSolve selects the two most mutually distant of four elements.
func ExampleSolve() {
	m, _ := distance.NewFromPairs(4, 2, []distance.Pair{
		{I: 0, J: 1, D: 1}, {I: 0, J: 2, D: 5}, {I: 0, J: 3, D: 2},
		{I: 1, J: 2, D: 3}, {I: 1, J: 3, D: 4}, {I: 2, J: 3, D: 6},
	})

	opts := mdp.DefaultOptions()
	opts.Algorithm = mdp.AlgoBestImprovement

	sol, err := mdp.Solve(context.Background(), m, opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sol.Selection, sol.Diversity, sol.Status)
	// Output: [2 3] 6 converged
}

// ExampleLocalSearch runs first improvement from a chosen start.
func ExampleLocalSearch() {
	m, _ := distance.NewFromPairs(4, 2, []distance.Pair{
		{I: 0, J: 1, D: 1}, {I: 0, J: 2, D: 5}, {I: 0, J: 3, D: 2},
		{I: 1, J: 2, D: 3}, {I: 1, J: 3, D: 4}, {I: 2, J: 3, D: 6},
	})

	cfg := mdp.DefaultLocalSearchConfig()
	cfg.Strategy = mdp.FirstImprovement

	sol, _ := mdp.LocalSearch(context.Background(), m, []int{0, 1}, cfg)
	fmt.Printf("%v %.0f\n", sol.Selection, sol.Diversity)
	// Output: [2 3] 6
}
