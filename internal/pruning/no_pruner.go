package pruning

import "github.com/kittclouds/gokitt/internal/logging"

// NonePruner passes the phase-1 result through unchanged, deriving only
// the node set: every node touched by a kept edge, plus any initially-good
// node that no kept edge happens to touch.
type NonePruner struct{}

func (NonePruner) Prune(input Input) Result {
	logging.Logf(input.Logger, logging.LevelInfo, "applying none pruning strategy")

	result := Result{Edges: input.CoreResult.Phase1Edges}

	numNodes := len(input.Graph.Prizes)
	included := make([]bool, numNodes)
	result.Nodes = make([]int, 0, numNodes)

	for _, edgeIdx := range result.Edges {
		u, v := input.Graph.Edges[edgeIdx][0], input.Graph.Edges[edgeIdx][1]
		if !included[u] {
			included[u] = true
			result.Nodes = append(result.Nodes, u)
		}
		if !included[v] {
			included[v] = true
			result.Nodes = append(result.Nodes, v)
		}
	}

	for i := 0; i < numNodes; i++ {
		if input.CoreResult.InitialNodeFilter.Test(uint(i)) && !included[i] {
			result.Nodes = append(result.Nodes, i)
		}
	}

	logging.Logf(input.Logger, logging.LevelDebug, "none pruning: %d edges, %d nodes", len(result.Edges), len(result.Nodes))
	return result
}
