package pruning

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/gokitt/internal/logging"
)

// SimplePruner keeps every phase-1 edge whose endpoints both passed the
// initial good-node filter; no node is ever explicitly deleted.
type SimplePruner struct{}

func (SimplePruner) Prune(input Input) Result {
	logging.Logf(input.Logger, logging.LevelInfo, "applying simple pruning strategy")

	numNodes := len(input.Graph.Prizes)
	edges := filterToGoodEndpoints(input.CoreResult.Phase1Edges, input.Graph, input.CoreResult.InitialNodeFilter)

	logging.Logf(input.Logger, logging.LevelDebug, "simple pruning: filtered phase1 edges down to %d", len(edges))

	nodeDeleted := bitset.New(uint(numNodes))
	nodes := buildFinalNodeSet(numNodes, nodeDeleted, input.CoreResult.InitialNodeFilter)

	logging.Logf(input.Logger, logging.LevelDebug, "simple pruning: derived %d nodes", len(nodes))
	return Result{Nodes: nodes, Edges: edges}
}
