package pruning

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/gokitt/internal/core"
	"github.com/kittclouds/gokitt/internal/logging"
)

// GWPruner walks the phase-1 edges in reverse (latest merge first),
// keeping an edge whenever the side it attaches is already known
// necessary or is itself the root, and otherwise flood-deleting the
// attached subtree. This mirrors the necessity propagation Goemans and
// Williamson describe for recovering a forest from the dual moat growth.
type GWPruner struct{}

func (GWPruner) Prune(input Input) Result {
	logger := input.Logger
	logging.Logf(logger, logging.LevelInfo, "applying GW pruning strategy")

	numNodes := len(input.Graph.Prizes)
	nodeDeleted := bitset.New(uint(numNodes))

	clusters := input.CoreResult.FinalClusterState
	markNecessaryFromNode := func(startNode int) {
		current := startNode
		if current < 0 || current >= len(clusters) {
			logging.Logf(logger, logging.LevelWarning, "attempted to mark necessary from invalid cluster index %d", startNode)
			return
		}
		for current < len(clusters) && !clusters[current].Necessary {
			clusters[current].Necessary = true
			if clusters[current].MergedInto != core.InvalidID {
				current = clusters[current].MergedInto
			} else {
				return
			}
		}
	}

	intermediateEdges := filterToGoodEndpoints(input.CoreResult.Phase1Edges, input.Graph, input.CoreResult.InitialNodeFilter)
	logging.Logf(logger, logging.LevelDebug, "GW pruning: starting with %d intermediate edges", len(intermediateEdges))

	if len(intermediateEdges) == 0 {
		logging.Logf(logger, logging.LevelInfo, "no intermediate edges after filtering, GW pruning results in empty graph")
		return Result{Nodes: buildFinalNodeSet(numNodes, nodeDeleted, input.CoreResult.InitialNodeFilter)}
	}

	adj := buildAdjacencyList(intermediateEdges, input.Graph)

	finalEdges := make([]int, 0, len(intermediateEdges))

	for i := len(intermediateEdges) - 1; i >= 0; i-- {
		edgeIdx := intermediateEdges[i]
		u, v := input.Graph.Edges[edgeIdx][0], input.Graph.Edges[edgeIdx][1]

		if nodeDeleted.Test(uint(u)) && nodeDeleted.Test(uint(v)) {
			continue
		}

		mergeEventID := input.CoreResult.EdgeInactiveMergeEventIDs[edgeIdx]

		if mergeEventID == core.InvalidID {
			finalEdges = append(finalEdges, edgeIdx)
			markNecessaryFromNode(u)
			markNecessaryFromNode(v)
			continue
		}

		mergeEvent := input.CoreResult.InactiveMergeEvents[mergeEventID]
		activeSideNode := mergeEvent.ActiveClusterNode
		inactiveSideNode := mergeEvent.InactiveClusterNode
		inactiveClusterIdx := mergeEvent.InactiveClusterIndex

		if clusters[inactiveClusterIdx].Necessary {
			finalEdges = append(finalEdges, edgeIdx)
			markNecessaryFromNode(activeSideNode)
			markNecessaryFromNode(inactiveSideNode)
			continue
		}

		inactiveIsRoot := inactiveSideNode == input.Graph.Root && input.Graph.Root != core.InvalidID
		if inactiveIsRoot {
			finalEdges = append(finalEdges, edgeIdx)
			markNecessaryFromNode(activeSideNode)
			markNecessaryFromNode(inactiveSideNode)
			continue
		}

		markNodesAsDeleted(nodeDeleted, adj, inactiveSideNode, activeSideNode, false)
	}

	for i, j := 0, len(finalEdges)-1; i < j; i, j = i+1, j-1 {
		finalEdges[i], finalEdges[j] = finalEdges[j], finalEdges[i]
	}

	logging.Logf(logger, logging.LevelDebug, "GW pruning: selected %d final edges", len(finalEdges))

	nodes := buildFinalNodeSet(numNodes, nodeDeleted, input.CoreResult.InitialNodeFilter)
	logging.Logf(logger, logging.LevelDebug, "GW pruning: derived %d final nodes", len(nodes))

	return Result{Nodes: nodes, Edges: finalEdges}
}
