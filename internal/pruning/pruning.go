// Package pruning implements the four post-processing strategies that turn
// the growth simulator's phase-1 edge set into a final forest: None (pass
// through), Simple (drop edges touching a filtered-out endpoint), GW
// (necessity propagation over the merge forest), and Strong (per-component
// re-rooted payoff pruning).
package pruning

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/gokitt/internal/core"
	"github.com/kittclouds/gokitt/internal/logging"
)

// Input bundles everything a Pruner needs: the original graph, the growth
// simulator's intermediate result, and a logging sink.
type Input struct {
	Graph      core.GraphData
	CoreResult core.Result
	Logger     logging.Logger
}

// Result is a pruner's final node and edge selection.
type Result struct {
	Nodes []int
	Edges []int
}

// Pruner turns a growth simulator's intermediate result into a final forest.
type Pruner interface {
	Prune(input Input) Result
}

type neighbor struct {
	node int
	cost float64
}

// buildFinalNodeSet keeps nodes that passed the initial good-node filter
// and were not subsequently deleted, in node-index order.
func buildFinalNodeSet(numNodes int, nodeDeleted *bitset.BitSet, initialNodeFilter *bitset.BitSet) []int {
	final := make([]int, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		if initialNodeFilter.Test(uint(i)) && !nodeDeleted.Test(uint(i)) {
			final = append(final, i)
		}
	}
	return final
}

// buildAdjacencyList builds an undirected adjacency list over the given
// edge subset, sized to cover either the highest endpoint seen or the
// number of prizes, whichever is larger.
func buildAdjacencyList(edgeIDs []int, graph core.GraphData) [][]neighbor {
	maxNode := -1
	for _, edgeIdx := range edgeIDs {
		u, v := graph.Edges[edgeIdx][0], graph.Edges[edgeIdx][1]
		if u > maxNode {
			maxNode = u
		}
		if v > maxNode {
			maxNode = v
		}
	}

	size := maxNode + 1
	if len(graph.Prizes) > size {
		size = len(graph.Prizes)
	}

	adj := make([][]neighbor, size)
	for _, edgeIdx := range edgeIDs {
		u, v := graph.Edges[edgeIdx][0], graph.Edges[edgeIdx][1]
		cost := graph.Costs[edgeIdx]
		adj[u] = append(adj[u], neighbor{node: v, cost: cost})
		adj[v] = append(adj[v], neighbor{node: u, cost: cost})
	}
	return adj
}

// filterToGoodEndpoints keeps only edges whose endpoints both passed the
// initial good-node filter, the "intermediate edges" step every pruner but
// None performs before doing its own strategy-specific work.
func filterToGoodEndpoints(phase1Edges []int, graph core.GraphData, initialNodeFilter *bitset.BitSet) []int {
	filtered := make([]int, 0, len(phase1Edges))
	for _, edgeIdx := range phase1Edges {
		u, v := graph.Edges[edgeIdx][0], graph.Edges[edgeIdx][1]
		if initialNodeFilter.Test(uint(u)) && initialNodeFilter.Test(uint(v)) {
			filtered = append(filtered, edgeIdx)
		}
	}
	return filtered
}

// markNodesAsDeleted flood-fills deleted=true from start over adj, stopping
// at already-deleted nodes. If resetParentAfterFirst is false, parent is
// excluded from the flood for every node visited (the GW pruner's
// behavior, since the active-side node must never be reclaimed no matter
// how deep the walk goes); if true, parent only blocks start's own
// neighbors and is cleared afterward (the Strong pruner's behavior, since
// the edge being cut is local to the subtree's entry point).
func markNodesAsDeleted(nodeDeleted *bitset.BitSet, adj [][]neighbor, start, parent int, resetParentAfterFirst bool) {
	if nodeDeleted.Test(uint(start)) {
		return
	}
	nodeDeleted.Set(uint(start))
	queue := []int{start}
	currentParent := parent

	for i := 0; i < len(queue); i++ {
		current := queue[i]
		if current < len(adj) {
			for _, nb := range adj[current] {
				if nb.node == currentParent {
					continue
				}
				if !nodeDeleted.Test(uint(nb.node)) {
					nodeDeleted.Set(uint(nb.node))
					queue = append(queue, nb.node)
				}
			}
		}
		if resetParentAfterFirst {
			currentParent = core.InvalidID
		}
	}
}
