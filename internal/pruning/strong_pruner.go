package pruning

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/gokitt/internal/core"
	"github.com/kittclouds/gokitt/internal/logging"
)

const strongPruningEpsilon = 1e-9

type parentEdge struct {
	node int
	cost float64
}

// StrongPruner discovers the connected components of the intermediate
// edge set restricted to relevant nodes, re-roots each non-root component
// at the node maximizing total payoff, and then runs a post-order DFS that
// prunes any subtree whose net payoff (child payoff minus connecting edge
// cost) is non-positive.
type StrongPruner struct{}

type strongPruningState struct {
	input             *Input
	logger            logging.Logger
	numNodes          int
	neighbors         [][]neighbor
	nodeDeleted       *bitset.BitSet
	finalComponentLbl []int
	finalComponents   [][]int
	rootComponentIdx  int
	parent            []parentEdge
	payoff            []float64
}

func (StrongPruner) Prune(input Input) Result {
	logger := input.Logger
	logging.Logf(logger, logging.LevelInfo, "applying strong pruning strategy")

	numNodes := len(input.Graph.Prizes)
	intermediateEdges := filterToGoodEndpoints(input.CoreResult.Phase1Edges, input.Graph, input.CoreResult.InitialNodeFilter)
	logging.Logf(logger, logging.LevelDebug, "strong pruning: starting with %d intermediate edges", len(intermediateEdges))

	if len(intermediateEdges) == 0 {
		logging.Logf(logger, logging.LevelInfo, "no intermediate edges after filtering, strong pruning results in empty graph")
		emptyDeleted := bitset.New(uint(numNodes))
		return Result{Nodes: buildFinalNodeSet(numNodes, emptyDeleted, input.CoreResult.InitialNodeFilter)}
	}

	s := &strongPruningState{
		input:             &input,
		logger:            logger,
		numNodes:          numNodes,
		nodeDeleted:       bitset.New(uint(numNodes)),
		finalComponentLbl: fillInt(numNodes, core.InvalidID),
		rootComponentIdx:  core.InvalidID,
		parent:            make([]parentEdge, numNodes),
		payoff:            fillFloat(numNodes, -1.0),
	}
	s.neighbors = buildAdjacencyList(intermediateEdges, input.Graph)
	logging.Logf(logger, logging.LevelDebug, "built adjacency list for strong pruning graph")

	for i := 0; i < numNodes; i++ {
		relevant := len(s.neighbors[i]) > 0 || input.CoreResult.InitialNodeFilter.Test(uint(i))
		if relevant && s.finalComponentLbl[i] == core.InvalidID {
			componentIdx := len(s.finalComponents)
			s.finalComponents = append(s.finalComponents, nil)
			s.labelFinalComponent(i, componentIdx)
		}
	}
	logging.Logf(logger, logging.LevelInfo, "identified %d connected components", len(s.finalComponents))

	for compIdx := range s.finalComponents {
		if len(s.finalComponents[compIdx]) == 0 {
			continue
		}
		if compIdx == s.rootComponentIdx {
			s.strongPruningDFS(input.Graph.Root, true)
		} else {
			bestRoot := s.findBestComponentRoot(compIdx)
			s.parent = fillParent(numNodes)
			s.payoff = fillFloat(numNodes, -1.0)
			s.strongPruningDFS(bestRoot, true)
		}
	}

	finalEdges := make([]int, 0, len(intermediateEdges))
	for _, edgeIdx := range intermediateEdges {
		u, v := input.Graph.Edges[edgeIdx][0], input.Graph.Edges[edgeIdx][1]
		if !s.nodeDeleted.Test(uint(u)) && !s.nodeDeleted.Test(uint(v)) {
			finalEdges = append(finalEdges, edgeIdx)
		}
	}
	logging.Logf(logger, logging.LevelDebug, "strong pruning: selected %d final edges", len(finalEdges))

	nodes := buildFinalNodeSet(numNodes, s.nodeDeleted, input.CoreResult.InitialNodeFilter)
	logging.Logf(logger, logging.LevelDebug, "strong pruning: derived %d final nodes", len(nodes))

	return Result{Nodes: nodes, Edges: finalEdges}
}

func (s *strongPruningState) labelFinalComponent(start, componentIdx int) {
	stack := []int{start}
	s.finalComponentLbl[start] = componentIdx

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s.finalComponents[componentIdx] = append(s.finalComponents[componentIdx], current)
		if current == s.input.Graph.Root {
			s.rootComponentIdx = componentIdx
		}

		for _, nb := range s.neighbors[current] {
			if s.finalComponentLbl[nb.node] == core.InvalidID {
				s.finalComponentLbl[nb.node] = componentIdx
				stack = append(stack, nb.node)
			}
		}
	}
}

// strongPruningDFS runs an iterative entry/exit post-order traversal from
// start, computing each node's subtree payoff and, when markAsDeleted is
// set, flood-deleting any subtree whose net contribution is non-positive.
func (s *strongPruningState) strongPruningDFS(start int, markAsDeleted bool) {
	type frame struct {
		isEntry bool
		node    int
	}

	stack := []frame{{true, start}}
	s.parent[start] = parentEdge{node: core.InvalidID, cost: 0}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.isEntry {
			stack = append(stack, frame{false, f.node})
			for _, nb := range s.neighbors[f.node] {
				if nb.node == s.parent[f.node].node {
					continue
				}
				s.parent[nb.node] = parentEdge{node: f.node, cost: nb.cost}
				stack = append(stack, frame{true, nb.node})
			}
		} else {
			s.payoff[f.node] = s.input.Graph.Prizes[f.node]

			for _, nb := range s.neighbors[f.node] {
				if s.parent[nb.node].node != f.node {
					continue
				}
				childNetPayoff := s.payoff[nb.node] - nb.cost
				if childNetPayoff <= strongPruningEpsilon {
					if markAsDeleted {
						markNodesAsDeleted(s.nodeDeleted, s.neighbors, nb.node, f.node, true)
					}
				} else {
					s.payoff[f.node] += childNetPayoff
				}
			}
		}
	}
}

func (s *strongPruningState) findBestComponentRoot(componentIdx int) int {
	componentNodes := s.finalComponents[componentIdx]
	initialRoot := componentNodes[0]

	s.parent = fillParent(s.numNodes)
	s.payoff = fillFloat(s.numNodes, -1.0)
	s.strongPruningDFS(initialRoot, false)

	bestRoot := initialRoot
	bestValue := s.payoff[initialRoot]

	stack := make([]int, 0, len(componentNodes))
	for _, nb := range s.neighbors[initialRoot] {
		if s.finalComponentLbl[nb.node] == componentIdx {
			stack = append(stack, nb.node)
		}
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		parentNode := s.parent[current].node
		parentEdgeCost := s.parent[current].cost

		parentValWithoutCurrent := s.payoff[parentNode]
		currentNetPayoff := s.payoff[current] - parentEdgeCost
		if currentNetPayoff > strongPruningEpsilon {
			parentValWithoutCurrent -= currentNetPayoff
		}

		if parentValWithoutCurrent > parentEdgeCost+strongPruningEpsilon {
			s.payoff[current] += parentValWithoutCurrent - parentEdgeCost
		}

		if s.payoff[current] > bestValue {
			bestRoot = current
			bestValue = s.payoff[current]
		}

		for _, nb := range s.neighbors[current] {
			if nb.node != parentNode && s.finalComponentLbl[nb.node] == componentIdx {
				stack = append(stack, nb.node)
			}
		}
	}

	return bestRoot
}

func fillInt(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func fillFloat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func fillParent(n int) []parentEdge {
	out := make([]parentEdge, n)
	for i := range out {
		out[i] = parentEdge{node: core.InvalidID, cost: 0}
	}
	return out
}
