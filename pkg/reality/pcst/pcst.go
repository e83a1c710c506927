// Package pcst adapts a *graph.ConceptGraph plus a prize map into the
// pcsf Goemans-Williamson growth simulation and translates its result
// back into string node/edge IDs, preserving the solver's original
// external shape (Solution, Edge, Config) for callers like
// pkg/reality/merger.
package pcst

import (
	"github.com/kittclouds/gokitt/pkg/graph"
	"github.com/kittclouds/gokitt/pkg/pcsf"
)

// Cost is a plain float64 alias, kept for call-site readability.
type Cost = float64

// Solution is the translated result: original node IDs, original edge
// endpoints, and the total cost of the edges kept plus the penalties of
// the nodes excluded.
type Solution struct {
	Nodes     []string
	Edges     []Edge
	TotalCost Cost
}

// Edge names its endpoints by their original graph IDs.
type Edge struct {
	SourceID string
	TargetID string
}

// Config controls the underlying growth simulation and pruning strategy.
type Config struct {
	NumClusters int // target active clusters for the unrooted case; ignored (forced to 0) when rooted
	Pruning     pcsf.PruningMethod
	Epsilon     float64
}

func DefaultConfig() Config {
	return Config{
		NumClusters: 1,
		Pruning:     pcsf.PruningGW,
		Epsilon:     1e-9,
	}
}

// IpcstSolver runs the growth simulation over a *graph.ConceptGraph.
type IpcstSolver struct {
	config Config
}

func NewIpcstSolver(cfg Config) *IpcstSolver {
	return &IpcstSolver{config: cfg}
}

type instance struct {
	prizes    []float64
	edges     [][2]int
	costs     []float64
	root      int
	idToIndex map[string]int
	indexToID []string
}

func buildInstance(g *graph.ConceptGraph, prizes map[string]float64, rootID string) *instance {
	nodes := g.AllNodes()
	count := len(nodes)

	idToIndex := make(map[string]int, count)
	indexToID := make([]string, count)
	nodePrizes := make([]float64, count)

	for i, n := range nodes {
		idToIndex[n.ID] = i
		indexToID[i] = n.ID
		nodePrizes[i] = prizes[n.ID]
	}

	type pair struct{ u, v int }
	minCost := make(map[pair]float64)

	for _, e := range g.AllEdges() {
		u, okU := idToIndex[e.Source.ID]
		v, okV := idToIndex[e.Target.ID]
		if !okU || !okV || u == v {
			continue
		}
		if u > v {
			u, v = v, u
		}
		p := pair{u, v}
		if c, ok := minCost[p]; !ok || e.Edge.Weight < c {
			minCost[p] = e.Edge.Weight
		}
	}

	edges := make([][2]int, 0, len(minCost))
	costs := make([]float64, 0, len(minCost))
	for p, c := range minCost {
		edges = append(edges, [2]int{p.u, p.v})
		costs = append(costs, c)
	}

	root := pcsf.NoRoot
	if rootID != "" {
		if idx, ok := idToIndex[rootID]; ok {
			root = idx
		}
	}

	return &instance{
		prizes:    nodePrizes,
		edges:     edges,
		costs:     costs,
		root:      root,
		idToIndex: idToIndex,
		indexToID: indexToID,
	}
}

func (s *IpcstSolver) Solve(g *graph.ConceptGraph, prizes map[string]float64, rootID string) (*Solution, error) {
	inst := buildInstance(g, prizes, rootID)
	if len(inst.indexToID) == 0 {
		return &Solution{}, nil
	}

	numClusters := s.config.NumClusters
	if inst.root != pcsf.NoRoot {
		numClusters = 0
	}

	result, err := pcsf.Solve(pcsf.Input{
		Edges:  inst.edges,
		Prizes: inst.prizes,
		Costs:  inst.costs,
		Root:   inst.root,
	}, numClusters, s.config.Pruning, nil, pcsf.Options{Epsilon: s.config.Epsilon})
	if err != nil {
		return nil, err
	}

	return convertSolution(inst, result), nil
}

func convertSolution(inst *instance, result pcsf.Result) *Solution {
	sol := &Solution{
		Nodes: make([]string, 0, len(result.Nodes)),
		Edges: make([]Edge, 0, len(result.Edges)),
	}

	kept := make(map[int]bool, len(result.Nodes))
	for _, nodeIdx := range result.Nodes {
		kept[nodeIdx] = true
		sol.Nodes = append(sol.Nodes, inst.indexToID[nodeIdx])
	}

	edgeCost := 0.0
	for _, edgeIdx := range result.Edges {
		e := inst.edges[edgeIdx]
		sol.Edges = append(sol.Edges, Edge{
			SourceID: inst.indexToID[e[0]],
			TargetID: inst.indexToID[e[1]],
		})
		edgeCost += inst.costs[edgeIdx]
	}

	penaltyCost := 0.0
	for i, prize := range inst.prizes {
		if !kept[i] {
			penaltyCost += prize
		}
	}
	sol.TotalCost = edgeCost + penaltyCost

	return sol
}
