package pruning

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/gokitt/internal/core"
)

func allGood(n int) *bitset.BitSet {
	b := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		b.Set(uint(i))
	}
	return b
}

func leafClusters(n int) []core.Cluster {
	clusters := make([]core.Cluster, n)
	for i := range clusters {
		clusters[i].MergedInto = core.InvalidID
	}
	return clusters
}

func TestNonePrunerPassesThroughAndFillsUnusedGoodNodes(t *testing.T) {
	graph := core.GraphData{
		Edges:  [][2]int{{0, 1}},
		Prizes: []float64{1, 1, 1},
		Costs:  []float64{1},
		Root:   core.InvalidID,
	}
	input := Input{
		Graph: graph,
		CoreResult: core.Result{
			Phase1Edges:       []int{0},
			InitialNodeFilter: allGood(3),
		},
	}
	result := NonePruner{}.Prune(input)
	assert.Equal(t, []int{0}, result.Edges)
	assert.ElementsMatch(t, []int{0, 1, 2}, result.Nodes)
}

func TestSimplePrunerDropsEdgeWithFilteredEndpoint(t *testing.T) {
	graph := core.GraphData{
		Edges:  [][2]int{{0, 1}, {1, 2}},
		Prizes: []float64{1, 1, 1},
		Costs:  []float64{1, 1},
		Root:   core.InvalidID,
	}
	filter := allGood(3)
	filter.Clear(2)

	input := Input{
		Graph: graph,
		CoreResult: core.Result{
			Phase1Edges:       []int{0, 1},
			InitialNodeFilter: filter,
		},
	}
	result := SimplePruner{}.Prune(input)
	assert.Equal(t, []int{0}, result.Edges)
	assert.ElementsMatch(t, []int{0, 1}, result.Nodes)
}

// Active-active merge (no InactiveMergeEvent) is always kept; the
// active-inactive merge whose inactive side is the root is kept via the
// root special case even though its cluster is not marked necessary.
func TestGWPrunerKeepsRootSideAndActiveActiveEdges(t *testing.T) {
	graph := core.GraphData{
		Edges:  [][2]int{{0, 1}, {1, 2}},
		Prizes: []float64{1, 1, 1},
		Costs:  []float64{1, 1},
		Root:   2,
	}
	input := Input{
		Graph: graph,
		CoreResult: core.Result{
			Phase1Edges:               []int{0, 1},
			InitialNodeFilter:         allGood(3),
			FinalClusterState:         leafClusters(3),
			EdgeInactiveMergeEventIDs: []int{core.InvalidID, 0},
			InactiveMergeEvents: []core.InactiveMergeEvent{
				{ActiveClusterIndex: 1, InactiveClusterIndex: 2, ActiveClusterNode: 1, InactiveClusterNode: 2},
			},
		},
	}
	result := GWPruner{}.Prune(input)
	assert.ElementsMatch(t, []int{0, 1}, result.Edges)
	assert.ElementsMatch(t, []int{0, 1, 2}, result.Nodes)
}

// An active-inactive merge whose inactive side is neither marked necessary
// nor the root gets its subtree flood-deleted.
func TestGWPrunerDeletesNonNecessaryInactiveSubtree(t *testing.T) {
	graph := core.GraphData{
		Edges:  [][2]int{{0, 1}},
		Prizes: []float64{1, 1},
		Costs:  []float64{1},
		Root:   core.InvalidID,
	}
	input := Input{
		Graph: graph,
		CoreResult: core.Result{
			Phase1Edges:               []int{0},
			InitialNodeFilter:         allGood(2),
			FinalClusterState:         leafClusters(2),
			EdgeInactiveMergeEventIDs: []int{0},
			InactiveMergeEvents: []core.InactiveMergeEvent{
				{ActiveClusterIndex: 0, InactiveClusterIndex: 1, ActiveClusterNode: 0, InactiveClusterNode: 1},
			},
		},
	}
	result := GWPruner{}.Prune(input)
	assert.Empty(t, result.Edges)
	assert.Equal(t, []int{0}, result.Nodes)
}

// A path where every subtree carries positive net payoff keeps every edge.
func TestStrongPrunerKeepsAllEdgesWhenPayoffsArePositive(t *testing.T) {
	graph := core.GraphData{
		Edges:  [][2]int{{0, 1}, {1, 2}},
		Prizes: []float64{0, 0, 10},
		Costs:  []float64{1, 5},
		Root:   0,
	}
	input := Input{
		Graph: graph,
		CoreResult: core.Result{
			Phase1Edges:       []int{0, 1},
			InitialNodeFilter: allGood(3),
		},
	}
	result := StrongPruner{}.Prune(input)
	assert.ElementsMatch(t, []int{0, 1}, result.Edges)
	assert.ElementsMatch(t, []int{0, 1, 2}, result.Nodes)
}

// A leaf whose prize cannot pay back its connecting edge gets pruned away.
func TestStrongPrunerPrunesLeafWithNegativeNetPayoff(t *testing.T) {
	graph := core.GraphData{
		Edges:  [][2]int{{0, 1}, {1, 2}},
		Prizes: []float64{0, 2, 2},
		Costs:  []float64{1, 5},
		Root:   0,
	}
	input := Input{
		Graph: graph,
		CoreResult: core.Result{
			Phase1Edges:       []int{0, 1},
			InitialNodeFilter: allGood(3),
		},
	}
	result := StrongPruner{}.Prune(input)
	assert.Equal(t, []int{0}, result.Edges)
	assert.ElementsMatch(t, []int{0, 1}, result.Nodes)
}

func TestAllPrunersImplementInterface(t *testing.T) {
	var _ Pruner = NonePruner{}
	var _ Pruner = SimplePruner{}
	var _ Pruner = GWPruner{}
	var _ Pruner = StrongPruner{}
	require.True(t, true)
}
