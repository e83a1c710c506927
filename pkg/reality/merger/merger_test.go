package merger

import (
	"testing"

	"github.com/kittclouds/gokitt/pkg/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddScannerGraphDeduplicatesAgainstLLMEdges(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdgeWithNodes(
		"n0", "Node 0", "TEST",
		"n1", "Node 1", "TEST",
		"rel", 0.9,
	)

	m := New()
	added := m.AddScannerGraph(g, "note-1")
	assert.Equal(t, 1, added)

	llmAdded := m.AddLLMEdges([]LLMEdgeInput{
		{SourceID: "n0", TargetID: "n1", RelType: "rel", Confidence: 0.6, SourceNoteID: "note-2"},
	})
	assert.Equal(t, 0, llmAdded, "same (source, relType, target) must merge, not duplicate")

	stats := m.GetStats()
	assert.Equal(t, 1, stats.TotalEdges)
	assert.Equal(t, 1, stats.ScannerEdges)
	assert.Equal(t, 1, stats.LLMEdges)
	assert.Equal(t, 1, stats.DeduplicatedEdges)
}

// TestRunPCSTKeepsCheapEdgeBetweenHighPrizeNodes drives the full merger
// pipeline (scanner graph -> ToConceptGraph -> pcst.IpcstSolver) end to
// end: a confident scanner edge becomes a low-cost PCSF edge, which the
// growth simulator should keep given ample prizes on both endpoints.
func TestRunPCSTKeepsCheapEdgeBetweenHighPrizeNodes(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdgeWithNodes(
		"n0", "Node 0", "TEST",
		"n1", "Node 1", "TEST",
		"rel", 0.95, // confidence 0.95 -> PCST edge weight 0.05
	)

	m := New()
	added := m.AddScannerGraph(g, "note-1")
	require.Equal(t, 1, added)

	prizes := map[string]float64{"n0": 10, "n1": 10}
	filtered, err := m.RunPCST(prizes, "")
	require.NoError(t, err)

	assert.Contains(t, filtered.Nodes, "n0")
	assert.Contains(t, filtered.Nodes, "n1")
	assert.Len(t, filtered.Edges, 1)
}

// TestRunPCSTDropsExpensiveEdgeWithLowPrizes mirrors the above but with
// a low-confidence (high-cost) edge and near-zero prizes, so one endpoint
// deactivates (leaving the single target active cluster and ending the
// growth) long before the edge could be covered.
func TestRunPCSTDropsExpensiveEdgeWithLowPrizes(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdgeWithNodes(
		"n0", "Node 0", "TEST",
		"n1", "Node 1", "TEST",
		"rel", 0.01, // confidence 0.01 -> PCST edge weight 0.99
	)

	m := New()
	_ = m.AddScannerGraph(g, "note-1")

	prizes := map[string]float64{"n0": 0.01, "n1": 0.01}
	filtered, err := m.RunPCST(prizes, "")
	require.NoError(t, err)

	assert.Empty(t, filtered.Edges)
}

func TestRunPCSTRooted(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdgeWithNodes(
		"center", "Center", "TEST",
		"leaf", "Leaf", "TEST",
		"rel", 0.9, // weight 0.1
	)

	m := New()
	_ = m.AddScannerGraph(g, "note-1")

	prizes := map[string]float64{"center": 100, "leaf": 10}
	filtered, err := m.RunPCST(prizes, "center")
	require.NoError(t, err)

	assert.Contains(t, filtered.Nodes, "center")
	assert.Contains(t, filtered.Nodes, "leaf")
	assert.Len(t, filtered.Edges, 1)
}

func TestToConceptGraphClampsWeightFloor(t *testing.T) {
	m := New()
	m.merged.Nodes["a"] = &graph.ConceptNode{ID: "a"}
	m.merged.Nodes["b"] = &graph.ConceptNode{ID: "b"}
	m.merged.Edges["a-REL-b"] = &MergedEdge{
		SourceID: "a", TargetID: "b", RelType: "REL", Confidence: 1.0,
	}

	cg := m.ToConceptGraph()
	edges := cg.AllEdges()
	require.Len(t, edges, 1)
	assert.GreaterOrEqual(t, edges[0].Edge.Weight, 0.01)
}
