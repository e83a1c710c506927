// Package core implements the Goemans-Williamson moat-growth simulation:
// the event loop that drives a partition of nodes into clusters, merging
// them along covered edges until the target active-cluster count is
// reached, producing the intermediate result pruners consume.
package core

import (
	"errors"

	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/gokitt/internal/pairingheap"
)

// InvalidID is the sentinel for "no node/edge/cluster/event", matching the
// -1 convention used throughout the reference algorithm.
const InvalidID = -1

var (
	ErrInvalidArgument = errors.New("core: invalid argument")
	ErrIndexOutOfRange = errors.New("core: index out of range")
	ErrInternal        = errors.New("core: internal consistency violation")
)

// GraphData is the algorithm's input: an undirected graph with per-node
// prizes, per-edge costs, and an optional root (InvalidID if unrooted).
type GraphData struct {
	Edges  [][2]int
	Prizes []float64
	Costs  []float64
	Root   int
}

// Statistics counts event classes observed during a run, for callers
// instrumenting solver behavior; populated identically to the reference
// algorithm's own counters, additive and non-breaking.
type Statistics struct {
	TotalNumEdgeEvents                int64
	NumDeletedEdgeEvents              int64
	NumMergedEdgeEvents               int64
	TotalNumMergeEvents               int64
	NumActiveActiveMergeEvents        int64
	NumActiveInactiveMergeEvents      int64
	TotalNumEdgeGrowthEvents          int64
	NumActiveActiveEdgeGrowthEvents   int64
	NumActiveInactiveEdgeGrowthEvents int64
	NumClusterEvents                  int64
}

// InactiveMergeEvent records one active-inactive merge for later GW pruning:
// which cluster was active/inactive at the time, and which original node on
// each side of the merge edge the event is anchored to.
type InactiveMergeEvent struct {
	ActiveClusterIndex   int
	InactiveClusterIndex int
	ActiveClusterNode    int
	InactiveClusterNode  int
}

type edgeInfo struct {
	inactiveMergeEvent int
}

type edgePart struct {
	nextEventVal float64
	deleted      bool
	heapNode     int
}

// Cluster is a node in the merge forest. Leaf clusters (one per original
// node) are created in initialize; internal clusters are created by
// mergeClusters as the simulation proceeds. All cross-references are
// indices into Algorithm.clusters, never pointers.
type Cluster struct {
	EdgeParts *pairingheap.Heap

	Active         bool
	ActiveStartTime float64
	ActiveEndTime   float64

	MergedInto        int
	PrizeSum          float64
	SubclusterMoatSum float64
	Moat              float64
	ContainsRoot      bool

	SkipUp    int
	SkipUpSum float64

	MergedAlong   int
	ChildCluster1 int
	ChildCluster2 int

	Necessary bool
}

// Result is the growth simulator's output, consumed by the pruners.
type Result struct {
	Phase1Edges            []int
	InitialNodeFilter      *bitset.BitSet
	EdgeInactiveMergeEventIDs []int
	InactiveMergeEvents    []InactiveMergeEvent
	FinalClusterState      []Cluster
	Statistics             Statistics
}

func getOtherEdgePartIndex(i int) int {
	if i%2 == 0 {
		return i + 1
	}
	return i - 1
}
