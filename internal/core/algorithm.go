package core

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/gokitt/internal/indexedpq"
	"github.com/kittclouds/gokitt/internal/logging"
	"github.com/kittclouds/gokitt/internal/pairingheap"
)

const defaultEpsilon = 1e-9

// Algorithm runs the growth simulation once per instance; construct a new
// one per Solve call.
type Algorithm struct {
	graph                   GraphData
	targetNumActiveClusters int
	logger                  logging.Logger
	epsilon                 float64

	currentTime       float64
	numActiveClusters int
	stats             Statistics

	clusters  []Cluster
	edgeParts []edgePart
	edgeInfo  []edgeInfo
	nodeGood  *bitset.BitSet

	phase1ResultEdges   []int
	inactiveMergeEvents []InactiveMergeEvent

	arena *pairingheap.Arena

	clustersDeactivation  *indexedpq.Queue
	clustersNextEdgeEvent *indexedpq.Queue

	pathCompressionVisited []pathVisit
	clusterQueue           []int
}

type pathVisit struct {
	clusterID int
	sum       float64
}

// New validates graph/target and constructs an Algorithm, mirroring the
// reference constructor's precondition checks.
func New(graph GraphData, targetNumActiveClusters int, logger logging.Logger, epsilon float64) (*Algorithm, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if epsilon <= 0 {
		epsilon = defaultEpsilon
	}

	numNodes := len(graph.Prizes)
	numEdges := len(graph.Edges)

	if graph.Root != InvalidID && targetNumActiveClusters != 0 {
		return nil, fmt.Errorf("core.New: %w: target number of active clusters (%d) must be 0 for rooted problems (root=%d)",
			ErrInvalidArgument, targetNumActiveClusters, graph.Root)
	}
	if targetNumActiveClusters < 0 {
		return nil, fmt.Errorf("core.New: %w: target number of active clusters (%d) cannot be negative",
			ErrInvalidArgument, targetNumActiveClusters)
	}
	if numNodes == 0 {
		return nil, fmt.Errorf("core.New: %w: prizes cannot be empty", ErrInvalidArgument)
	}
	if numEdges != len(graph.Costs) {
		return nil, fmt.Errorf("core.New: %w: number of edges (%d) does not match number of costs (%d)",
			ErrInvalidArgument, numEdges, len(graph.Costs))
	}
	for i, p := range graph.Prizes {
		if p < 0 {
			return nil, fmt.Errorf("core.New: %w: prize for node %d (%v) is negative", ErrInvalidArgument, i, p)
		}
	}
	for i, c := range graph.Costs {
		if c < 0 {
			return nil, fmt.Errorf("core.New: %w: cost for edge %d (%v) is negative", ErrInvalidArgument, i, c)
		}
		u, v := graph.Edges[i][0], graph.Edges[i][1]
		if u < 0 || u >= numNodes || v < 0 || v >= numNodes {
			return nil, fmt.Errorf("core.New: %w: edge %d (%d, %d) endpoint out of range [0, %d)",
				ErrIndexOutOfRange, i, u, v, numNodes)
		}
	}
	if graph.Root != InvalidID && (graph.Root < 0 || graph.Root >= numNodes) {
		return nil, fmt.Errorf("core.New: %w: root %d out of range [0, %d)", ErrIndexOutOfRange, graph.Root, numNodes)
	}

	logging.Logf(logger, logging.LevelInfo, "core algorithm initialized, target clusters=%d", targetNumActiveClusters)

	return &Algorithm{
		graph:                   graph,
		targetNumActiveClusters: targetNumActiveClusters,
		logger:                  logger,
		epsilon:                 epsilon,
	}, nil
}

func (a *Algorithm) initialize() {
	numNodes := len(a.graph.Prizes)
	numEdges := len(a.graph.Edges)

	a.currentTime = 0
	a.numActiveClusters = 0
	a.stats = Statistics{}
	a.phase1ResultEdges = nil
	a.inactiveMergeEvents = nil
	a.arena = pairingheap.NewArena()

	a.clusters = make([]Cluster, 0, numNodes*2)
	a.edgeParts = make([]edgePart, 2*numEdges)
	a.edgeInfo = make([]edgeInfo, numEdges)
	for i := range a.edgeInfo {
		a.edgeInfo[i].inactiveMergeEvent = InvalidID
	}
	a.nodeGood = bitset.New(uint(numNodes))

	a.clustersDeactivation = indexedpq.New()
	a.clustersNextEdgeEvent = indexedpq.New()

	for i := 0; i < numNodes; i++ {
		c := Cluster{
			EdgeParts:       pairingheap.New(a.arena),
			Active:          i != a.graph.Root,
			ActiveStartTime: 0,
			MergedInto:      InvalidID,
			PrizeSum:        a.graph.Prizes[i],
			ContainsRoot:    i == a.graph.Root,
			SkipUp:          InvalidID,
			MergedAlong:     InvalidID,
			ChildCluster1:   InvalidID,
			ChildCluster2:   InvalidID,
		}
		if i == a.graph.Root {
			c.ActiveEndTime = 0
		} else {
			c.ActiveEndTime = -1
		}
		a.clusters = append(a.clusters, c)

		if c.Active {
			a.numActiveClusters++
			a.clustersDeactivation.Insert(c.PrizeSum, i)
		}
	}

	for i := 0; i < numEdges; i++ {
		u, v := a.graph.Edges[i][0], a.graph.Edges[i][1]
		cost := a.graph.Costs[i]

		if u == v {
			logging.Logf(a.logger, logging.LevelWarning, "ignoring self-loop edge %d (%d, %d) with cost %v", i, u, v, cost)
			a.edgeParts[2*i].deleted = true
			a.edgeParts[2*i+1].deleted = true
			continue
		}

		uPart := &a.edgeParts[2*i]
		vPart := &a.edgeParts[2*i+1]
		uActive := a.clusters[u].Active
		vActive := a.clusters[v].Active

		switch {
		case uActive && vActive:
			half := cost / 2.0
			uPart.nextEventVal = half
			vPart.nextEventVal = half
		case uActive:
			uPart.nextEventVal = cost
			vPart.nextEventVal = 0
		case vActive:
			uPart.nextEventVal = 0
			vPart.nextEventVal = cost
		default:
			uPart.nextEventVal = 0
			vPart.nextEventVal = 0
		}

		if uActive {
			uPart.heapNode = a.clusters[u].EdgeParts.Insert(uPart.nextEventVal, 2*i)
		} else {
			uPart.heapNode = pairingheap.NoHandle
		}
		if vActive {
			vPart.heapNode = a.clusters[v].EdgeParts.Insert(vPart.nextEventVal, 2*i+1)
		} else {
			vPart.heapNode = pairingheap.NoHandle
		}
	}

	for i := 0; i < numNodes; i++ {
		if a.clusters[i].Active && !a.clusters[i].EdgeParts.Empty() {
			minVal, _, _ := a.clusters[i].EdgeParts.PeekMin()
			a.clustersNextEdgeEvent.Insert(minVal, i)
		}
	}

	logging.Logf(a.logger, logging.LevelInfo, "initialization complete: %d nodes, %d edges, %d active clusters",
		numNodes, numEdges, a.numActiveClusters)
}

// Run executes the growth simulation to completion and returns the
// intermediate result consumed by pruners.
func (a *Algorithm) Run() (Result, error) {
	a.initialize()

	logging.Logf(a.logger, logging.LevelInfo, "starting core algorithm run, initial active clusters=%d", a.numActiveClusters)

	for a.numActiveClusters > a.targetNumActiveClusters {
		edgeEventTime, edgeCluster, edgePartIdx, hasEdgeEvent := a.getNextEdgeEvent()
		clusterEventTime, clusterIdx, hasClusterEvent := a.getNextClusterEvent()

		if !hasEdgeEvent {
			edgeEventTime = math.Inf(1)
		}
		if !hasClusterEvent {
			clusterEventTime = math.Inf(1)
		}
		if !hasEdgeEvent && !hasClusterEvent {
			logging.Logf(a.logger, logging.LevelWarning,
				"no more events but target active clusters (%d) not reached (%d remaining), stopping early",
				a.targetNumActiveClusters, a.numActiveClusters)
			break
		}

		nextTime := math.Min(edgeEventTime, clusterEventTime)
		timeDelta := nextTime - a.currentTime
		if timeDelta < -a.epsilon {
			return Result{}, fmt.Errorf("core.Run: %w: negative time delta, next event time %v < current time %v",
				ErrInternal, nextTime, a.currentTime)
		}

		if edgeEventTime <= clusterEventTime+a.epsilon {
			a.stats.TotalNumEdgeEvents++
			a.currentTime = edgeEventTime
			a.removeNextEdgeEvent(edgeCluster)
			a.handleEdgeEvent(a.currentTime, edgePartIdx)
		} else {
			a.stats.NumClusterEvents++
			a.currentTime = clusterEventTime
			a.removeNextClusterEvent()
			a.handleClusterEvent(a.currentTime, clusterIdx)
		}
	}

	logging.Logf(a.logger, logging.LevelInfo, "finished core algorithm loop, final time=%v, active clusters=%d",
		a.currentTime, a.numActiveClusters)

	a.nodeGood = bitset.New(uint(len(a.graph.Prizes)))
	if a.graph.Root != InvalidID {
		finalRootCluster := InvalidID
		for i := range a.clusters {
			if a.clusters[i].ContainsRoot && a.clusters[i].MergedInto == InvalidID {
				finalRootCluster = i
				break
			}
		}
		if finalRootCluster != InvalidID {
			a.markNodesAsGood(finalRootCluster)
		} else {
			logging.Logf(a.logger, logging.LevelWarning,
				"rooted case: could not find final cluster containing root %d", a.graph.Root)
			if a.graph.Root >= 0 && uint(a.graph.Root) < a.nodeGood.Len() {
				a.nodeGood.Set(uint(a.graph.Root))
			}
		}
	} else {
		for i := range a.clusters {
			if a.clusters[i].Active && a.clusters[i].MergedInto == InvalidID {
				a.markNodesAsGood(i)
			}
		}
	}

	return a.buildCoreResult(), nil
}

func (a *Algorithm) handleEdgeEvent(eventTime float64, edgePartIdx int) {
	if a.edgeParts[edgePartIdx].deleted {
		a.stats.NumDeletedEdgeEvents++
		return
	}

	otherIdx := getOtherEdgePartIndex(edgePartIdx)
	edgeIdx := edgePartIdx / 2
	edgeCost := a.graph.Costs[edgeIdx]

	sumCurrent, _, clusterCurrent := a.getSumOnEdgePart(edgePartIdx)
	sumOther, _, clusterOther := a.getSumOnEdgePart(otherIdx)

	if clusterCurrent == clusterOther {
		a.stats.NumMergedEdgeEvents++
		a.edgeParts[edgePartIdx].deleted = true
		a.edgeParts[otherIdx].deleted = true
		return
	}

	if a.edgeParts[otherIdx].deleted {
		a.stats.NumDeletedEdgeEvents++
		a.edgeParts[edgePartIdx].deleted = true
		return
	}

	remainder := edgeCost - sumCurrent - sumOther

	if remainder <= a.epsilon*edgeCost || math.Abs(remainder) < a.epsilon {
		a.stats.TotalNumMergeEvents++
		a.phase1ResultEdges = append(a.phase1ResultEdges, edgeIdx)
		a.edgeParts[otherIdx].deleted = true
		a.mergeClusters(clusterCurrent, clusterOther, edgeIdx, eventTime, math.Max(0, remainder))
		return
	}

	currentActive := a.clusters[clusterCurrent].Active
	otherActive := a.clusters[clusterOther].Active

	if currentActive && otherActive {
		a.stats.TotalNumEdgeGrowthEvents++
		a.stats.NumActiveActiveEdgeGrowthEvents++

		timeToMeet := eventTime + remainder/2.0
		valAtMeetCurrent := sumCurrent + remainder/2.0
		valAtMeetOther := sumOther + remainder/2.0

		a.edgeParts[edgePartIdx].nextEventVal = valAtMeetCurrent
		a.edgeParts[edgePartIdx].heapNode = a.clusters[clusterCurrent].EdgeParts.Insert(timeToMeet, edgePartIdx)
		if !a.clusters[clusterCurrent].EdgeParts.Empty() {
			minVal, _, _ := a.clusters[clusterCurrent].EdgeParts.PeekMin()
			a.clustersNextEdgeEvent.Insert(minVal, clusterCurrent)
		}

		if a.edgeParts[otherIdx].heapNode != pairingheap.NoHandle {
			a.clustersNextEdgeEvent.Delete(clusterOther)
			a.clusters[clusterOther].EdgeParts.DecreaseKey(a.edgeParts[otherIdx].heapNode, timeToMeet)
			a.edgeParts[otherIdx].nextEventVal = valAtMeetOther
			if !a.clusters[clusterOther].EdgeParts.Empty() {
				minVal, _, _ := a.clusters[clusterOther].EdgeParts.PeekMin()
				a.clustersNextEdgeEvent.Insert(minVal, clusterOther)
			}
		} else {
			logging.Logf(a.logger, logging.LevelWarning, "other edge part %d heap node is absent, cannot decrease key", otherIdx)
			a.edgeParts[otherIdx].nextEventVal = valAtMeetOther
		}
		return
	}

	a.stats.TotalNumEdgeGrowthEvents++
	a.stats.NumActiveInactiveEdgeGrowthEvents++

	activeIsCurrent := currentActive
	activeClusterIdx := clusterOther
	if activeIsCurrent {
		activeClusterIdx = clusterCurrent
	}
	inactiveClusterIdx := clusterCurrent
	if activeIsCurrent {
		inactiveClusterIdx = clusterOther
	}
	activePartIdx := otherIdx
	inactivePartIdx := edgePartIdx
	if activeIsCurrent {
		activePartIdx = edgePartIdx
		inactivePartIdx = otherIdx
	}
	var finishedMoatOfInactive float64
	if activeIsCurrent {
		_, finishedMoatOfInactive, _ = a.getSumOnEdgePart(otherIdx)
	} else {
		_, finishedMoatOfInactive, _ = a.getSumOnEdgePart(edgePartIdx)
	}

	timeToMeet := eventTime + remainder
	valAtMeetActive := edgeCost - finishedMoatOfInactive

	a.edgeParts[activePartIdx].nextEventVal = valAtMeetActive
	a.edgeParts[activePartIdx].heapNode = a.clusters[activeClusterIdx].EdgeParts.Insert(timeToMeet, activePartIdx)
	if !a.clusters[activeClusterIdx].EdgeParts.Empty() {
		minVal, _, _ := a.clusters[activeClusterIdx].EdgeParts.PeekMin()
		a.clustersNextEdgeEvent.Insert(minVal, activeClusterIdx)
	}

	if a.edgeParts[inactivePartIdx].heapNode != pairingheap.NoHandle {
		inactiveEndTime := a.clusters[inactiveClusterIdx].ActiveEndTime
		a.clusters[inactiveClusterIdx].EdgeParts.DecreaseKey(a.edgeParts[inactivePartIdx].heapNode, inactiveEndTime)
		a.edgeParts[inactivePartIdx].nextEventVal = finishedMoatOfInactive
	} else {
		a.edgeParts[inactivePartIdx].nextEventVal = finishedMoatOfInactive
	}
}

func (a *Algorithm) handleClusterEvent(eventTime float64, clusterIdx int) {
	c := &a.clusters[clusterIdx]
	if !c.Active {
		return
	}
	c.Active = false
	c.ActiveEndTime = eventTime
	c.Moat = c.ActiveEndTime - c.ActiveStartTime
	a.numActiveClusters--

	if !c.EdgeParts.Empty() {
		a.clustersNextEdgeEvent.Delete(clusterIdx)
	}
}

func (a *Algorithm) mergeClusters(cluster1Idx, cluster2Idx, mergeEdgeIdx int, eventTime, remainder float64) int {
	a.clusters = append(a.clusters, Cluster{
		EdgeParts:     pairingheap.New(a.arena),
		MergedInto:    InvalidID,
		SkipUp:        InvalidID,
		MergedAlong:   InvalidID,
		ChildCluster1: InvalidID,
		ChildCluster2: InvalidID,
		ActiveEndTime: -1,
	})
	newIdx := len(a.clusters) - 1

	cluster1Active := a.clusters[cluster1Idx].Active
	cluster2Active := a.clusters[cluster2Idx].Active

	if cluster1Active && cluster2Active {
		a.stats.NumActiveActiveMergeEvents++
	} else {
		a.stats.NumActiveInactiveMergeEvents++

		activeOrigIdx, inactiveOrigIdx := cluster1Idx, cluster2Idx
		if !cluster1Active {
			activeOrigIdx, inactiveOrigIdx = cluster2Idx, cluster1Idx
		}

		uNode, vNode := a.graph.Edges[mergeEdgeIdx][0], a.graph.Edges[mergeEdgeIdx][1]
		_, _, uRepr := a.getSumOnEdgePart(2 * mergeEdgeIdx)
		_, _, vRepr := a.getSumOnEdgePart(2*mergeEdgeIdx + 1)

		var activeNode, inactiveNode int
		switch {
		case uRepr == activeOrigIdx && vRepr == inactiveOrigIdx:
			activeNode, inactiveNode = uNode, vNode
		case vRepr == activeOrigIdx && uRepr == inactiveOrigIdx:
			activeNode, inactiveNode = vNode, uNode
		default:
			logging.Logf(a.logger, logging.LevelError,
				"could not reliably determine active/inactive nodes for merge edge %d", mergeEdgeIdx)
			if cluster1Active {
				activeNode, inactiveNode = uNode, vNode
			} else {
				activeNode, inactiveNode = vNode, uNode
			}
		}

		a.inactiveMergeEvents = append(a.inactiveMergeEvents, InactiveMergeEvent{
			ActiveClusterIndex:   activeOrigIdx,
			InactiveClusterIndex: inactiveOrigIdx,
			ActiveClusterNode:    activeNode,
			InactiveClusterNode:  inactiveNode,
		})
		a.edgeInfo[mergeEdgeIdx].inactiveMergeEvent = len(a.inactiveMergeEvents) - 1

		inactiveCluster := &a.clusters[inactiveOrigIdx]
		if !inactiveCluster.EdgeParts.Empty() {
			timeDiff := (eventTime + remainder) - inactiveCluster.ActiveEndTime
			if timeDiff < -a.epsilon {
				logging.Logf(a.logger, logging.LevelWarning,
					"negative time diff (%v) updating inactive heap %d, clamping to 0", timeDiff, inactiveOrigIdx)
				timeDiff = 0
			}
			inactiveCluster.EdgeParts.AddToHeap(math.Max(0, timeDiff))
		}
	}

	if a.clusters[cluster1Idx].Active {
		c1 := &a.clusters[cluster1Idx]
		c1.Active = false
		c1.ActiveEndTime = eventTime + remainder
		c1.Moat = c1.ActiveEndTime - c1.ActiveStartTime
		a.clustersDeactivation.Delete(cluster1Idx)
		if !c1.EdgeParts.Empty() {
			a.clustersNextEdgeEvent.Delete(cluster1Idx)
		}
		a.numActiveClusters--
	}
	a.clusters[cluster1Idx].MergedInto = newIdx

	if a.clusters[cluster2Idx].Active {
		c2 := &a.clusters[cluster2Idx]
		c2.Active = false
		c2.ActiveEndTime = eventTime + remainder
		c2.Moat = c2.ActiveEndTime - c2.ActiveStartTime
		a.clustersDeactivation.Delete(cluster2Idx)
		if !c2.EdgeParts.Empty() {
			a.clustersNextEdgeEvent.Delete(cluster2Idx)
		}
		a.numActiveClusters--
	}
	a.clusters[cluster2Idx].MergedInto = newIdx

	c1 := a.clusters[cluster1Idx]
	c2 := a.clusters[cluster2Idx]

	newCluster := &a.clusters[newIdx]
	newCluster.PrizeSum = c1.PrizeSum + c2.PrizeSum
	newCluster.SubclusterMoatSum = c1.SubclusterMoatSum + c2.SubclusterMoatSum + c1.Moat + c2.Moat
	newCluster.ContainsRoot = c1.ContainsRoot || c2.ContainsRoot
	newCluster.Active = !newCluster.ContainsRoot
	newCluster.MergedAlong = mergeEdgeIdx
	newCluster.ChildCluster1 = cluster1Idx
	newCluster.ChildCluster2 = cluster2Idx

	newCluster.EdgeParts = pairingheap.Meld(a.clusters[cluster1Idx].EdgeParts, a.clusters[cluster2Idx].EdgeParts)

	if newCluster.Active {
		newCluster.ActiveStartTime = eventTime + remainder
		a.numActiveClusters++

		deactivationTime := newCluster.ActiveStartTime + newCluster.PrizeSum - newCluster.SubclusterMoatSum
		if deactivationTime < newCluster.ActiveStartTime-a.epsilon {
			logging.Logf(a.logger, logging.LevelWarning,
				"potential deactivation time (%v) before start time (%v) for new cluster %d, clamping",
				deactivationTime, newCluster.ActiveStartTime, newIdx)
			deactivationTime = newCluster.ActiveStartTime
		}
		a.clustersDeactivation.Insert(deactivationTime, newIdx)

		if !newCluster.EdgeParts.Empty() {
			minVal, _, _ := newCluster.EdgeParts.PeekMin()
			a.clustersNextEdgeEvent.Insert(minVal, newIdx)
		}
	}

	return newIdx
}

func (a *Algorithm) getNextEdgeEvent() (eventTime float64, clusterIdx, edgePartIdx int, ok bool) {
	for {
		_, cIdx, found := a.clustersNextEdgeEvent.PeekMin()
		if !found {
			return 0, 0, 0, false
		}
		if a.clusters[cIdx].EdgeParts.Empty() {
			a.clustersNextEdgeEvent.Delete(cIdx)
			continue
		}
		minVal, minPart, _ := a.clusters[cIdx].EdgeParts.PeekMin()
		return minVal, cIdx, minPart, true
	}
}

func (a *Algorithm) removeNextEdgeEvent(clusterIdx int) {
	a.clustersNextEdgeEvent.Delete(clusterIdx)
	a.clusters[clusterIdx].EdgeParts.DeleteMin()
	if !a.clusters[clusterIdx].EdgeParts.Empty() {
		minVal, _, _ := a.clusters[clusterIdx].EdgeParts.PeekMin()
		a.clustersNextEdgeEvent.Insert(minVal, clusterIdx)
	}
}

func (a *Algorithm) getNextClusterEvent() (eventTime float64, clusterIdx int, ok bool) {
	return a.clustersDeactivation.PeekMin()
}

func (a *Algorithm) removeNextClusterEvent() {
	a.clustersDeactivation.DeleteMin()
}

// getSumOnEdgePart walks the merge forest from edgePartIdx's original
// endpoint up to its current representative cluster, path-compressing via
// skipUp/skipUpSum as it goes, and returns the accumulated moat sum, the
// portion of it contributed by already-finished (inactive) moats, and the
// representative cluster's index.
func (a *Algorithm) getSumOnEdgePart(edgePartIdx int) (totalSum, finishedMoatSum float64, currentCluster int) {
	var endpoint int
	if edgePartIdx%2 == 0 {
		endpoint = a.graph.Edges[edgePartIdx/2][0]
	} else {
		endpoint = a.graph.Edges[edgePartIdx/2][1]
	}

	totalSum = 0
	currentCluster = endpoint

	a.pathCompressionVisited = a.pathCompressionVisited[:0]

	for a.clusters[currentCluster].MergedInto != InvalidID {
		id := currentCluster
		a.pathCompressionVisited = append(a.pathCompressionVisited, pathVisit{clusterID: id, sum: totalSum})

		if a.clusters[id].SkipUp != InvalidID {
			totalSum += a.clusters[id].SkipUpSum
			currentCluster = a.clusters[id].SkipUp
		} else {
			totalSum += a.clusters[id].Moat
			currentCluster = a.clusters[id].MergedInto
		}
	}

	for _, visited := range a.pathCompressionVisited {
		a.clusters[visited.clusterID].SkipUp = currentCluster
		a.clusters[visited.clusterID].SkipUpSum = totalSum - visited.sum
	}

	root := &a.clusters[currentCluster]
	if root.Active {
		finishedMoatSum = totalSum
		totalSum += a.currentTime - root.ActiveStartTime
	} else {
		totalSum += root.Moat
		finishedMoatSum = totalSum
	}

	return totalSum, finishedMoatSum, currentCluster
}

func (a *Algorithm) markNodesAsGood(startClusterIdx int) {
	a.clusterQueue = a.clusterQueue[:0]
	a.clusterQueue = append(a.clusterQueue, startClusterIdx)
	visited := bitset.New(uint(len(a.clusters)))
	visited.Set(uint(startClusterIdx))

	for qi := 0; qi < len(a.clusterQueue); qi++ {
		idx := a.clusterQueue[qi]
		c := &a.clusters[idx]

		if c.MergedAlong == InvalidID {
			if idx >= 0 && uint(idx) < a.nodeGood.Len() {
				a.nodeGood.Set(uint(idx))
			}
			continue
		}

		if c.ChildCluster1 != InvalidID && !visited.Test(uint(c.ChildCluster1)) {
			visited.Set(uint(c.ChildCluster1))
			a.clusterQueue = append(a.clusterQueue, c.ChildCluster1)
		}
		if c.ChildCluster2 != InvalidID && !visited.Test(uint(c.ChildCluster2)) {
			visited.Set(uint(c.ChildCluster2))
			a.clusterQueue = append(a.clusterQueue, c.ChildCluster2)
		}
	}
}

func (a *Algorithm) buildCoreResult() Result {
	ids := make([]int, len(a.edgeInfo))
	for i := range a.edgeInfo {
		ids[i] = a.edgeInfo[i].inactiveMergeEvent
	}
	return Result{
		Phase1Edges:               a.phase1ResultEdges,
		InitialNodeFilter:         a.nodeGood,
		EdgeInactiveMergeEventIDs: ids,
		InactiveMergeEvents:       a.inactiveMergeEvents,
		FinalClusterState:         a.clusters,
		Statistics:                a.stats,
	}
}
