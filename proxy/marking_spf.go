// Package proxy implements the named-proxy-node subsystem of §4.10: for
// each external prefix, it computes the set of loop-free island neighbours
// (LFINs), selects up to two proxy-node attachment routers (PNARs), and
// derives the proxy's blue/red next-hops and alternates via the 24-case
// decision tables layered over altselect.Select.
//
// Grounded on katalvlaran-lvlath/dijkstra for the SPF shape and tsp/matching.go
// for structuring a large nested-decision table; translated from
// Island_Marking_SPF, Compute_Loop_Free_Island_Neighbors_For_Each_Prefix,
// Choose_Proxy_Node_Attachment_Routers, Select_Proxy_Node_NHs and
// Select_Alternates_Proxy_Node in original_source/.
package proxy

import (
	"container/heap"
	"math"

	"github.com/routeflow/mrtfrr/topology"
)

// MarkingResult is one node's settled state from an Island-Marking SPF run:
// its metric from the marking root, and whether the shortest path to it
// crossed any MRT-island node.
type MarkingResult struct {
	Metric     int64
	HitsIsland bool
}

// IslandMarkingSPF runs a full-topology, unrestricted Dijkstra from root,
// propagating a "has this path touched the MRT island yet" flag alongside
// distance (§4.10, the "PATH_HITS_ISLAND" variant distinct from both
// mrtspf's restricted Dijkstra and topology.PrimarySPF). It returns a
// snapshot of every node's settled (metric, hits-island) pair, since the
// scratch fields it uses are shared with every other SPF pass and would
// otherwise be clobbered by the next root's run.
func IslandMarkingSPF(t *topology.Topology, root *topology.Node) map[int]MarkingResult {
	for _, n := range t.AllNodes() {
		n.Scratch.SPFMetric = math.MaxInt64
		n.Scratch.PathHitsIsland = false
		n.Scratch.NextHops = nil
		n.Scratch.SPFVisited = false
	}
	root.Scratch.SPFMetric = 0

	pq := make(markPQ, 0, len(t.Nodes))
	heap.Init(&pq)
	heap.Push(&pq, &markItem{node: root, dist: 0})

	result := make(map[int]MarkingResult, len(t.Nodes))

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*markItem)
		n := item.node
		if n.Scratch.SPFVisited {
			continue
		}
		n.Scratch.SPFVisited = true
		result[n.NodeID] = MarkingResult{Metric: n.Scratch.SPFMetric, HitsIsland: n.Scratch.PathHitsIsland}

		for _, intf := range n.Interfaces {
			remote := t.Node(intf.RemoteNode)
			nd := n.Scratch.SPFMetric + int64(intf.Metric)

			switch {
			case nd < remote.Scratch.SPFMetric:
				remote.Scratch.SPFMetric = nd
				if n == root {
					remote.Scratch.NextHops = []*topology.Interface{intf}
				} else {
					remote.Scratch.NextHops = append([]*topology.Interface(nil), n.Scratch.NextHops...)
				}
				if remote.Scratch.InIsland {
					remote.Scratch.PathHitsIsland = true
				} else {
					remote.Scratch.PathHitsIsland = n.Scratch.PathHitsIsland
				}
				heap.Push(&pq, &markItem{node: remote, dist: nd})
			case nd == remote.Scratch.SPFMetric:
				if remote.Scratch.InIsland {
					remote.Scratch.PathHitsIsland = true
				} else if remote.Scratch.PathHitsIsland || n.Scratch.PathHitsIsland {
					remote.Scratch.PathHitsIsland = true
				}
			}
		}
	}
	return result
}

type markItem struct {
	node *topology.Node
	dist int64
}

type markPQ []*markItem

func (pq markPQ) Len() int { return len(pq) }
func (pq markPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node.NodeID < pq[j].node.NodeID
}
func (pq markPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *markPQ) Push(x interface{}) { *pq = append(*pq, x.(*markItem)) }
func (pq *markPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
