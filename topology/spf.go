package topology

import (
	"container/heap"
	"math"
)

// PrimarySPF runs an ordinary, unrestricted Dijkstra from root over the full
// node set (every Interface, regardless of direction or island membership),
// and records PrimaryNextHops/PrimarySPFMetric on every reachable node
// (§4.8: "Run a standard Dijkstra (no direction restriction, full topology)
// to produce primary_next_hops and primary_spf_metric for every node.").
func PrimarySPF(t *Topology, root *Node) {
	for _, n := range t.AllNodes() {
		n.Scratch.PrimarySPFMetric = math.MaxInt64
		n.Scratch.PrimaryNextHops = nil
		n.Scratch.SPFVisited = false
	}
	root.Scratch.PrimarySPFMetric = 0

	pq := make(spfPQ, 0, len(t.Nodes))
	heap.Init(&pq)
	heap.Push(&pq, &spfItem{node: root, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*spfItem)
		n := item.node
		if n.Scratch.SPFVisited {
			continue
		}
		n.Scratch.SPFVisited = true

		for _, intf := range n.Interfaces {
			remote := t.Node(intf.RemoteNode)
			nd := n.Scratch.PrimarySPFMetric + int64(intf.Metric)

			var candidateNH []*Interface
			if n == root {
				candidateNH = []*Interface{intf}
			} else {
				candidateNH = n.Scratch.PrimaryNextHops
			}

			switch {
			case nd < remote.Scratch.PrimarySPFMetric:
				remote.Scratch.PrimarySPFMetric = nd
				remote.Scratch.PrimaryNextHops = append([]*Interface(nil), candidateNH...)
				heap.Push(&pq, &spfItem{node: remote, dist: nd})
			case nd == remote.Scratch.PrimarySPFMetric:
				remote.Scratch.PrimaryNextHops = unionInterfaces(remote.Scratch.PrimaryNextHops, candidateNH)
			}
		}
	}
}

// unionInterfaces merges add into existing, skipping interfaces already
// present (by identity), preserving equal-cost multipath next-hop sets.
func unionInterfaces(existing, add []*Interface) []*Interface {
	out := append([]*Interface(nil), existing...)
	for _, intf := range add {
		found := false
		for _, have := range out {
			if have == intf {
				found = true
				break
			}
		}
		if !found {
			out = append(out, intf)
		}
	}
	return out
}

// spfItem pairs a node with its tentative distance at push time; the
// lazy-decrease-key approach discards stale pops via Scratch.SPFVisited.
type spfItem struct {
	node *Node
	dist int64
}

// spfPQ is a min-heap of *spfItem ordered by (dist ascending, node_id
// ascending), matching mrtspf's restricted-Dijkstra tie-break.
type spfPQ []*spfItem

func (pq spfPQ) Len() int { return len(pq) }
func (pq spfPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node.NodeID < pq[j].node.NodeID
}
func (pq spfPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *spfPQ) Push(x interface{}) { *pq = append(*pq, x.(*spfItem)) }
func (pq *spfPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
