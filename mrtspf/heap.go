package mrtspf

import "github.com/routeflow/mrtfrr/topology"

// nodeItem pairs a node with its tentative distance at the moment it was
// pushed; stale entries (distance worse than the node's current best) are
// discarded when popped, the lazy-decrease-key approach.
type nodeItem struct {
	node *topology.Node
	dist int64
}

// nodePQ is a min-heap of *nodeItem, ordered by (dist ascending,
// node_id ascending) per §4.8's "Dijkstra uses a min-heap keyed by
// (metric, node_id)".
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node.NodeID < pq[j].node.NodeID
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
