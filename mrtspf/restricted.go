package mrtspf

import (
	"container/heap"
	"math"

	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/topology"
)

// direction selects which interface orientation a restricted Dijkstra pass
// relaxes.
type direction int

const (
	increasing direction = iota
	decreasing
)

// ComputeIslandNextHops runs the increasing and decreasing restricted
// Dijkstra passes from x (§4.8) and assembles blue_next_hops/red_next_hops
// for every destination in x's own block. Destinations in other blocks are
// left for resolveOrderProxies, which Run calls afterward.
func ComputeIslandNextHops(t *topology.Topology, x *topology.Node) {
	resetSPFFields(t.IslandNodes)
	runRestricted(t, x, increasing)
	captureCandidates(t, x, increasing)

	resetSPFFields(t.IslandNodes)
	runRestricted(t, x, decreasing)
	captureCandidates(t, x, decreasing)

	assignBlockCrossovers(t, x)
}

// runRestricted relaxes only interfaces matching dir, confined to nodes in
// x's own block (§4.6's InCommonBlock), and never relaxes out of x's
// localroot — the node settles but its own outgoing edges are not explored.
func runRestricted(t *topology.Topology, x *topology.Node, dir direction) {
	localRoot := x.Scratch.LocalRoot

	x.Scratch.SPFMetric = 0
	pq := make(nodePQ, 0, len(x.Scratch.IslandInterfaces))
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{node: x, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		n := item.node
		if n.Scratch.SPFVisited {
			continue
		}
		n.Scratch.SPFVisited = true

		if n == localRoot {
			continue // settled, but do not relax out of the block's localroot
		}

		for _, intf := range n.Scratch.IslandInterfaces {
			if dir == increasing && !intf.Scratch.Outgoing {
				continue
			}
			if dir == decreasing && !intf.Scratch.Incoming {
				continue
			}
			remote := t.Node(intf.RemoteNode)
			if !gadag.InCommonBlock(x, remote) {
				continue
			}
			if remote.Scratch.SPFVisited {
				continue
			}

			nd := n.Scratch.SPFMetric + int64(intf.Metric)
			var candidateNH []*topology.Interface
			if n == x {
				candidateNH = []*topology.Interface{intf}
			} else {
				candidateNH = n.Scratch.NextHops
			}

			switch {
			case nd < remote.Scratch.SPFMetric:
				remote.Scratch.SPFMetric = nd
				remote.Scratch.NextHops = append([]*topology.Interface(nil), candidateNH...)
				heap.Push(&pq, &nodeItem{node: remote, dist: nd})
			case nd == remote.Scratch.SPFMetric:
				remote.Scratch.NextHops = unionInterfaces(remote.Scratch.NextHops, candidateNH)
			}
		}
	}
}

// captureCandidates copies the just-finished pass's settled next-hop sets
// into BlueNextHops (increasing) or RedNextHops (decreasing) and sets the
// HIGHER/LOWER flag, for every node x's block restricted Dijkstra visited.
func captureCandidates(t *topology.Topology, x *topology.Node, dir direction) {
	for _, n := range t.IslandNodes {
		if n == x || !n.Scratch.SPFVisited {
			continue
		}
		nh := append([]*topology.Interface(nil), n.Scratch.NextHops...)
		if dir == increasing {
			n.Scratch.Higher = true
			n.Scratch.BlueNextHops = nh
		} else {
			n.Scratch.Lower = true
			n.Scratch.RedNextHops = nh
		}
	}
}

// assignBlockCrossovers implements §4.8's cross-assignment: for every
// destination y in x's block (y != x), inherit the complementary tree from
// x's localroot L, or swap both trees when y is unordered with respect to x
// within the block.
//
// The membership test here is deliberately the narrower "same block_id"
// (not gadag.InCommonBlock): InCommonBlock also matches y == L itself (x's
// own localroot satisfies x.LocalRoot == y), but L's block_id is always
// different from x's by construction (block IDs change exactly at a
// localroot boundary). Reusing InCommonBlock here would alias L with y in
// the loop body below, corrupting L.Scratch.BlueNextHops/RedNextHops via
// self-referential overwrite in the unordered branch.
func assignBlockCrossovers(t *topology.Topology, x *topology.Node) {
	L := x.Scratch.LocalRoot
	if L == nil {
		return // x's block is the topmost block; nothing further to inherit from
	}
	for _, y := range t.IslandNodes {
		if y == x || y.Scratch.BlockID != x.Scratch.BlockID {
			continue
		}
		switch {
		case y.Scratch.Higher:
			y.Scratch.RedNextHops = append([]*topology.Interface(nil), L.Scratch.RedNextHops...)
		case y.Scratch.Lower:
			y.Scratch.BlueNextHops = append([]*topology.Interface(nil), L.Scratch.BlueNextHops...)
		default:
			y.Scratch.BlueNextHops = append([]*topology.Interface(nil), L.Scratch.RedNextHops...)
			y.Scratch.RedNextHops = append([]*topology.Interface(nil), L.Scratch.BlueNextHops...)
		}
	}
}

// resetSPFFields clears the generic Dijkstra scratch fields (SPFMetric,
// SPFVisited, NextHops) ahead of a fresh pass; BlueNextHops/RedNextHops and
// HIGHER/LOWER are left untouched since later passes build on them.
func resetSPFFields(nodes []*topology.Node) {
	for _, n := range nodes {
		n.Scratch.SPFMetric = math.MaxInt64
		n.Scratch.SPFVisited = false
		n.Scratch.NextHops = nil
	}
}

// unionInterfaces merges add into existing, skipping interfaces already
// present (by identity), preserving equal-cost multipath next-hop sets.
func unionInterfaces(existing, add []*topology.Interface) []*topology.Interface {
	out := append([]*topology.Interface(nil), existing...)
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
