// Package island identifies the MRT Island: the subgraph of MRT-eligible
// nodes and interfaces reachable from a computing router within a single
// profile and area (§4.2).
//
// Identify uses an explicit-stack flood fill rather than recursion, per the
// specification's re-architecture note on mutable-global recursive
// traversals — there is no shared global counter here, but the iterative
// shape keeps this package's traversal style consistent with gadag's
// explicit-stack ear construction.
package island

import "github.com/routeflow/mrtfrr/topology"

// Identify flood-fills the MRT island reachable from computingRouter for the
// given profileID and area, and populates t.IslandNodes (plus each island
// node's Scratch.IslandInterfaces) ready for SortIslandInterfaces.
//
// If profileID is not among computingRouter's ProfileIDs, the island is left
// empty and no error is returned — per §4.2, this is a valid (if useless)
// outcome, not a failure.
//
// Complexity: O(V + E) over the full topology, bounded by the 0..999 node_id
// range.
func Identify(t *topology.Topology, computingRouter *topology.Node, profileID, area int) {
	if !hasProfile(computingRouter, profileID) {
		return
	}

	computingRouter.Scratch.InIsland = true
	stack := []*topology.Node{computingRouter}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, intf := range n.Interfaces {
			twin := t.Twin(intf)
			if intf.MRTIneligible || twin.MRTIneligible || intf.IGPExcluded {
				continue
			}
			if intf.Area != area {
				continue
			}
			remote := t.Node(intf.RemoteNode)
			if !hasProfile(remote, profileID) {
				continue
			}

			intf.Scratch.InIsland = true
			twin.Scratch.InIsland = true

			if !remote.Scratch.InIsland {
				remote.Scratch.InIsland = true
				stack = append(stack, remote)
			}
		}
	}

	setIslandLists(t)
}

func hasProfile(n *topology.Node, profileID int) bool {
	for _, p := range n.ProfileIDs {
		if p == profileID {
			return true
		}
	}
	return false
}

// setIslandLists populates t.IslandNodes and each island node's
// Scratch.IslandInterfaces from the InIsland flags Identify just set,
// mirroring Set_Island_Intf_and_Node_Lists in the original source.
func setIslandLists(t *topology.Topology) {
	for _, n := range t.AllNodes() {
		if !n.Scratch.InIsland {
			continue
		}
		t.IslandNodes = append(t.IslandNodes, n)
		for _, intf := range n.Interfaces {
			if intf.Scratch.InIsland {
				n.Scratch.IslandInterfaces = append(n.Scratch.IslandInterfaces, intf)
			}
		}
	}
}

// CaptureForTestGR runs Identify for testGR in isolation and snapshots the
// result into t.IslandNodesForTestGR, then clears t.IslandNodes so the
// driver's subsequent per-source loop starts from a clean slate (§9 Open
// Question #1; original source's Compute_Island_Node_List_For_Test_GR).
// Call this once, before the main per-source loop, with every node's
// scratch already reset.
func CaptureForTestGR(t *topology.Topology, testGR *topology.Node, profileID, area int) {
	Identify(t, testGR, profileID, area)
	t.IslandNodesForTestGR = t.IslandNodes
	t.IslandNodes = nil
}

// BorderAndNeighbors scans the full node set for island-border routers
// (in-island nodes with an interface into a non-island node) and island
// neighbours (the non-island nodes on the far end), populating
// t.IslandBorder and t.IslandNeighbors. This is used by the proxy-node
// subsystem (§4.10), not by the island/GADAG computation itself.
func BorderAndNeighbors(t *topology.Topology) {
	for _, n := range t.AllNodes() {
		if n.Scratch.InIsland {
			continue
		}
		for _, intf := range n.Interfaces {
			remote := t.Node(intf.RemoteNode)
			if remote.Scratch.InIsland {
				t.IslandNeighbors[n.NodeID] = n
				t.IslandBorder[remote.NodeID] = remote
			}
		}
	}
}
