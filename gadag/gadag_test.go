package gadag_test

import (
	"testing"

	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/island"
	"github.com/routeflow/mrtfrr/lowpoint"
	"github.com/routeflow/mrtfrr/topology"
	"github.com/stretchr/testify/require"
)

// buildAndRun wires up island identification, interface ordering, GADAG-root
// selection, lowpoint DFS and GADAG construction, in the order every source
// computation runs them, and returns the ready topology.
func buildAndRun(t *testing.T, topo *topology.Topology, computingRouter int) {
	t.Helper()
	topology.ResetScratch(topo)
	island.Identify(topo, topo.Node(computingRouter), 0, 0)
	topology.SortIslandInterfaces(topo)
	_, err := topology.SelectGADAGRoot(topo)
	require.NoError(t, err)
	lowpoint.Run(topo)
	gadag.Build(topo)
}

func ring(t *testing.T, n int) *topology.Topology {
	t.Helper()
	topo := topology.NewTopology()
	for i := 0; i < n; i++ {
		_, err := topo.AddNode(i)
		require.NoError(t, err)
	}
	for i := 0; i < n; i++ {
		_, _, err := topo.AddLink(i, (i+1)%n, 10, 10)
		require.NoError(t, err)
	}
	return topo
}

func TestBuild_RingFullyOriented(t *testing.T) {
	topo := ring(t, 6)
	buildAndRun(t, topo, 0)

	for _, n := range topo.IslandNodes {
		for _, intf := range n.Scratch.IslandInterfaces {
			require.False(t, intf.Scratch.Undirected, "node %d interface to %d must be oriented", n.NodeID, intf.RemoteNode)
		}
	}
}

func TestBuild_RootHasTopoOrderOne(t *testing.T) {
	topo := ring(t, 5)
	buildAndRun(t, topo, 0)

	require.Equal(t, 1, topo.GADAGRoot.Scratch.TopoOrder)
}

func TestBuild_EveryNodeHasDistinctTopoOrder(t *testing.T) {
	topo := ring(t, 7)
	buildAndRun(t, topo, 0)

	seen := make(map[int]bool)
	for _, n := range topo.IslandNodes {
		require.False(t, seen[n.Scratch.TopoOrder], "topo_order %d assigned twice", n.Scratch.TopoOrder)
		seen[n.Scratch.TopoOrder] = true
	}
	require.Len(t, seen, len(topo.IslandNodes))
}

// TestBuild_PendantBlockOffNonRootCutVertexGetsDistinctTopoOrders is a
// regression test for a stageB scoping bug: a pendant triangle hanging off
// a non-root cut vertex (root 0, triangle 0-1-2-0, and a second triangle
// 1-3-4-1 closing back at node 1) used to deadlock kahnTopoSort, because
// stageB only ever cleared the literal GADAG root's own block-closing edge
// instead of every cut vertex's. Nodes 1, 2, 3 and 4 would then never reach
// in-degree zero and keep the Go zero-value TopoOrder, colliding with the
// root's.
func TestBuild_PendantBlockOffNonRootCutVertexGetsDistinctTopoOrders(t *testing.T) {
	topo := topology.NewTopology()
	for i := 0; i < 5; i++ {
		_, err := topo.AddNode(i)
		require.NoError(t, err)
	}
	for _, l := range [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 3}, {3, 4}, {4, 1}} {
		_, _, err := topo.AddLink(l[0], l[1], 10, 10)
		require.NoError(t, err)
	}
	topo.Node(0).GRPriority = topology.RaisedGRPriority // force node 0 as GADAG root

	buildAndRun(t, topo, 0)
	require.Equal(t, topo.Node(0), topo.GADAGRoot)

	seen := make(map[int]bool)
	for _, n := range topo.IslandNodes {
		require.False(t, seen[n.Scratch.TopoOrder], "node %d: topo_order %d assigned twice", n.NodeID, n.Scratch.TopoOrder)
		seen[n.Scratch.TopoOrder] = true
	}
	require.Len(t, seen, 5, "every node, including the pendant block behind cut vertex 1, must get a distinct topo_order")
}

// TestBuild_TwoBlocksShareCutVertex wires two triangles sharing node 0 and
// checks that each triangle's two non-cut-vertex nodes share a block ID and
// that the two triangles get distinct block IDs.
func TestBuild_TwoBlocksShareCutVertex(t *testing.T) {
	topo := topology.NewTopology()
	for i := 0; i < 5; i++ {
		_, err := topo.AddNode(i)
		require.NoError(t, err)
	}
	// Triangle A: 0-1-2-0
	_, _, err := topo.AddLink(0, 1, 10, 10)
	require.NoError(t, err)
	_, _, err = topo.AddLink(1, 2, 10, 10)
	require.NoError(t, err)
	_, _, err = topo.AddLink(2, 0, 10, 10)
	require.NoError(t, err)
	// Triangle B: 0-3-4-0
	_, _, err = topo.AddLink(0, 3, 10, 10)
	require.NoError(t, err)
	_, _, err = topo.AddLink(3, 4, 10, 10)
	require.NoError(t, err)
	_, _, err = topo.AddLink(4, 0, 10, 10)
	require.NoError(t, err)

	topo.Node(0).GRPriority = topology.RaisedGRPriority // force node 0 as GADAG root
	buildAndRun(t, topo, 0)

	require.Equal(t, topo.Node(0), topo.GADAGRoot)

	blockA := map[int]int{1: topo.Node(1).Scratch.BlockID, 2: topo.Node(2).Scratch.BlockID}
	blockB := map[int]int{3: topo.Node(3).Scratch.BlockID, 4: topo.Node(4).Scratch.BlockID}
	require.Equal(t, blockA[1], blockA[2])
	require.Equal(t, blockB[3], blockB[4])
	require.NotEqual(t, blockA[1], blockB[3], "the two triangles must land in distinct blocks")
}
