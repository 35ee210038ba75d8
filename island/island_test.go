package island_test

import (
	"testing"

	"github.com/routeflow/mrtfrr/island"
	"github.com/routeflow/mrtfrr/topology"
	"github.com/stretchr/testify/require"
)

// chain builds 0-1-2-3 plus a profile-1-only node 4 attached to node 3, and
// node 5 attached to 2 via an MRT-ineligible interface, so Identify has both
// a profile gate and an MRT-ineligibility gate to respect. Scratch state is
// reset, as at the start of every source's run.
func chain(t *testing.T) *topology.Topology {
	t.Helper()
	topo := topology.NewTopology()
	for i := 0; i <= 5; i++ {
		_, err := topo.AddNode(i)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, _, err := topo.AddLink(i, i+1, 10, 10)
		require.NoError(t, err)
	}
	_, _, err := topo.AddLink(3, 4, 10, 10)
	require.NoError(t, err)
	topo.Node(4).ProfileIDs = []int{1}

	fwd, rev, err := topo.AddLink(2, 5, 10, 10)
	require.NoError(t, err)
	fwd.MRTIneligible = true
	rev.MRTIneligible = true
	topology.ResetScratch(topo)
	return topo
}

func TestIdentify_StopsAtProfileMismatchAndIneligibleLink(t *testing.T) {
	topo := chain(t)
	island.Identify(topo, topo.Node(0), 0, 0)

	ids := make([]int, 0, len(topo.IslandNodes))
	for _, n := range topo.IslandNodes {
		ids = append(ids, n.NodeID)
	}
	require.ElementsMatch(t, []int{0, 1, 2, 3}, ids)
}

func TestIdentify_ComputingRouterWithoutProfileYieldsEmptyIsland(t *testing.T) {
	topo := chain(t)
	island.Identify(topo, topo.Node(4), 0, 0)
	require.Empty(t, topo.IslandNodes)
}

func TestCaptureForTestGR_SnapshotsAndClearsIslandNodes(t *testing.T) {
	topo := chain(t)
	island.CaptureForTestGR(topo, topo.Node(0), 0, 0)

	require.Len(t, topo.IslandNodesForTestGR, 4)
	require.Empty(t, topo.IslandNodes, "CaptureForTestGR must leave IslandNodes clean for the per-source loop")
}

func TestBorderAndNeighbors_FindsBorderRouterAndOffIslandNeighbor(t *testing.T) {
	topo := chain(t)
	island.Identify(topo, topo.Node(0), 0, 0)
	island.BorderAndNeighbors(topo)

	require.Contains(t, topo.IslandBorder, 3, "node 3 has an off-island neighbor (4)")
	require.Contains(t, topo.IslandNeighbors, 4)
}
