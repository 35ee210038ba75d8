package mrtspf_test

import (
	"testing"

	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/island"
	"github.com/routeflow/mrtfrr/lowpoint"
	"github.com/routeflow/mrtfrr/mrtspf"
	"github.com/routeflow/mrtfrr/topology"
	"github.com/stretchr/testify/require"
)

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

func orientedRing(t *testing.T, n int, root int) *topology.Topology {
	t.Helper()
	topo := ring(t, n)
	topology.ResetScratch(topo)
	island.Identify(topo, topo.Node(root), 0, 0)
	topology.SortIslandInterfaces(topo)
	_, err := topology.SelectGADAGRoot(topo)
	require.NoError(t, err)
	lowpoint.Run(topo)
	gadag.Build(topo)
	return topo
}

func TestComputeIslandNextHops_EveryDestGetsBothColors(t *testing.T) {
	topo := orientedRing(t, 6, 0)
	x := topo.GADAGRoot

	mrtspf.ComputeIslandNextHops(topo, x)

	for _, y := range topo.IslandNodes {
		if y == x {
			continue
		}
		require.NotEmpty(t, y.Scratch.BlueNextHops, "node %d missing blue next-hops", y.NodeID)
		require.NotEmpty(t, y.Scratch.RedNextHops, "node %d missing red next-hops", y.NodeID)
	}
}

func TestComputeIslandNextHops_BlueAndRedLeaveTheSourceByDifferentLinks(t *testing.T) {
	// On a simple ring, the blue (increasing) and red (decreasing) trees must
	// fan out over the GADAG root's two distinct ring directions.
	topo := orientedRing(t, 6, 0)
	x := topo.GADAGRoot

	mrtspf.ComputeIslandNextHops(topo, x)

	var adjacent *topology.Node
	for _, y := range topo.IslandNodes {
		if y != x {
			adjacent = y
			break
		}
	}
	require.NotNil(t, adjacent)
	require.NotEqual(t, adjacent.Scratch.BlueNextHops[0].RemoteNode, adjacent.Scratch.RedNextHops[0].RemoteNode,
		"increasing and decreasing trees must not leave the source over the same first hop on a simple ring")
}

func TestRun_NonBlockRootSourceGetsOrderProxyResolution(t *testing.T) {
	topo := orientedRing(t, 6, 0)
	var x *topology.Node
	for _, n := range topo.IslandNodes {
		if n != topo.GADAGRoot {
			x = n
			break
		}
	}
	require.NotNil(t, x)

	mrtspf.Run(topo, x)

	for _, y := range topo.IslandNodes {
		if y == x {
			continue
		}
		require.NotNil(t, y.Scratch.OrderProxy, "node %d must always resolve to some order proxy", y.NodeID)
	}
}
