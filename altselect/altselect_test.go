package altselect_test

import (
	"math/rand"
	"testing"

	"github.com/routeflow/mrtfrr/altselect"
	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/island"
	"github.com/routeflow/mrtfrr/lowpoint"
	"github.com/routeflow/mrtfrr/mrtspf"
	"github.com/routeflow/mrtfrr/topology"
	"github.com/stretchr/testify/require"
)

// ring builds an n-node cycle: every node has exactly two primary next-hop
// directions, so every link failure has an alternate available.
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

func runFullPipeline(t *testing.T, topo *topology.Topology, root int) {
	t.Helper()
	topology.ResetScratch(topo)
	island.Identify(topo, topo.Node(root), 0, 0)
	topology.SortIslandInterfaces(topo)
	_, err := topology.SelectGADAGRoot(topo)
	require.NoError(t, err)
	lowpoint.Run(topo)
	gadag.Build(topo)
	mrtspf.Run(topo, topo.Node(root))
}

func TestSelectForSource_RingGivesEveryDestinationAnAlternate(t *testing.T) {
	topo := ring(t, 6)
	runFullPipeline(t, topo, 0)

	rng := rand.New(rand.NewSource(1))
	alts := altselect.SelectForSource(topo, topo.Node(0), rng, nil)

	for destID, destAlts := range alts {
		require.NotEmpty(t, destAlts, "dest %d got no alternates", destID)
		for _, alt := range destAlts {
			require.NotEmpty(t, alt.Info, "dest %d failure over %d produced no decision label",
				destID, alt.FailedIntf.RemoteNode)
		}
	}
}

func TestNodeInNextHops_FindsAndMissesCorrectly(t *testing.T) {
	topo := ring(t, 4)
	a := &topology.Interface{LocalNode: 0, RemoteNode: 1}
	b := &topology.Interface{LocalNode: 0, RemoteNode: 2}

	require.True(t, altselect.NodeInNextHops(topo.Node(1), []*topology.Interface{a, b}))
	require.False(t, altselect.NodeInNextHops(topo.Node(3), []*topology.Interface{a, b}))
}

func TestSelectForSource_DoubledRingEdgeYieldsAlternatesWithKnownProtection(t *testing.T) {
	// Two parallel links from 0 to 1 (metrics 10 and 12) plus a path
	// around through 2 and 3 back to 0, forming a ring with one doubled
	// edge; neither parallel link is a cut-link, since the ring also
	// connects 0 and 1.
	topo := topology.NewTopology()
	for i := 0; i < 4; i++ {
		_, err := topo.AddNode(i)
		require.NoError(t, err)
	}
	_, _, err := topo.AddLink(0, 1, 10, 10)
	require.NoError(t, err)
	_, _, err = topo.AddLink(0, 1, 12, 12)
	require.NoError(t, err)
	_, _, err = topo.AddLink(1, 2, 10, 10)
	require.NoError(t, err)
	_, _, err = topo.AddLink(2, 3, 10, 10)
	require.NoError(t, err)
	_, _, err = topo.AddLink(3, 0, 10, 10)
	require.NoError(t, err)

	runFullPipeline(t, topo, 0)
	rng := rand.New(rand.NewSource(2))
	alts := altselect.SelectForSource(topo, topo.Node(0), rng, nil)

	require.NotEmpty(t, alts[1])
	for _, alt := range alts[1] {
		require.Contains(t, []topology.Protection{topology.ProtNode, topology.ProtLink, topology.ProtParallelCutlink, topology.ProtNone}, alt.Prot)
	}
}
