package proxy_test

import (
	"testing"

	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/island"
	"github.com/routeflow/mrtfrr/lowpoint"
	"github.com/routeflow/mrtfrr/mrtspf"
	"github.com/routeflow/mrtfrr/proxy"
	"github.com/routeflow/mrtfrr/topology"
	"github.com/stretchr/testify/require"
)

// ringWithAttachedPrefix builds an n-node cycle plus a pendant node n
// attached to node 0 and advertising a prefix, to exercise named-proxy
// creation and PNAR selection. Node n keeps the default profile and an
// MRT-eligible link, so it is part of the island.
func ringWithAttachedPrefix(t *testing.T, n int, prefix int) *topology.Topology {
	t.Helper()
	topo := topology.NewTopology()
	for i := 0; i <= n; i++ {
		_, err := topo.AddNode(i)
		require.NoError(t, err)
	}
	for i := 0; i < n; i++ {
		_, _, err := topo.AddLink(i, (i+1)%n, 10, 10)
		require.NoError(t, err)
	}
	// node n hangs off node 0 as an in-island pendant, advertising prefix.
	_, _, err := topo.AddLink(0, n, 10, 10)
	require.NoError(t, err)
	topo.Node(n).PrefixCost[prefix] = 50
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
	island.BorderAndNeighbors(topo)
}

func TestCreateNamedProxies_OneAdvertiserPerPrefix(t *testing.T) {
	topo := ringWithAttachedPrefix(t, 5, 2001)
	runFullPipeline(t, topo, 0)

	proxy.CreateNamedProxies(topo)

	p, ok := topo.NamedProxies[2001]
	require.True(t, ok)
	require.Len(t, p.Advertisers, 1)
	require.Equal(t, 5, p.Advertisers[0].Node.NodeID)
	require.Equal(t, 50, p.Advertisers[0].Cost)
}

func TestAttachNamedProxies_SingleAdvertiserBecomesSolePNAR(t *testing.T) {
	topo := ringWithAttachedPrefix(t, 5, 2001)
	runFullPipeline(t, topo, 0)

	proxy.CreateNamedProxies(topo)
	proxy.AttachNamedProxies(topo)

	p := topo.NamedProxies[2001]
	require.NotNil(t, p.PNAR1)
	require.Nil(t, p.PNAR2, "a prefix with a single in-island advertiser has one PNAR")
}

func TestComputeMRTNHsForSource_SinglePNARInheritsItsTrees(t *testing.T) {
	topo := ringWithAttachedPrefix(t, 5, 2001)
	runFullPipeline(t, topo, 0)

	proxy.CreateNamedProxies(topo)
	proxy.AttachNamedProxies(topo)
	proxy.ComputeMRTNHsForSource(topo.Node(0), topo)

	p := topo.NamedProxies[2001]
	require.NotEmpty(t, p.BlueNextHops)
	require.NotEmpty(t, p.RedNextHops)
}

func TestComputePrimaryNHsForSource_UsesLowestCostAdvertiser(t *testing.T) {
	topo := ringWithAttachedPrefix(t, 5, 2001)
	topo.Node(1).PrefixCost[2001] = 5 // a much cheaper off-island-free duplicate advertiser
	runFullPipeline(t, topo, 0)
	topology.PrimarySPF(topo, topo.Node(0))

	proxy.CreateNamedProxies(topo)
	proxy.ComputePrimaryNHsForSource(topo)

	p := topo.NamedProxies[2001]
	require.NotEmpty(t, p.PrimaryNextHops)
}
