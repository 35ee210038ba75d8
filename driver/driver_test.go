package driver_test

import (
	"math/rand"
	"testing"

	"github.com/routeflow/mrtfrr/driver"
	"github.com/routeflow/mrtfrr/internal/fixtures"
	"github.com/stretchr/testify/require"
)

func TestRunForAllSources_BasicTopologyProducesTwoColorsForEveryIslandDest(t *testing.T) {
	topo := fixtures.Basic()
	cfg := driver.NewRunConfig(
		driver.WithTestGR(fixtures.TestGRNodeID),
		driver.WithRaisedPriority(fixtures.TestGRNodeID),
		driver.WithRand(rand.New(rand.NewSource(7))),
	)

	err := driver.RunForAllSources(topo, cfg, nil)
	require.NoError(t, err)

	root := topo.Node(fixtures.TestGRNodeID)
	require.NotNil(t, root)

	// Every node reachable from the root within its island got both an
	// MRT blue and red next-hop set stored on the root's result maps.
	found := false
	for destID, blue := range root.BlueNextHops {
		found = true
		require.NotEmpty(t, blue, "dest %d missing blue next-hops", destID)
		require.NotEmpty(t, root.RedNextHops[destID], "dest %d missing red next-hops", destID)
	}
	require.True(t, found, "expected at least one island destination")
}

func TestRunForAllSources_EveryNodeGetsPrimaryNextHops(t *testing.T) {
	// The basic fixture is a single connected island, so every source
	// still stores a primary next-hop set for every other node.
	topo := fixtures.Basic()
	cfg := driver.NewRunConfig(driver.WithTestGR(fixtures.TestGRNodeID))
	err := driver.RunForAllSources(topo, cfg, nil)
	require.NoError(t, err)

	for _, src := range topo.AllNodes() {
		require.NotEmpty(t, src.PNH, "node %d stored no primary next-hops", src.NodeID)
	}
}

func TestRunForAllSources_ComplexTopologyComputesNamedProxyNextHops(t *testing.T) {
	topo := fixtures.Complex()
	cfg := driver.NewRunConfig(
		driver.WithTestGR(fixtures.TestGRNodeID),
		driver.WithRaisedPriority(fixtures.TestGRNodeID),
		driver.WithRand(rand.New(rand.NewSource(3))),
	)

	err := driver.RunForAllSources(topo, cfg, nil)
	require.NoError(t, err)

	root := topo.Node(fixtures.TestGRNodeID)
	// Prefix 2001 is advertised by nodes 5, 7 and 3 (all in-island), so it
	// must resolve to a named proxy with both colors populated.
	require.NotEmpty(t, root.BlueNextHops[2001])
	require.NotEmpty(t, root.RedNextHops[2001])
}
