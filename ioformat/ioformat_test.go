package ioformat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/routeflow/mrtfrr/driver"
	"github.com/routeflow/mrtfrr/internal/fixtures"
	"github.com/routeflow/mrtfrr/ioformat"
	"github.com/routeflow/mrtfrr/topology"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTopology_ParsesLinksAndCreatesNodes(t *testing.T) {
	path := writeTempFile(t, "topo.csv", "1,2,10\n2,3,10,20\n")

	topo, err := ioformat.ReadTopology(path)
	require.NoError(t, err)
	require.Len(t, topo.Nodes, 3)

	n1 := topo.Node(1)
	require.Len(t, n1.Interfaces, 1)
	require.Equal(t, 10, n1.Interfaces[0].Metric)

	n3 := topo.Node(3)
	require.Len(t, n3.Interfaces, 1)
	require.Equal(t, 20, n3.Interfaces[0].Metric, "reverse_metric column must apply to the 3->2 direction")
}

func TestReadTopology_BadNodeIDReturnsError(t *testing.T) {
	path := writeTempFile(t, "topo.csv", "x,2,10\n")
	_, err := ioformat.ReadTopology(path)
	require.Error(t, err)
}

func TestReadProfiles_MissingFileIsNotAnError(t *testing.T) {
	path := writeTempFile(t, "topo.csv", "1,2,10\n")
	topo, err := ioformat.ReadTopology(path)
	require.NoError(t, err)

	err = ioformat.ReadProfiles(topo, filepath.Join(t.TempDir(), "missing.profile"))
	require.NoError(t, err)
	require.Equal(t, []int{0}, topo.Node(1).ProfileIDs)
}

func TestReadProfiles_ReplacesDefaultProfileSet(t *testing.T) {
	path := writeTempFile(t, "topo.csv", "1,2,10\n")
	topo, err := ioformat.ReadTopology(path)
	require.NoError(t, err)

	profilePath := writeTempFile(t, "topo.profile", "1,0\n1,5\n2,0\n")
	require.NoError(t, ioformat.ReadProfiles(topo, profilePath))

	require.ElementsMatch(t, []int{0, 5}, topo.Node(1).ProfileIDs)
	require.ElementsMatch(t, []int{0}, topo.Node(2).ProfileIDs)
}

func TestReadPrefixes_SkipsOutOfRangePrefixID(t *testing.T) {
	path := writeTempFile(t, "topo.csv", "1,2,10\n")
	topo, err := ioformat.ReadTopology(path)
	require.NoError(t, err)

	prefixPath := writeTempFile(t, "topo.prefix", "2001,1,100\n99,1,5\n")
	require.NoError(t, ioformat.ReadPrefixes(topo, prefixPath))

	require.Equal(t, 100, topo.Node(1).PrefixCost[2001])
	require.NotContains(t, topo.Node(1).PrefixCost, 99)
}

func TestWriteGADAG_OnlySimulationOutgoingInterfacesAppear(t *testing.T) {
	path := writeTempFile(t, "topo.csv", "1,2,10\n")
	topo, err := ioformat.ReadTopology(path)
	require.NoError(t, err)

	n1 := topo.Node(1)
	for _, intf := range n1.Interfaces {
		intf.Scratch = &topology.IntfScratch{}
	}

	outPrefix := filepath.Join(t.TempDir(), "out")
	err = ioformat.WriteGADAG(topo, outPrefix)
	require.NoError(t, err)

	data, err := os.ReadFile(outPrefix + "_gadag.csv")
	require.NoError(t, err)
	require.Equal(t, "local_node,remote_node,local_intf_link_data\n", string(data))
}

func TestWriters_AfterFullRunProduceNonEmptyFiles(t *testing.T) {
	topo := fixtures.Basic()
	cfg := driver.NewRunConfig(
		driver.WithTestGR(fixtures.TestGRNodeID),
		driver.WithRaisedPriority(fixtures.TestGRNodeID),
	)
	require.NoError(t, driver.RunForAllSources(topo, cfg, nil))

	outPrefix := filepath.Join(t.TempDir(), "basic")
	require.NoError(t, ioformat.WriteGADAG(topo, outPrefix))
	require.NoError(t, ioformat.WriteBothMRTs(topo, outPrefix))
	require.NoError(t, ioformat.WriteAlternates(topo, outPrefix))

	for _, suffix := range []string{"_gadag.csv", "_blue_to_all.csv", "_red_to_all.csv", "_alts_to_all.csv"} {
		data, err := os.ReadFile(outPrefix + suffix)
		require.NoError(t, err)
		require.Greater(t, len(data), 0)
	}

	gadagData, err := os.ReadFile(outPrefix + "_gadag.csv")
	require.NoError(t, err)
	require.Greater(t, len(gadagData), len("local_node,remote_node,local_intf_link_data\n"),
		"the test-GADAG-root's run must have captured at least one oriented interface")
}
