package driver

import (
	"github.com/sirupsen/logrus"

	"github.com/routeflow/mrtfrr/altselect"
	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/island"
	"github.com/routeflow/mrtfrr/lowpoint"
	"github.com/routeflow/mrtfrr/mrtspf"
	"github.com/routeflow/mrtfrr/proxy"
	"github.com/routeflow/mrtfrr/topology"
)

// RunForAllSources computes MRT next-hops, primary next-hops and alternates
// for every node in t acting as source, storing the results on each
// source's BlueNextHops/RedNextHops/PNH/Alts maps (§2, §4.8-§4.10).
//
// Sources inside cfg's test-GADAG-root island run the full pipeline: island
// identification, GADAG construction, restricted SPFs, alternate selection
// and named-proxy attachment. Sources outside it fall back to a plain
// primary SPF plus proxy primary next-hops, matching
// Run_Prim_SPF_for_One_Source in the original source (SPEC_FULL.md Expansion 3).
//
// The GADAG orientation is captured once, at the source whose computed GADAG
// root is itself (mirroring Store_GADAG_and_Named_Proxies_Once), into each
// interface's SimulationOutgoing flag, which later sources'
// topology.ResetScratch calls carry over, so ioformat.WriteGADAG can run
// after RunForAllSources returns. Named-proxy results are not captured this
// way; each source stores its own on its result maps.
func RunForAllSources(t *topology.Topology, cfg RunConfig, log *logrus.Logger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}

	for _, nodeID := range cfg.RaisedPriorityNodeIDs {
		if err := t.RaisePriority(nodeID); err != nil {
			return err
		}
	}

	testGR, err := t.NodeOrErr(cfg.TestGRNodeID)
	if err != nil {
		return err
	}
	t.TestGR = testGR

	topology.ResetScratch(t)
	island.CaptureForTestGR(t, testGR, cfg.ProfileID, cfg.Area)
	inTestGRIsland := make(map[int]bool, len(t.IslandNodesForTestGR))
	for _, n := range t.IslandNodesForTestGR {
		inTestGRIsland[n.NodeID] = true
	}
	addImplicitNonIslandPrefixes(t, inTestGRIsland)

	for _, src := range t.AllNodes() {
		topology.ResetScratch(t)
		entry := log.WithField("source", src.NodeID)

		if !inTestGRIsland[src.NodeID] {
			runPrimaryOnly(t, src)
			continue
		}

		root, storedOnce, err := runFullPipeline(t, src, cfg, entry)
		if err != nil {
			return err
		}
		if storedOnce {
			entry.WithField("gadag_root", root.NodeID).Info("captured GADAG orientation")
		}
	}
	return nil
}

// runPrimaryOnly handles a source outside the test-GADAG-root island: only
// an unrestricted primary SPF is meaningful, so that is all that runs
// (Run_Prim_SPF_for_One_Source).
func runPrimaryOnly(t *topology.Topology, src *topology.Node) {
	topology.PrimarySPF(t, src)
	for _, n := range t.AllNodes() {
		src.PNH[n.NodeID] = n.Scratch.PrimaryNextHops
	}

	proxy.CreateNamedProxies(t)
	proxy.ComputePrimaryNHsForSource(t)
	for prefix, p := range t.NamedProxies {
		src.PNH[prefix] = p.PrimaryNextHops
	}
}

// runFullPipeline runs the complete MRT/alternate/proxy computation for one
// island source and stores every result onto src's maps. It returns the
// GADAG root this source's island selected and whether src was that root
// (the "store once" trigger for GADAG orientation capture).
func runFullPipeline(t *topology.Topology, src *topology.Node, cfg RunConfig, log *logrus.Entry) (*topology.Node, bool, error) {
	island.Identify(t, src, cfg.ProfileID, cfg.Area)
	topology.SortIslandInterfaces(t)

	root, err := topology.SelectGADAGRoot(t)
	if err != nil {
		return nil, false, err
	}

	lowpoint.Run(t)
	gadag.Build(t)
	mrtspf.Run(t, src)

	onAltImpossible := func(d, f *topology.Node, primaryIntf *topology.Interface) {
		entry := log.WithFields(logrus.Fields{"dest": d.NodeID, "failed": f.NodeID})
		if cfg.Strict {
			entry.Panic("altselect: decision table reached an impossible arm")
		}
		entry.Warn("altselect: decision table reached an impossible arm, degrading to USE_RED_OR_BLUE")
	}
	islandAlts := altselect.SelectForSource(t, src, cfg.Rand, onAltImpossible)

	island.BorderAndNeighbors(t)
	proxy.CreateNamedProxies(t)
	proxy.AttachNamedProxies(t)
	proxy.ComputeMRTNHsForSource(src, t)
	proxy.ComputePrimaryNHsForSource(t)

	onProxyAltImpossible := func(p *topology.NamedProxyNode, f *topology.Node, primaryIntf *topology.Interface) {
		entry := log.WithFields(logrus.Fields{"proxy_prefix": p.NodeID, "failed": f.NodeID})
		if cfg.Strict {
			entry.Panic("proxy: decision table reached an impossible arm")
		}
		entry.Warn("proxy: decision table reached an impossible arm, degrading to USE_RED_OR_BLUE")
	}
	proxyAlts := proxy.SelectAltsForSourceToProxies(t, src, cfg.Rand, onProxyAltImpossible)

	storeIslandResults(src, t, islandAlts)
	storeProxyResults(src, t, proxyAlts)

	storedOnce := src == root
	if storedOnce {
		captureGADAGOrientation(t)
	}
	return root, storedOnce, nil
}

// storeIslandResults copies every island destination's transient
// MRT/primary/alternate results onto src's persistent maps
// (Store_MRT_Nexthops_For_One_Src_To_Island_Dests,
// Store_Primary_and_Alts_For_One_Src_To_Island_Dests).
func storeIslandResults(src *topology.Node, t *topology.Topology, alts map[int][]*topology.Alternate) {
	for _, d := range t.IslandNodes {
		if d == src {
			continue
		}
		src.BlueNextHops[d.NodeID] = d.Scratch.BlueNextHops
		src.RedNextHops[d.NodeID] = d.Scratch.RedNextHops
		src.Alts[d.NodeID] = alts[d.NodeID]
	}
	for _, n := range t.AllNodes() {
		src.PNH[n.NodeID] = n.Scratch.PrimaryNextHops
	}
}

// storeProxyResults copies every named proxy's transient MRT/primary/
// alternate results onto src's persistent maps, keyed by prefix_id
// (Store_MRT_NHs_For_One_Src_To_Named_Proxy_Nodes,
// Store_Alts_For_One_Src_To_Named_Proxy_Nodes,
// Store_Primary_NHs_For_One_Src_To_Named_Proxy_Nodes).
func storeProxyResults(src *topology.Node, t *topology.Topology, alts map[int][]*topology.Alternate) {
	for prefix, p := range t.NamedProxies {
		src.BlueNextHops[prefix] = p.BlueNextHops
		src.RedNextHops[prefix] = p.RedNextHops
		src.PNH[prefix] = p.PrimaryNextHops
		src.Alts[prefix] = alts[prefix]
	}
}

// addImplicitNonIslandPrefixes gives every node outside the test-GADAG-root's
// island an implicit prefix (node_id + topology.NonIslandPrefixOffset) at
// cost 0, per §6 — using the test-GR island membership captured once rather
// than a transient per-source Scratch.InIsland flag, since the latter is
// overwritten by every other source's ResetScratch before this would
// otherwise run (Add_Prefixes_for_Non_Island_Nodes).
func addImplicitNonIslandPrefixes(t *topology.Topology, inTestGRIsland map[int]bool) {
	for _, n := range t.AllNodes() {
		if inTestGRIsland[n.NodeID] {
			continue
		}
		n.PrefixCost[n.NodeID+topology.NonIslandPrefixOffset] = 0
	}
}

// captureGADAGOrientation snapshots every island interface's current
// Outgoing flag into SimulationOutgoing, which the next source's
// topology.ResetScratch carries over while it discards Outgoing. This is the
// one GADAG orientation
// ioformat.WriteGADAG ever sees, matching the original's one-shot
// Store_GADAG_and_Named_Proxies_Once capture (§9 Open Question #1).
func captureGADAGOrientation(t *topology.Topology) {
	for _, n := range t.IslandNodes {
		for _, intf := range n.Scratch.IslandInterfaces {
			intf.Scratch.SimulationOutgoing = intf.Scratch.Outgoing
		}
	}
}
