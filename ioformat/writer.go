package ioformat

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/routeflow/mrtfrr/topology"
)

// pad4/pad3 zero-pad node_id and link_data fields to the widths §6 requires.
func pad4(id int) string { return fmt.Sprintf("%04d", id) }
func pad3(id int) string { return fmt.Sprintf("%03d", id) }

// WriteGADAG emits "<filePrefix>_gadag.csv": one line per interface flagged
// SimulationOutgoing, captured once at the designated test-GADAG-root
// source (§9 Open Question #1; see DESIGN.md).
func WriteGADAG(t *topology.Topology, filePrefix string) error {
	var lines []string
	for _, n := range t.AllNodes() {
		for _, intf := range n.Interfaces {
			if intf.Scratch != nil && intf.Scratch.SimulationOutgoing {
				lines = append(lines, fmt.Sprintf("%s,%s,%s\n",
					pad4(intf.LocalNode), pad4(intf.RemoteNode), pad3(intf.LinkData)))
			}
		}
	}
	sort.Strings(lines)
	return writeFile(filePrefix+"_gadag.csv", "local_node,remote_node,local_intf_link_data\n", lines)
}

// WriteMRT emits "<filePrefix>_<color>_to_all.csv" (color is "blue" or
// "red"): one line per (source-restricted-to-test-GR's-island, dest,
// next-hop interface) triple.
func WriteMRT(t *topology.Topology, color string, filePrefix string) error {
	var dict func(n *topology.Node) map[int][]*topology.Interface
	switch color {
	case "blue":
		dict = func(n *topology.Node) map[int][]*topology.Interface { return n.BlueNextHops }
	case "red":
		dict = func(n *topology.Node) map[int][]*topology.Interface { return n.RedNextHops }
	default:
		return fmt.Errorf("ioformat: unknown MRT color %q", color)
	}

	var lines []string
	for _, n := range t.IslandNodesForTestGR {
		for destID, intfs := range dict(n) {
			for _, intf := range intfs {
				lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s\n",
					pad4(t.GADAGRoot.NodeID), pad4(destID),
					pad4(intf.LocalNode), pad4(intf.RemoteNode), pad3(intf.LinkData)))
			}
		}
	}
	sort.Strings(lines)
	return writeFile(fmt.Sprintf("%s_%s_to_all.csv", filePrefix, color),
		"gadag_root,dest,local_node,remote_node,link_data\n", lines)
}

// WriteBothMRTs writes both the blue and red MRT files.
func WriteBothMRTs(t *topology.Topology, filePrefix string) error {
	if err := WriteMRT(t, "blue", filePrefix); err != nil {
		return err
	}
	return WriteMRT(t, "red", filePrefix)
}

// WriteAlternates emits "<filePrefix>_alts_to_all.csv": one line per
// (dest, failed primary interface, alternate next-hop interface) triple;
// alt_nh fields are the literal string "None" when no alternate exists.
func WriteAlternates(t *topology.Topology, filePrefix string) error {
	var lines []string
	for _, x := range t.IslandNodesForTestGR {
		for destID, alts := range x.Alts {
			for _, alt := range alts {
				nhs := alt.NextHops
				if len(nhs) == 0 {
					nhs = []*topology.Interface{nil}
				}
				for _, altIntf := range nhs {
					altLocal, altRemote, altData := "None", "None", "None"
					if altIntf != nil {
						altLocal = pad4(altIntf.LocalNode)
						altRemote = pad4(altIntf.RemoteNode)
						altData = pad3(altIntf.LinkData)
					}
					lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
						pad4(t.GADAGRoot.NodeID), pad4(destID),
						pad4(alt.FailedIntf.LocalNode), pad4(alt.FailedIntf.RemoteNode), pad3(alt.FailedIntf.LinkData),
						altLocal, altRemote, altData, alt.FEC.String()))
				}
			}
		}
	}
	sort.Strings(lines)
	return writeFile(filePrefix+"_alts_to_all.csv",
		"gadag_root,dest,prim_nh.local_node,prim_nh.remote_node,"+
			"prim_nh.link_data,alt_nh.local_node,alt_nh.remote_node,"+
			"alt_nh.link_data,alt_nh.fec\n", lines)
}

func writeFile(path, header string, lines []string) error {
	var b strings.Builder
	b.WriteString(header)
	for _, l := range lines {
		b.WriteString(l)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
