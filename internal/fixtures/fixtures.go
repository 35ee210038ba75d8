// Package fixtures builds the two example topologies from
// original_source/ programmatically, for use by the example subcommand and
// by integration tests: "basic" (a bare link CSV, the plain-SPF-only
// profile/prefix case) and "complex" (the same links plus a profile file
// and three named-proxy prefixes), matching
// Create_Basic_Topology_Input_File and Create_Complex_Topology_Input_File.
package fixtures

import "github.com/routeflow/mrtfrr/topology"

type link struct {
	local, remote, metric int
	reverseMetric         int // 0 means "same as metric"
}

// basicLinks is the link set shared by both example topologies.
var basicLinks = []link{
	{1, 2, 10, 0}, {2, 3, 10, 0}, {3, 4, 11, 0}, {4, 5, 10, 20},
	{5, 6, 10, 0}, {6, 7, 10, 0}, {6, 7, 10, 0}, {6, 7, 15, 0},
	{7, 1, 10, 0}, {7, 51, 10, 0}, {51, 52, 10, 0}, {52, 53, 10, 0},
	{53, 3, 10, 0}, {1, 55, 10, 0}, {55, 6, 10, 0},
	{4, 12, 10, 0}, {12, 13, 10, 0}, {13, 14, 10, 0}, {14, 15, 10, 0},
	{15, 16, 10, 0}, {16, 17, 10, 0}, {17, 4, 10, 0},
	{5, 76, 10, 0}, {76, 77, 10, 0}, {77, 78, 10, 0}, {78, 79, 10, 0}, {79, 77, 10, 0},
}

// TestGRNodeID is the GADAG root both example scenarios raise priority on
// (Generate_Basic_Topology_and_Run_MRT, Generate_Complex_Topology_and_Run_MRT).
const TestGRNodeID = 3

func buildTopology() *topology.Topology {
	t := topology.NewTopology()
	seen := make(map[int]bool)
	for _, l := range basicLinks {
		for _, id := range []int{l.local, l.remote} {
			if !seen[id] {
				seen[id] = true
				_, _ = t.AddNode(id)
			}
		}
	}
	for _, l := range basicLinks {
		rev := l.reverseMetric
		if rev == 0 {
			rev = l.metric
		}
		_, _, _ = t.AddLink(l.local, l.remote, l.metric, rev)
	}
	return t
}

// Basic builds the "basic" example topology: the bare link set, every node
// defaulting to profile 0 and no named-proxy prefixes.
func Basic() *topology.Topology {
	return buildTopology()
}

// complexProfileNodeIDs is every node explicitly listed in the complex
// topology's .profile file, all assigned profile 0 (a no-op relative to
// AddNode's default, included for fidelity to the original fixture).
var complexProfileNodeIDs = []int{1, 2, 3, 4, 5, 6, 7, 51, 55, 12, 13, 14, 15, 16, 17, 76, 77, 78, 79}

type prefixAd struct {
	prefix, node, cost int
}

var complexPrefixes = []prefixAd{
	{2001, 5, 100}, {2001, 7, 120}, {2001, 3, 130},
	{2002, 13, 100}, {2002, 15, 110},
	{2003, 52, 100}, {2003, 78, 100},
}

// Complex builds the "complex" example topology: the same link set, plus
// the profile file (all listed nodes on profile 0) and three advertised
// prefixes (2001, 2002, 2003) with multiple advertisers each, exercising
// the named-proxy-node subsystem (§4.10).
func Complex() *topology.Topology {
	t := buildTopology()
	for _, id := range complexProfileNodeIDs {
		if n := t.Node(id); n != nil {
			n.ProfileIDs = []int{0}
		}
	}
	for _, p := range complexPrefixes {
		if n := t.Node(p.node); n != nil {
			n.PrefixCost[p.prefix] = p.cost
		}
	}
	return t
}
