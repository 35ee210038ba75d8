package topology

import "sort"

// SortIslandInterfaces stably reorders every island node's IslandInterfaces
// slice by (metric ascending, remote node_id ascending), per §4.1. Every
// later algorithm (lowpoint DFS, ear construction, restricted SPF) depends on
// this order for reproducibility.
func SortIslandInterfaces(t *Topology) {
	for _, n := range t.IslandNodes {
		ifs := n.Scratch.IslandInterfaces
		sort.SliceStable(ifs, func(i, j int) bool {
			a, b := ifs[i], ifs[j]
			if a.Metric != b.Metric {
				return a.Metric < b.Metric
			}
			return a.RemoteNode < b.RemoteNode
		})
	}
}
