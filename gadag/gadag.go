package gadag

import "github.com/routeflow/mrtfrr/topology"

// Build runs the full GADAG construction pipeline over t (§4.5-§4.7): ear
// decomposition, block-ID assignment, and orientation completion.
//
// Preconditions: island.Identify, topology.SortIslandInterfaces,
// topology.SelectGADAGRoot, and lowpoint.Run must already have populated
// t.IslandNodes, t.GADAGRoot, and every island node's DFS/lowpoint fields.
func Build(t *topology.Topology) {
	ConstructEars(t)
	AssignBlockIDs(t)
	CompleteOrientation(t)
}
