package topology

// ResetScratch reinitializes every node's and interface's per-run
// computation state ahead of a fresh source's MRT run (§3 Lifecycle, §5).
// Stable topology data (NodeID, Interfaces, ProfileIDs, GRPriority,
// PrefixCost, and the accumulated result dicts) is left untouched, and each
// interface's SimulationOutgoing snapshot is carried over into its fresh
// IntfScratch.
func ResetScratch(t *Topology) {
	t.IslandNodes = nil
	t.IslandBorder = make(map[int]*Node)
	t.IslandNeighbors = make(map[int]*Node)
	t.NamedProxies = make(map[int]*NamedProxyNode)
	t.maxBlockID = 0

	for _, n := range t.Nodes {
		n.Scratch = NewNodeScratch()
		for _, intf := range n.Interfaces {
			sim := intf.Scratch != nil && intf.Scratch.SimulationOutgoing
			intf.Scratch = NewIntfScratch()
			intf.Scratch.SimulationOutgoing = sim
		}
	}
}

// NewNodeScratch returns a fresh NodeScratch with DFSNumber, LowpointNumber
// and BlockID set to -1 ("unvisited"/"unassigned") throughout the
// lowpoint/gadag packages; a real DFS number starts at 0 and a real block ID
// at 1 (Topology.NewBlockID).
func NewNodeScratch() *NodeScratch {
	return &NodeScratch{
		DFSNumber:      -1,
		LowpointNumber: -1,
		BlockID:        -1,
	}
}

// NewIntfScratch returns an IntfScratch with Undirected=true, matching every
// interface's state before GADAG orientation begins (I2).
func NewIntfScratch() *IntfScratch {
	return &IntfScratch{Undirected: true}
}
