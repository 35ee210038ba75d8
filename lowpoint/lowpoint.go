package lowpoint

import "github.com/routeflow/mrtfrr/topology"

// run carries the one piece of mutable state the original recursive
// Lowpoint_Visit threaded through a package-level global: the next DFS
// number to assign.
type run struct {
	nextDFSNumber int
}

// Run performs the lowpoint DFS over t.IslandNodes, starting at t.GADAGRoot,
// and assigns DFSNumber/DFSParent/DFSParentIntf/DFSChildren plus
// LowpointNumber/LowpointParent/LowpointParentIntf to every island node
// (§4.4). It requires topology.SortIslandInterfaces to have already ordered
// each node's IslandInterfaces.
//
// A single DFS from GADAGRoot reaches every island node because the island
// is, by construction, the connected component flood-filled from the
// computing router; visitRemaining is a defensive second pass guarding
// against a caller handing Run a node set that is not actually one
// connected component.
func Run(t *topology.Topology) {
	if t.GADAGRoot == nil || len(t.IslandNodes) == 0 {
		return
	}

	r := &run{}
	visit(t, r, t.GADAGRoot, nil, nil)
	visitRemaining(t, r)
	inheritUnsetLowpointParents(t)
}

// visit is the direct translation of Lowpoint_Visit(x, parent, intf_p_to_x):
// assign x's DFS number, recurse over tree edges, and fold in back edges to
// already-numbered non-parent neighbours.
func visit(t *topology.Topology, r *run, x, parent *topology.Node, intfParentToX *topology.Interface) {
	s := x.Scratch
	s.DFSNumber = r.nextDFSNumber
	s.LowpointNumber = r.nextDFSNumber
	r.nextDFSNumber++

	s.DFSParent = parent
	if intfParentToX != nil {
		s.DFSParentIntf = t.Twin(intfParentToX)
	}
	if parent != nil {
		parent.Scratch.DFSChildren = append(parent.Scratch.DFSChildren, x)
	}

	for _, intf := range s.IslandInterfaces {
		remote := t.Node(intf.RemoteNode)
		if remote.Scratch.DFSNumber == -1 {
			visit(t, r, remote, x, intf)
			if remote.Scratch.LowpointNumber < s.LowpointNumber {
				s.LowpointNumber = remote.Scratch.LowpointNumber
				s.LowpointParent = remote
				s.LowpointParentIntf = intf
			}
			continue
		}
		if remote == parent {
			continue
		}
		if remote.Scratch.DFSNumber < s.LowpointNumber {
			s.LowpointNumber = remote.Scratch.DFSNumber
			s.LowpointParent = remote
			s.LowpointParentIntf = intf
		}
	}
}

// visitRemaining starts a fresh DFS tree, rooted at itself, from any island
// node Run's single pass from GADAGRoot did not reach.
func visitRemaining(t *topology.Topology, r *run) {
	for _, n := range t.IslandNodes {
		if n.Scratch.DFSNumber == -1 {
			visit(t, r, n, nil, nil)
		}
	}
}

// inheritUnsetLowpointParents gives every non-root island node with no
// genuine back edge (LowpointParent still nil after visit) its DFS parent as
// lowpoint parent, per §4.4: "any island node other than the root whose
// lowpoint_parent is still unset inherits dfs_parent / dfs_parent_intf, with
// lowpoint_number set to the parent's dfs_number." This guarantees every
// non-root node's lowpoint_parent_intf is set, which gadag's ear
// construction walks without needing a nil check.
func inheritUnsetLowpointParents(t *topology.Topology) {
	for _, n := range t.IslandNodes {
		if n.Scratch.DFSParent == nil {
			continue // the DFS root(s): no parent to inherit
		}
		if n.Scratch.LowpointParent != nil {
			continue
		}
		n.Scratch.LowpointParent = n.Scratch.DFSParent
		n.Scratch.LowpointParentIntf = n.Scratch.DFSParentIntf
		n.Scratch.LowpointNumber = n.Scratch.DFSParent.Scratch.DFSNumber
	}
}
