package gadag

import "github.com/routeflow/mrtfrr/topology"

// earKind distinguishes the two starting-interface categories §4.5 walks:
// an edge to a not-yet-IN_GADAG DFS child, versus an edge to a
// not-yet-IN_GADAG non-child (necessarily a back edge to an ancestor still
// outside the GADAG).
type earKind int

const (
	childEar earKind = iota
	neighborEar
)

// ConstructEars performs the ear decomposition of §4.5: starting from the
// GADAG root, it repeatedly extends the GADAG with ears (directed paths)
// until every island node and interface is part of it.
//
// It requires lowpoint.Run to have already run over t.
func ConstructEars(t *topology.Topology) {
	root := t.GADAGRoot
	root.Scratch.InGADAG = true
	root.Scratch.LocalRoot = nil

	stack := []*topology.Node{root}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, start := range startingInterfaces(t, x, childEar) {
			if t.Node(start.RemoteNode).Scratch.InGADAG {
				continue
			}
			ear, closedAt := constructEar(t, start, childEar)
			finishEar(x, ear, closedAt, childEar)
			stack = append(stack, ear...)
		}
		for _, start := range startingInterfaces(t, x, neighborEar) {
			if t.Node(start.RemoteNode).Scratch.InGADAG {
				continue
			}
			ear, closedAt := constructEar(t, start, neighborEar)
			finishEar(x, ear, closedAt, neighborEar)
			stack = append(stack, ear...)
		}
	}
}

// startingInterfaces collects x's interfaces eligible to start an ear of the
// requested kind: still pointing at a node not yet IN_GADAG, and classified
// as CHILD (remote's DFSParent is x) or NEIGHBOR (it is not) accordingly.
// ConstructEars re-checks IN_GADAG before starting each ear, since an
// earlier ear in the same pass may have already pulled the remote node into
// the GADAG.
func startingInterfaces(t *topology.Topology, x *topology.Node, kind earKind) []*topology.Interface {
	var out []*topology.Interface
	for _, intf := range x.Scratch.IslandInterfaces {
		remote := t.Node(intf.RemoteNode)
		if remote.Scratch.InGADAG {
			continue
		}
		isChild := remote.Scratch.DFSParent == x
		if kind == childEar && isChild {
			out = append(out, intf)
		} else if kind == neighborEar && !isChild {
			out = append(out, intf)
		}
	}
	return out
}

// constructEar walks from start, directing every traversed interface
// OUTGOING (twin INCOMING), pulling each newly reached node into the GADAG,
// until it reaches a node already IN_GADAG. It returns the list of newly
// added nodes, in walk order, and the node the walk terminated at.
func constructEar(t *topology.Topology, start *topology.Interface, kind earKind) ([]*topology.Node, *topology.Node) {
	var ear []*topology.Node
	cur := start
	for {
		cur.Scratch.Outgoing = true
		cur.Scratch.Undirected = false
		twin := t.Twin(cur)
		twin.Scratch.Incoming = true
		twin.Scratch.Undirected = false

		remote := t.Node(cur.RemoteNode)
		if remote.Scratch.InGADAG {
			return ear, remote
		}
		remote.Scratch.InGADAG = true
		ear = append(ear, remote)

		if kind == childEar {
			cur = remote.Scratch.LowpointParentIntf
		} else {
			cur = remote.Scratch.DFSParentIntf
		}
	}
}

// finishEar assigns localroot to every node the ear just added, per §4.5:
// a CHILD ear that closes back at the node it started from identifies that
// node as a cut vertex and the localroot for the whole ear; any other
// closure means the ear's nodes inherit the closing endpoint's own localroot.
func finishEar(start *topology.Node, ear []*topology.Node, closedAt *topology.Node, kind earKind) {
	var localRoot *topology.Node
	if kind == childEar && closedAt == start {
		start.Scratch.IsCutVertex = true
		localRoot = start
	} else {
		localRoot = closedAt.Scratch.LocalRoot
	}
	for _, n := range ear {
		n.Scratch.LocalRoot = localRoot
	}
}
