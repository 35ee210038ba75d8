package gadag

import "github.com/routeflow/mrtfrr/topology"

// CompleteOrientation runs §4.7's three stages over an ear-decomposed,
// block-assigned island: it resolves every block-root parallel-interface
// bundle (stage A), computes a Kahn topological order over the resulting
// directed skeleton (stage B), and finally directs every interface still
// left undirected from its lower-topo_order endpoint to its higher one
// (stage C).
func CompleteOrientation(t *topology.Topology) {
	stageA(t)
	stageB(t)
	stageC(t)
}

// stageA aggregates the directional state of every parallel-interface
// bundle at a block root (a cut vertex, or the GADAG root) toward a
// same-block neighbour, per §4.7 stage A.
func stageA(t *topology.Topology) {
	for _, n := range t.IslandNodes {
		if n != t.GADAGRoot && !n.Scratch.IsCutVertex {
			continue
		}
		bundles := make(map[int][]*topology.Interface)
		var order []int
		for _, intf := range n.Scratch.IslandInterfaces {
			remote := t.Node(intf.RemoteNode)
			if !InCommonBlock(n, remote) {
				continue
			}
			if _, ok := bundles[remote.NodeID]; !ok {
				order = append(order, remote.NodeID)
			}
			bundles[remote.NodeID] = append(bundles[remote.NodeID], intf)
		}
		for _, remoteID := range order {
			orientBundle(t, bundles[remoteID])
		}
	}
}

// orientBundle applies the bundle-aggregation rule of §4.7 stage A to one
// set of parallel interfaces between a block root and a single neighbour.
func orientBundle(t *topology.Topology, bundle []*topology.Interface) {
	allUndirected := true
	anyIncoming, anyOutgoing := false, false
	for _, intf := range bundle {
		if !intf.Scratch.Undirected {
			allUndirected = false
		}
		if intf.Scratch.Incoming {
			anyIncoming = true
		}
		if intf.Scratch.Outgoing {
			anyOutgoing = true
		}
	}
	for _, intf := range bundle {
		twin := t.Twin(intf)
		switch {
		case allUndirected:
			setOutgoing(intf, twin)
		case anyIncoming && anyOutgoing:
			setBoth(intf, twin)
		case anyIncoming:
			setIncoming(intf, twin)
		default:
			setOutgoing(intf, twin)
		}
	}
}

func setOutgoing(out, in *topology.Interface) {
	out.Scratch.Outgoing = true
	out.Scratch.Undirected = false
	in.Scratch.Incoming = true
	in.Scratch.Undirected = false
}

func setIncoming(in, out *topology.Interface) {
	in.Scratch.Incoming = true
	in.Scratch.Undirected = false
	out.Scratch.Outgoing = true
	out.Scratch.Undirected = false
}

func setBoth(a, b *topology.Interface) {
	a.Scratch.Incoming = true
	a.Scratch.Outgoing = true
	a.Scratch.Undirected = false
	b.Scratch.Incoming = true
	b.Scratch.Outgoing = true
	b.Scratch.Undirected = false
}

// stageB temporarily clears INCOMING on every block root's own sub-block-
// closing edges, runs a Kahn topological sort over the directed skeleton
// starting at the root, assigns TopoOrder, then restores the cleared edges.
//
// A "block root" is every cut vertex plus the GADAG root itself (the same
// scope stageA uses), not just nodes sharing the root's own BlockID:
// AssignBlockIDs gives every block its own freshly-allocated ID, so the
// root's BlockID is never shared by any other node, and restricting this
// loop to it would leave every non-root block's closing edge INCOMING,
// deadlocking kahnTopoSort behind it. For each such node, only the
// interfaces whose remote node's LocalRoot is that node are its own
// sub-block's closing edges (Modify_Block_Root_Incoming_Links).
func stageB(t *topology.Topology) {
	var stored []*topology.Interface
	for _, n := range t.IslandNodes {
		if n != t.GADAGRoot && !n.Scratch.IsCutVertex {
			continue
		}
		for _, intf := range n.Scratch.IslandInterfaces {
			remote := t.Node(intf.RemoteNode)
			if remote.Scratch.LocalRoot != n {
				continue
			}
			if intf.Scratch.Incoming {
				intf.Scratch.IncomingStored = true
				intf.Scratch.Incoming = false
				stored = append(stored, intf)
			}
		}
	}

	kahnTopoSort(t)

	for _, intf := range stored {
		intf.Scratch.Incoming = true
		intf.Scratch.IncomingStored = false
	}
}

// kahnTopoSort assigns TopoOrder to every island node via a Kahn-style
// topological sort of the directed (OUTGOING) skeleton, forcing the GADAG
// root in first regardless of its computed in-degree.
func kahnTopoSort(t *topology.Topology) {
	for _, n := range t.IslandNodes {
		indegree := 0
		for _, intf := range n.Scratch.IslandInterfaces {
			if intf.Scratch.Incoming {
				indegree++
			}
		}
		n.Scratch.Unvisited = indegree
	}

	enqueued := make(map[int]bool, len(t.IslandNodes))
	queue := []*topology.Node{t.GADAGRoot}
	enqueued[t.GADAGRoot.NodeID] = true

	order := 1
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		n.Scratch.TopoOrder = order
		order++

		for _, intf := range n.Scratch.IslandInterfaces {
			if !intf.Scratch.Outgoing {
				continue
			}
			remote := t.Node(intf.RemoteNode)
			remote.Scratch.Unvisited--
			if remote.Scratch.Unvisited <= 0 && !enqueued[remote.NodeID] {
				enqueued[remote.NodeID] = true
				queue = append(queue, remote)
			}
		}
	}
}

// stageC orients every interface still UNDIRECTED after stages A and B from
// its lower-topo_order endpoint toward its higher one, per §4.7 stage C.
func stageC(t *topology.Topology) {
	done := make(map[*topology.Interface]bool)
	for _, n := range t.IslandNodes {
		for _, intf := range n.Scratch.IslandInterfaces {
			if !intf.Scratch.Undirected || done[intf] {
				continue
			}
			twin := t.Twin(intf)
			done[intf], done[twin] = true, true

			remote := t.Node(intf.RemoteNode)
			if n.Scratch.TopoOrder <= remote.Scratch.TopoOrder {
				setOutgoing(intf, twin)
			} else {
				setOutgoing(twin, intf)
			}
		}
	}
}
