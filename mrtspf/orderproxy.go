package mrtspf

import "github.com/routeflow/mrtfrr/topology"

// Run performs the full per-source MRT SPF pass of §4.8: the two restricted
// Dijkstras and block-local next-hop assembly (ComputeIslandNextHops),
// inheritance of x's own MRT next-hops up to the GADAG root, and order-proxy
// resolution for every island node outside x's block.
//
// Preconditions: gadag.Build must have already oriented t and assigned
// BlockID/LocalRoot/TopoOrder to every island node.
func Run(t *topology.Topology, x *topology.Node) {
	resetOrderState(t, x)
	ComputeIslandNextHops(t, x)
	inheritToGADAGRoot(t, x)
	resolveOrderProxies(t, x)
}

// resetOrderState clears HIGHER/LOWER/next-hops/order_proxy for every island
// node ahead of a fresh source, per Compute_MRT_NH_For_One_Src_To_Island_Dests's
// leading reset loop: every node's order_proxy defaults to itself.
func resetOrderState(t *topology.Topology, x *topology.Node) {
	for _, y := range t.IslandNodes {
		y.Scratch.Higher = false
		y.Scratch.Lower = false
		y.Scratch.RedNextHops = nil
		y.Scratch.BlueNextHops = nil
		y.Scratch.OrderProxy = y
	}
}

// inheritToGADAGRoot copies x's own MRT next-hops to the GADAG root from its
// next-hops to its own local root, unless x is the GADAG root or x's local
// root already is the GADAG root (§4.8).
func inheritToGADAGRoot(t *topology.Topology, x *topology.Node) {
	root := t.GADAGRoot
	if x == root || x.Scratch.LocalRoot == root {
		return
	}
	L := x.Scratch.LocalRoot
	root.Scratch.BlueNextHops = append([]*topology.Interface(nil), L.Scratch.BlueNextHops...)
	root.Scratch.RedNextHops = append([]*topology.Interface(nil), L.Scratch.RedNextHops...)
	root.Scratch.OrderProxy = L
}

// resolveOrderProxies walks every island node outside {x, GADAGRoot} up its
// localroot chain until it finds an ancestor with non-empty next-hop sets,
// adopting those sets and that ancestor as order_proxy (Set_Edge in the
// original source).
func resolveOrderProxies(t *topology.Topology, x *topology.Node) {
	for _, y := range t.IslandNodes {
		if y == t.GADAGRoot || y == x {
			continue
		}
		setEdge(y)
	}
}

func setEdge(y *topology.Node) {
	if len(y.Scratch.BlueNextHops) == 0 && len(y.Scratch.RedNextHops) == 0 {
		L := y.Scratch.LocalRoot
		setEdge(L)
		y.Scratch.BlueNextHops = append([]*topology.Interface(nil), L.Scratch.BlueNextHops...)
		y.Scratch.RedNextHops = append([]*topology.Interface(nil), L.Scratch.RedNextHops...)
		y.Scratch.OrderProxy = L.Scratch.OrderProxy
	}
}
