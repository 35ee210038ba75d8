package proxy

import "github.com/routeflow/mrtfrr/topology"

// sortPNARs returns the PNAR pair ordered (X, Y) with X.Node.NodeID <
// Y.Node.NodeID, and records it on P.PNARX/P.PNARY for later alternate
// selection (§4.10).
func sortPNARs(p *topology.NamedProxyNode) (x, y *topology.Node) {
	if p.PNAR1.Node.NodeID < p.PNAR2.Node.NodeID {
		p.PNARX, p.PNARY = p.PNAR1, p.PNAR2
	} else {
		p.PNARX, p.PNARY = p.PNAR2, p.PNAR1
	}
	return p.PNARX.Node, p.PNARY.Node
}

// selectProxyNodeNHs is the direct translation of Select_Proxy_Node_NHs: a
// nested-conditional table on {A vs S.localroot, B vs S.localroot,
// B.LOWER/HIGHER/unordered, A.LOWER/HIGHER/unordered, A.topo_order vs
// B.topo_order} that picks X's or Y's blue/red next-hops (or a mirrored
// swap) as P's blue/red next-hops.
func selectProxyNodeNHs(p *topology.NamedProxyNode, s *topology.Node) {
	x, y := sortPNARs(p)
	a, b := x.Scratch.OrderProxy, y.Scratch.OrderProxy
	sLocalRoot := s.Scratch.LocalRoot

	cp := func(dst *[]*topology.Interface, src []*topology.Interface) {
		*dst = append([]*topology.Interface(nil), src...)
	}

	switch {
	case a == sLocalRoot && b == sLocalRoot:
		cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
		cp(&p.RedNextHops, y.Scratch.RedNextHops)

	case a == sLocalRoot && b != sLocalRoot:
		switch {
		case b.Scratch.Lower:
			cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
			cp(&p.RedNextHops, y.Scratch.RedNextHops)
		case b.Scratch.Higher:
			cp(&p.BlueNextHops, x.Scratch.RedNextHops)
			cp(&p.RedNextHops, y.Scratch.BlueNextHops)
		default:
			cp(&p.BlueNextHops, x.Scratch.RedNextHops)
			cp(&p.RedNextHops, y.Scratch.RedNextHops)
		}

	case a != sLocalRoot && b == sLocalRoot:
		switch {
		case a.Scratch.Lower:
			cp(&p.BlueNextHops, x.Scratch.RedNextHops)
			cp(&p.RedNextHops, y.Scratch.BlueNextHops)
		case a.Scratch.Higher:
			cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
			cp(&p.RedNextHops, y.Scratch.RedNextHops)
		default:
			cp(&p.BlueNextHops, x.Scratch.RedNextHops)
			cp(&p.RedNextHops, y.Scratch.RedNextHops)
		}

	default: // A and B both differ from S.localroot
		switch {
		case s == a.Scratch.LocalRoot || s == b.Scratch.LocalRoot:
			if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
				cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
				cp(&p.RedNextHops, y.Scratch.RedNextHops)
			} else {
				cp(&p.BlueNextHops, x.Scratch.RedNextHops)
				cp(&p.RedNextHops, y.Scratch.BlueNextHops)
			}
		case a.Scratch.Lower:
			switch {
			case b.Scratch.Higher:
				cp(&p.BlueNextHops, x.Scratch.RedNextHops)
				cp(&p.RedNextHops, y.Scratch.BlueNextHops)
			case b.Scratch.Lower:
				if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
					cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
					cp(&p.RedNextHops, y.Scratch.RedNextHops)
				} else {
					cp(&p.BlueNextHops, x.Scratch.RedNextHops)
					cp(&p.RedNextHops, y.Scratch.BlueNextHops)
				}
			default:
				cp(&p.BlueNextHops, x.Scratch.RedNextHops)
				cp(&p.RedNextHops, y.Scratch.RedNextHops)
			}
		case a.Scratch.Higher:
			switch {
			case b.Scratch.Higher:
				if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
					cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
					cp(&p.RedNextHops, y.Scratch.RedNextHops)
				} else {
					cp(&p.BlueNextHops, x.Scratch.RedNextHops)
					cp(&p.RedNextHops, y.Scratch.BlueNextHops)
				}
			case b.Scratch.Lower:
				cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
				cp(&p.RedNextHops, y.Scratch.RedNextHops)
			default:
				cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
				cp(&p.RedNextHops, y.Scratch.BlueNextHops)
			}
		default:
			switch {
			case b.Scratch.Lower:
				cp(&p.BlueNextHops, x.Scratch.RedNextHops)
				cp(&p.RedNextHops, y.Scratch.RedNextHops)
			case b.Scratch.Higher:
				cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
				cp(&p.RedNextHops, y.Scratch.BlueNextHops)
			default:
				if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
					cp(&p.BlueNextHops, x.Scratch.BlueNextHops)
					cp(&p.RedNextHops, y.Scratch.RedNextHops)
				} else {
					cp(&p.BlueNextHops, x.Scratch.RedNextHops)
					cp(&p.RedNextHops, y.Scratch.BlueNextHops)
				}
			}
		}
	}
}

// ComputeMRTNHsForSource assembles every NamedProxyNode's blue/red
// next-hops for source s (Compute_MRT_NHs_For_One_Src_To_Named_Proxy_Nodes):
// a single-PNAR prefix inherits PNAR1's trees (or, if s is that PNAR,
// attaches directly via the LFIN interface bundle and marks the
// blue/red-to-green flag); a two-PNAR prefix runs selectProxyNodeNHs and
// fills in any side left empty because s is one of the PNARs.
func ComputeMRTNHsForSource(s *topology.Node, t *topology.Topology) {
	for _, p := range t.NamedProxies {
		p.BlueNextHops, p.RedNextHops = nil, nil
		if p.PNAR1 == nil {
			continue
		}
		if p.PNAR2 == nil {
			if s == p.PNAR1.Node {
				p.BlueNextHops = append([]*topology.Interface(nil), p.PNAR1.NHIntfList...)
				s.BlueToGreen[p.NodeID] = true
				p.RedNextHops = append([]*topology.Interface(nil), p.PNAR1.NHIntfList...)
				s.RedToGreen[p.NodeID] = true
			} else {
				p.BlueNextHops = append([]*topology.Interface(nil), p.PNAR1.Node.Scratch.BlueNextHops...)
				p.RedNextHops = append([]*topology.Interface(nil), p.PNAR1.Node.Scratch.RedNextHops...)
			}
			continue
		}

		selectProxyNodeNHs(p, s)

		var thisPNAR *topology.ProxyNodeAttachmentRouter
		switch s {
		case p.PNAR1.Node:
			thisPNAR = p.PNAR1
		case p.PNAR2.Node:
			thisPNAR = p.PNAR2
		default:
			continue
		}
		if len(p.BlueNextHops) == 0 {
			p.BlueNextHops = append([]*topology.Interface(nil), thisPNAR.NHIntfList...)
			s.BlueToGreen[p.NodeID] = true
		}
		if len(p.RedNextHops) == 0 {
			p.RedNextHops = append([]*topology.Interface(nil), thisPNAR.NHIntfList...)
			s.RedToGreen[p.NodeID] = true
		}
	}
}

// ComputePrimaryNHsForSource assembles every NamedProxyNode's primary
// next-hops from the primary SPF metrics/next-hops of its advertisers,
// already computed by topology.PrimarySPF(t, src)
// (Compute_Primary_NHs_For_One_Src_To_Named_Proxy_Nodes).
func ComputePrimaryNHsForSource(t *topology.Topology) {
	for _, p := range t.NamedProxies {
		p.PrimaryNextHops = nil
		minCost := int64(1<<63 - 1)
		for _, adv := range p.Advertisers {
			total := adv.Node.Scratch.PrimarySPFMetric + int64(adv.Cost)
			switch {
			case total < minCost:
				minCost = total
				p.PrimaryNextHops = append([]*topology.Interface(nil), adv.Node.Scratch.PrimaryNextHops...)
			case total == minCost:
				p.PrimaryNextHops = unionInterfaces(p.PrimaryNextHops, adv.Node.Scratch.PrimaryNextHops)
			}
		}
	}
}

func unionInterfaces(existing, add []*topology.Interface) []*topology.Interface {
	out := append([]*topology.Interface(nil), existing...)
	for _, intf := range add {
		found := false
		for _, have := range out {
			if have == intf {
				found = true
				break
			}
		}
		if !found {
			out = append(out, intf)
		}
	}
	return out
}
