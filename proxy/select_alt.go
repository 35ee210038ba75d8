package proxy

import (
	"math/rand"

	"github.com/routeflow/mrtfrr/altselect"
	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/topology"
)

// tableBlueRed/tableRedBlue/tableRedRed are the three recurring two-of-three
// patterns inside Select_Alternates_Proxy_Node: given the verdicts already
// computed for X and Y individually, they resolve the proxy's own verdict
// (or report the arm the specification declares unreachable).
func tableBlueRed(altToX, altToY altselect.Decision) (altselect.Decision, error) {
	switch {
	case altToX == altselect.UseBlue && altToY == altselect.UseRed:
		return altselect.UseRedOrBlue, nil
	case altToX == altselect.UseBlue:
		return altselect.UseBlue, nil
	case altToY == altselect.UseRed:
		return altselect.UseRed, nil
	default:
		return altselect.UseRedOrBlue, altselect.ErrImpossibleDecision
	}
}

func tableRedBlue(altToX, altToY altselect.Decision) (altselect.Decision, error) {
	switch {
	case altToX == altselect.UseRed && altToY == altselect.UseBlue:
		return altselect.UseRedOrBlue, nil
	case altToX == altselect.UseRed:
		return altselect.UseBlue, nil
	case altToY == altselect.UseBlue:
		return altselect.UseRed, nil
	default:
		return altselect.UseRedOrBlue, altselect.ErrImpossibleDecision
	}
}

func tableRedRed(altToX, altToY altselect.Decision) (altselect.Decision, error) {
	switch {
	case altToX == altselect.UseRed && altToY == altselect.UseRed:
		return altselect.UseRedOrBlue, nil
	case altToX == altselect.UseRed:
		return altselect.UseBlue, nil
	case altToY == altselect.UseRed:
		return altselect.UseRed, nil
	default:
		return altselect.UseRedOrBlue, altselect.ErrImpossibleDecision
	}
}

// selectAlternatesProxyNode is the direct translation of
// Select_Alternates_Proxy_Node's 24-case table: given a named proxy node's
// two attachment routers X, Y (sorted so X.NodeID < Y.NodeID) and their
// order-proxies A, B, it classifies (A, B) against the computing source S's
// localroot and layers the ordinary altselect.Select verdicts for X and Y
// on top.
func selectAlternatesProxyNode(t *topology.Topology, p *topology.NamedProxyNode, f *topology.Node, primaryIntf *topology.Interface) (altselect.Decision, error) {
	s := t.Node(primaryIntf.LocalNode)
	x, y := p.PNARX.Node, p.PNARY.Node
	a, b := x.Scratch.OrderProxy, y.Scratch.OrderProxy

	if f == a && f == b {
		return altselect.PrimNHIsOPForBothXAndY, nil
	}
	if f == a {
		return altselect.UseRed, nil
	}
	if f == b {
		return altselect.UseBlue, nil
	}

	if !gadag.InCommonBlock(a, b) {
		switch {
		case gadag.InCommonBlock(f, a):
			return altselect.UseRed, nil
		case gadag.InCommonBlock(f, b):
			return altselect.UseBlue, nil
		default:
			return altselect.UseRedOrBlue, nil
		}
	}
	if !gadag.InCommonBlock(f, a) {
		return altselect.UseRedOrBlue, nil
	}

	// Errors here mean X or Y individually hit an unreachable table arm;
	// the fallback to USE_RED_OR_BLUE on either side is handled below, so
	// there is nothing further to report at this level.
	altToX, _ := altselect.Select(t, x, f, primaryIntf)
	altToY, _ := altselect.Select(t, y, f, primaryIntf)

	if altToX == altselect.UseRedOrBlue && altToY == altselect.UseRedOrBlue {
		return altselect.UseRedOrBlue, nil
	}
	if altToX == altselect.UseRedOrBlue {
		return altselect.UseBlue, nil
	}
	if altToY == altselect.UseRedOrBlue {
		return altselect.UseRed, nil
	}

	sLocalRoot := s.Scratch.LocalRoot

	switch {
	case a == sLocalRoot && b == sLocalRoot:
		return tableBlueRed(altToX, altToY)

	case a == sLocalRoot && b != sLocalRoot:
		switch {
		case b.Scratch.Lower:
			return tableBlueRed(altToX, altToY)
		case b.Scratch.Higher:
			return tableRedBlue(altToX, altToY)
		default:
			return tableRedRed(altToX, altToY)
		}

	case a != sLocalRoot && b == sLocalRoot:
		switch {
		case a.Scratch.Lower:
			return tableRedBlue(altToX, altToY)
		case a.Scratch.Higher:
			return tableBlueRed(altToX, altToY)
		default:
			return tableRedRed(altToX, altToY)
		}

	default: // A and B both differ from S.localroot
		switch {
		case s == a.Scratch.LocalRoot || s == b.Scratch.LocalRoot:
			if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
				return tableBlueRed(altToX, altToY)
			}
			return tableRedBlue(altToX, altToY)

		case a.Scratch.Lower:
			switch {
			case b.Scratch.Higher:
				return tableRedBlue(altToX, altToY)
			case b.Scratch.Lower:
				if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
					return tableBlueRed(altToX, altToY)
				}
				return tableRedBlue(altToX, altToY)
			default:
				if f.Scratch.Lower && !f.Scratch.Higher && f.Scratch.TopoOrder > a.Scratch.TopoOrder {
					return altselect.UseRed, nil
				}
				return altselect.UseBlue, nil
			}

		case a.Scratch.Higher:
			switch {
			case b.Scratch.Higher:
				if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
					return tableBlueRed(altToX, altToY)
				}
				return tableRedBlue(altToX, altToY)
			case b.Scratch.Lower:
				return tableBlueRed(altToX, altToY)
			default:
				if f.Scratch.Higher && !f.Scratch.Lower && f.Scratch.TopoOrder < a.Scratch.TopoOrder {
					return altselect.UseRed, nil
				}
				return altselect.UseBlue, nil
			}

		default:
			switch {
			case b.Scratch.Lower:
				if f.Scratch.Lower && !f.Scratch.Higher && f.Scratch.TopoOrder > b.Scratch.TopoOrder {
					return altselect.UseBlue, nil
				}
				return altselect.UseRed, nil
			case b.Scratch.Higher:
				if f.Scratch.Higher && !f.Scratch.Lower && f.Scratch.TopoOrder < b.Scratch.TopoOrder {
					return altselect.UseBlue, nil
				}
				return altselect.UseRed, nil
			default:
				if a.Scratch.TopoOrder < b.Scratch.TopoOrder {
					return tableBlueRed(altToX, altToY)
				}
				return tableRedBlue(altToX, altToY)
			}
		}
	}
}

// ComputePrimaryNHsForSource (proxy variant) is defined in nexthops.go; this
// file covers alternate selection only.

// SelectAltsForSourceToProxies mirrors
// Select_Alts_For_One_Src_To_Named_Proxy_Nodes: for every named proxy P and
// every one of its primary next-hop interfaces, it classifies the failure
// and fills in P.AltList, returning it keyed by prefix_id.
//
// onImpossible, if non-nil, is invoked once per decision-table arm the
// specification declares unreachable, mirroring altselect.SelectForSource.
func SelectAltsForSourceToProxies(t *topology.Topology, src *topology.Node, rng *rand.Rand, onImpossible func(p *topology.NamedProxyNode, f *topology.Node, primaryIntf *topology.Interface)) map[int][]*topology.Alternate {
	out := make(map[int][]*topology.Alternate, len(t.NamedProxies))

	for prefix, p := range t.NamedProxies {
		p.AltList = nil
		for _, failedIntf := range p.PrimaryNextHops {
			alt := &topology.Alternate{FailedIntf: failedIntf}
			f := t.Node(failedIntf.RemoteNode)

			var decision altselect.Decision
			switch {
			case !failedIntf.Scratch.InIsland:
				decision = proxyNotInIsland
			case p.PNAR1 == nil:
				decision = noPNARsExist
			case src == p.PNAR1.Node:
				decision = srcIsPNAR
			case p.PNAR2 != nil && src == p.PNAR2.Node:
				decision = srcIsPNAR
			case p.PNAR2 == nil:
				var err error
				decision, err = altselect.Select(t, p.PNAR1.Node, f, failedIntf)
				if err != nil && onImpossible != nil {
					onImpossible(p, f, failedIntf)
				}
			default:
				var err error
				decision, err = selectAlternatesProxyNode(t, p, f, failedIntf)
				if err != nil && onImpossible != nil {
					onImpossible(p, f, failedIntf)
				}
			}
			switch decision {
			case proxyNotInIsland:
				alt.Info = "PRIM_NH_FOR_PROXY_NODE_NOT_IN_ISLAND"
			case noPNARsExist:
				alt.Info = "NO_PNARs_EXIST_FOR_THIS_PREFIX"
			case srcIsPNAR:
				alt.Info = "SRC_IS_PNAR"
			default:
				alt.Info = decision.String()
			}

			resolved := decision
			if decision == altselect.UseRedOrBlue {
				if rng.Intn(2) == 0 {
					resolved = altselect.UseRed
				} else {
					resolved = altselect.UseBlue
				}
				alt.RedOrBlue = resolved.String()
			}

			switch {
			case resolved == altselect.UseBlue:
				alt.NextHops = append([]*topology.Interface(nil), p.BlueNextHops...)
				alt.FEC = topology.FECBlue
				alt.Prot = topology.ProtNode
			case resolved == altselect.UseRed:
				alt.NextHops = append([]*topology.Interface(nil), p.RedNextHops...)
				alt.FEC = topology.FECRed
				alt.Prot = topology.ProtNode
			case decision == altselect.PrimNHIsDOrOPForD || decision == altselect.PrimNHIsOPForBothXAndY:
				applyProxyOPForD(t, src, p, f, failedIntf, decision, alt)
			case decision == proxyNotInIsland:
				applyProxyNotInIsland(src, p, alt)
			}

			p.AltList = append(p.AltList, alt)
		}
		out[prefix] = p.AltList
	}
	return out
}

// These three labels never cross into altselect (they are proxy-only), so
// they live here rather than as altselect.Decision constants; they reuse
// Decision's int representation purely as a convenient carrier.
const (
	proxyNotInIsland altselect.Decision = 100 + iota
	noPNARsExist
	srcIsPNAR
)

func applyProxyOPForD(t *topology.Topology, src *topology.Node, p *topology.NamedProxyNode, f *topology.Node, failedIntf *topology.Interface, decision altselect.Decision, alt *topology.Alternate) {
	if failedIntf.Scratch.Outgoing && failedIntf.Scratch.Incoming {
		var cand []*topology.Interface
		minMetric := int(^uint(0) >> 1)
		for _, intf := range src.Scratch.IslandInterfaces {
			if intf == failedIntf || intf.RemoteNode != failedIntf.RemoteNode {
				continue
			}
			switch {
			case intf.Metric < minMetric:
				cand = []*topology.Interface{intf}
				minMetric = intf.Metric
			case intf.Metric == minMetric:
				cand = append(cand, intf)
			}
		}
		if len(cand) > 0 {
			alt.FEC = topology.FECGreen
			alt.Prot = topology.ProtParallelCutlink
			alt.NextHops = cand
		} else {
			alt.FEC = topology.FECNone
			alt.Prot = topology.ProtNone
		}
		return
	}

	var z struct {
		red, blue []*topology.Interface
	}
	if decision == altselect.PrimNHIsDOrOPForD {
		z.red, z.blue = p.PNAR1.Node.Scratch.RedNextHops, p.PNAR1.Node.Scratch.BlueNextHops
	} else {
		z.red, z.blue = p.RedNextHops, p.BlueNextHops
	}
	if altselect.NodeInNextHops(f, z.red) {
		alt.NextHops = append([]*topology.Interface(nil), z.blue...)
		alt.FEC = topology.FECBlue
		alt.Prot = topology.ProtLink
		return
	}
	alt.NextHops = append([]*topology.Interface(nil), z.red...)
	alt.FEC = topology.FECRed
	alt.Prot = topology.ProtLink
}

func applyProxyNotInIsland(src *topology.Node, p *topology.NamedProxyNode, alt *topology.Alternate) {
	switch {
	case p.PNAR2 == nil && src == p.PNAR1.Node:
		alt.FEC = topology.FECNone
		alt.Prot = topology.ProtNone
	case src.BlueToGreen[p.NodeID]:
		alt.NextHops = append([]*topology.Interface(nil), p.RedNextHops...)
		alt.FEC = topology.FECRed
		alt.Prot = topology.ProtLink
	case src.RedToGreen[p.NodeID]:
		alt.NextHops = append([]*topology.Interface(nil), p.BlueNextHops...)
		alt.FEC = topology.FECBlue
		alt.Prot = topology.ProtLink
	default:
		alt.NextHops = append([]*topology.Interface(nil), p.BlueNextHops...)
		alt.FEC = topology.FECBlue
		alt.Prot = topology.ProtLink
	}
}
