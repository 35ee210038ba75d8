package altselect

import (
	"math/rand"

	"github.com/routeflow/mrtfrr/topology"
)

// SelectForSource computes the full Alternate list for every island
// destination D != x, for every one of D's primary next-hop interfaces, and
// returns the lists keyed by D's node_id (ready for the driver to copy into
// x.Alts) — mirroring Select_Alts_For_One_Src_To_Island_Dests.
//
// It runs topology.PrimarySPF(t, x) itself first, matching the original's
// self-contained call to Normal_SPF. rng resolves USE_RED_OR_BLUE verdicts;
// pass a seeded *rand.Rand for reproducible tests (§5 Ordering guarantees).
//
// onImpossible, if non-nil, is invoked once per decision-table arm the
// specification declares unreachable (the driver uses it to log a warning
// and, in Strict mode, panic); a nil value here means the degrade to
// UseRedOrBlue happens silently.
func SelectForSource(t *topology.Topology, x *topology.Node, rng *rand.Rand, onImpossible func(d, f *topology.Node, primaryIntf *topology.Interface)) map[int][]*topology.Alternate {
	topology.PrimarySPF(t, x)

	out := make(map[int][]*topology.Alternate, len(t.IslandNodes))
	for _, d := range t.IslandNodes {
		if d == x {
			continue
		}
		var alts []*topology.Alternate
		for _, failedIntf := range d.Scratch.PrimaryNextHops {
			alt := &topology.Alternate{FailedIntf: failedIntf}
			f := t.Node(failedIntf.RemoteNode)

			var decision Decision
			if !isIslandMember(t, f) {
				// The primary next-hop is not in the MRT Island: either
				// color avoids it, since it is not even in the GADAG.
				decision = UseRedOrBlue
			} else {
				var err error
				decision, err = Select(t, d, f, failedIntf)
				if err != nil && onImpossible != nil {
					onImpossible(d, f, failedIntf)
				}
			}
			alt.Info = decision.String()

			resolved := decision
			if decision == UseRedOrBlue {
				if rng.Intn(2) == 0 {
					resolved = UseRed
				} else {
					resolved = UseBlue
				}
				alt.RedOrBlue = resolved.String()
			}

			switch {
			case decision == PrimNHIsDOrOPForD:
				applyDOrOPForD(t, x, d, f, failedIntf, alt)
			case decision == PrimNHDifferentBlock:
				alt.FEC = topology.FECNone
				alt.Prot = topology.ProtNone
			case resolved == UseBlue:
				alt.NextHops = append([]*topology.Interface(nil), d.Scratch.BlueNextHops...)
				alt.FEC = topology.FECBlue
				alt.Prot = topology.ProtNode
			case resolved == UseRed:
				alt.NextHops = append([]*topology.Interface(nil), d.Scratch.RedNextHops...)
				alt.FEC = topology.FECRed
				alt.Prot = topology.ProtNode
			}

			alts = append(alts, alt)
		}
		out[d.NodeID] = alts
	}
	return out
}

// applyDOrOPForD handles the "failure is the destination itself (or its
// order_proxy)" case: parallel-cutlink handling if the failed interface is a
// cut-link, otherwise ordinary link protection by picking whichever color
// does not route over F.
func applyDOrOPForD(t *topology.Topology, x, d, f *topology.Node, failedIntf *topology.Interface, alt *topology.Alternate) {
	if failedIntf.Scratch.Outgoing && failedIntf.Scratch.Incoming {
		var cand []*topology.Interface
		minMetric := int(^uint(0) >> 1)
		for _, intf := range x.Scratch.IslandInterfaces {
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

	if NodeInNextHops(f, d.Scratch.RedNextHops) {
		alt.NextHops = append([]*topology.Interface(nil), d.Scratch.BlueNextHops...)
		alt.FEC = topology.FECBlue
		alt.Prot = topology.ProtLink
		return
	}
	alt.NextHops = append([]*topology.Interface(nil), d.Scratch.RedNextHops...)
	alt.FEC = topology.FECRed
	alt.Prot = topology.ProtLink
}

func isIslandMember(t *topology.Topology, n *topology.Node) bool {
	return n.Scratch.InIsland
}
