// Package altselect implements the link-failure alternate-selection
// decision tables of §4.8/§4.9: a pure function mapping a destination's
// order-proxy HIGHER/LOWER/topo_order state, the failed primary interface's
// remote node state, and the primary interface's own direction, to a
// USE_BLUE / USE_RED / USE_RED_OR_BLUE verdict.
//
// Grounded on the teacher's builder/errors.go sentinel-error style and
// matrix/ops's pure-function-over-a-case-table shape; translated from
// Select_Alternates_Internal/Select_Alternates in original_source/.
package altselect

import (
	"errors"

	"github.com/routeflow/mrtfrr/gadag"
	"github.com/routeflow/mrtfrr/topology"
)

// ErrImpossibleDecision indicates the decision table in §4.8 reached an arm
// the specification declares unreachable for an MRT-eligible primary
// interface. The driver logs this as a warning and degrades to
// UseRedOrBlue; a Strict driver option instead panics (§7).
var ErrImpossibleDecision = errors.New("altselect: decision table reached an impossible arm")

// Decision is the tagged-enum result of the §4.8/§4.9 decision tables.
type Decision int

const (
	// UseBlue selects the destination's blue_next_hops as the alternate.
	UseBlue Decision = iota
	// UseRed selects the destination's red_next_hops as the alternate.
	UseRed
	// UseRedOrBlue means either tree avoids the failure; resolved by a
	// seedable random (or caller-supplied deterministic) tie-break.
	UseRedOrBlue
	// PrimNHDifferentBlock means the primary next-hop shares no block with
	// the source: no MRT alternate is defined.
	PrimNHDifferentBlock
	// PrimNHIsDOrOPForD means the failure is the destination itself (or its
	// order_proxy): link/parallel-cutlink handling applies instead of the
	// main table.
	PrimNHIsDOrOPForD
	// PrimNHIsOPForBothXAndY means the failure is the order_proxy of both of
	// a named proxy node's attachment routers: proxy-specific cut-link/
	// link-protection handling applies (§4.10).
	PrimNHIsOPForBothXAndY
)

// String renders Decision for diagnostics and Alternate.Info.
func (d Decision) String() string {
	switch d {
	case UseBlue:
		return "USE_BLUE"
	case UseRed:
		return "USE_RED"
	case UseRedOrBlue:
		return "USE_RED_OR_BLUE"
	case PrimNHDifferentBlock:
		return "PRIM_NH_IN_DIFFERENT_BLOCK"
	case PrimNHIsDOrOPForD:
		return "PRIM_NH_IS_D_OR_OP_FOR_D"
	case PrimNHIsOPForBothXAndY:
		return "PRIM_NH_IS_OP_FOR_BOTH_X_AND_Y"
	default:
		return "UNKNOWN"
	}
}

// NodeInNextHops reports whether node is the remote_node of any interface in
// the list. This supersedes a direct interface-membership check
// (§9 Open Question #2 / Is_Remote_Node_In_NH_List in the original source)
// because a failed interface may be MRT_INELIGIBLE and therefore absent from
// the GADAG-derived next-hop lists even when its remote node is present via
// a different parallel interface.
func NodeInNextHops(node *topology.Node, intfs []*topology.Interface) bool {
	for _, intf := range intfs {
		if intf.RemoteNode == node.NodeID {
			return true
		}
	}
	return false
}

// primaryIneligible reports whether the primary interface is MRT_INELIGIBLE
// on either twin, the designed escape hatch for decision-table arms the
// specification otherwise declares unreachable (§7, "primary-ineligible
// fallback" in the glossary).
func primaryIneligible(t *topology.Topology, primaryIntf *topology.Interface) bool {
	twin := t.Twin(primaryIntf)
	return primaryIntf.MRTIneligible || twin.MRTIneligible
}

// Select implements Select_Alternates: it classifies the (destination,
// failure, primary interface) triple and, unless the failure is the
// destination itself or lives in a different block, dispatches into the
// full decision table.
func Select(t *topology.Topology, d, f *topology.Node, primaryIntf *topology.Interface) (Decision, error) {
	s := t.Node(primaryIntf.LocalNode)
	if !gadag.InCommonBlock(f, s) {
		return PrimNHDifferentBlock, nil
	}
	if d == f || d.Scratch.OrderProxy == f {
		return PrimNHIsDOrOPForD, nil
	}
	op := d.Scratch.OrderProxy
	return selectInternal(t, d, f, primaryIntf, op.Scratch.Lower, op.Scratch.Higher, op.Scratch.TopoOrder)
}

// selectInternal is the direct translation of Select_Alternates_Internal's
// 16-row table, parameterised on the destination's order-proxy
// HIGHER/LOWER/topo_order.
func selectInternal(t *topology.Topology, d, f *topology.Node, primaryIntf *topology.Interface, dLower, dHigher bool, dTopoOrder int) (Decision, error) {
	fh, fl, ft := f.Scratch.Higher, f.Scratch.Lower, f.Scratch.TopoOrder

	switch {
	case dHigher && dLower:
		switch {
		case fh && fl:
			if ft > dTopoOrder {
				return UseBlue, nil
			}
			return UseRed, nil
		case fh:
			return UseRed, nil
		case fl:
			return UseBlue, nil
		default:
			if !primaryIneligible(t, primaryIntf) {
				return UseRedOrBlue, ErrImpossibleDecision
			}
			return UseRedOrBlue, nil
		}

	case dHigher:
		switch {
		case fh && fl:
			return UseBlue, nil
		case fl:
			return UseBlue, nil
		case fh:
			if ft > dTopoOrder {
				return UseBlue, nil
			}
			if ft < dTopoOrder {
				return UseRed, nil
			}
			return UseRedOrBlue, ErrImpossibleDecision
		default:
			if !primaryIneligible(t, primaryIntf) {
				return UseRedOrBlue, ErrImpossibleDecision
			}
			return UseRedOrBlue, nil
		}

	case dLower:
		switch {
		case fh && fl:
			return UseRed, nil
		case fh:
			return UseRed, nil
		case fl:
			if ft > dTopoOrder {
				return UseBlue, nil
			}
			if ft < dTopoOrder {
				return UseRed, nil
			}
			return UseRedOrBlue, ErrImpossibleDecision
		default:
			if !primaryIneligible(t, primaryIntf) {
				return UseRedOrBlue, ErrImpossibleDecision
			}
			return UseRedOrBlue, nil
		}

	default: // D is unordered w.r.t. S
		switch {
		case fh && fl:
			switch {
			case primaryIntf.Scratch.Outgoing && primaryIntf.Scratch.Incoming:
				return UseRedOrBlue, nil
			case primaryIntf.Scratch.Outgoing:
				return UseBlue, nil
			case primaryIntf.Scratch.Incoming:
				return UseRed, nil
			default:
				if !primaryIneligible(t, primaryIntf) {
					return UseRedOrBlue, ErrImpossibleDecision
				}
				return UseRed, nil
			}
		case fl:
			return UseRed, nil
		case fh:
			return UseBlue, nil
		default:
			if !primaryIneligible(t, primaryIntf) {
				return UseRedOrBlue, ErrImpossibleDecision
			}
			if ft > dTopoOrder {
				return UseBlue, nil
			}
			return UseRed, nil
		}
	}
}
