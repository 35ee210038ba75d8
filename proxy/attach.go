package proxy

import (
	"math"
	"sort"

	"github.com/routeflow/mrtfrr/topology"
)

// CreateNamedProxies builds t.NamedProxies from every node's advertised
// prefixes (Create_Basic_Named_Proxy_Nodes): a prefix advertised by more than
// one node accumulates one ProxyAdvertiser per advertiser.
func CreateNamedProxies(t *topology.Topology) {
	for _, n := range t.AllNodes() {
		for prefix, cost := range n.PrefixCost {
			p, ok := t.NamedProxies[prefix]
			if !ok {
				p = &topology.NamedProxyNode{NodeID: prefix}
				t.NamedProxies[prefix] = p
			}
			p.Advertisers = append(p.Advertisers, topology.ProxyAdvertiser{Node: n, Cost: cost})
		}
	}
}

// ibrLFIN is one island-border router's best path to a given prefix via a
// loop-free island neighbour, local bookkeeping for choosePNARs.
type ibrLFIN struct {
	lfin    *topology.Node
	cost    int
	nhIntfs []*topology.Interface
}

// AttachNamedProxies runs the full §4.10 attachment pipeline: LFIN discovery,
// island-border-router-to-LFIN pairing, and PNAR selection. It requires
// island.BorderAndNeighbors and CreateNamedProxies to have already run for
// the current source's computation.
func AttachNamedProxies(t *topology.Topology) {
	markings := make(map[int]map[int]MarkingResult, len(t.IslandNeighbors))
	for _, nbr := range t.IslandNeighbors {
		markings[nbr.NodeID] = IslandMarkingSPF(t, nbr)
	}
	computeLFINs(t, markings)
	ibrPairs := computeIBRLFINPairs(t)
	choosePNARs(t, ibrPairs)
}

// computeLFINs populates every NamedProxyNode.LFINs: for each prefix, every
// island neighbour whose best path to some advertiser does not itself
// transit the island, paired with the minimum such cost.
func computeLFINs(t *topology.Topology, markings map[int]map[int]MarkingResult) {
	for _, p := range t.NamedProxies {
		p.LFINs = nil
		for _, nbr := range t.IslandNeighbors {
			snap := markings[nbr.NodeID]
			minCost := int64(math.MaxInt64)
			hitsIsland := false
			for _, adv := range p.Advertisers {
				r, ok := snap[adv.Node.NodeID]
				if !ok {
					continue
				}
				cost := r.Metric + int64(adv.Cost)
				switch {
				case cost < minCost:
					minCost = cost
					hitsIsland = r.HitsIsland
				case cost == minCost:
					hitsIsland = hitsIsland || r.HitsIsland
				}
			}
			if minCost < int64(math.MaxInt64) && !hitsIsland {
				p.LFINs = append(p.LFINs, topology.ProxyLFIN{Node: nbr, Cost: int(minCost)})
			}
		}
		sort.Slice(p.LFINs, func(i, j int) bool { return p.LFINs[i].Node.NodeID < p.LFINs[j].Node.NodeID })
	}
}

// computeIBRLFINPairs computes, for every island-border router and every
// prefix, the minimum-metric outgoing interface bundle to the best LFIN for
// that prefix (Compute_Island_Border_Router_LFIN_Pairs_For_Each_Prefix).
func computeIBRLFINPairs(t *topology.Topology) map[int]map[int]ibrLFIN {
	out := make(map[int]map[int]ibrLFIN, len(t.IslandBorder))
	for _, ibr := range t.IslandBorder {
		minIntfMetric := make(map[int]int)
		minIntfList := make(map[int][]*topology.Interface)
		for _, intf := range ibr.Interfaces {
			nbr := t.Node(intf.RemoteNode)
			if _, isNbr := t.IslandNeighbors[nbr.NodeID]; !isNbr {
				continue
			}
			switch existing, ok := minIntfMetric[nbr.NodeID]; {
			case !ok || intf.Metric < existing:
				minIntfMetric[nbr.NodeID] = intf.Metric
				minIntfList[nbr.NodeID] = []*topology.Interface{intf}
			case intf.Metric == existing:
				minIntfList[nbr.NodeID] = append(minIntfList[nbr.NodeID], intf)
			}
		}

		perPrefix := make(map[int]ibrLFIN, len(t.NamedProxies))
		for prefix, p := range t.NamedProxies {
			best := ibrLFIN{cost: math.MaxInt32}
			found := false
			for _, lfin := range p.LFINs {
				m, ok := minIntfMetric[lfin.Node.NodeID]
				if !ok {
					continue
				}
				cost := m + lfin.Cost
				if cost < best.cost {
					best = ibrLFIN{lfin: lfin.Node, cost: cost, nhIntfs: minIntfList[lfin.Node.NodeID]}
					found = true
				}
			}
			if found {
				perPrefix[prefix] = best
			}
		}
		out[ibr.NodeID] = perPrefix
	}
	return out
}

// choosePNARs picks PNAR1/PNAR2 per prefix: every in-island advertiser (cost
// = advertised prefix cost) plus every island-border router with an LFIN
// path (cost = ibr->LFIN->prefix), sorted by (cost asc, node_id asc); PNAR1
// is the first candidate, PNAR2 the first subsequent candidate on a
// different node (Choose_Proxy_Node_Attachment_Routers).
func choosePNARs(t *topology.Topology, ibrPairs map[int]map[int]ibrLFIN) {
	for prefix, p := range t.NamedProxies {
		var candidates []*topology.ProxyNodeAttachmentRouter
		for _, adv := range p.Advertisers {
			if !adv.Node.Scratch.InIsland {
				continue
			}
			candidates = append(candidates, &topology.ProxyNodeAttachmentRouter{
				Prefix: prefix,
				Node:   adv.Node,
				Cost:   adv.Cost,
			})
		}
		for _, ibr := range t.IslandBorder {
			best, ok := ibrPairs[ibr.NodeID][prefix]
			if !ok {
				continue
			}
			candidates = append(candidates, &topology.ProxyNodeAttachmentRouter{
				Prefix:     prefix,
				Node:       ibr,
				Cost:       best.cost,
				MinLFIN:    best.lfin,
				NHIntfList: best.nhIntfs,
			})
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.Cost != b.Cost {
				return a.Cost < b.Cost
			}
			return a.Node.NodeID < b.Node.NodeID
		})

		p.PNAR1, p.PNAR2 = nil, nil
		if len(candidates) == 0 {
			continue
		}
		p.PNAR1 = candidates[0]
		for _, c := range candidates[1:] {
			if c.Node != p.PNAR1.Node {
				p.PNAR2 = c
				break
			}
		}
	}
}
