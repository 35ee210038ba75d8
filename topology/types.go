package topology

import "errors"

// Sentinel errors for the topology package.
var (
	// ErrNodeIDOutOfRange indicates a node_id outside the 0..999 range required
	// by the wire format (§6 of the specification).
	ErrNodeIDOutOfRange = errors.New("topology: node_id must be in 0..999")

	// ErrPrefixIDOutOfRange indicates a prefix_id outside the 2000..2999 range.
	ErrPrefixIDOutOfRange = errors.New("topology: prefix_id must be in 2000..2999")

	// ErrNodeNotFound indicates an operation referenced a node_id absent from
	// the Topology's arena.
	ErrNodeNotFound = errors.New("topology: node not found")

	// ErrDuplicateNode indicates AddNode was called twice for the same node_id.
	ErrDuplicateNode = errors.New("topology: node already exists")

	// ErrNoIslandNodes indicates GADAG-root selection was attempted with an
	// empty island (computing router not a member of the requested profile).
	ErrNoIslandNodes = errors.New("topology: island is empty, no GADAG root")
)

// FEC classifies which of the two MRTs (or neither) an Alternate forwards
// over.
type FEC int

const (
	// FECNone means no alternate exists for this (destination, failure) pair.
	FECNone FEC = iota
	// FECBlue means the alternate forwards over the blue MRT next-hops.
	FECBlue
	// FECRed means the alternate forwards over the red MRT next-hops.
	FECRed
	// FECGreen means the alternate forwards over a parallel cut-link, neither
	// tree.
	FECGreen
)

// String renders FEC the way the CSV alt_nh.fec column expects it.
func (f FEC) String() string {
	switch f {
	case FECBlue:
		return "BLUE"
	case FECRed:
		return "RED"
	case FECGreen:
		return "GREEN"
	default:
		return "NO_ALTERNATE"
	}
}

// Protection classifies the failure mode an Alternate guards against.
type Protection int

const (
	// ProtNone means the alternate offers no protection (none exists).
	ProtNone Protection = iota
	// ProtNode means the alternate avoids the failed node entirely
	// (node protection).
	ProtNode
	// ProtLink means the alternate avoids only the failed link, not
	// necessarily the node at its far end (link protection).
	ProtLink
	// ProtParallelCutlink means the alternate is the lowest-metric remaining
	// parallel cut-link to the same neighbor.
	ProtParallelCutlink
)

// String renders Protection the way downstream tooling/logging expects it.
func (p Protection) String() string {
	switch p {
	case ProtNode:
		return "NODE_PROTECTION"
	case ProtLink:
		return "LINK_PROTECTION"
	case ProtParallelCutlink:
		return "PARALLEL_CUTLINK"
	default:
		return "NO_PROTECTION"
	}
}

// DefaultGRPriority is the default GADAG-root selection priority (§4.3).
const DefaultGRPriority = 128

// RaisedGRPriority is the priority assigned by Topology.RaisePriority.
const RaisedGRPriority = 255

// MinNodeID and MaxNodeID bound real router node_ids (§6).
const (
	MinNodeID = 0
	MaxNodeID = 999
)

// MinPrefixID and MaxPrefixID bound NamedProxyNode prefix_ids (§6).
const (
	MinPrefixID = 2000
	MaxPrefixID = 2999
)

// NonIslandPrefixOffset is added to a non-island node's node_id to form its
// implicit advertised prefix (§6): "Non-island nodes additionally receive an
// implicit prefix (node_id + 1000) with cost 0."
const NonIslandPrefixOffset = 1000

// Node is a router in the topology. Interfaces is held in insertion order;
// after island identification, the sorted island copy of §4.1 lives in
// Scratch.IslandInterfaces.
type Node struct {
	NodeID int

	// Interfaces holds this node's half-edges in insertion order (LinkData
	// indexes this slice); it is never re-sorted. SortIslandInterfaces
	// orders Scratch.IslandInterfaces by (metric, remote node_id) instead
	// (§4.1).
	Interfaces []*Interface

	// ProfileIDs records which MRT profiles this node participates in.
	// A node not in profileID's set has an empty island for that profile.
	ProfileIDs []int

	// GRPriority is this node's GADAG-root selection priority (§4.3),
	// DefaultGRPriority unless raised/lowered via Topology.RaisePriority /
	// Topology.LowerPriority.
	GRPriority int

	// PrefixCost maps an advertised prefix_id to its advertisement cost.
	PrefixCost map[int]int

	// Results, keyed by destination node_id, accumulated across sources as
	// the driver computes each source in turn.
	BlueNextHops map[int][]*Interface
	RedNextHops  map[int][]*Interface
	PNH          map[int][]*Interface
	Alts         map[int][]*Alternate

	// BlueToGreen / RedToGreen record, per named-proxy prefix_id, that this
	// node's blue/red path to that proxy actually exits the island via an
	// LFIN rather than through a peer router (§4.10).
	BlueToGreen map[int]bool
	RedToGreen  map[int]bool

	// Scratch holds all per-computation-run mutable state. It is replaced
	// wholesale by ResetScratch at the start of every source's run.
	Scratch *NodeScratch
}

// NodeScratch is the per-run computation state attached to a Node. It is
// discarded and reallocated before each source's MRT computation so stable
// topology data is never confused with transient algorithm state.
type NodeScratch struct {
	IslandInterfaces []*Interface // this node's interfaces that are IN_MRT_ISLAND
	InIsland         bool
	InGADAG          bool

	DFSNumber     int // -1 means unvisited; real numbers start at 0 (the root)
	DFSParent     *Node
	DFSParentIntf *Interface
	DFSChildren   []*Node

	LowpointNumber     int
	LowpointParent     *Node
	LowpointParentIntf *Interface

	LocalRoot   *Node
	BlockID     int
	IsCutVertex bool
	TopoOrder   int
	Unvisited   int // Kahn in-degree counter, orientation completion only

	Higher bool
	Lower  bool

	OrderProxy *Node

	BlueNextHops []*Interface
	RedNextHops  []*Interface

	PrimaryNextHops []*Interface
	PrimarySPFMetric int64

	// SPF scratch, reused by every Dijkstra-shaped pass run against this
	// node within a single source's computation.
	SPFMetric  int64
	SPFVisited bool
	NextHops   []*Interface

	// PathHitsIsland is the Island-Marking SPF flag (§4.10): true once the
	// shortest path from the marking SPF's root to this node has crossed any
	// island node.
	PathHitsIsland bool
}

// Interface is a directed half-edge. Its twin is resolved via
// (RemoteNode, RemoteLinkData), never via a pointer cycle.
type Interface struct {
	LocalNode  int
	RemoteNode int

	// LinkData is this interface's index within LocalNode's Interfaces slice
	// at insertion time — the wire identifier used by every CSV output (§6).
	LinkData int

	// RemoteLinkData is the twin's LinkData within RemoteNode's slice.
	RemoteLinkData int

	Metric int
	Area   int

	MRTIneligible bool
	IGPExcluded   bool

	Scratch *IntfScratch
}

// IntfScratch is the per-run computation state attached to an Interface.
type IntfScratch struct {
	InIsland bool

	Undirected bool
	Incoming   bool
	Outgoing   bool

	IncomingStored bool
	OutgoingStored bool

	Processed bool

	// SimulationOutgoing is captured once, at the designated test-GADAG-root
	// source, carried over by every later ResetScratch, and drives the
	// _gadag.csv output (§9 Open Question #1).
	SimulationOutgoing bool
}

// Alternate is the fast-reroute next-hop computed for one (destination,
// failed primary interface) pair.
type Alternate struct {
	FailedIntf *Interface
	NextHops   []*Interface
	FEC        FEC
	Prot       Protection

	// Info carries the decision-rule label that produced this Alternate
	// (e.g. "USE_BLUE", "PRIM_NH_IS_D_OR_OP_FOR_D"), useful for diagnostics
	// and tests; it is not part of the wire format.
	Info string

	// RedOrBlue records the resolved side when Info called for
	// UseRedOrBlue, so repeated inspection of the same Alternate is stable.
	RedOrBlue string
}

// ProxyNodeAttachmentRouter (PNAR) is a candidate attachment point for a
// NamedProxyNode: either an in-island advertiser of the prefix, or an island
// border router reaching the prefix via a loop-free island neighbour (LFIN).
type ProxyNodeAttachmentRouter struct {
	Prefix int
	Node   *Node
	Cost   int

	// MinLFIN is set only for island-border-router PNARs: the LFIN minimizing
	// (ibr -> LFIN cost + LFIN -> prefix cost).
	MinLFIN *Node

	// NHIntfList is the minimum-metric outgoing interface bundle from Node to
	// MinLFIN, used as the proxy's next-hops when Node is the computing
	// source (§4.10).
	NHIntfList []*Interface
}

// NamedProxyNode is a synthetic destination for an external prefix advertised
// by one or more real nodes outside (or inside) the MRT island.
type NamedProxyNode struct {
	NodeID int // the prefix_id, 2000..2999 by convention

	// Advertisers lists every (node, advertised cost) pair for this prefix.
	Advertisers []ProxyAdvertiser

	// LFINs lists every loop-free island neighbour able to reach this
	// prefix without transiting the island, with the best-path cost.
	LFINs []ProxyLFIN

	PNAR1, PNAR2 *ProxyNodeAttachmentRouter

	// PNARX/PNARY is the sorted pair (PNARX.Node.NodeID < PNARY.Node.NodeID),
	// used throughout §4.10's decision tables.
	PNARX, PNARY *ProxyNodeAttachmentRouter

	BlueNextHops    []*Interface
	RedNextHops     []*Interface
	PrimaryNextHops []*Interface
	AltList         []*Alternate

	// Scratch mirrors Node.Scratch's order_proxy/topo_order/HIGHER/LOWER
	// fields for proxy-as-destination bookkeeping.
	Scratch *NodeScratch
}

// ProxyAdvertiser pairs a real node advertising a prefix with its cost.
type ProxyAdvertiser struct {
	Node *Node
	Cost int
}

// ProxyLFIN pairs a loop-free island neighbour with its best-path cost to the
// prefix.
type ProxyLFIN struct {
	Node *Node
	Cost int
}

// Topology owns the Node arena and the per-computation-run selections
// (GADAG root, island, named proxies) for the current source.
type Topology struct {
	Nodes map[int]*Node

	// GADAGRoot is set fresh for each source by SelectGADAGRoot.
	GADAGRoot *Node

	// TestGR is the designated root used to scope output files to one
	// island, mirroring the original driver's test_gr (§9 Open Question #1).
	TestGR *Node

	// IslandNodes is the current source's island member list, in node_id
	// ascending order (island.Identify's setIslandLists builds it from
	// Topology.AllNodes, not from the flood fill's own discovery order).
	IslandNodes []*Node

	// IslandNodesForTestGR is TestGR's island membership, captured once
	// (independently of whichever source is currently running) so the four
	// CSV writers can scope their output to one consistent island even as
	// IslandNodes is overwritten by every other source's run (§9 Open
	// Question #1; original source's island_node_list_for_test_gr).
	IslandNodesForTestGR []*Node

	// IslandBorder holds in-island nodes with at least one interface toward
	// an island neighbour (a non-island node adjacent to the island).
	IslandBorder map[int]*Node

	// IslandNeighbors holds non-island nodes adjacent to the island.
	IslandNeighbors map[int]*Node

	// NamedProxies maps prefix_id to its NamedProxyNode for the current
	// source's run.
	NamedProxies map[int]*NamedProxyNode

	// maxBlockID is the running counter threaded through block-ID assignment
	// (§4.6); it is run-scoped state, not a shared mutable global.
	maxBlockID int
}
