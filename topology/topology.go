package topology

import (
	"fmt"
	"sort"
)

// NewTopology returns an empty Topology ready for AddNode/AddLink calls.
func NewTopology() *Topology {
	return &Topology{
		Nodes:           make(map[int]*Node),
		IslandBorder:    make(map[int]*Node),
		IslandNeighbors: make(map[int]*Node),
		NamedProxies:    make(map[int]*NamedProxyNode),
	}
}

// AddNode registers a new Node with the given node_id, defaulting to profile
// 0 and GR priority DefaultGRPriority. Returns ErrNodeIDOutOfRange or
// ErrDuplicateNode.
func (t *Topology) AddNode(nodeID int) (*Node, error) {
	if nodeID < MinNodeID || nodeID > MaxNodeID {
		return nil, fmt.Errorf("%w: %d", ErrNodeIDOutOfRange, nodeID)
	}
	if _, exists := t.Nodes[nodeID]; exists {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, nodeID)
	}
	n := &Node{
		NodeID:       nodeID,
		ProfileIDs:   []int{0},
		GRPriority:   DefaultGRPriority,
		PrefixCost:   make(map[int]int),
		BlueNextHops: make(map[int][]*Interface),
		RedNextHops:  make(map[int][]*Interface),
		PNH:          make(map[int][]*Interface),
		Alts:         make(map[int][]*Alternate),
		BlueToGreen:  make(map[int]bool),
		RedToGreen:   make(map[int]bool),
	}
	t.Nodes[nodeID] = n
	return n, nil
}

// Node returns the node with the given node_id, or nil if absent. Callers
// that need an error should use NodeOrErr.
func (t *Topology) Node(nodeID int) *Node {
	return t.Nodes[nodeID]
}

// NodeOrErr returns the node with the given node_id, or ErrNodeNotFound.
func (t *Topology) NodeOrErr(nodeID int) (*Node, error) {
	n, ok := t.Nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, nodeID)
	}
	return n, nil
}

// AddLink creates a bidirectional pair of Interfaces between local and
// remote, with the given metric in the local->remote direction and
// reverseMetric in remote->local. Area is recorded on both twins; the link
// is area 0 unless the caller sets interfaces' Area afterward.
//
// link_data for each twin is its index within its own node's Interfaces
// slice at insertion time, matching the CSV wire convention (§6).
func (t *Topology) AddLink(local, remote, metric, reverseMetric int) (fwd, rev *Interface, err error) {
	localNode, err := t.NodeOrErr(local)
	if err != nil {
		return nil, nil, err
	}
	remoteNode, err := t.NodeOrErr(remote)
	if err != nil {
		return nil, nil, err
	}

	fwd = &Interface{
		LocalNode:      local,
		RemoteNode:     remote,
		Metric:         metric,
		LinkData:       len(localNode.Interfaces),
		RemoteLinkData: len(remoteNode.Interfaces),
	}
	rev = &Interface{
		LocalNode:      remote,
		RemoteNode:     local,
		Metric:         reverseMetric,
		LinkData:       len(remoteNode.Interfaces),
		RemoteLinkData: len(localNode.Interfaces),
	}
	localNode.Interfaces = append(localNode.Interfaces, fwd)
	remoteNode.Interfaces = append(remoteNode.Interfaces, rev)
	return fwd, rev, nil
}

// Twin returns the other half of the bidirectional link that intf belongs
// to (I1: twin(twin(i)) == i).
func (t *Topology) Twin(intf *Interface) *Interface {
	remote := t.Nodes[intf.RemoteNode]
	return remote.Interfaces[intf.RemoteLinkData]
}

// RaisePriority sets node's GADAG-root selection priority to
// RaisedGRPriority (§4.3, and the original source's
// Raise_GADAG_Root_Selection_Priority).
func (t *Topology) RaisePriority(nodeID int) error {
	n, err := t.NodeOrErr(nodeID)
	if err != nil {
		return err
	}
	n.GRPriority = RaisedGRPriority
	return nil
}

// LowerPriority resets node's GADAG-root selection priority to
// DefaultGRPriority.
func (t *Topology) LowerPriority(nodeID int) error {
	n, err := t.NodeOrErr(nodeID)
	if err != nil {
		return err
	}
	n.GRPriority = DefaultGRPriority
	return nil
}

// NewBlockID allocates the next block ID for the current source's run,
// threading max_block_id as run-scoped Topology state rather than a package
// global (§5, §9 re-architecture note on mutable globals).
func (t *Topology) NewBlockID() int {
	t.maxBlockID++
	return t.maxBlockID
}

// ResetBlockIDCounter restarts block-ID allocation at zero for a fresh
// source computation.
func (t *Topology) ResetBlockIDCounter() {
	t.maxBlockID = 0
}

// AllNodes returns every node in the topology in node_id order, primarily
// for deterministic iteration in the driver and in tests.
func (t *Topology) AllNodes() []*Node {
	out := make([]*Node, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}
