// Package topology defines the graph model shared by every stage of the
// Maximally Redundant Tree (MRT) computation: Node, Interface, Topology,
// Alternate, and NamedProxyNode.
//
// A Topology owns an arena of Nodes keyed by integer node_id (0..999 for real
// routers, 2000..2999 for named proxies advertising an external prefix).
// Each Node owns its Interfaces in insertion order; an Interface's twin is
// resolved by (RemoteNode, RemoteLinkData) rather than by pointer, so the
// arena has no reference cycles and link_data (an interface's index in its
// local node's slice) stays meaningful across the whole computation, matching
// the wire convention used by the CSV outputs (§6 of the specification).
//
// Per-run mutable state (DFS numbers, lowpoint, block IDs, HIGHER/LOWER,
// topo_order, and the rest) lives in a separate Scratch record attached to
// each Node and Interface, so stable topology data and per-source scratch
// data are never confused; ResetScratch reinitializes it before each source's
// computation, as required by the concurrency model.
package topology
