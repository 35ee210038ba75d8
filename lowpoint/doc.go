// Package lowpoint runs the lowpoint DFS over an identified MRT island
// (§4.4): it assigns each island node a DFS number and DFS parent, then a
// lowpoint number/parent identifying the lowest DFS-numbered (closest to the
// root) ancestor
// reachable from that node's subtree via at most one back edge.
//
// The DFS is threaded through an explicit run struct rather than a package
// level counter, so repeated runs (one per source) never leak state between
// each other and the traversal stays safe to reason about top to bottom, the
// way Run_Lowpoint/Lowpoint_Visit's recursion does in the reference
// implementation but without a mutable global.
package lowpoint
