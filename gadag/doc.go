// Package gadag builds the Generalised Almost-Directed Acyclic Graph over an
// identified, lowpoint-numbered MRT island: ear decomposition from the GADAG
// root (§4.5), block-ID assignment over the DFS tree (§4.6), and orientation
// completion of every remaining undirected interface (§4.7, three stages).
//
// Build requires lowpoint.Run to have already populated DFSParent/
// DFSChildren/LowpointParent/LowpointParentIntf for every island node.
package gadag
