// Package mrtspf computes, for one source, the MRT next-hop sets for every
// island destination (§4.8). The unrestricted primary next-hops come from
// topology.PrimarySPF, not from this package.
//
// Two Dijkstra-shaped passes run per source: an "increasing" pass that
// only relaxes OUTGOING interfaces and a "decreasing" pass that only relaxes
// INCOMING interfaces, both restricted to the source's own block and
// forbidden from relaxing out of its localroot. A final order_proxy
// resolution pass propagates next-hop sets to destinations outside the
// source's own block.
package mrtspf
