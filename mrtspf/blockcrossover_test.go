package mrtspf

import (
	"testing"

	"github.com/routeflow/mrtfrr/topology"
	"github.com/stretchr/testify/require"
)

// TestAssignBlockCrossovers_LocalRootItselfIsNeverOverwritten is a
// regression test for a membership-test bug: assignBlockCrossovers must
// select destinations by exact BlockID equality, not gadag.InCommonBlock,
// because InCommonBlock also matches y == L (x's own localroot). Aliasing L
// with a same-block y in the loop corrupted L's own
// BlueNextHops/RedNextHops via the "unordered" branch's self-referential
// overwrite (reading L.Scratch.BlueNextHops after it had already been
// written on the line above).
func TestAssignBlockCrossovers_LocalRootItselfIsNeverOverwritten(t *testing.T) {
	topo := topology.NewTopology()
	for _, id := range []int{1, 2, 3} {
		_, err := topo.AddNode(id)
		require.NoError(t, err)
	}
	topology.ResetScratch(topo)

	x := topo.Node(1)
	l := topo.Node(2) // x's localroot, in a different block
	y := topo.Node(3) // a genuine same-block destination

	x.Scratch.BlockID = 10
	l.Scratch.BlockID = 20 // different block from x, by construction
	y.Scratch.BlockID = 10 // same block as x

	x.Scratch.LocalRoot = l
	topo.IslandNodes = []*topology.Node{x, l, y}

	sentinelBlue := []*topology.Interface{{LocalNode: 2, RemoteNode: 99}}
	sentinelRed := []*topology.Interface{{LocalNode: 2, RemoteNode: 98}}
	l.Scratch.BlueNextHops = sentinelBlue
	l.Scratch.RedNextHops = sentinelRed

	// y is unordered with respect to x (neither Higher nor Lower set),
	// the branch that previously aliased L with y when y == L.
	assignBlockCrossovers(topo, x)

	require.Equal(t, sentinelBlue, l.Scratch.BlueNextHops, "x's own localroot must never be touched by assignBlockCrossovers")
	require.Equal(t, sentinelRed, l.Scratch.RedNextHops, "x's own localroot must never be touched by assignBlockCrossovers")

	require.Equal(t, sentinelRed, y.Scratch.BlueNextHops, "unordered y must inherit L's red tree as its blue tree")
	require.Equal(t, sentinelBlue, y.Scratch.RedNextHops, "unordered y must inherit L's blue tree as its red tree")
}

// TestAssignBlockCrossovers_HigherAndLowerBranches exercises the other two
// arms of the §4.8 cross-assignment against the same fixed L, confirming
// the narrowed membership test does not change their behavior.
func TestAssignBlockCrossovers_HigherAndLowerBranches(t *testing.T) {
	topo := topology.NewTopology()
	for _, id := range []int{1, 2, 3, 4} {
		_, err := topo.AddNode(id)
		require.NoError(t, err)
	}
	topology.ResetScratch(topo)

	x := topo.Node(1)
	l := topo.Node(2)
	higherY := topo.Node(3)
	lowerY := topo.Node(4)

	x.Scratch.BlockID = 10
	l.Scratch.BlockID = 20
	higherY.Scratch.BlockID = 10
	lowerY.Scratch.BlockID = 10

	x.Scratch.LocalRoot = l
	topo.IslandNodes = []*topology.Node{x, l, higherY, lowerY}

	l.Scratch.BlueNextHops = []*topology.Interface{{LocalNode: 2, RemoteNode: 99}}
	l.Scratch.RedNextHops = []*topology.Interface{{LocalNode: 2, RemoteNode: 98}}

	higherY.Scratch.Higher = true
	higherY.Scratch.RedNextHops = []*topology.Interface{{LocalNode: 3, RemoteNode: 1}}
	lowerY.Scratch.Lower = true
	lowerY.Scratch.BlueNextHops = []*topology.Interface{{LocalNode: 4, RemoteNode: 1}}

	assignBlockCrossovers(topo, x)

	require.Equal(t, l.Scratch.RedNextHops, higherY.Scratch.RedNextHops, "HIGHER y inherits L's red tree")
	require.Equal(t, l.Scratch.BlueNextHops, lowerY.Scratch.BlueNextHops, "LOWER y inherits L's blue tree")
}
