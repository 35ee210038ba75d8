package gadag

import "github.com/routeflow/mrtfrr/topology"

// AssignBlockIDs walks the DFS tree from t.GADAGRoot, assigning every island
// node a block_id (§4.6): a node keeps its parent's block_id unless its
// localroot is the parent itself, which starts a fresh block.
//
// It requires ConstructEars to have already populated LocalRoot for every
// island node.
func AssignBlockIDs(t *topology.Topology) {
	root := t.GADAGRoot
	root.Scratch.BlockID = t.NewBlockID()

	stack := []*topology.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range n.Scratch.DFSChildren {
			if child.Scratch.LocalRoot == n {
				child.Scratch.BlockID = t.NewBlockID()
			} else {
				child.Scratch.BlockID = n.Scratch.BlockID
			}
			stack = append(stack, child)
		}
	}
}

// InCommonBlock reports whether x and y are in a common block (§4.6): their
// block_ids match, or one is the other's localroot.
func InCommonBlock(x, y *topology.Node) bool {
	if x == y {
		return true
	}
	if x.Scratch.BlockID == y.Scratch.BlockID {
		return true
	}
	if x.Scratch.LocalRoot == y || y.Scratch.LocalRoot == x {
		return true
	}
	return false
}
