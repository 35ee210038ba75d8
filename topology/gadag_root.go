package topology

import "sort"

// SelectGADAGRoot picks the GADAG root (§4.3) from t.IslandNodes: the node
// with the highest (GRPriority, NodeID) lexicographically. It sets
// t.GADAGRoot and returns it, or ErrNoIslandNodes if the island is empty.
func SelectGADAGRoot(t *Topology) (*Node, error) {
	if len(t.IslandNodes) == 0 {
		return nil, ErrNoIslandNodes
	}
	candidates := make([]*Node, len(t.IslandNodes))
	copy(candidates, t.IslandNodes)
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.GRPriority != b.GRPriority {
			return a.GRPriority < b.GRPriority
		}
		return a.NodeID < b.NodeID
	})
	root := candidates[len(candidates)-1]
	t.GADAGRoot = root
	return root, nil
}
