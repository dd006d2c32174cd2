package raymondsim

// buildHeapTree returns the initial holder pointer for every node
// 1..n, per spec §4.5: node i (1-indexed) has parent node i/2 (integer
// division), so nodes 2 and 3 point at 1, nodes 4 and 5 point at 2, and
// so on. Node 1 points at itself - it starts as the token holder. This
// is the sole supported topology (spec §1 Non-goals).
func buildHeapTree(n int) map[NodeID]NodeID {
	holders := make(map[NodeID]NodeID, n)
	holders[NodeID(1)] = NodeID(1)
	for i := 2; i <= n; i++ {
		holders[NodeID(i)] = NodeID(i / 2)
	}
	return holders
}

// treeEdges returns the set of undirected {child, parent} edges implied
// by the heap-tree construction, used by the P6 tree-invariance test
// harness to confirm the token migrates without the tree itself
// changing shape.
func treeEdges(n int) map[[2]NodeID]struct{} {
	edges := make(map[[2]NodeID]struct{}, n-1)
	for i := 2; i <= n; i++ {
		child := NodeID(i)
		parent := NodeID(i / 2)
		edges[normalizeEdge(child, parent)] = struct{}{}
	}
	return edges
}

func normalizeEdge(a, b NodeID) [2]NodeID {
	if a < b {
		return [2]NodeID{a, b}
	}
	return [2]NodeID{b, a}
}
