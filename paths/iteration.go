package paths

import "github.com/quarkline/qmap/arch"

// IterationOrder computes a node order in which every node after the
// first is coupled to some node earlier in the walk, together with the
// couplings that discovered each node. Consumers replaying the order in
// reverse can eliminate nodes one at a time while keeping the remainder
// connected.
//
// Nodes are returned in reverse-discovery order. Returns ErrNoNodes on an
// empty architecture and ErrDisconnected when some node can never be
// reached from the start.
func IterationOrder(a *arch.Architecture) ([]arch.Node, []arch.Edge, error) {
	n := a.NNodes()
	if n == 0 {
		return nil, nil, ErrNoNodes
	}

	edges := a.Edges()
	visited := map[arch.Node]bool{a.NodeAt(0): true}
	order := []arch.Node{a.NodeAt(0)}
	var used []arch.Edge

	for len(visited) < n {
		grown := false
		for _, e := range edges {
			var fresh arch.Node
			switch {
			case visited[e.From] && !visited[e.To]:
				fresh = e.To
			case visited[e.To] && !visited[e.From]:
				fresh = e.From
			default:
				continue
			}
			visited[fresh] = true
			order = append(order, fresh)
			used = append(used, e)
			grown = true
		}
		if !grown {
			return nil, nil, ErrDisconnected
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, used, nil
}
