package arch

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for architecture construction and queries.
var (
	// ErrSelfLoop indicates a coupling whose endpoints are the same node.
	ErrSelfLoop = errors.New("arch: self-loop coupling not allowed")

	// ErrUnknownNode indicates an operation referenced a node that is not
	// part of the architecture.
	ErrUnknownNode = errors.New("arch: node not found")
)

// DefaultRegister is the register name used by At for plain device nodes.
const DefaultRegister = "node"

// Node identifies a physical location on a device. Nodes are totally
// ordered (register name, then index) and usable as map keys.
type Node struct {
	// Reg is the register the node belongs to.
	Reg string

	// Index is the position of the node within its register.
	Index int
}

// At returns the node with the given index in the default register.
func At(i int) Node { return Node{Reg: DefaultRegister, Index: i} }

// Less reports whether n sorts before o (register name, then index).
func (n Node) Less(o Node) bool {
	if n.Reg != o.Reg {
		return n.Reg < o.Reg
	}

	return n.Index < o.Index
}

// String renders the node as reg[index].
func (n Node) String() string { return fmt.Sprintf("%s[%d]", n.Reg, n.Index) }

// Edge is a coupling between two nodes, stored in the direction supplied.
type Edge struct {
	From Node
	To   Node
}

// Architecture is the connectivity graph of a device.
//
// Nodes keep their insertion order; every iteration below follows that
// order, never map order, so results are deterministic across runs.
type Architecture struct {
	nodes []Node
	index map[Node]int

	// out[i][j] records a coupling i→j as supplied.
	// und[i][j] is the symmetric closure used for matching.
	out map[int]map[int]struct{}
	und map[int]map[int]struct{}
}

// New builds an architecture from a coupling list. Endpoint nodes are
// registered in first-appearance order. Self-loops are rejected.
// Complexity: O(E).
func New(couplings []Edge) (*Architecture, error) {
	a := &Architecture{
		index: make(map[Node]int),
		out:   make(map[int]map[int]struct{}),
		und:   make(map[int]map[int]struct{}),
	}
	for _, e := range couplings {
		if err := a.AddConnection(e.From, e.To); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Line returns the n-node path architecture node[0]-node[1]-…-node[n-1].
func Line(n int) *Architecture {
	couplings := make([]Edge, 0, n-1)
	for i := 0; i+1 < n; i++ {
		couplings = append(couplings, Edge{From: At(i), To: At(i + 1)})
	}
	a, _ := New(couplings) // generated couplings cannot self-loop
	if n == 1 {
		a.AddNode(At(0))
	}

	return a
}

// AddNode registers n if absent and returns its index.
func (a *Architecture) AddNode(n Node) int {
	if i, ok := a.index[n]; ok {
		return i
	}
	i := len(a.nodes)
	a.nodes = append(a.nodes, n)
	a.index[n] = i

	return i
}

// AddConnection records the coupling u→v, registering unseen endpoints.
// Returns ErrSelfLoop when u == v.
func (a *Architecture) AddConnection(u, v Node) error {
	if u == v {
		return ErrSelfLoop
	}
	ui := a.AddNode(u)
	vi := a.AddNode(v)
	link(a.out, ui, vi)
	link(a.und, ui, vi)
	link(a.und, vi, ui)

	return nil
}

func link(adj map[int]map[int]struct{}, u, v int) {
	row, ok := adj[u]
	if !ok {
		row = make(map[int]struct{})
		adj[u] = row
	}
	row[v] = struct{}{}
}

// NNodes returns the number of nodes.
func (a *Architecture) NNodes() int { return len(a.nodes) }

// NConnections returns the number of undirected couplings.
func (a *Architecture) NConnections() int {
	total := 0
	for i := range a.nodes {
		for j := range a.und[i] {
			if i < j {
				total++
			}
		}
	}

	return total
}

// Nodes returns a copy of the node list in insertion order.
func (a *Architecture) Nodes() []Node {
	out := make([]Node, len(a.nodes))
	copy(out, a.nodes)

	return out
}

// HasNode reports whether n belongs to the architecture.
func (a *Architecture) HasNode(n Node) bool {
	_, ok := a.index[n]

	return ok
}

// NodeIndex returns the insertion index of n.
func (a *Architecture) NodeIndex(n Node) (int, bool) {
	i, ok := a.index[n]

	return i, ok
}

// NodeAt returns the node with insertion index i.
// Panics on out-of-range i: indices only come from this architecture.
func (a *Architecture) NodeAt(i int) Node { return a.nodes[i] }

// HasEdge reports whether the coupling u→v exists with that direction.
func (a *Architecture) HasEdge(u, v Node) bool {
	ui, ok := a.index[u]
	if !ok {
		return false
	}
	vi, ok := a.index[v]
	if !ok {
		return false
	}
	_, ok = a.out[ui][vi]

	return ok
}

// Coupled reports whether u and v are connected, ignoring direction.
func (a *Architecture) Coupled(u, v Node) bool {
	ui, ok := a.index[u]
	if !ok {
		return false
	}
	vi, ok := a.index[v]
	if !ok {
		return false
	}
	_, ok = a.und[ui][vi]

	return ok
}

// Degree returns the undirected degree of n, or ErrUnknownNode.
func (a *Architecture) Degree(n Node) (int, error) {
	i, ok := a.index[n]
	if !ok {
		return 0, ErrUnknownNode
	}

	return len(a.und[i]), nil
}

// Neighbours returns the undirected neighbours of n in insertion order.
func (a *Architecture) Neighbours(n Node) ([]Node, error) {
	i, ok := a.index[n]
	if !ok {
		return nil, ErrUnknownNode
	}
	out := make([]Node, 0, len(a.und[i]))
	for j := range a.nodes {
		if _, adj := a.und[i][j]; adj {
			out = append(out, a.nodes[j])
		}
	}

	return out, nil
}

// Edges returns the directed couplings ordered by (from, to) insertion
// index. The order is stable for a given construction sequence.
func (a *Architecture) Edges() []Edge {
	var out []Edge
	for i := range a.nodes {
		for j := range a.nodes {
			if _, ok := a.out[i][j]; ok {
				out = append(out, Edge{From: a.nodes[i], To: a.nodes[j]})
			}
		}
	}

	return out
}

// ConnectivityMatrix returns the symmetric boolean adjacency matrix over
// node insertion indices. The diagonal is always false.
func (a *Architecture) ConnectivityMatrix() [][]bool {
	n := len(a.nodes)
	m := make([][]bool, n)
	for i := 0; i < n; i++ {
		m[i] = make([]bool, n)
		for j := range a.und[i] {
			m[i][j] = true
		}
	}

	return m
}

// BestNodes selects keep node indices by repeatedly discarding a node of
// minimum undirected degree (ties: lowest insertion index), recomputing
// degrees after each removal. The survivors are the best-connected part of
// the device and bound the search space for large architectures.
// Returns all indices when keep >= NNodes.
// Complexity: O((n-keep)·n²).
func (a *Architecture) BestNodes(keep int) []int {
	n := len(a.nodes)
	alive := make([]bool, n)
	for i := range alive {
		alive[i] = true
	}
	remaining := n
	for remaining > keep && remaining > 0 {
		worst, worstDeg := -1, n+1
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			deg := 0
			for j := range a.und[i] {
				if alive[j] {
					deg++
				}
			}
			if deg < worstDeg {
				worst, worstDeg = i, deg
			}
		}
		alive[worst] = false
		remaining--
	}
	kept := make([]int, 0, remaining)
	for i := 0; i < n; i++ {
		if alive[i] {
			kept = append(kept, i)
		}
	}

	return kept
}

// SortNodes orders ns in place by the Node total order.
func SortNodes(ns []Node) {
	sort.Slice(ns, func(i, j int) bool { return ns[i].Less(ns[j]) })
}
