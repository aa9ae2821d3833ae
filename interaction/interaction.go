package interaction

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for interaction graph construction.
var (
	// ErrSelfInteraction indicates a two-qubit operation whose operands are
	// the same qubit.
	ErrSelfInteraction = errors.New("interaction: operation acts twice on one qubit")

	// ErrBadSlice indicates an operation with a negative slice index.
	ErrBadSlice = errors.New("interaction: negative slice index")
)

// DefaultRegister is the register name used by At for plain logical qubits.
const DefaultRegister = "q"

// Qubit identifies a logical circuit qubit. Qubits are totally ordered
// (register name, then index) and usable as map keys.
type Qubit struct {
	Reg   string
	Index int
}

// At returns the qubit with the given index in the default register.
func At(i int) Qubit { return Qubit{Reg: DefaultRegister, Index: i} }

// Less reports whether q sorts before o (register name, then index).
func (q Qubit) Less(o Qubit) bool {
	if q.Reg != o.Reg {
		return q.Reg < o.Reg
	}

	return q.Index < o.Index
}

// String renders the qubit as reg[index].
func (q Qubit) String() string { return fmt.Sprintf("%s[%d]", q.Reg, q.Index) }

// Op is one two-qubit operation of a circuit. Slice is the 0-based
// depth/timeslice index the operation occurs in.
type Op struct {
	Q0    Qubit
	Q1    Qubit
	Slice int
}

// WeightedEdge is an interaction between two qubits with its accumulated
// priority weight.
type WeightedEdge struct {
	Q0     Qubit
	Q1     Qubit
	Weight int64
}

// Graph is a weighted undirected graph over logical qubits.
// Vertices keep insertion order; all iteration follows that order.
type Graph struct {
	qubits  []Qubit
	index   map[Qubit]int
	weights map[[2]int]int64 // keyed by (lower, higher) vertex index
	degree  map[int]int
}

// NewGraph returns an empty interaction graph.
func NewGraph() *Graph {
	return &Graph{
		index:   make(map[Qubit]int),
		weights: make(map[[2]int]int64),
		degree:  make(map[int]int),
	}
}

// AddQubit registers q if absent and returns its index.
func (g *Graph) AddQubit(q Qubit) int {
	if i, ok := g.index[q]; ok {
		return i
	}
	i := len(g.qubits)
	g.qubits = append(g.qubits, q)
	g.index[q] = i

	return i
}

// AddInteraction adds weight w to the edge {q0,q1}, registering unseen
// qubits. Returns ErrSelfInteraction when q0 == q1.
func (g *Graph) AddInteraction(q0, q1 Qubit, w int64) error {
	if q0 == q1 {
		return ErrSelfInteraction
	}
	i := g.AddQubit(q0)
	j := g.AddQubit(q1)
	k := pairKey(i, j)
	if _, ok := g.weights[k]; !ok {
		g.degree[i]++
		g.degree[j]++
	}
	g.weights[k] += w

	return nil
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}

	return [2]int{i, j}
}

// NQubits returns the number of registered qubits.
func (g *Graph) NQubits() int { return len(g.qubits) }

// NEdges returns the number of distinct interacting pairs.
func (g *Graph) NEdges() int { return len(g.weights) }

// Qubits returns a copy of the qubit list in insertion order.
func (g *Graph) Qubits() []Qubit {
	out := make([]Qubit, len(g.qubits))
	copy(out, g.qubits)

	return out
}

// QubitIndex returns the insertion index of q.
func (g *Graph) QubitIndex(q Qubit) (int, bool) {
	i, ok := g.index[q]

	return i, ok
}

// Weight returns the accumulated weight of the edge {q0,q1}, zero when the
// pair never interacts.
func (g *Graph) Weight(q0, q1 Qubit) int64 {
	i, ok := g.index[q0]
	if !ok {
		return 0
	}
	j, ok := g.index[q1]
	if !ok {
		return 0
	}

	return g.weights[pairKey(i, j)]
}

// Degree returns the number of distinct partners q interacts with.
func (g *Graph) Degree(q Qubit) int {
	i, ok := g.index[q]
	if !ok {
		return 0
	}

	return g.degree[i]
}

// Edges returns all interactions ordered by (lower, higher) vertex
// insertion index.
func (g *Graph) Edges() []WeightedEdge {
	keys := make([][2]int, 0, len(g.weights))
	for k := range g.weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a][0] != keys[b][0] {
			return keys[a][0] < keys[b][0]
		}

		return keys[a][1] < keys[b][1]
	})
	out := make([]WeightedEdge, len(keys))
	for n, k := range keys {
		out[n] = WeightedEdge{Q0: g.qubits[k[0]], Q1: g.qubits[k[1]], Weight: g.weights[k]}
	}

	return out
}

// Build constructs the interaction graph for a placement call.
//
// All of qubits are registered as vertices (isolated qubits stay isolated
// and are later reported as unplaced). Operations are consumed in order;
// an op in slice s < depthLimit contributes weight depthLimit-s to its
// pair, so slice 0 weighs most. maxEdges caps the number of DISTINCT
// interacting pairs: once reached, ops on new pairs are ignored while ops
// on existing pairs keep accumulating. maxEdges <= 0 means no cap.
//
// Complexity: O(len(qubits) + len(ops)).
func Build(qubits []Qubit, ops []Op, depthLimit, maxEdges int) (*Graph, error) {
	g := NewGraph()
	for _, q := range qubits {
		g.AddQubit(q)
	}
	for _, op := range ops {
		if op.Slice < 0 {
			return nil, ErrBadSlice
		}
		if op.Q0 == op.Q1 {
			return nil, ErrSelfInteraction
		}
		if op.Slice >= depthLimit {
			continue
		}
		newPair := g.Weight(op.Q0, op.Q1) == 0
		if newPair && maxEdges > 0 && g.NEdges() >= maxEdges {
			continue
		}
		if err := g.AddInteraction(op.Q0, op.Q1, int64(depthLimit-op.Slice)); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// SortQubits orders qs in place by the Qubit total order.
func SortQubits(qs []Qubit) {
	sort.Slice(qs, func(i, j int) bool { return qs[i].Less(qs[j]) })
}
