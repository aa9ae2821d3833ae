package monomorph

import (
	"errors"
	"time"
)

// Sentinel errors for the monomorphism engine.
var (
	// ErrBadPattern indicates a malformed pattern: an out-of-range vertex,
	// a self-loop, or a non-positive edge weight.
	ErrBadPattern = errors.New("monomorph: malformed pattern graph")

	// ErrBadTarget indicates a malformed target: an out-of-range vertex, a
	// self-loop, or a non-square connectivity matrix.
	ErrBadTarget = errors.New("monomorph: malformed target graph")

	// ErrPatternTooLarge indicates more pattern vertices than target
	// vertices; no injective map can exist.
	ErrPatternTooLarge = errors.New("monomorph: pattern larger than target")

	// ErrSearchSpace indicates the absolute arena ceiling was exceeded.
	// Unlike a timeout this is a hard failure: not even the degenerate
	// stage could be represented.
	ErrSearchSpace = errors.New("monomorph: search arena ceiling exceeded")
)

// Unassigned marks a pattern vertex with no target binding in a result map.
const Unassigned = -1

// MaxTargetNodes is the absolute arena ceiling: targets beyond this size
// are rejected outright rather than searched misleadingly.
const MaxTargetNodes = 8192

// WeightedEdge is one pattern edge between vertex indices U and V.
// Weight expresses priority; higher-weight edges survive relaxation longer.
type WeightedEdge struct {
	U, V   int
	Weight int64
}

// Pattern is the graph to embed: N vertices indexed 0..N-1 plus weighted
// undirected edges.
type Pattern struct {
	N     int
	Edges []WeightedEdge
}

// Target is the graph embedded into. Construct with NewTarget or
// TargetFromMatrix; the zero value is an empty target.
type Target struct {
	n   int
	adj [][]bool
	deg []int

	nEdges int
}

// NewTarget builds an undirected target over n vertices from an edge list.
// Edge direction is ignored. Returns ErrBadTarget for out-of-range
// endpoints or self-loops, ErrSearchSpace when n exceeds MaxTargetNodes.
func NewTarget(n int, edges [][2]int) (Target, error) {
	if n < 0 {
		return Target{}, ErrBadTarget
	}
	if n > MaxTargetNodes {
		return Target{}, ErrSearchSpace
	}
	t := Target{n: n, adj: make([][]bool, n), deg: make([]int, n)}
	for i := range t.adj {
		t.adj[i] = make([]bool, n)
	}
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n || u == v {
			return Target{}, ErrBadTarget
		}
		if t.adj[u][v] {
			continue // parallel edges collapse
		}
		t.adj[u][v] = true
		t.adj[v][u] = true
		t.deg[u]++
		t.deg[v]++
		t.nEdges++
	}

	return t, nil
}

// TargetFromMatrix builds a target from a boolean connectivity matrix,
// symmetrised and with the diagonal ignored.
func TargetFromMatrix(conn [][]bool) (Target, error) {
	n := len(conn)
	var edges [][2]int
	for i := 0; i < n; i++ {
		if len(conn[i]) != n {
			return Target{}, ErrBadTarget
		}
		for j := i + 1; j < n; j++ {
			if conn[i][j] || conn[j][i] {
				edges = append(edges, [2]int{i, j})
			}
		}
	}

	return NewTarget(n, edges)
}

// N returns the number of target vertices.
func (t Target) N() int { return t.n }

// Adjacent reports whether target vertices i and j are connected.
func (t Target) Adjacent(i, j int) bool { return t.adj[i][j] }

// Degree returns the degree of target vertex i.
func (t Target) Degree(i int) int { return t.deg[i] }

// Options controls one Search invocation.
type Options struct {
	// MaxMatches bounds how many equally-scoring maps one stage may
	// return. Values below 1 are treated as 1.
	MaxMatches int

	// Timeout is the wall-clock budget for the whole search including all
	// relaxation stages; 0 disables the deadline. The budget is checked
	// cooperatively every few thousand node events, so an individual
	// expensive step may slightly overrun.
	Timeout time.Duration
}

// DefaultOptions mirrors the defaults of the surrounding placement pass:
// up to 10 maps within one minute.
func DefaultOptions() Options {
	return Options{MaxMatches: 10, Timeout: time.Minute}
}

// Result is the outcome of a Search. SearchExhausted is not an error:
// a fully relaxed search still yields one all-Unassigned map.
type Result struct {
	// Maps holds up to MaxMatches assignments, each of length Pattern.N,
	// in discovery order of the deterministic traversal. Entry values are
	// target vertex indices or Unassigned.
	Maps [][]int

	// RetainedWeight is the total weight of pattern edges every returned
	// map preserves (the edges surviving relaxation).
	RetainedWeight int64

	// DroppedBands counts the distinct-weight bands removed before an
	// embedding was found; 0 means the full pattern embedded.
	DroppedBands int

	// TimedOut reports whether any stage hit the deadline.
	TimedOut bool
}
