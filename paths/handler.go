package paths

import (
	"errors"
	"math"

	"github.com/quarkline/qmap/arch"
)

// Sentinel errors for handler construction and queries.
var (
	// ErrTooManyNodes indicates the node count crosses the index-arithmetic
	// overflow guard.
	ErrTooManyNodes = errors.New("paths: node count exceeds handler limit")

	// ErrBadMatrix indicates a non-square connectivity matrix.
	ErrBadMatrix = errors.New("paths: connectivity matrix must be square")

	// ErrBadNode indicates a node index outside [0, n).
	ErrBadNode = errors.New("paths: node index out of range")

	// ErrUnreachable indicates no path exists between the queried nodes.
	ErrUnreachable = errors.New("paths: nodes not connected")

	// ErrDisconnected indicates an operation that requires a connected
	// graph was given a disconnected one.
	ErrDisconnected = errors.New("paths: architecture is disconnected")
)

// maxHandlerNodes rejects inputs large enough that n*n index arithmetic
// could overflow on 32-bit builds.
const maxHandlerNodes = math.MaxUint32 / 2

// unreachable marks pairs with no connecting path in the distance table.
const unreachable = -1

// Handler answers distance and shortest-path queries over a fixed
// connectivity matrix. Build once per architecture; queries are
// read-only and safe for concurrent use.
type Handler struct {
	n    int
	conn [][]bool

	// dist[i][j] is the hop count of a shortest i→j path, or unreachable.
	dist [][]int

	// next[i][j] is the first hop of a shortest i→j path; next[i][i] = i
	// and n marks pairs with no path.
	next [][]int
}

// NewHandler precomputes all-pairs shortest paths for a.
func NewHandler(a *arch.Architecture) (*Handler, error) {
	return NewHandlerFromMatrix(a.ConnectivityMatrix())
}

// NewHandlerFromMatrix precomputes all-pairs shortest paths for the given
// boolean connectivity matrix. The matrix is copied; the diagonal is
// ignored. Complexity: O(n³).
func NewHandlerFromMatrix(conn [][]bool) (*Handler, error) {
	n := len(conn)
	if n >= maxHandlerNodes {
		return nil, ErrTooManyNodes
	}
	h := &Handler{
		n:    n,
		conn: make([][]bool, n),
		dist: make([][]int, n),
		next: make([][]int, n),
	}
	for i := 0; i < n; i++ {
		if len(conn[i]) != n {
			return nil, ErrBadMatrix
		}
		h.conn[i] = make([]bool, n)
		copy(h.conn[i], conn[i])
		h.conn[i][i] = false
		h.dist[i] = make([]int, n)
		h.next[i] = make([]int, n)
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				h.dist[i][j] = 0
				h.next[i][j] = i
			case h.conn[i][j]:
				h.dist[i][j] = 1
				h.next[i][j] = j
			default:
				h.dist[i][j] = unreachable
				h.next[i][j] = n
			}
		}
	}

	// Floyd–Warshall over the fixed index order keeps tie-breaking
	// deterministic: an equal-length route found later never replaces an
	// earlier one.
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			dik := h.dist[i][k]
			if dik == unreachable {
				continue
			}
			for j := 0; j < n; j++ {
				dkj := h.dist[k][j]
				if dkj == unreachable {
					continue
				}
				if h.dist[i][j] == unreachable || dik+dkj < h.dist[i][j] {
					h.dist[i][j] = dik + dkj
					h.next[i][j] = h.next[i][k]
				}
			}
		}
	}

	return h, nil
}

// NNodes returns the number of nodes the handler was built over.
func (h *Handler) NNodes() int { return h.n }

// Connected reports whether i and j share a direct edge.
func (h *Handler) Connected(i, j int) bool {
	if i < 0 || j < 0 || i >= h.n || j >= h.n {
		return false
	}

	return h.conn[i][j]
}

// Distance returns the shortest-path hop count between i and j. The
// second result is false when no path exists or an index is out of range.
func (h *Handler) Distance(i, j int) (int, bool) {
	if i < 0 || j < 0 || i >= h.n || j >= h.n {
		return 0, false
	}
	d := h.dist[i][j]

	return d, d != unreachable
}

// FindPath returns a shortest path from i to j as the full node index
// sequence, endpoints included. FindPath(i, i) returns [i].
// Returns ErrUnreachable when the nodes sit in different components.
func (h *Handler) FindPath(i, j int) ([]int, error) {
	if i < 0 || j < 0 || i >= h.n || j >= h.n {
		return nil, ErrBadNode
	}
	if h.dist[i][j] == unreachable {
		return nil, ErrUnreachable
	}
	path := make([]int, 0, h.dist[i][j]+1)
	path = append(path, i)
	for cur := i; cur != j; {
		cur = h.next[cur][j]
		path = append(path, cur)
	}

	return path, nil
}

// Acyclic derives a spanning tree of the graph and returns a fresh
// Handler over it. Direction is ignored: a handler built from an
// asymmetric matrix derives its tree over the symmetric closure. The
// tree is grown layer by layer from a centre node of minimum
// eccentricity; each newly reached node attaches to the already-reached
// neighbour with the highest degree in the original graph. Returns
// ErrDisconnected when the graph has more than one component.
func (h *Handler) Acyclic() (*Handler, error) {
	if h.n == 0 {
		return NewHandlerFromMatrix(nil)
	}
	if und, symmetric := h.symmetrised(); !symmetric {
		hs, err := NewHandlerFromMatrix(und)
		if err != nil {
			return nil, err
		}

		return hs.Acyclic()
	}

	// Centre: first node minimising eccentricity. Any unreachable pair
	// means no spanning tree exists.
	centre, best := -1, 0
	for i := 0; i < h.n; i++ {
		ecc := 0
		for j := 0; j < h.n; j++ {
			d := h.dist[i][j]
			if d == unreachable {
				return nil, ErrDisconnected
			}
			if d > ecc {
				ecc = d
			}
		}
		if centre == -1 || ecc < best {
			centre, best = i, ecc
		}
	}

	degree := make([]int, h.n)
	for i := 0; i < h.n; i++ {
		for j := 0; j < h.n; j++ {
			if h.conn[i][j] {
				degree[i]++
			}
		}
	}

	tree := make([][]bool, h.n)
	for i := range tree {
		tree[i] = make([]bool, h.n)
	}
	for layer := 1; layer <= best; layer++ {
		for v := 0; v < h.n; v++ {
			if h.dist[centre][v] != layer {
				continue
			}
			parent := -1
			for u := 0; u < h.n; u++ {
				if !h.conn[v][u] || h.dist[centre][u] != layer-1 {
					continue
				}
				if parent == -1 || degree[u] > degree[parent] {
					parent = u
				}
			}
			tree[v][parent] = true
			tree[parent][v] = true
		}
	}

	return NewHandlerFromMatrix(tree)
}

// symmetrised returns the undirected closure of the connectivity matrix
// and whether the matrix was already symmetric.
func (h *Handler) symmetrised() ([][]bool, bool) {
	symmetric := true
	und := make([][]bool, h.n)
	for i := 0; i < h.n; i++ {
		und[i] = make([]bool, h.n)
	}
	for i := 0; i < h.n; i++ {
		for j := 0; j < h.n; j++ {
			if h.conn[i][j] != h.conn[j][i] {
				symmetric = false
			}
			if h.conn[i][j] {
				und[i][j] = true
				und[j][i] = true
			}
		}
	}

	return und, symmetric
}
