package paths

import (
	"errors"
	"time"

	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/monomorph"
)

// Hamiltonian-path sentinels. Absence of a Hamiltonian path is a routine
// property of the architecture, reported rather than guessed around.
var (
	// ErrNoNodes indicates an empty architecture.
	ErrNoNodes = errors.New("paths: architecture has no nodes")

	// ErrNoHamiltonianPath indicates no path visiting every node exactly
	// once was found within the time budget.
	ErrNoHamiltonianPath = errors.New("paths: no hamiltonian path found")
)

// FindHamPath searches for a Hamiltonian path over a and returns it as a
// node sequence. The search embeds an n-node line pattern into the
// coupling graph, stopping at the first hit; timeout bounds the whole
// search, with zero meaning no limit. Only a complete path counts: any
// relaxation or unassigned node means failure.
func FindHamPath(a *arch.Architecture, timeout time.Duration) ([]arch.Node, error) {
	n := a.NNodes()
	if n == 0 {
		return nil, ErrNoNodes
	}
	if n == 1 {
		return []arch.Node{a.NodeAt(0)}, nil
	}

	// Descending edge weights make relaxation trim the line from its
	// tail, though any trim at all is rejected below.
	p := monomorph.Pattern{N: n, Edges: make([]monomorph.WeightedEdge, 0, n-1)}
	for i := 0; i+1 < n; i++ {
		p.Edges = append(p.Edges, monomorph.WeightedEdge{U: i, V: i + 1, Weight: int64(n - 1 - i)})
	}
	t, err := monomorph.TargetFromMatrix(a.ConnectivityMatrix())
	if err != nil {
		return nil, err
	}

	res, err := monomorph.Search(p, t, monomorph.Options{MaxMatches: 1, Timeout: timeout})
	if err != nil {
		return nil, err
	}
	if res.DroppedBands > 0 || len(res.Maps) == 0 {
		return nil, ErrNoHamiltonianPath
	}
	m := res.Maps[0]
	path := make([]arch.Node, n)
	for i, tv := range m {
		if tv == monomorph.Unassigned {
			return nil, ErrNoHamiltonianPath
		}
		path[i] = a.NodeAt(tv)
	}

	return path, nil
}
