package place

import (
	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/interaction"
	"github.com/quarkline/qmap/monomorph"
)

// LineSource proposes maps that lay the circuit's qubits along a simple
// path through the device, ignoring the actual interaction structure.
type LineSource struct{}

// Candidates embeds an n-qubit line pattern into the coupling graph.
// Edge weights decrease along the line, so when no full path exists
// relaxation trims qubits from the tail and the longest placed prefix
// wins. Qubits are ordered by the total qubit order from the head.
func (LineSource) Candidates(arc *arch.Architecture, g *interaction.Graph, _ int, cfg Config) ([]Map, error) {
	qubits := g.Qubits()
	interaction.SortQubits(qubits)
	n := len(qubits)

	pattern := monomorph.Pattern{N: n}
	for i := 0; i+1 < n; i++ {
		pattern.Edges = append(pattern.Edges, monomorph.WeightedEdge{U: i, V: i + 1, Weight: int64(n - 1 - i)})
	}
	target, err := monomorph.TargetFromMatrix(arc.ConnectivityMatrix())
	if err != nil {
		return nil, err
	}

	res, err := monomorph.Search(pattern, target, monomorph.Options{
		MaxMatches: cfg.MaxMatches,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	kept := allNodeIndices(arc)

	return mapsFromResult(arc, qubits, kept, res), nil
}
