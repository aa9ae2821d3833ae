package place

import (
	"github.com/charmbracelet/log"

	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/interaction"
	"github.com/quarkline/qmap/monomorph"
)

// GraphSource proposes maps by embedding the interaction graph into the
// coupling graph via monomorphism search with relaxation.
type GraphSource struct{}

// Candidates returns up to cfg.MaxMatches maps. Deep circuits contract
// the target first: the search only considers the best-connected device
// region with as many nodes as the pattern has qubits.
func (GraphSource) Candidates(arc *arch.Architecture, g *interaction.Graph, nOps int, cfg Config) ([]Map, error) {
	qubits := g.Qubits()
	pattern := monomorph.Pattern{N: len(qubits)}
	for _, e := range g.Edges() {
		i, _ := g.QubitIndex(e.Q0)
		j, _ := g.QubitIndex(e.Q1)
		pattern.Edges = append(pattern.Edges, monomorph.WeightedEdge{U: i, V: j, Weight: e.Weight})
	}

	kept := allNodeIndices(arc)
	if shouldContract(g.NQubits(), nOps, cfg) {
		kept = arc.BestNodes(len(qubits))
		log.Debug("contracted placement target", "nodes", len(kept), "of", arc.NNodes())
	}
	target, err := contractedTarget(arc, kept)
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
	if res.TimedOut {
		log.Warn("placement search hit its time budget", "droppedBands", res.DroppedBands)
	}

	return mapsFromResult(arc, qubits, kept, res), nil
}

// shouldContract reports whether the circuit is dense enough that the
// interaction pattern only needs a same-sized region of the device.
func shouldContract(nq, nOps int, cfg Config) bool {
	return cfg.ContractionRatio > 0 && nq > 3 && nOps >= cfg.ContractionRatio*nq
}

func allNodeIndices(arc *arch.Architecture) []int {
	kept := make([]int, arc.NNodes())
	for i := range kept {
		kept[i] = i
	}

	return kept
}

// contractedTarget builds the search target over the kept node indices,
// inheriting every coupling both of whose endpoints survive.
func contractedTarget(arc *arch.Architecture, kept []int) (monomorph.Target, error) {
	pos := make(map[int]int, len(kept))
	for p, idx := range kept {
		pos[idx] = p
	}
	var edges [][2]int
	conn := arc.ConnectivityMatrix()
	for pi, i := range kept {
		for _, j := range kept {
			if j > i && conn[i][j] {
				edges = append(edges, [2]int{pi, pos[j]})
			}
		}
	}

	return monomorph.NewTarget(len(kept), edges)
}

// mapsFromResult translates engine assignments back to qubit→node maps,
// undoing the contraction index shift. Unassigned vertices are omitted;
// the placer makes them explicit later.
func mapsFromResult(arc *arch.Architecture, qubits []interaction.Qubit, kept []int, res monomorph.Result) []Map {
	out := make([]Map, 0, len(res.Maps))
	for _, assign := range res.Maps {
		m := make(Map)
		for i, tv := range assign {
			if tv == monomorph.Unassigned {
				continue
			}
			m[qubits[i]] = arc.NodeAt(kept[tv])
		}
		out = append(out, m)
	}

	return out
}
