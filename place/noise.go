package place

import (
	"sort"

	"github.com/quarkline/qmap/device"
	"github.com/quarkline/qmap/interaction"
)

// NoiseRanker orders candidate maps by a linearised device error cost,
// cheapest first. A nil or empty characterisation leaves the bag as is.
type NoiseRanker struct {
	Dev *device.Characterisation
}

// Rank sorts maps by Cost, keeping discovery order among equal costs.
func (r NoiseRanker) Rank(g *interaction.Graph, measured []interaction.Qubit, maps []Map) []Map {
	if r.Dev.Empty() {
		return maps
	}
	costs := make([]float64, len(maps))
	for i, m := range maps {
		costs[i] = r.Cost(g, measured, m)
	}
	idx := make([]int, len(maps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return costs[idx[a]] < costs[idx[b]] })
	out := make([]Map, len(maps))
	for i, j := range idx {
		out[i] = maps[j]
	}

	return out
}

// Cost charges every mapped interaction its link error scaled by weight,
// every mapped qubit its node error, and every mapped measured qubit its
// readout error. Unmapped qubits are free: cost compares candidates, it
// does not predict fidelity.
func (r NoiseRanker) Cost(g *interaction.Graph, measured []interaction.Qubit, m Map) float64 {
	cost := 0.0
	for _, e := range g.Edges() {
		n0, ok0 := m[e.Q0]
		n1, ok1 := m[e.Q1]
		if ok0 && ok1 {
			cost += r.Dev.LinkError(n0, n1) * float64(e.Weight)
		}
	}
	for _, q := range g.Qubits() {
		if n, ok := m[q]; ok {
			cost += r.Dev.NodeError(n)
		}
	}
	for _, q := range measured {
		if n, ok := m[q]; ok {
			cost += r.Dev.ReadoutError(n)
		}
	}

	return cost
}
