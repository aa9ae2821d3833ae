package place

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/interaction"
)

// defaultNeighbourSeed is the fixed "zero" seed used when callers pass
// Seed==0. Arbitrary but stable for reproducible defaults.
const defaultNeighbourSeed int64 = 1

// neighbourOversample bounds how many random walks are attempted per
// requested result before giving up on finding distinct maps.
const neighbourOversample = 8

// Swap exchanges the qubits sitting on two coupled device nodes. When
// only one endpoint is occupied the swap relocates that qubit to the
// free node.
type Swap struct {
	N0 arch.Node
	N1 arch.Node
}

// SwapSequence is an ordered list of repair moves on a map.
type SwapSequence []Swap

// NeighbourResult is one repaired map with the moves producing it:
// ReplaySwaps(base, Swaps) reproduces Map exactly.
type NeighbourResult struct {
	Map   Map
	Swaps SwapSequence
}

// NeighbourOptions controls Neighbourhoods.
type NeighbourOptions struct {
	// Distance is the number of swaps per candidate, at least 1.
	Distance int

	// MaxResults bounds the candidate count; values below 1 mean 1.
	MaxResults int

	// Seed makes the walk deterministic; 0 selects a fixed default.
	Seed int64

	// Pattern, when set, steers each swap towards maps satisfying more of
	// its interaction edges. Without it swaps are chosen uniformly.
	Pattern *interaction.Graph
}

// Neighbourhoods explores maps near base reachable by up to Distance
// coupling swaps. Candidates come from independent greedy-random walks:
// every step applies one swap picked uniformly among the highest-scoring
// coupling swaps, and each intermediate map of a walk is a candidate in
// its own right, carried with the swap prefix that produced it.
// Candidates are deduplicated; fewer than MaxResults may be returned.
// base is never mutated.
func Neighbourhoods(arc *arch.Architecture, base Map, opts NeighbourOptions) ([]NeighbourResult, error) {
	if arc == nil || arc.NNodes() == 0 {
		return nil, ErrEmptyArchitecture
	}
	if opts.Distance < 1 {
		return nil, ErrBadDistance
	}
	if opts.MaxResults < 1 {
		opts.MaxResults = 1
	}
	if err := validateMap(arc, base); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = defaultNeighbourSeed
	}
	rng := rand.New(rand.NewSource(seed))

	couplings := undirectedCouplings(arc)
	if len(couplings) == 0 {
		return nil, nil
	}

	var out []NeighbourResult
	seen := map[string]bool{fingerprint(base): true} // the base itself is not a neighbour
	for attempt := 0; attempt < opts.MaxResults*neighbourOversample && len(out) < opts.MaxResults; attempt++ {
		cur := base.Clone()
		seq := make(SwapSequence, 0, opts.Distance)
		for d := 0; d < opts.Distance && len(out) < opts.MaxResults; d++ {
			s := pickSwap(rng, arc, couplings, cur, opts.Pattern)
			applySwap(cur, s)
			seq = append(seq, s)
			fp := fingerprint(cur)
			if seen[fp] {
				continue
			}
			seen[fp] = true
			prefix := make(SwapSequence, len(seq))
			copy(prefix, seq)
			out = append(out, NeighbourResult{Map: cur.Clone(), Swaps: prefix})
		}
	}

	return out, nil
}

// ReplaySwaps applies seq to base and returns the resulting map. base is
// left untouched.
func ReplaySwaps(base Map, seq SwapSequence) Map {
	out := base.Clone()
	for _, s := range seq {
		applySwap(out, s)
	}

	return out
}

func validateMap(arc *arch.Architecture, m Map) error {
	taken := make(map[arch.Node]bool, len(m))
	for _, n := range m {
		if n.Reg != UnplacedRegister && !arc.HasNode(n) {
			return ErrBadMap
		}
		if taken[n] {
			return ErrBadMap
		}
		taken[n] = true
	}

	return nil
}

// undirectedCouplings lists each coupling once, in the deterministic edge
// order of the architecture.
func undirectedCouplings(arc *arch.Architecture) []Swap {
	var out []Swap
	seen := map[[2]int]bool{}
	for _, e := range arc.Edges() {
		i, _ := arc.NodeIndex(e.From)
		j, _ := arc.NodeIndex(e.To)
		if i > j {
			i, j = j, i
		}
		if seen[[2]int{i, j}] {
			continue
		}
		seen[[2]int{i, j}] = true
		out = append(out, Swap{N0: arc.NodeAt(i), N1: arc.NodeAt(j)})
	}

	return out
}

// pickSwap scores every coupling swap against the pattern and picks
// uniformly among the best. Without a pattern every swap scores equal.
func pickSwap(rng *rand.Rand, arc *arch.Architecture, couplings []Swap, cur Map, pattern *interaction.Graph) Swap {
	if pattern == nil {
		return couplings[rng.Intn(len(couplings))]
	}
	best := make([]Swap, 0, len(couplings))
	bestScore := -1
	for _, s := range couplings {
		next := cur.Clone()
		applySwap(next, s)
		score := satisfiedEdges(arc, next, pattern)
		switch {
		case score > bestScore:
			bestScore = score
			best = append(best[:0], s)
		case score == bestScore:
			best = append(best, s)
		}
	}

	return best[rng.Intn(len(best))]
}

// applySwap exchanges the qubits on the swap's endpoints in place.
func applySwap(m Map, s Swap) {
	var q0, q1 *interaction.Qubit
	for q, n := range m {
		q := q
		switch n {
		case s.N0:
			q0 = &q
		case s.N1:
			q1 = &q
		}
	}
	if q0 != nil {
		m[*q0] = s.N1
	}
	if q1 != nil {
		m[*q1] = s.N0
	}
}

// satisfiedEdges counts pattern interactions whose mapped endpoints sit
// on coupled nodes. Unmapped pairs do not score.
func satisfiedEdges(arc *arch.Architecture, m Map, pattern *interaction.Graph) int {
	count := 0
	for _, e := range pattern.Edges() {
		n0, ok0 := m[e.Q0]
		n1, ok1 := m[e.Q1]
		if ok0 && ok1 && arc.Coupled(n0, n1) {
			count++
		}
	}

	return count
}

// fingerprint renders a map in sorted qubit order for deduplication.
func fingerprint(m Map) string {
	qs := make([]interaction.Qubit, 0, len(m))
	for q := range m {
		qs = append(qs, q)
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i].Less(qs[j]) })
	s := ""
	for _, q := range qs {
		s += fmt.Sprintf("%v=%v;", q, m[q])
	}

	return s
}
