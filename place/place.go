package place

import (
	"github.com/charmbracelet/log"

	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/device"
	"github.com/quarkline/qmap/interaction"
)

// Placer runs one placement strategy against a fixed architecture. The
// candidate source and the ranker are independent: noise awareness is a
// ranker choice, not a different placer.
type Placer struct {
	arc    *arch.Architecture
	cfg    Config
	source Source
	ranker Ranker
}

// NewGraphPlacer places by embedding the weighted interaction graph into
// the coupling graph, keeping candidates in discovery order.
func NewGraphPlacer(arc *arch.Architecture, cfg Config) *Placer {
	return &Placer{arc: arc, cfg: cfg, source: GraphSource{}, ranker: discoveryRanker{}}
}

// NewNoiseAwarePlacer is NewGraphPlacer with the candidate bag reordered
// by the device noise model, cheapest first. A nil or empty
// characterisation degrades to plain graph placement.
func NewNoiseAwarePlacer(arc *arch.Architecture, cfg Config, dev *device.Characterisation) *Placer {
	return &Placer{arc: arc, cfg: cfg, source: GraphSource{}, ranker: NoiseRanker{Dev: dev}}
}

// NewLinePlacer places the circuit's qubits along a simple path through
// the device, longest prefix first.
func NewLinePlacer(arc *arch.Architecture, cfg Config) *Placer {
	return &Placer{arc: arc, cfg: cfg, source: LineSource{}, ranker: discoveryRanker{}}
}

// Place computes the best map for c and applies it through c.Rename.
// Every circuit qubit appears in the returned map; qubits the search left
// unbound sit in the unplaced register.
//
// A circuit already sitting validly on the device (every qubit a device
// node, every interaction on a coupling) keeps its positions.
func (p *Placer) Place(c Circuit) (Map, error) {
	maps, err := p.rankedMaps(c)
	if err != nil {
		return nil, err
	}
	best := maps[0]
	c.Rename(best)

	return best, nil
}

// PlaceWithMap applies a caller-supplied partial map to c: qubits the map
// misses are filled into the unplaced register, map entries naming qubits
// absent from the circuit are kept but warned about, and the completed
// map is pushed through c.Rename. No search runs.
func (p *Placer) PlaceWithMap(c Circuit, m Map) (Map, error) {
	if c == nil {
		return nil, ErrNilCircuit
	}
	if p.arc == nil || p.arc.NNodes() == 0 {
		return nil, ErrEmptyArchitecture
	}
	if err := validateMap(p.arc, m); err != nil {
		return nil, err
	}
	qubits := c.Qubits()
	for q := range m {
		if !hasQubit(qubits, q) {
			log.Warn("placement map names a qubit absent from the circuit", "qubit", q)
		}
	}
	filled := fillUnplaced(m, qubits)
	c.Rename(filled)

	return filled, nil
}

// PlacementMaps returns up to max ranked candidate maps for c without
// touching the circuit. max < 1 falls back to the configured MaxMatches.
func (p *Placer) PlacementMaps(c Circuit, max int) ([]Map, error) {
	maps, err := p.rankedMaps(c)
	if err != nil {
		return nil, err
	}
	if max < 1 {
		max = p.cfg.MaxMatches
	}
	if max >= 1 && len(maps) > max {
		maps = maps[:max]
	}

	return maps, nil
}

func (p *Placer) rankedMaps(c Circuit) ([]Map, error) {
	if c == nil {
		return nil, ErrNilCircuit
	}
	if p.arc == nil || p.arc.NNodes() == 0 {
		return nil, ErrEmptyArchitecture
	}
	qubits := c.Qubits()
	if len(qubits) > p.arc.NNodes() {
		return nil, ErrTooManyQubits
	}

	if m, ok := p.identityMap(c); ok {
		return []Map{m}, nil
	}

	g, err := interaction.Build(qubits, c.Operations(), p.cfg.DepthLimit, p.maxEdges())
	if err != nil {
		return nil, err
	}
	maps, err := p.source.Candidates(p.arc, g, len(c.Operations()), p.cfg)
	if err != nil {
		return nil, err
	}
	maps = p.ranker.Rank(g, measuredQubits(c), maps)
	if len(maps) == 0 {
		maps = []Map{{}}
	}
	for i, m := range maps {
		maps[i] = fillUnplaced(m, qubits)
	}

	return maps, nil
}

func (p *Placer) maxEdges() int {
	if p.cfg.MaxInteractionEdges > 0 {
		return p.cfg.MaxInteractionEdges
	}

	return p.arc.NConnections()
}

// identityMap reports whether c already sits validly on the device and,
// if so, returns the map that keeps every qubit where it is.
func (p *Placer) identityMap(c Circuit) (Map, bool) {
	qubits := c.Qubits()
	if len(qubits) == 0 {
		return nil, false
	}
	m := make(Map, len(qubits))
	for _, q := range qubits {
		n := arch.Node{Reg: q.Reg, Index: q.Index}
		if !p.arc.HasNode(n) {
			return nil, false
		}
		m[q] = n
	}
	for _, op := range c.Operations() {
		if !p.arc.Coupled(m[op.Q0], m[op.Q1]) {
			return nil, false
		}
	}

	return m, true
}

// fillUnplaced returns a copy of m in which every qubit of the circuit
// missing from m is bound to the unplaced register, in ascending qubit
// order with indices from zero.
func fillUnplaced(m Map, qubits []interaction.Qubit) Map {
	out := m.Clone()
	missing := make([]interaction.Qubit, 0, len(qubits))
	for _, q := range qubits {
		if _, ok := out[q]; !ok {
			missing = append(missing, q)
		}
	}
	interaction.SortQubits(missing)
	for i, q := range missing {
		out[q] = arch.Node{Reg: UnplacedRegister, Index: i}
	}

	return out
}

func measuredQubits(c Circuit) []interaction.Qubit {
	if mc, ok := c.(Measured); ok {
		return mc.MeasuredQubits()
	}

	return c.Qubits()
}

func hasQubit(qs []interaction.Qubit, q interaction.Qubit) bool {
	for _, cand := range qs {
		if cand == q {
			return true
		}
	}

	return false
}

// discoveryRanker keeps the source's order: the engine already emits maps
// best stage first, discovery order within a stage.
type discoveryRanker struct{}

func (discoveryRanker) Rank(_ *interaction.Graph, _ []interaction.Qubit, maps []Map) []Map {
	return maps
}
