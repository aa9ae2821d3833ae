package place_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/device"
	"github.com/quarkline/qmap/interaction"
	"github.com/quarkline/qmap/place"
)

// fakeCircuit is a minimal circuit double whose Rename really relabels
// qubits, so placing twice exercises the identity fast path.
type fakeCircuit struct {
	qubits []interaction.Qubit
	ops    []interaction.Op

	renamedWith place.Map
}

func (c *fakeCircuit) Qubits() []interaction.Qubit  { return c.qubits }
func (c *fakeCircuit) Operations() []interaction.Op { return c.ops }

func (c *fakeCircuit) Rename(m place.Map) bool {
	c.renamedWith = m
	rename := func(q interaction.Qubit) interaction.Qubit {
		n, ok := m[q]
		if !ok {
			return q
		}

		return interaction.Qubit{Reg: n.Reg, Index: n.Index}
	}
	changed := false
	for i, q := range c.qubits {
		if nq := rename(q); nq != q {
			c.qubits[i] = nq
			changed = true
		}
	}
	for i, op := range c.ops {
		c.ops[i].Q0 = rename(op.Q0)
		c.ops[i].Q1 = rename(op.Q1)
		if c.ops[i] != op {
			changed = true
		}
	}

	return changed
}

func star(t *testing.T, leaves int) *arch.Architecture {
	t.Helper()
	couplings := make([]arch.Edge, leaves)
	for i := 0; i < leaves; i++ {
		couplings[i] = arch.Edge{From: arch.At(0), To: arch.At(i + 1)}
	}
	a, err := arch.New(couplings)
	require.NoError(t, err)

	return a
}

func TestPlace_InteractionFreeQubitUnplaced(t *testing.T) {
	c := &fakeCircuit{qubits: []interaction.Qubit{interaction.At(0)}}
	p := place.NewGraphPlacer(arch.Line(2), place.DefaultConfig())

	m, err := p.Place(c)
	require.NoError(t, err)
	require.Equal(t, arch.Node{Reg: place.UnplacedRegister, Index: 0}, m[interaction.At(0)])
}

func TestPlace_SingleInteractionLandsOnCoupling(t *testing.T) {
	a := arch.Line(4)
	c := &fakeCircuit{
		qubits: []interaction.Qubit{interaction.At(0), interaction.At(1), interaction.At(2), interaction.At(3)},
		ops:    []interaction.Op{{Q0: interaction.At(0), Q1: interaction.At(1), Slice: 0}},
	}

	m, err := place.NewGraphPlacer(a, place.DefaultConfig()).Place(c)
	require.NoError(t, err)
	require.Len(t, m, 4)
	require.True(t, a.Coupled(m[interaction.At(0)], m[interaction.At(1)]))
	require.Equal(t, place.UnplacedRegister, m[interaction.At(2)].Reg)
	require.Equal(t, place.UnplacedRegister, m[interaction.At(3)].Reg)
}

func TestPlace_Idempotent(t *testing.T) {
	a := arch.Line(2)
	c := &fakeCircuit{
		qubits: []interaction.Qubit{interaction.At(0), interaction.At(1)},
		ops:    []interaction.Op{{Q0: interaction.At(0), Q1: interaction.At(1), Slice: 0}},
	}
	p := place.NewGraphPlacer(a, place.DefaultConfig())

	_, err := p.Place(c)
	require.NoError(t, err)

	// Second placement sees a circuit already sitting on device nodes and
	// keeps every qubit in place.
	m, err := p.Place(c)
	require.NoError(t, err)
	for _, q := range c.Qubits() {
		require.Equal(t, arch.Node{Reg: q.Reg, Index: q.Index}, m[q])
	}
}

func TestPlace_StarRelaxesTriangle(t *testing.T) {
	a := star(t, 2) // three nodes, centre At(0)
	qs := []interaction.Qubit{interaction.At(0), interaction.At(1), interaction.At(2)}
	c := &fakeCircuit{
		qubits: append([]interaction.Qubit(nil), qs...),
		ops: []interaction.Op{
			{Q0: qs[0], Q1: qs[1], Slice: 0},
			{Q0: qs[1], Q1: qs[2], Slice: 1},
			{Q0: qs[2], Q1: qs[0], Slice: 2},
		},
	}

	m, err := place.NewGraphPlacer(a, place.DefaultConfig()).Place(c)
	require.NoError(t, err)

	// The triangle cannot embed; dropping its lightest edge leaves a
	// two-edge path that does, so every qubit lands on a real node.
	coupled := 0
	for _, q := range qs {
		require.NotEqual(t, place.UnplacedRegister, m[q].Reg)
	}
	pairs := [][2]int{{0, 1}, {1, 2}, {2, 0}}
	for _, pr := range pairs {
		if a.Coupled(m[qs[pr[0]]], m[qs[pr[1]]]) {
			coupled++
		}
	}
	require.Equal(t, 2, coupled)
}

func TestPlace_ConfigurationErrors(t *testing.T) {
	p := place.NewGraphPlacer(arch.Line(2), place.DefaultConfig())
	_, err := p.Place(nil)
	require.ErrorIs(t, err, place.ErrNilCircuit)

	empty, err := arch.New(nil)
	require.NoError(t, err)
	_, err = place.NewGraphPlacer(empty, place.DefaultConfig()).Place(&fakeCircuit{})
	require.ErrorIs(t, err, place.ErrEmptyArchitecture)

	crowded := &fakeCircuit{qubits: []interaction.Qubit{interaction.At(0), interaction.At(1), interaction.At(2)}}
	_, err = p.Place(crowded)
	require.ErrorIs(t, err, place.ErrTooManyQubits)
}

func TestPlaceWithMap_FillsAndApplies(t *testing.T) {
	a := arch.Line(3)
	qs := []interaction.Qubit{interaction.At(0), interaction.At(1)}
	c := &fakeCircuit{qubits: []interaction.Qubit{qs[0], qs[1]}}
	stray := interaction.Qubit{Reg: "anc", Index: 0}
	partial := place.Map{
		qs[0]: arch.At(1),
		stray: arch.At(2), // not in the circuit: kept, warned about
	}

	m, err := place.NewGraphPlacer(a, place.DefaultConfig()).PlaceWithMap(c, partial)
	require.NoError(t, err)
	require.Equal(t, arch.At(1), m[qs[0]])
	require.Equal(t, arch.At(2), m[stray])
	require.Equal(t, arch.Node{Reg: place.UnplacedRegister, Index: 0}, m[qs[1]])

	// Rename really ran: the circuit's qubits carry their new labels.
	require.Equal(t, []interaction.Qubit{
		{Reg: arch.DefaultRegister, Index: 1},
		{Reg: place.UnplacedRegister, Index: 0},
	}, c.Qubits())

	// The supplied map itself is untouched.
	require.Len(t, partial, 2)
}

func TestPlaceWithMap_InputValidation(t *testing.T) {
	a := arch.Line(3)
	p := place.NewGraphPlacer(a, place.DefaultConfig())

	_, err := p.PlaceWithMap(nil, place.Map{})
	require.ErrorIs(t, err, place.ErrNilCircuit)

	clash := place.Map{
		interaction.At(0): arch.At(1),
		interaction.At(1): arch.At(1),
	}
	_, err = p.PlaceWithMap(&fakeCircuit{}, clash)
	require.ErrorIs(t, err, place.ErrBadMap)

	offDevice := place.Map{interaction.At(0): arch.At(9)}
	_, err = p.PlaceWithMap(&fakeCircuit{}, offDevice)
	require.ErrorIs(t, err, place.ErrBadMap)
}

func TestLinePlacer_PlacesAlongPath(t *testing.T) {
	a := arch.Line(4)
	qs := []interaction.Qubit{interaction.At(0), interaction.At(1), interaction.At(2)}
	c := &fakeCircuit{qubits: append([]interaction.Qubit(nil), qs...)}

	m, err := place.NewLinePlacer(a, place.DefaultConfig()).Place(c)
	require.NoError(t, err)
	require.True(t, a.Coupled(m[qs[0]], m[qs[1]]))
	require.True(t, a.Coupled(m[qs[1]], m[qs[2]]))
}

func TestNoiseAware_PrefersQuietCoupling(t *testing.T) {
	a := arch.Line(3)
	dev := device.New(nil, map[arch.Edge]float64{
		{From: arch.At(0), To: arch.At(1)}: 0.5,
		{From: arch.At(1), To: arch.At(2)}: 0.001,
	}, nil)
	qs := []interaction.Qubit{interaction.At(0), interaction.At(1)}
	c := &fakeCircuit{
		qubits: append([]interaction.Qubit(nil), qs...),
		ops:    []interaction.Op{{Q0: qs[0], Q1: qs[1], Slice: 0}},
	}

	m, err := place.NewNoiseAwarePlacer(a, place.DefaultConfig(), dev).Place(c)
	require.NoError(t, err)
	got := map[arch.Node]bool{m[qs[0]]: true, m[qs[1]]: true}
	require.True(t, got[arch.At(1)] && got[arch.At(2)], "expected the low-error coupling, got %v", m)
}

func TestNoiseAware_FirstMapIsCheapest(t *testing.T) {
	a := arch.Line(3)
	dev := device.New(
		map[arch.Node]float64{arch.At(0): 0.2},
		map[arch.Edge]float64{{From: arch.At(0), To: arch.At(1)}: 0.3},
		nil,
	)
	qs := []interaction.Qubit{interaction.At(0), interaction.At(1)}
	c := &fakeCircuit{
		qubits: qs,
		ops:    []interaction.Op{{Q0: qs[0], Q1: qs[1], Slice: 0}},
	}

	maps, err := place.NewNoiseAwarePlacer(a, place.DefaultConfig(), dev).PlacementMaps(c, 0)
	require.NoError(t, err)
	require.NotEmpty(t, maps)

	g, err := interaction.Build(c.Qubits(), c.Operations(), place.DefaultConfig().DepthLimit, 0)
	require.NoError(t, err)
	r := place.NoiseRanker{Dev: dev}
	first := r.Cost(g, c.Qubits(), maps[0])
	for _, m := range maps[1:] {
		require.LessOrEqual(t, first, r.Cost(g, c.Qubits(), m))
	}
}

func TestNoiseAware_NoModelMatchesGraphPlacement(t *testing.T) {
	a := arch.Line(3)
	mk := func() *fakeCircuit {
		qs := []interaction.Qubit{interaction.At(0), interaction.At(1)}

		return &fakeCircuit{
			qubits: qs,
			ops:    []interaction.Op{{Q0: qs[0], Q1: qs[1], Slice: 0}},
		}
	}

	plain, err := place.NewGraphPlacer(a, place.DefaultConfig()).PlacementMaps(mk(), 0)
	require.NoError(t, err)
	noisy, err := place.NewNoiseAwarePlacer(a, place.DefaultConfig(), nil).PlacementMaps(mk(), 0)
	require.NoError(t, err)
	require.Equal(t, plain, noisy)
}
