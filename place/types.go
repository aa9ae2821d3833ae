package place

import (
	"errors"
	"time"

	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/interaction"
)

// Sentinel errors for placement configuration and inputs.
var (
	// ErrNilCircuit indicates a nil circuit was passed to a placer.
	ErrNilCircuit = errors.New("place: nil circuit")

	// ErrEmptyArchitecture indicates a placer built over an architecture
	// with no nodes.
	ErrEmptyArchitecture = errors.New("place: architecture has no nodes")

	// ErrTooManyQubits indicates the circuit holds more qubits than the
	// device has nodes.
	ErrTooManyQubits = errors.New("place: circuit has more qubits than device nodes")

	// ErrBadDistance indicates a neighbourhood request with a swap
	// distance below 1.
	ErrBadDistance = errors.New("place: swap distance must be at least 1")

	// ErrBadMap indicates a non-injective map or one referencing nodes
	// outside the architecture.
	ErrBadMap = errors.New("place: malformed placement map")
)

// UnplacedRegister is the reserved register holding qubits no candidate
// map bound to a device node. Routing decides their final position.
const UnplacedRegister = "unplaced"

// Map is an injective assignment of logical qubits to device nodes.
type Map map[interaction.Qubit]arch.Node

// Clone returns an independent copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for q, n := range m {
		out[q] = n
	}

	return out
}

// Circuit is the boundary a placer reads interactions from and applies
// its result to. Rename relabels the circuit's qubits according to the
// map and reports whether anything changed.
type Circuit interface {
	Qubits() []interaction.Qubit
	Operations() []interaction.Op
	Rename(m Map) bool
}

// Measured is optionally implemented by circuits that can name their
// measured qubits; noise-aware ranking then charges readout error only
// for those. Circuits without it are charged readout on every qubit.
type Measured interface {
	MeasuredQubits() []interaction.Qubit
}

// Config tunes a placement run. The zero value is NOT usable; start from
// DefaultConfig.
type Config struct {
	// DepthLimit bounds how many circuit timeslices feed the interaction
	// graph; earlier slices weigh more.
	DepthLimit int

	// MaxInteractionEdges caps distinct interacting pairs in the pattern;
	// 0 means "as many as the device has couplings".
	MaxInteractionEdges int

	// MaxMatches bounds the candidate bag per search stage.
	MaxMatches int

	// ContractionRatio triggers target contraction: when the circuit has
	// at least ContractionRatio operations per qubit (and more than three
	// qubits), the search target shrinks to the best-connected region of
	// the device with as many nodes as the pattern has qubits.
	ContractionRatio int

	// Timeout bounds the whole embedding search; 0 disables it.
	Timeout time.Duration
}

// DefaultConfig returns the standard placement tuning.
func DefaultConfig() Config {
	return Config{
		DepthLimit:       5,
		MaxMatches:       10,
		ContractionRatio: 10,
		Timeout:          time.Minute,
	}
}

// Source proposes candidate maps for the interaction graph g against the
// architecture, best-first under its own notion of quality. nOps is the
// circuit's full two-qubit operation count, before depth limiting.
type Source interface {
	Candidates(arc *arch.Architecture, g *interaction.Graph, nOps int, cfg Config) ([]Map, error)
}

// Ranker orders a candidate bag, cheapest first. Implementations must be
// stable so equally scored maps keep their discovery order.
type Ranker interface {
	Rank(g *interaction.Graph, measured []interaction.Qubit, maps []Map) []Map
}
