// Package arch models the qubit connectivity graph of a physical device.
//
// An Architecture is a fixed universe of nodes plus a set of pairwise
// couplings. Couplings may be recorded with a direction (some devices only
// drive two-qubit gates one way), but every matching and distance query in
// this module treats the graph as undirected unless direction is asked for
// explicitly via HasEdge.
//
// Construction is the only mutating phase. Once handed to a search, an
// Architecture is read-only and safe to share between concurrent placement
// calls.
//
// Errors:
//
//	ErrSelfLoop      - a coupling from a node to itself was supplied.
//	ErrUnknownNode   - a query referenced a node outside the architecture.
package arch
