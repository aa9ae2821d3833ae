// Package place assigns the logical qubits of a circuit to physical
// device nodes before routing.
//
// A Placer composes two strategies: a Source proposes candidate maps
// (subgraph-monomorphism embedding of the interaction graph, or a line
// embedding) and a Ranker orders them (discovery order, or ascending
// device noise cost). Place applies the best map to the circuit via its
// Rename boundary; PlacementMaps exposes the ranked bag without mutating
// anything.
//
// Maps are injective and partial. Qubits the search could not bind are
// made explicit: they are assigned to the reserved "unplaced" register
// rather than dropped, so callers can always tell a full placement from
// a partial one.
//
// Neighbourhoods performs local repair: starting from an existing map it
// explores nearby maps reachable by a bounded number of coupling swaps,
// returning each candidate with the swap sequence that produces it.
package place
