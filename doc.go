// Package qmap maps the logical qubits of a quantum circuit onto the
// physical nodes of a target device before routing.
//
// The pipeline: a circuit's two-qubit operations become a weighted
// interaction graph; a backtracking subgraph-monomorphism search embeds
// that graph into the device's coupling graph, relaxing low-priority
// interactions when no full embedding exists; candidate embeddings are
// ranked (optionally by a device noise model) and the winner is applied
// to the circuit.
//
// Everything is organized under six subpackages:
//
//	arch/        — device topology: nodes, couplings, connectivity queries
//	interaction/ — weighted logical-qubit graph built from circuit operations
//	monomorph/   — bounded-time subgraph-monomorphism engine with relaxation
//	paths/       — all-pairs shortest paths, spanning trees, Hamiltonian paths
//	device/      — per-device error-rate characterisation
//	place/       — placement strategies, noise-aware ranking, swap repair
//
// Quick ASCII example, a 2x2 grid device:
//
//	node[0]───node[1]
//	   │         │
//	node[2]───node[3]
//
//	a, _ := arch.New([]arch.Edge{
//		{From: arch.At(0), To: arch.At(1)},
//		{From: arch.At(0), To: arch.At(2)},
//		{From: arch.At(1), To: arch.At(3)},
//		{From: arch.At(2), To: arch.At(3)},
//	})
//	placer := place.NewGraphPlacer(a, place.DefaultConfig())
//	m, err := placer.Place(circuit)
//
// All searches are deterministic for a given input and configuration;
// randomized neighbourhood exploration takes an explicit seed.
package qmap
