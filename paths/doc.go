// Package paths precomputes shortest-path data over a hardware coupling
// graph and answers distance and routing queries from it.
//
// A Handler runs Floyd–Warshall once over the connectivity matrix and
// stores both the distance table and a next-hop table, so Distance is
// O(1) and FindPath is O(path length). Unreachable pairs are reported
// explicitly rather than through sentinel "infinite" weights.
//
// Derived views and utilities:
//
//   - Acyclic: a spanning-tree restriction of the graph, grown layer by
//     layer from a minimum-eccentricity centre, wrapped in a fresh
//     Handler.
//   - FindHamPath: a Hamiltonian path over the architecture, located via
//     subgraph monomorphism of a line pattern.
//   - IterationOrder: a connectivity-respecting node order in which every
//     node after the first touches an already-visited node.
package paths
