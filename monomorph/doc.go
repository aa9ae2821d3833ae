// Package monomorph finds injective, edge-preserving maps of a weighted
// pattern graph into a target graph.
//
// The search is exact backtracking over an integer-indexed arena, so it is
// exponential in the worst case; it is kept practical by three policies:
//
//   - Deterministic branching: pattern vertices are tried most-constrained
//     first (descending degree, then ascending index) and target
//     candidates in ascending index order, so identical inputs always
//     yield identical outputs.
//   - A soft wall-clock budget checked sparsely during backtracking
//     (cooperative, not preemptive); on expiry a stage returns whatever
//     full embeddings it has found so far.
//   - Edge-band relaxation: when a stage finds no embedding, the lowest
//     distinct-weight band of pattern edges is dropped and the search is
//     retried. The final, edgeless stage is trivially satisfiable, so
//     Search always produces a (possibly entirely unassigned) map.
//
// Any returned map is a valid monomorphism over the edges retained at its
// stage; pattern vertices left out of the retained edge set are reported
// as Unassigned, never silently bound.
//
// "Not found in time" is an ordinary result, not an error. The only hard
// failures are malformed inputs and the absolute arena ceiling.
package monomorph
