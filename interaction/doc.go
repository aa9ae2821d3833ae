// Package interaction builds the weighted logical-qubit graph that drives
// placement.
//
// The graph has one vertex per circuit qubit and one edge per interacting
// qubit pair. Edge weights accumulate per two-qubit operation, with
// operations in earlier circuit slices contributing more, so the pattern
// the matcher sees prioritises couplings the circuit needs soonest and
// most often.
//
// A Graph is transient: built fresh for one placement call from the
// circuit's ordered operation list, then discarded.
package interaction
