// Package device carries the read-only noise record consumed by
// noise-aware placement ranking.
//
// A Characterisation maps device locations to error rates: a single-qubit
// gate error per node, a two-qubit gate error per coupling, and a readout
// error per node. The record is produced elsewhere (device calibration is
// out of scope here); this package only stores and answers lookups, with
// missing entries defaulting to zero.
package device
