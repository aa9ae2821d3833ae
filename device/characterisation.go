package device

import "github.com/quarkline/qmap/arch"

// Characterisation is an immutable per-device error-rate record.
// The zero value (or New with nil maps) reports zero error everywhere.
type Characterisation struct {
	nodeErr    map[arch.Node]float64
	linkErr    map[arch.Edge]float64
	readoutErr map[arch.Node]float64
}

// New copies the supplied rate maps into a Characterisation. Any map may
// be nil. Link rates are looked up in both directions, so callers may
// record each coupling once.
func New(nodeErr map[arch.Node]float64, linkErr map[arch.Edge]float64, readoutErr map[arch.Node]float64) *Characterisation {
	c := &Characterisation{
		nodeErr:    make(map[arch.Node]float64, len(nodeErr)),
		linkErr:    make(map[arch.Edge]float64, len(linkErr)),
		readoutErr: make(map[arch.Node]float64, len(readoutErr)),
	}
	for n, e := range nodeErr {
		c.nodeErr[n] = e
	}
	for l, e := range linkErr {
		c.linkErr[l] = e
	}
	for n, e := range readoutErr {
		c.readoutErr[n] = e
	}

	return c
}

// NodeError returns the single-qubit gate error at n, zero when unknown.
func (c *Characterisation) NodeError(n arch.Node) float64 {
	if c == nil {
		return 0
	}

	return c.nodeErr[n]
}

// LinkError returns the two-qubit gate error on the coupling u-v, trying
// the reverse direction before giving up. Zero when unknown.
func (c *Characterisation) LinkError(u, v arch.Node) float64 {
	if c == nil {
		return 0
	}
	if e, ok := c.linkErr[arch.Edge{From: u, To: v}]; ok {
		return e
	}

	return c.linkErr[arch.Edge{From: v, To: u}]
}

// ReadoutError returns the measurement error at n, zero when unknown.
func (c *Characterisation) ReadoutError(n arch.Node) float64 {
	if c == nil {
		return 0
	}

	return c.readoutErr[n]
}

// Empty reports whether the record holds no rates at all; an empty record
// makes noise-aware ranking a no-op.
func (c *Characterisation) Empty() bool {
	return c == nil || (len(c.nodeErr) == 0 && len(c.linkErr) == 0 && len(c.readoutErr) == 0)
}
