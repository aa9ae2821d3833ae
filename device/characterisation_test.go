package device_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkline/qmap/arch"
	"github.com/quarkline/qmap/device"
)

func TestLookupsDefaultToZero(t *testing.T) {
	c := device.New(nil, nil, nil)
	require.True(t, c.Empty())
	require.Zero(t, c.NodeError(arch.At(0)))
	require.Zero(t, c.LinkError(arch.At(0), arch.At(1)))
	require.Zero(t, c.ReadoutError(arch.At(0)))

	var nilC *device.Characterisation
	require.True(t, nilC.Empty())
	require.Zero(t, nilC.NodeError(arch.At(0)))
}

func TestLinkErrorSymmetricFallback(t *testing.T) {
	c := device.New(nil, map[arch.Edge]float64{
		{From: arch.At(0), To: arch.At(1)}: 0.25,
	}, nil)
	require.False(t, c.Empty())
	require.Equal(t, 0.25, c.LinkError(arch.At(0), arch.At(1)))
	require.Equal(t, 0.25, c.LinkError(arch.At(1), arch.At(0)))

	// A rate recorded per direction wins over the fallback.
	d := device.New(nil, map[arch.Edge]float64{
		{From: arch.At(0), To: arch.At(1)}: 0.1,
		{From: arch.At(1), To: arch.At(0)}: 0.3,
	}, nil)
	require.Equal(t, 0.3, d.LinkError(arch.At(1), arch.At(0)))
}
