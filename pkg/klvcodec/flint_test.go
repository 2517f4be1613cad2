package klvcodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

func TestFlintLength(t *testing.T) {
	for _, ca := range []struct {
		name      string
		min       float64
		max       float64
		precision float64
		length    int
	}{
		{"exact byte", 0, 256, 1, 1},
		{"heading", 0, 360, 1e-7, 4},
		{"latitude", -90, 90, 1e-7, 4},
		{"coarse", 0, 100, 10, 1},
	} {
		t.Run(ca.name, func(t *testing.T) {
			n, err := FlintLength(ca.min, ca.max, ca.precision)
			require.NoError(t, err)
			require.Equal(t, ca.length, n)
		})
	}
}

func TestFlintPrecision(t *testing.T) {
	p, err := FlintPrecision(0, 256, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, p)

	p, err = FlintPrecision(0, 256, 2)
	require.NoError(t, err)
	require.Equal(t, 1.0/256, p)
}

func TestFlintErrors(t *testing.T) {
	for _, ca := range []struct {
		name      string
		min       float64
		max       float64
		precision float64
		err       error
	}{
		{"min equals max", 0, 0, 1, liberrors.ErrInvalidArgument{}},
		{"min above max", 1, 0, 0.1, liberrors.ErrInvalidArgument{}},
		{"infinite bound", 0, math.Inf(1), 1, liberrors.ErrInvalidArgument{}},
		{"nan bound", math.NaN(), 1, 0.1, liberrors.ErrInvalidArgument{}},
		{"precision too large", 0, 1, 2, liberrors.ErrInvalidArgument{}},
		{"precision nan", 0, 1, math.NaN(), liberrors.ErrInvalidArgument{}},
		{"span overflow", -math.MaxFloat64, math.MaxFloat64, 1, liberrors.ErrTypeOverflow{}},
		{"too many bytes", 0, 1, 1e-30, liberrors.ErrTypeOverflow{}},
	} {
		t.Run(ca.name, func(t *testing.T) {
			_, err := FlintLength(ca.min, ca.max, ca.precision)
			require.Error(t, err)
			require.IsType(t, ca.err, err)
		})
	}

	_, err := FlintPrecision(0, 1, 0)
	require.ErrorAs(t, err, &liberrors.ErrInvalidArgument{})

	_, err = FlintPrecision(0, 1, 9)
	require.ErrorAs(t, err, &liberrors.ErrTypeOverflow{})
}

func TestUFlint(t *testing.T) {
	// platform heading: 0..360 on 2 bytes
	v, err := ReadUFlint([]byte{0x71, 0xC2}, 0, 360, 2)
	require.NoError(t, err)
	require.InDelta(t, 159.9744, v, 1e-4)

	buf, err := AppendUFlint(nil, v, 0, 360, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x71, 0xC2}, buf)

	buf, err = AppendUFlint(nil, 360, 0, 360, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF}, buf)

	buf, err = AppendUFlint(nil, 1, 0, 1, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, buf)

	_, err = AppendUFlint(nil, 361, 0, 360, 2)
	require.ErrorAs(t, err, &liberrors.ErrInvalidValue{})
}

func TestSFlint(t *testing.T) {
	// platform pitch: -20..20 on 2 bytes
	v, err := ReadSFlint([]byte{0xFD, 0x3D}, -20, 20, 2)
	require.NoError(t, err)
	require.InDelta(t, -0.4315251, v, 1e-5)

	buf, err := AppendSFlint(nil, v, -20, 20, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFD, 0x3D}, buf)

	buf, err = AppendSFlint(nil, 20, -20, 20, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x7F, 0xFF}, buf)

	buf, err = AppendSFlint(nil, -20, -20, 20, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x80, 0x01}, buf)

	v, err = ReadSFlint([]byte{0x80, 0x00}, -20, 20, 2)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	buf, err = AppendSFlint(nil, math.NaN(), -20, 20, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x80, 0x00}, buf)
}
