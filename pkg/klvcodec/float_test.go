package klvcodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

func TestFloat(t *testing.T) {
	for _, ca := range []struct {
		name   string
		dec    float64
		length int
		enc    []byte
	}{
		{"single", 1, 4, []byte{0x3F, 0x80, 0x00, 0x00}},
		{"single negative", -2.5, 4, []byte{0xC0, 0x20, 0x00, 0x00}},
		{"double", 1, 8, []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0}},
		{"double inf", math.Inf(1), 8, []byte{0x7F, 0xF0, 0, 0, 0, 0, 0, 0}},
	} {
		t.Run(ca.name, func(t *testing.T) {
			buf, err := AppendFloat(nil, ca.dec, ca.length)
			require.NoError(t, err)
			require.Equal(t, ca.enc, buf)

			v, err := ReadFloat(ca.enc, ca.length)
			require.NoError(t, err)
			require.Equal(t, ca.dec, v)
		})
	}
}

func TestFloatInvalidLength(t *testing.T) {
	_, err := ReadFloat([]byte{0, 0}, 2)
	require.ErrorAs(t, err, &liberrors.ErrInvalidValue{})

	_, err = AppendFloat(nil, 1, 3)
	require.ErrorAs(t, err, &liberrors.ErrInvalidValue{})
}
