package klvcodec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

var casesBER = []struct {
	name string
	dec  uint64
	enc  []byte
}{
	{"zero", 0, []byte{0x00}},
	{"short form max", 127, []byte{0x7F}},
	{"long form 1", 128, []byte{0x81, 0x80}},
	{"long form 2", 256, []byte{0x82, 0x01, 0x00}},
	{"long form 8", 0xFFFFFFFFFFFFFFFF, []byte{0x88, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
}

var casesBEROID = []struct {
	name string
	dec  uint64
	enc  []byte
}{
	{"zero", 0, []byte{0x00}},
	{"one byte", 127, []byte{0x7F}},
	{"two bytes", 128, []byte{0x81, 0x00}},
	{"two bytes max", 16383, []byte{0xFF, 0x7F}},
	{"three bytes", 16384, []byte{0x81, 0x80, 0x00}},
}

func TestBERDecode(t *testing.T) {
	for _, ca := range casesBER {
		t.Run(ca.name, func(t *testing.T) {
			v, n, err := ReadBER(append(ca.enc, 0xAA))
			require.NoError(t, err)
			require.Equal(t, ca.dec, v)
			require.Equal(t, len(ca.enc), n)
		})
	}
}

func TestBEREncode(t *testing.T) {
	for _, ca := range casesBER {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.enc, AppendBER(nil, ca.dec))
			require.Equal(t, len(ca.enc), BERLength(ca.dec))
		})
	}
}

func TestBERSweep(t *testing.T) {
	var values []uint64
	for i := range 33 {
		p := uint64(1) << i
		values = append(values, p-1, p, p+1)
	}
	for v := uint64(0); v < 1<<32; v += 0x10001 {
		values = append(values, v)
	}

	for _, v := range values {
		enc := AppendBER(nil, v)

		minLen := 1
		if v > 127 {
			for x := v; x != 0; x >>= 8 {
				minLen++
			}
		}
		require.Len(t, enc, minLen, "%d", v)
		require.Equal(t, minLen, BERLength(v), "%d", v)

		dec, n, err := ReadBER(enc)
		require.NoError(t, err)
		require.Equal(t, v, dec)
		require.Equal(t, len(enc), n)
	}
}

func TestBERErrors(t *testing.T) {
	_, _, err := ReadBER(nil)
	require.ErrorAs(t, err, &liberrors.ErrBufferOverflow{})

	_, _, err = ReadBER([]byte{0x80})
	require.ErrorAs(t, err, &liberrors.ErrInvalidValue{})

	_, _, err = ReadBER([]byte{0x82, 0x01})
	require.ErrorAs(t, err, &liberrors.ErrBufferOverflow{})

	_, _, err = ReadBER([]byte{0x89, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.ErrorAs(t, err, &liberrors.ErrTypeOverflow{})
}

func TestBEROIDDecode(t *testing.T) {
	for _, ca := range casesBEROID {
		t.Run(ca.name, func(t *testing.T) {
			v, n, err := ReadBEROID(append(ca.enc, 0x55))
			require.NoError(t, err)
			require.Equal(t, ca.dec, v)
			require.Equal(t, len(ca.enc), n)
		})
	}
}

func TestBEROIDEncode(t *testing.T) {
	for _, ca := range casesBEROID {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.enc, AppendBEROID(nil, ca.dec))
			require.Equal(t, len(ca.enc), BEROIDLength(ca.dec))
		})
	}
}

func TestBEROIDErrors(t *testing.T) {
	_, _, err := ReadBEROID([]byte{0x81})
	require.ErrorAs(t, err, &liberrors.ErrBufferOverflow{})

	_, _, err = ReadBEROID([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	require.ErrorAs(t, err, &liberrors.ErrTypeOverflow{})
}
