package rtpreorder

import (
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/require"
)

func seqs(pkts []*rtp.Packet) []uint16 {
	if pkts == nil {
		return nil
	}
	out := make([]uint16, len(pkts))
	for i, pkt := range pkts {
		out[i] = pkt.SequenceNumber
	}
	return out
}

func TestPush(t *testing.T) {
	b := &Buffer{Size: 8}
	err := b.Init()
	require.NoError(t, err)

	for _, step := range []struct {
		name string
		in   uint16
		out  []uint16
	}{
		{"first", 65530, []uint16{65530}},
		{"before first", 65529, nil},
		{"in order", 65531, []uint16{65531}},
		{"duplicate", 65531, nil},
		{"gap", 65534, nil},
		{"unordered", 65533, nil},
		{"unordered duplicate", 65533, nil},
		{"gap filled with wrap", 65532, []uint16{65532, 65533, 65534}},
		{"after wrap", 65535, []uint16{65535}},
		{"zero", 0, []uint16{0}},
		{"too far ahead", 20, []uint16{20}},
		{"late after reset", 10, nil},
		{"in order after reset", 21, []uint16{21}},
	} {
		out := b.Push(&rtp.Packet{Header: rtp.Header{SequenceNumber: step.in}})
		require.Equal(t, step.out, seqs(out), step.name)
	}
}

func TestInitInvalidSize(t *testing.T) {
	for _, size := range []int{-1, 3, 100, 0x10000} {
		b := &Buffer{Size: size}
		err := b.Init()
		require.Error(t, err)
	}
}

func TestInitDefault(t *testing.T) {
	b := &Buffer{}
	err := b.Init()
	require.NoError(t, err)
	require.Equal(t, 64, b.Size)
}
