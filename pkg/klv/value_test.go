package klv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueCompare(t *testing.T) {
	for _, ca := range []struct {
		name string
		a    Value
		b    Value
		cmp  int
	}{
		{"empty", Empty(), Empty(), 0},
		{"kind order", IntValue(5), UintValue(1), -1},
		{"int", IntValue(-1), IntValue(1), -1},
		{"uint", UintValue(3), UintValue(2), 1},
		{"nan equals nan", FloatValue(math.NaN()), FloatValue(math.NaN()), 0},
		{"nan first", FloatValue(math.NaN()), FloatValue(math.Inf(-1)), -1},
		{"string", StringValue("a"), StringValue("b"), -1},
		{"blob", BlobValue([]byte{1, 2}), BlobValue([]byte{1, 2}), 0},
		{"series", SeriesValue(UintValue(1)), SeriesValue(UintValue(1), UintValue(2)), -1},
		{"length hint ignored", UintValue(7).WithLength(4), UintValue(7), 0},
		{
			"set order ignored",
			SetValue(NewLocalSet(Entry{1, UintValue(1)}, Entry{2, UintValue(2)})),
			SetValue(NewLocalSet(Entry{2, UintValue(2)}, Entry{1, UintValue(1)})),
			0,
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.cmp, Compare(ca.a, ca.b))
			require.Equal(t, -ca.cmp, Compare(ca.b, ca.a))
			require.Equal(t, ca.cmp == 0, ca.a.Equal(ca.b))
		})
	}
}

func TestValueClone(t *testing.T) {
	inner := NewLocalSet(Entry{1, BlobValue([]byte{1, 2, 3})})
	v := SeriesValue(SetValue(inner), BlobValue([]byte{4}))

	c := v.Clone()
	require.True(t, v.Equal(c))

	inner.Add(2, UintValue(9))
	v.AsSeries()[1].AsBlob()[0] = 5

	require.Equal(t, 1, c.AsSeries()[0].AsSet().Len())
	require.Equal(t, []byte{4}, c.AsSeries()[1].AsBlob())
}

func TestValueString(t *testing.T) {
	v := SetValue(NewLocalSet(
		Entry{1, StringValue("abc")},
		Entry{2, SeriesValue(IntValue(-3), FloatValue(1.5))},
		Entry{3, BlobValue([]byte{0xAB, 0x01})},
		Entry{4, Empty()},
	))
	require.Equal(t, `{ 1: "abc", 2: [-3, 1.5], 3: 0xAB01, 4: (empty) }`, v.String())
}

func TestUDSKey(t *testing.T) {
	k := MustParseUDSKey("060E2B34.020B0101.0E010301.01000000")
	require.True(t, k.IsValid())
	require.Equal(t, "060E2B34.020B0101.0E010301.01000000", k.String())

	other := k
	other[7] = 0x02
	require.True(t, k.Equal(other))
	require.Equal(t, 0, k.Compare(other))

	other[8] = 0x0F
	require.False(t, k.Equal(other))

	_, err := ParseUDSKey("060E2B34")
	require.Error(t, err)
}
