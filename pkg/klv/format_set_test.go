package klv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

var (
	testLookupOnce sync.Once
	testTraits     *TraitsLookup
)

func testLookup() *TraitsLookup {
	testLookupOnce.Do(func() {
		testTraits = NewTraitsLookup([]TagTraits{
			{Name: "Unknown"},
			{Tag: 2, Name: "Count", Format: &UintFormat{Length: klvlength.MustFixed(2)}, Count: CountOne},
			{Tag: 3, Name: "Label", Format: &StringFormat{Codec: klvcodec.UTF8}, Count: CountOptional},
			{Tag: 4, Name: "Offset", Format: &IntFormat{}, Count: CountAny},
			{Tag: 5, Name: "Ratio", Format: &FloatFormat{Length: klvlength.MustFixed(4)}, Count: CountOptional},
			{
				Tag:     6,
				Name:    "Nested",
				Format:  &LocalSetFormat{Name: "nested", Lookup: testLookup, SkipCheck: true},
				Count:   CountOptional,
				Subtags: testLookup,
			},
		})
	})
	return testTraits
}

func testSetFormat() *LocalSetFormat {
	return &LocalSetFormat{Name: "test", Lookup: testLookup}
}

func TestLocalSetFormatRoundTrip(t *testing.T) {
	enc := []byte{
		0x02, 0x02, 0x00, 0x2A,
		0x03, 0x03, 'a', 'b', 'c',
		0x04, 0x01, 0xFF,
		0x04, 0x02, 0x01, 0x00,
		0x06, 0x04, 0x02, 0x02, 0x00, 0x07,
	}

	dec := NewLocalSet(
		Entry{2, UintValue(42)},
		Entry{3, StringValue("abc")},
		Entry{4, IntValue(-1)},
		Entry{4, IntValue(256)},
		Entry{6, SetValue(NewLocalSet(Entry{2, UintValue(7)}))},
	)

	set, w, err := testSetFormat().Parse(enc)
	require.NoError(t, err)
	require.Empty(t, w)
	require.True(t, dec.Equal(set), "%v", set)
	require.Equal(t, []Value{IntValue(-1), IntValue(256)}, []Value{
		set.AllAt(4)[0].WithLength(0), set.AllAt(4)[1].WithLength(0),
	})

	buf, w, err := testSetFormat().Serialize(set)
	require.NoError(t, err)
	require.Empty(t, w)
	require.Equal(t, enc, buf)
}

func TestLocalSetFormatSerializeOrder(t *testing.T) {
	set := NewLocalSet(
		Entry{3, StringValue("z")},
		Entry{2, UintValue(1)},
	)

	buf, _, err := testSetFormat().Serialize(set)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0x01, 'z', 0x02, 0x02, 0x00, 0x01}, buf)
}

func TestLocalSetFormatCheckSet(t *testing.T) {
	set, w, err := testSetFormat().Parse([]byte{
		0x03, 0x01, 'x',
		0x09, 0x02, 0xAA, 0xBB,
	})
	require.NoError(t, err)
	require.Len(t, w, 2)

	var count liberrors.ErrTagCount
	require.ErrorAs(t, w[0], &count)
	require.Equal(t, "Count", count.Name)
	require.Equal(t, 0, count.Count)

	var unknown ErrUnknownTag
	require.ErrorAs(t, w[1], &unknown)
	require.Equal(t, Tag(9), unknown.Tag)

	// unknown tags are kept as blobs and written back
	v, err := set.Get(9)
	require.NoError(t, err)
	require.Equal(t, BlobValue([]byte{0xAA, 0xBB}), v)

	buf, _, err := testSetFormat().Serialize(set)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0x01, 'x', 0x09, 0x02, 0xAA, 0xBB}, buf)
}

func TestLocalSetFormatSkipCheck(t *testing.T) {
	f := testSetFormat()
	f.SkipCheck = true

	_, w, err := f.Parse([]byte{0x03, 0x01, 'x'})
	require.NoError(t, err)
	require.Empty(t, w)
}

func TestLocalSetFormatTruncated(t *testing.T) {
	_, _, err := testSetFormat().Parse([]byte{0x02, 0x05, 0x00})
	require.ErrorAs(t, err, &liberrors.ErrBufferOverflow{})

	_, _, err = testSetFormat().Parse([]byte{0x82})
	require.ErrorAs(t, err, &liberrors.ErrBufferOverflow{})
}

func TestLocalSetFormatEmptyPlaceholder(t *testing.T) {
	set := NewLocalSet(Entry{3, Empty()})

	buf, _, err := testSetFormat().Serialize(set)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0x00}, buf)

	set2, _, err := testSetFormat().Parse(buf)
	require.NoError(t, err)
	require.True(t, set.Equal(set2))
}

func TestTraitsLookup(t *testing.T) {
	l := testLookup()

	require.Equal(t, "Label", l.ByTag(3).Name)
	require.Equal(t, "Unknown", l.ByTag(99).Name)
	require.Equal(t, Tag(5), l.ByName("Ratio").Tag)
	require.Equal(t, "Unknown", l.ByName("nothing").Name)
	require.Equal(t, KindBlob, l.Unknown().Format.Kind())
	require.Len(t, l.Traits(), 5)

	require.Panics(t, func() {
		NewTraitsLookup([]TagTraits{
			{Name: "Unknown"},
			{Tag: 1, Name: "A"},
			{Tag: 1, Name: "B"},
		})
	})
}

func TestTagCountRange(t *testing.T) {
	require.True(t, CountAny.Allows(5))
	require.True(t, CountAny.AllowsMultiple())
	require.False(t, CountOne.Allows(0))
	require.False(t, CountOptional.AllowsMultiple())
	require.Equal(t, "exactly 1", CountOne.String())
	require.Equal(t, "between 0 and 1", CountOptional.String())
	require.Equal(t, "at least 1", CountOneOrMore.String())
}

var (
	testKeyA = MustParseUDSKey("060E2B34.01010101.0E010201.01000000")
	testKeyB = MustParseUDSKey("060E2B34.01010101.0E010201.02000000")
	testKeyC = MustParseUDSKey("060E2B34.01010101.0E010201.03000000")
)

func TestUniversalSetFormat(t *testing.T) {
	lookup := NewTraitsLookup([]TagTraits{
		{Name: "Unknown"},
		{Tag: 1, UDSKey: testKeyA, Name: "A", Format: &StringFormat{Codec: klvcodec.ASCII}, Count: CountOne},
		{Tag: 2, UDSKey: testKeyB, Name: "B", Format: &UintFormat{Length: klvlength.MustFixed(1)}, Count: CountOptional},
	})
	f := &UniversalSetFormat{Name: "test", Lookup: func() *TraitsLookup { return lookup }}

	var enc []byte
	enc = append(enc, testKeyA[:]...)
	enc = append(enc, 0x03, 'a', 'b', 'c')
	enc = append(enc, testKeyC[:]...)
	enc = append(enc, 0x02, 0xAA, 0xBB)
	enc = append(enc, testKeyB[:]...)
	enc = append(enc, 0x01, 0x05)

	var w Warnings
	v := Read(f, enc, &w)
	require.Equal(t, KindLocalSet, v.Kind())
	require.Len(t, w, 1)
	require.ErrorAs(t, w[0], &ErrUnknownTag{})

	set := v.AsSet()
	require.Equal(t, []Tag{1, 0, 2}, set.Tags())
	require.Equal(t, StringValue("abc"), set.AllAt(1)[0])
	require.Equal(t, append(testKeyC[:], 0xAA, 0xBB), set.AllAt(0)[0].AsBlob())

	buf, err := Append(f, nil, v, nil)
	require.NoError(t, err)
	require.Equal(t, enc, buf)

	_, err = Append(f, nil, SetValue(NewLocalSet(Entry{7, UintValue(1)})), nil)
	require.ErrorAs(t, err, &liberrors.ErrInvalidValue{})
}
