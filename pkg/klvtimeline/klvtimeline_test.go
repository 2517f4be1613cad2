package klvtimeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/klvupdate"
	"github.com/bluenviron/goklv/pkg/misb"
	"github.com/bluenviron/goklv/pkg/st0102"
	"github.com/bluenviron/goklv/pkg/st0601"
)

const second = 1000 * 1000

var unknownKey = klv.MustParseUDSKey("060E2B34020B01010E01030399000000")

func uasPacket(timestamp uint64, entries ...klv.Entry) klv.Packet {
	set := klv.NewLocalSet(klv.Entry{Tag: st0601.TagPrecisionTimestamp, Value: klv.UintValue(timestamp)})
	for _, e := range entries {
		set.Add(e.Tag, e.Value)
	}
	return klv.Packet{Key: st0601.Key, Value: klv.SetValue(set)}
}

func entry(tag klv.Tag, v klv.Value) klv.Entry {
	return klv.Entry{Tag: tag, Value: v}
}

var testAmend = klv.SetValue(klv.NewLocalSet(
	entry(st0601.TagMissionID, klv.StringValue("X")),
))

// three frames: a mission change at 2s, a tail number cancel and an amend at 3s.
func newTestDemuxer(t *testing.T) *Demuxer {
	d := &Demuxer{}
	err := d.Init()
	require.NoError(t, err)

	d.SendFrame([]klv.Packet{uasPacket(1*second,
		entry(st0601.TagMissionID, klv.StringValue("M")),
		entry(st0601.TagPlatformTailNumber, klv.StringValue("N123")),
	)}, nil)

	d.SendFrame([]klv.Packet{uasPacket(2*second,
		entry(st0601.TagMissionID, klv.StringValue("M2")),
	)}, nil)

	d.SendFrame([]klv.Packet{uasPacket(3*second,
		entry(st0601.TagPlatformTailNumber, klv.Empty()),
		entry(st0601.TagAmendLocalSet, testAmend),
	)}, nil)

	return d
}

func TestDemuxer(t *testing.T) {
	d := newTestDemuxer(t)
	tl := d.Timeline

	require.Equal(t, uint64(3*second), d.FrameTime())
	require.Empty(t, tl.FindTag(st0601.Key, st0601.TagPrecisionTimestamp))

	e := tl.Find(Key{Standard: st0601.Key, Tag: st0601.TagMissionID})
	require.NotNil(t, e)
	require.Equal(t, []Span{
		span(1*second, 2*second, klv.StringValue("M")),
		span(2*second, 2*second+DefaultDuration, klv.StringValue("M2")),
	}, e.Values.Spans())

	e = tl.Find(Key{Standard: st0601.Key, Tag: st0601.TagPlatformTailNumber})
	require.NotNil(t, e)
	require.Equal(t, []Span{
		span(1*second, 3*second, klv.StringValue("N123")),
	}, e.Values.Spans())

	e = tl.Find(Key{Standard: st0601.Key, Tag: st0601.TagAmendLocalSet, Index: testAmend})
	require.NotNil(t, e)
	require.Len(t, e.Values.Spans(), 1)
	require.Equal(t, Interval{3 * second, 3*second + 1}, e.Values.Spans()[0].Interval)

	v, err := tl.At(st0601.Key, st0601.TagMissionID, 1500*1000)
	require.NoError(t, err)
	require.Equal(t, "M", v.AsString())

	d.Reset()
	require.Equal(t, 0, tl.Len())
	require.Equal(t, uint64(0), d.FrameTime())
}

func TestDemuxerRepeatedValue(t *testing.T) {
	d := &Demuxer{Duration: 10 * second}
	err := d.Init()
	require.NoError(t, err)

	for _, ts := range []uint64{0, 5 * second, 12 * second} {
		d.SendFrame([]klv.Packet{uasPacket(ts,
			entry(st0601.TagMissionID, klv.StringValue("M")),
		)}, nil)
	}

	e := d.Timeline.Find(Key{Standard: st0601.Key, Tag: st0601.TagMissionID})
	require.Equal(t, []Span{
		span(0, 22*second, klv.StringValue("M")),
	}, e.Values.Spans())
}

func TestDemuxerCancelBeforeValue(t *testing.T) {
	d := &Demuxer{}
	err := d.Init()
	require.NoError(t, err)

	d.SendFrame([]klv.Packet{uasPacket(5*second,
		entry(st0601.TagPlatformTailNumber, klv.Empty()),
	)}, nil)

	// a late packet
	d.SendFrame([]klv.Packet{uasPacket(3*second,
		entry(st0601.TagPlatformTailNumber, klv.StringValue("N123")),
	)}, nil)

	e := d.Timeline.Find(Key{Standard: st0601.Key, Tag: st0601.TagPlatformTailNumber})
	require.Equal(t, []Span{
		span(3*second, 5*second, klv.StringValue("N123")),
	}, e.Values.Spans())
}

func TestDemuxerTimestamp(t *testing.T) {
	security := klv.Packet{
		Key: st0102.Key,
		Value: klv.SetValue(klv.NewLocalSet(
			entry(st0102.TagSecurityClassification, klv.UintValue(1)),
		)),
	}

	var warnings []error
	d := &Demuxer{
		OnWarning: func(err error) {
			warnings = append(warnings, err)
		},
	}
	err := d.Init()
	require.NoError(t, err)

	// earliest precision timestamp of the frame
	d.SendFrame([]klv.Packet{
		uasPacket(7 * second),
		uasPacket(6 * second),
		security,
	}, nil)
	require.Equal(t, uint64(6*second), d.FrameTime())

	e := d.Timeline.Find(Key{Standard: st0102.Key, Tag: st0102.TagSecurityClassification})
	require.NotNil(t, e)
	require.Equal(t, uint64(6*second), e.Values.Spans()[0].Start)

	backup := uint64(8 * second)
	d.SendFrame([]klv.Packet{security}, &backup)
	require.Equal(t, uint64(8*second), d.FrameTime())
	require.Empty(t, warnings)

	d.SendFrame([]klv.Packet{security}, nil)
	require.Equal(t, uint64(8*second), d.FrameTime())
	require.Len(t, warnings, 1)
}

func TestMuxer(t *testing.T) {
	d := newTestDemuxer(t)

	m := &Muxer{Timeline: d.Timeline}
	err := m.Init()
	require.NoError(t, err)

	for _, ca := range []struct {
		name string
		ts   uint64
		set  *klv.LocalSet
	}{
		{
			"first",
			1 * second,
			klv.NewLocalSet(
				entry(st0601.TagMissionID, klv.StringValue("M")),
				entry(st0601.TagPlatformTailNumber, klv.StringValue("N123")),
				entry(st0601.TagPrecisionTimestamp, klv.UintValue(1*second)),
			),
		},
		{
			"changed",
			2 * second,
			klv.NewLocalSet(
				entry(st0601.TagMissionID, klv.StringValue("M2")),
				entry(st0601.TagPlatformTailNumber, klv.StringValue("N123")),
				entry(st0601.TagPrecisionTimestamp, klv.UintValue(2*second)),
			),
		},
		{
			"canceled and amended",
			3 * second,
			klv.NewLocalSet(
				entry(st0601.TagMissionID, klv.StringValue("M2")),
				entry(st0601.TagPlatformTailNumber, klv.Empty()),
				entry(st0601.TagAmendLocalSet, testAmend),
				entry(st0601.TagPrecisionTimestamp, klv.UintValue(3*second)),
			),
		},
		{
			"after",
			4 * second,
			klv.NewLocalSet(
				entry(st0601.TagMissionID, klv.StringValue("M2")),
				entry(st0601.TagPrecisionTimestamp, klv.UintValue(4*second)),
			),
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			packets, err := m.Frame(ca.ts)
			require.NoError(t, err)
			require.Len(t, packets, 1)
			require.Equal(t, st0601.Key, packets[0].Key)
			require.True(t, ca.set.Equal(packets[0].Value.AsSet()),
				"%v != %v", ca.set, packets[0].Value.AsSet())

			_, _, err = klv.AppendPacket(nil, packets[0], misb.PacketTraits())
			require.NoError(t, err)
		})
	}

	_, err = m.Frame(3 * second)
	require.Error(t, err)

	packets, err := m.Frame(DefaultDuration + 3*second)
	require.NoError(t, err)
	require.Empty(t, packets)
}

func TestMuxerRaw(t *testing.T) {
	raw := klv.Packet{Key: unknownKey, Value: klv.BlobValue([]byte{1, 2, 3})}

	d := &Demuxer{}
	err := d.Init()
	require.NoError(t, err)

	backup := uint64(1 * second)
	d.SendFrame([]klv.Packet{raw}, &backup)

	m := &Muxer{Timeline: d.Timeline}
	err = m.Init()
	require.NoError(t, err)

	packets, err := m.Frame(1 * second)
	require.NoError(t, err)
	require.Equal(t, []klv.Packet{raw}, packets)

	packets, err = m.Frame(2 * second)
	require.NoError(t, err)
	require.Empty(t, packets)
}

func TestMuxerPrune(t *testing.T) {
	d := &Demuxer{}
	err := d.Init()
	require.NoError(t, err)

	for _, ts := range []uint64{1 * second, 2 * second} {
		d.SendFrame([]klv.Packet{uasPacket(ts,
			entry(st0601.TagMissionID, klv.StringValue("M")),
			entry(st0601.TagVersionNumber, klv.UintValue(17)),
		)}, nil)
	}

	intervals := &klvupdate.Intervals[klv.UDSKey]{}
	intervals.Set(10 * second)

	m := &Muxer{Timeline: d.Timeline, Intervals: intervals}
	err = m.Init()
	require.NoError(t, err)

	packets, err := m.Frame(1 * second)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	require.ElementsMatch(t, []klv.Tag{
		st0601.TagPrecisionTimestamp,
		st0601.TagMissionID,
		st0601.TagVersionNumber,
	}, packets[0].Value.AsSet().Tags())

	// unchanged tags are omitted, required ones are kept
	packets, err = m.Frame(2 * second)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	require.ElementsMatch(t, []klv.Tag{
		st0601.TagPrecisionTimestamp,
		st0601.TagVersionNumber,
	}, packets[0].Value.AsSet().Tags())

	m.Reset()
	packets, err = m.Frame(1 * second)
	require.NoError(t, err)
	require.Equal(t, 3, packets[0].Value.AsSet().Len())
}

func TestMuxerInitErrors(t *testing.T) {
	m := &Muxer{}
	require.Error(t, m.Init())
}
