package klvtimeline

import (
	"errors"
	"slices"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/misb"
)

// DefaultDuration is the time during which a value is valid when it is not
// sent again, in microseconds.
const DefaultDuration = 30 * 1000 * 1000

type cancelPoint struct {
	key  Key
	time uint64
}

// isPointTag checks whether a tag describes an instantaneous occurrence
// rather than a value held over time.
// Tags that can appear more than once in a set are point tags, and are
// indexed by their value.
func isPointTag(lookup *klv.TraitsLookup, standard klv.UDSKey, tag klv.Tag) bool {
	traits := lookup.ByUDSKey(standard)
	if traits.Subtags == nil {
		return false
	}
	return traits.Subtags().ByTag(tag).Count.AllowsMultiple()
}

// Demuxer splits the packets of consecutive frames into a Timeline.
type Demuxer struct {
	// destination timeline (optional).
	// It defaults to a new timeline.
	Timeline *Timeline

	// traits of top-level packets (optional).
	// It defaults to misb.PacketTraits().
	Lookup *klv.TraitsLookup

	// validity of values, in microseconds (optional).
	// It defaults to DefaultDuration.
	Duration uint64

	// called when a non-fatal problem is found (optional).
	OnWarning func(error)

	frameTime uint64
	cancels   []cancelPoint
}

// Init initializes the demuxer.
func (d *Demuxer) Init() error {
	if d.Timeline == nil {
		d.Timeline = &Timeline{}
	}
	if d.Lookup == nil {
		d.Lookup = misb.PacketTraits()
	}
	if d.Duration == 0 {
		d.Duration = DefaultDuration
	}
	if d.OnWarning == nil {
		d.OnWarning = func(error) {}
	}
	return nil
}

// FrameTime returns the timestamp of the last frame.
func (d *Demuxer) FrameTime() uint64 {
	return d.frameTime
}

// Reset clears the timeline and the state of the demuxer.
func (d *Demuxer) Reset() {
	d.frameTime = 0
	d.cancels = nil
	d.Timeline.Clear()
}

// SendFrame adds the packets of a frame to the timeline.
// The frame timestamp is the earliest precision timestamp of the packets.
// When no packet carries one, backupTimestamp is used if present,
// otherwise the previous frame timestamp is kept.
func (d *Demuxer) SendFrame(packets []klv.Packet, backupTimestamp *uint64) {
	found := false
	for _, p := range packets {
		if ts, ok := misb.PacketTimestamp(p); ok {
			if !found || ts < d.frameTime {
				d.frameTime = ts
			}
			found = true
		}
	}

	if !found {
		if backupTimestamp != nil {
			d.frameTime = *backupTimestamp
		} else {
			d.OnWarning(errors.New("unable to update timestamp of frame"))
		}
	}

	// cancel points only affect values that are still valid
	d.cancels = slices.DeleteFunc(d.cancels, func(c cancelPoint) bool {
		return c.time+d.Duration < d.frameTime
	})

	for _, p := range packets {
		d.demuxPacket(p)
	}
}

func (d *Demuxer) demuxPacket(p klv.Packet) {
	timestamp, ok := misb.PacketTimestamp(p)
	if !ok {
		timestamp = d.frameTime
	}

	traits := d.Lookup.ByUDSKey(p.Key)

	if p.Value.Kind() != klv.KindLocalSet || traits.Subtags == nil {
		d.demuxRaw(p, timestamp)
		return
	}

	standard := traits.UDSKey
	timestampTag, hasTimestampTag := misb.TimestampTag(standard)
	held := Interval{Start: timestamp, End: timestamp + d.Duration}
	point := Interval{Start: timestamp, End: timestamp + 1}

	for tag, v := range p.Value.AsSet().All() {
		// already encoded in the interval
		if hasTimestampTag && tag == timestampTag {
			continue
		}

		if isPointTag(d.Lookup, standard, tag) {
			d.demuxEntry(Key{Standard: standard, Tag: tag, Index: v}, point, v)
			continue
		}

		d.demuxEntry(Key{Standard: standard, Tag: tag, Index: klv.Empty()}, held, v)
	}
}

// demuxRaw stores packets that cannot be split into tags, indexed by value,
// as point occurrences.
func (d *Demuxer) demuxRaw(p klv.Packet, timestamp uint64) {
	e := d.Timeline.InsertOrFind(Key{Standard: p.Key, Tag: RawTag, Index: p.Value})
	e.Values.Set(Interval{Start: timestamp, End: timestamp + 1}, p.Value.Clone())
}

func (d *Demuxer) demuxEntry(key Key, iv Interval, v klv.Value) {
	// an empty value cancels the previous one
	if v.IsEmpty() {
		d.cancels = append(d.cancels, cancelPoint{key: key, time: iv.Start})

		e := d.Timeline.Find(key)
		if e == nil {
			return
		}

		s, ok := e.Values.Find(iv.Start)
		if !ok {
			return
		}

		e.Values.Erase(Interval{Start: iv.Start, End: s.End})
		return
	}

	for _, c := range d.cancels {
		if c.key.Compare(key) == 0 && c.time >= iv.Start && c.time < iv.End {
			iv.End = c.time
		}
	}
	if iv.IsEmpty() {
		return
	}

	v = v.Clone()
	e := d.Timeline.InsertOrFind(key)
	e.Values.WeakSet(iv, v)

	// a new value replaces the one it overlaps until that one ends
	if s, ok := e.Values.Find(iv.Start); ok {
		e.Values.Set(Interval{Start: iv.Start, End: s.End}, v)
	}
}
