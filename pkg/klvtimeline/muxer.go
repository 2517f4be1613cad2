package klvtimeline

import (
	"errors"
	"fmt"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/klvupdate"
	"github.com/bluenviron/goklv/pkg/misb"
)

// Muxer rebuilds the packets of frames from a Timeline.
// Frames must be requested in chronological order.
type Muxer struct {
	// source timeline.
	Timeline *Timeline

	// traits of top-level packets (optional).
	// It defaults to misb.PacketTraits().
	Lookup *klv.TraitsLookup

	// validity of values, in microseconds (optional).
	// It must match the one of the demuxer that filled the timeline.
	// It defaults to DefaultDuration.
	Duration uint64

	// update intervals, indexed by normalized universal key (optional).
	// When set, tags that did not change since they were last emitted
	// are omitted until their interval elapses.
	Intervals *klvupdate.Intervals[klv.UDSKey]

	tracker   klvupdate.Tracker[klv.UDSKey]
	prevFrame uint64
	hasPrev   bool
}

// Init initializes the muxer.
func (m *Muxer) Init() error {
	if m.Timeline == nil {
		return errors.New("timeline not provided")
	}
	if m.Lookup == nil {
		m.Lookup = misb.PacketTraits()
	}
	if m.Duration == 0 {
		m.Duration = DefaultDuration
	}
	return nil
}

// Reset clears the state of the muxer.
func (m *Muxer) Reset() {
	m.tracker = klvupdate.Tracker[klv.UDSKey]{}
	m.prevFrame = 0
	m.hasPrev = false
}

// Frame returns the packets of the frame at a timestamp.
// Values held at the timestamp are emitted, together with the point
// occurrences since the previous frame. Values that were canceled since
// the previous frame are emitted as empty values.
func (m *Muxer) Frame(timestamp uint64) ([]klv.Packet, error) {
	if m.hasPrev && timestamp < m.prevFrame {
		return nil, fmt.Errorf("refusing to emit packets out of order (%d is less than %d)",
			timestamp, m.prevFrame)
	}

	// point occurrences after the previous frame, up to this one
	window := Interval{Start: 0, End: timestamp + 1}
	if m.hasPrev {
		window.Start = m.prevFrame + 1
	}

	var out []klv.Packet

	for _, standard := range m.Timeline.Standards() {
		out = append(out, m.frameRaw(standard, window)...)

		if p, ok := m.frameSet(standard, timestamp, window); ok {
			if m.Intervals != nil {
				p = klvupdate.PrunePacket(&m.tracker, m.Intervals, m.Lookup, p, timestamp)
			}
			out = append(out, p)
		}
	}

	m.prevFrame = timestamp
	m.hasPrev = true

	return out, nil
}

func (m *Muxer) frameRaw(standard klv.UDSKey, window Interval) []klv.Packet {
	var out []klv.Packet
	for _, e := range m.Timeline.FindTag(standard, RawTag) {
		for _, s := range e.Values.Overlapping(window) {
			out = append(out, klv.Packet{Key: e.Key.Standard, Value: s.Value.Clone()})
		}
	}
	return out
}

func (m *Muxer) frameSet(standard klv.UDSKey, timestamp uint64, window Interval) (klv.Packet, bool) {
	traits := m.Lookup.ByUDSKey(standard)
	if traits.Subtags == nil {
		return klv.Packet{}, false
	}
	subtags := traits.Subtags()

	set := klv.NewLocalSet()

	for _, e := range m.Timeline.FindAll(standard) {
		tag := e.Key.Tag
		if tag == RawTag {
			continue
		}

		if isPointTag(m.Lookup, standard, tag) {
			for _, s := range e.Values.Overlapping(window) {
				set.Add(tag, s.Value.Clone())
			}
			continue
		}

		if s, ok := e.Values.Find(timestamp); ok {
			set.Add(tag, s.Value.Clone())
			continue
		}

		// a value that ended early was canceled
		if m.hasPrev && !subtags.ByTag(tag).Count.AllowsMultiple() {
			if s, ok := e.Values.Find(m.prevFrame); ok && s.End-s.Start < m.Duration {
				set.Add(tag, klv.Empty())
			}
		}
	}

	if set.Len() == 0 {
		return klv.Packet{}, false
	}

	if tag, ok := misb.TimestampTag(standard); ok {
		set.Add(tag, klv.UintValue(timestamp))
	}

	return klv.Packet{Key: traits.UDSKey, Value: klv.SetValue(set)}, true
}
