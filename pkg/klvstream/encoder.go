package klvstream

import (
	"fmt"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/klvupdate"
	"github.com/bluenviron/goklv/pkg/misb"
	"github.com/bluenviron/goklv/pkg/misptime"
	"github.com/bluenviron/goklv/pkg/rtpklv"
)

// Encoder encodes KLV packets into RTP packets.
// Tags that did not change since their last transmission are omitted
// until their update interval elapses.
type Encoder struct {
	// payload type of packets.
	PayloadType uint8

	// SSRC of packets (optional).
	// It defaults to a random value.
	SSRC *uint32

	// initial sequence number of packets (optional).
	// It defaults to a random value.
	InitialSequenceNumber *uint16

	// maximum size of packet payloads (optional).
	// It defaults to 1450.
	PayloadMaxSize int

	// traits of top-level packets (optional).
	// It defaults to misb.PacketTraits().
	Lookup *klv.TraitsLookup

	// update intervals, indexed by normalized universal key (optional).
	// When nil, every tag is transmitted every time.
	Intervals *klvupdate.Intervals[klv.UDSKey]

	// called when a non-fatal problem is found (optional).
	OnWarning func(error)

	rtpEnc      *rtpklv.Encoder
	tracker     klvupdate.Tracker[klv.UDSKey]
	sent        bool
	lastRTP     uint32
	lastMISP    uint64
	packetCount uint32
	octetCount  uint32
}

// Init initializes the encoder.
func (e *Encoder) Init() error {
	if e.Lookup == nil {
		e.Lookup = misb.PacketTraits()
	}
	if e.OnWarning == nil {
		e.OnWarning = func(error) {}
	}

	e.rtpEnc = &rtpklv.Encoder{
		PayloadType:           e.PayloadType,
		SSRC:                  e.SSRC,
		InitialSequenceNumber: e.InitialSequenceNumber,
		PayloadMaxSize:        e.PayloadMaxSize,
	}
	err := e.rtpEnc.Init()
	if err != nil {
		return err
	}

	e.SSRC = e.rtpEnc.SSRC
	e.InitialSequenceNumber = e.rtpEnc.InitialSequenceNumber
	e.PayloadMaxSize = e.rtpEnc.PayloadMaxSize

	return nil
}

func (e *Encoder) encodeUnit(
	packets []klv.Packet,
	timestamp uint64,
) ([]byte, *klvupdate.Tracker[klv.UDSKey], error) {
	// the tracker is committed only when the whole unit is sent.
	tracker := e.tracker.Clone()
	var unit []byte

	for _, p := range packets {
		p = klvupdate.PrunePacket(tracker, e.Intervals, e.Lookup, p, timestamp)

		if p.Value.Kind() == klv.KindLocalSet && p.Value.AsSet().Len() == 0 {
			continue
		}

		var w klv.Warnings
		var err error
		unit, w, err = klv.AppendPacket(unit, p, e.Lookup)
		for _, warn := range w {
			e.OnWarning(warn)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("unable to encode packet %v: %w", p.Key, err)
		}
	}

	return unit, tracker, nil
}

// EncodeUnit encodes KLV packets into a KLV unit.
// timestamp is a MISP timestamp.
// Packets whose sets are empty after pruning are omitted.
// Input packets are not modified.
// When an error is returned, tags are not considered transmitted.
func (e *Encoder) EncodeUnit(packets []klv.Packet, timestamp uint64) ([]byte, error) {
	unit, tracker, err := e.encodeUnit(packets, timestamp)
	if err != nil {
		return nil, err
	}

	e.tracker = *tracker
	return unit, nil
}

// Encode encodes KLV packets into RTP packets.
// timestamp is a MISP timestamp; the RTP timestamp is derived from it.
// It returns no packets when there is nothing to transmit.
func (e *Encoder) Encode(packets []klv.Packet, timestamp uint64) ([]*rtp.Packet, error) {
	unit, tracker, err := e.encodeUnit(packets, timestamp)
	if err != nil {
		return nil, err
	}

	if len(unit) == 0 {
		e.tracker = *tracker
		return nil, nil
	}

	rtpTime := misptime.RTPTimestamp(timestamp, rtpklv.ClockRate)

	pkts, err := e.rtpEnc.Encode(unit, rtpTime)
	if err != nil {
		return nil, err
	}

	e.tracker = *tracker
	e.sent = true
	e.lastRTP = rtpTime
	e.lastMISP = timestamp
	e.packetCount += uint32(len(pkts))
	e.octetCount += uint32(len(unit))

	return pkts, nil
}

// SenderReport returns a RTCP sender report that allows receivers to map
// RTP timestamps to MISP timestamps.
// It returns nil if no packet has been encoded yet.
func (e *Encoder) SenderReport() *rtcp.SenderReport {
	if !e.sent {
		return nil
	}

	return &rtcp.SenderReport{
		SSRC:        *e.SSRC,
		NTPTime:     misptime.NTP(e.lastMISP),
		RTPTime:     e.lastRTP,
		PacketCount: e.packetCount,
		OctetCount:  e.octetCount,
	}
}
