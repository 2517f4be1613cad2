package rtpklv

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/pion/rtp"
)

const (
	rtpVersion            = 2
	defaultPayloadMaxSize = 1450 // 1500 (UDP MTU) - 20 (IP header) - 8 (UDP header) - 12 (RTP header) - 10 (SRTP overhead)
)

func randUint32() (uint32, error) {
	var b [4]byte
	_, err := rand.Read(b[:])
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// Encoder is a RTP/KLV encoder.
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

	sequenceNumber uint16
}

// Init initializes the encoder.
func (e *Encoder) Init() error {
	if e.SSRC == nil {
		v, err := randUint32()
		if err != nil {
			return err
		}
		e.SSRC = &v
	}
	if e.InitialSequenceNumber == nil {
		v, err := randUint32()
		if err != nil {
			return err
		}
		v2 := uint16(v)
		e.InitialSequenceNumber = &v2
	}
	if e.PayloadMaxSize == 0 {
		e.PayloadMaxSize = defaultPayloadMaxSize
	}
	if e.PayloadMaxSize < 0 {
		return fmt.Errorf("invalid payload max size: %d", e.PayloadMaxSize)
	}

	e.sequenceNumber = *e.InitialSequenceNumber
	return nil
}

// Encode encodes a KLV unit into RTP packets.
// A KLV unit contains all the KLV items that share a presentation time.
// Packet payloads point into unit.
func (e *Encoder) Encode(unit []byte, timestamp uint32) ([]*rtp.Packet, error) {
	if len(unit) == 0 {
		return nil, fmt.Errorf("KLV unit is empty")
	}

	n := (len(unit) + e.PayloadMaxSize - 1) / e.PayloadMaxSize
	packets := make([]*rtp.Packet, n)

	for i := range packets {
		payload := unit[:min(e.PayloadMaxSize, len(unit))]
		unit = unit[len(payload):]

		packets[i] = &rtp.Packet{
			Header: rtp.Header{
				Version:        rtpVersion,
				PayloadType:    e.PayloadType,
				SequenceNumber: e.sequenceNumber,
				Timestamp:      timestamp,
				SSRC:           *e.SSRC,
				Marker:         i == (n - 1),
			},
			Payload: payload,
		}
		e.sequenceNumber++
	}

	return packets, nil
}
