package rtpklv

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pion/rtp"

	"github.com/bluenviron/goklv/pkg/klv"
)

// ErrMorePacketsNeeded is returned when more packets are needed to complete a KLV unit.
var ErrMorePacketsNeeded = errors.New("need more packets")

// ErrNonStartingPacketAndNoPrevious is returned when we received a non-starting
// fragment of a KLV unit and we didn't receive anything before.
// It's normal to receive this when decoding a stream that has been already
// running for some time.
var ErrNonStartingPacketAndNoPrevious = errors.New(
	"received a non-starting fragment without any previous starting fragment")

// Decoder is a RTP/KLV decoder.
// A KLV unit ends with the packet carrying the marker bit.
type Decoder struct {
	buffer      []byte
	timestamp   uint32
	assembling  bool
	lastSeqNum  uint16
	seqNumIsSet bool
}

// Init initializes the decoder.
func (d *Decoder) Init() error {
	d.reset()
	d.seqNumIsSet = false
	return nil
}

func (d *Decoder) reset() {
	d.buffer = d.buffer[:0]
	d.assembling = false
}

// Decode decodes a KLV unit from a RTP packet.
// It returns ErrMorePacketsNeeded until the last packet of the unit is received.
// The returned slice is valid until the next call to Decode.
// When a partial unit is discarded, an error is returned. If the packet
// that caused the discard starts a new unit, decoding continues from it,
// and a completed unit can be returned together with the error.
func (d *Decoder) Decode(pkt *rtp.Packet) ([]byte, error) {
	var discardErr error

	if d.seqNumIsSet && pkt.SequenceNumber != d.lastSeqNum+1 && d.assembling {
		d.reset()
		discardErr = fmt.Errorf("discarding KLV unit: expected sequence number %d, got %d",
			d.lastSeqNum+1, pkt.SequenceNumber)
	}
	d.lastSeqNum = pkt.SequenceNumber
	d.seqNumIsSet = true

	if d.assembling && pkt.Timestamp != d.timestamp {
		d.reset()
		discardErr = fmt.Errorf("discarding KLV unit: timestamp changed from %d to %d",
			d.timestamp, pkt.Timestamp)
	}

	if !d.assembling {
		if !bytes.HasPrefix(pkt.Payload, klv.UDSKeyPrefix) {
			if discardErr != nil {
				return nil, discardErr
			}
			return nil, ErrNonStartingPacketAndNoPrevious
		}

		d.assembling = true
		d.timestamp = pkt.Timestamp
	}

	d.buffer = append(d.buffer, pkt.Payload...)

	if !pkt.Marker {
		if discardErr != nil {
			return nil, discardErr
		}
		return nil, ErrMorePacketsNeeded
	}

	unit := d.buffer
	d.reset()
	return unit, discardErr
}
