// Package rtpreorder contains a buffer that sorts RTP packets by sequence number.
package rtpreorder

import (
	"fmt"
	"math/bits"

	"github.com/pion/rtp"
)

const defaultSize = 64

// Buffer sorts incoming RTP packets and drops duplicates.
// A packet that arrives too early flushes the buffer: the packets
// in between are considered lost.
type Buffer struct {
	// number of packets that can be held (optional).
	// It must be a power of two and defaults to 64.
	Size int

	slots    []*rtp.Packet
	head     uint16
	next     uint16
	received bool
}

// Init initializes the buffer.
func (b *Buffer) Init() error {
	if b.Size == 0 {
		b.Size = defaultSize
	}
	if b.Size < 0 || b.Size > 0x8000 || bits.OnesCount(uint(b.Size)) != 1 {
		return fmt.Errorf("invalid buffer size: %d", b.Size)
	}

	b.slots = make([]*rtp.Packet, b.Size)
	return nil
}

func (b *Buffer) slot(offset uint16) uint16 {
	return (b.head + offset) & uint16(b.Size-1)
}

func (b *Buffer) clear() {
	for i := range b.slots {
		b.slots[i] = nil
	}
}

// Push adds a packet and returns the packets that are ready, in order.
func (b *Buffer) Push(pkt *rtp.Packet) []*rtp.Packet {
	if !b.received {
		b.received = true
		b.next = pkt.SequenceNumber + 1
		return []*rtp.Packet{pkt}
	}

	offset := pkt.SequenceNumber - b.next

	switch {
	// old or duplicate packet
	case offset > 0xFFF:
		return nil

	// too far ahead
	case int(offset) >= b.Size:
		b.clear()
		b.next = pkt.SequenceNumber + 1
		return []*rtp.Packet{pkt}

	// missing packets before this one
	case offset != 0:
		i := b.slot(offset)
		if b.slots[i] == nil {
			b.slots[i] = pkt
		}
		return nil
	}

	out := []*rtp.Packet{pkt}
	b.head = b.slot(1)

	for b.slots[b.head] != nil {
		out = append(out, b.slots[b.head])
		b.slots[b.head] = nil
		b.head = b.slot(1)
	}

	b.next = pkt.SequenceNumber + uint16(len(out))
	return out
}
