package klv

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// Packet is a top-level KLV item, identified by a universal key.
type Packet struct {
	Key   UDSKey
	Value Value
}

// Clone returns a deep copy of the packet.
func (p Packet) Clone() Packet {
	return Packet{Key: p.Key, Value: p.Value.Clone()}
}

// String implements fmt.Stringer.
func (p Packet) String() string {
	return fmt.Sprintf("%v: %v", p.Key, p.Value)
}

func checksumOf(f Format) *ChecksumFormat {
	if cf, ok := f.(ChecksumFormatter); ok {
		return cf.ChecksumFormat()
	}
	return nil
}

// ReadPacket decodes a packet.
// Bytes preceding the first universal key prefix are skipped.
// lookup maps universal keys to the format of their values; unknown keys
// are read as blobs. It returns the packet and the number of consumed bytes.
func ReadPacket(buf []byte, lookup *TraitsLookup) (Packet, int, Warnings, error) {
	var w Warnings

	start := bytes.Index(buf, UDSKeyPrefix)
	if start < 0 {
		return Packet{}, 0, nil, liberrors.ErrInvalidValue{Msg: "universal key not found"}
	}

	if (len(buf) - start) < UDSKeyLength {
		return Packet{}, 0, nil, liberrors.ErrBufferOverflow{
			What:      "universal key",
			Needed:    UDSKeyLength,
			Available: len(buf) - start,
		}
	}

	var key UDSKey
	copy(key[:], buf[start:])

	l, n, err := klvcodec.ReadBER(buf[start+UDSKeyLength:])
	if err != nil {
		return Packet{}, 0, nil, fmt.Errorf("unable to read packet length: %w", err)
	}

	valueStart := start + UDSKeyLength + n
	if l > uint64(len(buf)-valueStart) {
		return Packet{}, 0, nil, liberrors.ErrBufferOverflow{
			What:      "packet value",
			Needed:    int(l), //nolint:gosec
			Available: len(buf) - valueStart,
		}
	}
	end := valueStart + int(l) //nolint:gosec

	format := lookup.ByUDSKey(key).Format
	value := buf[valueStart:end]

	if cs := checksumOf(format); cs != nil {
		err = cs.Verify(buf[start:end])
		if err != nil {
			w.Add(err)
		}

		if _, ok := cs.Find(value); ok {
			value = value[:len(value)-cs.Length()]
		}
	}

	v := Read(format, value, &w)

	return Packet{Key: key, Value: v}, end, w, nil
}

// ReadPackets decodes all packets contained in buf.
// A packet that cannot be decoded is reported as a warning and skipped,
// a truncated packet ends the search.
func ReadPackets(buf []byte, lookup *TraitsLookup) ([]Packet, Warnings) {
	var packets []Packet
	var w Warnings

	for {
		start := bytes.Index(buf, UDSKeyPrefix)
		if start < 0 {
			return packets, w
		}
		buf = buf[start:]

		pkt, n, pw, err := ReadPacket(buf, lookup)
		if err != nil {
			w.Add(err)

			var overflow liberrors.ErrBufferOverflow
			if errors.As(err, &overflow) {
				return packets, w
			}

			buf = buf[1:]
			continue
		}

		w.Extend(pw)
		packets = append(packets, pkt)
		buf = buf[n:]
	}
}

// PacketLength returns the number of bytes AppendPacket will write.
func PacketLength(p Packet, lookup *TraitsLookup) int {
	format := lookup.ByUDSKey(p.Key).Format

	l := LengthOf(format, p.Value)
	if cs := checksumOf(format); cs != nil {
		l += cs.Length()
	}

	return UDSKeyLength + klvcodec.BERLength(uint64(l)) + l
}

// AppendPacket encodes a packet, including its checksum, if any.
func AppendPacket(buf []byte, p Packet, lookup *TraitsLookup) ([]byte, Warnings, error) {
	var w Warnings

	format := lookup.ByUDSKey(p.Key).Format
	cs := checksumOf(format)

	l := LengthOf(format, p.Value)
	if cs != nil {
		l += cs.Length()
	}

	start := len(buf)
	buf = append(buf, p.Key[:]...)
	buf = klvcodec.AppendBER(buf, uint64(l))

	buf, err := Append(format, buf, p.Value, &w)
	if err != nil {
		return buf[:start], w, err
	}

	if cs != nil {
		buf = cs.Append(buf, start)
	}

	return buf, w, nil
}
