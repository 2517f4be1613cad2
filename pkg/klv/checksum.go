package klv

import (
	"bytes"

	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// ChecksumFormat describes the checksum item that terminates a packet.
// The item is made of a fixed header followed by the checksum itself,
// computed over the whole packet up to and including the header.
type ChecksumFormat struct {
	Header  []byte
	Size    int
	Compute func(buf []byte) uint64
}

// ChecksumFormatter is implemented by formats whose packets end with a checksum.
type ChecksumFormatter interface {
	ChecksumFormat() *ChecksumFormat
}

// RunningSum16Checksum returns a 16-bit running sum checksum format.
func RunningSum16Checksum(header ...byte) *ChecksumFormat {
	return &ChecksumFormat{
		Header: header,
		Size:   2,
		Compute: func(buf []byte) uint64 {
			return uint64(klvcodec.RunningSum16(buf, 0, false))
		},
	}
}

// CRC16CCITTChecksum returns a CRC-16-CCITT checksum format.
func CRC16CCITTChecksum(header ...byte) *ChecksumFormat {
	return &ChecksumFormat{
		Header: header,
		Size:   2,
		Compute: func(buf []byte) uint64 {
			return uint64(klvcodec.CRC16CCITT(buf, 0xFFFF))
		},
	}
}

// CRC32MPEGChecksum returns a CRC-32/MPEG-2 checksum format.
func CRC32MPEGChecksum(header ...byte) *ChecksumFormat {
	return &ChecksumFormat{
		Header: header,
		Size:   4,
		Compute: func(buf []byte) uint64 {
			return uint64(klvcodec.CRC32MPEG(buf, 0xFFFFFFFF))
		},
	}
}

// Length returns the length of the checksum item.
func (c *ChecksumFormat) Length() int {
	return len(c.Header) + c.Size
}

// Find checks whether buf ends with a checksum item and returns the
// checksum contained in it.
func (c *ChecksumFormat) Find(buf []byte) (uint64, bool) {
	if len(buf) < c.Length() {
		return 0, false
	}

	item := buf[len(buf)-c.Length():]
	if !bytes.Equal(item[:len(c.Header)], c.Header) {
		return 0, false
	}

	v, err := klvcodec.ReadUint(item[len(c.Header):], c.Size)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Verify compares the checksum contained at the end of a packet with the
// one computed from its content.
func (c *ChecksumFormat) Verify(packet []byte) error {
	expected, ok := c.Find(packet)
	if !ok {
		return liberrors.ErrInvalidValue{Msg: "checksum not found"}
	}

	actual := c.Compute(packet[:len(packet)-c.Size])
	if actual != expected {
		return liberrors.ErrChecksumMismatch{Expected: expected, Actual: actual}
	}

	return nil
}

// Append appends the checksum item to buf.
// The packet, starting from its key, is buf[start:].
func (c *ChecksumFormat) Append(buf []byte, start int) []byte {
	buf = append(buf, c.Header...)
	buf, _ = klvcodec.AppendUint(buf, c.Compute(buf[start:]), c.Size)
	return buf
}
