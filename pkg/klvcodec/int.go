package klvcodec

import (
	"math/bits"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

// MaxIntLength is the maximum width of integers, in bytes.
const MaxIntLength = 8

// ReadUint reads a big-endian unsigned integer of the given width.
func ReadUint(buf []byte, length int) (uint64, error) {
	if length > MaxIntLength {
		return 0, liberrors.ErrTypeOverflow{Msg: "integer will overflow given type"}
	}

	err := checkAvailable("integer decoding", buf, length)
	if err != nil {
		return 0, err
	}

	var v uint64
	for _, b := range buf[:length] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// ReadInt reads a big-endian two's complement integer of the given width.
func ReadInt(buf []byte, length int) (int64, error) {
	u, err := ReadUint(buf, length)
	if err != nil {
		return 0, err
	}

	if length > 0 && length < MaxIntLength && (u&(1<<(8*length-1))) != 0 {
		u |= ^uint64(0) << (8 * length)
	}

	return int64(u), nil //nolint:gosec
}

// UintLength returns the minimum number of bytes needed to represent v.
func UintLength(v uint64) int {
	return max((bits.Len64(v)+7)/8, 1)
}

// IntLength returns the minimum number of bytes needed to represent v
// in two's complement.
func IntLength(v int64) int {
	u := uint64(v) //nolint:gosec
	if v < 0 {
		u = ^u
	}
	// one extra bit for the sign
	return max((bits.Len64(u)+1+7)/8, 1)
}

// AppendUint appends v as a big-endian unsigned integer of the given width.
func AppendUint(buf []byte, v uint64, length int) ([]byte, error) {
	if length > MaxIntLength || UintLength(v) > length {
		return buf, liberrors.ErrTypeOverflow{Msg: "integer not representable using given length"}
	}

	for i := length - 1; i >= 0; i-- {
		buf = append(buf, byte(v>>(8*i)))
	}
	return buf, nil
}

// AppendInt appends v as a big-endian two's complement integer of the given width.
func AppendInt(buf []byte, v int64, length int) ([]byte, error) {
	if length > MaxIntLength || IntLength(v) > length {
		return buf, liberrors.ErrTypeOverflow{Msg: "integer not representable using given length"}
	}

	u := uint64(v) //nolint:gosec
	for i := length - 1; i >= 0; i-- {
		buf = append(buf, byte(u>>(8*i)))
	}
	return buf, nil
}
