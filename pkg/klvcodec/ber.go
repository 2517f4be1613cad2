package klvcodec

import (
	"math/bits"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

// ReadBER reads a BER-encoded length.
// It returns the value and the number of bytes consumed.
// Specification: SMPTE ST 336, section 6.3
func ReadBER(buf []byte) (uint64, int, error) {
	err := checkAvailable("BER decoding", buf, 1)
	if err != nil {
		return 0, 0, err
	}

	// short form: if bit 7 is 0, the length is in the lower 7 bits
	if (buf[0] & 0x80) == 0 {
		return uint64(buf[0]), 1, nil
	}

	// long form: lower 7 bits indicate number of subsequent length bytes
	n := int(buf[0] & 0x7f)
	if n == 0 {
		return 0, 0, liberrors.ErrInvalidValue{Msg: "indefinite BER length is not supported"}
	}
	if n > MaxIntLength {
		return 0, 0, liberrors.ErrTypeOverflow{Msg: "BER value will overflow given type"}
	}

	err = checkAvailable("BER decoding", buf, 1+n)
	if err != nil {
		return 0, 0, err
	}

	v, err := ReadUint(buf[1:], n)
	if err != nil {
		return 0, 0, err
	}

	return v, 1 + n, nil
}

// BERLength returns the number of bytes AppendBER will write.
func BERLength(v uint64) int {
	if v > 127 {
		return UintLength(v) + 1
	}
	return 1
}

// AppendBER appends a minimal BER-encoded length.
func AppendBER(buf []byte, v uint64) []byte {
	if v < 128 {
		return append(buf, byte(v))
	}

	n := UintLength(v)
	buf = append(buf, 0x80|byte(n))
	buf, _ = AppendUint(buf, v, n)
	return buf
}

// ReadBEROID reads a BER-OID encoded value, in which every byte carries 7 bits
// and the highest bit signals that more bytes follow.
// It returns the value and the number of bytes consumed.
func ReadBEROID(buf []byte) (uint64, int, error) {
	var v uint64

	for i := 0; ; i++ {
		if i >= len(buf) {
			return 0, 0, liberrors.ErrBufferOverflow{What: "BER-OID decoding", Needed: i + 1, Available: len(buf)}
		}

		if (v >> (64 - 7)) != 0 {
			return 0, 0, liberrors.ErrTypeOverflow{Msg: "BER-OID value will overflow given type"}
		}

		v = v<<7 | uint64(buf[i]&0x7f)

		if (buf[i] & 0x80) == 0 {
			return v, i + 1, nil
		}
	}
}

// BEROIDLength returns the number of bytes AppendBEROID will write.
func BEROIDLength(v uint64) int {
	return max((bits.Len64(v)+6)/7, 1)
}

// AppendBEROID appends a BER-OID encoded value.
func AppendBEROID(buf []byte, v uint64) []byte {
	for n := BEROIDLength(v) - 1; n >= 0; n-- {
		b := byte((v >> (7 * n)) & 0x7f)
		if n != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
	}
	return buf
}
