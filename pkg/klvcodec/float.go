package klvcodec

import (
	"math"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

// ReadFloat reads a big-endian IEEE-754 single (4 bytes) or double (8 bytes).
func ReadFloat(buf []byte, length int) (float64, error) {
	switch length {
	case 4:
		u, err := ReadUint(buf, length)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(uint32(u))), nil

	case 8:
		u, err := ReadUint(buf, length)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(u), nil
	}

	return 0, liberrors.ErrInvalidValue{Msg: "length must be sizeof(float) or sizeof(double)"}
}

// AppendFloat appends a big-endian IEEE-754 single (4 bytes) or double (8 bytes).
func AppendFloat(buf []byte, v float64, length int) ([]byte, error) {
	switch length {
	case 4:
		return AppendUint(buf, uint64(math.Float32bits(float32(v))), length)

	case 8:
		return AppendUint(buf, math.Float64bits(v), length)
	}

	return buf, liberrors.ErrInvalidValue{Msg: "length must be sizeof(float) or sizeof(double)"}
}
